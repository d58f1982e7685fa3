package prompts

// QA returns the question unchanged; free-form questions are sent as typed.
func QA(question string) string {
	return question
}

// Summary asks the model to refine an extractive digest.
func Summary(digest string) string {
	return Format(MustGet(templatesFile, "summary"), map[string]string{"Digest": digest})
}

// JobDescription asks for a one-line description of the role.
func JobDescription(jobTitle string) string {
	return Format(MustGet(templatesFile, "job-description"), map[string]string{"JobTitle": jobTitle})
}

// Objective asks for a short resume objective for the role.
func Objective(jobTitle string) string {
	return Format(MustGet(templatesFile, "objective"), map[string]string{"JobTitle": jobTitle})
}

// ImageDescription is the fixed instruction sent with an image.
func ImageDescription() string {
	return MustGet(templatesFile, "image-description")
}

// Transcription is the fixed instruction sent with a speech recording.
func Transcription() string {
	return MustGet(templatesFile, "transcription")
}
