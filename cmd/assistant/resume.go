package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gemini-assistant/internal/resume"
)

var resumeCmd = &cobra.Command{
	Use:   "resume",
	Short: "Build a .docx resume",
	Long: "Builds <Name>_Resume.docx from flags or a JSON/YAML fields file. " +
		"With --autofill, the job description and objective are drafted from --job-title.",
	RunE: runResume,
}

var (
	resumeInputFile string
	resumeOutDir    string
	resumeAutofill  bool
	resumeFlags     resume.Fields
)

func init() {
	resumeCmd.Flags().StringVarP(&resumeInputFile, "in", "i", "", "Path to a JSON or YAML fields file")
	resumeCmd.Flags().StringVarP(&resumeOutDir, "out-dir", "o", "", "Directory for the document (default: config output_dir or the working directory)")
	resumeCmd.Flags().BoolVar(&resumeAutofill, "autofill", false, "Draft job description and objective from the job title")

	resumeCmd.Flags().StringVar(&resumeFlags.Name, "name", "", "Full name")
	resumeCmd.Flags().StringVar(&resumeFlags.Email, "email", "", "Email address")
	resumeCmd.Flags().StringVar(&resumeFlags.Phone, "phone", "", "Phone number")
	resumeCmd.Flags().StringVar(&resumeFlags.Education, "education", "", "Education section text")
	resumeCmd.Flags().StringVar(&resumeFlags.Experience, "experience", "", "Experience section text")
	resumeCmd.Flags().StringVar(&resumeFlags.Skills, "skills", "", "Skills section text")
	resumeCmd.Flags().StringVar(&resumeFlags.JobTitle, "job-title", "", "Target job title")
	resumeCmd.Flags().StringVar(&resumeFlags.JobDescription, "job-description", "", "Job description section text")
	resumeCmd.Flags().StringVar(&resumeFlags.Objective, "objective", "", "Objective section text")

	rootCmd.AddCommand(resumeCmd)
}

// resumeFields merges the fields file with flags; flags win
func resumeFields() (resume.Fields, error) {
	var f resume.Fields
	if resumeInputFile != "" {
		loaded, err := loadResumeFields(resumeInputFile)
		if err != nil {
			return resume.Fields{}, err
		}
		f = loaded
	}
	overlay(map[*string]string{
		&f.Name:           resumeFlags.Name,
		&f.Email:          resumeFlags.Email,
		&f.Phone:          resumeFlags.Phone,
		&f.Education:      resumeFlags.Education,
		&f.Experience:     resumeFlags.Experience,
		&f.Skills:         resumeFlags.Skills,
		&f.JobTitle:       resumeFlags.JobTitle,
		&f.JobDescription: resumeFlags.JobDescription,
		&f.Objective:      resumeFlags.Objective,
	})
	return f, f.Validate()
}

func runResume(_ *cobra.Command, _ []string) error {
	fields, err := resumeFields()
	if err != nil {
		return err
	}
	if resumeAutofill && fields.JobTitle == "" {
		return fmt.Errorf("--autofill requires a job title")
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, nil, warningNotifier(os.Stderr))
	if err != nil {
		return err
	}
	defer rt.Close()

	dir := resumeOutDir
	if dir == "" {
		dir = rt.cfg.OutputDir
	}

	outcome, err := rt.service.GenerateResumeIn(ctx, dir, fields, resumeAutofill)
	if err != nil {
		return err
	}

	if rt.cfg.Verbose {
		rt.printer.PrintResume(outcome.Path, outcome.Fields)
		return nil
	}
	fmt.Printf("Resume generated: %s\n", outcome.Path)
	return nil
}
