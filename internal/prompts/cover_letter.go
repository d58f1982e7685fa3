package prompts

import (
	"strings"

	"github.com/go-playground/validator/v10"
)

// CoverLetterFields are the inputs of the cover letter composer.
// Date is preformatted by the caller (e.g. "January 02, 2006").
type CoverLetterFields struct {
	SenderFirstName  string `json:"from_name" validate:"required"`
	SenderLastName   string `json:"from_lastname,omitempty"`
	SenderEmail      string `json:"from_email,omitempty" validate:"omitempty,email"`
	SenderProfession string `json:"from_profession,omitempty"`
	SenderPhone      string `json:"from_phone,omitempty"`
	SenderAddress    string `json:"from_address,omitempty"`

	RecipientFirstName  string `json:"to_name" validate:"required"`
	RecipientLastName   string `json:"to_lastname,omitempty"`
	RecipientCompany    string `json:"to_company,omitempty"`
	RecipientDepartment string `json:"to_department,omitempty"`
	RecipientAddress    string `json:"to_address,omitempty"`

	Subject string `json:"subject" validate:"required"`
	Date    string `json:"date,omitempty"`
}

// Validate checks required fields
func (f CoverLetterFields) Validate() error {
	return validator.New().Struct(f)
}

// Clause renders one fragment of the cover letter, or "" to omit itself.
type Clause func(CoverLetterFields) string

// coverLetterClauses is applied in order; the order is part of the output contract.
var coverLetterClauses = []Clause{
	headerClause,
	recipientClause,
	subjectClause,
	salutationClause,
	openingClause,
	professionClause,
	capabilityClause,
	emailClause,
	phoneClause,
	closingClause,
	signatureClause,
	lastNameClause,
}

// CoverLetter composes the cover letter prompt from fields.
func CoverLetter(f CoverLetterFields) string {
	var sb strings.Builder
	for _, clause := range coverLetterClauses {
		sb.WriteString(clause(f))
	}
	return sb.String()
}

func headerClause(f CoverLetterFields) string {
	return f.Date + "\n\n" + f.SenderAddress + "\n\n"
}

func recipientClause(f CoverLetterFields) string {
	name := joinNonEmpty(" ", f.RecipientFirstName, f.RecipientLastName)
	return strings.Join([]string{name, f.RecipientDepartment, f.RecipientCompany, f.RecipientAddress}, "\n") + "\n\n"
}

func subjectClause(f CoverLetterFields) string {
	return "Subject: " + f.Subject + "\n\n"
}

func salutationClause(f CoverLetterFields) string {
	return "Dear " + f.RecipientFirstName + ",\n\n"
}

func openingClause(f CoverLetterFields) string {
	return Format(MustGet(templatesFile, "cover-letter-opening"), map[string]string{
		"Company":    f.RecipientCompany,
		"Department": f.RecipientDepartment,
	})
}

func professionClause(f CoverLetterFields) string {
	if f.SenderProfession == "" {
		return ""
	}
	return Format(MustGet(templatesFile, "cover-letter-profession"), map[string]string{"Profession": f.SenderProfession})
}

func capabilityClause(CoverLetterFields) string {
	return MustGet(templatesFile, "cover-letter-capability")
}

func emailClause(f CoverLetterFields) string {
	if f.SenderEmail == "" {
		return ""
	}
	return Format(MustGet(templatesFile, "cover-letter-email"), map[string]string{"Email": f.SenderEmail})
}

func phoneClause(f CoverLetterFields) string {
	if f.SenderPhone == "" {
		return ""
	}
	return Format(MustGet(templatesFile, "cover-letter-phone"), map[string]string{"Phone": f.SenderPhone})
}

func closingClause(CoverLetterFields) string {
	return MustGet(templatesFile, "cover-letter-closing")
}

func signatureClause(f CoverLetterFields) string {
	return "Sincerely,\t" + f.SenderFirstName
}

func lastNameClause(f CoverLetterFields) string {
	if f.SenderLastName == "" {
		return ""
	}
	return " " + f.SenderLastName
}

func joinNonEmpty(sep string, parts ...string) string {
	kept := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, sep)
}
