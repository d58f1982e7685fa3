package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonathan/gemini-assistant/internal/prompts"
)

// dateLayout is the cover letter date format
const dateLayout = "January 02, 2006"

var coverLetterCmd = &cobra.Command{
	Use:   "cover-letter",
	Short: "Draft a cover letter",
	Long:  "Composes a cover letter prompt from sender and recipient details and has the model draft the letter.",
	RunE:  runCoverLetter,
}

var (
	coverLetterInputFile  string
	coverLetterOutputFile string
	coverLetterFlags      prompts.CoverLetterFields
)

func init() {
	f := coverLetterCmd.Flags()
	f.StringVarP(&coverLetterInputFile, "in", "i", "", "Path to a JSON or YAML fields file")
	f.StringVarP(&coverLetterOutputFile, "out", "o", "", "Write the letter to this file instead of stdout")

	f.StringVar(&coverLetterFlags.SenderFirstName, "from-name", "", "Sender first name")
	f.StringVar(&coverLetterFlags.SenderLastName, "from-lastname", "", "Sender last name")
	f.StringVar(&coverLetterFlags.SenderEmail, "from-email", "", "Sender email")
	f.StringVar(&coverLetterFlags.SenderProfession, "from-profession", "", "Sender profession")
	f.StringVar(&coverLetterFlags.SenderPhone, "from-phone", "", "Sender phone")
	f.StringVar(&coverLetterFlags.SenderAddress, "from-address", "", "Sender address")
	f.StringVar(&coverLetterFlags.RecipientFirstName, "to-name", "", "Recipient first name")
	f.StringVar(&coverLetterFlags.RecipientLastName, "to-lastname", "", "Recipient last name")
	f.StringVar(&coverLetterFlags.RecipientCompany, "to-company", "", "Recipient company")
	f.StringVar(&coverLetterFlags.RecipientDepartment, "to-department", "", "Recipient department")
	f.StringVar(&coverLetterFlags.RecipientAddress, "to-address", "", "Recipient address")
	f.StringVar(&coverLetterFlags.Subject, "subject", "", "Letter subject")
	f.StringVar(&coverLetterFlags.Date, "date", "", "Letter date (default: today)")

	rootCmd.AddCommand(coverLetterCmd)
}

// coverLetterFields merges the fields file with flags and fills the date
func coverLetterFields(now time.Time) (prompts.CoverLetterFields, error) {
	var f prompts.CoverLetterFields
	if coverLetterInputFile != "" {
		loaded, err := loadCoverLetterFields(coverLetterInputFile)
		if err != nil {
			return prompts.CoverLetterFields{}, err
		}
		f = loaded
	}
	flags := coverLetterFlags
	overlay(map[*string]string{
		&f.SenderFirstName:     flags.SenderFirstName,
		&f.SenderLastName:      flags.SenderLastName,
		&f.SenderEmail:         flags.SenderEmail,
		&f.SenderProfession:    flags.SenderProfession,
		&f.SenderPhone:         flags.SenderPhone,
		&f.SenderAddress:       flags.SenderAddress,
		&f.RecipientFirstName:  flags.RecipientFirstName,
		&f.RecipientLastName:   flags.RecipientLastName,
		&f.RecipientCompany:    flags.RecipientCompany,
		&f.RecipientDepartment: flags.RecipientDepartment,
		&f.RecipientAddress:    flags.RecipientAddress,
		&f.Subject:             flags.Subject,
		&f.Date:                flags.Date,
	})
	if f.Date == "" {
		f.Date = now.Format(dateLayout)
	}
	if err := f.Validate(); err != nil {
		return prompts.CoverLetterFields{}, fmt.Errorf("invalid cover letter fields: %w", err)
	}
	return f, nil
}

func runCoverLetter(_ *cobra.Command, _ []string) error {
	fields, err := coverLetterFields(time.Now())
	if err != nil {
		return err
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, nil, warningNotifier(os.Stderr))
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.service.CoverLetter(ctx, fields)
	if err != nil {
		return err
	}
	if !result.OK() {
		return nil
	}

	if coverLetterOutputFile != "" {
		if err := os.WriteFile(coverLetterOutputFile, []byte(result.Text+"\n"), 0644); err != nil {
			return fmt.Errorf("failed to write cover letter: %w", err)
		}
		fmt.Printf("Cover letter written to: %s\n", coverLetterOutputFile)
		return nil
	}

	if rt.cfg.Verbose {
		rt.printer.PrintResult("COVER LETTER", result)
		return nil
	}
	printText(result.Text)
	return nil
}
