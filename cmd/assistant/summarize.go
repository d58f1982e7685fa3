package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/gemini-assistant/internal/digest"
	"github.com/jonathan/gemini-assistant/internal/extraction"
	"github.com/jonathan/gemini-assistant/internal/observability"
)

var summarizeCmd = &cobra.Command{
	Use:   "summarize",
	Short: "Summarize a .docx or .pdf document",
	Long:  "Extracts the document text, keeps its longest sentences as a digest and asks the model for a concise summary.",
	RunE:  runSummarize,
}

var (
	summarizeInputFile  string
	summarizeDigestOnly bool
)

func init() {
	summarizeCmd.Flags().StringVarP(&summarizeInputFile, "in", "i", "", "Path to a .docx or .pdf file (required)")
	summarizeCmd.Flags().BoolVar(&summarizeDigestOnly, "digest-only", false, "Print the digest without calling the model (no API key needed)")

	if err := summarizeCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(summarizeCmd)
}

func runSummarize(_ *cobra.Command, _ []string) error {
	// Reject unsupported formats before any client setup
	if _, err := extraction.DetectFormat(summarizeInputFile); err != nil {
		return err
	}

	if summarizeDigestOnly {
		cfg, err := loadSettings(configPath, apiKeyFlag, verbose)
		if err != nil {
			return err
		}
		return printDigest(os.Stdout, summarizeInputFile, cfg.DigestSize, cfg.Verbose)
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, nil, warningNotifier(os.Stderr))
	if err != nil {
		return err
	}
	defer rt.Close()

	if rt.cfg.Verbose {
		text, err := extraction.Extract(summarizeInputFile)
		if err != nil {
			return err
		}
		rt.printer.PrintExtracted(summarizeInputFile, text)
		rt.printer.PrintSentences(rt.digest.Sentences(text))
	}

	summary, err := rt.service.SummarizeFile(ctx, summarizeInputFile)
	if err != nil {
		return err
	}
	if rt.cfg.Verbose {
		rt.printer.PrintDigest(summary.Digest)
		rt.printer.PrintResult("SUMMARY", summary.Refined)
		return nil
	}
	printText(summary.Refined.Text)
	return nil
}

// printDigest extracts path and writes its digest to out without any remote call
func printDigest(out io.Writer, path string, size int, detailed bool) error {
	summarizer, err := digest.New()
	if err != nil {
		return err
	}
	text, err := extraction.Extract(path)
	if err != nil {
		return err
	}

	d := summarizer.Digest(text, size)
	if detailed {
		printer := observability.NewPrinter(out)
		printer.PrintExtracted(path, text)
		printer.PrintSentences(summarizer.Sentences(text))
		printer.PrintDigest(d)
		return nil
	}
	if d != "" {
		_, _ = fmt.Fprintln(out, d)
	}
	return nil
}
