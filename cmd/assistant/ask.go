package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/gemini-assistant/internal/transcribe"
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer a question",
	Long:  "Answers a typed question, or a recorded one given with --audio (the recording is transcribed first).",
	RunE:  runAsk,
}

var (
	askAudioFile string
	askAudioMIME string
)

func init() {
	askCmd.Flags().StringVarP(&askAudioFile, "audio", "a", "", "Path to a recorded question (wav, mp3, ogg, flac, aac)")
	askCmd.Flags().StringVar(&askAudioMIME, "audio-type", "", "MIME type of the recording (guessed from the suffix if empty)")
	rootCmd.AddCommand(askCmd)
}

func runAsk(_ *cobra.Command, args []string) error {
	question := strings.TrimSpace(strings.Join(args, " "))
	if question == "" && askAudioFile == "" {
		return fmt.Errorf("a question or --audio is required")
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, nil, warningNotifier(os.Stderr))
	if err != nil {
		return err
	}
	defer rt.Close()

	if askAudioFile != "" {
		audio, err := os.ReadFile(askAudioFile)
		if err != nil {
			return fmt.Errorf("failed to read recording: %w", err)
		}
		mimeType := askAudioMIME
		if mimeType == "" {
			mimeType = transcribe.MIMETypeFromPath(askAudioFile)
		}

		answer, err := rt.service.AskByVoice(ctx, audio, mimeType)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "You asked: %s\n", answer.Transcript)
		if rt.cfg.Verbose {
			rt.printer.PrintResult("ANSWER", answer.Answer)
			return nil
		}
		printText(answer.Answer.Text)
		return nil
	}

	result, err := rt.service.Ask(ctx, question)
	if err != nil {
		return err
	}
	if rt.cfg.Verbose {
		rt.printer.PrintResult("ANSWER", result)
		return nil
	}
	printText(result.Text)
	return nil
}
