package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jonathan/gemini-assistant/internal/tui"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Open the interactive terminal interface",
	RunE:  runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func runShell(_ *cobra.Command, _ []string) error {
	rt, err := newRuntime(context.Background(), nil, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	return tui.Run(rt.service)
}
