// Package main provides the entry point for the Gemini assistant CLI, shell and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath string
	apiKeyFlag string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "assistant",
	Short: "Gemini-backed writing and analysis assistant",
	Long: "Answers questions (typed or recorded), summarizes .docx and .pdf documents, " +
		"builds .docx resumes, drafts cover letters and describes images using the Gemini API.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a JSON or YAML config file")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Print intermediate results")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
