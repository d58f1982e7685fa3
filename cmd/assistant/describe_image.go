package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var describeImageCmd = &cobra.Command{
	Use:   "describe-image",
	Short: "Describe a JPEG or PNG image",
	RunE:  runDescribeImage,
}

var describeImageInputFile string

func init() {
	describeImageCmd.Flags().StringVarP(&describeImageInputFile, "in", "i", "", "Path to a .jpg, .jpeg or .png image (required)")

	if err := describeImageCmd.MarkFlagRequired("in"); err != nil {
		panic(fmt.Sprintf("failed to mark in flag as required: %v", err))
	}

	rootCmd.AddCommand(describeImageCmd)
}

func runDescribeImage(_ *cobra.Command, _ []string) error {
	image, err := os.ReadFile(describeImageInputFile)
	if err != nil {
		return fmt.Errorf("failed to read image: %w", err)
	}

	ctx := context.Background()
	rt, err := newRuntime(ctx, nil, warningNotifier(os.Stderr))
	if err != nil {
		return err
	}
	defer rt.Close()

	result, err := rt.service.DescribeImage(ctx, image)
	if err != nil {
		return err
	}
	if rt.cfg.Verbose {
		rt.printer.PrintResult("IMAGE DESCRIPTION", result)
		return nil
	}
	printText(result.Text)
	return nil
}
