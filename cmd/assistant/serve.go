package main

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/jonathan/gemini-assistant/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  "Starts an HTTP server exposing every assistant mode as a JSON or multipart endpoint, plus /health and /metrics.",
	RunE:  runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (default: config port or 8080)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	registry := prometheus.NewRegistry()

	rt, err := newRuntime(context.Background(), registry, nil)
	if err != nil {
		return err
	}
	defer rt.Close()

	port := servePort
	if port == 0 {
		port = rt.cfg.Port
	}

	srv, err := server.New(rt.service, server.Config{
		Port:     port,
		WorkDir:  rt.cfg.UploadDir,
		Registry: registry,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start()
}
