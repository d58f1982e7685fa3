package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jonathan/gemini-assistant/internal/assistant"
	"github.com/jonathan/gemini-assistant/internal/config"
	"github.com/jonathan/gemini-assistant/internal/digest"
	"github.com/jonathan/gemini-assistant/internal/extraction"
	"github.com/jonathan/gemini-assistant/internal/generation"
	"github.com/jonathan/gemini-assistant/internal/llm"
	"github.com/jonathan/gemini-assistant/internal/observability"
	"github.com/jonathan/gemini-assistant/internal/transcribe"
)

// loadSettings merges the config file, environment and flags, in increasing precedence
func loadSettings(path, apiKey string, verboseFlag bool) (config.Config, error) {
	fileCfg := &config.Config{}
	if path != "" {
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return config.Config{}, err
		}
		fileCfg = loaded
	}

	cfg := fileCfg.MergeWithDefaults(config.Config{APIKey: os.Getenv("GEMINI_API_KEY")})
	if apiKey != "" {
		cfg.APIKey = apiKey
	}
	cfg.Verbose = cfg.Verbose || verboseFlag

	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// requireAPIKey fails when no key reached the merged config
func requireAPIKey(cfg config.Config) error {
	if cfg.APIKey == "" {
		return fmt.Errorf("API key is required (set GEMINI_API_KEY environment variable or use --api-key flag)")
	}
	return nil
}

// warningNotifier prints generation notices as warnings
func warningNotifier(w io.Writer) generation.Notifier {
	return generation.NotifierFunc(func(n generation.Notice) {
		_, _ = fmt.Fprintf(w, "Warning: %s\n", n.Message)
	})
}

// runtime bundles what every command needs
type runtime struct {
	cfg     config.Config
	client  llm.Client
	service *assistant.Service
	printer *observability.Printer
	digest  *digest.Summarizer
}

func (r *runtime) Close() {
	_ = r.client.Close()
}

// newRuntime builds the assistant from the global flags.
// reg and notifier may be nil when metrics are not exported or notices are surfaced elsewhere.
func newRuntime(ctx context.Context, reg prometheus.Registerer, notifier generation.Notifier) (*runtime, error) {
	cfg, err := loadSettings(configPath, apiKeyFlag, verbose)
	if err != nil {
		return nil, err
	}
	if err := requireAPIKey(cfg); err != nil {
		return nil, err
	}

	client, err := llm.NewClient(ctx, cfg.ToLLMConfig(), cfg.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	var opts []generation.Option
	if notifier != nil {
		opts = append(opts, generation.WithNotifier(notifier))
	}
	if reg != nil {
		metrics, err := generation.NewMetrics(reg)
		if err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("failed to register generation metrics: %w", err)
		}
		opts = append(opts, generation.WithMetrics(metrics))
	}

	summarizer, err := digest.New()
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	svc := assistant.New(assistant.Deps{
		Generator:   generation.New(client, opts...),
		Transcriber: transcribe.NewGemini(client),
		Extractor:   extraction.New(),
		Summarizer:  summarizer,
		DigestSize:  cfg.DigestSize,
		UploadDir:   cfg.UploadDir,
		OutputDir:   cfg.OutputDir,
	})

	return &runtime{
		cfg:     cfg,
		client:  client,
		service: svc,
		printer: observability.NewPrinter(os.Stdout),
		digest:  summarizer,
	}, nil
}

// printText writes generated text to stdout; empty output means the notice was already shown
func printText(text string) {
	if text != "" {
		fmt.Println(text)
	}
}
