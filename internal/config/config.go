// Package config provides configuration loading and validation for the CLI and server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jonathan/gemini-assistant/internal/llm"
)

// Defaults applied by MergeWithDefaults when no other value is set
const (
	DefaultDigestSize = 3
	DefaultPort       = 8080
)

// Config represents the assistant configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Credentials
	APIKey string `json:"api_key,omitempty" yaml:"api_key"` // Gemini API key

	// Models
	TextModel   string `json:"text_model,omitempty" yaml:"text_model"`     // Model for prompt-only generation
	VisionModel string `json:"vision_model,omitempty" yaml:"vision_model"` // Model for image description
	AudioModel  string `json:"audio_model,omitempty" yaml:"audio_model"`   // Model for transcription
	// Sampling temperature for every tier; nil keeps the model default
	Temperature *float32 `json:"temperature,omitempty" yaml:"temperature"`

	// Behavior
	DigestSize int    `json:"digest_size,omitempty" yaml:"digest_size"` // Sentences kept before refinement
	OutputDir  string `json:"output_dir,omitempty" yaml:"output_dir"`   // Where resumes are written
	UploadDir  string `json:"upload_dir,omitempty" yaml:"upload_dir"`   // Where uploads are staged
	Port       int    `json:"port,omitempty" yaml:"port"`               // HTTP listen port
	Verbose    bool   `json:"verbose,omitempty" yaml:"verbose"`         // Print detailed debug information
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for the API key since it may still come from
// the environment or a flag after merging.
func (c *Config) Validate() error {
	if c.DigestSize < 0 {
		return fmt.Errorf("config error: 'digest_size' must be non-negative")
	}
	if c.Temperature != nil && (*c.Temperature < 0 || *c.Temperature > 2) {
		return fmt.Errorf("config error: 'temperature' must be between 0 and 2")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}

	for name, dir := range map[string]string{"output_dir": c.OutputDir, "upload_dir": c.UploadDir} {
		if dir == "" {
			continue
		}
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: '%s' is not a directory: %s", name, dir)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.TextModel == "" {
		result.TextModel = defaults.TextModel
	}
	if result.VisionModel == "" {
		result.VisionModel = defaults.VisionModel
	}
	if result.AudioModel == "" {
		result.AudioModel = defaults.AudioModel
	}
	if result.Temperature == nil {
		result.Temperature = defaults.Temperature
	}
	if result.OutputDir == "" {
		result.OutputDir = defaults.OutputDir
	}
	if result.UploadDir == "" {
		result.UploadDir = defaults.UploadDir
	}

	// Int fields: use default if zero
	if result.DigestSize == 0 {
		if defaults.DigestSize > 0 {
			result.DigestSize = defaults.DigestSize
		} else {
			result.DigestSize = DefaultDigestSize
		}
	}
	if result.Port == 0 {
		if defaults.Port > 0 {
			result.Port = defaults.Port
		} else {
			result.Port = DefaultPort
		}
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ToLLMConfig converts the model settings into the client configuration.
// Unset models keep the provider defaults.
func (c *Config) ToLLMConfig() *llm.Config {
	out := llm.DefaultConfig()
	if c.TextModel != "" {
		out = out.WithModel(llm.TierText, c.TextModel)
	}
	if c.VisionModel != "" {
		out = out.WithModel(llm.TierVision, c.VisionModel)
	}
	if c.AudioModel != "" {
		out = out.WithModel(llm.TierAudio, c.AudioModel)
	}
	if c.Temperature != nil {
		t := *c.Temperature
		out.Temperature = &t
	}
	return out
}
