// Package llm provides centralized model configuration and the generation client abstraction.
package llm

// ModelTier represents the kind of input a model is selected for
type ModelTier string

const (
	// TierText is for plain prompt-to-text generation: answers, summaries, letters
	TierText ModelTier = "text"
	// TierVision is for prompts carrying an image
	TierVision ModelTier = "vision"
	// TierAudio is for prompts carrying recorded speech
	TierAudio ModelTier = "audio"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration passed to a client at construction
type Config struct {
	Provider    Provider
	Models      map[ModelTier]string
	Temperature *float32
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierText:   "gemini-2.5-flash",
			TierVision: "gemini-2.5-flash",
			TierAudio:  "gemini-2.5-flash",
		},
	}
}

// GetModel returns the model name for a given tier.
// Unknown or unset tiers fall back to the text model.
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[TierText]; ok {
		return model
	}
	return ""
}

// WithModel returns a new Config with a specific model for a tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	newConfig := &Config{
		Provider:    c.Provider,
		Models:      make(map[ModelTier]string, len(c.Models)+1),
		Temperature: c.Temperature,
	}
	for k, v := range c.Models {
		newConfig.Models[k] = v
	}
	newConfig.Models[tier] = model
	return newConfig
}
