// Package llm wraps the Gemini API and generates tailored LaTeX resumes.
package llm

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// DefaultModel is used when no model is configured
const DefaultModel = "gemini-1.5-flash"

// Config holds the generation settings
type Config struct {
	Provider        Provider
	Model           string
	Temperature     float32
	MaxOutputTokens int32
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:        ProviderGemini,
		Model:           DefaultModel,
		Temperature:     0.2,
		MaxOutputTokens: 8192,
	}
}

// WithModel returns a copy of the config using model. Empty names keep the current model.
func (c *Config) WithModel(model string) *Config {
	next := *c
	if model != "" {
		next.Model = model
	}
	return &next
}
