package llm

// Provider represents an LLM provider.
type Provider string

// Provider constants define supported LLM providers.
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Config holds the model configuration for chat sessions. The values are
// fixed per process: every session uses the same model, system instruction,
// and sampling temperature.
type Config struct {
	Provider          Provider
	Model             string
	Temperature       float32
	SystemInstruction string
}

// DefaultConfig returns the default configuration (currently Gemini).
func DefaultConfig() *Config {
	return &Config{
		Provider:    ProviderGemini,
		Model:       "gemini-2.5-flash",
		Temperature: 0.7,
	}
}
