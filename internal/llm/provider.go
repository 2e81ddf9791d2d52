package llm

import "context"

// Provider is the language-model boundary. Callers own prompt construction
// and response parsing; a provider only turns a prompt into raw text.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate sends a prompt and returns the raw model response
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and reachable
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest is a single prompt exchange
type GenerateRequest struct {
	// System sets the model's role; optional
	System string

	// Prompt is the user-turn content
	Prompt string

	// Model overrides the configured model for this call
	Model string

	// MaxTokens limits the response length; 0 uses the configured default
	MaxTokens int

	// Temperature controls sampling; extraction and classification want it low
	Temperature float32
}

// GenerateResponse is the raw model output
type GenerateResponse struct {
	Text       string
	Model      string
	TokensUsed int
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama, OpenAI-compatible proxies)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens default for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:   30,
		MaxTokens: 1000,
	}
}
