package model

import "time"

// Config is the complete run configuration. It is built once by the CLI
// and passed into the pipeline at construction; nothing reads ambient state
// after that.
type Config struct {
	WorkingLanguage string  `yaml:"working_language" mapstructure:"working_language"`
	MinConfidence   float64 `yaml:"min_confidence" mapstructure:"min_confidence"`

	Source      SourceConfig      `yaml:"source" mapstructure:"source"`
	Trusted     TrustedConfig     `yaml:"trusted" mapstructure:"trusted"`
	Evidence    EvidenceConfig    `yaml:"evidence" mapstructure:"evidence"`
	Translate   TranslateConfig   `yaml:"translate" mapstructure:"translate"`
	LLM         LLMConfig         `yaml:"llm" mapstructure:"llm"`
	Concurrency ConcurrencyConfig `yaml:"concurrency" mapstructure:"concurrency"`
	Retry       RetryConfig       `yaml:"retry" mapstructure:"retry"`
	HTTP        HTTPConfig        `yaml:"http" mapstructure:"http"`
	Rate        RateConfig        `yaml:"rate" mapstructure:"rate"`
	Cache       CacheConfig       `yaml:"cache" mapstructure:"cache"`
	Output      OutputConfig      `yaml:"output" mapstructure:"output"`
}

// SourceConfig selects and configures the source connector
type SourceConfig struct {
	Connector string `yaml:"connector" mapstructure:"connector"` // "reddit" or "file"
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`   // Override for tests
	File      string `yaml:"file" mapstructure:"file"`           // Scraped JSON dump for the file connector
	Limit     int    `yaml:"limit" mapstructure:"limit"`         // Max items per run
}

// TrustedConfig is the curated trusted-source tier
type TrustedConfig struct {
	Sources []string `yaml:"sources" mapstructure:"sources"`   // Trusted domains, consulted first
	MinHits int      `yaml:"min_hits" mapstructure:"min_hits"` // Fallback to general web below this count
}

// EvidenceConfig bounds evidence gathering
type EvidenceConfig struct {
	PerTier        int      `yaml:"per_tier" mapstructure:"per_tier"` // Max evidence items per trust tier
	GNewsBaseURL   string   `yaml:"gnews_base_url" mapstructure:"gnews_base_url"`
	GNewsAPIKey    string   `yaml:"gnews_api_key" mapstructure:"gnews_api_key"`
	NewsAPIBaseURL string   `yaml:"newsapi_base_url" mapstructure:"newsapi_base_url"`
	NewsAPIKey     string   `yaml:"newsapi_key" mapstructure:"newsapi_key"`
	FetchContent   bool     `yaml:"fetch_content" mapstructure:"fetch_content"` // Fetch full article bodies
	BlockedDomains []string `yaml:"blocked_domains" mapstructure:"blocked_domains"`
}

// TranslateConfig configures the translation service client
type TranslateConfig struct {
	BaseURL string        `yaml:"base_url" mapstructure:"base_url"`
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// LLMConfig configures the language-model boundary
type LLMConfig struct {
	Provider  string `yaml:"provider" mapstructure:"provider"` // openai, ollama, ""
	Model     string `yaml:"model" mapstructure:"model"`
	APIKey    string `yaml:"-" mapstructure:"-"` // Env only, never persisted
	BaseURL   string `yaml:"base_url" mapstructure:"base_url"`
	Timeout   int    `yaml:"timeout" mapstructure:"timeout"` // seconds
	MaxTokens int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// ConcurrencyConfig bounds concurrent claim processing
type ConcurrencyConfig struct {
	Workers int `yaml:"workers" mapstructure:"workers"`
}

// RetryConfig is the shared retry/backoff policy for every external boundary call
type RetryConfig struct {
	MaxAttempts int           `yaml:"max_attempts" mapstructure:"max_attempts"`
	BackoffBase time.Duration `yaml:"backoff_base" mapstructure:"backoff_base"`
	Multiplier  float64       `yaml:"multiplier" mapstructure:"multiplier"`
}

// HTTPConfig applies to all outbound HTTP clients
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	HTTPProxy    string        `yaml:"http_proxy" mapstructure:"http_proxy"`
	HTTPSProxy   string        `yaml:"https_proxy" mapstructure:"https_proxy"`
	NoProxy      string        `yaml:"no_proxy" mapstructure:"no_proxy"`
}

// RateConfig bounds outbound request rate per domain
type RateConfig struct {
	RequestsPerSecond float64 `yaml:"requests_per_second" mapstructure:"requests_per_second"`
	Burst             int     `yaml:"burst" mapstructure:"burst"`
}

// CacheConfig configures the layered search/article cache
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// OutputConfig controls artifact and console output
type OutputConfig struct {
	ResultsDir string        `yaml:"results_dir" mapstructure:"results_dir"`
	Deadline   time.Duration `yaml:"deadline" mapstructure:"deadline"` // Global run deadline
	Verbose    bool          `yaml:"verbose" mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults
func DefaultConfig() *Config {
	return &Config{
		WorkingLanguage: "en",
		MinConfidence:   0.5,
		Source: SourceConfig{
			Connector: "reddit",
			Limit:     25,
		},
		Trusted: TrustedConfig{
			Sources: []string{
				"reuters.com", "apnews.com", "bbc.com",
				"factcheck.org", "politifact.com", "snopes.com",
			},
			MinHits: 1,
		},
		Evidence: EvidenceConfig{
			PerTier:        5,
			GNewsBaseURL:   "https://gnews.io/api/v4",
			NewsAPIBaseURL: "https://newsapi.org/v2",
			FetchContent:   true,
			BlockedDomains: []string{"ndtv.com"},
		},
		Translate: TranslateConfig{
			Timeout: 30 * time.Second,
		},
		LLM: LLMConfig{
			Provider:  "openai",
			Model:     "gpt-4o-mini",
			Timeout:   30,
			MaxTokens: 1000,
		},
		Concurrency: ConcurrencyConfig{Workers: 4},
		Retry: RetryConfig{
			MaxAttempts: 3,
			BackoffBase: time.Second,
			Multiplier:  2.0,
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "Claimlens/0.1 (+https://github.com/claimlens/claimlens)",
			MaxBodyBytes: 2_000_000,
		},
		Rate: RateConfig{
			RequestsPerSecond: 2,
			Burst:             5,
		},
		Cache: CacheConfig{
			Enabled:   true,
			MemoryTTL: 15 * time.Minute,
			DiskTTL:   24 * time.Hour,
		},
		Output: OutputConfig{
			ResultsDir: "results",
			Deadline:   10 * time.Minute,
		},
	}
}
