package catalog

// Product catalog types, loaded once at startup and consumed read-only.

type Catalog struct {
	Channels   map[string]Channel `yaml:"channels"`
	Styles     map[string]string  `yaml:"styles"`
	Languages  map[string]string  `yaml:"languages"`
	Lengths    map[string]Length  `yaml:"lengths"`
	AI         AIParams           `yaml:"ai"`
	RateLimits RateLimits         `yaml:"rate_limits"`
}

// Channel is a publishing target with its own length and style conventions.
type Channel struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MaxLength   int    `yaml:"max_length"`
}

type Length struct {
	Description string `yaml:"description"`
}

// AIParams holds the text-generation provider parameters.
type AIParams struct {
	Model          string  `yaml:"model"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	Retries        int     `yaml:"retries"`
}

type RateLimits struct {
	APIRequestsPerMinute int `yaml:"api_requests_per_minute"`
	AIGenerationsPerDay  int `yaml:"ai_generations_per_day"`
}
