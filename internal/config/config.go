// Package config defines service configuration structures and loading.
//
// Conventions:
// - Defaults live in New; Load layers file and env on top.
// - Fields carry koanf tags matching the env/file key names.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// DBPath points at the sqlite database file. Empty selects the
	// in-memory store.
	DBPath string `koanf:"db_path"`

	// Reviewers is the fixed roster seeded at startup.
	Reviewers []string `koanf:"reviewers"`

	// DefaultLimit applies when GET /recommendations omits ?limit.
	DefaultLimit int `koanf:"default_limit"`

	// MaxLimit caps ?limit.
	MaxLimit int `koanf:"max_limit"`

	// CooldownHours is the temporary exclusion window after a swipe.
	CooldownHours int `koanf:"cooldown_hours"`

	// StrikeLimit is the permanent-exclusion threshold (ban on
	// dislikes, graduation on likes).
	StrikeLimit int `koanf:"strike_limit"`

	// SuggestionAPIKey authenticates to the name-generation service.
	// Empty disables POST /suggestions.
	SuggestionAPIKey string `koanf:"suggestion_api_key"`

	// SuggestionModel selects the generation model.
	SuggestionModel string `koanf:"suggestion_model"`

	// SuggestionCount is how many names one intake run asks for.
	SuggestionCount int `koanf:"suggestion_count"`

	// SuggestionTimeoutMS bounds the external generation call.
	SuggestionTimeoutMS int `koanf:"suggestion_timeout_ms"`
}

// New creates a Config holding the defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":8080",
		DBPath:              "",
		Reviewers:           []string{"Kyle", "Emily"},
		DefaultLimit:        10,
		MaxLimit:            100,
		CooldownHours:       24,
		StrikeLimit:         3,
		SuggestionModel:     "claude-sonnet-4-20250514",
		SuggestionCount:     20,
		SuggestionTimeoutMS: 30_000,
	}
}
