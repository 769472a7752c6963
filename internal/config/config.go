package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds every runtime knob of the service, parsed from the
// environment once at startup and passed by reference afterwards.
type Config struct {
	// App
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	Port    int    `env:"PORT" envDefault:"8080"`
	Version string `env:"APP_VERSION" envDefault:"1.7.0"`

	// Upload limits
	MaxUploadMB int `env:"MAX_UPLOAD_MB" envDefault:"10"`

	// Database
	DatabaseURL string `env:"DATABASE_URL"`

	// OpenRouter / LLM
	OpenRouterAPIKey     string `env:"OPENROUTER_API_KEY"`
	OpenRouterBaseURL    string `env:"OPENROUTER_BASE_URL" envDefault:"https://openrouter.ai/api/v1"`
	LLMModel             string `env:"LLM_MODEL" envDefault:"openai/gpt-5-mini"`
	LLMTimeoutSeconds    int    `env:"LLM_TIMEOUT_SECONDS" envDefault:"30"`
	LLMMaxRetries        int    `env:"LLM_MAX_RETRIES" envDefault:"3"`
	UseStructuredOutputs bool   `env:"LLM_USE_STRUCTURED_OUTPUTS" envDefault:"true"`
	VisionModel          string `env:"VISION_LLM_MODEL" envDefault:"google/gemini-2.5-flash"`

	// Unsplash
	UnsplashAccessKey      string `env:"UNSPLASH_ACCESS_KEY"`
	UnsplashAPIURL         string `env:"UNSPLASH_API_URL" envDefault:"https://api.unsplash.com/search/photos"`
	UnsplashTimeoutSeconds int    `env:"UNSPLASH_TIMEOUT_SECONDS" envDefault:"7"`
	UnsplashMaxRetries     int    `env:"UNSPLASH_MAX_RETRIES" envDefault:"3"`
}

// Load reads .env (if present) and parses environment variables into Config.
func Load() (*Config, error) {
	// Load .env if available; ignore error if file does not exist
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate fails fast in production on missing critical config and
// warns in development so local runs still come up.
func (c *Config) validate() error {
	var fatal []string

	if c.DatabaseURL == "" {
		fatal = append(fatal, "DATABASE_URL is missing")
		log.Error().Msg("DATABASE_URL not found in environment. Database operations will fail.")
	}
	if c.OpenRouterAPIKey == "" {
		log.Warn().Msg("OPENROUTER_API_KEY not found in environment.")
	}
	if c.UnsplashAccessKey == "" {
		log.Warn().Msg("UNSPLASH_ACCESS_KEY not found in environment. Image fetching will be skipped.")
	}

	if c.IsProduction() && len(fatal) > 0 {
		return fmt.Errorf("invalid production config: %s", strings.Join(fatal, "; "))
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// CORSOrigins returns the allowed origins for the current environment.
// The production frontend is always listed alongside localhost so the
// hosted UI and local development both work against any deployment.
func (c *Config) CORSOrigins() []string {
	return []string{
		"https://gardengenie.lovable.app",
		"http://localhost",
		"http://localhost:8000",
		"http://localhost:3000",
		"http://127.0.0.1:8000",
		"http://127.0.0.1:3000",
	}
}
