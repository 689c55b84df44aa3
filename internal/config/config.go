// Package config provides configuration loading and validation for the
// matching engine CLI and server.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-playground/validator/v10"
)

// Similarity provider names accepted by SimilarityProvider.
const (
	ProviderLexical = "lexical"
	ProviderRemote  = "remote"
)

// Config represents engine configuration, loadable from a JSON file with
// environment variables as fallback. All fields are optional; missing values
// use defaults or must be provided via CLI flags.
type Config struct {
	// Connections
	DatabaseURL  string `json:"database_url,omitempty" validate:"omitempty,uri"`          // PostgreSQL connection URL
	GeminiAPIKey string `json:"gemini_api_key,omitempty"`                                 // API key for the remote embedding provider
	ListenAddr   string `json:"listen_addr,omitempty" validate:"omitempty,hostname_port"` // HTTP listen address for serve mode
	OntologyPath string `json:"ontology_path,omitempty"`                                  // Skill ontology JSON file; empty uses the built-in one

	// Behavior
	SimilarityProvider  string `json:"similarity_provider,omitempty" validate:"omitempty,oneof=lexical remote"` // Strategy selection
	RemoteTimeoutMS     int    `json:"remote_timeout_ms,omitempty" validate:"gte=0"`                            // Per-call budget for remote similarity
	MaxConcurrentScores int    `json:"max_concurrent_scores,omitempty" validate:"gte=0"`                        // Scoring worker limit; 0 uses the engine default
	Verbose             bool   `json:"verbose,omitempty"`                                                       // Print detailed debug information
}

var validate = validator.New()

// Load reads configuration from a JSON file. Returns an error if the file
// cannot be read, parsed, or fails validation.
func Load(path string) (*Config, error) {
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
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// FromEnv builds a configuration from environment variables alone.
func FromEnv() *Config {
	cfg := &Config{}
	cfg.MergeEnv()
	return cfg
}

// Validate checks value ranges and formats. Required fields are enforced by
// the commands that need them, after flag and environment merging.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			f := verrs[0]
			return fmt.Errorf("config error: field %q failed %q validation", jsonName(f.StructField()), f.Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}
	if c.OntologyPath != "" {
		if _, err := os.Stat(c.OntologyPath); os.IsNotExist(err) {
			return fmt.Errorf("config error: ontology file not found: %s", c.OntologyPath)
		}
	}
	return nil
}

// MergeEnv fills empty fields from environment variables. Explicit file or
// flag values always win over the environment.
func (c *Config) MergeEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.GeminiAPIKey == "" {
		c.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.ListenAddr == "" {
		c.ListenAddr = os.Getenv("LISTEN_ADDR")
	}
	if c.OntologyPath == "" {
		c.OntologyPath = os.Getenv("ONTOLOGY_PATH")
	}
	if c.SimilarityProvider == "" {
		c.SimilarityProvider = os.Getenv("SIMILARITY_PROVIDER")
	}
	if c.RemoteTimeoutMS == 0 {
		c.RemoteTimeoutMS = envInt("REMOTE_TIMEOUT_MS")
	}
	if c.MaxConcurrentScores == 0 {
		c.MaxConcurrentScores = envInt("MAX_CONCURRENT_SCORES")
	}
}

func envInt(key string) int {
	raw := os.Getenv(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// jsonName maps a struct field name to its JSON tag name for error messages.
func jsonName(field string) string {
	names := map[string]string{
		"DatabaseURL":         "database_url",
		"GeminiAPIKey":        "gemini_api_key",
		"ListenAddr":          "listen_addr",
		"OntologyPath":        "ontology_path",
		"SimilarityProvider":  "similarity_provider",
		"RemoteTimeoutMS":     "remote_timeout_ms",
		"MaxConcurrentScores": "max_concurrent_scores",
	}
	if name, ok := names[field]; ok {
		return name
	}
	return field
}
