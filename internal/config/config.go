package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// FileName is the default config file name.
const FileName = "wrapped.yaml"

// Config represents the top-level wrapped.yaml configuration.
type Config struct {
	Dataset DatasetConfig `yaml:"dataset"`
	Report  ReportConfig  `yaml:"report"`
	HTTP    HTTPConfig    `yaml:"http"`
	Log     LogConfig     `yaml:"log"`
}

// DatasetConfig locates the donation relations.
type DatasetConfig struct {
	Engine string `yaml:"engine" env:"WRAPPED_ENGINE"`
	// PointerURL serves the current dataset CID as plain text.
	PointerURL string `yaml:"pointer_url" env:"WRAPPED_POINTER_URL"`
	// GatewayTemplate must contain "{cid}".
	GatewayTemplate string `yaml:"gateway_template" env:"WRAPPED_GATEWAY_TEMPLATE"`
	// GatewayURL, when set, is used as is and the pointer is not fetched.
	GatewayURL   string        `yaml:"gateway_url,omitempty" env:"WRAPPED_GATEWAY_URL"`
	SnapshotDir  string        `yaml:"snapshot_dir,omitempty" env:"WRAPPED_SNAPSHOT_DIR"`
	FetchTimeout time.Duration `yaml:"fetch_timeout" env:"WRAPPED_FETCH_TIMEOUT"`
}

// ReportConfig controls what a lookup computes.
type ReportConfig struct {
	Year                int    `yaml:"year" env:"WRAPPED_YEAR"`
	TopN                int    `yaml:"top_n" env:"WRAPPED_TOP_N"`
	RecommendationLimit int    `yaml:"recommendation_limit" env:"WRAPPED_RECOMMENDATION_LIMIT"`
	SocialBaseURL       string `yaml:"social_base_url" env:"WRAPPED_SOCIAL_BASE_URL"`
}

// HTTPConfig configures `wrapped serve`.
type HTTPConfig struct {
	Addr         string        `yaml:"addr" env:"WRAPPED_HTTP_ADDR"`
	ReadTimeout  time.Duration `yaml:"read_timeout" env:"WRAPPED_HTTP_READ_TIMEOUT"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"WRAPPED_HTTP_WRITE_TIMEOUT"`
	IdleTimeout  time.Duration `yaml:"idle_timeout" env:"WRAPPED_HTTP_IDLE_TIMEOUT"`
}

// LogConfig selects the log output.
type LogConfig struct {
	Env string `yaml:"env" env:"APP_ENV"` // "development" or "production"
}

// Load reads a wrapped.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Resolve loads .env files if present, then the config file at path (a
// missing file means defaults), then applies environment overrides.
func Resolve(path string) (*Config, error) {
	_ = godotenv.Load(".env", ".env.local")

	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg, err = Default(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config pointing at the public Gitcoin grants data portal.
func Default() *Config {
	return &Config{
		Dataset: DatasetConfig{
			Engine:          "duckdb",
			PointerURL:      "https://raw.githubusercontent.com/davidgasquez/gitcoin-grants-data-portal/main/data/IPFS_CID",
			GatewayTemplate: "https://ipfs.filebase.io/ipfs/{cid}/",
			FetchTimeout:    30 * time.Second,
		},
		Report: ReportConfig{
			Year:                2023,
			TopN:                5,
			RecommendationLimit: 10,
			SocialBaseURL:       "https://twitter.com/",
		},
		HTTP: HTTPConfig{
			Addr:         ":8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 2 * time.Minute,
			IdleTimeout:  60 * time.Second,
		},
		Log: LogConfig{
			Env: "production",
		},
	}
}
