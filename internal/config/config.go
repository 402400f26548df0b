package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration settings
type Config struct {
	// GitHub configuration for the REST PR-count fallback
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`
}

type GitHubConfig struct {
	Token     string        `yaml:"token" mapstructure:"token"`
	RateLimit int           `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second
	Timeout   time.Duration `yaml:"timeout" mapstructure:"timeout"`       // Per-request bound on the REST fallback
}

// Default returns default configuration
func Default() *Config {
	return &Config{
		GitHub: GitHubConfig{
			RateLimit: 10,
			Timeout:   10 * time.Second,
		},
	}
}

// Load loads configuration from file, falling back to defaults when no
// config file exists. Environment variables always win over file values.
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("github", cfg.GitHub)

	v.SetEnvPrefix("GITLYTICS")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".gitlytics")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".gitlytics"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyEnvOverrides(cfg)

	return cfg, nil
}

// loadEnvFiles loads .env files in order of precedence
func loadEnvFiles() {
	envFiles := []string{
		".env.local", // Local overrides (highest precedence)
		".env",       // Main environment file
	}

	for _, file := range envFiles {
		if _, err := os.Stat(file); err == nil {
			godotenv.Load(file)
		}
	}

	homeDir, _ := os.UserHomeDir()
	homeEnvFile := filepath.Join(homeDir, ".gitlytics", ".env")
	if _, err := os.Stat(homeEnvFile); err == nil {
		godotenv.Load(homeEnvFile)
	}
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(cfg *Config) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		cfg.GitHub.Token = token
	}
	if rateLimit := os.Getenv("GITHUB_RATE_LIMIT"); rateLimit != "" {
		if rate, err := strconv.Atoi(rateLimit); err == nil && rate > 0 {
			cfg.GitHub.RateLimit = rate
		}
	}
	if timeout := os.Getenv("GITHUB_API_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.GitHub.Timeout = d
		}
	}
}
