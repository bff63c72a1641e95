package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds CLI configuration. Flags override the environment.
type Config struct {
	ServerURL string `env:"STOREFRONT_SERVER" envDefault:"http://localhost:8080"`
	Token     string `env:"STOREFRONT_TOKEN"`
	TokenFile string `env:"STOREFRONT_TOKEN_FILE"`
	Output    string `env:"STOREFRONT_OUTPUT" envDefault:"text"`
	Verbose   bool   `env:"STOREFRONT_VERBOSE"`
}

// LoadConfig reads the CLI configuration from the environment
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if cfg.TokenFile == "" {
		cfg.TokenFile = defaultTokenFile()
	}
	if cfg.Output == "" {
		cfg.Output = "text"
	}
	return cfg, nil
}

// Validate checks flag values after parsing
func (c *Config) Validate() error {
	switch c.Output {
	case "text", "json":
		return nil
	default:
		return fmt.Errorf("invalid output format %q: must be text or json", c.Output)
	}
}

// LoadToken loads the token from file if not already set
func (c *Config) LoadToken() error {
	if c.Token != "" {
		return nil
	}

	data, err := os.ReadFile(c.TokenFile)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil // No token file is fine
		}
		return err
	}

	c.Token = strings.TrimSpace(string(data))
	return nil
}

// SaveToken saves the token to the token file
func (c *Config) SaveToken(token string) error {
	c.Token = token

	dir := filepath.Dir(c.TokenFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	return os.WriteFile(c.TokenFile, []byte(token), 0600)
}

// ClearToken forgets the saved token
func (c *Config) ClearToken() error {
	c.Token = ""
	if err := os.Remove(c.TokenFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func defaultTokenFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".storefront/token"
	}
	return filepath.Join(home, ".storefront", "token")
}
