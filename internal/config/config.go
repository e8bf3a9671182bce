// Package config loads CLI settings from defaults, a TOML file and the
// environment, in that order of precedence. Command-line flags are applied
// on top by the caller.
package config

import (
	_ "embed"
	stderrors "errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/quibraries/quibraries/pkg/errors"
	"github.com/quibraries/quibraries/pkg/integrations"
	"github.com/quibraries/quibraries/pkg/integrations/librariesio"
)

//go:embed sample_config.toml
var sampleConfig string

// Output formats understood by the CLI.
const (
	OutputJSON  = "json"
	OutputTable = "table"
)

// Outputs lists the valid values of Config.Output.
var Outputs = []string{OutputJSON, OutputTable}

// Config holds every setting the CLI needs to build a client.
type Config struct {
	APIKey  string        `toml:"api_key"  env:"LIBRARIES_API_KEY"`
	BaseURL string        `toml:"base_url" env:"QUIBRARIES_BASE_URL"`
	Timeout time.Duration `toml:"timeout"  env:"QUIBRARIES_TIMEOUT"`
	PerPage int           `toml:"per_page" env:"QUIBRARIES_PER_PAGE"`
	Output  string        `toml:"output"   env:"QUIBRARIES_OUTPUT"`
}

// Default returns the built-in settings. APIKey is always empty.
func Default() Config {
	return Config{
		BaseURL: librariesio.DefaultBaseURL,
		Timeout: integrations.DefaultTimeout,
		Output:  OutputJSON,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/quibraries/config.toml, falling back
// to the platform's user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeConfiguration, err, "locate config directory")
	}
	return filepath.Join(dir, "quibraries", "config.toml"), nil
}

// Load builds a Config from defaults, the file at path (DefaultPath when
// empty) and the environment. A missing file is not an error.
// It returns the resolved path and whether the file existed.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolved, err := resolvePath(path)
	if err != nil {
		return nil, "", false, err
	}

	exists := true
	if _, err := toml.DecodeFile(resolved, &cfg); err != nil {
		if !stderrors.Is(err, fs.ErrNotExist) {
			return nil, "", false, errors.Wrap(errors.ErrCodeConfiguration, err, "parse config %s", resolved)
		}
		exists = false
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, "", false, errors.Wrap(errors.ErrCodeConfiguration, err, "read environment")
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}
	return &cfg, resolved, exists, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return DefaultPath()
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", errors.Wrap(errors.ErrCodeConfiguration, err, "resolve home directory")
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Clean(path), nil
}

func (c *Config) normalize() {
	c.APIKey = strings.TrimSpace(c.APIKey)
	c.BaseURL = strings.TrimSuffix(strings.TrimSpace(c.BaseURL), "/")
	c.Output = strings.ToLower(strings.TrimSpace(c.Output))
	if c.BaseURL == "" {
		c.BaseURL = librariesio.DefaultBaseURL
	}
	if c.Output == "" {
		c.Output = OutputJSON
	}
}

// Validate checks every field except APIKey, which is only required by
// commands that talk to the API.
func (c *Config) Validate() error {
	if err := errors.ValidateURL(c.BaseURL); err != nil {
		return err
	}
	if c.Timeout < 0 {
		return errors.New(errors.ErrCodeConfiguration, "timeout must not be negative, got %s", c.Timeout)
	}
	if c.PerPage < 0 || c.PerPage > librariesio.MaxPerPage {
		return errors.New(errors.ErrCodeConfiguration, "per_page must be between 1 and %d, got %d", librariesio.MaxPerPage, c.PerPage)
	}
	if !slices.Contains(Outputs, c.Output) {
		return errors.New(errors.ErrCodeConfiguration, "output must be one of %s, got %q", strings.Join(Outputs, ", "), c.Output)
	}
	return nil
}

// Options returns the client options matching c.
func (c *Config) Options() []librariesio.Option {
	return []librariesio.Option{
		librariesio.WithBaseURL(c.BaseURL),
		librariesio.WithTimeout(c.Timeout),
	}
}

// Sample returns a commented config file with the default settings.
func Sample() string { return sampleConfig }

// WriteSample writes Sample to path, creating parent directories.
// An existing file is only replaced when force is set.
func WriteSample(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return errors.New(errors.ErrCodeConfiguration, "%s already exists (use --force to overwrite)", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "create config directory")
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o600); err != nil {
		return errors.Wrap(errors.ErrCodeConfiguration, err, "write config")
	}
	return nil
}
