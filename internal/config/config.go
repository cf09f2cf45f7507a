package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/ini.v1"
)

const (
	DefaultBaseURL   = "https://api.themoviedb.org/3"
	DefaultLanguage  = "en-US"
	DefaultTimeout   = "10s"
	DefaultDirectory = "/data/plex/Movies"
	DefaultDelay     = "250ms"
)

var (
	// ErrTemplateCreated is returned by Load when no config file existed and a
	// template was written in its place.
	ErrTemplateCreated = errors.New("config template created")

	// ErrNoAPIKey is returned when the config file holds no usable TMDB key.
	ErrNoAPIKey = errors.New("no TMDB API key found")
)

// Config holds all yearstamp configuration
type Config struct {
	TMDB   TMDBConfig   `toml:"TMDB"`
	Rename RenameConfig `toml:"rename"`
}

// TMDBConfig holds the movie database credentials and endpoint
type TMDBConfig struct {
	APIKey   string `toml:"api_key"`
	BaseURL  string `toml:"base_url"`
	Language string `toml:"language"`
	Timeout  string `toml:"timeout"` // Go duration, e.g. "10s"
}

// RenameConfig holds renaming defaults
type RenameConfig struct {
	Directory string `toml:"directory"`
	Delay     string `toml:"delay"` // pause between lookups, e.g. "250ms"
}

// DefaultConfig returns a config with sensible defaults and no API key
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			APIKey:   "",
			BaseURL:  DefaultBaseURL,
			Language: DefaultLanguage,
			Timeout:  DefaultTimeout,
		},
		Rename: RenameConfig{
			Directory: DefaultDirectory,
			Delay:     DefaultDelay,
		},
	}
}

// ConfigPath returns the path to the config file
func ConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}

	return filepath.Join(configDir, "yearstamp", "config.toml"), nil
}

// ResolvePath returns override when set, otherwise the default config path
func ResolvePath(override string) (string, error) {
	if strings.TrimSpace(override) != "" {
		return override, nil
	}
	return ConfigPath()
}

// Load reads the config file at path.
//
// A missing file is replaced by a template and ErrTemplateCreated is returned;
// the caller is expected to stop and ask the user to fill in the key. An
// existing file is read as TOML, then as INI, then as a bare API key.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		if err := Save(path, DefaultConfig()); err != nil {
			return nil, fmt.Errorf("failed to create default config: %w", err)
		}
		return nil, ErrTemplateCreated
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes config file contents. Values not present keep their defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.Decode(string(data), cfg); err == nil {
		return cfg, cfg.requireKey()
	}

	cfg = DefaultConfig()
	if ok := parseINI(data, cfg); ok {
		return cfg, cfg.requireKey()
	}

	cfg = DefaultConfig()
	cfg.TMDB.APIKey = parseRawKey(data)
	return cfg, cfg.requireKey()
}

// parseINI reads the [TMDB] section of a configparser-style file.
func parseINI(data []byte, cfg *Config) bool {
	file, err := ini.LoadSources(ini.LoadOptions{Insensitive: true}, data)
	if err != nil {
		return false
	}
	section, err := file.GetSection("tmdb")
	if err != nil {
		return false
	}

	cfg.TMDB.APIKey = section.Key("api_key").String()
	if v := section.Key("base_url").String(); v != "" {
		cfg.TMDB.BaseURL = v
	}
	if v := section.Key("language").String(); v != "" {
		cfg.TMDB.Language = v
	}
	if v := section.Key("timeout").String(); v != "" {
		cfg.TMDB.Timeout = v
	}
	if rename, err := file.GetSection("rename"); err == nil {
		if v := rename.Key("directory").String(); v != "" {
			cfg.Rename.Directory = v
		}
		if v := rename.Key("delay").String(); v != "" {
			cfg.Rename.Delay = v
		}
	}
	return true
}

// parseRawKey treats a single-line file as the key itself.
func parseRawKey(data []byte) string {
	key := string(bytes.TrimSpace(data))
	if key == "" || strings.ContainsAny(key, "\n=[") {
		return ""
	}
	return key
}

func (c *Config) requireKey() error {
	c.TMDB.APIKey = strings.TrimSpace(c.TMDB.APIKey)
	if c.TMDB.APIKey == "" {
		return ErrNoAPIKey
	}
	return nil
}

// Save writes the config to disk, creating the parent directory
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(cfg); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks if the config is usable
func (c *Config) Validate() error {
	if strings.TrimSpace(c.TMDB.BaseURL) == "" {
		return fmt.Errorf("TMDB base_url must not be empty")
	}

	if _, err := c.RequestTimeout(); err != nil {
		return err
	}

	if _, err := c.LookupDelay(); err != nil {
		return err
	}

	return nil
}

// RequestTimeout returns the parsed TMDB request timeout
func (c *Config) RequestTimeout() (time.Duration, error) {
	return parseDuration("TMDB timeout", c.TMDB.Timeout, DefaultTimeout)
}

// LookupDelay returns the parsed pause between lookups
func (c *Config) LookupDelay() (time.Duration, error) {
	return parseDuration("rename delay", c.Rename.Delay, DefaultDelay)
}

func parseDuration(name, value, fallback string) (time.Duration, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		value = fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, value, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s %q: must not be negative", name, value)
	}
	return d, nil
}

// MaskedAPIKey returns the key with all but the last four characters hidden
func (c *Config) MaskedAPIKey() string {
	key := c.TMDB.APIKey
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return strings.Repeat("*", len(key)-4) + key[len(key)-4:]
}
