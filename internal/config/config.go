package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"prodsearch/internal/eventbus"
)

//go:embed config.toml.sample
var configTemplate string

const (
	DefaultBaseURL        = "http://localhost:3333"
	DefaultTimeout        = 10 * time.Second
	DefaultDebounce       = 500 * time.Millisecond
	DefaultMaxSuggestions = 8
)

// Config represents the application configuration
type Config struct {
	Catalog CatalogSettings `toml:"catalog"`
	Search  SearchSettings  `toml:"search"`
	UI      UISettings      `toml:"ui"`
	Log     LogSettings     `toml:"log"`
}

// CatalogSettings points the client at a catalog API
type CatalogSettings struct {
	BaseURL string   `toml:"base_url"`
	Timeout Duration `toml:"timeout"`
}

// SearchSettings tunes the search-as-you-type controller
type SearchSettings struct {
	Debounce     Duration `toml:"debounce"`
	FetchOnEmpty bool     `toml:"fetch_on_empty"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	AltScreen      bool   `toml:"alt_screen"`
	Locale         string `toml:"locale"`
	Currency       string `toml:"currency"`
	Highlight      bool   `toml:"highlight"`
	MaxSuggestions int    `toml:"max_suggestions"`
}

// LogSettings controls the log file the TUI writes to
type LogSettings struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// Duration is a time.Duration written as "500ms" in TOML
type Duration struct {
	time.Duration
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// NewConfigService creates a config service for path, or for the
// default location when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

// DefaultPath is config.toml under the user's config directory.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "prodsearch", "config.toml")
}

// DefaultLogFile is prodsearch.log under the user's cache directory.
func DefaultLogFile() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "prodsearch", "prodsearch.log")
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration from file. A missing file yields the
// defaults.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else if err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:    cs.filePath,
			BaseURL: cfg.Catalog.BaseURL,
		})
	}
	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. The returned
// error satisfies os.IsNotExist when the file is missing.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Parse decodes TOML on top of DefaultConfig, so omitted keys keep their
// defaults.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects values the client cannot run with.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog.base_url must not be empty")
	}
	if !strings.HasPrefix(c.Catalog.BaseURL, "http://") && !strings.HasPrefix(c.Catalog.BaseURL, "https://") {
		return fmt.Errorf("catalog.base_url must be an http(s) URL, got %q", c.Catalog.BaseURL)
	}
	if c.Catalog.Timeout.Duration <= 0 {
		return fmt.Errorf("catalog.timeout must be positive")
	}
	if c.Search.Debounce.Duration < 0 {
		return fmt.Errorf("search.debounce must not be negative")
	}
	if c.UI.MaxSuggestions < 0 {
		return fmt.Errorf("ui.max_suggestions must not be negative")
	}
	switch strings.ToLower(c.Log.Level) {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q is not one of debug, info, warn, error", c.Log.Level)
	}
	return nil
}

// WriteTemplate writes the commented sample configuration to path. It
// refuses to overwrite an existing file.
func WriteTemplate(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists: %s", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogSettings{
			BaseURL: DefaultBaseURL,
			Timeout: Duration{DefaultTimeout},
		},
		Search: SearchSettings{
			Debounce:     Duration{DefaultDebounce},
			FetchOnEmpty: true,
		},
		UI: UISettings{
			AltScreen:      true,
			Locale:         "en-US",
			Currency:       "USD",
			Highlight:      true,
			MaxSuggestions: DefaultMaxSuggestions,
		},
		Log: LogSettings{
			File:  DefaultLogFile(),
			Level: "info",
		},
	}
}
