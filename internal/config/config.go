package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// SessionCacheDir tells the cache to create a throwaway directory under the
// system temp dir. It is the value used when cache.dir is not configured.
const SessionCacheDir = ":session:"

// Config holds all application configuration
type Config struct {
	API     APIConfig     `mapstructure:"api" yaml:"api"`
	Browse  BrowseConfig  `mapstructure:"browse" yaml:"browse"`
	Cache   CacheConfig   `mapstructure:"cache" yaml:"cache"`
	Viewer  ViewerConfig  `mapstructure:"viewer" yaml:"viewer"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// APIConfig holds catalog API configuration
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url" yaml:"base_url"`
	Timeout time.Duration `mapstructure:"timeout" yaml:"timeout"` // Per-request budget
}

// BrowseConfig holds list browsing configuration
type BrowseConfig struct {
	PageSize       int           `mapstructure:"page_size" yaml:"page_size"`
	SearchDebounce time.Duration `mapstructure:"search_debounce" yaml:"search_debounce"`
}

// CacheConfig holds query cache configuration
type CacheConfig struct {
	Dir           string `mapstructure:"dir" yaml:"dir"`                       // "" keeps everything in memory
	MemoryEntries int    `mapstructure:"memory_entries" yaml:"memory_entries"` // 0 = unbounded
}

// ViewerConfig holds transformation viewer configuration
type ViewerConfig struct {
	Interval time.Duration `mapstructure:"interval" yaml:"interval"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file" yaml:"file"`
	Level string `mapstructure:"level" yaml:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "https://dragonball-api.com/api",
			Timeout: 15 * time.Second,
		},
		Browse: BrowseConfig{
			PageSize:       12,
			SearchDebounce: 300 * time.Millisecond,
		},
		Cache: CacheConfig{
			Dir: SessionCacheDir,
		},
		Viewer: ViewerConfig{
			Interval: 2 * time.Second,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "zenkai", "zenkai.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "zenkai", "zenkai.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "zenkai")
	default:
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, "zenkai")
		}
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "zenkai")
	}
}

// setDefaults registers every key so environment overrides reach Unmarshal.
// cache.dir is left out on purpose: an explicit empty value means memory only.
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("api.base_url", cfg.API.BaseURL)
	v.SetDefault("api.timeout", cfg.API.Timeout)
	v.SetDefault("browse.page_size", cfg.Browse.PageSize)
	v.SetDefault("browse.search_debounce", cfg.Browse.SearchDebounce)
	v.SetDefault("cache.memory_entries", cfg.Cache.MemoryEntries)
	v.SetDefault("viewer.interval", cfg.Viewer.Interval)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	_ = v.BindEnv("cache.dir")
}

// Load reads configuration from file, environment and any flags already
// bound to v. A nil v uses a fresh viper instance.
func Load(v *viper.Viper) (*Config, error) {
	if v == nil {
		v = viper.New()
	}
	cfg := DefaultConfig()
	setDefaults(v, cfg)

	if v.ConfigFileUsed() == "" {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides
	v.SetEnvPrefix("ZENKAI")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}
	if v.IsSet("cache.dir") {
		cfg.Cache.Dir = v.GetString("cache.dir")
	} else {
		cfg.Cache.Dir = SessionCacheDir
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the application cannot run with
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("api.base_url must not be empty")
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.API.Timeout)
	}
	if c.Browse.PageSize < 1 {
		return fmt.Errorf("browse.page_size must be at least 1, got %d", c.Browse.PageSize)
	}
	if c.Browse.SearchDebounce < 0 {
		return fmt.Errorf("browse.search_debounce must not be negative, got %s", c.Browse.SearchDebounce)
	}
	if c.Cache.MemoryEntries < 0 {
		return fmt.Errorf("cache.memory_entries must not be negative, got %d", c.Cache.MemoryEntries)
	}
	if c.Viewer.Interval <= 0 {
		return fmt.Errorf("viewer.interval must be positive, got %s", c.Viewer.Interval)
	}
	return nil
}
