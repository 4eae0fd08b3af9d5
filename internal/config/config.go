package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Page PageConfig
	Log  LogConfig
	UI   UIConfig
}

// PageConfig selects the widget markup.
type PageConfig struct {
	Path string // empty uses the bundled page
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level string
	File  string // "stderr" writes to the terminal
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Title     string
	Accent    string
	AltScreen bool `mapstructure:"alt_screen"`
}

// Load reads configuration from file and env. Env var overrides use
// prefix STARRATE_. An explicit path wins over STARRATE_CONFIG; a missing
// default config file is not an error.
func Load(path string) (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("page.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", DefaultLogFile())
	v.SetDefault("ui.title", "")
	v.SetDefault("ui.accent", "pink")
	v.SetDefault("ui.alt_screen", true)

	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("STARRATE_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "starrate"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("STARRATE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// DefaultLogFile keeps diagnostics out of the terminal the program draws
// on. It lives under $XDG_STATE_HOME, or ~/.local/state when unset.
func DefaultLogFile() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(dir, "starrate", "starrate.log")
}

// Validate rejects settings the application cannot honour.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.Log.Level)) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level %q: want debug, info, warn or error", c.Log.Level)
	}
	return nil
}
