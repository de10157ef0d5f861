// Package config loads the application config file. Everything the UI
// rearranges at runtime (window and column layout) lives in the database
// instead.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/habitrack/internal/constants"
	"github.com/julianstephens/habitrack/internal/utils"
)

// RemindersConfig controls the periodic check-in reminder
type RemindersConfig struct {
	Enabled bool   `mapstructure:"enabled" yaml:"enabled"`
	Hours   []int  `mapstructure:"hours" yaml:"hours"`
	Message string `mapstructure:"message" yaml:"message"`
}

// Config is the top-level application configuration
type Config struct {
	// Database is a SQLite path, a PostgreSQL URL without a password, or
	// "keyring".
	Database  string          `mapstructure:"database" yaml:"database"`
	Timezone  string          `mapstructure:"timezone" yaml:"timezone"`
	Debug     bool            `mapstructure:"debug" yaml:"debug"`
	Reminders RemindersConfig `mapstructure:"reminders" yaml:"reminders"`
}

// Default returns the configuration used when no file exists
func Default() *Config {
	return &Config{
		Database: constants.DefaultDBPath,
		Timezone: constants.DefaultTimezone,
		Reminders: RemindersConfig{
			Enabled: true,
			Hours:   append([]int(nil), constants.DefaultReminderHours...),
			Message: constants.ReminderMessage,
		},
	}
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	def := Default()
	v.SetDefault(constants.ConfigDatabase, def.Database)
	v.SetDefault(constants.ConfigTimezone, def.Timezone)
	v.SetDefault(constants.ConfigDebug, def.Debug)
	v.SetDefault(constants.ConfigRemindersEnabled, def.Reminders.Enabled)
	v.SetDefault(constants.ConfigRemindersHours, def.Reminders.Hours)
	v.SetDefault(constants.ConfigRemindersMessage, def.Reminders.Message)

	// HABITRACK_DATABASE, HABITRACK_REMINDERS_ENABLED, ...
	v.SetEnvPrefix(constants.ConfigEnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the YAML file at path. A missing file is not an error; defaults
// and HABITRACK_* environment variables still apply.
func Load(path string) (*Config, error) {
	path, err := utils.ExpandHome(path)
	if err != nil {
		return nil, err
	}

	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	// Zero value: mapstructure merges into existing slices.
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML to path, creating parent directories if needed
func Save(path string, cfg *Config) error {
	path, err := utils.ExpandHome(path)
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.Set(constants.ConfigDatabase, cfg.Database)
	v.Set(constants.ConfigTimezone, cfg.Timezone)
	v.Set(constants.ConfigDebug, cfg.Debug)
	v.Set(constants.ConfigRemindersEnabled, cfg.Reminders.Enabled)
	v.Set(constants.ConfigRemindersHours, cfg.Reminders.Hours)
	v.Set(constants.ConfigRemindersMessage, cfg.Reminders.Message)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks the timezone and reminder hours
func (c *Config) Validate() error {
	if _, err := utils.LoadLocation(c.Timezone); err != nil {
		return err
	}
	for _, h := range c.Reminders.Hours {
		if h < 0 || h > 23 {
			return fmt.Errorf("reminder hour %d out of range 0-23", h)
		}
	}
	return nil
}

// Location returns the configured timezone
func (c *Config) Location() *time.Location {
	loc, err := utils.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
