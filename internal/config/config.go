package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	"github.com/julianstephens/daychain/internal/constants"
	"github.com/julianstephens/daychain/internal/reminder"
)

type ReminderConfig struct {
	Interval int  `mapstructure:"interval"` // minutes
	Enabled  bool `mapstructure:"enabled"`
}

type Config struct {
	PollInterval time.Duration `mapstructure:"poll_interval"`
	Reminders    struct {
		Hydration ReminderConfig `mapstructure:"hydration"`
		Movement  ReminderConfig `mapstructure:"movement"`
	} `mapstructure:"reminders"`
	Notifications struct {
		Enabled bool `mapstructure:"enabled"`
		Sound   bool `mapstructure:"sound"`
	} `mapstructure:"notifications"`
	Storage struct {
		DSN string `mapstructure:"dsn"`
	} `mapstructure:"storage"`
	History struct {
		Days int `mapstructure:"days"`
	} `mapstructure:"history"`
}

func Default() Config {
	var cfg Config
	cfg.PollInterval = constants.DefaultPollInterval
	cfg.Reminders.Hydration = ReminderConfig{Interval: constants.DefaultHydrationIntervalMin, Enabled: true}
	cfg.Reminders.Movement = ReminderConfig{Interval: constants.DefaultMovementIntervalMin, Enabled: true}
	cfg.Notifications.Enabled = constants.DefaultNotifyEnable
	cfg.Notifications.Sound = constants.DefaultNotifySound
	cfg.History.Days = constants.DefaultHistoryDays
	return cfg
}

// Path returns the settings file location inside configDir.
func Path(configDir string) string {
	return filepath.Join(configDir, constants.ConfigFileName)
}

func newViper(path string, cfg Config) *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)

	v.SetDefault("poll_interval", cfg.PollInterval.String())
	v.SetDefault("reminders.hydration.interval", cfg.Reminders.Hydration.Interval)
	v.SetDefault("reminders.hydration.enabled", cfg.Reminders.Hydration.Enabled)
	v.SetDefault("reminders.movement.interval", cfg.Reminders.Movement.Interval)
	v.SetDefault("reminders.movement.enabled", cfg.Reminders.Movement.Enabled)
	v.SetDefault("notifications.enabled", cfg.Notifications.Enabled)
	v.SetDefault("notifications.sound", cfg.Notifications.Sound)
	v.SetDefault("storage.dsn", cfg.Storage.DSN)
	v.SetDefault("history.days", cfg.History.Days)
	return v
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	v := newViper(path, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, statErr := os.Stat(path); statErr == nil {
			return cfg, fmt.Errorf("config read: %w", err)
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = constants.DefaultPollInterval
	}
	if cfg.History.Days <= 0 {
		cfg.History.Days = constants.DefaultHistoryDays
	}
	return cfg, nil
}

// WriteDefault creates path with the default settings unless it already exists.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return false, fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := newViper(path, Default()).WriteConfigAs(path); err != nil {
		return false, fmt.Errorf("failed to write config: %w", err)
	}
	return true, nil
}

// ReminderDefaults returns the reminder set to seed when none is stored.
func (c Config) ReminderDefaults() reminder.Set {
	return reminder.Set{
		constants.ReminderHydration: {IntervalMinutes: c.Reminders.Hydration.Interval, Enabled: c.Reminders.Hydration.Enabled},
		constants.ReminderMovement:  {IntervalMinutes: c.Reminders.Movement.Interval, Enabled: c.Reminders.Movement.Enabled},
	}
}
