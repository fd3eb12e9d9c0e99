package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ramanasai/moodpulse/internal/analytics"
	"github.com/spf13/viper"
)

type StorageConfig struct {
	Path string `mapstructure:"path"` // empty = ~/.local/share/moodpulse/moodpulse.db
}

type PrivacyConfig struct {
	EncryptNotes  bool   `mapstructure:"encrypt_notes"`
	PassphraseEnv string `mapstructure:"passphrase_env"` // name of the env var holding the passphrase
}

type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug|info|warn|error
	Format string `mapstructure:"format"` // console|json
}

type SuggestConfig struct {
	Count int `mapstructure:"count"`
}

type Config struct {
	Timezone string                 `mapstructure:"timezone"` // e.g. "Asia/Kolkata"; empty = host zone
	Theme    string                 `mapstructure:"theme"`
	Storage  StorageConfig          `mapstructure:"storage"`
	Privacy  PrivacyConfig          `mapstructure:"privacy"`
	Log      LogConfig              `mapstructure:"log"`
	Suggest  SuggestConfig          `mapstructure:"suggest"`
	Buckets  analytics.BucketBounds `mapstructure:"buckets"`
	Insights analytics.InsightRules `mapstructure:"insights"`
}

func Default() Config {
	return Config{
		Timezone: "",
		Theme:    "default",
		Privacy: PrivacyConfig{
			EncryptNotes:  false,
			PassphraseEnv: "MOODPULSE_PASSPHRASE",
		},
		Log:      LogConfig{Level: "warn", Format: "console"},
		Suggest:  SuggestConfig{Count: 4},
		Buckets:  analytics.DefaultBounds(),
		Insights: analytics.DefaultInsightRules(),
	}
}

func xdgConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "moodpulse")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// Load reads ~/.config/moodpulse/config.yaml (missing is fine) with
// MOODPULSE_* environment overrides.
func Load() (Config, error) {
	path, err := xdgConfigPath()
	if err != nil {
		return Default(), err
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit path.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetConfigFile(path)
	v.SetEnvPrefix("MOODPULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// defaults
	v.SetDefault("timezone", cfg.Timezone)
	v.SetDefault("theme", cfg.Theme)
	v.SetDefault("storage.path", cfg.Storage.Path)
	v.SetDefault("privacy.encrypt_notes", cfg.Privacy.EncryptNotes)
	v.SetDefault("privacy.passphrase_env", cfg.Privacy.PassphraseEnv)
	v.SetDefault("log.level", cfg.Log.Level)
	v.SetDefault("log.format", cfg.Log.Format)
	v.SetDefault("suggest.count", cfg.Suggest.Count)
	v.SetDefault("buckets.morning_start", cfg.Buckets.MorningStart)
	v.SetDefault("buckets.afternoon_start", cfg.Buckets.AfternoonStart)
	v.SetDefault("buckets.evening_start", cfg.Buckets.EveningStart)
	v.SetDefault("buckets.night_start", cfg.Buckets.NightStart)
	v.SetDefault("insights.min_samples", cfg.Insights.MinSamples)
	v.SetDefault("insights.good_mood_ratio", cfg.Insights.GoodMoodRatio)
	v.SetDefault("insights.max", cfg.Insights.Max)

	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, notFound := err.(viper.ConfigFileNotFoundError); !notFound {
				return cfg, fmt.Errorf("config read: %w", err)
			}
		}
	}
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config unmarshal: %w", err)
	}

	cfg.Timezone = strings.TrimSpace(cfg.Timezone)
	cfg.Log.Level = strings.ToLower(strings.TrimSpace(cfg.Log.Level))
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks the thresholds and that the timezone resolves.
func (c Config) Validate() error {
	if err := c.Buckets.Validate(); err != nil {
		return fmt.Errorf("config buckets: %w", err)
	}
	if err := c.Insights.Validate(); err != nil {
		return fmt.Errorf("config insights: %w", err)
	}
	if c.Suggest.Count < 1 {
		return fmt.Errorf("config suggest.count must be positive, got %d", c.Suggest.Count)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves the configured zone. An empty setting means the host's
// local zone; an unknown name is an error, never a silent UTC fallback.
func (c Config) Location() (*time.Location, error) {
	tz := strings.TrimSpace(c.Timezone)
	if tz == "" {
		return time.Local, nil
	}
	loc, err := analytics.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("config timezone: %w", err)
	}
	return loc, nil
}

// TimezoneName is the IANA name analytics should run in.
func (c Config) TimezoneName() string {
	if tz := strings.TrimSpace(c.Timezone); tz != "" {
		return tz
	}
	return time.Local.String()
}
