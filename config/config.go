package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the complete calculator configuration.
type Config struct {
	Storage  StorageConfig  `json:"storage" yaml:"storage"`
	Report   ReportConfig   `json:"report" yaml:"report"`
	Telegram TelegramConfig `json:"telegram" yaml:"telegram"`
}

// StorageConfig selects and parameterizes the key-value backend.
type StorageConfig struct {
	Type string `json:"type" yaml:"type"` // "memory", "file", "sqlite" or "redis"
	Path string `json:"path,omitempty" yaml:"path,omitempty"`

	RedisAddr     string `json:"redis_addr,omitempty" yaml:"redis_addr,omitempty"`
	RedisPassword string `json:"redis_password,omitempty" yaml:"redis_password,omitempty"`
	RedisDB       int    `json:"redis_db,omitempty" yaml:"redis_db,omitempty"`
}

// ReportConfig carries the locale knobs for the window summaries.
type ReportConfig struct {
	WeekStart  string `json:"week_start" yaml:"week_start"`
	TitleToday string `json:"title_today,omitempty" yaml:"title_today,omitempty"`
	TitleWeek  string `json:"title_week,omitempty" yaml:"title_week,omitempty"`
	TitleMonth string `json:"title_month,omitempty" yaml:"title_month,omitempty"`
}

// TelegramConfig enables report publication when both fields are set. The
// token can also come from the TELEGRAM_BOT_TOKEN environment variable.
type TelegramConfig struct {
	Token  string `json:"token,omitempty" yaml:"token,omitempty"`
	ChatID string `json:"chat_id,omitempty" yaml:"chat_id,omitempty"`
}

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// WeekStartDay resolves the configured week start to a time.Weekday.
func (r ReportConfig) WeekStartDay() (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(r.WeekStart)]
	if !ok {
		return time.Sunday, fmt.Errorf("unknown week_start: %q", r.WeekStart)
	}
	return d, nil
}

// LoadFromFile loads configuration from a file (YAML or JSON).
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}

	// Try YAML first, fall back to JSON
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		err = json.Unmarshal(data, cfg)
		if err != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	switch c.Storage.Type {
	case "memory":
	case "file", "sqlite":
		if c.Storage.Path == "" {
			return fmt.Errorf("storage.path required for %s storage", c.Storage.Type)
		}
	case "redis":
		if c.Storage.RedisAddr == "" {
			return fmt.Errorf("storage.redis_addr required for redis storage")
		}
	default:
		return fmt.Errorf("storage.type must be 'memory', 'file', 'sqlite' or 'redis'")
	}

	if _, err := c.Report.WeekStartDay(); err != nil {
		return err
	}

	if (c.Telegram.Token == "") != (c.Telegram.ChatID == "") {
		return fmt.Errorf("telegram.token and telegram.chat_id must be set together")
	}
	return nil
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Storage: StorageConfig{
			Type: "file",
			Path: "./autocal.json",
		},
		Report: ReportConfig{
			WeekStart:  "sunday",
			TitleToday: "Hôm nay",
			TitleWeek:  "Tuần này",
			TitleMonth: "Tháng này",
		},
	}
}
