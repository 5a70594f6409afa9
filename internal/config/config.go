// Package config handles configuration loading from files, defaults, and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the application configuration.
type Config struct {
	Schedule ScheduleConfig `toml:"schedule"`
	Chat     ChatConfig     `toml:"chat"`
	LLM      LLMConfig      `toml:"llm"`
	Storage  StorageConfig  `toml:"storage"`
}

// ScheduleConfig holds slot-search settings.
type ScheduleConfig struct {
	BlockMinutes           int `toml:"block_minutes"`            // candidate start granularity
	DefaultDurationMinutes int `toml:"default_duration_minutes"` // slot length when unspecified
	MeetingBufferMinutes   int `toml:"meeting_buffer_minutes"`   // rest-task clearance around meetings
	HorizonHours           int `toml:"horizon_hours"`            // forward search window
	EventWindow            int `toml:"event_window"`             // recent entries consulted per request
}

// ChatConfig holds defaults for the chat flow.
type ChatConfig struct {
	AutoAdd         bool   `toml:"auto_add"`         // create confident tasks without asking
	AutoSchedule    bool   `toml:"auto_schedule"`    // place created tasks on the calendar
	DefaultMode     string `toml:"default_mode"`     // e.g., "work"
	DefaultPriority string `toml:"default_priority"` // "low", "medium", "high"
}

// LLMConfig holds LLM provider settings.
type LLMConfig struct {
	Provider string `toml:"provider"` // "ollama", "lmstudio", or "" to disable coaching
	Model    string `toml:"model"`    // e.g., "llama3"
	BaseURL  string `toml:"base_url"` // e.g., "http://localhost:11434"
}

// StorageConfig holds database settings.
type StorageConfig struct {
	DBPath string `toml:"db_path"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Schedule: ScheduleConfig{
			BlockMinutes:           15,
			DefaultDurationMinutes: 30,
			MeetingBufferMinutes:   20,
			HorizonHours:           12,
			EventWindow:            80,
		},
		Chat: ChatConfig{
			AutoAdd:         true,
			AutoSchedule:    true,
			DefaultMode:     "work",
			DefaultPriority: "medium",
		},
		LLM: LLMConfig{
			Provider: "ollama",
			Model:    "llama3",
			BaseURL:  "http://localhost:11434",
		},
		Storage: StorageConfig{
			DBPath: defaultDBPath(),
		},
	}
}

// defaultDBPath returns the default database path.
func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "moodplan.db"
	}
	return filepath.Join(home, ".local", "share", "moodplan", "moodplan.db")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.toml"
	}
	return filepath.Join(home, ".config", "moodplan", "config.toml")
}

// Load loads configuration from the default path, merging with defaults and env vars.
func Load() (*Config, error) {
	return LoadFrom(DefaultConfigPath())
}

// LoadFrom loads configuration from the specified path.
// It starts with defaults, overlays file config if it exists, then applies env overrides.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	if err := loadFromFile(path, cfg); err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	cfg.Storage.DBPath = expandPath(cfg.Storage.DBPath)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadFromFile loads config from a file if it exists.
func loadFromFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File doesn't exist, use defaults
		}
		return fmt.Errorf("reading config file: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parsing config file: %w", err)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides to the config.
// Environment variables take precedence over file config.
func applyEnvOverrides(cfg *Config) {
	setInt := func(key string, dst *int) {
		if v := os.Getenv(key); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				*dst = n
			}
		}
	}

	setInt("MOODPLAN_BLOCK_MINUTES", &cfg.Schedule.BlockMinutes)
	setInt("MOODPLAN_DEFAULT_DURATION", &cfg.Schedule.DefaultDurationMinutes)
	setInt("MOODPLAN_MEETING_BUFFER", &cfg.Schedule.MeetingBufferMinutes)
	setInt("MOODPLAN_HORIZON_HOURS", &cfg.Schedule.HorizonHours)
	setInt("MOODPLAN_EVENT_WINDOW", &cfg.Schedule.EventWindow)

	if v := os.Getenv("MOODPLAN_LLM_PROVIDER"); v != "" {
		cfg.LLM.Provider = v
	}
	if v := os.Getenv("MOODPLAN_LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("MOODPLAN_LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}

	if v := os.Getenv("MOODPLAN_DB_PATH"); v != "" {
		cfg.Storage.DBPath = v
	}

	if v := os.Getenv("MOODPLAN_DEFAULT_MODE"); v != "" {
		cfg.Chat.DefaultMode = v
	}
	if v := os.Getenv("MOODPLAN_DEFAULT_PRIORITY"); v != "" {
		cfg.Chat.DefaultPriority = v
	}
}

// expandPath expands ~ to the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

var validPriorities = map[string]bool{"low": true, "medium": true, "high": true}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Schedule.BlockMinutes <= 0 || c.Schedule.BlockMinutes > 60 {
		return fmt.Errorf("block_minutes must be in (0, 60], got %d", c.Schedule.BlockMinutes)
	}
	if 60%c.Schedule.BlockMinutes != 0 {
		return fmt.Errorf("block_minutes must divide 60, got %d", c.Schedule.BlockMinutes)
	}
	if c.Schedule.DefaultDurationMinutes <= 0 {
		return errors.New("default_duration_minutes must be positive")
	}
	if c.Schedule.MeetingBufferMinutes < 0 {
		return errors.New("meeting_buffer_minutes cannot be negative")
	}
	if c.Schedule.HorizonHours <= 0 {
		return errors.New("horizon_hours must be positive")
	}
	if c.Schedule.EventWindow <= 0 {
		return errors.New("event_window must be positive")
	}
	if !validPriorities[strings.ToLower(c.Chat.DefaultPriority)] {
		return fmt.Errorf("invalid default_priority: %s", c.Chat.DefaultPriority)
	}
	if c.Storage.DBPath == "" {
		return errors.New("db_path must be set")
	}
	return nil
}

// Save writes the configuration to the default path.
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigPath())
}

// SaveTo writes the configuration to the specified path.
func (c *Config) SaveTo(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := toml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
