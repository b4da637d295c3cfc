package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Assistant AssistantConfig
	Feeds     FeedsConfig
	Terminal  TerminalConfig
	Logs      LogsConfig
}

// AppConfig holds identity shown in the UI.
type AppConfig struct {
	Name    string
	Version string
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// AssistantConfig holds Ollama settings.
type AssistantConfig struct {
	URL            string
	Model          string
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// FeedsConfig holds RSS fetch settings.
type FeedsConfig struct {
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
	UserAgent      string `mapstructure:"user_agent"`
	MaxRedirects   int    `mapstructure:"max_redirects"`
	PageSize       int    `mapstructure:"page_size"`
}

// TerminalConfig holds the embedded terminal settings.
type TerminalConfig struct {
	Shell string
}

// LogsConfig holds log viewer settings.
type LogsConfig struct {
	FetchLimit int    `mapstructure:"fetch_limit"`
	FilePath   string `mapstructure:"file_path"`
}

// Load reads configuration from file and env. Env var overrides use prefix DRYDOCK_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("app.name", "Dry Dock")
	v.SetDefault("app.version", "0.4.0")
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "drydock", "drydock.db"))
	v.SetDefault("assistant.url", "http://localhost:11434")
	v.SetDefault("assistant.model", "gemma3")
	v.SetDefault("assistant.timeout_seconds", 60)
	v.SetDefault("feeds.timeout_seconds", 30)
	v.SetDefault("feeds.user_agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	v.SetDefault("feeds.max_redirects", 10)
	v.SetDefault("feeds.page_size", 200)
	v.SetDefault("terminal.shell", defaultShell())
	v.SetDefault("logs.fetch_limit", 1000)
	v.SetDefault("logs.file_path", filepath.Join(os.Getenv("HOME"), ".local", "share", "drydock", "drydock.log"))

	v.SetConfigType("toml")

	cfgPath := os.Getenv("DRYDOCK_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "drydock"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("DRYDOCK")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if needed.
// Used by the settings modal for non-sensitive preferences.
func Save(cfg Config) error {
	path := os.Getenv("DRYDOCK_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "drydock", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("app.name", cfg.App.Name)
	v.Set("app.version", cfg.App.Version)
	v.Set("database.path", cfg.Database.Path)
	v.Set("assistant.url", cfg.Assistant.URL)
	v.Set("assistant.model", cfg.Assistant.Model)
	v.Set("assistant.timeout_seconds", cfg.Assistant.TimeoutSeconds)
	v.Set("feeds.timeout_seconds", cfg.Feeds.TimeoutSeconds)
	v.Set("feeds.user_agent", cfg.Feeds.UserAgent)
	v.Set("feeds.max_redirects", cfg.Feeds.MaxRedirects)
	v.Set("feeds.page_size", cfg.Feeds.PageSize)
	v.Set("terminal.shell", cfg.Terminal.Shell)
	v.Set("logs.fetch_limit", cfg.Logs.FetchLimit)
	v.Set("logs.file_path", cfg.Logs.FilePath)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultShell() string {
	if sh := os.Getenv("SHELL"); sh != "" {
		return sh
	}
	return "/bin/sh"
}
