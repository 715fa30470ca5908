package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all momentum configuration.
type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Telegram  TelegramConfig
	Log       LogConfig
	Scheduler SchedulerConfig
}

type ServerConfig struct {
	Bind string
	Port int
}

type DatabaseConfig struct {
	Path string
}

type TelegramConfig struct {
	Token         string // bot token, required for serve
	WebhookSecret string // path secret registered via setWebhook
}

type LogConfig struct {
	Dir   string // empty: stderr only, no file logging
	Debug bool
}

type SchedulerConfig struct {
	FastInterval time.Duration // habit + mood loops
	SlowInterval time.Duration // goal loop
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38080,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Scheduler: SchedulerConfig{
			FastInterval: time.Minute,
			SlowInterval: time.Hour,
		},
	}
}

// FromEnv returns the default config with environment overrides applied.
// Call godotenv.Load beforehand to pick up a .env file.
func FromEnv() Config {
	cfg := Default()

	if v := os.Getenv("MOMENTUM_BIND"); v != "" {
		cfg.Server.Bind = v
	}
	if v := os.Getenv("MOMENTUM_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("MOMENTUM_DB"); v != "" {
		cfg.Database.Path = v
	}

	cfg.Telegram.Token = os.Getenv("TELEGRAM_BOT_TOKEN")
	cfg.Telegram.WebhookSecret = os.Getenv("MOMENTUM_WEBHOOK_SECRET")

	cfg.Log.Dir = os.Getenv("MOMENTUM_LOG_DIR")
	if v := os.Getenv("MOMENTUM_DEBUG"); v == "1" || v == "true" || v == "TRUE" {
		cfg.Log.Debug = true
	}

	if v := os.Getenv("MOMENTUM_FAST_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Scheduler.FastInterval = d
		}
	}
	if v := os.Getenv("MOMENTUM_SLOW_INTERVAL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.Scheduler.SlowInterval = d
		}
	}

	return cfg
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
