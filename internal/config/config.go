package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultSecret = "dev-secret-change-me"

// Config describes all runtime settings for the server.
//
// Loaded once in main, validated, then passed down explicitly.
// Postgres and Redis are optional: an empty address disables them.
type Config struct {
	Env string // dev|stage|prod

	Log struct {
		Format string // text|json
		Level  string // debug|info|warn|error
	}

	HTTP struct {
		Addr              string
		ReadHeaderTimeout time.Duration
		ReadTimeout       time.Duration
		WriteTimeout      time.Duration
		IdleTimeout       time.Duration
		ShutdownTimeout   time.Duration
	}

	Postgres struct {
		URL           string
		RunMigrations bool
		MigrationsDir string
	}

	Redis struct {
		Addr        string
		DB          int
		SnapshotKey string
		SnapshotTTL time.Duration
	}

	Auth struct {
		Secret   string
		TokenTTL time.Duration
	}

	Feed struct {
		PingInterval time.Duration
		Buffer       int
	}
}

func LoadFromEnv() (Config, error) {
	var c Config

	c.Env = envString("APP_ENV", "dev")
	c.Log.Format = envString("LOG_FORMAT", "text")
	c.Log.Level = strings.ToLower(envString("LOG_LEVEL", "info"))

	port := envString("PORT", "8080")
	c.HTTP.Addr = envString("HTTP_ADDR", ":"+port)
	c.HTTP.ReadHeaderTimeout = envDuration("HTTP_READ_HEADER_TIMEOUT", 5*time.Second)
	c.HTTP.ReadTimeout = envDuration("HTTP_READ_TIMEOUT", 0)
	c.HTTP.WriteTimeout = envDuration("HTTP_WRITE_TIMEOUT", 0)
	c.HTTP.IdleTimeout = envDuration("HTTP_IDLE_TIMEOUT", 60*time.Second)
	c.HTTP.ShutdownTimeout = envDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second)

	c.Postgres.URL = envString("DATABASE_URL", "")
	c.Postgres.RunMigrations = envBool("RUN_MIGRATIONS", false)
	c.Postgres.MigrationsDir = envString("MIGRATIONS_DIR", "./db/migrations")

	c.Redis.Addr = envString("REDIS_ADDR", "")
	c.Redis.DB = envInt("REDIS_DB", 0)
	c.Redis.SnapshotKey = envString("SNAPSHOT_KEY", "scoreboard:snapshot")
	c.Redis.SnapshotTTL = envDuration("SNAPSHOT_TTL", 0)

	c.Auth.Secret = envString("JWT_SECRET", defaultSecret)
	c.Auth.TokenTTL = envDuration("JWT_TTL", 24*time.Hour)

	c.Feed.PingInterval = envDuration("FEED_PING_INTERVAL", 25*time.Second)
	c.Feed.Buffer = envInt("FEED_BUFFER", 16)

	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c Config) Validate() error {
	if c.HTTP.Addr == "" {
		return errors.New("HTTP addr is empty")
	}
	if c.Auth.Secret == "" {
		return errors.New("JWT_SECRET is empty")
	}
	if c.Env != "dev" && c.Auth.Secret == defaultSecret {
		return fmt.Errorf("refuse to run with default JWT_SECRET in %s", c.Env)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("unsupported LOG_FORMAT=%q (want text|json)", c.Log.Format)
	}
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	if c.Postgres.RunMigrations && c.Postgres.URL == "" {
		return errors.New("RUN_MIGRATIONS requires DATABASE_URL")
	}
	if c.Redis.Addr != "" && c.Redis.SnapshotKey == "" {
		return errors.New("SNAPSHOT_KEY is empty")
	}
	if c.Feed.Buffer <= 0 {
		return fmt.Errorf("FEED_BUFFER must be positive, got %d", c.Feed.Buffer)
	}
	return nil
}

func (c Config) LogLevel() (slog.Level, error) {
	switch c.Log.Level {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("unsupported LOG_LEVEL=%q (want debug|info|warn|error)", c.Log.Level)
}

// NewLogger builds the process logger from Log.Format and Log.Level.
func (c Config) NewLogger() *slog.Logger {
	level, _ := c.LogLevel()
	opts := &slog.HandlerOptions{Level: level}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func envString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err == nil {
			return d
		}
	}
	return def
}

func envBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func envInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
