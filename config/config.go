// Package config loads server settings from flags, the environment and an
// optional .env file. Flags win over environment values, which win over
// built-in defaults.
package config

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	CORSOrigins     []string
}

type DatabaseConfig struct {
	Path string // ":memory:" for an in-memory database
}

type LoggerConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

// Load reads .env (if present), then parses args against env-backed defaults.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	fs := flag.NewFlagSet("gratuity-server", flag.ContinueOnError)

	fs.IntVar(&cfg.Server.Port, "port", getEnvAsInt("PORT", 8080), "HTTP server port")
	fs.DurationVar(&cfg.Server.ReadTimeout, "read-timeout", getEnvAsDuration("SERVER_READ_TIMEOUT", 15*time.Second), "HTTP read timeout")
	fs.DurationVar(&cfg.Server.WriteTimeout, "write-timeout", getEnvAsDuration("SERVER_WRITE_TIMEOUT", 15*time.Second), "HTTP write timeout")
	fs.DurationVar(&cfg.Server.IdleTimeout, "idle-timeout", getEnvAsDuration("SERVER_IDLE_TIMEOUT", 60*time.Second), "HTTP idle timeout")
	fs.DurationVar(&cfg.Server.ShutdownTimeout, "shutdown-timeout", getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second), "graceful shutdown timeout")
	origins := fs.String("cors-origins", getEnv("CORS_ORIGINS", "http://localhost:5173,http://localhost:8080"), "comma-separated allowed CORS origins")
	fs.StringVar(&cfg.Database.Path, "db", getEnv("DATABASE_PATH", "gratuity.db"), "SQLite database path")
	fs.StringVar(&cfg.Logger.Level, "log-level", getEnv("LOG_LEVEL", "info"), "log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Logger.Format, "log-format", getEnv("LOG_FORMAT", "text"), "log format (text, json)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Server.CORSOrigins = splitList(*origins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks ranges and enumerations.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Server.Port)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}
	if _, err := parseLevel(c.Logger.Level); err != nil {
		return err
	}
	switch c.Logger.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q", c.Logger.Format)
	}
	return nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// NewLogger builds the process logger described by the config.
func (c *Config) NewLogger() *slog.Logger {
	level, _ := parseLevel(c.Logger.Level)
	opts := &slog.HandlerOptions{Level: level}

	var h slog.Handler
	if c.Logger.Format == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}
	return slog.New(h).With(slog.String("app", "gratuity-engine"))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value, err := strconv.Atoi(getEnv(key, "")); err == nil {
		return value
	}
	return defaultValue
}

// getEnvAsDuration accepts Go durations ("15s") or plain seconds ("15").
func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	raw := getEnv(key, "")
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
