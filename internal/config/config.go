// Package config загружает настройки сервера и клиента: значения по
// умолчанию, затем YAML-файл, затем флаги и переменные окружения.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// EnvJWTSecret переопределяет jwt_secret из файла
	EnvJWTSecret = "LIFETRACKER_JWT_SECRET"
	// EnvMasterPassword - master password для неинтерактивного запуска клиента
	EnvMasterPassword = "LIFETRACKER_MASTER_PASSWORD"

	// MinJWTSecretLen - минимальная длина секрета подписи в байтах
	MinJWTSecretLen = 32
)

// Server holds settings of the document server.
type Server struct {
	Listen          string        `yaml:"listen"`
	DB              string        `yaml:"db"`
	JWTSecret       string        `yaml:"jwt_secret"`
	LogLevel        string        `yaml:"log_level"`
	AccessTokenTTL  time.Duration `yaml:"access_token_ttl"`
	RefreshTokenTTL time.Duration `yaml:"refresh_token_ttl"`
	AuthRateWindow  time.Duration `yaml:"auth_rate_window"`
	AuthRateLimit   int           `yaml:"auth_rate_limit"`
}

// Client holds settings of the lifetracker CLI.
type Client struct {
	Server   string        `yaml:"server"`
	DB       string        `yaml:"db"`
	LogLevel string        `yaml:"log_level"`
	Debounce time.Duration `yaml:"debounce"`
}

// DefaultServer returns the server configuration used when nothing is set.
func DefaultServer() Server {
	return Server{
		Listen:          ":8080",
		DB:              "lifetracker.db",
		LogLevel:        "info",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 7 * 24 * time.Hour,
		AuthRateLimit:   5,
		AuthRateWindow:  time.Minute,
	}
}

// DefaultClient returns the client configuration used when nothing is set.
func DefaultClient() Client {
	return Client{
		Server:   "http://localhost:8080",
		DB:       "lifetracker-client.db",
		LogLevel: "warn",
		Debounce: 300 * time.Millisecond,
	}
}

// LoadFile decodes the YAML file at path over cfg. Keys absent from the
// file keep the values already in cfg; unknown keys are an error.
func LoadFile(path string, cfg any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil {
		// пустой файл допустим
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// LoadServer builds the server configuration from command line arguments.
// Priority: flags, then environment, then the --config file, then defaults.
func LoadServer(args []string) (*Server, error) {
	fs := flag.NewFlagSet("lifetracker-server", flag.ContinueOnError)

	def := DefaultServer()
	configPath := fs.String("config", "", "Path to YAML config file")
	listen := fs.String("listen", def.Listen, "HTTP listen address")
	db := fs.String("db", def.DB, "Path to SQLite database")
	jwtSecret := fs.String("jwt-secret", "", "JWT signing secret (or "+EnvJWTSecret+")")
	logLevel := fs.String("log-level", def.LogLevel, "Log level (debug|info|warn|error)")
	accessTTL := fs.Duration("access-token-ttl", def.AccessTokenTTL, "Access token lifetime")
	refreshTTL := fs.Duration("refresh-token-ttl", def.RefreshTokenTTL, "Refresh token lifetime")
	rateLimit := fs.Int("auth-rate-limit", def.AuthRateLimit, "Auth requests allowed per window and IP")
	rateWindow := fs.Duration("auth-rate-window", def.AuthRateWindow, "Auth rate limit window")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg := def
	if *configPath != "" {
		if err := LoadFile(*configPath, &cfg); err != nil {
			return nil, err
		}
	}
	if secret := os.Getenv(EnvJWTSecret); secret != "" {
		cfg.JWTSecret = secret
	}

	// явно заданные флаги перекрывают файл и окружение
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "listen":
			cfg.Listen = *listen
		case "db":
			cfg.DB = *db
		case "jwt-secret":
			cfg.JWTSecret = *jwtSecret
		case "log-level":
			cfg.LogLevel = *logLevel
		case "access-token-ttl":
			cfg.AccessTokenTTL = *accessTTL
		case "refresh-token-ttl":
			cfg.RefreshTokenTTL = *refreshTTL
		case "auth-rate-limit":
			cfg.AuthRateLimit = *rateLimit
		case "auth-rate-window":
			cfg.AuthRateWindow = *rateWindow
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that the server configuration is usable.
func (s *Server) Validate() error {
	if s.Listen == "" {
		return fmt.Errorf("listen address is required")
	}
	if s.DB == "" {
		return fmt.Errorf("database path is required")
	}
	if len(s.JWTSecret) < MinJWTSecretLen {
		return fmt.Errorf("jwt secret must be at least %d bytes (set %s)", MinJWTSecretLen, EnvJWTSecret)
	}
	if s.AccessTokenTTL <= 0 || s.RefreshTokenTTL <= 0 {
		return fmt.Errorf("token ttl must be positive")
	}
	if s.AccessTokenTTL >= s.RefreshTokenTTL {
		return fmt.Errorf("access token ttl must be shorter than refresh token ttl")
	}
	if s.AuthRateLimit <= 0 || s.AuthRateWindow <= 0 {
		return fmt.Errorf("auth rate limit and window must be positive")
	}
	if _, err := ParseLevel(s.LogLevel); err != nil {
		return err
	}
	return nil
}

// Validate checks that the client configuration is usable.
func (c *Client) Validate() error {
	if c.DB == "" {
		return fmt.Errorf("database path is required")
	}
	if c.Debounce <= 0 {
		return fmt.Errorf("debounce must be positive")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel converts a textual log level to slog.Level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
	}
}

// NewLogger creates a text slog logger writing to w at the given level.
func NewLogger(level string, w io.Writer) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, err
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})), nil
}
