// Package cli реализует команды клиента lifetracker поверх cobra.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/iudanet/lifetracker/internal/client/api"
	"github.com/iudanet/lifetracker/internal/client/auth"
	"github.com/iudanet/lifetracker/internal/client/iocli"
	"github.com/iudanet/lifetracker/internal/client/remote"
	"github.com/iudanet/lifetracker/internal/client/slices"
	"github.com/iudanet/lifetracker/internal/client/storage"
	"github.com/iudanet/lifetracker/internal/client/storage/boltdb"
	"github.com/iudanet/lifetracker/internal/client/sync"
	"github.com/iudanet/lifetracker/internal/config"
	"github.com/iudanet/lifetracker/internal/crypto"
	"github.com/iudanet/lifetracker/internal/models"
)

var (
	errNotSignedIn     = errors.New("not signed in. Please run 'lifetracker login' first")
	errSyncUnavailable = errors.New("sync unavailable, check the server address and connection")
)

//go:generate moq -out authservice_mock.go . AuthService
//go:generate moq -out syncgate_mock.go . SyncGate

// AuthService - вход, выход и разблокировка сохранённой сессии
type AuthService interface {
	Register(ctx context.Context, username, masterPassword string) (*sync.Session, error)
	Login(ctx context.Context, username, masterPassword string) (*sync.Session, error)
	Session(ctx context.Context, masterPassword string) (*sync.Session, error)
	Logout(ctx context.Context, masterPassword string) error
	Status(ctx context.Context) (*auth.Status, error)
}

// SyncGate - запись слайсов и жизненный цикл движка синхронизации
type SyncGate interface {
	OnSessionChange(ctx context.Context, session *sync.Session) error
	QueueWrite(ctx context.Context, key string, value any) error
	Remove(ctx context.Context, key string) error
	Flush(ctx context.Context) error
	Close()
}

// Options - глобальные флаги
type Options struct {
	ConfigPath         string
	Server             string
	DB                 string
	LogLevel           string
	MasterPassword     string
	MasterPasswordFile string
	Offline            bool
}

type Cli struct {
	io       iocli.IO
	auth     AuthService
	gate     SyncGate
	slices   *slices.Store
	metadata storage.MetadataStorage
	logger   *slog.Logger
	closers  []func() error
	cfg      config.Client
	opts     Options
	version  string
}

// New creates a CLI writing to io. Dependencies are opened lazily
// before the first command runs.
func New(io iocli.IO, version string) *Cli {
	return &Cli{
		io:      io,
		version: version,
		cfg:     config.DefaultClient(),
	}
}

// Execute runs the command line args and releases all resources.
func Execute(ctx context.Context, io iocli.IO, version string, args []string) error {
	c := New(io, version)
	defer c.Close()

	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io)
	root.SetErr(os.Stderr)
	return root.ExecuteContext(ctx)
}

// RootCommand builds the command tree.
func (c *Cli) RootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "lifetracker",
		Short:         "lifetracker - local-first life tracker",
		Long:          "Keeps weights, habits, goals, journal, shopping and todo state in a local database and synchronizes it with the server while signed in.",
		Version:       c.version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.open(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&c.opts.ConfigPath, "config", "", "path to YAML config file")
	flags.StringVar(&c.opts.Server, "server", c.cfg.Server, "server URL")
	flags.StringVar(&c.opts.DB, "db", c.cfg.DB, "path to local database")
	flags.StringVar(&c.opts.LogLevel, "log-level", c.cfg.LogLevel, "log level (debug|info|warn|error)")
	flags.BoolVar(&c.opts.Offline, "offline", false, "do not contact the server")
	flags.StringVar(&c.opts.MasterPassword, "master-password", "", "master password (not recommended, use "+config.EnvMasterPassword+" or a file)")
	flags.StringVar(&c.opts.MasterPasswordFile, "master-password-file", "", "path to file containing master password")

	cmd.AddCommand(
		c.newRegisterCommand(),
		c.newLoginCommand(),
		c.newLogoutCommand(),
		c.newStatusCommand(),
		c.newSetCommand(),
		c.newUnsetCommand(),
		c.newGetCommand(),
		c.newSnapshotCommand(),
		c.newSyncCommand(),
		c.newWatchCommand(),
	)
	return cmd
}

// open загружает конфигурацию и собирает зависимости.
// Уже заданные зависимости (тесты) не пересоздаются.
func (c *Cli) open(cmd *cobra.Command) error {
	if c.opts.ConfigPath != "" {
		if err := config.LoadFile(c.opts.ConfigPath, &c.cfg); err != nil {
			return err
		}
	}
	flags := cmd.Flags()
	if flags.Changed("server") {
		c.cfg.Server = c.opts.Server
	}
	if flags.Changed("db") {
		c.cfg.DB = c.opts.DB
	}
	if flags.Changed("log-level") {
		c.cfg.LogLevel = c.opts.LogLevel
	}
	if err := c.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if c.logger == nil {
		logger, err := config.NewLogger(c.cfg.LogLevel, os.Stderr)
		if err != nil {
			return err
		}
		c.logger = logger
	}
	if c.slices != nil {
		return nil
	}

	ctx := cmd.Context()
	boltStorage, err := boltdb.New(ctx, c.cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	c.closers = append(c.closers, boltStorage.Close)

	apiClient := api.NewClient(c.cfg.Server)
	channel := remote.NewChannel(apiClient, remote.DefaultOptions, c.logger)

	c.slices = slices.NewStore(boltStorage, c.logger)
	c.metadata = boltStorage
	c.auth = auth.NewService(apiClient, boltStorage, crypto.DefaultParams, c.logger)
	c.gate = sync.NewGate(c.slices, channel, boltStorage, sync.Config{Debounce: c.cfg.Debounce}, c.logger)
	return nil
}

// Close stops the sync engine and closes the database.
func (c *Cli) Close() {
	if c.gate != nil {
		c.gate.Close()
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil && c.logger != nil {
			c.logger.Error("Failed to close resource", "error", err)
		}
	}
	c.closers = nil
}

// engage разблокирует сохранённую сессию и запускает синхронизацию.
// Возвращает false, если синхронизация невозможна: офлайн-режим,
// никто не вошёл или сервер недоступен. Локальная работа продолжается.
func (c *Cli) engage(ctx context.Context) (bool, error) {
	if c.opts.Offline {
		return false, nil
	}

	status, err := c.auth.Status(ctx)
	if err != nil {
		return false, err
	}
	if status == nil {
		return false, nil
	}

	password, err := c.getMasterPassword(false)
	if err != nil {
		return false, fmt.Errorf("failed to get master password: %w", err)
	}

	session, err := c.auth.Session(ctx, password)
	if err != nil {
		if errors.Is(err, auth.ErrWrongPassword) {
			return false, err
		}
		c.io.Printf("Warning: sync unavailable: %v\n", err)
		return false, nil
	}
	if session == nil {
		return false, nil
	}

	if err := c.gate.OnSessionChange(ctx, session); err != nil {
		c.io.Printf("Warning: sync unavailable: %v\n", err)
		return false, nil
	}
	return true, nil
}

// mustEngage - engage для команд, которым без сервера нечего делать.
// Отличает "никто не вошёл" от "сервер недоступен".
func (c *Cli) mustEngage(ctx context.Context) error {
	status, err := c.auth.Status(ctx)
	if err != nil {
		return err
	}
	if status == nil {
		return errNotSignedIn
	}
	synced, err := c.engage(ctx)
	if err != nil {
		return err
	}
	if !synced {
		// причину engage уже напечатал
		return errSyncUnavailable
	}
	return nil
}

// getMasterPassword retrieves master password from various sources with priority:
// 1. Environment variable LIFETRACKER_MASTER_PASSWORD
// 2. File specified in --master-password-file
// 3. Command-line parameter --master-password
// 4. Interactive prompt (fallback), with confirmation when confirm is set
func (c *Cli) getMasterPassword(confirm bool) (string, error) {
	// Priority 1: Environment variable
	if envPassword := os.Getenv(config.EnvMasterPassword); envPassword != "" {
		return envPassword, nil
	}

	// Priority 2: File
	if c.opts.MasterPasswordFile != "" {
		content, err := os.ReadFile(c.opts.MasterPasswordFile)
		if err != nil {
			return "", fmt.Errorf("failed to read password file: %w", err)
		}
		// Убираем trailing newline/whitespace
		password := strings.TrimSpace(string(content))
		if password == "" {
			return "", fmt.Errorf("password file is empty")
		}
		return password, nil
	}

	// Priority 3: CLI parameter
	if c.opts.MasterPassword != "" {
		return c.opts.MasterPassword, nil
	}

	// Priority 4: Interactive prompt (fallback)
	password, err := c.io.ReadPassword("Master password: ")
	if err != nil {
		return "", fmt.Errorf("failed to read password from stdin: %w", err)
	}
	if password == "" {
		return "", fmt.Errorf("password cannot be empty")
	}

	if confirm {
		again, err := c.io.ReadPassword("Confirm master password: ")
		if err != nil {
			return "", fmt.Errorf("failed to read confirmation: %w", err)
		}
		if again != password {
			return "", fmt.Errorf("passwords do not match")
		}
	}
	return password, nil
}

// parseValue превращает аргумент командной строки в значение слайса:
// скалярные слайсы берут текст как есть, структурные ждут JSON
func parseValue(def models.SliceDef, raw string) (any, error) {
	if def.Kind == models.KindRaw {
		return raw, nil
	}
	return slices.Decode(def, raw)
}

func (c *Cli) printJSON(v any) error {
	if s, ok := v.(string); ok {
		c.io.Println(s)
		return nil
	}
	data, err := json.MarshalIndentWithOption(v, "", "  ", json.DisableHTMLEscape())
	if err != nil {
		return fmt.Errorf("failed to format value: %w", err)
	}
	c.io.Println(string(data))
	return nil
}
