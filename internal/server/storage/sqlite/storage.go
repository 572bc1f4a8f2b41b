package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/iudanet/lifetracker/internal/server/storage"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

var (
	_ storage.UserStorage     = (*Storage)(nil)
	_ storage.TokenStorage    = (*Storage)(nil)
	_ storage.DocumentStorage = (*Storage)(nil)
)

// один писатель; WAL не блокирует чтение на время записи
var connPragmas = []string{
	"PRAGMA journal_mode = WAL",
	"PRAGMA synchronous = NORMAL",
	"PRAGMA foreign_keys = ON",
	"PRAGMA busy_timeout = 5000",
}

// Storage хранит пользователей, refresh token и документы в одном файле SQLite
type Storage struct {
	db         *sql.DB
	migrations *goose.Provider
}

// New открывает базу по dbPath и накатывает миграции.
// ":memory:" даёт базу в памяти для тестов.
func New(ctx context.Context, dbPath string) (*Storage, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// :memory: живёт в рамках одного соединения, поэтому пул из одного
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	s, err := open(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func open(ctx context.Context, db *sql.DB) (*Storage, error) {
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	for _, pragma := range connPragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			return nil, fmt.Errorf("failed to apply %q: %w", pragma, err)
		}
	}

	fsys, err := fs.Sub(embedMigrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to open migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("failed to create migration provider: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Storage{db: db, migrations: provider}, nil
}

// SchemaVersion возвращает номер последней применённой миграции
func (s *Storage) SchemaVersion(ctx context.Context) (int64, error) {
	return s.migrations.GetDBVersion(ctx)
}

func (s *Storage) Close() error {
	return s.db.Close()
}

// Ping проверяет соединение с базой
func (s *Storage) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// DB отдаёт соединение тестам
func (s *Storage) DB() *sql.DB {
	return s.db
}
