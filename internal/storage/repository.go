package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// Repository is the database-backed Store.
type Repository struct {
	*Queries
	db      *sql.DB
	tx      *sql.Tx
	dialect Dialect
}

var _ Store = (*Repository)(nil)

// sqlitePragmas are applied to every pooled connection.
const sqlitePragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"

// NewSQLiteRepository opens (creating if needed) the SQLite file at dbPath
// and applies pending migrations.
func NewSQLiteRepository(dbPath string) (*Repository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}
	return Open(SQLite, dbPath+sqlitePragmas, 0)
}

// NewPostgresRepository connects to databaseURL through pgx and applies
// pending migrations.
func NewPostgresRepository(databaseURL string, maxOpenConns int) (*Repository, error) {
	return Open(Postgres, databaseURL, maxOpenConns)
}

// Open connects with the dialect's driver, pings and migrates.
// maxOpenConns <= 0 keeps the driver default.
func Open(dialect Dialect, dsn string, maxOpenConns int) (*Repository, error) {
	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if maxOpenConns > 0 {
		db.SetMaxOpenConns(maxOpenConns)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dialect, dsn); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	slog.Info("Database ready", "dialect", dialect.String())

	return &Repository{
		Queries: newQueries(db, dialect),
		db:      db,
		dialect: dialect,
	}, nil
}

// WithTx runs fn inside a transaction. Nested calls join the outer one.
func (r *Repository) WithTx(ctx context.Context, fn func(Store) error) error {
	if r.tx != nil {
		return fn(r)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	txRepo := &Repository{
		Queries: newQueries(tx, r.dialect),
		db:      r.db,
		tx:      tx,
		dialect: r.dialect,
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()

	if err := fn(txRepo); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			slog.ErrorContext(ctx, "Transaction rollback failed", "error", rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Dialect reports which database the repository talks to.
func (r *Repository) Dialect() Dialect {
	return r.dialect
}

func (r *Repository) Close() error {
	if r.db != nil && r.tx == nil {
		return r.db.Close()
	}
	return nil
}
