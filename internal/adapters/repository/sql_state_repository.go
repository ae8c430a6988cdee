package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/comitanigiacomo/kanso-habit-store/internal/core/domain"
)

var _ domain.StateRepository = (*SQLStateRepository)(nil)

type dialect struct {
	name        string
	schema      string
	usersSchema string
}

var (
	postgresDialect = dialect{
		name: "postgres",
		schema: `
        CREATE TABLE IF NOT EXISTS habit_state (
            storage_key TEXT PRIMARY KEY,
            payload     JSONB NOT NULL,
            revision    INTEGER NOT NULL DEFAULT 1,
            updated_at  TIMESTAMPTZ NOT NULL
        )`,
		usersSchema: `
        CREATE TABLE IF NOT EXISTS users (
            id            TEXT PRIMARY KEY,
            email         TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at    TIMESTAMPTZ NOT NULL,
            updated_at    TIMESTAMPTZ NOT NULL
        )`,
	}

	sqliteDialect = dialect{
		name: "sqlite",
		schema: `
        CREATE TABLE IF NOT EXISTS habit_state (
            storage_key TEXT PRIMARY KEY,
            payload     TEXT NOT NULL,
            revision    INTEGER NOT NULL DEFAULT 1,
            updated_at  TIMESTAMP NOT NULL
        )`,
		usersSchema: `
        CREATE TABLE IF NOT EXISTS users (
            id            TEXT PRIMARY KEY,
            email         TEXT NOT NULL UNIQUE,
            password_hash TEXT NOT NULL,
            created_at    DATETIME NOT NULL,
            updated_at    DATETIME NOT NULL
        )`,
	}
)

// SQLStateRepository stores each encoded State as one row keyed by its
// storage key. Queries are written with '?' placeholders and rebound for the
// driver, so the same code serves Postgres and SQLite.
type SQLStateRepository struct {
	db      *sqlx.DB
	dialect dialect
}

func NewPostgresStateRepository(db *sqlx.DB) *SQLStateRepository {
	return &SQLStateRepository{db: db, dialect: postgresDialect}
}

func NewSQLiteStateRepository(db *sqlx.DB) *SQLStateRepository {
	return &SQLStateRepository{db: db, dialect: sqliteDialect}
}

// Migrate creates the state table when it does not exist yet.
func (r *SQLStateRepository) Migrate(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, r.dialect.schema); err != nil {
		return fmt.Errorf("failed to migrate %s state table: %w", r.dialect.name, err)
	}
	return nil
}

func (r *SQLStateRepository) Load(ctx context.Context, key string) (*domain.State, error) {
	query := r.db.Rebind(`SELECT payload FROM habit_state WHERE storage_key = ?`)

	var payload []byte
	err := r.db.GetContext(ctx, &payload, query, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrStateNotFound
		}
		return nil, fmt.Errorf("load state query failed: %w", err)
	}

	return domain.DecodeState(payload)
}

func (r *SQLStateRepository) Save(ctx context.Context, key string, state *domain.State) error {
	payload, err := domain.EncodeState(state)
	if err != nil {
		return err
	}

	query := r.db.Rebind(`
        INSERT INTO habit_state (storage_key, payload, revision, updated_at)
        VALUES (?, ?, 1, ?)
        ON CONFLICT (storage_key) DO UPDATE SET
            payload    = excluded.payload,
            revision   = habit_state.revision + 1,
            updated_at = excluded.updated_at`)

	if _, err := r.db.ExecContext(ctx, query, key, string(payload), time.Now().UTC()); err != nil {
		return fmt.Errorf("save state query failed: %w", err)
	}
	return nil
}

// Revision reports how many times key has been saved, 0 when it never was.
func (r *SQLStateRepository) Revision(ctx context.Context, key string) (int, error) {
	query := r.db.Rebind(`SELECT revision FROM habit_state WHERE storage_key = ?`)

	var revision int
	if err := r.db.GetContext(ctx, &revision, query, key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("revision query failed: %w", err)
	}
	return revision, nil
}
