package pg

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dropDatabas3/portero/internal/store/core"
)

type Store struct{ pool *pgxpool.Pool }

// Pool expone el pool interno para usos avanzados (metrics/migraciones).
func (s *Store) Pool() *pgxpool.Pool {
	if s == nil {
		return nil
	}
	return s.pool
}

// Close cierra el pool subyacente (idempotente).
func (s *Store) Close() {
	if s != nil && s.pool != nil {
		s.pool.Close()
	}
}

// Tuning opcional del pool, viene de config.Storage.Postgres.
type Tuning struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime string
}

func New(ctx context.Context, dsn string, t Tuning) (*Store, error) {
	pcfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	if t.MaxOpenConns > 0 {
		pcfg.MaxConns = int32(t.MaxOpenConns)
	}
	// Mapear MaxIdleConns → MinConns (pgxpool)
	if t.MaxIdleConns > 0 {
		pcfg.MinConns = int32(t.MaxIdleConns)
	}
	if t.ConnMaxLifetime != "" {
		if d, err := time.ParseDuration(t.ConnMaxLifetime); err == nil {
			pcfg.MaxConnLifetime = d
			pcfg.MaxConnIdleTime = d
		}
	}
	if pcfg.MaxConns == 0 {
		pcfg.MaxConns = 5
	}

	pool, err := pgxpool.NewWithConfig(ctx, pcfg)
	if err != nil {
		return nil, err
	}

	// Non-blocking startup: try to ping, but don't fail if it fails.
	if err := pool.Ping(ctx); err != nil {
		log.Printf(`{"level":"warn","msg":"pg_pool_startup_ping_failed","err":"%v"}`, err)
	} else {
		log.Printf(`{"level":"info","msg":"pg_pool_ready","max_conns":%d}`, pcfg.MaxConns)
	}

	s := &Store{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pg: ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

var schemaOnce sync.Once

// ensureSchema crea tablas e índices únicos una única vez por proceso.
// El índice único compuesto es el enforcement de última instancia para
// la unicidad de (account_name, provider); todo lo demás es cortesía.
func (s *Store) ensureSchema(ctx context.Context) error {
	var err error
	schemaOnce.Do(func() {
		const ddl = `
		CREATE TABLE IF NOT EXISTS whitelist_entries (
			id           UUID PRIMARY KEY,
			account_name TEXT NOT NULL,
			provider     TEXT NOT NULL,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS ux_whitelist_account_provider
			ON whitelist_entries (account_name, provider);

		CREATE TABLE IF NOT EXISTS accounts (
			id           UUID PRIMARY KEY,
			account_name TEXT NOT NULL,
			provider     TEXT NOT NULL,
			provider_id  TEXT NOT NULL,
			role         TEXT NOT NULL DEFAULT 'user',
			created_at   TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE UNIQUE INDEX IF NOT EXISTS ux_accounts_account_provider
			ON accounts (account_name, provider);`
		_, err = s.pool.Exec(ctx, ddl)
	})
	return err
}

func (s *Store) WhitelistExists(ctx context.Context, accountName, provider string) (bool, error) {
	const q = `SELECT EXISTS(
		SELECT 1 FROM whitelist_entries WHERE account_name = $1 AND provider = $2)`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, accountName, provider).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) AccountExists(ctx context.Context, accountName, provider string) (bool, error) {
	const q = `SELECT EXISTS(
		SELECT 1 FROM accounts WHERE account_name = $1 AND provider = $2)`
	var exists bool
	if err := s.pool.QueryRow(ctx, q, accountName, provider).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (s *Store) GetAccount(ctx context.Context, accountName, provider string) (*core.Account, error) {
	const q = `SELECT id, account_name, provider, provider_id, role, created_at
		FROM accounts WHERE account_name = $1 AND provider = $2`
	var (
		a       core.Account
		roleStr string
	)
	err := s.pool.QueryRow(ctx, q, accountName, provider).
		Scan(&a.ID, &a.AccountName, &a.Provider, &a.ProviderID, &roleStr, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, err
	}
	a.Role, err = core.ParseRole(roleStr)
	if err != nil {
		return nil, err
	}
	return &a, nil
}
