package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/dropDatabas3/portero/internal/store/core"
	"github.com/dropDatabas3/portero/internal/store/memory"
	"github.com/dropDatabas3/portero/internal/store/pg"
)

type Config struct {
	Driver   string
	DSN      string
	Postgres pg.Tuning
}

// Open devuelve el core.Repository según el driver configurado.
func Open(ctx context.Context, cfg Config) (core.Repository, error) {
	switch strings.ToLower(cfg.Driver) {
	case "postgres", "pg", "postgresql":
		return pg.New(ctx, cfg.DSN, cfg.Postgres)
	case "memory", "":
		return memory.New(), nil
	case "mongo", "mongodb":
		// El deployment original corría sobre Mongo; el driver todavía no
		// está portado.
		return nil, fmt.Errorf("mongo: %w", core.ErrNotImplemented)
	default:
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Driver)
	}
}
