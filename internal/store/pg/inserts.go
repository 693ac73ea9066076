package pg

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dropDatabas3/portero/internal/store/core"
)

// uniqueViolation es el SQLSTATE de unique_violation en Postgres.
const uniqueViolation = "23505"

// isUniqueViolation detecta el conflicto esperado de key duplicada.
// Cualquier otra violación de constraint sigue siendo un error real.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// InsertWhitelistEntry es insert-or-confirm sobre (account_name, provider).
// ON CONFLICT DO NOTHING resuelve la carrera check-then-insert en el storage:
// si otro caller ganó, esto es un no-op exitoso.
func (s *Store) InsertWhitelistEntry(ctx context.Context, e *core.WhitelistEntry) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO whitelist_entries (id, account_name, provider, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_name, provider) DO NOTHING`
	_, err := s.pool.Exec(ctx, q, e.ID, e.AccountName, e.Provider, e.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}

// InsertAccount es insert-or-confirm sobre (account_name, provider).
// Un repeat (incluso con otro provider_id) no toca el registro existente:
// role y provider_id originales quedan intactos.
func (s *Store) InsertAccount(ctx context.Context, a *core.Account) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	const q = `
		INSERT INTO accounts (id, account_name, provider, provider_id, role, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (account_name, provider) DO NOTHING`
	_, err := s.pool.Exec(ctx, q, a.ID, a.AccountName, a.Provider, a.ProviderID, a.Role.String(), a.CreatedAt)
	if err != nil && isUniqueViolation(err) {
		return nil
	}
	return err
}
