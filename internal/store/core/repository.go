package core

import "context"

// Repository es el contrato del admission store: dos colecciones keyed por
// (accountName, provider) con constraint de unicidad sobre ese par.
//
// Semántica común a todos los drivers:
//   - Los probes de existencia devuelven (false, nil) para "no está";
//     un error es SIEMPRE una falla de I/O, nunca un not-found.
//   - Los inserts son insert-or-confirm: si la key ya existe la operación
//     resuelve a nil sin escribir de nuevo y sin duplicar. Un repeat de
//     registro con otro ProviderID conserva el role y ProviderID originales.
//   - La unicidad la garantiza el storage (índice único / mutex), no el
//     check previo del caller: dos inserts concurrentes para la misma key
//     persisten exactamente un registro y ambos observan éxito.
type Repository interface {
	Ping(ctx context.Context) error

	WhitelistExists(ctx context.Context, accountName, provider string) (bool, error)
	InsertWhitelistEntry(ctx context.Context, e *WhitelistEntry) error

	AccountExists(ctx context.Context, accountName, provider string) (bool, error)
	InsertAccount(ctx context.Context, a *Account) error

	// GetAccount devuelve la cuenta registrada, o ErrNotFound.
	GetAccount(ctx context.Context, accountName, provider string) (*Account, error)

	Close()
}
