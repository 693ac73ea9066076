// Package memory implementa el admission store en memoria.
// Pensado para desarrollo y tests; la unicidad de (accountName, provider)
// se garantiza con un mutex en lugar del índice único de Postgres.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dropDatabas3/portero/internal/store/core"
)

type key struct{ accountName, provider string }

type Store struct {
	mu        sync.RWMutex
	whitelist map[key]core.WhitelistEntry
	accounts  map[key]core.Account
}

func New() *Store {
	return &Store{
		whitelist: make(map[key]core.WhitelistEntry),
		accounts:  make(map[key]core.Account),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }
func (s *Store) Close()                         {}

func (s *Store) WhitelistExists(ctx context.Context, accountName, provider string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.whitelist[key{accountName, provider}]
	return ok, nil
}

func (s *Store) InsertWhitelistEntry(ctx context.Context, e *core.WhitelistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{e.AccountName, e.Provider}
	if _, ok := s.whitelist[k]; ok {
		// insert-or-confirm: la entrada existente gana
		return nil
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now().UTC()
	}
	s.whitelist[k] = *e
	return nil
}

func (s *Store) AccountExists(ctx context.Context, accountName, provider string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.accounts[key{accountName, provider}]
	return ok, nil
}

func (s *Store) InsertAccount(ctx context.Context, a *core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key{a.AccountName, a.Provider}
	if _, ok := s.accounts[k]; ok {
		// repeat de registro: conserva role y provider_id originales
		return nil
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	s.accounts[k] = *a
	return nil
}

func (s *Store) GetAccount(ctx context.Context, accountName, provider string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[key{accountName, provider}]
	if !ok {
		return nil, core.ErrNotFound
	}
	out := a
	return &out, nil
}
