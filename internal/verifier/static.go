package verifier

import (
	"context"
	"strings"
)

// staticVerifier acepta cualquier token no vacío y devuelve siempre la
// misma identidad. Solo para desarrollo local y tests.
type staticVerifier struct {
	identity Identity
}

func newStaticVerifier(cfg Config) *staticVerifier {
	id := Identity{
		AccountName: cfg.Static.AccountName,
		Provider:    cfg.Static.Provider,
		ProviderID:  cfg.Static.ProviderID,
	}
	if id.AccountName == "" {
		id.AccountName = "foo@bar.com"
	}
	if id.Provider == "" {
		id.Provider = "google"
	}
	if id.ProviderID == "" {
		id.ProviderID = "1234"
	}
	return &staticVerifier{identity: id}
}

func (v *staticVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrTokenRejected
	}
	id := v.identity
	return &id, nil
}
