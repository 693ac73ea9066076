// Package account contiene los services de admisión: el workflow de
// login (verify → whitelist → register) y el mantenimiento directo de
// la whitelist. Los services no conocen HTTP; los controllers mapean
// sus errores a status codes.
package account

import (
	"context"

	dto "github.com/dropDatabas3/portero/internal/http/dto/account"
	"github.com/dropDatabas3/portero/internal/store/core"
	"github.com/dropDatabas3/portero/internal/verifier"
)

// LoginService orquesta el workflow de login completo.
type LoginService interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error)
}

// WhitelistService mantiene la whitelist (alta directa y consulta).
type WhitelistService interface {
	Whitelist(ctx context.Context, in dto.WhitelistRequest) error
	IsWhitelisted(ctx context.Context, in dto.WhitelistRequest) (bool, error)
}

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	Store    core.Repository
	Verifier verifier.TokenVerifier
}

// Services agrupa los services del dominio account.
type Services struct {
	Login     LoginService
	Whitelist WhitelistService
}

// NewServices crea el aggregator del dominio.
func NewServices(d Deps) Services {
	return Services{
		Login:     NewLoginService(LoginDeps{Store: d.Store, Verifier: d.Verifier}),
		Whitelist: NewWhitelistService(WhitelistDeps{Store: d.Store}),
	}
}
