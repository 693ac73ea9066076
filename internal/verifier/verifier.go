// Package verifier resuelve un bearer token opaco en una identidad
// verificada. El mecanismo concreto (JWT, stub) es intercambiable; para
// el resto del sistema toda falla colapsa en ErrTokenRejected, sin
// distinguir causas hacia el caller.
package verifier

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrTokenRejected es el único outcome de falla visible: token vacío,
// malformado, expirado, firma inválida — todo lo mismo para afuera.
var ErrTokenRejected = errors.New("token rejected")

// Identity son los hechos que el verifier asevera sobre un token.
// Transiente: vive solo durante un login, nunca se persiste.
type Identity struct {
	AccountName string
	Provider    string
	ProviderID  string
}

type TokenVerifier interface {
	// Verify valida el token y devuelve la identidad, o ErrTokenRejected.
	Verify(ctx context.Context, token string) (*Identity, error)
}

// Config selecciona e inicializa la implementación.
type Config struct {
	Mode string // "jwt" | "static"

	JWT struct {
		Secret   string // HMAC secret compartido con el emisor
		Issuer   string // iss esperado; vacío = no se valida
		Audience string // aud esperada; vacío = no se valida
	}

	Static struct {
		AccountName string
		Provider    string
		ProviderID  string
	}
}

// New crea el TokenVerifier según cfg.Mode.
func New(cfg Config) (TokenVerifier, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Mode)) {
	case "jwt":
		if cfg.JWT.Secret == "" {
			return nil, fmt.Errorf("verifier: jwt mode requires a secret")
		}
		return newJWTVerifier(cfg), nil
	case "static", "":
		return newStaticVerifier(cfg), nil
	default:
		return nil, fmt.Errorf("verifier: unsupported mode %q", cfg.Mode)
	}
}
