package core

import (
	"fmt"
	"strings"
	"time"
)

// Role es el rol asignado a una cuenta registrada.
// Internamente es un enum; en storage se persiste como string lowercase.
type Role int

const (
	RoleUser Role = iota
	RoleAdmin
)

// String devuelve la representación persistida ("user" | "admin").
func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	default:
		return "user"
	}
}

// ParseRole convierte el string persistido a Role.
// Un valor desconocido es un error de datos, no un default silencioso.
func ParseRole(s string) (Role, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "user":
		return RoleUser, nil
	case "admin":
		return RoleAdmin, nil
	default:
		return RoleUser, fmt.Errorf("unknown role %q: %w", s, ErrInvalid)
	}
}

// WhitelistEntry es un permiso: el par (AccountName, Provider) puede registrarse.
// El par es único a nivel de storage; las entradas nunca se mutan.
type WhitelistEntry struct {
	ID          string
	AccountName string
	Provider    string
	CreatedAt   time.Time
}

// Account es el registro persistido de una cuenta que ya pasó la whitelist.
// Se crea exactamente una vez por (AccountName, Provider); Role y ProviderID
// quedan fijos en esa primera creación.
type Account struct {
	ID          string
	AccountName string
	Provider    string
	ProviderID  string
	Role        Role
	CreatedAt   time.Time
}
