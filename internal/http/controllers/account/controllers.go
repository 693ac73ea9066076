// Package account agrupa los controllers HTTP del dominio account.
// Los controllers solo decodifican, delegan al service y mapean errores;
// toda la lógica de admisión vive en los services.
package account

import svc "github.com/dropDatabas3/portero/internal/http/services/account"

// Controllers agrupa los controllers del dominio.
type Controllers struct {
	Login     *LoginController
	Whitelist *WhitelistController
}

// NewControllers crea los controllers a partir de los services.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Login:     NewLoginController(s.Login),
		Whitelist: NewWhitelistController(s.Whitelist),
	}
}
