// Package router arma el router chi con todas las rutas del servicio.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	accountctrl "github.com/dropDatabas3/portero/internal/http/controllers/account"
	healthctrl "github.com/dropDatabas3/portero/internal/http/controllers/health"
	mw "github.com/dropDatabas3/portero/internal/http/middlewares"
	"github.com/dropDatabas3/portero/internal/rate"
)

// Deps contiene todas las dependencias del router.
type Deps struct {
	AccountControllers *accountctrl.Controllers
	HealthController   *healthctrl.Controller

	// MetricsHandler sirve /metrics; nil = endpoint deshabilitado.
	MetricsHandler http.Handler

	// InstrumentRoute instrumenta una ruta con métricas HTTP;
	// nil = sin instrumentación.
	InstrumentRoute func(path string) mw.Middleware

	// LoginLimiter aplica rate limit a /account/login; nil = sin límite.
	LoginLimiter rate.Limiter
}

// New construye el router con el middleware chain estándar.
func New(deps Deps) http.Handler {
	r := chi.NewRouter()

	instrument := deps.InstrumentRoute
	if instrument == nil {
		instrument = func(string) mw.Middleware {
			return func(next http.Handler) http.Handler { return next }
		}
	}

	base := func(path string, h http.HandlerFunc, extra ...mw.Middleware) http.Handler {
		chain := []mw.Middleware{
			mw.WithRecover(),
			mw.WithRequestID(),
			mw.WithSecurityHeaders(),
			mw.WithNoStore(),
			instrument(path),
		}
		chain = append(chain, extra...)
		return mw.Chain(h, chain...)
	}

	c := deps.AccountControllers

	r.Method(http.MethodPost, "/account/whitelist",
		base("/account/whitelist", c.Whitelist.Whitelist))
	r.Method(http.MethodGet, "/account/whitelist",
		base("/account/whitelist", c.Whitelist.Status))
	r.Method(http.MethodPost, "/account/login",
		base("/account/login", c.Login.Login,
			mw.WithRateLimit(deps.LoginLimiter, "login")))

	r.Method(http.MethodGet, "/healthz",
		base("/healthz", deps.HealthController.Healthz))
	r.Method(http.MethodGet, "/readyz",
		base("/readyz", deps.HealthController.Readyz))

	if deps.MetricsHandler != nil {
		r.Method(http.MethodGet, "/metrics", deps.MetricsHandler)
	}

	return r
}
