// Package health expone los probes de liveness/readiness.
package health

import (
	"encoding/json"
	"net/http"

	httperrors "github.com/dropDatabas3/portero/internal/http/errors"
	"github.com/dropDatabas3/portero/internal/observability/logger"
	"github.com/dropDatabas3/portero/internal/store/core"
)

// Controller maneja GET /healthz y GET /readyz.
type Controller struct {
	store core.Repository
}

func NewController(store core.Repository) *Controller {
	return &Controller{store: store}
}

// Healthz: liveness, siempre 200 si el proceso atiende.
func (c *Controller) Healthz(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// Readyz: readiness, verifica que el store responda.
func (c *Controller) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := c.store.Ping(ctx); err != nil {
		logger.From(ctx).Warn("readyz: store ping failed", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrServiceUnavailable.WithDetail("store unreachable"))
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
}
