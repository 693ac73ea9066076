package account

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	dto "github.com/dropDatabas3/portero/internal/http/dto/account"
	httperrors "github.com/dropDatabas3/portero/internal/http/errors"
	svc "github.com/dropDatabas3/portero/internal/http/services/account"
	"github.com/dropDatabas3/portero/internal/observability/logger"
)

// WhitelistController maneja POST y GET /account/whitelist.
type WhitelistController struct {
	service svc.WhitelistService
}

// NewWhitelistController crea un nuevo whitelist controller.
func NewWhitelistController(service svc.WhitelistService) *WhitelistController {
	return &WhitelistController{service: service}
}

// Whitelist procesa el alta directa (idempotente) de una entrada.
// POST /account/whitelist  body: {"accountName": "...", "provider": "..."}
func (c *WhitelistController) Whitelist(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("WhitelistController.Whitelist"))

	var req dto.WhitelistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	if err := c.service.Whitelist(ctx, req); err != nil {
		c.handleError(w, err, log)
		return
	}

	// 200 tanto para alta nueva como para repeat: el caller no distingue
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]bool{"whitelisted": true})
}

// Status consulta si un par está whitelisteado.
// GET /account/whitelist?accountName=...&provider=...
func (c *WhitelistController) Status(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("WhitelistController.Status"))

	req := dto.WhitelistRequest{
		AccountName: r.URL.Query().Get("accountName"),
		Provider:    r.URL.Query().Get("provider"),
	}

	exists, err := c.service.IsWhitelisted(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	resp := dto.WhitelistStatusResponse{
		AccountName: req.AccountName,
		Provider:    req.Provider,
		Whitelisted: exists,
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// handleError mapea errores del service a respuestas HTTP.
// Las fallas de store en mantenimiento de whitelist van como 400,
// no 500 — ver DESIGN.md sobre esta asimetría con el login path.
func (c *WhitelistController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrInvalidRequest):
		httperrors.WriteError(w, httperrors.ErrValidation.WithDetail("accountName and provider are required"))
	case errors.Is(err, svc.ErrWhitelistStore):
		log.Warn("whitelist store failure", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrBadRequest)
	default:
		log.Error("unexpected whitelist error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
