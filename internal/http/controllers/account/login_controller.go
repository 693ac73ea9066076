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

// LoginController maneja POST /account/login.
type LoginController struct {
	service svc.LoginService
}

// NewLoginController crea un nuevo login controller.
func NewLoginController(service svc.LoginService) *LoginController {
	return &LoginController{service: service}
}

// Login procesa el request de login.
// POST /account/login  body: {"token": "..."}
func (c *LoginController) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.From(ctx).With(logger.Layer("controller"), logger.Op("LoginController.Login"))

	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.WriteError(w, httperrors.ErrInvalidJSON)
		return
	}

	result, err := c.service.Login(ctx, req)
	if err != nil {
		c.handleError(w, err, log)
		return
	}

	resp := dto.LoginResponse{
		User: result.AccountName,
		Role: result.Role,
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(resp)
}

// handleError mapea errores del service a respuestas HTTP.
// Token rechazado y no-whitelisteado comparten el mismo 403.
func (c *LoginController) handleError(w http.ResponseWriter, err error, log *zap.Logger) {
	switch {
	case errors.Is(err, svc.ErrAccessDenied):
		httperrors.WriteError(w, httperrors.ErrForbidden)
	case errors.Is(err, svc.ErrStoreFailure), errors.Is(err, svc.ErrInvalidIdentity):
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	default:
		log.Error("unexpected login error", logger.Err(err))
		httperrors.WriteError(w, httperrors.ErrInternalServerError)
	}
}
