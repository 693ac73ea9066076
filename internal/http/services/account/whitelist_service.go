package account

import (
	"context"
	"fmt"
	"strings"

	dto "github.com/dropDatabas3/portero/internal/http/dto/account"
	"github.com/dropDatabas3/portero/internal/metrics"
	"github.com/dropDatabas3/portero/internal/observability/logger"
	"github.com/dropDatabas3/portero/internal/store/core"
	"github.com/dropDatabas3/portero/internal/validation"
)

// Errores de whitelist
var (
	ErrInvalidRequest = fmt.Errorf("invalid whitelist request")

	// ErrWhitelistStore: falla de storage en el endpoint de mantenimiento.
	// El controller lo mapea a 400 (no 500): asimetría heredada del
	// comportamiento original, documentada en DESIGN.md.
	ErrWhitelistStore = fmt.Errorf("whitelist store failure")
)

// WhitelistDeps contiene las dependencias del whitelist service.
type WhitelistDeps struct {
	Store core.Repository
}

type whitelistService struct {
	deps WhitelistDeps
}

// NewWhitelistService crea el servicio de mantenimiento de whitelist.
func NewWhitelistService(deps WhitelistDeps) WhitelistService {
	return &whitelistService{deps: deps}
}

// Whitelist agrega el par (accountName, provider) a la whitelist.
// Idempotente de punta a punta: los operadores lo llaman repetido y
// cada repeat resuelve a éxito sin duplicar.
func (s *whitelistService) Whitelist(ctx context.Context, in dto.WhitelistRequest) error {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("account.whitelist"),
		logger.Op("Whitelist"),
	)

	// Paso 1: Validación estructural, pura.
	if !validation.ValidWhitelistRequest(in.AccountName, in.Provider) {
		return ErrInvalidRequest
	}
	accountName := strings.TrimSpace(in.AccountName)
	provider := strings.TrimSpace(in.Provider)

	log = log.With(logger.AccountName(accountName), logger.Provider(provider))

	// Paso 2: Check previo. Es cortesía (evita un write innecesario);
	// la corrección la garantiza el constraint único del storage.
	exists, err := s.deps.Store.WhitelistExists(ctx, accountName, provider)
	if err != nil {
		log.Error("whitelist check failed", logger.Err(err))
		metrics.WhitelistInsertsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: exists: %v", ErrWhitelistStore, err)
	}
	if exists {
		log.Debug("already whitelisted")
		metrics.WhitelistInsertsTotal.WithLabelValues("noop").Inc()
		return nil
	}

	// Paso 3: Insert-or-confirm. Si otro caller ganó la carrera, el
	// store lo resuelve como éxito igual.
	entry := &core.WhitelistEntry{AccountName: accountName, Provider: provider}
	if err := s.deps.Store.InsertWhitelistEntry(ctx, entry); err != nil {
		log.Error("whitelist insert failed", logger.Err(err))
		metrics.WhitelistInsertsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("%w: insert: %v", ErrWhitelistStore, err)
	}

	log.Info("account whitelisted")
	metrics.WhitelistInsertsTotal.WithLabelValues("created").Inc()
	return nil
}

// IsWhitelisted consulta la whitelist sin modificarla.
func (s *whitelistService) IsWhitelisted(ctx context.Context, in dto.WhitelistRequest) (bool, error) {
	if !validation.ValidWhitelistRequest(in.AccountName, in.Provider) {
		return false, ErrInvalidRequest
	}
	exists, err := s.deps.Store.WhitelistExists(ctx,
		strings.TrimSpace(in.AccountName), strings.TrimSpace(in.Provider))
	if err != nil {
		return false, fmt.Errorf("%w: exists: %v", ErrWhitelistStore, err)
	}
	return exists, nil
}
