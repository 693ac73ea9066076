package account

import (
	"context"
	"errors"
	"fmt"

	dto "github.com/dropDatabas3/portero/internal/http/dto/account"
	"github.com/dropDatabas3/portero/internal/metrics"
	"github.com/dropDatabas3/portero/internal/observability/logger"
	"github.com/dropDatabas3/portero/internal/store/core"
	"github.com/dropDatabas3/portero/internal/validation"
	"github.com/dropDatabas3/portero/internal/verifier"
)

// Errores de login
var (
	// ErrAccessDenied cubre token rechazado Y cuenta no whitelisteada:
	// el caller no puede distinguir entre ambos a propósito.
	ErrAccessDenied = fmt.Errorf("access denied")

	// ErrStoreFailure es cualquier falla de storage durante el login.
	ErrStoreFailure = fmt.Errorf("store failure")

	// ErrInvalidIdentity: el verifier devolvió una identidad con campos
	// vacíos. Es un bug del verifier o del emisor del token, no del
	// caller, así que se trata como falla interna.
	ErrInvalidIdentity = fmt.Errorf("invalid verified identity")
)

// LoginDeps contiene las dependencias para el login service.
type LoginDeps struct {
	Store    core.Repository
	Verifier verifier.TokenVerifier
}

type loginService struct {
	deps LoginDeps
}

// NewLoginService crea un nuevo servicio de login.
func NewLoginService(deps LoginDeps) LoginService {
	return &loginService{deps: deps}
}

// Login ejecuta el workflow de admisión sobre un solo call:
// verify → whitelist check → register → resultado.
//
// La identidad se deriva SIEMPRE del token verificado, nunca del payload:
// las keys de whitelist y registro salen del verifier, así un caller no
// puede registrar un nombre whitelisteado bajo un provider-id propio.
// No hay estado entre calls ni locks de negocio: la corrección bajo
// logins concurrentes descansa en el insert-or-confirm del store.
func (s *loginService) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResult, error) {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component("account.login"),
		logger.Op("Login"),
	)

	// Paso 1: Verificar el token. Cualquier rechazo es el mismo outcome.
	id, err := s.deps.Verifier.Verify(ctx, in.Token)
	if err != nil {
		log.Info("login denied", logger.Outcome("forbidden"))
		metrics.LoginsTotal.WithLabelValues("forbidden").Inc()
		return nil, ErrAccessDenied
	}

	// Una identidad con campos vacíos no toca el store: las keys de
	// whitelist y registro serían inválidas.
	if !validation.ValidRegisterRequest(id.AccountName, id.Provider, id.ProviderID) {
		log.Error("verifier returned incomplete identity")
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, ErrInvalidIdentity
	}

	log = log.With(logger.AccountName(id.AccountName), logger.Provider(id.Provider))

	// Paso 2: Whitelist check con la identidad verificada.
	whitelisted, err := s.deps.Store.WhitelistExists(ctx, id.AccountName, id.Provider)
	if err != nil {
		log.Error("whitelist check failed", logger.Err(err))
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: whitelist check: %v", ErrStoreFailure, err)
	}
	if !whitelisted {
		// mismo outcome que token inválido: no filtramos cuál de los dos fue
		log.Info("login denied", logger.Outcome("forbidden"))
		metrics.LoginsTotal.WithLabelValues("forbidden").Inc()
		return nil, ErrAccessDenied
	}

	// Paso 3: Registrar en cada login (insert-or-confirm). Login y primer
	// registro son el mismo code path; el repeat es un no-op que conserva
	// role y provider_id originales.
	acct := &core.Account{
		AccountName: id.AccountName,
		Provider:    id.Provider,
		ProviderID:  id.ProviderID,
		Role:        core.RoleUser,
	}
	if err := s.deps.Store.InsertAccount(ctx, acct); err != nil {
		log.Error("account registration failed", logger.Err(err))
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: register: %v", ErrStoreFailure, err)
	}

	// Paso 4: Resolver el role persistido. En un repeat login devolvemos
	// el role original de la cuenta, no necesariamente user.
	stored, err := s.deps.Store.GetAccount(ctx, id.AccountName, id.Provider)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// el insert recién confirmó la cuenta; que no esté es un bug
			log.Error("registered account missing", logger.Err(err))
		} else {
			log.Error("account lookup failed", logger.Err(err))
		}
		metrics.LoginsTotal.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("%w: account lookup: %v", ErrStoreFailure, err)
	}

	log.Info("login ok", logger.Outcome("ok"))
	metrics.LoginsTotal.WithLabelValues("ok").Inc()
	return &dto.LoginResult{
		AccountName: stored.AccountName,
		Role:        stored.Role.String(),
	}, nil
}
