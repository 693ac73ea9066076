package router

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	accountctrl "github.com/dropDatabas3/portero/internal/http/controllers/account"
	healthctrl "github.com/dropDatabas3/portero/internal/http/controllers/health"
	svc "github.com/dropDatabas3/portero/internal/http/services/account"
	"github.com/dropDatabas3/portero/internal/store/core"
	storemem "github.com/dropDatabas3/portero/internal/store/memory"
	"github.com/dropDatabas3/portero/internal/verifier"
)

func newTestRouter(t *testing.T) (http.Handler, core.Repository) {
	t.Helper()
	store := storemem.New()
	tv, err := verifier.New(verifier.Config{Mode: "static"})
	if err != nil {
		t.Fatalf("verifier: %v", err)
	}
	services := svc.NewServices(svc.Deps{Store: store, Verifier: tv})
	return New(Deps{
		AccountControllers: accountctrl.NewControllers(services),
		HealthController:   healthctrl.NewController(store),
	}), store
}

func doReq(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var r *http.Request
	if body != "" {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, r)
	return rec
}

// Flujo completo por el router real: whitelist, login, status y probes.
func TestAdmissionFlow(t *testing.T) {
	h, _ := newTestRouter(t)

	// el verifier static resuelve cualquier token a foo@bar.com/google
	rec := doReq(h, http.MethodPost, "/account/login", `{"token":"tok"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("login before whitelist: want 403, got %d", rec.Code)
	}

	rec = doReq(h, http.MethodPost, "/account/whitelist",
		`{"accountName":"foo@bar.com","provider":"google"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("whitelist: want 200, got %d body=%s", rec.Code, rec.Body.String())
	}

	rec = doReq(h, http.MethodPost, "/account/login", `{"token":"tok"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("login after whitelist: want 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var login struct {
		User string `json:"user"`
		Role string `json:"role"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &login); err != nil {
		t.Fatalf("decode login: %v", err)
	}
	if login.User != "foo@bar.com" || login.Role != "user" {
		t.Fatalf("login response: %+v", login)
	}

	rec = doReq(h, http.MethodGet,
		"/account/whitelist?accountName=foo%40bar.com&provider=google", "")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), `"whitelisted":true`) {
		t.Fatalf("status: %d %s", rec.Code, rec.Body.String())
	}
}

// El método lo impone el router, no los controllers.
func TestMethodEnforcedByRouter(t *testing.T) {
	h, _ := newTestRouter(t)
	for _, path := range []string{"/account/login", "/account/whitelist"} {
		rec := doReq(h, http.MethodPut, path, `{}`)
		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("%s: want 405, got %d", path, rec.Code)
		}
	}
}

func TestRequestIDHeaderPropagates(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := doReq(h, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz: %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Fatal("expected X-Request-ID header")
	}
	if rec.Header().Get("Cache-Control") != "no-store" {
		t.Fatalf("expected no-store, got %q", rec.Header().Get("Cache-Control"))
	}
}

func TestReadyzReportsStore(t *testing.T) {
	h, _ := newTestRouter(t)
	rec := doReq(h, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("readyz: %d", rec.Code)
	}
}

// brokenStore para readyz degradado.
type brokenStore struct{ core.Repository }

func (brokenStore) Ping(ctx context.Context) error {
	return context.DeadlineExceeded
}

func TestReadyzDegraded(t *testing.T) {
	store := brokenStore{Repository: storemem.New()}
	tv, _ := verifier.New(verifier.Config{})
	services := svc.NewServices(svc.Deps{Store: store, Verifier: tv})
	h := New(Deps{
		AccountControllers: accountctrl.NewControllers(services),
		HealthController:   healthctrl.NewController(store),
	})

	rec := doReq(h, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("readyz degraded: want 503, got %d", rec.Code)
	}
}
