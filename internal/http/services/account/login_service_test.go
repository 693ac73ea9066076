package account

import (
	"context"
	"errors"
	"testing"

	dto "github.com/dropDatabas3/portero/internal/http/dto/account"
	"github.com/dropDatabas3/portero/internal/store/core"
	storemem "github.com/dropDatabas3/portero/internal/store/memory"
	"github.com/dropDatabas3/portero/internal/verifier"
)

// fakeVerifier devuelve una identidad fija o rechaza todo.
type fakeVerifier struct {
	id     verifier.Identity
	reject bool
}

func (f *fakeVerifier) Verify(ctx context.Context, token string) (*verifier.Identity, error) {
	if f.reject || token == "" {
		return nil, verifier.ErrTokenRejected
	}
	id := f.id
	return &id, nil
}

// trackingRepo envuelve el store en memoria y cuenta calls por método.
type trackingRepo struct {
	core.Repository
	calls      map[string]int
	failExists bool
	failInsert bool
	failGet    bool
}

func newTrackingRepo() *trackingRepo {
	return &trackingRepo{Repository: storemem.New(), calls: map[string]int{}}
}

func (r *trackingRepo) WhitelistExists(ctx context.Context, a, p string) (bool, error) {
	r.calls["WhitelistExists"]++
	if r.failExists {
		return false, errors.New("db down")
	}
	return r.Repository.WhitelistExists(ctx, a, p)
}

func (r *trackingRepo) InsertAccount(ctx context.Context, a *core.Account) error {
	r.calls["InsertAccount"]++
	if r.failInsert {
		return errors.New("db down")
	}
	return r.Repository.InsertAccount(ctx, a)
}

func (r *trackingRepo) GetAccount(ctx context.Context, a, p string) (*core.Account, error) {
	r.calls["GetAccount"]++
	if r.failGet {
		return nil, errors.New("db down")
	}
	return r.Repository.GetAccount(ctx, a, p)
}

var aliceID = verifier.Identity{
	AccountName: "alice@example.com",
	Provider:    "google",
	ProviderID:  "1234",
}

func seedWhitelist(t *testing.T, repo core.Repository, name, provider string) {
	t.Helper()
	err := repo.InsertWhitelistEntry(context.Background(),
		&core.WhitelistEntry{AccountName: name, Provider: provider})
	if err != nil {
		t.Fatalf("seed whitelist: %v", err)
	}
}

func TestLoginRejectedTokenTouchesNoStore(t *testing.T) {
	repo := newTrackingRepo()
	svc := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{reject: true}})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Token: "whatever"})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if len(repo.calls) != 0 {
		t.Fatalf("store must not be touched on rejected token, calls=%v", repo.calls)
	}
}

func TestLoginNotWhitelistedSameDenialNoRegistration(t *testing.T) {
	repo := newTrackingRepo()
	svc := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{id: aliceID}})

	_, err := svc.Login(context.Background(), dto.LoginRequest{Token: "tok"})
	if !errors.Is(err, ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
	if repo.calls["InsertAccount"] != 0 {
		t.Fatal("a denied login must not create an account")
	}
	if ok, _ := repo.AccountExists(context.Background(), aliceID.AccountName, aliceID.Provider); ok {
		t.Fatal("no account should exist after denial")
	}
}

func TestLoginFirstTimeRegistersAsUser(t *testing.T) {
	repo := newTrackingRepo()
	seedWhitelist(t, repo, aliceID.AccountName, aliceID.Provider)
	svc := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{id: aliceID}})

	res, err := svc.Login(context.Background(), dto.LoginRequest{Token: "tok"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.AccountName != "alice@example.com" || res.Role != "user" {
		t.Fatalf("unexpected result: %+v", res)
	}

	stored, err := repo.GetAccount(context.Background(), aliceID.AccountName, aliceID.Provider)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ProviderID != "1234" || stored.Role != core.RoleUser {
		t.Fatalf("stored account: %+v", stored)
	}
}

func TestLoginRepeatPreservesStoredRole(t *testing.T) {
	repo := newTrackingRepo()
	seedWhitelist(t, repo, aliceID.AccountName, aliceID.Provider)
	// cuenta preexistente con role admin (promovida fuera de banda)
	err := repo.InsertAccount(context.Background(), &core.Account{
		AccountName: aliceID.AccountName,
		Provider:    aliceID.Provider,
		ProviderID:  "1234",
		Role:        core.RoleAdmin,
	})
	if err != nil {
		t.Fatalf("seed account: %v", err)
	}

	svc := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{id: aliceID}})
	res, err := svc.Login(context.Background(), dto.LoginRequest{Token: "tok"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Role != "admin" {
		t.Fatalf("repeat login must return the stored role, got %q", res.Role)
	}
}

func TestLoginIncompleteIdentityNeverPersisted(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*verifier.Identity)
	}{
		{"empty provider id", func(id *verifier.Identity) { id.ProviderID = "" }},
		{"blank provider id", func(id *verifier.Identity) { id.ProviderID = "  " }},
		{"empty provider", func(id *verifier.Identity) { id.Provider = "" }},
		{"empty account name", func(id *verifier.Identity) { id.AccountName = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTrackingRepo()
			seedWhitelist(t, repo, aliceID.AccountName, aliceID.Provider)

			broken := aliceID
			tc.mut(&broken)
			svc := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{id: broken}})

			_, err := svc.Login(context.Background(), dto.LoginRequest{Token: "tok"})
			if !errors.Is(err, ErrInvalidIdentity) {
				t.Fatalf("expected ErrInvalidIdentity, got %v", err)
			}
			if errors.Is(err, ErrAccessDenied) {
				t.Fatal("incomplete identity must not present as denial")
			}
			if len(repo.calls) != 0 {
				t.Fatalf("an incomplete identity must never reach the store, calls=%v", repo.calls)
			}
		})
	}
}

func TestLoginRepeatWithDifferentProviderIDIsIdentical(t *testing.T) {
	repo := newTrackingRepo()
	seedWhitelist(t, repo, aliceID.AccountName, aliceID.Provider)

	first := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{id: aliceID}})
	res1, err := first.Login(context.Background(), dto.LoginRequest{Token: "tok"})
	if err != nil {
		t.Fatalf("first login: %v", err)
	}

	// el provider reemitió el token con otro sub para la misma cuenta
	rotated := aliceID
	rotated.ProviderID = "5678"
	second := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{id: rotated}})
	res2, err := second.Login(context.Background(), dto.LoginRequest{Token: "tok"})
	if err != nil {
		t.Fatalf("repeat login: %v", err)
	}

	if *res1 != *res2 {
		t.Fatalf("repeat login changed the response: %+v vs %+v", res1, res2)
	}
	stored, err := repo.GetAccount(context.Background(), aliceID.AccountName, aliceID.Provider)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.ProviderID != "1234" {
		t.Fatalf("repeat login must not touch the stored provider id, got %q", stored.ProviderID)
	}
}

func TestLoginStoreFailuresAreStoreErrors(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*trackingRepo)
	}{
		{"whitelist check", func(r *trackingRepo) { r.failExists = true }},
		{"registration", func(r *trackingRepo) { r.failInsert = true }},
		{"lookup", func(r *trackingRepo) { r.failGet = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newTrackingRepo()
			seedWhitelist(t, repo, aliceID.AccountName, aliceID.Provider)
			tc.mut(repo)
			svc := NewLoginService(LoginDeps{Store: repo, Verifier: &fakeVerifier{id: aliceID}})

			_, err := svc.Login(context.Background(), dto.LoginRequest{Token: "tok"})
			if !errors.Is(err, ErrStoreFailure) {
				t.Fatalf("expected ErrStoreFailure, got %v", err)
			}
			if errors.Is(err, ErrAccessDenied) {
				t.Fatal("store failure must not present as denial")
			}
		})
	}
}
