package verifier

import (
	"context"
	"errors"
	"testing"
	"time"

	jwtv5 "github.com/golang-jwt/jwt/v5"
)

const testSecret = "super-secret-do-not-ship"

func signToken(t *testing.T, secret string, claims jwtv5.MapClaims) string {
	t.Helper()
	tok := jwtv5.NewWithClaims(jwtv5.SigningMethodHS256, claims)
	s, err := tok.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func baseClaims() jwtv5.MapClaims {
	return jwtv5.MapClaims{
		"email":    "alice@example.com",
		"provider": "google",
		"sub":      "1234",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}
}

func TestStaticVerifier(t *testing.T) {
	v, err := New(Config{Mode: "static"})
	if err != nil {
		t.Fatalf("new: %v", err)
	}

	if _, err := v.Verify(context.Background(), ""); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("empty token: expected ErrTokenRejected, got %v", err)
	}
	if _, err := v.Verify(context.Background(), "   "); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("blank token: expected ErrTokenRejected, got %v", err)
	}

	id, err := v.Verify(context.Background(), "anything")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.AccountName != "foo@bar.com" || id.Provider != "google" || id.ProviderID != "1234" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func newJWT(t *testing.T, secret, issuer string) TokenVerifier {
	t.Helper()
	cfg := Config{Mode: "jwt"}
	cfg.JWT.Secret = secret
	cfg.JWT.Issuer = issuer
	v, err := New(cfg)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return v
}

func TestJWTVerifierValidToken(t *testing.T) {
	v := newJWT(t, testSecret, "")

	tok := signToken(t, testSecret, baseClaims())
	id, err := v.Verify(context.Background(), tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if id.AccountName != "alice@example.com" || id.Provider != "google" || id.ProviderID != "1234" {
		t.Fatalf("unexpected identity: %+v", id)
	}
}

func TestJWTVerifierRejections(t *testing.T) {
	v := newJWT(t, testSecret, "")
	ctx := context.Background()

	expired := baseClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	noEmail := baseClaims()
	delete(noEmail, "email")

	cases := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not.a.jwt"},
		{"wrong secret", signToken(t, "otro-secret", baseClaims())},
		{"expired", signToken(t, testSecret, expired)},
		{"missing identity claim", signToken(t, testSecret, noEmail)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := v.Verify(ctx, tc.token); !errors.Is(err, ErrTokenRejected) {
				t.Fatalf("expected ErrTokenRejected, got %v", err)
			}
		})
	}
}

func TestJWTVerifierIssuerCheck(t *testing.T) {
	v := newJWT(t, testSecret, "portero")

	good := baseClaims()
	good["iss"] = "portero"
	if _, err := v.Verify(context.Background(), signToken(t, testSecret, good)); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}

	bad := baseClaims()
	bad["iss"] = "someone-else"
	if _, err := v.Verify(context.Background(), signToken(t, testSecret, bad)); !errors.Is(err, ErrTokenRejected) {
		t.Fatalf("expected ErrTokenRejected, got %v", err)
	}
}

func TestNewRequiresSecretForJWT(t *testing.T) {
	if _, err := New(Config{Mode: "jwt"}); err == nil {
		t.Fatal("expected error for jwt mode without secret")
	}
}
