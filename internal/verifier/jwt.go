package verifier

import (
	"context"
	"strings"

	jwtv5 "github.com/golang-jwt/jwt/v5"

	"github.com/dropDatabas3/portero/internal/observability/logger"
)

// jwtVerifier valida el token como JWT firmado con HMAC.
// Claims esperadas: email (accountName), provider, sub (providerID).
type jwtVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func newJWTVerifier(cfg Config) *jwtVerifier {
	return &jwtVerifier{
		secret:   []byte(cfg.JWT.Secret),
		issuer:   cfg.JWT.Issuer,
		audience: cfg.JWT.Audience,
	}
}

func (v *jwtVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		// token vacío: ni siquiera intentamos parsear
		return nil, ErrTokenRejected
	}

	log := logger.From(ctx).With(logger.Component("verifier.jwt"))

	opts := []jwtv5.ParserOption{jwtv5.WithValidMethods([]string{"HS256", "HS384", "HS512"})}
	if v.issuer != "" {
		opts = append(opts, jwtv5.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwtv5.WithAudience(v.audience))
	}

	claims := jwtv5.MapClaims{}
	parsed, err := jwtv5.ParseWithClaims(token, claims, func(t *jwtv5.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil || !parsed.Valid {
		// la causa concreta no se propaga: no filtramos por qué falló
		log.Debug("token parse failed", logger.Err(err))
		return nil, ErrTokenRejected
	}

	id := Identity{
		AccountName: claimString(claims, "email"),
		Provider:    claimString(claims, "provider"),
		ProviderID:  claimString(claims, "sub"),
	}
	if id.AccountName == "" || id.Provider == "" || id.ProviderID == "" {
		log.Debug("token missing identity claims")
		return nil, ErrTokenRejected
	}
	return &id, nil
}

func claimString(claims jwtv5.MapClaims, key string) string {
	if v, ok := claims[key].(string); ok {
		return strings.TrimSpace(v)
	}
	return ""
}
