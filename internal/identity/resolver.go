// Package identity establishes who is acting on each request, either from a
// bearer token or, behind a trusted proxy, from a header.
package identity

import (
	"fmt"
	"net/http"
	"strings"

	"custody/internal/platform/config"
	dErrors "custody/pkg/domain-errors"
)

// Resolver extracts the actor id from a request.
type Resolver interface {
	ResolveActor(r *http.Request) (string, error)
}

// BearerResolver validates an Authorization: Bearer token.
type BearerResolver struct {
	tokens *JWTService
}

func NewBearerResolver(tokens *JWTService) *BearerResolver {
	return &BearerResolver{tokens: tokens}
}

func (b *BearerResolver) ResolveActor(r *http.Request) (string, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "missing or invalid Authorization header")
	}
	claims, err := b.tokens.ValidateToken(strings.TrimSpace(token))
	if err != nil {
		return "", err
	}
	return claims.Subject, nil
}

// HeaderResolver trusts an upstream-set header such as X-Actor-ID.
type HeaderResolver struct {
	header string
}

func NewHeaderResolver(header string) *HeaderResolver {
	return &HeaderResolver{header: header}
}

func (h *HeaderResolver) ResolveActor(r *http.Request) (string, error) {
	actor := strings.TrimSpace(r.Header.Get(h.header))
	if actor == "" {
		return "", dErrors.New(dErrors.CodeUnauthorized, "actor identity required")
	}
	if len(actor) > 128 {
		return "", dErrors.New(dErrors.CodeUnauthorized, "actor identity too long")
	}
	return actor, nil
}

// NewResolver builds the resolver selected by cfg.Mode.
func NewResolver(cfg config.Identity) (Resolver, error) {
	switch cfg.Mode {
	case config.IdentityModeJWT:
		return NewBearerResolver(NewJWTService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)), nil
	case config.IdentityModeHeader:
		return NewHeaderResolver(cfg.ActorHeader), nil
	default:
		return nil, fmt.Errorf("unknown identity mode %q", cfg.Mode)
	}
}
