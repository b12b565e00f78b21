// Package auth verifies Supabase-issued access tokens.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/alice-reader-backend/internal/config"
	"github.com/heartmarshall/alice-reader-backend/internal/domain"
)

// Verifier validates HS256 access tokens signed with the project's JWT secret.
type Verifier struct {
	secret   []byte
	issuer   string
	audience string
}

// NewVerifier creates a verifier from auth configuration. An empty issuer
// or audience disables that check.
func NewVerifier(cfg config.AuthConfig) *Verifier {
	return &Verifier{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
	}
}

// supabaseClaims are the claims Supabase puts into an access token. An
// operator role granted through app_metadata takes precedence over the
// database role in "role".
type supabaseClaims struct {
	jwt.RegisteredClaims
	Role        string `json:"role,omitempty"`
	Email       string `json:"email,omitempty"`
	AppMetadata struct {
		Role string `json:"role,omitempty"`
	} `json:"app_metadata"`
}

// ValidateToken parses and validates an access token and returns the
// caller's identity.
func (v *Verifier) ValidateToken(_ context.Context, tokenString string) (Identity, error) {
	if tokenString == "" {
		return Identity{}, errors.New("token is empty")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	claims := &supabaseClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Identity{}, fmt.Errorf("parse token: %w", err)
	}
	if !token.Valid {
		return Identity{}, errors.New("invalid token claims")
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("invalid subject UUID: %w", err)
	}

	return Identity{
		UserID: userID,
		Role:   claims.role(),
		Email:  claims.Email,
	}, nil
}

func (c *supabaseClaims) role() domain.UserRole {
	if r := domain.UserRole(c.AppMetadata.Role); r.IsValid() {
		return r
	}
	if r := domain.UserRole(c.Role); r.IsValid() {
		return r
	}
	return domain.UserRoleAuthenticated
}
