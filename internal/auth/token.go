package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/testlane/testlane/internal/config"
	"go.uber.org/zap"
)

// TokenIssuer mints and validates the stateless bearer tokens. Tokens carry
// only the user id and the time bounds; company and role are looked up per
// request by the resolver.
type TokenIssuer struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewTokenIssuer(authConfig config.Auth) (*TokenIssuer, error) {
	if authConfig.TokenSigningSecret == "" {
		return nil, errors.New("token signing secret is not configured")
	}

	ttl, err := time.ParseDuration(authConfig.TokenTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ttl: %w", err)
	}

	return &TokenIssuer{
		secret: []byte(authConfig.TokenSigningSecret),
		ttl:    ttl,
		issuer: authConfig.TokenIssuer,
	}, nil
}

func (t *TokenIssuer) Issue(userID uuid.UUID) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(t.ttl)

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
		IssuedAt:  jwt.NewNumericDate(now),
		NotBefore: jwt.NewNumericDate(now),
		Issuer:    t.issuer,
		Audience:  []string{t.issuer},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signedToken, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signedToken, expiresAt, nil
}

// Validate fails closed: any parse, signature, issuer or expiry problem yields
// ErrUnauthenticated, never a partially trusted identity.
func (t *TokenIssuer) Validate(rawToken string) (uuid.UUID, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithIssuedAt(),
		jwt.WithExpirationRequired(),
		jwt.WithIssuer(t.issuer),
	)

	token, err := parser.Parse(rawToken, func(token *jwt.Token) (any, error) {
		return t.secret, nil
	})
	if err != nil || !token.Valid {
		zap.S().Named("auth").Debugw("token validation failed", "error", err)
		return uuid.Nil, ErrUnauthenticated
	}

	subject, err := token.Claims.GetSubject()
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	userID, err := uuid.Parse(subject)
	if err != nil {
		return uuid.Nil, ErrUnauthenticated
	}

	return userID, nil
}
