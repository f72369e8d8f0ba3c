package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrMissingToken indicates the request carried no session token.
var ErrMissingToken = errors.New("missing session token")

// Claims are the session token claims. Subject holds the user id.
type Claims struct {
	Role Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
	issuer string
	expiry time.Duration
}

// NewTokenManager creates a TokenManager from the given configuration.
func NewTokenManager(cfg *Config) *TokenManager {
	return &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		expiry: cfg.ExpiryDuration(),
	}
}

// Issue signs a token for the principal, valid for the configured expiry.
func (tm *TokenManager) Issue(p Principal) (string, error) {
	if p.ID == uuid.Nil {
		return "", fmt.Errorf("principal id required")
	}
	if p.Role == RoleUnknown {
		return "", fmt.Errorf("principal role required")
	}

	now := time.Now()
	claims := Claims{
		Role: p.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.ID.String(),
			Issuer:    tm.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tm.expiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses and validates a token and returns its principal.
// Failures wrap the jwt sentinel errors so callers can tell expiry from
// other invalid tokens.
func (tm *TokenManager) Verify(raw string) (Principal, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(
		raw,
		claims,
		func(*jwt.Token) (any, error) { return tm.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(tm.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return Principal{}, fmt.Errorf("verify token: %w", err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Principal{}, fmt.Errorf("verify token subject: %w", jwt.ErrTokenInvalidClaims)
	}

	return Principal{ID: id, Role: claims.Role}, nil
}
