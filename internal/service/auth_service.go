package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stemsi/coursehub-backend/internal/config"
)

// Common auth errors.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims extends JWT standard claims with the caller identity.
type Claims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

// TokenIdentity is the identity payload a client exchanges for a token.
type TokenIdentity struct {
	Email string `json:"email" binding:"required,email,max=255"`
	Name  string `json:"name" binding:"max=100"`
}

// AuthService issues and verifies bearer tokens signed with the shared secret.
type AuthService struct {
	secret []byte
	expiry time.Duration
	now    func() time.Time
}

// NewAuthService creates a new AuthService.
func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.JWTExpiry,
		now:    time.Now,
	}
}

// IssueToken signs a time-limited token for the identity. There is no refresh
// or revocation; a token is valid until it expires.
func (s *AuthService) IssueToken(identity TokenIdentity) (string, error) {
	now := s.now()
	email := strings.ToLower(strings.TrimSpace(identity.Email))

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		Email: email,
		Name:  identity.Name,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// ValidateToken parses and validates a JWT, returning the claims.
// Expired tokens yield ErrTokenExpired; every other failure yields ErrTokenInvalid.
func (s *AuthService) ValidateToken(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	}, jwt.WithTimeFunc(s.now), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %v", ErrTokenExpired, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Email == "" {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
