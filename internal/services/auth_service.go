package services

import (
	"time"

	"chat-history/config"
	chaterrors "chat-history/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
)

type AccessClaims struct {
	UserID string `json:"sub"`
	jwt.RegisteredClaims
}

// AuthService validates bearer tokens and resolves the caller identity.
type AuthService struct {
	jwtSecret     []byte
	required      bool
	defaultUserID string
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{
		jwtSecret:     []byte(cfg.JWTSecret),
		required:      cfg.AuthEnabled,
		defaultUserID: cfg.DefaultUserID,
	}
}

// Required reports whether every request must carry a valid token.
func (s *AuthService) Required() bool {
	return s.required
}

// DefaultUserID is the identity used for anonymous requests when auth is optional.
func (s *AuthService) DefaultUserID() string {
	return s.defaultUserID
}

func (s *AuthService) ParseAccessToken(tokenString string) (AccessClaims, error) {
	if tokenString == "" || len(s.jwtSecret) == 0 {
		return AccessClaims{}, chaterrors.ErrUnauthorized
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &AccessClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, chaterrors.ErrUnauthorized
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return AccessClaims{}, chaterrors.ErrUnauthorized
	}

	claims, ok := parsed.Claims.(*AccessClaims)
	if !ok || !parsed.Valid || claims.UserID == "" {
		return AccessClaims{}, chaterrors.ErrUnauthorized
	}

	return *claims, nil
}

// IssueAccessToken signs a token for userID. Used by tooling and tests.
func (s *AuthService) IssueAccessToken(userID string, ttl time.Duration) (string, error) {
	if len(s.jwtSecret) == 0 || userID == "" {
		return "", chaterrors.ErrInvalidInput
	}
	now := time.Now()
	claims := AccessClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}
