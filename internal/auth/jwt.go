package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Internal failure kinds. Callers collapse all of them into one
// unauthorized response; tests and debug logs keep the distinction.
var (
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")
	ErrNoSubject    = errors.New("token has no subject")
)

type Claims struct {
	jwt.RegisteredClaims
}

// Manager issues and validates the self-contained bearer tokens used as
// session credentials. Nothing is persisted; expiry and signature are the
// only state.
type Manager struct {
	secret    []byte
	accessTTL time.Duration
}

func NewManager(secret string, accessTTL time.Duration) *Manager {
	return &Manager{
		secret:    []byte(secret),
		accessTTL: accessTTL,
	}
}

func (m *Manager) IssueToken(username string) (string, error) {
	return m.IssueTokenAt(username, time.Now().UTC())
}

func (m *Manager) IssueTokenAt(username string, now time.Time) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(m.secret)
}

// ValidateToken returns the subject (username) carried by a valid token.
func (m *Manager) ValidateToken(tokenStr string) (string, error) {
	return m.ValidateTokenAt(tokenStr, time.Now().UTC())
}

func (m *Manager) ValidateTokenAt(tokenStr string, now time.Time) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		// Enforce HS256; any other method is treated as forged.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return m.secret, nil
	}, jwt.WithTimeFunc(func() time.Time { return now }))

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", ErrTokenExpired
		}
		return "", ErrTokenInvalid
	}

	claims, ok := token.Claims.(*Claims)

	if !ok || !token.Valid {
		return "", ErrTokenInvalid
	}

	if claims.Subject == "" {
		return "", ErrNoSubject
	}

	return claims.Subject, nil
}
