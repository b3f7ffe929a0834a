package middlewares

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mwangikm/studenthub/internal/domain/user"
)

// Keep this small interface so tests can fake it easily.
type UserResolver interface {
	ResolveCurrentUser(ctx context.Context, token string) (user.User, error)
}

type AuthMiddleware struct {
	authn UserResolver
}

func NewAuthMiddleware(authn UserResolver) *AuthMiddleware {
	return &AuthMiddleware{authn: authn}
}

const (
	ctxUserIDKey   = "auth.userID"
	ctxUsernameKey = "auth.username"
)

// RequireAuth resolves the bearer token to a user record on every
// protected request. Every failure, from a missing header to an expired
// signature to a deleted account, produces the same 401 body.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			abortUnauthorized(c)
			return
		}

		raw := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer"))
		if raw == "" {
			abortUnauthorized(c)
			return
		}

		u, err := m.authn.ResolveCurrentUser(c.Request.Context(), raw)
		if err != nil {
			abortUnauthorized(c)
			return
		}

		c.Set(ctxUserIDKey, u.ID)
		c.Set(ctxUsernameKey, u.Username)

		c.Next()
	}
}

func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error": gin.H{
			"code":    "unauthorized",
			"message": "Could not validate credentials",
		},
	})
}

// Helpers so handlers don't need to know the magic keys.

func UsernameFromContext(c *gin.Context) (string, bool) {
	v, ok := c.Get(ctxUsernameKey)
	if !ok {
		return "", false
	}
	name, ok := v.(string)
	return name, ok
}

func UserIDFromContext(c *gin.Context) (int64, bool) {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(int64)
	return id, ok
}
