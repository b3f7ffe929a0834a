package middlewares_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mwangikm/studenthub/internal/auth"
	"github.com/mwangikm/studenthub/internal/domain/user"
	"github.com/mwangikm/studenthub/internal/http/middlewares"
)

type fakeResolver struct {
	resolveFn func(ctx context.Context, token string) (user.User, error)
}

func (f *fakeResolver) ResolveCurrentUser(ctx context.Context, token string) (user.User, error) {
	if f.resolveFn != nil {
		return f.resolveFn(ctx, token)
	}

	return user.User{}, auth.ErrInvalidCredentials
}

func protectedRouter(resolver middlewares.UserResolver) *gin.Engine {
	r := gin.New()
	mw := middlewares.NewAuthMiddleware(resolver)

	r.GET("/me", mw.RequireAuth(), func(c *gin.Context) {
		name, _ := middlewares.UsernameFromContext(c)
		id, _ := middlewares.UserIDFromContext(c)

		c.JSON(http.StatusOK, gin.H{"username": name, "id": id})
	})

	return r
}

func TestRequireAuth(t *testing.T) {
	resolver := &fakeResolver{
		resolveFn: func(ctx context.Context, token string) (user.User, error) {
			if token == "good-token" {
				return user.User{ID: 7, Username: "johndoe", IsActive: true}, nil
			}
			return user.User{}, auth.ErrInvalidCredentials
		},
	}

	tests := []struct {
		name           string
		authHeader     string
		wantStatusCode int
	}{
		{name: "success", authHeader: "Bearer good-token", wantStatusCode: http.StatusOK},
		{name: "missing_header", authHeader: "", wantStatusCode: http.StatusUnauthorized},
		{name: "not_bearer", authHeader: "Basic abc123", wantStatusCode: http.StatusUnauthorized},
		{name: "empty_token", authHeader: "Bearer ", wantStatusCode: http.StatusUnauthorized},
		{name: "bad_token", authHeader: "Bearer forged", wantStatusCode: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			r := protectedRouter(resolver)

			req := httptest.NewRequest(http.MethodGet, "/me", nil)

			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}
		})
	}
}
