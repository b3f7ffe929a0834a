package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mwangikm/studenthub/internal/auth"
	"github.com/mwangikm/studenthub/internal/domain/user"
	"github.com/mwangikm/studenthub/internal/http/handlers"
)

// Make sure Gin does not spam the console during the test

func init() {
	gin.SetMode(gin.TestMode)
}

// small helper function which returns the gin engine to mount one handler per test

func setupRouter(method, path string, h gin.HandlerFunc) *gin.Engine {
	r := gin.New()

	r.Handle(method, path, h)

	return r
}

// Fakes for the handlers.CredentialVerifier / TokenIssuer / UserWriter interfaces

type fakeVerifier struct {
	verifyFn func(ctx context.Context, username, password string) (user.User, error)
}

func (f *fakeVerifier) VerifyCredentials(ctx context.Context, username, password string) (user.User, error) {
	if f.verifyFn != nil {
		return f.verifyFn(ctx, username, password)
	}

	return user.User{}, auth.ErrInvalidCredentials
}

type fakeIssuer struct {
	issueFn func(username string) (string, error)
}

func (f *fakeIssuer) IssueToken(username string) (string, error) {
	if f.issueFn != nil {
		return f.issueFn(username)
	}

	return "fake-token", nil
}

type fakeUsersRepo struct {
	createFn func(ctx context.Context, username, passwordHash string) (user.User, error)
}

func (f *fakeUsersRepo) Create(ctx context.Context, username, passwordHash string) (user.User, error) {
	if f.createFn != nil {
		return f.createFn(ctx, username, passwordHash)
	}

	return user.User{}, nil
}

func TestLoginHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		verifySetup    func(*fakeVerifier)
		wantStatusCode int
		wantToken      string
	}{
		{
			name: "success",
			body: `{"username": "johndoe", "password": "secretpassword"}`,
			verifySetup: func(f *fakeVerifier) {
				f.verifyFn = func(ctx context.Context, username, password string) (user.User, error) {
					return user.User{ID: 1, Username: username, IsActive: true}, nil
				}
			},
			wantStatusCode: http.StatusOK,
			wantToken:      "fake-token",
		},
		{
			name: "bad_credentials",
			body: `{"username": "johndoe", "password": "wrong"}`,
			verifySetup: func(f *fakeVerifier) {
				f.verifyFn = func(ctx context.Context, username, password string) (user.User, error) {
					return user.User{}, auth.ErrInvalidCredentials
				}
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name: "validation_error",
			body: `{"username": "johndoe"}`,
			verifySetup: func(f *fakeVerifier) {
				// missing password, the verifier should never be reached
			},
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			verifier := &fakeVerifier{}

			if tt.verifySetup != nil {
				tt.verifySetup(verifier)
			}

			h := handlers.NewAuthHandler(verifier, &fakeIssuer{}, &fakeUsersRepo{})
			r := setupRouter(http.MethodPost, "/token", h.Login)

			req := httptest.NewRequest(http.MethodPost, "/token", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var resp struct {
					AccessToken string `json:"access_token"`
					TokenType   string `json:"token_type"`
				}
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to unmarshal response: %v", err)
				}
				if resp.AccessToken != tt.wantToken {
					t.Fatalf("got token %q, want %q", resp.AccessToken, tt.wantToken)
				}
				if resp.TokenType != "bearer" {
					t.Fatalf("got token_type %q, want %q", resp.TokenType, "bearer")
				}
			}
		})
	}
}

func TestCreateUserHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		repoSetup      func(*fakeUsersRepo)
		wantStatusCode int
	}{
		{
			name: "success",
			body: `{"username": "newuser", "password": "longenough"}`,
			repoSetup: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, username, passwordHash string) (user.User, error) {
					if passwordHash == "longenough" {
						return user.User{}, errors.New("password stored in clear")
					}
					return user.User{ID: 7, Username: username, IsActive: true}, nil
				}
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "username_taken",
			body: `{"username": "newuser", "password": "longenough"}`,
			repoSetup: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, username, passwordHash string) (user.User, error) {
					return user.User{}, user.ErrUsernameTaken
				}
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "password_too_short",
			body: `{"username": "newuser", "password": "short"}`,
			repoSetup: func(f *fakeUsersRepo) {
				// validation rejects this before the repo is touched
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name: "repo_error",
			body: `{"username": "newuser", "password": "longenough"}`,
			repoSetup: func(f *fakeUsersRepo) {
				f.createFn = func(ctx context.Context, username, passwordHash string) (user.User, error) {
					return user.User{}, errors.New("db error")
				}
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			usersRepo := &fakeUsersRepo{}

			if tt.repoSetup != nil {
				tt.repoSetup(usersRepo)
			}

			h := handlers.NewAuthHandler(&fakeVerifier{}, &fakeIssuer{}, usersRepo)
			r := setupRouter(http.MethodPost, "/users", h.CreateUser)

			req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")

			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != tt.wantStatusCode {
				t.Fatalf("got status %d, want %d, body=%s", w.Code, tt.wantStatusCode, w.Body.String())
			}

			if tt.wantStatusCode == http.StatusCreated {
				if bytes.Contains(w.Body.Bytes(), []byte("password")) {
					t.Fatalf("response leaks password material: %s", w.Body.String())
				}
			}
		})
	}
}
