package auth_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mwangikm/studenthub/internal/auth"
	"github.com/mwangikm/studenthub/internal/domain/user"
	"github.com/mwangikm/studenthub/internal/security"
)

type fakeUserStore struct {
	getFn func(ctx context.Context, username string) (user.User, error)
}

func (f *fakeUserStore) GetByUsername(ctx context.Context, username string) (user.User, error) {
	if f.getFn != nil {
		return f.getFn(ctx, username)
	}

	return user.User{}, user.ErrNotFound
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func storeWithUser(t *testing.T, username, password string) *fakeUserStore {
	t.Helper()

	hash, err := security.HashPassword(password)

	if err != nil {
		t.Fatalf("hashing password failed: %v", err)
	}

	u := user.User{ID: 1, Username: username, PasswordHash: hash, IsActive: true}

	return &fakeUserStore{
		getFn: func(ctx context.Context, name string) (user.User, error) {
			if name == username {
				return u, nil
			}
			return user.User{}, user.ErrNotFound
		},
	}
}

func TestVerifyCredentials(t *testing.T) {
	store := storeWithUser(t, "johndoe", "secretpassword")
	tokens := auth.NewManager(testSecret, 30*time.Minute)
	a := auth.NewAuthenticator(store, tokens, quietLogger())

	tests := []struct {
		name     string
		username string
		password string
		wantErr  error
	}{
		{name: "success", username: "johndoe", password: "secretpassword", wantErr: nil},
		{name: "unknown_user", username: "nobody", password: "secretpassword", wantErr: auth.ErrInvalidCredentials},
		{name: "wrong_password", username: "johndoe", password: "wrongpassword", wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		tt := tt

		t.Run(tt.name, func(t *testing.T) {
			u, err := a.VerifyCredentials(context.Background(), tt.username, tt.password)

			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if u.Username != tt.username {
					t.Fatalf("got username %q, want %q", u.Username, tt.username)
				}
				return
			}

			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got err %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestResolveCurrentUser(t *testing.T) {
	store := storeWithUser(t, "johndoe", "secretpassword")
	tokens := auth.NewManager(testSecret, 30*time.Minute)
	a := auth.NewAuthenticator(store, tokens, quietLogger())

	token, err := tokens.IssueToken("johndoe")

	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	u, err := a.ResolveCurrentUser(context.Background(), token)

	if err != nil {
		t.Fatalf("ResolveCurrentUser failed: %v", err)
	}

	if u.Username != "johndoe" {
		t.Fatalf("got username %q, want %q", u.Username, "johndoe")
	}
}

func TestResolveCurrentUser_ExpiredToken(t *testing.T) {
	store := storeWithUser(t, "johndoe", "secretpassword")
	tokens := auth.NewManager(testSecret, 1*time.Nanosecond)
	a := auth.NewAuthenticator(store, tokens, quietLogger())

	token, err := tokens.IssueTokenAt("johndoe", time.Now().UTC().Add(-time.Hour))

	if err != nil {
		t.Fatalf("IssueTokenAt failed: %v", err)
	}

	_, err = a.ResolveCurrentUser(context.Background(), token)

	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("got err %v, want ErrInvalidCredentials", err)
	}
}

func TestResolveCurrentUser_SubjectDeleted(t *testing.T) {
	// valid token whose subject no longer resolves to a record
	tokens := auth.NewManager(testSecret, 30*time.Minute)
	a := auth.NewAuthenticator(&fakeUserStore{}, tokens, quietLogger())

	token, err := tokens.IssueToken("ghost")

	if err != nil {
		t.Fatalf("IssueToken failed: %v", err)
	}

	_, err = a.ResolveCurrentUser(context.Background(), token)

	if !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("got err %v, want ErrInvalidCredentials", err)
	}
}
