package auth

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mwangikm/studenthub/internal/domain/user"
	"github.com/mwangikm/studenthub/internal/security"
)

// ErrInvalidCredentials is the single failure every credential or token
// problem collapses into. A caller cannot tell an unknown username from a
// wrong password or an expired token, which keeps responses useless for
// account enumeration.
var ErrInvalidCredentials = errors.New("invalid credentials")

type UserStore interface {
	GetByUsername(ctx context.Context, username string) (user.User, error)
}

type Authenticator struct {
	users  UserStore
	tokens *Manager
	log    *slog.Logger
}

func NewAuthenticator(users UserStore, tokens *Manager, log *slog.Logger) *Authenticator {
	return &Authenticator{
		users:  users,
		tokens: tokens,
		log:    log,
	}
}

// VerifyCredentials proves the caller holds valid credentials for a user.
// Lookup is an exact match on username. No side effects.
func (a *Authenticator) VerifyCredentials(ctx context.Context, username, password string) (user.User, error) {
	u, err := a.users.GetByUsername(ctx, username)

	if err != nil {
		a.log.DebugContext(ctx, "credential check failed", "reason", "unknown_username")
		return user.User{}, ErrInvalidCredentials
	}

	err = security.CheckPassword(u.PasswordHash, password)

	if err != nil {
		a.log.DebugContext(ctx, "credential check failed", "reason", "password_mismatch")
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}

// ResolveCurrentUser validates a presented token and then resolves its
// subject to a full user record. Validation itself needs no store
// round-trip; the lookup happens only here, where the identity must
// become a record.
func (a *Authenticator) ResolveCurrentUser(ctx context.Context, token string) (user.User, error) {
	username, err := a.tokens.ValidateToken(token)

	if err != nil {
		a.log.DebugContext(ctx, "token rejected", "reason", err.Error())
		return user.User{}, ErrInvalidCredentials
	}

	u, err := a.users.GetByUsername(ctx, username)

	if err != nil {
		a.log.DebugContext(ctx, "token rejected", "reason", "subject_not_found")
		return user.User{}, ErrInvalidCredentials
	}

	return u, nil
}
