package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mwangikm/studenthub/internal/config"
	"github.com/mwangikm/studenthub/internal/domain/user"
	"github.com/mwangikm/studenthub/internal/security"
)

type CredentialVerifier interface {
	VerifyCredentials(ctx context.Context, username, password string) (user.User, error)
}

type TokenIssuer interface {
	IssueToken(username string) (string, error)
}

type UserWriter interface {
	Create(ctx context.Context, username, passwordHash string) (user.User, error)
}

type AuthHandler struct {
	authn  CredentialVerifier
	tokens TokenIssuer
	users  UserWriter
}

func NewAuthHandler(authn CredentialVerifier, tokens TokenIssuer, users UserWriter) *AuthHandler {
	return &AuthHandler{
		authn:  authn,
		tokens: tokens,
		users:  users,
	}
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login exchanges credentials for a bearer token. Bad username and bad
// password are deliberately the same response.
func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginRequest

	if !BindJSON(ctx, &req) {
		return
	}

	// short timeout for DB lookup
	cctx, cancel := config.WithTimeout(2 * time.Second)
	defer cancel()

	u, err := h.authn.VerifyCredentials(cctx, req.Username, req.Password)

	if err != nil {
		RespondUnAuthorized(ctx, "invalid_credentials", "Incorrect username or password.")
		return
	}

	token, err := h.tokens.IssueToken(u.Username)

	if err != nil {
		RespondInternal(ctx, "Could not generate access token")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"access_token": token,
		"token_type":   "bearer",
	})
}

func (h *AuthHandler) CreateUser(ctx *gin.Context) {
	var req user.CreateUserRequest

	if !BindJSON(ctx, &req) {
		return
	}

	hash, err := security.HashPassword(req.Password)

	if err != nil {
		RespondInternal(ctx, "Could not create user")
		return
	}

	cctx, cancel := config.WithTimeout(3 * time.Second)
	defer cancel()

	u, err := h.users.Create(cctx, req.Username, hash)

	if err != nil {
		if errors.Is(err, user.ErrUsernameTaken) {
			RespondError(ctx, http.StatusBadRequest, "username_taken", "Username already registered.", nil)
			return
		}

		RespondInternal(ctx, "Could not create user")
		return
	}

	ctx.JSON(http.StatusCreated, u)
}
