package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mwangikm/studenthub/internal/config"
	"github.com/mwangikm/studenthub/internal/security"
)

// EnsureFirstUser seeds an initial API user from config so a fresh
// deployment can log in. A no-op when the user already exists or no
// seed credentials are configured.
func EnsureFirstUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.FirstUsername == "" || cfg.FirstPassword == "" {
		return nil
	}

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id FROM users WHERE username = $1`, cfg.FirstUsername).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.FirstPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (username, password_hash, is_active)
		 VALUES ($1, $2, TRUE)`,
		cfg.FirstUsername, hash,
	)

	return err
}
