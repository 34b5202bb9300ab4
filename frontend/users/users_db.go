package users

import (
	"context"
	"errors"
	"strings"

	"github.com/uptrace/bun"

	"stocktake/frontend/login"
	"stocktake/infrastructure/rbac"
	"stocktake/infrastructure/sqlite"
)

var (
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrInvalidRole      = errors.New("role must be manager or worker")
	ErrUsernameExists   = errors.New("username already exists")
)

// ListUsers returns all accounts ordered by id.
func ListUsers(ctx context.Context, db *sqlite.DB) ([]UserView, error) {
	users := make([]UserView, 0)
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`
SELECT id, username, role, strftime('%d/%m/%Y %H:%M', created_at) AS created_at
FROM users
ORDER BY id ASC`).Scan(ctx, &users)
	})
	return users, err
}

// CreateUser validates inputs then stores the account with an argon2id hash.
func CreateUser(ctx context.Context, db *sqlite.DB, username, password, role string) error {
	username = strings.TrimSpace(username)
	if username == "" {
		return ErrUsernameRequired
	}
	if strings.TrimSpace(password) == "" {
		return ErrPasswordRequired
	}
	if role != rbac.RoleManager && role != rbac.RoleWorker {
		return ErrInvalidRole
	}

	var exists int
	err := db.WithReadTx(ctx, func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(`SELECT COUNT(1) FROM users WHERE username = ?`, username).Scan(ctx, &exists)
	})
	if err != nil {
		return err
	}
	if exists > 0 {
		return ErrUsernameExists
	}

	return login.UpsertUserPasswordHash(ctx, db, username, role, password)
}
