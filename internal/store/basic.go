package store

import (
	"context"
	"fmt"
	"time"

	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/internal/authn/basic"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

const ProviderBasic = "basic"

var passwordHashCost = 12

// UpsertBasicUser creates or updates a local user authenticated with HTTP
// basic credentials.
func (s *Store) UpsertBasicUser(ctx context.Context, username, password string, isAdmin bool) (*User, error) {
	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var user *User

	err = s.Tx(ctx, func(conn *sqlite.Conn) error {
		now := time.Now().UTC().Unix()

		query := fmt.Sprintf(`
			INSERT INTO users
				(subject, provider, nickname, is_admin, basic_username, basic_password, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (subject, provider) DO UPDATE SET
				is_admin = excluded.is_admin,
				basic_password = excluded.basic_password,
				updated_at = excluded.updated_at
			RETURNING %s;`,
			userAttributes,
		)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{username, ProviderBasic, username, isAdmin, username, passwordHash, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// Authenticate implements basic.UserProvider.
func (s *Store) Authenticate(ctx context.Context, username string, password string) (authn.User, error) {
	var user *User

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf("SELECT %s FROM users WHERE basic_username = ? LIMIT 1", userAttributes)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{username},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if user == nil || !verifyPassword([]byte(password), user.BasicPassword) {
		return nil, errors.WithStack(authn.ErrUnauthenticated)
	}

	return user, nil
}

var _ basic.UserProvider = &Store{}

func hashPassword(password string) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), passwordHashCost)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return hash, nil
}

func verifyPassword(password, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, password) == nil
}
