package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/internal/authz"
	"github.com/pkg/errors"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

var userMigrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id INTEGER PRIMARY KEY,

		subject TEXT NOT NULL,
		provider TEXT NOT NULL,

		nickname TEXT,
		email TEXT,

		is_admin BOOLEAN NOT NULL DEFAULT FALSE,

		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL,
		connected_at INTEGER,

		basic_username TEXT,
		basic_password BLOB,

		UNIQUE (subject, provider),
		UNIQUE (basic_username)
	);`,
}

type User struct {
	ID int64

	Provider string
	Subject  string

	IsAdmin bool

	CreatedAt   time.Time
	UpdatedAt   time.Time
	ConnectedAt time.Time

	Nickname string
	Email    string

	BasicUsername string
	BasicPassword []byte
}

// UserProvider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// UserSubject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

func (u *User) DisplayName() string {
	if u.Nickname != "" {
		return u.Nickname
	}

	if u.Email != "" {
		return u.Email
	}

	return u.Subject
}

// Me returns the console's view of the user.
func (u *User) Me() *authz.Me {
	return &authz.Me{
		Username: u.DisplayName(),
		Provider: u.Provider,
		Admin:    u.IsAdmin,
	}
}

var _ authn.User = &User{}

func (s *Store) FindOrCreateUser(ctx context.Context, subject, provider string) (*User, error) {
	var user *User

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := fmt.Sprintf(`SELECT %s FROM users WHERE subject = ? AND provider = ? LIMIT 1`, userAttributes)

		err := sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		if user != nil {
			return nil
		}

		query = fmt.Sprintf(`
			INSERT INTO users
				(subject, provider, created_at, updated_at)
			VALUES (?, ?, ?, ?) RETURNING %s;`,
			userAttributes,
		)

		now := time.Now().UTC().Unix()

		err = sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{subject, provider, now, now},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user = &User{}
				return errors.WithStack(s.bindUser(stmt, user))
			},
		})
		if err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return user, nil
}

// UpdateProfile persists the user's identity attributes and admin flag, and
// marks it as connected now.
func (s *Store) UpdateProfile(ctx context.Context, user *User) error {
	now := time.Now().UTC()

	err := s.Tx(ctx, func(conn *sqlite.Conn) error {
		query := `UPDATE users SET email = ?, nickname = ?, is_admin = ?, updated_at = ?, connected_at = ? WHERE id = ?`

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: []any{user.Email, user.Nickname, user.IsAdmin, now.Unix(), now.Unix(), user.ID},
		}))
	})
	if err != nil {
		return errors.WithStack(err)
	}

	user.UpdatedAt = time.Unix(now.Unix(), 0)
	user.ConnectedAt = user.UpdatedAt

	return nil
}

func (s *Store) DeleteUsers(ctx context.Context, userIDs ...int64) error {
	if len(userIDs) == 0 {
		return nil
	}

	return s.Tx(ctx, func(conn *sqlite.Conn) error {
		placeholders, args := inClause(userIDs)

		query := fmt.Sprintf("DELETE FROM users WHERE id IN (%s)", placeholders)

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
		}))
	})
}

// GetUsers returns the users matching userIDs, or every user if none is given.
func (s *Store) GetUsers(ctx context.Context, userIDs ...int64) ([]*User, error) {
	users := make([]*User, 0)

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		var (
			query string
			args  []any
		)

		if len(userIDs) > 0 {
			var placeholders string
			placeholders, args = inClause(userIDs)
			query = fmt.Sprintf("SELECT %s FROM users WHERE id IN (%s) ORDER BY id", userAttributes, placeholders)
		} else {
			query = fmt.Sprintf("SELECT %s FROM users ORDER BY id", userAttributes)
		}

		return errors.WithStack(sqlitex.Execute(conn, query, &sqlitex.ExecOptions{
			Args: args,
			ResultFunc: func(stmt *sqlite.Stmt) error {
				user := &User{}
				if err := s.bindUser(stmt, user); err != nil {
					return errors.WithStack(err)
				}

				users = append(users, user)
				return nil
			},
		}))
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return users, nil
}

func (s *Store) CountUsers(ctx context.Context) (int64, error) {
	var count int64

	err := s.Do(ctx, func(conn *sqlite.Conn) error {
		return errors.WithStack(sqlitex.Execute(conn, "SELECT COUNT(*) FROM users", &sqlitex.ExecOptions{
			ResultFunc: func(stmt *sqlite.Stmt) error {
				count = stmt.ColumnInt64(0)
				return nil
			},
		}))
	})

	return count, errors.WithStack(err)
}

var userAttributes = `id, subject, provider, nickname, email, created_at, updated_at, connected_at, basic_username, basic_password, is_admin`

func (s *Store) bindUser(stmt *sqlite.Stmt, user *User) error {
	user.ID = stmt.ColumnInt64(0)
	user.Subject = stmt.ColumnText(1)
	user.Provider = stmt.ColumnText(2)
	user.Nickname = stmt.ColumnText(3)
	user.Email = stmt.ColumnText(4)
	user.CreatedAt = time.Unix(stmt.ColumnInt64(5), 0)
	user.UpdatedAt = time.Unix(stmt.ColumnInt64(6), 0)

	if connectedAt := stmt.ColumnInt64(7); connectedAt != 0 {
		user.ConnectedAt = time.Unix(connectedAt, 0)
	}

	user.BasicUsername = stmt.ColumnText(8)

	user.BasicPassword = make([]byte, stmt.ColumnLen(9))
	stmt.ColumnBytes(9, user.BasicPassword)

	user.IsAdmin = stmt.ColumnBool(10)

	return nil
}

func inClause(ids []int64) (string, []any) {
	placeholders := make([]string, len(ids))
	args := make([]any, len(ids))

	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	return strings.Join(placeholders, ", "), args
}
