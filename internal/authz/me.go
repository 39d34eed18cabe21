package authz

import (
	"context"

	"github.com/pkg/errors"
)

var (
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrForbidden        = errors.New("forbidden")
)

// Me describes the current authenticated user as seen by the console.
type Me struct {
	Username string
	Provider string
	Admin    bool
}

// Env exposes the user to authorization rules as `me`.
func (m *Me) Env() map[string]any {
	me := map[string]any{
		"username": "",
		"provider": "",
		"admin":    false,
	}

	if m != nil {
		me["username"] = m.Username
		me["provider"] = m.Provider
		me["admin"] = m.Admin
	}

	return map[string]any{"me": me}
}

type contextKey string

const contextKeyMe contextKey = "authzMe"

func WithContextMe(ctx context.Context, me *Me) context.Context {
	return context.WithValue(ctx, contextKeyMe, me)
}

func ContextMe(ctx context.Context) (*Me, error) {
	me, ok := ctx.Value(contextKeyMe).(*Me)
	if !ok || me == nil {
		return nil, errors.WithStack(ErrNotAuthenticated)
	}

	return me, nil
}

// IsAdmin reports whether the user in ctx holds the admin flag. An anonymous
// context is never admin.
func IsAdmin(ctx context.Context) bool {
	me, err := ContextMe(ctx)
	if err != nil {
		return false
	}

	return me.Admin
}
