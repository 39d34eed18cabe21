package authz

import (
	"context"

	"github.com/pkg/errors"
)

type Rule interface {
	Exec(env map[string]any) (bool, error)
}

type RuleFunc func(env map[string]any) (bool, error)

func (fn RuleFunc) Exec(env map[string]any) (bool, error) {
	return fn(env)
}

// Allowed evaluates rule against the user in ctx. A nil rule always allows.
func Allowed(ctx context.Context, rule Rule) (bool, error) {
	if rule == nil {
		return true, nil
	}

	me, err := ContextMe(ctx)
	if err != nil && !errors.Is(err, ErrNotAuthenticated) {
		return false, errors.WithStack(err)
	}

	allowed, err := rule.Exec(me.Env())
	if err != nil {
		return false, errors.WithStack(err)
	}

	return allowed, nil
}

// AdminRule allows admins only.
var AdminRule Rule = RuleFunc(func(env map[string]any) (bool, error) {
	me, ok := env["me"].(map[string]any)
	if !ok {
		return false, nil
	}

	admin, _ := me["admin"].(bool)

	return admin, nil
})
