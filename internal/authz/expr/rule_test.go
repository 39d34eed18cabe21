package expr

import (
	"fmt"
	"testing"

	"github.com/bornholm/relais/internal/authz"
	"github.com/pkg/errors"
)

func TestRule(t *testing.T) {
	type testCase struct {
		Script        string
		Me            *authz.Me
		Expected      bool
		ExpectedError bool
	}

	testCases := []testCase{
		{Script: "me.admin", Me: &authz.Me{Admin: true}, Expected: true},
		{Script: "me.admin", Me: &authz.Me{Admin: false}, Expected: false},
		{Script: "me.admin", Me: nil, Expected: false},
		{Script: `me.admin || me.username == "operator"`, Me: &authz.Me{Username: "operator"}, Expected: true},
		{Script: "true", Me: nil, Expected: true},
		{Script: "me.admin &&", Me: &authz.Me{Admin: true}, ExpectedError: true},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			rule := NewRule(tc.Script)

			allowed, err := rule.Exec(tc.Me.Env())
			if tc.ExpectedError {
				if err == nil {
					t.Fatalf("expected an error, got nil")
				}

				return
			}

			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.Expected, allowed; e != g {
				t.Errorf("allowed: expected '%v', got '%v'", e, g)
			}
		})
	}
}
