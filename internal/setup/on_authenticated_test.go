package setup

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/internal/authn/oauth2"
	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/config"
	"github.com/bornholm/relais/internal/store"
	"github.com/pkg/errors"
)

func TestOnAuthenticated(t *testing.T) {
	ctx := context.Background()

	st := store.NewStore(filepath.Join(t.TempDir(), "data.db"))
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	if err := st.HealthCheck(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	admins := []config.Admin{
		{Email: "alice@example.com", Provider: "github"},
		{Email: "", Provider: "github"},
	}

	onAuthenticated := newOnAuthenticated(st, admins)

	type testCase struct {
		User          authn.User
		ExpectedAdmin bool
	}

	testCases := []testCase{
		{
			User:          &oauth2.User{Subject: "1", Provider: "github", Email: "alice@example.com", Nickname: "alice"},
			ExpectedAdmin: true,
		},
		{
			User:          &oauth2.User{Subject: "2", Provider: "gitea", Email: "alice@example.com", Nickname: "alice"},
			ExpectedAdmin: false,
		},
		{
			User:          &oauth2.User{Subject: "3", Provider: "github", Email: "", Nickname: "anonymous"},
			ExpectedAdmin: false,
		},
		{
			User:          &store.User{Subject: "admin", Provider: store.ProviderBasic, IsAdmin: true},
			ExpectedAdmin: true,
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/mqtt/status", nil)

			req, err := onAuthenticated(req, tc.User)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			me, err := authz.ContextMe(req.Context())
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedAdmin, me.Admin; e != g {
				t.Errorf("me.Admin: expected '%v', got '%v'", e, g)
			}

			if e, g := tc.User.UserProvider(), me.Provider; e != g {
				t.Errorf("me.Provider: expected '%v', got '%v'", e, g)
			}

			if _, isOAuth2 := tc.User.(*oauth2.User); !isOAuth2 {
				return
			}

			stored, err := st.FindOrCreateUser(ctx, tc.User.UserSubject(), tc.User.UserProvider())
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if e, g := tc.ExpectedAdmin, stored.IsAdmin; e != g {
				t.Errorf("stored.IsAdmin: expected '%v', got '%v'", e, g)
			}
		})
	}

	req := httptest.NewRequest(http.MethodGet, "/mqtt/status", nil)
	if _, err := onAuthenticated(req, authn.User(nil)); err == nil {
		t.Errorf("err: expected an error for an unknown user type")
	}
}
