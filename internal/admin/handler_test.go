package admin

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/store"
	"github.com/bornholm/relais/internal/tabs"
	"github.com/pkg/errors"
)

func TestUsers(t *testing.T) {
	ctx := context.Background()

	st := store.NewStore(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() {
		if err := st.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	alice, err := st.FindOrCreateUser(ctx, "alice", "github")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	alice.IsAdmin = true
	if err := st.UpdateProfile(ctx, alice); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	bob, err := st.FindOrCreateUser(ctx, "bob", "github")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	handler := NewHandler("/admin", st, tabs.DefaultNavbar)

	do := func(method, target string, user *store.User) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, nil)
		reqCtx := authn.WithContextUser(req.Context(), user)
		reqCtx = authz.WithContextMe(reqCtx, user.Me())

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req.WithContext(reqCtx))

		return res
	}

	res := do(http.MethodGet, "/admin/users", bob)
	if e, g := http.StatusForbidden, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = do(http.MethodGet, "/admin/users", alice)
	if e, g := http.StatusOK, res.Code; e != g {
		t.Fatalf("res.Code: expected '%v', got '%v'", e, g)
	}

	body := res.Body.String()
	for _, u := range []*store.User{alice, bob} {
		if !strings.Contains(body, fmt.Sprintf(`data-user="%d"`, u.ID)) {
			t.Errorf("body: expected user '%s' to be listed", u.Subject)
		}
	}

	if strings.Contains(body, fmt.Sprintf(`/admin/users/%d/delete`, alice.ID)) {
		t.Errorf("body: expected no delete action on the current user")
	}

	res = do(http.MethodPost, fmt.Sprintf("/admin/users/%d/delete", alice.ID), alice)
	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = do(http.MethodPost, fmt.Sprintf("/admin/users/%d/delete", bob.ID), alice)
	if e, g := http.StatusSeeOther, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	res = do(http.MethodPost, "/admin/users/9999/delete", alice)
	if e, g := http.StatusNotFound, res.Code; e != g {
		t.Errorf("res.Code: expected '%v', got '%v'", e, g)
	}

	users, err := st.GetUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 1, len(users); e != g {
		t.Fatalf("len(users): expected '%v', got '%v'", e, g)
	}

	if e, g := alice.ID, users[0].ID; e != g {
		t.Errorf("users[0].ID: expected '%v', got '%v'", e, g)
	}
}
