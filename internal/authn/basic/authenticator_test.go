package basic

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bornholm/relais/internal/authn"
	"github.com/pkg/errors"
)

type testUser struct {
	name string
}

func (u *testUser) UserSubject() string  { return u.name }
func (u *testUser) UserProvider() string { return "basic" }

func TestAuthenticator(t *testing.T) {
	provider := UserProviderFunc(func(ctx context.Context, username, password string) (authn.User, error) {
		if username == "alice" && password == "secret" {
			return &testUser{username}, nil
		}

		return nil, errors.WithStack(authn.ErrUnauthenticated)
	})

	protected := authn.Chain(
		authn.WithAuthenticators(NewAuthenticator(provider, true)),
	)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, err := authn.ContextUser(r.Context())
		if err != nil {
			t.Errorf("%+v", errors.WithStack(err))
			return
		}

		w.Write([]byte(user.UserSubject()))
	}))

	type testCase struct {
		Username       string
		Password       string
		ExpectedStatus int
		ExpectedBody   string
	}

	testCases := []testCase{
		{Username: "alice", Password: "secret", ExpectedStatus: http.StatusOK, ExpectedBody: "alice"},
		{Username: "alice", Password: "wrong", ExpectedStatus: http.StatusUnauthorized},
		{ExpectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodGet, "/mqtt/status", nil)
		if tc.Username != "" {
			req.SetBasicAuth(tc.Username, tc.Password)
		}

		res := httptest.NewRecorder()
		protected.ServeHTTP(res, req)

		if e, g := tc.ExpectedStatus, res.Code; e != g {
			t.Errorf("res.Code: expected '%v', got '%v'", e, g)
		}

		if tc.ExpectedBody != "" {
			if e, g := tc.ExpectedBody, res.Body.String(); e != g {
				t.Errorf("res.Body: expected '%v', got '%v'", e, g)
			}
		}

		if tc.ExpectedStatus == http.StatusUnauthorized && res.Header().Get("WWW-Authenticate") == "" {
			t.Errorf("expected a basic auth challenge")
		}
	}
}
