package authz

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
)

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	type testCase struct {
		Me             *Me
		ExpectedStatus int
	}

	testCases := []testCase{
		{Me: nil, ExpectedStatus: http.StatusUnauthorized},
		{Me: &Me{Username: "bob"}, ExpectedStatus: http.StatusForbidden},
		{Me: &Me{Username: "alice", Admin: true}, ExpectedStatus: http.StatusNoContent},
	}

	for _, tc := range testCases {
		req := httptest.NewRequest(http.MethodPost, "/rest/mqttSettings", nil)
		if tc.Me != nil {
			req = req.WithContext(WithContextMe(req.Context(), tc.Me))
		}

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if e, g := tc.ExpectedStatus, res.Code; e != g {
			t.Errorf("res.Code: expected '%v', got '%v'", e, g)
		}
	}
}

func TestAllowed(t *testing.T) {
	ctx := context.Background()

	allowed, err := Allowed(ctx, nil)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !allowed {
		t.Errorf("nil rule: expected allowed")
	}

	allowed, err = Allowed(ctx, AdminRule)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if allowed {
		t.Errorf("anonymous: expected denied")
	}

	allowed, err = Allowed(WithContextMe(ctx, &Me{Admin: true}), AdminRule)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !allowed {
		t.Errorf("admin: expected allowed")
	}
}
