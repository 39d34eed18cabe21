package ratelimit

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestMiddleware(t *testing.T) {
	limiter := New(0, 2)

	handler := limiter.Middleware(func(r *http.Request) (string, error) {
		return r.Header.Get("X-User"), nil
	})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	expected := []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}

	for idx, status := range expected {
		req := httptest.NewRequest(http.MethodGet, "/rest/mqttStatus", nil)
		req.Header.Set("X-User", "alice")

		res := httptest.NewRecorder()
		handler.ServeHTTP(res, req)

		if e, g := status, res.Code; e != g {
			t.Errorf("request #%d: expected '%v', got '%v'", idx, e, g)
		}
	}

	// Buckets are per user
	req := httptest.NewRequest(http.MethodGet, "/rest/mqttStatus", nil)
	req.Header.Set("X-User", "bob")

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	if e, g := http.StatusNoContent, res.Code; e != g {
		t.Errorf("bob: expected '%v', got '%v'", e, g)
	}
}
