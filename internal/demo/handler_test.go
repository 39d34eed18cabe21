package demo

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bornholm/relais/internal/authz"
)

func TestHandler(t *testing.T) {
	handler := NewHandler("project", WithEndpoints("/rest/custom", "", ""))

	type testCase struct {
		Target           string
		ExpectedStatus   int
		ExpectedLocation string
		ExpectedContent  string
	}

	testCases := []testCase{
		{Target: "/project/unknown", ExpectedStatus: http.StatusFound, ExpectedLocation: "/project/demo/information"},
		{Target: "/project/demo", ExpectedStatus: http.StatusFound, ExpectedLocation: "/project/demo/information"},
		{Target: "/project/demo/information", ExpectedStatus: http.StatusOK, ExpectedContent: `data-selected="/project/demo/information"`},
		{Target: "/project/demo/rest", ExpectedStatus: http.StatusOK, ExpectedContent: "GET /rest/custom"},
		{Target: "/project/demo/socket", ExpectedStatus: http.StatusOK, ExpectedContent: "/ws/lightState"},
		{Target: "/project/demo/mqtt", ExpectedStatus: http.StatusOK, ExpectedContent: "/rest/brokerSettings"},
	}

	for _, tc := range testCases {
		t.Run(tc.Target, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tc.Target, nil)
			req = req.WithContext(authz.WithContextMe(req.Context(), &authz.Me{Username: "bob"}))

			res := httptest.NewRecorder()
			handler.ServeHTTP(res, req)

			if e, g := tc.ExpectedStatus, res.Code; e != g {
				t.Errorf("res.Code: expected '%v', got '%v'", e, g)
			}

			if tc.ExpectedLocation != "" {
				if e, g := tc.ExpectedLocation, res.Header().Get("Location"); e != g {
					t.Errorf("Location: expected '%v', got '%v'", e, g)
				}
			}

			if tc.ExpectedContent != "" && !strings.Contains(res.Body.String(), tc.ExpectedContent) {
				t.Errorf("body: expected to contain '%s'", tc.ExpectedContent)
			}
		})
	}

	strip := handler.Screen().Strip(t.Context(), "/project/demo/mqtt")
	for _, tab := range strip.Tabs {
		if tab.Disabled {
			t.Errorf("tab '%s': expected no demo tab to be disabled", tab.Path)
		}
	}
}

func TestTabLabels(t *testing.T) {
	handler := NewHandler("project")

	expected := []struct {
		Label string
		Path  string
	}{
		{Label: "Information", Path: "/project/demo/information"},
		{Label: "REST Controller", Path: "/project/demo/rest"},
		{Label: "WebSocket Controller", Path: "/project/demo/socket"},
		{Label: "MQTT Controller", Path: "/project/demo/mqtt"},
	}

	tabs := handler.Screen().Tabs()

	if e, g := len(expected), len(tabs); e != g {
		t.Fatalf("len(tabs): expected '%v', got '%v'", e, g)
	}

	for idx, tab := range tabs {
		if e, g := expected[idx].Label, tab.Label; e != g {
			t.Errorf("tabs[%d].Label: expected '%v', got '%v'", idx, e, g)
		}

		if e, g := expected[idx].Path, tab.Path; e != g {
			t.Errorf("tabs[%d].Path: expected '%v', got '%v'", idx, e, g)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/project/demo/rest", nil)
	req = req.WithContext(authz.WithContextMe(req.Context(), &authz.Me{Username: "bob"}))

	res := httptest.NewRecorder()
	handler.ServeHTTP(res, req)

	body := res.Body.String()
	for _, e := range expected {
		if !strings.Contains(body, e.Label) {
			t.Errorf("body: expected to contain tab label '%s'", e.Label)
		}
	}
}
