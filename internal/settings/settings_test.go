package settings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

type testSettings struct {
	Host string `json:"host"`
	Port int    `json:"port"`
}

func defaultTestSettings() testSettings {
	return testSettings{Host: "localhost", Port: 1883}
}

func TestServiceUpdate(t *testing.T) {
	service := NewService(defaultTestSettings())

	origins := make([]string, 0)
	id := service.AddUpdateHandler(func(originID string) {
		origins = append(origins, originID)
	})

	err := service.Update(func(s *testSettings) error {
		s.Port = 8883
		return nil
	}, "first")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	err = service.Update(func(s *testSettings) error {
		s.Port = 0
		return errors.WithStack(ErrInvalid)
	}, "rejected")
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("err: expected '%v', got '%v'", ErrInvalid, err)
	}

	if e, g := 8883, service.Value().Port; e != g {
		t.Errorf("service.Value().Port: expected '%v', got '%v'", e, g)
	}

	service.RemoveUpdateHandler(id)

	err = service.Update(func(s *testSettings) error {
		s.Host = "broker.local"
		return nil
	}, "unobserved")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "first", strings.Join(origins, ","); e != g {
		t.Errorf("origins: expected '%v', got '%v'", e, g)
	}

	service.Read(func(s testSettings) {
		if e, g := "broker.local", s.Host; e != g {
			t.Errorf("s.Host: expected '%v', got '%v'", e, g)
		}
	})
}

func TestPersistenceReadFromFS(t *testing.T) {
	type testCase struct {
		Content  *string
		Expected testSettings
	}

	str := func(s string) *string { return &s }

	testCases := []testCase{
		{
			Content:  nil,
			Expected: defaultTestSettings(),
		},
		{
			Content:  str(`{"host": "broker.local", "port": 8883}`),
			Expected: testSettings{Host: "broker.local", Port: 8883},
		},
		{
			Content:  str(`{"port": 1234}`),
			Expected: testSettings{Host: "localhost", Port: 1234},
		},
		{
			Content:  str(`{"host": `),
			Expected: defaultTestSettings(),
		},
		{
			Content:  str(`["broker.local"]`),
			Expected: defaultTestSettings(),
		},
		{
			Content:  str(`null`),
			Expected: defaultTestSettings(),
		},
		{
			Content:  str(fmt.Sprintf(`{"host": "%s"}`, strings.Repeat("a", MaxFileSize))),
			Expected: defaultTestSettings(),
		},
	}

	for idx, tc := range testCases {
		t.Run(fmt.Sprintf("Case #%d", idx), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "settings.json")

			if tc.Content != nil {
				if err := os.WriteFile(path, []byte(*tc.Content), 0o644); err != nil {
					t.Fatalf("%+v", errors.WithStack(err))
				}
			}

			service := NewService(testSettings{Host: "unset"})
			persistence := NewPersistence(service, path, defaultTestSettings)

			persistence.ReadFromFS(context.Background())

			if e, g := tc.Expected, service.Value(); e != g {
				t.Errorf("service.Value(): expected '%v', got '%v'", e, g)
			}
		})
	}
}

func TestPersistenceAutomatic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "settings.json")

	service := NewService(defaultTestSettings())
	persistence := NewPersistence(service, path, defaultTestSettings)

	// Enabling twice must not register a second handler
	persistence.EnableAutomatic()

	err := service.Update(func(s *testSettings) error {
		s.Host = "broker.local"
		return nil
	}, "test")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	var saved testSettings
	if err := json.Unmarshal(data, &saved); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := "broker.local", saved.Host; e != g {
		t.Errorf("saved.Host: expected '%v', got '%v'", e, g)
	}

	persistence.DisableAutomatic()
	persistence.DisableAutomatic()

	err = service.Update(func(s *testSettings) error {
		s.Host = "other.local"
		return nil
	}, "test")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	data, err = os.ReadFile(path)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if strings.Contains(string(data), "other.local") {
		t.Errorf("file: expected no write once automatic mode is disabled")
	}

	reloaded := NewService(testSettings{})
	NewPersistence(reloaded, path, defaultTestSettings).ReadFromFS(context.Background())

	if e, g := "broker.local", reloaded.Value().Host; e != g {
		t.Errorf("reloaded.Value().Host: expected '%v', got '%v'", e, g)
	}
}
