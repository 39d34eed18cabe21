package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/bornholm/relais/internal/authn"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	passwordHashCost = bcrypt.MinCost

	store := NewStore(filepath.Join(t.TempDir(), "test.db"))
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Errorf("%+v", errors.WithStack(err))
		}
	})

	if err := store.HealthCheck(context.Background()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	return store
}

func TestFindOrCreateUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	created, err := store.FindOrCreateUser(ctx, "1234", "github")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if created.IsAdmin {
		t.Errorf("created.IsAdmin: expected new users not to be admin")
	}

	created.Email = "alice@example.com"
	created.IsAdmin = true

	if err := store.UpdateProfile(ctx, created); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	found, err := store.FindOrCreateUser(ctx, "1234", "github")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := created.ID, found.ID; e != g {
		t.Errorf("found.ID: expected '%v', got '%v'", e, g)
	}

	if e, g := "alice@example.com", found.Email; e != g {
		t.Errorf("found.Email: expected '%v', got '%v'", e, g)
	}

	if !found.Me().Admin {
		t.Errorf("found.Me().Admin: expected true")
	}

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), count; e != g {
		t.Errorf("count: expected '%v', got '%v'", e, g)
	}

	if err := store.DeleteUsers(ctx, found.ID); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	users, err := store.GetUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := 0, len(users); e != g {
		t.Errorf("len(users): expected '%v', got '%v'", e, g)
	}
}

func TestBasicUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	if _, err := store.UpsertBasicUser(ctx, "admin", "first", true); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	// Upserting again rotates the password without duplicating the user
	if _, err := store.UpsertBasicUser(ctx, "admin", "second", true); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if _, err := store.Authenticate(ctx, "admin", "first"); !errors.Is(err, authn.ErrUnauthenticated) {
		t.Errorf("err: expected '%v', got '%v'", authn.ErrUnauthenticated, err)
	}

	user, err := store.Authenticate(ctx, "admin", "second")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	storeUser, ok := user.(*User)
	if !ok {
		t.Fatalf("user: unexpected type '%T'", user)
	}

	if !storeUser.IsAdmin {
		t.Errorf("storeUser.IsAdmin: expected true")
	}

	if e, g := ProviderBasic, storeUser.UserProvider(); e != g {
		t.Errorf("storeUser.UserProvider(): expected '%v', got '%v'", e, g)
	}

	if _, err := store.Authenticate(ctx, "nobody", "second"); !errors.Is(err, authn.ErrUnauthenticated) {
		t.Errorf("err: expected '%v', got '%v'", authn.ErrUnauthenticated, err)
	}

	count, err := store.CountUsers(ctx)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if e, g := int64(1), count; e != g {
		t.Errorf("count: expected '%v', got '%v'", e, g)
	}
}
