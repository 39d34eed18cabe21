package oauth2

import (
	"github.com/bornholm/relais/internal/authn"
	"github.com/pkg/errors"
)

// User is the identity kept in the session once a provider callback
// completes. The console resolves it against the store on every request.
type User struct {
	Subject  string
	Provider string
	Nickname string
	Email    string
}

// UserProvider implements authn.User.
func (u *User) UserProvider() string {
	return u.Provider
}

// UserSubject implements authn.User.
func (u *User) UserSubject() string {
	return u.Subject
}

func (u *User) validate() error {
	switch {
	case u.Subject == "":
		return errors.New("user subject missing")
	case u.Provider == "":
		return errors.New("user provider missing")
	case u.Email == "":
		return errors.New("user email missing")
	}

	return nil
}

var _ authn.User = &User{}
