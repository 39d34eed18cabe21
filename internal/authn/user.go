package authn

import "github.com/pkg/errors"

var ErrUnauthenticated = errors.New("unauthenticated")

type User interface {
	UserSubject() string
	UserProvider() string
}
