package oauth2

import (
	"net/http"

	"github.com/pkg/errors"
)

var errSessionNotFound = errors.New("session not found")

const sessionName = "relais_auth"

const (
	sessionKeySubject  = "subject"
	sessionKeyProvider = "provider"
	sessionKeyNickname = "nickname"
	sessionKeyEmail    = "email"
)

func (h *Handler) storeSessionUser(w http.ResponseWriter, r *http.Request, user *User) error {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return errors.WithStack(err)
	}

	sess.Values[sessionKeySubject] = user.Subject
	sess.Values[sessionKeyProvider] = user.Provider
	sess.Values[sessionKeyNickname] = user.Nickname
	sess.Values[sessionKeyEmail] = user.Email

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}

func (h *Handler) retrieveSessionUser(r *http.Request) (*User, error) {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if sess.IsNew {
		return nil, errors.WithStack(errSessionNotFound)
	}

	subject, _ := sess.Values[sessionKeySubject].(string)
	provider, _ := sess.Values[sessionKeyProvider].(string)

	if subject == "" || provider == "" {
		return nil, errors.WithStack(errSessionNotFound)
	}

	user := &User{
		Subject:  subject,
		Provider: provider,
	}

	user.Nickname, _ = sess.Values[sessionKeyNickname].(string)
	user.Email, _ = sess.Values[sessionKeyEmail].(string)

	return user, nil
}

func (h *Handler) clearSession(w http.ResponseWriter, r *http.Request) error {
	sess, err := h.sessionStore.Get(r, sessionName)
	if err != nil {
		return errors.WithStack(err)
	}

	if sess.IsNew {
		return errors.WithStack(errSessionNotFound)
	}

	sess.Options.MaxAge = -1

	if err := sess.Save(r, w); err != nil {
		return errors.WithStack(err)
	}

	return nil
}
