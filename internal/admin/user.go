package admin

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/bornholm/relais/internal/authn"
	"github.com/bornholm/relais/internal/store"
	"github.com/bornholm/relais/internal/ui"
	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

const queryError = "error"

// serveUsers handles requests for the users page
func (h *Handler) serveUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, err := h.store.GetUsers(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "could not get users", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	navbar := h.navbar(r)
	navbar.NavbarItems = ui.WithActive(navbar.NavbarItems, r.URL.Path)

	data := UsersTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Users",
		},
		NavbarTemplateData: navbar,
		Prefix:             h.prefix,
		Users:              make([]UserTemplateData, 0, len(users)),
		ErrorMessage:       r.URL.Query().Get(queryError),
	}

	current, _ := authn.ContextUser(ctx)

	for _, u := range users {
		userData := NewUserTemplateData(u)
		userData.IsSelf = isSelf(current, u)
		data.Users = append(data.Users, userData)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := templates.ExecuteTemplate(w, "users", data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// serveDeleteUser handles POST requests to delete a user
func (h *Handler) serveDeleteUser(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	users, err := h.store.GetUsers(ctx, userID)
	if err != nil {
		slog.ErrorContext(ctx, "could not get user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if len(users) == 0 {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
		return
	}

	current, _ := authn.ContextUser(ctx)

	// Prevent deleting own account
	if isSelf(current, users[0]) {
		http.Redirect(w, r, h.prefix+"/users?"+queryError+"=You+cannot+delete+your+own+account", http.StatusSeeOther)
		return
	}

	if err := h.store.DeleteUsers(ctx, userID); err != nil {
		slog.ErrorContext(ctx, "could not delete user", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "user deleted", slog.Int64("userID", userID))

	http.Redirect(w, r, h.prefix+"/users", http.StatusSeeOther)
}

func isSelf(current authn.User, user *store.User) bool {
	if current == nil {
		return false
	}

	return current.UserProvider() == user.Provider && current.UserSubject() == user.Subject
}
