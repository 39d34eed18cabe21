package admin

import (
	"fmt"
	"net/http"

	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/store"
	"github.com/bornholm/relais/internal/tabs"
)

type Handler struct {
	prefix string
	store  *store.Store
	navbar tabs.NavbarFunc
	mux    *http.ServeMux
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	authz.RequireAdmin(h.mux).ServeHTTP(w, r)
}

func NewHandler(prefix string, store *store.Store, navbar tabs.NavbarFunc) *Handler {
	handler := &Handler{
		prefix: prefix,
		store:  store,
		navbar: navbar,
		mux:    &http.ServeMux{},
	}

	handler.mux.Handle(fmt.Sprintf("GET %s/", prefix), http.RedirectHandler(prefix+"/users", http.StatusFound))
	handler.mux.HandleFunc(fmt.Sprintf("GET %s/users", prefix), handler.serveUsers)
	handler.mux.HandleFunc(fmt.Sprintf("POST %s/users/{id}/delete", prefix), handler.serveDeleteUser)

	return handler
}

var _ http.Handler = &Handler{}
