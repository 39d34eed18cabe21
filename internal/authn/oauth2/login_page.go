package oauth2

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/bornholm/relais/internal/ui"
	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

//go:embed templates/**/*.gohtml
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

type LoginTemplateData struct {
	ui.HeadTemplateData
	Prefix    string
	Providers []Provider
}

func (h *Handler) getLoginPage(w http.ResponseWriter, r *http.Request) {
	data := LoginTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: "Sign in",
		},
		Prefix:    h.prefix,
		Providers: h.providers,
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := templates.ExecuteTemplate(w, "login", data); err != nil {
		slog.ErrorContext(r.Context(), "could not render login page", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
