package mqtt

import (
	"log/slog"
	"net/http"
	"net/url"

	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/settings"
	"github.com/bornholm/relais/pkg/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

const (
	queryError = "error"
	querySaved = "saved"
)

func (h *Handler) serveStatusView(w http.ResponseWriter, r *http.Request) {
	data := StatusTemplateData{
		Status:         h.Status(),
		SocketEndpoint: PathSocketStatus,
	}

	h.render(w, r, "mqtt-status", data)
}

func (h *Handler) serveSettingsView(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodPost {
		authz.RequireAdmin(http.HandlerFunc(h.handleSettingsForm)).ServeHTTP(w, r)
		return
	}

	query := r.URL.Query()

	data := SettingsTemplateData{
		Settings: h.service.Value(),
		CanEdit:  authz.IsAdmin(r.Context()),
		Error:    query.Get(queryError),
		Saved:    query.Has(querySaved),
	}

	h.render(w, r, "mqtt-settings", data)
}

func (h *Handler) handleSettingsForm(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	originID := "form:" + xid.New().String()

	err := h.service.Update(func(s *Settings) error {
		next, err := decodeSettingsForm(r.PostForm, *s)
		if err != nil {
			return errors.WithStack(err)
		}

		if err := next.Validate(); err != nil {
			return errors.WithStack(err)
		}

		*s = next

		return nil
	}, originID)
	if err != nil {
		if !errors.Is(err, settings.ErrInvalid) {
			slog.ErrorContext(ctx, "could not update mqtt settings", log.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		slog.DebugContext(ctx, "rejected mqtt settings", log.Error(err))

		redirect := PathSettings + "?" + url.Values{queryError: []string{err.Error()}}.Encode()
		http.Redirect(w, r, redirect, http.StatusSeeOther)
		return
	}

	slog.InfoContext(ctx, "mqtt settings updated", slog.String("origin", originID), log.ScrubbedURL("broker", h.service.Value().BrokerURL()))

	http.Redirect(w, r, PathSettings+"?"+querySaved, http.StatusSeeOther)
}

// decodeSettingsForm applies the submitted form on top of current. Unchecked
// checkboxes are not submitted and an empty password keeps the current one.
func decodeSettingsForm(form url.Values, current Settings) (Settings, error) {
	values := make(map[string]any, len(form))
	for key := range form {
		values[key] = form.Get(key)
	}

	values["enabled"] = form.Get("enabled") == "on"
	values["clean_session"] = form.Get("clean_session") == "on"

	if form.Get("password") == "" {
		delete(values, "password")
	}

	next := current

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		WeaklyTypedInput: true,
		Result:           &next,
	})
	if err != nil {
		return current, errors.WithStack(err)
	}

	if err := decoder.Decode(values); err != nil {
		return current, errors.Wrap(settings.ErrInvalid, err.Error())
	}

	return next, nil
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}
