package mqtt

import (
	"log/slog"
	"net/http"

	"github.com/bornholm/relais/internal/settings"
	"github.com/bornholm/relais/pkg/log"
	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/rs/xid"
)

func (h *Handler) getStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.Status())
}

func (h *Handler) getSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, r, http.StatusOK, h.service.Value())
}

func (h *Handler) postSettings(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, settings.MaxFileSize)

	var next Settings
	if err := json.NewDecoder(r.Body).Decode(&next); err != nil {
		slog.DebugContext(ctx, "could not decode mqtt settings", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	if err := next.Validate(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	originID := "rest:" + xid.New().String()

	err := h.service.Update(func(s *Settings) error {
		*s = next
		return nil
	}, originID)
	if err != nil {
		slog.ErrorContext(ctx, "could not update mqtt settings", log.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	slog.InfoContext(ctx, "mqtt settings updated", slog.String("origin", originID), log.ScrubbedURL("broker", h.service.Value().BrokerURL()))

	writeJSON(w, r, http.StatusOK, h.service.Value())
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, value any) {
	data, err := json.Marshal(value)
	if err != nil {
		slog.ErrorContext(r.Context(), "could not encode response", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
