package mqtt

import (
	"net/http"

	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/tabs"
)

const (
	PathStatus   = "/mqtt/status"
	PathSettings = "/mqtt/settings"

	PathRestStatus   = "/rest/mqttStatus"
	PathRestSettings = "/rest/mqttSettings"
	PathSocketStatus = "/ws/mqttStatus"
)

type Handler struct {
	mux        *http.ServeMux
	service    *SettingsService
	connection Connection
	screen     *tabs.Screen
	socket     *statusSocket
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mux.ServeHTTP(w, r)
}

func (h *Handler) Screen() *tabs.Screen {
	return h.screen
}

func (h *Handler) Status() Status {
	return NewStatus(h.service.Value(), h.connection)
}

// Close disconnects the status socket clients and stops following settings
// updates.
func (h *Handler) Close() {
	h.socket.Close()
}

func NewHandler(service *SettingsService, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	handler := &Handler{
		mux:        &http.ServeMux{},
		service:    service,
		connection: opts.Connection,
	}

	handler.socket = newStatusSocket(service, handler.Status)

	handler.screen = tabs.NewScreen("MQTT",
		tabs.WithTab(tabs.Tab{Label: "MQTT Status", Path: PathStatus}, http.HandlerFunc(handler.serveStatusView)),
		tabs.WithTab(tabs.Tab{Label: "MQTT Settings", Path: PathSettings, Guard: opts.SettingsGuard}, http.HandlerFunc(handler.serveSettingsView)),
		tabs.WithFallback(PathStatus),
		tabs.WithEnforcedGuards(opts.EnforceGuards),
		tabs.WithNavbar(opts.Navbar),
	)

	handler.mux.Handle("/mqtt", handler.screen)
	handler.mux.Handle("/mqtt/", handler.screen)

	handler.mux.Handle("GET "+PathRestStatus, authz.RequireMe(http.HandlerFunc(handler.getStatus)))
	handler.mux.Handle("GET "+PathRestSettings, authz.RequireAdmin(http.HandlerFunc(handler.getSettings)))
	handler.mux.Handle("POST "+PathRestSettings, authz.RequireAdmin(http.HandlerFunc(handler.postSettings)))

	handler.mux.Handle("GET "+PathSocketStatus, authz.RequireMe(handler.socket))

	return handler
}

var _ http.Handler = &Handler{}
