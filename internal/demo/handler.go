package demo

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/bornholm/relais/internal/tabs"
	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

type Handler struct {
	prefix string
	opts   *Options
	screen *tabs.Screen
}

// ServeHTTP implements http.Handler.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.screen.ServeHTTP(w, r)
}

func (h *Handler) Screen() *tabs.Screen {
	return h.screen
}

// Prefix returns the path of the project, "/project" for the "project"
// project path.
func (h *Handler) Prefix() string {
	return h.prefix
}

func (h *Handler) InformationPath() string {
	return h.prefix + "/demo/information"
}

func Prefix(projectPath string) string {
	return "/" + strings.Trim(projectPath, "/")
}

func InformationPath(projectPath string) string {
	return Prefix(projectPath) + "/demo/information"
}

func NewHandler(projectPath string, funcs ...OptionFunc) *Handler {
	opts := NewOptions(funcs...)

	handler := &Handler{
		prefix: Prefix(projectPath),
		opts:   opts,
	}

	handler.screen = tabs.NewScreen("Demo Project",
		tabs.WithTab(tabs.Tab{Label: "Information", Path: handler.prefix + "/demo/information"}, handler.view("demo-information", "")),
		tabs.WithTab(tabs.Tab{Label: "REST Controller", Path: handler.prefix + "/demo/rest"}, handler.view("demo-rest", opts.RestEndpoint)),
		tabs.WithTab(tabs.Tab{Label: "WebSocket Controller", Path: handler.prefix + "/demo/socket"}, handler.view("demo-socket", opts.SocketEndpoint)),
		tabs.WithTab(tabs.Tab{Label: "MQTT Controller", Path: handler.prefix + "/demo/mqtt"}, handler.view("demo-mqtt", opts.BrokerEndpoint)),
		tabs.WithFallback(handler.InformationPath()),
		tabs.WithNavbar(opts.Navbar),
	)

	return handler
}

func (h *Handler) view(name string, endpoint string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data := ViewTemplateData{
			ProjectPath: h.prefix,
			Endpoint:    endpoint,
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")

		if err := templates.ExecuteTemplate(w, name, data); err != nil {
			slog.ErrorContext(r.Context(), "could not execute template", log.Error(errors.WithStack(err)))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	})
}

var _ http.Handler = &Handler{}
