package tabs

import (
	"context"
	"embed"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/ui"
	"github.com/bornholm/relais/pkg/log"
	"github.com/pkg/errors"
)

//go:embed templates/**
var templateFs embed.FS

var templates *template.Template

func init() {
	tmpl, err := ui.Templates(nil, templateFs)
	if err != nil {
		panic(errors.WithStack(err))
	}

	templates = tmpl
}

// QueryTab is the query parameter carrying a tab change request.
const QueryTab = "tab"

// Screen renders an app bar, a tab strip selected from the current path and
// the view of the matching tab. Paths matching no tab redirect to the
// fallback, so every request is answered.
type Screen struct {
	title         string
	routes        []Route
	fallback      string
	enforceGuards bool
	navbar        NavbarFunc
}

type ScreenTemplateData struct {
	ui.HeadTemplateData
	ui.NavbarTemplateData
	Title   string
	Strip   ui.TabStripTemplateData
	Content template.HTML
}

func NewScreen(title string, funcs ...OptionFunc) *Screen {
	opts := NewOptions(funcs...)

	fallback := opts.Fallback
	if fallback == "" && len(opts.Routes) > 0 {
		fallback = opts.Routes[0].Tab.Path
	}

	return &Screen{
		title:         title,
		routes:        opts.Routes,
		fallback:      fallback,
		enforceGuards: opts.EnforceGuards,
		navbar:        opts.Navbar,
	}
}

func (s *Screen) Title() string {
	return s.title
}

func (s *Screen) Fallback() string {
	return s.fallback
}

func (s *Screen) Tabs() []Tab {
	tabs := make([]Tab, 0, len(s.routes))
	for _, r := range s.routes {
		tabs = append(tabs, r.Tab)
	}

	return tabs
}

// Resolve returns the first route whose tab path equals path.
func (s *Screen) Resolve(path string) (Route, bool) {
	for _, r := range s.routes {
		if r.Tab.Path == path {
			return r, true
		}
	}

	return Route{}, false
}

// Strip returns the tab strip for path, with tabs whose guard denies the user
// in ctx marked disabled.
func (s *Screen) Strip(ctx context.Context, path string) ui.TabStripTemplateData {
	strip := ui.TabStripTemplateData{
		Selected: path,
		Tabs:     make([]ui.TabTemplateData, 0, len(s.routes)),
	}

	for _, r := range s.routes {
		strip.Tabs = append(strip.Tabs, ui.TabTemplateData{
			Label:    r.Tab.Label,
			Path:     r.Tab.Path,
			Selected: r.Tab.Path == path,
			Disabled: !s.enabled(ctx, r.Tab),
		})
	}

	return strip
}

// Select handles a tab change from current to target. It returns target if it
// is a known, enabled tab and current otherwise.
func (s *Screen) Select(ctx context.Context, current, target string) string {
	r, exists := s.Resolve(target)
	if !exists || !s.enabled(ctx, r.Tab) {
		return current
	}

	return target
}

func (s *Screen) enabled(ctx context.Context, tab Tab) bool {
	allowed, err := authz.Allowed(ctx, tab.Guard)
	if err != nil {
		slog.ErrorContext(ctx, "could not evaluate tab guard", log.Error(errors.WithStack(err)), slog.String("tab", tab.Path))
		return false
	}

	return allowed
}

// ServeHTTP implements http.Handler.
func (s *Screen) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	path := r.URL.Path

	if target := r.URL.Query().Get(QueryTab); target != "" {
		s.serveTabChange(w, r, target)
		return
	}

	route, exists := s.Resolve(path)
	if !exists {
		slog.DebugContext(ctx, "no matching tab, redirecting", slog.String("path", path), slog.String("fallback", s.fallback))
		http.Redirect(w, r, s.fallback, http.StatusFound)
		return
	}

	if s.enforceGuards && !s.enabled(ctx, route.Tab) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}

	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		route.View.ServeHTTP(w, r)
		return
	}

	buff := newResponseBuffer()
	route.View.ServeHTTP(buff, r)

	if !buff.isHTMLFragment() {
		buff.replay(w)
		return
	}

	navbar := s.navbar(r)
	navbar.NavbarItems = ui.WithActive(navbar.NavbarItems, path)

	data := ScreenTemplateData{
		HeadTemplateData: ui.HeadTemplateData{
			PageTitle: s.title + " - " + route.Tab.Label,
		},
		NavbarTemplateData: navbar,
		Title:              s.title,
		Strip:              s.Strip(ctx, path),
		Content:            template.HTML(buff.body.String()),
	}

	buff.header.Del("Content-Length")
	copyHeaders(w.Header(), buff.header)
	w.Header().Set("Content-Type", "text/html; charset=utf-8")

	name := "screen"
	if ui.IsHTMXRequest(r) {
		name = "screen-body"
		w.Header().Set(ui.HeaderHXPushURL, path)
	}

	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		slog.ErrorContext(ctx, "could not execute template", log.Error(errors.WithStack(err)))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
}

// serveTabChange navigates to the tab Select picks, or leaves the client where
// it is with a 204 when the selection does not move.
func (s *Screen) serveTabChange(w http.ResponseWriter, r *http.Request, target string) {
	ctx := r.Context()
	current := r.URL.Path

	next := s.Select(ctx, current, target)
	if next == current {
		slog.DebugContext(ctx, "ignored tab change", slog.String("current", current), slog.String("target", target))
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if ui.IsHTMXRequest(r) {
		w.Header().Set("HX-Location", next)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	http.Redirect(w, r, next, http.StatusSeeOther)
}

var _ http.Handler = &Screen{}
