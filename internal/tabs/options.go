package tabs

import (
	"net/http"

	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/ui"
)

type NavbarFunc func(r *http.Request) ui.NavbarTemplateData

type Options struct {
	Routes        []Route
	Fallback      string
	EnforceGuards bool
	Navbar        NavbarFunc
}

type Route struct {
	Tab  Tab
	View http.Handler
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Routes:        make([]Route, 0),
		Fallback:      "",
		EnforceGuards: false,
		Navbar:        DefaultNavbar,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// WithTab appends a tab and the view it dispatches to. Tabs are rendered and
// matched in declaration order.
func WithTab(tab Tab, view http.Handler) OptionFunc {
	return func(opts *Options) {
		opts.Routes = append(opts.Routes, Route{Tab: tab, View: view})
	}
}

// WithFallback sets the redirect target of unmatched paths. Defaults to the
// first tab.
func WithFallback(path string) OptionFunc {
	return func(opts *Options) {
		opts.Fallback = path
	}
}

// WithEnforcedGuards denies guarded routes with a 403 instead of only
// disabling their tab.
func WithEnforcedGuards(enforced bool) OptionFunc {
	return func(opts *Options) {
		opts.EnforceGuards = enforced
	}
}

func WithNavbar(fn NavbarFunc) OptionFunc {
	return func(opts *Options) {
		opts.Navbar = fn
	}
}

func DefaultNavbar(r *http.Request) ui.NavbarTemplateData {
	data := ui.NavbarTemplateData{
		NavbarItems: []ui.NavbarItem{ui.NavbarItemLogout},
	}

	if me, err := authz.ContextMe(r.Context()); err == nil {
		data.Username = me.Username
		data.IsAdmin = me.Admin
	}

	return data
}
