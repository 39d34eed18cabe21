package mqtt

import (
	"github.com/bornholm/relais/internal/authz"
	"github.com/bornholm/relais/internal/tabs"
)

type Options struct {
	Connection    Connection
	SettingsGuard authz.Rule
	EnforceGuards bool
	Navbar        tabs.NavbarFunc
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Connection:    Offline{},
		SettingsGuard: authz.AdminRule,
		EnforceGuards: false,
		Navbar:        tabs.DefaultNavbar,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func WithConnection(conn Connection) OptionFunc {
	return func(opts *Options) {
		opts.Connection = conn
	}
}

// WithSettingsGuard sets the rule enabling the settings tab.
func WithSettingsGuard(rule authz.Rule) OptionFunc {
	return func(opts *Options) {
		opts.SettingsGuard = rule
	}
}

func WithEnforcedGuards(enforced bool) OptionFunc {
	return func(opts *Options) {
		opts.EnforceGuards = enforced
	}
}

func WithNavbar(fn tabs.NavbarFunc) OptionFunc {
	return func(opts *Options) {
		opts.Navbar = fn
	}
}
