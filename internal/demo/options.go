package demo

import "github.com/bornholm/relais/internal/tabs"

type Options struct {
	RestEndpoint   string
	SocketEndpoint string
	BrokerEndpoint string
	Navbar         tabs.NavbarFunc
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		RestEndpoint:   "/rest/lightState",
		SocketEndpoint: "/ws/lightState",
		BrokerEndpoint: "/rest/brokerSettings",
		Navbar:         tabs.DefaultNavbar,
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

// WithEndpoints sets the endpoints of the demo controllers. Empty values keep
// the defaults.
func WithEndpoints(rest, socket, broker string) OptionFunc {
	return func(opts *Options) {
		if rest != "" {
			opts.RestEndpoint = rest
		}

		if socket != "" {
			opts.SocketEndpoint = socket
		}

		if broker != "" {
			opts.BrokerEndpoint = broker
		}
	}
}

func WithNavbar(fn tabs.NavbarFunc) OptionFunc {
	return func(opts *Options) {
		opts.Navbar = fn
	}
}
