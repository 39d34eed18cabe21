package oauth2

// Provider is an identity provider offered on the login page.
type Provider struct {
	ID    string
	Label string
	Icon  string
}

type Options struct {
	Providers          []Provider
	Prefix             string
	PostLoginRedirect  string
	PostLogoutRedirect string
}

type OptionFunc func(opts *Options)

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Providers:         make([]Provider, 0),
		Prefix:            "/auth",
		PostLoginRedirect: "/",
	}

	for _, fn := range funcs {
		fn(opts)
	}

	if opts.PostLogoutRedirect == "" {
		opts.PostLogoutRedirect = opts.Prefix + "/login"
	}

	return opts
}

func WithProviders(providers ...Provider) OptionFunc {
	return func(opts *Options) {
		opts.Providers = providers
	}
}

func WithPrefix(prefix string) OptionFunc {
	return func(opts *Options) {
		opts.Prefix = prefix
	}
}

func WithPostLoginRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.PostLoginRedirect = path
	}
}

func WithPostLogoutRedirect(path string) OptionFunc {
	return func(opts *Options) {
		opts.PostLogoutRedirect = path
	}
}
