package tabs

import "github.com/bornholm/relais/internal/authz"

type Tab struct {
	Label string
	Path  string
	// Guard enables the tab for the current user. A nil guard always
	// enables it.
	Guard authz.Rule
}
