package ui

// NavbarItem represents an item in the navigation menu
type NavbarItem struct {
	Label    string
	URL      string
	Icon     string
	Position string // "left" or "right"
	Active   bool
}

type NavbarTemplateData struct {
	Username    string
	IsAdmin     bool
	NavbarItems []NavbarItem
}

var NavbarItemLogout = NavbarItem{
	Label:    "Logout",
	URL:      "/auth/logout",
	Icon:     "fa-sign-out-alt",
	Position: "right",
}

// WithActive returns a copy of items where the item whose URL shares the
// longest prefix with path is marked active.
func WithActive(items []NavbarItem, path string) []NavbarItem {
	marked := make([]NavbarItem, len(items))
	copy(marked, items)

	best := -1
	bestLen := 0

	for idx, item := range marked {
		prefix := sectionPrefix(item.URL)
		if prefix == "" || len(prefix) <= bestLen {
			continue
		}

		if path == prefix || len(path) > len(prefix) && path[:len(prefix)+1] == prefix+"/" {
			best = idx
			bestLen = len(prefix)
		}
	}

	if best != -1 {
		marked[best].Active = true
	}

	return marked
}

// sectionPrefix trims the last path segment of url, "/mqtt/status" being
// the entry point of the "/mqtt" section.
func sectionPrefix(url string) string {
	for idx := len(url) - 1; idx > 0; idx-- {
		if url[idx] == '/' {
			return url[:idx]
		}
	}

	return ""
}
