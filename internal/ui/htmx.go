package ui

import (
	"net/http"
	"strings"
)

const (
	HeaderHXRequest = "HX-Request"
	HeaderHXPushURL = "HX-Push-Url"
)

// IsHTMXRequest reports whether the request was initiated by HTMX.
func IsHTMXRequest(r *http.Request) bool {
	if r == nil {
		return false
	}

	return strings.EqualFold(r.Header.Get(HeaderHXRequest), "true")
}
