// Package routepath stores canonical HTTP paths for the jweb endpoints.
package routepath

import (
	"net/url"
	"strings"
)

const (
	Root      = "/"
	Data      = "/jwdata"
	CSS       = "/jwcss"
	Ajax      = "/jwajax"
	Script    = "/jwscript"
	WebSocket = "/jwws"

	// ComponentParam names the data component query parameter.
	ComponentParam = "component"
	// PageParam names the page URL query parameter on asset links.
	PageParam = "page"
)

// CSSFor returns the stylesheet link of a page URL.
func CSSFor(pageURL string) string {
	return withPage(CSS, pageURL)
}

// ScriptFor returns the bootstrap script link of a page URL.
func ScriptFor(pageURL string) string {
	return withPage(Script, pageURL)
}

// DataFor returns the data endpoint for an encoded component class name.
func DataFor(component string) string {
	return Data + "?" + url.Values{ComponentParam: {component}}.Encode()
}

func withPage(base, pageURL string) string {
	pageURL = strings.TrimSpace(pageURL)
	if pageURL == "" {
		return base
	}
	return base + "?" + url.Values{PageParam: {pageURL}}.Encode()
}
