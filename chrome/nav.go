// Package chrome models the page furniture shared by every page of the
// site. Navigation highlighting and prefetch hints are resolved on the
// server; the menu, header, smooth-scroll and reveal constants are handed
// to the page script.
package chrome

import (
	"path"
	"strings"
)

// DefaultPage is the page a bare directory path resolves to.
const DefaultPage = "index.html"

// Link is one navigation entry.
type Link struct {
	Label string `yaml:"label"`
	Href  string `yaml:"href"`
}

// NavItem is a Link with its highlight state resolved.
type NavItem struct {
	Link
	Active bool
	// AriaCurrent is "page" for the active link and "" otherwise.
	AriaCurrent string
}

// Class returns "active" for the current page's link.
func (n NavItem) Class() string {
	if n.Active {
		return "active"
	}
	return ""
}

// CurrentPage returns the last path segment of p, or DefaultPage.
func CurrentPage(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" || strings.HasSuffix(p, "/") {
		return DefaultPage
	}
	return path.Base(p)
}

// Nav marks the link whose href equals the current page of requestPath.
func Nav(requestPath string, links []Link) []NavItem {
	current := CurrentPage(requestPath)
	out := make([]NavItem, len(links))
	for i, l := range links {
		out[i] = NavItem{Link: l}
		if l.Href == current {
			out[i].Active = true
			out[i].AriaCurrent = "page"
		}
	}
	return out
}
