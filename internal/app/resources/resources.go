// Package resources holds the shared layout templates and the data every
// page passes to them.
package resources

import (
	"embed"
	"net/http"
	"path"
	"strings"

	"github.com/TAPAN-2835/Business-Website/chrome"
	"github.com/TAPAN-2835/Business-Website/internal/site"
	"github.com/TAPAN-2835/Business-Website/templates"
)

//go:embed templates/*.gohtml
var sharedFS embed.FS

// Shared is the layout set every page clones.
var Shared = templates.Set{
	Name:     "shared",
	FS:       sharedFS,
	Patterns: []string{"templates/*.gohtml"},
}

// Layout is the data the shared layout reads.
type Layout struct {
	Title       string
	Description string
	Company     site.Company
	Nav         []chrome.NavItem
	Prefetch    []string
	// Menu is the initial closed state; MenuOpen is what the page script
	// switches to.
	Menu     chrome.MenuState
	MenuOpen chrome.MenuState
	// Handed to the page script as data attributes.
	RevealThreshold   float64
	RevealRootMargin  string
	HeaderOffset      int
	ScrolledThreshold int
}

// NewLayout resolves navigation highlighting and prefetch hints for r.
func NewLayout(r *http.Request, s *site.Site, title, description string) Layout {
	p := PagePath(r.URL.Path)
	return Layout{
		Title:             title,
		Description:       description,
		Company:           s.Company,
		Nav:               chrome.Nav(p, s.Nav),
		Prefetch:          chrome.PrefetchHints(p, s.Nav),
		Menu:              chrome.Menu(false),
		MenuOpen:          chrome.Menu(true),
		RevealThreshold:   chrome.RevealThreshold,
		RevealRootMargin:  chrome.RevealRootMargin(),
		HeaderOffset:      chrome.HeaderOffset,
		ScrolledThreshold: chrome.ScrolledThreshold,
	}
}

// PagePath maps extensionless routes onto the .html names used in
// navigation links, so /about and /about.html highlight the same entry.
func PagePath(p string) string {
	if p == "" || strings.HasSuffix(p, "/") || path.Ext(p) != "" {
		return p
	}
	return p + ".html"
}
