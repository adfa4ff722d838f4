// Package pages serves the site's static content pages.
package pages

import (
	"embed"
	"net/http"

	"github.com/TAPAN-2835/Business-Website/internal/app/resources"
	"github.com/TAPAN-2835/Business-Website/internal/site"
	"github.com/TAPAN-2835/Business-Website/templates"
	"github.com/go-chi/chi/v5"
)

//go:embed templates/*.gohtml
var templatesFS embed.FS

// Templates is the page set booted alongside resources.Shared.
var Templates = templates.Set{
	Name:     "pages",
	FS:       templatesFS,
	Patterns: []string{"templates/*.gohtml"},
}

type page struct {
	name        string
	title       string
	description string
}

var (
	home     = page{"index", "Home", "Websites and tools for growing businesses."}
	about    = page{"about", "About", "Who we are and what we stand for."}
	services = page{"services", "Services", "Web design, development, SEO and support."}
	notFound = page{"notfound", "Not Found", ""}
)

// Handler renders content pages.
type Handler struct {
	engine *templates.Engine
	site   *site.Site
}

// NewHandler binds the pages to a booted engine and the site content.
func NewHandler(engine *templates.Engine, s *site.Site) *Handler {
	return &Handler{engine: engine, site: s}
}

// Data is what each page template receives.
type Data struct {
	Layout resources.Layout
	Site   *site.Site
}

// Routes mounts every page at its extensionless path and its .html alias.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.serve(home, http.StatusOK))
	r.Get("/index.html", h.serve(home, http.StatusOK))
	r.Get("/about", h.serve(about, http.StatusOK))
	r.Get("/about.html", h.serve(about, http.StatusOK))
	r.Get("/services", h.serve(services, http.StatusOK))
	r.Get("/services.html", h.serve(services, http.StatusOK))
}

// NotFound renders the 404 page.
func (h *Handler) NotFound() http.Handler {
	return h.serve(notFound, http.StatusNotFound)
}

func (h *Handler) serve(p page, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.engine.Render(w, status, p.name, Data{
			Layout: resources.NewLayout(r, h.site, p.title, p.description),
			Site:   h.site,
		})
	}
}
