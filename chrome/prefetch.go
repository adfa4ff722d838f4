package chrome

import (
	"strings"
	"sync"
)

// Prefetcher records which internal pages have been hinted for prefetch.
// Each href is hinted at most once.
type Prefetcher struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	hints []string
}

// NewPrefetcher returns an empty Prefetcher.
func NewPrefetcher() *Prefetcher {
	return &Prefetcher{seen: make(map[string]struct{})}
}

// Prefetchable reports whether href points at an internal .html page.
func Prefetchable(href string) bool {
	return strings.HasSuffix(href, ".html") && !strings.Contains(href, "://")
}

// Hover registers href and reports whether a new hint was added.
func (p *Prefetcher) Hover(href string) bool {
	if !Prefetchable(href) {
		return false
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.seen[href]; ok {
		return false
	}
	p.seen[href] = struct{}{}
	p.hints = append(p.hints, href)
	return true
}

// Hints returns the hinted hrefs in registration order.
func (p *Prefetcher) Hints() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.hints))
	copy(out, p.hints)
	return out
}

// PrefetchHints lists the internal pages linked from a page other than the
// current one, deduplicated, for rendering as <link rel="prefetch">.
func PrefetchHints(requestPath string, links []Link) []string {
	current := CurrentPage(requestPath)
	p := NewPrefetcher()
	for _, l := range links {
		if l.Href == current {
			continue
		}
		p.Hover(l.Href)
	}
	return p.Hints()
}
