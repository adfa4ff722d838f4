package templates

import "io/fs"

// Set is a group of template files loaded together, usually embedded by
// the feature package that renders them.
type Set struct {
	Name     string   // for logs
	FS       fs.FS    // embedded files
	Patterns []string // globs within FS, e.g. "templates/*.gohtml"
}
