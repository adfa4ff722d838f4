// Package templates compiles the site's html/template sets. The shared set
// holds the layout and partials; every page file in a feature set is
// compiled into its own clone of the shared set so each page can define
// its own "content" block.
package templates

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// Engine holds the compiled templates indexed by the names each page defines.
type Engine struct {
	mu     sync.RWMutex
	funcs  template.FuncMap
	base   *template.Template
	byName map[string]*template.Template
	logger *zap.Logger
}

// New returns an Engine with Funcs plus any extra helpers.
func New(logger *zap.Logger, extra template.FuncMap) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	funcs := Funcs()
	for k, v := range extra {
		funcs[k] = v
	}
	return &Engine{
		funcs:  funcs,
		byName: make(map[string]*template.Template),
		logger: logger,
	}
}

// Boot parses shared and then compiles one clone per page file of each set.
func (e *Engine) Boot(shared Set, sets ...Set) error {
	base, err := e.parseShared(shared)
	if err != nil {
		return fmt.Errorf("parse shared: %w", err)
	}
	e.mu.Lock()
	e.base = base
	e.mu.Unlock()

	for _, s := range sets {
		if err := e.compilePages(s); err != nil {
			return fmt.Errorf("compile set %q: %w", s.Name, err)
		}
	}
	return nil
}

var (
	reContentDefine = regexp.MustCompile(`{{-?\s*define\s+"content"\s*-?}}`)
	reDefineName    = regexp.MustCompile(`{{-?\s*define\s+"([^"]+)"`)
)

func (e *Engine) parseShared(s Set) (*template.Template, error) {
	files, err := globAll(s.FS, s.Patterns)
	if err != nil {
		return nil, err
	}
	root := template.New("root").Funcs(e.funcs)
	for _, p := range files {
		b, err := fs.ReadFile(s.FS, p)
		if err != nil {
			return nil, err
		}
		if _, err := root.Parse(string(b)); err != nil {
			return nil, fmt.Errorf("parse %s: %w", p, err)
		}
	}
	return root, nil
}

// compilePages gives every file in s its own clone of the shared base.
// Sibling files are parsed into the clone too, with their "content"
// block renamed, so shared partials defined in the set stay reachable.
func (e *Engine) compilePages(s Set) error {
	files, err := globAll(s.FS, s.Patterns)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		e.logger.Warn("no templates matched", zap.String("set", s.Name))
		return nil
	}

	sources := make(map[string]string, len(files))
	for _, p := range files {
		b, err := fs.ReadFile(s.FS, p)
		if err != nil {
			return fmt.Errorf("read %s: %w", p, err)
		}
		sources[p] = string(b)
	}

	for _, page := range files {
		clone, err := e.base.Clone()
		if err != nil {
			return fmt.Errorf("clone base: %w", err)
		}
		for _, p := range files {
			text := sources[p]
			if p != page {
				text = reContentDefine.ReplaceAllString(text, `{{ define "`+ignoredContentName(p)+`" }}`)
			}
			if _, err := clone.Funcs(e.funcs).Parse(text); err != nil {
				return fmt.Errorf("parse %s (for %s): %w", p, page, err)
			}
		}

		e.mu.Lock()
		for _, name := range definedNames(sources[page]) {
			if name != "content" {
				e.byName[name] = clone
			}
		}
		e.mu.Unlock()

		e.logger.Debug("template page compiled",
			zap.String("set", s.Name), zap.String("page", path.Base(page)))
	}
	return nil
}

func ignoredContentName(p string) string {
	base := path.Base(p)
	return "_content_ignored_" + strings.TrimSuffix(base, path.Ext(base))
}

func definedNames(src string) []string {
	var out []string
	for _, m := range reDefineName.FindAllStringSubmatch(src, -1) {
		out = append(out, m[1])
	}
	return out
}

func globAll(fsys fs.FS, patterns []string) ([]string, error) {
	var out []string
	for _, pat := range patterns {
		matches, err := fs.Glob(fsys, pat)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			if !slices.Contains(out, m) {
				out = append(out, m)
			}
		}
	}
	slices.Sort(out)
	return out, nil
}

// Has reports whether a page or partial named name was compiled.
func (e *Engine) Has(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	_, ok := e.byName[name]
	return ok
}

// Execute renders name into w. Output is buffered so a failing template
// never leaves a half-written page.
func (e *Engine) Execute(w io.Writer, name string, data any) error {
	e.mu.RLock()
	t, ok := e.byName[name]
	e.mu.RUnlock()
	if !ok {
		return fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, name, data); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
