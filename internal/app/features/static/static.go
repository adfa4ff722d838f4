// Package static serves the embedded stylesheet and script, preferring
// pre-compressed variants when the client accepts them.
package static

import (
	"embed"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"

	"github.com/go-chi/chi/v5"
)

//go:embed assets
var embedded embed.FS

// Prefix is the URL prefix assets are served under.
const Prefix = "/static"

// DefaultCacheControl is sent with every asset.
const DefaultCacheControl = "public, max-age=3600"

// Options configures Handler.
type Options struct {
	CacheControl string
	// DisablePrecompressed skips the .br and .gz lookup.
	DisablePrecompressed bool
}

// Assets returns the embedded asset tree rooted at assets/.
func Assets() fs.FS {
	sub, err := fs.Sub(embedded, "assets")
	if err != nil {
		panic(err)
	}
	return sub
}

var encodings = []struct {
	ext, name string
}{
	{".br", "br"},
	{".gz", "gzip"},
}

// Handler serves files from root with urlPrefix stripped. Compressed
// variants are themselves never listed or served directly.
func Handler(urlPrefix string, root fs.FS, opts Options) http.Handler {
	files := http.FileServer(http.FS(root))

	return http.StripPrefix(urlPrefix, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}

		name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
		if isVariant(name) {
			http.NotFound(w, r)
			return
		}
		if opts.CacheControl != "" {
			w.Header().Set("Cache-Control", opts.CacheControl)
		}

		if !opts.DisablePrecompressed && name != "" {
			for _, enc := range encodings {
				if !acceptsEncoding(r, enc.name) {
					continue
				}
				if serveVariant(w, r, root, name, enc.ext, enc.name) {
					return
				}
			}
		}

		files.ServeHTTP(w, r)
	}))
}

func serveVariant(w http.ResponseWriter, r *http.Request, root fs.FS, name, ext, encoding string) bool {
	f, err := root.Open(name + ext)
	if err != nil {
		return false
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil || fi.IsDir() {
		return false
	}
	rs, ok := f.(io.ReadSeeker)
	if !ok {
		return false
	}

	w.Header().Set("Content-Encoding", encoding)
	w.Header().Add("Vary", "Accept-Encoding")
	w.Header().Set("Content-Type", contentType(name))
	http.ServeContent(w, r, name, fi.ModTime(), rs)
	return true
}

// Mount serves the embedded assets under Prefix.
func Mount(r chi.Router) {
	r.Handle(Prefix+"/*", Handler(Prefix, Assets(), Options{CacheControl: DefaultCacheControl}))
}

func isVariant(name string) bool {
	for _, enc := range encodings {
		if strings.HasSuffix(name, enc.ext) {
			return true
		}
	}
	return false
}

func acceptsEncoding(r *http.Request, encoding string) bool {
	for _, part := range strings.Split(r.Header.Get("Accept-Encoding"), ",") {
		enc, params, _ := strings.Cut(strings.TrimSpace(part), ";")
		if !strings.EqualFold(strings.TrimSpace(enc), encoding) {
			continue
		}
		return strings.ReplaceAll(params, " ", "") != "q=0"
	}
	return false
}

func contentType(name string) string {
	if mt := mime.TypeByExtension(strings.ToLower(path.Ext(name))); mt != "" {
		return mt
	}
	return "application/octet-stream"
}
