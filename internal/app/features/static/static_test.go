package static

import (
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"
)

func gz(t *testing.T, s string) []byte {
	t.Helper()
	var b strings.Builder
	zw := gzip.NewWriter(&b)
	if _, err := zw.Write([]byte(s)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return []byte(b.String())
}

func TestHandler(t *testing.T) {
	root := fstest.MapFS{
		"css/site.css":    {Data: []byte("body{}")},
		"css/site.css.gz": {Data: gz(t, "body{}")},
		"js/site.js":      {Data: []byte("void 0")},
	}
	h := Handler("/static", root, Options{CacheControl: "public, max-age=60"})

	tests := []struct {
		name     string
		method   string
		path     string
		accept   string
		code     int
		encoding string
		ctype    string
	}{
		{"gzip variant", http.MethodGet, "/static/css/site.css", "gzip, br;q=0", http.StatusOK, "gzip", "text/css; charset=utf-8"},
		{"identity", http.MethodGet, "/static/css/site.css", "", http.StatusOK, "", "text/css; charset=utf-8"},
		{"gzip refused", http.MethodGet, "/static/css/site.css", "gzip;q=0", http.StatusOK, "", "text/css; charset=utf-8"},
		{"no variant", http.MethodGet, "/static/js/site.js", "gzip", http.StatusOK, "", ""},
		{"variant hidden", http.MethodGet, "/static/css/site.css.gz", "", http.StatusNotFound, "", ""},
		{"missing", http.MethodGet, "/static/nope.css", "gzip", http.StatusNotFound, "", ""},
		{"post", http.MethodPost, "/static/css/site.css", "", http.StatusMethodNotAllowed, "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.accept != "" {
				req.Header.Set("Accept-Encoding", tt.accept)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			if rec.Code != tt.code {
				t.Fatalf("status = %d, want %d", rec.Code, tt.code)
			}
			if got := rec.Header().Get("Content-Encoding"); got != tt.encoding {
				t.Errorf("Content-Encoding = %q, want %q", got, tt.encoding)
			}
			if tt.ctype != "" && rec.Header().Get("Content-Type") != tt.ctype {
				t.Errorf("Content-Type = %q, want %q", rec.Header().Get("Content-Type"), tt.ctype)
			}
			if tt.code == http.StatusOK && rec.Header().Get("Cache-Control") != "public, max-age=60" {
				t.Errorf("Cache-Control = %q", rec.Header().Get("Cache-Control"))
			}
		})
	}
}

func TestHandler_GzipBodyDecodes(t *testing.T) {
	root := fstest.MapFS{
		"a.css":    {Data: []byte("plain")},
		"a.css.gz": {Data: gz(t, "compressed")},
	}
	req := httptest.NewRequest(http.MethodGet, "/s/a.css", nil)
	req.Header.Set("Accept-Encoding", "gzip")
	rec := httptest.NewRecorder()
	Handler("/s", root, Options{}).ServeHTTP(rec, req)

	zr, err := gzip.NewReader(rec.Body)
	if err != nil {
		t.Fatal(err)
	}
	b, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "compressed" {
		t.Errorf("body = %q", b)
	}
	if rec.Header().Get("Vary") != "Accept-Encoding" {
		t.Errorf("Vary = %q", rec.Header().Get("Vary"))
	}
}

func TestAssetsEmbedded(t *testing.T) {
	for _, name := range []string{"css/site.css", "css/site.css.gz", "js/site.js", "js/site.js.gz"} {
		f, err := Assets().Open(name)
		if err != nil {
			t.Errorf("open %s: %v", name, err)
			continue
		}
		_ = f.Close()
	}
}
