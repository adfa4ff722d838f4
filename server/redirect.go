package server

import (
	"net"
	"net/http"
	"strconv"
	"strings"
)

// httpRedirectHandler sends every request to the HTTPS origin, keeping the
// path and query. Hosts and URIs with control characters are rejected so
// they cannot be reflected into the Location header.
func httpRedirectHandler(httpsPort int) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		host, ok := redirectHost(r.Host, httpsPort)
		uri := r.URL.RequestURI()
		if !ok || hasControl(uri) {
			http.Error(w, "Bad Request", http.StatusBadRequest)
			return
		}
		http.Redirect(w, r, "https://"+host+uri, http.StatusMovedPermanently)
	})
}

// redirectHost validates the Host header and rewrites its port for HTTPS.
func redirectHost(host string, httpsPort int) (string, bool) {
	if host == "" || hasControl(host) || strings.ContainsAny(host, " /\\@") {
		return "", false
	}
	name := host
	if h, port, err := net.SplitHostPort(host); err == nil {
		if n, err := strconv.Atoi(port); err != nil || n <= 0 || n > 65535 {
			return "", false
		}
		name = h
	}
	name = strings.TrimSuffix(strings.TrimPrefix(name, "["), "]")
	if name == "" {
		return "", false
	}
	if strings.Contains(name, ":") && net.ParseIP(strings.SplitN(name, "%", 2)[0]) == nil {
		return "", false
	}
	if httpsPort == 443 || httpsPort == 0 {
		if strings.Contains(name, ":") {
			return "[" + name + "]", true
		}
		return name, true
	}
	return net.JoinHostPort(name, strconv.Itoa(httpsPort)), true
}

func hasControl(s string) bool {
	for _, c := range s {
		if c < 0x20 || c == 0x7f {
			return true
		}
	}
	return false
}
