package server

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/http"
	"os"
	"runtime"
	"time"

	"github.com/TAPAN-2835/Business-Website/config"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"
)

// errKeyPermissions marks a key file readable by group or others.
type errKeyPermissions struct {
	file string
	perm os.FileMode
}

func (e errKeyPermissions) Error() string {
	return fmt.Sprintf("TLS key file %s has overly permissive permissions %o (recommended: 0600)", e.file, e.perm)
}

// tlsSetup returns the TLS config for the HTTPS listener and the handler
// for the plain HTTP listener.
func tlsSetup(ctx context.Context, cfg *config.CoreConfig, logger *zap.Logger) (*tls.Config, http.Handler, error) {
	redirect := httpRedirectHandler(cfg.HTTP.HTTPSPort)

	if cfg.TLS.UseLetsEncrypt {
		if cfg.HTTP.HTTPPort != 80 {
			logger.Warn("http-01 challenges are only answered on port 80", zap.Int("http_port", cfg.HTTP.HTTPPort))
		}
		m := &autocert.Manager{
			Prompt:     autocert.AcceptTOS,
			HostPolicy: autocert.HostWhitelist(cfg.TLS.Domain),
			Cache:      autocert.DirCache(cfg.TLS.LetsEncryptCacheDir),
			Email:      cfg.TLS.LetsEncryptEmail,
		}
		// The challenge handler has to be reachable before pre-warm, so the
		// caller starts it; here we only verify the cache on a short budget.
		go func() {
			if err := waitForCert(ctx, m, cfg.TLS.Domain, 60*time.Second); err != nil {
				logger.Warn("autocert pre-warm failed; first HTTPS hits may see TLS errors", zap.Error(err))
			}
		}()
		return &tls.Config{
			MinVersion:     tls.VersionTLS12,
			GetCertificate: m.GetCertificate,
			NextProtos:     []string{"h2", "http/1.1", "acme-tls/1"},
		}, m.HTTPHandler(redirect), nil
	}

	if err := validateTLSFiles(cfg.TLS.CertFile, cfg.TLS.KeyFile); err != nil {
		if _, perm := err.(errKeyPermissions); !perm || cfg.Env == "prod" {
			return nil, nil, err
		}
		logger.Warn("TLS key file security warning (would block in prod)", zap.Error(err))
	}
	cert, err := tls.LoadX509KeyPair(cfg.TLS.CertFile, cfg.TLS.KeyFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load TLS cert/key: %w", err)
	}
	return &tls.Config{
		MinVersion:   tls.VersionTLS12,
		Certificates: []tls.Certificate{cert},
	}, redirect, nil
}

// validateTLSFiles checks both files exist and are regular files, and that
// the key is not readable by group or others on Unix.
func validateTLSFiles(certFile, keyFile string) error {
	for _, f := range []struct{ kind, path string }{{"certificate", certFile}, {"key", keyFile}} {
		info, err := os.Stat(f.path)
		if err != nil {
			return fmt.Errorf("cannot access TLS %s file %q: %w", f.kind, f.path, err)
		}
		if info.IsDir() {
			return fmt.Errorf("TLS %s path is a directory: %s", f.kind, f.path)
		}
	}
	if runtime.GOOS == "windows" {
		return nil
	}
	info, _ := os.Stat(keyFile)
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		return errKeyPermissions{file: keyFile, perm: perm}
	}
	return nil
}

// waitForCert polls autocert until host has a certificate, ctx ends or
// timeout passes.
func waitForCert(ctx context.Context, m *autocert.Manager, host string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	tick := time.NewTicker(time.Second)
	defer tick.Stop()
	for {
		_, err := m.GetCertificate(&tls.ClientHelloInfo{ServerName: host})
		if err == nil {
			return nil
		}
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for cert for %q: %w (last error: %v)", host, ctx.Err(), err)
		case <-tick.C:
		}
	}
}
