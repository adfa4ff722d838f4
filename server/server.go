// server/server.go
package server

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"

	"github.com/TAPAN-2835/Business-Website/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ListenAndServeWithContext serves handler over plain HTTP, manual TLS or
// Let's Encrypt (http-01) depending on cfg, and blocks until ctx is
// canceled or a listener fails. In the HTTPS modes the http_port listener
// only redirects (and answers ACME challenges).
func ListenAndServeWithContext(ctx context.Context, cfg *config.CoreConfig, handler http.Handler, logger *zap.Logger) error {
	if cfg == nil {
		return errors.New("server: cfg is nil")
	}
	if handler == nil {
		return errors.New("server: handler is nil")
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	httpAddr := ":" + strconv.Itoa(cfg.HTTP.HTTPPort)

	if !cfg.HTTP.UseHTTPS {
		ln, err := net.Listen("tcp", httpAddr)
		if err != nil {
			return fmt.Errorf("listen http %s: %w", httpAddr, err)
		}
		logger.Info("HTTP server listening", zap.String("addr", ln.Addr().String()))
		return Serve(ctx, cfg, newHTTPServer(cfg, handler, logger), ln, nil, logger)
	}

	tlsCfg, auxHandler, err := tlsSetup(ctx, cfg, logger)
	if err != nil {
		return err
	}

	aux := newHTTPServer(cfg, auxHandler, logger)
	aux.Addr = httpAddr

	httpsAddr := ":" + strconv.Itoa(cfg.HTTP.HTTPSPort)
	baseLn, err := net.Listen("tcp", httpsAddr)
	if err != nil {
		return fmt.Errorf("listen https %s: %w", httpsAddr, err)
	}
	srv := newHTTPServer(cfg, handler, logger)
	srv.TLSConfig = tlsCfg

	logger.Info("HTTPS server listening",
		zap.String("addr", baseLn.Addr().String()),
		zap.String("domain", cfg.TLS.Domain),
		zap.Bool("lets_encrypt", cfg.TLS.UseLetsEncrypt))
	logger.Info("HTTP redirect server listening", zap.String("addr", aux.Addr))

	return Serve(ctx, cfg, srv, tls.NewListener(baseLn, tlsCfg), aux, logger)
}

func newHTTPServer(cfg *config.CoreConfig, handler http.Handler, logger *zap.Logger) *http.Server {
	srv := &http.Server{
		Handler:           handler,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}
	if stdlog, err := zap.NewStdLogAt(logger, zapcore.WarnLevel); err == nil {
		srv.ErrorLog = stdlog
	}
	return srv
}

// Serve runs srv on ln (and aux via ListenAndServe when non-nil) until ctx
// is canceled, then shuts both down within cfg.HTTP.ShutdownTimeout.
// ln is closed on return.
func Serve(ctx context.Context, cfg *config.CoreConfig, srv *http.Server, ln net.Listener, aux *http.Server, logger *zap.Logger) error {
	serveErr := make(chan error, 1)
	go func() { serveErr <- ignoreClosed(srv.Serve(ln)) }()

	// A nil channel never fires, which disables the aux case in HTTP-only mode.
	var auxErr chan error
	if aux != nil {
		auxErr = make(chan error, 1)
		go func() { auxErr <- ignoreClosed(aux.ListenAndServe()) }()
	}

	shutdownAux := func(ctx context.Context) {
		if aux != nil {
			_ = aux.Shutdown(ctx)
		}
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down server…")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
			defer cancel()
			shutdownAux(shutdownCtx)
			err := srv.Shutdown(shutdownCtx)
			_ = ln.Close()
			if err != nil {
				return fmt.Errorf("server shutdown: %w", err)
			}
			logger.Info("server stopped gracefully")
			return nil

		case err := <-serveErr:
			shutdownAux(context.Background())
			_ = ln.Close()
			if err != nil {
				return fmt.Errorf("primary server error: %w", err)
			}
			return nil

		case err := <-auxErr:
			if err != nil {
				_ = srv.Close()
				_ = ln.Close()
				return fmt.Errorf("redirect server error: %w", err)
			}
			aux, auxErr = nil, nil
		}
	}
}

func ignoreClosed(err error) error {
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
