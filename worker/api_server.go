package worker

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"
)

// APIServer serves Handler on Addr and shuts down gracefully on cancel.
type APIServer struct {
	Addr            string
	Handler         http.Handler
	ShutdownTimeout time.Duration
	// Listener overrides Addr when set.
	Listener net.Listener
}

func (w *APIServer) Start(ctx context.Context) error {
	if w.ShutdownTimeout <= 0 {
		w.ShutdownTimeout = 10 * time.Second
	}
	srv := &http.Server{
		Addr:              w.Addr,
		Handler:           w.Handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	ln := w.Listener
	if ln == nil {
		var err error
		if ln, err = net.Listen("tcp", w.Addr); err != nil {
			return err
		}
	}
	slog.Info("api-server: listening", "addr", ln.Addr().String())

	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), w.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("api-server: shutdown error", "error", err)
		return err
	}
	slog.Info("api-server: stopped")
	return nil
}
