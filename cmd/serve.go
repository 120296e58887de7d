package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"giveaway-picker/internal/auth"
	"giveaway-picker/internal/giveaway"
	"giveaway-picker/internal/hashtag"
	"giveaway-picker/internal/httpapi"
	"giveaway-picker/worker"

	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background workers",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		a, err := newApp(ctx, cfg)
		if err != nil {
			return err
		}
		defer a.close()

		shutdown, err := time.ParseDuration(cfg.Server.ShutdownTimeout)
		if err != nil {
			return fmt.Errorf("invalid server.shutdown_timeout: %w", err)
		}
		if cfg.Auth.JWTSecret == "" {
			slog.Warn("serve: auth.jwt_secret is empty, every request is anonymous and history is not saved")
		}
		for _, p := range a.service.Platforms() {
			if a.service.DemoMode(p) {
				slog.Info("serve: platform in demo mode", "platform", p)
			}
		}

		gen := &hashtag.Generator{}
		if a.writer != nil {
			gen.AI = a.writer
		}
		handler := httpapi.NewRouter(httpapi.Deps{
			Comments: a.comments,
			Drawer:   a.drawer(giveaway.NewSelector()),
			History:  a.store,
			Hashtags: gen,
			Verifier: auth.Verifier{Secret: []byte(cfg.Auth.JWTSecret)},
			Ready:    a.store.Ping,
		})

		ws := []worker.Worker{&worker.APIServer{
			Addr:            cfg.Server.Addr,
			Handler:         handler,
			ShutdownTimeout: shutdown,
		}}
		if a.cached != nil && len(cfg.Comments.Watch) > 0 {
			interval, err := time.ParseDuration(cfg.Comments.WarmInterval)
			if err != nil {
				return fmt.Errorf("invalid comments.warm_interval: %w", err)
			}
			slog.Info("starting cache warmer", "watched", len(cfg.Comments.Watch), "interval", interval)
			ws = append(ws, &worker.CacheWarmer{Comments: a.cached, Watch: cfg.Comments.Watch, Interval: interval})
		}

		sigc := make(chan os.Signal, 1)
		signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
		go func() {
			s := <-sigc
			slog.Info("received signal, shutting down", "signal", s.String())
			cancel()
		}()

		return worker.NewManager(ws...).Start(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
