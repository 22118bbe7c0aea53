package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/timeline-dev/timelines/db"
	"github.com/timeline-dev/timelines/internal/auth"
	"github.com/timeline-dev/timelines/internal/handlers"
	"github.com/timeline-dev/timelines/internal/router"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, conn, err := bootstrap()
		if err != nil {
			return err
		}
		defer db.Close(conn)

		if err := cfg.Validate(); err != nil {
			return err
		}

		signer, err := auth.NewSigner(cfg.SessionSecret)
		if err != nil {
			return err
		}

		gin.SetMode(cfg.GinMode)

		r, err := router.NewRouter(router.Options{
			DB:             conn,
			Signer:         signer,
			Log:            log,
			AllowedOrigins: cfg.AllowedOrigins,
			Cookie: handlers.CookieConfig{
				Domain: cfg.CookieDomain,
				Secure: cfg.CookieSecure,
			},
		})
		if err != nil {
			return err
		}

		srv := &http.Server{
			Addr:              cfg.Addr(),
			Handler:           r,
			ReadHeaderTimeout: 10 * time.Second,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)

		go func() {
			log.Info(ctx, "server listening", "addr", srv.Addr, "driver", cfg.DBDriver)
			errCh <- srv.ListenAndServe()
		}()

		select {
		case err := <-errCh:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err
		case <-ctx.Done():
		}

		log.Info(context.Background(), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	},
}
