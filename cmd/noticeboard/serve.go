package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/joestump/noticeboard/internal/api"
	"github.com/joestump/noticeboard/internal/auth"
	"github.com/joestump/noticeboard/internal/config"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			b, err := openBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() { _ = b.Close() }()

			if _, err := auth.EnsureAdmin(ctx, b.Admins, cfg.Admin.Email, cfg.Admin.Password); err != nil {
				return err
			}

			tokens, err := auth.NewTokenService(cfg.Token.Secret, cfg.Token.TTL)
			if err != nil {
				return err
			}
			log.Printf("auth: issuing tokens valid for %s", tokens.TTL())

			router := api.NewRouter(api.Deps{
				BearerAuth:    auth.NewBearerTokenMiddleware(tokens),
				Authenticator: auth.NewAuthenticator(b.Admins, tokens),
				Announcements: b.Announcements,
				Admins:        b.Admins,
				APIPrefix:     cfg.HTTP.APIPrefix,
				CORSOrigins:   cfg.HTTP.CORSOrigins,
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
			}

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				log.Printf("listening on %s", cfg.HTTP.Addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			})
			g.Go(func() error {
				<-gctx.Done()
				log.Println("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			})
			return g.Wait()
		},
	}
}
