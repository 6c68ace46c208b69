package root

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"focusquest/internal/auth"
	"focusquest/internal/engine"
	"focusquest/internal/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.ListenAddr = addr
			}
			if cfg.JWTSecret == "" {
				return errors.New("jwt_secret must be set in the config file before serving")
			}

			st, cleanup, err := openStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			log := slog.New(slog.NewTextHandler(os.Stderr, nil))
			signer := auth.NewTokenSigner(cfg.JWTSecret, auth.DefaultTokenTTL)
			server := httpapi.NewServer(engine.NewService(st), auth.NewService(st, signer), log)

			srv := &http.Server{
				Addr:    cfg.ListenAddr,
				Handler: server.Handler(),
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("listening", "addr", cfg.ListenAddr)
				errCh <- srv.ListenAndServe()
			}()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

			select {
			case err := <-errCh:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-stop:
				log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				defer cancel()
				return srv.Shutdown(shutdownCtx)
			}
		},
	}

	cmd.Flags().StringVarP(&addr, "addr", "l", "", "Listen address (default from config)")

	return cmd
}
