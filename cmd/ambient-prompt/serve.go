package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/joestump/ambient-prompt/internal/api"
	"github.com/joestump/ambient-prompt/internal/config"
	"github.com/joestump/ambient-prompt/internal/generator"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the prompt generation API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			catalog, err := generator.LoadCatalog(cfg.Generator.Catalog)
			if err != nil {
				return err
			}
			gen, err := generator.New(cfg, catalog)
			if err != nil {
				return err
			}

			router := api.NewRouter(api.Deps{
				Generator: gen,
				Examples:  catalog.Examples,
				Limiter:   api.NewLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst),
			})

			srv := &http.Server{
				Addr:              cfg.HTTP.Addr,
				Handler:           router,
				ReadHeaderTimeout: 10 * time.Second,
				WriteTimeout:      60 * time.Second,
				IdleTimeout:       120 * time.Second,
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				log.Printf("listening on %s (generator: %s)", cfg.HTTP.Addr, providerName(cfg))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			log.Println("shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
}

func providerName(cfg *config.Config) string {
	if cfg.Generator.Provider == "" {
		return "template"
	}
	return cfg.Generator.Provider
}
