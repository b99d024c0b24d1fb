package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	v1 "github.com/expense-tracker/backend/internal/controllers/v1"
	"github.com/expense-tracker/backend/internal/models"
	"github.com/expense-tracker/backend/internal/router"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 30 * time.Second

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP API",
		RunE:  runServe,
	}

	cmd.Flags().Int("port", 0, "port to listen on")
	cmd.Flags().Duration("bill-interval", 0, "bill due subscriptions in this interval, disabled if 0")
	_ = v.BindPFlag("http.port", cmd.Flags().Lookup("port"))
	_ = v.BindPFlag("subscriptions.bill_interval", cmd.Flags().Lookup("bill-interval"))

	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	err := connect()
	if err != nil {
		return err
	}
	defer models.Close()

	r, teardown, err := router.Config(router.Options{
		URL: cfg.APIURL,
		Settings: &v1.Settings{
			DefaultLimit: cfg.DefaultLimit,
			Formatter:    cfg.Formatter,
		},
		AllowOrigins: cfg.AllowOrigins,
		Pprof:        cfg.Pprof,
	})
	if err != nil {
		return err
	}
	defer teardown()

	router.AttachRoutes(r.Group("/"))

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", srv.Addr).Msg("Listening")

		err := srv.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	})

	g.Go(func() error {
		<-ctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		return srv.Shutdown(shutdownCtx)
	})

	if cfg.BillInterval > 0 {
		g.Go(func() error {
			billDueEvery(ctx, cfg.BillInterval)
			return nil
		})
	}

	return g.Wait()
}

// billDueEvery bills all due subscriptions in the interval until ctx is done.
// Billing errors are logged, the next tick retries.
func billDueEvery(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			billed, err := models.BillDue(models.DB, now)
			if err != nil {
				log.Error().Err(err).Int("billed", len(billed)).Msg("Billing due subscriptions")
				continue
			}

			if len(billed) > 0 {
				log.Info().Int("billed", len(billed)).Msg("Billed due subscriptions")
			}
		}
	}
}
