// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"littlehands/internal/cache"
	"littlehands/internal/cms"
	"littlehands/internal/content"
	"littlehands/internal/fallback"
	"littlehands/internal/handlers"
	"littlehands/internal/middleware"
	"littlehands/internal/router"
	"littlehands/internal/store"
	"littlehands/web"
)

// shutdownTimeout bounds how long in-flight requests may take to drain.
const shutdownTimeout = 30 * time.Second

func newServeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.serve(cmd.Context())
		},
	}
}

func (a *app) serve(ctx context.Context) error {
	cfg := a.cfg
	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"cms_configured", cfg.CMSConfigured(),
		"cms_cache", cfg.CacheEnabled(),
	)

	// The envelope cache is optional; a Valkey outage only disables it.
	var envelopes cms.EnvelopeCache
	if cfg.CacheEnabled() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Warn("valkey unavailable, CMS cache disabled", "error", err)
		} else {
			defer valkeyClient.Close()
			envelopes = cache.NewEnvelopeCache(valkeyClient, cfg.CMSCacheTTL)
		}
	}

	client := cms.NewClient(cms.Config{
		BaseURL:     cfg.DeliveryURL,
		SpaceID:     cfg.SpaceID,
		Environment: cfg.Environment,
		AccessToken: cfg.AccessToken,
		Timeout:     cfg.CMSTimeout,
	}, envelopes)
	if !client.Configured() {
		slog.Warn("contentful credentials missing, serving fallback content only")
	}

	fb, err := fallback.New()
	if err != nil {
		return err
	}

	api := handlers.NewAPI(
		content.NewService(client),
		fb,
		store.NewSubscriberStore(),
		store.NewContactStore(),
		cfg.CMSStrictAuth,
	)

	limiter := middleware.NewRateLimiter(cfg.RateLimit, cfg.RateWindow)
	defer limiter.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.New(api, limiter, web.Dist()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		// A request may wait on several sequential CMS round trips.
		WriteTimeout: 3*cfg.CMSTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		defer close(errCh)
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
		slog.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped gracefully")
	return nil
}
