package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/fosscu/subdomain-checker/internal/availability"
	"github.com/fosscu/subdomain-checker/internal/checker"
	"github.com/fosscu/subdomain-checker/internal/httpserver"
	"github.com/fosscu/subdomain-checker/internal/logging"
)

// runServer serves the web checker until SIGINT/SIGTERM.
func runServer(cfg appConfig) error {
	logger, closeLog, err := logging.Setup(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer closeLog()

	client, err := availability.NewClient(cfg.Endpoint,
		availability.WithTimeout(cfg.RequestTimeout),
		availability.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	policy, err := checker.ParseStalePolicy(cfg.StaleResponses)
	if err != nil {
		return err
	}

	srv := httpserver.NewServer(httpserver.Config{
		Addr:         cfg.Addr,
		ParentDomain: cfg.ParentDomain,
		Endpoint:     client.Endpoint(),
		Policy:       policy,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		Logger:       logger,
	}, client)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start web server: %w", err)
	}

	logger.Info("web checker listening",
		"addr", srv.Addr(),
		"endpoint", client.Endpoint(),
		"version", version,
	)
	fmt.Printf("subcheck-web listening on http://%s (backend %s)\n", srv.Addr(), client.Endpoint())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		<-gctx.Done()
		fmt.Println("\nShutting down gracefully...")
		return srv.Stop()
	})

	if err := g.Wait(); err != nil {
		logger.Error("web server shutdown", "error", err)
		return err
	}
	return nil
}
