package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/health"
	"github.com/vyrodovalexey/avaroute/internal/observability"
	"github.com/vyrodovalexey/avaroute/internal/routing"
)

const shutdownTimeout = 10 * time.Second

// application holds the components of serve mode.
type application struct {
	store         *routing.Store
	metrics       *observability.Metrics
	healthChecker *health.Checker
	reloads       *health.ReloadTracker
	adminServer   *http.Server
	watcher       *routing.Watcher
	logger        observability.Logger
}

// newApplication wires serve mode around an initial table.
func newApplication(
	flags cliFlags,
	table *routing.Table,
	metrics *observability.Metrics,
	logger observability.Logger,
) *application {
	app := &application{
		store:         routing.NewStore(table),
		metrics:       metrics,
		healthChecker: health.NewChecker(version),
		reloads:       health.NewReloadTracker(),
		logger:        logger,
	}

	app.healthChecker.RegisterCheck("routing_table", health.TableCheck(app.store))
	app.healthChecker.RegisterCheck("reload", app.reloads.Check)
	app.adminServer = createAdminServer(flags.metricsAddr, app)

	return app
}

// createAdminServer creates the metrics and health HTTP server.
func createAdminServer(addr string, app *application) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", app.metrics.Handler())
	mux.HandleFunc("/health", app.healthChecker.HealthHandler())
	mux.HandleFunc("/ready", app.healthChecker.ReadinessHandler())

	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}
}

// installTable publishes a reloaded table.
func (app *application) installTable(table *routing.Table) {
	old := app.store.Swap(table)
	app.metrics.RecordSwap(table.Len())
	app.reloads.RecordSuccess()

	previous := 0
	if old != nil {
		previous = old.Len()
	}
	app.logger.Info("routing table replaced",
		observability.Int("rules", table.Len()),
		observability.Int("previous_rules", previous),
	)
}

// startWatcher starts following the routing document. The table the
// watcher loads on start replaces the one loaded by the caller.
func (app *application) startWatcher(ctx context.Context, configPath string, loaderOpts ...config.LoaderOption) error {
	watcher, err := routing.NewWatcher(configPath, app.installTable,
		routing.WithLogger(app.logger),
		routing.WithMetrics(app.metrics),
		routing.WithErrorCallback(app.reloads.RecordFailure),
		routing.WithLoaderOptions(loaderOpts...),
	)
	if err != nil {
		return err
	}

	if err := watcher.Start(ctx); err != nil {
		_ = watcher.Stop()
		return err
	}

	if table := watcher.LastTable(); table != nil {
		app.installTable(table)
	}
	app.watcher = watcher
	return nil
}

// serve holds the table and serves metrics and health until ctx is done.
func serve(
	ctx context.Context,
	flags cliFlags,
	table *routing.Table,
	metrics *observability.Metrics,
	logger observability.Logger,
) error {
	app := newApplication(flags, table, metrics, logger)

	if flags.watch {
		loaderOpts, err := loaderOptions(flags)
		if err != nil {
			return err
		}
		if err := app.startWatcher(ctx, flags.configPath, loaderOpts...); err != nil {
			return err
		}
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting admin server",
			observability.String("address", app.adminServer.Addr),
		)
		if err := app.adminServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("admin server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		app.shutdown()
		return nil
	})

	return g.Wait()
}

// shutdown stops the watcher and the admin server.
func (app *application) shutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if app.watcher != nil {
		_ = app.watcher.Stop()
	}

	if err := app.adminServer.Shutdown(shutdownCtx); err != nil {
		app.logger.Error("failed to stop admin server gracefully", observability.Error(err))
	}

	app.logger.Info("avaroute stopped")
}
