// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/starford/pasarela/internal/api"
	"github.com/starford/pasarela/internal/catalog"
	"github.com/starford/pasarela/internal/export"
	"github.com/starford/pasarela/internal/mcpserver"
	"github.com/starford/pasarela/internal/showroom"
	"github.com/starford/pasarela/internal/source"
	"github.com/starford/pasarela/internal/sse"
	"github.com/starford/pasarela/internal/storage"
)

func newApplication(opts []Option) (*application, error) {
	app := &application{
		version: "dev",
		logOut:  os.Stdout,
		out:     os.Stdout,
	}
	for _, opt := range opts {
		opt(app)
	}
	if app.config == nil {
		return nil, fmt.Errorf("config is required")
	}
	return app, nil
}

// setup initializes the structured JSON logger and the resource loader.
// files is nil when every resource is remote.
func (a *application) setup() (*slog.Logger, *source.Loader, *storage.FS, error) {
	cfg := a.config

	logger := slog.New(slog.NewJSONHandler(a.logOut, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("data_dir", cfg.Source.DataDir),
		slog.String("config", cfg.Source.Config),
		slog.String("catalog", cfg.Source.Catalog),
		slog.String("log_level", cfg.App.LogLevel.String()))

	var files *storage.FS
	if cfg.Source.Local() {
		fs, err := storage.NewFS(cfg.Source.DataDir)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("init storage: %w", err)
		}
		files = fs
	}

	var provider storage.Provider
	if files != nil {
		provider = files
	}
	loader := source.NewLoader(provider, &http.Client{Timeout: cfg.Source.Timeout})
	return logger, loader, files, nil
}

func (a *application) newService(logger *slog.Logger, pub showroom.Publisher) *showroom.Service {
	opts := []showroom.Option{
		showroom.WithLogger(logger),
		showroom.WithBrand(a.config.Assets.Brand),
		showroom.WithAssetDir(a.config.Assets.Dir),
	}
	if pub != nil {
		opts = append(opts, showroom.WithPublisher(pub))
	}
	return showroom.New(catalog.New(), opts...)
}

// load fetches both resources and installs them, or records the failure.
func (a *application) load(ctx context.Context, loader *source.Loader, svc *showroom.Service) error {
	res, err := loader.Load(ctx, a.config.Source.Config, a.config.Source.Catalog)
	if err != nil {
		svc.SetLoadError(err)
		return err
	}
	svc.SetLoaded(res)
	return nil
}

// Run starts the HTTP server with the given options. A failed initial load
// is logged and leaves the server running with readiness down.
func Run(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	cfg := app.config

	logger, loader, files, err := app.setup()
	if err != nil {
		return err
	}

	broker := sse.NewBroker(cfg.Events.Throttle)
	defer broker.Close()

	svc := app.newService(logger, broker)
	_ = app.load(ctx, loader, svc)

	httpServer := &http.Server{
		Addr:    cfg.App.HTTP.Address(),
		Handler: api.NewServer(svc, broker),
	}

	g, gCtx := errgroup.WithContext(ctx)

	// Reload the catalog when the data directory changes.
	if cfg.Source.Watch && files != nil {
		g.Go(func() error {
			err := source.Watch(gCtx, files.Root(), source.DefaultDebounce, logger, func(ctx context.Context) {
				_ = app.load(ctx, loader, svc)
			})
			if err != nil {
				logger.Warn("watcher unavailable", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}
		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group so the watcher stops with the server.
var errShutdown = errors.New("shutdown")

// RunMCP serves the catalog tools over stdio until the client disconnects.
func RunMCP(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger, loader, _, err := app.setup()
	if err != nil {
		return err
	}
	svc := app.newService(logger, nil)
	_ = app.load(ctx, loader, svc)

	return mcpserver.New(svc, app.version).ServeStdio()
}

// Export writes the loaded catalog as products.json to the output.
func Export(ctx context.Context, opts ...Option) error {
	app, err := newApplication(opts)
	if err != nil {
		return err
	}
	logger, loader, _, err := app.setup()
	if err != nil {
		return err
	}
	svc := app.newService(logger, nil)
	if err := app.load(ctx, loader, svc); err != nil {
		return err
	}
	out, err := svc.Export()
	if err != nil {
		return err
	}
	_, err = app.out.Write(out.Data)
	return err
}

// Bundle stages the given image files and writes the zip archive to the
// output file, or to the output when none is set. Nothing is written unless
// every file was read. It returns the staged asset paths in order.
func Bundle(ctx context.Context, paths []string, opts ...Option) ([]string, error) {
	app, err := newApplication(opts)
	if err != nil {
		return nil, err
	}
	stager := export.NewStager(app.config.Assets.Dir)
	for _, p := range paths {
		if sp, added := stager.Stage(export.DiskFile(p)); !added {
			slog.Warn("skipping duplicate image", slog.String("file", p), slog.String("path", sp))
		}
	}
	var buf bytes.Buffer
	if err := export.Bundle(ctx, &buf, stager.Staged()); err != nil {
		return nil, err
	}
	if app.outFile != "" {
		if err := storage.WriteFile(app.outFile, buf.Bytes()); err != nil {
			return nil, err
		}
	} else if _, err := buf.WriteTo(app.out); err != nil {
		return nil, err
	}
	return stager.Paths(), nil
}
