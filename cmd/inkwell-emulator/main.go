// Command inkwell-emulator runs the inkwell home screen in a desktop window
// backed by an in-memory e-ink framebuffer.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/phanxgames/inkwell"
	"github.com/phanxgames/inkwell/emulator"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "inkwell-emulator:", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "inkwell.toml", "settings file")
	scriptPath := flag.String("script", "", "replay the input script at `path` once the window is up")
	debug := flag.Bool("debug", false, "log per-iteration statistics")
	jsonLogs := flag.Bool("json", false, "log in JSON")
	flag.Parse()

	settings, err := inkwell.LoadSettings(*configPath)
	if err != nil {
		return err
	}
	level, err := inkwell.ParseLevel(settings.LogLevel)
	if err != nil {
		return err
	}
	if *debug {
		level = slog.LevelDebug
	}
	logger := inkwell.NewLogger(os.Stderr, level, *jsonLogs)
	slog.SetDefault(logger)

	var runner *inkwell.ScriptRunner
	if *scriptPath != "" {
		data, err := os.ReadFile(*scriptPath)
		if err != nil {
			return fmt.Errorf("read script: %w", err)
		}
		if runner, err = inkwell.LoadScript(data); err != nil {
			return err
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	metrics := inkwell.NewMetrics(reg)

	fb := inkwell.NewMemoryFramebuffer(settings.Display.Width, settings.Display.Height)
	latency := settings.Emulator.Latency.Duration
	fb.SetLatency(inkwell.UpdateGui, latency)
	fb.SetLatency(inkwell.UpdatePartial, latency)
	fb.SetLatency(inkwell.UpdateFull, 4*latency)
	fb.SetLatency(inkwell.UpdateFast, latency/4)
	fb.SetLatency(inkwell.UpdateFastMono, latency/4)

	app := inkwell.NewApp(inkwell.NewContext(fb, settings, logger, metrics))
	app.SetDebugMode(*debug)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	done := make(chan struct{})
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(done)
		return app.Run(gctx)
	})
	if addr := settings.Emulator.MetricsAddr; addr != "" {
		g.Go(func() error {
			return serveMetrics(gctx, addr, reg, logger)
		})
	}
	if runner != nil {
		g.Go(func() error {
			if err := runner.Run(gctx, app); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("script: %w", err)
			}
			return nil
		})
	}

	game := emulator.New(app, fb, emulator.Config{
		Title:   "inkwell " + inkwell.Version,
		Scale:   settings.Emulator.Scale,
		ShowFPS: settings.Emulator.ShowFPS,
	}, done)
	winErr := emulator.Run(game)
	// The window may have been closed without going through the app.
	stop()
	if err := g.Wait(); err != nil {
		return err
	}
	if winErr != nil {
		return winErr
	}

	if err := inkwell.SaveSettings(*configPath, app.Settings()); err != nil {
		return err
	}
	logger.Info("bye", "refreshes", fb.Updates())
	return nil
}

func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry, logger *slog.Logger) error {
	router := chi.NewRouter()
	router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := &http.Server{Addr: addr, Handler: router, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logger.Info("serving metrics", "addr", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}
