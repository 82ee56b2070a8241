package commands

import (
	"context"
	stderrors "errors"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/sitedesc/internal/foundation/errors"
	"git.home.luguber.info/inful/sitedesc/internal/logfields"
	"git.home.luguber.info/inful/sitedesc/internal/metrics"
	"git.home.luguber.info/inful/sitedesc/internal/state"
	"git.home.luguber.info/inful/sitedesc/internal/watch"
)

// WatchCmd implements the 'watch' command.
type WatchCmd struct {
	Debounce    time.Duration `help:"Quiet period before reloading after a change" env:"SITEDESC_WATCH_DEBOUNCE"`
	MetricsAddr string        `name:"metrics-addr" help:"Serve Prometheus metrics on this address (e.g. :9090)" env:"SITEDESC_METRICS_ADDR"`
}

func (w *WatchCmd) Run(_ *Global, root *CLI) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	debounce := root.Settings.Watch.Debounce
	if w.Debounce > 0 {
		debounce = w.Debounce
	}
	addr := root.Settings.Metrics.Addr
	if w.MetricsAddr != "" {
		addr = w.MetricsAddr
	}
	return RunWatch(ctx, root.Sources(), debounce, addr)
}

// RunWatch loads descriptors and keeps them current until ctx is canceled.
func RunWatch(ctx context.Context, src state.Sources, debounce time.Duration, metricsAddr string) error {
	var recorder metrics.Recorder = metrics.NoopRecorder{}
	var reg *prom.Registry
	if metricsAddr != "" {
		reg = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	loader := state.NewFileLoader(src).WithRecorder(recorder)
	store := state.NewStore(loader).WithRecorder(recorder)
	if _, err := store.Load(ctx); err != nil {
		return err
	}

	if reg != nil {
		srv, err := serveMetrics(metricsAddr, reg)
		if err != nil {
			return err
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(shutdownCtx)
		}()
	}

	watcher, err := watch.New(store, debounce, src.SitePath, src.HomePath)
	if err != nil {
		return errors.WrapError(err, errors.CategoryRuntime, "cannot start watcher").Build()
	}

	err = watcher.Run(ctx)
	slog.Info("Watcher stopped")
	return err
}

func serveMetrics(addr string, reg *prom.Registry) (*http.Server, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, errors.WrapError(err, errors.CategoryRuntime, "cannot listen for metrics").
			WithDetail("addr", addr).Build()
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.HTTPHandler(reg))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			slog.Error("Metrics server failed", logfields.Error(err))
		}
	}()
	slog.Info("Serving metrics", slog.String("addr", ln.Addr().String()))
	return srv, nil
}
