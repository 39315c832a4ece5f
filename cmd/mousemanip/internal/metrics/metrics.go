// Package metrics exposes Prometheus counters for the mouse mover.
package metrics

import (
	"errors"
	"log/slog"
	"net"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// steps counts single-unit cursor moves made by the mover
	steps = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mousemanip_steps_total",
		Help: "The total number of single-unit cursor steps",
	})

	// traversals counts square traversals by outcome
	traversals = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mousemanip_traversals_total",
		Help: "The total number of square traversals, by result",
	}, []string{"result"})

	// toggles counts hotkey presses by which key was pressed
	toggles = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mousemanip_toggles_total",
		Help: "The total number of hotkey toggles, by key",
	}, []string{"key"})

	moveErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mousemanip_move_errors_total",
		Help: "The total number of cursor moves that reported an error",
	})

	running = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "mousemanip_running",
		Help: "1 while cursor movement is enabled",
	})
)

// AddSteps records n cursor steps.
func AddSteps(n int) {
	steps.Add(float64(n))
}

// ObserveTraversal records one traversal; aborted traversals are labelled
// separately from completed ones.
func ObserveTraversal(aborted bool) {
	result := "completed"
	if aborted {
		result = "aborted"
	}
	traversals.WithLabelValues(result).Inc()
}

// ObserveToggle records a hotkey press. key is "toggle" or "exit".
func ObserveToggle(key string) {
	toggles.WithLabelValues(key).Inc()
}

// SetRunning mirrors the running flag into a gauge.
func SetRunning(on bool) {
	if on {
		running.Set(1)
		return
	}
	running.Set(0)
}

// MoveError records a failed cursor move.
func MoveError() {
	moveErrors.Inc()
}

// RegisterMetricsHandler starts a separate HTTP server for metrics and any
// extra handlers mounted on mux. The returned server is already listening;
// the caller shuts it down.
func RegisterMetricsHandler(port string, mux *http.ServeMux, lg *slog.Logger) (*http.Server, error) {
	if mux == nil {
		mux = http.NewServeMux()
	}
	mux.Handle("/metrics", promhttp.Handler())

	ln, err := net.Listen("tcp", ":"+port)
	if err != nil {
		return nil, err
	}

	srv := &http.Server{Handler: mux}
	go func() {
		lg.Info("starting metrics server", "addr", ln.Addr().String(), "path", "/metrics")
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Error("metrics server failed", "err", err)
		}
	}()

	return srv, nil
}
