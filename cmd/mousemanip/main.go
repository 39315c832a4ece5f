// Command mousemanip keeps the screen from locking by walking the cursor
// around a square. The toggle key starts and stops it; the exit key quits.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/config"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/listener"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/metrics"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/mover"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/osinput"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/runstate"
	"github.com/jasonlovesdoggo/mousemanip/internal"
)

const envPrefix = "MOUSEMANIP_"

var (
	tomlConfig   = flag.String("config", "", "TOML config file")
	showLicenses = flag.Bool("licenses", false, "print licenses and exit")
)

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	internal.HandleStartup(envPrefix)

	if *showLicenses {
		internal.WriteLicenses(os.Stdout)
		return
	}

	if err := run(&cfg); err != nil {
		fmt.Fprintf(os.Stderr, "mousemanip: %v\n", err)
		os.Exit(1)
	}
}

// run uses cfg as bound to the command-line flags, so a config file cannot
// override a flag that was set explicitly.
func run(cfg *config.Config) error {
	if *tomlConfig != "" {
		if err := cfg.LoadFile(*tomlConfig, flag.CommandLine, envPrefix); err != nil {
			return internal.Startup("config", err)
		}
	}
	if err := cfg.Validate(); err != nil {
		return internal.Startup("config", err)
	}

	lvl, _ := cfg.Level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
	lg := slog.Default().With("configPath", *tomlConfig)
	lg.Debug("config loaded", "config", cfg)

	if err := osinput.EnableDPIAwareness(); err != nil {
		lg.Warn("can't enable DPI awareness", "err", err)
	}

	cursor := osinput.NewCursor(cfg.Scale)
	hooks, err := osinput.NewHooks([]string{cfg.ToggleKey, cfg.ExitKey}, cursor, lg.With("component", "hooks"))
	if err != nil {
		return internal.Startup("hook", err)
	}

	state := runstate.New()
	lis := listener.New(cfg.Listener(), state, cursor, os.Stdout, lg.With("component", "listener"))
	loop := mover.New(cfg.Mover(), state, cursor, osinput.Screen{}, lg.With("component", "mover"))

	if cfg.MetricsPort != "" {
		mux := http.NewServeMux()
		internal.Mount(mux, func() any {
			return struct {
				Running   bool          `json:"running"`
				Cancelled bool          `json:"cancelled"`
				Config    config.Config `json:"config"`
			}{state.Running(), state.Cancelled(), *cfg}
		})
		srv, err := metrics.RegisterMetricsHandler(cfg.MetricsPort, mux, lg)
		if err != nil {
			lg.Error("can't start metrics server", "port", cfg.MetricsPort, "err", err)
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
				defer cancel()
				_ = srv.Shutdown(ctx)
			}()
		}
	}

	printBanner(os.Stdout, *cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = supervise(ctx, loop, hooks, lis)
	if err == nil && ctx.Err() != nil {
		lg.Info("interrupted")
	}
	return err
}

// moverLoop is the background loop; it returns nil once cancelled.
type moverLoop interface {
	Run(ctx context.Context) error
}

// eventSource delivers global input events until ctx ends.
type eventSource interface {
	Run(ctx context.Context, keys osinput.KeySink, mouse osinput.MouseSink) error
}

type sink interface {
	osinput.KeySink
	osinput.MouseSink
}

// supervise runs the mover and the event source together. The source is
// stopped when the mover returns. A source error is a StartupFailure; an
// interrupted ctx is a clean exit.
func supervise(ctx context.Context, loop moverLoop, src eventSource, lis sink) error {
	g, gctx := errgroup.WithContext(ctx)
	hookCtx, stopHooks := context.WithCancel(gctx)
	defer stopHooks()

	g.Go(func() error {
		defer stopHooks()
		return loop.Run(gctx)
	})
	g.Go(func() error {
		if err := src.Run(hookCtx, lis, lis); err != nil {
			return internal.Startup("hook", err)
		}
		return nil
	})

	err := g.Wait()
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func printBanner(w io.Writer, cfg config.Config) {
	fmt.Fprintln(w, "--- Mouse Mover ---")
	fmt.Fprintf(w, "Click %s to start/stop and %s to exit.\n", keyLabel(cfg.ToggleKey), keyLabel(cfg.ExitKey))
}

func keyLabel(name string) string {
	switch strings.ToLower(name) {
	case "pause":
		return "Pause+Break"
	case "esc", "escape":
		return "Esc"
	}
	return name
}
