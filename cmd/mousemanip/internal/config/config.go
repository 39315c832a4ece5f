// Package config holds the mouse mover settings. Values are layered:
// defaults, then an optional TOML file, then environment and flags.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/listener"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/mover"
)

var ErrInvalid = errors.New("invalid config")

// Config is the complete set of user-tunable settings.
type Config struct {
	ToggleKey string `toml:"toggle_key" json:"toggle_key"`
	ExitKey   string `toml:"exit_key" json:"exit_key"`

	// Scale multiplies screen pixels into the units the square is walked in.
	Scale        int           `toml:"scale" json:"scale"`
	LegSteps     int           `toml:"leg_steps" json:"leg_steps"`
	IdleInterval time.Duration `toml:"idle_interval" json:"idle_interval"`

	FilterInjectedKeys  bool `toml:"filter_injected_keys" json:"filter_injected_keys"`
	FilterInjectedMouse bool `toml:"filter_injected_mouse" json:"filter_injected_mouse"`

	// MetricsPort enables the Prometheus endpoint when set.
	MetricsPort string `toml:"metrics_port" json:"metrics_port"`
	LogLevel    string `toml:"log_level" json:"log_level"`
}

// Default returns the settings the tool ships with.
func Default() Config {
	return Config{
		ToggleKey:           "pause",
		ExitKey:             "esc",
		Scale:               mover.DefaultScale,
		LegSteps:            mover.DefaultLegSteps,
		IdleInterval:        mover.DefaultIdleInterval,
		FilterInjectedKeys:  true,
		FilterInjectedMouse: true,
		LogLevel:            "info",
	}
}

// RegisterFlags binds c's fields to flags on fs, using the current field
// values as defaults.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.ToggleKey, "toggle-key", c.ToggleKey, "key that starts and stops the mover")
	fs.StringVar(&c.ExitKey, "exit-key", c.ExitKey, "key that requests exit")
	fs.IntVar(&c.Scale, "scale", c.Scale, "scaled units per screen pixel")
	fs.IntVar(&c.LegSteps, "leg-steps", c.LegSteps, "unit steps per side of the square")
	fs.DurationVar(&c.IdleInterval, "idle-interval", c.IdleInterval, "wait between checks while stopped")
	fs.BoolVar(&c.FilterInjectedKeys, "filter-injected-keys", c.FilterInjectedKeys, "ignore synthetic key events")
	fs.BoolVar(&c.FilterInjectedMouse, "filter-injected-mouse", c.FilterInjectedMouse, "don't log cursor moves made by the mover")
	fs.StringVar(&c.MetricsPort, "metrics-port", c.MetricsPort, "Prometheus metrics HTTP port (disabled when empty)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "log level: debug, info, warn or error")
}

// LoadFile decodes the TOML file at path into c. Flags already set on fs win
// over the file, whether they came from the command line or from an
// envPrefix environment variable.
func (c *Config) LoadFile(path string, fs *flag.FlagSet, envPrefix string) error {
	set := map[string]string{}
	if fs != nil {
		fs.Visit(func(f *flag.Flag) {
			set[f.Name] = f.Value.String()
		})
		// flagenv assigns through Value.Set, which Visit does not report.
		fs.VisitAll(func(f *flag.Flag) {
			if _, ok := os.LookupEnv(EnvName(envPrefix, f.Name)); ok {
				set[f.Name] = f.Value.String()
			}
		})
	}

	fp, err := os.Open(path)
	if err != nil {
		return err
	}
	defer fp.Close()

	md, err := toml.NewDecoder(fp).Decode(c)
	if err != nil {
		return fmt.Errorf("can't decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("%w: unknown keys in %s: %v", ErrInvalid, path, undecoded)
	}

	for name, value := range set {
		if err := fs.Set(name, value); err != nil {
			return fmt.Errorf("can't reapply flag %s: %w", name, err)
		}
	}

	return nil
}

// EnvName is the environment variable flagenv reads for flag name.
func EnvName(prefix, name string) string {
	name = strings.ReplaceAll(name, ".", "_")
	name = strings.ReplaceAll(name, "-", "_")
	return strings.ToUpper(prefix + name)
}

// Validate reports the first setting the tool cannot run with.
func (c Config) Validate() error {
	switch {
	case c.ToggleKey == "":
		return fmt.Errorf("%w: toggle key is empty", ErrInvalid)
	case c.ExitKey == "":
		return fmt.Errorf("%w: exit key is empty", ErrInvalid)
	case c.ToggleKey == c.ExitKey:
		return fmt.Errorf("%w: toggle and exit key are both %q", ErrInvalid, c.ToggleKey)
	case c.Scale < 1:
		return fmt.Errorf("%w: scale must be at least 1, got %d", ErrInvalid, c.Scale)
	case c.LegSteps < 1:
		return fmt.Errorf("%w: leg steps must be at least 1, got %d", ErrInvalid, c.LegSteps)
	case c.IdleInterval <= 0:
		return fmt.Errorf("%w: idle interval must be positive, got %s", ErrInvalid, c.IdleInterval)
	}

	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("%w: log level %q", ErrInvalid, c.LogLevel)
	}
	return lvl, nil
}

// Listener returns the listener settings.
func (c Config) Listener() listener.Config {
	return listener.Config{
		ToggleKey:           c.ToggleKey,
		ExitKey:             c.ExitKey,
		FilterInjectedKeys:  c.FilterInjectedKeys,
		FilterInjectedMouse: c.FilterInjectedMouse,
	}
}

// Mover returns the mover settings.
func (c Config) Mover() mover.Config {
	return mover.Config{
		Scale:        c.Scale,
		LegSteps:     c.LegSteps,
		IdleInterval: c.IdleInterval,
	}
}

// LogValue implements slog.LogValuer to provide structured logging
func (c Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("toggleKey", c.ToggleKey),
		slog.String("exitKey", c.ExitKey),
		slog.Int("scale", c.Scale),
		slog.Int("legSteps", c.LegSteps),
		slog.Duration("idle", c.IdleInterval),
		slog.Bool("filterInjectedKeys", c.FilterInjectedKeys),
		slog.Bool("filterInjectedMouse", c.FilterInjectedMouse),
		slog.String("metricsPort", c.MetricsPort),
	)
}
