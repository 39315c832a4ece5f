package main

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/config"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/listener"
	"github.com/jasonlovesdoggo/mousemanip/cmd/mousemanip/internal/osinput"
	"github.com/jasonlovesdoggo/mousemanip/internal"
)

func TestPrintBannerDefaults(t *testing.T) {
	var sb strings.Builder
	printBanner(&sb, config.Default())

	assert.Equal(t, "--- Mouse Mover ---\nClick Pause+Break to start/stop and Esc to exit.\n", sb.String())
}

func TestPrintBannerCustomKeys(t *testing.T) {
	cfg := config.Default()
	cfg.ToggleKey = "f8"
	cfg.ExitKey = "raw:123"

	var sb strings.Builder
	printBanner(&sb, cfg)

	assert.Contains(t, sb.String(), "Click f8 to start/stop and raw:123 to exit.")
}

type fakeLoop struct {
	run func(ctx context.Context) error
}

func (f fakeLoop) Run(ctx context.Context) error { return f.run(ctx) }

type fakeSource struct {
	err     error
	stopped chan struct{}
}

func (f *fakeSource) Run(ctx context.Context, keys osinput.KeySink, mouse osinput.MouseSink) error {
	defer close(f.stopped)
	if f.err != nil {
		return f.err
	}
	<-ctx.Done()
	return nil
}

type nopSink struct{}

func (nopSink) HandleKey(listener.KeyEvent)     {}
func (nopSink) HandleMouse(listener.MouseEvent) {}

func superviseAsync(ctx context.Context, loop moverLoop, src eventSource) <-chan error {
	done := make(chan error, 1)
	go func() { done <- supervise(ctx, loop, src, nopSink{}) }()
	return done
}

func waitErr(t *testing.T, done <-chan error) error {
	t.Helper()
	select {
	case err := <-done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("supervise did not return")
		return nil
	}
}

func TestSuperviseCancelledMoverStopsHooks(t *testing.T) {
	src := &fakeSource{stopped: make(chan struct{})}
	loop := fakeLoop{run: func(ctx context.Context) error { return nil }}

	err := waitErr(t, superviseAsync(context.Background(), loop, src))

	require.NoError(t, err)
	<-src.stopped
}

func TestSuperviseHookErrorIsStartupFailure(t *testing.T) {
	src := &fakeSource{err: osinput.ErrHookStart, stopped: make(chan struct{})}
	loop := fakeLoop{run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	err := waitErr(t, superviseAsync(context.Background(), loop, src))

	assert.ErrorIs(t, err, internal.ErrStartup)
	assert.ErrorIs(t, err, osinput.ErrHookStart)
}

func TestSuperviseInterruptIsCleanExit(t *testing.T) {
	src := &fakeSource{stopped: make(chan struct{})}
	loop := fakeLoop{run: func(ctx context.Context) error {
		<-ctx.Done()
		return ctx.Err()
	}}

	ctx, cancel := context.WithCancel(context.Background())
	done := superviseAsync(ctx, loop, src)
	cancel()

	require.NoError(t, waitErr(t, done))
	<-src.stopped
}

func TestSuperviseMoverError(t *testing.T) {
	boom := errors.New("boom")
	src := &fakeSource{stopped: make(chan struct{})}
	loop := fakeLoop{run: func(ctx context.Context) error { return boom }}

	err := waitErr(t, superviseAsync(context.Background(), loop, src))

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, internal.ErrStartup)
}
