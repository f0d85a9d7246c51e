package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Hz    int
	Ticks uint64 // 0 = run forever
}

// nullKeyboard never produces events.
type nullKeyboard struct {
	ch chan KeyEvent
}

func (k nullKeyboard) Events() <-chan KeyEvent { return k.ch }

// RunHeadless drives the app without opening a window, for CI and
// soak runs.
func RunHeadless(ctx context.Context, app App, cfg HeadlessConfig) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	kbd := nullKeyboard{ch: make(chan KeyEvent)}
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if app.Step != nil {
				if err := app.Step(kbd); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
