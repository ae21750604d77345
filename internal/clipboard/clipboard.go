// Package clipboard copies resolved colour codes to the session clipboard.
package clipboard

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	atotto "github.com/atotto/clipboard"
	"go.uber.org/zap"
)

var ErrNoBackend = errors.New("no clipboard backend available")

// Config for clipboard copies
type Config struct {
	Enabled  bool
	Backends []string      // tried in order: "wl-copy", "system"
	Timeout  time.Duration // per backend attempt
}

func DefaultConfig() Config {
	return Config{
		Enabled:  true,
		Backends: []string{"wl-copy", "system"},
		Timeout:  3 * time.Second,
	}
}

// Backend writes text to one clipboard implementation.
type Backend interface {
	Name() string
	Available() error
	Write(ctx context.Context, text string) error
}

// Copier tries each configured backend until one succeeds.
type Copier struct {
	config   Config
	backends []Backend
}

func New(config Config) *Copier {
	c := &Copier{config: config}
	for _, name := range config.Backends {
		b, err := backendFor(name)
		if err != nil {
			zap.S().Warnf("Clipboard: %v", err)
			continue
		}
		c.backends = append(c.backends, b)
	}
	return c
}

func backendFor(name string) (Backend, error) {
	switch name {
	case "wl-copy":
		return WlCopy{}, nil
	case "system":
		return System{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q", name)
	}
}

// Copy writes text to the first working backend. A disabled copier is a no-op.
func (c *Copier) Copy(ctx context.Context, text string) error {
	if !c.config.Enabled {
		return nil
	}
	if text == "" {
		return fmt.Errorf("cannot copy empty text")
	}

	var errs []error
	for _, b := range c.backends {
		if err := b.Available(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
			continue
		}

		attemptCtx, cancel := context.WithTimeout(ctx, c.config.Timeout)
		err := b.Write(attemptCtx, text)
		cancel()
		if err == nil {
			zap.S().Debugf("Clipboard: copied %q via %s", text, b.Name())
			return nil
		}
		zap.S().Warnf("Clipboard: %s failed: %v", b.Name(), err)
		errs = append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}

	if len(errs) == 0 {
		return ErrNoBackend
	}
	return fmt.Errorf("%w: %w", ErrNoBackend, errors.Join(errs...))
}

// WlCopy uses wl-copy from wl-clipboard.
type WlCopy struct{}

func (WlCopy) Name() string { return "wl-copy" }

func (WlCopy) Available() error {
	if _, err := exec.LookPath("wl-copy"); err != nil {
		return fmt.Errorf("wl-copy not found: %w (install wl-clipboard)", err)
	}
	return nil
}

func (WlCopy) Write(ctx context.Context, text string) error {
	cmd := exec.CommandContext(ctx, "wl-copy")
	cmd.Stdin = strings.NewReader(text)

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("wl-copy failed: %w", err)
	}
	return nil
}

// System uses github.com/atotto/clipboard, which drives xclip, xsel or
// wl-clipboard depending on what the session has.
type System struct{}

func (System) Name() string { return "system" }

func (System) Available() error {
	if atotto.Unsupported {
		return errors.New("no clipboard utility found")
	}
	return nil
}

func (System) Write(ctx context.Context, text string) error {
	done := make(chan error, 1)
	go func() { done <- atotto.WriteAll(text) }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
