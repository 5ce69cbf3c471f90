package gateway

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"sync"
)

// Navigator performs full-page navigations. It is deliberately separate from
// Requester: a navigation hands control to the target URL and never returns a
// response body.
type Navigator interface {
	Navigate(ctx context.Context, target string) error
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, target string) error

func (f NavigatorFunc) Navigate(ctx context.Context, target string) error {
	return f(ctx, target)
}

// BrowserNavigator opens target in the system browser.
type BrowserNavigator struct {
	// Command builds the opener command; nil picks one for runtime.GOOS.
	Command func(target string) *exec.Cmd
}

func (b BrowserNavigator) Navigate(ctx context.Context, target string) error {
	build := b.Command
	if build == nil {
		build = defaultOpener
	}
	cmd := build(target)
	if cmd == nil {
		return errors.New("gateway: no browser opener for " + runtime.GOOS)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("gateway: open browser: %w", err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}

func defaultOpener(target string) *exec.Cmd {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("open", target)
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", target)
	}
	return nil
}

// WriterNavigator prints the target so a user can follow it by hand.
type WriterNavigator struct {
	W io.Writer
}

func (w WriterNavigator) Navigate(_ context.Context, target string) error {
	_, err := fmt.Fprintf(w.W, "Open this URL to continue: %s\n", target)
	return err
}

// RecordingNavigator remembers every target it is asked to open.
type RecordingNavigator struct {
	mu      sync.Mutex
	targets []string
}

func (r *RecordingNavigator) Navigate(_ context.Context, target string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, target)
	return nil
}

// Targets returns the recorded navigations in order.
func (r *RecordingNavigator) Targets() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.targets...)
}
