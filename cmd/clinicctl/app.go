package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/config"
	"github.com/wolfman30/dental-clinic-client/internal/gateway"
	"github.com/wolfman30/dental-clinic-client/internal/session"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
)

const userAgent = "clinicctl/1.0"

var errNotLoggedIn = errors.New("not logged in")

// app is what every command works with: one gateway client bound to the
// configured backend and the store its session is persisted in.
type app struct {
	cfg    *config.Config
	logger *logging.Logger
	client *gateway.Client
	api    *clinic.API
	store  session.Store
	stdout io.Writer
	stderr io.Writer
	loc    *time.Location
	now    func() time.Time
}

func newApp(ctx context.Context, stdout, stderr io.Writer, verbose bool) (*app, error) {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, "load .env:", err)
	}
	cfg := config.Load()

	logger := logging.Discard()
	if verbose {
		logger = logging.NewWithOptions(logging.Options{Level: "debug", Format: "text", Output: stderr})
	}

	store, err := session.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}

	opts := []gateway.Option{
		gateway.WithLogger(logger),
		gateway.WithUserAgent(userAgent),
		gateway.WithRateLimit(cfg.APIRateLimitRPS, cfg.APIRateBurst),
	}
	rec, err := store.Load(ctx)
	switch {
	case err == nil:
		if s, ok := rec.For(cfg.APIBaseURL); ok {
			opts = append(opts, gateway.WithSession(s))
		} else {
			logger.Debug("saved session belongs to another backend", "saved", rec.BaseURL, "current", cfg.APIBaseURL)
		}
	case errors.Is(err, session.ErrNotFound):
	default:
		logger.Warn("could not load saved session", "error", err)
	}

	client := gateway.New(cfg.APIBaseURL, opts...)
	return &app{
		cfg:    cfg,
		logger: logger,
		client: client,
		api:    clinic.New(client),
		store:  store,
		stdout: stdout,
		stderr: stderr,
		loc:    time.Local,
		now:    time.Now,
	}, nil
}

func (a *app) saveSession(ctx context.Context) error {
	rec := session.Record{
		BaseURL: a.cfg.APIBaseURL,
		Session: a.client.Session(),
		SavedAt: a.now().UTC(),
	}
	if err := a.store.Save(ctx, rec); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (a *app) requireSession() error {
	if a.client.Session().Empty() {
		return fmt.Errorf("%w: run `clinicctl login` first", errNotLoggedIn)
	}
	return nil
}

func (a *app) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	return fs
}

func (a *app) printf(format string, args ...any) {
	fmt.Fprintf(a.stdout, format, args...)
}

// table writes aligned columns to stdout. Call flush once all rows are in.
type table struct {
	tw *tabwriter.Writer
}

func (a *app) table(header ...string) *table {
	t := &table{tw: tabwriter.NewWriter(a.stdout, 0, 0, 2, ' ', 0)}
	t.row(header...)
	return t
}

func (t *table) row(cols ...string) {
	fmt.Fprintln(t.tw, strings.Join(cols, "\t"))
}

func (t *table) flush() error {
	return t.tw.Flush()
}

// parseWithArgs parses flags placed before or after the n positional
// arguments a subcommand expects.
func parseWithArgs(fs *flag.FlagSet, args []string, n int, names ...string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	var positional []string
	for fs.NArg() > 0 {
		positional = append(positional, fs.Arg(0))
		if err := fs.Parse(fs.Args()[1:]); err != nil {
			return nil, err
		}
	}
	if len(positional) != n {
		return nil, usagef("expected %s", strings.Join(names, " "))
	}
	return positional, nil
}

func parseDay(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(clinic.DateLayout, s, loc)
	if err != nil {
		return time.Time{}, usagef("invalid date %q, want YYYY-MM-DD", s)
	}
	return t, nil
}

func parseClock(s string) (time.Duration, error) {
	t, err := time.Parse(clinic.TimeLayout, s)
	if err != nil {
		return 0, usagef("invalid time %q, want HH:MM", s)
	}
	return time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute, nil
}

func money(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
