// Command clinicctl is a terminal front-end for the clinic backend.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/wolfman30/dental-clinic-client/internal/gateway"
)

type command struct {
	name    string
	summary string
	run     func(ctx context.Context, a *app, args []string) error
}

func commands() []command {
	return []command{
		{"login", "start a session with email and password", runLogin},
		{"logout", "end the session and forget saved credentials", runLogout},
		{"whoami", "show the signed-in user", runWhoami},
		{"google-login", "sign in through Google in the browser", runGoogleLogin},
		{"dashboard", "appointment totals for the last days", runDashboard},
		{"appointments", "list, reschedule, cancel or delete appointments", runAppointments},
		{"calendar", "month or day view of appointments", runCalendar},
		{"inventory", "stock levels and restock needs", runInventory},
		{"payments", "billing per treatment course, record payments", runPayments},
		{"tasks", "task list sorted by priority", runTasks},
		{"users", "manage accounts and roles (admin)", runUsers},
	}
}

// usageError marks bad invocations; they exit 2 instead of 1.
type usageError struct {
	msg string
}

func (e usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return usageError{msg: fmt.Sprintf(format, args...)}
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("clinicctl", flag.ContinueOnError)
	global.SetOutput(stderr)
	verbose := global.Bool("v", false, "log gateway failures to stderr")
	global.Usage = func() { printUsage(stderr) }
	if err := global.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		printUsage(stderr)
		return 2
	}
	var cmd *command
	for _, c := range commands() {
		if c.name == rest[0] {
			cmd = &c
			break
		}
	}
	if cmd == nil {
		fmt.Fprintf(stderr, "unknown command %q\n\n", rest[0])
		printUsage(stderr)
		return 2
	}

	a, err := newApp(ctx, stdout, stderr, *verbose)
	if err != nil {
		reportError(stderr, err, false)
		return 1
	}
	if err := cmd.run(ctx, a, rest[1:]); err != nil {
		var uerr usageError
		switch {
		case errors.Is(err, flag.ErrHelp):
			return 0
		case errors.As(err, &uerr):
			fmt.Fprintf(stderr, "%s: %s\n", cmd.name, uerr.msg)
			return 2
		}
		reportError(stderr, err, cmd.name != "login")
		return 1
	}
	return 0
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage: clinicctl [-v] <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, c := range commands() {
		fmt.Fprintf(w, "  %-14s %s\n", c.name, c.summary)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The backend is taken from API_BASE_URL; run a command with -h for its flags.")
}

// reportError prints the normalized message the backend or gateway produced.
// A rejected session gets a hint when loginHint is set.
func reportError(w io.Writer, err error, loginHint bool) {
	fmt.Fprintln(w, "error:", err)
	if loginHint && gateway.StatusCode(err) == http.StatusUnauthorized {
		fmt.Fprintln(w, "run `clinicctl login` to start a new session")
	}
}
