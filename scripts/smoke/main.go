// Package main runs a smoke test against a running clinic backend.
//
// Tier 1 signs in and reads every resource the front-end shows. Tier 2 also
// creates and deletes a throwaway inventory category.
//
// Usage:
//
//	go run ./scripts/smoke --email=admin@clinic.test [--password=...] [--tier=1|2] [--api=URL]
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/config"
	"github.com/wolfman30/dental-clinic-client/internal/gateway"
	"github.com/wolfman30/dental-clinic-client/internal/views"
	"github.com/wolfman30/dental-clinic-client/pkg/logging"
)

type check struct {
	name   string
	tier   int
	run    func(ctx context.Context, api *clinic.API) (string, error)
	passed bool
	detail string
}

var (
	flagAPI      string
	flagEmail    string
	flagPassword string
	flagTier     int
	flagTimeout  time.Duration
)

func init() {
	flag.StringVar(&flagAPI, "api", "", "backend base URL (default $API_BASE_URL)")
	flag.StringVar(&flagEmail, "email", "", "account to sign in with (required)")
	flag.StringVar(&flagPassword, "password", "", "password (or CLINIC_PASSWORD env)")
	flag.IntVar(&flagTier, "tier", 1, "1=auth and reads, 2=+write round trip")
	flag.DurationVar(&flagTimeout, "timeout", 30*time.Second, "overall deadline")
}

func main() {
	flag.Parse()
	_ = config.LoadDotEnv()
	cfg := config.Load()

	if flagAPI == "" {
		flagAPI = cfg.APIBaseURL
	}
	if flagPassword == "" {
		flagPassword = os.Getenv("CLINIC_PASSWORD")
	}
	if flagEmail == "" || flagPassword == "" {
		fmt.Fprintln(os.Stderr, "ERROR: --email and --password (or CLINIC_PASSWORD) are required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), flagTimeout)
	defer cancel()

	logger := logging.NewWithOptions(logging.Options{Level: "error", Format: "text", Output: os.Stderr})
	anonymous := gateway.New(flagAPI, gateway.WithLogger(logging.Discard()))
	client := gateway.New(flagAPI, gateway.WithLogger(logger), gateway.WithUserAgent("clinic-smoke"))
	api := clinic.New(client)

	fmt.Printf("Backend: %s\n", flagAPI)
	fmt.Printf("Tier: %d\n\n", flagTier)

	checks := []*check{
		{name: "rejects anonymous calls", tier: 1, run: func(ctx context.Context, _ *clinic.API) (string, error) {
			_, err := clinic.New(anonymous).Appointments.List(ctx)
			if gateway.StatusCode(err) != 401 {
				return "", fmt.Errorf("want 401, got %v", err)
			}
			return err.Error(), nil
		}},
		{name: "login", tier: 1, run: func(ctx context.Context, api *clinic.API) (string, error) {
			resp, err := api.Auth.Login(ctx, clinic.LoginRequest{Email: flagEmail, Password: flagPassword})
			if err != nil {
				return "", err
			}
			if client.Session().Empty() {
				return "", errors.New("no session cookie or token issued")
			}
			return resp.Message, nil
		}},
		{name: "current user", tier: 1, run: func(ctx context.Context, api *clinic.API) (string, error) {
			u, err := api.Auth.Me(ctx)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%s (%s)", u.FullName(), u.Role), nil
		}},
		{name: "schedule board", tier: 1, run: func(ctx context.Context, api *clinic.API) (string, error) {
			b, err := views.LoadScheduleBoard(ctx, api)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d appointments, %d patients, %d doctors", len(b.Appointments), len(b.Patients), len(b.Doctors)), nil
		}},
		{name: "inventory board", tier: 1, run: func(ctx context.Context, api *clinic.API) (string, error) {
			b, err := views.LoadInventoryBoard(ctx, api)
			if err != nil {
				return "", err
			}
			low := views.FilterInventory(b.Items, views.InventoryFilter{NeedsRestock: true})
			return fmt.Sprintf("%d items, %d need restock", len(b.Items), len(low)), nil
		}},
		{name: "task board", tier: 1, run: func(ctx context.Context, api *clinic.API) (string, error) {
			b, err := views.LoadTaskBoard(ctx, api, false)
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("%d tasks", len(b.Tasks)), nil
		}},
		{name: "category round trip", tier: 2, run: func(ctx context.Context, api *clinic.API) (string, error) {
			name := "smoke-" + uuid.NewString()[:8]
			c, err := api.Categories.Create(ctx, clinic.Category{Name: name})
			if err != nil {
				return "", err
			}
			if err := api.Categories.Delete(ctx, c.ID); err != nil {
				return "", fmt.Errorf("created %s but delete failed: %w", c.ID, err)
			}
			return fmt.Sprintf("created and deleted %s", name), nil
		}},
		{name: "logout", tier: 1, run: func(ctx context.Context, api *clinic.API) (string, error) {
			msg, err := api.Auth.Logout(ctx)
			if err != nil {
				return "", err
			}
			return msg.Message, nil
		}},
	}

	failed := 0
	for _, c := range checks {
		if c.tier > flagTier {
			continue
		}
		detail, err := c.run(ctx, api)
		c.passed, c.detail = err == nil, detail
		if err != nil {
			c.detail = err.Error()
			failed++
		}
		icon := "✅"
		if !c.passed {
			icon = "❌"
		}
		fmt.Printf("  %s %s: %s\n", icon, c.name, c.detail)
	}

	fmt.Println()
	if failed > 0 {
		fmt.Printf("❌ %d CHECKS FAILED\n", failed)
		os.Exit(1)
	}
	fmt.Println("✅ ALL CHECKS PASSED")
}
