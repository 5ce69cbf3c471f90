package main

import (
	"context"
	"errors"
	"os"

	"github.com/wolfman30/dental-clinic-client/internal/clinic"
	"github.com/wolfman30/dental-clinic-client/internal/gateway"
	"github.com/wolfman30/dental-clinic-client/internal/session"
)

func runLogin(ctx context.Context, a *app, args []string) error {
	fs := a.flags("login")
	email := fs.String("email", "", "account email")
	password := fs.String("password", "", "account password (defaults to $CLINIC_PASSWORD)")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}
	if *password == "" {
		*password = os.Getenv("CLINIC_PASSWORD")
	}
	if *email == "" || *password == "" {
		return usagef("-email and -password are required")
	}

	resp, err := a.api.Auth.Login(ctx, clinic.LoginRequest{Email: *email, Password: *password})
	if err != nil {
		return err
	}
	if resp.Token != "" {
		s := a.client.Session()
		s.Token = resp.Token
		a.client.SetSession(s)
	}
	if err := a.saveSession(ctx); err != nil {
		return err
	}
	if resp.User != nil {
		a.printf("Logged in as %s (%s)\n", resp.User.FullName(), resp.User.Role)
		return nil
	}
	a.printf("%s\n", orDash(resp.Message))
	return nil
}

func runLogout(ctx context.Context, a *app, args []string) error {
	fs := a.flags("logout")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}
	if !a.client.Session().Empty() {
		// An expired session is as good as logged out.
		if _, err := a.api.Auth.Logout(ctx); err != nil && !gateway.IsUnauthorized(err) {
			return err
		}
	}
	a.client.ClearSession()
	if err := a.store.Clear(ctx); err != nil {
		return err
	}
	a.printf("Logged out\n")
	return nil
}

func runWhoami(ctx context.Context, a *app, args []string) error {
	fs := a.flags("whoami")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}
	if err := a.requireSession(); err != nil {
		return err
	}
	user, err := a.api.Auth.Me(ctx)
	if err != nil {
		return err
	}
	t := a.table("ID", "NAME", "EMAIL", "ROLE")
	t.row(user.ID.String(), user.FullName(), user.Email, string(user.Role))
	if err := t.flush(); err != nil {
		return err
	}

	id, err := session.DecodeIdentity(a.client.Session())
	switch {
	case errors.Is(err, session.ErrNoToken):
	case err != nil:
		a.logger.Debug("session token is not a readable JWT", "error", err)
	case !id.ExpiresAt.IsZero():
		a.printf("Session expires %s\n", id.ExpiresAt.In(a.loc).Format("2006-01-02 15:04"))
	}
	if !user.IsProfileComplete && user.Role == clinic.RolePatient {
		a.printf("Profile incomplete: add phone and date of birth to finish signing up\n")
	}
	return nil
}

func runGoogleLogin(ctx context.Context, a *app, args []string) error {
	fs := a.flags("google-login")
	printOnly := fs.Bool("print", false, "print the sign-in URL instead of opening a browser")
	if _, err := parseWithArgs(fs, args, 0); err != nil {
		return err
	}
	var nav gateway.Navigator = gateway.BrowserNavigator{}
	if *printOnly {
		nav = gateway.WriterNavigator{W: a.stdout}
	}
	if err := a.api.Auth.LoginWithGoogle(ctx, nav); err != nil {
		return err
	}
	if !*printOnly {
		a.printf("Continue signing in in your browser\n")
	}
	return nil
}
