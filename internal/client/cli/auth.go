package cli

import (
	"context"
	"errors"
	"os"

	"github.com/aleksmv/userdesk/internal/client/api"
	"github.com/aleksmv/userdesk/internal/client/services"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and performs the credential exchange. On
// success the session is seeded immediately from the token claims; the
// authoritative profile follows in the background.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	if err := a.auth.Login(ctx, email, string(password)); err != nil {
		var httpErr *api.HTTPError
		switch {
		case errors.As(err, &httpErr) && httpErr.Message != "":
			printlnFn("Login failed:", httpErr.Message)
		default:
			printlnFn("Login failed:", err.Error())
		}
		return err
	}

	printlnFn("Login successful")
	return nil
}

// Logout drops the session and the stored credential.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		// The session is already gone; only the durable slot failed.
		a.log.Error(ctx, "credential cleanup failed", "error", err)
	}
	printlnFn("Logged out")
	return nil
}

// Register prompts for the account fields and creates a new account. The
// current session, if any, is untouched.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	phone, err := getSimpleText(a.reader, "Enter phone (optional)", os.Stdout)
	if err != nil {
		return err
	}
	password, err := getPassword(os.Stdout)
	if err != nil {
		return err
	}

	req := services.RegisterRequest{Name: name, Email: email, Phone: phone, Password: string(password)}
	if err := a.auth.Register(ctx, req); err != nil {
		printlnFn("Registration failed:", err.Error())
		return err
	}

	printlnFn("Success! You can now log in.")
	return nil
}

// WhoAmI refreshes the profile from the server and prints the session
// snapshot. A transient refresh failure falls back to the locally known
// identity.
func (a *App) WhoAmI(ctx context.Context) error {
	if _, err := a.auth.Resolve(ctx); err != nil {
		a.log.Warn(ctx, "profile refresh failed", "error", err)
	}

	snap := a.session.Snapshot()
	if snap.User == nil {
		printlnFn("Not logged in")
		return nil
	}

	u := snap.User
	printlnFn("id:   ", u.ID)
	printlnFn("email:", u.Email)
	if u.Name != "" {
		printlnFn("name: ", u.Name)
	}
	if u.Phone != "" {
		printlnFn("phone:", u.Phone)
	}
	if u.Role != "" {
		printlnFn("role: ", u.Role)
	}
	return nil
}
