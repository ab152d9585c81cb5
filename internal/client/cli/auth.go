package cli

import (
	"context"
	"errors"
	"fmt"

	"qrstudio/internal/client/api"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and authenticates against the user endpoint.
// On success the bearer token is persisted and the session identity is
// refreshed from the profile endpoint.
func (a *App) Login(ctx context.Context) error {
	return a.login(ctx, a.authService.Login)
}

// AdminLogin prompts for credentials and authenticates against the admin
// endpoint. The backend only issues a token here when the account has the
// admin role.
func (a *App) AdminLogin(ctx context.Context) error {
	return a.login(ctx, a.authService.AdminLogin)
}

func (a *App) login(ctx context.Context, authenticate func(ctx context.Context, email, password string) error) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", a.out)
	if err != nil {
		return err
	}

	if err := authenticate(ctx, email, password); err != nil {
		if errors.Is(err, api.ErrUnavailable) {
			fmt.Fprintln(a.out, "Server unavailable, try again later.")
		} else {
			fmt.Fprintf(a.out, "Login failed: %s\n", err.Error())
		}
		return err
	}

	status := a.authService.CheckAuthStatus(ctx)
	a.userName = status.Username
	fmt.Fprintf(a.out, "Logged in as %s\n", a.userName)
	return nil
}

// Logout drops the stored token and returns to the anonymous command set.
func (a *App) Logout(ctx context.Context) error {
	if err := a.authService.Logout(); err != nil {
		fmt.Fprintf(a.out, "Logout failed: %s\n", err.Error())
		return err
	}
	a.userName = ""
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// Status re-validates the stored session and prints the result. A token the
// server no longer accepts is cleared and reported as logged out.
func (a *App) Status(ctx context.Context) error {
	status := a.authService.CheckAuthStatus(ctx)
	if !status.Authenticated {
		a.userName = ""
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	a.userName = status.Username
	fmt.Fprintf(a.out, "Logged in as %s <%s>\n", status.Username, status.Email)
	return nil
}

// Profile fetches and prints the current account's profile.
func (a *App) Profile(ctx context.Context) error {
	profile, err := a.authService.Profile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Username: %s\nEmail:    %s\n", profile.Username, profile.Email)
	return nil
}

// EditProfile prompts for new profile values and submits them. Empty
// username/email keep the current values; an empty password keeps the
// current password.
func (a *App) EditProfile(ctx context.Context) error {
	current, err := a.authService.Profile(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}

	username, err := getSimpleText(a.reader, fmt.Sprintf("Enter username [%s]", current.Username), a.out)
	if err != nil {
		return err
	}
	if username == "" {
		username = current.Username
	}

	email, err := getSimpleText(a.reader, fmt.Sprintf("Enter email [%s]", current.Email), a.out)
	if err != nil {
		return err
	}
	if email == "" {
		email = current.Email
	}

	password, err := getPassword("New password (empty to keep current)", a.out)
	if err != nil {
		return err
	}
	confirm := ""
	if password != "" {
		confirm, err = getPassword("Confirm new password", a.out)
		if err != nil {
			return err
		}
	}

	profile, msg, err := a.authService.UpdateProfile(ctx, username, email, password, confirm)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	if msg == "" {
		msg = "Profile updated"
	}
	fmt.Fprintf(a.out, "%s (%s <%s>)\n", msg, profile.Username, profile.Email)
	a.userName = profile.Username
	return nil
}

// CheckEmail asks the backend whether an email address is free to use.
func (a *App) CheckEmail(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email to check", a.out)
	if err != nil {
		return err
	}

	available, msg, err := a.authService.CheckEmail(ctx, email)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	if msg == "" {
		if available {
			msg = "Email is available"
		} else {
			msg = "Email is already taken"
		}
	}
	fmt.Fprintln(a.out, msg)
	return nil
}
