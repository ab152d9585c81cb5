package cli

import (
	"context"
	"fmt"

	"qrstudio/internal/client/models"
)

// Users prints the user list. Soft-deleted accounts are already filtered
// out by the service.
func (a *App) Users(ctx context.Context) error {
	users, err := a.adminService.Users(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	renderUsers(a.out, users)
	return nil
}

// DeleteUser soft-deletes one account and prints the refreshed list.
func (a *App) DeleteUser(ctx context.Context, id int64) error {
	users, err := a.adminService.DeleteUser(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "User %d deleted.\n", id)
	renderUsers(a.out, users)
	return nil
}

// DeleteAllUsers soft-deletes every non-admin account after a confirmation
// prompt.
func (a *App) DeleteAllUsers(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete ALL non-admin users? (yes/no)", a.out)
	if err != nil {
		return err
	}
	if answer != "yes" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}

	deleted, users, err := a.adminService.DeleteAllUsers(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Deleted %d user(s).\n", deleted)
	renderUsers(a.out, users)
	return nil
}

// Mark flags an account as suspicious.
func (a *App) Mark(ctx context.Context, id int64) error {
	users, err := a.adminService.MarkSuspicious(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "User %d marked as suspicious.\n", id)
	renderUsers(a.out, users)
	return nil
}

// Unmark clears an account's suspicious flag.
func (a *App) Unmark(ctx context.Context, id int64) error {
	users, err := a.adminService.UnmarkSuspicious(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "User %d unmarked.\n", id)
	renderUsers(a.out, users)
	return nil
}

// ActivityLog prints the recorded suspicious activity.
func (a *App) ActivityLog(ctx context.Context) error {
	entries, err := a.adminService.ActivityLog(ctx)
	if err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	renderActivity(a.out, entries)
	return nil
}

func statusLabel(s string) string {
	switch s {
	case models.StatusSuspicious:
		return "SUSPICIOUS"
	case models.StatusDeleted:
		return "DELETED"
	default:
		return "active"
	}
}
