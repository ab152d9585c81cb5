package cli

import (
	"fmt"

	"qrstudio/internal/client/session"
)

// Theme shows or switches the persisted UI theme. With no argument it
// prints the current value; with "light" or "dark" it switches and saves.
func (a *App) Theme(args []string) error {
	if len(args) == 0 {
		fmt.Fprintf(a.out, "Current theme: %s\n", a.store.Theme())
		return nil
	}

	theme := args[0]
	if theme != session.ThemeLight && theme != session.ThemeDark {
		fmt.Fprintln(a.out, "Usage: theme [light|dark]")
		return nil
	}
	if err := a.store.SetTheme(theme); err != nil {
		fmt.Fprintf(a.out, "Error: %s\n", err.Error())
		return err
	}
	fmt.Fprintf(a.out, "Theme set to %s.\n", theme)
	return nil
}
