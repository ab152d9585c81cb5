package cli

import (
	"fmt"
	"io"
	"time"

	"qrstudio/internal/client/models"
)

// nowFn is a test seam for the clock used by relative timestamps.
var nowFn = time.Now

// terminalRenderer writes the current history and stats snapshot to the
// terminal. The synchronizer calls it after every refresh, so the printed
// state always mirrors the server.
type terminalRenderer struct {
	w io.Writer
}

func newTerminalRenderer(w io.Writer) *terminalRenderer {
	return &terminalRenderer{w: w}
}

func (r *terminalRenderer) RenderHistory(items []models.HistoryItem) {
	if len(items) == 0 {
		fmt.Fprintln(r.w, "History is empty.")
		return
	}
	fmt.Fprintf(r.w, "History (%d):\n", len(items))
	for _, item := range items {
		label := "generated"
		if item.Type == models.TypeScanned {
			label = "scanned"
		}
		fmt.Fprintf(r.w, "  #%-5d %-9s %-12s (%s)  %s\n", item.ID, label, relativeTime(item.Timestamp), item.Timestamp, truncate(item.Text, 60))
	}
}

func (r *terminalRenderer) RenderStats(stats models.Stats, lastActivity string) {
	last := "Never"
	if lastActivity != "" {
		last = relativeTime(lastActivity)
	}
	fmt.Fprintf(r.w, "Generated: %d  Scanned: %d  Last activity: %s\n", stats.Generated, stats.Scanned, last)
}

// relativeTime buckets a backend timestamp into a short human form:
// "Just now", minutes, hours, days, and a plain date beyond a week.
// Unparseable timestamps are shown verbatim.
func relativeTime(ts string) string {
	t, ok := models.ParseTimestamp(ts)
	if !ok {
		return ts
	}

	d := nowFn().Sub(t)
	switch {
	case d < time.Minute:
		return "Just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2, 2006")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}

func renderUsers(w io.Writer, users []models.User) {
	if len(users) == 0 {
		fmt.Fprintln(w, "No users.")
		return
	}
	fmt.Fprintf(w, "%-6s %-20s %-30s %-6s %s\n", "ID", "USERNAME", "EMAIL", "ROLE", "STATUS")
	for _, u := range users {
		fmt.Fprintf(w, "%-6d %-20s %-30s %-6s %s\n", u.ID, u.Username, u.Email, u.Role, statusLabel(u.Status))
	}
}

func renderActivity(w io.Writer, entries []models.SuspiciousActivity) {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No suspicious activity recorded.")
		return
	}
	for _, e := range entries {
		fmt.Fprintf(w, "%-12s %-20s (id %d) %s\n", relativeTime(e.Timestamp), e.Username, e.UserID, e.Action)
	}
}
