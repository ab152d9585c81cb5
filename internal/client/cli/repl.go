package cli

import (
	"bufio"
	"context"
	"fmt"
	"strconv"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Login(ctx context.Context) error
	AdminLogin(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	Theme(args []string) error

	Generate(ctx context.Context, text string) error
	GenerateFromImage(ctx context.Context, path string) error
	Scan(ctx context.Context, path string) error
	Upload(ctx context.Context, path string) error
	History(ctx context.Context) error
	Save(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
	Clear(ctx context.Context) error
	ShowStats(ctx context.Context) error

	Profile(ctx context.Context) error
	EditProfile(ctx context.Context) error
	CheckEmail(ctx context.Context) error

	Users(ctx context.Context) error
	DeleteUser(ctx context.Context, id int64) error
	DeleteAllUsers(ctx context.Context) error
	Mark(ctx context.Context, id int64) error
	Unmark(ctx context.Context, id int64) error
	ActivityLog(ctx context.Context) error
}

const adminRequiredMsg = "Admin access required. Use 'adminlogin' to sign in as an administrator."

// runREPL starts a simple read-eval-print loop for the QR Studio CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Admin commands are gated on the token's role claim BEFORE any handler
// runs: a non-admin typing an admin command gets a pointer to 'adminlogin'
// and no request is sent at all.
//
// Any errors returned by command handlers are ignored here; handlers print
// their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("qr> %s ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			printHelp(a)

		case "login":
			_ = a.Login(ctx)

		case "adminlogin":
			_ = a.AdminLogin(ctx)

		case "status":
			_ = a.Status(ctx)

		case "theme":
			_ = a.Theme(args)

		case "generate":
			_ = a.Generate(ctx, strings.Join(args, " "))

		case "genimage":
			if len(args) == 0 {
				printlnFn("Usage: genimage <path>")
				continue
			}
			_ = a.GenerateFromImage(ctx, args[0])

		case "scan":
			if len(args) == 0 {
				printlnFn("Usage: scan <path>")
				continue
			}
			_ = a.Scan(ctx, args[0])

		case "upload":
			if len(args) == 0 {
				printlnFn("Usage: upload <path>")
				continue
			}
			_ = a.Upload(ctx, args[0])

		case "history":
			_ = a.History(ctx)

		case "save":
			id, ok := parseID(args, "Usage: save <id>")
			if !ok {
				continue
			}
			_ = a.Save(ctx, id)

		case "delete":
			id, ok := parseID(args, "Usage: delete <id>")
			if !ok {
				continue
			}
			_ = a.Delete(ctx, id)

		case "clear":
			_ = a.Clear(ctx)

		case "stats":
			_ = a.ShowStats(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "editprofile":
			_ = a.EditProfile(ctx)

		case "checkemail":
			_ = a.CheckEmail(ctx)

		case "users":
			if !a.isAdmin() {
				printlnFn(adminRequiredMsg)
				continue
			}
			_ = a.Users(ctx)

		case "deluser":
			if !a.isAdmin() {
				printlnFn(adminRequiredMsg)
				continue
			}
			id, ok := parseID(args, "Usage: deluser <id>")
			if !ok {
				continue
			}
			_ = a.DeleteUser(ctx, id)

		case "delall":
			if !a.isAdmin() {
				printlnFn(adminRequiredMsg)
				continue
			}
			_ = a.DeleteAllUsers(ctx)

		case "mark":
			if !a.isAdmin() {
				printlnFn(adminRequiredMsg)
				continue
			}
			id, ok := parseID(args, "Usage: mark <id>")
			if !ok {
				continue
			}
			_ = a.Mark(ctx, id)

		case "unmark":
			if !a.isAdmin() {
				printlnFn(adminRequiredMsg)
				continue
			}
			id, ok := parseID(args, "Usage: unmark <id>")
			if !ok {
				continue
			}
			_ = a.Unmark(ctx, id)

		case "logs":
			if !a.isAdmin() {
				printlnFn(adminRequiredMsg)
				continue
			}
			_ = a.ActivityLog(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}

func printHelp(a execIface) {
	if !a.isLoggedIn() {
		printlnFn("Available commands: login, adminlogin, status, theme, exit")
		return
	}
	printlnFn("Available commands: generate, genimage, scan, upload, history, save, delete, clear, stats, profile, editprofile, checkemail, theme, status, logout, exit")
	if a.isAdmin() {
		printlnFn("Admin commands: users, deluser, delall, mark, unmark, logs")
	}
}

func parseID(args []string, usage string) (int64, bool) {
	if len(args) == 0 {
		printlnFn(usage)
		return 0, false
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		printlnFn(usage)
		return 0, false
	}
	return id, true
}
