package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"qrstudio/internal/client/api"
	"qrstudio/internal/client/config"
	"qrstudio/internal/client/services"
	"qrstudio/internal/client/session"
	"qrstudio/internal/logging"
)

// App holds the wired services and the terminal I/O for the interactive client.
type App struct {
	config       *config.Config
	authService  services.AuthService
	qrService    services.QRService
	adminService services.AdminService
	sync         *services.Synchronizer
	store        session.Store
	log          logging.Logger

	reader *bufio.Reader
	out    io.Writer

	userName string
}

// NewApp wires the API client, session store, and services for the given
// configuration.
func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	store, err := session.NewFileStore(c.StateDir)
	if err != nil {
		return nil, fmt.Errorf("init session store: %w", err)
	}

	backend := api.New(c.BaseURL, store, c.RequestTimeout, log)

	sync := services.NewSynchronizer(backend, log)
	as := services.NewAuthService(backend, store, log)
	qs := services.NewQRService(backend, sync, log)
	ads := services.NewAdminService(backend, log)

	return &App{
		config:       c,
		authService:  as,
		qrService:    qs,
		adminService: ads,
		sync:         sync,
		store:        store,
		log:          log,
		reader:       bufio.NewReader(os.Stdin),
		out:          os.Stdout,
	}, nil
}

// Run restores the stored session, attaches the terminal renderer, and
// blocks in the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Welcome to QR Studio CLI (type 'help' for commands)")

	status := a.authService.CheckAuthStatus(ctx)
	if status.Authenticated {
		a.userName = status.Username
		fmt.Fprintf(a.out, "Restored session for %s\n", status.Username)
	}
	a.sync.Attach(newTerminalRenderer(a.out))

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) isLoggedIn() bool {
	return a.userName != ""
}

func (a *App) isAdmin() bool {
	return a.authService.IsAdmin()
}

func (a *App) getStatus() string {
	if a.userName == "" {
		return ""
	}
	if a.isAdmin() {
		return fmt.Sprintf("(%s admin)", a.userName)
	}
	return fmt.Sprintf("(%s)", a.userName)
}
