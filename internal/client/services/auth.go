package services

import (
	"context"
	"regexp"

	"qrstudio/internal/client/auth"
	"qrstudio/internal/client/models"
	"qrstudio/internal/client/session"
	"qrstudio/internal/logging"
)

// AuthStatus is the outcome of a session check: either an authenticated
// identity or the anonymous state.
type AuthStatus struct {
	Authenticated bool
	Username      string
	Email         string
}

// AuthService owns the token lifecycle and the client-side gating decisions.
//
// Contract:
//   - Login/AdminLogin: authenticate and persist the returned bearer token.
//   - Logout: drop the token.
//   - CheckAuthStatus: validate the stored token against the profile
//     endpoint; an invalid token is cleared as a side effect, so a stale
//     session self-heals into the anonymous state.
//   - IsAdmin: decode-only role check used to gate admin commands before
//     any admin request is issued.
type AuthService interface {
	Login(ctx context.Context, email, password string) error
	AdminLogin(ctx context.Context, email, password string) error
	Logout() error
	CheckAuthStatus(ctx context.Context) AuthStatus
	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, username, email, newPassword, confirmPassword string) (models.Profile, string, error)
	CheckEmail(ctx context.Context, email string) (bool, string, error)
	Token() (string, bool)
	IsAdmin() bool
}

type authService struct {
	backend Backend
	store   session.Store
	log     logging.Logger
}

// NewAuthService constructs an AuthService bound to the given backend and
// session store.
func NewAuthService(backend Backend, store session.Store, log logging.Logger) AuthService {
	return &authService{backend: backend, store: store, log: log.With("component", "auth")}
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	token, err := a.backend.Login(ctx, email, password)
	if err != nil {
		return err
	}
	return a.store.SetToken(token)
}

func (a *authService) AdminLogin(ctx context.Context, email, password string) error {
	token, err := a.backend.AdminLogin(ctx, email, password)
	if err != nil {
		return err
	}
	return a.store.SetToken(token)
}

func (a *authService) Logout() error {
	return a.store.ClearToken()
}

// CheckAuthStatus decides between the authenticated and anonymous views.
// Any failure (no token, profile endpoint rejecting it, or the network
// being gone) lands in the anonymous state; when a token was present it is
// cleared so the next check does not retry a credential already known bad.
// Failures are silent: callers render the logged-out view, not an error.
func (a *authService) CheckAuthStatus(ctx context.Context) AuthStatus {
	if _, ok := a.store.Token(); !ok {
		return AuthStatus{}
	}

	profile, err := a.backend.Profile(ctx)
	if err != nil {
		a.log.Debug(ctx, "auth check failed, clearing token", "err", err)
		if clearErr := a.store.ClearToken(); clearErr != nil {
			a.log.Warn(ctx, "failed to clear token", "err", clearErr)
		}
		return AuthStatus{}
	}

	return AuthStatus{Authenticated: true, Username: profile.Username, Email: profile.Email}
}

func (a *authService) Profile(ctx context.Context) (models.Profile, error) {
	return a.backend.Profile(ctx)
}

var emailRe = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// UpdateProfile validates locally, then submits. newPassword may be empty
// to keep the current password; when set it must be at least 6 characters
// and match the confirmation. Validation failures issue no request.
func (a *authService) UpdateProfile(ctx context.Context, username, email, newPassword, confirmPassword string) (models.Profile, string, error) {
	if username == "" || email == "" {
		return models.Profile{}, "", ErrMissingFields
	}
	if !emailRe.MatchString(email) {
		return models.Profile{}, "", ErrInvalidEmail
	}
	if newPassword != "" {
		if len(newPassword) < 6 {
			return models.Profile{}, "", ErrPasswordTooShort
		}
		if newPassword != confirmPassword {
			return models.Profile{}, "", ErrPasswordMismatch
		}
	}
	return a.backend.UpdateProfile(ctx, username, email, newPassword)
}

// CheckEmail validates the format locally before asking the backend about
// availability.
func (a *authService) CheckEmail(ctx context.Context, email string) (bool, string, error) {
	if !emailRe.MatchString(email) {
		return false, "", ErrInvalidEmail
	}
	return a.backend.CheckEmail(ctx, email)
}

func (a *authService) Token() (string, bool) {
	return a.store.Token()
}

func (a *authService) IsAdmin() bool {
	token, ok := a.store.Token()
	if !ok {
		return false
	}
	return auth.IsAdmin(token)
}
