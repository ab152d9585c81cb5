// Package api is the REST client for the QR Studio backend. It owns request
// construction (bearer header, content types, request ids) and the uniform
// response classification every endpoint shares.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"qrstudio/internal/client/models"
	"qrstudio/internal/client/session"
	"qrstudio/internal/logging"
)

// Client issues authenticated requests against a single backend base URL.
// The bearer header is read from the session store when each request is
// built; requests already in flight keep the header they were built with.
type Client struct {
	baseURL    string
	httpClient *http.Client
	store      session.Store
	log        logging.Logger
}

func New(baseURL string, store session.Store, timeout time.Duration, log logging.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		store:      store,
		log:        log.With("component", "api"),
	}
}

// envelope captures the failure/success markers shared by every endpoint.
// The same body bytes are re-parsed into the endpoint's own shape afterwards.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

// newRequest builds a request with the bearer header (only when a token is
// stored; a malformed "Bearer " header is never sent) and a request id.
func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token, ok := c.store.Token(); ok {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	return req, nil
}

// do executes the request and applies the classification rule: a call failed
// if the transport failed, the status is not 2xx, the body carries a truthy
// "error", or a "success" flag is present and false. On success the body is
// unmarshalled into out (when non-nil).
func (c *Client) do(req *http.Request, out any, fallback string) error {
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Error(req.Context(), "request failed",
			"method", req.Method, "path", req.URL.Path, "err", err)
		return fmt.Errorf("%s: %w", fallback, ErrUnavailable)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%s: %w", fallback, ErrUnavailable)
	}

	c.log.Debug(req.Context(), "request finished",
		"method", req.Method, "path", req.URL.Path,
		"status", resp.StatusCode, "duration", time.Since(start))

	var env envelope
	// Some endpoints return bare arrays; an unmarshal error here just means
	// there are no failure markers to inspect.
	_ = json.Unmarshal(body, &env)

	ok := resp.StatusCode >= 200 && resp.StatusCode < 300
	if !ok || env.Error != "" || (env.Success != nil && !*env.Success) {
		msg := env.Error
		if msg == "" {
			msg = env.Message
		}
		if msg == "" {
			msg = fallback
		}
		return &Error{StatusCode: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			return &Error{StatusCode: resp.StatusCode, Message: fallback}
		}
	}
	return nil
}

func (c *Client) postJSON(ctx context.Context, path string, in, out any, fallback string) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(payload), "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out, fallback)
}

func (c *Client) get(ctx context.Context, path string, out any, fallback string) error {
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out, fallback)
}

func (c *Client) delete(ctx context.Context, path string, out any, fallback string) error {
	req, err := c.newRequest(ctx, http.MethodDelete, path, nil, "application/json")
	if err != nil {
		return err
	}
	return c.do(req, out, fallback)
}

// --- auth ---

type loginResponse struct {
	Token   string `json:"token"`
	Message string `json:"message"`
}

// Login authenticates a regular user and returns the bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/api/auth/login", in, &resp, "Login failed"); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// AdminLogin authenticates against the admin login endpoint.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (string, error) {
	var resp loginResponse
	in := map[string]string{"email": email, "password": password}
	if err := c.postJSON(ctx, "/api/auth/admin-login", in, &resp, "Login failed"); err != nil {
		return "", err
	}
	return resp.Token, nil
}

// Profile fetches the authenticated user's identity. The endpoint is a POST
// with an empty JSON body.
func (c *Client) Profile(ctx context.Context) (models.Profile, error) {
	var p models.Profile
	err := c.postJSON(ctx, "/api/auth/profile", map[string]string{}, &p, "Failed to fetch profile")
	return p, err
}

// UpdateProfile submits profile changes; newPassword may be empty to keep
// the current one. Returns the updated identity.
func (c *Client) UpdateProfile(ctx context.Context, username, email, newPassword string) (models.Profile, string, error) {
	in := map[string]string{"username": username, "email": email, "newPassword": newPassword}
	var resp struct {
		models.Profile
		Message string `json:"message"`
	}
	if err := c.postJSON(ctx, "/api/auth/profile/update", in, &resp, "Failed to update profile"); err != nil {
		return models.Profile{}, "", err
	}
	return resp.Profile, resp.Message, nil
}

// CheckEmail asks whether an email address is free to use.
func (c *Client) CheckEmail(ctx context.Context, email string) (bool, string, error) {
	var resp struct {
		Available bool   `json:"available"`
		Message   string `json:"message"`
	}
	in := map[string]string{"email": email}
	if err := c.postJSON(ctx, "/api/auth/check-email", in, &resp, "Error checking email"); err != nil {
		return false, "", err
	}
	return resp.Available, resp.Message, nil
}

// --- qr ---

// Generate creates a QR code from text and returns the stored history item.
func (c *Client) Generate(ctx context.Context, text string) (models.HistoryItem, error) {
	var item models.HistoryItem
	in := map[string]string{"text": text}
	err := c.postJSON(ctx, "/api/qr/generate", in, &item, "Failed to generate QR code")
	return item, err
}

// History fetches the full history list in backend order (newest first).
func (c *Client) History(ctx context.Context) ([]models.HistoryItem, error) {
	var items []models.HistoryItem
	if err := c.get(ctx, "/api/qr/history", &items, "Failed to load history"); err != nil {
		return nil, err
	}
	return items, nil
}

// DeleteQR hard-deletes one history item by id.
func (c *Client) DeleteQR(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/qr/%d", id), nil, "Failed to delete QR code")
}

// Stats fetches the per-user counters.
func (c *Client) Stats(ctx context.Context) (models.Stats, error) {
	var s models.Stats
	err := c.get(ctx, "/api/qr/stats", &s, "Failed to fetch stats")
	return s, err
}

// --- admin ---

// ListUsers returns all user records, including soft-deleted ones; the
// caller filters those for display.
func (c *Client) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := c.get(ctx, "/api/admin/users", &users, "Failed to fetch users"); err != nil {
		return nil, err
	}
	return users, nil
}

// DeleteUser soft-deletes one user.
func (c *Client) DeleteUser(ctx context.Context, id int64) error {
	return c.delete(ctx, fmt.Sprintf("/api/admin/users/%d", id), nil, "Failed to delete user")
}

// DeleteAllUsers soft-deletes every non-admin user and reports how many.
func (c *Client) DeleteAllUsers(ctx context.Context) (int64, error) {
	var resp struct {
		Deleted int64 `json:"deleted"`
	}
	if err := c.delete(ctx, "/api/admin/users", &resp, "Failed to delete users"); err != nil {
		return 0, err
	}
	return resp.Deleted, nil
}

// MarkSuspicious flags a user.
func (c *Client) MarkSuspicious(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/users/%d/suspicious", id)
	return c.postJSON(ctx, path, map[string]string{}, nil, "Failed to mark user as suspicious")
}

// UnmarkSuspicious clears the flag.
func (c *Client) UnmarkSuspicious(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/api/admin/users/%d/suspicious", id)
	return c.delete(ctx, path, nil, "Failed to unmark user as suspicious")
}

// SuspiciousActivity fetches the admin audit log.
func (c *Client) SuspiciousActivity(ctx context.Context) ([]models.SuspiciousActivity, error) {
	var logs []models.SuspiciousActivity
	if err := c.get(ctx, "/api/admin/suspicious-activity", &logs, "Failed to fetch logs"); err != nil {
		return nil, err
	}
	return logs, nil
}
