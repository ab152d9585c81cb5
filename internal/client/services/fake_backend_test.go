package services

import (
	"context"
	"fmt"
	"sync"

	"qrstudio/internal/client/api"
	"qrstudio/internal/client/models"
)

// fakeBackend is an in-memory stand-in for the REST API: it keeps a real
// newest-first history list and counters so tests can compare rendered
// state against "the server".
type fakeBackend struct {
	mu sync.Mutex

	history   []models.HistoryItem
	nextID    int64
	generated int64
	scanned   int64

	users    []models.User
	activity []models.SuspiciousActivity

	loginToken string
	loginErr   error
	profile    models.Profile
	profileErr error
	historyErr error
	statsErr   error
	deleteErr  error

	calls map[string]int
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{nextID: 1, calls: map[string]int{}}
}

func (f *fakeBackend) record(name string) {
	f.calls[name]++
}

func (f *fakeBackend) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

func (f *fakeBackend) serverHistory() []models.HistoryItem {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.HistoryItem(nil), f.history...)
}

func (f *fakeBackend) addItem(text, itemType string) models.HistoryItem {
	item := models.HistoryItem{
		ID:        f.nextID,
		Text:      text,
		Image:     "data:image/png;base64,aGVsbG8=",
		Type:      itemType,
		Timestamp: fmt.Sprintf("2026-08-30T10:00:%02d", f.nextID),
	}
	f.nextID++
	// Newest first, like the backend.
	f.history = append([]models.HistoryItem{item}, f.history...)
	return item
}

func (f *fakeBackend) Login(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Login")
	return f.loginToken, f.loginErr
}

func (f *fakeBackend) AdminLogin(_ context.Context, _, _ string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("AdminLogin")
	return f.loginToken, f.loginErr
}

func (f *fakeBackend) Profile(_ context.Context) (models.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Profile")
	return f.profile, f.profileErr
}

func (f *fakeBackend) UpdateProfile(_ context.Context, username, email, _ string) (models.Profile, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UpdateProfile")
	f.profile = models.Profile{Username: username, Email: email}
	return f.profile, "Profile updated", nil
}

func (f *fakeBackend) CheckEmail(_ context.Context, _ string) (bool, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("CheckEmail")
	return true, "Email available", nil
}

func (f *fakeBackend) Generate(_ context.Context, text string) (models.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Generate")
	f.generated++
	return f.addItem(text, models.TypeGenerated), nil
}

func (f *fakeBackend) GenerateFromImage(_ context.Context, _ api.Upload) (models.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("GenerateFromImage")
	f.generated++
	return f.addItem("from-image", models.TypeGenerated), nil
}

func (f *fakeBackend) Scan(_ context.Context, _ api.Upload) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Scan")
	f.scanned++
	f.addItem("scanned-text", models.TypeScanned)
	return "scanned-text", nil
}

func (f *fakeBackend) UploadDocument(_ context.Context, _ api.Upload) (models.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UploadDocument")
	f.generated++
	return f.addItem("doc", models.TypeGenerated), nil
}

func (f *fakeBackend) History(_ context.Context) ([]models.HistoryItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("History")
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return append([]models.HistoryItem(nil), f.history...), nil
}

func (f *fakeBackend) DeleteQR(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteQR")
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i, item := range f.history {
		if item.ID == id {
			f.history = append(f.history[:i], f.history[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("QR Code not found")
}

func (f *fakeBackend) Stats(_ context.Context) (models.Stats, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("Stats")
	if f.statsErr != nil {
		return models.Stats{}, f.statsErr
	}
	return models.Stats{Generated: f.generated, Scanned: f.scanned}, nil
}

func (f *fakeBackend) ListUsers(_ context.Context) ([]models.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("ListUsers")
	return append([]models.User(nil), f.users...), nil
}

func (f *fakeBackend) DeleteUser(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteUser")
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].Status = models.StatusDeleted
			return nil
		}
	}
	return fmt.Errorf("User not found")
}

func (f *fakeBackend) DeleteAllUsers(_ context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("DeleteAllUsers")
	var n int64
	for i, u := range f.users {
		if u.Role != models.RoleAdmin && u.Status != models.StatusDeleted {
			f.users[i].Status = models.StatusDeleted
			n++
		}
	}
	return n, nil
}

func (f *fakeBackend) MarkSuspicious(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("MarkSuspicious")
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].Status = models.StatusSuspicious
			return nil
		}
	}
	return fmt.Errorf("User not found")
}

func (f *fakeBackend) UnmarkSuspicious(_ context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("UnmarkSuspicious")
	for i, u := range f.users {
		if u.ID == id {
			f.users[i].Status = models.StatusActive
			return nil
		}
	}
	return fmt.Errorf("User not found")
}

func (f *fakeBackend) SuspiciousActivity(_ context.Context) ([]models.SuspiciousActivity, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.record("SuspiciousActivity")
	return append([]models.SuspiciousActivity(nil), f.activity...), nil
}

// recordRenderer remembers the last fully rendered state.
type recordRenderer struct {
	mu      sync.Mutex
	history []models.HistoryItem
	stats   models.Stats
	last    string
	renders int
}

func (r *recordRenderer) RenderHistory(items []models.HistoryItem) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.history = append([]models.HistoryItem(nil), items...)
	r.renders++
}

func (r *recordRenderer) RenderStats(stats models.Stats, lastActivity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stats = stats
	r.last = lastActivity
}

func (r *recordRenderer) snapshot() ([]models.HistoryItem, models.Stats, string, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]models.HistoryItem(nil), r.history...), r.stats, r.last, r.renders
}
