// Package services contains the application services of the QR Studio
// client: authentication and session gating, the QR workflow, the admin
// panel operations, and the history/stats synchronizer.
package services

import (
	"context"

	"qrstudio/internal/client/api"
	"qrstudio/internal/client/models"
)

// Backend is the REST surface the services consume. *api.Client satisfies
// it; tests provide fakes.
type Backend interface {
	Login(ctx context.Context, email, password string) (string, error)
	AdminLogin(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (models.Profile, error)
	UpdateProfile(ctx context.Context, username, email, newPassword string) (models.Profile, string, error)
	CheckEmail(ctx context.Context, email string) (bool, string, error)

	Generate(ctx context.Context, text string) (models.HistoryItem, error)
	GenerateFromImage(ctx context.Context, u api.Upload) (models.HistoryItem, error)
	Scan(ctx context.Context, u api.Upload) (string, error)
	UploadDocument(ctx context.Context, u api.Upload) (models.HistoryItem, error)
	History(ctx context.Context) ([]models.HistoryItem, error)
	DeleteQR(ctx context.Context, id int64) error
	Stats(ctx context.Context) (models.Stats, error)

	ListUsers(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
	DeleteAllUsers(ctx context.Context) (int64, error)
	MarkSuspicious(ctx context.Context, id int64) error
	UnmarkSuspicious(ctx context.Context, id int64) error
	SuspiciousActivity(ctx context.Context) ([]models.SuspiciousActivity, error)
}

var _ Backend = (*api.Client)(nil)
