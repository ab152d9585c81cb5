package services

import (
	"context"

	"qrstudio/internal/client/models"
	"qrstudio/internal/logging"
)

// AdminService drives the user-management panel. Mutators re-fetch and
// return the fresh user list so the caller always renders the server's
// current state. Soft-deleted users are filtered out of the returned list;
// they still exist server-side.
type AdminService interface {
	Users(ctx context.Context) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) ([]models.User, error)
	DeleteAllUsers(ctx context.Context) (int64, []models.User, error)
	MarkSuspicious(ctx context.Context, id int64) ([]models.User, error)
	UnmarkSuspicious(ctx context.Context, id int64) ([]models.User, error)
	ActivityLog(ctx context.Context) ([]models.SuspiciousActivity, error)
}

type adminService struct {
	backend Backend
	log     logging.Logger
}

func NewAdminService(backend Backend, log logging.Logger) AdminService {
	return &adminService{backend: backend, log: log.With("component", "admin")}
}

func (s *adminService) Users(ctx context.Context) ([]models.User, error) {
	users, err := s.backend.ListUsers(ctx)
	if err != nil {
		return nil, err
	}
	visible := make([]models.User, 0, len(users))
	for _, u := range users {
		if u.Status == models.StatusDeleted {
			continue
		}
		visible = append(visible, u)
	}
	return visible, nil
}

func (s *adminService) DeleteUser(ctx context.Context, id int64) ([]models.User, error) {
	if err := s.backend.DeleteUser(ctx, id); err != nil {
		return nil, err
	}
	return s.Users(ctx)
}

func (s *adminService) DeleteAllUsers(ctx context.Context) (int64, []models.User, error) {
	deleted, err := s.backend.DeleteAllUsers(ctx)
	if err != nil {
		return 0, nil, err
	}
	users, err := s.Users(ctx)
	return deleted, users, err
}

func (s *adminService) MarkSuspicious(ctx context.Context, id int64) ([]models.User, error) {
	if err := s.backend.MarkSuspicious(ctx, id); err != nil {
		return nil, err
	}
	return s.Users(ctx)
}

func (s *adminService) UnmarkSuspicious(ctx context.Context, id int64) ([]models.User, error) {
	if err := s.backend.UnmarkSuspicious(ctx, id); err != nil {
		return nil, err
	}
	return s.Users(ctx)
}

func (s *adminService) ActivityLog(ctx context.Context) ([]models.SuspiciousActivity, error) {
	return s.backend.SuspiciousActivity(ctx)
}
