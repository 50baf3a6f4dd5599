package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"skyshop-account-api/internal/avatar"
	"skyshop-account-api/internal/domain"
	"skyshop-account-api/internal/errs"
	"skyshop-account-api/internal/repo"
)

// Admin covers the admin-plane user CRUD. Role gating happens in the
// authorization middleware, not here.
type Admin struct {
	users   domain.UserRepository
	avatars avatar.Store
	log     *zap.Logger
}

func NewAdmin(users domain.UserRepository, avatars avatar.Store, log *zap.Logger) *Admin {
	return &Admin{users: users, avatars: avatars, log: log}
}

func (s *Admin) List(ctx context.Context, f domain.ListFilter) ([]domain.User, int64, error) {
	users, total, err := s.users.List(ctx, f)
	if err != nil {
		return nil, 0, errs.Upstream("failed to list users", err)
	}
	return users, total, nil
}

func (s *Admin) Get(ctx context.Context, id string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Upstream("failed to look up user", err)
	}
	if u == nil {
		return nil, errs.NotFound(fmt.Sprintf("user does not exist with id: %s", id))
	}
	return u, nil
}

// UpdateRole rewrites name, email and role of an arbitrary account.
func (s *Admin) UpdateRole(ctx context.Context, id, name, email, role string) (*domain.User, error) {
	if role != domain.RoleUser && role != domain.RoleAdmin {
		return nil, errs.BadRequest(fmt.Sprintf("unknown role: %s", role))
	}
	u, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	u.Name = name
	u.Email = email
	u.Role = role
	if err := s.users.Update(ctx, u); err != nil {
		if repo.IsDuplicate(err) {
			return nil, errs.BadRequest("email is already registered")
		}
		return nil, errs.Upstream("failed to update user", err)
	}
	return u, nil
}

// Delete removes the stored avatar first (best effort, a failure is logged
// and does not abort the delete) and then the record.
func (s *Admin) Delete(ctx context.Context, id string) error {
	u, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if u.Avatar.ExternalID != "" {
		if err := s.avatars.Destroy(ctx, u.Avatar.ExternalID); err != nil {
			s.log.Warn("avatar destroy failed",
				zap.String("user", id), zap.String("avatar", u.Avatar.ExternalID), zap.Error(err))
		}
	}
	if err := s.users.Delete(ctx, id); err != nil {
		return errs.Upstream("failed to delete user", err)
	}
	return nil
}
