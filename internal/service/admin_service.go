package service

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/mypaws/adoption-service/internal/domain"
	"github.com/mypaws/adoption-service/internal/repository"
	apperrors "github.com/mypaws/adoption-service/pkg/util"
)

// AdminService covers account moderation and maintenance jobs.
type AdminService struct {
	users  repository.UserRepository
	usages repository.ListingUsageRepository
}

// NewAdminService constructs the service.
func NewAdminService(users repository.UserRepository, usages repository.ListingUsageRepository) *AdminService {
	return &AdminService{users: users, usages: usages}
}

// SetUserStatus suspends, bans or reinstates an account. Takes effect on the
// target's next request because the auth middleware reloads status.
func (s *AdminService) SetUserStatus(ctx context.Context, adminID, userID string, status domain.UserStatus) (*domain.User, error) {
	switch status {
	case domain.UserStatusActive, domain.UserStatusSuspended, domain.UserStatusBanned:
	default:
		return nil, apperrors.NewValidationError("status must be active, suspended or banned")
	}
	if adminID == userID {
		return nil, apperrors.NewValidationError("cannot change own account status")
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	if err := s.users.UpdateStatus(ctx, userID, status); err != nil {
		return nil, err
	}
	user.Status = status
	return user, nil
}

// DeleteUser soft-deletes an account. The row stays for payment history; the
// user can no longer authenticate.
func (s *AdminService) DeleteUser(ctx context.Context, adminID, userID string) error {
	if adminID == userID {
		return apperrors.NewValidationError("cannot delete own account")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.NewNotFound("user")
		}
		return err
	}
	return s.users.SoftDelete(ctx, userID)
}

// ExpireUsages marks ledger entries past their validity window as expired and
// returns how many rows changed.
func (s *AdminService) ExpireUsages(ctx context.Context) (int64, error) {
	return s.usages.ExpireOutdated(ctx)
}
