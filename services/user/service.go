// Package user hosts the account-level operations this subsystem needs.
package user

import (
	"context"
	"errors"
	"fmt"
	"time"

	profileRepo "beresin/database/repository/profile"
	userRepo "beresin/database/repository/user"
	"beresin/models"
	"beresin/utils"

	"go.uber.org/zap"
)

// UserService defines account operations.
type UserService interface {
	// UpgradeToProviderRole marks the user as a provider and creates their
	// empty booking calendar. Idempotent.
	UpgradeToProviderRole(ctx context.Context, userID string) error
}

// DefaultUserService implements UserService.
type DefaultUserService struct {
	Logger   *zap.Logger
	Users    userRepo.UserRepository
	Profiles profileRepo.ProfileRepository
}

func (s *DefaultUserService) UpgradeToProviderRole(ctx context.Context, userID string) error {
	usr, err := s.Users.GetByID(userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return utils.NewAppError(utils.CodeNotFound, fmt.Sprintf("user %s not found", userID))
		}
		return utils.NewAppError(utils.CodeInternal, "failed to load user")
	}

	if usr.Role != models.RoleProvider {
		if err := s.Users.SetRole(userID, models.RoleProvider); err != nil {
			s.Logger.Error("failed to set provider role", zap.String("userId", userID), zap.Error(err))
			return utils.NewAppError(utils.CodeInternal, "failed to update role")
		}
	}

	_, err = s.Profiles.GetByProviderID(userID)
	if errors.Is(err, profileRepo.ErrProfileNotFound) {
		now := time.Now()
		profile := &models.ProviderProfile{
			ProviderID:     userID,
			AvailableDates: []string{},
			BusyDates:      []string{},
			Available:      false,
			CreatedAt:      now,
			UpdatedAt:      now,
		}
		if err := s.Profiles.Create(profile); err != nil {
			s.Logger.Error("failed to create provider profile", zap.String("userId", userID), zap.Error(err))
			return utils.NewAppError(utils.CodeInternal, "failed to create provider profile")
		}
	} else if err != nil {
		return utils.NewAppError(utils.CodeInternal, "failed to load provider profile")
	}

	s.Logger.Info("user upgraded to provider", zap.String("userId", userID))
	return nil
}
