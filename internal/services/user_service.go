// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type UserService struct {
	uow database.UnitOfWork
}

// UpdateUserProfileRequest carries the optional profile fields; nil leaves a
// field unchanged.
type UpdateUserProfileRequest struct {
	FirstName               *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName                *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email                   *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	Phone                   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address                 *string `json:"address,omitempty" validate:"omitempty,max=1000"`
	PreferredDeliveryMethod *string `json:"preferredDeliveryMethod,omitempty" validate:"omitempty,max=50"`
	PreferredDeliveryType   *string `json:"preferredDeliveryType,omitempty" validate:"omitempty,max=50"`
}

func NewUserService(uow database.UnitOfWork) *UserService {
	return &UserService{uow: uow}
}

func (s *UserService) GetUserByID(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	if err := s.uow.DB(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("user %d: %w", userID, ErrNotFound)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, req *UpdateUserProfileRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	updates := map[string]interface{}{}
	setIfPresent := func(column string, value *string) {
		if value != nil {
			updates[column] = *value
		}
	}
	setIfPresent("first_name", req.FirstName)
	setIfPresent("last_name", req.LastName)
	setIfPresent("email", req.Email)
	setIfPresent("phone", req.Phone)
	setIfPresent("address", req.Address)
	setIfPresent("preferred_delivery_method", req.PreferredDeliveryMethod)
	setIfPresent("preferred_delivery_type", req.PreferredDeliveryType)

	var user models.User
	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("user %d: %w", userID, ErrNotFound)
			}
			return fmt.Errorf("database error: %w", err)
		}

		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(&user).Updates(updates).Error; err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}
		return tx.First(&user, userID).Error
	})
	if err != nil {
		return nil, err
	}

	return &user, nil
}
