package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
)

type FavoriteService struct {
	uow database.UnitOfWork
}

func NewFavoriteService(uow database.UnitOfWork) *FavoriteService {
	return &FavoriteService{uow: uow}
}

func (s *FavoriteService) AddFavorite(ctx context.Context, userID, productID uint) (*models.Favorite, error) {
	favorite := &models.Favorite{UserID: userID, ProductID: productID}

	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := ensureProductExists(tx, productID); err != nil {
			return err
		}

		var existing int64
		if err := tx.Model(&models.Favorite{}).
			Where("user_id = ? AND product_id = ?", userID, productID).
			Count(&existing).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if existing > 0 {
			return fmt.Errorf("%w: product is already in favorites", ErrConflict)
		}

		if err := tx.Create(favorite).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return fmt.Errorf("%w: product is already in favorites", ErrConflict)
			}
			return fmt.Errorf("failed to add favorite: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return favorite, nil
}

// RemoveFavorite deletes the pair if present and reports how many rows went.
func (s *FavoriteService) RemoveFavorite(ctx context.Context, userID, productID uint) (int64, error) {
	result := s.uow.DB(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// ListFavorites returns the user's favorite products, most recently added first.
func (s *FavoriteService) ListFavorites(ctx context.Context, userID uint) ([]models.Product, error) {
	var products []models.Product
	err := s.uow.DB(ctx).
		Select("products.*").
		Joins("JOIN favorites ON favorites.product_id = products.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC, products.id DESC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return products, nil
}
