// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/utils"
)

type ProductService struct {
	uow database.UnitOfWork
}

type CreateProductRequest struct {
	Name            string          `json:"name" validate:"required,max=255"`
	Description     string          `json:"description"`
	Price           decimal.Decimal `json:"price"`
	Stock           int             `json:"stock" validate:"gte=0"`
	ImageURLs       []string        `json:"imageUrls" validate:"max=10,dive,max=1024"`
	CategoryIDs     []uint          `json:"categoryIds"`
	ManufacturerIDs []uint          `json:"manufacturerIds"`
	MaterialIDs     []uint          `json:"materialIds"`
}

// UpdateProductRequest leaves nil fields untouched. A non-nil id list
// replaces the product's links for that taxonomy.
type UpdateProductRequest struct {
	Name            *string          `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Description     *string          `json:"description,omitempty"`
	Price           *decimal.Decimal `json:"price,omitempty"`
	Stock           *int             `json:"stock,omitempty" validate:"omitempty,gte=0"`
	ImageURLs       []string         `json:"imageUrls,omitempty" validate:"omitempty,max=10,dive,max=1024"`
	CategoryIDs     []uint           `json:"categoryIds,omitempty"`
	ManufacturerIDs []uint           `json:"manufacturerIds,omitempty"`
	MaterialIDs     []uint           `json:"materialIds,omitempty"`
}

func NewProductService(uow database.UnitOfWork) *ProductService {
	return &ProductService{uow: uow}
}

func (s *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := validatePrice(req.Price); err != nil {
		return nil, err
	}

	product := &models.Product{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price.Round(2),
		Stock:       req.Stock,
		ImageURLs:   req.ImageURLs,
	}

	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		if product.Categories, err = loadByIDs[models.Category](tx, "category", req.CategoryIDs); err != nil {
			return err
		}
		if product.Manufacturers, err = loadByIDs[models.Manufacturer](tx, "manufacturer", req.ManufacturerIDs); err != nil {
			return err
		}
		if product.Materials, err = loadByIDs[models.Material](tx, "material", req.MaterialIDs); err != nil {
			return err
		}

		if err := tx.Omit("Categories.*", "Manufacturers.*", "Materials.*").Create(product).Error; err != nil {
			return fmt.Errorf("failed to create product: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithField("product_id", product.ID).Info("Product created")
	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	return findProduct(s.uow.DB(ctx), id)
}

func (s *ProductService) UpdateProduct(ctx context.Context, id uint, req *UpdateProductRequest) (*models.Product, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return nil, err
		}
	}

	var product *models.Product
	err := s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		var err error
		if product, err = findProduct(tx, id); err != nil {
			return err
		}

		updates := map[string]interface{}{}
		if req.Name != nil {
			updates["name"] = *req.Name
		}
		if req.Description != nil {
			updates["description"] = *req.Description
		}
		if req.Price != nil {
			updates["price"] = req.Price.Round(2)
		}
		if req.Stock != nil {
			updates["stock"] = *req.Stock
		}
		if len(updates) > 0 {
			if err := tx.Model(product).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update product: %w", err)
			}
		}
		if req.ImageURLs != nil {
			product.ImageURLs = req.ImageURLs
			if err := tx.Model(product).Select("image_urls").Updates(product).Error; err != nil {
				return fmt.Errorf("failed to update product images: %w", err)
			}
		}

		if req.CategoryIDs != nil {
			if err := replaceLinks[models.Category](tx, product, "Categories", "category", req.CategoryIDs); err != nil {
				return err
			}
		}
		if req.ManufacturerIDs != nil {
			if err := replaceLinks[models.Manufacturer](tx, product, "Manufacturers", "manufacturer", req.ManufacturerIDs); err != nil {
				return err
			}
		}
		if req.MaterialIDs != nil {
			if err := replaceLinks[models.Material](tx, product, "Materials", "material", req.MaterialIDs); err != nil {
				return err
			}
		}

		product, err = findProduct(tx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct removes a product that no order references, along with its
// taxonomy links, reviews and favorites.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	return s.uow.Transaction(ctx, func(tx *gorm.DB) error {
		var product models.Product
		if err := tx.First(&product, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: id %d", ErrProductNotFound, id)
			}
			return fmt.Errorf("database error: %w", err)
		}

		var ordered int64
		if err := tx.Model(&models.OrderItem{}).Where("product_id = ?", id).Count(&ordered).Error; err != nil {
			return fmt.Errorf("database error: %w", err)
		}
		if ordered > 0 {
			return fmt.Errorf("%w: product %q appears in existing orders", ErrConflict, product.Name)
		}

		if err := tx.Where("product_id = ?", id).Delete(&models.Review{}).Error; err != nil {
			return fmt.Errorf("failed to delete reviews: %w", err)
		}
		if err := tx.Where("product_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return fmt.Errorf("failed to delete favorites: %w", err)
		}
		if err := tx.Select("Categories", "Manufacturers", "Materials").Delete(&product).Error; err != nil {
			return fmt.Errorf("failed to delete product: %w", err)
		}
		return nil
	})
}

func validatePrice(price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w: price must be greater than 0", ErrValidation)
	}
	return nil
}

func findProduct(db *gorm.DB, id uint) (*models.Product, error) {
	var product models.Product
	err := db.
		Preload("Categories", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Manufacturers", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		Preload("Materials", func(db *gorm.DB) *gorm.DB { return db.Order("name ASC") }).
		First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// loadByIDs fetches the taxonomy rows for ids and rejects unknown ids.
func loadByIDs[T any](tx *gorm.DB, label string, ids []uint) ([]T, error) {
	unique := make([]uint, 0, len(ids))
	seen := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	if len(unique) == 0 {
		return nil, nil
	}

	var items []T
	if err := tx.Where("id IN ?", unique).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if len(items) != len(unique) {
		return nil, fmt.Errorf("%w: unknown %s id in %v", ErrValidation, label, unique)
	}
	return items, nil
}

func replaceLinks[T any](tx *gorm.DB, product *models.Product, association, label string, ids []uint) error {
	items, err := loadByIDs[T](tx, label, ids)
	if err != nil {
		return err
	}

	assoc := tx.Model(product).Association(association)
	if len(items) == 0 {
		err = assoc.Clear()
	} else {
		err = assoc.Replace(items)
	}
	if err != nil {
		return fmt.Errorf("failed to update %s links: %w", label, err)
	}
	return nil
}
