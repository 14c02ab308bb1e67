package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
	"github.com/javajoker/storefront-backend/internal/repository"
)

type NamedEntityRequest struct {
	Name string `json:"name" validate:"required,max=255"`
}

// DeleteGuard vetoes deletion of a catalog entity. It runs inside the
// deleting transaction.
type DeleteGuard[T any] func(tx *gorm.DB, item *T) error

// CatalogService exposes list/create/update/delete over one taxonomy table.
type CatalogService[T any, PT interface {
	*T
	models.NamedEntity
}] struct {
	label string
	repo  *repository.NamedRepository[T, PT]
	guard DeleteGuard[T]
}

func NewCatalogService[T any, PT interface {
	*T
	models.NamedEntity
}](label string, uow database.UnitOfWork, guard DeleteGuard[T]) *CatalogService[T, PT] {
	return &CatalogService[T, PT]{
		label: label,
		repo:  repository.NewNamedRepository[T, PT](uow),
		guard: guard,
	}
}

func NewCategoryService(uow database.UnitOfWork) *CatalogService[models.Category, *models.Category] {
	return NewCatalogService[models.Category, *models.Category]("category", uow, categoryInUse)
}

func NewManufacturerService(uow database.UnitOfWork) *CatalogService[models.Manufacturer, *models.Manufacturer] {
	return NewCatalogService[models.Manufacturer, *models.Manufacturer]("manufacturer", uow, nil)
}

func NewMaterialService(uow database.UnitOfWork) *CatalogService[models.Material, *models.Material] {
	return NewCatalogService[models.Material, *models.Material]("material", uow, nil)
}

// categoryInUse refuses to delete a category that products still reference.
func categoryInUse(tx *gorm.DB, category *models.Category) error {
	var attached int64
	if err := tx.Table("product_categories").
		Where("category_id = ?", category.ID).
		Count(&attached).Error; err != nil {
		return fmt.Errorf("database error: %w", err)
	}
	if attached > 0 {
		return fmt.Errorf("%w: category %q is used by %d product(s)", ErrConflict, category.Name, attached)
	}
	return nil
}

func (s *CatalogService[T, PT]) Label() string {
	return s.label
}

func (s *CatalogService[T, PT]) List(ctx context.Context) ([]T, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return items, nil
}

func (s *CatalogService[T, PT]) Get(ctx context.Context, id uint) (*T, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, s.translate(id, err)
	}
	return item, nil
}

func (s *CatalogService[T, PT]) Create(ctx context.Context, req *NamedEntityRequest) (*T, error) {
	name, err := s.validName(req)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Create(ctx, name)
	if err != nil {
		return nil, s.translate(0, err)
	}
	return item, nil
}

func (s *CatalogService[T, PT]) Update(ctx context.Context, id uint, req *NamedEntityRequest) (*T, error) {
	name, err := s.validName(req)
	if err != nil {
		return nil, err
	}

	item, err := s.repo.Update(ctx, id, name)
	if err != nil {
		return nil, s.translate(id, err)
	}
	return item, nil
}

func (s *CatalogService[T, PT]) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id, s.guard); err != nil {
		return s.translate(id, err)
	}
	return nil
}

func (s *CatalogService[T, PT]) validName(req *NamedEntityRequest) (string, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return "", fmt.Errorf("%w: %s name is required", ErrValidation, s.label)
	}
	if len(name) > 255 {
		return "", fmt.Errorf("%w: %s name is too long", ErrValidation, s.label)
	}
	return name, nil
}

func (s *CatalogService[T, PT]) translate(id uint, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %d: %w", s.label, id, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%w: %s with this name already exists", ErrConflict, s.label)
	case errors.Is(err, ErrConflict), errors.Is(err, ErrValidation):
		return err
	default:
		return fmt.Errorf("database error: %w", err)
	}
}
