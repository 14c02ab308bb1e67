// internal/repository/named.go
package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/javajoker/storefront-backend/internal/database"
	"github.com/javajoker/storefront-backend/internal/models"
)

// NamedRepository is the persistence surface shared by the catalog taxonomy
// tables. PT is the pointer type of T so gorm can scan into it.
type NamedRepository[T any, PT interface {
	*T
	models.NamedEntity
}] struct {
	uow database.UnitOfWork
}

func NewNamedRepository[T any, PT interface {
	*T
	models.NamedEntity
}](uow database.UnitOfWork) *NamedRepository[T, PT] {
	return &NamedRepository[T, PT]{uow: uow}
}

func (r *NamedRepository[T, PT]) FindAll(ctx context.Context) ([]T, error) {
	var items []T
	if err := r.uow.DB(ctx).Order("name ASC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindByID returns gorm.ErrRecordNotFound when no row matches.
func (r *NamedRepository[T, PT]) FindByID(ctx context.Context, id uint) (*T, error) {
	var item T
	if err := r.uow.DB(ctx).First(&item, id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *NamedRepository[T, PT]) Create(ctx context.Context, name string) (*T, error) {
	var item T
	PT(&item).SetName(name)
	if err := r.uow.DB(ctx).Create(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *NamedRepository[T, PT]) Update(ctx context.Context, id uint, name string) (*T, error) {
	var item T
	err := r.uow.Transaction(ctx, func(tx *gorm.DB) error {
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		PT(&item).SetName(name)
		return tx.Save(&item).Error
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Delete runs guard inside the deleting transaction before the row is
// removed; a non-nil guard error aborts the delete.
func (r *NamedRepository[T, PT]) Delete(ctx context.Context, id uint, guard func(tx *gorm.DB, item *T) error) error {
	return r.uow.Transaction(ctx, func(tx *gorm.DB) error {
		var item T
		if err := tx.First(&item, id).Error; err != nil {
			return err
		}
		if guard != nil {
			if err := guard(tx, &item); err != nil {
				return err
			}
		}
		return tx.Delete(&item).Error
	})
}
