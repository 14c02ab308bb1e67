package database

import (
	"context"

	"gorm.io/gorm"
)

// UnitOfWork groups persistence operations that commit or roll back together.
type UnitOfWork interface {
	// DB returns a handle bound to ctx for work outside a transaction.
	DB(ctx context.Context) *gorm.DB
	// Transaction runs fn in one transaction. A nil return commits; an error
	// or panic rolls back (the panic is re-raised).
	Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type gormUnitOfWork struct {
	db *gorm.DB
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &gormUnitOfWork{db: db}
}

func (u *gormUnitOfWork) DB(ctx context.Context) *gorm.DB {
	return u.db.WithContext(ctx)
}

func (u *gormUnitOfWork) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return WithTransaction(u.db.WithContext(ctx), fn)
}

// Transaction helper
func WithTransaction(db *gorm.DB, fn func(*gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit().Error
}
