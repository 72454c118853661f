package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base provides a shared foundation for domain repositories.
type Base struct {
	db *gorm.DB
}

// NewBase constructs a Base repository backed by the provided GORM connection.
func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// Rebind returns a Base bound to the supplied transaction. A nil tx returns
// the receiver unchanged.
func (b Base) Rebind(tx *gorm.DB) Base {
	if tx == nil {
		return b
	}
	return Base{db: tx}
}

// DB returns the GORM connection bound to the supplied context (if any).
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Active filters out soft-deleted rows. Every read site opts in explicitly;
// nothing filters behind the caller's back.
func Active(tx *gorm.DB) *gorm.DB {
	return tx.Where("is_deleted = ?", false)
}
