package models

import (
	"time"

	"github.com/google/uuid"
)

// ProductCategory groups products, with owned sub-categories.
type ProductCategory struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string               `gorm:"column:name;not null;uniqueIndex" json:"name"`
	SubCategories []ProductSubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"sub_categories"`
	IsDeleted     bool                 `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

type ProductSubCategory struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index" json:"-"`
	Name       string    `gorm:"column:name;not null" json:"name"`
}

// ServiceCategory groups service offerings. Sub-categories carry their own
// soft-delete flag because services snapshot them by id+name at creation.
type ServiceCategory struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name          string               `gorm:"column:name;not null;uniqueIndex" json:"name"`
	SubCategories []ServiceSubCategory `gorm:"foreignKey:CategoryID;constraint:OnDelete:CASCADE" json:"sub_categories"`
	IsDeleted     bool                 `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

type ServiceSubCategory struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CategoryID uuid.UUID `gorm:"column:category_id;type:uuid;not null;index" json:"-"`
	Name       string    `gorm:"column:name;not null" json:"name"`
	IsDeleted  bool      `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
}
