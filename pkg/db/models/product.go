package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is a catalog item sold directly or consumed as service material.
type Product struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name         string          `gorm:"column:name;not null" json:"name"`
	Description  *string         `gorm:"column:description" json:"description,omitempty"`
	Price        decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	PriceHistory []PriceHistory  `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE" json:"price_history"`
	Images       pq.StringArray  `gorm:"column:images;type:text[]" json:"images"`
	CategoryID   uuid.UUID       `gorm:"column:category_id;type:uuid;not null;index" json:"category_id"`
	SubCategory  *uuid.UUID      `gorm:"column:sub_category_id;type:uuid" json:"sub_category_id,omitempty"`
	IsDeleted    bool            `gorm:"column:is_deleted;not null;default:false;index" json:"-"`
	Version      int64           `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// PriceHistory records each price a product has carried.
type PriceHistory struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null;index" json:"-"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	DateChanged time.Time       `gorm:"column:date_changed;not null" json:"date_changed"`
}

func (PriceHistory) TableName() string {
	return "product_price_history"
}
