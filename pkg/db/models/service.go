package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rexbugcalao2025-netizen/fmh-backend/pkg/enums"
)

// Service is a catalog offering. Category and sub-category are snapshotted
// by id and name at creation time; renaming a category later does not
// retroactively update existing services.
type Service struct {
	ID              uuid.UUID          `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name            string             `gorm:"column:name;not null;index" json:"name"`
	Description     *string            `gorm:"column:description" json:"description,omitempty"`
	CategoryID      uuid.UUID          `gorm:"column:category_id;type:uuid;not null;index" json:"category_id"`
	CategoryName    string             `gorm:"column:category_name;not null" json:"category_name"`
	SubCategoryID   *uuid.UUID         `gorm:"column:sub_category_id;type:uuid" json:"sub_category_id,omitempty"`
	SubCategoryName *string            `gorm:"column:sub_category_name" json:"sub_category_name,omitempty"`
	Duration        int                `gorm:"column:duration;not null" json:"duration"`
	DurationUnit    enums.DurationUnit `gorm:"column:duration_unit;not null" json:"duration_unit"`
	LaborPrice      decimal.Decimal    `gorm:"column:labor_price;type:numeric(12,2);not null;default:0" json:"labor_price"`
	Materials       []ServiceMaterial  `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE" json:"materials"`
	TotalPrice      decimal.Decimal    `gorm:"column:total_price;type:numeric(12,2);not null;default:0" json:"total_price"`
	DateOffered     time.Time          `gorm:"column:date_offered;not null" json:"date_offered"`
	DateEnded       *time.Time         `gorm:"column:date_ended" json:"date_ended,omitempty"`
	IsActive        bool               `gorm:"column:is_active;not null;default:true;index" json:"is_active"`
	CreatedBy       *uuid.UUID         `gorm:"column:created_by;type:uuid" json:"created_by,omitempty"`
	Version         int64              `gorm:"column:version;not null;default:0" json:"-"`
	CreatedAt       time.Time          `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time          `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// ServiceMaterial is one product consumed by a service, priced at snapshot.
type ServiceMaterial struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ServiceID   uuid.UUID       `gorm:"column:service_id;type:uuid;not null;index" json:"-"`
	ProductID   uuid.UUID       `gorm:"column:product_id;type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"column:product_name;not null" json:"product_name"`
	Quantity    int             `gorm:"column:quantity;not null" json:"quantity"`
	Price       decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Subtotal    decimal.Decimal `gorm:"column:subtotal;type:numeric(12,2);not null;default:0" json:"subtotal"`
}
