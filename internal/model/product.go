package model

import "github.com/google/uuid"

type Product struct {
	BaseModel
	SKU         string `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Barcode     string `gorm:"type:varchar(50);uniqueIndex;not null" json:"barcode" validate:"required"`
	Name        string `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	Brand       string `gorm:"type:varchar(100)" json:"brand"`

	UnitPrice float64 `gorm:"not null" json:"unit_price" validate:"gte=0"`
	CostPrice float64 `gorm:"not null" json:"cost_price" validate:"gte=0"`

	StockQuantity int `gorm:"default:0" json:"stock_quantity" validate:"gte=0"`
	ReorderPoint  int `gorm:"default:0" json:"reorder_point"`
	MaxStock      int `gorm:"default:0" json:"max_stock"`

	CategoryID *uuid.UUID `gorm:"type:uuid;index" json:"category_id"`
	Category   *Category  `gorm:"foreignKey:CategoryID" json:"category,omitempty"`

	IsActive      bool `gorm:"default:true" json:"is_active"`
	IsWeighted    bool `gorm:"default:false" json:"is_weighted"`
	AgeRestricted bool `gorm:"default:false" json:"age_restricted"`
	MinimumAge    *int `json:"minimum_age,omitempty"`
}

// LowStock reports whether the product is at or below its reorder point.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.ReorderPoint
}

// OutOfStock reports whether the product has no stock at all.
func (p *Product) OutOfStock() bool {
	return p.StockQuantity == 0
}

type Category struct {
	BaseModel
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name" validate:"required"`
	Description string `gorm:"type:text" json:"description"`
	IsActive    bool   `gorm:"default:true" json:"is_active"`
}
