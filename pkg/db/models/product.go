package models

import (
	"time"

	"github.com/shopspring/decimal"

	dbtypes "github.com/tailorline/storefront/pkg/db/types"
	"github.com/tailorline/storefront/pkg/enums"
)

// Product is a ready-made suit listed in the catalog.
type Product struct {
	ID          int64                    `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                   `gorm:"column:name;not null;uniqueIndex"`
	Category    enums.ProductCategory    `gorm:"column:category;not null;index"`
	Price       decimal.Decimal          `gorm:"column:price;type:decimal(10,2);not null"`
	ImageURLs   dbtypes.JSONList[string] `gorm:"column:image_urls;type:jsonb;not null"`
	Sizes       dbtypes.JSONList[string] `gorm:"column:sizes;type:jsonb;not null"`
	Colors      dbtypes.JSONList[string] `gorm:"column:colors;type:jsonb;not null"`
	Description string                   `gorm:"column:description"`
	Stock       int                      `gorm:"column:stock;not null;default:0"`
	CreatedAt   time.Time                `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time                `gorm:"column:updated_at;autoUpdateTime"`
}
