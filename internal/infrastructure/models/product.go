package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"type:varchar(255);not null"`
	Description *string         `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(16,2);not null;check:chk_products_price,price >= 0"`
	Stock       int             `gorm:"not null;default:0;check:chk_products_stock,stock >= 0"`
	ShopID      *int64          `gorm:"index;check:chk_products_holder,(shop_id IS NULL) <> (warehouse_id IS NULL)"`
	WarehouseID *int64          `gorm:"index"`
	CategoryID  *int64          `gorm:"index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Category struct {
	ID          int64  `gorm:"primaryKey;autoIncrement:false"`
	Name        string `gorm:"type:varchar(100);uniqueIndex;not null"`
	CreatedByID int64  `gorm:"not null"`
	UpdatedByID *int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
