package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Order struct {
	ID        int64           `gorm:"primaryKey;autoIncrement"`
	UserID    int64           `gorm:"not null;index"`
	ProductID int64           `gorm:"not null;index"`
	ShopID    *int64          `gorm:"index"`
	Quantity  int             `gorm:"not null;check:chk_orders_quantity,quantity > 0"`
	Total     decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	Status    string          `gorm:"type:varchar(20);not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CartItem struct {
	UserID    int64    `gorm:"primaryKey;autoIncrement:false"`
	ProductID int64    `gorm:"primaryKey;autoIncrement:false"`
	Quantity  int      `gorm:"not null"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CartItem) TableName() string {
	return "cart_items"
}

type WishlistItem struct {
	UserID    int64    `gorm:"primaryKey;autoIncrement:false"`
	ProductID int64    `gorm:"primaryKey;autoIncrement:false"`
	Product   *Product `gorm:"foreignKey:ProductID"`
	CreatedAt time.Time
}

func (WishlistItem) TableName() string {
	return "wishlist_items"
}

type Notification struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	UserID    int64  `gorm:"not null;index"`
	Message   string `gorm:"type:text;not null"`
	Type      string `gorm:"type:varchar(50);not null"`
	CreatedAt time.Time
}
