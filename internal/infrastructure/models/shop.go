package models

import (
	"time"
)

type Shop struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Description *string `gorm:"type:text"`
	OwnerID     int64   `gorm:"not null;index"`
	Status      string  `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Warehouse struct {
	ID          int64   `gorm:"primaryKey;autoIncrement"`
	SupplierID  int64   `gorm:"not null;uniqueIndex"`
	Name        string  `gorm:"type:varchar(255);not null"`
	Location    *string `gorm:"type:varchar(255)"`
	Description *string `gorm:"type:text"`
	Icon        *string `gorm:"column:warehouse_icon;type:varchar(500)"`
	Capacity    *int
	Status      string `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
