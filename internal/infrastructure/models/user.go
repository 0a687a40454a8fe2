package models

import (
	"time"
)

type Role struct {
	ID        int64  `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(50);uniqueIndex;not null"`
	CreatedAt time.Time
}

type User struct {
	ID             int64    `gorm:"primaryKey;autoIncrement"`
	Username       string   `gorm:"type:varchar(50);uniqueIndex;not null"`
	Email          *string  `gorm:"type:varchar(255)"`
	Phone          *string  `gorm:"type:varchar(20)"`
	PasswordHash   string   `gorm:"type:varchar(255);not null"`
	RoleID         int64    `gorm:"not null;index"`
	ProfilePicture *string  `gorm:"type:varchar(500)"`
	Profile        *Profile `gorm:"foreignKey:UserID"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type Profile struct {
	ID        int64   `gorm:"primaryKey;autoIncrement"`
	UserID    int64   `gorm:"uniqueIndex;not null"`
	Name      *string `gorm:"type:varchar(100)"`
	Address   *string `gorm:"type:varchar(255)"`
	City      *string `gorm:"type:varchar(100)"`
	Country   *string `gorm:"type:varchar(100)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type RoleRequest struct {
	ID            int64  `gorm:"primaryKey;autoIncrement"`
	UserID        int64  `gorm:"not null;index;uniqueIndex:idx_role_requests_one_pending,where:status = 'PENDING'"`
	RequestedRole string `gorm:"type:varchar(50);not null"`
	Status        string `gorm:"type:varchar(20);not null;default:'PENDING'"`
	AdminID       *int64
	User          *User `gorm:"foreignKey:UserID"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
