package models

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []interface{} {
	return []interface{}{
		&Role{},
		&User{},
		&Profile{},
		&RoleRequest{},
		&Shop{},
		&Warehouse{},
		&Category{},
		&Product{},
		&Order{},
		&CartItem{},
		&WishlistItem{},
		&Notification{},
	}
}

// AutoMigrate creates or updates the schema for all models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
