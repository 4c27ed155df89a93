package orderrepo

import "gorm.io/gorm"

// AutoMigrate creates or updates the "orders" and "order_items" tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&OrderDTO{}, &OrderItemDTO{})
}
