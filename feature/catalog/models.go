package catalog

import "time"

// Product is a row of the warehouse product catalog.
type Product struct {
	ProductID    uint   `gorm:"primaryKey;column:product_id" json:"product_id"`
	SKU          string `gorm:"column:sku;size:64;uniqueIndex" json:"sku"`
	SerialNumber string `gorm:"column:serial_number;size:64" json:"serial_number"`
	Name         string `gorm:"column:name;size:255" json:"name"`
	// Active marks products that participate in cycle counts. Retired
	// products keep their rows for order history but are never snapshotted.
	Active    bool      `gorm:"column:active;default:true" json:"active"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the gorm default.
func (Product) TableName() string {
	return "products"
}
