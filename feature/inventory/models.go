package inventory

// Inventory tracks the available stock for one product. A product has at
// most one row; location breakdown lives in the picking subsystem, not here.
type Inventory struct {
	InventoryID       uint `gorm:"primaryKey;column:inventory_id" json:"inventory_id"`
	ProductID         uint `gorm:"column:product_id;uniqueIndex" json:"product_id"`
	QuantityAvailable int  `gorm:"column:quantity_available" json:"quantity_available"`
	AllocatedQuantity int  `gorm:"column:allocated_quantity" json:"allocated_quantity"`
	LocationID        uint `gorm:"column:location_id" json:"location_id"`
}

// TableName overrides the gorm default.
func (Inventory) TableName() string {
	return "inventories"
}
