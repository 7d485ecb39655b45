package inventory

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a product has no inventory row.
	ErrNotFound = errors.New("inventory row not found")
	// ErrQuantityConflict is returned by WriteQuantity when the live
	// quantity no longer matches the expected prior value.
	ErrQuantityConflict = errors.New("inventory quantity conflict")
)

// Store reads and writes per-product available quantities.
type Store struct{}

// NewStore creates an inventory store.
func NewStore() *Store {
	return &Store{}
}

// ReadQuantity returns the available quantity for a product. A product with
// no inventory row reads as zero, matching the aggregate the back office
// reports for never-stocked products.
func (s *Store) ReadQuantity(ctx context.Context, tx *gorm.DB, productID uint) (int, error) {
	var quantity int
	err := tx.WithContext(ctx).
		Model(&Inventory{}).
		Select("COALESCE(SUM(quantity_available), 0)").
		Where("product_id = ?", productID).
		Scan(&quantity).Error
	if err != nil {
		return 0, fmt.Errorf("failed to read quantity for product %d: %w", productID, err)
	}
	return quantity, nil
}

// WriteQuantity sets the available quantity for a product, but only when the
// live value still equals expectedPrior. A compare-and-swap rather than a
// blind overwrite: stock movements that landed between snapshot and write
// surface as ErrQuantityConflict instead of being silently discarded.
func (s *Store) WriteQuantity(ctx context.Context, tx *gorm.DB, productID uint, newQuantity, expectedPrior int) error {
	res := tx.WithContext(ctx).
		Model(&Inventory{}).
		Where("product_id = ? AND quantity_available = ?", productID, expectedPrior).
		Update("quantity_available", newQuantity)
	if res.Error != nil {
		return fmt.Errorf("failed to write quantity for product %d: %w", productID, res.Error)
	}
	if res.RowsAffected == 1 {
		return nil
	}

	// Zero rows touched: either the row is gone or the quantity drifted.
	var count int64
	if err := tx.WithContext(ctx).Model(&Inventory{}).Where("product_id = ?", productID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to inspect inventory for product %d: %w", productID, err)
	}
	if count == 0 {
		return fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	return fmt.Errorf("%w: product %d changed since snapshot (expected %d)", ErrQuantityConflict, productID, expectedPrior)
}
