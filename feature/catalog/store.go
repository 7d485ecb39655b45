package catalog

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
)

// ErrNotFound is returned when a product does not exist in the catalog.
var ErrNotFound = errors.New("product not found")

// Store reads the product catalog. Writes happen through the back-office
// CRUD surface, which is outside this service; the cycle count engine only
// ever reads.
type Store struct{}

// NewStore creates a catalog store.
func NewStore() *Store {
	return &Store{}
}

// ListActiveProducts returns every product that participates in cycle counts,
// in ascending product id order.
func (s *Store) ListActiveProducts(ctx context.Context, tx *gorm.DB) ([]Product, error) {
	var products []Product
	err := tx.WithContext(ctx).
		Where("active = ?", true).
		Order("product_id ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list active products: %w", err)
	}
	return products, nil
}

// GetProduct returns a single product by id, or ErrNotFound.
func (s *Store) GetProduct(ctx context.Context, tx *gorm.DB, productID uint) (*Product, error) {
	var product Product
	err := tx.WithContext(ctx).First(&product, "product_id = ?", productID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: product %d", ErrNotFound, productID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", productID, err)
	}
	return &product, nil
}
