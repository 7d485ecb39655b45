package checks

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// CycleReport lists data inconsistencies around cycle counts and inventory.
// Every slice is empty when the warehouse is consistent.
type CycleReport struct {
	// PendingWithoutDetails are Pending cycle headers with no detail rows.
	// A header without its detail set is never a usable cycle.
	PendingWithoutDetails []uint `json:"pending_without_details"`
	// OrphanDetails are detail rows whose owning cycle no longer exists.
	OrphanDetails []uint `json:"orphan_details"`
	// DetailsMissingProduct are detail rows of Pending cycles referencing
	// products that left the catalog; these will fail finalize.
	DetailsMissingProduct []uint `json:"details_missing_product"`
	// NegativeInventory are products whose available quantity is below zero.
	NegativeInventory []uint `json:"negative_inventory"`
	// CompletedUnrecorded are Completed cycles carrying details without a
	// recorded count, which should be impossible after a guarded finalize.
	CompletedUnrecorded []uint `json:"completed_unrecorded"`
}

// Consistent reports whether no issues were found.
func (r *CycleReport) Consistent() bool {
	return len(r.PendingWithoutDetails) == 0 &&
		len(r.OrphanDetails) == 0 &&
		len(r.DetailsMissingProduct) == 0 &&
		len(r.NegativeInventory) == 0 &&
		len(r.CompletedUnrecorded) == 0
}

// CheckCycles scans the warehouse tables for cycle count inconsistencies.
func CheckCycles(ctx context.Context, db *gorm.DB) (*CycleReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}
	report := &CycleReport{
		PendingWithoutDetails: []uint{},
		OrphanDetails:         []uint{},
		DetailsMissingProduct: []uint{},
		NegativeInventory:     []uint{},
		CompletedUnrecorded:   []uint{},
	}

	err := db.WithContext(ctx).
		Table("cycle_counts c").
		Select("c.cycle_count_id").
		Where("c.status = ?", "Pending").
		Where("NOT EXISTS (SELECT 1 FROM cycle_count_details d WHERE d.cycle_count_id = c.cycle_count_id)").
		Scan(&report.PendingWithoutDetails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan for partial cycles: %w", err)
	}

	err = db.WithContext(ctx).
		Table("cycle_count_details d").
		Select("d.detail_id").
		Where("NOT EXISTS (SELECT 1 FROM cycle_counts c WHERE c.cycle_count_id = d.cycle_count_id)").
		Scan(&report.OrphanDetails).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan for orphan details: %w", err)
	}

	err = db.WithContext(ctx).
		Table("cycle_count_details d").
		Select("d.detail_id").
		Joins("JOIN cycle_counts c ON c.cycle_count_id = d.cycle_count_id").
		Where("c.status = ?", "Pending").
		Where("NOT EXISTS (SELECT 1 FROM products p WHERE p.product_id = d.product_id)").
		Scan(&report.DetailsMissingProduct).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan for details with missing products: %w", err)
	}

	err = db.WithContext(ctx).
		Table("inventories").
		Select("product_id").
		Where("quantity_available < 0").
		Scan(&report.NegativeInventory).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan for negative inventory: %w", err)
	}

	err = db.WithContext(ctx).
		Table("cycle_counts c").
		Select("DISTINCT c.cycle_count_id").
		Joins("JOIN cycle_count_details d ON d.cycle_count_id = c.cycle_count_id").
		Where("c.status = ?", "Completed").
		Where("d.counted_quantity IS NULL").
		Scan(&report.CompletedUnrecorded).Error
	if err != nil {
		return nil, fmt.Errorf("failed to scan for unrecorded completed cycles: %w", err)
	}

	return report, nil
}
