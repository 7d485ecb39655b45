package cyclecount

import (
	"context"
	"errors"
	"fmt"
	"time"

	"warehouse-manager/core/storage"
	"warehouse-manager/feature/audit"
	"warehouse-manager/feature/catalog"
	"warehouse-manager/feature/cyclecount/models"
	"warehouse-manager/feature/inventory"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Catalog is the product set snapshotted at cycle start.
type Catalog interface {
	ListActiveProducts(ctx context.Context, tx *gorm.DB) ([]catalog.Product, error)
	GetProduct(ctx context.Context, tx *gorm.DB, productID uint) (*catalog.Product, error)
}

// InventoryStore holds the live per-product quantities the engine snapshots
// and reconciles.
type InventoryStore interface {
	ReadQuantity(ctx context.Context, tx *gorm.DB, productID uint) (int, error)
	WriteQuantity(ctx context.Context, tx *gorm.DB, productID uint, newQuantity, expectedPrior int) error
}

// AuditSink records administrative actions alongside the mutations they
// describe, in the same transaction.
type AuditSink interface {
	Append(ctx context.Context, tx *gorm.DB, userID uint, actionType, entityType, description string) error
}

// Service implements the cycle count workflow: snapshot, staged counting,
// and exactly-once reconciliation into the inventory ledger.
type Service struct {
	db        *gorm.DB
	client    storage.Client
	bucket    string
	logger    *zap.Logger
	catalog   Catalog
	inventory InventoryStore
	audit     AuditSink
}

// NewService creates a cycle count service.
func NewService(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger, cat Catalog, inv InventoryStore, sink AuditSink) *Service {
	return &Service{
		db:        db,
		client:    client,
		bucket:    bucket,
		logger:    logger,
		catalog:   cat,
		inventory: inv,
		audit:     sink,
	}
}

// StartCycle opens a new cycle count for the current quarter. It snapshots
// the active catalog into one detail row per product, with the system
// quantity read at this moment as the fixed baseline.
//
// The header and its full detail set are created in one transaction: either
// all of it becomes visible or none of it, including when ctx is cancelled
// mid-snapshot. At most one cycle may be open, and at most one cycle may
// exist per quarter.
func (s *Service) StartCycle(ctx context.Context, userID uint) (uint, error) {
	quarter := QuarterOf(time.Now())

	var cycleID uint
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var pending int64
		if err := tx.Model(&models.CycleCount{}).Where("status = ?", models.StatusPending).Count(&pending).Error; err != nil {
			return fmt.Errorf("failed to check for open cycles: %w", err)
		}
		if pending > 0 {
			return fmt.Errorf("%w: a cycle count is already open", ErrInvalidState)
		}

		cycle := models.CycleCount{
			CycleName: quarter.Name,
			StartDate: quarter.Start,
			EndDate:   quarter.End,
			Status:    models.StatusPending,
			CreatedBy: userID,
			CreatedAt: time.Now(),
		}
		if err := tx.Create(&cycle).Error; err != nil {
			if isDuplicateKeyErr(err) {
				// A concurrent start won the quarter, or the quarter was
				// already counted.
				return fmt.Errorf("%w: cycle count %s already exists", ErrInvalidState, quarter.Name)
			}
			return fmt.Errorf("failed to create cycle header: %w", err)
		}

		products, err := s.catalog.ListActiveProducts(ctx, tx)
		if err != nil {
			return err
		}
		if len(products) == 0 {
			return fmt.Errorf("%w: no active products to count", ErrValidation)
		}

		details := make([]models.CycleCountDetail, 0, len(products))
		for _, p := range products {
			qty, err := s.inventory.ReadQuantity(ctx, tx, p.ProductID)
			if err != nil {
				return err
			}
			details = append(details, models.CycleCountDetail{
				CycleCountID:   cycle.CycleCountID,
				ProductID:      p.ProductID,
				SystemQuantity: qty,
			})
		}
		if err := tx.Create(&details).Error; err != nil {
			return fmt.Errorf("failed to create cycle details: %w", err)
		}

		msg := fmt.Sprintf("Started cycle count %s over %d products", quarter.Name, len(products))
		if err := s.audit.Append(ctx, tx, userID, audit.ActionCreate, "CycleCount", msg); err != nil {
			return err
		}

		cycleID = cycle.CycleCountID
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("Cycle count started",
		zap.Uint("cycle_id", cycleID),
		zap.String("cycle_name", quarter.Name),
		zap.Uint("user_id", userID),
	)
	return cycleID, nil
}

// RecordCount stages a physically counted quantity on one detail row. It
// never touches inventory; reconciliation happens only at finalize.
//
// Recording against a Completed cycle fails with ErrInvalidState. Repeated
// recounts of the same row are last-write-wins, but a recount that raced
// another writer fails with ErrConflict instead of silently discarding it.
func (s *Service) RecordCount(ctx context.Context, detailID uint, countedQuantity int, userID uint) error {
	if countedQuantity < 0 {
		return fmt.Errorf("%w: counted quantity must not be negative", ErrValidation)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var detail models.CycleCountDetail
		if err := tx.First(&detail, "detail_id = ?", detailID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cycle count detail %d", ErrNotFound, detailID)
			}
			return fmt.Errorf("failed to load detail %d: %w", detailID, err)
		}

		var cycle models.CycleCount
		if err := tx.First(&cycle, "cycle_count_id = ?", detail.CycleCountID).Error; err != nil {
			return fmt.Errorf("failed to load cycle %d: %w", detail.CycleCountID, err)
		}
		if cycle.Status != models.StatusPending {
			return fmt.Errorf("%w: cycle count %s is already %s", ErrInvalidState, cycle.CycleName, cycle.Status)
		}

		now := time.Now()
		res := tx.Model(&models.CycleCountDetail{}).
			Where("detail_id = ? AND version = ?", detailID, detail.Version).
			Updates(map[string]any{
				"counted_quantity": countedQuantity,
				"recorded_by":      userID,
				"recorded_at":      now,
				"version":          detail.Version + 1,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to record count on detail %d: %w", detailID, res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: detail %d was recounted concurrently", ErrConflict, detailID)
		}

		msg := fmt.Sprintf("Recorded count %d for detail %d (product %d)", countedQuantity, detailID, detail.ProductID)
		return s.audit.Append(ctx, tx, userID, audit.ActionUpdate, "CycleCountDetail", msg)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Count recorded",
		zap.Uint("detail_id", detailID),
		zap.Int("counted_quantity", countedQuantity),
		zap.Uint("user_id", userID),
	)
	return nil
}

// FinalizeCycle reconciles every detail row into the inventory ledger and
// closes the cycle, exactly once.
//
// Rows are processed in ascending detail id order. Each inventory write is a
// compare-and-swap against the snapshot quantity, so stock that moved during
// the counting window fails the finalize with ErrConflict instead of being
// overwritten. The status flip is a conditional update verified to have
// touched exactly one row; a lost finalize race also fails with ErrConflict.
// Everything runs in one transaction: any failure leaves the cycle Pending
// and inventory untouched.
func (s *Service) FinalizeCycle(ctx context.Context, cycleID uint, userID uint) error {
	var cycleName string
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var cycle models.CycleCount
		if err := tx.First(&cycle, "cycle_count_id = ?", cycleID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: cycle count %d", ErrNotFound, cycleID)
			}
			return fmt.Errorf("failed to load cycle %d: %w", cycleID, err)
		}
		if cycle.Status != models.StatusPending {
			return fmt.Errorf("%w: cycle count %s is already %s", ErrInvalidState, cycle.CycleName, cycle.Status)
		}
		cycleName = cycle.CycleName

		var details []models.CycleCountDetail
		if err := tx.Where("cycle_count_id = ?", cycleID).Order("detail_id ASC").Find(&details).Error; err != nil {
			return fmt.Errorf("failed to load details for cycle %d: %w", cycleID, err)
		}
		if len(details) == 0 {
			// A header without its detail set is the invalid partial state;
			// it must never reconcile.
			return fmt.Errorf("%w: cycle count %s has no detail rows", ErrInvalidState, cycle.CycleName)
		}

		// Every row needs a recorded count before anything is applied.
		for _, d := range details {
			if d.CountedQuantity == nil {
				return fmt.Errorf("%w: detail %d (product %d) has no recorded count", ErrValidation, d.DetailID, d.ProductID)
			}
		}

		now := time.Now()
		adjustments := make([]models.CycleCountAdjustment, 0, len(details))
		for _, d := range details {
			product, err := s.catalog.GetProduct(ctx, tx, d.ProductID)
			if err != nil {
				if errors.Is(err, catalog.ErrNotFound) {
					return fmt.Errorf("%w: product %d referenced by detail %d no longer exists", ErrNotFound, d.ProductID, d.DetailID)
				}
				return err
			}

			counted := *d.CountedQuantity
			variance := counted - d.SystemQuantity

			if err := s.inventory.WriteQuantity(ctx, tx, d.ProductID, counted, d.SystemQuantity); err != nil {
				switch {
				case errors.Is(err, inventory.ErrNotFound):
					return fmt.Errorf("%w: no inventory row for product %d", ErrNotFound, d.ProductID)
				case errors.Is(err, inventory.ErrQuantityConflict):
					return fmt.Errorf("%w: inventory for product %d drifted since snapshot", ErrConflict, d.ProductID)
				default:
					return err
				}
			}

			adjustments = append(adjustments, models.CycleCountAdjustment{
				CycleCountID:    cycleID,
				ProductID:       d.ProductID,
				SystemQuantity:  d.SystemQuantity,
				CountedQuantity: counted,
				Variance:        variance,
				CreatedAt:       now,
			})

			if variance != 0 {
				msg := fmt.Sprintf("Adjusted quantity of %s: system %d, counted %d (variance %+d)", product.SKU, d.SystemQuantity, counted, variance)
				if err := s.audit.Append(ctx, tx, userID, audit.ActionUpdate, "CycleCountDetail", msg); err != nil {
					return err
				}
			}
		}

		if err := tx.Create(&adjustments).Error; err != nil {
			return fmt.Errorf("failed to persist adjustments for cycle %d: %w", cycleID, err)
		}

		// Conditional flip guards against a concurrent finalize: only the
		// caller that moves the row out of Pending gets to commit.
		res := tx.Model(&models.CycleCount{}).
			Where("cycle_count_id = ? AND status = ?", cycleID, models.StatusPending).
			Updates(map[string]any{
				"status":       models.StatusCompleted,
				"finalized_by": userID,
				"finalized_at": now,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to complete cycle %d: %w", cycleID, res.Error)
		}
		if res.RowsAffected != 1 {
			return fmt.Errorf("%w: cycle count %d was finalized concurrently", ErrConflict, cycleID)
		}

		msg := fmt.Sprintf("Finalized cycle count %s (%d products reconciled)", cycle.CycleName, len(details))
		return s.audit.Append(ctx, tx, userID, audit.ActionUpdate, "CycleCount", msg)
	})
	if err != nil {
		return err
	}

	s.logger.Info("Cycle count finalized",
		zap.Uint("cycle_id", cycleID),
		zap.String("cycle_name", cycleName),
		zap.Uint("user_id", userID),
	)
	return nil
}

// GetCycle returns a cycle header and its detail rows.
func (s *Service) GetCycle(ctx context.Context, cycleID uint) (*models.CycleCount, []models.CycleCountDetail, error) {
	var cycle models.CycleCount
	err := s.db.WithContext(ctx).First(&cycle, "cycle_count_id = ?", cycleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil, fmt.Errorf("%w: cycle count %d", ErrNotFound, cycleID)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load cycle %d: %w", cycleID, err)
	}

	var details []models.CycleCountDetail
	if err := s.db.WithContext(ctx).Where("cycle_count_id = ?", cycleID).Order("detail_id ASC").Find(&details).Error; err != nil {
		return nil, nil, fmt.Errorf("failed to load details for cycle %d: %w", cycleID, err)
	}
	return &cycle, details, nil
}
