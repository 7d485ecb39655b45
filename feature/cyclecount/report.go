package cyclecount

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"warehouse-manager/feature/catalog"
	"warehouse-manager/feature/cyclecount/models"

	"github.com/minio/minio-go/v7"
	"gorm.io/gorm"
)

// ReportLine is one reconciled product in an adjustment report.
type ReportLine struct {
	ProductID       uint   `json:"product_id"`
	SKU             string `json:"sku"`
	Name            string `json:"name"`
	SystemQuantity  int    `json:"system_quantity"`
	CountedQuantity int    `json:"counted_quantity"`
	Variance        int    `json:"variance"`
}

// Report is the archived summary of a completed cycle count.
type Report struct {
	CycleName     string       `json:"cycle_name"`
	FinalizedBy   *uint        `json:"finalized_by,omitempty"`
	FinalizedAt   *time.Time   `json:"finalized_at,omitempty"`
	GeneratedAt   time.Time    `json:"generated_at"`
	TotalProducts int          `json:"total_products"`
	TotalVariance int          `json:"total_variance"`
	Lines         []ReportLine `json:"lines"`
}

// BuildReport assembles the adjustment report for a Completed cycle.
func (s *Service) BuildReport(ctx context.Context, cycleID uint) (*Report, error) {
	var cycle models.CycleCount
	err := s.db.WithContext(ctx).First(&cycle, "cycle_count_id = ?", cycleID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: cycle count %d", ErrNotFound, cycleID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load cycle %d: %w", cycleID, err)
	}
	if cycle.Status != models.StatusCompleted {
		return nil, fmt.Errorf("%w: cycle count %s is not completed", ErrInvalidState, cycle.CycleName)
	}

	var adjustments []models.CycleCountAdjustment
	if err := s.db.WithContext(ctx).Where("cycle_count_id = ?", cycleID).Order("product_id ASC").Find(&adjustments).Error; err != nil {
		return nil, fmt.Errorf("failed to load adjustments for cycle %d: %w", cycleID, err)
	}

	report := &Report{
		CycleName:   cycle.CycleName,
		FinalizedBy: cycle.FinalizedBy,
		FinalizedAt: cycle.FinalizedAt,
		GeneratedAt: time.Now(),
		Lines:       make([]ReportLine, 0, len(adjustments)),
	}
	for _, adj := range adjustments {
		line := ReportLine{
			ProductID:       adj.ProductID,
			SystemQuantity:  adj.SystemQuantity,
			CountedQuantity: adj.CountedQuantity,
			Variance:        adj.Variance,
		}
		// Products removed after completion still appear in the report,
		// just without catalog metadata.
		if product, err := s.catalog.GetProduct(ctx, s.db, adj.ProductID); err == nil {
			line.SKU = product.SKU
			line.Name = product.Name
		} else if !errors.Is(err, catalog.ErrNotFound) {
			return nil, err
		}
		report.Lines = append(report.Lines, line)
		report.TotalVariance += adj.Variance
	}
	report.TotalProducts = len(report.Lines)

	return report, nil
}

// ExportReport archives the adjustment report of a Completed cycle as JSON
// in the report bucket and returns the object name.
func (s *Service) ExportReport(ctx context.Context, cycleID uint) (string, error) {
	report, err := s.BuildReport(ctx, cycleID)
	if err != nil {
		return "", err
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}

	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return "", fmt.Errorf("failed to check report bucket: %w", err)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return "", fmt.Errorf("failed to create report bucket: %w", err)
		}
	}

	objectName := fmt.Sprintf("cyclecounts/%s.json", report.CycleName)
	_, err = s.client.PutObject(
		ctx,
		s.bucket,
		objectName,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: "application/json"},
	)
	if err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}

	return objectName, nil
}
