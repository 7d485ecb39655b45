package integrity

import (
	"context"

	"warehouse-manager/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	db     *gorm.DB
	logger *zap.Logger
}

// NewService creates a new integrity service.
func NewService(db *gorm.DB, logger *zap.Logger) *Service {
	return &Service{
		db:     db,
		logger: logger,
	}
}

// CheckSchema validates that the warehouse tables match the declared models.
func (s *Service) CheckSchema() (*checks.SchemaReport, error) {
	return checks.CheckSchema(s.db)
}

// CheckCycles scans cycle count and inventory rows for inconsistencies.
func (s *Service) CheckCycles(ctx context.Context) (*checks.CycleReport, error) {
	return checks.CheckCycles(ctx, s.db)
}
