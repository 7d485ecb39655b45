package cyclecount

import (
	"warehouse-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	db      *gorm.DB
}

// NewFeature creates the cycle count feature.
func NewFeature(db *gorm.DB, client storage.Client, bucket string, logger *zap.Logger, cat Catalog, inv InventoryStore, sink AuditSink) *Feature {
	svc := NewService(db, client, bucket, logger, cat, inv, sink)
	return &Feature{service: svc, handler: NewHandler(svc), db: db}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "cyclecount"
}

// IsEnabled checks if the feature is enabled. The engine cannot run without
// the warehouse database.
func (f *Feature) IsEnabled() bool {
	return f.db != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}

// Service exposes the underlying service for CLI commands.
func (f *Feature) Service() *Service {
	return f.service
}
