package integrity

import (
	"warehouse-manager/core/logger"
	"warehouse-manager/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/cycles", h.HandleCycleCheck)
}

// HandleIntegrityCheck triggers all integrity checks.
// @Summary Run All Integrity Checks
// @Description Performs all available integrity checks (Schema, Cycles).
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := make(map[string]interface{})

	// Schema
	if schemaReport, err := h.service.CheckSchema(); err != nil {
		report["schema"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["schema"] = schemaReport
	}

	// Cycles
	if cycleReport, err := h.service.CheckCycles(ctx); err != nil {
		report["cycles"] = map[string]interface{}{"status": "error", "error": err.Error()}
	} else {
		report["cycles"] = cycleReport
	}

	return c.JSON(report)
}

// HandleSchemaCheck checks warehouse schema integrity.
// @Summary Check Warehouse Schema
// @Description Checks if the warehouse database schema matches the expected models.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting warehouse schema check")

	report, err := h.service.CheckSchema()
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleCycleCheck checks cycle count data consistency.
// @Summary Check Cycle Count Data
// @Description Scans cycle counts, details and inventory rows for inconsistent state.
// @Tags integrity
// @Accept json
// @Produce json
// @Success 200 {object} checks.CycleReport "Cycle Check Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/cycles [get]
func (h *Handler) HandleCycleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Starting cycle count data check")

	report, err := h.service.CheckCycles(c.Context())
	if err != nil {
		l.Error("Cycle data check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	if !report.Consistent() {
		l.Warn("Cycle count inconsistencies detected",
			zap.Int("partial_cycles", len(report.PendingWithoutDetails)),
			zap.Int("orphan_details", len(report.OrphanDetails)))
	}

	return c.JSON(report)
}
