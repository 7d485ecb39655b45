package cyclecount

import (
	"errors"

	"warehouse-manager/core/logger"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var validate = validator.New()

// Handler handles HTTP requests for cycle counts.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the cycle count routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/cyclecount")
	group.Post("/start", h.HandleStartCycle)
	group.Get("/:cycleId", h.HandleGetCycle)
	group.Put("/details/:detailId", h.HandleRecordCount)
	group.Post("/:cycleId/finalize", h.HandleFinalizeCycle)
	group.Post("/:cycleId/export", h.HandleExportReport)
}

type startCycleRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

type recordCountRequest struct {
	CountedQuantity *int `json:"counted_quantity" validate:"required,gte=0"`
	UserID          uint `json:"user_id" validate:"required"`
}

type finalizeCycleRequest struct {
	UserID uint `json:"user_id" validate:"required"`
}

// statusOf maps the engine's error taxonomy onto HTTP status codes.
// Anything outside the taxonomy is a persistence failure.
func statusOf(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidState), errors.Is(err, ErrConflict):
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// HandleStartCycle opens a new cycle count for the current quarter.
// @Summary Start Cycle Count
// @Description Snapshots the active catalog into a new pending cycle count.
// @Tags cyclecount
// @Accept json
// @Produce json
// @Success 201 {object} map[string]interface{} "Created cycle id"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 409 {object} map[string]string "Cycle Already Open"
// @Router /cyclecount/start [post]
func (h *Handler) HandleStartCycle(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req startCycleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	cycleID, err := h.service.StartCycle(c.Context(), req.UserID)
	if err != nil {
		l.Error("Start cycle failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"cycle_id": cycleID})
}

// HandleGetCycle returns a cycle header with its detail rows.
// @Summary Get Cycle Count
// @Description Returns the cycle header and every detail row.
// @Tags cyclecount
// @Produce json
// @Param cycleId path int true "Cycle Count ID"
// @Success 200 {object} map[string]interface{} "Cycle and details"
// @Failure 404 {object} map[string]string "Not Found"
// @Router /cyclecount/{cycleId} [get]
func (h *Handler) HandleGetCycle(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cycleID, err := c.ParamsInt("cycleId")
	if err != nil || cycleID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cycle id"})
	}

	cycle, details, err := h.service.GetCycle(c.Context(), uint(cycleID))
	if err != nil {
		l.Error("Get cycle failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"cycle": cycle, "details": details})
}

// HandleRecordCount stages a physically counted quantity on a detail row.
// @Summary Record Count
// @Description Records a counted quantity for one cycle count detail while the cycle is pending.
// @Tags cyclecount
// @Accept json
// @Produce json
// @Param detailId path int true "Cycle Count Detail ID"
// @Success 200 {object} map[string]string "Recorded"
// @Failure 400 {object} map[string]string "Validation Error"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Cycle Completed or Concurrent Recount"
// @Router /cyclecount/details/{detailId} [put]
func (h *Handler) HandleRecordCount(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	detailID, err := c.ParamsInt("detailId")
	if err != nil || detailID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid detail id"})
	}

	var req recordCountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.RecordCount(c.Context(), uint(detailID), *req.CountedQuantity, req.UserID); err != nil {
		l.Error("Record count failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "recorded"})
}

// HandleFinalizeCycle reconciles the cycle into inventory and closes it.
// @Summary Finalize Cycle Count
// @Description Applies every recorded variance to inventory and completes the cycle, exactly once.
// @Tags cyclecount
// @Accept json
// @Produce json
// @Param cycleId path int true "Cycle Count ID"
// @Success 200 {object} map[string]string "Finalized"
// @Failure 400 {object} map[string]string "Unrecorded Counts"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Already Completed or Conflict"
// @Router /cyclecount/{cycleId}/finalize [post]
func (h *Handler) HandleFinalizeCycle(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cycleID, err := c.ParamsInt("cycleId")
	if err != nil || cycleID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cycle id"})
	}

	var req finalizeCycleRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if err := h.service.FinalizeCycle(c.Context(), uint(cycleID), req.UserID); err != nil {
		l.Error("Finalize cycle failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"status": "finalized"})
}

// HandleExportReport archives the adjustment report of a completed cycle.
// @Summary Export Cycle Report
// @Description Archives the adjustment report of a completed cycle count to object storage.
// @Tags cyclecount
// @Produce json
// @Param cycleId path int true "Cycle Count ID"
// @Success 200 {object} map[string]string "Archived object name"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 409 {object} map[string]string "Cycle Not Completed"
// @Router /cyclecount/{cycleId}/export [post]
func (h *Handler) HandleExportReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	cycleID, err := c.ParamsInt("cycleId")
	if err != nil || cycleID < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid cycle id"})
	}

	objectName, err := h.service.ExportReport(c.Context(), uint(cycleID))
	if err != nil {
		l.Error("Export report failed", zap.Error(err))
		return c.Status(statusOf(err)).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"object": objectName})
}
