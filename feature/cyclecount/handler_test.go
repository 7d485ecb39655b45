package cyclecount

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"warehouse-manager/feature/cyclecount/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupApp(t *testing.T, name string) (*fiber.App, *gorm.DB, *Service) {
	t.Helper()
	db, svc := setupEngine(t, name)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, db, svc
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (int, map[string]any) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&payload)
	return resp.StatusCode, payload
}

func TestHandler_FullFlow(t *testing.T) {
	app, db, _ := setupApp(t, "cc_http_flow")

	seedProduct(t, db, 1, "SKU-1", 100)
	seedProduct(t, db, 2, "SKU-2", 50)

	status, payload := doJSON(t, app, "POST", "/cyclecount/start", fiber.Map{"user_id": 10})
	require.Equal(t, fiber.StatusCreated, status)
	cycleID := uint(payload["cycle_id"].(float64))

	status, payload = doJSON(t, app, "GET", fmt.Sprintf("/cyclecount/%d", cycleID), nil)
	require.Equal(t, fiber.StatusOK, status)
	details := payload["details"].([]any)
	require.Len(t, details, 2)

	for i, raw := range details {
		detail := raw.(map[string]any)
		detailID := int(detail["detail_id"].(float64))
		counted := []int{95, 50}[i]
		status, _ = doJSON(t, app, "PUT", fmt.Sprintf("/cyclecount/details/%d", detailID),
			fiber.Map{"counted_quantity": counted, "user_id": 20})
		require.Equal(t, fiber.StatusOK, status)
	}

	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/cyclecount/%d/finalize", cycleID), fiber.Map{"user_id": 30})
	require.Equal(t, fiber.StatusOK, status)

	var cycle models.CycleCount
	require.NoError(t, db.First(&cycle, "cycle_count_id = ?", cycleID).Error)
	assert.Equal(t, models.StatusCompleted, cycle.Status)
}

func TestHandler_RecordCountValidation(t *testing.T) {
	app, db, svc := setupApp(t, "cc_http_validation")

	seedProduct(t, db, 1, "SKU-1", 100)
	cycleID, err := svc.StartCycle(context.Background(), 10)
	require.NoError(t, err)
	detailID := detailsOf(t, db, cycleID)[0].DetailID

	// Negative quantity is rejected at the edge.
	status, _ := doJSON(t, app, "PUT", fmt.Sprintf("/cyclecount/details/%d", detailID),
		fiber.Map{"counted_quantity": -5, "user_id": 20})
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Missing body fields are rejected too.
	status, _ = doJSON(t, app, "PUT", fmt.Sprintf("/cyclecount/details/%d", detailID), fiber.Map{})
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandler_NotFoundAndConflict(t *testing.T) {
	app, db, svc := setupApp(t, "cc_http_errors")

	seedProduct(t, db, 1, "SKU-1", 100)

	// Unknown detail id.
	status, _ := doJSON(t, app, "PUT", "/cyclecount/details/9999",
		fiber.Map{"counted_quantity": 5, "user_id": 20})
	assert.Equal(t, fiber.StatusNotFound, status)

	// Unknown cycle id.
	status, _ = doJSON(t, app, "POST", "/cyclecount/9999/finalize", fiber.Map{"user_id": 10})
	assert.Equal(t, fiber.StatusNotFound, status)

	cycleID, err := svc.StartCycle(context.Background(), 10)
	require.NoError(t, err)
	detailID := detailsOf(t, db, cycleID)[0].DetailID
	require.NoError(t, svc.RecordCount(context.Background(), detailID, 100, 20))
	require.NoError(t, svc.FinalizeCycle(context.Background(), cycleID, 10))

	// Re-finalizing a completed cycle conflicts.
	status, _ = doJSON(t, app, "POST", fmt.Sprintf("/cyclecount/%d/finalize", cycleID), fiber.Map{"user_id": 10})
	assert.Equal(t, fiber.StatusConflict, status)
}
