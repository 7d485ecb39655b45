package integrity

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	cyclemodels "warehouse-manager/feature/cyclecount/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupApp(t *testing.T, db *gorm.DB) *fiber.App {
	t.Helper()
	app := fiber.New()
	svc := NewService(db, zap.NewNop())
	NewHandler(svc).RegisterRoutes(app)
	return app
}

func doGet(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func TestHandler_SchemaCheck(t *testing.T) {
	db := setupDB(t, "integrity_handler_schema")
	app := setupApp(t, db)

	resp, body := doGet(t, app, "/integrity/schema")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report struct {
		Matched bool `json:"matched"`
	}
	require.NoError(t, json.Unmarshal(body, &report))
	assert.True(t, report.Matched)
}

func TestHandler_CycleCheck(t *testing.T) {
	db := setupDB(t, "integrity_handler_cycles")
	require.NoError(t, db.Create(&cyclemodels.CycleCount{
		CycleName: "Q3_2025",
		StartDate: time.Now(),
		EndDate:   time.Now().AddDate(0, 3, 0),
		Status:    cyclemodels.StatusPending,
		CreatedBy: 1,
	}).Error)
	app := setupApp(t, db)

	resp, body := doGet(t, app, "/integrity/cycles")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report struct {
		PendingWithoutDetails []uint `json:"pending_without_details"`
	}
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Len(t, report.PendingWithoutDetails, 1)
}

func TestHandler_CombinedCheck(t *testing.T) {
	db := setupDB(t, "integrity_handler_all")
	app := setupApp(t, db)

	resp, body := doGet(t, app, "/integrity")
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var report map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(body, &report))
	assert.Contains(t, report, "schema")
	assert.Contains(t, report, "cycles")
}
