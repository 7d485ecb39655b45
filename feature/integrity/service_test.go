package integrity

import (
	"context"
	"testing"

	"warehouse-manager/feature/audit"
	"warehouse-manager/feature/catalog"
	cyclemodels "warehouse-manager/feature/cyclecount/models"
	"warehouse-manager/feature/inventory"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T, name string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Product{},
		&inventory.Inventory{},
		&audit.ActionLog{},
		&cyclemodels.CycleCount{},
		&cyclemodels.CycleCountDetail{},
		&cyclemodels.CycleCountAdjustment{},
	))
	return db
}

func TestService_CheckSchema(t *testing.T) {
	db := setupDB(t, "integrity_svc_schema")
	svc := NewService(db, zap.NewNop())

	report, err := svc.CheckSchema()
	require.NoError(t, err)
	assert.True(t, report.Matched)
}

func TestService_CheckCycles(t *testing.T) {
	db := setupDB(t, "integrity_svc_cycles")
	svc := NewService(db, zap.NewNop())

	report, err := svc.CheckCycles(context.Background())
	require.NoError(t, err)
	assert.True(t, report.Consistent())
}
