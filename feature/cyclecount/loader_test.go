package cyclecount

import (
	"testing"

	"warehouse-manager/feature/audit"
	"warehouse-manager/feature/catalog"
	"warehouse-manager/feature/inventory"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	db, _ := setupEngine(t, "cyclecount_loader")
	feature := NewFeature(db, nil, "warehouse-reports", zap.NewNop(),
		catalog.NewStore(), inventory.NewStore(), audit.NewSink())

	assert.Equal(t, "cyclecount", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NotNil(t, feature.Service())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}

func TestLoader_DisabledWithoutDatabase(t *testing.T) {
	feature := NewFeature(nil, nil, "warehouse-reports", zap.NewNop(),
		catalog.NewStore(), inventory.NewStore(), audit.NewSink())
	assert.False(t, feature.IsEnabled())
}
