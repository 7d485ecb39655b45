package audit

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	db := setupTestDB(t, "audit_loader")
	feature := NewFeature(NewSink(), db, zap.NewNop())

	assert.Equal(t, "audit", feature.Name())
	assert.True(t, feature.IsEnabled())

	app := fiber.New()
	err := feature.Load(app)
	assert.NoError(t, err)
}

func TestLoader_DisabledWithoutDatabase(t *testing.T) {
	feature := NewFeature(NewSink(), nil, zap.NewNop())
	assert.False(t, feature.IsEnabled())
}
