package resources

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestLoader(t *testing.T) {
	svc, _ := setupService(t)
	feature := NewFeature(svc)

	assert.Equal(t, "resources", feature.Name())
	assert.True(t, feature.IsEnabled())
	assert.NoError(t, feature.Load(fiber.New()))
}

func TestLoader_DisabledWithoutManager(t *testing.T) {
	feature := NewFeature(NewService(nil, nil, zap.NewNop()))
	assert.False(t, feature.IsEnabled())
}
