package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"resource-manager/core/config"
	"resource-manager/core/resource"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLoadConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg, err := config.LoadConfig(t.TempDir())
		require.NoError(t, err)

		assert.Equal(t, "8080", cfg.Server.Port)
		assert.Equal(t, resource.CleanupManual, cfg.Resources.CleanupPolicy)
		assert.Equal(t, 0, cfg.Resources.DefaultMipmapLevel)
		assert.Equal(t, 16, cfg.Resources.FlushIntervalMs)
		assert.Equal(t, 64, cfg.Archive.EntryCacheSize)
		assert.Equal(t, "", cfg.Archive.Path)
		assert.Equal(t, "mysql", cfg.Database.Driver)
	})

	t.Run("EnvFile", func(t *testing.T) {
		dir := t.TempDir()
		env := "RESOURCES_CLEANUP_POLICY=frame\nRESOURCES_DEFAULT_MIPMAP_LEVEL=3\nARCHIVE_PATH=/data/main.obb\n"
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte(env), 0o644))
		t.Cleanup(func() {
			os.Unsetenv("RESOURCES_CLEANUP_POLICY")
			os.Unsetenv("RESOURCES_DEFAULT_MIPMAP_LEVEL")
			os.Unsetenv("ARCHIVE_PATH")
		})

		cfg, err := config.LoadConfig(dir)
		require.NoError(t, err)

		assert.Equal(t, resource.CleanupFrame, cfg.Resources.CleanupPolicy)
		assert.Equal(t, 3, cfg.Resources.DefaultMipmapLevel)
		assert.Equal(t, "/data/main.obb", cfg.Archive.Path)
	})
}

func TestConfig_Validate(t *testing.T) {
	cfg, err := config.LoadConfig(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, cfg.Validate())

	cfg.Resources.CleanupPolicy = "sometimes"
	cfg.Resources.DefaultMipmapLevel = -1
	cfg.Database.Driver = "oracle"
	err = cfg.Validate()
	require.Error(t, err)
	assert.Len(t, multierr.Errors(err), 3)
	assert.ErrorContains(t, err, `invalid cleanup policy "sometimes"`)
	assert.ErrorContains(t, err, `unsupported database driver "oracle"`)
}
