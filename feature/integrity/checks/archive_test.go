package checks

import (
	"bytes"
	"testing"

	"resource-manager/core/archive"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildPack(t *testing.T, files map[string]string) *archive.Provider {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())

	p, err := archive.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()), 0)
	require.NoError(t, err)
	return p
}

func TestCheckArchive(t *testing.T) {
	pack := buildPack(t, map[string]string{
		"shaders/ui.glsl":  "void ui() {}",
		"textures/bg.png":  "not really a png",
		"sounds/click.wav": "RIFF",
	})

	report, err := CheckArchive(pack)
	require.NoError(t, err)
	assert.Equal(t, 3, report.Entries)
	assert.Equal(t, int64(len("void ui() {}")+len("not really a png")+len("RIFF")), report.Bytes)
	assert.Empty(t, report.Unreadable)
}

func TestCheckArchive_NoPack(t *testing.T) {
	_, err := CheckArchive(nil)
	assert.Error(t, err)
}
