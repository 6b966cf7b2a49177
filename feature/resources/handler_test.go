package resources

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"resource-manager/core/resource"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestApp(t *testing.T) (*fiber.App, *Service) {
	svc, _ := setupService(t)
	app := fiber.New()
	feature := NewFeature(svc)
	require.True(t, feature.IsEnabled())
	require.NoError(t, feature.Load(app))
	return app, svc
}

type response struct {
	Code int
	Body []byte
}

func postJSON(t *testing.T, app *fiber.App, path string, body any) response {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(body))
	req := httptest.NewRequest("POST", path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return response{Code: resp.StatusCode, Body: data}
}

func TestHandleLoadAndGet(t *testing.T) {
	app, _ := setupTestApp(t)

	rec := postJSON(t, app, "/resources", LoadRequest{Kind: "shader", RawID: intPtr(7)})
	require.Equal(t, fiber.StatusCreated, rec.Code)

	var entry resource.EntryInfo
	require.NoError(t, json.Unmarshal(rec.Body, &entry))
	assert.Equal(t, "genres_7", entry.ID)

	resp, err := app.Test(httptest.NewRequest("GET", "/resources/genres_7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("GET", "/resources", nil))
	require.NoError(t, err)
	var entries []resource.EntryInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entries))
	assert.Len(t, entries, 1)
}

func TestHandleLoadErrors(t *testing.T) {
	app, _ := setupTestApp(t)

	tests := []struct {
		name string
		body LoadRequest
		want int
	}{
		{"Missing Address", LoadRequest{Kind: "shader"}, fiber.StatusBadRequest},
		{"Unknown Kind", LoadRequest{Kind: "mesh", RawID: intPtr(7)}, fiber.StatusBadRequest},
		{"Unknown Catalog Id", LoadRequest{RawID: intPtr(9)}, fiber.StatusNotFound},
		{"Missing Raw Data", LoadRequest{Kind: "shader", RawID: intPtr(404)}, fiber.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, app, "/resources", tt.body)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandleGetNotFound(t *testing.T) {
	app, _ := setupTestApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/resources/genres_1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest("DELETE", "/resources/genres_1", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestHandleLifecycle(t *testing.T) {
	app, svc := setupTestApp(t)

	rec := postJSON(t, app, "/resources", LoadRequest{Kind: "shader", RawID: intPtr(7)})
	require.Equal(t, fiber.StatusCreated, rec.Code)

	rec = postJSON(t, app, "/resources/flush", nil)
	require.Equal(t, fiber.StatusOK, rec.Code)
	var flushed map[string]int
	require.NoError(t, json.Unmarshal(rec.Body, &flushed))
	assert.Equal(t, 1, flushed["loaded"])

	rec = postJSON(t, app, "/resources/pause", nil)
	require.Equal(t, fiber.StatusOK, rec.Code)
	var st Status
	require.NoError(t, json.Unmarshal(rec.Body, &st))
	assert.True(t, st.Paused)

	rec = postJSON(t, app, "/resources/resume", nil)
	require.Equal(t, fiber.StatusOK, rec.Code)
	assert.False(t, svc.Status().Paused)

	resp, err := app.Test(httptest.NewRequest("DELETE", "/resources/genres_7", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	rec = postJSON(t, app, "/resources/cleanup", nil)
	require.Equal(t, fiber.StatusOK, rec.Code)
	var res CleanupResult
	require.NoError(t, json.Unmarshal(rec.Body, &res))
	assert.Equal(t, 1, res.Evicted)

	resp, err = app.Test(httptest.NewRequest("GET", "/resources/status", nil))
	require.NoError(t, err)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Zero(t, st.Entries)
}
