package ping

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/web/handler"
)

func TestPing(t *testing.T) {
	app := fiber.New()
	cfg := &config.Config{Ping: "takapay backend is up"}

	var s Service
	require.NoError(t, s.Init(app, cfg, &handler.Deps{}))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, Path, nil), -1)
	require.NoError(t, err)

	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, true, body["ok"])
	assert.Equal(t, "takapay backend is up", body["message"])
}
