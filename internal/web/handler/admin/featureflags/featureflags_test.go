package featureflags

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/takapay/takapay/internal/config"
	"github.com/takapay/takapay/internal/schema"
	"github.com/takapay/takapay/internal/sheetstore"
	"github.com/takapay/takapay/internal/token"
	"github.com/takapay/takapay/internal/web/handler"
	"github.com/takapay/takapay/internal/web/middleware/auth"
)

func newTestApp(t *testing.T) (*fiber.App, string) {
	t.Helper()

	records, err := sheetstore.New(sheetstore.NewMemoryBackend())
	require.NoError(t, err)
	require.NoError(t, records.EnsureSchema(context.Background(), schema.FeatureFlags))

	tokens := token.NewService("hunter2", "signing-secret")

	app := fiber.New()
	deps := &handler.Deps{
		Tokens:       tokens,
		Records:      records,
		RequireAdmin: auth.RequireAdmin(tokens),
	}

	var s Service
	require.NoError(t, s.Init(app, &config.Config{}, deps))

	issued, err := tokens.Issue("hunter2")
	require.NoError(t, err)

	return app, issued
}

func doJSON(t *testing.T, app *fiber.App, method, bearer, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, Path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	if bearer != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+bearer)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	return resp
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	defer resp.Body.Close()

	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	return body
}

func TestRequiresAdmin(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, "", `{"sendEnabled":true}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestSetAndListTypedFlags(t *testing.T) {
	app, bearer := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, bearer,
		`{"sendEnabled":true,"maxAmount":25000.5,"maintenanceNote":"back at 9"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, bearer, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	flags, ok := decode(t, resp)["flags"].(map[string]interface{})
	require.True(t, ok)

	// types survive the string-only storage
	assert.Equal(t, true, flags["sendEnabled"])
	assert.EqualValues(t, 25000.5, flags["maxAmount"])
	assert.Equal(t, "back at 9", flags["maintenanceNote"])
}

func TestSetOverwritesExistingKey(t *testing.T) {
	app, bearer := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, bearer, `{"sendEnabled":true}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, bearer, `{"sendEnabled":false}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	flags, ok := decode(t, resp)["flags"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, flags["sendEnabled"])
	assert.Len(t, flags, 1)
}

func TestSetRejectsUnsupportedValues(t *testing.T) {
	app, bearer := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, bearer, `{"limits":{"min":1}}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodPost, bearer, `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
