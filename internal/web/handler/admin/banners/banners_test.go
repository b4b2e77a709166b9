package banners

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
	require.NoError(t, records.EnsureSchema(context.Background(), schema.Banners))

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

	resp = doJSON(t, app, http.MethodPost, "", `{"image":"x.png"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

func TestAddThenList(t *testing.T) {
	app, bearer := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, bearer, `{"image":"x.png"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, decode(t, resp)["id"])

	resp = doJSON(t, app, http.MethodGet, bearer, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	banners, ok := decode(t, resp)["banners"].([]interface{})
	require.True(t, ok)
	require.Len(t, banners, 1)

	banner, ok := banners[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "x.png", banner["image"])
	assert.NotEmpty(t, banner["id"])
	assert.NotEmpty(t, banner["createdAt"])
}

func TestCreateGeneratesDistinctIDs(t *testing.T) {
	app, bearer := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, bearer, `{"image":"x.png"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	first := decode(t, resp)["id"]

	resp = doJSON(t, app, http.MethodPost, bearer, `{"image":"x.png"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode(t, resp)["id"]

	assert.NotEqual(t, first, second)
}

func TestCreateRequiresImage(t *testing.T) {
	app, bearer := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, bearer, `{"link":"https://example.com"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestDelete(t *testing.T) {
	app, bearer := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, bearer, `{"image":"x.png","link":"https://example.com"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	id, ok := decode(t, resp)["id"].(string)
	require.True(t, ok)

	resp = doJSON(t, app, http.MethodDelete, bearer, `{"bannerId":"`+id+`"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, app, http.MethodGet, bearer, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode(t, resp)["banners"])

	// deleting again is a 404
	resp = doJSON(t, app, http.MethodDelete, bearer, `{"bannerId":"`+id+`"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}
