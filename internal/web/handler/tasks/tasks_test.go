package tasks

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

func newTestApp(t *testing.T) (*fiber.App, *sheetstore.Store) {
	t.Helper()

	records, err := sheetstore.New(sheetstore.NewMemoryBackend())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, records.EnsureSchema(ctx, schema.Tasks))
	require.NoError(t, records.EnsureSchema(ctx, schema.Workers))

	tokens := token.NewService("hunter2", "signing-secret")

	app := fiber.New()
	deps := &handler.Deps{
		Tokens:       tokens,
		Records:      records,
		RequireAdmin: auth.RequireAdmin(tokens),
	}

	var s Service
	require.NoError(t, s.Init(app, &config.Config{}, deps))

	return app, records
}

func addWorker(t *testing.T, records *sheetstore.Store, id string) {
	t.Helper()

	row := schema.Row{"id": id, "name": "Salma", "phone": "01744444444", "area": "Mirpur"}
	row.SetBool("active", true)

	require.NoError(t, records.Append(context.Background(), schema.Workers, row))
}

func doJSON(t *testing.T, app *fiber.App, method, target, body string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
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

func TestCreateDefaultsToOpen(t *testing.T) {
	app, records := newTestApp(t)
	addWorker(t, records, "w1")

	resp := doJSON(t, app, http.MethodPost, Path,
		`{"workerId":"w1","title":"Collect dues","detail":"block C"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	task, ok := decode(t, resp)["task"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, StatusOpen, task["status"])
	assert.NotEmpty(t, task["id"])
}

func TestCreateUnknownWorker(t *testing.T) {
	app, _ := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, Path,
		`{"workerId":"missing","title":"Collect dues"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestListByWorker(t *testing.T) {
	app, records := newTestApp(t)
	addWorker(t, records, "w1")
	addWorker(t, records, "w2")

	for _, body := range []string{
		`{"workerId":"w1","title":"First"}`,
		`{"workerId":"w1","title":"Second"}`,
		`{"workerId":"w2","title":"Third"}`,
	} {
		resp := doJSON(t, app, http.MethodPost, Path, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, Path, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["tasks"], 3)

	resp = doJSON(t, app, http.MethodGet, Path+"?workerId=w1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["tasks"], 2)

	resp = doJSON(t, app, http.MethodGet, Path+"?workerId=w3", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode(t, resp)["tasks"])
}

func TestSetStatus(t *testing.T) {
	app, records := newTestApp(t)
	addWorker(t, records, "w1")

	resp := doJSON(t, app, http.MethodPost, Path, `{"workerId":"w1","title":"Collect dues"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	task, ok := decode(t, resp)["task"].(map[string]interface{})
	require.True(t, ok)

	id, ok := task["id"].(string)
	require.True(t, ok)

	resp = doJSON(t, app, http.MethodPost, Path+"/status", `{"id":"`+id+`","status":"done"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	updated, ok := decode(t, resp)["task"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "done", updated["status"])

	// unknown id
	resp = doJSON(t, app, http.MethodPost, Path+"/status", `{"id":"missing","status":"done"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()

	// unknown status value
	resp = doJSON(t, app, http.MethodPost, Path+"/status", `{"id":"`+id+`","status":"paused"}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}
