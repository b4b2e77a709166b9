package somiti

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

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	records, err := sheetstore.New(sheetstore.NewMemoryBackend())
	require.NoError(t, err)

	ctx := context.Background()
	for _, table := range []schema.Table{
		schema.Somiti, schema.SomitiDetails, schema.Members, schema.Workers,
	} {
		require.NoError(t, records.EnsureSchema(ctx, table))
	}

	tokens := token.NewService("hunter2", "signing-secret")

	app := fiber.New()
	deps := &handler.Deps{
		Tokens:       tokens,
		Records:      records,
		RequireAdmin: auth.RequireAdmin(tokens),
	}

	var s Service
	require.NoError(t, s.Init(app, &config.Config{}, deps))

	return app
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

func createSomiti(t *testing.T, app *fiber.App, name string) string {
	t.Helper()

	resp := doJSON(t, app, http.MethodPost, Path,
		`{"name":"`+name+`","area":"Mirpur","ownerPhone":"01712345678"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	group, ok := decode(t, resp)["somiti"].(map[string]interface{})
	require.True(t, ok)

	id, ok := group["id"].(string)
	require.True(t, ok)

	return id
}

func TestCreateSeedsDetails(t *testing.T) {
	app := newTestApp(t)

	id := createSomiti(t, app, "Sonali Somiti")

	resp := doJSON(t, app, http.MethodGet, Path+"/"+id+"/details", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	details, ok := decode(t, resp)["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "0", details["balance"])
	assert.Equal(t, "0", details["memberCount"])
}

func TestDetailsUnknownGroup(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, Path+"/missing/details", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestAddMemberBumpsCount(t *testing.T) {
	app := newTestApp(t)

	id := createSomiti(t, app, "Sonali Somiti")

	resp := doJSON(t, app, http.MethodPost, MembersPath,
		`{"somitiId":"`+id+`","name":"Rahim","phone":"01887654321"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	member, ok := decode(t, resp)["member"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "member", member["role"])

	resp = doJSON(t, app, http.MethodGet, Path+"/"+id+"/details", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	details, ok := decode(t, resp)["details"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1", details["memberCount"])

	// unknown group is a 404
	resp = doJSON(t, app, http.MethodPost, MembersPath,
		`{"somitiId":"missing","name":"Karim","phone":"01600000000"}`)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestListMembersBySomiti(t *testing.T) {
	app := newTestApp(t)

	first := createSomiti(t, app, "First")
	second := createSomiti(t, app, "Second")

	for _, body := range []string{
		`{"somitiId":"` + first + `","name":"A","phone":"01711111111"}`,
		`{"somitiId":"` + first + `","name":"B","phone":"01722222222"}`,
		`{"somitiId":"` + second + `","name":"C","phone":"01733333333"}`,
	} {
		resp := doJSON(t, app, http.MethodPost, MembersPath, body)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp := doJSON(t, app, http.MethodGet, MembersPath+"?somitiId="+first, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["members"], 2)

	resp = doJSON(t, app, http.MethodGet, MembersPath, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["members"], 3)
}

func TestWorkers(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, WorkersPath,
		`{"name":"Salma","phone":"01744444444","area":"Mirpur"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	worker, ok := decode(t, resp)["worker"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "true", worker["active"])

	resp = doJSON(t, app, http.MethodGet, WorkersPath+"?area=Mirpur", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Len(t, decode(t, resp)["workers"], 1)

	resp = doJSON(t, app, http.MethodGet, WorkersPath+"?area=Gulshan", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode(t, resp)["workers"])
}
