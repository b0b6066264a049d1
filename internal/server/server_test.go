package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"notecraft-be/internal/bootstrap"
	"notecraft-be/internal/config"
	"notecraft-be/internal/dto"
	"notecraft-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, secret string) *config.Config {
	t.Helper()
	return &config.Config{
		App: config.AppConfig{
			Port:               "0",
			Environment:        "test",
			LogFilePath:        filepath.Join(t.TempDir(), "app.log"),
			CorsAllowedOrigins: "http://localhost:5173",
		},
		Auth: config.AuthConfig{JWTSecret: secret},
		Workspace: config.WorkspaceConfig{
			PersistTopic:   "WORKSPACE_CHANGED",
			SearchCacheTTL: time.Minute,
			RecentLimit:    5,
		},
	}
}

func newTestServer(t *testing.T, secret string) *fiber.App {
	t.Helper()
	cfg := testConfig(t, secret)
	container := bootstrap.NewContainer(nil, cfg)
	t.Cleanup(container.Close)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	require.NoError(t, container.Start(ctx))

	return New(cfg, container).GetApp()
}

func do[T any](t *testing.T, app *fiber.App, method, path, body string, header ...string) (int, serverutils.BaseResponse[T]) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(header); i += 2 {
		req.Header.Set(header[i], header[i+1])
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	var out serverutils.BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out
}

func TestPageLifecycle(t *testing.T) {
	app := newTestServer(t, "")

	status, list := do[[]dto.PageSummaryResponse](t, app, "GET", "/api/page/v1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.True(t, list.Success)
	assert.Len(t, list.Data, 4)

	status, created := do[dto.CreatePageResponse](t, app, "POST", "/api/page/v1", `{"title":"Roadmap","parent_id":"3"}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NotEmpty(t, created.Data.Id)
	id := created.Data.Id

	status, page := do[dto.PageResponse](t, app, "PATCH", "/api/page/v1/"+id, `{"tags":["work","q3"],"color":"blue"}`)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, []string{"work", "q3"}, page.Data.Tags)
	assert.Equal(t, "blue", page.Data.Color)

	status, crumbs := do[[]dto.BreadcrumbItem](t, app, "GET", "/api/page/v1/"+id+"/breadcrumb", "")
	require.Equal(t, fiber.StatusOK, status)
	require.Len(t, crumbs.Data, 1)
	assert.Equal(t, "3", crumbs.Data[0].Id)

	status, _ = do[any](t, app, "DELETE", "/api/page/v1/"+id, "")
	require.Equal(t, fiber.StatusOK, status)

	status, missing := do[any](t, app, "GET", "/api/page/v1/"+id, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, missing.Success)
	assert.Equal(t, "page not found", missing.Message)
}

func TestBlockRoutes(t *testing.T) {
	app := newTestServer(t, "")

	status, added := do[dto.AddBlockResponse](t, app, "POST", "/api/page/v1/3/blocks", `{"type":"todo"}`)
	require.Equal(t, fiber.StatusOK, status)
	require.NotEmpty(t, added.Data.Id)
	assert.Equal(t, "todo", added.Data.Block.Type)

	blockPath := "/api/page/v1/3/blocks/" + added.Data.Id
	status, _ = do[any](t, app, "PUT", blockPath, `{"content":"Ship it"}`)
	require.Equal(t, fiber.StatusOK, status)

	status, _ = do[any](t, app, "PUT", blockPath+"/todo", "")
	require.Equal(t, fiber.StatusOK, status)

	status, page := do[dto.PageResponse](t, app, "GET", "/api/page/v1/3", "")
	require.Equal(t, fiber.StatusOK, status)
	last := page.Data.Blocks[len(page.Data.Blocks)-1]
	assert.Equal(t, "Ship it", last.Content)
	require.NotNil(t, last.Properties)
	require.NotNil(t, last.Properties.Checked)
	assert.True(t, *last.Properties.Checked)

	status, _ = do[any](t, app, "PUT", blockPath+"/type", `{"type":"video"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)

	status, _ = do[any](t, app, "POST", "/api/page/v1/missing/blocks", `{}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestValidationErrorEnvelope(t *testing.T) {
	app := newTestServer(t, "")

	status, body := do[map[string]string](t, app, "PUT", "/api/page/v1/1/blocks/b1/move", `{"direction":"sideways"}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, "Validation failed", body.Message)
	assert.Equal(t, "oneof=up down", body.Data["direction"])
}

func TestWorkspaceRoutes(t *testing.T) {
	app := newTestServer(t, "")

	status, state := do[dto.WorkspaceStateResponse](t, app, "GET", "/api/workspace/v1/state", "")
	require.Equal(t, fiber.StatusOK, status)
	require.NotNil(t, state.Data.CurrentPageId)
	assert.Equal(t, "1", *state.Data.CurrentPageId)
	assert.Equal(t, 4, state.Data.PageCount)

	status, results := do[dto.SearchResultResponse](t, app, "GET", "/api/workspace/v1/search?q=tags:personal", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Len(t, results.Data.Pages, 2)

	status, tags := do[[]string](t, app, "GET", "/api/workspace/v1/tags", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, tags.Data, "personal")
}

func TestExportNegotiatesMarkdown(t *testing.T) {
	app := newTestServer(t, "")

	req := httptest.NewRequest("GET", "/api/page/v1/1/export", nil)
	req.Header.Set("Accept", "text/markdown")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/markdown")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "# "))
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	app := newTestServer(t, "")

	status, body := do[any](t, app, "GET", "/api/nothing/here", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.False(t, body.Success)
	assert.Equal(t, fiber.StatusNotFound, body.Code)
}

func TestJwtGuard(t *testing.T) {
	const secret = "test-secret"
	app := newTestServer(t, secret)

	status, _ := do[dto.HealthResponse](t, app, "GET", "/api/system/v1/health", "")
	assert.Equal(t, fiber.StatusOK, status, "health stays open")

	status, body := do[any](t, app, "GET", "/api/page/v1", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Missing token", body.Message)

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "tester",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	status, _ = do[any](t, app, "GET", "/api/page/v1", "", "Authorization", "Bearer "+token)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestOptionalBodiesMayBeOmitted(t *testing.T) {
	app := newTestServer(t, "")

	status, added := do[dto.AddBlockResponse](t, app, "POST", "/api/page/v1/1/blocks", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "text", added.Data.Block.Type)
	assert.Equal(t, "", added.Data.Block.Content)

	status, created := do[dto.CreatePageResponse](t, app, "POST", "/api/page/v1", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.NotEmpty(t, created.Data.Id)

	status, moved := do[dto.PageResponse](t, app, "PUT", "/api/page/v1/2/move", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.Nil(t, moved.Data.ParentId, "no parent moves the page to the root")
}
