package serverutils

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"notecraft-be/internal/pkg/apperror"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createRequest struct {
	Title string `json:"title" validate:"required,max=10"`
}

func newTestApp(handler fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Use(ErrorHandlerMiddleware())
	app.Get("/", handler)
	return app
}

func decode[T any](t *testing.T, app *fiber.App, req *httptestRequest) (int, BaseResponse[T]) {
	t.Helper()
	r := httptest.NewRequest("GET", "/", nil)
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}
	resp, err := app.Test(r, -1)
	require.NoError(t, err)
	var body BaseResponse[T]
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

type httptestRequest struct {
	token string
}

func TestErrorHandlerMiddleware(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{"app error", apperror.ErrPageNotFound, 404, "page not found"},
		{"wrapped app error", errors.Join(errors.New("ctx"), apperror.BadRequest("bad parent", nil)), 400, "bad parent"},
		{"fiber error", fiber.NewError(fiber.StatusConflict, "conflict"), 409, "conflict"},
		{"plain error", errors.New("boom"), 500, "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newTestApp(func(ctx *fiber.Ctx) error { return tt.err })
			code, body := decode[any](t, app, &httptestRequest{})
			assert.Equal(t, tt.wantCode, code)
			assert.False(t, body.Success)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.wantMsg, body.Message)
		})
	}
}

func TestValidationErrorRendersFields(t *testing.T) {
	app := newTestApp(func(ctx *fiber.Ctx) error {
		return ValidateRequest(createRequest{Title: "far too long title"})
	})

	code, body := decode[map[string]string](t, app, &httptestRequest{})
	assert.Equal(t, 400, code)
	assert.Equal(t, "max=10", body.Data["title"])

	assert.NoError(t, ValidateRequest(createRequest{Title: "ok"}))
}

func TestSuccessResponse(t *testing.T) {
	res := SuccessResponse("Success get page", map[string]string{"id": "1"})
	assert.True(t, res.Success)
	assert.Equal(t, 200, res.Code)
	assert.Equal(t, "1", res.Data["id"])
}

func TestJwtMiddleware(t *testing.T) {
	secret := "test-secret"
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "editor",
		"exp": time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	app := fiber.New()
	app.Use(JwtMiddleware(secret))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse("ok", ctx.Locals("subject")))
	})

	code, body := decode[string](t, app, &httptestRequest{token: signed})
	assert.Equal(t, 200, code)
	assert.Equal(t, "editor", body.Data)

	code, _ = decode[any](t, app, &httptestRequest{})
	assert.Equal(t, 401, code)

	code, _ = decode[any](t, app, &httptestRequest{token: "garbage"})
	assert.Equal(t, 401, code)

	resp, err := app.Test(httptest.NewRequest("GET", "/?token="+signed, nil), -1)
	require.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)
}

func TestJwtMiddlewareDisabled(t *testing.T) {
	app := fiber.New()
	app.Use(JwtMiddleware(""))
	app.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(SuccessResponse[any]("open", nil))
	})

	code, body := decode[any](t, app, &httptestRequest{})
	assert.Equal(t, 200, code)
	assert.Equal(t, "open", body.Message)
}
