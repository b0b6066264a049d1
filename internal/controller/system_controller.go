package controller

import (
	"notecraft-be/internal/pkg/serverutils"
	"notecraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ISystemController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Health(ctx *fiber.Ctx) error
	Logs(ctx *fiber.Ctx) error
	Log(ctx *fiber.Ctx) error
}

type systemController struct {
	service service.ISystemService
}

func NewSystemController(service service.ISystemService) ISystemController {
	return &systemController{service: service}
}

// RegisterRoutes leaves health open for probes; logs need auth.
func (c *systemController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/system/v1")
	h.Get("health", c.Health)
	h.Get("logs", auth, c.Logs)
	h.Get("logs/:id", auth, c.Log)
}

func (c *systemController) Health(ctx *fiber.Ctx) error {
	res := c.service.Health(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get health", res))
}

func (c *systemController) Logs(ctx *fiber.Ctx) error {
	res, err := c.service.Logs(ctx.Context(), ctx.Query("level"), ctx.QueryInt("limit", 50), ctx.QueryInt("offset", 0))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get logs", res))
}

func (c *systemController) Log(ctx *fiber.Ctx) error {
	res, err := c.service.Log(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get log", res))
}
