package controller

import (
	"notecraft-be/internal/dto"
	"notecraft-be/internal/pkg/serverutils"
	"notecraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IWorkspaceController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	State(ctx *fiber.Ctx) error
	SetSearchQuery(ctx *fiber.Ctx) error
	ToggleSidebar(ctx *fiber.Ctx) error
	Current(ctx *fiber.Ctx) error
	SetCurrent(ctx *fiber.Ctx) error
	Recent(ctx *fiber.Ctx) error
	Favorites(ctx *fiber.Ctx) error
	Tags(ctx *fiber.Ctx) error
	Tree(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	Palette(ctx *fiber.Ctx) error
	BlockTypes(ctx *fiber.Ctx) error
	Colors(ctx *fiber.Ctx) error
}

type workspaceController struct {
	service  service.IWorkspaceService
	realtime fiber.Handler
}

// NewWorkspaceController mounts realtime as the websocket change feed; a
// nil handler leaves the route out.
func NewWorkspaceController(service service.IWorkspaceService, realtime fiber.Handler) IWorkspaceController {
	return &workspaceController{
		service:  service,
		realtime: realtime,
	}
}

func (c *workspaceController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/workspace/v1", auth)
	h.Get("state", c.State)
	h.Put("search", c.SetSearchQuery)
	h.Put("sidebar/toggle", c.ToggleSidebar)
	h.Get("current", c.Current)
	h.Put("current", c.SetCurrent)
	h.Get("recent", c.Recent)
	h.Get("favorites", c.Favorites)
	h.Get("tags", c.Tags)
	h.Get("tree", c.Tree)
	h.Get("search", c.Search)
	h.Get("palette", c.Palette)
	h.Get("block-types", c.BlockTypes)
	h.Get("colors", c.Colors)
	if c.realtime != nil {
		h.Get("ws", c.realtime)
	}
}

func (c *workspaceController) State(ctx *fiber.Ctx) error {
	res := c.service.State(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get workspace state", res))
}

func (c *workspaceController) SetSearchQuery(ctx *fiber.Ctx) error {
	var req dto.SetSearchQueryRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res := c.service.SetSearchQuery(ctx.Context(), &req)
	return ctx.JSON(serverutils.SuccessResponse("Success set search query", res))
}

func (c *workspaceController) ToggleSidebar(ctx *fiber.Ctx) error {
	res := c.service.ToggleSidebar(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success toggle sidebar", res))
}

func (c *workspaceController) Current(ctx *fiber.Ctx) error {
	res, err := c.service.Current(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get current page", res))
}

func (c *workspaceController) SetCurrent(ctx *fiber.Ctx) error {
	var req dto.SetCurrentPageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetCurrent(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set current page", res))
}

func (c *workspaceController) Recent(ctx *fiber.Ctx) error {
	res := c.service.Recent(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get recent pages", res))
}

func (c *workspaceController) Favorites(ctx *fiber.Ctx) error {
	res := c.service.Favorites(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get favorite pages", res))
}

func (c *workspaceController) Tags(ctx *fiber.Ctx) error {
	res := c.service.Tags(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get tags", res))
}

func (c *workspaceController) Tree(ctx *fiber.Ctx) error {
	res := c.service.Tree(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get page tree", res))
}

func (c *workspaceController) Search(ctx *fiber.Ctx) error {
	res := c.service.Search(ctx.Context(), ctx.Query("q"))
	return ctx.JSON(serverutils.SuccessResponse("Success search pages", res))
}

func (c *workspaceController) Palette(ctx *fiber.Ctx) error {
	res := c.service.Palette(ctx.Context(), ctx.Query("q"))
	return ctx.JSON(serverutils.SuccessResponse("Success get palette commands", res))
}

func (c *workspaceController) BlockTypes(ctx *fiber.Ctx) error {
	res := c.service.BlockTypes(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get block types", res))
}

func (c *workspaceController) Colors(ctx *fiber.Ctx) error {
	res := c.service.Colors(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get page colors", res))
}
