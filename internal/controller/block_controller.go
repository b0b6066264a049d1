package controller

import (
	"notecraft-be/internal/dto"
	"notecraft-be/internal/pkg/serverutils"
	"notecraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IBlockController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	Add(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	ChangeType(ctx *fiber.Ctx) error
	SetProperties(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	ToggleTodo(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
}

type blockController struct {
	service service.IBlockService
}

func NewBlockController(service service.IBlockService) IBlockController {
	return &blockController{service: service}
}

func (c *blockController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/page/v1/:pageId/blocks", auth)
	h.Post("", c.Add)
	h.Put(":blockId", c.Update)
	h.Put(":blockId/type", c.ChangeType)
	h.Put(":blockId/properties", c.SetProperties)
	h.Put(":blockId/move", c.Move)
	h.Put(":blockId/todo", c.ToggleTodo)
	h.Delete(":blockId", c.Delete)
}

func (c *blockController) Add(ctx *fiber.Ctx) error {
	var req dto.AddBlockRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.PageId = ctx.Params("pageId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Add(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success add block", res))
}

func (c *blockController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdateBlockRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.PageId = ctx.Params("pageId")
	req.BlockId = ctx.Params("blockId")

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update block", res))
}

func (c *blockController) ChangeType(ctx *fiber.Ctx) error {
	var req dto.ChangeBlockTypeRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.PageId = ctx.Params("pageId")
	req.BlockId = ctx.Params("blockId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.ChangeType(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success change block type", res))
}

func (c *blockController) SetProperties(ctx *fiber.Ctx) error {
	var req dto.SetBlockPropertiesRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.PageId = ctx.Params("pageId")
	req.BlockId = ctx.Params("blockId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.SetProperties(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success set block properties", res))
}

func (c *blockController) Move(ctx *fiber.Ctx) error {
	var req dto.MoveBlockRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.PageId = ctx.Params("pageId")
	req.BlockId = ctx.Params("blockId")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Move(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move block", res))
}

func (c *blockController) ToggleTodo(ctx *fiber.Ctx) error {
	res, err := c.service.ToggleTodo(ctx.Context(), ctx.Params("pageId"), ctx.Params("blockId"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle todo", res))
}

func (c *blockController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("pageId"), ctx.Params("blockId")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete block", nil))
}
