package controller

import (
	"notecraft-be/internal/dto"
	"notecraft-be/internal/pkg/serverutils"
	"notecraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IPageController interface {
	RegisterRoutes(r fiber.Router, auth fiber.Handler)
	GetAll(ctx *fiber.Ctx) error
	Create(ctx *fiber.Ctx) error
	Show(ctx *fiber.Ctx) error
	Update(ctx *fiber.Ctx) error
	Delete(ctx *fiber.Ctx) error
	ToggleFavorite(ctx *fiber.Ctx) error
	Move(ctx *fiber.Ctx) error
	View(ctx *fiber.Ctx) error
	Children(ctx *fiber.Ctx) error
	Breadcrumb(ctx *fiber.Ctx) error
	Export(ctx *fiber.Ctx) error
	Import(ctx *fiber.Ctx) error
}

type pageController struct {
	service         service.IPageService
	documentService service.IDocumentService
}

func NewPageController(service service.IPageService, documentService service.IDocumentService) IPageController {
	return &pageController{
		service:         service,
		documentService: documentService,
	}
}

func (c *pageController) RegisterRoutes(r fiber.Router, auth fiber.Handler) {
	h := r.Group("/page/v1", auth)
	h.Get("", c.GetAll)
	h.Post("", c.Create)
	h.Post("import", c.Import)
	h.Get(":id", c.Show)
	h.Patch(":id", c.Update)
	h.Delete(":id", c.Delete)
	h.Put(":id/favorite", c.ToggleFavorite)
	h.Put(":id/move", c.Move)
	h.Put(":id/view", c.View)
	h.Get(":id/children", c.Children)
	h.Get(":id/breadcrumb", c.Breadcrumb)
	h.Get(":id/export", c.Export)
}

func (c *pageController) GetAll(ctx *fiber.Ctx) error {
	res := c.service.GetFiltered(ctx.Context())
	return ctx.JSON(serverutils.SuccessResponse("Success get all page", res))
}

func (c *pageController) Create(ctx *fiber.Ctx) error {
	var req dto.CreatePageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Create(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success create page", res))
}

func (c *pageController) Show(ctx *fiber.Ctx) error {
	res, err := c.service.Show(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success show page", res))
}

func (c *pageController) Update(ctx *fiber.Ctx) error {
	var req dto.UpdatePageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = ctx.Params("id")

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.service.Update(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success update page", res))
}

func (c *pageController) Delete(ctx *fiber.Ctx) error {
	if err := c.service.Delete(ctx.Context(), ctx.Params("id")); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse[any]("Success delete page", nil))
}

func (c *pageController) ToggleFavorite(ctx *fiber.Ctx) error {
	res, err := c.service.ToggleFavorite(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success toggle favorite", res))
}

func (c *pageController) Move(ctx *fiber.Ctx) error {
	var req dto.MovePageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}
	req.Id = ctx.Params("id")

	res, err := c.service.Move(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success move page", res))
}

func (c *pageController) View(ctx *fiber.Ctx) error {
	res, err := c.service.View(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success view page", res))
}

func (c *pageController) Children(ctx *fiber.Ctx) error {
	res, err := c.service.Children(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get page children", res))
}

func (c *pageController) Breadcrumb(ctx *fiber.Ctx) error {
	res, err := c.service.Breadcrumb(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success get breadcrumb", res))
}

// Export answers with raw Markdown when asked for text/markdown and with
// the JSON envelope otherwise.
func (c *pageController) Export(ctx *fiber.Ctx) error {
	res, err := c.documentService.Export(ctx.Context(), ctx.Params("id"))
	if err != nil {
		return err
	}

	if ctx.Accepts(fiber.MIMEApplicationJSON, "text/markdown") == "text/markdown" {
		ctx.Set(fiber.HeaderContentType, "text/markdown; charset=utf-8")
		return ctx.SendString(res.Markdown)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success export page", res))
}

func (c *pageController) Import(ctx *fiber.Ctx) error {
	var req dto.ImportPageRequest
	if err := serverutils.ParseBody(ctx, &req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.documentService.Import(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success import page", res))
}
