package controller

import (
	"errors"
	"net/url"

	"routine-advisor-be/internal/dto"
	"routine-advisor-be/internal/pkg/serverutils"
	"routine-advisor-be/internal/service"
	"routine-advisor-be/internal/view"

	"github.com/gofiber/fiber/v2"
)

type IWidgetController interface {
	RegisterRoutes(r fiber.Router)

	// Server-rendered page and its form posts
	Index(ctx *fiber.Ctx) error
	SubmitCategory(ctx *fiber.Ctx) error
	SubmitSearch(ctx *fiber.Ctx) error
	SubmitToggle(ctx *fiber.Ctx) error
	SubmitRemove(ctx *fiber.Ctx) error
	SubmitClear(ctx *fiber.Ctx) error
	SubmitRoutine(ctx *fiber.Ctx) error
	SubmitChat(ctx *fiber.Ctx) error

	// JSON API
	GetPage(ctx *fiber.Ctx) error
	SelectCategory(ctx *fiber.Ctx) error
	Search(ctx *fiber.Ctx) error
	ToggleProduct(ctx *fiber.Ctx) error
	RemoveSelection(ctx *fiber.Ctx) error
	ClearSelections(ctx *fiber.Ctx) error
	GenerateRoutine(ctx *fiber.Ctx) error
	SendChat(ctx *fiber.Ctx) error
}

type widgetController struct {
	service  service.IWidgetService
	renderer *view.Renderer
}

func NewWidgetController(service service.IWidgetService, renderer *view.Renderer) IWidgetController {
	return &widgetController{service: service, renderer: renderer}
}

func (c *widgetController) RegisterRoutes(r fiber.Router) {
	r.Get("/", c.Index)

	f := r.Group("/widget")
	f.Post("/category", c.SubmitCategory)
	f.Post("/search", c.SubmitSearch)
	f.Post("/toggle", c.SubmitToggle)
	f.Post("/remove", c.SubmitRemove)
	f.Post("/clear", c.SubmitClear)
	f.Post("/routine", c.SubmitRoutine)
	f.Post("/chat", c.SubmitChat)

	h := r.Group("/api/widget")
	h.Get("", c.GetPage)
	h.Post("/category", c.SelectCategory)
	h.Post("/search", c.Search)
	h.Post("/toggle", c.ToggleProduct)
	h.Post("/routine", c.GenerateRoutine)
	h.Post("/chat", c.SendChat)
	h.Delete("/selection", c.ClearSelections)
	h.Delete("/selection/:key", c.RemoveSelection)
}

// mapError gives service errors their HTTP status.
func mapError(err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownProduct):
		return serverutils.NotFound(err.Error(), err)
	case errors.Is(err, service.ErrRequestInFlight):
		return serverutils.Conflict(err.Error(), err)
	default:
		return err
	}
}

func parse(ctx *fiber.Ctx, req interface{}) error {
	if err := ctx.BodyParser(req); err != nil {
		return serverutils.BadRequest("Invalid request body")
	}
	return serverutils.ValidateRequest(req)
}

func (c *widgetController) Index(ctx *fiber.Ctx) error {
	page, err := c.service.Page(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}

	ctx.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	ctx.Set(fiber.HeaderCacheControl, "no-store")
	return c.renderer.RenderPage(ctx, *page)
}

// redirect finishes a form post. A stale page or a double submit just shows
// the current state again.
func redirect(ctx *fiber.Ctx, err error, anchor string) error {
	if err != nil && !errors.Is(err, service.ErrUnknownProduct) && !errors.Is(err, service.ErrRequestInFlight) {
		return mapError(err)
	}
	return ctx.Redirect("/"+anchor, fiber.StatusSeeOther)
}

func (c *widgetController) SubmitCategory(ctx *fiber.Ctx) error {
	var req dto.SelectCategoryRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	_, err := c.service.SelectCategory(ctx.UserContext(), serverutils.SessionID(ctx), req.Category)
	return redirect(ctx, err, "")
}

func (c *widgetController) SubmitSearch(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	_, err := c.service.Search(ctx.UserContext(), serverutils.SessionID(ctx), req.Query)
	return redirect(ctx, err, "")
}

func (c *widgetController) SubmitToggle(ctx *fiber.Ctx) error {
	var req dto.ToggleProductRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	_, err := c.service.ToggleProduct(ctx.UserContext(), serverutils.SessionID(ctx), req.Key)
	return redirect(ctx, err, "")
}

func (c *widgetController) SubmitRemove(ctx *fiber.Ctx) error {
	var req dto.ToggleProductRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	_, err := c.service.RemoveSelection(ctx.UserContext(), serverutils.SessionID(ctx), req.Key)
	return redirect(ctx, err, "")
}

func (c *widgetController) SubmitClear(ctx *fiber.Ctx) error {
	_, err := c.service.ClearSelections(ctx.UserContext(), serverutils.SessionID(ctx))
	return redirect(ctx, err, "")
}

func (c *widgetController) SubmitRoutine(ctx *fiber.Ctx) error {
	_, err := c.service.GenerateRoutine(ctx.UserContext(), serverutils.SessionID(ctx))
	return redirect(ctx, err, "#chatWindow")
}

func (c *widgetController) SubmitChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}
	_, err := c.service.SendChat(ctx.UserContext(), serverutils.SessionID(ctx), req.Text)
	return redirect(ctx, err, "#chatWindow")
}

func (c *widgetController) GetPage(ctx *fiber.Ctx) error {
	res, err := c.service.Page(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(serverutils.SuccessResponse("Success get widget", res))
}

func (c *widgetController) SelectCategory(ctx *fiber.Ctx) error {
	var req dto.SelectCategoryRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SelectCategory(ctx.UserContext(), serverutils.SessionID(ctx), req.Category)
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success select category", res))
}

func (c *widgetController) Search(ctx *fiber.Ctx) error {
	var req dto.SearchRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.Search(ctx.UserContext(), serverutils.SessionID(ctx), req.Query)
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success search products", res))
}

func (c *widgetController) ToggleProduct(ctx *fiber.Ctx) error {
	var req dto.ToggleProductRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.ToggleProduct(ctx.UserContext(), serverutils.SessionID(ctx), req.Key)
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success toggle product", res))
}

func (c *widgetController) RemoveSelection(ctx *fiber.Ctx) error {
	key, err := url.PathUnescape(ctx.Params("key"))
	if err != nil || key == "" {
		return serverutils.BadRequest("Missing product key")
	}

	res, err := c.service.RemoveSelection(ctx.UserContext(), serverutils.SessionID(ctx), key)
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success remove product", res))
}

func (c *widgetController) ClearSelections(ctx *fiber.Ctx) error {
	res, err := c.service.ClearSelections(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success clear selection", res))
}

func (c *widgetController) GenerateRoutine(ctx *fiber.Ctx) error {
	res, err := c.service.GenerateRoutine(ctx.UserContext(), serverutils.SessionID(ctx))
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success generate routine", res))
}

func (c *widgetController) SendChat(ctx *fiber.Ctx) error {
	var req dto.SendChatRequest
	if err := parse(ctx, &req); err != nil {
		return err
	}

	res, err := c.service.SendChat(ctx.UserContext(), serverutils.SessionID(ctx), req.Text)
	if err != nil {
		return mapError(err)
	}
	return ctx.JSON(serverutils.SuccessResponse("Success send chat", res))
}
