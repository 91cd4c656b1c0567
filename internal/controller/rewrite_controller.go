package controller

import (
	"ai-promptcraft-be/internal/dto"
	"ai-promptcraft-be/internal/pkg/apperr"
	"ai-promptcraft-be/internal/pkg/serverutils"
	"ai-promptcraft-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IRewriteController interface {
	RegisterRoutes(r fiber.Router)
	Rewrite(ctx *fiber.Ctx) error
	SelfImprove(ctx *fiber.Ctx) error
	Modes(ctx *fiber.Ctx) error
}

type rewriteController struct {
	rewriteService service.IRewriteService
}

func NewRewriteController(rewriteService service.IRewriteService) IRewriteController {
	return &rewriteController{
		rewriteService: rewriteService,
	}
}

func (c *rewriteController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/rewrite/v1")
	h.Get("modes", c.Modes)
	h.Post("", c.Rewrite)
	h.Post("self-improve", c.SelfImprove)
}

func (c *rewriteController) Rewrite(ctx *fiber.Ctx) error {
	var req dto.RewriteRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.New(apperr.KindInvalidInput, err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.rewriteService.Rewrite(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *rewriteController) SelfImprove(ctx *fiber.Ctx) error {
	var req dto.SelfImproveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return apperr.New(apperr.KindInvalidInput, err)
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	res, err := c.rewriteService.SelfImprove(ctx.Context(), &req)
	if err != nil {
		return err
	}

	return ctx.JSON(res)
}

func (c *rewriteController) Modes(ctx *fiber.Ctx) error {
	return ctx.JSON(c.rewriteService.Modes())
}
