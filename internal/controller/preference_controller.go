package controller

import (
	"lexcircle-be/internal/dto"
	"lexcircle-be/internal/pkg/serverutils"
	"lexcircle-be/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type IPreferenceController interface {
	RegisterRoutes(r fiber.Router)
	ListSubjects(ctx *fiber.Ctx) error
	List(ctx *fiber.Ctx) error
	Add(ctx *fiber.Ctx) error
	Remove(ctx *fiber.Ctx) error
}

type preferenceController struct {
	preferenceService service.IPreferenceService
}

func NewPreferenceController(preferenceService service.IPreferenceService) IPreferenceController {
	return &preferenceController{preferenceService: preferenceService}
}

func (c *preferenceController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/preference/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Get("subjects", c.ListSubjects)
	h.Get("", c.List)
	h.Post("", c.Add)
	h.Delete(":preferenceId", c.Remove)
}

func (c *preferenceController) ListSubjects(ctx *fiber.Ctx) error {
	if _, _, err := identityFromLocals(ctx); err != nil {
		return err
	}

	subjects, err := c.preferenceService.ListSubjects(ctx.Context())
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list subjects", subjects))
}

func (c *preferenceController) List(ctx *fiber.Ctx) error {
	userId, _, err := identityFromLocals(ctx)
	if err != nil {
		return err
	}

	preferences, err := c.preferenceService.List(ctx.Context(), userId)
	if err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success list preferences", preferences))
}

func (c *preferenceController) Add(ctx *fiber.Ctx) error {
	userId, _, err := identityFromLocals(ctx)
	if err != nil {
		return err
	}

	var req dto.AddPreferenceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return serverutils.NewValidationError("invalid request body")
	}
	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	preference, err := c.preferenceService.Add(ctx.Context(), userId, req.SubjectId)
	if err != nil {
		return err
	}

	return ctx.Status(fiber.StatusCreated).JSON(serverutils.SuccessResponse("Success add preference", preference))
}

func (c *preferenceController) Remove(ctx *fiber.Ctx) error {
	userId, _, err := identityFromLocals(ctx)
	if err != nil {
		return err
	}

	preferenceId, err := uuid.Parse(ctx.Params("preferenceId"))
	if err != nil {
		return serverutils.NewValidationError("invalid preference id")
	}

	if err := c.preferenceService.Remove(ctx.Context(), userId, preferenceId); err != nil {
		return err
	}

	return ctx.JSON(serverutils.SuccessResponse("Success remove preference", nil))
}
