package handler

import (
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/middleware"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ProfileHandler struct {
	uc   ProfileService
	auth *middleware.Auth
}

func NewProfileHandler(uc ProfileService, auth *middleware.Auth) *ProfileHandler {
	return &ProfileHandler{uc: uc, auth: auth}
}

func (h *ProfileHandler) RegisterRoutes(app *fiber.App) {
	profiles := app.Group("/api/profiles", h.auth.Required())
	profiles.Get("/", h.List)
	profiles.Post("/", h.Create)
	profiles.Get("/:id", h.Get)
	profiles.Put("/:id", h.Update)
	profiles.Delete("/:id", h.Delete)
}

func (h *ProfileHandler) List(c *fiber.Ctx) error {
	profiles, err := h.uc.List(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profiles",
		Data:    profiles,
	})
}

func (h *ProfileHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	profile, err := h.uc.Create(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Profile created",
		Data:    profile,
	})
}

func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profile, err := h.uc.Get(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get profile",
		Data:    profile,
	})
}

func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	profile, err := h.uc.Update(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile updated",
		Data:    profile,
	})
}

func (h *ProfileHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id")); err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Profile deleted",
	})
}
