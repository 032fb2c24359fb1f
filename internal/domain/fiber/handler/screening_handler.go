package handler

import (
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/middleware"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
)

type ScreeningHandler struct {
	uc   ScreeningService
	auth *middleware.Auth
}

func NewScreeningHandler(uc ScreeningService, auth *middleware.Auth) *ScreeningHandler {
	return &ScreeningHandler{uc: uc, auth: auth}
}

func (h *ScreeningHandler) RegisterRoutes(app *fiber.App) {
	api := app.Group("/api")
	api.Post("/upload", h.Upload)
	api.Post("/analyze", middleware.RateLimiter(30, time.Minute), h.auth.Optional(), h.Analyze)
	api.Post("/verify", middleware.RateLimiter(30, time.Minute), h.auth.Optional(), h.Verify)
}

func (h *ScreeningHandler) Upload(c *fiber.Ctx) error {
	var req dto.FileRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	res, err := h.uc.Upload(c.UserContext(), req)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "File uploaded",
		Data:    res,
	})
}

func (h *ScreeningHandler) Analyze(c *fiber.Ctx) error {
	var req dto.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	res, err := h.uc.Analyze(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume analyzed",
		Data:    res,
	})
}

func (h *ScreeningHandler) Verify(c *fiber.Ctx) error {
	var req dto.VerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return h.verifyFailed(c, apperror.E(apperror.KindValidation, "Invalid request body", err))
	}
	details, err := h.uc.Verify(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return h.verifyFailed(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Verification complete",
		Data: dto.VerifyResponse{
			VerificationStatus:  dto.VerificationVerified,
			VerificationScore:   details.OverallScore,
			VerificationDetails: details,
		},
	})
}

func (h *ScreeningHandler) verifyFailed(c *fiber.Ctx, err error) error {
	kind := apperror.KindOf(err)
	message := apperror.Message(err)
	if kind == apperror.KindInternal {
		message = "Verification failed"
	}
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    kind.Status(),
		Message: message,
		Details: fiber.Map{"verificationStatus": dto.VerificationFailed},
	}, err)
}
