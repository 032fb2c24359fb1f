package handler

import (
	"bytes"
	"fmt"

	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/middleware"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/gofiber/fiber/v2"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type ResumeHandler struct {
	uc   ResumeService
	auth *middleware.Auth
}

func NewResumeHandler(uc ResumeService, auth *middleware.Auth) *ResumeHandler {
	return &ResumeHandler{uc: uc, auth: auth}
}

func (h *ResumeHandler) RegisterRoutes(app *fiber.App) {
	resumes := app.Group("/api/profiles/:id/resumes", h.auth.Required())
	resumes.Get("/", h.List)
	resumes.Post("/", h.Add)
	resumes.Get("/export", h.Export)
	resumes.Delete("/:resumeId", h.Delete)
	resumes.Get("/:resumeId/similar", h.Similar)
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	var q dto.ListResumesQuery
	if err := c.QueryParser(&q); err != nil {
		return util.ErrorResponse(c, util.ErrorResponseFormat{
			Code:    fiber.StatusBadRequest,
			Message: "Invalid pagination parameters",
		}, err)
	}
	resumes, page, err := h.uc.List(c.UserContext(), middleware.UserID(c), c.Params("id"), q)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message:    "Success get resumes",
		Data:       dto.NewResumeDTOs(resumes),
		Pagination: page,
	})
}

func (h *ResumeHandler) Add(c *fiber.Ctx) error {
	var req dto.AddResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	resume, err := h.uc.Add(c.UserContext(), middleware.UserID(c), c.Params("id"), req)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Code:    fiber.StatusCreated,
		Message: "Resume added",
		Data:    dto.NewResumeDTO(resume),
	})
}

func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), middleware.UserID(c), c.Params("id"), c.Params("resumeId")); err != nil {
		return util.AppErrorResponse(c, err)
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Resume deleted",
	})
}

func (h *ResumeHandler) Export(c *fiber.Ctx) error {
	var buf bytes.Buffer
	filename, err := h.uc.Export(c.UserContext(), middleware.UserID(c), c.Params("id"), &buf)
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(buf.Bytes())
}

func (h *ResumeHandler) Similar(c *fiber.Ctx) error {
	similar, err := h.uc.Similar(c.UserContext(), middleware.UserID(c), c.Params("id"), c.Params("resumeId"), c.QueryInt("limit"))
	if err != nil {
		return util.AppErrorResponse(c, err)
	}
	data := make([]dto.SimilarResumeDTO, 0, len(similar))
	for i := range similar {
		data = append(data, dto.SimilarResumeDTO{
			ResumeDTO: dto.NewResumeDTO(&similar[i].Resume),
			Distance:  similar[i].Distance,
		})
	}
	return util.SuccessResponse(c, util.SuccessResponseFormat{
		Message: "Success get similar resumes",
		Data:    data,
	})
}
