package handler

import (
	"context"
	"io"

	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/repository"
	"github.com/fadilmartias/resume-screener/internal/response"
	"github.com/fadilmartias/resume-screener/internal/util"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/gofiber/fiber/v2"
)

type ScreeningService interface {
	Upload(ctx context.Context, req dto.FileRequest) (*dto.UploadResponse, error)
	Analyze(ctx context.Context, userID string, req dto.AnalyzeRequest) (*dto.CandidateResult, error)
	Verify(ctx context.Context, userID string, req dto.VerifyRequest) (*verifier.VerificationDetails, error)
}

type ProfileService interface {
	List(ctx context.Context, userID string) ([]model.Profile, error)
	Create(ctx context.Context, userID string, req dto.CreateProfileRequest) (*model.Profile, error)
	Get(ctx context.Context, userID, id string) (*model.Profile, error)
	Update(ctx context.Context, userID, id string, req dto.UpdateProfileRequest) (*model.Profile, error)
	Delete(ctx context.Context, userID, id string) error
}

type ResumeService interface {
	List(ctx context.Context, userID, profileID string, q dto.ListResumesQuery) ([]model.Resume, *response.Pagination, error)
	Add(ctx context.Context, userID, profileID string, req dto.AddResumeRequest) (*model.Resume, error)
	Delete(ctx context.Context, userID, profileID, resumeID string) error
	Export(ctx context.Context, userID, profileID string, w io.Writer) (string, error)
	Similar(ctx context.Context, userID, profileID, resumeID string, topK int) ([]repository.SimilarResume, error)
}

func badBody(c *fiber.Ctx, err error) error {
	return util.ErrorResponse(c, util.ErrorResponseFormat{
		Code:    fiber.StatusBadRequest,
		Message: "Invalid request body",
	}, err)
}
