package usecase

import (
	"context"
	"io"
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/export"
	"github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/repository"
	"github.com/fadilmartias/resume-screener/internal/response"
	"github.com/fadilmartias/resume-screener/internal/service"
	"github.com/fadilmartias/resume-screener/internal/storage"
	"github.com/pgvector/pgvector-go"
	"go.uber.org/zap"
)

const defaultSimilarCount = 5

var (
	errResumeFieldsRequired = apperror.Validation("Filename and blob_url are required")
	errResumeDuplicate      = apperror.Conflict("This resume is already attached to the profile")
	errNoEmbedding          = apperror.Validation("Resume has no embedding to compare")
)

type ResumeUsecase struct {
	profiles ProfileStore
	resumes  ResumeStore
	embedder service.Embedder
	now      func() time.Time
	logger   *zap.Logger
}

// NewResumeUsecase wires resume management. embedder may be nil, which
// disables similarity embeddings for new resumes.
func NewResumeUsecase(profiles ProfileStore, resumes ResumeStore, embedder service.Embedder, l *zap.Logger) *ResumeUsecase {
	return &ResumeUsecase{
		profiles: profiles,
		resumes:  resumes,
		embedder: embedder,
		now:      time.Now,
		logger:   logger.OrNop(l),
	}
}

// profile loads the caller's profile, so foreign profiles read as not found.
func (uc *ResumeUsecase) profile(ctx context.Context, userID, rawID string) (*model.Profile, error) {
	id, err := parseID(rawID, "profile")
	if err != nil {
		return nil, err
	}
	return uc.profiles.FindByID(ctx, userID, id)
}

func (uc *ResumeUsecase) List(ctx context.Context, userID, profileID string, q dto.ListResumesQuery) ([]model.Resume, *response.Pagination, error) {
	p, err := uc.profile(ctx, userID, profileID)
	if err != nil {
		return nil, nil, err
	}

	page, size := response.NormalizePage(q.Page, q.PageSize)
	resumes, total, err := uc.resumes.ListByProfile(ctx, p.ID, response.Offset(page, size), size)
	if err != nil {
		return nil, nil, err
	}
	if resumes == nil {
		resumes = []model.Resume{}
	}
	return resumes, response.NewPagination(page, size, total), nil
}

func (uc *ResumeUsecase) Add(ctx context.Context, userID, profileID string, req dto.AddResumeRequest) (*model.Resume, error) {
	req.Filename = strings.TrimSpace(req.Filename)
	req.BlobURL = strings.TrimSpace(req.BlobURL)
	if req.Filename == "" || req.BlobURL == "" {
		return nil, errResumeFieldsRequired
	}

	p, err := uc.profile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}

	taken, err := uc.resumes.BlobTaken(ctx, p.ID, req.BlobURL)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errResumeDuplicate
	}

	r := &model.Resume{
		ProfileID:      p.ID,
		Filename:       req.Filename,
		BlobURL:        req.BlobURL,
		AnalysisResult: req.AnalysisResult,
		LinkedInURL:    trimOptional(req.LinkedInURL),
		GitHubURL:      trimOptional(req.GitHubURL),
	}
	if err := uc.resumes.Create(ctx, r); err != nil {
		return nil, err
	}

	if uc.embedder != nil && strings.TrimSpace(req.Text) != "" {
		uc.embed(ctx, r, req.Text)
	}
	return r, nil
}

// embed stores the similarity embedding for r. Failures only cost the
// resume its place in similarity search, so they are logged.
func (uc *ResumeUsecase) embed(ctx context.Context, r *model.Resume, text string) {
	values, err := uc.embedder.GenerateEmbedding(ctx, text)
	if err != nil {
		uc.logger.Warn("resume embedding failed", zap.Stringer("resume_id", r.ID), zap.Error(err))
		return
	}
	vec := pgvector.NewVector(values)
	if err := uc.resumes.SaveEmbedding(ctx, r.ID, vec); err != nil {
		uc.logger.Warn("saving resume embedding failed", zap.Stringer("resume_id", r.ID), zap.Error(err))
		return
	}
	r.Embedding = &vec
}

func (uc *ResumeUsecase) Delete(ctx context.Context, userID, profileID, resumeID string) error {
	p, err := uc.profile(ctx, userID, profileID)
	if err != nil {
		return err
	}
	id, err := parseID(resumeID, "resume")
	if err != nil {
		return err
	}
	return uc.resumes.Delete(ctx, p.ID, id)
}

// Export writes the profile's ranked xlsx report to w and returns a
// suggested file name.
func (uc *ResumeUsecase) Export(ctx context.Context, userID, profileID string, w io.Writer) (string, error) {
	p, err := uc.profile(ctx, userID, profileID)
	if err != nil {
		return "", err
	}
	resumes, _, err := uc.resumes.ListByProfile(ctx, p.ID, 0, 0)
	if err != nil {
		return "", err
	}

	candidates := make([]export.Candidate, 0, len(resumes))
	for i := range resumes {
		candidates = append(candidates, export.CandidateFromResume(&resumes[i]))
	}

	report := export.Report{
		Title:       p.Name,
		Criteria:    p.Criteria,
		Candidates:  candidates,
		GeneratedAt: uc.now(),
	}
	if err := export.WriteReport(w, report); err != nil {
		return "", err
	}
	return storage.SafeName(p.Name) + "-ranked.xlsx", nil
}

func (uc *ResumeUsecase) Similar(ctx context.Context, userID, profileID, resumeID string, topK int) ([]repository.SimilarResume, error) {
	p, err := uc.profile(ctx, userID, profileID)
	if err != nil {
		return nil, err
	}
	id, err := parseID(resumeID, "resume")
	if err != nil {
		return nil, err
	}
	r, err := uc.resumes.FindByID(ctx, p.ID, id)
	if err != nil {
		return nil, err
	}
	if r.Embedding == nil {
		return nil, errNoEmbedding
	}
	if topK <= 0 || topK > 50 {
		topK = defaultSimilarCount
	}

	similar, err := uc.resumes.SearchSimilar(ctx, p.ID, r.ID, *r.Embedding, topK)
	if similar == nil && err == nil {
		similar = []repository.SimilarResume{}
	}
	return similar, err
}
