package usecase

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/service"
	"github.com/fadilmartias/resume-screener/internal/storage"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"go.uber.org/zap"
)

const pdfContentType = "application/pdf"

var (
	errMissingFile     = apperror.Validation("Missing filename or fileData")
	errNoText          = apperror.Validation("No text could be extracted from PDF")
	errNoCriteria      = apperror.Validation("At least one criterion is required")
	errKeywordsMissing = apperror.Validation("Keywords array is required")
)

// ScreeningUsecase covers the upload, analyze and verify flows.
type ScreeningUsecase struct {
	extractor TextExtractor
	analyzer  service.Analyzer
	verifier  ProfileVerifier
	blobs     storage.BlobStore
	profiles  ProfileStore
	resumes   ResumeStore
	now       func() time.Time
	logger    *zap.Logger
}

// NewScreeningUsecase wires the screening flows. blobs may be nil, in which
// case uploads fall back to returning the data URL.
func NewScreeningUsecase(ext TextExtractor, analyzer service.Analyzer, ver ProfileVerifier, blobs storage.BlobStore, profiles ProfileStore, resumes ResumeStore, l *zap.Logger) *ScreeningUsecase {
	return &ScreeningUsecase{
		extractor: ext,
		analyzer:  analyzer,
		verifier:  ver,
		blobs:     blobs,
		profiles:  profiles,
		resumes:   resumes,
		now:       time.Now,
		logger:    logger.OrNop(l),
	}
}

func (uc *ScreeningUsecase) Upload(ctx context.Context, req dto.FileRequest) (*dto.UploadResponse, error) {
	if req.Filename == "" || req.FileData == "" {
		return nil, errMissingFile
	}
	data, err := storage.DecodeFileData(req.FileData)
	if err != nil {
		return nil, err
	}

	if uc.blobs == nil {
		uc.logger.Warn("blob storage not configured, using data URL fallback")
		return &dto.UploadResponse{URL: req.FileData, Filename: req.Filename, DevMode: true}, nil
	}

	url, err := uc.blobs.Put(ctx, req.Filename, data, pdfContentType)
	if err != nil {
		uc.logger.Error("blob upload failed, using data URL fallback", zap.Error(err))
		return &dto.UploadResponse{URL: req.FileData, Filename: req.Filename, DevMode: true, Fallback: true}, nil
	}
	return &dto.UploadResponse{URL: url, Filename: req.Filename}, nil
}

// Analyze extracts the PDF text and scores it against the request criteria,
// or against the caller's stored profile when ProfileID is set.
func (uc *ScreeningUsecase) Analyze(ctx context.Context, userID string, req dto.AnalyzeRequest) (*dto.CandidateResult, error) {
	if req.Filename == "" || req.FileData == "" {
		return nil, errMissingFile
	}

	criteria, err := uc.criteriaFor(ctx, userID, req)
	if err != nil {
		return nil, err
	}

	data, err := storage.DecodeFileData(req.FileData)
	if err != nil {
		return nil, err
	}

	extracted, err := uc.extractor.Extract(ctx, data)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(extracted.Text) == "" {
		return nil, errNoText
	}

	analysis, err := uc.analyzer.Analyze(ctx, extracted.Text, criteria)
	if err != nil {
		return nil, err
	}
	analysis = service.ValidateAnalysis(extracted.Text, analysis, criteria)

	uc.logger.Info("resume analyzed",
		zap.String("filename", req.Filename),
		zap.Int("qualifications", analysis.QualificationsCount),
		zap.Bool("cover_letter_skipped", extracted.CoverLetter),
	)

	return &dto.CandidateResult{
		Name:                model.CandidateName(req.Filename),
		Criteria:            analysis.Criteria,
		Summary:             analysis.Summary,
		QualificationsCount: analysis.QualificationsCount,
		LinkedInURL:         extracted.LinkedInURL,
		GitHubURL:           extracted.GitHubURL,
	}, nil
}

func (uc *ScreeningUsecase) criteriaFor(ctx context.Context, userID string, req dto.AnalyzeRequest) ([]model.Criterion, error) {
	criteria := req.Criteria
	if req.ProfileID != "" {
		if userID == "" {
			return nil, apperror.Unauthorized("Authentication required to use a saved profile")
		}
		id, err := parseID(req.ProfileID, "profile")
		if err != nil {
			return nil, err
		}
		profile, err := uc.profiles.FindByID(ctx, userID, id)
		if err != nil {
			return nil, err
		}
		criteria = profile.Criteria
	}
	if len(criteria) == 0 {
		return nil, errNoCriteria
	}
	return criteria, nil
}

// Verify checks the candidate's public profiles. When the caller is signed in
// and names one of their resumes, the result is stored on it; storage
// failures are logged and never fail the request.
func (uc *ScreeningUsecase) Verify(ctx context.Context, userID string, req dto.VerifyRequest) (*verifier.VerificationDetails, error) {
	if strings.TrimSpace(req.LinkedInURL) == "" && strings.TrimSpace(req.GitHubURL) == "" {
		return nil, verifier.ErrNoProfileURLs
	}

	keywords, err := parseKeywords(req.Keywords)
	if err != nil {
		return nil, err
	}

	details, err := uc.verifier.Verify(ctx, verifier.Request{
		LinkedInURL: req.LinkedInURL,
		GitHubURL:   req.GitHubURL,
		Keywords:    keywords,
	})
	if err != nil {
		return nil, err
	}

	if req.ResumeID != "" && userID != "" && uc.resumes != nil {
		uc.persistVerification(ctx, userID, req.ResumeID, details)
	}
	return details, nil
}

func parseKeywords(raw json.RawMessage) ([]string, error) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return nil, errKeywordsMissing
	}
	var keywords []string
	if err := json.Unmarshal(raw, &keywords); err != nil {
		return nil, apperror.E(apperror.KindValidation, errKeywordsMissing.Message, err)
	}
	return keywords, nil
}

func (uc *ScreeningUsecase) persistVerification(ctx context.Context, userID, rawID string, details *verifier.VerificationDetails) {
	log := uc.logger.With(zap.String("resume_id", rawID))

	id, err := parseID(rawID, "resume")
	if err != nil {
		log.Warn("not storing verification", zap.Error(err))
		return
	}
	owned, err := uc.resumes.OwnedBy(ctx, userID, id)
	if err != nil {
		log.Error("resume ownership check failed", zap.Error(err))
		return
	}
	if !owned {
		log.Warn("not storing verification for a resume the caller does not own")
		return
	}
	if err := uc.resumes.SaveVerification(ctx, id, details, uc.now()); err != nil {
		log.Error("error updating resume with verification result", zap.Error(err))
	}
}
