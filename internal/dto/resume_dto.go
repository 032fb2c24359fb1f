package dto

import (
	"time"

	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/google/uuid"
)

type AddResumeRequest struct {
	Filename       string                `json:"filename"`
	BlobURL        string                `json:"blob_url"`
	AnalysisResult *model.ResumeAnalysis `json:"analysis_result"`
	LinkedInURL    *string               `json:"linkedin_url"`
	GitHubURL      *string               `json:"github_url"`
	// Text is only used to compute the similarity embedding; it is not stored.
	Text string `json:"text,omitempty"`
}

type ListResumesQuery struct {
	Page     int `query:"page"`
	PageSize int `query:"page_size"`
}

type ResumeDTO struct {
	ID                 uuid.UUID                     `json:"id"`
	ProfileID          uuid.UUID                     `json:"profile_id"`
	Filename           string                        `json:"filename"`
	BlobURL            string                        `json:"blob_url"`
	AnalysisResult     *model.ResumeAnalysis         `json:"analysis_result,omitempty"`
	LinkedInURL        *string                       `json:"linkedin_url,omitempty"`
	GitHubURL          *string                       `json:"github_url,omitempty"`
	VerificationResult *verifier.VerificationDetails `json:"verification_result,omitempty"`
	VerifiedAt         *time.Time                    `json:"verified_at,omitempty"`
	UploadedAt         time.Time                     `json:"uploaded_at"`
}

func NewResumeDTO(r *model.Resume) ResumeDTO {
	return ResumeDTO{
		ID:                 r.ID,
		ProfileID:          r.ProfileID,
		Filename:           r.Filename,
		BlobURL:            r.BlobURL,
		AnalysisResult:     r.AnalysisResult,
		LinkedInURL:        r.LinkedInURL,
		GitHubURL:          r.GitHubURL,
		VerificationResult: r.VerificationResult,
		VerifiedAt:         r.VerifiedAt,
		UploadedAt:         r.UploadedAt,
	}
}

func NewResumeDTOs(rs []model.Resume) []ResumeDTO {
	out := make([]ResumeDTO, 0, len(rs))
	for i := range rs {
		out = append(out, NewResumeDTO(&rs[i]))
	}
	return out
}

// SimilarResumeDTO pairs a resume with its embedding distance to the query resume.
type SimilarResumeDTO struct {
	ResumeDTO
	Distance float64 `json:"distance"`
}
