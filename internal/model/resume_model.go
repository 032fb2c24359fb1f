package model

import (
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

// EmbeddingDimensions matches gemini-embedding-001.
const EmbeddingDimensions = 3072

type ResumeAnalysis struct {
	Criteria            map[string]bool `json:"criteria"`
	Summary             string          `json:"summary"`
	QualificationsCount int             `json:"qualificationsCount"`
}

type Resume struct {
	ID                 uuid.UUID                     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ProfileID          uuid.UUID                     `gorm:"type:uuid;not null;index;uniqueIndex:idx_resumes_profile_blob" json:"profile_id"`
	Profile            *Profile                      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Filename           string                        `gorm:"type:varchar(255);not null" json:"filename"`
	BlobURL            string                        `gorm:"type:text;not null;uniqueIndex:idx_resumes_profile_blob" json:"blob_url"`
	AnalysisResult     *ResumeAnalysis               `gorm:"type:jsonb;serializer:json" json:"analysis_result,omitempty"`
	LinkedInURL        *string                       `gorm:"column:linkedin_url;type:text" json:"linkedin_url,omitempty"`
	GitHubURL          *string                       `gorm:"column:github_url;type:text" json:"github_url,omitempty"`
	VerificationResult *verifier.VerificationDetails `gorm:"type:jsonb;serializer:json" json:"verification_result,omitempty"`
	VerifiedAt         *time.Time                    `json:"verified_at,omitempty"`
	Embedding          *pgvector.Vector              `gorm:"type:vector(3072)" json:"-"`
	UploadedAt         time.Time                     `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (r *Resume) TableName() string {
	return "resumes"
}

// QualificationsCount is zero for resumes that were never analyzed.
func (r *Resume) QualificationsCount() int {
	if r.AnalysisResult == nil {
		return 0
	}
	return r.AnalysisResult.QualificationsCount
}

// CandidateName is the filename without its .pdf suffix.
func CandidateName(filename string) string {
	if n := len(filename); n >= 4 && strings.EqualFold(filename[n-4:], ".pdf") {
		return filename[:n-4]
	}
	return filename
}
