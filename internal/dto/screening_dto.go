package dto

import (
	"encoding/json"

	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/verifier"
)

// FileRequest carries a PDF as plain base64 or as a data URL.
type FileRequest struct {
	Filename string `json:"filename"`
	FileData string `json:"fileData"`
}

type UploadResponse struct {
	URL      string `json:"url"`
	Filename string `json:"filename"`
	DevMode  bool   `json:"devMode,omitempty"`
	Fallback bool   `json:"fallback,omitempty"`
}

// AnalyzeRequest scores a PDF against inline criteria or, for signed-in
// callers, against a stored profile's criteria.
type AnalyzeRequest struct {
	FileRequest
	ProfileID string            `json:"profileId"`
	Criteria  []model.Criterion `json:"criteria"`
}

type CandidateResult struct {
	Name                string          `json:"name"`
	Criteria            map[string]bool `json:"criteria"`
	Summary             string          `json:"summary"`
	QualificationsCount int             `json:"qualificationsCount"`
	LinkedInURL         string          `json:"linkedinUrl,omitempty"`
	GitHubURL           string          `json:"githubUrl,omitempty"`
}

// VerifyRequest keeps Keywords raw so a non-array value can be told apart
// from a missing one.
type VerifyRequest struct {
	LinkedInURL string          `json:"linkedinUrl"`
	GitHubURL   string          `json:"githubUrl"`
	Keywords    json.RawMessage `json:"keywords"`
	ResumeID    string          `json:"resumeId"`
}

type VerifyResponse struct {
	VerificationStatus  string                        `json:"verificationStatus"`
	VerificationScore   int                           `json:"verificationScore"`
	VerificationDetails *verifier.VerificationDetails `json:"verificationDetails"`
}

const (
	VerificationVerified = "verified"
	VerificationFailed   = "failed"
)
