package verifier

import (
	"errors"

	"github.com/fadilmartias/resume-screener/internal/apperror"
)

var (
	ErrNoProfileURLs    = apperror.Validation("No LinkedIn or GitHub URLs found")
	ErrInvalidGitHubURL = apperror.Validation("Invalid GitHub URL")
	ErrProfileNotFound  = apperror.NotFound("GitHub profile not found")
	ErrRateLimited      = apperror.E(apperror.KindRateLimit, "GitHub rate limit approached - verification queued", nil)
	ErrUnexpectedGitHub = apperror.E(apperror.KindExternalService, "Unexpected GitHub API response", nil)
	ErrRequestTimeout   = errors.New("request timed out")
)
