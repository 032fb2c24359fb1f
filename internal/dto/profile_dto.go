package dto

import "github.com/fadilmartias/resume-screener/internal/model"

type CreateProfileRequest struct {
	Name        string            `json:"name"`
	Description *string           `json:"description"`
	Criteria    []model.Criterion `json:"criteria"`
}

// UpdateProfileRequest is a partial update; nil fields are left unchanged.
type UpdateProfileRequest struct {
	Name        *string            `json:"name"`
	Description *string            `json:"description"`
	Criteria    *[]model.Criterion `json:"criteria"`
}
