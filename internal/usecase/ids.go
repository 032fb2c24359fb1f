package usecase

import (
	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/google/uuid"
)

func parseID(raw, what string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.E(apperror.KindValidation, "Invalid "+what+" id", err)
	}
	return id, nil
}
