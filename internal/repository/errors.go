package repository

import (
	"errors"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"gorm.io/gorm"
)

// translate maps gorm sentinel errors to apperror kinds. The connection must
// be opened with TranslateError so unique violations surface as ErrDuplicatedKey.
func translate(err error, notFound, conflict string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return apperror.E(apperror.KindNotFound, notFound, err)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return apperror.E(apperror.KindConflict, conflict, err)
	default:
		return err
	}
}
