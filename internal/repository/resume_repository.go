package repository

import (
	"context"
	"time"

	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

const (
	resumeNotFound  = "Resume not found"
	resumeDuplicate = "This resume is already attached to the profile"
)

type ResumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) *ResumeRepository {
	return &ResumeRepository{db}
}

// SimilarResume is a resume plus its embedding distance to the query vector.
type SimilarResume struct {
	model.Resume
	Distance float64
}

func (r *ResumeRepository) ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]model.Resume, int64, error) {
	var (
		resumes []model.Resume
		total   int64
	)
	q := r.db.WithContext(ctx).Model(&model.Resume{}).Where("profile_id = ?", profileID)
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if limit > 0 {
		q = q.Offset(offset).Limit(limit)
	}
	err := q.Omit("embedding").Order("uploaded_at DESC").Find(&resumes).Error
	return resumes, total, err
}

func (r *ResumeRepository) FindByID(ctx context.Context, profileID, id uuid.UUID) (*model.Resume, error) {
	var res model.Resume
	err := r.db.WithContext(ctx).First(&res, "id = ? AND profile_id = ?", id, profileID).Error
	if err != nil {
		return nil, translate(err, resumeNotFound, resumeDuplicate)
	}
	return &res, nil
}

// OwnedBy reports whether the resume belongs to one of userID's profiles.
func (r *ResumeRepository) OwnedBy(ctx context.Context, userID string, id uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Resume{}).
		Joins("JOIN profiles ON profiles.id = resumes.profile_id").
		Where("resumes.id = ? AND profiles.user_id = ?", id, userID).
		Count(&count).Error
	return count > 0, err
}

func (r *ResumeRepository) BlobTaken(ctx context.Context, profileID uuid.UUID, blobURL string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Resume{}).
		Where("profile_id = ? AND blob_url = ?", profileID, blobURL).
		Count(&count).Error
	return count > 0, err
}

func (r *ResumeRepository) Create(ctx context.Context, res *model.Resume) error {
	return translate(r.db.WithContext(ctx).Create(res).Error, resumeNotFound, resumeDuplicate)
}

func (r *ResumeRepository) Delete(ctx context.Context, profileID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ? AND profile_id = ?", id, profileID).Delete(&model.Resume{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, resumeNotFound, resumeDuplicate)
	}
	return nil
}

func (r *ResumeRepository) SaveVerification(ctx context.Context, id uuid.UUID, details *verifier.VerificationDetails, at time.Time) error {
	return r.db.WithContext(ctx).Model(&model.Resume{}).
		Where("id = ?", id).
		Select("verification_result", "verified_at").
		Updates(&model.Resume{VerificationResult: details, VerifiedAt: &at}).Error
}

func (r *ResumeRepository) SaveEmbedding(ctx context.Context, id uuid.UUID, embedding pgvector.Vector) error {
	return r.db.WithContext(ctx).Model(&model.Resume{}).
		Where("id = ?", id).
		Update("embedding", embedding).Error
}

// SearchSimilar orders resumes of the same profile by L2 distance to embedding.
func (r *ResumeRepository) SearchSimilar(ctx context.Context, profileID, exclude uuid.UUID, embedding pgvector.Vector, topK int) ([]SimilarResume, error) {
	var resumes []SimilarResume

	err := r.db.WithContext(ctx).Raw(`
        SELECT *, embedding <-> ? AS distance
        FROM resumes
        WHERE profile_id = ? AND id <> ? AND embedding IS NOT NULL
        ORDER BY embedding <-> ?
        LIMIT ?
    `, embedding, profileID, exclude, embedding, topK).Scan(&resumes).Error

	return resumes, err
}
