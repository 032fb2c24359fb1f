package repository

import (
	"context"

	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	profileNotFound  = "Profile not found"
	profileDuplicate = "A profile with this name already exists"
)

// ProfileRepository scopes every query to the owning user.
type ProfileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) *ProfileRepository {
	return &ProfileRepository{db}
}

func (r *ProfileRepository) List(ctx context.Context, userID string) ([]model.Profile, error) {
	var profiles []model.Profile
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("updated_at DESC").
		Find(&profiles).Error
	return profiles, err
}

func (r *ProfileRepository) FindByID(ctx context.Context, userID string, id uuid.UUID) (*model.Profile, error) {
	var p model.Profile
	err := r.db.WithContext(ctx).First(&p, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		return nil, translate(err, profileNotFound, profileDuplicate)
	}
	return &p, nil
}

// NameTaken reports whether userID already has a profile called name,
// ignoring the profile with id except when id is uuid.Nil.
func (r *ProfileRepository) NameTaken(ctx context.Context, userID, name string, except uuid.UUID) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&model.Profile{}).Where("user_id = ? AND name = ?", userID, name)
	if except != uuid.Nil {
		q = q.Where("id <> ?", except)
	}
	err := q.Count(&count).Error
	return count > 0, err
}

func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	return translate(r.db.WithContext(ctx).Create(p).Error, profileNotFound, profileDuplicate)
}

func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	return translate(r.db.WithContext(ctx).Save(p).Error, profileNotFound, profileDuplicate)
}

func (r *ProfileRepository) Delete(ctx context.Context, userID string, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&model.Profile{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return translate(gorm.ErrRecordNotFound, profileNotFound, profileDuplicate)
	}
	return nil
}
