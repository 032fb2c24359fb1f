package usecase

import (
	"context"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	errProfileNameRequired = apperror.Validation("Profile name is required")
	errProfileNameEmpty    = apperror.Validation("Profile name cannot be empty")
	errCriteriaRequired    = apperror.Validation("Criteria array is required")
	errProfileNameTaken    = apperror.Conflict("A profile with this name already exists")
)

type ProfileUsecase struct {
	profiles ProfileStore
	logger   *zap.Logger
}

func NewProfileUsecase(profiles ProfileStore, l *zap.Logger) *ProfileUsecase {
	return &ProfileUsecase{profiles: profiles, logger: logger.OrNop(l)}
}

func (uc *ProfileUsecase) List(ctx context.Context, userID string) ([]model.Profile, error) {
	profiles, err := uc.profiles.List(ctx, userID)
	if profiles == nil && err == nil {
		profiles = []model.Profile{}
	}
	return profiles, err
}

func (uc *ProfileUsecase) Create(ctx context.Context, userID string, req dto.CreateProfileRequest) (*model.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errProfileNameRequired
	}
	if req.Criteria == nil {
		return nil, errCriteriaRequired
	}
	if err := validateCriteria(req.Criteria); err != nil {
		return nil, err
	}

	taken, err := uc.profiles.NameTaken(ctx, userID, name, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, errProfileNameTaken
	}

	p := &model.Profile{
		UserID:      userID,
		Name:        name,
		Description: trimOptional(req.Description),
		Criteria:    req.Criteria,
	}
	if err := uc.profiles.Create(ctx, p); err != nil {
		return nil, err
	}
	uc.logger.Info("profile created", zap.String("user_id", userID), zap.Stringer("profile_id", p.ID))
	return p, nil
}

func (uc *ProfileUsecase) Get(ctx context.Context, userID, rawID string) (*model.Profile, error) {
	id, err := parseID(rawID, "profile")
	if err != nil {
		return nil, err
	}
	return uc.profiles.FindByID(ctx, userID, id)
}

func (uc *ProfileUsecase) Update(ctx context.Context, userID, rawID string, req dto.UpdateProfileRequest) (*model.Profile, error) {
	p, err := uc.Get(ctx, userID, rawID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, errProfileNameEmpty
		}
		if name != p.Name {
			taken, err := uc.profiles.NameTaken(ctx, userID, name, p.ID)
			if err != nil {
				return nil, err
			}
			if taken {
				return nil, errProfileNameTaken
			}
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = trimOptional(req.Description)
	}
	if req.Criteria != nil {
		if err := validateCriteria(*req.Criteria); err != nil {
			return nil, err
		}
		p.Criteria = *req.Criteria
	}

	if err := uc.profiles.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (uc *ProfileUsecase) Delete(ctx context.Context, userID, rawID string) error {
	id, err := parseID(rawID, "profile")
	if err != nil {
		return err
	}
	return uc.profiles.Delete(ctx, userID, id)
}

// validateCriteria requires an id and a name on every criterion, with ids unique.
func validateCriteria(criteria []model.Criterion) error {
	seen := make(map[string]struct{}, len(criteria))
	for _, c := range criteria {
		if strings.TrimSpace(c.ID) == "" || strings.TrimSpace(c.Name) == "" {
			return apperror.Validation("Each criterion needs an id and a name")
		}
		if _, dup := seen[c.ID]; dup {
			return apperror.Validation("Duplicate criterion id: " + c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}

func trimOptional(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}
