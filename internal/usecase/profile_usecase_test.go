package usecase

import (
	"context"
	"testing"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/model"
)

func strPtr(s string) *string { return &s }

func TestProfileCreate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		req      dto.CreateProfileRequest
		wantKind apperror.Kind
		wantErr  bool
	}{
		{
			name: "valid",
			req: dto.CreateProfileRequest{
				Name:        "  Backend  ",
				Description: strPtr("  Go roles "),
				Criteria:    goCriteria,
			},
		},
		{
			name:     "blank name",
			req:      dto.CreateProfileRequest{Name: "   ", Criteria: goCriteria},
			wantErr:  true,
			wantKind: apperror.KindValidation,
		},
		{
			name:     "criteria missing",
			req:      dto.CreateProfileRequest{Name: "Backend"},
			wantErr:  true,
			wantKind: apperror.KindValidation,
		},
		{
			name: "criterion without name",
			req: dto.CreateProfileRequest{
				Name:     "Backend",
				Criteria: []model.Criterion{{ID: "go"}},
			},
			wantErr:  true,
			wantKind: apperror.KindValidation,
		},
		{
			name: "duplicate criterion ids",
			req: dto.CreateProfileRequest{
				Name:     "Backend",
				Criteria: []model.Criterion{{ID: "go", Name: "Go"}, {ID: "go", Name: "Golang"}},
			},
			wantErr:  true,
			wantKind: apperror.KindValidation,
		},
		{
			name:     "name taken",
			req:      dto.CreateProfileRequest{Name: "Existing", Criteria: goCriteria},
			wantErr:  true,
			wantKind: apperror.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeProfiles()
			store.add("user-1", "Existing")
			uc := NewProfileUsecase(store, nil)

			got, err := uc.Create(context.Background(), "user-1", tt.req)
			if tt.wantErr {
				if !apperror.Is(err, tt.wantKind) {
					t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
			if got.Name != "Backend" || got.UserID != "user-1" {
				t.Errorf("profile = %+v", got)
			}
			if got.Description == nil || *got.Description != "Go roles" {
				t.Errorf("description = %v", got.Description)
			}
			if len(got.Criteria) != 2 {
				t.Errorf("criteria = %+v", got.Criteria)
			}
		})
	}
}

func TestProfileCreateAllowsSameNameForOtherUser(t *testing.T) {
	t.Parallel()
	store := newFakeProfiles()
	store.add("user-2", "Backend")
	uc := NewProfileUsecase(store, nil)

	if _, err := uc.Create(context.Background(), "user-1", dto.CreateProfileRequest{Name: "Backend", Criteria: []model.Criterion{}}); err != nil {
		t.Fatalf("Create: %v", err)
	}
}

func TestProfileListIsNeverNil(t *testing.T) {
	t.Parallel()
	uc := NewProfileUsecase(newFakeProfiles(), nil)

	got, err := uc.List(context.Background(), "nobody")
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if got == nil {
		t.Fatal("List returned nil slice")
	}
}

func TestProfileGetScopedToOwner(t *testing.T) {
	t.Parallel()
	store := newFakeProfiles()
	p := store.add("user-1", "Backend", goCriteria...)
	uc := NewProfileUsecase(store, nil)

	if _, err := uc.Get(context.Background(), "user-1", p.ID.String()); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
	if _, err := uc.Get(context.Background(), "user-2", p.ID.String()); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("foreign Get err = %v", err)
	}
	if _, err := uc.Get(context.Background(), "user-1", "123"); !apperror.Is(err, apperror.KindValidation) {
		t.Errorf("bad id err = %v", err)
	}
}

func TestProfileUpdate(t *testing.T) {
	t.Parallel()

	newCriteria := []model.Criterion{{ID: "py", Name: "Python", Keywords: []string{"python"}}}

	tests := []struct {
		name     string
		req      dto.UpdateProfileRequest
		wantKind apperror.Kind
		wantErr  bool
		check    func(t *testing.T, p *model.Profile)
	}{
		{
			name: "rename",
			req:  dto.UpdateProfileRequest{Name: strPtr(" Platform ")},
			check: func(t *testing.T, p *model.Profile) {
				if p.Name != "Platform" || len(p.Criteria) != 2 {
					t.Errorf("profile = %+v", p)
				}
			},
		},
		{
			name: "same name is not a conflict",
			req:  dto.UpdateProfileRequest{Name: strPtr("Backend")},
			check: func(t *testing.T, p *model.Profile) {
				if p.Name != "Backend" {
					t.Errorf("name = %q", p.Name)
				}
			},
		},
		{
			name: "replace criteria",
			req:  dto.UpdateProfileRequest{Criteria: &newCriteria},
			check: func(t *testing.T, p *model.Profile) {
				if len(p.Criteria) != 1 || p.Criteria[0].ID != "py" {
					t.Errorf("criteria = %+v", p.Criteria)
				}
			},
		},
		{
			name: "clear description",
			req:  dto.UpdateProfileRequest{Description: strPtr("  ")},
			check: func(t *testing.T, p *model.Profile) {
				if p.Description != nil {
					t.Errorf("description = %q", *p.Description)
				}
			},
		},
		{
			name:     "empty name",
			req:      dto.UpdateProfileRequest{Name: strPtr("")},
			wantErr:  true,
			wantKind: apperror.KindValidation,
		},
		{
			name:     "name taken",
			req:      dto.UpdateProfileRequest{Name: strPtr("Frontend")},
			wantErr:  true,
			wantKind: apperror.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			store := newFakeProfiles()
			p := store.add("user-1", "Backend", goCriteria...)
			p.Description = strPtr("Go roles")
			store.add("user-1", "Frontend")
			uc := NewProfileUsecase(store, nil)

			got, err := uc.Update(context.Background(), "user-1", p.ID.String(), tt.req)
			if tt.wantErr {
				if !apperror.Is(err, tt.wantKind) {
					t.Fatalf("err = %v, want kind %v", err, tt.wantKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			tt.check(t, got)

			stored, _ := store.FindByID(context.Background(), "user-1", p.ID)
			tt.check(t, stored)
		})
	}
}

func TestProfileDelete(t *testing.T) {
	t.Parallel()
	store := newFakeProfiles()
	p := store.add("user-1", "Backend")
	uc := NewProfileUsecase(store, nil)

	if err := uc.Delete(context.Background(), "user-2", p.ID.String()); !apperror.Is(err, apperror.KindNotFound) {
		t.Fatalf("foreign Delete err = %v", err)
	}
	if err := uc.Delete(context.Background(), "user-1", p.ID.String()); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := uc.Delete(context.Background(), "user-1", p.ID.String()); !apperror.Is(err, apperror.KindNotFound) {
		t.Errorf("second Delete err = %v", err)
	}
}
