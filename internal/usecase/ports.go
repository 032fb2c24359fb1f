package usecase

import (
	"context"
	"time"

	"github.com/fadilmartias/resume-screener/internal/extractor"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/repository"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type ProfileStore interface {
	List(ctx context.Context, userID string) ([]model.Profile, error)
	FindByID(ctx context.Context, userID string, id uuid.UUID) (*model.Profile, error)
	NameTaken(ctx context.Context, userID, name string, except uuid.UUID) (bool, error)
	Create(ctx context.Context, p *model.Profile) error
	Update(ctx context.Context, p *model.Profile) error
	Delete(ctx context.Context, userID string, id uuid.UUID) error
}

type ResumeStore interface {
	ListByProfile(ctx context.Context, profileID uuid.UUID, offset, limit int) ([]model.Resume, int64, error)
	FindByID(ctx context.Context, profileID, id uuid.UUID) (*model.Resume, error)
	OwnedBy(ctx context.Context, userID string, id uuid.UUID) (bool, error)
	BlobTaken(ctx context.Context, profileID uuid.UUID, blobURL string) (bool, error)
	Create(ctx context.Context, r *model.Resume) error
	Delete(ctx context.Context, profileID, id uuid.UUID) error
	SaveVerification(ctx context.Context, id uuid.UUID, details *verifier.VerificationDetails, at time.Time) error
	SaveEmbedding(ctx context.Context, id uuid.UUID, embedding pgvector.Vector) error
	SearchSimilar(ctx context.Context, profileID, exclude uuid.UUID, embedding pgvector.Vector, topK int) ([]repository.SimilarResume, error)
}

type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (extractor.Result, error)
}

type ProfileVerifier interface {
	Verify(ctx context.Context, req verifier.Request) (*verifier.VerificationDetails, error)
}
