package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/extractor"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/repository"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/google/uuid"
	"github.com/pgvector/pgvector-go"
)

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*model.Profile
}

func newFakeProfiles() *fakeProfiles {
	return &fakeProfiles{profiles: map[uuid.UUID]*model.Profile{}}
}

func (f *fakeProfiles) add(userID, name string, criteria ...model.Criterion) *model.Profile {
	f.mu.Lock()
	defer f.mu.Unlock()
	p := &model.Profile{ID: uuid.New(), UserID: userID, Name: name, Criteria: criteria}
	f.profiles[p.ID] = p
	return p
}

func (f *fakeProfiles) List(_ context.Context, userID string) ([]model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Profile
	for _, p := range f.profiles {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (f *fakeProfiles) FindByID(_ context.Context, userID string, id uuid.UUID) (*model.Profile, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || p.UserID != userID {
		return nil, apperror.NotFound("Profile not found")
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProfiles) NameTaken(_ context.Context, userID, name string, except uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, p := range f.profiles {
		if p.UserID == userID && p.Name == name && p.ID != except {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeProfiles) Create(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.ID = uuid.New()
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) Update(_ context.Context, p *model.Profile) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.profiles[p.ID] = &cp
	return nil
}

func (f *fakeProfiles) Delete(_ context.Context, userID string, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.profiles[id]
	if !ok || p.UserID != userID {
		return apperror.NotFound("Profile not found")
	}
	delete(f.profiles, id)
	return nil
}

type savedVerification struct {
	id      uuid.UUID
	details *verifier.VerificationDetails
	at      time.Time
}

type fakeResumes struct {
	mu         sync.Mutex
	profiles   *fakeProfiles
	resumes    []*model.Resume
	verified   []savedVerification
	embeddings map[uuid.UUID]pgvector.Vector
	similar    []repository.SimilarResume
}

func newFakeResumes(profiles *fakeProfiles) *fakeResumes {
	return &fakeResumes{profiles: profiles, embeddings: map[uuid.UUID]pgvector.Vector{}}
}

func (f *fakeResumes) add(profileID uuid.UUID, filename string) *model.Resume {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := &model.Resume{
		ID:         uuid.New(),
		ProfileID:  profileID,
		Filename:   filename,
		BlobURL:    "https://blob.example/" + filename,
		UploadedAt: time.Now(),
	}
	f.resumes = append(f.resumes, r)
	return r
}

func (f *fakeResumes) ListByProfile(_ context.Context, profileID uuid.UUID, offset, limit int) ([]model.Resume, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.Resume
	for _, r := range f.resumes {
		if r.ProfileID == profileID {
			all = append(all, *r)
		}
	}
	total := int64(len(all))
	if limit <= 0 {
		return all, total, nil
	}
	if offset >= len(all) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (f *fakeResumes) FindByID(_ context.Context, profileID, id uuid.UUID) (*model.Resume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resumes {
		if r.ID == id && r.ProfileID == profileID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, apperror.NotFound("Resume not found")
}

func (f *fakeResumes) OwnedBy(_ context.Context, userID string, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resumes {
		if r.ID != id {
			continue
		}
		p, ok := f.profiles.profiles[r.ProfileID]
		return ok && p.UserID == userID, nil
	}
	return false, nil
}

func (f *fakeResumes) BlobTaken(_ context.Context, profileID uuid.UUID, blobURL string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.resumes {
		if r.ProfileID == profileID && r.BlobURL == blobURL {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeResumes) Create(_ context.Context, r *model.Resume) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r.ID = uuid.New()
	cp := *r
	f.resumes = append(f.resumes, &cp)
	return nil
}

func (f *fakeResumes) Delete(_ context.Context, profileID, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, r := range f.resumes {
		if r.ID == id && r.ProfileID == profileID {
			f.resumes = append(f.resumes[:i], f.resumes[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("Resume not found")
}

func (f *fakeResumes) SaveVerification(_ context.Context, id uuid.UUID, details *verifier.VerificationDetails, at time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verified = append(f.verified, savedVerification{id: id, details: details, at: at})
	return nil
}

func (f *fakeResumes) SaveEmbedding(_ context.Context, id uuid.UUID, embedding pgvector.Vector) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.embeddings[id] = embedding
	for _, r := range f.resumes {
		if r.ID == id {
			r.Embedding = &embedding
		}
	}
	return nil
}

func (f *fakeResumes) SearchSimilar(_ context.Context, _, _ uuid.UUID, _ pgvector.Vector, topK int) ([]repository.SimilarResume, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.similar) > topK {
		return f.similar[:topK], nil
	}
	return f.similar, nil
}

type fakeExtractor struct {
	result extractor.Result
	err    error
	got    []byte
}

func (f *fakeExtractor) Extract(_ context.Context, data []byte) (extractor.Result, error) {
	f.got = data
	return f.result, f.err
}

type fakeAnalyzer struct {
	analysis *model.ResumeAnalysis
	err      error
	criteria []model.Criterion
	calls    int
}

func (f *fakeAnalyzer) Analyze(_ context.Context, _ string, criteria []model.Criterion) (*model.ResumeAnalysis, error) {
	f.calls++
	f.criteria = criteria
	if f.err != nil {
		return nil, f.err
	}
	cp := *f.analysis
	cp.Criteria = map[string]bool{}
	for k, v := range f.analysis.Criteria {
		cp.Criteria[k] = v
	}
	return &cp, nil
}

type fakeVerifier struct {
	details *verifier.VerificationDetails
	req     verifier.Request
	calls   int
}

func (f *fakeVerifier) Verify(_ context.Context, req verifier.Request) (*verifier.VerificationDetails, error) {
	f.calls++
	f.req = req
	return f.details, nil
}

type fakeBlobs struct {
	url string
	err error
}

func (f *fakeBlobs) Put(context.Context, string, []byte, string) (string, error) {
	return f.url, f.err
}

type fakeEmbedder struct {
	values []float32
	err    error
}

func (f *fakeEmbedder) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return f.values, f.err
}
