package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/fadilmartias/resume-screener/internal/middleware"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/fadilmartias/resume-screener/internal/repository"
	"github.com/fadilmartias/resume-screener/internal/response"
	"github.com/fadilmartias/resume-screener/internal/verifier"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const testSecret = "handler-secret"

var errBoom = errors.New("boom")

type envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message"`
	Data       json.RawMessage      `json:"data"`
	Details    map[string]any       `json:"details"`
	Pagination *response.Pagination `json:"pagination"`
}

type fakeScreening struct {
	userID    string
	verifyReq dto.VerifyRequest
	err       error
}

func (f *fakeScreening) Upload(_ context.Context, req dto.FileRequest) (*dto.UploadResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.UploadResponse{URL: "https://blob.example/" + req.Filename, Filename: req.Filename}, nil
}

func (f *fakeScreening) Analyze(_ context.Context, userID string, req dto.AnalyzeRequest) (*dto.CandidateResult, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &dto.CandidateResult{Name: model.CandidateName(req.Filename), QualificationsCount: 2}, nil
}

func (f *fakeScreening) Verify(_ context.Context, userID string, req dto.VerifyRequest) (*verifier.VerificationDetails, error) {
	f.userID = userID
	f.verifyReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &verifier.VerificationDetails{OverallScore: 68}, nil
}

type fakeProfileService struct {
	userID string
	err    error
}

func (f *fakeProfileService) List(_ context.Context, userID string) ([]model.Profile, error) {
	f.userID = userID
	return []model.Profile{{Name: "Backend", UserID: userID}}, f.err
}

func (f *fakeProfileService) Create(_ context.Context, userID string, req dto.CreateProfileRequest) (*model.Profile, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &model.Profile{ID: uuid.New(), UserID: userID, Name: req.Name, Criteria: req.Criteria}, nil
}

func (f *fakeProfileService) Get(_ context.Context, userID, id string) (*model.Profile, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &model.Profile{ID: uuid.MustParse(id), UserID: userID}, nil
}

func (f *fakeProfileService) Update(_ context.Context, userID, id string, req dto.UpdateProfileRequest) (*model.Profile, error) {
	f.userID = userID
	if f.err != nil {
		return nil, f.err
	}
	return &model.Profile{ID: uuid.MustParse(id), UserID: userID, Name: *req.Name}, nil
}

func (f *fakeProfileService) Delete(_ context.Context, userID, _ string) error {
	f.userID = userID
	return f.err
}

type fakeResumeService struct {
	profileID string
	resumeID  string
	topK      int
	query     dto.ListResumesQuery
	err       error
}

func (f *fakeResumeService) List(_ context.Context, _, profileID string, q dto.ListResumesQuery) ([]model.Resume, *response.Pagination, error) {
	f.profileID, f.query = profileID, q
	if f.err != nil {
		return nil, nil, f.err
	}
	return []model.Resume{{Filename: "a.pdf"}}, response.NewPagination(q.Page, q.PageSize, 21), nil
}

func (f *fakeResumeService) Add(_ context.Context, _, profileID string, req dto.AddResumeRequest) (*model.Resume, error) {
	f.profileID = profileID
	if f.err != nil {
		return nil, f.err
	}
	return &model.Resume{ID: uuid.New(), Filename: req.Filename, BlobURL: req.BlobURL}, nil
}

func (f *fakeResumeService) Delete(_ context.Context, _, profileID, resumeID string) error {
	f.profileID, f.resumeID = profileID, resumeID
	return f.err
}

func (f *fakeResumeService) Export(_ context.Context, _, profileID string, w io.Writer) (string, error) {
	f.profileID = profileID
	if f.err != nil {
		return "", f.err
	}
	_, err := w.Write([]byte("PK-xlsx"))
	return "Backend-ranked.xlsx", err
}

func (f *fakeResumeService) Similar(_ context.Context, _, profileID, resumeID string, topK int) ([]repository.SimilarResume, error) {
	f.profileID, f.resumeID, f.topK = profileID, resumeID, topK
	if f.err != nil {
		return nil, f.err
	}
	return []repository.SimilarResume{{Resume: model.Resume{Filename: "b.pdf"}, Distance: 0.25}}, nil
}

type testServer struct {
	app       *fiber.App
	screening *fakeScreening
	profiles  *fakeProfileService
	resumes   *fakeResumeService
}

func newTestServer() *testServer {
	s := &testServer{
		app:       fiber.New(),
		screening: &fakeScreening{},
		profiles:  &fakeProfileService{},
		resumes:   &fakeResumeService{},
	}
	auth := middleware.NewAuth(testSecret, "authenticated")
	NewScreeningHandler(s.screening, auth).RegisterRoutes(s.app)
	NewResumeHandler(s.resumes, auth).RegisterRoutes(s.app)
	NewProfileHandler(s.profiles, auth).RegisterRoutes(s.app)
	return s
}

func bearer(t *testing.T, userID string) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userID,
		Audience:  jwt.ClaimStrings{"authenticated"},
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return "Bearer " + token
}

func (s *testServer) do(t *testing.T, method, path, auth string, body any) (*http.Response, []byte) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			if err != nil {
				t.Fatal(err)
			}
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	resp, err := s.app.Test(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, raw
}

func decode(t *testing.T, raw []byte) envelope {
	t.Helper()
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		t.Fatalf("decode %s: %v", raw, err)
	}
	return env
}
