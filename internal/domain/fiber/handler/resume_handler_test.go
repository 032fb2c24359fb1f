package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/dto"
	"github.com/google/uuid"
)

func TestResumeListHandler(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	pid := uuid.NewString()

	resp, raw := s.do(t, http.MethodGet, "/api/profiles/"+pid+"/resumes?page=2&page_size=10", bearer(t, "user-1"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}
	env := decode(t, raw)
	if s.resumes.profileID != pid || s.resumes.query.Page != 2 || s.resumes.query.PageSize != 10 {
		t.Errorf("called with %q %+v", s.resumes.profileID, s.resumes.query)
	}
	if env.Pagination == nil || env.Pagination.TotalItems != 21 || env.Pagination.TotalPages != 3 {
		t.Errorf("pagination = %+v", env.Pagination)
	}
	var resumes []dto.ResumeDTO
	if err := json.Unmarshal(env.Data, &resumes); err != nil {
		t.Fatal(err)
	}
	if len(resumes) != 1 || resumes[0].Filename != "a.pdf" {
		t.Errorf("resumes = %+v", resumes)
	}
}

func TestResumeAddHandler(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	pid := uuid.NewString()

	resp, raw := s.do(t, http.MethodPost, "/api/profiles/"+pid+"/resumes", bearer(t, "user-1"),
		`{"filename":"cv.pdf","blob_url":"https://blob.example/cv.pdf"}`)
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}
	var got dto.ResumeDTO
	if err := json.Unmarshal(decode(t, raw).Data, &got); err != nil {
		t.Fatal(err)
	}
	if got.BlobURL != "https://blob.example/cv.pdf" || s.resumes.profileID != pid {
		t.Errorf("resume = %+v", got)
	}

	s.resumes.err = apperror.Conflict("This resume is already attached to the profile")
	resp, _ = s.do(t, http.MethodPost, "/api/profiles/"+pid+"/resumes", bearer(t, "user-1"),
		`{"filename":"cv.pdf","blob_url":"https://blob.example/cv.pdf"}`)
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("duplicate status = %d", resp.StatusCode)
	}
}

func TestResumeExportHandler(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	pid := uuid.NewString()

	resp, raw := s.do(t, http.MethodGet, "/api/profiles/"+pid+"/resumes/export", bearer(t, "user-1"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d: %s", resp.StatusCode, raw)
	}
	if ct := resp.Header.Get("Content-Type"); ct != xlsxContentType {
		t.Errorf("content type = %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="Backend-ranked.xlsx"` {
		t.Errorf("content disposition = %q", cd)
	}
	if string(raw) != "PK-xlsx" {
		t.Errorf("body = %q", raw)
	}
	if s.resumes.profileID != pid {
		t.Errorf("profile = %q", s.resumes.profileID)
	}
}

func TestResumeDeleteAndSimilarHandlers(t *testing.T) {
	t.Parallel()
	s := newTestServer()
	pid, rid := uuid.NewString(), uuid.NewString()

	resp, raw := s.do(t, http.MethodDelete, "/api/profiles/"+pid+"/resumes/"+rid, bearer(t, "user-1"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status = %d: %s", resp.StatusCode, raw)
	}
	if s.resumes.profileID != pid || s.resumes.resumeID != rid {
		t.Errorf("delete called with %q %q", s.resumes.profileID, s.resumes.resumeID)
	}

	resp, raw = s.do(t, http.MethodGet, "/api/profiles/"+pid+"/resumes/"+rid+"/similar?limit=7", bearer(t, "user-1"), nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("similar status = %d: %s", resp.StatusCode, raw)
	}
	var got []dto.SimilarResumeDTO
	if err := json.Unmarshal(decode(t, raw).Data, &got); err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Filename != "b.pdf" || got[0].Distance != 0.25 {
		t.Errorf("similar = %+v", got)
	}
	if s.resumes.topK != 7 {
		t.Errorf("topK = %d", s.resumes.topK)
	}

	s.resumes.err = apperror.Validation("Resume has no embedding to compare")
	resp, _ = s.do(t, http.MethodGet, "/api/profiles/"+pid+"/resumes/"+rid+"/similar", bearer(t, "user-1"), nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("no embedding status = %d", resp.StatusCode)
	}
}
