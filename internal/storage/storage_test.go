package storage

import (
	"context"
	"encoding/base64"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
)

func TestSafeName(t *testing.T) {
	t.Parallel()

	tests := []struct{ in, want string }{
		{"resume.pdf", "resume.pdf"},
		{"../../etc/passwd", "passwd"},
		{`C:\Users\me\cv 1.pdf`, "cv_1.pdf"},
		{"Jöhn Dœ (final).pdf", "J_hn_D_final_.pdf"},
		{"", "upload.pdf"},
	}
	for _, tt := range tests {
		if got := SafeName(tt.in); got != tt.want {
			t.Errorf("SafeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestDecodeFileData(t *testing.T) {
	t.Parallel()

	raw := []byte("%PDF-1.4 test")
	enc := base64.StdEncoding.EncodeToString(raw)

	for _, in := range []string{enc, "data:application/pdf;base64," + enc, strings.TrimRight(enc, "=")} {
		got, err := DecodeFileData(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if string(got) != string(raw) {
			t.Fatalf("%q: decoded %q", in, got)
		}
	}

	_, err := DecodeFileData("data:application/pdf;base64,@@@")
	if apperror.KindOf(err) != apperror.KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestVercelBlobStorePut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/cv.pdf" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing token")
		}
		if r.Header.Get("x-content-type") != "application/pdf" {
			t.Errorf("missing content type")
		}
		body, _ := io.ReadAll(r.Body)
		if string(body) != "pdf-bytes" {
			t.Errorf("unexpected body %q", body)
		}
		_, _ = w.Write([]byte(`{"url":"https://blob.example/cv-abc.pdf","pathname":"cv-abc.pdf"}`))
	}))
	defer srv.Close()

	url, err := NewVercelBlobStore(srv.URL, "tok", nil).Put(context.Background(), "cv.pdf", []byte("pdf-bytes"), "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if url != "https://blob.example/cv-abc.pdf" {
		t.Fatalf("unexpected url %q", url)
	}
}

func TestVercelBlobStoreRejected(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"message":"invalid token"}}`))
	}))
	defer srv.Close()

	_, err := NewVercelBlobStore(srv.URL, "bad", nil).Put(context.Background(), "cv.pdf", []byte("x"), "application/pdf")
	if err == nil || !strings.Contains(err.Error(), "invalid token") {
		t.Fatalf("expected upstream message, got %v", err)
	}
}

func TestDiskStorePut(t *testing.T) {
	t.Parallel()

	dir := filepath.Join(t.TempDir(), "uploads")
	s, err := NewDiskStore(dir, "http://localhost:8080/uploads")
	if err != nil {
		t.Fatal(err)
	}

	url, err := s.Put(context.Background(), "../cv.pdf", []byte("data"), "application/pdf")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(url, "http://localhost:8080/uploads/") || !strings.HasSuffix(url, "-cv.pdf") {
		t.Fatalf("unexpected url %q", url)
	}

	b, err := os.ReadFile(filepath.Join(dir, filepath.Base(url)))
	if err != nil {
		t.Fatal(err)
	}
	if string(b) != "data" {
		t.Fatalf("unexpected content %q", b)
	}
}

func TestNewFromConfig(t *testing.T) {
	t.Parallel()

	s, err := NewFromConfig(&config.BlobConfig{Token: "t", APIURL: "http://x"}, "", nil)
	if _, ok := s.(*VercelBlobStore); !ok || err != nil {
		t.Fatalf("expected vercel store, got %T %v", s, err)
	}

	s, err = NewFromConfig(&config.BlobConfig{UploadDir: t.TempDir()}, "http://app/", nil)
	if _, ok := s.(*DiskStore); !ok || err != nil {
		t.Fatalf("expected disk store, got %T %v", s, err)
	}

	s, err = NewFromConfig(&config.BlobConfig{}, "", nil)
	if s != nil || err != nil {
		t.Fatalf("expected no store, got %T %v", s, err)
	}
}
