package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
)

func newTestOpenRouter(t *testing.T, handler http.HandlerFunc) *OpenRouterService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	s, err := NewOpenRouterService(&config.OpenRouterConfig{
		APIKey:  "test-key",
		BaseURL: srv.URL,
		Model:   "test/model",
	}, 0, nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestOpenRouterAnalyze(t *testing.T) {
	t.Parallel()

	s := newTestOpenRouter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing bearer token")
		}

		var body struct {
			Model       string  `json:"model"`
			Temperature float64 `json:"temperature"`
			MaxTokens   int     `json:"max_tokens"`
			Messages    []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body.Model != "test/model" || body.Temperature != 0.1 || body.MaxTokens != 500 {
			t.Errorf("unexpected request %+v", body)
		}
		if len(body.Messages) != 2 || body.Messages[0].Content != systemPrompt {
			t.Errorf("unexpected messages %+v", body.Messages)
		}

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"` +
			"```json\\n{\\\"criteria\\\":{\\\"react_native\\\":true},\\\"summary\\\":\\\"Mobile dev\\\"}\\n```" +
			`"}}]}`))
	})

	got, err := s.Analyze(context.Background(), "resume", testCriteria)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Criteria["react_native"] || got.Summary != "Mobile dev" {
		t.Fatalf("unexpected analysis %+v", got)
	}
}

func TestOpenRouterErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "upstream error", status: http.StatusUnauthorized, body: `{"error":{"message":"bad key"}}`},
		{name: "empty choices", status: http.StatusOK, body: `{"choices":[]}`},
		{name: "not json content", status: http.StatusOK, body: `{"choices":[{"message":{"content":"sorry"}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := newTestOpenRouter(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})
			_, err := s.Analyze(context.Background(), "resume", testCriteria)
			if err == nil {
				t.Fatal("expected error")
			}
			if apperror.KindOf(err) != apperror.KindExternalService {
				t.Fatalf("expected external service error, got %v", err)
			}
		})
	}
}

func TestNewOpenRouterServiceRequiresKey(t *testing.T) {
	t.Parallel()

	if _, err := NewOpenRouterService(&config.OpenRouterConfig{BaseURL: "http://x"}, 0, nil); err == nil {
		t.Fatal("expected error without API key")
	}
}
