package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fadilmartias/resume-screener/internal/logger"
	"github.com/go-resty/resty/v2"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// VercelBlobStore uploads through the Vercel Blob REST API.
type VercelBlobStore struct {
	client *resty.Client
	logger *zap.Logger
}

func NewVercelBlobStore(apiURL, token string, l *zap.Logger) *VercelBlobStore {
	client := resty.New().
		SetBaseURL(strings.TrimRight(apiURL, "/")).
		SetAuthToken(token).
		SetHeader("x-api-version", "7").
		SetTimeout(30 * time.Second)
	return &VercelBlobStore{client: client, logger: logger.OrNop(l)}
}

func (s *VercelBlobStore) Put(ctx context.Context, filename string, data []byte, contentType string) (string, error) {
	name := SafeName(filename)
	resp, err := s.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", contentType).
		SetHeader("x-content-type", contentType).
		SetHeader("x-add-random-suffix", "1").
		SetBody(data).
		Put("/" + name)
	if err != nil {
		return "", fmt.Errorf("blob upload: %w", err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("blob upload: status %d: %s",
			resp.StatusCode(), gjson.GetBytes(resp.Body(), "error.message").String())
	}

	url := gjson.GetBytes(resp.Body(), "url").String()
	if url == "" {
		return "", fmt.Errorf("blob upload: response has no url")
	}
	s.logger.Info("blob uploaded", zap.String("name", name), zap.Int("bytes", len(data)))
	return url, nil
}
