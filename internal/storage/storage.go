// Package storage persists uploaded resume files and returns a public URL.
package storage

import (
	"context"
	"encoding/base64"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
	"go.uber.org/zap"
)

type BlobStore interface {
	Put(ctx context.Context, filename string, data []byte, contentType string) (string, error)
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SafeName strips directories and characters that do not belong in a URL path.
func SafeName(filename string) string {
	name := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	name = unsafeNameChars.ReplaceAllString(name, "_")
	if name == "" || name == "." || name == "/" {
		return "upload.pdf"
	}
	return name
}

// DecodeFileData accepts a data URL or bare base64 payload.
func DecodeFileData(fileData string) ([]byte, error) {
	payload := fileData
	if i := strings.Index(fileData, ","); i >= 0 {
		payload = fileData[i+1:]
	}
	payload = strings.TrimSpace(payload)

	b, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		b, err = base64.RawStdEncoding.DecodeString(strings.TrimRight(payload, "="))
	}
	if err != nil {
		return nil, apperror.E(apperror.KindValidation, "fileData is not valid base64", err)
	}
	return b, nil
}

// NewFromConfig picks Vercel Blob when a token is set, local disk when an
// upload directory is set, and nil otherwise.
func NewFromConfig(cfg *config.BlobConfig, baseURL string, logger *zap.Logger) (BlobStore, error) {
	switch {
	case cfg.Token != "":
		return NewVercelBlobStore(cfg.APIURL, cfg.Token, logger), nil
	case cfg.UploadDir != "":
		s, err := NewDiskStore(cfg.UploadDir, strings.TrimRight(baseURL, "/")+"/uploads")
		if err != nil {
			return nil, fmt.Errorf("disk store: %w", err)
		}
		return s, nil
	default:
		return nil, nil
	}
}
