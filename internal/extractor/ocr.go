package extractor

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/go-fitz"
	"go.uber.org/zap"
)

// OCRParser falls back to Tesseract when the wrapped parser finds no text
// layer, as with scanned resumes.
type OCRParser struct {
	next   Parser
	logger *zap.Logger
	lookup func(string) (string, error)
}

func NewOCRParser(next Parser, l *zap.Logger) *OCRParser {
	if l == nil {
		l = zap.NewNop()
	}
	return &OCRParser{next: next, logger: l, lookup: exec.LookPath}
}

func (p *OCRParser) Parse(ctx context.Context, data []byte) (Document, error) {
	doc, err := p.next.Parse(ctx, data)
	if err == nil && strings.TrimSpace(doc.Text) != "" {
		return doc, nil
	}
	if _, lookErr := p.lookup("tesseract"); lookErr != nil {
		if err != nil {
			return Document{}, err
		}
		return doc, nil
	}

	p.logger.Info("text layer empty, falling back to OCR")
	return p.ocr(ctx, data)
}

func (p *OCRParser) ocr(ctx context.Context, data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	var fullText bytes.Buffer
	var lastErr error

	for n := 0; n < doc.NumPage(); n++ {
		img, err := doc.Image(n)
		if err != nil {
			lastErr = fmt.Errorf("page %d: failed to extract image: %w", n+1, err)
			p.logger.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}

		pageText, err := p.recognize(ctx, img)
		if err != nil {
			lastErr = fmt.Errorf("page %d: %w", n+1, err)
			p.logger.Warn("ocr page skipped", zap.Error(lastErr))
			continue
		}

		if n > 0 {
			fullText.WriteString(pageSeparator)
		}
		fullText.WriteString(pageText)
	}

	result := strings.TrimSpace(fullText.String())
	if result == "" && lastErr != nil {
		return Document{}, fmt.Errorf("failed to extract text via OCR: %w", lastErr)
	}

	p.logger.Debug("ocr finished", zap.Int("chars", len(result)), zap.Int("pages", doc.NumPage()))
	return Document{Text: fullText.String(), Pages: doc.NumPage()}, nil
}

func (p *OCRParser) recognize(ctx context.Context, img image.Image) (string, error) {
	tmpFile, err := os.CreateTemp("", "page-*.png")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	if err := png.Encode(tmpFile, img); err != nil {
		tmpFile.Close()
		return "", fmt.Errorf("failed to encode PNG: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("failed to write PNG: %w", err)
	}

	cmd := exec.CommandContext(ctx, "tesseract", tmpPath, "stdout", "-l", "eng")
	out, err := cmd.CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("tesseract error: %w, output: %s", err, string(out))
	}
	return strings.TrimSpace(string(out)), nil
}
