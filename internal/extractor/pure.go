package extractor

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// pageReader is the part of a PDF reader PureParser walks.
type pageReader interface {
	NumPage() int
	// PageText returns false for pages without content.
	PageText(i int) (string, bool, error)
}

type pdfReader struct{ r *pdf.Reader }

func (p pdfReader) NumPage() int { return p.r.NumPage() }

func (p pdfReader) PageText(i int) (string, bool, error) {
	page := p.r.Page(i)
	if page.V.IsNull() {
		return "", false, nil
	}
	text, err := page.GetPlainText(nil)
	return text, true, err
}

func openPDF(data []byte) (pageReader, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}
	return pdfReader{r: r}, nil
}

// PureParser is a cgo-free parser for hosts without MuPDF.
type PureParser struct {
	logger *zap.Logger
	open   func([]byte) (pageReader, error)
}

func NewPureParser(l *zap.Logger) *PureParser {
	if l == nil {
		l = zap.NewNop()
	}
	return &PureParser{logger: l, open: openPDF}
}

// Parse returns the text of every readable page. Pages that fail to decode
// are logged and left empty; a panic in the decoder is returned as an error.
func (p *PureParser) Parse(ctx context.Context, data []byte) (doc Document, err error) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pdf decoder panicked", zap.Any("panic", r))
			doc, err = Document{}, fmt.Errorf("pdf decoder panic: %v", r)
		}
	}()

	r, err := p.open(data)
	if err != nil {
		return Document{}, fmt.Errorf("failed to create PDF reader: %w", err)
	}

	pages := r.NumPage()
	var sb strings.Builder
	for i := 1; i <= pages; i++ {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		if i > 1 {
			sb.WriteString(pageSeparator)
		}
		text, ok, err := r.PageText(i)
		if err != nil {
			p.logger.Warn("skipping unreadable pdf page", zap.Int("page", i), zap.Int("pages", pages), zap.Error(err))
			continue
		}
		if !ok {
			continue
		}
		sb.WriteString(text)
	}

	return Document{Text: sb.String(), Pages: pages}, nil
}
