package extractor

import (
	"context"
	"fmt"
	"strings"

	"github.com/gen2brain/go-fitz"
)

const pageSeparator = "\n\n"

// FitzParser reads the text layer with MuPDF.
type FitzParser struct{}

func NewFitzParser() *FitzParser { return &FitzParser{} }

func (p *FitzParser) Parse(ctx context.Context, data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return Document{}, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer doc.Close()

	pages := doc.NumPage()
	var sb strings.Builder
	for n := 0; n < pages; n++ {
		if err := ctx.Err(); err != nil {
			return Document{}, err
		}
		text, err := doc.Text(n)
		if err != nil {
			return Document{}, fmt.Errorf("page %d: failed to read text: %w", n+1, err)
		}
		if n > 0 {
			sb.WriteString(pageSeparator)
		}
		sb.WriteString(text)
	}

	return Document{Text: sb.String(), Pages: pages}, nil
}
