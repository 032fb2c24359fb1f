// Package extractor turns uploaded resume PDFs into plain text plus any
// LinkedIn/GitHub profile links found in the document.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/logger"
	"go.uber.org/zap"
)

const (
	// TextLimit caps the extracted text in characters.
	TextLimit = 15000

	coverLetterWindow = 1000
)

var ErrExtractionFailed = errors.New("failed to extract text from PDF")

var coverLetterPhrases = []string{
	"cover letter",
	"dear hiring",
	"application for",
	"position applying",
	"to whom it may concern",
}

var (
	linkedinPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/([\w-]+)`)
	githubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/([\w-]+)`)
)

// Document is the raw output of a PDF parser.
type Document struct {
	Text  string
	Pages int
}

// Parser converts PDF bytes into the concatenated text of all pages.
type Parser interface {
	Parse(ctx context.Context, data []byte) (Document, error)
}

type Result struct {
	Text        string `json:"text"`
	LinkedInURL string `json:"linkedinUrl,omitempty"`
	GitHubURL   string `json:"githubUrl,omitempty"`
	Pages       int    `json:"pages"`
	CoverLetter bool   `json:"coverLetterSkipped"`
}

type Extractor struct {
	parser Parser
	limit  int
	logger *zap.Logger
}

type Option func(*Extractor)

func WithLimit(limit int) Option {
	return func(e *Extractor) {
		if limit > 0 {
			e.limit = limit
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Extractor) { e.logger = logger.OrNop(l) }
}

func New(parser Parser, opts ...Option) *Extractor {
	e := &Extractor{parser: parser, limit: TextLimit, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract parses data, drops a leading cover letter page when one is detected,
// truncates the text and collects profile links from the untrimmed text.
func (e *Extractor) Extract(ctx context.Context, data []byte) (Result, error) {
	doc, err := e.parser.Parse(ctx, data)
	if err != nil {
		e.logger.Warn("pdf parse failed", zap.Error(err))
		return Result{}, apperror.E(apperror.KindExternalService, ErrExtractionFailed.Error(), fmt.Errorf("%w: %v", ErrExtractionFailed, err))
	}

	full := doc.Text
	runes := []rune(full)
	text := runes

	hasCover := HasCoverLetter(full)
	if hasCover && doc.Pages > 1 {
		// linear estimate, pages rarely share an exact length
		firstPage := len(runes) / doc.Pages
		text = runes[firstPage:]
	}
	if len(text) > e.limit {
		text = text[:e.limit]
	}

	linkedin, github := ExtractProfileURLs(full)

	e.logger.Debug("pdf text extracted",
		zap.Int("pages", doc.Pages),
		zap.Int("chars", len(text)),
		zap.Bool("cover_letter", hasCover),
		zap.String("linkedin", linkedin),
		zap.String("github", github),
	)

	return Result{
		Text:        string(text),
		LinkedInURL: linkedin,
		GitHubURL:   github,
		Pages:       doc.Pages,
		CoverLetter: hasCover && doc.Pages > 1,
	}, nil
}

// HasCoverLetter inspects the text up to the first triple newline, or the
// first 1000 characters, for typical cover letter phrases.
func HasCoverLetter(text string) bool {
	var first string
	if idx := strings.Index(text, "\n\n\n"); idx != -1 {
		first = text[:idx]
	} else {
		runes := []rune(text)
		first = string(runes[:min(coverLetterWindow, len(runes))])
	}
	first = strings.ToLower(first)

	for _, phrase := range coverLetterPhrases {
		if strings.Contains(first, phrase) {
			return true
		}
	}
	return false
}

// ExtractProfileURLs returns the first LinkedIn and GitHub profile links in
// canonical https form, or empty strings.
func ExtractProfileURLs(text string) (linkedin, github string) {
	if m := linkedinPattern.FindStringSubmatch(text); m != nil {
		linkedin = "https://linkedin.com/in/" + m[1]
	}
	if m := githubPattern.FindStringSubmatch(text); m != nil {
		github = "https://github.com/" + m[1]
	}
	return linkedin, github
}
