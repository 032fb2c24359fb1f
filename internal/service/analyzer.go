package service

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/fadilmartias/resume-screener/internal/apperror"
	"github.com/fadilmartias/resume-screener/internal/config"
	"github.com/fadilmartias/resume-screener/internal/model"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
)

const systemPrompt = "You are an expert technical recruiter. Be precise and conservative in your analysis."

// Analyzer scores resume text against a set of criteria.
type Analyzer interface {
	Analyze(ctx context.Context, text string, criteria []model.Criterion) (*model.ResumeAnalysis, error)
}

type Embedder interface {
	GenerateEmbedding(ctx context.Context, text string) ([]float32, error)
}

var summaryPolicy = bluemonday.StrictPolicy()

var ErrNoJSON = apperror.E(apperror.KindExternalService, "No valid JSON found in response", nil)

var (
	fencedJSONPattern = regexp.MustCompile("(?s)```json\n(.*?)\n```")
	braceJSONPattern  = regexp.MustCompile(`(?s)\{.*\}`)
)

// BuildPrompt renders the user prompt listing each criterion and the
// expected JSON shape.
func BuildPrompt(text string, criteria []model.Criterion) string {
	var list, fields strings.Builder
	for i, c := range criteria {
		if i > 0 {
			list.WriteString("\n")
			fields.WriteString(",\n")
		}
		fmt.Fprintf(&list, "%d. %s - %s", i+1, c.Name, c.Description)
		fmt.Fprintf(&fields, "    %q: boolean", c.ID)
	}

	return fmt.Sprintf(`Analyze this resume and respond in JSON format. Check for the following criteria:
%s

Important rules:
- Be specific and look for explicit mentions or clear evidence
- School projects count if substantial (3+ months)
- Be conservative - only mark true if clear evidence exists
- Don't make assumptions based on general skills

Return format:
{
    "criteria": {
%s
    },
    "summary": "1-sentence qualification summary"
}

Resume text:
%s
`, list.String(), fields.String(), text)
}

// ParseAnalysisJSON accepts raw JSON, a fenced json block, or the widest
// brace-delimited span in the model output.
func ParseAnalysisJSON(response string) (*model.ResumeAnalysis, error) {
	candidates := []string{response}
	if m := fencedJSONPattern.FindStringSubmatch(response); m != nil {
		candidates = append(candidates, m[1])
	}
	if m := braceJSONPattern.FindString(response); m != "" {
		candidates = append(candidates, m)
	}

	for _, c := range candidates {
		var analysis model.ResumeAnalysis
		if err := json.Unmarshal([]byte(c), &analysis); err == nil {
			if analysis.Criteria == nil {
				analysis.Criteria = map[string]bool{}
			}
			return &analysis, nil
		}
	}
	return nil, ErrNoJSON
}

// ValidateAnalysis keeps only the requested criteria, clears positive
// verdicts whose keywords are all absent from text, strips markup from the
// model's summary and recomputes the qualification count.
func ValidateAnalysis(text string, analysis *model.ResumeAnalysis, criteria []model.Criterion) *model.ResumeAnalysis {
	lower := strings.ToLower(text)
	verdicts := make(map[string]bool, len(criteria))
	for _, c := range criteria {
		ok := analysis.Criteria[c.ID]
		if ok && len(c.Keywords) > 0 {
			ok = false
			for _, k := range c.Keywords {
				if strings.Contains(lower, strings.ToLower(k)) {
					ok = true
					break
				}
			}
		}
		verdicts[c.ID] = ok
	}
	analysis.Criteria = verdicts
	analysis.Summary = CleanSummary(analysis.Summary)
	analysis.QualificationsCount = QualificationsCount(analysis.Criteria)
	return analysis
}

// CleanSummary turns model output into plain text for the UI and reports.
func CleanSummary(summary string) string {
	return strings.TrimSpace(html.UnescapeString(summaryPolicy.Sanitize(summary)))
}

func QualificationsCount(criteria map[string]bool) int {
	n := 0
	for _, ok := range criteria {
		if ok {
			n++
		}
	}
	return n
}

// NewAnalyzer returns the analyzer for the configured provider. The Gemini
// service doubles as the embedder; other providers return a nil Embedder
// unless a Gemini key is configured for embeddings.
func NewAnalyzer(ctx context.Context, aiCfg *config.AIConfig, logger *zap.Logger) (Analyzer, Embedder, error) {
	var embedder Embedder
	newGemini := func() (*GeminiService, error) {
		return NewGeminiService(ctx, config.LoadGeminiConfig(), aiCfg.MaxOutputTokens, logger.Named("gemini"))
	}

	switch aiCfg.Provider {
	case config.ProviderGemini:
		gemini, err := newGemini()
		if err != nil {
			return nil, nil, err
		}
		if aiCfg.EmbedResumes {
			embedder = gemini
		}
		return gemini, embedder, nil
	case config.ProviderOpenRouter, "":
		openRouter, err := NewOpenRouterService(config.LoadOpenRouterConfig(), aiCfg.MaxOutputTokens, logger.Named("openrouter"))
		if err != nil {
			return nil, nil, err
		}
		if aiCfg.EmbedResumes && config.LoadGeminiConfig().APIKey != "" {
			gemini, err := newGemini()
			if err != nil {
				return nil, nil, err
			}
			embedder = gemini
		}
		return openRouter, embedder, nil
	default:
		return nil, nil, fmt.Errorf("unknown AI provider %q", aiCfg.Provider)
	}
}
