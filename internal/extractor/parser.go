package extractor

import (
	"fmt"

	"github.com/fadilmartias/resume-screener/internal/config"
	"go.uber.org/zap"
)

// NewParser builds the parser chain for the configured engine.
func NewParser(cfg *config.PDFConfig, l *zap.Logger) (Parser, error) {
	var p Parser
	switch cfg.Engine {
	case "", config.PDFEngineFitz:
		p = NewFitzParser()
	case config.PDFEnginePure:
		p = NewPureParser(l)
	default:
		return nil, fmt.Errorf("unknown PDF engine %q", cfg.Engine)
	}
	if cfg.OCRFallback {
		p = NewOCRParser(p, l)
	}
	return p, nil
}
