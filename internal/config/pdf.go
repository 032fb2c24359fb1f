package config

import (
	"strings"
	"sync"
)

const (
	PDFEngineFitz = "fitz"
	PDFEnginePure = "pure"
)

type PDFConfig struct {
	Engine      string
	OCRFallback bool
}

var (
	pdfConfig *PDFConfig
	pdfOnce   sync.Once
)

func LoadPDFConfig() *PDFConfig {
	pdfOnce.Do(func() {
		pdfConfig = &PDFConfig{
			Engine:      strings.ToLower(envString("PDF_ENGINE", PDFEngineFitz)),
			OCRFallback: envBool("PDF_OCR_FALLBACK", false),
		}
	})
	return pdfConfig
}
