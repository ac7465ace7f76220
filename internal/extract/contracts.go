package extract

import (
	"context"
	"time"
)

// TextSource is Stage 1: file -> ordered page text.
type TextSource interface {
	Read(ctx context.Context, path string) (TextExtractionResult, error)
}

type TextExtractionResult struct {
	Pages      []string
	SourceType string // "PDF" | "HTML" | "TEXT" | "IMAGE"
	Method     string // "pdf-native" | "pdf-text" | "pdf-ocr" | "image-ocr" | "html" | "plain"
	Duration   time.Duration
	Warnings   []string
}

// PageCount returns the number of pages read.
func (r TextExtractionResult) PageCount() int { return len(r.Pages) }
