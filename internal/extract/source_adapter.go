package extract

import (
	"context"
	"log/slog"

	"github.com/joseph-ayodele/resume-extractor/internal/textsource"
)

// SourceAdapter exposes a textsource.Extractor as a TextSource.
type SourceAdapter struct {
	e      *textsource.Extractor
	logger *slog.Logger
}

func NewSourceAdapter(e *textsource.Extractor, logger *slog.Logger) *SourceAdapter {
	if logger == nil {
		logger = slog.Default()
	}
	return &SourceAdapter{e: e, logger: logger}
}

func (a *SourceAdapter) Read(ctx context.Context, path string) (TextExtractionResult, error) {
	r, err := a.e.Extract(ctx, path)
	for _, w := range r.Warnings {
		a.logger.Warn("extract.source.warning", "path", path, "warning", w)
	}
	return TextExtractionResult{
		Pages:      r.Pages,
		SourceType: r.SourceType,
		Method:     r.Method,
		Duration:   r.Duration,
		Warnings:   r.Warnings,
	}, err
}
