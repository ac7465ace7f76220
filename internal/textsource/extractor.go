package textsource

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joseph-ayodele/resume-extractor/constants"
	"github.com/joseph-ayodele/resume-extractor/internal/common"
)

// PDF reading strategies.
const (
	MethodNative    = "native"
	MethodPdftotext = "pdftotext"
)

type Config struct {
	Method    string // MethodNative | MethodPdftotext; empty -> native
	Pdftotext string // binary name or absolute path; if empty -> "pdftotext"
	MaxPages  int    // 0 = no limit

	// OCR for images and, when OCRFallback is set, for PDFs without a text layer.
	OCRFallback   bool
	Pdftoppm      string // if empty -> "pdftoppm"
	Tesseract     string // if empty -> "tesseract"
	TesseractLang string // default "eng"
	DPI           int    // rasterization DPI for scanned PDFs, default 300
}

type ExtractionResult struct {
	Pages      []string // cleaned text, one entry per page
	SourceType string   // constants.PDF | constants.HTML | constants.TEXT | constants.IMAGE
	Method     string   // "pdf-native" | "pdf-text" | "pdf-ocr" | "image-ocr" | "html" | "plain"
	Duration   time.Duration
	Warnings   []string
}

type Extractor struct {
	cfg    Config
	runner Runner
	logger *slog.Logger
}

func NewExtractor(cfg Config, logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Method == "" {
		cfg.Method = MethodNative
	}
	if cfg.Pdftotext == "" {
		cfg.Pdftotext = "pdftotext"
	}
	if cfg.Pdftoppm == "" {
		cfg.Pdftoppm = "pdftoppm"
	}
	if cfg.Tesseract == "" {
		cfg.Tesseract = "tesseract"
	}
	if cfg.TesseractLang == "" {
		cfg.TesseractLang = "eng"
	}
	if cfg.DPI <= 0 {
		cfg.DPI = 300
	}
	return &Extractor{cfg: cfg, runner: execRunner{logger: logger}, logger: logger}
}

// WithRunner swaps the command runner used for external tools.
func (e *Extractor) WithRunner(r Runner) *Extractor {
	if r != nil {
		e.runner = r
	}
	return e
}

// Extract picks a strategy based on file extension.
func (e *Extractor) Extract(ctx context.Context, path string) (ExtractionResult, error) {
	start := time.Now()
	info, err := os.Stat(path)
	if err != nil {
		e.logger.Warn("textsource.stat.failed", "path", path, "error", err)
		return ExtractionResult{}, common.SourceUnavailable(path, err)
	}
	if info.IsDir() {
		return ExtractionResult{}, common.SourceUnavailable(path, errors.New("is a directory"))
	}

	ext := constants.NormalizeExt(filepath.Ext(path))
	e.logger.Debug("textsource.extract.start", "path", path, "method", e.cfg.Method, "ext", ext)

	var res ExtractionResult
	switch constants.MapExtToFormat(ext) {
	case constants.PDF:
		if strings.EqualFold(e.cfg.Method, MethodPdftotext) {
			res, err = e.extractPDFText(ctx, path)
		} else {
			res, err = e.extractPDFNative(ctx, path)
		}
		if err == nil && e.cfg.OCRFallback && blank(res.Pages) {
			res = e.ocrFallback(ctx, path, res)
		}
	case constants.IMAGE:
		res, err = e.extractImage(ctx, path)
	case constants.HTML:
		res, err = e.extractHTML(path)
	case constants.TEXT:
		res, err = e.extractPlain(path)
	default:
		e.logger.Error("textsource.extract.unsupported", "path", path, "extension", ext)
		return ExtractionResult{}, common.NewAppError(common.CodeSource, path,
			fmt.Errorf("%w: extension %q", common.ErrUnsupportedFormat, ext))
	}
	res.Duration = time.Since(start)
	if err != nil {
		e.logger.Error("textsource.extract.failed", "path", path, "error", err)
		return res, common.SourceUnavailable(path, err)
	}

	if e.cfg.MaxPages > 0 && len(res.Pages) > e.cfg.MaxPages {
		res.Warnings = append(res.Warnings, fmt.Sprintf("truncated to %d of %d pages", e.cfg.MaxPages, len(res.Pages)))
		res.Pages = res.Pages[:e.cfg.MaxPages]
	}
	for i := range res.Pages {
		res.Pages[i] = CleanPage(res.Pages[i])
	}

	e.logger.Info("textsource.extract.ok",
		"path", path,
		"source_type", res.SourceType,
		"method", res.Method,
		"pages", len(res.Pages),
		"warnings", len(res.Warnings),
		"duration_ms", res.Duration.Milliseconds(),
	)
	return res, nil
}
