package textsource

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

func (e *Extractor) extractImage(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.IMAGE, Method: "image-ocr"}
	txt, warn, err := e.tesseract(ctx, path)
	res.Warnings = append(res.Warnings, warn...)
	if err != nil {
		return res, err
	}
	res.Pages = []string{txt}
	return res, nil
}

// ocrFallback rasterizes a PDF that yielded no text and OCRs each page.
// On failure the text-layer result is kept with a warning.
func (e *Extractor) ocrFallback(ctx context.Context, path string, res ExtractionResult) ExtractionResult {
	e.logger.Info("textsource.pdf.no_text_layer", "path", path, "fallback", "ocr")
	pages, warns, err := e.pdfOCR(ctx, path)
	if err != nil {
		e.logger.Warn("textsource.ocr.failed", "path", path, "error", err)
		res.Warnings = append(res.Warnings, warns...)
		res.Warnings = append(res.Warnings, fmt.Sprintf("ocr fallback: %v", err))
		return res
	}
	res.Pages = pages
	res.Method = "pdf-ocr"
	res.Warnings = append(res.Warnings, warns...)
	return res
}

func (e *Extractor) pdfOCR(ctx context.Context, path string) ([]string, []string, error) {
	tmpDir, err := os.MkdirTemp("", "resume-pp-*")
	if err != nil {
		return nil, nil, err
	}
	defer func() {
		if err := os.RemoveAll(tmpDir); err != nil {
			e.logger.Warn("textsource.ocr.cleanup_failed", "dir", tmpDir, "error", err)
		}
	}()

	prefix := filepath.Join(tmpDir, "page")
	args := []string{"-r", strconv.Itoa(e.cfg.DPI), "-png"}
	if e.cfg.MaxPages > 0 {
		args = append(args, "-l", strconv.Itoa(e.cfg.MaxPages))
	}
	// pdftoppm -r 300 -png <in.pdf> <tmp/page>
	_, errb, err := e.runner.Run(ctx, e.cfg.Pdftoppm, append(args, path, prefix)...)
	if err != nil {
		return nil, nonEmpty(string(errb)), fmt.Errorf("pdftoppm: %w", err)
	}

	// prefix-1.png, prefix-2.png, ... (zero padded for long documents)
	images, _ := filepath.Glob(prefix + "-*.png")
	sort.Strings(images)
	if len(images) == 0 {
		return nil, nil, fmt.Errorf("pdftoppm produced no images")
	}

	pages := make([]string, 0, len(images))
	var warns []string
	failed := 0
	for _, img := range images {
		txt, w, err := e.tesseract(ctx, img)
		warns = append(warns, w...)
		if err != nil {
			failed++
			warns = append(warns, fmt.Sprintf("%s: %v", filepath.Base(img), err))
			pages = append(pages, "")
			continue
		}
		pages = append(pages, txt)
	}
	if failed == len(images) {
		return nil, warns, fmt.Errorf("tesseract failed on all %d pages", failed)
	}
	return pages, warns, nil
}

func (e *Extractor) tesseract(ctx context.Context, path string) (string, []string, error) {
	// tesseract <file> stdout -l <lang>
	out, errb, err := e.runner.Run(ctx, e.cfg.Tesseract, path, "stdout", "-l", e.cfg.TesseractLang)
	if err != nil {
		return "", nonEmpty(string(errb)), fmt.Errorf("tesseract: %w", err)
	}
	return string(out), nil, nil
}

func blank(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}

func nonEmpty(s string) []string {
	if s = strings.TrimSpace(s); s == "" {
		return nil
	}
	return []string{s}
}
