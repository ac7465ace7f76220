package textsource

import (
	"context"
	"fmt"
	"os"

	"github.com/ledongthuc/pdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

func (e *Extractor) extractPDFNative(_ context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF, Method: "pdf-native"}

	if n, err := pageCount(path); err != nil {
		// pdfcpu is stricter than the text reader; keep going and let the reader decide.
		res.Warnings = append(res.Warnings, fmt.Sprintf("preflight: %v", err))
		e.logger.Warn("textsource.pdf.preflight_failed", "path", path, "error", err)
	} else {
		e.logger.Debug("textsource.pdf.preflight_ok", "path", path, "pages", n)
	}

	pages, warns, err := readPDFPages(path)
	res.Warnings = append(res.Warnings, warns...)
	if err != nil {
		return res, err
	}
	res.Pages = pages
	return res, nil
}

func pageCount(path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return api.PageCount(f, nil)
}

// readPDFPages returns the plain text of every page. The reader panics on
// some malformed inputs, so panics are turned into errors.
func readPDFPages(path string) (pages []string, warnings []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf: malformed document: %v", r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("pdf: %w", err)
	}
	defer f.Close()

	total := r.NumPage()
	for i := 1; i <= total; i++ {
		p := r.Page(i)
		if p.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		if text, ok := pageLines(p); ok {
			pages = append(pages, text)
			continue
		}
		text, perr := p.GetPlainText(nil)
		if perr != nil {
			warnings = append(warnings, fmt.Sprintf("page %d: %v", i, perr))
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, warnings, nil
}

func (e *Extractor) extractPDFText(ctx context.Context, path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.PDF, Method: "pdf-text"}
	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := e.runner.Run(ctx, e.cfg.Pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		if len(errb) > 0 {
			res.Warnings = append(res.Warnings, string(errb))
		}
		return res, fmt.Errorf("pdftotext: %w", err)
	}
	res.Pages = splitPages(string(out))
	return res, nil
}
