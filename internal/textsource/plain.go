package textsource

import (
	"os"
	"unicode/utf8"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

func (e *Extractor) extractPlain(path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.TEXT, Method: "plain"}
	content, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	if !utf8.Valid(content) {
		res.Warnings = append(res.Warnings, "input is not valid UTF-8")
	}
	res.Pages = splitPages(string(content))
	return res, nil
}
