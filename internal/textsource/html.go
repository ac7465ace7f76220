package textsource

import (
	"bytes"
	"fmt"
	"os"

	"github.com/PuerkitoBio/goquery"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

const blockSelector = "p, div, li, ul, ol, h1, h2, h3, h4, h5, h6, tr, table, section, article, header, footer, address, blockquote, pre, dt, dd, title"

func (e *Extractor) extractHTML(path string) (ExtractionResult, error) {
	res := ExtractionResult{SourceType: constants.HTML, Method: "html"}
	content, err := os.ReadFile(path)
	if err != nil {
		return res, err
	}
	text, err := htmlText(content)
	if err != nil {
		return res, err
	}
	res.Pages = []string{text}
	return res, nil
}

// htmlText renders the visible text of a page with one block element per line.
func htmlText(content []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(content))
	if err != nil {
		return "", fmt.Errorf("failed to create document from HTML content: %w", err)
	}
	doc.Find("script, style, noscript, template").Remove()
	doc.Find("br").ReplaceWithHtml("\n")
	doc.Find("td, th").AppendHtml(" ")
	doc.Find(blockSelector).AppendHtml("\n")
	return doc.Find("body").Text(), nil
}
