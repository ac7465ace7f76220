// Package document turns raw page text into the normalized line view the
// field extractors work on.
package document

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Line-break forms recognised when splitting a page.
var reLineBreak = regexp.MustCompile("\r\n|[\n\r\v\f\x1c\x1d\x1e\u0085\u2028\u2029]")

var reWhitespace = regexp.MustCompile(`\s+`)

// Options controls normalization.
type Options struct {
	// FoldCompat applies Unicode NFKC so ligatures and full-width forms
	// match ASCII patterns.
	FoldCompat bool
}

// DefaultOptions returns the options used by the CLI.
func DefaultOptions() Options {
	return Options{FoldCompat: true}
}

// Document is the immutable normalized text of one résumé.
type Document struct {
	lines    []string
	fullText string
	flat     string
}

// New normalizes pages into a Document. Lines are trimmed, empty lines
// dropped, and page order then in-page order preserved.
func New(pages []string, opts Options) Document {
	var lines []string
	for _, page := range pages {
		if opts.FoldCompat {
			page = norm.NFKC.String(page)
		}
		for _, ln := range reLineBreak.Split(page, -1) {
			if ln = strings.TrimSpace(ln); ln != "" {
				lines = append(lines, ln)
			}
		}
	}
	full := strings.Join(lines, "\n")
	return Document{
		lines:    lines,
		fullText: full,
		flat:     strings.TrimSpace(reWhitespace.ReplaceAllString(full, " ")),
	}
}

// Lines returns a copy of the non-empty trimmed lines.
func (d Document) Lines() []string {
	out := make([]string, len(d.lines))
	copy(out, d.lines)
	return out
}

// FullText returns the lines joined by "\n".
func (d Document) FullText() string { return d.fullText }

// Flat returns the text as a single whitespace-collapsed line, for patterns
// that never span lines.
func (d Document) Flat() string { return d.flat }

// Empty reports whether the document has no text at all.
func (d Document) Empty() bool { return len(d.lines) == 0 }
