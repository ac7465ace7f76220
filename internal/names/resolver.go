// Package names finds the candidate's full name from the file name or the
// first lines of the résumé and splits it into first/middle/last parts.
package names

import (
	"path/filepath"
	"regexp"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/joseph-ayodele/resume-extractor/constants"
)

var (
	reFilenameSep = regexp.MustCompile(`[\s_\-]+`)
	reLinePunct   = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\-]`)
	reNonLetter   = regexp.MustCompile(`[^a-zA-Z]+`)
)

// Evidence is everything the resolver may look at.
type Evidence struct {
	Filename string   // input path or base name
	Lines    []string // normalized document lines
	Email    string   // extracted email, used for hints
}

// Candidate is a token sequence that passed the name-shape predicate.
type Candidate struct {
	Tokens []string
	Source constants.NameSource
	Score  int // top-line score; zero for filename candidates
}

// Strategy proposes a candidate from evidence. Strategies are tried in order.
type Strategy func(ev Evidence) (Candidate, bool)

type Resolver struct {
	cfg       Config
	blocklist mapset.Set[string]
	markers   []string
	chain     []Strategy
}

// NewResolver builds a resolver whose chain is file name first, then top lines.
func NewResolver(cfg Config) *Resolver {
	if cfg.TopLines <= 0 {
		cfg.TopLines = constants.DefaultTopLines
	}
	if cfg.MinHintLen <= 0 {
		cfg.MinHintLen = constants.DefaultMinHintLen
	}
	r := &Resolver{
		cfg:       cfg,
		blocklist: mapset.NewSet(constants.CanonicalizeList(cfg.Blocklist)...),
		markers:   constants.CanonicalizeList(cfg.SkipMarkers),
	}
	r.chain = []Strategy{r.FromFilename, r.FromTopLines}
	return r
}

// WithStrategies replaces the strategy chain.
func (r *Resolver) WithStrategies(chain ...Strategy) *Resolver {
	r.chain = append([]Strategy(nil), chain...)
	return r
}

// Resolve returns the first candidate produced by the chain.
func (r *Resolver) Resolve(ev Evidence) (Candidate, bool) {
	for _, s := range r.chain {
		if c, ok := s(ev); ok {
			return c, true
		}
	}
	return Candidate{}, false
}

// LooksLikeName reports whether tokens have the shape of a person's full
// name: 2 to 4 tokens, each (letters only) non-empty, not blocklisted, and
// either all upper case or Capitalized.
func (r *Resolver) LooksLikeName(tokens []string) bool {
	if len(tokens) < 2 || len(tokens) > 4 {
		return false
	}
	for _, t := range tokens {
		clean := lettersOnly(t)
		if clean == "" {
			return false
		}
		if r.blocklist.Contains(strings.ToLower(clean)) {
			return false
		}
		if !isAllUpper(clean) && !isCapitalized(clean) {
			return false
		}
	}
	return true
}

// FromFilename reads a name from the file's stem, e.g. "Jane Mary Doe CV.pdf".
// The longest passing prefix of 4, 3 or 2 tokens wins.
func (r *Resolver) FromFilename(ev Evidence) (Candidate, bool) {
	if ev.Filename == "" {
		return Candidate{}, false
	}
	base := filepath.Base(ev.Filename)
	stem := strings.TrimSuffix(base, filepath.Ext(base))

	var cand []string
	for _, w := range reFilenameSep.Split(stem, -1) {
		if w != "" && isAlpha(w) && !r.blocklist.Contains(strings.ToLower(w)) {
			cand = append(cand, w)
		}
	}
	for n := 4; n >= 2; n-- {
		if len(cand) >= n && r.LooksLikeName(cand[:n]) {
			return Candidate{Tokens: append([]string(nil), cand[:n]...), Source: constants.NameSourceFilename}, true
		}
	}
	return Candidate{}, false
}

// FromTopLines scans the first lines for a name-shaped line. Each passing
// line scores two points per email hint it contains plus a bonus that
// shrinks with its position; ties go to the earliest line.
func (r *Resolver) FromTopLines(ev Evidence) (Candidate, bool) {
	hints := r.hints(ev.Email)
	lines := ev.Lines
	if len(lines) > r.cfg.TopLines {
		lines = lines[:r.cfg.TopLines]
	}

	var best Candidate
	found := false
	for i, ln := range lines {
		low := strings.ToLower(ln)
		if r.hasMarker(low) {
			continue
		}
		tokens := strings.Fields(reLinePunct.ReplaceAllString(ln, " "))
		if !r.LooksLikeName(tokens) {
			continue
		}
		score := r.cfg.TopLines - i
		for _, h := range hints {
			if strings.Contains(low, h) {
				score += 2
			}
		}
		if !found || score > best.Score {
			best = Candidate{Tokens: tokens, Source: constants.NameSourceTopLines, Score: score}
			found = true
		}
	}
	return best, found
}

// hints returns the lowercase alphabetic pieces of the email's local part.
func (r *Resolver) hints(email string) []string {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return nil
	}
	seen := mapset.NewSet[string]()
	var out []string
	for _, piece := range reNonLetter.Split(local, -1) {
		piece = strings.ToLower(piece)
		if len(piece) >= r.cfg.MinHintLen && seen.Add(piece) {
			out = append(out, piece)
		}
	}
	return out
}

func (r *Resolver) hasMarker(lowerLine string) bool {
	for _, m := range r.markers {
		if strings.Contains(lowerLine, m) {
			return true
		}
	}
	return false
}

func lettersOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) {
			return r
		}
		return -1
	}, s)
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return s != ""
}

// isAllUpper: at least one upper-case letter and no lower-case ones.
func isAllUpper(s string) bool {
	upper := false
	for _, r := range s {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsUpper(r) {
			upper = true
		}
	}
	return upper
}

// isCapitalized: upper-case first letter, then lower-case letters only.
func isCapitalized(s string) bool {
	rs := []rune(s)
	if len(rs) < 2 || !unicode.IsUpper(rs[0]) {
		return false
	}
	lower := false
	for _, r := range rs[1:] {
		if unicode.IsUpper(r) {
			return false
		}
		if unicode.IsLower(r) {
			lower = true
		}
	}
	return lower
}
