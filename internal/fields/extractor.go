// Package fields holds the regex extractors for email, phone and social
// profile links. Extractors never fail; a missing field is an empty value.
package fields

import (
	"regexp"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
)

var (
	reEmail      = regexp.MustCompile(`(?i)\b[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}\b`)
	rePhone      = regexp.MustCompile(`\+?\d[\d\s\-()]{8,}\d`)
	reNonDigit   = regexp.MustCompile(`\D`)
	reSchemeURL  = regexp.MustCompile(`(?i)\bhttps?://[^\s)\]]+`)
	reBareDomain = regexp.MustCompile(`(?i)\b(?:www\.)?[a-z0-9.-]+\.[a-z]{2,}[^\s,;)]+`)
)

const linkTrailingPunct = ".,);]"

// Extractor runs the email, phone and social-link heuristics with fixed rules.
type Extractor struct {
	rules Rules
}

// NewExtractor returns an Extractor using a copy of rules.
func NewExtractor(rules Rules) *Extractor {
	return &Extractor{rules: rules.clone()}
}

// Email returns the first email address in text, or "".
func (e *Extractor) Email(text string) string {
	return reEmail.FindString(text)
}

// Phone returns the most plausible phone number in text, trimmed, or "".
// Candidates outside the configured digit range are ignored; the highest
// score wins and ties keep the earliest candidate.
func (e *Extractor) Phone(text string) string {
	best, bestScore := "", 0
	for _, c := range rePhone.FindAllString(text, -1) {
		digits := reNonDigit.ReplaceAllString(c, "")
		if len(digits) < e.rules.PhoneMinDigits || len(digits) > e.rules.PhoneMaxDigits {
			continue
		}
		if score := e.phoneScore(digits); score > bestScore {
			best, bestScore = strings.TrimSpace(c), score
		}
	}
	return best
}

func (e *Extractor) phoneScore(digits string) int {
	score := len(digits)
	boost := e.rules.PhoneBoost
	if digits != "" && boost.LeadingDigits != "" && strings.ContainsRune(boost.LeadingDigits, rune(digits[0])) {
		return score + boost.Bonus
	}
	for _, cc := range boost.CountryCodes {
		if cc != "" && strings.HasPrefix(digits, cc) {
			return score + boost.Bonus
		}
	}
	return score
}

// SocialLinks returns the de-duplicated, ascending list of links whose
// lowercase form contains an allow-listed domain. Links without a scheme
// get "https://".
func (e *Extractor) SocialLinks(text string) []string {
	found := mapset.NewSet[string]()
	for _, u := range reSchemeURL.FindAllString(text, -1) {
		found.Add(trimLink(u))
	}
	for _, u := range reBareDomain.FindAllString(text, -1) {
		if strings.HasPrefix(u, "http") {
			continue
		}
		found.Add(trimLink(u))
	}

	// A scheme URL also yields its bare-domain tail, so dedupe after normalizing.
	social := mapset.NewSet[string]()
	for _, u := range found.ToSlice() {
		if !e.isSocial(u) {
			continue
		}
		social.Add(normalizeScheme(u))
	}
	links := social.ToSlice()
	sort.Strings(links)
	return links
}

func (e *Extractor) isSocial(u string) bool {
	lower := strings.ToLower(u)
	for _, dom := range e.rules.SocialDomains {
		if strings.Contains(lower, dom) {
			return true
		}
	}
	return false
}

// normalizeScheme lowercases an existing http(s) scheme or prepends "https://".
func normalizeScheme(u string) string {
	lower := strings.ToLower(u)
	for _, scheme := range []string{"https://", "http://"} {
		if strings.HasPrefix(lower, scheme) {
			return scheme + u[len(scheme):]
		}
	}
	return "https://" + strings.TrimLeft(u, "/")
}

func trimLink(u string) string {
	return strings.TrimRight(strings.TrimSpace(u), linkTrailingPunct)
}
