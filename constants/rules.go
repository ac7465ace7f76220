package constants

import (
	"strings"
)

// NameSource tags where a resolved name came from.
type NameSource string

const (
	NameSourceNone     NameSource = ""
	NameSourceFilename NameSource = "filename"
	NameSourceTopLines NameSource = "top-lines"
)

// Social and professional domains kept by the social link extractor.
var socialDomains = []string{
	"linkedin.com",
	"github.com",
	"gitlab.com",
	"behance.net",
	"dribbble.com",
	"pinterest.com",
	"medium.com",
	"x.com",
	"twitter.com",
	"facebook.com",
	"instagram.com",
	"hashnode.com",
	"dev.to",
	"substack.com",
	"blogspot.com",
	"wordpress.com",
	"notion.site",
	"notion.so",
	"about.me",
	"me.linkedin.com",
}

// Words never considered a person-name token.
var nameBlocklist = []string{
	"cv", "resume", "profile", "curriculum", "vitae", "summary",
	"data", "science", "scientist", "ai", "ml", "dl", "analytics",
	"engineer", "lead", "manager", "professional", "transforming",
	"insights", "consultant", "portfolio", "contact",
}

// Substrings that mark a line as obviously not a name.
var nonNameMarkers = []string{
	"@", "http", "www.", "phone", "mobile", "contact", "linkedin", "github",
}

// Default phone boost: country code 91 or a leading digit 6-9.
const (
	DefaultPhoneCountryCode   = "91"
	DefaultPhoneLeadingDigits = "6789"
	DefaultPhoneBonus         = 2
	DefaultPhoneMinDigits     = 10
	DefaultPhoneMaxDigits     = 13
	DefaultTopLines           = 15
	DefaultMinHintLen         = 3
)

func SocialDomains() []string  { return cloneStrings(socialDomains) }
func NameBlocklist() []string  { return cloneStrings(nameBlocklist) }
func NonNameMarkers() []string { return cloneStrings(nonNameMarkers) }

// CanonicalizeList lowercases, trims and drops empty entries.
func CanonicalizeList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
