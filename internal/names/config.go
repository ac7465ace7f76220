package names

import "github.com/joseph-ayodele/resume-extractor/constants"

// Config tunes the name heuristics. It is copied on construction.
type Config struct {
	Blocklist   []string // words that are never name tokens, case-insensitive
	TopLines    int      // how many leading lines the top-line scan looks at
	SkipMarkers []string // a line containing any of these is not a name line
	MinHintLen  int      // shortest email local-part piece used as a hint
}

// DefaultConfig returns the built-in word lists and top-line window.
func DefaultConfig() Config {
	return Config{
		Blocklist:   constants.NameBlocklist(),
		TopLines:    constants.DefaultTopLines,
		SkipMarkers: constants.NonNameMarkers(),
		MinHintLen:  constants.DefaultMinHintLen,
	}
}
