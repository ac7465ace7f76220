package names

import "strings"

// Name is a resolved name split into parts. Missing parts are "".
type Name struct {
	First  string
	Middle string
	Last   string
}

// Empty reports whether no part is set.
func (n Name) Empty() bool { return n.First == "" && n.Middle == "" && n.Last == "" }

// Decompose splits tokens into first, middle and last name. A single token
// is a first name; with three or four tokens the inner ones form the middle.
func Decompose(tokens []string) Name {
	switch len(tokens) {
	case 0:
		return Name{}
	case 1:
		return Name{First: tokens[0]}
	case 2:
		return Name{First: tokens[0], Last: tokens[1]}
	default:
		return Name{
			First:  tokens[0],
			Middle: strings.Join(tokens[1:len(tokens)-1], " "),
			Last:   tokens[len(tokens)-1],
		}
	}
}
