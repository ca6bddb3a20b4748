package matcher

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Rule describes how card names are matched against image filenames for
// one category.
type Rule struct {
	// Strip lists the characters removed from card names before matching
	Strip string
	// Suffix every candidate filename must end with
	Suffix string
	// UseMarkers enables the attribute markers for this category
	UseMarkers bool
	// Markers maps an attribute value to a substring that must appear in
	// the filename before the card name. Unlisted values need no marker.
	Markers map[string]string
	// Normalize compares names in Unicode NFC
	Normalize bool
}

// Clean removes the Strip characters from name. Cleaning is idempotent.
func (r Rule) Clean(name string) string {
	if r.Strip == "" {
		return name
	}
	return strings.Map(func(c rune) rune {
		if strings.ContainsRune(r.Strip, c) {
			return -1
		}
		return c
	}, name)
}

// Marker returns the filename marker required for attribute, if any
func (r Rule) Marker(attribute string) string {
	if !r.UseMarkers {
		return ""
	}
	return r.Markers[attribute]
}

// Pattern builds the filename pattern for a card
func (r Rule) Pattern(name, attribute string) (*regexp.Regexp, error) {
	clean := r.normalize(r.Clean(r.normalize(name)))
	marker := r.normalize(r.Marker(attribute))

	var expr strings.Builder
	expr.WriteString("^.*")
	if marker != "" {
		expr.WriteString(regexp.QuoteMeta(marker))
		expr.WriteString(".*")
	}
	expr.WriteString(regexp.QuoteMeta(clean))
	expr.WriteString(".*")
	expr.WriteString(regexp.QuoteMeta(r.normalize(r.Suffix)))
	expr.WriteString("$")

	re, err := regexp.Compile(expr.String())
	if err != nil {
		return nil, fmt.Errorf("error compiling pattern for %q: %v", name, err)
	}
	return re, nil
}

// Match returns the first file, in listing order, that matches the card.
func (r Rule) Match(files []string, name, attribute string) (string, bool) {
	re, err := r.Pattern(name, attribute)
	if err != nil {
		return "", false
	}

	for _, file := range files {
		if re.MatchString(r.normalize(file)) {
			return file, true
		}
	}
	return "", false
}

func (r Rule) normalize(s string) string {
	if !r.Normalize {
		return s
	}
	return norm.NFC.String(s)
}
