package parser

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// Statement dates are day-first. Two-digit years show up in some older
// checking statements, four digits everywhere else.
var frenchDateLayouts = []string{
	"02/01/2006",
	"02/01/06",
}

func parseFrenchDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range frenchDateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

var spaceRun = regexp.MustCompile(`\s+`)

// squashSpaces collapses the whitespace runs the converted text is littered with.
func squashSpaces(s string) string {
	return strings.TrimSpace(spaceRun.ReplaceAllString(s, " "))
}
