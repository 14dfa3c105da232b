package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// normalizeNumber rewrites a French locale-formatted numeric substring into
// the form the decimal parser expects. Thousand separators are either spaces
// (ordinary or non-breaking) or periods, the decimal separator is a comma;
// a plain period decimal ("12.5") passes through untouched.
func normalizeNumber(s string) string {
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		i := strings.LastIndex(s, ",")
		s = s[:i] + "." + s[i+1:]
	}
	return s
}

// ParseDecimal converts a locale-formatted amount substring into an exact
// decimal. An empty normalized result is an error, not zero; precision is
// whatever the source text carried, no rounding.
func ParseDecimal(s string) (decimal.Decimal, error) {
	n := normalizeNumber(s)
	if n == "" || n == "-" || n == "+" {
		return decimal.Decimal{}, fmt.Errorf("%w (from %q)", ErrEmptyAmount, s)
	}
	d, err := decimal.NewFromString(n)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("unparseable amount %q: %w", s, err)
	}
	return d, nil
}
