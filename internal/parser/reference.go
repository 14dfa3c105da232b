package parser

import (
	"fmt"
	"regexp"
	"time"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// Account identifiers look different in every statement layout: a bare
// 11-digit number on checking statements, a masked PAN on card statements,
// a composite credit reference on amortization schedules, and a routing-prefix
// anchored sequence on brokerage documents.
var accountKeyPatterns = map[models.Dialect]*regexp.Regexp{
	models.DialectChecking:     regexp.MustCompile(`(\d{11})`),
	models.DialectCard:         regexp.MustCompile(`((?:4979|4810)\*{8}\d{4})`),
	models.DialectAmortization: regexp.MustCompile(`N(?:°|º) du crédit\s*:\s?(\d{5}\s?-\s?\d{11})`),
	models.DialectCash:         regexp.MustCompile(`40618\s\d{5}\s(\d{11})\s`),
	models.DialectDividend:     regexp.MustCompile(`40618\s\d{5}\s(\d{11})\s`),
	models.DialectTrade:        regexp.MustCompile(`\d{5}\s\d{5}\s(\d{11})\s`),
	models.DialectFund:         regexp.MustCompile(`\d{5}\s\d{5}\s(\d{11})\s`),
}

// AccountKey recovers the raw account identifier for the given dialect.
func AccountKey(text string, dialect models.Dialect) (string, error) {
	pattern, ok := accountKeyPatterns[dialect]
	if !ok {
		return "", fmt.Errorf("no account pattern for %s statements: %w", dialect, ErrUnclassified)
	}
	m := pattern.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("account identifier (%s): %w", dialect, ErrPatternNotFound)
	}
	return m[1], nil
}

var securityIDPattern = regexp.MustCompile(`Code ISIN\s:\s*([A-Z0-9]{12})`)

// SecurityID recovers the ISIN of the traded instrument. Trade and fund
// statements always print it under a "Code ISIN" label.
func SecurityID(text string) (string, error) {
	m := securityIDPattern.FindStringSubmatch(text)
	if m == nil {
		return "", fmt.Errorf("security identifier: %w", ErrPatternNotFound)
	}
	return m[1], nil
}

// Closing-balance dates sit on the line carrying the 40618 routing prefix,
// on checking and card statements alike.
var routingDatePattern = regexp.MustCompile(`(\d{1,2}/\d{2}/\d{4}).*40618`)

// routingDate finds the statement's closing date next to the routing prefix.
func routingDate(text string) (time.Time, error) {
	m := routingDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, ErrPatternNotFound
	}
	return parseFrenchDate(m[1])
}

// The statement date is always introduced by one of a few French
// prepositional anchors, whichever layout the document uses.
var referenceDatePattern = regexp.MustCompile(`(?:le\s|au\s*|Date départ\s*:\s)(\d*/\d*/\d*)`)

// ReferenceDate derives the document's display date. Not every statement has
// one; the second return reports whether a date was found.
func ReferenceDate(text string) (time.Time, bool) {
	m := referenceDatePattern.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	t, err := parseFrenchDate(m[1])
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
