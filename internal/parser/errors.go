package parser

import (
	"errors"
	"fmt"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

var (
	// ErrUnclassified means no dialect marker matched the document text.
	ErrUnclassified = errors.New("statement dialect not recognized")
	// ErrPatternNotFound means a required field pattern did not match.
	ErrPatternNotFound = errors.New("pattern not found")
	// ErrEmptyAmount means a numeric substring normalized to nothing. It is
	// never treated as zero: it signals a broken text extraction upstream.
	ErrEmptyAmount = errors.New("empty amount")
)

// Diagnostic reports a field a dialect extractor could not recover. The
// record being assembled is dropped; sibling records already extracted from
// the same document stand.
type Diagnostic struct {
	Dialect models.Dialect
	Field   string
	Err     error
}

func (d Diagnostic) Error() string {
	return fmt.Sprintf("%s statement: %s: %v", d.Dialect, d.Field, d.Err)
}

func (d Diagnostic) Unwrap() error { return d.Err }

// missing builds the diagnostic for a field whose pattern never matched.
func missing(dialect models.Dialect, field string) Diagnostic {
	return Diagnostic{Dialect: dialect, Field: field, Err: ErrPatternNotFound}
}

// badField builds the diagnostic for a field that matched but failed to parse.
func badField(dialect models.Dialect, field string, err error) Diagnostic {
	return Diagnostic{Dialect: dialect, Field: field, Err: err}
}
