package parser

import (
	"fmt"
	"time"

	"github.com/insightdelivered/boursorama-importer/internal/accounts"
	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// SourceTag marks every emitted entry with the importer it came from.
const SourceTag = "pdfbourso"

// Importer runs the full pipeline for one converted statement: classify,
// resolve the account reference, dispatch to the dialect extractor and attach
// shared metadata. It holds no per-document state; the account directory is
// the only cross-document input.
type Importer struct {
	Accounts accounts.Directory
}

// New builds an Importer over the given account directory.
func New(dir accounts.Directory) *Importer {
	return &Importer{Accounts: dir}
}

// Result is everything the engine recovered from one document.
type Result struct {
	Dialect     models.Dialect
	Document    string // display name: "<ISO date> <Human Label>.pdf"
	AccountKey  string
	Account     string
	Entries     []models.Entry
	Diagnostics []Diagnostic
}

// Process converts one statement text into ledger entries. An unclassified
// document is not an error: it returns an empty result tagged unclassified.
// A failed account lookup is fatal for the document; no partial records
// referencing an unresolved account are ever emitted.
func (imp *Importer) Process(filename, text string) (*Result, error) {
	dialect := Classify(text)
	res := &Result{Dialect: dialect}
	res.Document = imp.DocumentName(text, dialect)

	if dialect == models.DialectUnclassified {
		return res, nil
	}

	extractor, err := NewExtractor(dialect)
	if err != nil {
		return nil, err
	}

	key, err := AccountKey(text, dialect)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	account, err := imp.Accounts.Resolve(key)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	res.AccountKey = key
	res.Account = account

	doc := &Document{
		Name:       filename,
		Text:       text,
		Dialect:    dialect,
		AccountKey: key,
		Account:    account,
		Meta: models.Metadata{
			"source":   SourceTag,
			"document": res.Document,
		},
	}

	// Brokerage confirmations post against a per-instrument sub-account;
	// without the ISIN there is no account to post to, so a miss is fatal
	// the same way an unresolved account key is.
	if dialect == models.DialectTrade || dialect == models.DialectFund {
		isin, err := SecurityID(text)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", filename, err)
		}
		doc.Security = isin
	}

	res.Entries, res.Diagnostics = extractor.Extract(doc)
	return res, nil
}

// DocumentName composes the display file name used for filing: the reference
// date in ISO form followed by the dialect's human label. Documents with no
// derivable date get the bare label.
func (imp *Importer) DocumentName(text string, dialect models.Dialect) string {
	label := HumanLabel(dialect)
	date, ok := ReferenceDate(text)
	if !ok {
		return label + ".pdf"
	}
	return date.Format("2006-01-02") + " " + label + ".pdf"
}

// AccountPath resolves the ledger account a document files under, including
// the security or cash sub-account suffix brokerage dialects use. This is
// the filing counterpart of Process for callers that only organize documents.
func (imp *Importer) AccountPath(text string) (string, error) {
	dialect := Classify(text)
	if dialect == models.DialectUnclassified {
		return "", ErrUnclassified
	}
	key, err := AccountKey(text, dialect)
	if err != nil {
		return "", err
	}
	account, err := imp.Accounts.Resolve(key)
	if err != nil {
		return "", err
	}
	switch dialect {
	case models.DialectTrade, models.DialectFund:
		isin, err := SecurityID(text)
		if err != nil {
			return "", err
		}
		return account + ":" + isin, nil
	case models.DialectDividend, models.DialectCash:
		return account + ":Cash", nil
	}
	return account, nil
}

// FileDate exposes the document's reference date for filing. The zero time
// with ok=false means the document has no derivable date.
func (imp *Importer) FileDate(text string) (time.Time, bool) {
	return ReferenceDate(text)
}
