package parser

import (
	"fmt"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// Fixed counterpart accounts the statements never name themselves.
const (
	dividendRevenueAccount = "Revenus:Dividendes"
	withholdingTaxAccount  = "Depenses:Impots:IR"
	bankFeesAccount        = "Depenses:Banque:Frais"
	loanInterestAccount    = "Depenses:Banque:Interet"
	loanInsuranceAccount   = "Depenses:Banque:AssuEmprunt"
	loanFundingAccount     = "Actif:Boursorama:CCJoint"
)

// Document is the per-statement working set shared by every dialect
// extractor. The Importer assembles it once; extractors read it only.
type Document struct {
	Name       string         // originating file name
	Text       string         // full converted statement text
	Dialect    models.Dialect // classifier output
	AccountKey string         // raw identifier found in the text
	Account    string         // resolved ledger account
	Security   string         // ISIN, trade and fund statements only
	Meta       models.Metadata
}

// CashAccount is the cash sub-account of the resolved ledger account.
func (doc *Document) CashAccount() string {
	return doc.Account + ":Cash"
}

// SecurityAccount is the per-instrument sub-account holding the position.
func (doc *Document) SecurityAccount() string {
	return doc.Account + ":" + doc.Security
}

// entryMeta copies the shared metadata so each emitted entry owns its map.
func (doc *Document) entryMeta() models.Metadata {
	m := make(models.Metadata, len(doc.Meta))
	for k, v := range doc.Meta {
		m[k] = v
	}
	return m
}

// Extractor is implemented once per statement dialect. Extract returns the
// entries it could fully assemble plus a diagnostic for every record it had
// to drop; one bad line never discards its siblings.
type Extractor interface {
	Extract(doc *Document) ([]models.Entry, []Diagnostic)
	// Label returns the human statement label used in display file names.
	Label() string
}

// NewExtractor returns the extractor owning the given dialect's patterns.
func NewExtractor(dialect models.Dialect) (Extractor, error) {
	switch dialect {
	case models.DialectDividend:
		return &DividendExtractor{}, nil
	case models.DialectCash:
		return &CashExtractor{}, nil
	case models.DialectTrade:
		return &TradeExtractor{}, nil
	case models.DialectFund:
		return &FundExtractor{}, nil
	case models.DialectChecking:
		return &CheckingExtractor{}, nil
	case models.DialectAmortization:
		return &AmortizationExtractor{}, nil
	case models.DialectCard:
		return &CardExtractor{}, nil
	default:
		return nil, fmt.Errorf("unsupported statement dialect %q: %w", dialect, ErrUnclassified)
	}
}

// HumanLabel names the statement type for display file names. Unclassified
// documents fall back to the generic label.
func HumanLabel(dialect models.Dialect) string {
	ext, err := NewExtractor(dialect)
	if err != nil {
		return "Statement"
	}
	return ext.Label()
}
