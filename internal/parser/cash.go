package parser

import (
	"regexp"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// CashExtractor handles brokerage cash account statements. These carry no
// individual operations worth importing, only periodic running balances on
// "SOLDE" lines, so the extractor emits balance assertions exclusively.
type CashExtractor struct{}

func (e *CashExtractor) Label() string { return "Cash Statement" }

var cashBalancePattern = regexp.MustCompile(
	`(\d*/\d*/\d*).*SOLDE\s*(\d{0,3}\s\d{1,3}[,.]\d{1,3})`,
)

func (e *CashExtractor) Extract(doc *Document) ([]models.Entry, []Diagnostic) {
	var entries []models.Entry
	var diags []Diagnostic

	for _, m := range cashBalancePattern.FindAllStringSubmatch(doc.Text, -1) {
		date, err := parseFrenchDate(m[1])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "balance date", err))
			continue
		}
		balance, err := ParseDecimal(m[2])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "balance amount", err))
			continue
		}
		entries = append(entries, &models.Balance{
			Date:    date,
			Account: doc.CashAccount(),
			Amount:  models.NewAmount(balance, ""),
			Meta:    doc.entryMeta(),
		})
	}

	return entries, diags
}
