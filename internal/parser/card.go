package parser

import (
	"regexp"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// CardExtractor handles deferred-debit card statements.
//
// Every operation line is anchored on the "CARTE" marker; card spend is
// always a debit, so amounts are negated unconditionally. The trailing due
// line gives the statement total, asserted as a balance on the due date
// recovered from the routing-prefix line.
type CardExtractor struct{}

func (e *CardExtractor) Label() string { return "Card Statement" }

var (
	cardRowPattern = regexp.MustCompile(
		`(\d{1,2}/\d{2}/\d{4})\s*CARTE\s(.*)\s((?:\d{1,3}\.)?\d{1,3},\d{2})`,
	)
	cardDuePattern = regexp.MustCompile(
		`A VOTRE DEBIT LE\s(\d{1,2}/\d{2}/\d{4})\s*((?:\d{1,3}\.)?(?:\d{1,3}\.)?\d{1,3},\d{2})`,
	)
)

func (e *CardExtractor) Extract(doc *Document) ([]models.Entry, []Diagnostic) {
	var entries []models.Entry
	var diags []Diagnostic

	for _, m := range cardRowPattern.FindAllStringSubmatch(doc.Text, -1) {
		date, err := parseFrenchDate(m[1])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "operation date", err))
			continue
		}
		amount, err := ParseDecimal(m[3])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "operation amount", err))
			continue
		}
		payee := squashSpaces(m[2])
		if payee == "" {
			payee = "inconnu"
		}
		entries = append(entries, &models.Transaction{
			Date:  date,
			Flag:  models.FlagOkay,
			Payee: payee,
			Postings: []models.Posting{
				{Account: doc.Account, Units: models.NewAmount(amount.Neg(), "")},
			},
			Meta: doc.entryMeta(),
		})
	}

	entries, diags = e.closingBalance(doc, entries, diags)
	return entries, diags
}

// closingBalance appends the statement-total assertion. A miss here drops
// only the assertion; the operation lines above stand.
func (e *CardExtractor) closingBalance(doc *Document, entries []models.Entry, diags []Diagnostic) ([]models.Entry, []Diagnostic) {
	m := cardDuePattern.FindStringSubmatch(doc.Text)
	if m == nil {
		return entries, append(diags, missing(doc.Dialect, "due amount"))
	}
	due, err := ParseDecimal(m[2])
	if err != nil {
		return entries, append(diags, badField(doc.Dialect, "due amount", err))
	}
	date, err := routingDate(doc.Text)
	if err != nil {
		return entries, append(diags, badField(doc.Dialect, "due date", err))
	}
	entries = append(entries, &models.Balance{
		Date:    date,
		Account: doc.Account,
		Amount:  models.NewAmount(due.Neg(), ""),
		Meta:    doc.entryMeta(),
	})
	return entries, diags
}
