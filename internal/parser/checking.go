package parser

import (
	"regexp"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// CheckingExtractor handles current account statements.
//
// The printed layout has no explicit debit/credit marker. The renderer puts
// debits in a left column and credits in a right one, so the combined length
// of the matched label, date, gap and amount spans tells them apart. The
// cutoffs below are empirically tuned to that one fixed-width rendering and
// are not derived from any documented invariant; treat them as fragile.
const (
	checkingBalanceCutoff     = 84
	checkingTransactionCutoff = 148
)

// balanceIsDebit classifies a balance line span. The cutoff itself is a credit.
func balanceIsDebit(span int) bool { return span < checkingBalanceCutoff }

// transactionIsDebit classifies an operation line span. The cutoff itself is
// a debit; only spans beyond it are credits.
func transactionIsDebit(span int) bool { return span <= checkingTransactionCutoff }

type CheckingExtractor struct{}

func (e *CheckingExtractor) Label() string { return "Account Statement" }

var (
	checkingOpeningPattern = regexp.MustCompile(
		`SOLDE\s(?:EN\sEUR\s+)?AU\s:(\s+)(\d{1,2}/\d{2}/\d{4})(\s+)((?:\d{1,3}\.)?\d{1,3},\d{2})`,
	)
	checkingRowPattern = regexp.MustCompile(
		`\d{1,2}/\d{2}/\d{4}\s(.*)\s(\d{1,2}/\d{2}/\d{4})\s(\s*)\s((?:\d{1,3}\.)?\d{1,3},\d{2})(?:(?:\n.\s{8,20})(.+?))?\n`,
	)
	checkingClosingPattern = regexp.MustCompile(
		`Nouveau solde en EUR :(\s+)((?:\d{1,3}\.)?(?:\d{1,3}\.)?\d{1,3},\d{2})`,
	)
)

func (e *CheckingExtractor) Extract(doc *Document) ([]models.Entry, []Diagnostic) {
	var entries []models.Entry
	var diags []Diagnostic

	entries, diags = e.openingBalance(doc, entries, diags)

	for _, m := range checkingRowPattern.FindAllStringSubmatch(doc.Text, -1) {
		date, err := parseFrenchDate(m[2])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "operation date", err))
			continue
		}
		amount, err := ParseDecimal(m[4])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "operation amount", err))
			continue
		}
		span := len(m[1]) + len(m[2]) + len(m[3]) + len(m[4])
		if transactionIsDebit(span) {
			amount = amount.Neg()
		}
		payee := squashSpaces(m[1])
		if payee == "" {
			payee = "inconnu"
		}
		entries = append(entries, &models.Transaction{
			Date:      date,
			Flag:      models.FlagOkay,
			Payee:     payee,
			Narration: squashSpaces(m[5]),
			Postings: []models.Posting{
				{Account: doc.Account, Units: models.NewAmount(amount, "")},
			},
			Meta: doc.entryMeta(),
		})
	}

	entries, diags = e.closingBalance(doc, entries, diags)
	return entries, diags
}

// openingBalance asserts the carried-over balance, dated one day after the
// printed "SOLDE AU" date so the assertion lands after that day's operations.
func (e *CheckingExtractor) openingBalance(doc *Document, entries []models.Entry, diags []Diagnostic) ([]models.Entry, []Diagnostic) {
	m := checkingOpeningPattern.FindStringSubmatch(doc.Text)
	if m == nil {
		return entries, append(diags, missing(doc.Dialect, "opening balance"))
	}
	date, err := parseFrenchDate(m[2])
	if err != nil {
		return entries, append(diags, badField(doc.Dialect, "opening balance date", err))
	}
	balance, err := ParseDecimal(m[4])
	if err != nil {
		return entries, append(diags, badField(doc.Dialect, "opening balance amount", err))
	}
	span := len(m[1]) + len(m[2]) + len(m[3]) + len(m[4])
	if balanceIsDebit(span) {
		balance = balance.Neg()
	}
	entries = append(entries, &models.Balance{
		Date:    date.AddDate(0, 0, 1),
		Account: doc.Account,
		Amount:  models.NewAmount(balance, ""),
		Meta:    doc.entryMeta(),
	})
	return entries, diags
}

// closingBalance asserts the "Nouveau solde" total. Its date is not printed
// on the same line; it is re-derived from the routing-prefix line.
func (e *CheckingExtractor) closingBalance(doc *Document, entries []models.Entry, diags []Diagnostic) ([]models.Entry, []Diagnostic) {
	m := checkingClosingPattern.FindStringSubmatch(doc.Text)
	if m == nil {
		return entries, append(diags, missing(doc.Dialect, "closing balance"))
	}
	balance, err := ParseDecimal(m[2])
	if err != nil {
		return entries, append(diags, badField(doc.Dialect, "closing balance amount", err))
	}
	// Only the label-to-value gap is measured here; the closing line carries
	// no date field to widen the span.
	if balanceIsDebit(len(m[1])) {
		balance = balance.Neg()
	}
	date, err := routingDate(doc.Text)
	if err != nil {
		return entries, append(diags, badField(doc.Dialect, "closing balance date", err))
	}
	entries = append(entries, &models.Balance{
		Date:    date,
		Account: doc.Account,
		Amount:  models.NewAmount(balance, ""),
		Meta:    doc.entryMeta(),
	})
	return entries, diags
}
