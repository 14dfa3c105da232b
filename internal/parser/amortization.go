package parser

import (
	"regexp"
	"strings"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// AmortizationExtractor handles loan amortization schedules.
//
// Each schedule line carries nine columns: the due date, the deduction taken
// from the funding account, the principal, interest and insurance portions,
// rate columns, and the remaining principal due. Every line yields one
// four-leg transaction plus a balance assertion on the loan account the day
// after, negated because the ledger tracks the loan as a liability.
type AmortizationExtractor struct{}

func (e *AmortizationExtractor) Label() string { return "Amortization Schedule" }

var amortizationRowPattern = regexp.MustCompile(
	`(\d*/\d*/\d*)\s+(\d+[.,]\d{2})\s+(\d+[.,]\d{2})\s+(\d+[.,]\d{2})\s+(\d+[.,]\d{2})` +
		`\s+(\d+[.,]\d{2})\s+(\d+[.,]\d{2})\s+(\d+[.,]\d{2})\s+(\d+[.,]\d{2})`,
)

func (e *AmortizationExtractor) Extract(doc *Document) ([]models.Entry, []Diagnostic) {
	var entries []models.Entry
	var diags []Diagnostic

	payee := "ECH PRET:" + digitsOf(doc.AccountKey)

	for _, m := range amortizationRowPattern.FindAllStringSubmatch(doc.Text, -1) {
		date, err := parseFrenchDate(m[1])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "due date", err))
			continue
		}
		deduction, err := ParseDecimal(m[2])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "deduction", err))
			continue
		}
		principal, err := ParseDecimal(m[3])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "principal", err))
			continue
		}
		interest, err := ParseDecimal(m[4])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "interest", err))
			continue
		}
		insurance, err := ParseDecimal(m[5])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "insurance", err))
			continue
		}
		remaining, err := ParseDecimal(m[8])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "remaining principal", err))
			continue
		}

		entries = append(entries, &models.Transaction{
			Date:  date,
			Flag:  models.FlagOkay,
			Payee: payee,
			Postings: []models.Posting{
				{Account: loanFundingAccount, Units: models.NewAmount(deduction.Neg(), "")},
				{Account: doc.Account, Units: models.NewAmount(principal, "")},
				{Account: loanInterestAccount, Units: models.NewAmount(interest, "")},
				{Account: loanInsuranceAccount, Units: models.NewAmount(insurance, "")},
			},
			Meta: doc.entryMeta(),
		})
		entries = append(entries, &models.Balance{
			Date:    date.AddDate(0, 0, 1),
			Account: doc.Account,
			Amount:  models.NewAmount(remaining.Neg(), ""),
			Meta:    doc.entryMeta(),
		})
	}

	return entries, diags
}

// digitsOf strips the separator noise out of the composite credit reference.
func digitsOf(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
