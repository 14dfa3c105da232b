package parser

import (
	"regexp"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// FundExtractor handles mutual fund (OPC) operation confirmations.
//
// Structurally a trade confirmation with different labels: the amount table
// reads "gross / entry fees / pre-tax fees / VAT / net debit amount", the
// price is a net asset value, and purchases are flagged by "SOUSCRIPTION"
// instead of the cash-purchase marker. The fee leg sums the pre-tax fees and
// the entry fees.
type FundExtractor struct{}

func (e *FundExtractor) Label() string { return "Fund Statement" }

var (
	fundAmountsPattern = regexp.MustCompile(
		`Montant brut\s*Droits d'entrée\s*Frais H.T.\s*T.V.A.\s*Montant net au débit de votre compte\s*` +
			amountCurrency + amountCurrency + amountCurrency + amountCurrency,
	)
	fundExecutionPattern = regexp.MustCompile(
		`(\d{1,2}/\d{2}/\d{4})\s*(\d{0,3}\s\d{1,3}[.,]?\d{0,4})\s*([\s\S]{0,20})?\s*`,
	)
	fundNavPattern = regexp.MustCompile(
		`Valeur liquidative :\s*(\d{0,3}\s\d{1,3}[,.]\d{0,4})\s([A-Z]{1,3})`,
	)
	subscriptionMarker = regexp.MustCompile(`SOUSCRIPTION`)
)

func (e *FundExtractor) Extract(doc *Document) ([]models.Entry, []Diagnostic) {
	var diags []Diagnostic

	amounts := fundAmountsPattern.FindStringSubmatch(doc.Text)
	if amounts == nil {
		diags = append(diags, missing(doc.Dialect, "net debit amount"))
	}
	execution := fundExecutionPattern.FindStringSubmatch(doc.Text)
	if execution == nil {
		diags = append(diags, missing(doc.Dialect, "execution details"))
	}
	nav := fundNavPattern.FindStringSubmatch(doc.Text)
	if nav == nil {
		diags = append(diags, missing(doc.Dialect, "net asset value"))
	}
	if diags != nil {
		return nil, diags
	}

	txn, diags := assembleTradeLike(doc, tradeFields{
		date:          execution[1],
		quantity:      execution[2],
		label:         execution[3],
		total:         amounts[7],
		totalCurrency: amounts[8],
		fees:          amounts[5],
		entryFees:     amounts[3],
		feesCurrency:  amounts[6],
		price:         nav[1],
		priceCurrency: nav[2],
		purchase:      subscriptionMarker.MatchString(doc.Text),
	})
	if txn == nil {
		return nil, diags
	}
	return []models.Entry{txn}, diags
}
