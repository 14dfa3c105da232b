package parser

import (
	"regexp"

	"github.com/insightdelivered/boursorama-importer/internal/models"
	"github.com/shopspring/decimal"
)

// DividendExtractor handles coupon and dividend statements.
//
// Each row lists the payment date, the position size, the security label with
// its ISIN in parentheses, then the gross amount, up to two withholding
// columns and the net credited to the cash sub-account.
type DividendExtractor struct{}

func (e *DividendExtractor) Label() string { return "Dividend Statement" }

var dividendRowPattern = regexp.MustCompile(
	`(\d{2}/\d{2}/\d{4})\s*(\d{1,5})\s*(.*)\s\(([A-Z]{2}[A-Z0-9]{10})\)\s*` +
		`(\d{0,3}\s\d{1,3}[,.]\d{2})\s*(\d{0,3}\s\d{1,3}[,.]\d{2})?\s*` +
		`(\d{0,3}\s\d{1,3}[,.]\d{2})\s*(\d{0,3}\s\d{1,3}[,.]\d{2})\s*` +
		`(\d{0,3}\s\d{1,3}[,.]\d{2})`,
)

func (e *DividendExtractor) Extract(doc *Document) ([]models.Entry, []Diagnostic) {
	var entries []models.Entry
	var diags []Diagnostic

	for _, m := range dividendRowPattern.FindAllStringSubmatch(doc.Text, -1) {
		date, err := parseFrenchDate(m[1])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "payment date", err))
			continue
		}
		gross, err := ParseDecimal(m[5])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "gross amount", err))
			continue
		}
		// The first withholding column is absent on foreign coupons.
		withholding := decimal.Zero
		if m[6] != "" {
			withholding, err = ParseDecimal(m[6])
			if err != nil {
				diags = append(diags, badField(doc.Dialect, "withholding", err))
				continue
			}
		}
		socialLevy, err := ParseDecimal(m[7])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "social levy", err))
			continue
		}
		net, err := ParseDecimal(m[8])
		if err != nil {
			diags = append(diags, badField(doc.Dialect, "net amount", err))
			continue
		}

		entries = append(entries, &models.Transaction{
			Date:  date,
			Flag:  models.FlagOkay,
			Payee: "Dividende pour " + m[2] + " titres " + squashSpaces(m[3]),
			Tags:  []string{m[4]},
			Postings: []models.Posting{
				{Account: dividendRevenueAccount, Units: models.NewAmount(gross.Neg(), "")},
				{Account: withholdingTaxAccount, Units: models.NewAmount(withholding.Add(socialLevy), "")},
				{Account: doc.CashAccount(), Units: models.NewAmount(net, "")},
			},
			Meta: doc.entryMeta(),
		})
	}

	return entries, diags
}
