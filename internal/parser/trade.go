package parser

import (
	"regexp"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// amountCurrency matches one "1 234,56 EUR" value cell in the brokerage
// confirmation tables.
const amountCurrency = `(\d{0,3}\s*\d{1,3}[,.]\d{1,3})\s([A-Z]{3})\s*`

// TradeExtractor handles stock trade confirmations.
//
// A confirmation describes exactly one execution, spread over several labeled
// blocks. Every block is required: a confirmation missing any of them emits a
// diagnostic per missing field and yields no record at all.
type TradeExtractor struct{}

func (e *TradeExtractor) Label() string { return "Trade Statement" }

var (
	tradeAmountsPattern = regexp.MustCompile(
		`Montant transaction\s*Montant transaction brut\s*Intérêts\s*total brut\s*Courtages\s*Montant transaction net\s*` +
			amountCurrency + amountCurrency + amountCurrency + amountCurrency + amountCurrency,
	)
	tradeFeesPattern = regexp.MustCompile(
		`Commission\s*Frais divers\s*Montant total des frais\s*` +
			amountCurrency + amountCurrency + amountCurrency,
	)
	tradeExecutionPattern = regexp.MustCompile(
		`locale d'exécution\s*Quantité\s*Informations sur la valeur\s*Informations sur l'exécution\s*` +
			`(\d{1,2}/\d{2}/\d{4})\s*(\d{0,3}\s\d{1,3})\s*([\s\S]{0,20})?\s*`,
	)
	tradePricePattern = regexp.MustCompile(
		`Cours exécuté :\s*(\d{0,3}\s\d{1,3}[,.]\d{0,4})\s([A-Z]{1,3})`,
	)
	cashPurchaseMarker = regexp.MustCompile(`ACHAT COMPTANT`)
)

func (e *TradeExtractor) Extract(doc *Document) ([]models.Entry, []Diagnostic) {
	var diags []Diagnostic

	amounts := tradeAmountsPattern.FindStringSubmatch(doc.Text)
	if amounts == nil {
		diags = append(diags, missing(doc.Dialect, "net transaction amount"))
	}
	fees := tradeFeesPattern.FindStringSubmatch(doc.Text)
	if fees == nil {
		diags = append(diags, missing(doc.Dialect, "total fees"))
	}
	execution := tradeExecutionPattern.FindStringSubmatch(doc.Text)
	if execution == nil {
		diags = append(diags, missing(doc.Dialect, "execution details"))
	}
	price := tradePricePattern.FindStringSubmatch(doc.Text)
	if price == nil {
		diags = append(diags, missing(doc.Dialect, "executed price"))
	}
	if diags != nil {
		return nil, diags
	}

	purchase := cashPurchaseMarker.MatchString(doc.Text)
	txn, diags := assembleTradeLike(doc, tradeFields{
		date:          execution[1],
		quantity:      execution[2],
		label:         execution[3],
		total:         amounts[5],
		totalCurrency: amounts[6],
		fees:          fees[5],
		feesCurrency:  fees[6],
		price:         price[1],
		priceCurrency: price[2],
		purchase:      purchase,
	})
	if txn == nil {
		return nil, diags
	}
	return []models.Entry{txn}, diags
}

// tradeFields is the raw field tuple both brokerage dialects resolve before
// assembly; fund confirmations fill it from their own labels.
type tradeFields struct {
	date          string
	quantity      string
	label         string
	total         string
	totalCurrency string
	fees          string
	entryFees     string // second fee-like component, fund confirmations only
	feesCurrency  string
	price         string
	priceCurrency string
	purchase      bool
}

// assembleTradeLike turns the resolved field tuple into the three-leg
// security transaction shared by trade and fund confirmations: the signed
// position leg (with cost basis on purchase only), the opposing cash leg,
// and a flat fee leg.
func assembleTradeLike(doc *Document, f tradeFields) (*models.Transaction, []Diagnostic) {
	date, err := parseFrenchDate(f.date)
	if err != nil {
		return nil, []Diagnostic{badField(doc.Dialect, "execution date", err)}
	}
	quantity, err := ParseDecimal(f.quantity)
	if err != nil {
		return nil, []Diagnostic{badField(doc.Dialect, "quantity", err)}
	}
	total, err := ParseDecimal(f.total)
	if err != nil {
		return nil, []Diagnostic{badField(doc.Dialect, "net transaction amount", err)}
	}
	feeTotal, err := ParseDecimal(f.fees)
	if err != nil {
		return nil, []Diagnostic{badField(doc.Dialect, "total fees", err)}
	}
	if f.entryFees != "" {
		entry, err := ParseDecimal(f.entryFees)
		if err != nil {
			return nil, []Diagnostic{badField(doc.Dialect, "entry fees", err)}
		}
		feeTotal = feeTotal.Add(entry)
	}
	unitPrice, err := ParseDecimal(f.price)
	if err != nil {
		return nil, []Diagnostic{badField(doc.Dialect, "executed price", err)}
	}

	units := quantity
	cash := total.Neg()
	var cost *models.Cost
	if f.purchase {
		cost = &models.Cost{Number: unitPrice, Currency: f.priceCurrency}
	} else {
		units = quantity.Neg()
		cash = total
	}
	payee := squashSpaces(f.label)
	if payee == "" {
		payee = "inconnu"
	}

	return &models.Transaction{
		Date:      date,
		Flag:      models.FlagOkay,
		Payee:     payee,
		Narration: doc.Security,
		Postings: []models.Posting{
			{
				Account: doc.SecurityAccount(),
				Units:   models.Amount{Number: units, Currency: doc.Security},
				Cost:    cost,
				Price:   &models.Amount{Number: unitPrice, Currency: f.priceCurrency},
			},
			{Account: doc.CashAccount(), Units: models.NewAmount(cash, f.totalCurrency)},
			{Account: bankFeesAccount, Units: models.NewAmount(feeTotal, f.feesCurrency)},
		},
		Meta: doc.entryMeta(),
	}, nil
}
