package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Dialect identifies the statement layout a document was classified as.
type Dialect string

const (
	DialectDividend     Dialect = "dividend"
	DialectCash         Dialect = "cash"
	DialectTrade        Dialect = "trade"
	DialectFund         Dialect = "fund"
	DialectChecking     Dialect = "checking"
	DialectAmortization Dialect = "amortization"
	DialectCard         Dialect = "card"
	DialectUnclassified Dialect = "unclassified"
)

// FlagOkay marks a cleared entry.
const FlagOkay = "*"

// DefaultCurrency is assumed when a statement does not print a currency code
// next to the amount.
const DefaultCurrency = "EUR"

// Amount is an exact decimal magnitude with a currency (or commodity) code.
// The sign is part of the magnitude: debits are negative, credits positive.
type Amount struct {
	Number   decimal.Decimal `json:"number"`
	Currency string          `json:"currency"`
}

// NewAmount builds an Amount, defaulting the currency to EUR when empty.
func NewAmount(number decimal.Decimal, currency string) Amount {
	if currency == "" {
		currency = DefaultCurrency
	}
	return Amount{Number: number, Currency: currency}
}

// Neg returns the amount with its sign flipped.
func (a Amount) Neg() Amount {
	return Amount{Number: a.Number.Neg(), Currency: a.Currency}
}

func (a Amount) String() string {
	return a.Number.String() + " " + a.Currency
}

// Cost is the acquisition cost attached to a security leg on purchase.
type Cost struct {
	Number   decimal.Decimal `json:"number"`
	Currency string          `json:"currency"`
}

// Posting is one account/amount leg of a transaction. Cost is set only for
// security purchases; Price records the executed price or net asset value.
type Posting struct {
	Account string  `json:"account"`
	Units   Amount  `json:"units"`
	Cost    *Cost   `json:"cost,omitempty"`
	Price   *Amount `json:"price,omitempty"`
}

// Metadata carries per-entry key/value annotations (source tag, document name).
type Metadata map[string]string

// Entry is a single importable ledger directive, either a *Transaction or a
// *Balance. Kind distinguishes them without a type switch at call sites.
type Entry interface {
	EntryDate() time.Time
	Kind() string
}

// Transaction is a dated, flagged set of postings. Legs are not forced to sum
// to zero here; balancing is the downstream ledger's concern.
type Transaction struct {
	Date      time.Time `json:"date"`
	Flag      string    `json:"flag"`
	Payee     string    `json:"payee"`
	Narration string    `json:"narration,omitempty"`
	Tags      []string  `json:"tags,omitempty"`
	Postings  []Posting `json:"postings"`
	Meta      Metadata  `json:"meta,omitempty"`
}

func (t *Transaction) EntryDate() time.Time { return t.Date }
func (t *Transaction) Kind() string         { return "transaction" }

// Balance asserts an account's expected total at the start of a day,
// independent of transaction history.
type Balance struct {
	Date    time.Time `json:"date"`
	Account string    `json:"account"`
	Amount  Amount    `json:"amount"`
	Meta    Metadata  `json:"meta,omitempty"`
}

func (b *Balance) EntryDate() time.Time { return b.Date }
func (b *Balance) Kind() string         { return "balance" }

var (
	_ Entry = (*Transaction)(nil)
	_ Entry = (*Balance)(nil)
)
