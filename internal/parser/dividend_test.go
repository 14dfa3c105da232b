package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

func dividendDoc(text string) *Document {
	return &Document{
		Name:    "coupons.pdf",
		Text:    text,
		Dialect: models.DialectDividend,
		Account: "Actif:PEA",
		Meta:    models.Metadata{"source": SourceTag},
	}
}

func TestDividendExtract(t *testing.T) {
	text := "COUPONS REMBOURSEMENTS : \n" +
		"40618 00040 00012345678 PEA\n" +
		"01/06/2023  50  TOTALENERGIES SE (FR0000120271)  35,50  5,00  1,20  29,30  0,00\n"

	e := &DividendExtractor{}
	entries, diags := e.Extract(dividendDoc(text))

	assert.Empty(t, diags)
	require.Len(t, entries, 1)

	txn, ok := entries[0].(*models.Transaction)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), txn.Date)
	assert.Equal(t, "Dividende pour 50 titres TOTALENERGIES SE", txn.Payee)
	assert.Equal(t, []string{"FR0000120271"}, txn.Tags)

	require.Len(t, txn.Postings, 3)
	assert.Equal(t, "Revenus:Dividendes", txn.Postings[0].Account)
	assert.Equal(t, "-35.50", txn.Postings[0].Units.Number.String())
	// Both withholding columns land on the tax account.
	assert.Equal(t, "Depenses:Impots:IR", txn.Postings[1].Account)
	assert.Equal(t, "6.20", txn.Postings[1].Units.Number.String())
	assert.Equal(t, "Actif:PEA:Cash", txn.Postings[2].Account)
	assert.Equal(t, "29.30", txn.Postings[2].Units.Number.String())
}

func TestDividendWithoutWithholdingColumn(t *testing.T) {
	// Foreign coupons print one withholding column less.
	text := "COUPONS REMBOURSEMENTS : \n" +
		"01/06/2023  10  APPLE INC (US0378331005)  9,50  0,30  9,20  0,00\n"

	e := &DividendExtractor{}
	entries, diags := e.Extract(dividendDoc(text))

	assert.Empty(t, diags)
	require.Len(t, entries, 1)

	txn := entries[0].(*models.Transaction)
	assert.Equal(t, "Dividende pour 10 titres APPLE INC", txn.Payee)
	assert.Equal(t, []string{"US0378331005"}, txn.Tags)
	assert.Equal(t, "-9.50", txn.Postings[0].Units.Number.String())
	assert.Equal(t, "0.30", txn.Postings[1].Units.Number.String())
	assert.Equal(t, "9.20", txn.Postings[2].Units.Number.String())
}

func TestDividendMultipleRows(t *testing.T) {
	text := "01/06/2023  50  TOTALENERGIES SE (FR0000120271)  35,50  5,00  1,20  29,30  0,00\n" +
		"15/06/2023  20  AIR LIQUIDE (FR0000120073)  58,00  8,10  2,30  47,60  0,00\n"

	e := &DividendExtractor{}
	entries, diags := e.Extract(dividendDoc(text))

	assert.Empty(t, diags)
	require.Len(t, entries, 2)
	second := entries[1].(*models.Transaction)
	assert.Equal(t, "Dividende pour 20 titres AIR LIQUIDE", second.Payee)
	assert.Equal(t, "47.60", second.Postings[2].Units.Number.String())
}
