package parser

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/insightdelivered/boursorama-importer/internal/accounts"
	"github.com/insightdelivered/boursorama-importer/internal/models"
)

var testDirectory = accounts.Directory{
	"00012345678": "Actif:PEA",
}

const dividendFixture = "COUPONS REMBOURSEMENTS : \n" +
	"établi le 15/06/2023\n" +
	"40618 00040 00012345678 PEA\n" +
	"01/06/2023  50  TOTALENERGIES SE (FR0000120271)  35,50  5,00  1,20  29,30  0,00\n"

func TestProcessDividend(t *testing.T) {
	imp := New(testDirectory)

	res, err := imp.Process("coupons.pdf", dividendFixture)
	require.NoError(t, err)

	assert.Equal(t, models.DialectDividend, res.Dialect)
	assert.Equal(t, "00012345678", res.AccountKey)
	assert.Equal(t, "Actif:PEA", res.Account)
	assert.Equal(t, "2023-06-15 Dividend Statement.pdf", res.Document)
	assert.Empty(t, res.Diagnostics)
	require.Len(t, res.Entries, 1)

	txn, ok := res.Entries[0].(*models.Transaction)
	require.True(t, ok)
	assert.Equal(t, SourceTag, txn.Meta["source"])
	assert.Equal(t, res.Document, txn.Meta["document"])
}

func TestProcessTrade(t *testing.T) {
	imp := New(testDirectory)
	text := "40618 00040 00012345678\n" + tradeFixture

	res, err := imp.Process("bourse.pdf", text)
	require.NoError(t, err)

	assert.Equal(t, models.DialectTrade, res.Dialect)
	assert.Equal(t, "Actif:PEA", res.Account)
	require.Len(t, res.Entries, 1)
	txn := res.Entries[0].(*models.Transaction)
	assert.Equal(t, "Actif:PEA:FR0000120271", txn.Postings[0].Account)
}

func TestProcessTradeWithoutSecurityIDFails(t *testing.T) {
	imp := New(testDirectory)
	text := "OPERATION DE BOURSE\n40618 00040 00012345678\n"

	_, err := imp.Process("bourse.pdf", text)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPatternNotFound)
	assert.Contains(t, err.Error(), "bourse.pdf")
}

func TestProcessUnknownAccountFails(t *testing.T) {
	imp := New(accounts.Directory{})

	_, err := imp.Process("coupons.pdf", dividendFixture)
	require.Error(t, err)
	assert.ErrorIs(t, err, accounts.ErrNotFound)
}

func TestProcessUnclassified(t *testing.T) {
	imp := New(testDirectory)

	res, err := imp.Process("mystery.pdf", "rien de connu ici\n")
	require.NoError(t, err)
	assert.Equal(t, models.DialectUnclassified, res.Dialect)
	assert.Empty(t, res.Entries)
	assert.Equal(t, "Statement.pdf", res.Document)
}

func TestDocumentName(t *testing.T) {
	imp := New(testDirectory)

	assert.Equal(t, "2023-06-15 Dividend Statement.pdf",
		imp.DocumentName(dividendFixture, models.DialectDividend))
	// No derivable date: the bare label stands.
	assert.Equal(t, "Trade Statement.pdf",
		imp.DocumentName(tradeFixture, models.DialectTrade))
	assert.Equal(t, "Statement.pdf",
		imp.DocumentName("rien", models.DialectUnclassified))
}

func TestAccountPath(t *testing.T) {
	imp := New(testDirectory)

	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "dividend files under the cash sub-account",
			text:     dividendFixture,
			expected: "Actif:PEA:Cash",
		},
		{
			name:     "trade files under the security sub-account",
			text:     "40618 00040 00012345678\n" + tradeFixture,
			expected: "Actif:PEA:FR0000120271",
		},
		{
			name:     "checking files under the account itself",
			text:     "BOURSORAMA BANQUE\n00012345678\n",
			expected: "Actif:PEA",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := imp.AccountPath(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestAccountPathUnclassified(t *testing.T) {
	imp := New(testDirectory)
	_, err := imp.AccountPath("rien de connu")
	assert.ErrorIs(t, err, ErrUnclassified)
}

func TestFileDate(t *testing.T) {
	imp := New(testDirectory)

	date, ok := imp.FileDate(dividendFixture)
	require.True(t, ok)
	assert.Equal(t, time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC), date)

	_, ok = imp.FileDate("rien")
	assert.False(t, ok)
}
