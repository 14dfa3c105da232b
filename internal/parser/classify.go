package parser

import (
	"regexp"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// classifiers is the ordered marker table the document classifier walks.
// Most specific markers come first and the first match wins: a dividend
// statement also carries the generic bank identity line, so reordering this
// table changes classification results.
var classifiers = []struct {
	marker  *regexp.Regexp
	dialect models.Dialect
}{
	{regexp.MustCompile(`COUPONS REMBOURSEMENTS :`), models.DialectDividend},
	{regexp.MustCompile(`RELEVE COMPTE ESPECES :`), models.DialectCash},
	{regexp.MustCompile(`OPERATION DE BOURSE`), models.DialectTrade},
	{regexp.MustCompile(`OPERATION SUR OPC`), models.DialectFund},
	{regexp.MustCompile(`Relevé de Carte`), models.DialectCard},
	{regexp.MustCompile(`BOURSORAMA BANQUE|BOUSFRPPXXX|RCS\sNanterre\s351\s?058\s?151`), models.DialectChecking},
	{regexp.MustCompile(`tableau d'amortissement|Echéancier Prévisionnel|Échéancier Définitif`), models.DialectAmortization},
}

// Classify assigns exactly one statement dialect to the document text, or
// DialectUnclassified when no marker is present. Pure function of the text.
func Classify(text string) models.Dialect {
	for _, c := range classifiers {
		if c.marker.MatchString(text) {
			return c.dialect
		}
	}
	return models.DialectUnclassified
}
