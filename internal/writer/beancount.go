// Package writer renders extracted ledger entries as Beancount text, the
// format the downstream ledger ingests.
package writer

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/insightdelivered/boursorama-importer/internal/models"
)

// BeancountWriter renders entries in Beancount syntax.
type BeancountWriter struct {
	// IncludeMeta controls whether per-entry metadata lines (source tag,
	// document name) are rendered under each directive.
	IncludeMeta bool
}

// WriteToFile renders entries to a file at the given path.
func (w *BeancountWriter) WriteToFile(path string, entries []models.Entry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file %q: %w", path, err)
	}
	defer f.Close()

	return w.Write(f, entries)
}

// Write renders entries to the given writer, in the order extractors
// produced them. No re-sorting: the source document's own ordering stands.
func (w *BeancountWriter) Write(out io.Writer, entries []models.Entry) error {
	for i, entry := range entries {
		if i > 0 {
			if _, err := fmt.Fprintln(out); err != nil {
				return err
			}
		}
		var err error
		switch e := entry.(type) {
		case *models.Transaction:
			err = w.writeTransaction(out, e)
		case *models.Balance:
			err = w.writeBalance(out, e)
		default:
			err = fmt.Errorf("unknown entry kind %q", entry.Kind())
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (w *BeancountWriter) writeTransaction(out io.Writer, txn *models.Transaction) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s %q", txn.Date.Format("2006-01-02"), txn.Flag, txn.Payee)
	if txn.Narration != "" {
		fmt.Fprintf(&b, " %q", txn.Narration)
	}
	for _, tag := range txn.Tags {
		fmt.Fprintf(&b, " #%s", tag)
	}
	b.WriteByte('\n')

	w.writeMeta(&b, txn.Meta)

	for _, p := range txn.Postings {
		fmt.Fprintf(&b, "  %s  %s", p.Account, p.Units)
		if p.Cost != nil {
			fmt.Fprintf(&b, " {%s %s}", p.Cost.Number, p.Cost.Currency)
		}
		if p.Price != nil {
			fmt.Fprintf(&b, " @ %s", p.Price)
		}
		b.WriteByte('\n')
	}

	_, err := io.WriteString(out, b.String())
	return err
}

func (w *BeancountWriter) writeBalance(out io.Writer, bal *models.Balance) error {
	var b strings.Builder
	fmt.Fprintf(&b, "%s balance %s  %s\n", bal.Date.Format("2006-01-02"), bal.Account, bal.Amount)
	w.writeMeta(&b, bal.Meta)
	_, err := io.WriteString(out, b.String())
	return err
}

func (w *BeancountWriter) writeMeta(b *strings.Builder, meta models.Metadata) {
	if !w.IncludeMeta || len(meta) == 0 {
		return
	}
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(b, "  %s: %q\n", k, meta[k])
	}
}
