// Package extractor converts statement PDFs to plain text. It is the fallible
// conversion collaborator in front of the parsing engine: callers must treat
// an unavailable converter as a reason to skip, not to fail.
package extractor

import (
	"fmt"
	"io"
	"os/exec"
	"strings"
	"unicode"

	"github.com/ledongthuc/pdf"
)

// Convert reads a statement PDF and returns its text. The external pdftotext
// command (poppler-utils) runs first in layout mode: the checking dialect's
// column-gap sign heuristic depends on that fixed-width rendering. The Go
// library is the fallback for machines without poppler.
func Convert(filePath string) (string, error) {
	popplerText, popplerErr := convertWithPdftotext(filePath)
	if popplerErr == nil && isReadableText(popplerText) {
		return popplerText, nil
	}

	libText, libErr := convertWithLibrary(filePath)
	if libErr == nil && isReadableText(libText) {
		return libText, nil
	}

	if popplerErr != nil && libErr != nil {
		return "", fmt.Errorf("pdf conversion failed: %v (pdftotext), %v (library)", popplerErr, libErr)
	}
	return "", fmt.Errorf("no readable text could be extracted from %q; the file may be image-based or use undecodable font encodings", filePath)
}

// Available reports whether the preferred external converter is installed.
// Tests and batch runs skip PDF inputs when it is not.
func Available() bool {
	_, err := exec.LookPath("pdftotext")
	return err == nil
}

func convertWithPdftotext(filePath string) (string, error) {
	if !Available() {
		return "", fmt.Errorf("pdftotext not installed")
	}
	out, err := exec.Command("pdftotext", "-layout", filePath, "-").Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	if len(strings.TrimSpace(string(out))) == 0 {
		return "", fmt.Errorf("pdftotext produced no output")
	}
	return string(out), nil
}

func convertWithLibrary(filePath string) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf library crashed: %v", r)
		}
	}()

	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", err
	}
	defer f.Close()

	if r.NumPage() == 0 {
		return "", fmt.Errorf("pdf has no pages")
	}

	var pages []string
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		var lines []string
		for _, row := range rows {
			var parts []string
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			if line := strings.TrimSpace(strings.Join(parts, " ")); line != "" {
				lines = append(lines, line)
			}
		}
		pages = append(pages, strings.Join(lines, "\n"))
	}

	text = strings.Join(pages, "\n")
	if strings.TrimSpace(text) == "" {
		reader, err := r.GetPlainText()
		if err != nil {
			return "", fmt.Errorf("no text in pdf")
		}
		data, err := io.ReadAll(reader)
		if err != nil {
			return "", err
		}
		text = string(data)
	}
	return text, nil
}

// commonWords that show up in virtually every Boursorama statement. Text
// containing none of them is almost certainly decode garbage.
var commonWords = []string{
	"boursorama", "solde", "compte", "relevé", "releve", "date",
	"montant", "carte", "opération", "operation", "crédit", "credit",
	"débit", "debit", "euro", "eur",
}

// isReadableText guards against identity-encoded fonts: the decoded text
// must be long enough, mostly printable, and contain at least one word a
// statement would carry.
func isReadableText(text string) bool {
	trimmed := strings.TrimSpace(text)
	if len(trimmed) <= 50 {
		return false
	}

	total, readable := 0, 0
	for _, r := range trimmed {
		total++
		if r < 128 && (unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) ||
			strings.ContainsRune(".,-/:;()'\"%&*€°º", r)) {
			readable++
		} else if strings.ContainsRune("éèêëàâçôöûüùîï€°º", r) {
			readable++
		}
	}
	if total == 0 || float64(readable)/float64(total) <= 0.6 {
		return false
	}

	lower := strings.ToLower(trimmed)
	for _, word := range commonWords {
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
