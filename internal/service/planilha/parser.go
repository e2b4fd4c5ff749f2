// Package planilha reads and writes the spreadsheet shapes the shop works
// with: a generic header-driven CSV and the fixed layout Google publishes
// for the shared production sheet, plus the CSV export.
package planilha

import (
	"strconv"
	"strings"

	"marmoraria-pro/internal/storage"
)

// Parser turns spreadsheet text into projects. The two implementations
// solve genuinely different input shapes, the caller picks one explicitly.
type Parser interface {
	Parse(text string) ([]*storage.Project, error)
}

func splitLines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// splitFields splits one CSV line on commas outside double quotes. Empty
// fields are kept so column positions stay stable.
func splitFields(line string) []string {
	var (
		fields  []string
		current strings.Builder
		quoted  bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			current.WriteRune(r)
		case r == ',' && !quoted:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, current.String())
	return fields
}

func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, `"`)
	s = strings.TrimSuffix(s, `"`)
	return strings.TrimSpace(s)
}

func at(fields []string, i int) string {
	if i < 0 || i >= len(fields) {
		return ""
	}
	return fields[i]
}

// parseAmount reads a plain decimal that may use a comma as the decimal
// separator ("1500,00"). Anything unparseable counts as zero.
func parseAmount(s string) storage.Cents {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return storage.CentsFromFloat(v)
}

// parseBRL reads a formatted BRL amount: currency prefix, dots as thousands
// separators and a decimal comma ("R$ 1.500,00").
func parseBRL(s string) storage.Cents {
	s = strings.ReplaceAll(s, "R$", "")
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return storage.CentsFromFloat(v)
}
