// Package encode defines the contract shared by all dialect encoders: a pure
// transformation from canonical works to output bytes. Encoders perform no I/O
// and hold no state between calls, so identical input always produces
// byte-identical output.
package encode

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/brendan-oconnell/thoth/internal/model"
)

// Encoder renders a batch of canonical works into one output document. A
// single-work export passes a one-element slice.
type Encoder interface {
	Encode(works []model.Work) ([]byte, error)
}

// ValidationError reports that an aggregate does not satisfy a dialect's
// mandatory-field contract, or that a canonical value has no mapping in the
// dialect's vocabulary. No output bytes accompany it.
type ValidationError struct {
	Dialect string
	Fields  []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: missing or invalid fields: %s", e.Dialect, strings.Join(e.Fields, ", "))
}

// Unmappable builds the ValidationError for a canonical value outside a
// dialect's vocabulary table.
func Unmappable(dialect, field string, value any) *ValidationError {
	return &ValidationError{
		Dialect: dialect,
		Fields:  []string{fmt.Sprintf("%s (no %s mapping for %q)", field, dialect, fmt.Sprint(value))},
	}
}

// Date renders a date in the compact YYYYMMDD form used by ONIX and MARC.
func Date(t time.Time) string {
	return t.Format("20060102")
}

// ISODate renders a date as YYYY-MM-DD.
func ISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// Price renders a unit price with exactly two decimal places. Downstream
// consumers checksum delivered files, so numeric formatting must be stable.
func Price(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// StripISBN removes hyphens and spaces from a canonical hyphenated ISBN.
func StripISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	return strings.ReplaceAll(isbn, " ", "")
}

// BareDOI strips the resolver prefix from a canonical DOI URL. Identifier
// fields record the DOI itself; link fields keep the full URL.
func BareDOI(doi string) string {
	doi = strings.TrimPrefix(doi, "https://doi.org/")
	return strings.TrimPrefix(doi, "http://doi.org/")
}
