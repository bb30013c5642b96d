// Package jsonmeta renders the canonical aggregate as indented JSON. Field
// order follows the canonical struct declaration and repeated elements are
// sorted by ordinal, so output is byte-stable across fetches.
package jsonmeta

import (
	"github.com/goccy/go-json"

	"github.com/brendan-oconnell/thoth/internal/model"
)

// Encoder is the json::thoth encoder.
type Encoder struct{}

// New returns the json::thoth encoder.
func New() *Encoder { return &Encoder{} }

func (e *Encoder) Encode(works []model.Work) ([]byte, error) {
	normalized := make([]model.Work, len(works))
	for i := range works {
		normalized[i] = normalize(&works[i])
	}
	var payload any = normalized
	if len(normalized) == 1 {
		payload = normalized[0]
	}
	out, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func normalize(work *model.Work) model.Work {
	w := *work
	w.Contributions = work.SortedContributions()
	w.Subjects = work.SortedSubjects()
	w.Languages = work.SortedLanguages()
	w.Issues = work.SortedIssues()
	w.Publications = work.SortedPublications()
	for i := range w.Publications {
		w.Publications[i].Prices = w.Publications[i].SortedPrices()
	}
	return w
}
