// Package tabular renders works as delimited text: the CSV dialect and the
// KBART tab-separated holdings dialect.
package tabular

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"github.com/brendan-oconnell/thoth/internal/model"
)

var csvHeader = []string{
	"work_id",
	"work_type",
	"work_status",
	"title",
	"subtitle",
	"doi",
	"publication_date",
	"publication_place",
	"publisher",
	"imprint",
	"landing_page",
	"license",
	"contributions",
	"subjects",
	"languages",
	"isbns",
}

// CSVEncoder renders one CSV row per work under a fixed header. Fields are
// quoted only when the csv writer requires it, so a plain DOI stays unquoted.
type CSVEncoder struct{}

// NewCSV returns the csv::thoth encoder.
func NewCSV() *CSVEncoder { return &CSVEncoder{} }

func (e *CSVEncoder) Encode(works []model.Work) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range works {
		if err := w.Write(csvRow(&works[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func csvRow(work *model.Work) []string {
	var date string
	if work.PublicationDate != nil {
		date = work.PublicationDate.Format("2006-01-02")
	}
	var contributions []string
	for _, c := range work.SortedContributions() {
		contributions = append(contributions, fmt.Sprintf("%s (%s)", c.FullName, c.ContributionType))
	}
	var subjects []string
	for _, s := range work.SortedSubjects() {
		subjects = append(subjects, fmt.Sprintf("%s:%s", s.SubjectType, s.SubjectCode))
	}
	var languages []string
	for _, l := range work.SortedLanguages() {
		languages = append(languages, l.LanguageCode)
	}
	var isbns []string
	for _, p := range work.SortedPublications() {
		if p.ISBN != "" {
			isbns = append(isbns, p.ISBN)
		}
	}
	return []string{
		work.WorkID.String(),
		string(work.WorkType),
		string(work.WorkStatus),
		work.Title,
		work.Subtitle,
		work.DOI,
		date,
		work.Place,
		work.Imprint.Publisher.PublisherName,
		work.Imprint.ImprintName,
		work.LandingPage,
		work.License,
		strings.Join(contributions, "; "),
		strings.Join(subjects, "; "),
		strings.Join(languages, "; "),
		strings.Join(isbns, "; "),
	}
}
