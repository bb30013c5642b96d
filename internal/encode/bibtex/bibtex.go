// Package bibtex renders works as BibTeX entries.
package bibtex

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
)

const dialectID = "bibtex::thoth"

// entryTypes maps every canonical work type to a BibTeX entry type.
var entryTypes = map[model.WorkType]string{
	model.WorkTypeMonograph:    "book",
	model.WorkTypeEditedBook:   "book",
	model.WorkTypeTextbook:     "book",
	model.WorkTypeJournalIssue: "misc",
	model.WorkTypeBookSet:      "book",
	model.WorkTypeBookChapter:  "inbook",
}

// VerifyMappings checks the entry-type table against the canonical work types.
func VerifyMappings() error {
	for _, t := range model.AllWorkTypes {
		if _, ok := entryTypes[t]; !ok {
			return fmt.Errorf("bibtex: no entry type for work type %q", t)
		}
	}
	return nil
}

// Encoder is the bibtex::thoth encoder.
type Encoder struct{}

// New returns the bibtex::thoth encoder.
func New() *Encoder { return &Encoder{} }

func (e *Encoder) Encode(works []model.Work) ([]byte, error) {
	var buf bytes.Buffer
	for i := range works {
		if i > 0 {
			buf.WriteString("\n")
		}
		if err := writeEntry(&buf, &works[i]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func writeEntry(buf *bytes.Buffer, work *model.Work) error {
	entryType, ok := entryTypes[work.WorkType]
	if !ok {
		return encode.Unmappable(dialectID, "work_type", work.WorkType)
	}
	fmt.Fprintf(buf, "@%s{%s,\n", entryType, citationKey(work))

	writeField(buf, "title", work.Title)
	if work.Subtitle != "" {
		writeField(buf, "subtitle", work.Subtitle)
	}
	if authors := joinNames(work.ContributionsByType(model.ContributionAuthor)); authors != "" {
		writeField(buf, "author", authors)
	}
	if editors := joinNames(work.ContributionsByType(model.ContributionEditor)); editors != "" {
		writeField(buf, "editor", editors)
	}
	writeField(buf, "publisher", work.Imprint.Publisher.PublisherName)
	if work.Place != "" {
		writeField(buf, "address", work.Place)
	}
	if issues := work.SortedIssues(); len(issues) > 0 {
		writeField(buf, "series", issues[0].Series.SeriesName)
		fmt.Fprintf(buf, "\tvolume = {%d},\n", issues[0].IssueOrdinal)
	}
	if work.PublicationDate != nil {
		fmt.Fprintf(buf, "\tyear = %s,\n", work.PublicationYear())
		fmt.Fprintf(buf, "\tmonth = %s,\n", strings.ToLower(work.PublicationDate.Format("Jan")))
	}
	if isbn := work.FirstISBN(); isbn != "" {
		writeField(buf, "isbn", isbn)
	}
	if work.DOI != "" {
		writeField(buf, "doi", work.DOI)
	}
	if work.LandingPage != "" {
		writeField(buf, "url", work.LandingPage)
	}
	if work.License != "" {
		writeField(buf, "copyright", work.License)
	}
	if work.LongAbstract != "" {
		writeField(buf, "abstract", work.LongAbstract)
	}
	buf.WriteString("}\n")
	return nil
}

func writeField(buf *bytes.Buffer, name, value string) {
	fmt.Fprintf(buf, "\t%s = {%s},\n", name, escape(value))
}

// citationKey derives a stable key from the first responsible contributor's
// surname and the publication year, falling back to the work id.
func citationKey(work *model.Work) string {
	contribs := work.ContributionsByType(model.ContributionAuthor, model.ContributionEditor)
	if len(contribs) == 0 || work.PublicationYear() == "" {
		return work.WorkID.String()
	}
	surname := strings.ToLower(strings.ReplaceAll(contribs[0].LastName, " ", ""))
	return surname + work.PublicationYear()
}

func joinNames(contribs []model.Contribution) string {
	var names []string
	for _, c := range contribs {
		if c.FirstName != "" {
			names = append(names, c.LastName+", "+c.FirstName)
		} else {
			names = append(names, c.FullName)
		}
	}
	return strings.Join(names, " and ")
}

// escaper runs in a single pass so replacement text is never re-escaped.
var escaper = strings.NewReplacer(
	`\`, `\textbackslash{}`,
	"{", `\{`,
	"}", `\}`,
	"&", `\&`,
	"%", `\%`,
	"$", `\$`,
	"#", `\#`,
	"_", `\_`,
)

func escape(s string) string {
	return escaper.Replace(s)
}
