package tabular

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
)

// KBART Phase II (NISO RP-9-2014) column set.
var kbartHeader = []string{
	"publication_title",
	"print_identifier",
	"online_identifier",
	"date_first_issue_online",
	"num_first_vol_online",
	"num_first_issue_online",
	"date_last_issue_online",
	"num_last_vol_online",
	"num_last_issue_online",
	"title_url",
	"first_author",
	"title_id",
	"embargo_info",
	"coverage_depth",
	"notes",
	"publisher_name",
	"publication_type",
	"date_monograph_published_print",
	"date_monograph_published_online",
	"monograph_volume",
	"monograph_edition",
	"first_editor",
	"parent_publication_title_id",
	"preceding_publication_title_id",
	"access_type",
}

// KBARTEncoder renders the kbart::oclc tab-separated holdings feed.
type KBARTEncoder struct{}

// NewKBART returns the kbart::oclc encoder.
func NewKBART() *KBARTEncoder { return &KBARTEncoder{} }

func (e *KBARTEncoder) Encode(works []model.Work) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Comma = '\t'
	if err := w.Write(kbartHeader); err != nil {
		return nil, err
	}
	for i := range works {
		if err := w.Write(kbartRow(&works[i])); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func kbartRow(work *model.Work) []string {
	var printISBN, onlineISBN string
	for _, p := range work.SortedPublications() {
		if p.ISBN == "" {
			continue
		}
		if p.PublicationType.IsDigital() {
			if onlineISBN == "" {
				onlineISBN = encode.StripISBN(p.ISBN)
			}
		} else if printISBN == "" {
			printISBN = encode.StripISBN(p.ISBN)
		}
	}
	var firstAuthor, firstEditor string
	if authors := work.ContributionsByType(model.ContributionAuthor); len(authors) > 0 {
		firstAuthor = authors[0].LastName
	}
	if editors := work.ContributionsByType(model.ContributionEditor); len(editors) > 0 {
		firstEditor = editors[0].LastName
	}
	var datePrint, dateOnline string
	if work.PublicationDate != nil {
		datePrint = encode.ISODate(*work.PublicationDate)
		dateOnline = datePrint
	}
	var volume string
	if issues := work.SortedIssues(); len(issues) > 0 {
		volume = strconv.Itoa(issues[0].IssueOrdinal)
	}
	var edition string
	if work.Edition != nil {
		edition = strconv.Itoa(*work.Edition)
	}
	accessType := "P"
	if model.ParseLicense(work.License).IsOpenAccess() {
		accessType = "F"
	}
	return []string{
		work.FullTitle,
		printISBN,
		onlineISBN,
		"", // date_first_issue_online: serials only
		"",
		"",
		"",
		"",
		"",
		work.LandingPage,
		firstAuthor,
		work.DOI,
		"",
		"fulltext",
		"",
		work.Imprint.Publisher.PublisherName,
		"monograph",
		datePrint,
		dateOnline,
		volume,
		edition,
		firstEditor,
		"",
		"",
		accessType,
	}
}
