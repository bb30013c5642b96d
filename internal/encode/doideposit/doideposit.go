// Package doideposit renders CrossRef DOI deposit records
// (doideposit::crossref).
package doideposit

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
)

const dialectID = "doideposit::crossref"

type doiBatch struct {
	XMLName   xml.Name `xml:"doi_batch"`
	Version   string   `xml:"version,attr"`
	Namespace string   `xml:"xmlns,attr"`
	Head      head     `xml:"head"`
	Body      body     `xml:"body"`
}

type head struct {
	DOIBatchID string    `xml:"doi_batch_id"`
	Timestamp  string    `xml:"timestamp"`
	Depositor  depositor `xml:"depositor"`
	Registrant string    `xml:"registrant"`
}

type depositor struct {
	DepositorName string `xml:"depositor_name"`
	EmailAddress  string `xml:"email_address"`
}

type body struct {
	Books []book `xml:"book"`
}

type book struct {
	BookType string       `xml:"book_type,attr"`
	Metadata bookMetadata `xml:"book_metadata"`
}

type bookMetadata struct {
	Contributors    *contributors    `xml:"contributors,omitempty"`
	Titles          titles           `xml:"titles"`
	Edition         *int             `xml:"edition_number,omitempty"`
	PublicationDate *publicationDate `xml:"publication_date,omitempty"`
	ISBNs           []isbn           `xml:"isbn"`
	Publisher       publisherEl      `xml:"publisher"`
	DOIData         doiData          `xml:"doi_data"`
}

type contributors struct {
	PersonNames []personName `xml:"person_name"`
}

type personName struct {
	Sequence        string `xml:"sequence,attr"`
	ContributorRole string `xml:"contributor_role,attr"`
	GivenName       string `xml:"given_name,omitempty"`
	Surname         string `xml:"surname"`
	ORCID           string `xml:"ORCID,omitempty"`
}

type titles struct {
	Title    string `xml:"title"`
	Subtitle string `xml:"subtitle,omitempty"`
}

type publicationDate struct {
	MediaType string `xml:"media_type,attr"`
	Month     string `xml:"month"`
	Day       string `xml:"day"`
	Year      string `xml:"year"`
}

type isbn struct {
	MediaType string `xml:"media_type,attr"`
	Value     string `xml:",chardata"`
}

type publisherEl struct {
	PublisherName  string `xml:"publisher_name"`
	PublisherPlace string `xml:"publisher_place,omitempty"`
}

type doiData struct {
	DOI      string `xml:"doi"`
	Resource string `xml:"resource"`
}

// CrossRef book_type values; chapters and issues deposit as "other" since
// their parent volume carries the primary record.
var bookTypes = map[model.WorkType]string{
	model.WorkTypeMonograph:    "monograph",
	model.WorkTypeEditedBook:   "edited_book",
	model.WorkTypeTextbook:     "monograph",
	model.WorkTypeJournalIssue: "other",
	model.WorkTypeBookSet:      "other",
	model.WorkTypeBookChapter:  "other",
}

// CrossRef contributor_role values. Roles without a CrossRef equivalent
// deposit nothing; CrossRef only accepts the listed roles.
var contributorRoles = map[model.ContributionType]string{
	model.ContributionAuthor:     "author",
	model.ContributionEditor:     "editor",
	model.ContributionTranslator: "translator",
}

// VerifyMappings checks the book-type table against the canonical work types.
func VerifyMappings() error {
	for _, t := range model.AllWorkTypes {
		if _, ok := bookTypes[t]; !ok {
			return fmt.Errorf("doideposit: no book type for %q", t)
		}
	}
	return nil
}

// Encoder renders the doideposit::crossref record.
type Encoder struct{}

// New returns the doideposit::crossref encoder.
func New() *Encoder { return &Encoder{} }

func (e *Encoder) Encode(works []model.Work) ([]byte, error) {
	var latest time.Time
	for i := range works {
		if works[i].UpdatedAt.After(latest) {
			latest = works[i].UpdatedAt
		}
	}
	batch := doiBatch{
		Version:   "4.4.2",
		Namespace: "http://www.crossref.org/schema/4.4.2",
	}
	if len(works) > 0 {
		publisher := works[0].Imprint.Publisher.PublisherName
		batch.Head = head{
			// Derived from content, not the wall clock, so a re-deposit of
			// unchanged metadata produces an identical batch.
			DOIBatchID: fmt.Sprintf("%s-%d", works[0].WorkID, latest.UTC().Unix()),
			Timestamp:  latest.UTC().Format("20060102150405"),
			Depositor: depositor{
				DepositorName: publisher,
				EmailAddress:  "doi@deposit.invalid",
			},
			Registrant: publisher,
		}
	}
	for i := range works {
		b, err := buildBook(&works[i])
		if err != nil {
			return nil, err
		}
		batch.Body.Books = append(batch.Body.Books, b)
	}
	out, err := xml.MarshalIndent(batch, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func buildBook(work *model.Work) (book, error) {
	bookType, ok := bookTypes[work.WorkType]
	if !ok {
		return book{}, encode.Unmappable(dialectID, "work_type", work.WorkType)
	}

	meta := bookMetadata{
		Titles:  titles{Title: work.Title, Subtitle: work.Subtitle},
		Edition: work.Edition,
		Publisher: publisherEl{
			PublisherName:  work.Imprint.Publisher.PublisherName,
			PublisherPlace: work.Place,
		},
		DOIData: doiData{
			DOI:      encode.BareDOI(work.DOI),
			Resource: work.LandingPage,
		},
	}

	var persons []personName
	for _, c := range work.SortedContributions() {
		role, ok := contributorRoles[c.ContributionType]
		if !ok {
			continue
		}
		sequence := "additional"
		if len(persons) == 0 {
			sequence = "first"
		}
		persons = append(persons, personName{
			Sequence:        sequence,
			ContributorRole: role,
			GivenName:       c.FirstName,
			Surname:         c.LastName,
			ORCID:           c.ORCID,
		})
	}
	if len(persons) > 0 {
		meta.Contributors = &contributors{PersonNames: persons}
	}

	if work.PublicationDate != nil {
		meta.PublicationDate = &publicationDate{
			MediaType: "online",
			Month:     work.PublicationDate.Format("01"),
			Day:       work.PublicationDate.Format("02"),
			Year:      work.PublicationDate.Format("2006"),
		}
	}

	for _, pub := range work.SortedPublications() {
		if pub.ISBN == "" {
			continue
		}
		mediaType := "print"
		if pub.PublicationType.IsDigital() {
			mediaType = "electronic"
		}
		meta.ISBNs = append(meta.ISBNs, isbn{MediaType: mediaType, Value: encode.StripISBN(pub.ISBN)})
	}

	return book{BookType: bookType, Metadata: meta}, nil
}
