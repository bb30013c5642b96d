// Package onix2 renders works as ONIX 2.1 messages for the legacy aggregator
// feeds (EBSCO Host, ProQuest Ebrary). The 2.1 schema uses flat composites
// where 3.0 nests, so it keeps its own XML shapes and vocabulary tables.
package onix2

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"time"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
)

type onixMessage struct {
	XMLName  xml.Name  `xml:"ONIXMessage"`
	Header   header    `xml:"Header"`
	Products []product `xml:"Product"`
}

type header struct {
	FromCompany string `xml:"FromCompany"`
	SentDate    string `xml:"SentDate"`
}

type product struct {
	RecordReference    string              `xml:"RecordReference"`
	NotificationType   string              `xml:"NotificationType"`
	ProductIdentifiers []productIdentifier `xml:"ProductIdentifier"`
	ProductForm        string              `xml:"ProductForm"`
	EpubType           string              `xml:"EpubType,omitempty"`
	Series             []series            `xml:"Series,omitempty"`
	Title              title               `xml:"Title"`
	Contributors       []contributor       `xml:"Contributor,omitempty"`
	Languages          []language          `xml:"Language,omitempty"`
	NumberOfPages      string              `xml:"NumberOfPages,omitempty"`
	Subjects           []subject           `xml:"Subject,omitempty"`
	ImprintName        string              `xml:"ImprintName"`
	PublisherName      string              `xml:"PublisherName"`
	CityOfPublication  string              `xml:"CityOfPublication,omitempty"`
	PublishingStatus   string              `xml:"PublishingStatus"`
	PublicationDate    string              `xml:"PublicationDate,omitempty"`
	SupplyDetails      []supplyDetail      `xml:"SupplyDetail"`
}

type productIdentifier struct {
	ProductIDType string `xml:"ProductIDType"`
	IDValue       string `xml:"IDValue"`
}

type series struct {
	TitleOfSeries      string `xml:"TitleOfSeries"`
	NumberWithinSeries string `xml:"NumberWithinSeries,omitempty"`
}

type title struct {
	TitleType string `xml:"TitleType"`
	TitleText string `xml:"TitleText"`
	Subtitle  string `xml:"Subtitle,omitempty"`
}

type contributor struct {
	SequenceNumber  string `xml:"SequenceNumber"`
	ContributorRole string `xml:"ContributorRole"`
	PersonName      string `xml:"PersonName"`
	NamesBeforeKey  string `xml:"NamesBeforeKey,omitempty"`
	KeyNames        string `xml:"KeyNames"`
}

type language struct {
	LanguageRole string `xml:"LanguageRole"`
	LanguageCode string `xml:"LanguageCode"`
}

type subject struct {
	SubjectSchemeIdentifier string `xml:"SubjectSchemeIdentifier"`
	SubjectCode             string `xml:"SubjectCode,omitempty"`
	SubjectHeadingText      string `xml:"SubjectHeadingText,omitempty"`
}

type supplyDetail struct {
	SupplierName        string  `xml:"SupplierName"`
	ProductAvailability string  `xml:"ProductAvailability"`
	Prices              []price `xml:"Price,omitempty"`
}

type price struct {
	PriceTypeCode string `xml:"PriceTypeCode"`
	PriceAmount   string `xml:"PriceAmount"`
	CurrencyCode  string `xml:"CurrencyCode"`
}

// Codelist 9 equivalents for publishing status in 2.1.
var publishingStatus = map[model.WorkStatus]string{
	model.StatusUnspecified:            "00",
	model.StatusCancelled:              "01",
	model.StatusForthcoming:            "02",
	model.StatusPostponedIndefinitely:  "03",
	model.StatusActive:                 "04",
	model.StatusNoLongerOurProduct:     "05",
	model.StatusOutOfStockIndefinitely: "06",
	model.StatusOutOfPrint:             "07",
	model.StatusInactive:               "08",
	model.StatusUnknown:                "09",
	model.StatusRemaindered:            "10",
	model.StatusWithdrawnFromSale:      "11",
	model.StatusRecalled:               "15",
}

var contributorRole = map[model.ContributionType]string{
	model.ContributionAuthor:         "A01",
	model.ContributionEditor:         "B01",
	model.ContributionTranslator:     "B06",
	model.ContributionPhotographer:   "A13",
	model.ContributionIllustrator:    "A12",
	model.ContributionMusicEditor:    "B25",
	model.ContributionForewordBy:     "A23",
	model.ContributionIntroductionBy: "A24",
	model.ContributionAfterwordBy:    "A19",
	model.ContributionPrefaceBy:      "A15",
}

// ONIX 2.1 product form: digital editions are DG with an EpubType refinement.
var productForm = map[model.PublicationType]string{
	model.PublicationPaperback: "BC",
	model.PublicationHardback:  "BB",
	model.PublicationPDF:       "DG",
	model.PublicationHTML:      "DG",
	model.PublicationXML:       "DG",
	model.PublicationEpub:      "DG",
	model.PublicationMobi:      "DG",
}

var epubType = map[model.PublicationType]string{
	model.PublicationPDF:  "002",
	model.PublicationHTML: "010",
	model.PublicationXML:  "011",
	model.PublicationEpub: "029",
	model.PublicationMobi: "022",
}

var subjectScheme = map[model.SubjectType]string{
	model.SubjectBIC:     "12",
	model.SubjectBISAC:   "10",
	model.SubjectThema:   "93",
	model.SubjectLCC:     "04",
	model.SubjectCustom:  "24",
	model.SubjectKeyword: "20",
}

// VerifyMappings checks the 2.1 vocabulary tables against the canonical enums.
func VerifyMappings() error {
	for _, s := range model.AllWorkStatuses {
		if _, ok := publishingStatus[s]; !ok {
			return fmt.Errorf("onix2: no publishing status code for %q", s)
		}
	}
	for _, c := range model.AllContributionTypes {
		if _, ok := contributorRole[c]; !ok {
			return fmt.Errorf("onix2: no contributor role code for %q", c)
		}
	}
	for _, p := range model.AllPublicationTypes {
		if _, ok := productForm[p]; !ok {
			return fmt.Errorf("onix2: no product form code for %q", p)
		}
	}
	for _, s := range model.AllSubjectTypes {
		if _, ok := subjectScheme[s]; !ok {
			return fmt.Errorf("onix2: no subject scheme code for %q", s)
		}
	}
	return nil
}

// Encoder renders the 2.1 message. Both aggregator dialects take only digital
// editions; Ebrary additionally wants the series composite suppressed.
type Encoder struct {
	dialect       string
	includeSeries bool
}

// NewEBSCOHost returns the onix_2.1::ebsco_host encoder.
func NewEBSCOHost() *Encoder {
	return &Encoder{dialect: "onix_2.1::ebsco_host", includeSeries: true}
}

// NewProQuestEbrary returns the onix_2.1::proquest_ebrary encoder.
func NewProQuestEbrary() *Encoder {
	return &Encoder{dialect: "onix_2.1::proquest_ebrary"}
}

func (e *Encoder) Encode(works []model.Work) ([]byte, error) {
	var latest time.Time
	for i := range works {
		if works[i].UpdatedAt.After(latest) {
			latest = works[i].UpdatedAt
		}
	}
	msg := onixMessage{}
	if len(works) > 0 {
		msg.Header = header{
			FromCompany: works[0].Imprint.Publisher.PublisherName,
			SentDate:    latest.UTC().Format("20060102"),
		}
	}
	for i := range works {
		products, err := e.buildProducts(&works[i])
		if err != nil {
			return nil, err
		}
		msg.Products = append(msg.Products, products...)
	}
	out, err := xml.MarshalIndent(msg, "", "  ")
	if err != nil {
		return nil, err
	}
	return append([]byte(xml.Header), append(out, '\n')...), nil
}

func (e *Encoder) buildProducts(work *model.Work) ([]product, error) {
	status, ok := publishingStatus[work.WorkStatus]
	if !ok {
		return nil, encode.Unmappable(e.dialect, "work_status", work.WorkStatus)
	}
	var products []product
	for _, pub := range work.SortedPublications() {
		if !pub.PublicationType.IsDigital() || pub.ISBN == "" {
			continue
		}
		p := product{
			RecordReference:  "urn:uuid:" + work.WorkID.String() + ":" + encode.StripISBN(pub.ISBN),
			NotificationType: "03",
			ProductIdentifiers: []productIdentifier{
				{ProductIDType: "15", IDValue: encode.StripISBN(pub.ISBN)},
			},
			ProductForm: productForm[pub.PublicationType],
			EpubType:    epubType[pub.PublicationType],
			Title: title{
				TitleType: "01",
				TitleText: work.Title,
				Subtitle:  work.Subtitle,
			},
			ImprintName:       work.Imprint.ImprintName,
			PublisherName:     work.Imprint.Publisher.PublisherName,
			CityOfPublication: work.Place,
			PublishingStatus:  status,
		}
		if work.DOI != "" {
			p.ProductIdentifiers = append(p.ProductIdentifiers, productIdentifier{ProductIDType: "06", IDValue: encode.BareDOI(work.DOI)})
		}
		if e.includeSeries {
			for _, issue := range work.SortedIssues() {
				p.Series = append(p.Series, series{
					TitleOfSeries:      issue.Series.SeriesName,
					NumberWithinSeries: strconv.Itoa(issue.IssueOrdinal),
				})
			}
		}
		for i, c := range work.SortedContributions() {
			role, ok := contributorRole[c.ContributionType]
			if !ok {
				return nil, encode.Unmappable(e.dialect, "contribution_type", c.ContributionType)
			}
			p.Contributors = append(p.Contributors, contributor{
				SequenceNumber:  strconv.Itoa(i + 1),
				ContributorRole: role,
				PersonName:      c.FullName,
				NamesBeforeKey:  c.FirstName,
				KeyNames:        c.LastName,
			})
		}
		for _, l := range work.SortedLanguages() {
			role := "01"
			if l.LanguageRelation == model.RelationTranslatedFrom {
				role = "02"
			}
			p.Languages = append(p.Languages, language{LanguageRole: role, LanguageCode: l.LanguageCode})
		}
		if work.PageCount != nil {
			p.NumberOfPages = strconv.Itoa(*work.PageCount)
		}
		for _, s := range work.SortedSubjects() {
			scheme, ok := subjectScheme[s.SubjectType]
			if !ok {
				return nil, encode.Unmappable(e.dialect, "subject_type", s.SubjectType)
			}
			sub := subject{SubjectSchemeIdentifier: scheme}
			if s.SubjectType == model.SubjectKeyword {
				sub.SubjectHeadingText = s.SubjectCode
			} else {
				sub.SubjectCode = s.SubjectCode
			}
			p.Subjects = append(p.Subjects, sub)
		}
		if work.PublicationDate != nil {
			p.PublicationDate = encode.Date(*work.PublicationDate)
		}
		supply := supplyDetail{
			SupplierName:        work.Imprint.Publisher.PublisherName,
			ProductAvailability: "20",
		}
		for _, pr := range pub.SortedPrices() {
			supply.Prices = append(supply.Prices, price{
				PriceTypeCode: "02",
				PriceAmount:   encode.Price(pr.UnitPrice),
				CurrencyCode:  pr.CurrencyCode,
			})
		}
		p.SupplyDetails = []supplyDetail{supply}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, &encode.ValidationError{Dialect: e.dialect, Fields: []string{"publications"}}
	}
	return products, nil
}
