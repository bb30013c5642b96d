// Package onix3 renders works as ONIX 3.0 messages. One shared builder covers
// the whole family; each distribution channel supplies a profile naming its
// dialect and the product/pricing rules it expects.
package onix3

import (
	"encoding/xml"
	"strconv"
	"time"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
)

const onixNamespace = "http://ns.editeur.org/onix/3.0/reference"

// Profile captures how one distribution channel deviates from the baseline
// ONIX 3.0 output.
type Profile struct {
	// Dialect is the full "family::dialect" identifier used in errors.
	Dialect string
	// DigitalOnly drops physical publications from the product list.
	DigitalOnly bool
	// IncludeDOI adds the DOI as a product identifier.
	IncludeDOI bool
	// IncludeLicense adds an EpubLicense composite from the work's license URL.
	IncludeLicense bool
	// RequirePrices treats a publication without prices as invalid instead of
	// emitting an unpriced-item marker.
	RequirePrices bool
}

// Encoder renders one Product per exported publication under a single header.
type Encoder struct {
	profile Profile
}

// New returns an ONIX 3.0 encoder for the given profile.
func New(profile Profile) *Encoder { return &Encoder{profile: profile} }

// NewThoth returns the onix_3.0::thoth encoder: the complete record, every
// publication, DOI and license included.
func NewThoth() *Encoder {
	return New(Profile{Dialect: "onix_3.0::thoth", IncludeDOI: true, IncludeLicense: true})
}

// NewProjectMUSE returns the onix_3.0::project_muse encoder.
func NewProjectMUSE() *Encoder {
	return New(Profile{Dialect: "onix_3.0::project_muse", DigitalOnly: true, IncludeDOI: true})
}

// NewOAPEN returns the onix_3.0::oapen encoder. OAPEN/DOAB ingest only open
// digital editions and read the license from the ONIX record itself.
func NewOAPEN() *Encoder {
	return New(Profile{Dialect: "onix_3.0::oapen", DigitalOnly: true, IncludeDOI: true, IncludeLicense: true})
}

// NewJSTOR returns the onix_3.0::jstor encoder.
func NewJSTOR() *Encoder {
	return New(Profile{Dialect: "onix_3.0::jstor", DigitalOnly: true, IncludeDOI: true})
}

// NewGoogleBooks returns the onix_3.0::google_books encoder. Google Books
// rejects products without a price.
func NewGoogleBooks() *Encoder {
	return New(Profile{Dialect: "onix_3.0::google_books", DigitalOnly: true, RequirePrices: true})
}

// NewOverDrive returns the onix_3.0::overdrive encoder.
func NewOverDrive() *Encoder {
	return New(Profile{Dialect: "onix_3.0::overdrive", DigitalOnly: true})
}

func (e *Encoder) Encode(works []model.Work) ([]byte, error) {
	msg := onixMessage{
		Release:   "3.0",
		Namespace: onixNamespace,
		Header: header{
			Sender:       sender{SenderName: senderName(works)},
			SentDateTime: lastUpdated(works).UTC().Format("20060102T150405Z"),
		},
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

// senderName uses the first work's publisher; a message only ever contains
// works of one publisher.
func senderName(works []model.Work) string {
	if len(works) == 0 {
		return ""
	}
	return works[0].Imprint.Publisher.PublisherName
}

// lastUpdated gives the header timestamp from the aggregates themselves rather
// than the wall clock, keeping repeated exports byte-identical.
func lastUpdated(works []model.Work) time.Time {
	var latest time.Time
	for i := range works {
		if works[i].UpdatedAt.After(latest) {
			latest = works[i].UpdatedAt
		}
	}
	return latest
}

func (e *Encoder) buildProducts(work *model.Work) ([]product, error) {
	status, ok := publishingStatus[work.WorkStatus]
	if !ok {
		return nil, encode.Unmappable(e.profile.Dialect, "work_status", work.WorkStatus)
	}

	var products []product
	for _, pub := range work.SortedPublications() {
		if e.profile.DigitalOnly && !pub.PublicationType.IsDigital() {
			continue
		}
		if pub.ISBN == "" {
			continue
		}
		if e.profile.RequirePrices && len(pub.Prices) == 0 {
			return nil, &encode.ValidationError{
				Dialect: e.profile.Dialect,
				Fields:  []string{"publications[" + string(pub.PublicationType) + "].prices"},
			}
		}
		p, err := e.buildProduct(work, pub, status)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}
	if len(products) == 0 {
		return nil, &encode.ValidationError{Dialect: e.profile.Dialect, Fields: []string{"publications"}}
	}
	return products, nil
}

func (e *Encoder) buildProduct(work *model.Work, pub model.Publication, status string) (product, error) {
	form, ok := productForm[pub.PublicationType]
	if !ok {
		return product{}, encode.Unmappable(e.profile.Dialect, "publication_type", pub.PublicationType)
	}

	identifiers := []productIdentifier{
		{ProductIDType: "01", IDValue: work.WorkID.String()},
	}
	if e.profile.IncludeDOI && work.DOI != "" {
		identifiers = append(identifiers, productIdentifier{ProductIDType: "06", IDValue: encode.BareDOI(work.DOI)})
	}
	identifiers = append(identifiers, productIdentifier{ProductIDType: "15", IDValue: encode.StripISBN(pub.ISBN)})

	descriptive := descriptiveDetail{
		ProductComposition: "00",
		ProductForm:        form,
		ProductFormDetail:  productFormDetail[pub.PublicationType],
		TitleDetail: titleDetail{
			TitleType: "01",
			TitleElement: titleElement{
				TitleElementLevel: "01",
				TitleText:         work.Title,
				Subtitle:          work.Subtitle,
			},
		},
	}
	if e.profile.IncludeLicense && work.License != "" {
		descriptive.EpubLicense = &epubLicense{
			EpubLicenseName: string(model.ParseLicense(work.License)),
			EpubLicenseExpression: &epubLicenseExpression{
				EpubLicenseExpressionType: "02",
				EpubLicenseExpressionLink: work.License,
			},
		}
	}
	for _, issue := range work.SortedIssues() {
		descriptive.Collections = append(descriptive.Collections, collection{
			CollectionType: "10",
			CollectionSequence: &collectionSequence{
				CollectionSequenceType:   "03",
				CollectionSequenceNumber: strconv.Itoa(issue.IssueOrdinal),
			},
			TitleDetail: titleDetail{
				TitleType: "01",
				TitleElement: titleElement{
					TitleElementLevel: "02",
					TitleText:         issue.Series.SeriesName,
				},
			},
		})
	}
	for i, c := range work.SortedContributions() {
		role, ok := contributorRole[c.ContributionType]
		if !ok {
			return product{}, encode.Unmappable(e.profile.Dialect, "contribution_type", c.ContributionType)
		}
		contrib := contributor{
			SequenceNumber:  strconv.Itoa(i + 1),
			ContributorRole: role,
			PersonName:      c.FullName,
			NamesBeforeKey:  c.FirstName,
			KeyNames:        c.LastName,
		}
		if c.ORCID != "" {
			contrib.NameIdentifiers = []nameIdentifier{{NameIDType: "21", IDValue: c.ORCID}}
		}
		descriptive.Contributors = append(descriptive.Contributors, contrib)
	}
	for _, l := range work.SortedLanguages() {
		role := "01"
		if l.LanguageRelation == model.RelationTranslatedFrom {
			role = "02"
		}
		descriptive.Languages = append(descriptive.Languages, language{LanguageRole: role, LanguageCode: l.LanguageCode})
	}
	if work.PageCount != nil {
		descriptive.Extents = append(descriptive.Extents, extent{
			ExtentType:  "00",
			ExtentValue: strconv.Itoa(*work.PageCount),
			ExtentUnit:  "03",
		})
	}
	for _, s := range work.SortedSubjects() {
		scheme, ok := subjectScheme[s.SubjectType]
		if !ok {
			return product{}, encode.Unmappable(e.profile.Dialect, "subject_type", s.SubjectType)
		}
		sub := subject{SubjectSchemeIdentifier: scheme}
		if s.SubjectType == model.SubjectKeyword {
			sub.SubjectHeadingText = s.SubjectCode
		} else {
			sub.SubjectCode = s.SubjectCode
		}
		descriptive.Subjects = append(descriptive.Subjects, sub)
	}

	publishing := publishingDetail{
		Imprint: imprint{ImprintName: work.Imprint.ImprintName},
		Publisher: publisher{
			PublishingRole: "01",
			PublisherName:  work.Imprint.Publisher.PublisherName,
		},
		CityOfPublication: work.Place,
		PublishingStatus:  status,
	}
	if work.Imprint.Publisher.PublisherURL != "" {
		publishing.Publisher.Websites = []website{{WebsiteRole: "01", WebsiteLink: work.Imprint.Publisher.PublisherURL}}
	}
	if work.PublicationDate != nil {
		publishing.PublishingDates = []publishingDate{{
			PublishingDateRole: "01",
			Date:               encode.Date(*work.PublicationDate),
		}}
	}

	supply := supplyDetail{
		Supplier: supplier{
			SupplierRole: "09",
			SupplierName: work.Imprint.Publisher.PublisherName,
		},
		ProductAvailability: "20",
	}
	if prices := pub.SortedPrices(); len(prices) > 0 {
		for _, pr := range prices {
			supply.Prices = append(supply.Prices, price{
				PriceType:    "02",
				PriceAmount:  encode.Price(pr.UnitPrice),
				CurrencyCode: pr.CurrencyCode,
			})
		}
	} else {
		// Codelist 57: 01 = free of charge. Open-access editions carry no price.
		supply.UnpricedItemType = "01"
	}

	// One Product per publication, so the record reference carries the ISBN to
	// stay unique within the message.
	recordReference := "urn:uuid:" + work.WorkID.String() + ":" + encode.StripISBN(pub.ISBN)
	return product{
		RecordReference:    recordReference,
		NotificationType:   "03",
		RecordSourceType:   "01",
		ProductIdentifiers: identifiers,
		DescriptiveDetail:  descriptive,
		PublishingDetail:   publishing,
		ProductSupplies:    []productSupply{{SupplyDetail: supply}},
	}, nil
}
