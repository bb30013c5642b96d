package graphql

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brendan-oconnell/thoth/internal/model"
)

// Wire shapes of the GraphQL responses. Enums arrive in SCREAMING_SNAKE case
// and dates as ISO strings; toModel converts both into the canonical model and
// treats anything unconvertible as a malformed response.

type workResponse struct {
	WorkID          string                 `json:"workId"`
	WorkType        string                 `json:"workType"`
	WorkStatus      string                 `json:"workStatus"`
	Title           string                 `json:"title"`
	Subtitle        string                 `json:"subtitle"`
	FullTitle       string                 `json:"fullTitle"`
	Reference       string                 `json:"reference"`
	Edition         *int                   `json:"edition"`
	DOI             string                 `json:"doi"`
	PublicationDate string                 `json:"publicationDate"`
	Place           string                 `json:"place"`
	PageCount       *int                   `json:"pageCount"`
	LandingPage     string                 `json:"landingPage"`
	License         string                 `json:"license"`
	CoverURL        string                 `json:"coverUrl"`
	ShortAbstract   string                 `json:"shortAbstract"`
	LongAbstract    string                 `json:"longAbstract"`
	UpdatedAt       string                 `json:"updatedAtWithRelations"`
	Imprint         imprintResponse        `json:"imprint"`
	Contributions   []contributionResponse `json:"contributions"`
	Subjects        []subjectResponse      `json:"subjects"`
	Languages       []languageResponse     `json:"languages"`
	Issues          []issueResponse        `json:"issues"`
	Publications    []publicationResponse  `json:"publications"`
}

type imprintResponse struct {
	ImprintID   string `json:"imprintId"`
	ImprintName string `json:"imprintName"`
	Publisher   struct {
		PublisherID   string `json:"publisherId"`
		PublisherName string `json:"publisherName"`
		PublisherURL  string `json:"publisherUrl"`
	} `json:"publisher"`
}

type contributionResponse struct {
	ContributionType string `json:"contributionType"`
	FullName         string `json:"fullName"`
	FirstName        string `json:"firstName"`
	LastName         string `json:"lastName"`
	MainContribution bool   `json:"mainContribution"`
	Ordinal          int    `json:"contributionOrdinal"`
	Contributor      struct {
		ORCID string `json:"orcid"`
	} `json:"contributor"`
}

type subjectResponse struct {
	SubjectType string `json:"subjectType"`
	SubjectCode string `json:"subjectCode"`
	Ordinal     int    `json:"subjectOrdinal"`
}

type languageResponse struct {
	LanguageCode     string `json:"languageCode"`
	LanguageRelation string `json:"languageRelation"`
	MainLanguage     bool   `json:"mainLanguage"`
}

type issueResponse struct {
	IssueOrdinal int `json:"issueOrdinal"`
	Series       struct {
		SeriesType  string `json:"seriesType"`
		SeriesName  string `json:"seriesName"`
		ISSNPrint   string `json:"issnPrint"`
		ISSNDigital string `json:"issnDigital"`
	} `json:"series"`
}

type publicationResponse struct {
	PublicationType string   `json:"publicationType"`
	ISBN            string   `json:"isbn"`
	WidthMM         *float64 `json:"widthMm"`
	HeightMM        *float64 `json:"heightMm"`
	DepthMM         *float64 `json:"depthMm"`
	WeightG         *float64 `json:"weightG"`
	Prices          []struct {
		CurrencyCode string  `json:"currencyCode"`
		UnitPrice    float64 `json:"unitPrice"`
	} `json:"prices"`
}

// enumValue lowers a SCREAMING_SNAKE GraphQL enum to the canonical kebab form.
func enumValue(v string) string {
	return strings.ReplaceAll(strings.ToLower(v), "_", "-")
}

func (r *workResponse) toModel() (model.Work, error) {
	workID, err := uuid.Parse(r.WorkID)
	if err != nil {
		return model.Work{}, fmt.Errorf("work id %q: %w", r.WorkID, err)
	}
	imprintID, err := uuid.Parse(r.Imprint.ImprintID)
	if err != nil {
		return model.Work{}, fmt.Errorf("imprint id %q: %w", r.Imprint.ImprintID, err)
	}
	publisherID, err := uuid.Parse(r.Imprint.Publisher.PublisherID)
	if err != nil {
		return model.Work{}, fmt.Errorf("publisher id %q: %w", r.Imprint.Publisher.PublisherID, err)
	}
	updatedAt, err := parseTimestamp(r.UpdatedAt)
	if err != nil {
		return model.Work{}, err
	}

	work := model.Work{
		WorkID:        workID,
		WorkType:      model.WorkType(enumValue(r.WorkType)),
		WorkStatus:    model.WorkStatus(enumValue(r.WorkStatus)),
		Title:         r.Title,
		Subtitle:      r.Subtitle,
		FullTitle:     r.FullTitle,
		Reference:     r.Reference,
		Edition:       r.Edition,
		DOI:           r.DOI,
		Place:         r.Place,
		PageCount:     r.PageCount,
		LandingPage:   r.LandingPage,
		License:       r.License,
		CoverURL:      r.CoverURL,
		ShortAbstract: r.ShortAbstract,
		LongAbstract:  r.LongAbstract,
		Imprint: model.Imprint{
			ImprintID:   imprintID,
			ImprintName: r.Imprint.ImprintName,
			Publisher: model.Publisher{
				PublisherID:   publisherID,
				PublisherName: r.Imprint.Publisher.PublisherName,
				PublisherURL:  r.Imprint.Publisher.PublisherURL,
			},
		},
		UpdatedAt: updatedAt,
	}
	if r.PublicationDate != "" {
		date, err := time.Parse("2006-01-02", r.PublicationDate)
		if err != nil {
			return model.Work{}, fmt.Errorf("publication date %q: %w", r.PublicationDate, err)
		}
		work.PublicationDate = &date
	}
	for _, c := range r.Contributions {
		work.Contributions = append(work.Contributions, model.Contribution{
			ContributionType: model.ContributionType(enumValue(c.ContributionType)),
			FullName:         c.FullName,
			FirstName:        c.FirstName,
			LastName:         c.LastName,
			MainContribution: c.MainContribution,
			Ordinal:          c.Ordinal,
			ORCID:            c.Contributor.ORCID,
		})
	}
	for _, s := range r.Subjects {
		work.Subjects = append(work.Subjects, model.Subject{
			SubjectType: model.SubjectType(enumValue(s.SubjectType)),
			SubjectCode: s.SubjectCode,
			Ordinal:     s.Ordinal,
		})
	}
	for _, l := range r.Languages {
		work.Languages = append(work.Languages, model.Language{
			LanguageCode:     strings.ToLower(l.LanguageCode),
			LanguageRelation: model.LanguageRelation(enumValue(l.LanguageRelation)),
			MainLanguage:     l.MainLanguage,
		})
	}
	for _, i := range r.Issues {
		work.Issues = append(work.Issues, model.Issue{
			IssueOrdinal: i.IssueOrdinal,
			Series: model.Series{
				SeriesType:  model.SeriesType(enumValue(i.Series.SeriesType)),
				SeriesName:  i.Series.SeriesName,
				ISSNPrint:   i.Series.ISSNPrint,
				ISSNDigital: i.Series.ISSNDigital,
			},
		})
	}
	for _, p := range r.Publications {
		pub := model.Publication{
			PublicationType: model.PublicationType(enumValue(p.PublicationType)),
			ISBN:            p.ISBN,
			WidthMM:         p.WidthMM,
			HeightMM:        p.HeightMM,
			DepthMM:         p.DepthMM,
			WeightG:         p.WeightG,
		}
		for _, pr := range p.Prices {
			pub.Prices = append(pub.Prices, model.Price{
				CurrencyCode: pr.CurrencyCode,
				UnitPrice:    pr.UnitPrice,
			})
		}
		work.Publications = append(work.Publications, pub)
	}
	return work, nil
}

// parseTimestamp accepts the RFC 3339 forms the API is known to emit.
func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04:05.999999", "2006-01-02 15:04:05.999999"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("timestamp %q: unrecognized format", v)
}
