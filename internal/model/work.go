package model

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a requested work does not exist upstream.
var ErrNotFound = errors.New("work not found")

// Work is the canonical publication aggregate. A fetched Work is owned by the
// request that fetched it; encoders must not retain references past their call.
type Work struct {
	WorkID          uuid.UUID      `json:"work_id"`
	WorkType        WorkType       `json:"work_type"`
	WorkStatus      WorkStatus     `json:"work_status"`
	Title           string         `json:"title"`
	Subtitle        string         `json:"subtitle,omitempty"`
	FullTitle       string         `json:"full_title"`
	Reference       string         `json:"reference,omitempty"`
	Edition         *int           `json:"edition,omitempty"`
	DOI             string         `json:"doi,omitempty"`
	PublicationDate *time.Time     `json:"publication_date,omitempty"`
	Place           string         `json:"place,omitempty"`
	PageCount       *int           `json:"page_count,omitempty"`
	LandingPage     string         `json:"landing_page,omitempty"`
	License         string         `json:"license,omitempty"`
	CoverURL        string         `json:"cover_url,omitempty"`
	ShortAbstract   string         `json:"short_abstract,omitempty"`
	LongAbstract    string         `json:"long_abstract,omitempty"`
	Imprint         Imprint        `json:"imprint"`
	Contributions   []Contribution `json:"contributions,omitempty"`
	Subjects        []Subject      `json:"subjects,omitempty"`
	Languages       []Language     `json:"languages,omitempty"`
	Issues          []Issue        `json:"issues,omitempty"`
	Publications    []Publication  `json:"publications,omitempty"`
	UpdatedAt       time.Time      `json:"updated_at"`
}

// Imprint is the imprint a work is published under, with its owning publisher.
type Imprint struct {
	ImprintID   uuid.UUID `json:"imprint_id"`
	ImprintName string    `json:"imprint_name"`
	Publisher   Publisher `json:"publisher"`
}

// Publisher owns one or more imprints.
type Publisher struct {
	PublisherID   uuid.UUID `json:"publisher_id"`
	PublisherName string    `json:"publisher_name"`
	PublisherURL  string    `json:"publisher_url,omitempty"`
}

// Contribution links a contributor to a work in a given role.
type Contribution struct {
	ContributionType ContributionType `json:"contribution_type"`
	FullName         string           `json:"full_name"`
	FirstName        string           `json:"first_name,omitempty"`
	LastName         string           `json:"last_name"`
	MainContribution bool             `json:"main_contribution"`
	Ordinal          int              `json:"contribution_ordinal"`
	ORCID            string           `json:"orcid,omitempty"`
}

// Subject is a classification code from one scheme.
type Subject struct {
	SubjectType SubjectType `json:"subject_type"`
	SubjectCode string      `json:"subject_code"`
	Ordinal     int         `json:"subject_ordinal"`
}

// Language is a language a work is written in or translated from/into.
// LanguageCode is a lower-case ISO 639-2/B code.
type Language struct {
	LanguageCode     string           `json:"language_code"`
	LanguageRelation LanguageRelation `json:"language_relation"`
	MainLanguage     bool             `json:"main_language"`
}

// Issue is a work's membership of a series.
type Issue struct {
	Series       Series `json:"series"`
	IssueOrdinal int    `json:"issue_ordinal"`
}

// Series is a journal or book series.
type Series struct {
	SeriesType  SeriesType `json:"series_type"`
	SeriesName  string     `json:"series_name"`
	ISSNPrint   string     `json:"issn_print,omitempty"`
	ISSNDigital string     `json:"issn_digital,omitempty"`
}

// Publication is one format of a work, optionally carrying an ISBN and prices.
type Publication struct {
	PublicationType PublicationType `json:"publication_type"`
	ISBN            string          `json:"isbn,omitempty"`
	Prices          []Price         `json:"prices,omitempty"`
	WidthMM         *float64        `json:"width_mm,omitempty"`
	HeightMM        *float64        `json:"height_mm,omitempty"`
	DepthMM         *float64        `json:"depth_mm,omitempty"`
	WeightG         *float64        `json:"weight_g,omitempty"`
}

// Price is a unit price in one currency. CurrencyCode is upper-case ISO 4217.
type Price struct {
	CurrencyCode string  `json:"currency_code"`
	UnitPrice    float64 `json:"unit_price"`
}

// Validate checks the aggregate's structural invariants. Dialect-specific
// mandatory-field contracts are checked by the registry, not here.
func (w *Work) Validate() error {
	if w.Title == "" {
		return errors.New("work title must not be empty")
	}
	if w.Imprint.ImprintName == "" || w.Imprint.Publisher.PublisherName == "" {
		return errors.New("work must belong to exactly one imprint and publisher")
	}
	seen := make(map[string]bool, len(w.Subjects))
	for _, s := range w.Subjects {
		if s.Ordinal < 0 {
			return fmt.Errorf("subject %s %s: negative ordinal", s.SubjectType, s.SubjectCode)
		}
		key := string(s.SubjectType) + "\x00" + s.SubjectCode
		if seen[key] {
			return fmt.Errorf("duplicate subject %s %s", s.SubjectType, s.SubjectCode)
		}
		seen[key] = true
	}
	for _, c := range w.Contributions {
		if c.Ordinal < 0 {
			return fmt.Errorf("contribution %s: negative ordinal", c.FullName)
		}
	}
	mainOriginal := 0
	for _, l := range w.Languages {
		if l.MainLanguage && l.LanguageRelation == RelationOriginal {
			mainOriginal++
		}
	}
	if mainOriginal > 1 {
		return errors.New("at most one language may be the main original language")
	}
	return nil
}

// MainLanguages returns the language codes flagged as main, in code order.
func (w *Work) MainLanguages() []string {
	var codes []string
	for _, l := range w.Languages {
		if l.MainLanguage {
			codes = append(codes, l.LanguageCode)
		}
	}
	sort.Strings(codes)
	return codes
}

// SortedContributions returns a copy of the contributions in ascending ordinal
// order, ties broken by full name. Serialized output must not depend on the
// storage order of the fetched aggregate.
func (w *Work) SortedContributions() []Contribution {
	out := make([]Contribution, len(w.Contributions))
	copy(out, w.Contributions)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ordinal != out[j].Ordinal {
			return out[i].Ordinal < out[j].Ordinal
		}
		return out[i].FullName < out[j].FullName
	})
	return out
}

// SortedSubjects returns a copy of the subjects in ascending ordinal order,
// ties broken by (type, code).
func (w *Work) SortedSubjects() []Subject {
	out := make([]Subject, len(w.Subjects))
	copy(out, w.Subjects)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Ordinal != out[j].Ordinal {
			return out[i].Ordinal < out[j].Ordinal
		}
		if out[i].SubjectType != out[j].SubjectType {
			return out[i].SubjectType < out[j].SubjectType
		}
		return out[i].SubjectCode < out[j].SubjectCode
	})
	return out
}

// SortedPublications returns a copy of the publications ordered by type then
// ISBN, giving a stable product order across fetches.
func (w *Work) SortedPublications() []Publication {
	out := make([]Publication, len(w.Publications))
	copy(out, w.Publications)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].PublicationType != out[j].PublicationType {
			return out[i].PublicationType < out[j].PublicationType
		}
		return out[i].ISBN < out[j].ISBN
	})
	return out
}

// SortedPrices returns a copy of a publication's prices ordered by currency.
func (p *Publication) SortedPrices() []Price {
	out := make([]Price, len(p.Prices))
	copy(out, p.Prices)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CurrencyCode < out[j].CurrencyCode
	})
	return out
}

// SortedIssues returns a copy of the series memberships ordered by issue
// ordinal, ties broken by series name.
func (w *Work) SortedIssues() []Issue {
	out := make([]Issue, len(w.Issues))
	copy(out, w.Issues)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].IssueOrdinal != out[j].IssueOrdinal {
			return out[i].IssueOrdinal < out[j].IssueOrdinal
		}
		return out[i].Series.SeriesName < out[j].Series.SeriesName
	})
	return out
}

// SortedLanguages returns a copy of the languages ordered by code then
// relation.
func (w *Work) SortedLanguages() []Language {
	out := make([]Language, len(w.Languages))
	copy(out, w.Languages)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].LanguageCode != out[j].LanguageCode {
			return out[i].LanguageCode < out[j].LanguageCode
		}
		return out[i].LanguageRelation < out[j].LanguageRelation
	})
	return out
}

// ContributionsByType returns the sorted contributions matching any of the
// given roles.
func (w *Work) ContributionsByType(types ...ContributionType) []Contribution {
	var out []Contribution
	for _, c := range w.SortedContributions() {
		for _, t := range types {
			if c.ContributionType == t {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// FirstISBN returns the ISBN of the first sorted publication carrying one.
func (w *Work) FirstISBN() string {
	for _, p := range w.SortedPublications() {
		if p.ISBN != "" {
			return p.ISBN
		}
	}
	return ""
}

// PublicationYear returns the four-digit year of publication, or the empty
// string when the date is unset.
func (w *Work) PublicationYear() string {
	if w.PublicationDate == nil {
		return ""
	}
	return w.PublicationDate.Format("2006")
}
