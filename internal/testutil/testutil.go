package testutil

import (
	"time"

	"github.com/google/uuid"

	"github.com/brendan-oconnell/thoth/internal/model"
)

var (
	// TestWorkID is the identity of the fixture returned by TestWork.
	TestWorkID = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	// TestPublisherID is the publisher identity shared by all fixtures.
	TestPublisherID = uuid.MustParse("00000000-0000-0000-0000-0000000000aa")

	testImprintID = uuid.MustParse("00000000-0000-0000-0000-0000000000ab")
)

// TestWork returns a fully populated aggregate that satisfies every dialect's
// mandatory-field contract. Each call returns a fresh copy, so tests may
// mutate it freely.
func TestWork() model.Work {
	pubDate := time.Date(2023, 5, 12, 0, 0, 0, 0, time.UTC)
	edition := 1
	pageCount := 342
	return model.Work{
		WorkID:          TestWorkID,
		WorkType:        model.WorkTypeMonograph,
		WorkStatus:      model.StatusActive,
		Title:           "Regimes of Capital",
		Subtitle:        "A Global History",
		FullTitle:       "Regimes of Capital: A Global History",
		Reference:       "RC-2023",
		Edition:         &edition,
		DOI:             "https://doi.org/10.21983/rc.2023",
		PublicationDate: &pubDate,
		Place:           "London, UK",
		PageCount:       &pageCount,
		LandingPage:     "https://press.example.org/books/regimes-of-capital",
		License:         "https://creativecommons.org/licenses/by/4.0/",
		CoverURL:        "https://press.example.org/covers/regimes-of-capital.jpg",
		ShortAbstract:   "A short study of capital.",
		LongAbstract:    "A longer study of capital, its regimes and its histories.",
		Imprint: model.Imprint{
			ImprintID:   testImprintID,
			ImprintName: "Example Press",
			Publisher: model.Publisher{
				PublisherID:   TestPublisherID,
				PublisherName: "Example University Press",
				PublisherURL:  "https://press.example.org",
			},
		},
		Contributions: []model.Contribution{
			{
				ContributionType: model.ContributionAuthor,
				FullName:         "Ada Quill",
				FirstName:        "Ada",
				LastName:         "Quill",
				MainContribution: true,
				Ordinal:          1,
				ORCID:            "https://orcid.org/0000-0002-1234-5678",
			},
			{
				ContributionType: model.ContributionEditor,
				FullName:         "Ben Marsh",
				FirstName:        "Ben",
				LastName:         "Marsh",
				MainContribution: false,
				Ordinal:          2,
			},
		},
		Subjects: []model.Subject{
			{SubjectType: model.SubjectBIC, SubjectCode: "KCB", Ordinal: 1},
			{SubjectType: model.SubjectKeyword, SubjectCode: "capital", Ordinal: 2},
			{SubjectType: model.SubjectLCC, SubjectCode: "HB501", Ordinal: 3},
		},
		Languages: []model.Language{
			{LanguageCode: "eng", LanguageRelation: model.RelationOriginal, MainLanguage: true},
		},
		Issues: []model.Issue{
			{
				Series: model.Series{
					SeriesType:  model.SeriesBookSeries,
					SeriesName:  "Global Histories",
					ISSNPrint:   "1234-5678",
					ISSNDigital: "8765-4321",
				},
				IssueOrdinal: 3,
			},
		},
		Publications: []model.Publication{
			{
				PublicationType: model.PublicationPaperback,
				ISBN:            "978-1-912656-00-2",
				Prices: []model.Price{
					{CurrencyCode: "GBP", UnitPrice: 19.99},
					{CurrencyCode: "USD", UnitPrice: 24.99},
				},
			},
			{
				PublicationType: model.PublicationPDF,
				ISBN:            "978-1-912656-01-9",
				Prices: []model.Price{
					{CurrencyCode: "USD", UnitPrice: 27.5},
				},
			},
		},
		UpdatedAt: time.Date(2024, 2, 18, 9, 30, 0, 0, time.UTC),
	}
}

// MinimalWork returns the smallest aggregate that passes structural
// validation. It deliberately lacks a publication date, ISBNs and
// contributors, so stricter dialects reject it.
func MinimalWork() model.Work {
	return model.Work{
		WorkID:     uuid.MustParse("00000000-0000-0000-0000-000000000002"),
		WorkType:   model.WorkTypeMonograph,
		WorkStatus: model.StatusForthcoming,
		Title:      "Untitled Draft",
		FullTitle:  "Untitled Draft",
		Imprint: model.Imprint{
			ImprintID:   testImprintID,
			ImprintName: "Example Press",
			Publisher: model.Publisher{
				PublisherID:   TestPublisherID,
				PublisherName: "Example University Press",
			},
		},
		UpdatedAt: time.Date(2024, 2, 18, 9, 30, 0, 0, time.UTC),
	}
}
