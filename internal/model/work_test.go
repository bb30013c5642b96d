package model

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validWork() Work {
	return Work{
		WorkID:    uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		WorkType:  WorkTypeMonograph,
		Title:     "A Title",
		FullTitle: "A Title",
		Imprint: Imprint{
			ImprintName: "Imprint",
			Publisher:   Publisher{PublisherName: "Publisher"},
		},
	}
}

func TestWorkValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Work)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(w *Work) {},
		},
		{
			name:    "empty title",
			mutate:  func(w *Work) { w.Title = "" },
			wantErr: "title",
		},
		{
			name:    "missing publisher",
			mutate:  func(w *Work) { w.Imprint.Publisher.PublisherName = "" },
			wantErr: "imprint",
		},
		{
			name: "duplicate subject",
			mutate: func(w *Work) {
				w.Subjects = []Subject{
					{SubjectType: SubjectBIC, SubjectCode: "KCB", Ordinal: 1},
					{SubjectType: SubjectBIC, SubjectCode: "KCB", Ordinal: 2},
				}
			},
			wantErr: "duplicate subject",
		},
		{
			name: "same code in two schemes is fine",
			mutate: func(w *Work) {
				w.Subjects = []Subject{
					{SubjectType: SubjectBIC, SubjectCode: "KCB", Ordinal: 1},
					{SubjectType: SubjectThema, SubjectCode: "KCB", Ordinal: 2},
				}
			},
		},
		{
			name: "negative subject ordinal",
			mutate: func(w *Work) {
				w.Subjects = []Subject{{SubjectType: SubjectBIC, SubjectCode: "KCB", Ordinal: -1}}
			},
			wantErr: "negative ordinal",
		},
		{
			name: "negative contribution ordinal",
			mutate: func(w *Work) {
				w.Contributions = []Contribution{{FullName: "X", Ordinal: -2}}
			},
			wantErr: "negative ordinal",
		},
		{
			name: "two main original languages",
			mutate: func(w *Work) {
				w.Languages = []Language{
					{LanguageCode: "eng", LanguageRelation: RelationOriginal, MainLanguage: true},
					{LanguageCode: "fre", LanguageRelation: RelationOriginal, MainLanguage: true},
				}
			},
			wantErr: "main original language",
		},
		{
			name: "main original plus main translated is fine",
			mutate: func(w *Work) {
				w.Languages = []Language{
					{LanguageCode: "eng", LanguageRelation: RelationOriginal, MainLanguage: true},
					{LanguageCode: "fre", LanguageRelation: RelationTranslatedInto, MainLanguage: true},
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := validWork()
			tt.mutate(&w)
			err := w.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}

func TestSortedContributions(t *testing.T) {
	w := validWork()
	w.Contributions = []Contribution{
		{FullName: "Cara", Ordinal: 3},
		{FullName: "Ada", Ordinal: 1},
		{FullName: "Ben", Ordinal: 2},
		{FullName: "Abe", Ordinal: 2},
	}

	got := w.SortedContributions()

	require.Len(t, got, 4)
	assert.Equal(t, "Ada", got[0].FullName)
	assert.Equal(t, "Abe", got[1].FullName)
	assert.Equal(t, "Ben", got[2].FullName)
	assert.Equal(t, "Cara", got[3].FullName)
	// input order untouched
	assert.Equal(t, "Cara", w.Contributions[0].FullName)
}

func TestSortedPublications(t *testing.T) {
	w := validWork()
	w.Publications = []Publication{
		{PublicationType: PublicationPDF, ISBN: "b"},
		{PublicationType: PublicationHardback, ISBN: "a"},
		{PublicationType: PublicationHardback, ISBN: ""},
	}

	got := w.SortedPublications()

	assert.Equal(t, PublicationHardback, got[0].PublicationType)
	assert.Equal(t, "", got[0].ISBN)
	assert.Equal(t, "a", got[1].ISBN)
	assert.Equal(t, PublicationPDF, got[2].PublicationType)
}

func TestContributionsByType(t *testing.T) {
	w := validWork()
	w.Contributions = []Contribution{
		{FullName: "Ed", ContributionType: ContributionEditor, Ordinal: 2},
		{FullName: "Au", ContributionType: ContributionAuthor, Ordinal: 1},
		{FullName: "Tr", ContributionType: ContributionTranslator, Ordinal: 3},
	}

	got := w.ContributionsByType(ContributionAuthor, ContributionEditor)

	require.Len(t, got, 2)
	assert.Equal(t, "Au", got[0].FullName)
	assert.Equal(t, "Ed", got[1].FullName)
}

func TestFirstISBN(t *testing.T) {
	w := validWork()
	assert.Equal(t, "", w.FirstISBN())

	w.Publications = []Publication{
		{PublicationType: PublicationPDF, ISBN: "978-1-00000-000-2"},
		{PublicationType: PublicationHardback, ISBN: ""},
		{PublicationType: PublicationHardback, ISBN: "978-1-00000-000-1"},
	}
	assert.Equal(t, "978-1-00000-000-1", w.FirstISBN())
}

func TestPublicationYear(t *testing.T) {
	w := validWork()
	assert.Equal(t, "", w.PublicationYear())

	d := time.Date(2021, 7, 1, 0, 0, 0, 0, time.UTC)
	w.PublicationDate = &d
	assert.Equal(t, "2021", w.PublicationYear())
}

func TestMainLanguages(t *testing.T) {
	w := validWork()
	w.Languages = []Language{
		{LanguageCode: "ger", LanguageRelation: RelationTranslatedInto, MainLanguage: true},
		{LanguageCode: "eng", LanguageRelation: RelationOriginal, MainLanguage: true},
		{LanguageCode: "fre", LanguageRelation: RelationTranslatedFrom},
	}
	assert.Equal(t, []string{"eng", "ger"}, w.MainLanguages())
}
