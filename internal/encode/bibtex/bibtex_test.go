package bibtex

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan-oconnell/thoth/internal/model"
	"github.com/brendan-oconnell/thoth/internal/testutil"
)

func TestVerifyMappings(t *testing.T) {
	assert.NoError(t, VerifyMappings())
}

func TestEncode(t *testing.T) {
	work := testutil.TestWork()

	out, err := New().Encode([]model.Work{work})
	require.NoError(t, err)
	entry := string(out)

	assert.True(t, strings.HasPrefix(entry, "@book{quill2023,\n"), entry)
	assert.Contains(t, entry, "\ttitle = {Regimes of Capital},\n")
	assert.Contains(t, entry, "\tsubtitle = {A Global History},\n")
	assert.Contains(t, entry, "\tauthor = {Quill, Ada},\n")
	assert.Contains(t, entry, "\teditor = {Marsh, Ben},\n")
	assert.Contains(t, entry, "\tpublisher = {Example University Press},\n")
	assert.Contains(t, entry, "\tseries = {Global Histories},\n")
	assert.Contains(t, entry, "\tvolume = {3},\n")
	assert.Contains(t, entry, "\tyear = 2023,\n")
	assert.Contains(t, entry, "\tmonth = may,\n")
	assert.Contains(t, entry, "\tisbn = {978-1-912656-00-2},\n")
	assert.Contains(t, entry, "\tdoi = {https://doi.org/10.21983/rc.2023},\n")
	assert.True(t, strings.HasSuffix(entry, "}\n"), entry)
}

func TestEncodeEntryTypes(t *testing.T) {
	tests := []struct {
		workType model.WorkType
		want     string
	}{
		{model.WorkTypeMonograph, "@book"},
		{model.WorkTypeEditedBook, "@book"},
		{model.WorkTypeBookChapter, "@inbook"},
		{model.WorkTypeJournalIssue, "@misc"},
	}

	for _, tt := range tests {
		t.Run(string(tt.workType), func(t *testing.T) {
			work := testutil.TestWork()
			work.WorkType = tt.workType

			out, err := New().Encode([]model.Work{work})
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(out), tt.want+"{"))
		})
	}
}

func TestCitationKeyFallsBackToWorkID(t *testing.T) {
	work := testutil.TestWork()
	work.Contributions = nil

	out, err := New().Encode([]model.Work{work})
	require.NoError(t, err)
	assert.Contains(t, string(out), "@book{"+work.WorkID.String()+",")
}

func TestEncodeMultipleEntriesSeparatedByBlankLine(t *testing.T) {
	works := []model.Work{testutil.TestWork(), testutil.TestWork()}
	works[1].WorkID = testutil.TestPublisherID
	works[1].Title = "Second Volume"

	out, err := New().Encode(works)
	require.NoError(t, err)
	assert.Contains(t, string(out), "}\n\n@book{")
}

func TestEscape(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"AT&T", `AT\&T`},
		{"100% true", `100\% true`},
		{"a_b", `a\_b`},
		{"{braces}", `\{braces\}`},
		{`back\slash`, `back\textbackslash{}slash`},
		{"plain", "plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, escape(tt.in), tt.in)
	}
}

func TestEncodeEscapesFieldValues(t *testing.T) {
	work := testutil.TestWork()
	work.Title = "Profit & Loss"

	out, err := New().Encode([]model.Work{work})
	require.NoError(t, err)
	assert.Contains(t, string(out), `title = {Profit \& Loss}`)
}
