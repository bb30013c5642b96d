package tabular

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/brendan-oconnell/thoth/internal/model"
	"github.com/brendan-oconnell/thoth/internal/testutil"
)

func TestCSVEncode(t *testing.T) {
	enc := NewCSV()
	work := testutil.TestWork()

	out, err := enc.Encode([]model.Work{work})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, csvHeader, records[0])

	row := records[1]
	assert.Equal(t, work.WorkID.String(), row[0])
	assert.Equal(t, "monograph", row[1])
	assert.Equal(t, "active", row[2])
	assert.Equal(t, "Regimes of Capital", row[3])
	assert.Equal(t, "https://doi.org/10.21983/rc.2023", row[5])
	assert.Equal(t, "2023-05-12", row[6])
	assert.Equal(t, "Example University Press", row[8])
	assert.Equal(t, "Ada Quill (author); Ben Marsh (editor)", row[12])
	assert.Equal(t, "bic:KCB; keyword:capital; lcc:HB501", row[13])
	assert.Equal(t, "978-1-912656-00-2; 978-1-912656-01-9", row[15])
}

// A DOI contains no comma or quote, so the csv writer must emit it bare.
func TestCSVDOIStaysUnquoted(t *testing.T) {
	enc := NewCSV()
	work := testutil.TestWork()

	out, err := enc.Encode([]model.Work{work})
	require.NoError(t, err)

	lines := strings.Split(string(out), "\n")
	require.GreaterOrEqual(t, len(lines), 2)
	assert.Contains(t, lines[1], ",https://doi.org/10.21983/rc.2023,")
	assert.NotContains(t, lines[1], `"https://doi.org/10.21983/rc.2023"`)
}

func TestCSVQuotesFieldsWithCommas(t *testing.T) {
	enc := NewCSV()
	work := testutil.TestWork()
	work.Title = "Capital, Labour"

	out, err := enc.Encode([]model.Work{work})
	require.NoError(t, err)
	assert.Contains(t, string(out), `"Capital, Labour"`)
}

func TestCSVEmptyBatchEmitsHeaderOnly(t *testing.T) {
	out, err := NewCSV().Encode(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeader, records[0])
}

// Output must not depend on the storage order of the fetched aggregate.
func TestCSVDeterministicUnderInputOrder(t *testing.T) {
	enc := NewCSV()

	base := testutil.TestWork()
	baseline, err := enc.Encode([]model.Work{base})
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		work := testutil.TestWork()
		shuffle(t, work.Contributions)
		shuffle(t, work.Subjects)
		shuffle(t, work.Languages)
		shuffle(t, work.Publications)

		out, err := enc.Encode([]model.Work{work})
		if err != nil {
			t.Fatalf("encode: %v", err)
		}
		if !bytes.Equal(baseline, out) {
			t.Fatalf("output depends on input order:\n%s\nvs\n%s", baseline, out)
		}
	})
}

func shuffle[T any](t *rapid.T, s []T) {
	perm := rapid.Permutation(s).Draw(t, "perm")
	copy(s, perm)
}
