package tabular

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan-oconnell/thoth/internal/model"
	"github.com/brendan-oconnell/thoth/internal/testutil"
)

func readKBART(t *testing.T, out []byte) [][]string {
	t.Helper()
	r := csv.NewReader(bytes.NewReader(out))
	r.Comma = '\t'
	records, err := r.ReadAll()
	require.NoError(t, err)
	return records
}

func TestKBARTEncode(t *testing.T) {
	enc := NewKBART()
	work := testutil.TestWork()

	out, err := enc.Encode([]model.Work{work})
	require.NoError(t, err)

	records := readKBART(t, out)
	require.Len(t, records, 2)
	assert.Equal(t, kbartHeader, records[0])

	row := records[1]
	require.Len(t, row, len(kbartHeader))
	assert.Equal(t, "Regimes of Capital: A Global History", row[0])
	assert.Equal(t, "9781912656002", row[1], "print_identifier")
	assert.Equal(t, "9781912656019", row[2], "online_identifier")
	assert.Equal(t, "https://press.example.org/books/regimes-of-capital", row[9])
	assert.Equal(t, "Quill", row[10], "first_author")
	assert.Equal(t, "fulltext", row[13])
	assert.Equal(t, "Example University Press", row[15])
	assert.Equal(t, "monograph", row[16])
	assert.Equal(t, "2023-05-12", row[17])
	assert.Equal(t, "3", row[19], "monograph_volume")
	assert.Equal(t, "1", row[20], "monograph_edition")
	assert.Equal(t, "Marsh", row[21], "first_editor")
	assert.Equal(t, "F", row[24], "access_type")
}

func TestKBARTAccessTypePaid(t *testing.T) {
	work := testutil.TestWork()
	work.License = ""

	out, err := NewKBART().Encode([]model.Work{work})
	require.NoError(t, err)

	records := readKBART(t, out)
	assert.Equal(t, "P", records[1][24])
}

func TestKBARTWithoutPrintPublication(t *testing.T) {
	work := testutil.TestWork()
	work.Publications = []model.Publication{
		{PublicationType: model.PublicationPDF, ISBN: "978-1-912656-01-9"},
	}

	out, err := NewKBART().Encode([]model.Work{work})
	require.NoError(t, err)

	records := readKBART(t, out)
	assert.Equal(t, "", records[1][1])
	assert.Equal(t, "9781912656019", records[1][2])
}

func TestKBARTDeterministic(t *testing.T) {
	enc := NewKBART()
	works := []model.Work{testutil.TestWork(), testutil.MinimalWork()}

	first, err := enc.Encode(works)
	require.NoError(t, err)
	second, err := enc.Encode(works)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
