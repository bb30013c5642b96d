package marc21

import (
	"bytes"
	"encoding/xml"
	"strconv"
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

func TestBuildFields(t *testing.T) {
	work := testutil.TestWork()

	fields, err := buildFields(&work)
	require.NoError(t, err)

	byTag := map[string][]field{}
	for _, f := range fields {
		byTag[f.tag] = append(byTag[f.tag], f)
	}

	require.Len(t, byTag["001"], 1)
	assert.Equal(t, work.WorkID.String(), byTag["001"][0].control)

	require.Len(t, byTag["020"], 2)
	assert.Equal(t, "9781912656002", byTag["020"][0].subfields[0].value)
	assert.Equal(t, "paperback", byTag["020"][0].subfields[1].value)
	assert.Equal(t, "9781912656019", byTag["020"][1].subfields[0].value)

	require.Len(t, byTag["024"], 1)
	assert.Equal(t, "10.21983/rc.2023", byTag["024"][0].subfields[0].value)
	assert.Equal(t, "doi", byTag["024"][0].subfields[1].value)

	require.Len(t, byTag["050"], 1)
	assert.Equal(t, "HB501", byTag["050"][0].subfields[0].value)

	require.Len(t, byTag["100"], 1)
	assert.Equal(t, "Quill, Ada", byTag["100"][0].subfields[0].value)

	require.Len(t, byTag["245"], 1)
	f245 := byTag["245"][0]
	assert.Equal(t, byte('1'), f245.ind1)
	assert.Equal(t, "Regimes of Capital :", f245.subfields[0].value)
	assert.Equal(t, "A Global History /", f245.subfields[1].value)
	assert.Equal(t, "Ada Quill, Ben Marsh.", f245.subfields[2].value)

	require.Len(t, byTag["264"], 1)
	assert.Equal(t, "London, UK :", byTag["264"][0].subfields[0].value)
	assert.Equal(t, "Example Press,", byTag["264"][0].subfields[1].value)
	assert.Equal(t, "2023.", byTag["264"][0].subfields[2].value)

	require.Len(t, byTag["490"], 1)
	assert.Equal(t, "Global Histories", byTag["490"][0].subfields[0].value)
	assert.Equal(t, "8765-4321", byTag["490"][0].subfields[1].value)
	assert.Equal(t, "3", byTag["490"][0].subfields[2].value)

	// OA license fields
	require.Len(t, byTag["506"], 1)
	require.Len(t, byTag["540"], 1)

	// BIC goes to 650 _7, keyword to 653
	require.Len(t, byTag["650"], 1)
	assert.Equal(t, "bicssc", byTag["650"][0].subfields[1].value)
	require.Len(t, byTag["653"], 1)
	assert.Equal(t, "capital", byTag["653"][0].subfields[0].value)

	// editor lands in 700 with relator, main author does not repeat
	require.Len(t, byTag["700"], 1)
	assert.Equal(t, "Marsh, Ben", byTag["700"][0].subfields[0].value)
	assert.Equal(t, "edt", byTag["700"][0].subfields[1].value)

	require.Len(t, byTag["856"], 2)
	assert.Equal(t, "https://doi.org/10.21983/rc.2023", byTag["856"][0].subfields[0].value)
	assert.Equal(t, byte('2'), byTag["856"][1].ind2)
}

func TestField008(t *testing.T) {
	work := testutil.TestWork()

	got := field008(&work)

	require.Len(t, got, 40)
	assert.Equal(t, "240218", got[0:6], "date entered from update timestamp")
	assert.Equal(t, byte('s'), got[6])
	assert.Equal(t, "2023", got[7:11])
	assert.Equal(t, "xx ", got[15:18])
	assert.Equal(t, byte('o'), got[23])
	assert.Equal(t, "eng", got[35:38])
	assert.Equal(t, byte('d'), got[39])
}

func TestRecordEncoderBinaryStructure(t *testing.T) {
	work := testutil.TestWork()

	out, err := NewRecord().Encode([]model.Work{work})
	require.NoError(t, err)

	assert.Equal(t, byte(0x1d), out[len(out)-1], "record terminator")

	total, err := strconv.Atoi(string(out[0:5]))
	require.NoError(t, err)
	assert.Equal(t, len(out), total, "leader holds the record length")

	base, err := strconv.Atoi(string(out[12:17]))
	require.NoError(t, err)
	assert.Equal(t, byte(0x1e), out[base-1], "directory ends with a field terminator")

	assert.Equal(t, "nam", string(out[5:8]))

	// first directory entry points at field 001
	assert.Equal(t, "001", string(out[24:27]))

	assert.Equal(t, 1, bytes.Count(out, []byte{0x1d}))
}

func TestRecordEncoderConcatenatesRecords(t *testing.T) {
	works := []model.Work{testutil.TestWork(), testutil.TestWork()}

	out, err := NewRecord().Encode(works)
	require.NoError(t, err)
	assert.Equal(t, 2, bytes.Count(out, []byte{0x1d}))
}

func TestMarkupEncoder(t *testing.T) {
	work := testutil.TestWork()

	out, err := NewMarkup().Encode([]model.Work{work})
	require.NoError(t, err)
	text := string(out)

	assert.True(t, strings.HasPrefix(text, "=LDR  00000nam a2200000 i 4500\n"))
	assert.Contains(t, text, "=001  "+work.WorkID.String()+"\n")
	// control field blanks render as backslashes
	assert.Contains(t, text, `=007  cr\\n`)
	assert.NotContains(t, text, "=007  cr  n")
	assert.Contains(t, text, `=245  10$aRegimes of Capital :$bA Global History /$cAda Quill, Ben Marsh.`)
	assert.Contains(t, text, `=700  1\$aMarsh, Ben$4edt`)
}

func TestMarkupEncoderSeparatesRecords(t *testing.T) {
	works := []model.Work{testutil.TestWork(), testutil.TestWork()}

	out, err := NewMarkup().Encode(works)
	require.NoError(t, err)
	assert.Contains(t, string(out), "\n\n=LDR")
}

func TestXMLEncoder(t *testing.T) {
	work := testutil.TestWork()

	out, err := NewXML().Encode([]model.Work{work})
	require.NoError(t, err)

	var collection xmlCollection
	require.NoError(t, xml.Unmarshal(out, &collection))

	assert.Equal(t, "http://www.loc.gov/MARC21/slim", collection.Namespace)
	require.Len(t, collection.Records, 1)

	record := collection.Records[0]
	assert.Equal(t, "00000nam a2200000 i 4500", record.Leader)
	require.NotEmpty(t, record.ControlFields)
	assert.Equal(t, "001", record.ControlFields[0].Tag)
	assert.Equal(t, work.WorkID.String(), record.ControlFields[0].Value)

	var f245 *xmlDataField
	for i := range record.DataFields {
		if record.DataFields[i].Tag == "245" {
			f245 = &record.DataFields[i]
		}
	}
	require.NotNil(t, f245)
	assert.Equal(t, "1", f245.Ind1)
	assert.Equal(t, "0", f245.Ind2)
	assert.Equal(t, "a", f245.Subfields[0].Code)
}

func TestEncodersShareFieldContent(t *testing.T) {
	work := testutil.TestWork()

	markup, err := NewMarkup().Encode([]model.Work{work})
	require.NoError(t, err)
	binary, err := NewRecord().Encode([]model.Work{work})
	require.NoError(t, err)

	// the same 856 URL must appear in both encodings
	assert.Contains(t, string(markup), "https://doi.org/10.21983/rc.2023")
	assert.Contains(t, string(binary), "https://doi.org/10.21983/rc.2023")
}

func TestEncodeDeterministic(t *testing.T) {
	works := []model.Work{testutil.TestWork()}

	for _, enc := range []interface {
		Encode([]model.Work) ([]byte, error)
	}{NewRecord(), NewMarkup(), NewXML()} {
		first, err := enc.Encode(works)
		require.NoError(t, err)
		second, err := enc.Encode(works)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	}
}
