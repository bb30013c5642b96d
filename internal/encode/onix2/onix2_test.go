package onix2

import (
	"encoding/xml"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
	"github.com/brendan-oconnell/thoth/internal/testutil"
)

func TestVerifyMappings(t *testing.T) {
	assert.NoError(t, VerifyMappings())
}

func decodeMessage(t *testing.T, out []byte) onixMessage {
	t.Helper()
	var msg onixMessage
	require.NoError(t, xml.Unmarshal(out, &msg))
	return msg
}

func TestEncodeEBSCOHost(t *testing.T) {
	work := testutil.TestWork()

	out, err := NewEBSCOHost().Encode([]model.Work{work})
	require.NoError(t, err)

	msg := decodeMessage(t, out)
	assert.Equal(t, "Example University Press", msg.Header.FromCompany)
	assert.Equal(t, "20240218", msg.Header.SentDate)

	// only the digital edition becomes a product
	require.Len(t, msg.Products, 1)
	p := msg.Products[0]
	assert.Equal(t, "urn:uuid:"+work.WorkID.String()+":9781912656019", p.RecordReference)
	assert.Equal(t, "DG", p.ProductForm)
	assert.Equal(t, "002", p.EpubType)
	assert.Equal(t, "04", p.PublishingStatus)
	assert.Equal(t, "20230512", p.PublicationDate)

	require.Len(t, p.ProductIdentifiers, 2)
	assert.Equal(t, "15", p.ProductIdentifiers[0].ProductIDType)
	assert.Equal(t, "9781912656019", p.ProductIdentifiers[0].IDValue)
	assert.Equal(t, "06", p.ProductIdentifiers[1].ProductIDType)
	// DOI identifiers carry the bare DOI, not the resolver URL
	assert.Equal(t, "10.21983/rc.2023", p.ProductIdentifiers[1].IDValue)

	require.Len(t, p.Series, 1)
	assert.Equal(t, "Global Histories", p.Series[0].TitleOfSeries)
	assert.Equal(t, "3", p.Series[0].NumberWithinSeries)

	require.Len(t, p.Contributors, 2)
	assert.Equal(t, "A01", p.Contributors[0].ContributorRole)
	assert.Equal(t, "B01", p.Contributors[1].ContributorRole)
}

func TestEncodeProQuestEbraryOmitsSeries(t *testing.T) {
	work := testutil.TestWork()

	out, err := NewProQuestEbrary().Encode([]model.Work{work})
	require.NoError(t, err)

	msg := decodeMessage(t, out)
	require.Len(t, msg.Products, 1)
	assert.Empty(t, msg.Products[0].Series)
}

func TestEncodeEpubTypeVariants(t *testing.T) {
	tests := []struct {
		pubType model.PublicationType
		want    string
	}{
		{model.PublicationPDF, "002"},
		{model.PublicationHTML, "010"},
		{model.PublicationXML, "011"},
		{model.PublicationEpub, "029"},
		{model.PublicationMobi, "022"},
	}

	for _, tt := range tests {
		t.Run(string(tt.pubType), func(t *testing.T) {
			work := testutil.TestWork()
			work.Publications = []model.Publication{
				{PublicationType: tt.pubType, ISBN: "978-1-912656-01-9"},
			}

			out, err := NewEBSCOHost().Encode([]model.Work{work})
			require.NoError(t, err)

			msg := decodeMessage(t, out)
			require.Len(t, msg.Products, 1)
			assert.Equal(t, tt.want, msg.Products[0].EpubType)
		})
	}
}

func TestEncodeFailsWithoutDigitalEdition(t *testing.T) {
	work := testutil.TestWork()
	work.Publications = []model.Publication{
		{PublicationType: model.PublicationHardback, ISBN: "978-1-912656-02-6"},
	}

	_, err := NewEBSCOHost().Encode([]model.Work{work})
	var validation *encode.ValidationError
	require.ErrorAs(t, err, &validation)
	assert.Equal(t, "onix_2.1::ebsco_host", validation.Dialect)
	assert.Equal(t, []string{"publications"}, validation.Fields)
}

func TestEncodeDeterministic(t *testing.T) {
	works := []model.Work{testutil.TestWork()}

	first, err := NewEBSCOHost().Encode(works)
	require.NoError(t, err)
	second, err := NewEBSCOHost().Encode(works)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
