package specs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/testutil"
)

var allSpecificationIDs = []string{
	"onix_3.0::thoth",
	"onix_3.0::project_muse",
	"onix_3.0::oapen",
	"onix_3.0::jstor",
	"onix_3.0::google_books",
	"onix_3.0::overdrive",
	"onix_2.1::ebsco_host",
	"onix_2.1::proquest_ebrary",
	"csv::thoth",
	"json::thoth",
	"kbart::oclc",
	"bibtex::thoth",
	"doideposit::crossref",
	"marc21record::thoth",
	"marc21markup::thoth",
	"marc21xml::thoth",
}

func TestNewRegistryRegistersEverySpecification(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	list := r.List()
	require.Len(t, list, len(allSpecificationIDs))
	for i, id := range allSpecificationIDs {
		assert.Equal(t, id, list[i].ID())
	}
	for _, d := range list {
		assert.NotEmpty(t, d.ContentType, d.ID())
		assert.NotEmpty(t, d.Extension, d.ID())
		assert.NotNil(t, d.Encoder, d.ID())
		assert.NotNil(t, d.Requires, d.ID())
	}
}

func TestRegistryRejectsDuplicates(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	err = r.add(Descriptor{Family: FamilyCSV, Dialect: "thoth"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate specification csv::thoth")
}

func TestResolve(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	t.Run("known pair", func(t *testing.T) {
		d, err := r.Resolve(FamilyOnix30, "project_muse")
		require.NoError(t, err)
		assert.Equal(t, "onix_3.0::project_muse", d.ID())
		assert.Equal(t, "text/xml", d.ContentType)
	})

	t.Run("unknown dialect", func(t *testing.T) {
		_, err := r.Resolve(FamilyOnix30, "nonexistent")
		var unsupported *UnsupportedDialectError
		require.ErrorAs(t, err, &unsupported)
		assert.Equal(t, "onix_3.0", unsupported.Family)
		assert.Equal(t, "nonexistent", unsupported.Dialect)
	})

	t.Run("by id", func(t *testing.T) {
		d, err := r.ResolveID("kbart::oclc")
		require.NoError(t, err)
		assert.Equal(t, FamilyKBART, d.Family)
	})

	t.Run("id without separator", func(t *testing.T) {
		_, err := r.ResolveID("kbart")
		var unsupported *UnsupportedDialectError
		require.ErrorAs(t, err, &unsupported)
	})
}

func TestCheckMandatoryFields(t *testing.T) {
	r, err := NewRegistry()
	require.NoError(t, err)

	t.Run("complete work passes everywhere", func(t *testing.T) {
		work := testutil.TestWork()
		for _, d := range r.List() {
			assert.NoError(t, d.CheckMandatoryFields(&work), d.ID())
		}
	})

	t.Run("onix rejects missing publication date", func(t *testing.T) {
		work := testutil.TestWork()
		work.PublicationDate = nil

		d, err := r.ResolveID("onix_3.0::thoth")
		require.NoError(t, err)

		checkErr := d.CheckMandatoryFields(&work)
		var validation *encode.ValidationError
		require.ErrorAs(t, checkErr, &validation)
		assert.Equal(t, "onix_3.0::thoth", validation.Dialect)
		assert.Equal(t, []string{"publication_date"}, validation.Fields)
	})

	t.Run("csv accepts minimal work", func(t *testing.T) {
		work := testutil.MinimalWork()
		d, err := r.ResolveID("csv::thoth")
		require.NoError(t, err)
		assert.NoError(t, d.CheckMandatoryFields(&work))
	})

	t.Run("crossref lists every missing field", func(t *testing.T) {
		work := testutil.MinimalWork()
		d, err := r.ResolveID("doideposit::crossref")
		require.NoError(t, err)

		checkErr := d.CheckMandatoryFields(&work)
		var validation *encode.ValidationError
		require.ErrorAs(t, checkErr, &validation)
		assert.ElementsMatch(t,
			[]string{"doi", "publication_date", "contributions[type=author]"},
			validation.Fields)
	})

	t.Run("marc requires exactly one main language", func(t *testing.T) {
		work := testutil.TestWork()
		work.Languages = nil

		d, err := r.ResolveID("marc21record::thoth")
		require.NoError(t, err)

		checkErr := d.CheckMandatoryFields(&work)
		var validation *encode.ValidationError
		require.ErrorAs(t, checkErr, &validation)
		assert.Contains(t, validation.Fields, "languages[main_language]")
	})

	t.Run("oapen requires a license", func(t *testing.T) {
		work := testutil.TestWork()
		work.License = ""

		d, err := r.ResolveID("onix_3.0::oapen")
		require.NoError(t, err)

		checkErr := d.CheckMandatoryFields(&work)
		var validation *encode.ValidationError
		require.True(t, errors.As(checkErr, &validation))
		assert.Equal(t, []string{"license"}, validation.Fields)
	})
}
