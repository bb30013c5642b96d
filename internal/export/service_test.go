package export_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brendan-oconnell/thoth/internal/export"
	"github.com/brendan-oconnell/thoth/internal/model"
	"github.com/brendan-oconnell/thoth/internal/provider"
	"github.com/brendan-oconnell/thoth/internal/specs"
	"github.com/brendan-oconnell/thoth/internal/testutil"
)

func newService(t *testing.T) (*export.Service, *provider.MockWorkProvider) {
	t.Helper()
	registry, err := specs.NewRegistry()
	require.NoError(t, err)
	ctrl := gomock.NewController(t)
	works := provider.NewMockWorkProvider(ctrl)
	return export.NewService(registry, works), works
}

func kindOf(t *testing.T, err error) export.Kind {
	t.Helper()
	var exportErr *export.Error
	require.ErrorAs(t, err, &exportErr)
	return exportErr.Kind
}

func TestExportWork(t *testing.T) {
	svc, works := newService(t)
	work := testutil.TestWork()
	works.EXPECT().GetWork(gomock.Any(), testutil.TestWorkID).Return(work, nil)

	out, err := svc.ExportWork(context.Background(), "csv::thoth", testutil.TestWorkID)
	require.NoError(t, err)

	assert.Equal(t, "csv::thoth", out.SpecificationID)
	assert.Equal(t, "text/csv", out.ContentType)
	assert.Equal(t, fmt.Sprintf("csv__thoth__%s.csv", testutil.TestWorkID), out.FileName)
	assert.Equal(t, work.UpdatedAt, out.LastUpdated)
	assert.Contains(t, string(out.Bytes), "Regimes of Capital")
}

func TestExportWorkUnsupportedDialect(t *testing.T) {
	svc, works := newService(t)
	// no EXPECT: an unknown specification must fail before any upstream call
	_ = works

	_, err := svc.ExportWork(context.Background(), "onix_3.0::amazon", testutil.TestWorkID)
	assert.Equal(t, export.KindUnsupportedDialect, kindOf(t, err))
}

func TestExportWorkNotFound(t *testing.T) {
	svc, works := newService(t)
	works.EXPECT().GetWork(gomock.Any(), testutil.TestWorkID).Return(model.Work{}, model.ErrNotFound)

	_, err := svc.ExportWork(context.Background(), "csv::thoth", testutil.TestWorkID)
	assert.Equal(t, export.KindNotFound, kindOf(t, err))
}

func TestExportWorkUpstreamUnavailable(t *testing.T) {
	svc, works := newService(t)
	works.EXPECT().GetWork(gomock.Any(), testutil.TestWorkID).
		Return(model.Work{}, &provider.UnavailableError{Attempts: 5, Err: errors.New("status 502")})

	_, err := svc.ExportWork(context.Background(), "csv::thoth", testutil.TestWorkID)
	assert.Equal(t, export.KindUpstreamUnavailable, kindOf(t, err))
}

func TestExportWorkMalformedUpstreamResponse(t *testing.T) {
	svc, works := newService(t)
	works.EXPECT().GetWork(gomock.Any(), testutil.TestWorkID).
		Return(model.Work{}, &provider.MalformedResponseError{Err: errors.New("invalid character")})

	_, err := svc.ExportWork(context.Background(), "csv::thoth", testutil.TestWorkID)
	assert.Equal(t, export.KindMalformedUpstreamResponse, kindOf(t, err))
}

func TestExportWorkValidationFailed(t *testing.T) {
	svc, works := newService(t)
	// a forthcoming draft has no publication date or publications, which the
	// ONIX dialects require
	works.EXPECT().GetWork(gomock.Any(), gomock.Any()).Return(testutil.MinimalWork(), nil)

	_, err := svc.ExportWork(context.Background(), "onix_3.0::thoth", testutil.TestWorkID)

	var exportErr *export.Error
	require.ErrorAs(t, err, &exportErr)
	assert.Equal(t, export.KindValidationFailed, exportErr.Kind)
	assert.Contains(t, exportErr.Fields, "publication_date")
	assert.Contains(t, exportErr.Fields, "publications[].isbn")
}

func TestExportWorkRejectsInvalidAggregate(t *testing.T) {
	svc, works := newService(t)
	work := testutil.TestWork()
	// a second main original language breaks the aggregate's invariants
	work.Languages = append(work.Languages, model.Language{
		LanguageCode:     "fra",
		LanguageRelation: model.RelationOriginal,
		MainLanguage:     true,
	})
	works.EXPECT().GetWork(gomock.Any(), testutil.TestWorkID).Return(work, nil)

	_, err := svc.ExportWork(context.Background(), "csv::thoth", testutil.TestWorkID)
	assert.Equal(t, export.KindMalformedUpstreamResponse, kindOf(t, err))
}

func TestExportPublisher(t *testing.T) {
	svc, works := newService(t)
	first := testutil.TestWork()
	second := testutil.TestWork()
	second.WorkID = testutil.MinimalWork().WorkID
	second.UpdatedAt = first.UpdatedAt.AddDate(0, 1, 0)
	works.EXPECT().GetWorks(gomock.Any(), testutil.TestPublisherID, 100, 0).
		Return([]model.Work{first, second}, nil)

	out, err := svc.ExportPublisher(context.Background(), "kbart::oclc", testutil.TestPublisherID, 0, 0)
	require.NoError(t, err)

	assert.Equal(t, "kbart::oclc", out.SpecificationID)
	assert.Equal(t, fmt.Sprintf("kbart__oclc__%s.txt", testutil.TestPublisherID), out.FileName)
	// the page's newest work drives the caching timestamp
	assert.Equal(t, second.UpdatedAt, out.LastUpdated)
}

func TestExportPublisherPageBounds(t *testing.T) {
	svc, _ := newService(t)

	for _, tt := range []struct{ limit, offset int }{
		{limit: -1}, {limit: export.MaxPageSize + 1}, {limit: 10, offset: -1},
	} {
		_, err := svc.ExportPublisher(context.Background(), "csv::thoth", testutil.TestPublisherID, tt.limit, tt.offset)
		assert.Equal(t, export.KindInvalidRequest, kindOf(t, err), "limit=%d offset=%d", tt.limit, tt.offset)
	}
}

func TestExportPublisherEmptyPage(t *testing.T) {
	svc, works := newService(t)
	works.EXPECT().GetWorks(gomock.Any(), testutil.TestPublisherID, 5, 50).Return(nil, nil)

	_, err := svc.ExportPublisher(context.Background(), "csv::thoth", testutil.TestPublisherID, 5, 50)
	assert.Equal(t, export.KindNotFound, kindOf(t, err))
}

func TestExportWorkDeterministic(t *testing.T) {
	svc, works := newService(t)
	works.EXPECT().GetWork(gomock.Any(), testutil.TestWorkID).
		DoAndReturn(func(context.Context, interface{}) (model.Work, error) {
			return testutil.TestWork(), nil
		}).AnyTimes()

	const goroutines = 8
	outputs := make([][]byte, goroutines)
	var wg sync.WaitGroup
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			out, err := svc.ExportWork(context.Background(), "onix_3.0::thoth", testutil.TestWorkID)
			assert.NoError(t, err)
			outputs[i] = out.Bytes
		}(i)
	}
	wg.Wait()

	for i := 1; i < goroutines; i++ {
		assert.Equal(t, outputs[0], outputs[i])
	}
}
