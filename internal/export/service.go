package export

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brendan-oconnell/thoth/internal/encode"
	"github.com/brendan-oconnell/thoth/internal/model"
	"github.com/brendan-oconnell/thoth/internal/provider"
	"github.com/brendan-oconnell/thoth/internal/specs"
)

const (
	// MaxPageSize caps a publisher export page.
	MaxPageSize     = 100
	defaultPageSize = 100
)

// Output is one finished export.
type Output struct {
	SpecificationID string
	Bytes           []byte
	ContentType     string
	FileName        string
	LastUpdated     time.Time
}

// Service runs exports against a registry of dialects and one work provider.
type Service struct {
	registry *specs.Registry
	works    provider.WorkProvider
}

// NewService wires the coordinator.
func NewService(registry *specs.Registry, works provider.WorkProvider) *Service {
	return &Service{registry: registry, works: works}
}

// ExportWork exports a single work in the given specification. The dialect is
// resolved before any upstream call, so an unknown specification fails fast
// without network I/O.
func (s *Service) ExportWork(ctx context.Context, specificationID string, workID uuid.UUID) (Output, error) {
	desc, err := s.registry.ResolveID(specificationID)
	if err != nil {
		return Output{}, classify(err)
	}
	work, err := s.works.GetWork(ctx, workID)
	if err != nil {
		return Output{}, classify(err)
	}
	return s.encode(desc, []model.Work{work}, workID.String(), work.UpdatedAt)
}

// ExportPublisher exports one page of a publisher's works. limit must be in
// [1, MaxPageSize] and offset non-negative; limit 0 means the default page
// size.
func (s *Service) ExportPublisher(ctx context.Context, specificationID string, publisherID uuid.UUID, limit, offset int) (Output, error) {
	if limit == 0 {
		limit = defaultPageSize
	}
	if limit < 1 || limit > MaxPageSize {
		return Output{}, &Error{
			Kind: KindInvalidRequest,
			err:  fmt.Errorf("limit must be between 1 and %d, got %d", MaxPageSize, limit),
		}
	}
	if offset < 0 {
		return Output{}, &Error{
			Kind: KindInvalidRequest,
			err:  fmt.Errorf("offset must not be negative, got %d", offset),
		}
	}
	desc, err := s.registry.ResolveID(specificationID)
	if err != nil {
		return Output{}, classify(err)
	}
	works, err := s.works.GetWorks(ctx, publisherID, limit, offset)
	if err != nil {
		return Output{}, classify(err)
	}
	if len(works) == 0 {
		return Output{}, classify(model.ErrNotFound)
	}
	latest := works[0].UpdatedAt
	for _, w := range works[1:] {
		if w.UpdatedAt.After(latest) {
			latest = w.UpdatedAt
		}
	}
	return s.encode(desc, works, publisherID.String(), latest)
}

func (s *Service) encode(desc specs.Descriptor, works []model.Work, name string, lastUpdated time.Time) (Output, error) {
	for i := range works {
		// a fetched aggregate that breaks the model's structural invariants
		// is an upstream defect, not a dialect validation failure
		if err := works[i].Validate(); err != nil {
			return Output{}, classify(&provider.MalformedResponseError{Err: err})
		}
		if err := desc.CheckMandatoryFields(&works[i]); err != nil {
			return Output{}, classify(err)
		}
	}
	data, err := desc.Encoder.Encode(works)
	if err != nil {
		return Output{}, classify(err)
	}
	return Output{
		SpecificationID: desc.ID(),
		Bytes:           data,
		ContentType:     desc.ContentType,
		FileName:        fmt.Sprintf("%s__%s%s", strings.ReplaceAll(desc.ID(), "::", "__"), name, desc.Extension),
		LastUpdated:     lastUpdated,
	}, nil
}

// classify folds provider, registry, and encoder failures into the closed
// taxonomy.
func classify(err error) *Error {
	var exportErr *Error
	if errors.As(err, &exportErr) {
		return exportErr
	}
	if errors.Is(err, model.ErrNotFound) {
		return &Error{Kind: KindNotFound, err: err}
	}
	var unsupported *specs.UnsupportedDialectError
	if errors.As(err, &unsupported) {
		return &Error{Kind: KindUnsupportedDialect, err: err}
	}
	var validation *encode.ValidationError
	if errors.As(err, &validation) {
		return &Error{Kind: KindValidationFailed, Fields: validation.Fields, err: err}
	}
	var unavailable *provider.UnavailableError
	if errors.As(err, &unavailable) {
		return &Error{Kind: KindUpstreamUnavailable, err: err}
	}
	var malformed *provider.MalformedResponseError
	if errors.As(err, &malformed) {
		return &Error{Kind: KindMalformedUpstreamResponse, err: err}
	}
	return &Error{err: fmt.Errorf("%w: %v", ErrInternal, err)}
}
