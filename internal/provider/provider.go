// Package provider defines the read-only port onto the canonical metadata
// store. Implementations live in subpackages; the export coordinator depends
// only on this interface.
package provider

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/brendan-oconnell/thoth/internal/model"
)

// WorkProvider fetches canonical aggregates from the upstream metadata store.
// Page results are ordered by last-update timestamp (descending) then work id,
// so pagination stays deterministic under concurrent upstream writes.
type WorkProvider interface {
	GetWork(ctx context.Context, workID uuid.UUID) (model.Work, error)
	GetWorks(ctx context.Context, publisherID uuid.UUID, limit, offset int) ([]model.Work, error)
	GetWorkLastUpdated(ctx context.Context, workID uuid.UUID) (time.Time, error)
	GetWorksLastUpdated(ctx context.Context, publisherID uuid.UUID) (time.Time, error)
}

// UnavailableError reports a transient upstream failure that persisted through
// the whole retry budget.
type UnavailableError struct {
	Attempts int
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("upstream unavailable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// MalformedResponseError reports an upstream response that could not be
// interpreted. It signals a contract violation and is never retried.
type MalformedResponseError struct {
	Err error
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed upstream response: %v", e.Err)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
