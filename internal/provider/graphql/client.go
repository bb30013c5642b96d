// Package graphql implements the work provider against the Thoth GraphQL API.
package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/brendan-oconnell/thoth/internal/model"
	"github.com/brendan-oconnell/thoth/internal/provider"
)

// maxAttempts bounds the retry loop around each upstream call.
const maxAttempts = 5

// Client fetches canonical aggregates over the GraphQL endpoint. Transient
// failures (transport errors, 429, 5xx) retry with exponential backoff up to
// maxAttempts; everything else fails immediately.
type Client struct {
	httpClient *http.Client
	endpoint   string
	limiter    *rate.Limiter
	// backoffUnit scales the retry delays; tests shrink it.
	backoffUnit time.Duration
}

// NewClient builds a client for the given GraphQL endpoint, limited to rps
// requests per second upstream.
func NewClient(endpoint string, rps int) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		endpoint:    endpoint,
		limiter:     rate.NewLimiter(rate.Every(time.Second/time.Duration(rps)), 1),
		backoffUnit: time.Second,
	}
}

type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// GetWork fetches one aggregate by identity.
func (c *Client) GetWork(ctx context.Context, workID uuid.UUID) (model.Work, error) {
	var data struct {
		Work *workResponse `json:"work"`
	}
	err := c.post(ctx, workQuery, map[string]any{"workId": workID.String()}, &data)
	if err != nil {
		return model.Work{}, err
	}
	if data.Work == nil {
		return model.Work{}, model.ErrNotFound
	}
	work, err := data.Work.toModel()
	if err != nil {
		return model.Work{}, &provider.MalformedResponseError{Err: err}
	}
	return work, nil
}

// GetWorks fetches a page of aggregates owned by one publisher. The upstream
// query orders by last-update timestamp then id, keeping pages stable under
// concurrent writes.
func (c *Client) GetWorks(ctx context.Context, publisherID uuid.UUID, limit, offset int) ([]model.Work, error) {
	var data struct {
		Works []workResponse `json:"works"`
	}
	variables := map[string]any{
		"publishers": []string{publisherID.String()},
		"limit":      limit,
		"offset":     offset,
	}
	if err := c.post(ctx, worksQuery, variables, &data); err != nil {
		return nil, err
	}
	works := make([]model.Work, 0, len(data.Works))
	for i := range data.Works {
		work, err := data.Works[i].toModel()
		if err != nil {
			return nil, &provider.MalformedResponseError{Err: err}
		}
		works = append(works, work)
	}
	return works, nil
}

// GetWorkLastUpdated fetches a work's last-update timestamp.
func (c *Client) GetWorkLastUpdated(ctx context.Context, workID uuid.UUID) (time.Time, error) {
	var data struct {
		Work *struct {
			UpdatedAt string `json:"updatedAtWithRelations"`
		} `json:"work"`
	}
	err := c.post(ctx, workLastUpdatedQuery, map[string]any{"workId": workID.String()}, &data)
	if err != nil {
		return time.Time{}, err
	}
	if data.Work == nil {
		return time.Time{}, model.ErrNotFound
	}
	t, err := parseTimestamp(data.Work.UpdatedAt)
	if err != nil {
		return time.Time{}, &provider.MalformedResponseError{Err: err}
	}
	return t, nil
}

// GetWorksLastUpdated fetches the most recent update timestamp across a
// publisher's works.
func (c *Client) GetWorksLastUpdated(ctx context.Context, publisherID uuid.UUID) (time.Time, error) {
	var data struct {
		Works []struct {
			UpdatedAt string `json:"updatedAtWithRelations"`
		} `json:"works"`
	}
	variables := map[string]any{"publishers": []string{publisherID.String()}}
	if err := c.post(ctx, worksLastUpdatedQuery, variables, &data); err != nil {
		return time.Time{}, err
	}
	if len(data.Works) == 0 {
		return time.Time{}, model.ErrNotFound
	}
	t, err := parseTimestamp(data.Works[0].UpdatedAt)
	if err != nil {
		return time.Time{}, &provider.MalformedResponseError{Err: err}
	}
	return t, nil
}

func (c *Client) post(ctx context.Context, query string, variables map[string]any, target any) error {
	body, err := json.Marshal(graphqlRequest{Query: query, Variables: variables})
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			// Backoff: 1s, 2s, 4s...
			backoff := time.Duration(1<<uint(attempt-2)) * c.backoffUnit
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			lastErr = err
			continue
		}

		done, err := c.handleResponse(resp, target)
		if done {
			return err
		}
		lastErr = err
	}
	return &provider.UnavailableError{Attempts: maxAttempts, Err: lastErr}
}

// handleResponse consumes one HTTP response. done=false means the failure is
// transient and the caller may retry.
func (c *Client) handleResponse(resp *http.Response, target any) (done bool, err error) {
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		statusErr := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return false, statusErr
		}
		return true, &provider.MalformedResponseError{Err: statusErr}
	}

	var envelope graphqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return true, &provider.MalformedResponseError{Err: err}
	}
	if envelope.Data == nil {
		if len(envelope.Errors) > 0 {
			return true, &provider.MalformedResponseError{Err: fmt.Errorf("graphql: %s", envelope.Errors[0].Message)}
		}
		return true, model.ErrNotFound
	}
	if err := json.Unmarshal(envelope.Data, target); err != nil {
		return true, &provider.MalformedResponseError{Err: err}
	}
	return true, nil
}
