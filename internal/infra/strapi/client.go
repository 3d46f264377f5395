package strapi

import (
	"context"
	"encoding/json"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"jobnagringa-content-api/internal/domain"
)

// DefaultMaxPages bounds fetch-all loops so a lying backend cannot keep the
// sync running forever.
const DefaultMaxPages = 100

// Config holds CMS client configuration.
type Config struct {
	BaseURL  string
	Token    string
	Timeout  time.Duration
	MaxPages int
	PageSize int
	Retry    RetryConfig
	CB       CBConfig
}

// RetryConfig holds retry configuration.
type RetryConfig struct {
	MaxAttempts int
	WaitTime    time.Duration
	MaxWaitTime time.Duration
}

// CBConfig holds circuit breaker configuration.
type CBConfig struct {
	MaxRequests  uint32
	Interval     time.Duration
	Timeout      time.Duration
	FailureRatio float64
}

// Client talks to the headless CMS over HTTP with retries and a circuit
// breaker. Requests run sequentially; there is no concurrent fan-out.
type Client struct {
	http     *resty.Client
	cb       *gobreaker.CircuitBreaker[*resty.Response]
	logger   *zap.Logger
	maxPages int
	pageSize int
}

// New creates a new CMS client.
func New(cfg Config, logger *zap.Logger) *Client {
	http := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.Retry.MaxAttempts).
		SetRetryWaitTime(cfg.Retry.WaitTime).
		SetRetryMaxWaitTime(cfg.Retry.MaxWaitTime).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			// Retry on network errors or 5xx status codes
			if err != nil {
				return true
			}

			return r.StatusCode() >= 500
		})
	if cfg.Token != "" {
		http.SetAuthToken(cfg.Token)
	}

	settings := gobreaker.Settings{
		Name:        "strapi",
		MaxRequests: cfg.CB.MaxRequests,
		Interval:    cfg.CB.Interval,
		Timeout:     cfg.CB.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)

			return counts.Requests >= 3 && failureRatio >= cfg.CB.FailureRatio
		},
	}

	maxPages := cfg.MaxPages
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}

	return &Client{
		http:     http,
		cb:       gobreaker.NewCircuitBreaker[*resty.Response](settings),
		logger:   logger,
		maxPages: maxPages,
		pageSize: pageSize,
	}
}

// HTTPClient exposes the underlying resty client (used by tests to install
// mock transports).
func (c *Client) HTTPClient() *resty.Client {
	return c.http
}

// FetchCollection requests one page of a collection and flattens each
// returned document.
func (c *Client) FetchCollection(ctx context.Context, collection domain.Collection, q Query) (*CollectionResult, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		var result Response
		r, err := c.http.R().
			SetContext(ctx).
			SetQueryParamsFromValues(q.Values()).
			SetResult(&result).
			Get("/api/" + string(collection))
		if err != nil {
			return nil, &FetchError{Collection: collection, Err: err}
		}
		if r.IsError() {
			return nil, &FetchError{Collection: collection, StatusCode: r.StatusCode()}
		}

		return r, nil
	})
	if err != nil {
		c.logger.Warn("cms fetch failed",
			zap.String("collection", string(collection)),
			zap.String("breaker", c.cb.State().String()),
			zap.Error(err),
		)

		return nil, err
	}

	result := resp.Result().(*Response)
	entries := make([]domain.Entry, 0, len(result.Data))
	for _, raw := range result.Data {
		entry, err := flattenDocument(collection, raw)
		if err != nil {
			return nil, &FetchError{Collection: collection, Err: err}
		}
		entries = append(entries, entry)
	}

	c.logger.Debug("cms fetch completed",
		zap.String("collection", string(collection)),
		zap.Int("count", len(entries)),
		zap.Int("total", result.Meta.Pagination.Total),
	)

	return &CollectionResult{Entries: entries, Pagination: result.Meta.Pagination}, nil
}

// FetchCollectionOrEmpty never fails: any network or parsing error is logged
// and masked by a well-formed empty result with zeroed pagination metadata
// and Degraded set. A degraded/empty list is preferable to a crashed page.
func (c *Client) FetchCollectionOrEmpty(ctx context.Context, collection domain.Collection, q Query) *CollectionResult {
	result, err := c.FetchCollection(ctx, collection, q)
	if err != nil {
		c.logger.Error("cms fetch degraded to empty result",
			zap.String("collection", string(collection)),
			zap.Error(err),
		)

		return emptyResult(true)
	}

	return result
}

// FetchAll walks a collection page by page, awaiting each request before
// issuing the next, and concatenates the results. The loop stops when the
// remote pagination reports no further pages or the max-pages bound is hit.
func (c *Client) FetchAll(ctx context.Context, collection domain.Collection, q Query) ([]domain.Entry, error) {
	if q.Pagination.PageSize <= 0 {
		q.Pagination.PageSize = c.pageSize
	}

	var entries []domain.Entry
	for page := 1; page <= c.maxPages; page++ {
		q.Pagination.Page = page

		result, err := c.FetchCollection(ctx, collection, q)
		if err != nil {
			return nil, err
		}
		entries = append(entries, result.Entries...)

		if result.Pagination.PageCount <= page || len(result.Entries) == 0 {
			return entries, nil
		}
	}

	c.logger.Warn("fetch-all hit the page safety limit",
		zap.String("collection", string(collection)),
		zap.Int("max_pages", c.maxPages),
		zap.Int("collected", len(entries)),
	)

	return entries, nil
}

// GetByID retrieves a single document. Returns nil when absent; a missing
// entry is not an error.
func (c *Client) GetByID(ctx context.Context, collection domain.Collection, documentID string) (*domain.Entry, error) {
	resp, err := c.cb.Execute(func() (*resty.Response, error) {
		r, err := c.http.R().
			SetContext(ctx).
			Get("/api/" + string(collection) + "/" + documentID)
		if err != nil {
			return nil, &FetchError{Collection: collection, Err: err}
		}
		if r.StatusCode() == 404 {
			return r, nil
		}
		if r.IsError() {
			return nil, &FetchError{Collection: collection, StatusCode: r.StatusCode()}
		}

		return r, nil
	})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode() == 404 {
		return nil, nil
	}

	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
		return nil, &FetchError{Collection: collection, Err: err}
	}

	entry, err := flattenDocument(collection, envelope.Data)
	if err != nil {
		return nil, &FetchError{Collection: collection, Err: err}
	}

	return &entry, nil
}

// GetBySlug looks an entry up as a collection fetch with an equality filter
// on slug, returning the first match or nil.
func (c *Client) GetBySlug(ctx context.Context, collection domain.Collection, slug string, q Query) (*domain.Entry, error) {
	q.Filters = Eq("slug", slug)
	q.Pagination = Pagination{Page: 1, PageSize: 1}

	result, err := c.FetchCollection(ctx, collection, q)
	if err != nil {
		return nil, err
	}
	if len(result.Entries) == 0 {
		return nil, nil
	}

	return &result.Entries[0], nil
}

// HealthCheck verifies the CMS is reachable.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/_health")
	if err != nil {
		return err
	}
	if resp.IsError() {
		return &FetchError{Collection: "health", StatusCode: resp.StatusCode()}
	}

	return nil
}
