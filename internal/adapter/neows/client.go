package neows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/couchcryptid/asteroid-hazard-service/internal/domain"
	"github.com/couchcryptid/asteroid-hazard-service/internal/observability"
)

// DefaultBaseURL is the NeoWs feed endpoint.
const DefaultBaseURL = "https://api.nasa.gov/neo/rest/v1/feed"

// Client fetches the NeoWs feed. One Client and its http.Client are shared
// process-wide so connections are reused.
type Client struct {
	apiKey     string
	httpClient *http.Client
	baseURL    string
	metrics    *observability.Metrics
	logger     *slog.Logger
}

// NewClient creates a feed client. An empty baseURL selects DefaultBaseURL.
func NewClient(baseURL, apiKey string, timeout time.Duration, metrics *observability.Metrics, logger *slog.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL: baseURL,
		metrics: metrics,
		logger:  logger,
	}
}

// FetchFeed returns the feed for the inclusive window [start, end].
// Transport failures and non-2xx statuses return *domain.RemoteServiceError;
// undecodable bodies return *domain.ParseError.
func (c *Client) FetchFeed(ctx context.Context, start, end time.Time) (domain.FeedResponse, error) {
	params := url.Values{
		"start_date": {start.Format(domain.DateLayout)},
		"end_date":   {end.Format(domain.DateLayout)},
		"api_key":    {c.apiKey},
	}

	begin := time.Now()
	feed, err := c.doRequest(ctx, c.baseURL+"?"+params.Encode())
	c.metrics.FeedRequestDuration.Observe(time.Since(begin).Seconds())

	var (
		remoteErr *domain.RemoteServiceError
		parseErr  *domain.ParseError
	)
	switch {
	case err == nil:
		c.metrics.FeedRequests.WithLabelValues("success").Inc()
	case errors.As(err, &remoteErr):
		c.metrics.FeedRequests.WithLabelValues("remote_error").Inc()
		c.logger.Error("feed request failed",
			"start_date", params.Get("start_date"),
			"end_date", params.Get("end_date"),
			"status", remoteErr.StatusCode,
			"error", err,
		)
	case errors.As(err, &parseErr):
		c.metrics.FeedRequests.WithLabelValues("parse_error").Inc()
		c.logger.Error("feed response malformed", "error", err)
	}
	return feed, err
}

func (c *Client) doRequest(ctx context.Context, fullURL string) (domain.FeedResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return domain.FeedResponse{}, &domain.RemoteServiceError{Err: fmt.Errorf("create request: %w", redactURL(err))}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.FeedResponse{}, &domain.RemoteServiceError{Err: redactURL(err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))
		return domain.FeedResponse{}, &domain.RemoteServiceError{StatusCode: resp.StatusCode}
	}

	var feed domain.FeedResponse
	dec := json.NewDecoder(resp.Body)
	if err := dec.Decode(&feed); err != nil {
		return domain.FeedResponse{}, decodeError(ctx, err)
	}
	// The body must hold exactly one JSON document.
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("unexpected content after feed document")
		}
		return domain.FeedResponse{}, decodeError(ctx, err)
	}
	return feed, nil
}

// decodeError classifies a body read failure. Timeouts and cancellation while
// streaming the body are remote failures, not malformed documents.
func decodeError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return &domain.RemoteServiceError{Err: ctx.Err()}
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &domain.RemoteServiceError{Err: err}
	}
	return &domain.ParseError{Err: err}
}

// redactURL drops the request URL from *url.Error values; it carries the api_key.
func redactURL(err error) error {
	var uErr *url.Error
	if errors.As(err, &uErr) {
		return fmt.Errorf("%s: %w", uErr.Op, uErr.Err)
	}
	return err
}
