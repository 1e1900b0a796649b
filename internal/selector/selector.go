package selector

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/couchcryptid/asteroid-hazard-service/internal/domain"
	"github.com/couchcryptid/asteroid-hazard-service/internal/observability"
)

// FeedFetcher retrieves the near-Earth object feed for an inclusive date window.
type FeedFetcher interface {
	FetchFeed(ctx context.Context, start, end time.Time) (domain.FeedResponse, error)
}

// ReportPublisher sends a completed selection downstream.
type ReportPublisher interface {
	Publish(ctx context.Context, report domain.HazardReport) error
}

// ReportPublishTimeout bounds a single report publish.
const ReportPublishTimeout = 5 * time.Second

// Selector ranks the hazardous asteroids approaching over the next few days.
// Selections share no state; only in-flight report publishes are tracked.
type Selector struct {
	feed      FeedFetcher
	publisher ReportPublisher
	logger    *slog.Logger
	metrics   *observability.Metrics
	inflight  sync.WaitGroup
}

// New creates a Selector. Pass a nil publisher to disable report publishing.
func New(feed FeedFetcher, publisher ReportPublisher, logger *slog.Logger, metrics *observability.Metrics) *Selector {
	return &Selector{
		feed:      feed,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// TopHazardous returns up to three hazardous asteroids approaching between
// today (UTC) and today+days, largest first. Feed errors are returned as-is.
func (s *Selector) TopHazardous(ctx context.Context, days int) ([]domain.Asteroid, error) {
	if err := domain.ValidateDays(days); err != nil {
		return nil, err
	}

	start := domain.Today()
	end := start.AddDate(0, 0, days)

	feed, err := s.feed.FetchFeed(ctx, start, end)
	if err != nil {
		s.metrics.Selections.WithLabelValues("error").Inc()
		return nil, err
	}

	asteroids := domain.SelectTopHazardous(feed, domain.MaxResults)

	s.metrics.Selections.WithLabelValues("success").Inc()
	s.metrics.HazardousSelected.Observe(float64(len(asteroids)))
	s.logger.Debug("hazardous asteroids selected",
		"days", days,
		"start_date", start.Format(domain.DateLayout),
		"end_date", end.Format(domain.DateLayout),
		"count", len(asteroids),
	)

	s.publish(ctx, domain.HazardReport{
		Days:        days,
		StartDate:   start.Format(domain.DateLayout),
		EndDate:     end.Format(domain.DateLayout),
		GeneratedAt: domain.Now().UTC(),
		Asteroids:   asteroids,
	})

	return asteroids, nil
}

// publish sends the report in the background if a publisher is configured.
// The publish outlives the request context but is bounded by
// ReportPublishTimeout. Failures are logged and counted only.
func (s *Selector) publish(ctx context.Context, report domain.HazardReport) {
	if s.publisher == nil {
		return
	}
	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), ReportPublishTimeout)
	s.inflight.Go(func() {
		defer cancel()
		if err := s.publisher.Publish(pubCtx, report); err != nil {
			s.metrics.ReportPublishErrors.Inc()
			s.logger.Warn("publish hazard report failed",
				"start_date", report.StartDate,
				"end_date", report.EndDate,
				"error", err,
			)
			return
		}
		s.metrics.ReportsPublished.Inc()
	})
}

// Wait blocks until every in-flight report publish has finished.
func (s *Selector) Wait() {
	s.inflight.Wait()
}
