package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/memberhub/internal/cache"
	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
	"github.com/2beens/memberhub/internal/telemetry/tracing"
)

const summaryCacheKeyPrefix = "activity-summary"

type activitySource interface {
	FetchCheckins(ctx context.Context, memberID int64) []activity.CheckinRecord
	FetchWorkouts(ctx context.Context, memberID int64) []activity.WorkoutSession
}

// Service computes member activity views. Summaries are cached per member and
// reference day, so a cached streak never outlives the day it was computed for.
// With a cache configured, every view is served from the full summary, so the
// first view requested after a miss warms the cache for the others.
type Service struct {
	source     activitySource
	aggregator *activity.Aggregator
	cache      cache.Cache
	cacheTTL   time.Duration
	metrics    *metrics.Manager
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewService(
	source activitySource,
	aggregator *activity.Aggregator,
	summaryCache cache.Cache,
	cacheTTL time.Duration,
	metricsManager *metrics.Manager,
) *Service {
	return &Service{
		source:     source,
		aggregator: aggregator,
		cache:      summaryCache,
		cacheTTL:   cacheTTL,
		metrics:    metricsManager,
		NowFunc:    time.Now,
	}
}

func (s *Service) Streak(ctx context.Context, memberID int64) int {
	if s.caching() {
		return s.Summary(ctx, memberID).Streak
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.streak")
	defer span.End()
	defer s.observe("streak", time.Now())

	streak := s.aggregator.Streak(s.source.FetchCheckins(ctx, memberID), s.NowFunc())
	span.SetAttributes(attribute.Int("streak", streak))
	return streak
}

func (s *Service) Frequency(ctx context.Context, memberID int64) []activity.MonthlyCheckinBucket {
	if s.caching() {
		return s.Summary(ctx, memberID).Buckets
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.frequency")
	defer span.End()
	defer s.observe("frequency", time.Now())

	return s.aggregator.Buckets(s.source.FetchCheckins(ctx, memberID))
}

func (s *Service) PersonalRecords(ctx context.Context, memberID int64) []activity.PersonalRecord {
	if s.caching() {
		return s.Summary(ctx, memberID).Records
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.records")
	defer span.End()
	defer s.observe("records", time.Now())

	return s.aggregator.PersonalRecords(s.source.FetchWorkouts(ctx, memberID))
}

func (s *Service) Summary(ctx context.Context, memberID int64) activity.Summary {
	if summary, ok := s.cached(memberID); ok {
		return summary
	}

	ctx, span := tracing.GlobalTracer.Start(ctx, "service.activity.summary")
	defer span.End()
	span.SetAttributes(attribute.Int64("member.id", memberID))
	defer s.observe("summary", time.Now())

	summary := s.aggregator.Summarize(
		s.source.FetchCheckins(ctx, memberID),
		s.source.FetchWorkouts(ctx, memberID),
		s.NowFunc(),
	)
	s.store(memberID, summary)
	return summary
}

// Invalidate drops the member's cached summary after their history changed.
func (s *Service) Invalidate(memberID int64) {
	if s.cache == nil {
		return
	}
	s.cache.Delete(s.cacheKey(memberID))
}

func (s *Service) caching() bool {
	return s.cache != nil && s.cacheTTL > 0
}

func (s *Service) cacheKey(memberID int64) string {
	today := s.aggregator.Normalizer().Today(s.NowFunc())
	return fmt.Sprintf("%s:%d:%s", summaryCacheKeyPrefix, memberID, today)
}

func (s *Service) cached(memberID int64) (activity.Summary, bool) {
	if s.cache == nil {
		return activity.Summary{}, false
	}

	raw, found := s.cache.Get(s.cacheKey(memberID))
	if !found {
		s.lookup("miss")
		return activity.Summary{}, false
	}

	var summary activity.Summary
	if err := json.Unmarshal(raw, &summary); err != nil {
		log.Warnf("activity cache, decode summary for member %d: %s", memberID, err)
		s.lookup("miss")
		return activity.Summary{}, false
	}
	s.lookup("hit")
	return summary, true
}

func (s *Service) store(memberID int64, summary activity.Summary) {
	if !s.caching() {
		return
	}
	raw, err := json.Marshal(summary)
	if err != nil {
		log.Errorf("activity cache, encode summary for member %d: %s", memberID, err)
		return
	}
	if err := s.cache.Set(s.cacheKey(memberID), raw, s.cacheTTL); err != nil {
		log.Errorf("activity cache, store summary for member %d: %s", memberID, err)
	}
}

func (s *Service) lookup(result string) {
	if s.metrics != nil {
		s.metrics.CounterActivityCacheLookups.WithLabelValues(result).Inc()
	}
}

func (s *Service) observe(kind string, begin time.Time) {
	if s.metrics != nil {
		s.metrics.HistActivityAggregation.WithLabelValues(kind).Observe(time.Since(begin).Seconds())
	}
}
