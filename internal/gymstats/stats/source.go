package stats

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/memberhub/internal/gymstats/activity"
	"github.com/2beens/memberhub/internal/gymstats/checkins"
	"github.com/2beens/memberhub/internal/telemetry/metrics"
)

//go:generate mockgen -source=$GOFILE -destination=source_mocks_test.go -package=stats_test

type checkinsLister interface {
	ListForMember(ctx context.Context, memberID int64) ([]checkins.Checkin, error)
}

type workoutsLister interface {
	ListForMember(ctx context.Context, memberID int64) ([]activity.WorkoutSession, error)
}

// DataSource feeds the aggregator. A failing fetch never fails the caller, it
// is logged and yields an empty history.
type DataSource struct {
	checkins checkinsLister
	workouts workoutsLister
	metrics  *metrics.Manager
}

func NewDataSource(checkins checkinsLister, workouts workoutsLister, metricsManager *metrics.Manager) *DataSource {
	return &DataSource{
		checkins: checkins,
		workouts: workouts,
		metrics:  metricsManager,
	}
}

func (ds *DataSource) FetchCheckins(ctx context.Context, memberID int64) []activity.CheckinRecord {
	list, err := ds.checkins.ListForMember(ctx, memberID)
	if err != nil {
		log.Errorf("fetch checkins for member %d, using empty history: %s", memberID, err)
		ds.degraded("checkins")
		return []activity.CheckinRecord{}
	}
	return checkins.Records(list)
}

func (ds *DataSource) FetchWorkouts(ctx context.Context, memberID int64) []activity.WorkoutSession {
	sessions, err := ds.workouts.ListForMember(ctx, memberID)
	if err != nil {
		log.Errorf("fetch workouts for member %d, using empty history: %s", memberID, err)
		ds.degraded("workouts")
		return []activity.WorkoutSession{}
	}
	if sessions == nil {
		return []activity.WorkoutSession{}
	}
	return sessions
}

func (ds *DataSource) degraded(source string) {
	if ds.metrics != nil {
		ds.metrics.CounterDegradedSourceFetches.WithLabelValues(source).Inc()
	}
}
