package activity

import (
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
)

const DefaultMaxBuckets = 12

// Aggregator derives streak, monthly frequency and personal records from a
// member's history. It holds no mutable state and is safe for concurrent use.
type Aggregator struct {
	normalizer *Normalizer
	maxBuckets int
}

func NewAggregator(loc *time.Location, maxBuckets int) *Aggregator {
	if maxBuckets <= 0 {
		maxBuckets = DefaultMaxBuckets
	}
	return &Aggregator{
		normalizer: NewNormalizer(loc),
		maxBuckets: maxBuckets,
	}
}

func (a *Aggregator) Normalizer() *Normalizer {
	return a.normalizer
}

// CheckinDays normalizes check-in times, dropping records that fail to parse.
func (a *Aggregator) CheckinDays(records []CheckinRecord) []Day {
	days := make([]Day, 0, len(records))
	for _, rec := range records {
		day, err := a.normalizer.Day(rec.CheckInTime)
		if err != nil {
			log.Warnf("checkin days, record %d: %s", rec.ID, err)
			continue
		}
		days = append(days, day)
	}
	return days
}

func (a *Aggregator) Streak(records []CheckinRecord, now time.Time) int {
	return Streak(a.CheckinDays(records), a.normalizer.Today(now))
}

// Buckets groups check-ins by calendar month, ascending, keeping only the most
// recent maxBuckets months. Months without visits are not synthesized.
func (a *Aggregator) Buckets(records []CheckinRecord) []MonthlyCheckinBucket {
	type monthKey struct {
		year  int
		month time.Month
	}

	counts := make(map[monthKey]int)
	for _, rec := range records {
		t, err := a.normalizer.Parse(rec.CheckInTime)
		if err != nil {
			log.Warnf("checkin buckets, record %d: %s", rec.ID, err)
			continue
		}
		t = t.In(a.normalizer.Location())
		counts[monthKey{year: t.Year(), month: t.Month()}]++
	}

	keys := make([]monthKey, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})
	if len(keys) > a.maxBuckets {
		keys = keys[len(keys)-a.maxBuckets:]
	}

	buckets := make([]MonthlyCheckinBucket, 0, len(keys))
	for _, k := range keys {
		first := time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC)
		buckets = append(buckets, MonthlyCheckinBucket{
			Month:      first.Format("2006-01"),
			Label:      first.Format("Jan 2006"),
			VisitCount: counts[k],
		})
	}
	return buckets
}

func (a *Aggregator) PersonalRecords(sessions []WorkoutSession) []PersonalRecord {
	return PersonalRecords(sessions)
}

func (a *Aggregator) Summarize(checkins []CheckinRecord, sessions []WorkoutSession, now time.Time) Summary {
	return Summary{
		Streak:  a.Streak(checkins, now),
		Buckets: a.Buckets(checkins),
		Records: a.PersonalRecords(sessions),
	}
}
