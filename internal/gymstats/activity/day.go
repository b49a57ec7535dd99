package activity

import (
	"fmt"
	"sort"
	"time"
)

const dayLayout = "2006-01-02"

// Day is a calendar day with no time-of-day or zone attached.
type Day struct {
	Year  int
	Month time.Month
	Day   int
}

func DayOf(t time.Time, loc *time.Location) Day {
	if loc != nil {
		t = t.In(loc)
	}
	y, m, d := t.Date()
	return Day{Year: y, Month: m, Day: d}
}

func ParseDay(s string) (Day, error) {
	t, err := time.Parse(dayLayout, s)
	if err != nil {
		return Day{}, fmt.Errorf("parse day %q: %w", s, err)
	}
	return DayOf(t, time.UTC), nil
}

func (d Day) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Time returns midnight of the day in loc.
func (d Day) Time(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

func (d Day) String() string {
	return d.Time(time.UTC).Format(dayLayout)
}

// ordinal counts days since the unix epoch, so differences are DST-proof.
func (d Day) ordinal() int64 {
	return d.Time(time.UTC).Unix() / 86400
}

func (d Day) DaysSince(other Day) int {
	return int(d.ordinal() - other.ordinal())
}

func (d Day) AddDays(n int) Day {
	return DayOf(d.Time(time.UTC).AddDate(0, 0, n), time.UTC)
}

// MarshalText encodes the zero Day as an empty string.
func (d Day) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.String()), nil
}

func (d *Day) UnmarshalText(text []byte) error {
	if len(text) == 0 {
		*d = Day{}
		return nil
	}
	parsed, err := ParseDay(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// DistinctDaysDesc returns the distinct days in days, most recent first.
// The input slice is left untouched.
func DistinctDaysDesc(days []Day) []Day {
	seen := make(map[Day]struct{}, len(days))
	distinct := make([]Day, 0, len(days))
	for _, d := range days {
		if _, ok := seen[d]; ok {
			continue
		}
		seen[d] = struct{}{}
		distinct = append(distinct, d)
	}
	sort.Slice(distinct, func(i, j int) bool {
		return distinct[i].ordinal() > distinct[j].ordinal()
	})
	return distinct
}
