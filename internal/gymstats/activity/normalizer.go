package activity

import (
	"fmt"
	"strings"
	"time"

	"github.com/araddon/dateparse"
)

// strict ISO-8601 layouts, tried in order before the permissive parser
var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	dayLayout,
}

// Normalizer turns timestamp strings into calendar days of a fixed reference zone.
type Normalizer struct {
	loc *time.Location
}

func NewNormalizer(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return &Normalizer{loc: loc}
}

func (n *Normalizer) Location() *time.Location {
	return n.loc
}

// Parse resolves ts to an instant. Zone-less inputs are read in the reference zone.
func (n *Normalizer) Parse(ts string) (time.Time, error) {
	ts = strings.TrimSpace(ts)
	if ts == "" {
		return time.Time{}, fmt.Errorf("%w: empty", ErrInvalidTimestamp)
	}

	for _, layout := range isoLayouts {
		if t, err := time.ParseInLocation(layout, ts, n.loc); err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(ts, n.loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %s", ErrInvalidTimestamp, ts, err)
	}
	return t, nil
}

func (n *Normalizer) Day(ts string) (Day, error) {
	t, err := n.Parse(ts)
	if err != nil {
		return Day{}, err
	}
	return DayOf(t, n.loc), nil
}

func (n *Normalizer) Today(now time.Time) Day {
	return DayOf(now, n.loc)
}
