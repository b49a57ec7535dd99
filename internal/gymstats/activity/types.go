package activity

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

var (
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	ErrMalformedSet     = errors.New("malformed exercise set")
)

// CheckinRecord is a single gym visit as handed over by the check-in source.
// Timestamps stay raw strings here, parsing them is the normalizer's job.
type CheckinRecord struct {
	ID           int64   `json:"id"`
	MemberRef    int64   `json:"member_table_id"`
	CheckInTime  string  `json:"check_in_time"`
	CheckOutTime *string `json:"check_out_time,omitempty"`
}

type WorkoutSession struct {
	ID        int64         `json:"id"`
	MemberRef int64         `json:"member_id"`
	Date      Day           `json:"date"`
	Notes     string        `json:"notes,omitempty"`
	Exercises []ExerciseSet `json:"exercises"`
}

type ExerciseSet struct {
	Name   string  `json:"name"`
	Sets   int     `json:"sets"`
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// Check reports ErrMalformedSet for sets that cannot take part in 1RM estimation.
func (s ExerciseSet) Check() error {
	switch {
	case strings.TrimSpace(s.Name) == "":
		return fmt.Errorf("%w: empty exercise name", ErrMalformedSet)
	case s.Reps < 1:
		return fmt.Errorf("%w: reps %d", ErrMalformedSet, s.Reps)
	case math.IsNaN(s.Weight) || math.IsInf(s.Weight, 0):
		return fmt.Errorf("%w: weight %v", ErrMalformedSet, s.Weight)
	default:
		return nil
	}
}

type PersonalRecord struct {
	Exercise           string  `json:"exercise"`
	MaxWeight          float64 `json:"maxWeight"`
	EstimatedOneRepMax float64 `json:"estimatedOneRepMax"`
	Date               Day     `json:"date"`
}

// MonthlyCheckinBucket counts visits within one calendar month.
// Month is the sortable "2006-01" key, Label the display form ("Jan 2006").
type MonthlyCheckinBucket struct {
	Month      string `json:"month"`
	Label      string `json:"monthLabel"`
	VisitCount int    `json:"visitCount"`
}

type Summary struct {
	Streak  int                    `json:"streak"`
	Buckets []MonthlyCheckinBucket `json:"buckets"`
	Records []PersonalRecord       `json:"records"`
}
