package checkins

import (
	"errors"
	"time"

	"github.com/2beens/memberhub/internal/gymstats/activity"
)

const Table = "checkins"

var (
	ErrCheckinNotFound       = errors.New("checkin not found")
	ErrCheckOutBeforeCheckIn = errors.New("check-out before check-in")
	ErrAlreadyCheckedOut     = errors.New("already checked out")
	ErrUnknownMember         = errors.New("unknown member")
)

type Checkin struct {
	ID           int64      `json:"id"`
	MemberID     int64      `json:"member_table_id"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Record converts the stored row into the raw form the activity aggregator consumes.
func (c Checkin) Record() activity.CheckinRecord {
	rec := activity.CheckinRecord{
		ID:          c.ID,
		MemberRef:   c.MemberID,
		CheckInTime: c.CheckInTime.Format(time.RFC3339Nano),
	}
	if c.CheckOutTime != nil {
		out := c.CheckOutTime.Format(time.RFC3339Nano)
		rec.CheckOutTime = &out
	}
	return rec
}

func Records(checkins []Checkin) []activity.CheckinRecord {
	records := make([]activity.CheckinRecord, 0, len(checkins))
	for _, c := range checkins {
		records = append(records, c.Record())
	}
	return records
}
