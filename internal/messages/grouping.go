package messages

import (
	"time"

	"github.com/2beens/memberhub/internal/gymstats/activity"
)

const (
	LabelToday     = "Today"
	LabelYesterday = "Yesterday"

	dateLabelLayout = "January 2, 2006"
)

type DateGroup struct {
	Label    string       `json:"label"`
	Date     activity.Day `json:"date"`
	Messages []Message    `json:"messages"`
}

// GroupByDate splits messages into calendar day groups in loc, keeping message order.
// Groups appear in order of their first message.
func GroupByDate(messages []Message, now time.Time, loc *time.Location) []DateGroup {
	if loc == nil {
		loc = time.UTC
	}
	today := activity.DayOf(now, loc)
	yesterday := today.AddDays(-1)

	groups := make([]DateGroup, 0)
	index := make(map[activity.Day]int)
	for _, m := range messages {
		day := activity.DayOf(m.CreatedAt, loc)
		i, ok := index[day]
		if !ok {
			label := day.Time(loc).Format(dateLabelLayout)
			switch day {
			case today:
				label = LabelToday
			case yesterday:
				label = LabelYesterday
			}
			groups = append(groups, DateGroup{Label: label, Date: day})
			i = len(groups) - 1
			index[day] = i
		}
		groups[i].Messages = append(groups[i].Messages, m)
	}
	return groups
}

// Merge appends incoming messages to existing, dropping ids already present
// and messages outside the member's conversation. Order is kept.
func Merge(existing, incoming []Message, memberID int64) []Message {
	merged := make([]Message, 0, len(existing)+len(incoming))
	seen := make(map[int64]struct{}, len(existing)+len(incoming))
	for _, m := range existing {
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	for _, m := range incoming {
		if _, dup := seen[m.ID]; dup || !m.InConversation(memberID) {
			continue
		}
		seen[m.ID] = struct{}{}
		merged = append(merged, m)
	}
	return merged
}
