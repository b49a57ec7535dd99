package activity

// Streak counts consecutive check-in days ending today or yesterday.
// days need not be sorted or distinct. A most recent day older than
// yesterday means the streak is broken and 0 is returned.
func Streak(days []Day, today Day) int {
	if len(days) == 0 {
		return 0
	}

	distinct := DistinctDaysDesc(days)
	mostRecent := distinct[0]
	if sinceToday := today.DaysSince(mostRecent); sinceToday != 0 && sinceToday != 1 {
		return 0
	}

	streak := 1
	for i := 1; i < len(distinct); i++ {
		if distinct[i-1].DaysSince(distinct[i]) != 1 {
			break
		}
		streak++
	}
	return streak
}
