package activity

import (
	"sort"
	"strings"

	log "github.com/sirupsen/logrus"
)

// EstimateOneRepMax applies the Epley formula. A single rep is already a max.
func EstimateOneRepMax(weight float64, reps int) float64 {
	if reps == 1 {
		return weight
	}
	return weight * (1 + float64(reps)/30)
}

// PersonalRecords keeps, per case-folded exercise name, the set with the highest
// estimated 1RM. Sets without load and malformed sets are skipped. Ties keep the
// earlier set. Output is sorted by exercise name, case-insensitive.
func PersonalRecords(sessions []WorkoutSession) []PersonalRecord {
	byName := make(map[string]*PersonalRecord)
	var order []string

	for _, session := range sessions {
		for _, set := range session.Exercises {
			if err := set.Check(); err != nil {
				log.Debugf("personal records, session %d: skip set: %s", session.ID, err)
				continue
			}
			if set.Weight <= 0 {
				continue
			}

			estimate := EstimateOneRepMax(set.Weight, set.Reps)
			key := strings.ToLower(set.Name)
			current, ok := byName[key]
			if !ok {
				byName[key] = &PersonalRecord{
					Exercise:           set.Name,
					MaxWeight:          set.Weight,
					EstimatedOneRepMax: estimate,
					Date:               session.Date,
				}
				order = append(order, key)
				continue
			}
			if estimate > current.EstimatedOneRepMax {
				current.MaxWeight = set.Weight
				current.EstimatedOneRepMax = estimate
				current.Date = session.Date
			}
		}
	}

	records := make([]PersonalRecord, 0, len(order))
	for _, key := range order {
		records = append(records, *byName[key])
	}
	sort.SliceStable(records, func(i, j int) bool {
		return strings.ToLower(records[i].Exercise) < strings.ToLower(records[j].Exercise)
	})

	return records
}
