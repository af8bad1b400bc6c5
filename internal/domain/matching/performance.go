package matching

import (
	"math"

	"github.com/google/uuid"
)

const ratingScale = 5

// Performance derives a 0-100 score from historical skill ratings.
// Resolution order: average of per-required-skill averages, then the
// average across all of the candidate's ratings, then no signal at all.
// Absence of history is never a penalty; ok=false simply drops the term
// from the composite.
func Performance(reqs []Requirement, ratings map[uuid.UUID][]int) (int, bool) {
	var requiredSum float64
	requiredCount := 0
	for _, req := range reqs {
		if avg := averageRating(ratings[req.SkillID]); avg != nil {
			requiredSum += *avg
			requiredCount++
		}
	}
	if requiredCount > 0 {
		avg := requiredSum / float64(requiredCount)
		return int(math.Round(avg / ratingScale * 100)), true
	}

	sum, n := 0, 0
	for _, scores := range ratings {
		for _, s := range scores {
			sum += s
			n++
		}
	}
	if n > 0 {
		avg := float64(sum) / float64(n)
		return int(math.Round(avg / ratingScale * 100)), true
	}

	return 0, false
}
