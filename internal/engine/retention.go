package engine

import (
	"math"
	"time"
)

// Memory strength bounds for the Ebbinghaus forgetting curve, in hours.
// Strength grows linearly with mastery: 24h at zero mastery, 720h at full.
const (
	baseMemoryStrengthHours = 24.0
	memoryStrengthSpanHours = 696.0
)

// ProjectionOffsetsDays are the fixed future offsets used for the
// forgetting-curve chart.
var ProjectionOffsetsDays = []int{0, 1, 2, 3, 5, 7, 14, 30}

// EstimateRetention estimates the probability that a topic is still
// recalled, using exponential decay since the last review.
// A nil lastReviewed means the topic was never reviewed and is fully fresh.
func EstimateRetention(lastReviewed *time.Time, mastery float64, now time.Time) (float64, error) {
	if math.IsNaN(mastery) || mastery < 0 || mastery > 1 {
		return 0, validationErrorf("mastery", "%v must be between 0 and 1", mastery)
	}

	if lastReviewed == nil {
		return 1.0, nil
	}

	elapsedHours := now.Sub(*lastReviewed).Hours()
	if elapsedHours < 0 {
		elapsedHours = 0
	}

	strength := baseMemoryStrengthHours + mastery*memoryStrengthSpanHours
	retention := math.Exp(-elapsedHours / strength)

	return math.Max(0, math.Min(1, retention)), nil
}

// ProjectRetention returns the retention a topic would have the given
// number of days after a review, for a fixed mastery level.
func ProjectRetention(mastery float64, days int) (float64, error) {
	if math.IsNaN(mastery) || mastery < 0 || mastery > 1 {
		return 0, validationErrorf("mastery", "%v must be between 0 and 1", mastery)
	}

	strength := baseMemoryStrengthHours + mastery*memoryStrengthSpanHours
	retention := math.Exp(-float64(days*24) / strength)

	return math.Max(0, math.Min(1, retention)), nil
}
