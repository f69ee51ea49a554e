package engine

import "math"

// SM-2 parameters
const (
	// MinEasiness is the floor for the easiness factor
	MinEasiness = 1.3
	// MaxEasiness is the ceiling for the easiness factor
	MaxEasiness = 2.5
	// InitialEasiness is the EF assigned to a fresh record
	InitialEasiness = 2.5
	// PassThreshold is the lowest quality counted as successful recall
	PassThreshold = 3
)

// Answer timing thresholds used when deriving a quality score
const (
	fastAnswerSeconds = 30
	slowAnswerSeconds = 120
	hotStreakLength   = 3
)

// ScheduleNextReview applies the SM-2 algorithm to one recall event.
// quality must be in [0, 5]. Below PassThreshold the review count resets
// and the interval drops back to one day; otherwise the interval follows
// the standard 1, 6, round(previous * EF) progression. The easiness
// factor is updated on both branches and clamped to [MinEasiness, MaxEasiness].
func ScheduleNextReview(easinessFactor float64, reviewCount, intervalDays, quality int) (newInterval int, newEF float64, newReviewCount int, err error) {
	if quality < 0 || quality > 5 {
		return 0, 0, 0, validationErrorf("quality", "%d must be between 0 and 5", quality)
	}

	q := float64(quality)
	newEF = easinessFactor + (0.1 - (5-q)*(0.08+(5-q)*0.02))
	if newEF < MinEasiness {
		newEF = MinEasiness
	}
	if newEF > MaxEasiness {
		newEF = MaxEasiness
	}

	if quality < PassThreshold {
		// Failed recall: start the schedule over
		return 1, newEF, 0, nil
	}

	switch reviewCount {
	case 0:
		newInterval = 1
	case 1:
		newInterval = 6
	default:
		newInterval = int(math.Round(float64(intervalDays) * newEF))
	}

	return newInterval, newEF, reviewCount + 1, nil
}

// DeriveQuality maps an answer outcome to an SM-2 quality score.
// The mapping is monotonic in correctness: wrong answers always land
// below PassThreshold. Correct answers start at 4, drop to 3 when the
// answer was slow, and rise to 5 on a hot streak with a fast answer.
// answerSeconds <= 0 means the answer time was not measured.
func DeriveQuality(correct bool, streakCorrect int, answerSeconds float64) int {
	if !correct {
		return 1
	}
	if answerSeconds > slowAnswerSeconds {
		return 3
	}
	if streakCorrect >= hotStreakLength && answerSeconds > 0 && answerSeconds < fastAnswerSeconds {
		return 5
	}
	return 4
}
