package engine

import (
	"time"

	"github.com/example/boilerbuddy/pkg/models"
)

// LaplaceMastery estimates accuracy with add-one smoothing, which keeps
// the estimate away from 0 and 1 on small samples.
func LaplaceMastery(correct, attempts int) float64 {
	return float64(correct+1) / float64(attempts+2)
}

// ApplyAnswer folds one answered question into a progress record:
// counters, smoothed mastery, streaks and the bounded attempt history.
// Scheduling is handled separately by ScheduleNextReview.
func ApplyAnswer(p *models.TopicProgress, correct bool, now time.Time) {
	p.Attempts++
	if correct {
		p.Correct++
		p.StreakCorrect++
		p.StreakWrong = 0
	} else {
		p.StreakWrong++
		p.StreakCorrect = 0
	}

	p.Mastery = LaplaceMastery(p.Correct, p.Attempts)

	p.AttemptHistory = append(p.AttemptHistory, models.Attempt{
		UserID:        p.UserID,
		TopicID:       p.TopicID,
		Correct:       correct,
		MasteryAtTime: p.Mastery,
		Timestamp:     now,
	})
	if len(p.AttemptHistory) > models.MaxAttemptHistory {
		p.AttemptHistory = p.AttemptHistory[len(p.AttemptHistory)-models.MaxAttemptHistory:]
	}
}
