package models

import "time"

// MaxAttemptHistory bounds the per-topic attempt history kept for analytics.
// Oldest entries are evicted first.
const MaxAttemptHistory = 50

// TopicProgress tracks a user's learning state for a single topic.
// One record per (user, topic), created lazily on first contact and
// mutated on every answer submission.
type TopicProgress struct {
	ID             int64      `json:"id" db:"id"`
	UserID         int64      `json:"user_id" db:"user_id"`
	TopicID        string     `json:"topic_id" db:"topic_id"`
	Attempts       int        `json:"attempts" db:"attempts"`
	Correct        int        `json:"correct" db:"correct"`
	Mastery        float64    `json:"mastery" db:"mastery"`               // Laplace-smoothed accuracy, 0..1
	StreakCorrect  int        `json:"streak_correct" db:"streak_correct"` // at most one streak counter is nonzero
	StreakWrong    int        `json:"streak_wrong" db:"streak_wrong"`
	EasinessFactor float64    `json:"easiness_factor" db:"easiness_factor"` // SM-2 EF, 1.3..2.5
	IntervalDays   int        `json:"interval_days" db:"interval_days"`
	ReviewCount    int        `json:"review_count" db:"review_count"` // successful scheduled reviews completed
	LastReviewed   *time.Time `json:"last_reviewed" db:"last_reviewed"`
	NextReview     *time.Time `json:"next_review" db:"next_review"`
	CreatedAt      time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at" db:"updated_at"`

	// AttemptHistory holds the most recent attempts, newest last.
	// Loaded separately from the attempt_history table.
	AttemptHistory []Attempt `json:"attempt_history" db:"-"`
}

// NewTopicProgress returns a zero-valued record for a user/topic pair
func NewTopicProgress(userID int64, topicID string) *TopicProgress {
	return &TopicProgress{
		UserID:         userID,
		TopicID:        topicID,
		EasinessFactor: 2.5,
	}
}
