package models

import "time"

// Attempt records a single answered question for analytics
type Attempt struct {
	ID            string    `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	TopicID       string    `json:"topic_id" db:"topic_id"`
	Correct       bool      `json:"correct" db:"correct"`
	MasteryAtTime float64   `json:"mastery_at_time" db:"mastery_at_time"`
	Retention     float64   `json:"retention" db:"retention"` // estimated retention at answer time
	Timestamp     time.Time `json:"timestamp" db:"timestamp"`
}
