package models

import "time"

// Activity event types shown in the social feed
const (
	ActivityLevelUp        = "level_up"
	ActivityAchievement    = "achievement"
	ActivityStreak         = "streak"
	ActivityChallengeWon   = "challenge_won"
	ActivityReviewReminder = "review_reminder"
)

// ActivityEvent is one entry in a user's activity feed
type ActivityEvent struct {
	ID        string    `json:"id" db:"id"`
	UserID    int64     `json:"user_id" db:"user_id"`
	EventType string    `json:"event_type" db:"event_type"`
	Message   string    `json:"message" db:"message"`
	XPDelta   int       `json:"xp_delta" db:"xp_delta"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
