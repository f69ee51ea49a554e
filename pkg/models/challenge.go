package models

import "time"

// Challenge lifecycle states
const (
	ChallengePending   = "pending"
	ChallengeActive    = "active"
	ChallengeCompleted = "completed"
	ChallengeDeclined  = "declined"
	ChallengeExpired   = "expired"
)

// Challenge is a head-to-head quiz duel between two users on one topic
type Challenge struct {
	ID              string     `json:"id" db:"id"`
	ChallengerID    int64      `json:"challenger_id" db:"challenger_id"`
	OpponentID      int64      `json:"opponent_id" db:"opponent_id"`
	TopicID         string     `json:"topic_id" db:"topic_id"`
	Status          string     `json:"status" db:"status"`
	ChallengerScore *int       `json:"challenger_score" db:"challenger_score"`
	OpponentScore   *int       `json:"opponent_score" db:"opponent_score"`
	WinnerID        *int64     `json:"winner_id" db:"winner_id"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	ExpiresAt       time.Time  `json:"expires_at" db:"expires_at"`
	CompletedAt     *time.Time `json:"completed_at" db:"completed_at"`
}
