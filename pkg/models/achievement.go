package models

import "time"

// Requirement types for achievements
const (
	RequirementQuestions      = "questions"       // total questions answered
	RequirementStreak         = "streak"          // daily study streak
	RequirementStreakCorrect  = "streak_correct"  // consecutive correct answers on a topic
	RequirementMastery        = "mastery"         // any topic fully mastered
	RequirementMasteredTopics = "mastered_topics" // number of mastered topics
	RequirementTimeOfDay      = "time"            // studied early/late
)

// Achievement is a catalog entry describing an unlockable badge
type Achievement struct {
	ID               int64  `json:"id" db:"id"`
	Name             string `json:"name" db:"name"`
	Description      string `json:"description" db:"description"`
	BadgeIcon        string `json:"badge_icon" db:"badge_icon"`
	XPReward         int    `json:"xp_reward" db:"xp_reward"`
	RequirementType  string `json:"requirement_type" db:"requirement_type"`
	RequirementValue string `json:"requirement_value" db:"requirement_value"`
}

// UserAchievement marks an achievement as unlocked for a user.
// A row is inserted exactly once and never removed.
type UserAchievement struct {
	ID            int64     `json:"id" db:"id"`
	UserID        int64     `json:"user_id" db:"user_id"`
	AchievementID int64     `json:"achievement_id" db:"achievement_id"`
	UnlockedAt    time.Time `json:"unlocked_at" db:"unlocked_at"`
}

// AchievementStatus pairs a catalog entry with a user's unlock state
type AchievementStatus struct {
	Achievement
	Unlocked   bool       `json:"unlocked" db:"unlocked"`
	UnlockedAt *time.Time `json:"unlocked_at" db:"unlocked_at"`
}
