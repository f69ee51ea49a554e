package gamification

import (
	"strconv"

	"github.com/example/boilerbuddy/pkg/models"
)

// MasteredThreshold is the smoothed mastery at which a topic counts as
// mastered. Laplace smoothing keeps mastery strictly below 1, so the
// threshold sits where ~18 straight correct answers land.
const MasteredThreshold = 0.9

// Hour bounds for the time-of-day achievements
const (
	earlyBirdHour = 8  // studied before 8 AM
	nightOwlHour  = 22 // studied at or after 10 PM
)

// UserStats aggregates the signals achievement predicates read. Built by
// the caller from progress records after each answer submission.
type UserStats struct {
	TotalAttempts    int
	TotalCorrect     int
	StudyStreak      int // consecutive days of study
	MaxStreakCorrect int // best consecutive-correct run across topics
	MasteredTopics   int // topics at or above MasteredThreshold
	LastAttemptHour  int // local hour of the most recent attempt
}

// Earned reports whether the achievement's requirement is met by the
// given stats. Unknown requirement types never unlock.
func Earned(a models.Achievement, s UserStats) bool {
	switch a.RequirementType {
	case models.RequirementQuestions:
		return s.TotalAttempts >= atoi(a.RequirementValue)
	case models.RequirementStreak:
		return s.StudyStreak >= atoi(a.RequirementValue)
	case models.RequirementStreakCorrect:
		return s.MaxStreakCorrect >= atoi(a.RequirementValue)
	case models.RequirementMastery:
		return s.MasteredTopics >= 1
	case models.RequirementMasteredTopics:
		return s.MasteredTopics >= atoi(a.RequirementValue)
	case models.RequirementTimeOfDay:
		if a.RequirementValue == "early" {
			return s.LastAttemptHour < earlyBirdHour
		}
		return s.LastAttemptHour >= nightOwlHour
	default:
		return false
	}
}

// NewlyEarned filters the catalog down to achievements the stats satisfy
// that have not been unlocked yet. Already-unlocked achievements are
// never re-awarded.
func NewlyEarned(catalog []models.Achievement, unlocked map[int64]bool, s UserStats) []models.Achievement {
	var earned []models.Achievement
	for _, a := range catalog {
		if unlocked[a.ID] {
			continue
		}
		if Earned(a, s) {
			earned = append(earned, a)
		}
	}
	return earned
}

// DefaultCatalog is the built-in achievement set seeded on first run
func DefaultCatalog() []models.Achievement {
	return []models.Achievement{
		{Name: "First Step", Description: "Answer your first question", BadgeIcon: "🎯", XPReward: 10, RequirementType: models.RequirementQuestions, RequirementValue: "1"},
		{Name: "Getting Started", Description: "Answer 10 questions", BadgeIcon: "📚", XPReward: 50, RequirementType: models.RequirementQuestions, RequirementValue: "10"},
		{Name: "Centurion", Description: "Answer 100 questions", BadgeIcon: "💯", XPReward: 200, RequirementType: models.RequirementQuestions, RequirementValue: "100"},
		{Name: "Week Warrior", Description: "Maintain a 7-day streak", BadgeIcon: "🔥", XPReward: 100, RequirementType: models.RequirementStreak, RequirementValue: "7"},
		{Name: "Unstoppable", Description: "Maintain a 30-day streak", BadgeIcon: "⚡", XPReward: 500, RequirementType: models.RequirementStreak, RequirementValue: "30"},
		{Name: "Perfect Ten", Description: "Get 10 questions correct in a row", BadgeIcon: "✨", XPReward: 150, RequirementType: models.RequirementStreakCorrect, RequirementValue: "10"},
		{Name: "Topic Master", Description: "Master a topic", BadgeIcon: "🏆", XPReward: 300, RequirementType: models.RequirementMastery, RequirementValue: "1"},
		{Name: "Scholar", Description: "Master 5 topics", BadgeIcon: "📖", XPReward: 500, RequirementType: models.RequirementMasteredTopics, RequirementValue: "5"},
		{Name: "Early Bird", Description: "Study before 8 AM", BadgeIcon: "🌅", XPReward: 75, RequirementType: models.RequirementTimeOfDay, RequirementValue: "early"},
		{Name: "Night Owl", Description: "Study after 10 PM", BadgeIcon: "🦉", XPReward: 75, RequirementType: models.RequirementTimeOfDay, RequirementValue: "late"},
	}
}

func atoi(s string) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}
