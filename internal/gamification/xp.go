package gamification

import "github.com/example/boilerbuddy/internal/engine"

// XP calculation constants
const (
	BaseXP               = 10
	StreakBonusThreshold = 7 // days
	StreakBonusXP        = 5
	FirstAttemptBonus    = 10
	SpeedBonusSeconds    = 30
	SpeedBonusXP         = 5
	GuideMePenalty       = 0.8 // 20% reduction
)

// XPInput captures everything that feeds the XP formula for one answer
type XPInput struct {
	Difficulty     engine.Difficulty
	Correct        bool
	IsFirstAttempt bool
	AnswerSeconds  float64 // <= 0 when not measured
	UsedGuideMe    bool
	StudyStreak    int // user's daily study streak
}

func difficultyMultiplier(d engine.Difficulty) float64 {
	switch d {
	case engine.DifficultyMedium:
		return 1.5
	case engine.DifficultyHard:
		return 2.0
	default:
		return 1.0
	}
}

// CalculateXP computes XP earned for a single answer. Incorrect answers
// earn nothing. The Guide Me penalty is applied last, after all
// additive bonuses.
func CalculateXP(in XPInput) int {
	if !in.Correct {
		return 0
	}

	xp := BaseXP * difficultyMultiplier(in.Difficulty)

	if in.StudyStreak >= StreakBonusThreshold {
		xp += StreakBonusXP
	}
	if in.IsFirstAttempt {
		xp += FirstAttemptBonus
	}
	if in.AnswerSeconds > 0 && in.AnswerSeconds < SpeedBonusSeconds {
		xp += SpeedBonusXP
	}

	if in.UsedGuideMe {
		xp *= GuideMePenalty
	}

	return int(xp)
}
