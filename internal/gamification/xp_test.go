package gamification

import (
	"testing"

	"github.com/example/boilerbuddy/internal/engine"
	"github.com/stretchr/testify/assert"
)

func TestCalculateXP(t *testing.T) {
	tests := []struct {
		name string
		in   XPInput
		want int
	}{
		{"incorrect earns nothing", XPInput{Correct: false, Difficulty: engine.DifficultyHard, IsFirstAttempt: true}, 0},
		{"easy base", XPInput{Correct: true, Difficulty: engine.DifficultyEasy}, 10},
		{"medium base", XPInput{Correct: true, Difficulty: engine.DifficultyMedium}, 15},
		{"hard base", XPInput{Correct: true, Difficulty: engine.DifficultyHard}, 20},
		{"unknown difficulty falls back to easy", XPInput{Correct: true, Difficulty: "weird"}, 10},
		{"streak bonus", XPInput{Correct: true, Difficulty: engine.DifficultyEasy, StudyStreak: 7}, 15},
		{"streak below threshold", XPInput{Correct: true, Difficulty: engine.DifficultyEasy, StudyStreak: 6}, 10},
		{"first attempt bonus", XPInput{Correct: true, Difficulty: engine.DifficultyEasy, IsFirstAttempt: true}, 20},
		{"speed bonus", XPInput{Correct: true, Difficulty: engine.DifficultyEasy, AnswerSeconds: 12}, 15},
		{"speed boundary excluded", XPInput{Correct: true, Difficulty: engine.DifficultyEasy, AnswerSeconds: 30}, 10},
		{"unmeasured time, no speed bonus", XPInput{Correct: true, Difficulty: engine.DifficultyEasy, AnswerSeconds: 0}, 10},
		{"all bonuses stack", XPInput{Correct: true, Difficulty: engine.DifficultyHard, IsFirstAttempt: true, AnswerSeconds: 10, StudyStreak: 10}, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalculateXP(tt.in))
		})
	}
}

func TestCalculateXPGuideMePenaltyAppliesLast(t *testing.T) {
	// Penalty cuts the whole total including bonuses, not just the base:
	// (20 + 10 + 5) * 0.8 = 28
	got := CalculateXP(XPInput{
		Correct:        true,
		Difficulty:     engine.DifficultyHard,
		IsFirstAttempt: true,
		AnswerSeconds:  10,
		UsedGuideMe:    true,
	})
	assert.Equal(t, 28, got)
}

func TestCalculateXPGuideMeOnIncorrect(t *testing.T) {
	got := CalculateXP(XPInput{Correct: false, UsedGuideMe: true})
	assert.Equal(t, 0, got)
}
