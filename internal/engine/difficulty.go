package engine

import "github.com/example/boilerbuddy/pkg/models"

// Difficulty is the tier of the next question served for a topic
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// SelectDifficulty picks the next question difficulty from mastery and
// streak state. Rules are evaluated top to bottom, first match wins, so
// the function is total over every valid record.
func SelectDifficulty(p *models.TopicProgress) Difficulty {
	switch {
	case p.StreakWrong >= 3:
		// Struggling, back off
		return DifficultyEasy
	case p.StreakCorrect >= 5 && p.Mastery > 0.7:
		// On a roll, push harder
		return DifficultyHard
	case p.Mastery < 0.3:
		return DifficultyEasy
	case p.Mastery < 0.6:
		return DifficultyMedium
	default:
		return DifficultyHard
	}
}
