package analytics

import (
	"testing"
	"time"

	"github.com/example/boilerbuddy/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func progressWithAttempts(topicID string, stamps ...time.Time) *models.TopicProgress {
	p := &models.TopicProgress{TopicID: topicID, Attempts: len(stamps)}
	for _, ts := range stamps {
		p.AttemptHistory = append(p.AttemptHistory, models.Attempt{
			TopicID: topicID, Correct: true, Timestamp: ts,
		})
	}
	return p
}

func TestStudyStreak(t *testing.T) {
	today := time.Date(2025, 3, 10, 15, 0, 0, 0, time.UTC)

	t.Run("no attempts", func(t *testing.T) {
		assert.Equal(t, 0, StudyStreak(nil, today))
	})

	t.Run("three consecutive days", func(t *testing.T) {
		p := progressWithAttempts("a",
			today.AddDate(0, 0, -2), today.AddDate(0, 0, -1), today)
		assert.Equal(t, 3, StudyStreak([]*models.TopicProgress{p}, today))
	})

	t.Run("gap breaks the streak", func(t *testing.T) {
		p := progressWithAttempts("a",
			today.AddDate(0, 0, -3), today.AddDate(0, 0, -1), today)
		assert.Equal(t, 2, StudyStreak([]*models.TopicProgress{p}, today))
	})

	t.Run("nothing today", func(t *testing.T) {
		p := progressWithAttempts("a", today.AddDate(0, 0, -1))
		assert.Equal(t, 0, StudyStreak([]*models.TopicProgress{p}, today))
	})

	t.Run("attempts across topics count together", func(t *testing.T) {
		a := progressWithAttempts("a", today)
		b := progressWithAttempts("b", today.AddDate(0, 0, -1))
		assert.Equal(t, 2, StudyStreak([]*models.TopicProgress{a, b}, today))
	})
}

func TestForgettingCurve(t *testing.T) {
	now := time.Now()
	reviewed := now.Add(-time.Hour)

	attempted := &models.TopicProgress{
		TopicID: "ptr", Attempts: 4, Mastery: 0.5, LastReviewed: &reviewed,
	}
	unattempted := &models.TopicProgress{TopicID: "gc"}
	unreviewed := &models.TopicProgress{TopicID: "io", Attempts: 2, Mastery: 0.4}

	data := ForgettingCurve(
		[]*models.TopicProgress{attempted, unattempted, unreviewed},
		map[string]string{"ptr": "Pointers"},
	)

	assert.Equal(t, []string{"Now", "1d", "2d", "3d", "5d", "7d", "14d", "30d"}, data.TimeLabels)
	require.Len(t, data.Topics, 1)

	series := data.Topics[0]
	assert.Equal(t, "Pointers", series.TopicName)
	require.Len(t, series.Retention, len(data.TimeLabels))

	// Starts at 100% and only decays
	assert.InDelta(t, 100.0, series.Retention[0], 1e-9)
	for i := 1; i < len(series.Retention); i++ {
		assert.LessOrEqual(t, series.Retention[i], series.Retention[i-1])
	}
}

func TestTimeOfDayPerformance(t *testing.T) {
	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	at := func(hour int, correct bool) models.Attempt {
		return models.Attempt{Correct: correct, Timestamp: day.Add(time.Duration(hour) * time.Hour)}
	}

	p := &models.TopicProgress{TopicID: "a", AttemptHistory: []models.Attempt{
		at(7, true),   // 6-9 AM
		at(7, false),  // 6-9 AM
		at(13, true),  // 12-3 PM
		at(23, true),  // 9 PM+
		at(2, false),  // pre-dawn counts as the late block
		at(21, false), // 9 PM+
	}}

	data := TimeOfDayPerformance([]*models.TopicProgress{p})
	require.Len(t, data.Accuracy, 6)

	assert.InDelta(t, 50.0, data.Accuracy[0], 1e-9)
	assert.InDelta(t, 0.0, data.Accuracy[1], 1e-9) // no attempts
	assert.InDelta(t, 100.0, data.Accuracy[2], 1e-9)
	assert.InDelta(t, 33.3, data.Accuracy[5], 1e-9)
}

func TestWeakAndStrongTopics(t *testing.T) {
	progress := []*models.TopicProgress{
		{TopicID: "weakest", Mastery: 0.1, Attempts: 5},
		{TopicID: "weak", Mastery: 0.3, Attempts: 2},
		{TopicID: "weak-but-new", Mastery: 0.2, Attempts: 1}, // too few attempts
		{TopicID: "mid", Mastery: 0.6, Attempts: 10},
		{TopicID: "strong", Mastery: 0.85, Attempts: 4},
		{TopicID: "stronger", Mastery: 0.95, Attempts: 8},
		{TopicID: "strong-but-new", Mastery: 0.9, Attempts: 2}, // too few attempts
	}

	weak := WeakTopics(progress)
	require.Len(t, weak, 2)
	assert.Equal(t, "weakest", weak[0].TopicID)
	assert.Equal(t, "weak", weak[1].TopicID)

	strong := StrongTopics(progress)
	require.Len(t, strong, 2)
	assert.Equal(t, "stronger", strong[0].TopicID)
	assert.Equal(t, "strong", strong[1].TopicID)
}

func TestLearningVelocity(t *testing.T) {
	mk := func(results ...bool) []models.Attempt {
		var out []models.Attempt
		for _, r := range results {
			out = append(out, models.Attempt{Correct: r})
		}
		return out
	}

	assert.Equal(t, 0.0, LearningVelocity(nil))
	assert.Equal(t, 0.0, LearningVelocity(mk(true, true)), "under three attempts")
	assert.InDelta(t, 2.0/3.0, LearningVelocity(mk(true, false, true)), 1e-9)

	// Only the last five attempts count
	history := mk(false, false, false, false, false, true, true, true, true, true)
	assert.InDelta(t, 1.0, LearningVelocity(history), 1e-9)
}

func TestBuildReport(t *testing.T) {
	today := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	progress := []*models.TopicProgress{
		{TopicID: "a", Attempts: 10, Correct: 8, Mastery: 0.9,
			AttemptHistory: []models.Attempt{{Correct: true, Timestamp: today}}},
		{TopicID: "b", Attempts: 10, Correct: 2, Mastery: 0.25},
		{TopicID: "c", Attempts: 4, Correct: 2, Mastery: 0.5},
		{TopicID: "untouched"},
	}

	r := BuildReport(progress, today)

	assert.Equal(t, 24, r.TotalAttempts)
	assert.Equal(t, 12, r.TotalCorrect)
	assert.InDelta(t, 50.0, r.OverallAccuracy, 1e-9)
	assert.InDelta(t, (0.9+0.25+0.5)/3, r.AverageMastery, 1e-9)
	assert.Equal(t, 1, r.TopicsMastered)
	assert.Equal(t, 1, r.TopicsInProgress)
	assert.Equal(t, 2, r.TopicsStruggling) // the struggling topic plus the untouched one
	assert.Equal(t, 1, r.StudyStreak)
}
