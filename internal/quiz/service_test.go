package quiz

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/example/boilerbuddy/internal/engine"
	"github.com/example/boilerbuddy/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// In-memory fakes for the store interfaces

type fakeProgress struct {
	records map[string]*models.TopicProgress
}

func (f *fakeProgress) key(userID int64, topicID string) string {
	return fmt.Sprintf("%d/%s", userID, topicID)
}

func (f *fakeProgress) GetByUserAndTopic(userID int64, topicID string) (*models.TopicProgress, error) {
	return f.records[f.key(userID, topicID)], nil
}

func (f *fakeProgress) GetAllForUser(userID int64) ([]*models.TopicProgress, error) {
	var out []*models.TopicProgress
	for _, p := range f.records {
		if p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeProgress) CreateOrUpdate(p *models.TopicProgress) error {
	f.records[f.key(p.UserID, p.TopicID)] = p
	return nil
}

type fakeAttempts struct {
	attempts []models.Attempt
}

func (f *fakeAttempts) Insert(a *models.Attempt) error {
	f.attempts = append(f.attempts, *a)
	return nil
}

func (f *fakeAttempts) GetAllForUser(userID int64) ([]models.Attempt, error) {
	var out []models.Attempt
	for _, a := range f.attempts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	return out, nil
}

type fakeUsers struct {
	users map[int64]*models.User
}

func (f *fakeUsers) GetByID(id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, fmt.Errorf("user %d not found", id)
	}
	return u, nil
}

func (f *fakeUsers) AddXP(userID int64, delta int) (int, error) {
	f.users[userID].TotalXP += delta
	return f.users[userID].TotalXP, nil
}

func (f *fakeUsers) SetStudyStreak(userID int64, streak int) error {
	f.users[userID].StudyStreak = streak
	return nil
}

type fakeAchievements struct {
	catalog  []models.Achievement
	unlocked map[int64]map[int64]bool
}

func (f *fakeAchievements) GetCatalog() ([]models.Achievement, error) { return f.catalog, nil }

func (f *fakeAchievements) GetUnlockedIDs(userID int64) (map[int64]bool, error) {
	out := make(map[int64]bool)
	for id := range f.unlocked[userID] {
		out[id] = true
	}
	return out, nil
}

func (f *fakeAchievements) Unlock(userID, achievementID int64) error {
	if f.unlocked[userID] == nil {
		f.unlocked[userID] = make(map[int64]bool)
	}
	f.unlocked[userID][achievementID] = true
	return nil
}

type fakeActivity struct {
	events []models.ActivityEvent
}

func (f *fakeActivity) Insert(e *models.ActivityEvent) error {
	f.events = append(f.events, *e)
	return nil
}

type fakeTopics struct {
	topics []models.Topic
}

func (f *fakeTopics) GetAll() ([]models.Topic, error) { return f.topics, nil }

type fakeGenerator struct {
	lastTopic      models.Topic
	lastDifficulty engine.Difficulty
}

func (f *fakeGenerator) GenerateQuestion(_ context.Context, topic models.Topic, difficulty engine.Difficulty) (*models.Question, error) {
	f.lastTopic = topic
	f.lastDifficulty = difficulty
	return &models.Question{Prompt: "generated", Options: []string{"a", "b"}, CorrectIndex: 0}, nil
}

type testEnv struct {
	svc          *Service
	progress     *fakeProgress
	attempts     *fakeAttempts
	users        *fakeUsers
	achievements *fakeAchievements
	activity     *fakeActivity
	topics       *fakeTopics
	generator    *fakeGenerator
	now          time.Time
}

func newTestEnv(t *testing.T, catalog []models.Achievement) *testEnv {
	t.Helper()

	env := &testEnv{
		progress:     &fakeProgress{records: make(map[string]*models.TopicProgress)},
		attempts:     &fakeAttempts{},
		users:        &fakeUsers{users: map[int64]*models.User{1: {ID: 1, Username: "sam"}}},
		achievements: &fakeAchievements{catalog: catalog, unlocked: make(map[int64]map[int64]bool)},
		activity:     &fakeActivity{},
		topics: &fakeTopics{topics: []models.Topic{
			{ID: "pointers", Name: "Pointers", Position: 0},
			{ID: "slices", Name: "Slices", Position: 1},
		}},
		generator: &fakeGenerator{},
		now:       time.Date(2025, 3, 10, 14, 0, 0, 0, time.UTC),
	}

	env.svc = NewService(env.progress, env.attempts, env.users,
		env.achievements, env.activity, env.topics, env.generator)
	env.svc.now = func() time.Time { return env.now }
	return env
}

func TestSubmitAnswerFirstCorrect(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 1, Name: "First Step", XPReward: 10,
			RequirementType: models.RequirementQuestions, RequirementValue: "1"},
		{ID: 2, Name: "Centurion", XPReward: 200,
			RequirementType: models.RequirementQuestions, RequirementValue: "100"},
	}
	env := newTestEnv(t, catalog)

	result, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{
		UserID:        1,
		TopicID:       "pointers",
		Correct:       true,
		Difficulty:    engine.DifficultyMedium,
		AnswerSeconds: 45,
	})
	require.NoError(t, err)

	p := result.Progress
	assert.Equal(t, 1, p.Attempts)
	assert.Equal(t, 1, p.Correct)
	assert.InDelta(t, 2.0/3.0, p.Mastery, 1e-9)
	assert.Equal(t, 1, p.StreakCorrect)
	assert.InDelta(t, 2.5, p.EasinessFactor, 1e-9)
	assert.Equal(t, 1, p.IntervalDays)
	assert.Equal(t, 1, p.ReviewCount)

	require.NotNil(t, p.LastReviewed)
	assert.Equal(t, env.now, *p.LastReviewed)
	require.NotNil(t, p.NextReview)
	assert.Equal(t, env.now.AddDate(0, 0, 1), *p.NextReview)

	// The attempt was recorded with full pre-answer retention
	require.Len(t, env.attempts.attempts, 1)
	assert.InDelta(t, 1.0, env.attempts.attempts[0].Retention, 1e-9)

	// 15 for a correct medium answer plus the first-attempt bonus
	assert.Equal(t, 25, result.XPAwarded)
	assert.Equal(t, 1, result.StudyStreak)

	// First Step unlocks and pays its reward on top
	require.Len(t, result.NewAchievements, 1)
	assert.Equal(t, "First Step", result.NewAchievements[0].Name)
	assert.Equal(t, 35, result.TotalXP)
	assert.False(t, result.LevelUp)

	require.Len(t, env.activity.events, 1)
	assert.Equal(t, models.ActivityAchievement, env.activity.events[0].EventType)
}

func TestSubmitAnswerIncorrectEarnsNothing(t *testing.T) {
	env := newTestEnv(t, nil)

	result, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{
		UserID:     1,
		TopicID:    "pointers",
		Correct:    false,
		Difficulty: engine.DifficultyHard,
	})
	require.NoError(t, err)

	assert.Equal(t, 0, result.XPAwarded)
	assert.Equal(t, 0, result.TotalXP)

	p := result.Progress
	assert.Equal(t, 1, p.Attempts)
	assert.Equal(t, 0, p.Correct)
	assert.InDelta(t, 1.0/3.0, p.Mastery, 1e-9)
	assert.Equal(t, 1, p.StreakWrong)
	assert.Equal(t, 0, p.ReviewCount)
	assert.Equal(t, 1, p.IntervalDays)
	assert.InDelta(t, 1.96, p.EasinessFactor, 1e-9)
}

func TestSubmitAnswerRequiresTopic(t *testing.T) {
	env := newTestEnv(t, nil)

	_, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{UserID: 1})
	require.Error(t, err)
}

func TestSubmitAnswerClimbsTheSchedule(t *testing.T) {
	env := newTestEnv(t, nil)

	yesterday := env.now.AddDate(0, 0, -1)
	env.progress.records["1/pointers"] = &models.TopicProgress{
		UserID: 1, TopicID: "pointers",
		Attempts: 1, Correct: 1, Mastery: 2.0 / 3.0, StreakCorrect: 1,
		EasinessFactor: 2.5, IntervalDays: 1, ReviewCount: 1,
		LastReviewed: &yesterday,
	}

	result, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{
		UserID:        1,
		TopicID:       "pointers",
		Correct:       true,
		Difficulty:    engine.DifficultyMedium,
		AnswerSeconds: 45,
	})
	require.NoError(t, err)

	p := result.Progress
	assert.Equal(t, 6, p.IntervalDays)
	assert.Equal(t, 2, p.ReviewCount)
	assert.Equal(t, 2, p.StreakCorrect)

	// Not the first attempt anymore, so base XP only
	assert.Equal(t, 15, result.XPAwarded)

	// A day elapsed since the last review, so some forgetting was recorded
	require.Len(t, env.attempts.attempts, 1)
	assert.Less(t, env.attempts.attempts[0].Retention, 1.0)
	assert.Greater(t, env.attempts.attempts[0].Retention, 0.0)
}

func TestSubmitAnswerLevelUp(t *testing.T) {
	env := newTestEnv(t, nil)
	env.users.users[1].TotalXP = 490

	result, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{
		UserID:     1,
		TopicID:    "pointers",
		Correct:    true,
		Difficulty: engine.DifficultyMedium,
	})
	require.NoError(t, err)

	assert.True(t, result.LevelUp)
	assert.Equal(t, 2, result.LevelProgress.Level)

	require.Len(t, env.activity.events, 1)
	assert.Equal(t, models.ActivityLevelUp, env.activity.events[0].EventType)
}

func TestSubmitAnswerAchievementUnlocksOnlyOnce(t *testing.T) {
	catalog := []models.Achievement{
		{ID: 1, Name: "First Step", XPReward: 10,
			RequirementType: models.RequirementQuestions, RequirementValue: "1"},
	}
	env := newTestEnv(t, catalog)

	first, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{
		UserID: 1, TopicID: "pointers", Correct: true, Difficulty: engine.DifficultyEasy,
	})
	require.NoError(t, err)
	require.Len(t, first.NewAchievements, 1)

	second, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{
		UserID: 1, TopicID: "pointers", Correct: true, Difficulty: engine.DifficultyEasy,
	})
	require.NoError(t, err)
	assert.Empty(t, second.NewAchievements)
}

func TestNextQuestionPrefersUnseenTopic(t *testing.T) {
	env := newTestEnv(t, nil)

	// Pointers was already studied, slices never touched
	reviewed := env.now.Add(-time.Hour)
	env.progress.records["1/pointers"] = &models.TopicProgress{
		UserID: 1, TopicID: "pointers", Attempts: 5, Correct: 4,
		Mastery: 5.0 / 7.0, LastReviewed: &reviewed,
	}

	q, err := env.svc.NextQuestion(context.Background(), 1, "")
	require.NoError(t, err)

	assert.Equal(t, "slices", q.TopicID)
	assert.Equal(t, "Slices", q.TopicName)
	assert.Equal(t, string(engine.DifficultyEasy), q.Difficulty)
	assert.Equal(t, "slices", env.generator.lastTopic.ID)

	// First contact persisted a zero-valued record
	created := env.progress.records["1/slices"]
	require.NotNil(t, created)
	assert.Equal(t, 0, created.Attempts)
	assert.InDelta(t, 2.5, created.EasinessFactor, 1e-9)
}

func TestNextQuestionExplicitTopic(t *testing.T) {
	env := newTestEnv(t, nil)

	q, err := env.svc.NextQuestion(context.Background(), 1, "pointers")
	require.NoError(t, err)
	assert.Equal(t, "pointers", q.TopicID)

	_, err = env.svc.NextQuestion(context.Background(), 1, "monads")
	require.Error(t, err)
}

func TestNextQuestionNoCatalog(t *testing.T) {
	env := newTestEnv(t, nil)
	env.topics.topics = nil

	_, err := env.svc.NextQuestion(context.Background(), 1, "")
	require.Error(t, err)
}

func TestStateForUserAttachesHistory(t *testing.T) {
	env := newTestEnv(t, nil)

	for i := 0; i < 3; i++ {
		_, err := env.svc.SubmitAnswer(context.Background(), SubmitRequest{
			UserID: 1, TopicID: "pointers", Correct: true, Difficulty: engine.DifficultyEasy,
		})
		require.NoError(t, err)
	}

	state, err := env.svc.StateForUser(1)
	require.NoError(t, err)
	require.Len(t, state, 1)
	assert.Len(t, state[0].AttemptHistory, 3)
}
