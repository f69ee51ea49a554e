// Package quiz orchestrates answer submissions and question selection.
// It is the only writer of TopicProgress records: each submission runs
// the engine transitions inside a per-(user, topic) critical section so
// concurrent submissions cannot lose updates.
package quiz

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/example/boilerbuddy/internal/analytics"
	"github.com/example/boilerbuddy/internal/engine"
	"github.com/example/boilerbuddy/internal/gamification"
	"github.com/example/boilerbuddy/pkg/models"
)

// Storage contracts the service depends on. Satisfied by the database
// repositories; tests substitute in-memory fakes.
type ProgressStore interface {
	GetByUserAndTopic(userID int64, topicID string) (*models.TopicProgress, error)
	GetAllForUser(userID int64) ([]*models.TopicProgress, error)
	CreateOrUpdate(progress *models.TopicProgress) error
}

type AttemptStore interface {
	Insert(attempt *models.Attempt) error
	GetAllForUser(userID int64) ([]models.Attempt, error)
}

type UserStore interface {
	GetByID(id int64) (*models.User, error)
	AddXP(userID int64, delta int) (int, error)
	SetStudyStreak(userID int64, streak int) error
}

type AchievementStore interface {
	GetCatalog() ([]models.Achievement, error)
	GetUnlockedIDs(userID int64) (map[int64]bool, error)
	Unlock(userID, achievementID int64) error
}

type ActivityStore interface {
	Insert(event *models.ActivityEvent) error
}

type TopicStore interface {
	GetAll() ([]models.Topic, error)
}

// QuestionGenerator produces question text for a topic and difficulty.
// Implemented by the AI client; question wording is its problem.
type QuestionGenerator interface {
	GenerateQuestion(ctx context.Context, topic models.Topic, difficulty engine.Difficulty) (*models.Question, error)
}

// Service wires the learning engine to storage and gamification
type Service struct {
	progress     ProgressStore
	attempts     AttemptStore
	users        UserStore
	achievements AchievementStore
	activity     ActivityStore
	topics       TopicStore
	generator    QuestionGenerator

	now func() time.Time

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService creates a quiz service over the given stores
func NewService(progress ProgressStore, attempts AttemptStore, users UserStore,
	achievements AchievementStore, activity ActivityStore, topics TopicStore,
	generator QuestionGenerator) *Service {
	return &Service{
		progress:     progress,
		attempts:     attempts,
		users:        users,
		achievements: achievements,
		activity:     activity,
		topics:       topics,
		generator:    generator,
		now:          time.Now,
		locks:        make(map[string]*sync.Mutex),
	}
}

// lockRecord serializes access to one (user, topic) record
func (s *Service) lockRecord(userID int64, topicID string) func() {
	key := fmt.Sprintf("%d/%s", userID, topicID)

	s.mu.Lock()
	l, ok := s.locks[key]
	if !ok {
		l = &sync.Mutex{}
		s.locks[key] = l
	}
	s.mu.Unlock()

	l.Lock()
	return l.Unlock
}

// SubmitRequest is one answered question
type SubmitRequest struct {
	UserID        int64
	TopicID       string
	Correct       bool
	Difficulty    engine.Difficulty
	AnswerSeconds float64
	UsedGuideMe   bool
}

// SubmitResult reports everything that changed from one answer
type SubmitResult struct {
	Progress        *models.TopicProgress      `json:"progress"`
	XPAwarded       int                        `json:"xp_awarded"`
	TotalXP         int                        `json:"total_xp"`
	LevelUp         bool                       `json:"level_up"`
	LevelProgress   gamification.LevelProgress `json:"level_progress"`
	LevelRewards    []string                   `json:"level_rewards,omitempty"`
	NewAchievements []models.Achievement       `json:"new_achievements"`
	StudyStreak     int                        `json:"study_streak"`
}

// SubmitAnswer records an answer: mastery and streak update, SM-2
// scheduling, attempt history, then XP, level and achievement sweeps.
func (s *Service) SubmitAnswer(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if req.TopicID == "" {
		return nil, fmt.Errorf("topic_id is required")
	}

	unlock := s.lockRecord(req.UserID, req.TopicID)
	defer unlock()

	now := s.now()

	p, err := s.progress.GetByUserAndTopic(req.UserID, req.TopicID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		p = models.NewTopicProgress(req.UserID, req.TopicID)
	}
	firstAttempt := p.Attempts == 0

	// Retention at answer time, recorded with the attempt for analytics
	retention, err := engine.EstimateRetention(p.LastReviewed, p.Mastery, now)
	if err != nil {
		return nil, err
	}

	engine.ApplyAnswer(p, req.Correct, now)
	attempt := &p.AttemptHistory[len(p.AttemptHistory)-1]
	attempt.Retention = retention

	quality := engine.DeriveQuality(req.Correct, p.StreakCorrect, req.AnswerSeconds)
	interval, newEF, reviewCount, err := engine.ScheduleNextReview(p.EasinessFactor, p.ReviewCount, p.IntervalDays, quality)
	if err != nil {
		return nil, err
	}

	p.EasinessFactor = newEF
	p.IntervalDays = interval
	p.ReviewCount = reviewCount
	reviewed := now
	p.LastReviewed = &reviewed
	next := now.AddDate(0, 0, interval)
	p.NextReview = &next

	if err := s.progress.CreateOrUpdate(p); err != nil {
		return nil, err
	}
	if err := s.attempts.Insert(attempt); err != nil {
		return nil, err
	}

	return s.settleRewards(req, p, firstAttempt, now)
}

// settleRewards applies the gamification side of a submission
func (s *Service) settleRewards(req SubmitRequest, p *models.TopicProgress, firstAttempt bool, now time.Time) (*SubmitResult, error) {
	user, err := s.users.GetByID(req.UserID)
	if err != nil {
		return nil, err
	}

	all, err := s.StateForUser(req.UserID)
	if err != nil {
		return nil, err
	}

	streak := analytics.StudyStreak(all, now)
	if streak != user.StudyStreak {
		if err := s.users.SetStudyStreak(req.UserID, streak); err != nil {
			return nil, err
		}
	}

	xp := gamification.CalculateXP(gamification.XPInput{
		Difficulty:     req.Difficulty,
		Correct:        req.Correct,
		IsFirstAttempt: firstAttempt,
		AnswerSeconds:  req.AnswerSeconds,
		UsedGuideMe:    req.UsedGuideMe,
		StudyStreak:    streak,
	})

	oldLevel := gamification.LevelFromXP(user.TotalXP)
	total := user.TotalXP
	if xp > 0 {
		if total, err = s.users.AddXP(req.UserID, xp); err != nil {
			return nil, err
		}
	}

	result := &SubmitResult{
		Progress:    p,
		XPAwarded:   xp,
		TotalXP:     total,
		StudyStreak: streak,
	}

	newLevel := gamification.LevelFromXP(total)
	if newLevel > oldLevel {
		result.LevelUp = true
		result.LevelRewards = gamification.LevelRewards(newLevel)
		s.recordActivity(req.UserID, models.ActivityLevelUp, gamification.LevelUpMessage(newLevel), 0)
	}

	earned, err := s.sweepAchievements(req.UserID, all, streak, now)
	if err != nil {
		return nil, err
	}
	result.NewAchievements = earned
	for _, a := range earned {
		if a.XPReward > 0 {
			if total, err = s.users.AddXP(req.UserID, a.XPReward); err != nil {
				return nil, err
			}
		}
		s.recordActivity(req.UserID, models.ActivityAchievement,
			fmt.Sprintf("Unlocked achievement: %s", a.Name), a.XPReward)
	}

	result.TotalXP = total
	result.LevelProgress = gamification.Progress(total)
	return result, nil
}

// sweepAchievements evaluates the catalog against fresh aggregate stats
func (s *Service) sweepAchievements(userID int64, all []*models.TopicProgress, streak int, now time.Time) ([]models.Achievement, error) {
	catalog, err := s.achievements.GetCatalog()
	if err != nil {
		return nil, err
	}
	unlocked, err := s.achievements.GetUnlockedIDs(userID)
	if err != nil {
		return nil, err
	}

	stats := gamification.UserStats{
		StudyStreak:     streak,
		LastAttemptHour: now.Hour(),
	}
	for _, p := range all {
		stats.TotalAttempts += p.Attempts
		stats.TotalCorrect += p.Correct
		if p.StreakCorrect > stats.MaxStreakCorrect {
			stats.MaxStreakCorrect = p.StreakCorrect
		}
		if p.Mastery >= gamification.MasteredThreshold {
			stats.MasteredTopics++
		}
	}

	earned := gamification.NewlyEarned(catalog, unlocked, stats)
	for _, a := range earned {
		if err := s.achievements.Unlock(userID, a.ID); err != nil {
			return nil, err
		}
	}
	return earned, nil
}

func (s *Service) recordActivity(userID int64, eventType, message string, xpDelta int) {
	// Feed entries are best-effort; a failed insert doesn't fail the answer
	_ = s.activity.Insert(&models.ActivityEvent{
		UserID:    userID,
		EventType: eventType,
		Message:   message,
		XPDelta:   xpDelta,
	})
}

// StateForUser loads every progress record with its attempt history
func (s *Service) StateForUser(userID int64) ([]*models.TopicProgress, error) {
	all, err := s.progress.GetAllForUser(userID)
	if err != nil {
		return nil, err
	}

	attempts, err := s.attempts.GetAllForUser(userID)
	if err != nil {
		return nil, err
	}

	byTopic := make(map[string][]models.Attempt)
	for _, a := range attempts {
		byTopic[a.TopicID] = append(byTopic[a.TopicID], a)
	}
	for _, p := range all {
		p.AttemptHistory = byTopic[p.TopicID]
	}
	return all, nil
}

// NextQuestion picks a topic (explicit or ranked), selects a difficulty
// and asks the generator for a question.
func (s *Service) NextQuestion(ctx context.Context, userID int64, topicID string) (*models.Question, error) {
	catalog, err := s.topics.GetAll()
	if err != nil {
		return nil, err
	}
	if len(catalog) == 0 {
		return nil, fmt.Errorf("no topics loaded")
	}

	byID := make(map[string]models.Topic, len(catalog))
	order := make(map[string]int, len(catalog))
	for i, t := range catalog {
		byID[t.ID] = t
		order[t.ID] = i
	}

	if topicID == "" {
		topicID, err = s.pickTopic(userID, catalog, order)
		if err != nil {
			return nil, err
		}
	}

	topic, ok := byID[topicID]
	if !ok {
		return nil, fmt.Errorf("topic %q not found", topicID)
	}

	p, err := s.progress.GetByUserAndTopic(userID, topicID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		// First contact with the topic creates the zero-valued record
		p = models.NewTopicProgress(userID, topicID)
		if err := s.progress.CreateOrUpdate(p); err != nil {
			return nil, err
		}
	}

	difficulty := engine.SelectDifficulty(p)

	question, err := s.generator.GenerateQuestion(ctx, topic, difficulty)
	if err != nil {
		return nil, fmt.Errorf("failed to generate question: %v", err)
	}
	question.TopicID = topic.ID
	question.TopicName = topic.Name
	question.Difficulty = string(difficulty)
	return question, nil
}

// pickTopic ranks all catalog topics by priority and takes the winner.
// Topics without a progress record rank as unseen.
func (s *Service) pickTopic(userID int64, catalog []models.Topic, order map[string]int) (string, error) {
	existing, err := s.progress.GetAllForUser(userID)
	if err != nil {
		return "", err
	}

	have := make(map[string]bool, len(existing))
	for _, p := range existing {
		have[p.TopicID] = true
	}
	for _, t := range catalog {
		if !have[t.ID] {
			existing = append(existing, models.NewTopicProgress(userID, t.ID))
		}
	}

	ranked := engine.RankTopics(existing, order, s.now())
	if len(ranked) == 0 {
		return "", fmt.Errorf("no topics to rank")
	}
	return ranked[0].TopicID, nil
}
