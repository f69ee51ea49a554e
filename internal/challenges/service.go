// Package challenges implements head-to-head topic duels between users.
package challenges

import (
	"fmt"
	"time"

	"github.com/example/boilerbuddy/pkg/models"
	"github.com/google/uuid"
)

// WinnerXPBonus is awarded to the winning side of a completed challenge
const WinnerXPBonus = 50

// DefaultLifetime is how long a challenge stays open before expiring
const DefaultLifetime = 7 * 24 * time.Hour

// Store is the persistence contract for challenges
type Store interface {
	Create(c *models.Challenge) error
	GetByID(id string) (*models.Challenge, error)
	GetForUser(userID int64) ([]models.Challenge, error)
	Update(c *models.Challenge) error
}

// UserStore awards XP to challenge winners
type UserStore interface {
	AddXP(userID int64, delta int) (int, error)
}

// ActivityStore records challenge outcomes in the feed
type ActivityStore interface {
	Insert(event *models.ActivityEvent) error
}

// Service manages the challenge lifecycle
type Service struct {
	store    Store
	users    UserStore
	activity ActivityStore
	now      func() time.Time
}

// NewService creates a challenge service
func NewService(store Store, users UserStore, activity ActivityStore) *Service {
	return &Service{store: store, users: users, activity: activity, now: time.Now}
}

// Create opens a challenge from one user to another on a topic
func (s *Service) Create(challengerID, opponentID int64, topicID string) (*models.Challenge, error) {
	if challengerID == opponentID {
		return nil, fmt.Errorf("cannot challenge yourself")
	}
	if topicID == "" {
		return nil, fmt.Errorf("topic_id is required")
	}

	now := s.now()
	c := &models.Challenge{
		ID:           uuid.NewString(),
		ChallengerID: challengerID,
		OpponentID:   opponentID,
		TopicID:      topicID,
		Status:       models.ChallengePending,
		CreatedAt:    now,
		ExpiresAt:    now.Add(DefaultLifetime),
	}
	if err := s.store.Create(c); err != nil {
		return nil, err
	}
	return c, nil
}

// Respond lets the opponent accept or decline a pending challenge
func (s *Service) Respond(challengeID string, userID int64, accept bool) (*models.Challenge, error) {
	c, err := s.store.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("challenge %s not found", challengeID)
	}
	if c.OpponentID != userID {
		return nil, fmt.Errorf("only the challenged user can respond")
	}
	if c.Status != models.ChallengePending {
		return nil, fmt.Errorf("challenge is %s, not pending", c.Status)
	}

	if accept {
		c.Status = models.ChallengeActive
	} else {
		c.Status = models.ChallengeDeclined
	}
	if err := s.store.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// SubmitScore records one side's quiz score. When both sides have
// submitted, the challenge completes and the winner takes the XP bonus.
func (s *Service) SubmitScore(challengeID string, userID int64, score int) (*models.Challenge, error) {
	c, err := s.store.GetByID(challengeID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, fmt.Errorf("challenge %s not found", challengeID)
	}
	if c.Status != models.ChallengeActive {
		return nil, fmt.Errorf("challenge is %s, not active", c.Status)
	}

	switch userID {
	case c.ChallengerID:
		if c.ChallengerScore != nil {
			return nil, fmt.Errorf("challenger already submitted a score")
		}
		c.ChallengerScore = &score
	case c.OpponentID:
		if c.OpponentScore != nil {
			return nil, fmt.Errorf("opponent already submitted a score")
		}
		c.OpponentScore = &score
	default:
		return nil, fmt.Errorf("user %d is not part of this challenge", userID)
	}

	if c.ChallengerScore != nil && c.OpponentScore != nil {
		s.complete(c)
	}

	if err := s.store.Update(c); err != nil {
		return nil, err
	}
	return c, nil
}

// complete resolves the winner. Ties complete without a winner.
func (s *Service) complete(c *models.Challenge) {
	now := s.now()
	c.Status = models.ChallengeCompleted
	c.CompletedAt = &now

	switch {
	case *c.ChallengerScore > *c.OpponentScore:
		c.WinnerID = &c.ChallengerID
	case *c.OpponentScore > *c.ChallengerScore:
		c.WinnerID = &c.OpponentID
	}

	if c.WinnerID != nil {
		_, _ = s.users.AddXP(*c.WinnerID, WinnerXPBonus)
		_ = s.activity.Insert(&models.ActivityEvent{
			UserID:    *c.WinnerID,
			EventType: models.ActivityChallengeWon,
			Message:   fmt.Sprintf("Won a challenge on %s", c.TopicID),
			XPDelta:   WinnerXPBonus,
		})
	}
}

// ForUser lists a user's challenges, newest first
func (s *Service) ForUser(userID int64) ([]models.Challenge, error) {
	return s.store.GetForUser(userID)
}
