package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/boilerbuddy/pkg/models"
)

// ChallengeRepository handles database operations for challenges
type ChallengeRepository struct{}

// NewChallengeRepository creates a new repository instance
func NewChallengeRepository() *ChallengeRepository {
	return &ChallengeRepository{}
}

// Create inserts a new challenge
func (r *ChallengeRepository) Create(c *models.Challenge) error {
	_, err := DB.Exec(`
		INSERT INTO challenges (id, challenger_id, opponent_id, topic_id, status, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.ChallengerID, c.OpponentID, c.TopicID, c.Status, c.CreatedAt, c.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create challenge: %v", err)
	}
	return nil
}

// GetByID returns a challenge, or nil when absent
func (r *ChallengeRepository) GetByID(id string) (*models.Challenge, error) {
	var c models.Challenge
	err := DB.Get(&c, "SELECT * FROM challenges WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get challenge %s: %v", id, err)
	}
	return &c, nil
}

// GetForUser lists challenges a user is involved in, newest first
func (r *ChallengeRepository) GetForUser(userID int64) ([]models.Challenge, error) {
	var challenges []models.Challenge
	err := DB.Select(&challenges, `
		SELECT * FROM challenges
		WHERE challenger_id = $1 OR opponent_id = $1
		ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get challenges for user %d: %v", userID, err)
	}
	return challenges, nil
}

// Update persists the mutable fields of a challenge
func (r *ChallengeRepository) Update(c *models.Challenge) error {
	_, err := DB.Exec(`
		UPDATE challenges SET
			status = $1, challenger_score = $2, opponent_score = $3,
			winner_id = $4, completed_at = $5
		WHERE id = $6`,
		c.Status, c.ChallengerScore, c.OpponentScore, c.WinnerID, c.CompletedAt, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update challenge %s: %v", c.ID, err)
	}
	return nil
}

// ExpireStale flips pending/active challenges past their deadline to
// expired and returns how many were affected.
func (r *ChallengeRepository) ExpireStale(now time.Time) (int64, error) {
	result, err := DB.Exec(`
		UPDATE challenges SET status = $1
		WHERE status IN ($2, $3) AND expires_at <= $4`,
		models.ChallengeExpired, models.ChallengePending, models.ChallengeActive, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to expire challenges: %v", err)
	}
	return result.RowsAffected()
}
