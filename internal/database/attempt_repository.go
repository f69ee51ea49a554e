package database

import (
	"fmt"

	"github.com/example/boilerbuddy/pkg/models"
	"github.com/google/uuid"
)

// AttemptRepository handles database operations for the attempt history
type AttemptRepository struct{}

// NewAttemptRepository creates a new repository instance
func NewAttemptRepository() *AttemptRepository {
	return &AttemptRepository{}
}

// Insert records one attempt and prunes the per-topic history down to
// the retention cap, oldest rows first.
func (r *AttemptRepository) Insert(attempt *models.Attempt) error {
	if attempt.ID == "" {
		attempt.ID = uuid.NewString()
	}

	_, err := DB.Exec(`
		INSERT INTO attempt_history (id, user_id, topic_id, correct, mastery_at_time, retention, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		attempt.ID, attempt.UserID, attempt.TopicID, attempt.Correct,
		attempt.MasteryAtTime, attempt.Retention, attempt.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to insert attempt: %v", err)
	}

	_, err = DB.Exec(`
		DELETE FROM attempt_history
		WHERE user_id = $1 AND topic_id = $2 AND id NOT IN (
			SELECT id FROM attempt_history
			WHERE user_id = $1 AND topic_id = $2
			ORDER BY timestamp DESC, id DESC
			LIMIT $3
		)`,
		attempt.UserID, attempt.TopicID, models.MaxAttemptHistory,
	)
	if err != nil {
		return fmt.Errorf("failed to prune attempt history: %v", err)
	}
	return nil
}

// GetRecentByTopic returns a topic's retained history, oldest first
func (r *AttemptRepository) GetRecentByTopic(userID int64, topicID string) ([]models.Attempt, error) {
	var attempts []models.Attempt
	err := DB.Select(&attempts, `
		SELECT * FROM attempt_history
		WHERE user_id = $1 AND topic_id = $2
		ORDER BY timestamp, id`,
		userID, topicID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt history: %v", err)
	}
	return attempts, nil
}

// GetAllForUser returns a user's retained history across topics, oldest first
func (r *AttemptRepository) GetAllForUser(userID int64) ([]models.Attempt, error) {
	var attempts []models.Attempt
	err := DB.Select(&attempts, `
		SELECT * FROM attempt_history
		WHERE user_id = $1
		ORDER BY timestamp, id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get attempt history: %v", err)
	}
	return attempts, nil
}
