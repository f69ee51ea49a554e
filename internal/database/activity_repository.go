package database

import (
	"fmt"
	"time"

	"github.com/example/boilerbuddy/pkg/models"
	"github.com/google/uuid"
)

// ActivityRepository handles database operations for the activity feed
type ActivityRepository struct{}

// NewActivityRepository creates a new repository instance
func NewActivityRepository() *ActivityRepository {
	return &ActivityRepository{}
}

// Insert appends an event to a user's feed
func (r *ActivityRepository) Insert(event *models.ActivityEvent) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	_, err := DB.Exec(`
		INSERT INTO activity_feed (id, user_id, event_type, message, xp_delta, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		event.ID, event.UserID, event.EventType, event.Message, event.XPDelta, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert activity event: %v", err)
	}
	return nil
}

// GetRecentForUser returns a user's latest events, newest first
func (r *ActivityRepository) GetRecentForUser(userID int64, limit int) ([]models.ActivityEvent, error) {
	var events []models.ActivityEvent
	err := DB.Select(&events, `
		SELECT * FROM activity_feed
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity for user %d: %v", userID, err)
	}
	return events, nil
}

// GetRecent returns the latest events across all users, newest first
func (r *ActivityRepository) GetRecent(limit int) ([]models.ActivityEvent, error) {
	var events []models.ActivityEvent
	err := DB.Select(&events, `
		SELECT * FROM activity_feed
		ORDER BY created_at DESC, id DESC
		LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent activity: %v", err)
	}
	return events, nil
}
