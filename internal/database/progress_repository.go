package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/boilerbuddy/pkg/models"
)

// ProgressRepository handles database operations for per-topic learning state
type ProgressRepository struct{}

// NewProgressRepository creates a new repository instance
func NewProgressRepository() *ProgressRepository {
	return &ProgressRepository{}
}

// GetByUserAndTopic returns progress for a user/topic pair, or nil when
// the record doesn't exist yet. Callers create records lazily.
func (r *ProgressRepository) GetByUserAndTopic(userID int64, topicID string) (*models.TopicProgress, error) {
	var progress models.TopicProgress
	err := DB.Get(&progress, "SELECT * FROM user_progress WHERE user_id = $1 AND topic_id = $2", userID, topicID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %v", err)
	}
	return &progress, nil
}

// GetAllForUser returns every progress record a user has
func (r *ProgressRepository) GetAllForUser(userID int64) ([]*models.TopicProgress, error) {
	var progress []*models.TopicProgress
	err := DB.Select(&progress, "SELECT * FROM user_progress WHERE user_id = $1 ORDER BY topic_id", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get progress for user %d: %v", userID, err)
	}
	return progress, nil
}

// CreateOrUpdate persists a progress record, inserting on first contact
func (r *ProgressRepository) CreateOrUpdate(progress *models.TopicProgress) error {
	now := time.Now()
	progress.UpdatedAt = now

	if Type() == "sqlite" {
		// SQLite can't combine ON CONFLICT with RETURNING on this
		// driver version, so probe for the row first.
		var existingID int64
		err := DB.QueryRow(
			"SELECT id FROM user_progress WHERE user_id = $1 AND topic_id = $2",
			progress.UserID, progress.TopicID,
		).Scan(&existingID)

		if err == nil {
			progress.ID = existingID
			return r.update(progress)
		}
		if err != sql.ErrNoRows {
			return fmt.Errorf("failed to probe progress: %v", err)
		}

		result, err := DB.Exec(`
			INSERT INTO user_progress (
				user_id, topic_id, attempts, correct, mastery, streak_correct, streak_wrong,
				easiness_factor, interval_days, review_count, last_reviewed, next_review,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
			progress.UserID, progress.TopicID, progress.Attempts, progress.Correct,
			progress.Mastery, progress.StreakCorrect, progress.StreakWrong,
			progress.EasinessFactor, progress.IntervalDays, progress.ReviewCount,
			progress.LastReviewed, progress.NextReview, now, now,
		)
		if err != nil {
			return fmt.Errorf("failed to insert progress: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		progress.ID = id
		return nil
	}

	return DB.QueryRow(`
		INSERT INTO user_progress (
			user_id, topic_id, attempts, correct, mastery, streak_correct, streak_wrong,
			easiness_factor, interval_days, review_count, last_reviewed, next_review
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (user_id, topic_id) DO UPDATE SET
			attempts = EXCLUDED.attempts,
			correct = EXCLUDED.correct,
			mastery = EXCLUDED.mastery,
			streak_correct = EXCLUDED.streak_correct,
			streak_wrong = EXCLUDED.streak_wrong,
			easiness_factor = EXCLUDED.easiness_factor,
			interval_days = EXCLUDED.interval_days,
			review_count = EXCLUDED.review_count,
			last_reviewed = EXCLUDED.last_reviewed,
			next_review = EXCLUDED.next_review,
			updated_at = NOW()
		RETURNING id`,
		progress.UserID, progress.TopicID, progress.Attempts, progress.Correct,
		progress.Mastery, progress.StreakCorrect, progress.StreakWrong,
		progress.EasinessFactor, progress.IntervalDays, progress.ReviewCount,
		progress.LastReviewed, progress.NextReview,
	).Scan(&progress.ID)
}

func (r *ProgressRepository) update(progress *models.TopicProgress) error {
	_, err := DB.Exec(`
		UPDATE user_progress SET
			attempts = $1, correct = $2, mastery = $3, streak_correct = $4, streak_wrong = $5,
			easiness_factor = $6, interval_days = $7, review_count = $8,
			last_reviewed = $9, next_review = $10, updated_at = $11
		WHERE id = $12`,
		progress.Attempts, progress.Correct, progress.Mastery,
		progress.StreakCorrect, progress.StreakWrong,
		progress.EasinessFactor, progress.IntervalDays, progress.ReviewCount,
		progress.LastReviewed, progress.NextReview, progress.UpdatedAt,
		progress.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update progress: %v", err)
	}
	return nil
}

// CountDueForUser counts topics whose next review has passed
func (r *ProgressRepository) CountDueForUser(userID int64, now time.Time) (int, error) {
	var count int
	err := DB.Get(&count,
		"SELECT COUNT(*) FROM user_progress WHERE user_id = $1 AND next_review IS NOT NULL AND next_review <= $2",
		userID, now,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to count due reviews: %v", err)
	}
	return count, nil
}

// GetDueTopicIDs lists topics whose scheduled review has passed
func (r *ProgressRepository) GetDueTopicIDs(userID int64, now time.Time) ([]string, error) {
	var ids []string
	err := DB.Select(&ids,
		"SELECT topic_id FROM user_progress WHERE user_id = $1 AND next_review IS NOT NULL AND next_review <= $2 ORDER BY next_review",
		userID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get due topics: %v", err)
	}
	return ids, nil
}
