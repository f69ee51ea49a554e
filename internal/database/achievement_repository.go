package database

import (
	"fmt"
	"time"

	"github.com/example/boilerbuddy/internal/gamification"
	"github.com/example/boilerbuddy/pkg/models"
)

// AchievementRepository handles database operations for achievements
type AchievementRepository struct{}

// NewAchievementRepository creates a new repository instance
func NewAchievementRepository() *AchievementRepository {
	return &AchievementRepository{}
}

// seedAchievements installs the built-in catalog on first run
func seedAchievements() error {
	for _, a := range gamification.DefaultCatalog() {
		_, err := DB.Exec(`
			INSERT INTO achievements (name, description, badge_icon, xp_reward, requirement_type, requirement_value)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (name) DO NOTHING`,
			a.Name, a.Description, a.BadgeIcon, a.XPReward, a.RequirementType, a.RequirementValue,
		)
		if err != nil {
			return fmt.Errorf("failed to seed achievement %s: %v", a.Name, err)
		}
	}
	return nil
}

// GetCatalog returns every achievement definition
func (r *AchievementRepository) GetCatalog() ([]models.Achievement, error) {
	var catalog []models.Achievement
	if err := DB.Select(&catalog, "SELECT * FROM achievements ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get achievements: %v", err)
	}
	return catalog, nil
}

// GetUnlockedIDs returns the set of achievements a user has already earned
func (r *AchievementRepository) GetUnlockedIDs(userID int64) (map[int64]bool, error) {
	var ids []int64
	err := DB.Select(&ids, "SELECT achievement_id FROM user_achievements WHERE user_id = $1", userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get unlocked achievements: %v", err)
	}

	unlocked := make(map[int64]bool, len(ids))
	for _, id := range ids {
		unlocked[id] = true
	}
	return unlocked, nil
}

// Unlock marks an achievement earned. Duplicate unlocks are ignored so
// an achievement can only ever transition locked -> unlocked once.
func (r *AchievementRepository) Unlock(userID, achievementID int64) error {
	_, err := DB.Exec(`
		INSERT INTO user_achievements (user_id, achievement_id, unlocked_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, achievement_id) DO NOTHING`,
		userID, achievementID, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("failed to unlock achievement %d: %v", achievementID, err)
	}
	return nil
}

// GetStatuses returns the whole catalog annotated with a user's unlocks
func (r *AchievementRepository) GetStatuses(userID int64) ([]models.AchievementStatus, error) {
	var statuses []models.AchievementStatus
	err := DB.Select(&statuses, `
		SELECT a.*,
		       CASE WHEN ua.id IS NOT NULL THEN TRUE ELSE FALSE END AS unlocked,
		       ua.unlocked_at
		FROM achievements a
		LEFT JOIN user_achievements ua ON a.id = ua.achievement_id AND ua.user_id = $1
		ORDER BY a.id`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement statuses: %v", err)
	}
	return statuses, nil
}
