package database

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/example/boilerbuddy/pkg/models"
)

// UserRepository handles database operations for users
type UserRepository struct{}

// NewUserRepository creates a new repository instance
func NewUserRepository() *UserRepository {
	return &UserRepository{}
}

// GetByID returns a user by primary key
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %d: %v", id, err)
	}
	return &user, nil
}

// GetByUsername returns a user by username, or nil when absent
func (r *UserRepository) GetByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Get(&user, "SELECT * FROM users WHERE username = $1", username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %v", username, err)
	}
	return &user, nil
}

// Create inserts a new user
func (r *UserRepository) Create(user *models.User) error {
	if Type() == "sqlite" {
		result, err := DB.Exec(
			`INSERT INTO users (username, full_name, major, graduation_year) VALUES ($1, $2, $3, $4)`,
			user.Username, user.FullName, user.Major, user.GraduationYear,
		)
		if err != nil {
			return fmt.Errorf("failed to create user: %v", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return err
		}
		user.ID = id
		return nil
	}

	return DB.QueryRow(
		`INSERT INTO users (username, full_name, major, graduation_year) VALUES ($1, $2, $3, $4) RETURNING id`,
		user.Username, user.FullName, user.Major, user.GraduationYear,
	).Scan(&user.ID)
}

// GetAll returns every registered user
func (r *UserRepository) GetAll() ([]models.User, error) {
	var users []models.User
	if err := DB.Select(&users, "SELECT * FROM users ORDER BY id"); err != nil {
		return nil, fmt.Errorf("failed to get users: %v", err)
	}
	return users, nil
}

// AddXP atomically increments a user's XP and returns the new total
func (r *UserRepository) AddXP(userID int64, delta int) (int, error) {
	_, err := DB.Exec(
		"UPDATE users SET total_xp = total_xp + $1, updated_at = $2 WHERE id = $3",
		delta, time.Now(), userID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to add xp for user %d: %v", userID, err)
	}

	var total int
	if err := DB.Get(&total, "SELECT total_xp FROM users WHERE id = $1", userID); err != nil {
		return 0, fmt.Errorf("failed to read xp for user %d: %v", userID, err)
	}
	return total, nil
}

// SetStudyStreak stores the recomputed daily streak
func (r *UserRepository) SetStudyStreak(userID int64, streak int) error {
	_, err := DB.Exec(
		"UPDATE users SET study_streak = $1, updated_at = $2 WHERE id = $3",
		streak, time.Now(), userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set streak for user %d: %v", userID, err)
	}
	return nil
}
