package models

import "time"

// User represents a registered learner
type User struct {
	ID             int64     `json:"id" db:"id"`
	Username       string    `json:"username" db:"username"`
	FullName       string    `json:"full_name" db:"full_name"`
	Major          string    `json:"major" db:"major"`
	GraduationYear int       `json:"graduation_year" db:"graduation_year"`
	TotalXP        int       `json:"total_xp" db:"total_xp"`
	StudyStreak    int       `json:"study_streak" db:"study_streak"` // consecutive days with at least one attempt
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
