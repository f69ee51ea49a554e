package models

import "time"

// Topic represents an entry in the topic catalog extracted from study material
type Topic struct {
	ID                string    `json:"topic_id" db:"id"`
	Name              string    `json:"name" db:"name"`
	Coverage          string    `json:"coverage" db:"coverage"` // e.g. "practiced", "mentioned"
	FrequencyEstimate int       `json:"frequency_estimate" db:"frequency_estimate"`
	Position          int       `json:"position" db:"position"` // catalog order, used as a stable tie-breaker
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}
