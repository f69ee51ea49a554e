package database

import (
	"fmt"

	"github.com/example/boilerbuddy/pkg/models"
)

// TopicRepository handles database operations for the topic catalog
type TopicRepository struct{}

// NewTopicRepository creates a new repository instance
func NewTopicRepository() *TopicRepository {
	return &TopicRepository{}
}

// GetAll returns the full catalog in stable catalog order
func (r *TopicRepository) GetAll() ([]models.Topic, error) {
	var topics []models.Topic
	err := DB.Select(&topics, "SELECT * FROM topics ORDER BY position, id")
	if err != nil {
		return nil, fmt.Errorf("failed to get topics: %v", err)
	}
	return topics, nil
}

// GetByID returns a single catalog entry
func (r *TopicRepository) GetByID(id string) (*models.Topic, error) {
	var topic models.Topic
	err := DB.Get(&topic, "SELECT * FROM topics WHERE id = $1", id)
	if err != nil {
		return nil, fmt.Errorf("failed to get topic %s: %v", id, err)
	}
	return &topic, nil
}

// Upsert inserts or refreshes a catalog entry
func (r *TopicRepository) Upsert(topic *models.Topic) error {
	query := `
		INSERT INTO topics (id, name, coverage, frequency_estimate, position)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			coverage = EXCLUDED.coverage,
			frequency_estimate = EXCLUDED.frequency_estimate,
			position = EXCLUDED.position
	`
	_, err := DB.Exec(query, topic.ID, topic.Name, topic.Coverage, topic.FrequencyEstimate, topic.Position)
	if err != nil {
		return fmt.Errorf("failed to upsert topic %s: %v", topic.ID, err)
	}
	return nil
}

// Count returns the catalog size
func (r *TopicRepository) Count() (int, error) {
	var count int
	if err := DB.Get(&count, "SELECT COUNT(*) FROM topics"); err != nil {
		return 0, fmt.Errorf("failed to count topics: %v", err)
	}
	return count, nil
}
