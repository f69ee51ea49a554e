package ai

import (
	"context"
	"testing"

	"github.com/example/boilerbuddy/internal/engine"
	"github.com/example/boilerbuddy/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFallbackQuestion(t *testing.T) {
	topic := models.Topic{ID: "pointers", Name: "Pointers"}

	q := FallbackQuestion(topic)
	assert.Equal(t, "pointers", q.TopicID)
	assert.Contains(t, q.Prompt, "Pointers")
	require.Len(t, q.Options, 2)
	assert.Equal(t, 0, q.CorrectIndex)
}

func TestOfflineGenerator(t *testing.T) {
	topic := models.Topic{ID: "slices", Name: "Slices"}

	q, err := Offline{}.GenerateQuestion(context.Background(), topic, engine.DifficultyHard)
	require.NoError(t, err)
	assert.Equal(t, "slices", q.TopicID)
}

func TestNewRequiresAPIKey(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")

	_, err := New()
	require.Error(t, err)
}
