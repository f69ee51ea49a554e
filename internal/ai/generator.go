// Package ai is a thin client around the question-generation model.
// Prompting sophistication is deliberately out of scope; the engine only
// cares that a question with a known correct option comes back.
package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/example/boilerbuddy/internal/engine"
	"github.com/example/boilerbuddy/pkg/models"
	openai "github.com/sashabaranov/go-openai"
)

const systemPrompt = "You are a quiz generator for a study app. " +
	"Given a topic and difficulty, produce one multiple-choice question. " +
	"Respond with JSON only: {\"prompt\": string, \"options\": [4 strings], " +
	"\"correct_index\": int, \"explanation\": string}."

// Generator produces quiz questions through the OpenAI chat API
type Generator struct {
	client      *openai.Client
	model       string
	temperature float32
}

// New creates a generator from the OPENAI_API_KEY environment variable
func New() (*Generator, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is not set")
	}

	return &Generator{
		client:      openai.NewClient(apiKey),
		model:       openai.GPT4oMini,
		temperature: 0.7,
	}, nil
}

// generated mirrors the JSON the model is asked to return
type generated struct {
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation"`
}

// GenerateQuestion asks the model for one question on the topic
func (g *Generator) GenerateQuestion(ctx context.Context, topic models.Topic, difficulty engine.Difficulty) (*models.Question, error) {
	prompt := fmt.Sprintf("Topic: %s. Difficulty: %s. Write one %s multiple-choice question about %s with exactly four options.",
		topic.Name, difficulty, difficulty, topic.Name)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: g.temperature,
		MaxTokens:   400,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to generate question: %v", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no response choices returned")
	}

	var out generated
	content := strings.TrimSpace(resp.Choices[0].Message.Content)
	if err := json.Unmarshal([]byte(content), &out); err != nil {
		return nil, fmt.Errorf("failed to decode question JSON: %v", err)
	}
	if out.Prompt == "" || len(out.Options) < 2 || out.CorrectIndex < 0 || out.CorrectIndex >= len(out.Options) {
		return nil, fmt.Errorf("model returned a malformed question")
	}

	return &models.Question{
		Prompt:       out.Prompt,
		Options:      out.Options,
		CorrectIndex: out.CorrectIndex,
		Explanation:  out.Explanation,
	}, nil
}

// GenerateQuestionWithFallback falls back to a canned recall prompt when
// the API is unavailable, so the study loop keeps working offline.
func (g *Generator) GenerateQuestionWithFallback(ctx context.Context, topic models.Topic, difficulty engine.Difficulty) *models.Question {
	question, err := g.GenerateQuestion(ctx, topic, difficulty)
	if err != nil {
		log.Printf("Error generating question for %q: %v", topic.Name, err)
		return FallbackQuestion(topic)
	}
	return question
}

// Offline serves the fallback question only, for deployments without an
// API key.
type Offline struct{}

// GenerateQuestion returns the canned self-assessment question
func (Offline) GenerateQuestion(_ context.Context, topic models.Topic, _ engine.Difficulty) (*models.Question, error) {
	return FallbackQuestion(topic), nil
}

// FallbackQuestion is a deterministic self-assessment question used when
// no generator is configured.
func FallbackQuestion(topic models.Topic) *models.Question {
	return &models.Question{
		TopicID:   topic.ID,
		TopicName: topic.Name,
		Prompt:    fmt.Sprintf("Without looking at your notes, can you explain the key ideas of %s?", topic.Name),
		Options:   []string{"Yes, confidently", "Not yet"},
		// Self-graded: the first option marks a successful recall
		CorrectIndex: 0,
	}
}
