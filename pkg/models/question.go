package models

// Question is a generated quiz question served to a user
type Question struct {
	TopicID      string   `json:"topic_id"`
	TopicName    string   `json:"topic_name"`
	Difficulty   string   `json:"difficulty"` // "easy", "medium" or "hard"
	Prompt       string   `json:"prompt"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Explanation  string   `json:"explanation,omitempty"`
}
