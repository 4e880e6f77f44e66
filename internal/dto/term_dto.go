package dto

import "time"

// TermCreateDTO is the admin payload for adding a lexicon entry.
type TermCreateDTO struct {
	Name         string `json:"name" binding:"required"`
	Meaning      string `json:"meaning" binding:"required"`
	Category     string `json:"category" binding:"required"`
	Difficulty   string `json:"difficulty" binding:"required,oneof=beginner intermediate advanced"`
	ExampleUsage string `json:"example_usage"`
	QuizEligible *bool  `json:"quiz_eligible"` // defaults to true when omitted
}

type TermResponseDTO struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Meaning      string    `json:"meaning"`
	Category     string    `json:"category"`
	Difficulty   string    `json:"difficulty"`
	ExampleUsage string    `json:"example_usage,omitempty"`
	QuizEligible bool      `json:"quiz_eligible"`
	TimesQuizzed int       `json:"times_quizzed"`
	TimesCorrect int       `json:"times_correct"`
	CreatedAt    time.Time `json:"created_at"`
}
