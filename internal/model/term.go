package model

import (
	"time"

	"gorm.io/gorm"
)

const (
	DifficultyBeginner     = "beginner"
	DifficultyIntermediate = "intermediate"
	DifficultyAdvanced     = "advanced"
)

// SlangTerm is one lexicon entry. Meaning may hold several `;`-separated
// alternatives; only the first clause is used as quiz answer text.
type SlangTerm struct {
	ID           uint           `gorm:"primarykey" json:"id"`
	Name         string         `json:"name" gorm:"not null;uniqueIndex"`
	Meaning      string         `json:"meaning" gorm:"type:text;not null"`
	Category     string         `json:"category" gorm:"not null;index"`
	Difficulty   string         `json:"difficulty" gorm:"not null;index"` // "beginner", "intermediate", "advanced"
	ExampleUsage string         `json:"example_usage,omitempty" gorm:"type:text"`
	QuizEligible bool           `json:"quiz_eligible" gorm:"default:true;index"`
	TimesQuizzed int            `json:"times_quizzed" gorm:"default:0"`
	TimesCorrect int            `json:"times_correct" gorm:"default:0"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}
