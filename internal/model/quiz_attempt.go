package model

import (
	"time"

	"gorm.io/gorm"
)

// QuizAttempt is the immutable historical record a session becomes when it is
// finalized. Aggregate statistics are computed over these rows only.
type QuizAttempt struct {
	ID               uint           `gorm:"primarykey" json:"id"`
	SessionID        string         `json:"session_id" gorm:"not null;uniqueIndex"`
	UserID           string         `json:"user_id" gorm:"not null;index"`
	Difficulty       string         `json:"difficulty" gorm:"not null"`
	Score            float64        `json:"score"`
	TotalPossible    float64        `json:"total_possible"`
	CorrectCount     int            `json:"correct_count"`
	TotalQuestions   int            `json:"total_questions"`
	TimeTakenSeconds float64        `json:"time_taken_seconds"`
	CompletedAt      time.Time      `json:"completed_at" gorm:"autoCreateTime"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}

// QuizStats is the aggregate over a user's finalized attempts. Percent fields
// are in [0, 100].
type QuizStats struct {
	TotalQuizzes   int     `json:"total_quizzes"`
	AverageScore   float64 `json:"average_score"`
	BestScore      float64 `json:"best_score"`
	TotalCorrect   int     `json:"total_correct"`
	TotalQuestions int     `json:"total_questions"`
	AccuracyRate   float64 `json:"accuracy_rate"`
}
