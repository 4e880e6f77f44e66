package repository

import (
	"github.com/lshigami/Quagsire/internal/model"
	"gorm.io/gorm"
)

// AttemptRepository owns the historical record of finalized quiz sessions and
// the aggregate statistics computed over them.
type AttemptRepository interface {
	Create(attempt *model.QuizAttempt) error
	FindAllByUser(userID string) ([]model.QuizAttempt, error)
	StatsForUser(userID string) (*model.QuizStats, error)
}

type attemptRepository struct {
	db *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) AttemptRepository {
	return &attemptRepository{db: db}
}

func (r *attemptRepository) Create(attempt *model.QuizAttempt) error {
	return r.db.Create(attempt).Error
}

func (r *attemptRepository) FindAllByUser(userID string) ([]model.QuizAttempt, error) {
	var attempts []model.QuizAttempt
	err := r.db.Where("user_id = ?", userID).Order("completed_at DESC").Find(&attempts).Error
	return attempts, err
}

// StatsForUser aggregates finalized attempts only. Percentages are computed
// per attempt, then averaged / maxed, so quizzes of different lengths weigh
// equally.
func (r *attemptRepository) StatsForUser(userID string) (*model.QuizStats, error) {
	var row struct {
		TotalQuizzes   int
		AverageScore   float64
		BestScore      float64
		TotalCorrect   int
		TotalQuestions int
	}
	err := r.db.Model(&model.QuizAttempt{}).
		Select(`COUNT(*) as total_quizzes,
			COALESCE(AVG(CASE WHEN total_possible > 0 THEN score / total_possible * 100 ELSE 0 END), 0) as average_score,
			COALESCE(MAX(CASE WHEN total_possible > 0 THEN score / total_possible * 100 ELSE 0 END), 0) as best_score,
			COALESCE(SUM(correct_count), 0) as total_correct,
			COALESCE(SUM(total_questions), 0) as total_questions`).
		Where("user_id = ?", userID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &model.QuizStats{
		TotalQuizzes:   row.TotalQuizzes,
		AverageScore:   row.AverageScore,
		BestScore:      row.BestScore,
		TotalCorrect:   row.TotalCorrect,
		TotalQuestions: row.TotalQuestions,
	}
	if stats.TotalQuestions > 0 {
		stats.AccuracyRate = float64(stats.TotalCorrect) / float64(stats.TotalQuestions) * 100
	}
	return stats, nil
}
