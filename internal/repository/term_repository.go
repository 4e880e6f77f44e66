package repository

import (
	"errors"

	"github.com/lshigami/Quagsire/internal/model"
	"gorm.io/gorm"
)

// TermRepository is the lexicon catalog: the source of quiz terms and of
// per-category distractor material.
type TermRepository interface {
	Create(term *model.SlangTerm) error
	FindByName(name string) (*model.SlangTerm, error)
	FindAll(category, difficulty string) ([]model.SlangTerm, error)
	FindEligible(difficulty string, limit int, excludeNames []string) ([]model.SlangTerm, error)
	FindByCategory(category string) ([]model.SlangTerm, error)
	RecordQuizOutcome(name string, wasCorrect bool) error
	Delete(name string) error
}

type termRepository struct {
	db *gorm.DB
}

func NewTermRepository(db *gorm.DB) TermRepository {
	return &termRepository{db: db}
}

func (r *termRepository) Create(term *model.SlangTerm) error {
	return r.db.Create(term).Error
}

func (r *termRepository) FindByName(name string) (*model.SlangTerm, error) {
	var term model.SlangTerm
	if err := r.db.Where("name = ?", name).First(&term).Error; err != nil {
		return nil, err
	}
	return &term, nil
}

func (r *termRepository) FindAll(category, difficulty string) ([]model.SlangTerm, error) {
	var terms []model.SlangTerm
	query := r.db.Order("name ASC")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if difficulty != "" {
		query = query.Where("difficulty = ?", difficulty)
	}
	if err := query.Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *termRepository) FindEligible(difficulty string, limit int, excludeNames []string) ([]model.SlangTerm, error) {
	var terms []model.SlangTerm
	query := r.db.
		Where("quiz_eligible = ?", true).
		Where("difficulty = ?", difficulty)
	if len(excludeNames) > 0 {
		query = query.Where("name NOT IN ?", excludeNames)
	}
	// Least-quizzed terms first so coverage spreads across the lexicon.
	err := query.Order("times_quizzed ASC, name ASC").Limit(limit).Find(&terms).Error
	if err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *termRepository) FindByCategory(category string) ([]model.SlangTerm, error) {
	var terms []model.SlangTerm
	if err := r.db.Where("category = ?", category).Find(&terms).Error; err != nil {
		return nil, err
	}
	return terms, nil
}

func (r *termRepository) RecordQuizOutcome(name string, wasCorrect bool) error {
	updates := map[string]interface{}{
		"times_quizzed": gorm.Expr("times_quizzed + 1"),
	}
	if wasCorrect {
		updates["times_correct"] = gorm.Expr("times_correct + 1")
	}
	return r.db.Model(&model.SlangTerm{}).Where("name = ?", name).Updates(updates).Error
}

func (r *termRepository) Delete(name string) error {
	result := r.db.Where("name = ?", name).Delete(&model.SlangTerm{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// IsNotFound reports whether err is the catalog's record-missing error.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
