package repository

import (
	"errors"

	"github.com/lshigami/Quagsire/internal/model"
	"gorm.io/gorm"
)

// UserRepository resolves user subscription tiers. Unknown users default to
// the free tier rather than failing the quiz operation.
type UserRepository interface {
	GetTier(userID string) (string, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetTier(userID string) (string, error) {
	var user model.User
	err := r.db.Select("tier").Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.TierFree, nil
	}
	if err != nil {
		return "", err
	}
	if user.Tier == "" {
		return model.TierFree, nil
	}
	return user.Tier, nil
}
