package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

var ErrUserNotFound = errors.New("user not found")

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// GetOrCreate finds the user by chat id, creating the row on first contact.
func (s *UserService) GetOrCreate(tgID string) (*models.User, error) {
	var user models.User
	err := s.db.Where(models.User{TgID: tgID}).FirstOrCreate(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Find never creates; view commands use it so that a user who has logged
// nothing gets a "nothing recorded yet" response instead of a row.
func (s *UserService) Find(tgID string) (*models.User, error) {
	var user models.User
	err := s.db.Where("tg_id = ?", tgID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}
