package services

import (
	"errors"

	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

var (
	ErrInvalidGrams = errors.New("gram value must be a positive number")
	// ErrZeroBaseline guards the rescale ratio against division by zero
	// when the stored weight is 0.
	ErrZeroBaseline = errors.New("stored gram value is zero, cannot rescale")
)

// CorrectionService rescales a line item after the user corrects its weight.
// The original per-100g profile is not persisted, so all macro fields are
// multiplied by new/old instead of being re-derived; proportions between
// the fields are preserved exactly.
type CorrectionService struct {
	db *gorm.DB
}

func NewCorrectionService(db *gorm.DB) *CorrectionService {
	return &CorrectionService{db: db}
}

func (s *CorrectionService) Rescale(itemID uint, newGrams float64) (*models.FoodItem, error) {
	if newGrams <= 0 {
		return nil, ErrInvalidGrams
	}

	var item models.FoodItem
	if err := s.db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	if item.ResolvedGrams == 0 {
		return nil, ErrZeroBaseline
	}

	ratio := newGrams / item.ResolvedGrams
	scaled := itemMacros(item).Scale(ratio)

	item.ResolvedGrams = newGrams
	item.Kcal = scaled.Kcal
	item.Protein = scaled.Protein
	item.Fat = scaled.Fat
	item.Carbs = scaled.Carbs
	item.Fiber = scaled.Fiber
	item.ManuallyEdited = true

	if err := s.db.Save(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}
