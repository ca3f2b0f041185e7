package services

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/progprogect/NutritionBot/models"
)

var (
	ErrEntryNotFound = errors.New("entry not found")
	ErrItemNotFound  = errors.New("item not found")
)

type EntryService struct {
	db *gorm.DB
}

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{db: db}
}

// CreateRaw records the user's intent before extraction runs. If extraction
// later fails or times out, this row stays as the fallback record.
func (s *EntryService) CreateRaw(userID uint, consumedAt time.Time, rawText string) (*models.FoodEntry, error) {
	entry := &models.FoodEntry{
		UserID:     userID,
		ConsumedAt: consumedAt,
		RawText:    rawText,
	}
	if err := s.db.Create(entry).Error; err != nil {
		return nil, err
	}
	return entry, nil
}

// AttachItems inserts all line items of an entry in one transaction, so a
// failure mid-way never leaves a partially itemized entry.
func (s *EntryService) AttachItems(entryID uint, items []models.FoodItem) error {
	if len(items) == 0 {
		return nil
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.FoodEntry
		if err := tx.First(&entry, entryID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		for i := range items {
			items[i].EntryID = entryID
			if err := tx.Create(&items[i]).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *EntryService) Get(userID, entryID uint) (*models.FoodEntry, error) {
	var entry models.FoodEntry
	err := s.db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("food_items.id ASC") }).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

func (s *EntryService) SetMealSlot(userID, entryID uint, slot models.MealSlot) error {
	res := s.db.Model(&models.FoodEntry{}).
		Where("id = ? AND user_id = ?", entryID, userID).
		Update("meal_slot", slot)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

// ShiftToYesterday moves the entry's consumption date back one day,
// keeping the time of day.
func (s *EntryService) ShiftToYesterday(userID, entryID uint) error {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return err
	}
	entry.ConsumedAt = entry.ConsumedAt.AddDate(0, 0, -1)
	return s.db.Model(&models.FoodEntry{}).
		Where("id = ?", entry.ID).
		Update("consumed_at", entry.ConsumedAt).Error
}

// Delete removes the entry and cascades to its items.
func (s *EntryService) Delete(userID, entryID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var entry models.FoodEntry
		if err := tx.Where("id = ? AND user_id = ?", entryID, userID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEntryNotFound
			}
			return err
		}
		if err := tx.Where("entry_id = ?", entry.ID).Delete(&models.FoodItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	})
}

// ListItems returns an entry's items in creation order, for the edit flow.
func (s *EntryService) ListItems(userID, entryID uint) ([]models.FoodItem, error) {
	entry, err := s.Get(userID, entryID)
	if err != nil {
		return nil, err
	}
	return entry.Items, nil
}

// OwnsItem reports whether the item belongs to one of the user's
// entries. Correction endpoints check this before touching the item.
func (s *EntryService) OwnsItem(userID, itemID uint) (bool, error) {
	var count int64
	err := s.db.Model(&models.FoodItem{}).
		Joins("JOIN food_entries ON food_entries.id = food_items.entry_id").
		Where("food_items.id = ? AND food_entries.user_id = ?", itemID, userID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
