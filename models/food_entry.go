package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// MealSlot is the coarse classification of an entry. The zero value means
// the user never assigned one; unslotted entries stay in their own bucket.
type MealSlot string

const (
	SlotUnset     MealSlot = ""
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
)

// Slots lists the assignable slots in display order.
var Slots = []MealSlot{SlotBreakfast, SlotLunch, SlotDinner, SlotSnack}

func ParseMealSlot(s string) (MealSlot, error) {
	switch MealSlot(s) {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack:
		return MealSlot(s), nil
	}
	return SlotUnset, fmt.Errorf("unknown meal slot %q", s)
}

// FoodEntry is one logged eating event (one message/voice note/photo).
// ConsumedAt is the date the food counts toward and is user-adjustable;
// CreatedAt (from gorm.Model) stays the audit timestamp.
type FoodEntry struct {
	gorm.Model
	UserID     uint      `gorm:"index;not null"`
	ConsumedAt time.Time `gorm:"index;not null"`
	RawText    string
	MealSlot   MealSlot `gorm:"type:varchar(16)"`
	Items      []FoodItem `gorm:"foreignKey:EntryID"`
}

// FoodItem is one recognized food component with its macro snapshot.
// The per-100g profile it was computed from is not persisted; corrections
// rescale the stored values instead (see CorrectionService).
type FoodItem struct {
	gorm.Model
	EntryID uint `gorm:"index;not null"`

	Name          string
	Qty           float64
	Unit          string `gorm:"type:varchar(16)"`
	ResolvedGrams float64

	Kcal    float64
	Protein float64
	Fat     float64
	Carbs   float64
	Fiber   float64

	ManuallyEdited bool
}
