package models

import (
	"fmt"

	"gorm.io/gorm"
)

// Nutrient identifies one of the five trackable goal dimensions.
type Nutrient string

const (
	NutrientCalories Nutrient = "calories"
	NutrientProtein  Nutrient = "protein"
	NutrientFat      Nutrient = "fat"
	NutrientCarbs    Nutrient = "carbs"
	NutrientFiber    Nutrient = "fiber"
)

// Nutrients lists goal dimensions in display order.
var Nutrients = []Nutrient{NutrientCalories, NutrientProtein, NutrientFat, NutrientCarbs, NutrientFiber}

func ParseNutrient(s string) (Nutrient, error) {
	switch Nutrient(s) {
	case NutrientCalories, NutrientProtein, NutrientFat, NutrientCarbs, NutrientFiber:
		return Nutrient(s), nil
	}
	return "", fmt.Errorf("unknown nutrient %q", s)
}

// UserGoal holds a user's daily targets. Each nutrient is independently
// nullable; nil means no goal is set for it.
type UserGoal struct {
	gorm.Model
	UserID uint `gorm:"uniqueIndex;not null"`

	CaloriesGoal *float64
	ProteinGoal  *float64
	FatGoal      *float64
	CarbsGoal    *float64
	FiberGoal    *float64
}

// Target returns the goal value for a nutrient, nil when unset.
func (g *UserGoal) Target(n Nutrient) *float64 {
	switch n {
	case NutrientCalories:
		return g.CaloriesGoal
	case NutrientProtein:
		return g.ProteinGoal
	case NutrientFat:
		return g.FatGoal
	case NutrientCarbs:
		return g.CarbsGoal
	case NutrientFiber:
		return g.FiberGoal
	}
	return nil
}

func (g *UserGoal) SetTarget(n Nutrient, v *float64) {
	switch n {
	case NutrientCalories:
		g.CaloriesGoal = v
	case NutrientProtein:
		g.ProteinGoal = v
	case NutrientFat:
		g.FatGoal = v
	case NutrientCarbs:
		g.CarbsGoal = v
	case NutrientFiber:
		g.FiberGoal = v
	}
}

// Empty reports whether no nutrient has a goal.
func (g *UserGoal) Empty() bool {
	for _, n := range Nutrients {
		if g.Target(n) != nil {
			return false
		}
	}
	return true
}
