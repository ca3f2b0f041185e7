package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var oatmealPer100 = Per100g{Kcal: 380, Protein: 13, Fat: 7, Carbs: 67, Fiber: 10}

func TestMacrosFor(t *testing.T) {
	got := MacrosFor(60, oatmealPer100)
	assert.Equal(t, Macros{Kcal: 228.0, Protein: 7.8, Fat: 4.2, Carbs: 40.2, Fiber: 6.0}, got)
}

func TestMacrosForScalesLinearly(t *testing.T) {
	single := MacrosFor(60, oatmealPer100)
	double := MacrosFor(120, oatmealPer100)
	assert.Equal(t, single.Scale(2), double)
}

func TestMacrosForRoundsToOneDecimal(t *testing.T) {
	got := MacrosFor(33, Per100g{Kcal: 100, Protein: 3.333, Fat: 0, Carbs: 0, Fiber: 0})
	assert.Equal(t, 33.0, got.Kcal)
	assert.Equal(t, 1.1, got.Protein)
}

func TestMacrosAdd(t *testing.T) {
	a := Macros{Kcal: 228.0, Protein: 7.8, Fat: 4.2, Carbs: 40.2, Fiber: 6.0}
	b := Macros{Kcal: 100.0, Protein: 2.0, Fat: 1.0, Carbs: 20.0, Fiber: 1.5}
	got := a.Add(b)
	assert.Equal(t, Macros{Kcal: 328.0, Protein: 9.8, Fat: 5.2, Carbs: 60.2, Fiber: 7.5}, got)
}

func TestMacrosScale(t *testing.T) {
	m := Macros{Kcal: 228.0, Protein: 7.8, Fat: 4.2, Carbs: 40.2, Fiber: 6.0}
	got := m.Scale(2)
	assert.Equal(t, Macros{Kcal: 456.0, Protein: 15.6, Fat: 8.4, Carbs: 80.4, Fiber: 12.0}, got)
}

func TestMacrosDiv(t *testing.T) {
	m := Macros{Kcal: 300, Protein: 30, Fat: 15, Carbs: 60, Fiber: 9}
	got := m.Div(3)
	assert.Equal(t, Macros{Kcal: 100, Protein: 10, Fat: 5, Carbs: 20, Fiber: 3}, got)

	assert.Equal(t, Macros{}, m.Div(0))
}
