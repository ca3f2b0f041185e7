package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveGramsMassPassthrough(t *testing.T) {
	assert.Equal(t, 150.0, ResolveGrams(ResolveInput{Qty: 150, Unit: UnitGram}))
}

func TestResolveGramsVolume(t *testing.T) {
	// default density 1.0
	assert.Equal(t, 200.0, ResolveGrams(ResolveInput{Qty: 200, Unit: UnitMilliliter}))
	// declared density wins
	assert.Equal(t, 206.0, ResolveGrams(ResolveInput{Qty: 200, Unit: UnitMilliliter, Density: fptr(1.03)}))
	// non-positive density falls back to the default
	assert.Equal(t, 200.0, ResolveGrams(ResolveInput{Qty: 200, Unit: UnitMilliliter, Density: fptr(0)}))
}

func TestResolveGramsPieces(t *testing.T) {
	assert.Equal(t, 200.0, ResolveGrams(ResolveInput{Qty: 2, Unit: UnitPiece}))
	assert.Equal(t, 110.0, ResolveGrams(ResolveInput{Qty: 2, Unit: UnitSlice, PieceGrams: fptr(55)}))
}

func TestResolveGramsFixedUnits(t *testing.T) {
	cases := []struct {
		unit Unit
		qty  float64
		want float64
	}{
		{UnitTeaspoon, 2, 10},
		{UnitTablespoon, 1, 15},
		{UnitCup, 1, 250},
		{UnitGlass, 2, 500},
		{UnitCan, 1, 330},
		{UnitBottle, 1, 330},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ResolveGrams(ResolveInput{Qty: tc.qty, Unit: tc.unit}), string(tc.unit))
	}
}

func TestResolveGramsModelEstimateWins(t *testing.T) {
	// "a bowl of soup, roughly 350g" overrides any unit conversion
	got := ResolveGrams(ResolveInput{Qty: 1, Unit: UnitPiece, ModelGrams: fptr(350)})
	assert.Equal(t, 350.0, got)

	// a zero estimate is ignored
	got = ResolveGrams(ResolveInput{Qty: 1, Unit: UnitPiece, ModelGrams: fptr(0)})
	assert.Equal(t, 100.0, got)
}

func TestResolveGramsIdempotent(t *testing.T) {
	// re-resolving a resolved weight as grams must not change it
	for _, unit := range AllowedUnits {
		grams := ResolveGrams(ResolveInput{Qty: 2, Unit: unit})
		again := ResolveGrams(ResolveInput{Qty: grams, Unit: UnitGram})
		assert.Equal(t, grams, again, string(unit))
	}
}
