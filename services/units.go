package services

// Unit is the closed set of quantity units the extractor may emit.
// Anything else is rejected by the extraction schema before it gets here.
type Unit string

const (
	UnitGram       Unit = "g"
	UnitMilliliter Unit = "ml"
	UnitPiece      Unit = "piece"
	UnitSlice      Unit = "slice"
	UnitTeaspoon   Unit = "tsp"
	UnitTablespoon Unit = "tbsp"
	UnitCup        Unit = "cup"
	UnitGlass      Unit = "glass"
	UnitCan        Unit = "can"
	UnitBottle     Unit = "bottle"
)

// AllowedUnits is handed to the extraction schema as the unit enum.
var AllowedUnits = []Unit{
	UnitGram, UnitMilliliter, UnitPiece, UnitSlice,
	UnitTeaspoon, UnitTablespoon, UnitCup, UnitGlass, UnitCan, UnitBottle,
}

const (
	defaultDensity    = 1.0
	defaultPieceGrams = 100.0
)

type conversionKind int

const (
	convMass conversionKind = iota
	convVolume
	convPerPiece
	convFixed
)

type conversion struct {
	kind  conversionKind
	grams float64 // per unit, convFixed only
}

// unitConversions is the whole conversion policy in one table.
var unitConversions = map[Unit]conversion{
	UnitGram:       {kind: convMass},
	UnitMilliliter: {kind: convVolume},
	UnitPiece:      {kind: convPerPiece},
	UnitSlice:      {kind: convPerPiece},
	UnitTeaspoon:   {kind: convFixed, grams: 5},
	UnitTablespoon: {kind: convFixed, grams: 15},
	UnitCup:        {kind: convFixed, grams: 250},
	UnitGlass:      {kind: convFixed, grams: 250},
	UnitCan:        {kind: convFixed, grams: 330},
	UnitBottle:     {kind: convFixed, grams: 330},
}

// ResolveInput carries one extracted quantity plus the extractor's optional
// hints. Qty is validated upstream (> 0).
type ResolveInput struct {
	Qty  float64
	Unit Unit
	// Density in g/ml, volume units only.
	Density *float64
	// Weight of one piece/slice in grams.
	PieceGrams *float64
	// The model's own contextual gram estimate ("a bowl of soup" already
	// accounts for bowl size). Takes precedence over unit conversion.
	ModelGrams *float64
}

// ResolveGrams converts a quantity expression to a canonical gram weight.
func ResolveGrams(in ResolveInput) float64 {
	if in.ModelGrams != nil && *in.ModelGrams > 0 {
		return *in.ModelGrams
	}

	conv, ok := unitConversions[in.Unit]
	if !ok {
		// unreachable with schema-validated input; pass mass through
		return in.Qty
	}

	switch conv.kind {
	case convVolume:
		density := defaultDensity
		if in.Density != nil && *in.Density > 0 {
			density = *in.Density
		}
		return in.Qty * density
	case convPerPiece:
		piece := defaultPieceGrams
		if in.PieceGrams != nil && *in.PieceGrams > 0 {
			piece = *in.PieceGrams
		}
		return in.Qty * piece
	case convFixed:
		return in.Qty * conv.grams
	default:
		return in.Qty
	}
}
