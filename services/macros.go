package services

import "math"

// Per100g is a nutrient profile normalized to 100 grams. JSON tags mirror
// the extraction schema.
type Per100g struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"p"`
	Fat     float64 `json:"f"`
	Carbs   float64 `json:"c"`
	Fiber   float64 `json:"fiber"`
}

// Macros is an absolute nutrient amount.
type Macros struct {
	Kcal    float64 `json:"kcal"`
	Protein float64 `json:"protein"`
	Fat     float64 `json:"fat"`
	Carbs   float64 `json:"carbs"`
	Fiber   float64 `json:"fiber"`
}

// MacrosFor scales a per-100g profile to an absolute gram weight.
// Each field is rounded to one decimal place.
func MacrosFor(grams float64, p Per100g) Macros {
	k := grams / 100
	return Macros{
		Kcal:    round1(p.Kcal * k),
		Protein: round1(p.Protein * k),
		Fat:     round1(p.Fat * k),
		Carbs:   round1(p.Carbs * k),
		Fiber:   round1(p.Fiber * k),
	}
}

func (m Macros) Add(o Macros) Macros {
	return Macros{
		Kcal:    m.Kcal + o.Kcal,
		Protein: m.Protein + o.Protein,
		Fat:     m.Fat + o.Fat,
		Carbs:   m.Carbs + o.Carbs,
		Fiber:   m.Fiber + o.Fiber,
	}
}

// Scale multiplies every field by the same ratio, rounding to one decimal.
// This is the correction engine's rescale primitive.
func (m Macros) Scale(ratio float64) Macros {
	return Macros{
		Kcal:    round1(m.Kcal * ratio),
		Protein: round1(m.Protein * ratio),
		Fat:     round1(m.Fat * ratio),
		Carbs:   round1(m.Carbs * ratio),
		Fiber:   round1(m.Fiber * ratio),
	}
}

// Div divides every field by n without rounding; used for period averages.
func (m Macros) Div(n float64) Macros {
	if n == 0 {
		return Macros{}
	}
	return Macros{
		Kcal:    m.Kcal / n,
		Protein: m.Protein / n,
		Fat:     m.Fat / n,
		Carbs:   m.Carbs / n,
		Fiber:   m.Fiber / n,
	}
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }
