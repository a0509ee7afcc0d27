// Package progress implements attribute development: delta application with
// diminishing returns, youth auto-growth and age decline. All randomness
// comes through the caller's *rand.Rand so season runs stay reproducible.
package progress

import (
	"math"
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/econ"
)

// Delta keys beyond the five attributes.
const (
	KeyReputation = "reputation"
	KeyFitness    = "fitness"
)

// DeclineFloor is the lowest an attribute can be dragged by age decline.
// Harsher than the general attribute floor is never needed.
const DeclineFloor = 30.0

// growthMultipliers reads the active development modifiers off the career:
// a development loan accelerates growth and a fresh signing carries a small
// honeymoon boost.
func growthMultipliers(c *career.Career) float64 {
	mult := 1.0
	if c.Loan != nil && c.Loan.Focus == career.LoanFocusDevelopment {
		mult *= c.Loan.GrowthMult
	}
	if c.SigningBoostSeasons > 0 && c.SigningBoostMult > 0 {
		mult *= c.SigningBoostMult
	}
	return mult
}

// ScaleDelta applies diminishing returns to a positive attribute gain. The
// higher the current value and the older the player, the smaller the
// applied gain, but any positive raw delta lands at least 0.2 so training
// always shows progress. Negative deltas pass through untouched.
func ScaleDelta(current float64, age int, mult, raw float64) float64 {
	if raw <= 0 {
		return raw
	}
	factor := 1.0
	switch {
	case current >= 94:
		factor = 0.15
	case current >= 90:
		factor = 0.25
	case current >= 85:
		factor = 0.45
	case current >= 80:
		factor = 0.65
	}
	switch {
	case age >= 31:
		factor *= 0.65
	case age >= 27:
		factor *= 0.85
	}
	factor *= mult
	return math.Max(0.2, raw*factor)
}

// ApplyDeltas mutates the career with a delta map. Attribute gains are
// scaled for diminishing returns; attribute losses, reputation and fitness
// apply directly with their own clamps. Unknown keys are ignored.
func ApplyDeltas(c *career.Career, deltas map[string]float64) {
	mult := growthMultipliers(c)
	for key, raw := range deltas {
		switch key {
		case KeyReputation:
			c.AdjustReputation(raw)
		case KeyFitness:
			c.AdjustFitness(raw)
		default:
			cur, ok := c.Stats.Get(key)
			if !ok {
				continue
			}
			c.Stats.Set(key, cur+ScaleDelta(cur, c.Age, mult, raw))
		}
	}
}

// AutoGrow gives young players passive off-season development. Gains shrink
// as an attribute approaches the elite range.
func AutoGrow(r *rand.Rand, c *career.Career) {
	mult := growthMultipliers(c)
	for _, key := range econ.AttributeKeys() {
		cur, _ := c.Stats.Get(key)
		cap := 1.0
		switch {
		case cur >= 90:
			cap = 0.15
		case cur >= 85:
			cap = 0.35
		case cur >= 80:
			cap = 0.6
		}
		gain := r.Float64() * cap * mult
		c.Stats.Set(key, math.Min(econ.AttrMax, cur+gain))
	}
}

type declineBracket struct {
	factor float64
	rollLo float64
	rollHi float64
}

func declineFor(age int) (declineBracket, bool) {
	switch {
	case age < 30:
		return declineBracket{}, false
	case age == 30:
		return declineBracket{factor: 0.5, rollLo: 0.3, rollHi: 2.1}, true
	case age <= 33:
		return declineBracket{factor: 0.70, rollLo: 0.5, rollHi: 2.0}, true
	case age <= 36:
		return declineBracket{factor: 0.90, rollLo: 0.8, rollHi: 3.0}, true
	case age <= 39:
		return declineBracket{factor: 0.98, rollLo: 1.5, rollHi: 4.7}, true
	}
	return declineBracket{factor: 1.0, rollLo: 2.5, rollHi: 6.5}, true
}

// AgeDecline erodes attributes from age 30 on. Each attribute rolls
// independently against the bracket's hit chance; pace takes an extra hit
// from 32 onward because speed goes first.
func AgeDecline(r *rand.Rand, c *career.Career) {
	b, ok := declineFor(c.Age)
	if !ok {
		return
	}
	for _, key := range econ.AttributeKeys() {
		if r.Float64() >= b.factor {
			continue
		}
		cur, _ := c.Stats.Get(key)
		drop := b.rollLo + r.Float64()*(b.rollHi-b.rollLo)
		c.Stats.Set(key, math.Max(DeclineFloor, cur-drop))
	}
	if c.Age >= 32 && r.Float64() < 0.6 {
		extra := r.Float64()*1.2 + 0.5
		if c.Age >= 37 {
			extra = r.Float64()*2 + 1
		}
		c.Stats.Set(econ.KeyPace, math.Max(DeclineFloor, c.Stats.Pace-extra))
	}
}
