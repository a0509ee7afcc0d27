// Package econ holds the pure economic model: overall rating, market value,
// wages, release clauses and contract-length ranges. Money values are in
// millions of euros unless a function says otherwise. Nothing here mutates
// state; every function is deterministic given its inputs.
package econ

import (
	"math"
	"math/rand"
)

// Position determines the attribute weighting used for the overall rating.
type Position string

const (
	Striker    Position = "striker"
	Midfielder Position = "midfielder"
	Defender   Position = "defender"
	Goalkeeper Position = "goalkeeper"
)

// Valid reports whether p is one of the four playable positions.
func (p Position) Valid() bool {
	switch p {
	case Striker, Midfielder, Defender, Goalkeeper:
		return true
	}
	return false
}

// Attributes are the five core skills, each bounded [20,99]. Values are
// fractional because progression applies sub-point deltas; displays round.
// For goalkeepers the slots read as diving/handling/kicking/reflexes/
// positioning but share the same bounds and math.
type Attributes struct {
	Pace      float64 `json:"pace"`
	Shooting  float64 `json:"shooting"`
	Passing   float64 `json:"passing"`
	Dribbling float64 `json:"dribbling"`
	Physical  float64 `json:"physical"`
}

const (
	AttrMin = 20.0
	AttrMax = 99.0

	MinWeeklySalary = 1000
	MinMarketValue  = 0.3
)

// Attribute keys accepted by Get/Set and the progression deltas.
const (
	KeyPace      = "pace"
	KeyShooting  = "shooting"
	KeyPassing   = "passing"
	KeyDribbling = "dribbling"
	KeyPhysical  = "physical"
)

// AttributeKeys in display order.
func AttributeKeys() []string {
	return []string{KeyPace, KeyShooting, KeyPassing, KeyDribbling, KeyPhysical}
}

// Get returns the named attribute, or 0 and false for an unknown key.
func (a Attributes) Get(key string) (float64, bool) {
	switch key {
	case KeyPace:
		return a.Pace, true
	case KeyShooting:
		return a.Shooting, true
	case KeyPassing:
		return a.Passing, true
	case KeyDribbling:
		return a.Dribbling, true
	case KeyPhysical:
		return a.Physical, true
	}
	return 0, false
}

// Set clamps v into [AttrMin,AttrMax] and stores it. Unknown keys are a
// no-op, matching the permissive delta contract.
func (a *Attributes) Set(key string, v float64) {
	v = ClampFloat(v, AttrMin, AttrMax)
	switch key {
	case KeyPace:
		a.Pace = v
	case KeyShooting:
		a.Shooting = v
	case KeyPassing:
		a.Passing = v
	case KeyDribbling:
		a.Dribbling = v
	case KeyPhysical:
		a.Physical = v
	}
}

var positionWeights = map[Position][5]float64{
	Striker:    {0.25, 0.35, 0.15, 0.15, 0.10},
	Midfielder: {0.15, 0.15, 0.30, 0.25, 0.15},
	Defender:   {0.20, 0.05, 0.20, 0.15, 0.40},
	Goalkeeper: {0.10, 0.05, 0.20, 0.15, 0.50},
}

// OverallRating collapses the five attributes into a single [40,99] scalar
// using position-specific weights.
func OverallRating(a Attributes, pos Position) int {
	w, ok := positionWeights[pos]
	if !ok {
		w = positionWeights[Striker]
	}
	vals := [5]float64{a.Pace, a.Shooting, a.Passing, a.Dribbling, a.Physical}
	sum := 0.0
	for i, v := range vals {
		sum += v * w[i]
	}
	return ClampInt(int(math.Round(sum)), 40, 99)
}

func ageValueFactor(age int) float64 {
	if age <= 25 {
		return math.Pow(float64(age-15)/10, 1.2)
	}
	return math.Max(0.05, 1-float64(age-25)*0.055)
}

func ovrValueFactor(ovr int) float64 {
	return math.Pow(math.Max(0, float64(ovr-50))/49, 2.1)
}

// MarketValue is the headline valuation in millions: a convex OVR curve
// times an age curve that peaks in the mid 20s, floored at MinMarketValue.
func MarketValue(ovr, age int) float64 {
	v := ovrValueFactor(ovr) * ageValueFactor(age) * 260
	return math.Max(MinMarketValue, roundTenth(v))
}

// ValueStatus carries the ban-related state that overrides the headline
// valuation.
type ValueStatus struct {
	BannedSeasons    int  // seasons left on an active doping ban
	FreeAgentLocked  bool // post-ban forced free agency still in effect
	RecoverySeasons  int  // post-ban value recovery window remaining
	HasContractYears bool // nominal contract years > 0
}

// Post-ban recovery climbs back toward full value over four seasons.
var recoveryMultiplier = map[int]float64{4: 0.18, 3: 0.26, 2: 0.36, 1: 0.5}

// AdjustedMarketValue applies ban semantics on top of MarketValue: zero
// while serving a ban, a nominal 0.1 while locked into post-ban free agency,
// and a stepped recovery multiplier for a few seasons after.
func AdjustedMarketValue(ovr, age int, st ValueStatus) float64 {
	if st.BannedSeasons > 0 {
		return 0
	}
	if st.FreeAgentLocked && !st.HasContractYears {
		return 0.1
	}
	base := MarketValue(ovr, age)
	if st.RecoverySeasons > 0 {
		m, ok := recoveryMultiplier[st.RecoverySeasons]
		if !ok {
			m = 0.55
		}
		return math.Max(0.1, roundTenth(base*m))
	}
	return base
}

var salaryAgePoints = [][2]float64{
	{16, 0.42}, {18, 0.55}, {21, 0.72}, {23, 0.82}, {25, 0.92},
	{28, 1.0}, {31, 0.95}, {34, 0.84}, {37, 0.7}, {40, 0.55},
}

func ageSalaryFactor(age int) float64 {
	a := float64(age)
	if a <= salaryAgePoints[0][0] {
		return salaryAgePoints[0][1]
	}
	last := salaryAgePoints[len(salaryAgePoints)-1]
	if a >= last[0] {
		return last[1]
	}
	for i := 1; i < len(salaryAgePoints); i++ {
		x2, y2 := salaryAgePoints[i][0], salaryAgePoints[i][1]
		if a <= x2 {
			x1, y1 := salaryAgePoints[i-1][0], salaryAgePoints[i-1][1]
			t := (a - x1) / (x2 - x1)
			return y1 + (y2-y1)*t
		}
	}
	return 1
}

// WeeklySalary in euros, rounded to the nearest 1000 and floored at the
// minimum wage. Elite OVRs above 92 earn a flat bonus per point over 91.
func WeeklySalary(ovr, age int) int {
	ratio := math.Max(0, float64(ovr-50)) / 49
	talentPay := math.Pow(ratio, 1.78) * 300000
	eliteBonus := 0.0
	if ovr >= 92 {
		eliteBonus = float64(ovr-91) * 8000
	}
	weekly := int(math.Round((talentPay+eliteBonus)*ageSalaryFactor(age)/1000)) * 1000
	if weekly < MinWeeklySalary {
		return MinWeeklySalary
	}
	return weekly
}

// ReleaseClause in millions. Club protection scales with prestige plus an
// elite premium; the result never drops below a floor proportional to the
// player's margin above 74 OVR, so the clause always covers market value.
func ReleaseClause(ovr, prestige, age int) float64 {
	mv := MarketValue(ovr, age)
	elitePremium := 0.0
	switch {
	case ovr >= 92:
		elitePremium = 0.65
	case ovr >= 87:
		elitePremium = 0.4
	case ovr >= 82:
		elitePremium = 0.2
	}
	clubProtection := 2.05 + float64(prestige)/90 + elitePremium
	floor := mv * (1.5 + math.Max(0, float64(ovr-74))/120)
	return math.Max(1, roundTenth(math.Max(floor, mv*clubProtection)))
}

// ContractYearRange narrows monotonically with age: teenagers sign long
// development deals, late-career players short ones.
func ContractYearRange(age int) (min, max int) {
	switch {
	case age <= 18:
		return 6, 10
	case age <= 21:
		return 5, 9
	case age <= 24:
		return 4, 8
	case age <= 27:
		return 3, 7
	case age <= 30:
		return 2, 6
	case age <= 33:
		return 2, 5
	case age <= 36:
		return 1, 3
	case age <= 39:
		return 1, 2
	}
	return 1, 1
}

// RollContractYears draws a uniform length from the age-appropriate range.
func RollContractYears(r *rand.Rand, age int) int {
	lo, hi := ContractYearRange(age)
	return lo + r.Intn(hi-lo+1)
}

// PrestigeStars renders prestige as a 1-5 star rating.
func PrestigeStars(p int) int {
	switch {
	case p >= 95:
		return 5
	case p >= 85:
		return 4
	case p >= 72:
		return 3
	case p >= 55:
		return 2
	}
	return 1
}

// ClampInt bounds v into [lo,hi].
func ClampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// ClampFloat bounds v into [lo,hi].
func ClampFloat(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
