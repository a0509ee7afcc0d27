package econ

import (
	"math/rand"
	"testing"
)

func TestOverallRatingWeights(t *testing.T) {
	a := Attributes{Pace: 60, Shooting: 90, Passing: 60, Dribbling: 60, Physical: 60}
	st := OverallRating(a, Striker)
	df := OverallRating(a, Defender)
	if st <= df {
		t.Fatalf("striker should value shooting more: striker=%d defender=%d", st, df)
	}

	b := Attributes{Pace: 60, Shooting: 60, Passing: 60, Dribbling: 60, Physical: 95}
	if gk, d := OverallRating(b, Goalkeeper), OverallRating(b, Striker); gk <= d {
		t.Fatalf("goalkeeper should value the physical slot more: gk=%d striker=%d", gk, d)
	}
}

func TestOverallRatingBounds(t *testing.T) {
	low := Attributes{Pace: 20, Shooting: 20, Passing: 20, Dribbling: 20, Physical: 20}
	if got := OverallRating(low, Midfielder); got != 40 {
		t.Fatalf("floor OVR = %d, want 40", got)
	}
	high := Attributes{Pace: 99, Shooting: 99, Passing: 99, Dribbling: 99, Physical: 99}
	if got := OverallRating(high, Midfielder); got != 99 {
		t.Fatalf("ceiling OVR = %d, want 99", got)
	}
}

func TestMarketValueShape(t *testing.T) {
	if MarketValue(85, 25) <= MarketValue(85, 18) {
		t.Fatalf("value should rise toward the mid 20s")
	}
	if MarketValue(85, 33) >= MarketValue(85, 25) {
		t.Fatalf("value should decay after 25")
	}
	if MarketValue(90, 24) <= MarketValue(70, 24) {
		t.Fatalf("value should grow with OVR")
	}
	if got := MarketValue(40, 16); got != MinMarketValue {
		t.Fatalf("low OVR value = %v, want floor %v", got, MinMarketValue)
	}
}

func TestAdjustedMarketValueBanStates(t *testing.T) {
	if got := AdjustedMarketValue(88, 24, ValueStatus{BannedSeasons: 2}); got != 0 {
		t.Fatalf("banned value = %v, want 0", got)
	}
	if got := AdjustedMarketValue(88, 24, ValueStatus{FreeAgentLocked: true}); got != 0.1 {
		t.Fatalf("locked free agent value = %v, want 0.1", got)
	}
	// Lock only bites without contract years.
	full := MarketValue(88, 24)
	if got := AdjustedMarketValue(88, 24, ValueStatus{FreeAgentLocked: true, HasContractYears: true}); got != full {
		t.Fatalf("locked with contract = %v, want %v", got, full)
	}
	prev := 0.0
	for left := 4; left >= 1; left-- {
		got := AdjustedMarketValue(88, 24, ValueStatus{RecoverySeasons: left})
		if got <= prev {
			t.Fatalf("recovery should climb: %d seasons left -> %v, prev %v", left, got, prev)
		}
		if got >= full {
			t.Fatalf("recovery value %v should stay below full %v", got, full)
		}
		prev = got
	}
}

func TestWeeklySalary(t *testing.T) {
	got := WeeklySalary(80, 28)
	if got%1000 != 0 {
		t.Fatalf("salary %d not rounded to 1000", got)
	}
	if got < MinWeeklySalary {
		t.Fatalf("salary %d below minimum", got)
	}
	if WeeklySalary(40, 16) != MinWeeklySalary {
		t.Fatalf("floor salary should apply at low OVR")
	}
	if WeeklySalary(94, 28) <= WeeklySalary(91, 28) {
		t.Fatalf("elite bonus should lift pay above 92 OVR")
	}
	if WeeklySalary(85, 28) <= WeeklySalary(85, 17) {
		t.Fatalf("salary should peak near 28, not at 17")
	}
}

func TestReleaseClauseCoversMarketValue(t *testing.T) {
	for _, ovr := range []int{50, 62, 74, 82, 87, 92, 99} {
		for _, prestige := range []int{0, 35, 60, 85, 99} {
			for _, age := range []int{16, 21, 25, 30, 36} {
				rc := ReleaseClause(ovr, prestige, age)
				mv := MarketValue(ovr, age)
				if rc < mv {
					t.Fatalf("release clause %v below market value %v (ovr=%d prestige=%d age=%d)",
						rc, mv, ovr, prestige, age)
				}
			}
		}
	}
}

func TestContractYearRangeNarrows(t *testing.T) {
	prevMax := 11
	for age := 16; age <= 42; age++ {
		lo, hi := ContractYearRange(age)
		if lo < 1 || hi < lo {
			t.Fatalf("bad range at age %d: %d..%d", age, lo, hi)
		}
		if hi > prevMax {
			t.Fatalf("max years grew with age at %d: %d > %d", age, hi, prevMax)
		}
		prevMax = hi
	}
	if lo, hi := ContractYearRange(41); lo != 1 || hi != 1 {
		t.Fatalf("age 41 range = %d..%d, want 1..1", lo, hi)
	}
}

func TestRollContractYearsWithinRange(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		age := 16 + r.Intn(26)
		lo, hi := ContractYearRange(age)
		got := RollContractYears(r, age)
		if got < lo || got > hi {
			t.Fatalf("rolled %d outside %d..%d at age %d", got, lo, hi, age)
		}
	}
}

func TestAttributeSetClamps(t *testing.T) {
	var a Attributes
	a.Set(KeyPace, 150)
	if a.Pace != AttrMax {
		t.Fatalf("pace = %v, want clamped %v", a.Pace, AttrMax)
	}
	a.Set(KeyShooting, -5)
	if a.Shooting != AttrMin {
		t.Fatalf("shooting = %v, want clamped %v", a.Shooting, AttrMin)
	}
	before := a
	a.Set("charisma", 80)
	if a != before {
		t.Fatalf("unknown key mutated attributes: %+v -> %+v", before, a)
	}
}
