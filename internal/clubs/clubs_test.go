package clubs

import (
	"math/rand"
	"testing"
)

func TestTiersAscendInPrestige(t *testing.T) {
	prevAvg := 0.0
	for i, tier := range Tiers {
		if len(tier) == 0 {
			t.Fatalf("tier %d is empty", i+1)
		}
		sum := 0
		for _, c := range tier {
			if c.Prestige < 0 || c.Prestige > 100 {
				t.Fatalf("%s prestige %d out of range", c.Name, c.Prestige)
			}
			if c.Name == "" || c.League == "" || c.Country == "" {
				t.Fatalf("incomplete club entry in tier %d: %+v", i+1, c)
			}
			sum += c.Prestige
		}
		avg := float64(sum) / float64(len(tier))
		if avg <= prevAvg {
			t.Fatalf("tier %d average prestige %.1f not above tier %d's %.1f", i+1, avg, i, prevAvg)
		}
		prevAvg = avg
	}
}

func TestTierOfAndByName(t *testing.T) {
	if got := TierOf("Real Madrid CF"); got != TopTier() {
		t.Fatalf("Real Madrid tier = %d, want %d", got, TopTier())
	}
	if got := TierOf("no such club"); got != 1 {
		t.Fatalf("unknown club tier = %d, want 1", got)
	}
	c, ok := ByName("Atalanta BC")
	if !ok || c.League != "Serie A" {
		t.Fatalf("ByName(Atalanta BC) = %+v, %v", c, ok)
	}
	if _, ok := ByName("no such club"); ok {
		t.Fatalf("unknown club should not resolve")
	}
}

func TestWindowClamps(t *testing.T) {
	all := Window(-3, 99)
	total := 0
	for _, tier := range Tiers {
		total += len(tier)
	}
	if len(all) != total {
		t.Fatalf("clamped window has %d clubs, want %d", len(all), total)
	}
	one := Window(7, 7)
	if len(one) != len(Tiers[6]) {
		t.Fatalf("window(7,7) has %d clubs, want %d", len(one), len(Tiers[6]))
	}
}

func TestTierReturnsCopy(t *testing.T) {
	got := Tier(1)
	got[0].Name = "mutated"
	if Tiers[0][0].Name == "mutated" {
		t.Fatalf("Tier leaked the backing array")
	}
	if Tier(0) != nil || Tier(99) != nil {
		t.Fatalf("out-of-range tiers should be nil")
	}
}

func TestDomesticCupName(t *testing.T) {
	if got := DomesticCupName("Bundesliga"); got != "DFB-Pokal" {
		t.Fatalf("Bundesliga cup = %q", got)
	}
	if got := DomesticCupName("Eredivisie"); got != "Domestic Cup" {
		t.Fatalf("fallback cup = %q", got)
	}
}

func TestNationalProfileFallback(t *testing.T) {
	if p := NationalProfileFor("France"); p.MinOvr != 85 {
		t.Fatalf("France min OVR = %d, want 85", p.MinOvr)
	}
	p := NationalProfileFor("Atlantis")
	if p.Tier != "developing" || p.MinOvr != 66 {
		t.Fatalf("fallback profile = %+v", p)
	}
}

func TestAcademiesDeterministicAndResolvable(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	picks := RandomAcademies(r, 4)
	if len(picks) != 4 {
		t.Fatalf("got %d academies, want 4", len(picks))
	}
	seen := map[string]bool{}
	for _, a := range picks {
		if seen[a.ID] {
			t.Fatalf("duplicate academy %s", a.ID)
		}
		seen[a.ID] = true
		if len(a.Bonus) == 0 {
			t.Fatalf("academy %s has no bonus", a.ID)
		}
		got, ok := AcademyByID(a.ID)
		if !ok {
			t.Fatalf("academy %s not resolvable by ID", a.ID)
		}
		if got.Name != a.Name || got.Prestige != a.Prestige {
			t.Fatalf("AcademyByID(%s) = %+v, want %+v", a.ID, got, a)
		}
	}
}

func TestEliteAcademyBonusTopUp(t *testing.T) {
	c, _ := ByName("FC Barcelona")
	a := academyFromClub(c, TierOf(c.Name))
	sum := 0
	for _, v := range a.Bonus {
		sum += v
	}
	if sum != 5 {
		t.Fatalf("elite academy bonus total = %d, want 5", sum)
	}
	low, _ := ByName("SM Caen")
	b := academyFromClub(low, TierOf(low.Name))
	sum = 0
	for _, v := range b.Bonus {
		sum += v
	}
	if sum != 4 {
		t.Fatalf("standard academy bonus total = %d, want 4", sum)
	}
}

func TestTrophyNames(t *testing.T) {
	cases := []struct{ key, want string }{
		{TrophyBallon, "Ballon d'Or"},
		{LeagueTrophyKey("Serie A"), "Serie A Title"},
		{CupTrophyKey("FA Cup"), "FA Cup"},
		{PreseasonTrophyKey("Emirates Cup", 3), "Emirates Cup"},
		{"mystery", "mystery"},
	}
	for _, c := range cases {
		if got := TrophyName(c.key); got != c.want {
			t.Fatalf("TrophyName(%q) = %q, want %q", c.key, got, c.want)
		}
	}
}
