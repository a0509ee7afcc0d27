// Package market implements the transfer and contract economy: negotiation
// modes, playing-time estimates, club finances and willingness, the market
// board, player applications and their season-end resolution, incoming
// offers, release-clause triggers, renewals and the loan subsystem. All
// operations mutate a career in place and draw randomness from the caller.
package market

import (
	"math"
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
)

// Negotiation postures for applications to other clubs. Salary multiplier
// scales the offered wage; the chance bonus feeds the resolution roll and
// the relation delta lands on the target club's manager when the approach
// is filed.
type ApplicationMode struct {
	Key           string  `json:"key"`
	Label         string  `json:"label"`
	SalaryMult    float64 `json:"salary_mult"`
	ChanceBonus   float64 `json:"chance_bonus"`
	RelationDelta int     `json:"relation_delta"`
}

var applicationModes = map[string]ApplicationMode{
	"balanced":   {Key: "balanced", Label: "Balanced", SalaryMult: 1.0},
	"teamFirst":  {Key: "teamFirst", Label: "Team First", SalaryMult: 0.88, ChanceBonus: 0.18, RelationDelta: 6},
	"proveIt":    {Key: "proveIt", Label: "Prove It", SalaryMult: 0.94, ChanceBonus: 0.11, RelationDelta: 3},
	"starDemand": {Key: "starDemand", Label: "Star Demands", SalaryMult: 1.15, ChanceBonus: -0.12, RelationDelta: -5},
}

// ApplicationModeByKey resolves a posture, falling back to balanced.
func ApplicationModeByKey(key string) ApplicationMode {
	if m, ok := applicationModes[key]; ok {
		return m
	}
	return applicationModes["balanced"]
}

// Postures for extension talks with the current club. MinutesShift moves
// the guaranteed-minutes ask; AcceptBonus feeds the club's decision roll.
type ExtensionMode struct {
	Key          string  `json:"key"`
	Label        string  `json:"label"`
	SalaryMult   float64 `json:"salary_mult"`
	MinutesShift float64 `json:"minutes_shift"`
	AcceptBonus  float64 `json:"accept_bonus"`
	ShortTerm    bool    `json:"short_term"`
}

var extensionModes = map[string]ExtensionMode{
	"balanced":   {Key: "balanced", Label: "Balanced", SalaryMult: 1.0},
	"teamFirst":  {Key: "teamFirst", Label: "Team First", SalaryMult: 0.86, MinutesShift: -520, AcceptBonus: 0.18},
	"shortTerm":  {Key: "shortTerm", Label: "Short Term", SalaryMult: 0.93, MinutesShift: -240, AcceptBonus: 0.09, ShortTerm: true},
	"starDemand": {Key: "starDemand", Label: "Star Demands", SalaryMult: 1.13, MinutesShift: 450, AcceptBonus: -0.16},
}

// ExtensionModeByKey resolves an extension posture, falling back to
// balanced.
func ExtensionModeByKey(key string) ExtensionMode {
	if m, ok := extensionModes[key]; ok {
		return m
	}
	return extensionModes["balanced"]
}

// Playing-time roles in descending order of minutes.
const (
	RoleKeyPlayer = "Key Player"
	RoleStarter   = "Starter"
	RoleRotation  = "Rotation"
	RoleBench     = "Bench"
)

// PlayingTime is the projected role and minutes at a club.
type PlayingTime struct {
	Role    string `json:"role"`
	Minutes int    `json:"minutes"`
}

// EstimatePlayingTime projects the player's role at a club from rating,
// reputation and the manager relationship against the club's level.
func EstimatePlayingTime(r *rand.Rand, c *career.Career, club clubs.Club, tier int) PlayingTime {
	conn := c.ConnectionTo(r, club.Name, tier)
	profile := float64(c.Ovr()) + c.Reputation/4 + float64(conn)/7
	bar := 56 + float64(club.Prestige)*0.36
	delta := profile - bar
	switch {
	case delta >= 14:
		return PlayingTime{Role: RoleKeyPlayer, Minutes: rng(r, 3000, 3700)}
	case delta >= 6:
		return PlayingTime{Role: RoleStarter, Minutes: rng(r, 2400, 3200)}
	case delta >= -3:
		return PlayingTime{Role: RoleRotation, Minutes: rng(r, 1500, 2400)}
	}
	return PlayingTime{Role: RoleBench, Minutes: rng(r, 700, 1500)}
}

// FinanceChance is the probability a club can fund a move of the given fee
// (millions) for this player. Budgets scale with prestige; very expensive
// deals collapse for mid-table sides, and a modest reputation discount
// helps unknowns move.
func FinanceChance(c *career.Career, club clubs.Club, fee float64) float64 {
	budget := 5 + float64(club.Prestige)*1.22 + math.Max(0, float64(club.Prestige-72))*0.95
	need := fee + math.Max(0, float64(c.Ovr()-80)*0.75)
	chance := econ.ClampFloat(budget/math.Max(1, need)*0.95, 0.02, 0.97)
	if need > 135 && club.Prestige < 78 {
		chance *= 0.3
	} else if need > 95 && club.Prestige < 68 {
		chance *= 0.45
	}
	rep := math.Min(90, math.Max(55, c.Reputation))
	chance += (90 - rep) / 900
	return econ.ClampFloat(chance, 0.02, 0.98)
}

// CanClubFinanceMove rolls against FinanceChance.
func CanClubFinanceMove(r *rand.Rand, c *career.Career, club clubs.Club, fee float64) bool {
	return r.Float64() < FinanceChance(c, club, fee)
}

// WillingToSellChance is the current club's openness to selling to a
// stronger buyer. Expiring deals and cheap clauses loosen the grip.
func WillingToSellChance(c *career.Career, buyer clubs.Club) float64 {
	gap := float64(buyer.Prestige - c.Club.Prestige)
	chance := 0.16 + gap*0.01
	switch {
	case c.Contract.Years <= 1:
		chance += 0.28
	case c.Contract.Years == 2:
		chance += 0.12
	default:
		chance -= 0.08
	}
	if c.Contract.ReleaseClause < c.BaseMarketValue()*1.35 {
		chance += 0.14
	}
	if c.Reputation > 75 {
		chance += 0.06
	} else if c.Reputation < 35 {
		chance -= 0.04
	}
	return econ.ClampFloat(chance, 0.04, 0.9)
}

// WillingToSell rolls against WillingToSellChance.
func WillingToSell(r *rand.Rand, c *career.Career, buyer clubs.Club) bool {
	return r.Float64() < WillingToSellChance(c, buyer)
}

// BuildClubTerms drafts the contract a club would put on the table. The
// clause multiplier and contract length are rolled; salary scales with the
// club's prestige and the negotiation posture.
func BuildClubTerms(r *rand.Rand, c *career.Career, club clubs.Club, tier int, salaryMult float64, kind string) career.Offer {
	mv := c.BaseMarketValue()
	rcMult := 1.55 + float64(club.Prestige)/100*1.15 + r.Float64()*0.35
	rc := math.Max(mv*1.15, roundTenth(mv*rcMult))
	salary := round1000(float64(econ.WeeklySalary(c.Ovr(), c.Age)) * (1 + float64(club.Prestige)/220) * salaryMult)
	return career.Offer{
		Club:          club,
		Tier:          tier,
		Years:         econ.RollContractYears(r, c.Age),
		SalaryWeekly:  salary,
		ReleaseClause: rc,
		Kind:          kind,
	}
}

// ExtensionProposal is the drafted renewal ask plus the club's acceptance
// odds for it.
type ExtensionProposal struct {
	Mode          ExtensionMode `json:"mode"`
	Years         int           `json:"years"`
	SalaryWeekly  int           `json:"salary_weekly"`
	ReleaseClause float64       `json:"release_clause"`
	Minutes       int           `json:"minutes"`
	Role          string        `json:"role"`
	AcceptChance  float64       `json:"accept_chance"`
}

// BuildExtensionProposal drafts extension terms with the current club under
// the given posture.
func BuildExtensionProposal(r *rand.Rand, c *career.Career, mode ExtensionMode) ExtensionProposal {
	prestige := float64(c.Club.Prestige)
	base := round1000(float64(c.Contract.SalaryWeekly) * (1 + prestige/260))
	salary := round1000(float64(base) * mode.SalaryMult)
	rc := c.BaseMarketValue() * (2 + prestige/120)

	years := econ.RollContractYears(r, c.Age)
	if mode.ShortTerm {
		years = econ.ClampInt(years, 1, 2)
	}

	pt := EstimatePlayingTime(r, c, c.Club, c.ClubTier)
	minutes := econ.ClampInt(int(float64(pt.Minutes)+mode.MinutesShift), 450, 3800)

	conn := c.ConnectionTo(r, c.Club.Name, c.ClubTier)
	chance := 0.26 +
		float64(c.Ovr()-68)*0.012 +
		c.Reputation*0.002 +
		(prestige-65)*0.003 +
		float64(conn-45)*0.004 +
		(1-mode.SalaryMult)*0.9 +
		(-mode.MinutesShift/1000)*0.2 +
		mode.AcceptBonus -
		math.Max(0, float64(years-1))*0.09

	return ExtensionProposal{
		Mode:          mode,
		Years:         years,
		SalaryWeekly:  salary,
		ReleaseClause: roundTenth(rc),
		Minutes:       minutes,
		Role:          pt.Role,
		AcceptChance:  econ.ClampFloat(chance, 0.04, 0.95),
	}
}

// SubmitExtension runs extension talks with the current club. Free agents
// and players with an agreed move have nothing to extend. An accepted
// proposal becomes the pending contract for next season.
func SubmitExtension(r *rand.Rand, c *career.Career, modeKey string) (ExtensionProposal, bool, error) {
	if c.IsFreeAgent() {
		return ExtensionProposal{}, false, career.ErrNoContract
	}
	if c.PendingTransfer != nil {
		return ExtensionProposal{}, false, ErrMoveAgreed
	}
	p := BuildExtensionProposal(r, c, ExtensionModeByKey(modeKey))
	if r.Float64() < p.AcceptChance {
		c.PendingContract = &career.Contract{
			Years:         p.Years,
			SalaryWeekly:  p.SalaryWeekly,
			ReleaseClause: p.ReleaseClause,
		}
		c.AdjustConnection(c.Club.Name, 8)
		return p, true, nil
	}
	if p.Mode.Key == "starDemand" {
		c.AdjustConnection(c.Club.Name, -5)
	} else {
		c.AdjustConnection(c.Club.Name, -2)
	}
	return p, false, nil
}

func rng(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

func round1000(v float64) int {
	n := int(math.Round(v/1000)) * 1000
	if n < econ.MinWeeklySalary {
		return econ.MinWeeklySalary
	}
	return n
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
