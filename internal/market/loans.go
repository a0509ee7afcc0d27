package market

import (
	"math"
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
)

// Loan sources recorded for history and sign-offer odds.
const (
	LoanSourceRequest = "request"
	LoanSourceYouth   = "youth-forced"
	LoanSourceHelp    = "help-event"
)

// LoanRequestResult reports how a player-initiated loan request landed.
type LoanRequestResult struct {
	Accepted bool         `json:"accepted"`
	Chance   float64      `json:"chance"`
	Loan     *career.Loan `json:"loan,omitempty"`
}

func lowerTierPool(c *career.Career, lo, hi int, maxPrestige int) []poolEntry {
	lo = econ.ClampInt(lo, 1, clubs.TopTier())
	hi = econ.ClampInt(hi, 1, clubs.TopTier())
	var pool []poolEntry
	for t := lo; t <= hi; t++ {
		for _, cl := range clubs.Tier(t) {
			if cl.Name == c.Club.Name || c.IsBlocked(cl.Name) {
				continue
			}
			if maxPrestige > 0 && cl.Prestige > maxPrestige {
				continue
			}
			pool = append(pool, poolEntry{club: cl, tier: t})
		}
	}
	return pool
}

// RequestLoanOut asks the club for a season or two away. One request per
// season; the cooldown burns whether or not the club agrees. Older
// high-rated players get money loans with a bigger completion bonus,
// everyone else a development loan with a growth multiplier.
func RequestLoanOut(r *rand.Rand, c *career.Career) (LoanRequestResult, error) {
	if c.OnLoan() {
		return LoanRequestResult{}, career.ErrOnLoan
	}
	if c.Contract.Years <= 0 {
		return LoanRequestResult{}, career.ErrNoContract
	}
	if c.Season < c.LoanCooldownSeason {
		return LoanRequestResult{}, ErrLoanCooldown
	}
	c.LoanCooldownSeason = c.Season + 1

	ovr := c.Ovr()
	chance := 0.34
	if c.Club.Prestige >= 82 && ovr <= c.Club.Prestige-18 {
		chance += 0.28
	}
	chance += math.Max(0, c.Reputation-55) * 0.003
	chance -= math.Max(0, float64(ovr-82)) * 0.01
	chance = econ.ClampFloat(chance, 0.10, 0.82)

	if r.Float64() >= chance {
		return LoanRequestResult{Chance: chance}, nil
	}

	pool := lowerTierPool(c, c.ClubTier-3, c.ClubTier-1, 0)
	if len(pool) == 0 {
		pool = lowerTierPool(c, 1, c.ClubTier, 0)
	}
	target, ok := weightedClubPick(r, pool)
	if !ok {
		return LoanRequestResult{Chance: chance}, nil
	}

	years := rng(r, 1, 2)
	focus := career.LoanFocusDevelopment
	growth := 1.25
	bonusRate := 0.4
	if c.Age >= 30 && ovr >= 78 {
		focus = career.LoanFocusMoney
		growth = 1.0
		bonusRate = 0.45
	}
	loan := career.Loan{
		FromClub:    c.Club,
		FromTier:    c.ClubTier,
		ToClub:      target.club,
		ToTier:      target.tier,
		SeasonsLeft: years,
		Focus:       focus,
		GrowthMult:  growth,
		Bonus:       int(math.Round(float64(c.Contract.SalaryWeekly) * 52 * float64(years) * bonusRate)),
		Source:      LoanSourceRequest,
	}
	c.BeginLoan(loan)
	return LoanRequestResult{Accepted: true, Chance: chance, Loan: c.Loan}, nil
}

// MaybeYouthLoan sends an undercooked academy graduate out for minutes.
// Elite clubs farm out 16-17 year olds on long contracts; the check runs
// once per career and the loan, when it fires, is not optional. The
// returned reaction is the prompt awaiting acknowledgement.
func MaybeYouthLoan(r *rand.Rand, c *career.Career) *career.PendingLoanReaction {
	if c.YouthLoanChecked {
		return nil
	}
	c.YouthLoanChecked = true
	if c.Season != 1 || c.Age > 17 || c.Club.Prestige < 86 || c.Contract.Years < 5 {
		return nil
	}

	ovr := c.Ovr()
	chance := 0.30
	if ovr < 68 {
		chance += 0.18
	} else if ovr < 72 {
		chance += 0.10
	}
	weak := c.Club.Prestige >= 88 && ovr <= c.Club.Prestige-20
	if weak {
		chance = math.Max(chance, 0.9)
	}
	hi := 0.58
	if weak {
		hi = 0.92
	}
	if r.Float64() >= econ.ClampFloat(chance, 0.12, hi) {
		return nil
	}

	pool := lowerTierPool(c, c.ClubTier-3, c.ClubTier-1, c.Club.Prestige-6)
	if len(pool) == 0 {
		pool = lowerTierPool(c, 1, c.ClubTier-1, 0)
	}
	target, ok := weightedClubPick(r, pool)
	if !ok {
		return nil
	}

	years := rng(r, 1, 2)
	c.BeginLoan(career.Loan{
		FromClub:    c.Club,
		FromTier:    c.ClubTier,
		ToClub:      target.club,
		ToTier:      target.tier,
		SeasonsLeft: years,
		Focus:       career.LoanFocusDevelopment,
		GrowthMult:  1.25,
		Bonus:       int(math.Round(float64(c.Contract.SalaryWeekly) * 52 * float64(years) * 0.4)),
		Source:      LoanSourceYouth,
	})
	c.PendingLoanReaction = &career.PendingLoanReaction{
		FromClub:   c.Club.Name,
		ToClub:     target.club.Name,
		Years:      years,
		GrowthMult: 1.25,
	}
	return c.PendingLoanReaction
}

// AcknowledgeLoanReaction clears the forced-loan prompt.
func AcknowledgeLoanReaction(c *career.Career) {
	c.PendingLoanReaction = nil
}

// MaybeHelpLoan drafts the mid-season plea from a struggling lower-tier
// side that wants the player until the summer. The offer is a proposal
// only; nothing moves until it is accepted. Established stars are past
// being asked.
func MaybeHelpLoan(r *rand.Rand, c *career.Career) *career.Loan {
	if c.OnLoan() || c.Contract.Years <= 0 || c.Ovr() >= 84 {
		return nil
	}
	pool := lowerTierPool(c, c.ClubTier-2, c.ClubTier-1, 0)
	if len(pool) == 0 {
		return nil
	}
	target, ok := weightedClubPick(r, pool)
	if !ok {
		return nil
	}
	return &career.Loan{
		FromClub:    c.Club,
		FromTier:    c.ClubTier,
		ToClub:      target.club,
		ToTier:      target.tier,
		SeasonsLeft: 1,
		Focus:       career.LoanFocusDevelopment,
		GrowthMult:  1.2,
		Bonus:       int(math.Round(float64(c.Contract.SalaryWeekly) * 52 * 0.35)),
		Source:      LoanSourceHelp,
	}
}

// AcceptHelpLoan answers the call and starts the spell on the spot.
func AcceptHelpLoan(c *career.Career, l career.Loan) {
	c.BeginLoan(l)
	c.AdjustConnection(l.ToClub.Name, 10)
	c.AdjustReputation(3)
}

// DeclineHelpLoan lets the plea go unanswered.
func DeclineHelpLoan(c *career.Career, l career.Loan) {
	c.AdjustConnection(l.ToClub.Name, -5)
}

// LoanSeasonProgress ticks the active loan at season rollover. When the
// spell ends the player returns to the parent club with the bonus paid,
// and a loan club impressed by the stay may table a permanent deal.
func LoanSeasonProgress(r *rand.Rand, c *career.Career) {
	if c.Loan == nil {
		return
	}
	c.Loan.SeasonsLeft--
	if c.Loan.SeasonsLeft > 0 {
		return
	}
	loanClub := c.Loan.ToClub
	loanTier := c.Loan.ToTier
	focus := c.Loan.Focus
	c.EndLoan()

	if c.Contract.Years <= 0 {
		return
	}
	profile := float64(c.Ovr()) + c.Reputation*0.24 + float64(rng(r, -6, 8))
	base := 0.16
	if focus == career.LoanFocusDevelopment {
		base = 0.22
	}
	chance := econ.ClampFloat(base+(profile-72)*0.01, 0.08, 0.58)
	if r.Float64() >= chance {
		return
	}
	prestige := float64(loanClub.Prestige)
	c.LoanSignOffer = &career.LoanSignOffer{
		Club:          loanClub,
		Tier:          loanTier,
		Years:         rng(r, 2, 4),
		SalaryWeekly:  round1000(float64(c.Contract.SalaryWeekly) * (1 + prestige/230)),
		ReleaseClause: roundTenth(math.Max(1, c.BaseMarketValue()*(1.7+prestige/150))),
		BoostSeasons:  5,
		BoostMult:     1.08,
	}
}

// AcceptLoanSignOffer makes the loan move permanent, with a multi-season
// settling-in growth boost.
func AcceptLoanSignOffer(c *career.Career) error {
	o := c.LoanSignOffer
	if o == nil {
		return ErrNoOffer
	}
	c.Club = o.Club
	c.ClubTier = o.Tier
	c.Contract = career.Contract{
		Years:         o.Years,
		SalaryWeekly:  o.SalaryWeekly,
		ReleaseClause: o.ReleaseClause,
	}
	c.PendingTransfer = nil
	c.PendingContract = nil
	c.SigningBoostSeasons = o.BoostSeasons
	c.SigningBoostMult = o.BoostMult
	c.AdjustConnection(o.Club.Name, 12)
	c.LoanSignOffer = nil
	return nil
}

// DeclineLoanSignOffer stays with the parent club.
func DeclineLoanSignOffer(c *career.Career) {
	if c.LoanSignOffer != nil {
		c.AdjustConnection(c.LoanSignOffer.Club.Name, -4)
		c.LoanSignOffer = nil
	}
}
