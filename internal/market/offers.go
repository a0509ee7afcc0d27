package market

import (
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
)

// weightedClubPick draws one club with probability proportional to its
// prestige margin over the weakest candidate.
func weightedClubPick(r *rand.Rand, pool []poolEntry) (poolEntry, bool) {
	if len(pool) == 0 {
		return poolEntry{}, false
	}
	minP := pool[0].club.Prestige
	for _, e := range pool[1:] {
		if e.club.Prestige < minP {
			minP = e.club.Prestige
		}
	}
	total := 0
	weights := make([]int, len(pool))
	for i, e := range pool {
		w := e.club.Prestige - minP + 5
		if w < 1 {
			w = 1
		}
		weights[i] = w
		total += w
	}
	pick := r.Intn(total)
	for i, w := range weights {
		pick -= w
		if pick < 0 {
			return pool[i], true
		}
	}
	return pool[len(pool)-1], true
}

func tierWindowPool(c *career.Career, lo, hi int) []poolEntry {
	lo = econ.ClampInt(lo, 1, clubs.TopTier())
	hi = econ.ClampInt(hi, 1, clubs.TopTier())
	var pool []poolEntry
	for t := lo; t <= hi; t++ {
		for _, cl := range clubs.Tier(t) {
			if cl.Name == c.Club.Name || c.IsBlocked(cl.Name) {
				continue
			}
			pool = append(pool, poolEntry{club: cl, tier: t})
		}
	}
	return pool
}

// BuildTransferOffers rolls a batch of unsolicited offers. The tier window
// and offer count depend on age and situation: veterans slide down the
// table, players coming off a ban restart below their old level, and only
// a rating above the bar keeps a late career alive at all.
func BuildTransferOffers(r *rand.Rand, c *career.Career, forFreeAgency bool) []career.Offer {
	ovr := c.Ovr()
	tier := c.ClubTier
	num := rng(r, 2, 3)
	var lo, hi int

	switch {
	case c.FreeAgencyLock && forFreeAgency:
		num = rng(r, 1, 2)
		lo, hi = tier-2, tier
	case c.Age >= 40:
		if ovr < 65 {
			return nil
		}
		num = rng(r, 0, 1)
		lo, hi = 1, min(3, tier+1)
	case c.Age >= 38:
		if ovr < 68 {
			return nil
		}
		num = rng(r, 0, 2)
		lo, hi = 1, min(4, tier+1)
	case c.Age >= 36:
		if ovr < 73 {
			lo, hi = tier-2, tier
		} else {
			lo, hi = tier-1, tier+1
		}
		num = min(num, rng(r, 1, 2))
	case c.Age >= 34:
		lo, hi = tier-1, tier+1
	case forFreeAgency:
		lo, hi = tier-1, tier+1
	default:
		lo, hi = tier+1, tier+2
	}
	if num <= 0 {
		return nil
	}

	pool := tierWindowPool(c, lo, hi)
	if len(pool) == 0 {
		return nil
	}
	fee := c.BaseMarketValue() * 1.1
	kind := "transfer"
	if forFreeAgency {
		fee = c.BaseMarketValue() * 0.2
		kind = "free-agency"
	}

	var offers []career.Offer
	seen := map[string]bool{}
	for attempts := 0; attempts < 24 && len(offers) < num; attempts++ {
		e, ok := weightedClubPick(r, pool)
		if !ok || seen[e.club.Name] {
			continue
		}
		// Clubs that cannot fund the deal occasionally stretch anyway.
		if !CanClubFinanceMove(r, c, e.club, fee) && r.Float64() >= 0.12 {
			continue
		}
		seen[e.club.Name] = true
		offers = append(offers, BuildClubTerms(r, c, e.club, e.tier, 1, kind))
	}
	return offers
}

// MaybeReleaseClauseEvent rolls whether a bigger club triggers the
// player's release clause this window. Cheap clauses get hit far more
// often. Returns nil when nothing fires.
func MaybeReleaseClauseEvent(r *rand.Rand, c *career.Career) *career.Offer {
	if c.ClubTier >= clubs.TopTier() || c.Age < 18 {
		return nil
	}
	chance := 0.14
	if c.Contract.ReleaseClause < c.BaseMarketValue()*1.5 {
		chance = 0.35
	}
	if r.Float64() >= chance {
		return nil
	}

	var pool []poolEntry
	for t := c.ClubTier + 1; t <= min(c.ClubTier+2, clubs.TopTier()); t++ {
		for _, cl := range clubs.Tier(t) {
			if cl.Prestige > c.Club.Prestige+5 && !c.IsBlocked(cl.Name) {
				pool = append(pool, poolEntry{club: cl, tier: t})
			}
		}
	}
	e, ok := weightedClubPick(r, pool)
	if !ok {
		return nil
	}
	mv := c.BaseMarketValue()
	offer := career.Offer{
		Club:          e.club,
		Tier:          e.tier,
		Years:         econ.RollContractYears(r, c.Age),
		SalaryWeekly:  round1000(float64(c.Contract.SalaryWeekly) * (1 + float64(e.club.Prestige)/200)),
		ReleaseClause: roundTenth(mv * (2.2 + float64(e.club.Prestige)/120)),
		Kind:          "release-clause",
	}
	return &offer
}

// BuildRenewalOffer rolls whether the current club tables a renewal.
// Returns nil when the club passes, when a locked free agent has no club
// to renew with, or when the club blacklisted the player.
func BuildRenewalOffer(r *rand.Rand, c *career.Career, freeAgent bool) *career.Offer {
	if freeAgent && c.FreeAgencyLock {
		return nil
	}
	if c.IsBlocked(c.Club.Name) {
		return nil
	}
	chance := 0.42
	if freeAgent {
		chance = 0.5
	}
	switch {
	case c.Age <= 23:
		chance += 0.28
	case c.Age <= 27:
		chance += 0.18
	case c.Age >= 37:
		chance -= 0.22
	case c.Age >= 34:
		chance -= 0.12
	}
	ovr := c.Ovr()
	switch {
	case ovr >= 86:
		chance += 0.22
	case ovr >= 78:
		chance += 0.12
	case ovr < 60:
		chance -= 0.18
	case ovr < 68:
		chance -= 0.12
	}
	chance += float64(c.Club.Prestige-75) / 250
	if freeAgent && c.Age >= 36 {
		chance -= 0.1
	}
	if r.Float64() >= econ.ClampFloat(chance, 0.05, 0.92) {
		return nil
	}

	prestige := float64(c.Club.Prestige)
	offer := career.Offer{
		Club:          c.Club,
		Tier:          c.ClubTier,
		Years:         econ.RollContractYears(r, c.Age),
		SalaryWeekly:  round1000(float64(c.Contract.SalaryWeekly) * (1 + prestige/260)),
		ReleaseClause: roundTenth(c.BaseMarketValue() * (2 + prestige/120)),
		Kind:          "renewal",
	}
	return &offer
}

// PerformTransfer commits to an offer from another club. A player coming
// off a ban signs immediately; everyone else finishes the season first and
// moves at rollover, which cancels any renewal already agreed.
func PerformTransfer(c *career.Career, offer career.Offer) error {
	if c.OnLoan() {
		return career.ErrOnLoan
	}
	contract := career.Contract{
		Years:         offer.Years,
		SalaryWeekly:  offer.SalaryWeekly,
		ReleaseClause: offer.ReleaseClause,
	}
	oldClub := c.Club.Name
	if c.FreeAgencyLock && c.Contract.Years <= 0 {
		c.Club = offer.Club
		c.ClubTier = offer.Tier
		c.Contract = contract
		c.PendingTransfer = nil
		c.PendingContract = nil
		c.FreeAgencyLock = false
		c.AdjustConnection(oldClub, -12)
		c.AdjustConnection(offer.Club.Name, 16)
		c.AdjustReputation(float64(offer.Club.Prestige) / 55)
		return nil
	}
	c.PendingTransfer = &career.PendingTransfer{
		Club:     offer.Club,
		Tier:     offer.Tier,
		Contract: contract,
	}
	c.PendingContract = nil
	c.FreeAgencyLock = false
	c.AdjustConnection(oldClub, -10)
	c.AdjustConnection(offer.Club.Name, 14)
	c.AdjustReputation(float64(offer.Club.Prestige) / 40)
	return nil
}

// AcceptRenewal stores the agreed terms as the pending contract.
func AcceptRenewal(c *career.Career, offer career.Offer) {
	c.PendingContract = &career.Contract{
		Years:         offer.Years,
		SalaryWeekly:  offer.SalaryWeekly,
		ReleaseClause: offer.ReleaseClause,
	}
	c.AdjustConnection(c.Club.Name, 10)
}

// DeclineRenewal turns the club down. Walking away as a free agent stings
// more than declining mid-contract.
func DeclineRenewal(c *career.Career, freeAgent bool) {
	if freeAgent {
		c.AdjustConnection(c.Club.Name, -8)
	} else {
		c.AdjustConnection(c.Club.Name, -5)
	}
}

// DeclineReleaseClause rejects a clause-triggering club. Loyalty registers
// at home.
func DeclineReleaseClause(c *career.Career, offer career.Offer) {
	c.AdjustConnection(offer.Club.Name, -10)
	c.AdjustConnection(c.Club.Name, 5)
}

// StayAtClub is the explicit commitment after shopping around.
func StayAtClub(c *career.Career) {
	c.AdjustConnection(c.Club.Name, 6)
}
