package market

import (
	"errors"
	"math"
	"math/rand"
	"sort"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
)

var (
	ErrMoveAgreed         = errors.New("a move is already agreed")
	ErrPendingApplication = errors.New("an application to this club is already pending")
	ErrClubBlocked        = errors.New("this club will not deal with you")
	ErrLoanCooldown       = errors.New("loan request already made recently")
	ErrNoOffer            = errors.New("no such offer")
)

// Interest statuses shown on the market board for clubs tracking the
// player.
const (
	StatusOfferNow      = "offer-now"
	StatusReleaseClause = "release-clause"
	StatusWaitExpiry    = "wait-expiry"
	StatusFreeAgent     = "free-agent"
)

// BoardEntry is a club actively interested in the player. Offer is set when
// the club is ready to move immediately.
type BoardEntry struct {
	Club   clubs.Club    `json:"club"`
	Tier   int           `json:"tier"`
	Status string        `json:"status"`
	Offer  *career.Offer `json:"offer,omitempty"`
}

// BoardTarget is a club the player could plausibly approach.
type BoardTarget struct {
	Club  clubs.Club `json:"club"`
	Tier  int        `json:"tier"`
	Score float64    `json:"score"`
}

// Board is one transfer window's market view.
type Board struct {
	Incoming []BoardEntry  `json:"incoming"`
	Targets  []BoardTarget `json:"targets"`
}

type poolEntry struct {
	club clubs.Club
	tier int
}

// marketPool is the reachable slice of the club table: three tiers down to
// two up, one more up for elite players, minus the current club and any
// club that blacklisted the player.
func marketPool(c *career.Career) []poolEntry {
	hi := c.ClubTier + 2
	if c.Ovr() >= 86 {
		hi = c.ClubTier + 3
	}
	lo := econ.ClampInt(c.ClubTier-3, 1, clubs.TopTier())
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

// interestChance is how likely a pool club is to track the player this
// window.
func interestChance(r *rand.Rand, c *career.Career, club clubs.Club, tier int) float64 {
	conn := c.ConnectionTo(r, club.Name, tier)
	gap := float64(tier - c.ClubTier)
	chance := 0.07 +
		float64(c.Ovr()-66)*0.012 +
		c.Reputation*0.003 -
		math.Max(0, gap)*0.028 +
		float64(club.Prestige-c.Club.Prestige)*0.0015 +
		float64(conn-45)*0.0022
	return econ.ClampFloat(chance, 0.02, 0.74)
}

// targetScore rates the player's odds of a successful approach to a club.
func targetScore(r *rand.Rand, c *career.Career, club clubs.Club, tier int) float64 {
	conn := c.ConnectionTo(r, club.Name, tier)
	gap := float64(tier - c.ClubTier)
	score := 0.26 +
		float64(c.Ovr()-68)*0.016 +
		c.Reputation*0.003 +
		gap*0.025 +
		float64(conn-45)*0.0025 -
		math.Max(0, float64(c.Age-31))*0.018
	return econ.ClampFloat(score, 0.03, 0.88)
}

// BuildBoard assembles the transfer window view: up to six interested clubs
// ranked by prestige, each with a concrete stance, and up to ten approach
// targets.
func BuildBoard(r *rand.Rand, c *career.Career) Board {
	pool := marketPool(c)
	mv := c.BaseMarketValue()

	var incoming []BoardEntry
	for _, e := range pool {
		if r.Float64() >= interestChance(r, c, e.club, e.tier) {
			continue
		}
		incoming = append(incoming, buildBoardEntry(r, c, e, mv))
	}
	sort.SliceStable(incoming, func(i, j int) bool {
		return incoming[i].Club.Prestige > incoming[j].Club.Prestige
	})
	if len(incoming) > 6 {
		incoming = incoming[:6]
	}

	var targets []BoardTarget
	for _, e := range pool {
		targets = append(targets, BoardTarget{
			Club:  e.club,
			Tier:  e.tier,
			Score: targetScore(r, c, e.club, e.tier),
		})
	}
	sort.SliceStable(targets, func(i, j int) bool {
		return targets[i].Club.Prestige > targets[j].Club.Prestige
	})
	if len(targets) > 10 {
		targets = targets[:10]
	}

	return Board{Incoming: incoming, Targets: targets}
}

// buildBoardEntry picks the interested club's stance: sign a free agent,
// pay the release clause, negotiate a fee now, or wait for the contract to
// run down.
func buildBoardEntry(r *rand.Rand, c *career.Career, e poolEntry, mv float64) BoardEntry {
	entry := BoardEntry{Club: e.club, Tier: e.tier}
	switch {
	case c.Contract.Years <= 0:
		entry.Status = StatusFreeAgent
		offer := BuildClubTerms(r, c, e.club, e.tier, 1, "free-agent")
		entry.Offer = &offer
	case c.Contract.Years <= 1:
		entry.Status = StatusWaitExpiry
		if CanClubFinanceMove(r, c, e.club, mv*0.18) {
			offer := BuildClubTerms(r, c, e.club, e.tier, 1, "pre-contract")
			entry.Offer = &offer
		}
	case c.Contract.ReleaseClause <= mv*1.65 && CanClubFinanceMove(r, c, e.club, c.Contract.ReleaseClause):
		entry.Status = StatusReleaseClause
		offer := BuildClubTerms(r, c, e.club, e.tier, 1, "release-clause")
		entry.Offer = &offer
	case WillingToSell(r, c, e.club) && CanClubFinanceMove(r, c, e.club, mv*1.1):
		entry.Status = StatusOfferNow
		offer := BuildClubTerms(r, c, e.club, e.tier, 1, "negotiated")
		entry.Offer = &offer
	default:
		entry.Status = StatusWaitExpiry
	}
	return entry
}

// Apply files an approach to a club under a negotiation posture. One
// pending application per club; the posture's relation delta lands on the
// manager immediately and the response resolves at the end of the season.
func Apply(r *rand.Rand, c *career.Career, clubName, modeKey string) (career.Application, error) {
	if c.IsBlocked(clubName) {
		return career.Application{}, ErrClubBlocked
	}
	club, ok := clubs.ByName(clubName)
	if !ok {
		return career.Application{}, career.ErrNotFound
	}
	for _, app := range c.Applications {
		if app.ClubName == clubName && app.Status == career.AppPending {
			return career.Application{}, ErrPendingApplication
		}
	}
	mode := ApplicationModeByKey(modeKey)
	tier := clubs.TierOf(clubName)
	score := targetScore(r, c, club, tier)
	c.AdjustConnection(clubName, mode.RelationDelta)
	app := career.Application{
		ClubName:         clubName,
		SeasonApplied:    c.Season,
		Status:           career.AppPending,
		ResponseScore:    score,
		Mode:             mode.Key,
		SalaryMultiplier: mode.SalaryMult,
		ChanceBonus:      mode.ChanceBonus,
	}
	c.Applications = append(c.Applications, app)
	return app, nil
}

// ResolveApplications settles every pending approach filed before the
// current season. Successes become offers queued as market feedback;
// failures queue a rejection, and clubs that want the player but cannot
// fund the move right now hold their interest.
func ResolveApplications(r *rand.Rand, c *career.Career) {
	for i := range c.Applications {
		app := &c.Applications[i]
		if app.Status != career.AppPending || app.SeasonApplied >= c.Season {
			continue
		}
		club, ok := clubs.ByName(app.ClubName)
		if !ok {
			app.Status = career.AppRejected
			continue
		}
		tier := clubs.TierOf(app.ClubName)
		conn := c.ConnectionTo(r, app.ClubName, tier)
		chance := app.ResponseScore +
			float64(c.Ovr()-72)*0.01 +
			c.Reputation*0.0015 +
			float64(conn-45)*0.0032 +
			app.ChanceBonus -
			math.Max(0, float64(c.Age-33))*0.02
		chance = econ.ClampFloat(chance, 0.04, 0.92)

		if r.Float64() >= chance {
			app.Status = career.AppRejected
			c.Feedback = append(c.Feedback, career.MarketFeedback{
				ClubName: app.ClubName, Status: career.AppRejected,
			})
			continue
		}
		moveNow := c.Contract.Years <= 1 || WillingToSell(r, c, club)
		fee := c.BaseMarketValue() * 0.2
		if moveNow {
			fee = c.BaseMarketValue() * 1.1
		}
		if !CanClubFinanceMove(r, c, club, fee) {
			app.Status = career.AppHold
			c.Feedback = append(c.Feedback, career.MarketFeedback{
				ClubName: app.ClubName, Status: career.AppHold,
			})
			continue
		}
		app.Status = career.AppOffered
		offer := BuildClubTerms(r, c, club, tier, app.SalaryMultiplier, "application")
		c.Feedback = append(c.Feedback, career.MarketFeedback{
			ClubName: app.ClubName, Status: career.AppOffered, Offer: &offer,
		})
	}
}

// NextFeedback peeks the oldest undelivered market response. Feedback waits
// while the player is out on loan.
func NextFeedback(c *career.Career) (career.MarketFeedback, bool) {
	if c.OnLoan() || len(c.Feedback) == 0 {
		return career.MarketFeedback{}, false
	}
	return c.Feedback[0], true
}

// PopFeedback removes the oldest market response from the queue.
func PopFeedback(c *career.Career) {
	if len(c.Feedback) > 0 {
		c.Feedback = c.Feedback[1:]
	}
}

// DismissFeedbackOffer turns down an offered deal from the feedback queue.
// The spurned club cools; the current club appreciates the commitment.
func DismissFeedbackOffer(c *career.Career, fb career.MarketFeedback) {
	if fb.Offer != nil {
		c.AdjustConnection(fb.ClubName, -8)
		c.AdjustConnection(c.Club.Name, 4)
	}
}
