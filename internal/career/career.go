// Package career defines the player save: identity, attributes, club and
// contract state, ban and loan lifecycles, market bookkeeping and the
// season-by-season record. It owns the state transitions that must stay
// consistent across packages; anything involving dice beyond connection
// seeding lives in market and season.
package career

import (
	"errors"
	"math"
	"math/rand"

	"goalline/internal/clubs"
	"goalline/internal/econ"
)

var (
	ErrRetired    = errors.New("career is over")
	ErrBanned     = errors.New("serving a doping ban")
	ErrOnLoan     = errors.New("not available while out on loan")
	ErrNoContract = errors.New("no active contract")
	ErrNotFound   = errors.New("not found")
)

// Contract is the active deal with the current club. Salary is weekly in
// euros, the release clause in millions.
type Contract struct {
	Years         int     `json:"years"`
	SalaryWeekly  int     `json:"salary_weekly"`
	ReleaseClause float64 `json:"release_clause"`
}

// PendingTransfer is an agreed move that takes effect at the next season
// start. It always wins over a pending contract for the old club.
type PendingTransfer struct {
	Club     clubs.Club `json:"club"`
	Tier     int        `json:"tier"`
	Contract Contract   `json:"contract"`
}

// Loan focus selects the deal's intent: development loans boost growth,
// money loans pay a larger completion bonus.
const (
	LoanFocusDevelopment = "development"
	LoanFocusMoney       = "money"
)

// Loan is an active spell away from the parent club. The parent contract
// keeps ticking; SeasonsLeft counts loan seasons still to play.
type Loan struct {
	FromClub    clubs.Club `json:"from_club"`
	FromTier    int        `json:"from_tier"`
	ToClub      clubs.Club `json:"to_club"`
	ToTier      int        `json:"to_tier"`
	SeasonsLeft int        `json:"seasons_left"`
	Focus       string     `json:"focus"`
	GrowthMult  float64    `json:"growth_mult"`
	Bonus       int        `json:"bonus"`
	Source      string     `json:"source"`
}

// Application statuses as they move through the market.
const (
	AppPending  = "pending"
	AppOffered  = "offered"
	AppRejected = "rejected"
	AppHold     = "hold"
)

// Application is a player-initiated approach to a club, resolved at the end
// of the season after it was filed.
type Application struct {
	ClubName         string  `json:"club_name"`
	SeasonApplied    int     `json:"season_applied"`
	Status           string  `json:"status"`
	ResponseScore    float64 `json:"response_score"`
	Mode             string  `json:"mode"`
	SalaryMultiplier float64 `json:"salary_multiplier"`
	ChanceBonus      float64 `json:"chance_bonus"`
}

// Offer is a concrete contract proposal from a club.
type Offer struct {
	Club          clubs.Club `json:"club"`
	Tier          int        `json:"tier"`
	Years         int        `json:"years"`
	SalaryWeekly  int        `json:"salary_weekly"`
	ReleaseClause float64    `json:"release_clause"`
	Kind          string     `json:"kind"`
}

// MarketFeedback is a queued response to an application, drained one per
// transfer window. Offer is nil for rejections and holds.
type MarketFeedback struct {
	ClubName string `json:"club_name"`
	Status   string `json:"status"`
	Offer    *Offer `json:"offer,omitempty"`
}

// LoanSignOffer is a permanent deal proposed by the loan club when the
// spell ends well.
type LoanSignOffer struct {
	Club          clubs.Club `json:"club"`
	Tier          int        `json:"tier"`
	Years         int        `json:"years"`
	SalaryWeekly  int        `json:"salary_weekly"`
	ReleaseClause float64    `json:"release_clause"`
	BoostSeasons  int        `json:"boost_seasons"`
	BoostMult     float64    `json:"boost_mult"`
}

// PendingLoanReaction is a forced youth loan awaiting acknowledgement.
type PendingLoanReaction struct {
	FromClub   string  `json:"from_club"`
	ToClub     string  `json:"to_club"`
	Years      int     `json:"years"`
	GrowthMult float64 `json:"growth_mult"`
}

// SeasonRecord is the immutable per-season snapshot taken at rollover.
type SeasonRecord struct {
	Season      int             `json:"season"`
	Age         int             `json:"age"`
	Ovr         int             `json:"ovr"`
	MarketValue float64         `json:"market_value"`
	Goals       int             `json:"goals"`
	Assists     int             `json:"assists"`
	Saves       int             `json:"saves"`
	CleanSheets int             `json:"clean_sheets"`
	Stats       econ.Attributes `json:"stats"`
	Club        string          `json:"club"`
	Trophies    []string        `json:"trophies"`
	SeasonType  string          `json:"season_type"`
	BanLabel    string          `json:"ban_label,omitempty"`
}

// BallonEntry records one season's Ballon d'Or outcome. Rank is nil when
// unranked or ineligible.
type BallonEntry struct {
	Season           int    `json:"season"`
	Age              int    `json:"age"`
	Rank             *int   `json:"rank"`
	Club             string `json:"club"`
	IneligibleReason string `json:"ineligible_reason,omitempty"`
}

// Career is the full save for one player.
type Career struct {
	Name        string        `json:"name"`
	Position    econ.Position `json:"position"`
	Nationality string        `json:"nationality"`
	Academy     clubs.Academy `json:"academy"`

	Age    int `json:"age"`
	Season int `json:"season"`
	Slot   int `json:"slot"`

	Stats      econ.Attributes `json:"stats"`
	Fitness    float64         `json:"fitness"`
	Reputation float64         `json:"reputation"`

	Club     clubs.Club `json:"club"`
	ClubTier int        `json:"club_tier"`
	Contract Contract   `json:"contract"`

	PendingTransfer *PendingTransfer `json:"pending_transfer,omitempty"`
	PendingContract *Contract        `json:"pending_contract,omitempty"`

	Loan                *Loan                `json:"loan,omitempty"`
	LoanSignOffer       *LoanSignOffer       `json:"loan_sign_offer,omitempty"`
	PendingLoanReaction *PendingLoanReaction `json:"pending_loan_reaction,omitempty"`
	LoanCooldownSeason  int                  `json:"loan_cooldown_season,omitempty"`
	YouthLoanChecked    bool                 `json:"youth_loan_checked,omitempty"`

	BannedSeasons    int             `json:"banned_seasons,omitempty"`
	FreeAgencyLock   bool            `json:"free_agency_lock,omitempty"`
	RecoverySeasons  int             `json:"recovery_seasons,omitempty"`
	DopingBans       int             `json:"doping_bans,omitempty"`
	BlockedClubs     map[string]bool `json:"blocked_clubs,omitempty"`
	LastBoosterUse   string          `json:"last_booster_use,omitempty"`
	CompletedBanThis bool            `json:"completed_ban_this,omitempty"`

	Connections  map[string]int   `json:"connections,omitempty"`
	Applications []Application    `json:"applications,omitempty"`
	Feedback     []MarketFeedback `json:"feedback,omitempty"`

	SigningBoostSeasons int     `json:"signing_boost_seasons,omitempty"`
	SigningBoostMult    float64 `json:"signing_boost_mult,omitempty"`

	RenewalOfferSeason     int `json:"renewal_offer_season,omitempty"`
	FreeAgentRenewalSeason int `json:"free_agent_renewal_season,omitempty"`

	SeasonGoals       int      `json:"season_goals"`
	SeasonAssists     int      `json:"season_assists"`
	SeasonSaves       int      `json:"season_saves"`
	SeasonCleanSheets int      `json:"season_clean_sheets"`
	SeasonTrophies    []string `json:"season_trophies,omitempty"`

	Caps          int `json:"caps"`
	NationalGoals int `json:"national_goals"`

	Trophies         []string `json:"trophies,omitempty"`
	TotalGoals       int      `json:"total_goals"`
	TotalAssists     int      `json:"total_assists"`
	TotalSaves       int      `json:"total_saves"`
	TotalCleanSheets int      `json:"total_clean_sheets"`
	InjuryCount      int      `json:"injury_count"`

	Earnings int64 `json:"earnings"`

	PeakOvr       int    `json:"peak_ovr"`
	PeakClub      string `json:"peak_club"`
	SeasonsPlayed int    `json:"seasons_played"`

	SeasonHistory []SeasonRecord `json:"season_history,omitempty"`
	BallonHistory []BallonEntry  `json:"ballon_history,omitempty"`

	Retired bool `json:"retired,omitempty"`
}

// Ovr is the current overall rating.
func (c *Career) Ovr() int {
	return econ.OverallRating(c.Stats, c.Position)
}

// BaseMarketValue ignores ban adjustments.
func (c *Career) BaseMarketValue() float64 {
	return econ.MarketValue(c.Ovr(), c.Age)
}

// MarketValue applies ban, lock and recovery adjustments.
func (c *Career) MarketValue() float64 {
	return econ.AdjustedMarketValue(c.Ovr(), c.Age, econ.ValueStatus{
		BannedSeasons:    c.BannedSeasons,
		FreeAgentLocked:  c.FreeAgencyLock,
		RecoverySeasons:  c.RecoverySeasons,
		HasContractYears: c.Contract.Years > 0,
	})
}

// IsFreeAgent reports whether no contract years remain.
func (c *Career) IsFreeAgent() bool { return c.Contract.Years <= 0 }

// OnLoan reports whether a loan spell is active.
func (c *Career) OnLoan() bool { return c.Loan != nil }

// CurrentClub is where the player actually plays: the loan club while a
// spell is active, otherwise the parent club.
func (c *Career) CurrentClub() (clubs.Club, int) {
	if c.Loan != nil {
		return c.Loan.ToClub, c.Loan.ToTier
	}
	return c.Club, c.ClubTier
}

// RecordPeak updates the career-best rating and the club it was hit at.
func (c *Career) RecordPeak() {
	if ovr := c.Ovr(); ovr > c.PeakOvr {
		c.PeakOvr = ovr
		club, _ := c.CurrentClub()
		c.PeakClub = club.Name
	}
}

// AdjustReputation applies a delta clamped into [0,100].
func (c *Career) AdjustReputation(delta float64) {
	c.Reputation = econ.ClampFloat(c.Reputation+delta, 0, 100)
}

// AdjustFitness applies a delta clamped into [10,100].
func (c *Career) AdjustFitness(delta float64) {
	c.Fitness = econ.ClampFloat(c.Fitness+delta, 10, 100)
}

// BlockClub marks a club as permanently closed to the player.
func (c *Career) BlockClub(name string) {
	if c.BlockedClubs == nil {
		c.BlockedClubs = map[string]bool{}
	}
	c.BlockedClubs[name] = true
}

// IsBlocked reports whether a club refuses to deal with the player.
func (c *Career) IsBlocked(name string) bool { return c.BlockedClubs[name] }

// ConnectionTo returns the manager relationship with a club, seeding it on
// first contact from reputation and the tier gap.
func (c *Career) ConnectionTo(r *rand.Rand, name string, tier int) int {
	if c.Connections == nil {
		c.Connections = map[string]int{}
	}
	if v, ok := c.Connections[name]; ok {
		return v
	}
	gap := tier - c.ClubTier
	seed := 34 + c.Reputation*0.22 - math.Max(0, float64(gap))*4 + float64(r.Intn(17)-8)
	v := econ.ClampInt(int(math.Round(seed)), 8, 82)
	c.Connections[name] = v
	return v
}

// AdjustConnection shifts a known relationship, clamped into [0,100]. The
// club becomes known if it was not.
func (c *Career) AdjustConnection(name string, delta int) {
	if c.Connections == nil {
		c.Connections = map[string]int{}
	}
	c.Connections[name] = econ.ClampInt(c.Connections[name]+delta, 0, 100)
}

// RippleConnections shifts every already-known relationship. Word travels.
func (c *Career) RippleConnections(delta int) {
	for name := range c.Connections {
		c.Connections[name] = econ.ClampInt(c.Connections[name]+delta, 0, 100)
	}
}

// StartBan applies a doping ban: the current club blocks the player, the
// contract is torn up, and the player is locked into free agency until a
// post-ban deal is signed. BannedSeasons counts the season the test was
// failed in; the caller closes that season out as the first one served.
func (c *Career) StartBan(seasons int, repHit float64) {
	if seasons < 1 {
		seasons = 1
	}
	club, _ := c.CurrentClub()
	c.BlockClub(club.Name)
	c.BannedSeasons = seasons
	c.FreeAgencyLock = true
	c.DopingBans++
	c.AdjustReputation(-repHit)
	c.Contract = Contract{}
	c.PendingTransfer = nil
	c.PendingContract = nil
	c.AdjustConnection(club.Name, -30)
	c.RippleConnections(-10)
}

// ApplyPendingAtSeasonStart commits whichever deal was agreed during the
// season. A transfer and a renewal can never both land: moving clubs
// invalidates the old club's paperwork, so the transfer wins and the
// pending contract is discarded.
func (c *Career) ApplyPendingAtSeasonStart() {
	if pt := c.PendingTransfer; pt != nil {
		c.Club = pt.Club
		c.ClubTier = pt.Tier
		c.Contract = pt.Contract
		c.PendingTransfer = nil
		c.PendingContract = nil
		c.FreeAgencyLock = false
		return
	}
	if pc := c.PendingContract; pc != nil {
		c.Contract = *pc
		c.PendingContract = nil
	}
}

// BeginLoan moves the player to the loan club. Both pending deals are
// cleared; a loan freezes the market.
func (c *Career) BeginLoan(l Loan) {
	loan := l
	c.Loan = &loan
	c.PendingTransfer = nil
	c.PendingContract = nil
}

// EndLoan returns the player to the parent club and pays the completion
// bonus into career earnings.
func (c *Career) EndLoan() {
	if c.Loan == nil {
		return
	}
	c.Earnings += int64(c.Loan.Bonus)
	c.Loan = nil
}

// Snapshot records the season just played into history.
func (c *Career) Snapshot(seasonType, banLabel string) {
	club, _ := c.CurrentClub()
	stats := c.Stats
	stats.Pace = math.Round(stats.Pace)
	stats.Shooting = math.Round(stats.Shooting)
	stats.Passing = math.Round(stats.Passing)
	stats.Dribbling = math.Round(stats.Dribbling)
	stats.Physical = math.Round(stats.Physical)
	trophies := make([]string, len(c.SeasonTrophies))
	copy(trophies, c.SeasonTrophies)
	c.SeasonHistory = append(c.SeasonHistory, SeasonRecord{
		Season:      c.Season,
		Age:         c.Age,
		Ovr:         c.Ovr(),
		MarketValue: c.MarketValue(),
		Goals:       c.SeasonGoals,
		Assists:     c.SeasonAssists,
		Saves:       c.SeasonSaves,
		CleanSheets: c.SeasonCleanSheets,
		Stats:       stats,
		Club:        club.Name,
		Trophies:    trophies,
		SeasonType:  seasonType,
		BanLabel:    banLabel,
	})
}

// ResetSeasonCounters clears the per-season tallies after a rollover.
func (c *Career) ResetSeasonCounters() {
	c.SeasonGoals = 0
	c.SeasonAssists = 0
	c.SeasonSaves = 0
	c.SeasonCleanSheets = 0
	c.SeasonTrophies = nil
}

// AddTrophy records a trophy for both the season and the career.
func (c *Career) AddTrophy(key string) {
	c.SeasonTrophies = append(c.SeasonTrophies, key)
	c.Trophies = append(c.Trophies, key)
}

// CareerRating collapses peak rating and silverware into a 1-5 legacy tier.
func (c *Career) CareerRating() int {
	n := len(c.Trophies)
	switch {
	case c.PeakOvr >= 91 && n >= 8:
		return 5
	case c.PeakOvr >= 84 && n >= 4:
		return 4
	case c.PeakOvr >= 76 && n >= 2:
		return 3
	case c.PeakOvr >= 68 && n >= 1:
		return 2
	}
	return 1
}

// CareerRatingLabel names the legacy tier.
func CareerRatingLabel(rating int) string {
	labels := []string{"", "Journeyman", "Solid Professional", "Fan Favourite", "Club Legend", "World Legend"}
	if rating < 1 || rating >= len(labels) {
		return labels[1]
	}
	return labels[rating]
}
