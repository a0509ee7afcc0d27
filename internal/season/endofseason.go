package season

import (
	"math"
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
	"goalline/internal/market"
	"goalline/internal/progress"
)

// Result is the season's final reckoning before rollover.
type Result struct {
	Trophies    []string `json:"trophies"`
	Goals       int      `json:"goals"`
	Assists     int      `json:"assists"`
	Saves       int      `json:"saves"`
	CleanSheets int      `json:"clean_sheets"`
}

// BuildSeasonResult rolls silverware and output for the season. Win odds
// collapse for low ratings: below 68 OVR the player is a passenger and the
// team's domestic campaigns are treated as lost causes.
func BuildSeasonResult(r *rand.Rand, c *career.Career) Result {
	ovr := c.Ovr()
	club, tier := c.CurrentClub()
	prestige := float64(club.Prestige)

	ovrImpact := 1.0
	switch {
	case ovr < 60:
		ovrImpact = 0.1
	case ovr < 65:
		ovrImpact = 0.3
	case ovr < 70:
		ovrImpact = 0.6
	case ovr < 75:
		ovrImpact = 0.8
	}

	var leagueWon, cupWon bool
	if ovr > 68 {
		winChance := (math.Max(0.01, math.Pow(float64(ovr-68)/90, 1.9)) + prestige/500) * ovrImpact
		leagueWon = r.Float64() < winChance
		cupWon = r.Float64() < math.Max(0.04, winChance*0.45+0.01)
	}
	clWon := tier >= 5 && r.Float64() < math.Max(0.01, float64(ovr-75)/200*(prestige/110))*ovrImpact
	potyWon := ovr >= 87 && r.Float64() < 0.12
	gbWon := c.Position == econ.Striker && ovr >= 85 && r.Float64() < 0.12
	csWon := c.Position == econ.Goalkeeper && ovr >= 84 && r.Float64() < 0.14
	bdWon := ovr >= 95 && r.Float64() < 0.08

	var res Result
	if leagueWon {
		key := clubs.TrophyLeagueLow
		switch {
		case tier >= 5:
			key = clubs.TrophyLeagueTop
		case tier >= 3:
			key = clubs.TrophyLeagueMid
		}
		res.Trophies = append(res.Trophies, key)
	}
	if cupWon && tier >= 2 {
		res.Trophies = append(res.Trophies, clubs.TrophyCup)
	}
	if clWon {
		res.Trophies = append(res.Trophies, clubs.TrophyChampions)
	}
	if potyWon {
		res.Trophies = append(res.Trophies, clubs.TrophyPOTY)
	}
	if gbWon {
		res.Trophies = append(res.Trophies, clubs.TrophyGoldenBoot)
	}
	if csWon {
		res.Trophies = append(res.Trophies, clubs.TrophyCleanSheet)
	}
	if bdWon {
		res.Trophies = append(res.Trophies, clubs.TrophyBallon)
	}

	perf := econ.ClampFloat(float64(ovr-50)/30, 0.2, 1.5)
	ageMult := 1.0
	switch {
	case c.Age >= 40:
		ageMult = 0.25
	case c.Age >= 38:
		ageMult = 0.45
	case c.Age >= 36:
		ageMult = 0.65
	case c.Age >= 33:
		ageMult = 0.85
	}
	total := perf * ageMult

	switch c.Position {
	case econ.Striker:
		res.Goals = max(1, int(math.Round(float64(rng(r, 8, 30))*total)))
		res.Assists = max(0, int(math.Round(float64(rng(r, 2, 12))*total)))
	case econ.Midfielder:
		res.Goals = max(0, int(math.Round(float64(rng(r, 4, 16))*total)))
		res.Assists = max(1, int(math.Round(float64(rng(r, 6, 20))*total)))
	case econ.Goalkeeper:
		res.Saves = max(10, int(math.Round(float64(rng(r, 40, 120))*total)))
		lo, hi := 6, 14
		if leagueWon {
			lo, hi = 12, 18
		}
		res.CleanSheets = econ.ClampInt(int(math.Floor(float64(rng(r, lo, hi))*total)), 0, 38)
	default:
		res.Goals = max(0, int(math.Round(float64(rng(r, 0, 5))*total)))
		res.Assists = max(0, int(math.Round(float64(rng(r, 1, 8))*total)))
	}
	return res
}

// ApplySeasonResult records the rolled season onto the career.
func ApplySeasonResult(c *career.Career, res Result) {
	c.SeasonGoals += res.Goals
	c.SeasonAssists += res.Assists
	c.SeasonSaves += res.Saves
	c.SeasonCleanSheets += res.CleanSheets
	for _, key := range res.Trophies {
		c.AddTrophy(key)
	}
}

// BallonEligibleOvr is the rating bar for award consideration. Voters do
// not look below it no matter the numbers.
const BallonEligibleOvr = 82

// trophyWeight orders silverware by how much voters care: continental
// above league, league above the domestic cup, individual awards below
// team trophies, preseason silver barely at all.
func trophyWeight(key string) float64 {
	switch key {
	case clubs.TrophyChampions:
		return 12
	case clubs.TrophyLeagueTop:
		return 9
	case clubs.TrophyLeagueMid:
		return 7
	case clubs.TrophyCup:
		return 6
	case clubs.TrophyLeagueLow:
		return 5
	case clubs.TrophyPOTY, clubs.TrophyGoldenBoot, clubs.TrophyCleanSheet, clubs.TrophyBallon:
		return 4
	}
	return 2
}

// ballonRank scores the season for the award. A nil rank means unranked;
// the reason is set when the player was never in consideration.
func ballonRank(r *rand.Rand, c *career.Career, banned bool) (*int, string) {
	if banned {
		return nil, "suspended"
	}
	ovr := c.Ovr()
	if ovr < BallonEligibleOvr {
		return nil, "below the rating threshold"
	}
	assistWeight := 0.25
	if c.Position == econ.Midfielder {
		assistWeight = 0.45
	}
	var trophyScore float64
	for _, key := range c.SeasonTrophies {
		trophyScore += trophyWeight(key)
	}
	club, _ := c.CurrentClub()
	score := float64(ovr-76)*5.5 +
		float64(c.SeasonGoals)*0.6 +
		float64(c.SeasonAssists)*assistWeight +
		trophyScore +
		float64(club.Prestige-70)*0.1 +
		c.Reputation*0.15 +
		(r.Float64()-0.5)*8

	var rank int
	switch {
	case score >= 95:
		rank = 1
	case score >= 75:
		rank = rng(r, 2, 4)
	case score >= 55:
		rank = rng(r, 5, 10)
	case score >= 30:
		rank = rng(r, 11, 30)
	default:
		return nil, ""
	}
	return &rank, ""
}

// Season types stamped into history.
const (
	SeasonTypeLeague = "league"
	SeasonTypeLoan   = "loan"
	SeasonTypeBan    = "ban"
)

// Advance rolls the career over into the next season. The ordering here is
// load-bearing: earnings and awards settle on the old season's contract,
// development and decline hit before the snapshot, and the market resolves
// after the snapshot so moves land at the start of the new season. A
// pending transfer always beats a pending renewal.
func Advance(r *rand.Rand, c *career.Career, seasonType, banLabel string) {
	c.Earnings += int64(c.Contract.SalaryWeekly) * 52
	c.TotalGoals += c.SeasonGoals
	c.TotalAssists += c.SeasonAssists
	c.TotalSaves += c.SeasonSaves
	c.TotalCleanSheets += c.SeasonCleanSheets

	rank, reason := ballonRank(r, c, seasonType == SeasonTypeBan)
	repGain := float64(len(c.SeasonTrophies)) * 4
	if rank != nil && *rank == 1 {
		repGain += 10
	}
	if repGain > 0 {
		c.AdjustReputation(repGain)
	}
	club, _ := c.CurrentClub()
	c.BallonHistory = append(c.BallonHistory, career.BallonEntry{
		Season:           c.Season,
		Age:              c.Age,
		Rank:             rank,
		Club:             club.Name,
		IneligibleReason: reason,
	})

	if c.CompletedBanThis {
		if c.RecoverySeasons < 4 {
			c.RecoverySeasons = 4
		}
		c.CompletedBanThis = false
	}
	if c.Age >= 30 {
		progress.AgeDecline(r, c)
	}
	if c.Age < 23 {
		progress.AutoGrow(r, c)
	}
	c.AdjustFitness(12)
	if c.Contract.Years > 0 {
		c.Contract.Years--
	}
	c.RecordPeak()
	c.Snapshot(seasonType, banLabel)

	c.Age++
	c.Season++
	c.SeasonsPlayed++
	if c.RecoverySeasons > 0 && !c.FreeAgencyLock {
		c.RecoverySeasons--
	}
	if c.SigningBoostSeasons > 0 {
		c.SigningBoostSeasons--
		if c.SigningBoostSeasons == 0 {
			c.SigningBoostMult = 0
		}
	}

	market.ResolveApplications(r, c)
	c.ApplyPendingAtSeasonStart()
	market.LoanSeasonProgress(r, c)
	c.ResetSeasonCounters()
	c.Slot = 1
}

// banCaughtSeason voids the season the positive test lands in. Whatever
// was on the books is wiped, the year counts as the first one served, and
// the rollover is stamped as a ban season.
func banCaughtSeason(r *rand.Rand, c *career.Career) {
	c.ResetSeasonCounters()
	c.BannedSeasons--
	if c.BannedSeasons == 0 {
		c.CompletedBanThis = true
	}
	Advance(r, c, SeasonTypeBan, "Caught Doping")
}

// ServeBanSeason burns one suspended season: no football, a little
// physical recovery, then a normal rollover with nothing to show.
func ServeBanSeason(r *rand.Rand, c *career.Career) {
	if c.BannedSeasons <= 0 {
		return
	}
	c.BannedSeasons--
	c.AdjustFitness(10)
	if c.BannedSeasons == 0 {
		c.CompletedBanThis = true
	}
	Advance(r, c, SeasonTypeBan, "Suspended")
}

// FinishSeason resolves slot 10: roll the season outcome, bank it, then
// advance.
func FinishSeason(r *rand.Rand, c *career.Career) Result {
	res := BuildSeasonResult(r, c)
	ApplySeasonResult(c, res)
	seasonType := SeasonTypeLeague
	if c.OnLoan() {
		seasonType = SeasonTypeLoan
	}
	Advance(r, c, seasonType, "")
	return res
}

// ShouldOfferRetirement reports whether the new season opens with the
// question every veteran dreads.
func ShouldOfferRetirement(c *career.Career) bool {
	return !c.Retired && c.Age >= 36 && c.Contract.Years <= 0 && c.PendingTransfer == nil
}
