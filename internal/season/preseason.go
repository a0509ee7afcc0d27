package season

import (
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
)

var cupNames = []string{
	"Emirates Summer Cup",
	"Trofeo Costa del Sol",
	"Alpine Four Nations Trophy",
	"Atlantic Champions Challenge",
	"Grand Prix des Clubs",
}

// CupTeam is one side in the four-team preseason bracket.
type CupTeam struct {
	Club     clubs.Club `json:"club"`
	Strength float64    `json:"strength"`
}

// CupInvite is an invitation to a preseason tournament.
type CupInvite struct {
	CupName string    `json:"cup_name"`
	Teams   []CupTeam `json:"teams"`
}

// CupMatch is one simulated tie.
type CupMatch struct {
	Home      string `json:"home"`
	Away      string `json:"away"`
	HomeGoals int    `json:"home_goals"`
	AwayGoals int    `json:"away_goals"`
	HomeWins  bool   `json:"home_wins"`
}

// CupResult is the player club's run through the bracket.
type CupResult struct {
	CupName   string    `json:"cup_name"`
	Benched   bool      `json:"benched"`
	Semi      CupMatch  `json:"semi"`
	Final     *CupMatch `json:"final,omitempty"`
	Won       bool      `json:"won"`
	TrophyKey string    `json:"trophy_key,omitempty"`
}

// MaybeCupInvite rolls a preseason tournament invitation: the player's club
// plus three sides from the neighbouring tiers.
func MaybeCupInvite(r *rand.Rand, c *career.Career) *CupInvite {
	if r.Float64() >= 0.35 {
		return nil
	}
	club, tier := c.CurrentClub()
	pool := clubs.Window(tier-1, tier+1)
	var others []clubs.Club
	for _, cl := range pool {
		if cl.Name != club.Name {
			others = append(others, cl)
		}
	}
	if len(others) < 3 {
		return nil
	}
	r.Shuffle(len(others), func(i, j int) { others[i], others[j] = others[j], others[i] })

	ovr := float64(c.Ovr())
	teams := []CupTeam{{
		Club:     club,
		Strength: econ.ClampFloat(52+float64(club.Prestige)*0.42+ovr*0.33+c.Reputation*0.08, 50, 96),
	}}
	for _, cl := range others[:3] {
		teams = append(teams, CupTeam{
			Club:     cl,
			Strength: econ.ClampFloat(50+float64(cl.Prestige)*0.45+float64(rng(r, -4, 4)), 48, 94),
		})
	}
	return &CupInvite{CupName: cupNames[r.Intn(len(cupNames))], Teams: teams}
}

// AcceptCupInvite commits to the tournament.
func AcceptCupInvite(c *career.Career) {
	c.AdjustReputation(5)
	club, _ := c.CurrentClub()
	c.AdjustConnection(club.Name, 7)
}

// DeclineCupInvite refuses outright. Clubs take preseason seriously; the
// fallout is brutal.
func DeclineCupInvite(c *career.Career) {
	c.AdjustReputation(-50)
	club, _ := c.CurrentClub()
	c.AdjustConnection(club.Name, -14)
}

// FakeSick ducks the tournament with a doctor's note. A coin flip decides
// whether the club doctor sees through it; getting caught torches the
// player's standing and costs a fine. Reports whether the player was
// caught.
func FakeSick(r *rand.Rand, c *career.Career) bool {
	club, _ := c.CurrentClub()
	if r.Float64() < 0.5 {
		c.AdjustReputation(-100)
		c.AdjustConnection(club.Name, -20)
		c.RippleConnections(-4)
		c.Earnings -= int64(c.Contract.SalaryWeekly) * 2
		return true
	}
	c.AdjustConnection(club.Name, -5)
	return false
}

// expectedGoals turns a team strength into an expectation, then rolls four
// incremental chances so big favourites still misfire sometimes.
func rollGoalsFromStrength(r *rand.Rand, strength float64) int {
	e := econ.ClampFloat(0.65+(strength-55)/32, 0.35, 2.85)
	chances := []float64{
		econ.ClampFloat(e/2.8, 0.10, 0.80),
		econ.ClampFloat((e-0.45)/3.0, 0.06, 0.62),
		econ.ClampFloat((e-1.1)/3.8, 0.02, 0.46),
		econ.ClampFloat((e-1.8)/5.0, 0, 0.24),
	}
	goals := 0
	for _, ch := range chances {
		if r.Float64() < ch {
			goals++
		}
	}
	return goals
}

// playAIMatch settles a tie between two AI sides. Ties break on a strength
// edge.
func playAIMatch(r *rand.Rand, home, away CupTeam) CupMatch {
	hg := rollGoalsFromStrength(r, home.Strength+1.2)
	ag := rollGoalsFromStrength(r, away.Strength)
	m := CupMatch{Home: home.Club.Name, Away: away.Club.Name, HomeGoals: hg, AwayGoals: ag}
	if hg == ag {
		edge := econ.ClampFloat((home.Strength-away.Strength)/24, -0.25, 0.25)
		m.HomeWins = r.Float64() < 0.5+edge
	} else {
		m.HomeWins = hg > ag
	}
	return m
}

// PlayCup runs the bracket. Fringe players usually watch from the bench,
// which blunts their side; a player on the pitch swings their team by up to
// four strength points either way.
func PlayCup(r *rand.Rand, c *career.Career, invite *CupInvite) *CupResult {
	if invite == nil || len(invite.Teams) < 4 {
		return nil
	}
	res := &CupResult{CupName: invite.CupName}
	mine := invite.Teams[0]
	ovr := c.Ovr()

	benchChance := 0.22
	if c.Age <= 18 || ovr < 68 || c.Reputation < 28 {
		benchChance = 0.8
	}
	res.Benched = r.Float64() < benchChance

	strength := mine.Strength
	if res.Benched {
		strength -= 2.0
	} else {
		impact := econ.ClampFloat(float64(ovr-74)/6+float64(rng(r, -2, 2)), -4, 4)
		if r.Float64() < 0.5 {
			strength += impact * 1.6
		} else {
			strength += impact * 0.7
		}
	}
	mine.Strength = strength

	res.Semi = playAIMatch(r, mine, invite.Teams[1])
	if !res.Semi.HomeWins {
		c.AdjustReputation(-4)
		return res
	}
	c.AdjustReputation(2)

	other := playAIMatch(r, invite.Teams[2], invite.Teams[3])
	opponent := invite.Teams[3]
	if other.HomeWins {
		opponent = invite.Teams[2]
	}
	final := playAIMatch(r, mine, opponent)
	res.Final = &final
	if final.HomeWins {
		res.Won = true
		res.TrophyKey = clubs.PreseasonTrophyKey(invite.CupName, c.Season)
		c.AddTrophy(res.TrophyKey)
		c.AdjustReputation(8)
	} else {
		c.AdjustReputation(-2)
	}
	return res
}
