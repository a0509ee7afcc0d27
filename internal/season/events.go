package season

import (
	"errors"
	"fmt"
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
	"goalline/internal/market"
	"goalline/internal/progress"
)

// ErrBoosterUsed means the booster key for this slot is already spent.
var ErrBoosterUsed = errors.New("booster already used for this action")

// TrainingChoice is a selectable option whose effect is a plain delta map.
// Most slot events resolve through these.
type TrainingChoice struct {
	Key    string             `json:"key"`
	Label  string             `json:"label"`
	Hint   string             `json:"hint,omitempty"`
	Deltas map[string]float64 `json:"deltas"`
}

func trainingEvent(c *career.Career) Event {
	return Event{
		Kind: KindTraining, Slot: c.Slot, Label: SlotLabel(c.Slot),
		Title:   "Preseason Training Block",
		Text:    "The fitness coaches own your mornings. How hard do you push?",
		Choices: TrainingChoices(c.Position),
	}
}

// TrainingChoices are the three standing training intensities. The hard
// session's two boosted attributes are rolled at resolution time.
func TrainingChoices(pos econ.Position) []TrainingChoice {
	primary, secondary := positionFocus(pos)
	return []TrainingChoice{
		{Key: "hard", Label: "Train to the limit", Hint: "Two random attributes up, heavy fitness cost",
			Deltas: map[string]float64{progress.KeyFitness: -9}},
		{Key: "balanced", Label: "Positional work", Hint: "Steady gains in your role's core skills",
			Deltas: map[string]float64{primary: 0.7, secondary: 0.5, progress.KeyFitness: -4}},
		{Key: "recovery", Label: "Recovery block", Hint: "Rest and rebuild",
			Deltas: map[string]float64{progress.KeyFitness: 8}},
	}
}

func positionFocus(pos econ.Position) (string, string) {
	switch pos {
	case econ.Striker:
		return econ.KeyShooting, econ.KeyPace
	case econ.Midfielder:
		return econ.KeyPassing, econ.KeyDribbling
	case econ.Defender:
		return econ.KeyPhysical, econ.KeyPassing
	}
	return econ.KeyPhysical, econ.KeyPassing
}

// ResolveTraining applies a chosen intensity. The hard session rolls two
// distinct attributes to improve.
func ResolveTraining(r *rand.Rand, c *career.Career, key string) {
	switch key {
	case "hard":
		keys := econ.AttributeKeys()
		r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
		progress.ApplyDeltas(c, map[string]float64{
			keys[0]: 1, keys[1]: 1, progress.KeyFitness: -9,
		})
	case "recovery":
		progress.ApplyDeltas(c, map[string]float64{progress.KeyFitness: 8})
	default:
		primary, secondary := positionFocus(c.Position)
		progress.ApplyDeltas(c, map[string]float64{
			primary: 0.7, secondary: 0.5, progress.KeyFitness: -4,
		})
	}
}

// Matchday sub-event kinds.
const (
	SubRivalry   = "rivalry"
	SubMedia     = "media"
	SubFame      = "fame"
	SubDoping    = "doping"
	SubInjury    = "injury"
	SubMentor    = "mentor"
	SubLoanOffer = "loan-offer"
)

// Injury is one entry from the treatment room, deltas included.
type Injury struct {
	Name   string             `json:"name"`
	Weeks  int                `json:"weeks"`
	Deltas map[string]float64 `json:"deltas"`
}

var injuryTable = []Injury{
	{Name: "Bruised ankle", Weeks: 2, Deltas: map[string]float64{progress.KeyFitness: -8}},
	{Name: "Hamstring strain", Weeks: 4, Deltas: map[string]float64{econ.KeyPace: -1, progress.KeyFitness: -14}},
	{Name: "Sprained knee ligaments", Weeks: 7, Deltas: map[string]float64{econ.KeyPace: -1.5, econ.KeyPhysical: -1, progress.KeyFitness: -20}},
	{Name: "Torn thigh muscle", Weeks: 10, Deltas: map[string]float64{econ.KeyPace: -2, econ.KeyPhysical: -2, progress.KeyFitness: -28}},
	{Name: "Fractured metatarsal", Weeks: 14, Deltas: map[string]float64{econ.KeyPace: -2.5, econ.KeyPhysical: -2, econ.KeyDribbling: -1, progress.KeyFitness: -35}},
}

// BoosterTier is an illegal shortcut with a detection risk attached.
type BoosterTier struct {
	Key         string             `json:"key"`
	Label       string             `json:"label"`
	CatchChance float64            `json:"catch_chance"`
	BanSeasons  int                `json:"ban_seasons"`
	RepHit      float64            `json:"rep_hit"`
	Deltas      map[string]float64 `json:"deltas"`
	ManagerHit  int                `json:"manager_hit"`
	RippleHit   int                `json:"ripple_hit"`
}

var boosterTiers = []BoosterTier{
	{Key: "light", Label: "Recovery microdose", CatchChance: 0.12, BanSeasons: 1, RepHit: 18,
		Deltas:     map[string]float64{econ.KeyPace: 1, econ.KeyPhysical: 1, progress.KeyFitness: -5},
		ManagerHit: -5, RippleHit: -2},
	{Key: "strong", Label: "Full cycle", CatchChance: 0.30, BanSeasons: 2, RepHit: 32,
		Deltas:     map[string]float64{econ.KeyPace: 2, econ.KeyPhysical: 2, econ.KeyShooting: 1, progress.KeyFitness: -10},
		ManagerHit: -9, RippleHit: -3},
	{Key: "extreme", Label: "Everything they have", CatchChance: 0.55, BanSeasons: 3, RepHit: 48,
		Deltas:     map[string]float64{econ.KeyPace: 3, econ.KeyPhysical: 3, econ.KeyShooting: 2, econ.KeyDribbling: 1, progress.KeyFitness: -16},
		ManagerHit: -14, RippleHit: -6},
}

// BoosterTiers exposes the three offers.
func BoosterTiers() []BoosterTier { return boosterTiers }

// BoosterTierByKey resolves an offer by key.
func BoosterTierByKey(key string) (BoosterTier, bool) {
	for _, t := range boosterTiers {
		if t.Key == key {
			return t, true
		}
	}
	return BoosterTier{}, false
}

// MatchdayEvent is a rolled matchday storyline.
type MatchdayEvent struct {
	SubKind   string        `json:"sub_kind"`
	Title     string        `json:"title"`
	Text      string        `json:"text"`
	Injury    *Injury       `json:"injury,omitempty"`
	Boosters  []BoosterTier `json:"boosters,omitempty"`
	LoanOffer *career.Loan  `json:"loan_offer,omitempty"`
}

func injuryChance(age int) float64 {
	switch {
	case age > 37:
		return 0.50
	case age > 34:
		return 0.38
	case age > 29:
		return 0.28
	}
	return 0.18
}

// matchdayEvent rolls the storyline pool for a league matchday. The pool
// widens with fame and narrows with youth; injuries crowd in with age.
func matchdayEvent(r *rand.Rand, c *career.Career) Event {
	pool := []string{SubRivalry, SubMedia}
	if c.Reputation > 35 {
		pool = append(pool, SubFame)
	}
	if c.Age >= 17 && r.Float64() < 0.22 {
		pool = append(pool, SubDoping)
	}
	if r.Float64() < injuryChance(c.Age) {
		pool = append(pool, SubInjury)
	}
	if c.Age < 23 && r.Float64() < 0.14 {
		pool = append(pool, SubMentor)
	}
	var helpLoan *career.Loan
	if r.Float64() < 0.06 {
		helpLoan = market.MaybeHelpLoan(r, c)
	}
	if helpLoan != nil {
		pool = append(pool, SubLoanOffer)
	}

	sub := pool[r.Intn(len(pool))]
	md := &MatchdayEvent{SubKind: sub}
	switch sub {
	case SubRivalry:
		md.Title = "Squad Rivalry Boils Over"
		md.Text = "Ferreira has been briefing against you in training. The squad is watching."
	case SubMedia:
		md.Title = "Press Room Ambush"
		md.Text = "A journalist invites you to guarantee results on the record."
	case SubFame:
		md.Title = "Fame Comes Calling"
		md.Text = "Sponsors, cameras, a documentary crew at the training ground."
	case SubDoping:
		md.Title = "A Quiet Word After Training"
		md.Text = "A fixer you half-recognise offers something to get you through the season."
		md.Boosters = boosterTiers
	case SubInjury:
		inj := injuryTable[r.Intn(len(injuryTable))]
		md.Title = "Injury: " + inj.Name
		md.Text = fmt.Sprintf("Carried off after a heavy challenge. The physios say %d weeks.", inj.Weeks)
		md.Injury = &inj
	case SubMentor:
		md.Title = "The Veteran Takes You Aside"
		md.Text = "Castillo, twice a league winner, offers to stay late with you this month."
	case SubLoanOffer:
		md.Title = "A Call for Help"
		md.Text = fmt.Sprintf("%s are in a relegation scrap and want you on loan until the summer.", helpLoan.ToClub.Name)
		md.LoanOffer = helpLoan
	}
	return Event{
		Kind: KindMatchday, Slot: c.Slot, Label: SlotLabel(c.Slot),
		Title: md.Title, Text: md.Text, Matchday: md,
	}
}

// ApplyInjury books the layoff.
func ApplyInjury(c *career.Career, inj Injury) {
	c.InjuryCount++
	progress.ApplyDeltas(c, inj.Deltas)
}

// RushBack returns early from an injury: the damage lands anyway, extra
// fitness goes with it, and for older legs there is a real chance the body
// simply gives out. Reports whether the career ended.
func RushBack(r *rand.Rand, c *career.Career, inj Injury) bool {
	c.InjuryCount++
	deltas := make(map[string]float64, len(inj.Deltas)+1)
	for k, v := range inj.Deltas {
		deltas[k] = v
	}
	deltas[progress.KeyFitness] = deltas[progress.KeyFitness] - 8
	progress.ApplyDeltas(c, deltas)

	risk := 0.05
	switch {
	case c.Age >= 37:
		risk = 0.16
	case c.Age >= 32:
		risk = 0.1
	}
	if r.Float64() < risk {
		c.Retired = true
		return true
	}
	return false
}

// BoosterUseKey scopes one booster use to the current action slot.
func BoosterUseKey(c *career.Career) string {
	return fmt.Sprintf("S%d:%d", c.Season, c.Slot)
}

// TakeBooster rolls the dice on a doping offer. One use per slot; getting
// caught starts the ban and ends the season on the spot, voided. Reports
// whether the player was caught.
func TakeBooster(r *rand.Rand, c *career.Career, tierKey string) (bool, error) {
	if c.BannedSeasons > 0 {
		return false, career.ErrBanned
	}
	useKey := BoosterUseKey(c)
	if c.LastBoosterUse == useKey {
		return false, ErrBoosterUsed
	}
	tier, ok := BoosterTierByKey(tierKey)
	if !ok {
		return false, career.ErrNotFound
	}
	c.LastBoosterUse = useKey
	if r.Float64() < tier.CatchChance {
		c.StartBan(tier.BanSeasons, tier.RepHit)
		banCaughtSeason(r, c)
		return true, nil
	}
	progress.ApplyDeltas(c, tier.Deltas)
	club, _ := c.CurrentClub()
	c.AdjustConnection(club.Name, tier.ManagerHit)
	c.RippleConnections(tier.RippleHit)
	return false, nil
}

// RefuseBooster walks away with everyone's quiet approval.
func RefuseBooster(c *career.Career) {
	c.AdjustReputation(5)
	club, _ := c.CurrentClub()
	c.AdjustConnection(club.Name, 4)
	c.RippleConnections(2)
}

// ConfrontRival stands up to the dressing-room rival. Reports whether it
// went your way.
func ConfrontRival(r *rand.Rand, c *career.Career) bool {
	if r.Float64() < 0.5 {
		progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: 5, econ.KeyPhysical: 1})
		return true
	}
	progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: -8})
	return false
}

// PressConference takes the bait and talks big. Reports whether the gamble
// paid off.
func PressConference(r *rand.Rand, c *career.Career) bool {
	club, _ := c.CurrentClub()
	if r.Float64() < 0.55 {
		c.AdjustConnection(club.Name, 5)
		c.RippleConnections(1)
		progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: 8})
		return true
	}
	c.AdjustConnection(club.Name, -7)
	c.RippleConnections(-2)
	progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: -5})
	return false
}

// EmbraceFame leans into the attention.
func EmbraceFame(c *career.Career) {
	progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: 6, progress.KeyFitness: -3})
}

// StayHumble waves the circus away.
func StayHumble(c *career.Career) {
	club, _ := c.CurrentClub()
	c.AdjustConnection(club.Name, 3)
	progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: 2})
}

// MentorTrain takes the veteran up on the offer: two random attributes,
// direct gains, no scaling. Returns the improved keys.
func MentorTrain(r *rand.Rand, c *career.Career) [2]string {
	keys := econ.AttributeKeys()
	r.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
	for _, k := range keys[:2] {
		v, _ := c.Stats.Get(k)
		c.Stats.Set(k, v+2)
	}
	return [2]string{keys[0], keys[1]}
}

func cupTieEvent(c *career.Career) Event {
	cup := clubs.DomesticCupName(c.Club.League)
	return Event{
		Kind: KindCupTie, Slot: c.Slot, Label: SlotLabel(c.Slot),
		Title: cup + " Tie",
		Text:  "A knockout night under the lights. One chance to be the headline.",
		Choices: []TrainingChoice{
			{Key: "hero", Label: "Rise to the occasion", Hint: "Chase the decisive moment",
				Deltas: map[string]float64{econ.KeyShooting: 0.5, progress.KeyReputation: 3, progress.KeyFitness: -6}},
			{Key: "solid", Label: "Do your job", Hint: "A disciplined shift",
				Deltas: map[string]float64{progress.KeyReputation: 1, progress.KeyFitness: -4}},
		},
	}
}

func continentalEvent(c *career.Career) Event {
	if c.ClubTier >= 5 {
		return Event{
			Kind: KindContinental, Slot: c.Slot, Label: SlotLabel(c.Slot),
			Title: "Champions League Night",
			Text:  "The anthem, the flashbulbs, fifty thousand people holding their breath.",
			Choices: []TrainingChoice{
				{Key: "big-night", Label: "Take the stage", Hint: "Europe is watching",
					Deltas: map[string]float64{progress.KeyReputation: 4, econ.KeyPassing: 0.4, progress.KeyFitness: -7}},
				{Key: "composed", Label: "Keep it simple", Hint: "No mistakes, no fireworks",
					Deltas: map[string]float64{progress.KeyReputation: 2, progress.KeyFitness: -5}},
			},
		}
	}
	return Event{
		Kind: KindReserveWeek, Slot: c.Slot, Label: SlotLabel(c.Slot),
		Title: "No European Football Here",
		Text:  "The big clubs fly out midweek. You get the training pitch to yourself.",
		Choices: []TrainingChoice{
			{Key: "extra", Label: "Extra sessions", Hint: "Use the free week",
				Deltas: map[string]float64{econ.KeyPace: 0.4, econ.KeyPhysical: 0.4, progress.KeyFitness: -5}},
			{Key: "rest", Label: "Recover", Hint: "Bank the energy",
				Deltas: map[string]float64{progress.KeyFitness: 6}},
		},
	}
}

// NationalWindow is the slot-7 call-up check.
type NationalWindow struct {
	Profile   clubs.NationalProfile `json:"profile"`
	Effective float64               `json:"effective"`
	Chance    float64               `json:"chance"`
	CalledUp  bool                  `json:"called_up"`
}

// nationalEvent rolls a call-up. The effective rating blends club level and
// reputation into the raw OVR; the national side's bar decides the odds.
func nationalEvent(r *rand.Rand, c *career.Career) Event {
	profile := clubs.NationalProfileFor(c.Nationality)
	effective := float64(c.Ovr()) + c.Reputation/30 + float64(c.ClubTier)*0.5
	chance := econ.ClampFloat(0.08+(effective-float64(profile.MinOvr))*0.07, 0.03, 0.78)
	calledUp := effective >= float64(profile.MinOvr)-2 && r.Float64() < chance

	nw := &NationalWindow{Profile: profile, Effective: effective, Chance: chance, CalledUp: calledUp}
	e := Event{
		Kind: KindNational, Slot: c.Slot, Label: SlotLabel(c.Slot),
		National: nw,
	}
	if calledUp {
		e.Title = "Called Up: " + profile.Name
		e.Text = "The federation's email is real. Report to camp on Monday."
	} else {
		e.Title = "The Squad List Drops"
		e.Text = "Your name is not on it. Back to club training."
	}
	return e
}

// NationalPerformance plays the international window. A bold outfield
// showing can produce a goal. Reports whether one went in.
func NationalPerformance(r *rand.Rand, c *career.Career, bold bool) bool {
	c.Caps++
	if bold {
		progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: 4, econ.KeyPhysical: 0.4})
		if c.Position != econ.Goalkeeper && r.Float64() < 0.45 {
			c.NationalGoals++
			return true
		}
		return false
	}
	progress.ApplyDeltas(c, map[string]float64{progress.KeyReputation: 2})
	return false
}

// Penalty contexts for the clutch slot.
const (
	PenaltyClub     = "club"
	PenaltyNational = "national"
)

// PenaltyContext frames the clutch moment.
type PenaltyContext struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

var clubPenalties = []PenaltyContext{
	{Kind: PenaltyClub, Title: "Cup Final, Minute 89", Text: "Scores level. The captain hands you the ball."},
	{Kind: PenaltyClub, Title: "Derby Day Spot Kick", Text: "Their fans are behind the goal, whistling."},
}

var nationalPenalty = PenaltyContext{
	Kind: PenaltyNational, Title: "Shootout for Your Country",
	Text: "Fifth taker. It all comes down to this.",
}

func clutchEvent(r *rand.Rand, c *career.Career) Event {
	pool := append([]PenaltyContext{}, clubPenalties...)
	if c.Caps > 0 {
		pool = append(pool, nationalPenalty)
	}
	ctx := pool[r.Intn(len(pool))]
	return Event{
		Kind: KindClutch, Slot: c.Slot, Label: SlotLabel(c.Slot),
		Title: ctx.Title, Text: ctx.Text, Clutch: &ctx,
	}
}

// PenaltyChance is the conversion probability for the current player.
// Aiming down the middle is slightly easier to read.
func PenaltyChance(c *career.Career, direction string) float64 {
	chance := 0.44 +
		(c.Stats.Shooting-60)*0.004 +
		float64(c.Ovr()-70)*0.003 +
		c.Reputation*0.0012 +
		(c.Fitness-60)*0.0008
	if direction == "center" {
		chance -= 0.03
	}
	return econ.ClampFloat(chance, 0.12, 0.78)
}

// TakePenalty resolves the clutch kick. Reports whether it went in.
func TakePenalty(r *rand.Rand, c *career.Career, ctx PenaltyContext, direction string) bool {
	if r.Float64() < PenaltyChance(c, direction) {
		if ctx.Kind == PenaltyNational {
			c.Caps++
			c.NationalGoals++
			c.AdjustReputation(5)
		} else {
			c.AdjustReputation(4)
			c.Stats.Set(econ.KeyShooting, c.Stats.Shooting+0.6)
		}
		return true
	}
	c.AdjustReputation(-6)
	c.AdjustFitness(-3)
	return false
}
