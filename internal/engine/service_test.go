package engine

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
	"goalline/internal/market"
	"goalline/internal/season"
)

type mysteryAction struct{}

func (mysteryAction) isAction() {}

func startTestCareer(t *testing.T, s *Service, pos string) (string, *career.Career) {
	t.Helper()
	academies := s.Academies(1)
	if len(academies) == 0 {
		t.Fatalf("no academies available")
	}
	id, view, err := s.StartCareer(StartCareerInput{
		Name:      "Jordan Vale",
		Position:  pos,
		AcademyID: academies[0].ID,
	})
	if err != nil {
		t.Fatalf("StartCareer: %v", err)
	}
	return id, view.Career
}

func TestStartCareerValidation(t *testing.T) {
	s := NewServiceSeeded(nil, 1)
	cases := []StartCareerInput{
		{Name: "  ", Position: "striker", AcademyID: "academy_fc_nantes"},
		{Name: "Jo", Position: "winger", AcademyID: "academy_fc_nantes"},
		{Name: "Jo", Position: "striker", AcademyID: "academy_of_nowhere"},
	}
	for i, in := range cases {
		if _, _, err := s.StartCareer(in); !errors.Is(err, ErrValidation) {
			t.Fatalf("case %d: err = %v, want ErrValidation", i, err)
		}
	}
	if len(s.careers) != 0 {
		t.Fatalf("failed creation leaked %d sessions", len(s.careers))
	}
}

func TestStartCareerShape(t *testing.T) {
	s := NewServiceSeeded(nil, 2)
	id, c := startTestCareer(t, s, "striker")
	if c.Age != 16 || c.Season != 1 || c.Slot != 1 {
		t.Fatalf("clock: age=%d season=%d slot=%d", c.Age, c.Season, c.Slot)
	}
	if c.Fitness != 100 || c.Reputation != 5 {
		t.Fatalf("condition: fitness=%v reputation=%v", c.Fitness, c.Reputation)
	}
	if c.ClubTier != 1 {
		t.Fatalf("starting tier = %d, want 1", c.ClubTier)
	}
	if c.Contract.Years < 6 || c.Contract.Years > 10 {
		t.Fatalf("teenager contract years = %d, want 6..10", c.Contract.Years)
	}
	if c.Contract.SalaryWeekly < 1000 {
		t.Fatalf("salary below minimum wage: %d", c.Contract.SalaryWeekly)
	}
	base := baseStats[econ.Striker]
	sum := c.Stats.Pace + c.Stats.Shooting + c.Stats.Passing + c.Stats.Dribbling + c.Stats.Physical
	baseSum := base.Pace + base.Shooting + base.Passing + base.Dribbling + base.Physical
	if sum <= baseSum {
		t.Fatalf("academy bonus not applied: %v <= %v", sum, baseSum)
	}
	view, err := s.View(id)
	if err != nil || view.Event == nil {
		t.Fatalf("no pending event after creation: %v", err)
	}
}

func TestDispatchUnknownCareer(t *testing.T) {
	s := NewServiceSeeded(nil, 3)
	if _, err := s.Dispatch("nope", Acknowledge{}); !errors.Is(err, ErrUnknownCareer) {
		t.Fatalf("err = %v, want ErrUnknownCareer", err)
	}
}

func TestUnknownActionIsByteForByteNoOp(t *testing.T) {
	s := NewServiceSeeded(nil, 4)
	id, c := startTestCareer(t, s, "midfielder")
	before, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	eff, err := s.Dispatch(id, mysteryAction{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if !eff.Ignored {
		t.Fatalf("unknown action was not ignored: %+v", eff)
	}
	after, _ := json.Marshal(c)
	if string(before) != string(after) {
		t.Fatalf("unknown action mutated the save:\nbefore %s\nafter  %s", before, after)
	}
}

func TestUnknownChoiceKeyIsNoOp(t *testing.T) {
	s := NewServiceSeeded(nil, 5)
	id, c := startTestCareer(t, s, "defender")
	sess := s.careers[id]
	sess.event = season.Event{Kind: season.KindTraining, Slot: 1, Choices: season.TrainingChoices(c.Position)}
	before, _ := json.Marshal(c)
	eff, _ := s.Dispatch(id, ChooseOption{Key: "teleport"})
	if !eff.Ignored {
		t.Fatalf("unknown choice key was not ignored: %+v", eff)
	}
	after, _ := json.Marshal(c)
	if string(before) != string(after) {
		t.Fatalf("unknown choice key mutated the save")
	}
	if c.Slot != 1 {
		t.Fatalf("unknown choice consumed the slot")
	}
}

func TestYoungPlayerSeasonNeverShrinks(t *testing.T) {
	s := NewServiceSeeded(nil, 6)
	id, c := startTestCareer(t, s, "striker")
	sess := s.careers[id]
	c.Slot = season.SlotRunIn
	sess.event = season.NextEvent(s.rand, c)
	if sess.event.Kind != season.KindRunIn {
		t.Fatalf("expected run-in at slot 10, got %s", sess.event.Kind)
	}
	statsBefore := c.Stats
	ovrBefore := c.Ovr()

	eff, err := s.Dispatch(id, Acknowledge{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if eff.Summary == nil {
		t.Fatalf("run-in did not close the season: %+v", eff)
	}
	if got := c.Ovr(); got < ovrBefore {
		t.Fatalf("teenage OVR fell across a season: %d -> %d", ovrBefore, got)
	}
	for _, key := range econ.AttributeKeys() {
		b, _ := statsBefore.Get(key)
		a, _ := c.Stats.Get(key)
		if a < b {
			t.Fatalf("%s fell across a teenage season: %v -> %v", key, b, a)
		}
	}
	if c.Season != 2 || c.Age != 17 {
		t.Fatalf("rollover clock: season=%d age=%d", c.Season, c.Age)
	}
}

func TestNoOffersRetireIsTerminal(t *testing.T) {
	s := NewServiceSeeded(nil, 7)
	id, c := startTestCareer(t, s, "goalkeeper")
	sess := s.careers[id]
	c.Age = 38
	c.Stats = econ.Attributes{Pace: 70, Shooting: 70, Passing: 70, Dribbling: 70, Physical: 70}
	c.Contract = career.Contract{}
	c.SeasonsPlayed = 22
	sess.event = season.Event{Kind: season.KindNoOffers, Slot: season.SlotWindow}

	eff, err := s.Dispatch(id, Retire{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if eff.Retirement == nil || !c.Retired {
		t.Fatalf("retire did not end the career: %+v", eff)
	}
	if c.SeasonsPlayed != 22 {
		t.Fatalf("retiring changed seasons played: %d", c.SeasonsPlayed)
	}
	if eff.Retirement.Label == "" || eff.Retirement.Rating < 1 {
		t.Fatalf("legacy missing from summary: %+v", eff.Retirement)
	}

	if eff, _ := s.Dispatch(id, Acknowledge{}); eff.Refusal == "" {
		t.Fatalf("retired career accepted further actions")
	}
}

func TestRetireRefusedUnderContract(t *testing.T) {
	s := NewServiceSeeded(nil, 8)
	id, c := startTestCareer(t, s, "striker")
	c.Age = 37
	eff, _ := s.Dispatch(id, Retire{})
	if eff.Refusal == "" || c.Retired {
		t.Fatalf("retire under contract should be refused: %+v", eff)
	}
}

func TestLoanRequestWhileOnLoanRefused(t *testing.T) {
	s := NewServiceSeeded(nil, 9)
	id, c := startTestCareer(t, s, "midfielder")
	sess := s.careers[id]
	target, _ := clubs.ByName("AS Monaco")
	c.BeginLoan(career.Loan{
		FromClub: c.Club, FromTier: c.ClubTier,
		ToClub: target, ToTier: clubs.TierOf("AS Monaco"),
		SeasonsLeft: 1, Focus: career.LoanFocusDevelopment, GrowthMult: 1.25,
	})
	sess.event = season.Event{Kind: season.KindQuietWindow, Slot: season.SlotWindow}

	eff, err := s.Dispatch(id, RequestLoan{})
	if err != nil {
		t.Fatalf("dispatch: %v", err)
	}
	if eff.Refusal == "" {
		t.Fatalf("second loan was not refused: %+v", eff)
	}
	if c.Loan == nil || c.Loan.ToClub.Name != "AS Monaco" {
		t.Fatalf("refused request changed the active loan: %+v", c.Loan)
	}
}

func TestCaughtBoosterEndsSeasonOnTheSpot(t *testing.T) {
	for seed := int64(0); seed < 200; seed++ {
		s := NewServiceSeeded(nil, seed)
		id, c := startTestCareer(t, s, "striker")
		sess := s.careers[id]
		c.Slot = 3
		c.SeasonGoals = 15
		sess.event = season.Event{
			Kind: season.KindMatchday, Slot: 3,
			Matchday: &season.MatchdayEvent{SubKind: season.SubDoping, Boosters: season.BoosterTiers()},
		}
		seasonBefore := c.Season

		eff, err := s.Dispatch(id, TakeBooster{Tier: "extreme"})
		if err != nil {
			t.Fatalf("seed %d: dispatch: %v", seed, err)
		}
		if c.Season == seasonBefore {
			continue // clean test, try another seed
		}
		if eff.Summary == nil {
			t.Fatalf("catch closed the season without a summary: %+v", eff)
		}
		if eff.Summary.SeasonType != season.SeasonTypeBan || eff.Summary.Goals != 0 {
			t.Fatalf("caught season not voided in summary: %+v", eff.Summary)
		}
		if eff.Summary.BallonRank != nil || eff.Summary.BallonNote != "suspended" {
			t.Fatalf("caught season stayed award-eligible: %+v", eff.Summary)
		}
		if c.BannedSeasons != 2 {
			t.Fatalf("three-season ban has %d left after the caught year", c.BannedSeasons)
		}
		if eff.Event == nil || eff.Event.Kind != season.KindBanSeason {
			t.Fatalf("remaining ban not scheduled next: %+v", eff.Event)
		}
		return
	}
	t.Fatalf("extreme booster never caught across 200 seeds")
}

func TestHelpLoanOfferAcceptAndDecline(t *testing.T) {
	s := NewServiceSeeded(nil, 13)
	id, c := startTestCareer(t, s, "striker")
	sess := s.careers[id]

	offer := market.MaybeHelpLoan(s.rand, c)
	if offer == nil {
		t.Fatalf("no help offer for an academy squad player")
	}
	loanEvent := season.Event{
		Kind: season.KindMatchday, Slot: 2,
		Matchday: &season.MatchdayEvent{SubKind: season.SubLoanOffer, LoanOffer: offer},
	}

	c.Slot = 2
	sess.event = loanEvent
	eff, err := s.Dispatch(id, ChooseOption{Key: "decline"})
	if err != nil {
		t.Fatalf("decline: %v", err)
	}
	if c.OnLoan() {
		t.Fatalf("declining started the loan")
	}
	if c.Slot != 3 {
		t.Fatalf("decline did not consume the slot: %d", c.Slot)
	}
	if eff.Refusal != "" || eff.Ignored {
		t.Fatalf("decline was not a clean resolution: %+v", eff)
	}

	c.Slot = 2
	sess.event = loanEvent
	if _, err := s.Dispatch(id, ChooseOption{Key: "accept"}); err != nil {
		t.Fatalf("accept: %v", err)
	}
	if !c.OnLoan() || c.Loan.Source != market.LoanSourceHelp {
		t.Fatalf("accept did not start the spell: %+v", c.Loan)
	}
	if club, _ := c.CurrentClub(); club.Name != offer.ToClub.Name {
		t.Fatalf("player at %s, want %s", club.Name, offer.ToClub.Name)
	}
}

func TestAutopilotPlaysCareerToTheEnd(t *testing.T) {
	s := NewServiceSeeded(nil, 10)
	id, c := startTestCareer(t, s, "striker")

	var retired bool
	for i := 0; i < 60 && !retired; i++ {
		eff, err := s.AdvanceSeason(id)
		if err != nil {
			t.Fatalf("season %d: %v", i+1, err)
		}
		retired = eff.Retirement != nil
	}
	if !retired || !c.Retired {
		t.Fatalf("career never ended: age=%d season=%d", c.Age, c.Season)
	}
	if c.Age > 42 {
		t.Fatalf("played past forced retirement: age=%d", c.Age)
	}
	if len(c.SeasonHistory) == 0 || len(c.BallonHistory) != len(c.SeasonHistory) {
		t.Fatalf("history inconsistent: %d seasons, %d award entries",
			len(c.SeasonHistory), len(c.BallonHistory))
	}
	for _, key := range econ.AttributeKeys() {
		v, _ := c.Stats.Get(key)
		if v < 20 || v > 99 {
			t.Fatalf("%s out of bounds after a full career: %v", key, v)
		}
	}
	if c.Fitness < 10 || c.Fitness > 100 || c.Reputation < 0 || c.Reputation > 100 {
		t.Fatalf("condition out of bounds: fitness=%v reputation=%v", c.Fitness, c.Reputation)
	}
	if c.Earnings <= 0 {
		t.Fatalf("a full career earned nothing")
	}
}

func TestExportPayload(t *testing.T) {
	s := NewServiceSeeded(nil, 11)
	id, c := startTestCareer(t, s, "striker")
	for i := 0; i < 3; i++ {
		if _, err := s.AdvanceSeason(id); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	payload, err := s.Export(id)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.Contains(payload.CSV, "Player Career Summary") ||
		!strings.Contains(payload.CSV, "Season,Age,Club,OVR,Goals,Assists") {
		t.Fatalf("CSV missing structure:\n%s", payload.CSV)
	}
	if !strings.Contains(payload.Sheet, c.Name) {
		t.Fatalf("sheet missing player name:\n%s", payload.Sheet)
	}
	lines := strings.Count(payload.CSV, "\n")
	if lines < 11+len(c.SeasonHistory) {
		t.Fatalf("CSV too short: %d lines for %d seasons", lines, len(c.SeasonHistory))
	}
}

func TestCloseCareer(t *testing.T) {
	s := NewServiceSeeded(nil, 12)
	id, _ := startTestCareer(t, s, "defender")
	s.CloseCareer(id)
	if _, err := s.View(id); !errors.Is(err, ErrUnknownCareer) {
		t.Fatalf("closed career still resolvable: %v", err)
	}
}
