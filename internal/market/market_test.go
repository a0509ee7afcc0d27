package market

import (
	"errors"
	"math/rand"
	"testing"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
)

func testCareer(t *testing.T, clubName string, years int) *career.Career {
	t.Helper()
	club, ok := clubs.ByName(clubName)
	if !ok {
		t.Fatalf("unknown test club %q", clubName)
	}
	return &career.Career{
		Name:        "Test Player",
		Position:    econ.Striker,
		Nationality: "England",
		Age:         23,
		Season:      5,
		Stats:       econ.Attributes{Pace: 76, Shooting: 78, Passing: 70, Dribbling: 73, Physical: 70},
		Fitness:     85,
		Reputation:  45,
		Club:        club,
		ClubTier:    clubs.TierOf(clubName),
		Contract:    career.Contract{Years: years, SalaryWeekly: 30000, ReleaseClause: 50},
	}
}

func TestModeFallbacks(t *testing.T) {
	if got := ApplicationModeByKey("bogus"); got.Key != "balanced" {
		t.Fatalf("application fallback = %q", got.Key)
	}
	if got := ExtensionModeByKey("bogus"); got.Key != "balanced" {
		t.Fatalf("extension fallback = %q", got.Key)
	}
	if m := ApplicationModeByKey("starDemand"); m.SalaryMult != 1.15 || m.ChanceBonus != -0.12 {
		t.Fatalf("star demands mode = %+v", m)
	}
}

func TestEstimatePlayingTimeScalesWithClubLevel(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	c := testCareer(t, "FC Nantes", 3)
	small, _ := clubs.ByName("SM Caen")
	giant, _ := clubs.ByName("Real Madrid CF")
	ptSmall := EstimatePlayingTime(r, c, small, clubs.TierOf(small.Name))
	ptGiant := EstimatePlayingTime(r, c, giant, clubs.TierOf(giant.Name))
	if ptSmall.Role != RoleKeyPlayer {
		t.Fatalf("78-rated striker at a Ligue 2 side should be a key player, got %s", ptSmall.Role)
	}
	if ptGiant.Role == RoleKeyPlayer || ptGiant.Role == RoleStarter {
		t.Fatalf("same player at Real Madrid should be fringe, got %s", ptGiant.Role)
	}
	if ptSmall.Minutes <= ptGiant.Minutes {
		t.Fatalf("minutes should drop with club level: %d vs %d", ptSmall.Minutes, ptGiant.Minutes)
	}
}

func TestFinanceChanceShape(t *testing.T) {
	c := testCareer(t, "FC Nantes", 3)
	rich, _ := clubs.ByName("Manchester City FC")
	poor, _ := clubs.ByName("SM Caen")
	if FinanceChance(c, rich, 60) <= FinanceChance(c, poor, 60) {
		t.Fatalf("richer club should fund a fee more easily")
	}
	if FinanceChance(c, poor, 200) > FinanceChance(c, poor, 5) {
		t.Fatalf("bigger fees should never be easier")
	}
	for _, fee := range []float64{0, 1, 50, 500} {
		got := FinanceChance(c, poor, fee)
		if got < 0.02 || got > 0.98 {
			t.Fatalf("finance chance %v outside [0.02,0.98]", got)
		}
	}
}

func TestWillingToSellChance(t *testing.T) {
	buyer, _ := clubs.ByName("Paris Saint-Germain")
	expiring := testCareer(t, "FC Nantes", 1)
	locked := testCareer(t, "FC Nantes", 5)
	if WillingToSellChance(expiring, buyer) <= WillingToSellChance(locked, buyer) {
		t.Fatalf("an expiring deal should loosen the club's grip")
	}
	for years := 0; years <= 6; years++ {
		c := testCareer(t, "FC Nantes", years)
		got := WillingToSellChance(c, buyer)
		if got < 0.04 || got > 0.9 {
			t.Fatalf("willingness %v outside [0.04,0.9]", got)
		}
	}
}

func TestBuildClubTermsClauseCoversValue(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	c := testCareer(t, "FC Nantes", 3)
	club, _ := clubs.ByName("AS Monaco")
	for i := 0; i < 50; i++ {
		offer := BuildClubTerms(r, c, club, clubs.TierOf(club.Name), 1, "transfer")
		if offer.ReleaseClause < c.BaseMarketValue()*1.15 {
			t.Fatalf("clause %v below 1.15x market value %v", offer.ReleaseClause, c.BaseMarketValue())
		}
		lo, hi := econ.ContractYearRange(c.Age)
		if offer.Years < lo || offer.Years > hi {
			t.Fatalf("offered years %d outside %d..%d", offer.Years, lo, hi)
		}
		if offer.SalaryWeekly%1000 != 0 {
			t.Fatalf("salary %d not rounded", offer.SalaryWeekly)
		}
	}
}

func TestSubmitExtensionGuards(t *testing.T) {
	r := rand.New(rand.NewSource(3))
	free := testCareer(t, "FC Nantes", 0)
	if _, _, err := SubmitExtension(r, free, "balanced"); !errors.Is(err, career.ErrNoContract) {
		t.Fatalf("free agent extension err = %v, want ErrNoContract", err)
	}
	moving := testCareer(t, "FC Nantes", 3)
	target, _ := clubs.ByName("AS Monaco")
	moving.PendingTransfer = &career.PendingTransfer{Club: target, Tier: 5}
	if _, _, err := SubmitExtension(r, moving, "balanced"); !errors.Is(err, ErrMoveAgreed) {
		t.Fatalf("pending-transfer extension err = %v, want ErrMoveAgreed", err)
	}
}

func TestSubmitExtensionOutcomes(t *testing.T) {
	r := rand.New(rand.NewSource(4))
	sawAccept, sawDecline := false, false
	for i := 0; i < 60 && !(sawAccept && sawDecline); i++ {
		c := testCareer(t, "FC Barcelona", 2)
		p, accepted, err := SubmitExtension(r, c, "teamFirst")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.AcceptChance < 0.04 || p.AcceptChance > 0.95 {
			t.Fatalf("accept chance %v outside [0.04,0.95]", p.AcceptChance)
		}
		if accepted {
			sawAccept = true
			if c.PendingContract == nil || c.PendingContract.Years != p.Years {
				t.Fatalf("accepted extension did not stage a pending contract")
			}
			if c.Contract.Years != 2 {
				t.Fatalf("extension must not replace the live contract mid-season")
			}
		} else {
			sawDecline = true
			if c.PendingContract != nil {
				t.Fatalf("declined extension staged a contract")
			}
		}
	}
	if !sawAccept || !sawDecline {
		t.Fatalf("expected both outcomes across 60 attempts: accept=%v decline=%v", sawAccept, sawDecline)
	}
}

func TestApplyOnePendingPerClub(t *testing.T) {
	r := rand.New(rand.NewSource(5))
	c := testCareer(t, "FC Nantes", 3)
	if _, err := Apply(r, c, "AS Monaco", "balanced"); err != nil {
		t.Fatalf("first application failed: %v", err)
	}
	if _, err := Apply(r, c, "AS Monaco", "proveIt"); !errors.Is(err, ErrPendingApplication) {
		t.Fatalf("duplicate application err = %v, want ErrPendingApplication", err)
	}
	if _, err := Apply(r, c, "LOSC Lille", "balanced"); err != nil {
		t.Fatalf("application to a second club failed: %v", err)
	}
	c.BlockClub("Lazio")
	if _, err := Apply(r, c, "Lazio", "balanced"); !errors.Is(err, ErrClubBlocked) {
		t.Fatalf("blocked club err = %v, want ErrClubBlocked", err)
	}
	if _, err := Apply(r, c, "Fictional FC", "balanced"); !errors.Is(err, career.ErrNotFound) {
		t.Fatalf("unknown club err = %v, want ErrNotFound", err)
	}
}

func TestResolveApplicationsQueuesFeedback(t *testing.T) {
	r := rand.New(rand.NewSource(6))
	c := testCareer(t, "FC Nantes", 3)
	for _, name := range []string{"AS Monaco", "LOSC Lille", "OGC Nice", "RC Lens"} {
		if _, err := Apply(r, c, name, "balanced"); err != nil {
			t.Fatalf("apply %s: %v", name, err)
		}
	}
	c.Season++
	ResolveApplications(r, c)

	for _, app := range c.Applications {
		if app.Status == career.AppPending {
			t.Fatalf("application to %s still pending after resolution", app.ClubName)
		}
	}
	if len(c.Feedback) != len(c.Applications) {
		t.Fatalf("feedback entries %d, want one per application %d", len(c.Feedback), len(c.Applications))
	}
	for _, fb := range c.Feedback {
		if fb.Status == career.AppOffered && fb.Offer == nil {
			t.Fatalf("offered feedback from %s missing terms", fb.ClubName)
		}
		if fb.Status != career.AppOffered && fb.Offer != nil {
			t.Fatalf("non-offer feedback from %s carries terms", fb.ClubName)
		}
	}
}

func TestFeedbackBlockedWhileOnLoan(t *testing.T) {
	c := testCareer(t, "AS Monaco", 3)
	c.Feedback = []career.MarketFeedback{{ClubName: "Lazio", Status: career.AppRejected}}
	to, _ := clubs.ByName("FC Metz")
	c.BeginLoan(career.Loan{FromClub: c.Club, FromTier: c.ClubTier, ToClub: to, ToTier: 1, SeasonsLeft: 1})
	if _, ok := NextFeedback(c); ok {
		t.Fatalf("feedback should wait while on loan")
	}
	c.EndLoan()
	fb, ok := NextFeedback(c)
	if !ok || fb.ClubName != "Lazio" {
		t.Fatalf("feedback not delivered after loan: %+v %v", fb, ok)
	}
	PopFeedback(c)
	if len(c.Feedback) != 0 {
		t.Fatalf("pop left %d entries", len(c.Feedback))
	}
}

func TestBoardExcludesCurrentAndBlockedClubs(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	c := testCareer(t, "FC Nantes", 2)
	c.BlockClub("LOSC Lille")
	b := BuildBoard(r, c)
	if len(b.Targets) == 0 {
		t.Fatalf("board has no targets")
	}
	if len(b.Targets) > 10 || len(b.Incoming) > 6 {
		t.Fatalf("board over caps: %d targets, %d incoming", len(b.Targets), len(b.Incoming))
	}
	for _, e := range b.Incoming {
		if e.Club.Name == c.Club.Name || e.Club.Name == "LOSC Lille" {
			t.Fatalf("board lists excluded club %s", e.Club.Name)
		}
	}
	for _, tgt := range b.Targets {
		if tgt.Club.Name == c.Club.Name || tgt.Club.Name == "LOSC Lille" {
			t.Fatalf("targets list excluded club %s", tgt.Club.Name)
		}
	}
}

func TestBoardFreeAgentAlwaysGetsTerms(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	c := testCareer(t, "FC Nantes", 0)
	b := BuildBoard(r, c)
	for _, e := range b.Incoming {
		if e.Status != StatusFreeAgent {
			t.Fatalf("free agent interest status = %s", e.Status)
		}
		if e.Offer == nil {
			t.Fatalf("free agent entry from %s has no terms", e.Club.Name)
		}
	}
}

func TestBuildTransferOffersVeteranGates(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	old := testCareer(t, "FC Nantes", 1)
	old.Age = 40
	old.Stats = econ.Attributes{Pace: 50, Shooting: 55, Passing: 55, Dribbling: 50, Physical: 55}
	if offers := BuildTransferOffers(r, old, true); offers != nil {
		t.Fatalf("a 40-year-old below the rating bar got %d offers", len(offers))
	}
}

func TestBuildTransferOffersExcludesBlocked(t *testing.T) {
	r := rand.New(rand.NewSource(10))
	c := testCareer(t, "FC Nantes", 0)
	c.BlockClub("AS Monaco")
	for i := 0; i < 20; i++ {
		for _, o := range BuildTransferOffers(r, c, true) {
			if o.Club.Name == "AS Monaco" || o.Club.Name == c.Club.Name {
				t.Fatalf("offer from excluded club %s", o.Club.Name)
			}
			if o.SalaryWeekly < econ.MinWeeklySalary {
				t.Fatalf("offer salary %d below minimum", o.SalaryWeekly)
			}
		}
	}
}

func TestPostBanOffersComeFromBelow(t *testing.T) {
	r := rand.New(rand.NewSource(11))
	c := testCareer(t, "AS Monaco", 0)
	c.FreeAgencyLock = true
	for i := 0; i < 30; i++ {
		for _, o := range BuildTransferOffers(r, c, true) {
			if o.Tier > c.ClubTier {
				t.Fatalf("post-ban offer from tier %d, above current %d", o.Tier, c.ClubTier)
			}
		}
	}
}

func TestReleaseClauseEventGates(t *testing.T) {
	r := rand.New(rand.NewSource(12))
	top := testCareer(t, "Real Madrid CF", 3)
	for i := 0; i < 40; i++ {
		if MaybeReleaseClauseEvent(r, top) != nil {
			t.Fatalf("top-tier player had a clause triggered")
		}
	}
	young := testCareer(t, "FC Nantes", 3)
	young.Age = 17
	for i := 0; i < 40; i++ {
		if MaybeReleaseClauseEvent(r, young) != nil {
			t.Fatalf("under-18 player had a clause triggered")
		}
	}
	adult := testCareer(t, "FC Nantes", 3)
	adult.Contract.ReleaseClause = 5 // well under value, clause hunting territory
	fired := false
	for i := 0; i < 200 && !fired; i++ {
		if o := MaybeReleaseClauseEvent(r, adult); o != nil {
			fired = true
			if o.Club.Prestige <= adult.Club.Prestige+5 {
				t.Fatalf("clause club %s not meaningfully bigger", o.Club.Name)
			}
			if o.Tier <= adult.ClubTier {
				t.Fatalf("clause club from tier %d, want above %d", o.Tier, adult.ClubTier)
			}
		}
	}
	if !fired {
		t.Fatalf("cheap clause never triggered across 200 windows")
	}
}

func TestPerformTransferStagesMove(t *testing.T) {
	c := testCareer(t, "FC Nantes", 2)
	c.PendingContract = &career.Contract{Years: 4}
	target, _ := clubs.ByName("AS Monaco")
	offer := career.Offer{Club: target, Tier: 5, Years: 4, SalaryWeekly: 70000, ReleaseClause: 80}
	if err := PerformTransfer(c, offer); err != nil {
		t.Fatalf("transfer failed: %v", err)
	}
	if c.PendingTransfer == nil || c.PendingTransfer.Club.Name != "AS Monaco" {
		t.Fatalf("move not staged: %+v", c.PendingTransfer)
	}
	if c.PendingContract != nil {
		t.Fatalf("agreed move must cancel the pending renewal")
	}
	if c.Club.Name != "FC Nantes" {
		t.Fatalf("mid-season transfer moved the player immediately")
	}
}

func TestPerformTransferBlockedOnLoan(t *testing.T) {
	c := testCareer(t, "FC Nantes", 2)
	to, _ := clubs.ByName("FC Metz")
	c.BeginLoan(career.Loan{FromClub: c.Club, FromTier: c.ClubTier, ToClub: to, ToTier: 1, SeasonsLeft: 1})
	target, _ := clubs.ByName("AS Monaco")
	err := PerformTransfer(c, career.Offer{Club: target, Tier: 5, Years: 3})
	if !errors.Is(err, career.ErrOnLoan) {
		t.Fatalf("transfer on loan err = %v, want ErrOnLoan", err)
	}
}

func TestPerformTransferBanReturnSignsImmediately(t *testing.T) {
	c := testCareer(t, "FC Nantes", 2)
	c.StartBan(1, 20)
	c.BannedSeasons = 0 // ban served, lock still on
	target, _ := clubs.ByName("FC Metz")
	offer := career.Offer{Club: target, Tier: 1, Years: 2, SalaryWeekly: 8000, ReleaseClause: 4}
	if err := PerformTransfer(c, offer); err != nil {
		t.Fatalf("ban-return signing failed: %v", err)
	}
	if c.Club.Name != "FC Metz" || c.Contract.Years != 2 {
		t.Fatalf("ban-return signing should take effect immediately: %s %+v", c.Club.Name, c.Contract)
	}
	if c.FreeAgencyLock {
		t.Fatalf("signing should clear the free-agency lock")
	}
}

func TestRenewalOfferRespectsBlocks(t *testing.T) {
	r := rand.New(rand.NewSource(13))
	c := testCareer(t, "FC Nantes", 1)
	c.BlockClub(c.Club.Name)
	for i := 0; i < 40; i++ {
		if BuildRenewalOffer(r, c, false) != nil {
			t.Fatalf("blocked club offered a renewal")
		}
	}
	locked := testCareer(t, "FC Nantes", 0)
	locked.FreeAgencyLock = true
	for i := 0; i < 40; i++ {
		if BuildRenewalOffer(r, locked, true) != nil {
			t.Fatalf("locked free agent got a renewal offer")
		}
	}
}

func TestAcceptRenewalStagesContract(t *testing.T) {
	c := testCareer(t, "FC Nantes", 1)
	AcceptRenewal(c, career.Offer{Club: c.Club, Tier: c.ClubTier, Years: 3, SalaryWeekly: 40000, ReleaseClause: 60})
	if c.PendingContract == nil || c.PendingContract.Years != 3 {
		t.Fatalf("renewal not staged: %+v", c.PendingContract)
	}
	if c.Contract.Years != 1 {
		t.Fatalf("renewal must wait for season rollover")
	}
}

func TestRequestLoanOutCooldownBurnsOnFailure(t *testing.T) {
	r := rand.New(rand.NewSource(14))
	c := testCareer(t, "AS Monaco", 3)
	if _, err := RequestLoanOut(r, c); err != nil {
		t.Fatalf("first request errored: %v", err)
	}
	if c.LoanCooldownSeason != c.Season+1 {
		t.Fatalf("cooldown = %d, want %d", c.LoanCooldownSeason, c.Season+1)
	}
	if !c.OnLoan() {
		c.Season = c.LoanCooldownSeason - 1
		if _, err := RequestLoanOut(r, c); !errors.Is(err, ErrLoanCooldown) {
			t.Fatalf("repeat request err = %v, want ErrLoanCooldown", err)
		}
	}
}

func TestRequestLoanOutGuards(t *testing.T) {
	r := rand.New(rand.NewSource(15))
	free := testCareer(t, "FC Nantes", 0)
	if _, err := RequestLoanOut(r, free); !errors.Is(err, career.ErrNoContract) {
		t.Fatalf("free agent loan err = %v, want ErrNoContract", err)
	}
	loaned := testCareer(t, "AS Monaco", 3)
	to, _ := clubs.ByName("FC Metz")
	loaned.BeginLoan(career.Loan{FromClub: loaned.Club, FromTier: loaned.ClubTier, ToClub: to, ToTier: 1, SeasonsLeft: 1})
	if _, err := RequestLoanOut(r, loaned); !errors.Is(err, career.ErrOnLoan) {
		t.Fatalf("double loan err = %v, want ErrOnLoan", err)
	}
}

func TestRequestLoanOutMoneyVsDevelopment(t *testing.T) {
	r := rand.New(rand.NewSource(16))
	for i := 0; i < 80; i++ {
		young := testCareer(t, "AS Monaco", 3)
		young.Age = 20
		res, err := RequestLoanOut(r, young)
		if err != nil {
			t.Fatalf("request errored: %v", err)
		}
		if res.Accepted {
			if res.Loan.Focus != career.LoanFocusDevelopment || res.Loan.GrowthMult != 1.25 {
				t.Fatalf("young loan should be developmental: %+v", res.Loan)
			}
			if res.Loan.ToTier >= young.ClubTier {
				t.Fatalf("loan target tier %d not below parent %d", res.Loan.ToTier, young.ClubTier)
			}
			return
		}
	}
	t.Fatalf("no loan accepted across 80 attempts")
}

func TestYouthLoanRunsOnce(t *testing.T) {
	r := rand.New(rand.NewSource(17))
	c := testCareer(t, "Real Madrid CF", 6)
	c.Age = 16
	c.Season = 1
	c.Stats = econ.Attributes{Pace: 64, Shooting: 66, Passing: 60, Dribbling: 62, Physical: 58}

	reaction := MaybeYouthLoan(r, c)
	if !c.YouthLoanChecked {
		t.Fatalf("check flag not set")
	}
	if reaction != nil {
		if !c.OnLoan() {
			t.Fatalf("reaction present but no loan active")
		}
		if c.Loan.Source != LoanSourceYouth || c.Loan.Focus != career.LoanFocusDevelopment {
			t.Fatalf("forced loan misconfigured: %+v", c.Loan)
		}
		AcknowledgeLoanReaction(c)
		if c.PendingLoanReaction != nil {
			t.Fatalf("reaction not cleared")
		}
	}
	if MaybeYouthLoan(r, c) != nil {
		t.Fatalf("youth loan check ran twice")
	}
}

func TestYouthLoanSkipsEstablishedPlayers(t *testing.T) {
	r := rand.New(rand.NewSource(18))
	c := testCareer(t, "Real Madrid CF", 6)
	c.Age = 19
	c.Season = 1
	if MaybeYouthLoan(r, c) != nil {
		t.Fatalf("19-year-old forced out on a youth loan")
	}
}

func TestLoanSeasonProgressReturnsPlayer(t *testing.T) {
	r := rand.New(rand.NewSource(19))
	c := testCareer(t, "AS Monaco", 3)
	to, _ := clubs.ByName("FC Metz")
	c.BeginLoan(career.Loan{
		FromClub: c.Club, FromTier: c.ClubTier,
		ToClub: to, ToTier: 1,
		SeasonsLeft: 2, Focus: career.LoanFocusDevelopment, GrowthMult: 1.25, Bonus: 500000,
	})
	LoanSeasonProgress(r, c)
	if !c.OnLoan() || c.Loan.SeasonsLeft != 1 {
		t.Fatalf("two-season loan ended after one: %+v", c.Loan)
	}
	LoanSeasonProgress(r, c)
	if c.OnLoan() {
		t.Fatalf("loan still active after its last season")
	}
	if c.Earnings != 500000 {
		t.Fatalf("completion bonus not paid: %d", c.Earnings)
	}
	if club, _ := c.CurrentClub(); club.Name != "AS Monaco" {
		t.Fatalf("player did not return to parent, at %s", club.Name)
	}
}

func TestAcceptLoanSignOffer(t *testing.T) {
	c := testCareer(t, "AS Monaco", 3)
	if err := AcceptLoanSignOffer(c); !errors.Is(err, ErrNoOffer) {
		t.Fatalf("accept with no offer err = %v, want ErrNoOffer", err)
	}
	club, _ := clubs.ByName("FC Metz")
	c.LoanSignOffer = &career.LoanSignOffer{
		Club: club, Tier: 1, Years: 3, SalaryWeekly: 12000, ReleaseClause: 8,
		BoostSeasons: 5, BoostMult: 1.08,
	}
	if err := AcceptLoanSignOffer(c); err != nil {
		t.Fatalf("accept failed: %v", err)
	}
	if c.Club.Name != "FC Metz" || c.Contract.Years != 3 {
		t.Fatalf("permanent move not applied: %s %+v", c.Club.Name, c.Contract)
	}
	if c.SigningBoostSeasons != 5 || c.SigningBoostMult != 1.08 {
		t.Fatalf("signing boost not applied")
	}
	if c.LoanSignOffer != nil {
		t.Fatalf("offer not consumed")
	}
}

func TestMaybeHelpLoanShape(t *testing.T) {
	r := rand.New(rand.NewSource(24))
	c := testCareer(t, "AS Monaco", 3)
	offer := MaybeHelpLoan(r, c)
	if offer == nil {
		t.Fatalf("no help plea for a mid-table regular")
	}
	if offer.Source != LoanSourceHelp || offer.SeasonsLeft != 1 || offer.Focus != career.LoanFocusDevelopment {
		t.Fatalf("bad help offer: %+v", offer)
	}
	if offer.ToTier >= c.ClubTier {
		t.Fatalf("help plea from tier %d, want below %d", offer.ToTier, c.ClubTier)
	}
	if c.OnLoan() {
		t.Fatalf("drafting the offer must not start the loan")
	}

	AcceptHelpLoan(c, *offer)
	if !c.OnLoan() || c.Loan.Source != LoanSourceHelp {
		t.Fatalf("accept did not start the spell: %+v", c.Loan)
	}
	if club, _ := c.CurrentClub(); club.Name != offer.ToClub.Name {
		t.Fatalf("player at %s, want %s", club.Name, offer.ToClub.Name)
	}
}

func TestMaybeHelpLoanGuards(t *testing.T) {
	r := rand.New(rand.NewSource(25))
	free := testCareer(t, "AS Monaco", 0)
	if MaybeHelpLoan(r, free) != nil {
		t.Fatalf("free agent got a help plea")
	}

	loaned := testCareer(t, "AS Monaco", 3)
	to, _ := clubs.ByName("FC Metz")
	loaned.BeginLoan(career.Loan{
		FromClub: loaned.Club, FromTier: loaned.ClubTier,
		ToClub: to, ToTier: clubs.TierOf(to.Name), SeasonsLeft: 1,
	})
	if MaybeHelpLoan(r, loaned) != nil {
		t.Fatalf("player already out on loan got another plea")
	}

	star := testCareer(t, "AS Monaco", 3)
	star.Stats = econ.Attributes{Pace: 90, Shooting: 92, Passing: 88, Dribbling: 90, Physical: 86}
	if MaybeHelpLoan(r, star) != nil {
		t.Fatalf("an elite player was asked to bail out a relegation side")
	}

	declined := testCareer(t, "AS Monaco", 3)
	offer := MaybeHelpLoan(r, declined)
	if offer == nil {
		t.Fatalf("no offer to decline")
	}
	DeclineHelpLoan(declined, *offer)
	if declined.OnLoan() {
		t.Fatalf("declining started the loan")
	}
}
