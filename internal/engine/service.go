// Package engine is the facade the presentation layers talk to: it owns
// the career saves, turns player actions into state transitions and hands
// back renderable effects. All randomness funnels through the service's
// single rand source so a seeded service plays deterministic careers.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"goalline/internal/career"
	"goalline/internal/clubs"
	"goalline/internal/econ"
	"goalline/internal/market"
	"goalline/internal/progress"
	"goalline/internal/season"
)

var (
	ErrValidation    = errors.New("invalid career input")
	ErrUnknownCareer = errors.New("unknown career id")
)

type session struct {
	career *career.Career
	event  season.Event
}

// Service owns every live career session.
type Service struct {
	log     *slog.Logger
	mu      sync.Mutex
	rand    *rand.Rand
	careers map[string]*session
}

// NewService builds a service seeded from the clock.
func NewService(logger *slog.Logger) *Service {
	return NewServiceSeeded(logger, time.Now().UnixNano())
}

// NewServiceSeeded builds a service with a fixed seed, for reproducible
// simulations and tests.
func NewServiceSeeded(logger *slog.Logger, seed int64) *Service {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Service{
		log:     logger,
		rand:    rand.New(rand.NewSource(seed)),
		careers: map[string]*session{},
	}
}

// StartCareerInput is the character-creation form.
type StartCareerInput struct {
	Name        string `json:"name"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	AcademyID   string `json:"academy_id"`
}

var baseStats = map[econ.Position]econ.Attributes{
	econ.Striker:    {Pace: 62, Shooting: 65, Passing: 52, Dribbling: 60, Physical: 55},
	econ.Midfielder: {Pace: 58, Shooting: 55, Passing: 68, Dribbling: 62, Physical: 56},
	econ.Defender:   {Pace: 60, Shooting: 45, Passing: 58, Dribbling: 50, Physical: 68},
	econ.Goalkeeper: {Pace: 60, Shooting: 58, Passing: 52, Dribbling: 63, Physical: 70},
}

// Academies draws academy choices for the creation screen.
func (s *Service) Academies(count int) []clubs.Academy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return clubs.RandomAcademies(s.rand, count)
}

// StartCareer validates the creation form and opens a new session at age
// 16, season 1, slot 1. The academy choice shades the starting attributes;
// the starting club is the academy's own club when it plays in the bottom
// tier, otherwise a random bottom-tier side.
func (s *Service) StartCareer(in StartCareerInput) (string, *CareerView, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return "", nil, fmt.Errorf("name is required: %w", ErrValidation)
	}
	pos := econ.Position(in.Position)
	if !pos.Valid() {
		return "", nil, fmt.Errorf("position %q: %w", in.Position, ErrValidation)
	}
	academy, ok := clubs.AcademyByID(in.AcademyID)
	if !ok {
		return "", nil, fmt.Errorf("academy %q: %w", in.AcademyID, ErrValidation)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	stats := baseStats[pos]
	for key, bonus := range academy.Bonus {
		if v, ok := stats.Get(key); ok {
			stats.Set(key, v+float64(bonus))
		}
	}
	if extra := (academy.Prestige - 78) / 20; extra > 0 {
		for _, key := range econ.AttributeKeys() {
			v, _ := stats.Get(key)
			stats.Set(key, v+float64(extra))
		}
	}

	club, tier := s.startingClub(academy)
	nationality := strings.TrimSpace(in.Nationality)
	if nationality == "" {
		nationality = club.Country
	}

	c := &career.Career{
		Name:        name,
		Position:    pos,
		Nationality: nationality,
		Academy:     academy,
		Age:         16,
		Season:      1,
		Slot:        1,
		Stats:       stats,
		Fitness:     100,
		Reputation:  5,
		Club:        club,
		ClubTier:    tier,
	}
	ovr := c.Ovr()
	c.Contract = career.Contract{
		Years:         econ.RollContractYears(s.rand, c.Age),
		SalaryWeekly:  econ.WeeklySalary(ovr, c.Age),
		ReleaseClause: econ.ReleaseClause(ovr, club.Prestige, c.Age),
	}

	id := uuid.NewString()
	sess := &session{career: c}
	sess.event = season.NextEvent(s.rand, c)
	s.careers[id] = sess

	s.log.Info("career started",
		"id", id, "name", name, "position", string(pos),
		"club", club.Name, "academy", academy.ID, "ovr", ovr)
	return id, s.view(id, sess), nil
}

func (s *Service) startingClub(academy clubs.Academy) (clubs.Club, int) {
	if academy.SourceTier == 1 {
		if club, ok := clubs.ByName(academy.Club); ok {
			return club, 1
		}
	}
	pool := clubs.Tier(1)
	return pool[s.rand.Intn(len(pool))], 1
}

// View returns the save and its pending event.
func (s *Service) View(id string) (*CareerView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.careers[id]
	if !ok {
		return nil, ErrUnknownCareer
	}
	return s.view(id, sess), nil
}

func (s *Service) view(id string, sess *session) *CareerView {
	ev := sess.event
	return &CareerView{ID: id, Career: sess.career, Event: &ev}
}

// CloseCareer drops a session.
func (s *Service) CloseCareer(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.careers, id)
}

// Dispatch applies one player action to the session's pending event and
// returns what changed. Invariant-violating requests come back as refusal
// effects, never as errors; errors are reserved for bad session ids.
func (s *Service) Dispatch(id string, action Action) (Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.careers[id]
	if !ok {
		return Effect{}, ErrUnknownCareer
	}
	return s.dispatch(sess, action), nil
}

func (s *Service) dispatch(sess *session, action Action) Effect {
	c := sess.career
	if c.Retired {
		return s.hold(sess, Effect{Refusal: "the career is over"})
	}
	ev := sess.event

	switch a := action.(type) {
	case Acknowledge:
		return s.acknowledge(sess, ev)
	case ChooseOption:
		return s.chooseOption(sess, ev, a.Key)
	case SendApplication:
		return s.sendApplication(sess, ev, a)
	case ProposeExtension:
		return s.proposeExtension(sess, ev, a.Mode)
	case RequestLoan:
		return s.requestLoan(sess, ev)
	case AcceptOffer:
		return s.acceptOffer(sess, ev, a.Index)
	case DeclineOffers:
		if !isWindowKind(ev.Kind) {
			return s.hold(sess, Effect{Refusal: "there are no offers to decline"})
		}
		market.StayAtClub(c)
		return s.completeSlot(sess, Effect{Message: "You let the window close and recommit to the squad."})
	case AcceptRenewal:
		if ev.Kind != season.KindRenewal || ev.Renewal == nil {
			return s.hold(sess, Effect{Refusal: "there is no renewal on the table"})
		}
		market.AcceptRenewal(c, *ev.Renewal)
		return s.completeSlot(sess, Effect{Message: fmt.Sprintf("Agreed: %d more years at %s from next season.", ev.Renewal.Years, ev.Renewal.Club.Name)})
	case DeclineRenewal:
		if ev.Kind != season.KindRenewal {
			return s.hold(sess, Effect{Refusal: "there is no renewal on the table"})
		}
		market.DeclineRenewal(c, ev.RenewalFreeAgent)
		return s.completeSlot(sess, Effect{Message: "You turn the renewal down. The board takes note."})
	case AcceptReleaseClause:
		if ev.Kind != season.KindReleaseClause || ev.ReleaseClause == nil {
			return s.hold(sess, Effect{Refusal: "no clause has been triggered"})
		}
		return s.performTransfer(sess, *ev.ReleaseClause)
	case DeclineReleaseClause:
		if ev.Kind != season.KindReleaseClause || ev.ReleaseClause == nil {
			return s.hold(sess, Effect{Refusal: "no clause has been triggered"})
		}
		market.DeclineReleaseClause(c, *ev.ReleaseClause)
		return s.completeSlot(sess, Effect{Message: "You dig in and refuse the move. " + ev.ReleaseClause.Club.Name + " walks away."})
	case AcceptFeedback:
		if ev.Kind != season.KindFeedback || ev.Feedback == nil || ev.Feedback.Offer == nil {
			return s.hold(sess, Effect{Refusal: "there is no deal attached to this response"})
		}
		offer := *ev.Feedback.Offer
		market.PopFeedback(c)
		return s.performTransfer(sess, offer)
	case DismissFeedback:
		if ev.Kind != season.KindFeedback || ev.Feedback == nil {
			return s.hold(sess, Effect{Refusal: "there is no market response waiting"})
		}
		if ev.Feedback.Offer != nil {
			market.DismissFeedbackOffer(c, *ev.Feedback)
		}
		market.PopFeedback(c)
		return s.refresh(sess, Effect{Message: "You let it go and move on."})
	case AcceptLoanSign:
		if ev.Kind != season.KindLoanSignOffer {
			return s.hold(sess, Effect{Refusal: "no permanent deal is on the table"})
		}
		offer := c.LoanSignOffer
		if err := market.AcceptLoanSignOffer(c); err != nil {
			return s.hold(sess, Effect{Refusal: "no permanent deal is on the table"})
		}
		return s.refresh(sess, Effect{Message: "You sign permanently for " + offer.Club.Name + "."})
	case DeclineLoanSign:
		if ev.Kind != season.KindLoanSignOffer {
			return s.hold(sess, Effect{Refusal: "no permanent deal is on the table"})
		}
		market.DeclineLoanSignOffer(c)
		return s.refresh(sess, Effect{Message: "You thank them and return to your parent club."})
	case AcceptCup:
		if ev.Kind != season.KindPreseasonCup || ev.Preseason == nil {
			return s.hold(sess, Effect{Refusal: "there is no tournament invitation"})
		}
		season.AcceptCupInvite(c)
		res := season.PlayCup(s.rand, c, ev.Preseason)
		eff := Effect{Cup: res, Message: cupMessage(res)}
		return s.completeSlot(sess, eff)
	case DeclineCup:
		if ev.Kind != season.KindPreseasonCup {
			return s.hold(sess, Effect{Refusal: "there is no tournament invitation"})
		}
		season.DeclineCupInvite(c)
		return s.completeSlot(sess, Effect{Message: "You refuse the trip. The club is furious and the fans notice."})
	case FakeSick:
		if ev.Kind != season.KindPreseasonCup {
			return s.hold(sess, Effect{Refusal: "there is no tournament invitation"})
		}
		if season.FakeSick(s.rand, c) {
			return s.completeSlot(sess, Effect{Message: "The club doctor sees through the note. Fined two weeks' wages and disgraced."})
		}
		return s.completeSlot(sess, Effect{Message: "The note holds up. You spend the week on the sofa."})
	case PickPenalty:
		if ev.Kind != season.KindClutch || ev.Clutch == nil {
			return s.hold(sess, Effect{Refusal: "there is no penalty to take"})
		}
		if season.TakePenalty(s.rand, c, *ev.Clutch, a.Direction) {
			return s.completeSlot(sess, Effect{Message: "Bottom corner. The stand behind the goal erupts."})
		}
		return s.completeSlot(sess, Effect{Message: "Saved. You stare at the turf all the way back to halfway."})
	case TakeBooster:
		return s.takeBooster(sess, ev, a.Tier)
	case RefuseBooster:
		if !isDopingEvent(ev) {
			return s.hold(sess, Effect{Refusal: "nobody is offering you anything"})
		}
		season.RefuseBooster(c)
		return s.completeSlot(sess, Effect{Message: "You walk away. Word of it reaches the right people."})
	case RushBack:
		if !isInjuryEvent(ev) {
			return s.hold(sess, Effect{Refusal: "you are not injured"})
		}
		if season.RushBack(s.rand, c, *ev.Matchday.Injury) {
			eff := Effect{Message: "Your body gives out on the comeback. The doctors are unanimous.", Retirement: buildRetirementSummary(c)}
			return s.hold(sess, eff)
		}
		return s.completeSlot(sess, Effect{Message: "You grit through the rehab and play on, diminished."})
	case SitOut:
		if !isInjuryEvent(ev) {
			return s.hold(sess, Effect{Refusal: "you are not injured"})
		}
		season.ApplyInjury(c, *ev.Matchday.Injury)
		return s.completeSlot(sess, Effect{Message: fmt.Sprintf("You take the full %d weeks. No shortcuts.", ev.Matchday.Injury.Weeks)})
	case Retire:
		if c.Age < 36 || c.Contract.Years > 0 {
			return s.hold(sess, Effect{Refusal: "you can only retire from age 36 with no contract"})
		}
		c.Retired = true
		s.log.Info("career retired", "name", c.Name, "age", c.Age, "seasons", c.SeasonsPlayed)
		return Effect{Message: "You call time on your career.", Retirement: buildRetirementSummary(c)}
	default:
		return s.hold(sess, Effect{Ignored: true})
	}
}

func isWindowKind(k season.Kind) bool {
	switch k {
	case season.KindTransferWindow, season.KindQuietWindow, season.KindFreeAgency, season.KindNoOffers:
		return true
	}
	return false
}

func isDopingEvent(ev season.Event) bool {
	return ev.Kind == season.KindMatchday && ev.Matchday != nil && ev.Matchday.SubKind == season.SubDoping
}

func isInjuryEvent(ev season.Event) bool {
	return ev.Kind == season.KindMatchday && ev.Matchday != nil && ev.Matchday.SubKind == season.SubInjury && ev.Matchday.Injury != nil
}

func cupMessage(res *season.CupResult) string {
	switch {
	case res == nil:
		return "The tournament falls through."
	case res.Won:
		return "You lift the " + res.CupName + ". A trophy before the season even starts."
	case res.Final != nil:
		return "Beaten in the final. Still, the squad looks sharp."
	default:
		return "Out in the semi. A quiet flight home."
	}
}

// acknowledge resolves events that need no decision, including the ban
// season and the season run-in.
func (s *Service) acknowledge(sess *session, ev season.Event) Effect {
	c := sess.career
	switch ev.Kind {
	case season.KindBanSeason:
		season.ServeBanSeason(s.rand, c)
		return s.afterRollover(sess, Effect{Message: "The season passes without you."})
	case season.KindFeedback:
		if ev.Feedback != nil && ev.Feedback.Offer != nil {
			market.DismissFeedbackOffer(c, *ev.Feedback)
		}
		market.PopFeedback(c)
		return s.refresh(sess, Effect{Message: "Noted."})
	case season.KindLoanReaction:
		market.AcknowledgeLoanReaction(c)
		return s.refresh(sess, Effect{Message: "You pack your bags. The club says it is for your own good."})
	case season.KindLoanSignOffer:
		market.DeclineLoanSignOffer(c)
		return s.refresh(sess, Effect{Message: "You let the offer lapse and head back."})
	case season.KindRunIn:
		res := season.FinishSeason(s.rand, c)
		eff := Effect{Message: runInMessage(res)}
		return s.afterRollover(sess, eff)
	case season.KindNational:
		if ev.National != nil && ev.National.CalledUp {
			return s.hold(sess, Effect{Refusal: "the federation expects an answer on the pitch"})
		}
		return s.completeSlot(sess, Effect{Message: "No call-up this time. Back to work."})
	case season.KindRenewal:
		if ev.Renewal != nil {
			return s.hold(sess, Effect{Refusal: "the renewal needs an answer"})
		}
		return s.completeSlot(sess, Effect{Message: "The club lets your deal run down in silence."})
	case season.KindTraining, season.KindCupTie, season.KindContinental, season.KindReserveWeek:
		return s.hold(sess, Effect{Refusal: "this week needs a decision"})
	case season.KindPreseasonCup:
		return s.hold(sess, Effect{Refusal: "the invitation needs an answer"})
	case season.KindClutch:
		return s.hold(sess, Effect{Refusal: "someone has to take it"})
	case season.KindMatchday:
		return s.resolveMatchdayDefault(sess, ev)
	default:
		return s.completeSlot(sess, Effect{Message: "The week passes."})
	}
}

// resolveMatchdayDefault is the passive response to a matchday storyline.
func (s *Service) resolveMatchdayDefault(sess *session, ev season.Event) Effect {
	c := sess.career
	if ev.Matchday == nil {
		return s.completeSlot(sess, Effect{Message: "A routine ninety minutes."})
	}
	switch ev.Matchday.SubKind {
	case season.SubDoping:
		return s.hold(sess, Effect{Refusal: "the fixer is still waiting for an answer"})
	case season.SubInjury:
		return s.hold(sess, Effect{Refusal: "the physios need a decision"})
	case season.SubFame:
		season.StayHumble(c)
		return s.completeSlot(sess, Effect{Message: "You wave the circus away and train."})
	case season.SubLoanOffer:
		if ev.Matchday.LoanOffer != nil {
			market.DeclineHelpLoan(c, *ev.Matchday.LoanOffer)
		}
		return s.completeSlot(sess, Effect{Message: "You let the request go unanswered. They stop calling."})
	default:
		return s.completeSlot(sess, Effect{Message: "You keep your head down and let it blow over."})
	}
}

// chooseOption resolves keyed choices. Unknown keys on a known event are
// ignored without touching state, same as unknown actions.
func (s *Service) chooseOption(sess *session, ev season.Event, key string) Effect {
	c := sess.career
	switch ev.Kind {
	case season.KindTraining:
		if !choiceKeyKnown(ev.Choices, key) {
			return s.hold(sess, Effect{Ignored: true})
		}
		season.ResolveTraining(s.rand, c, key)
		return s.completeSlot(sess, Effect{Message: "Session logged. The numbers move."})
	case season.KindCupTie, season.KindContinental, season.KindReserveWeek:
		return s.applyChoiceDeltas(sess, ev, key)
	case season.KindNational:
		if ev.National == nil || !ev.National.CalledUp {
			return s.hold(sess, Effect{Refusal: "you were not called up"})
		}
		switch key {
		case "bold":
			if season.NationalPerformance(s.rand, c, true) {
				return s.completeSlot(sess, Effect{Message: "You score for your country. The clip is everywhere."})
			}
			return s.completeSlot(sess, Effect{Message: "A fearless showing, even without the goal."})
		case "safe":
			season.NationalPerformance(s.rand, c, false)
			return s.completeSlot(sess, Effect{Message: "A clean, quiet cap. The coaches approve."})
		}
		return s.hold(sess, Effect{Ignored: true})
	case season.KindMatchday:
		return s.matchdayChoice(sess, ev, key)
	case season.KindTransferWindow, season.KindQuietWindow:
		if key == "stay" {
			market.StayAtClub(c)
			return s.completeSlot(sess, Effect{Message: "You tell your agent to stand down."})
		}
		return s.hold(sess, Effect{Ignored: true})
	}
	return s.hold(sess, Effect{Ignored: true})
}

func choiceKeyKnown(choices []season.TrainingChoice, key string) bool {
	for _, ch := range choices {
		if ch.Key == key {
			return true
		}
	}
	return false
}

func (s *Service) applyChoiceDeltas(sess *session, ev season.Event, key string) Effect {
	for _, ch := range ev.Choices {
		if ch.Key == key {
			progress.ApplyDeltas(sess.career, ch.Deltas)
			return s.completeSlot(sess, Effect{Message: ch.Label + ". " + "The week leaves its mark."})
		}
	}
	return s.hold(sess, Effect{Ignored: true})
}

func (s *Service) matchdayChoice(sess *session, ev season.Event, key string) Effect {
	c := sess.career
	if ev.Matchday == nil {
		return s.hold(sess, Effect{Ignored: true})
	}
	switch ev.Matchday.SubKind {
	case season.SubRivalry:
		switch key {
		case "confront":
			if season.ConfrontRival(s.rand, c) {
				return s.completeSlot(sess, Effect{Message: "You face him down in front of everyone. The squad falls in behind you."})
			}
			return s.completeSlot(sess, Effect{Message: "It goes badly. The story leaks by morning."})
		case "ignore":
			return s.completeSlot(sess, Effect{Message: "You let your football answer for you."})
		}
	case season.SubMedia:
		switch key {
		case "speak":
			if season.PressConference(s.rand, c) {
				return s.completeSlot(sess, Effect{Message: "The quote lands. The manager texts you a thumbs up."})
			}
			return s.completeSlot(sess, Effect{Message: "The headline is worse than what you said."})
		case "quiet":
			return s.completeSlot(sess, Effect{Message: "Straight past the microphones and onto the bus."})
		}
	case season.SubFame:
		switch key {
		case "embrace":
			season.EmbraceFame(c)
			return s.completeSlot(sess, Effect{Message: "The profile piece runs. Training feels heavier that week."})
		case "humble":
			season.StayHumble(c)
			return s.completeSlot(sess, Effect{Message: "You give them nothing. The manager likes that."})
		}
	case season.SubMentor:
		switch key {
		case "train":
			keys := season.MentorTrain(s.rand, c)
			return s.completeSlot(sess, Effect{Message: fmt.Sprintf("A month of extra sessions sharpens your %s and %s.", keys[0], keys[1])})
		case "decline":
			return s.completeSlot(sess, Effect{Message: "You thank him and stick to your own routine."})
		}
	case season.SubLoanOffer:
		if ev.Matchday.LoanOffer == nil {
			return s.hold(sess, Effect{Ignored: true})
		}
		switch key {
		case "accept":
			market.AcceptHelpLoan(c, *ev.Matchday.LoanOffer)
			return s.completeSlot(sess, Effect{Message: "You answer the call and join " + ev.Matchday.LoanOffer.ToClub.Name + " until the end of the season."})
		case "decline":
			market.DeclineHelpLoan(c, *ev.Matchday.LoanOffer)
			return s.completeSlot(sess, Effect{Message: "You wish them luck and stay where you are."})
		}
	}
	return s.hold(sess, Effect{Ignored: true})
}

func (s *Service) takeBooster(sess *session, ev season.Event, tier string) Effect {
	c := sess.career
	if !isDopingEvent(ev) {
		return s.hold(sess, Effect{Refusal: "nobody is offering you anything"})
	}
	caught, err := season.TakeBooster(s.rand, c, tier)
	switch {
	case errors.Is(err, season.ErrBoosterUsed):
		return s.hold(sess, Effect{Refusal: "you already went back once this week"})
	case errors.Is(err, career.ErrBanned):
		return s.hold(sess, Effect{Refusal: "you are already serving a ban"})
	case err != nil:
		return s.hold(sess, Effect{Ignored: true})
	case caught:
		s.log.Info("doping ban", "name", c.Name, "seasons", c.BannedSeasons+1)
		return s.afterRollover(sess, Effect{Message: "The test comes back positive. The season is over on the spot, the contract torn up, your name in every paper."})
	}
	return s.completeSlot(sess, Effect{Message: "Nobody asks questions. You feel faster already."})
}

func (s *Service) sendApplication(sess *session, ev season.Event, a SendApplication) Effect {
	if ev.Kind != season.KindTransferWindow {
		return s.hold(sess, Effect{Refusal: "the board is not open this week"})
	}
	app, err := market.Apply(s.rand, sess.career, a.Club, a.Mode)
	switch {
	case errors.Is(err, market.ErrMoveAgreed):
		return s.hold(sess, Effect{Refusal: "your move is already agreed"})
	case errors.Is(err, market.ErrPendingApplication):
		return s.hold(sess, Effect{Refusal: "you already have an application in with " + a.Club})
	case errors.Is(err, market.ErrClubBlocked):
		return s.hold(sess, Effect{Refusal: a.Club + " will not deal with you"})
	case errors.Is(err, career.ErrNotFound):
		return s.hold(sess, Effect{Refusal: "no such club"})
	case err != nil:
		return s.hold(sess, Effect{Refusal: err.Error()})
	}
	// The window stays open so several applications can go out.
	return s.hold(sess, Effect{Message: "Your agent makes the call to " + app.ClubName + ". Answers come at season's end."})
}

func (s *Service) proposeExtension(sess *session, ev season.Event, mode string) Effect {
	if !isWindowKind(ev.Kind) && ev.Kind != season.KindRenewal {
		return s.hold(sess, Effect{Refusal: "contract talks wait for the window"})
	}
	proposal, accepted, err := market.SubmitExtension(s.rand, sess.career, mode)
	switch {
	case errors.Is(err, career.ErrNoContract):
		return s.hold(sess, Effect{Refusal: "you have no contract to extend"})
	case errors.Is(err, market.ErrMoveAgreed):
		return s.hold(sess, Effect{Refusal: "your move is already agreed"})
	case err != nil:
		return s.hold(sess, Effect{Refusal: err.Error()})
	case accepted:
		return s.completeSlot(sess, Effect{Message: fmt.Sprintf("The club agrees: %d years from next season.", proposal.Years)})
	}
	return s.completeSlot(sess, Effect{Message: "The board says no. The room goes cold on the way out."})
}

func (s *Service) requestLoan(sess *session, ev season.Event) Effect {
	if !isWindowKind(ev.Kind) {
		return s.hold(sess, Effect{Refusal: "loan requests wait for the window"})
	}
	res, err := market.RequestLoanOut(s.rand, sess.career)
	switch {
	case errors.Is(err, career.ErrOnLoan):
		return s.hold(sess, Effect{Refusal: "you are already out on loan"})
	case errors.Is(err, career.ErrNoContract):
		return s.hold(sess, Effect{Refusal: "free agents cannot be loaned"})
	case errors.Is(err, market.ErrLoanCooldown):
		return s.hold(sess, Effect{Refusal: "you already asked this season"})
	case err != nil:
		return s.hold(sess, Effect{Refusal: err.Error()})
	case res.Accepted:
		return s.completeSlot(sess, Effect{Message: "Approved. You join " + res.Loan.ToClub.Name + " on loan."})
	}
	return s.completeSlot(sess, Effect{Message: "The manager wants you here. Request denied."})
}

func (s *Service) acceptOffer(sess *session, ev season.Event, index int) Effect {
	if len(ev.Offers) == 0 {
		return s.hold(sess, Effect{Refusal: "there are no offers on the table"})
	}
	if index < 0 || index >= len(ev.Offers) {
		return s.hold(sess, Effect{Refusal: "no such offer"})
	}
	return s.performTransfer(sess, ev.Offers[index])
}

func (s *Service) performTransfer(sess *session, offer career.Offer) Effect {
	c := sess.career
	if err := market.PerformTransfer(c, offer); err != nil {
		if errors.Is(err, career.ErrOnLoan) {
			return s.hold(sess, Effect{Refusal: "no transfers while out on loan"})
		}
		return s.hold(sess, Effect{Refusal: err.Error()})
	}
	if c.Club.Name == offer.Club.Name {
		return s.completeSlot(sess, Effect{Message: "You sign for " + offer.Club.Name + " with immediate effect."})
	}
	return s.completeSlot(sess, Effect{Message: "Agreed with " + offer.Club.Name + ". The move lands at the start of next season."})
}

// completeSlot closes the current calendar slot and schedules what comes
// next. The forced youth loan check runs once, after the first preseason
// slot of the first season.
func (s *Service) completeSlot(sess *session, eff Effect) Effect {
	c := sess.career
	if c.Retired {
		return eff
	}
	if c.Slot == season.SlotPreseason && !c.YouthLoanChecked {
		market.MaybeYouthLoan(s.rand, c)
	}
	if c.Slot < season.SlotsPerYear {
		c.Slot++
	}
	return s.refresh(sess, eff)
}

// refresh recomputes the pending event without touching the slot.
func (s *Service) refresh(sess *session, eff Effect) Effect {
	sess.event = season.NextEvent(s.rand, sess.career)
	ev := sess.event
	eff.Event = &ev
	return eff
}

// hold returns an effect against the unchanged pending event.
func (s *Service) hold(sess *session, eff Effect) Effect {
	ev := sess.event
	eff.Event = &ev
	return eff
}

// afterRollover finishes a season transition: summary, forced retirement
// at 42, the voluntary retirement prompt, next event.
func (s *Service) afterRollover(sess *session, eff Effect) Effect {
	c := sess.career
	eff.Summary = buildSeasonSummary(c)
	if c.Age >= 42 {
		c.Retired = true
		eff.Retirement = buildRetirementSummary(c)
		s.log.Info("career ended", "name", c.Name, "age", c.Age, "reason", "forced retirement")
		return eff
	}
	if season.ShouldOfferRetirement(c) {
		eff.RetirePrompt = true
	}
	s.log.Debug("season advanced", "name", c.Name, "season", c.Season, "age", c.Age, "ovr", c.Ovr())
	return s.refresh(sess, eff)
}

func runInMessage(res season.Result) string {
	if len(res.Trophies) > 0 {
		return "The season ends in silverware."
	}
	return "The season winds down with nothing to show but the miles."
}
