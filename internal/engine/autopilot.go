package engine

import (
	"goalline/internal/career"
	"goalline/internal/season"
)

// autopilotAction picks a sensible default for any pending event. It backs
// AdvanceSeason and the headless simulator: clean living, steady training,
// take what the market puts in front of you.
func autopilotAction(ev season.Event, c *career.Career) Action {
	switch ev.Kind {
	case season.KindBanSeason, season.KindLoanReaction, season.KindNoOffers,
		season.KindTransferWindow, season.KindQuietWindow, season.KindRunIn:
		return Acknowledge{}
	case season.KindFeedback:
		return DismissFeedback{}
	case season.KindLoanSignOffer:
		return AcceptLoanSign{}
	case season.KindTraining:
		return ChooseOption{Key: "balanced"}
	case season.KindPreseasonCup:
		return AcceptCup{}
	case season.KindMatchday:
		if ev.Matchday != nil {
			switch ev.Matchday.SubKind {
			case season.SubDoping:
				return RefuseBooster{}
			case season.SubInjury:
				return SitOut{}
			case season.SubMentor:
				return ChooseOption{Key: "train"}
			}
		}
		return Acknowledge{}
	case season.KindCupTie:
		return ChooseOption{Key: "solid"}
	case season.KindContinental:
		return ChooseOption{Key: "composed"}
	case season.KindReserveWeek:
		return ChooseOption{Key: "rest"}
	case season.KindNational:
		if ev.National != nil && ev.National.CalledUp {
			return ChooseOption{Key: "safe"}
		}
		return Acknowledge{}
	case season.KindClutch:
		return PickPenalty{Direction: "left"}
	case season.KindRenewal:
		if ev.Renewal != nil {
			return AcceptRenewal{}
		}
		return Acknowledge{}
	case season.KindFreeAgency:
		return AcceptOffer{Index: 0}
	case season.KindReleaseClause:
		return DeclineReleaseClause{}
	}
	return Acknowledge{}
}

// AdvanceSeason plays the session forward on autopilot until a season
// rollover or retirement, returning the closing effect.
func (s *Service) AdvanceSeason(id string) (Effect, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.careers[id]
	if !ok {
		return Effect{}, ErrUnknownCareer
	}
	if sess.career.Retired {
		return s.hold(sess, Effect{Refusal: "the career is over"}), nil
	}

	var eff Effect
	for i := 0; i < 128; i++ {
		eff = s.dispatch(sess, autopilotAction(sess.event, sess.career))
		if eff.Summary != nil || eff.Retirement != nil {
			return eff, nil
		}
	}
	s.log.Warn("autopilot gave up before the season closed", "season", sess.career.Season)
	return eff, nil
}
