// Package season drives the career calendar: ten slots per season, the
// event scheduler that fills them, the season-end resolution and the
// rollover that ages the player and settles the market. The engine package
// decides which player choices apply; this package decides what happens.
package season

import (
	"math/rand"

	"goalline/internal/career"
	"goalline/internal/market"
)

// Slots per season. Slot 9 is the transfer window, slot 10 the run-in that
// closes the season.
const (
	SlotPreseason = 1
	SlotWindow    = 9
	SlotRunIn     = 10
	SlotsPerYear  = 10
)

var slotLabels = map[int]string{
	1:  "Preseason Training",
	2:  "League Matchday",
	3:  "League Matchday",
	4:  "Domestic Cup",
	5:  "League Matchday",
	6:  "Continental Night",
	7:  "National Team Window",
	8:  "Clutch Moment",
	9:  "Transfer & Contract Week",
	10: "Season Run-In",
}

// SlotLabel names a calendar slot.
func SlotLabel(slot int) string {
	if l, ok := slotLabels[slot]; ok {
		return l
	}
	return "Matchday"
}

// Event kinds produced by the scheduler.
type Kind string

const (
	KindBanSeason      Kind = "ban-season"
	KindFeedback       Kind = "market-feedback"
	KindLoanReaction   Kind = "loan-reaction"
	KindLoanSignOffer  Kind = "loan-sign-offer"
	KindTraining       Kind = "training"
	KindPreseasonCup   Kind = "preseason-cup"
	KindMatchday       Kind = "matchday"
	KindCupTie         Kind = "cup-tie"
	KindContinental    Kind = "continental"
	KindReserveWeek    Kind = "reserve-week"
	KindNational       Kind = "national"
	KindClutch         Kind = "clutch"
	KindRenewal        Kind = "renewal"
	KindFreeAgency     Kind = "free-agency"
	KindNoOffers       Kind = "no-offers"
	KindReleaseClause  Kind = "release-clause"
	KindTransferWindow Kind = "transfer-window"
	KindQuietWindow    Kind = "quiet-window"
	KindRunIn          Kind = "run-in"
)

// Event is one scheduled moment. Only the payload matching the kind is set.
type Event struct {
	Kind  Kind   `json:"kind"`
	Slot  int    `json:"slot"`
	Label string `json:"label"`
	Title string `json:"title"`
	Text  string `json:"text"`

	Feedback      *career.MarketFeedback      `json:"feedback,omitempty"`
	LoanReaction  *career.PendingLoanReaction `json:"loan_reaction,omitempty"`
	LoanSignOffer *career.LoanSignOffer       `json:"loan_sign_offer,omitempty"`

	Renewal          *career.Offer  `json:"renewal,omitempty"`
	RenewalFreeAgent bool           `json:"renewal_free_agent,omitempty"`
	ReleaseClause    *career.Offer  `json:"release_clause,omitempty"`
	Offers           []career.Offer `json:"offers,omitempty"`
	Board            *market.Board  `json:"board,omitempty"`

	Choices   []TrainingChoice `json:"choices,omitempty"`
	Matchday  *MatchdayEvent   `json:"matchday,omitempty"`
	National  *NationalWindow  `json:"national,omitempty"`
	Clutch    *PenaltyContext  `json:"clutch,omitempty"`
	Preseason *CupInvite       `json:"preseason,omitempty"`
}

// NextEvent builds the next thing to happen. Interrupts come first: a ban
// swallows the whole season, then queued market feedback, then loan
// paperwork. Otherwise the current slot decides.
func NextEvent(r *rand.Rand, c *career.Career) Event {
	if c.BannedSeasons > 0 {
		return Event{
			Kind:  KindBanSeason,
			Slot:  c.Slot,
			Label: "Suspended",
			Title: "Season Lost to Suspension",
			Text:  "The ban holds. A year of training alone, watching from the stands.",
		}
	}
	if fb, ok := market.NextFeedback(c); ok {
		e := Event{
			Kind:     KindFeedback,
			Slot:     c.Slot,
			Label:    SlotLabel(c.Slot),
			Title:    "Market Response",
			Feedback: &fb,
		}
		return e
	}
	if c.PendingLoanReaction != nil {
		return Event{
			Kind:         KindLoanReaction,
			Slot:         c.Slot,
			Label:        SlotLabel(c.Slot),
			Title:        "Loan Decision From Above",
			LoanReaction: c.PendingLoanReaction,
		}
	}
	if c.LoanSignOffer != nil {
		return Event{
			Kind:          KindLoanSignOffer,
			Slot:          c.Slot,
			Label:         SlotLabel(c.Slot),
			Title:         "Permanent Deal on the Table",
			LoanSignOffer: c.LoanSignOffer,
		}
	}

	switch c.Slot {
	case 1:
		if invite := MaybeCupInvite(r, c); invite != nil {
			return Event{
				Kind: KindPreseasonCup, Slot: c.Slot, Label: SlotLabel(c.Slot),
				Title: "Preseason Cup Invitation", Preseason: invite,
			}
		}
		return trainingEvent(c)
	case 2, 3, 5:
		return matchdayEvent(r, c)
	case 4:
		return cupTieEvent(c)
	case 6:
		return continentalEvent(c)
	case 7:
		return nationalEvent(r, c)
	case 8:
		return clutchEvent(r, c)
	case 9:
		return windowEvent(r, c)
	}
	return Event{
		Kind: KindRunIn, Slot: c.Slot, Label: SlotLabel(c.Slot),
		Title: "Season Run-In",
		Text:  "Every point matters now. The dressing room can feel it.",
	}
}

func rng(r *rand.Rand, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.Intn(hi-lo+1)
}

// windowEvent works through the transfer-week priority chain: a renewal for
// an expiring deal, free agency, a triggered release clause, then ordinary
// interest.
func windowEvent(r *rand.Rand, c *career.Career) Event {
	label := SlotLabel(SlotWindow)

	if c.OnLoan() {
		return Event{
			Kind: KindQuietWindow, Slot: SlotWindow, Label: label,
			Title: "Market Frozen",
			Text:  "You belong to two clubs at once and can sign for neither. The window passes you by.",
		}
	}
	if c.Contract.Years == 1 && c.RenewalOfferSeason != c.Season {
		c.RenewalOfferSeason = c.Season
		offer := market.BuildRenewalOffer(r, c, false)
		return Event{
			Kind: KindRenewal, Slot: SlotWindow, Label: label,
			Title: "Contract Talks", Renewal: offer,
		}
	}
	if c.Contract.Years <= 0 {
		if c.FreeAgentRenewalSeason != c.Season && !c.FreeAgencyLock {
			c.FreeAgentRenewalSeason = c.Season
			if offer := market.BuildRenewalOffer(r, c, true); offer != nil {
				return Event{
					Kind: KindRenewal, Slot: SlotWindow, Label: label,
					Title: "One Last Deal?", Renewal: offer, RenewalFreeAgent: true,
				}
			}
		}
		offers := market.BuildTransferOffers(r, c, true)
		if len(offers) == 0 {
			return Event{
				Kind: KindNoOffers, Slot: SlotWindow, Label: label,
				Title: "The Phone Stays Silent",
				Text:  "No club calls. Keep training and hope, or call it a career.",
			}
		}
		return Event{
			Kind: KindFreeAgency, Slot: SlotWindow, Label: label,
			Title: "Free Agency", Offers: offers,
		}
	}
	if offer := market.MaybeReleaseClauseEvent(r, c); offer != nil {
		return Event{
			Kind: KindReleaseClause, Slot: SlotWindow, Label: label,
			Title: "Release Clause Triggered", ReleaseClause: offer,
		}
	}
	if c.Age >= 18 && r.Float64() < 0.45 {
		board := market.BuildBoard(r, c)
		return Event{
			Kind: KindTransferWindow, Slot: SlotWindow, Label: label,
			Title: "Transfer Window Open",
			Offers: market.BuildTransferOffers(r, c, false),
			Board:  &board,
		}
	}
	return Event{
		Kind: KindQuietWindow, Slot: SlotWindow, Label: label,
		Title: "A Quiet Window",
		Text:  "Your agent shrugs. Nothing worth discussing this time around.",
	}
}
