package engine

// Action is one player decision, a tagged union dispatched by type switch.
// Unknown action values fall through to a no-op: the dispatch contract is
// permissive, and bad input must never corrupt the save.
type Action interface {
	isAction()
}

// ChooseOption picks a keyed option on the current event: a training
// intensity, a cup-tie approach, a matchday storyline response.
type ChooseOption struct {
	Key string `json:"key"`
}

// Acknowledge moves past an event that needs no decision.
type Acknowledge struct{}

// SendApplication files interest with a club on the transfer board.
type SendApplication struct {
	Club string `json:"club"`
	Mode string `json:"mode"`
}

// ProposeExtension opens extension talks with the current club.
type ProposeExtension struct {
	Mode string `json:"mode"`
}

// RequestLoan asks the club to loan the player out.
type RequestLoan struct{}

// AcceptOffer takes a transfer offer by its position in the offer list.
type AcceptOffer struct {
	Index int `json:"index"`
}

// DeclineOffers turns the whole offer list down and stays put.
type DeclineOffers struct{}

// AcceptRenewal signs the renewal on the table.
type AcceptRenewal struct{}

// DeclineRenewal walks away from the renewal.
type DeclineRenewal struct{}

// AcceptReleaseClause lets a triggered clause go through.
type AcceptReleaseClause struct{}

// DeclineReleaseClause fights to stay despite the triggered clause.
type DeclineReleaseClause struct{}

// AcceptFeedback signs the deal attached to a market response.
type AcceptFeedback struct{}

// DismissFeedback declines the deal attached to a market response.
type DismissFeedback struct{}

// AcceptLoanSign takes the loan club's permanent offer.
type AcceptLoanSign struct{}

// DeclineLoanSign returns to the parent club instead.
type DeclineLoanSign struct{}

// AcceptCup commits to the preseason tournament.
type AcceptCup struct{}

// DeclineCup refuses the preseason tournament outright.
type DeclineCup struct{}

// FakeSick ducks the preseason tournament with a forged sick note.
type FakeSick struct{}

// PickPenalty chooses where the clutch penalty goes.
type PickPenalty struct {
	Direction string `json:"direction"`
}

// TakeBooster accepts a doping offer at the named tier.
type TakeBooster struct {
	Tier string `json:"tier"`
}

// RefuseBooster walks away from the doping offer.
type RefuseBooster struct{}

// RushBack returns early from an injury.
type RushBack struct{}

// SitOut takes the injury layoff in full.
type SitOut struct{}

// Retire ends the career voluntarily.
type Retire struct{}

func (ChooseOption) isAction()         {}
func (Acknowledge) isAction()          {}
func (SendApplication) isAction()      {}
func (ProposeExtension) isAction()     {}
func (RequestLoan) isAction()          {}
func (AcceptOffer) isAction()          {}
func (DeclineOffers) isAction()        {}
func (AcceptRenewal) isAction()        {}
func (DeclineRenewal) isAction()       {}
func (AcceptReleaseClause) isAction()  {}
func (DeclineReleaseClause) isAction() {}
func (AcceptFeedback) isAction()       {}
func (DismissFeedback) isAction()      {}
func (AcceptLoanSign) isAction()       {}
func (DeclineLoanSign) isAction()      {}
func (AcceptCup) isAction()            {}
func (DeclineCup) isAction()           {}
func (FakeSick) isAction()             {}
func (PickPenalty) isAction()          {}
func (TakeBooster) isAction()          {}
func (RefuseBooster) isAction()        {}
func (RushBack) isAction()             {}
func (SitOut) isAction()               {}
func (Retire) isAction()               {}
