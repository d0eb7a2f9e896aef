package engine

import "errors"

type ActionType int

const (
	ActionBid ActionType = iota
	ActionPlay
	ActionPass
)

type Action struct {
	Type  ActionType
	Bid   bool
	Cards []Card
}

// Result reports the finished game: the seat that emptied its hand and
// whether that seat held the landlord role.
type Result struct {
	Winner        int
	IsLandlordWin bool
}

// ApplyAction dispatches an action for seat against the current phase.
func ApplyAction(g *GameState, seat int, a Action) error {
	switch a.Type {
	case ActionBid:
		return BidLandlord(g, seat, a.Bid)
	case ActionPlay:
		return Play(g, seat, a.Cards)
	case ActionPass:
		return Pass(g, seat)
	default:
		return errors.New("unknown action type")
	}
}

// CurrentSeat returns the seat expected to act, if any.
func CurrentSeat(g GameState) (int, bool) {
	switch g.Phase {
	case PhaseBidding, PhasePlaying:
		return g.CurrentPlayer, true
	default:
		return 0, false
	}
}

// BidLandlord resolves seat's bid. Accepting makes the seat landlord,
// hands it the reserve and opens play with the same seat leading; a
// declined bid rotates the turn and stays in bidding. The engine does
// not cap repeated declines; breaking an all-pass cycle is the
// caller's job.
func BidLandlord(g *GameState, seat int, bid bool) error {
	if g.Phase != PhaseBidding {
		return errors.New("not in bidding phase")
	}
	if seat != g.CurrentPlayer {
		return errors.New("not your turn")
	}

	if !bid {
		advanceTurn(g)
		return nil
	}

	s := g.Seat(seat)
	g.Landlord = seat
	s.IsLandlord = true
	s.Hand = append(s.Hand, g.Reserve...)
	SortDescending(s.Hand)
	g.Phase = PhasePlaying
	return nil
}

// Play validates and applies a card set for seat. The cards must all be
// held by the seat, must classify as a legal combination, and — when a
// prior unanswered play by another seat stands — must strictly outrank
// it. Hands of unrelated types never beat each other unless the new
// hand is a rocket. Any rejection leaves the state untouched.
func Play(g *GameState, seat int, cards []Card) error {
	if g.Phase != PhasePlaying {
		return errors.New("not in playing phase")
	}
	if seat != g.CurrentPlayer {
		return errors.New("not your turn")
	}
	if len(cards) == 0 {
		return errors.New("no cards selected")
	}

	s := g.Seat(seat)
	remaining, ok := removeCards(s.Hand, cards)
	if !ok {
		return errors.New("card not in hand")
	}

	hand := Classify(cards)
	if !hand.Valid() {
		return errors.New("not a legal combination")
	}

	if g.LastHand != nil && seat != g.LastPlayer {
		cmp, related := Compare(hand, *g.LastHand)
		if !related || cmp <= 0 {
			return errors.New("does not beat the last play")
		}
	}

	s.Hand = remaining
	g.PlayedCards = append(g.PlayedCards, cards...)
	g.LastHand = &hand
	g.LastPlayer = seat
	g.LastPlayedCards = append([]Card(nil), cards...)

	if len(s.Hand) == 0 {
		g.Phase = PhaseGameOver
		return nil
	}
	advanceTurn(g)
	return nil
}

// Pass rotates the turn without touching the standing play: the next
// seat must still beat the last successful play, not the pass.
func Pass(g *GameState, seat int) error {
	if g.Phase != PhasePlaying {
		return errors.New("not in playing phase")
	}
	if seat != g.CurrentPlayer {
		return errors.New("not your turn")
	}
	advanceTurn(g)
	return nil
}

// CheckWinner reports the game result once any seat has emptied its
// hand.
func CheckWinner(g GameState) (Result, bool) {
	for _, s := range g.Seats {
		if len(s.Hand) == 0 {
			return Result{Winner: s.ID, IsLandlordWin: s.IsLandlord}, true
		}
	}
	return Result{}, false
}

func advanceTurn(g *GameState) {
	g.CurrentPlayer = g.CurrentPlayer%g.Rules.Players + 1
}

// removeCards takes one matching card, by suit and rank identity, out
// of hand for every selected card. Duplicate (suit, rank) pairs — which
// a strengthened hand can legitimately hold — are consumed one per
// selection. ok is false if any selected card is not present.
func removeCards(hand []Card, selected []Card) ([]Card, bool) {
	remaining := append([]Card(nil), hand...)
	for _, want := range selected {
		found := false
		for i, c := range remaining {
			if c == want {
				remaining = append(remaining[:i], remaining[i+1:]...)
				found = true
				break
			}
		}
		if !found {
			return nil, false
		}
	}
	return remaining, true
}
