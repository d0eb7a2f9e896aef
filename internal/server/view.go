package server

import "doudizhu/internal/engine"

type SeatView struct {
	ID         int       `json:"id"`
	Hand       []CardDTO `json:"hand,omitempty"`
	HandCount  int       `json:"handCount"`
	IsLandlord bool      `json:"isLandlord"`
}

type HandView struct {
	Type     string `json:"type"`
	Strength int    `json:"strength"`
}

type ResultView struct {
	Winner        int  `json:"winner"`
	IsLandlordWin bool `json:"isLandlordWin"`
}

type GameView struct {
	SessionID       string         `json:"sessionId"`
	Phase           string         `json:"phase"`
	Seats           []SeatView     `json:"seats"`
	Reserve         []CardDTO      `json:"reserve"`
	CurrentPlayer   int            `json:"currentPlayer"`
	Landlord        int            `json:"landlord"`
	LastPlayer      int            `json:"lastPlayer"`
	LastHand        *HandView      `json:"lastHand,omitempty"`
	LastPlayedCards []CardDTO      `json:"lastPlayedCards"`
	PlayedCards     []CardDTO      `json:"playedCards"`
	RemainingByRank map[string]int `json:"remainingByRank"`
	Winner          *ResultView    `json:"winner,omitempty"`
}

// BuildGameView renders the state for one viewer seat: only the
// viewer's own cards are face up, other seats expose counts.
func BuildGameView(g engine.GameState, viewer int, sessionID string) *GameView {
	seats := make([]SeatView, 0, len(g.Seats))
	for _, s := range g.Seats {
		view := SeatView{
			ID:         s.ID,
			HandCount:  len(s.Hand),
			IsLandlord: s.IsLandlord,
		}
		if s.ID == viewer {
			view.Hand = cardsToDTO(s.Hand)
		}
		seats = append(seats, view)
	}

	var lastHand *HandView
	if g.LastHand != nil {
		lastHand = &HandView{Type: g.LastHand.Type.String(), Strength: g.LastHand.Strength}
	}
	var winner *ResultView
	if res, done := engine.CheckWinner(g); done {
		winner = &ResultView{Winner: res.Winner, IsLandlordWin: res.IsLandlordWin}
	}

	// The reserve stays face down until a landlord claims it.
	var reserve []CardDTO
	if g.Landlord != 0 {
		reserve = cardsToDTO(g.Reserve)
	}

	return &GameView{
		SessionID:       sessionID,
		Phase:           g.Phase.String(),
		Seats:           seats,
		Reserve:         reserve,
		CurrentPlayer:   g.CurrentPlayer,
		Landlord:        g.Landlord,
		LastPlayer:      g.LastPlayer,
		LastHand:        lastHand,
		LastPlayedCards: cardsToDTO(g.LastPlayedCards),
		PlayedCards:     cardsToDTO(g.PlayedCards),
		RemainingByRank: remainingByRank(g),
		Winner:          winner,
	}
}

// remainingByRank backs the card-memory display: for every rank label,
// how many copies have not yet appeared in the played log. Counts are
// taken against a nominal full deck, so the strengthened deal's
// duplicate ranks can drive a count below zero; the display clamps at
// zero rather than pretending the deck was ordinary.
func remainingByRank(g engine.GameState) map[string]int {
	remaining := map[string]int{}
	for v := engine.MinValue; v <= engine.ValueTwo; v++ {
		remaining[(engine.Card{Value: v}).Rank()] = 4
	}
	remaining[(engine.Card{Value: engine.ValueSmallJoker}).Rank()] = 1
	remaining[(engine.Card{Value: engine.ValueBigJoker}).Rank()] = 1

	for _, c := range g.PlayedCards {
		label := c.Rank()
		if remaining[label] > 0 {
			remaining[label]--
		}
	}
	return remaining
}
