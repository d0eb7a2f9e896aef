package bots

import (
	"math/rand"

	"doudizhu/internal/engine"
)

// Bot picks an action for a seat; the session layer applies it and
// handles any rejection by passing on the bot's behalf.
type Bot interface {
	ChooseAction(state engine.GameState, seat int) engine.Action
}

// RandomBot plays on pure chance: a coin-flip bid, then
// 70% of the time a uniformly random single card, passing whenever the
// card would not beat the standing play.
type RandomBot struct {
	RNG *rand.Rand
}

func NewRandom(seed int64) *RandomBot {
	return &RandomBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *RandomBot) ChooseAction(state engine.GameState, seat int) engine.Action {
	switch state.Phase {
	case engine.PhaseBidding:
		return engine.Action{Type: engine.ActionBid, Bid: b.RNG.Intn(2) == 0}
	case engine.PhasePlaying:
		hand := state.Seats[seat-1].Hand
		if len(hand) > 0 && b.RNG.Float64() < 0.7 {
			c := hand[b.RNG.Intn(len(hand))]
			if singleBeatsStanding(state, seat, c) {
				return engine.Action{Type: engine.ActionPlay, Cards: []engine.Card{c}}
			}
		}
		return engine.Action{Type: engine.ActionPass}
	default:
		return engine.Action{Type: engine.ActionPass}
	}
}

// GreedyBot bids on high-card density and sheds the cheapest playable
// single.
type GreedyBot struct {
	RNG *rand.Rand
}

func NewGreedy(seed int64) *GreedyBot {
	return &GreedyBot{RNG: rand.New(rand.NewSource(seed))}
}

func (b *GreedyBot) ChooseAction(state engine.GameState, seat int) engine.Action {
	switch state.Phase {
	case engine.PhaseBidding:
		high := 0
		for _, c := range state.Seats[seat-1].Hand {
			if c.Value >= engine.ValueAce {
				high++
			}
		}
		return engine.Action{Type: engine.ActionBid, Bid: high >= 5}
	case engine.PhasePlaying:
		if c, ok := LowestPlayableSingle(state, seat); ok {
			return engine.Action{Type: engine.ActionPlay, Cards: []engine.Card{c}}
		}
		return engine.Action{Type: engine.ActionPass}
	default:
		return engine.Action{Type: engine.ActionPass}
	}
}

// LowestPlayableSingle finds the weakest single card the seat could
// legally play right now. It doubles as the hint helper for the UI.
func LowestPlayableSingle(state engine.GameState, seat int) (engine.Card, bool) {
	hand := state.Seats[seat-1].Hand
	if len(hand) == 0 {
		return engine.Card{}, false
	}

	found := false
	var best engine.Card
	for _, c := range hand {
		if !singleBeatsStanding(state, seat, c) {
			continue
		}
		if !found || c.Value < best.Value {
			best = c
			found = true
		}
	}
	return best, found
}

// singleBeatsStanding reports whether playing card alone would be
// accepted: a seat leading (no standing play, or its own) may play any
// single, otherwise the single must strictly outrank the standing
// hand.
func singleBeatsStanding(state engine.GameState, seat int, card engine.Card) bool {
	if state.LastHand == nil || state.LastPlayer == seat {
		return true
	}
	h := engine.Classify([]engine.Card{card})
	cmp, ok := engine.Compare(h, *state.LastHand)
	return ok && cmp > 0
}
