package sim

import (
	"fmt"
	"math/rand"

	"doudizhu/internal/engine"
)

type ActionRecord struct {
	Game int
	Step int
	Seat int
	A    engine.Action
}

// RunSelfPlay drives complete games with a scripted chooser and checks
// state invariants after every action. goodHandProbability selects the
// dealing branch: 0 keeps every card physically unique, which enables
// the stricter duplicate checks.
func RunSelfPlay(seed int64, games int, maxStepsPerGame int, goodHandProbability float64) error {
	rules := engine.ClassicPreset()
	rules.GoodHandProbability = goodHandProbability
	rng := rand.New(rand.NewSource(seed))

	for game := 0; game < games; game++ {
		state := engine.NewGame(rules, seed+int64(game))
		engine.StartGame(&state)

		records := []ActionRecord{}
		bidRounds := 0
		for step := 0; ; step++ {
			if step >= maxStepsPerGame {
				return failure(seed, game, step, state.Phase, 0, records, "game did not terminate")
			}
			seat, ok := engine.CurrentSeat(state)
			if !ok {
				break // game over
			}

			action := chooseAction(rng, state, seat, &bidRounds)
			if err := engine.ApplyAction(&state, seat, action); err != nil {
				// A random single may fail to beat the standing play;
				// fall back to passing, as the bots do.
				if action.Type != engine.ActionPlay {
					return failure(seed, game, step, state.Phase, seat, records, fmt.Sprintf("apply error: %v", err))
				}
				action = engine.Action{Type: engine.ActionPass}
				if err := engine.ApplyAction(&state, seat, action); err != nil {
					return failure(seed, game, step, state.Phase, seat, records, fmt.Sprintf("pass fallback error: %v", err))
				}
			}
			records = append(records, ActionRecord{Game: game, Step: step, Seat: seat, A: action})

			if err := checkInvariants(state, goodHandProbability == 0); err != nil {
				return failure(seed, game, step, state.Phase, seat, records, err.Error())
			}
		}

		res, done := engine.CheckWinner(state)
		if !done {
			return failure(seed, game, len(records), state.Phase, 0, records, "terminal state without winner")
		}
		if res.IsLandlordWin != (res.Winner == state.Landlord) {
			return failure(seed, game, len(records), state.Phase, 0, records, "landlord-win flag inconsistent")
		}
	}
	return nil
}

// chooseAction keeps games finite: declined bids are capped at three
// full table rotations, and a seat whose own play is standing (or with
// no play standing at all) always leads its lowest single.
func chooseAction(rng *rand.Rand, state engine.GameState, seat int, bidRounds *int) engine.Action {
	switch state.Phase {
	case engine.PhaseBidding:
		*bidRounds++
		if *bidRounds >= 9 || rng.Intn(3) == 0 {
			return engine.Action{Type: engine.ActionBid, Bid: true}
		}
		return engine.Action{Type: engine.ActionBid, Bid: false}
	case engine.PhasePlaying:
		hand := state.Seats[seat-1].Hand
		leading := state.LastHand == nil || state.LastPlayer == seat
		if leading {
			lowest := hand[0]
			for _, c := range hand[1:] {
				if c.Value < lowest.Value {
					lowest = c
				}
			}
			return engine.Action{Type: engine.ActionPlay, Cards: []engine.Card{lowest}}
		}
		if rng.Intn(10) < 7 {
			c := hand[rng.Intn(len(hand))]
			return engine.Action{Type: engine.ActionPlay, Cards: []engine.Card{c}}
		}
		return engine.Action{Type: engine.ActionPass}
	default:
		return engine.Action{Type: engine.ActionPass}
	}
}

func checkInvariants(state engine.GameState, uniqueCards bool) error {
	total, dup := countCards(state)
	if total != engine.DeckSize {
		return fmt.Errorf("card count mismatch: %d", total)
	}
	if uniqueCards && dup {
		return fmt.Errorf("duplicate card detected in fair deal")
	}
	if state.CurrentPlayer < 1 || state.CurrentPlayer > state.Rules.Players {
		return fmt.Errorf("current player out of range: %d", state.CurrentPlayer)
	}
	switch state.Phase {
	case engine.PhaseBidding:
		if state.Landlord != 0 {
			return fmt.Errorf("landlord set while still bidding")
		}
		if len(state.Reserve) != state.Rules.ReserveSize {
			return fmt.Errorf("reserve consumed before a bid: %d", len(state.Reserve))
		}
	case engine.PhasePlaying, engine.PhaseGameOver:
		if state.Landlord == 0 {
			return fmt.Errorf("playing without a landlord")
		}
		if !state.Seats[state.Landlord-1].IsLandlord {
			return fmt.Errorf("landlord seat not flagged")
		}
	}
	if state.LastHand != nil && len(state.LastPlayedCards) == 0 {
		return fmt.Errorf("standing hand without standing cards")
	}
	return nil
}

// countCards sums every live pile: hands, the unclaimed reserve and
// the played log. The reserve is folded into the landlord's hand at
// bid time, so the grand total must always be the full deck.
func countCards(state engine.GameState) (int, bool) {
	seen := map[engine.Card]bool{}
	total := 0
	dup := false
	add := func(c engine.Card) {
		total++
		if seen[c] {
			dup = true
		}
		seen[c] = true
	}
	for _, s := range state.Seats {
		for _, c := range s.Hand {
			add(c)
		}
	}
	if state.Landlord == 0 {
		for _, c := range state.Reserve {
			add(c)
		}
	}
	for _, c := range state.PlayedCards {
		add(c)
	}
	return total, dup
}

func failure(seed int64, game int, step int, phase engine.Phase, seat int, records []ActionRecord, reason string) error {
	start := 0
	if len(records) > 20 {
		start = len(records) - 20
	}
	log := ""
	for _, r := range records[start:] {
		log += fmt.Sprintf("[g%d s%d seat%d] %v\n", r.Game, r.Step, r.Seat, r.A)
	}
	return fmt.Errorf("seed=%d game=%d step=%d phase=%v seat=%d reason=%s\nlast actions:\n%s",
		seed, game, step, phase, seat, reason, log)
}
