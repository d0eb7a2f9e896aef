package engine

import (
	"math/rand"
	"sort"
)

// DealResult partitions one shuffled deck into the three seat hands and
// the reserve awarded to whichever seat wins the bid.
type DealResult struct {
	Hands   [3][]Card
	Reserve []Card
}

// DealCards builds and shuffles a deck, then deals it out. With
// probability goodHandProbability (clamped to [0,1]) seat 1 receives a
// strengthened hand; otherwise the deal is a plain round-robin.
func DealCards(rng *rand.Rand, r Rules, goodHandProbability float64) DealResult {
	prob := goodHandProbability
	if prob < 0 {
		prob = 0
	}
	if prob > 1 {
		prob = 1
	}

	deck := BuildDeck()
	Shuffle(deck, rng)

	var res DealResult
	if rng.Float64() < prob {
		dealBiased(rng, r, deck, &res)
	} else {
		dealFair(deck, &res)
	}
	res.Reserve = append([]Card(nil), deck[DeckSize-3:]...)

	for i := range res.Hands {
		SortDescending(res.Hands[i])
	}
	SortDescending(res.Reserve)
	return res
}

// dealFair walks indices 0..50 round-robin across the three seats.
func dealFair(deck []Card, res *DealResult) {
	for i := 0; i < DeckSize-3; i++ {
		seat := i % 3
		res.Hands[seat] = append(res.Hands[seat], deck[i])
	}
}

// dealBiased gives seat 1 the first 17 cards, strengthened, and
// alternates the rest between seats 2 and 3.
func dealBiased(rng *rand.Rand, r Rules, deck []Card, res *DealResult) {
	hand := append([]Card(nil), deck[:r.HandSize]...)
	res.Hands[0] = enhanceHand(rng, r, hand)
	for i := r.HandSize; i < DeckSize-3; i++ {
		if (i-r.HandSize)%2 == 0 {
			res.Hands[1] = append(res.Hands[1], deck[i])
		} else {
			res.Hands[2] = append(res.Hands[2], deck[i])
		}
	}
}

// enhanceHand rewrites low cards as high ones. Each card below the
// threshold is independently replaced, keeping its suit, with a value
// drawn uniformly from K/A/2/small joker/big joker. This deliberately
// allows duplicate (suit, rank) pairs inside the strengthened hand:
// only the logical rank changes, never which physical slot went to
// another seat.
func enhanceHand(rng *rand.Rand, r Rules, hand []Card) []Card {
	for i := range hand {
		if hand[i].Value >= r.EnhanceThreshold {
			continue
		}
		if rng.Float64() < r.EnhanceChance {
			hand[i] = Card{
				Suit:  hand[i].Suit,
				Value: ValueKing + rng.Intn(ValueBigJoker-ValueKing+1),
			}
		}
	}
	return hand
}

// SortDescending orders cards highest value first; equal values keep
// their deal order.
func SortDescending(cards []Card) {
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Value > cards[j].Value
	})
}

// StartGame resets all per-game state, deals a fresh deck and opens the
// bidding with seat 1. The deal is deterministic given the game seed.
func StartGame(g *GameState) {
	g.ResetGame()

	rng := rand.New(rand.NewSource(g.Seed))
	res := DealCards(rng, g.Rules, g.Rules.GoodHandProbability)
	for i := range g.Seats {
		g.Seats[i].Hand = res.Hands[i]
	}
	g.Reserve = res.Reserve

	g.Phase = PhaseBidding
	g.CurrentPlayer = 1
}
