package engine

import "math/rand"

// DeckSize is the full Dou Dizhu deck: 13 ranks x 4 suits plus two jokers.
const DeckSize = 54

// BuildDeck returns a fresh 54-card deck in enumeration order.
func BuildDeck() []Card {
	deck := make([]Card, 0, DeckSize)
	suits := []Suit{SuitSpades, SuitHearts, SuitDiamonds, SuitClubs}
	for _, s := range suits {
		for v := MinValue; v <= ValueTwo; v++ {
			deck = append(deck, Card{Suit: s, Value: v})
		}
	}
	deck = append(deck, Card{Suit: SuitNone, Value: ValueSmallJoker})
	deck = append(deck, Card{Suit: SuitNone, Value: ValueBigJoker})
	return deck
}

// Shuffle permutes the deck in place with a Fisher-Yates walk from the
// last index down, so every permutation is equally likely given an
// unbiased source.
func Shuffle(deck []Card, rng *rand.Rand) {
	for i := len(deck) - 1; i > 0; i-- {
		j := rng.Intn(i + 1)
		deck[i], deck[j] = deck[j], deck[i]
	}
}
