package engine

import (
	"fmt"
	"strconv"
)

type Suit int

const (
	SuitNone Suit = iota
	SuitSpades
	SuitHearts
	SuitDiamonds
	SuitClubs
)

func (s Suit) String() string {
	switch s {
	case SuitSpades:
		return "♠"
	case SuitHearts:
		return "♥"
	case SuitDiamonds:
		return "♦"
	case SuitClubs:
		return "♣"
	default:
		return ""
	}
}

// Card values run 3..17: ranks 3..10 map to their face value, then
// J=11, Q=12, K=13, A=14, 2=15, small joker=16, big joker=17.
const (
	ValueJack       = 11
	ValueQueen      = 12
	ValueKing       = 13
	ValueAce        = 14
	ValueTwo        = 15
	ValueSmallJoker = 16
	ValueBigJoker   = 17

	MinValue = 3
	MaxValue = ValueBigJoker
)

type Card struct {
	Suit  Suit
	Value int
}

// Rank returns the display label for the card's value.
func (c Card) Rank() string {
	switch c.Value {
	case ValueJack:
		return "J"
	case ValueQueen:
		return "Q"
	case ValueKing:
		return "K"
	case ValueAce:
		return "A"
	case ValueTwo:
		return "2"
	case ValueSmallJoker:
		return "小王"
	case ValueBigJoker:
		return "大王"
	default:
		return strconv.Itoa(c.Value)
	}
}

func (c Card) IsJoker() bool {
	return c.Value == ValueSmallJoker || c.Value == ValueBigJoker
}

func (c Card) String() string {
	return fmt.Sprintf("%s%s", c.Suit.String(), c.Rank())
}

type Phase int

const (
	PhaseDealing Phase = iota
	PhaseBidding
	PhasePlaying
	PhaseGameOver
)

func (p Phase) String() string {
	switch p {
	case PhaseDealing:
		return "Dealing"
	case PhaseBidding:
		return "Bidding"
	case PhasePlaying:
		return "Playing"
	case PhaseGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

type Rules struct {
	Players             int
	HandSize            int
	ReserveSize         int
	GoodHandProbability float64
	EnhanceChance       float64
	EnhanceThreshold    int
}

func ClassicPreset() Rules {
	return Rules{
		Players:             3,
		HandSize:            17,
		ReserveSize:         3,
		GoodHandProbability: 0.5,
		EnhanceChance:       0.8,
		EnhanceThreshold:    ValueKing,
	}
}

type SeatState struct {
	ID         int
	Hand       []Card
	IsLandlord bool
}

type GameState struct {
	Rules Rules
	Seed  int64
	Phase Phase

	Seats   []SeatState
	Reserve []Card

	CurrentPlayer int
	Landlord      int // 0 until a seat wins the bid

	LastHand        *Hand
	LastPlayer      int
	LastPlayedCards []Card

	// PlayedCards accumulates every accepted play for the card-memory
	// display; it is never truncated during a game.
	PlayedCards []Card
}

func NewGame(r Rules, seed int64) GameState {
	seats := make([]SeatState, r.Players)
	for i := 0; i < r.Players; i++ {
		seats[i] = SeatState{ID: i + 1}
	}

	return GameState{
		Rules:         r,
		Seed:          seed,
		Phase:         PhaseDealing,
		Seats:         seats,
		CurrentPlayer: 1,
	}
}

// Seat returns the state for seat id 1..Players.
func (g *GameState) Seat(id int) *SeatState {
	return &g.Seats[id-1]
}

func (g *GameState) ResetGame() {
	for i := range g.Seats {
		g.Seats[i].Hand = nil
		g.Seats[i].IsLandlord = false
	}
	g.Reserve = nil
	g.Phase = PhaseDealing
	g.CurrentPlayer = 1
	g.Landlord = 0
	g.LastHand = nil
	g.LastPlayer = 0
	g.LastPlayedCards = nil
	g.PlayedCards = nil
}
