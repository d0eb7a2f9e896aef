package server

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"doudizhu/internal/engine"
)

func startedState(t *testing.T, seed int64) engine.GameState {
	t.Helper()
	rules := engine.ClassicPreset()
	rules.GoodHandProbability = 0
	g := engine.NewGame(rules, seed)
	engine.StartGame(&g)
	return g
}

func TestBuildGameViewHidesOtherHands(t *testing.T) {
	g := startedState(t, 7)

	view := BuildGameView(g, 1, "session-1")
	require.Len(t, view.Seats, 3)
	for _, seat := range view.Seats {
		assert.Equal(t, 17, seat.HandCount)
		if seat.ID == 1 {
			assert.Len(t, seat.Hand, 17)
		} else {
			assert.Empty(t, seat.Hand, "seat %d hand must stay hidden", seat.ID)
		}
	}
	assert.Equal(t, "session-1", view.SessionID)
	assert.Equal(t, 1, view.CurrentPlayer)
	assert.Nil(t, view.Winner)
}

func TestBuildGameViewReserveHiddenUntilClaimed(t *testing.T) {
	g := startedState(t, 7)

	view := BuildGameView(g, 1, "s")
	assert.Empty(t, view.Reserve)

	require.NoError(t, engine.BidLandlord(&g, 1, true))
	view = BuildGameView(g, 1, "s")
	assert.Len(t, view.Reserve, 3)
	assert.Equal(t, 1, view.Landlord)
	assert.True(t, view.Seats[0].IsLandlord)
	assert.Equal(t, 20, view.Seats[0].HandCount)
}

func TestBuildGameViewReportsWinner(t *testing.T) {
	g := startedState(t, 7)
	require.NoError(t, engine.BidLandlord(&g, 1, true))
	g.Seats[0].Hand = nil
	g.Phase = engine.PhaseGameOver

	view := BuildGameView(g, 1, "s")
	require.NotNil(t, view.Winner)
	assert.Equal(t, 1, view.Winner.Winner)
	assert.True(t, view.Winner.IsLandlordWin)
}

func TestRemainingByRankTracksPlayedLog(t *testing.T) {
	g := startedState(t, 7)

	counts := remainingByRank(g)
	assert.Equal(t, 4, counts["A"])
	assert.Equal(t, 1, counts["大王"])

	g.PlayedCards = []engine.Card{
		{Suit: engine.SuitSpades, Value: engine.ValueAce},
		{Suit: engine.SuitHearts, Value: engine.ValueAce},
		{Value: engine.ValueBigJoker},
	}
	counts = remainingByRank(g)
	assert.Equal(t, 2, counts["A"])
	assert.Equal(t, 0, counts["大王"])
}

func TestRemainingByRankClampsAtZero(t *testing.T) {
	g := startedState(t, 7)
	// A strengthened deal can put a fifth copy of a rank into play.
	g.PlayedCards = []engine.Card{
		{Suit: engine.SuitSpades, Value: engine.ValueKing},
		{Suit: engine.SuitHearts, Value: engine.ValueKing},
		{Suit: engine.SuitDiamonds, Value: engine.ValueKing},
		{Suit: engine.SuitClubs, Value: engine.ValueKing},
		{Suit: engine.SuitClubs, Value: engine.ValueKing},
	}
	counts := remainingByRank(g)
	assert.Equal(t, 0, counts["K"])
}

func TestBuildEventsForPlayedCards(t *testing.T) {
	g := startedState(t, 7)
	require.NoError(t, engine.BidLandlord(&g, 1, true))

	prev := g
	card := g.Seats[0].Hand[len(g.Seats[0].Hand)-1]
	require.NoError(t, engine.Play(&g, 1, []engine.Card{card}))

	events := buildEvents(prev, g, 1, engine.Action{
		Type:  engine.ActionPlay,
		Cards: []engine.Card{card},
	})
	require.Len(t, events, 1)
	assert.Equal(t, "cards_played", events[0].Type)
	payload := events[0].Data.(EventPayload)
	assert.Equal(t, 1, payload.Seat)
	assert.Equal(t, "单牌", payload.HandType)
	assert.Equal(t, []CardDTO{cardToDTO(card)}, payload.Cards)
}

func TestBuildEventsForLandlordAndGameOver(t *testing.T) {
	g := startedState(t, 7)

	prev := g
	require.NoError(t, engine.BidLandlord(&g, 1, true))
	events := buildEvents(prev, g, 1, engine.Action{Type: engine.ActionBid, Bid: true})
	require.Len(t, events, 1)
	assert.Equal(t, "landlord_set", events[0].Type)
	assert.Len(t, events[0].Data.(EventPayload).Cards, 3)

	g.Seats[0].Hand = g.Seats[0].Hand[:1]
	prev = g
	card := g.Seats[0].Hand[0]
	require.NoError(t, engine.Play(&g, 1, []engine.Card{card}))
	events = buildEvents(prev, g, 1, engine.Action{
		Type:  engine.ActionPlay,
		Cards: []engine.Card{card},
	})
	require.Len(t, events, 2)
	assert.Equal(t, "cards_played", events[0].Type)
	assert.Equal(t, "game_over", events[1].Type)
	payload := events[1].Data.(EventPayload)
	assert.Equal(t, 1, payload.Winner)
	assert.True(t, payload.Landlord)
}
