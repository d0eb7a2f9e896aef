package server

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"doudizhu/internal/engine"
)

func newTestSession(t *testing.T) *Session {
	t.Helper()
	rules := engine.ClassicPreset()
	rules.GoodHandProbability = 0
	// No socket attached: outbound messages are dropped, which is all
	// these state transition tests need.
	return NewSession(zap.NewNop(), rules)
}

func TestSessionStartGame(t *testing.T) {
	s := newTestSession(t)
	require.False(t, s.started)

	s.handleMessage(ClientMessage{Type: "start_game"})

	require.True(t, s.started)
	assert.Equal(t, engine.PhaseBidding, s.state.Phase)
	assert.Equal(t, humanSeat, s.state.CurrentPlayer)
	for seat := 1; seat <= 3; seat++ {
		assert.Len(t, s.state.Seat(seat).Hand, 17)
	}
	assert.Len(t, s.botPlayers, 2)
	assert.NotContains(t, s.botPlayers, humanSeat)
}

func TestSessionStartGameProbabilityOverride(t *testing.T) {
	s := newTestSession(t)
	prob := 1.0
	s.handleMessage(ClientMessage{Type: "start_game", Probability: &prob})

	require.True(t, s.started)
	assert.Equal(t, 1.0, s.state.Rules.GoodHandProbability)
}

func TestSessionActionRequiresStart(t *testing.T) {
	s := newTestSession(t)
	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a1",
		Action:   &ActionDTO{Type: "bid", Bid: true},
	})
	assert.False(t, s.started)
	assert.False(t, s.actionIds["a1"])
}

func TestSessionHumanBidBecomesLandlord(t *testing.T) {
	s := newTestSession(t)
	s.handleMessage(ClientMessage{Type: "start_game"})
	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a1",
		Action:   &ActionDTO{Type: "bid", Bid: true},
	})

	assert.Equal(t, engine.PhasePlaying, s.state.Phase)
	assert.Equal(t, humanSeat, s.state.Landlord)
	assert.Len(t, s.state.Seat(humanSeat).Hand, 20)
	// Winning the bid keeps the turn, so the bots must not have moved.
	assert.Equal(t, humanSeat, s.state.CurrentPlayer)
	assert.Empty(t, s.state.PlayedCards)
}

func TestSessionDuplicateActionIdIgnored(t *testing.T) {
	s := newTestSession(t)
	s.handleMessage(ClientMessage{Type: "start_game"})
	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a1",
		Action:   &ActionDTO{Type: "bid", Bid: true},
	})
	require.Equal(t, engine.PhasePlaying, s.state.Phase)
	handBefore := append([]engine.Card(nil), s.state.Seat(humanSeat).Hand...)

	// A retry of the same actionId must not re-apply, even with a
	// different payload.
	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a1",
		Action:   &ActionDTO{Type: "play", Cards: []CardDTO{cardToDTO(handBefore[0])}},
	})
	assert.Equal(t, handBefore, s.state.Seat(humanSeat).Hand)
	assert.Empty(t, s.state.PlayedCards)
}

func TestSessionRejectedPlayLeavesStateUntouched(t *testing.T) {
	s := newTestSession(t)
	s.handleMessage(ClientMessage{Type: "start_game"})
	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a1",
		Action:   &ActionDTO{Type: "bid", Bid: true},
	})
	handBefore := append([]engine.Card(nil), s.state.Seat(humanSeat).Hand...)

	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a2",
		Action:   &ActionDTO{Type: "play", Cards: []CardDTO{{Suit: "♠", Rank: "11"}}},
	})
	assert.Equal(t, handBefore, s.state.Seat(humanSeat).Hand)
	assert.Equal(t, humanSeat, s.state.CurrentPlayer)
}

func TestSessionConcurrentMessagesSerialized(t *testing.T) {
	// Two readers can exist briefly during a connection takeover;
	// every outbound write, error replies included, must go through
	// the session mutex. Run with -race.
	s := newTestSession(t)
	s.handleMessage(ClientMessage{Type: "start_game"})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				switch i % 3 {
				case 0:
					s.handleMessage(ClientMessage{Type: "request_state"})
				case 1:
					s.handleMessage(ClientMessage{Type: "no_such_type"})
				default:
					s.handleMessage(ClientMessage{
						Type:     "player_action",
						ActionId: fmt.Sprintf("g%d-%d", i, j),
						Action:   &ActionDTO{Type: "pass"},
					})
				}
			}
		}()
	}
	wg.Wait()

	require.True(t, s.started)
}

func TestSessionHumanPlayTriggersBots(t *testing.T) {
	s := newTestSession(t)
	s.handleMessage(ClientMessage{Type: "start_game"})
	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a1",
		Action:   &ActionDTO{Type: "bid", Bid: true},
	})

	hand := s.state.Seat(humanSeat).Hand
	lowest := hand[len(hand)-1]
	s.handleMessage(ClientMessage{
		Type:     "player_action",
		ActionId: "a2",
		Action:   &ActionDTO{Type: "play", Cards: []CardDTO{cardToDTO(lowest)}},
	})

	// Both bot seats act before control returns, so the turn is back on
	// the human (or the game ended).
	if s.state.Phase == engine.PhasePlaying {
		assert.Equal(t, humanSeat, s.state.CurrentPlayer)
	}
	assert.NotEmpty(t, s.state.PlayedCards)
}
