package server

import "doudizhu/internal/engine"

type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

type EventPayload struct {
	Seat     int       `json:"seat,omitempty"`
	Bid      bool      `json:"bid,omitempty"`
	HandType string    `json:"handType,omitempty"`
	Cards    []CardDTO `json:"cards,omitempty"`
	Winner   int       `json:"winner,omitempty"`
	Landlord bool      `json:"landlord,omitempty"`
}

// buildEvents derives UI cues (animations, sounds) from one applied
// action and the state transition around it.
func buildEvents(prev engine.GameState, next engine.GameState, seat int, action engine.Action) []Event {
	events := []Event{}
	switch action.Type {
	case engine.ActionBid:
		if action.Bid {
			events = append(events, Event{Type: "landlord_set", Data: EventPayload{
				Seat:  seat,
				Bid:   true,
				Cards: cardsToDTO(next.Reserve),
			}})
		} else {
			events = append(events, Event{Type: "bid_passed", Data: EventPayload{Seat: seat}})
		}
	case engine.ActionPlay:
		payload := EventPayload{Seat: seat, Cards: cardsToDTO(action.Cards)}
		if next.LastHand != nil {
			payload.HandType = next.LastHand.Type.String()
		}
		events = append(events, Event{Type: "cards_played", Data: payload})
	case engine.ActionPass:
		events = append(events, Event{Type: "turn_passed", Data: EventPayload{Seat: seat}})
	}

	if prev.Phase != engine.PhaseGameOver && next.Phase == engine.PhaseGameOver {
		if res, done := engine.CheckWinner(next); done {
			events = append(events, Event{Type: "game_over", Data: EventPayload{
				Winner:   res.Winner,
				Landlord: res.IsLandlordWin,
			}})
		}
	}
	return events
}
