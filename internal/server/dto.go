package server

import (
	"errors"

	"doudizhu/internal/engine"
)

type CardDTO struct {
	Suit string `json:"suit"`
	Rank string `json:"rank"`
}

type ActionDTO struct {
	Type  string    `json:"type"`
	Bid   bool      `json:"bid,omitempty"`
	Cards []CardDTO `json:"cards,omitempty"`
}

func (a *ActionDTO) ToEngine() (engine.Action, error) {
	if a == nil {
		return engine.Action{}, errors.New("action missing")
	}
	switch a.Type {
	case "bid":
		return engine.Action{Type: engine.ActionBid, Bid: a.Bid}, nil
	case "play":
		if len(a.Cards) == 0 {
			return engine.Action{}, errors.New("play cards required")
		}
		cards := make([]engine.Card, 0, len(a.Cards))
		for _, c := range a.Cards {
			card, err := c.toEngine()
			if err != nil {
				return engine.Action{}, err
			}
			cards = append(cards, card)
		}
		return engine.Action{Type: engine.ActionPlay, Cards: cards}, nil
	case "pass":
		return engine.Action{Type: engine.ActionPass}, nil
	default:
		return engine.Action{}, errors.New("unknown action type")
	}
}

func (c CardDTO) toEngine() (engine.Card, error) {
	value, err := parseRank(c.Rank)
	if err != nil {
		return engine.Card{}, err
	}
	suit, err := parseSuit(c.Suit)
	if err != nil {
		return engine.Card{}, err
	}
	// No suit/rank cross-check: a strengthened hand can legitimately
	// hold suited cards carrying joker values.
	return engine.Card{Suit: suit, Value: value}, nil
}

func cardToDTO(c engine.Card) CardDTO {
	return CardDTO{Suit: c.Suit.String(), Rank: c.Rank()}
}

func cardsToDTO(cards []engine.Card) []CardDTO {
	out := make([]CardDTO, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardToDTO(c))
	}
	return out
}

func parseSuit(s string) (engine.Suit, error) {
	switch s {
	case "♠":
		return engine.SuitSpades, nil
	case "♥":
		return engine.SuitHearts, nil
	case "♦":
		return engine.SuitDiamonds, nil
	case "♣":
		return engine.SuitClubs, nil
	case "":
		return engine.SuitNone, nil
	default:
		return engine.SuitNone, errors.New("invalid suit")
	}
}

func parseRank(r string) (int, error) {
	switch r {
	case "3", "4", "5", "6", "7", "8", "9":
		return int(r[0] - '0'), nil
	case "10":
		return 10, nil
	case "J":
		return engine.ValueJack, nil
	case "Q":
		return engine.ValueQueen, nil
	case "K":
		return engine.ValueKing, nil
	case "A":
		return engine.ValueAce, nil
	case "2":
		return engine.ValueTwo, nil
	case "小王":
		return engine.ValueSmallJoker, nil
	case "大王":
		return engine.ValueBigJoker, nil
	default:
		return 0, errors.New("invalid rank")
	}
}
