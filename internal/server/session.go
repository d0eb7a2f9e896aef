package server

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"doudizhu/internal/bots"
	"doudizhu/internal/engine"
)

// humanSeat is the single human player; the other two seats are bots.
const humanSeat = 1

type Session struct {
	mu         sync.Mutex
	id         string
	log        *zap.Logger
	rules      engine.Rules
	state      engine.GameState
	started    bool
	actionIds  map[string]bool
	conn       *websocket.Conn
	botPlayers map[int]bots.Bot
}

func NewSession(log *zap.Logger, rules engine.Rules) *Session {
	return &Session{
		id:         uuid.NewString(),
		log:        log,
		rules:      rules,
		actionIds:  map[string]bool{},
		botPlayers: map[int]bots.Bot{},
	}
}

type ClientMessage struct {
	Type        string     `json:"type"`
	ActionId    string     `json:"actionId,omitempty"`
	Action      *ActionDTO `json:"action,omitempty"`
	Probability *float64   `json:"probability,omitempty"`
}

type ServerMessage struct {
	Type   string     `json:"type"`
	State  *GameView  `json:"state,omitempty"`
	Events []Event    `json:"events,omitempty"`
	Hint   []CardDTO  `json:"hint,omitempty"`
	Error  *ErrorView `json:"error,omitempty"`
}

type ErrorView struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (s *Session) HandleConnection(conn *websocket.Conn) {
	s.mu.Lock()
	s.conn = conn
	s.mu.Unlock()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			s.log.Info("connection closed", zap.Error(err))
			return
		}
		var msg ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			s.sendError("bad_request", "invalid json")
			continue
		}
		s.handleMessage(msg)
	}
}

func (s *Session) handleMessage(msg ClientMessage) {
	switch msg.Type {
	case "join_session", "request_state":
		s.sendState(nil)
	case "start_game":
		s.startGame(msg.Probability)
	case "player_action":
		s.applyAction(msg.ActionId, msg.Action)
	case "hint":
		s.sendHint()
	default:
		s.sendError("unknown_type", "unknown message type")
	}
}

func (s *Session) startGame(probability *float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rules := s.rules
	if probability != nil {
		rules.GoodHandProbability = *probability
	}

	s.state = engine.NewGame(rules, time.Now().UnixNano())
	engine.StartGame(&s.state)
	s.started = true
	s.actionIds = map[string]bool{}
	s.botPlayers = map[int]bots.Bot{
		2: bots.NewRandom(s.state.Seed + 2),
		3: bots.NewRandom(s.state.Seed + 3),
	}
	s.log.Info("game started",
		zap.String("session", s.id),
		zap.Int64("seed", s.state.Seed),
		zap.Float64("goodHandProbability", rules.GoodHandProbability))

	s.sendStateLocked(nil)
	s.botAutoPlayLocked()
}

func (s *Session) applyAction(actionId string, dto *ActionDTO) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		s.sendErrorLocked("not_started", "game not started")
		return
	}
	if actionId == "" {
		s.sendErrorLocked("missing_action_id", "actionId required")
		return
	}
	if s.actionIds[actionId] {
		s.sendStateLocked(nil)
		return
	}
	s.actionIds[actionId] = true

	action, err := dto.ToEngine()
	if err != nil {
		s.sendErrorLocked("bad_action", err.Error())
		return
	}
	prev := s.state
	if err := engine.ApplyAction(&s.state, humanSeat, action); err != nil {
		s.sendErrorLocked("apply_failed", err.Error())
		return
	}
	s.sendStateLocked(buildEvents(prev, s.state, humanSeat, action))
	s.botAutoPlayLocked()
}

// botAutoPlayLocked lets the bot seats act until the turn returns to
// the human or the game ends. A bot play the engine rejects falls back
// to a pass, the same fallback the bots use in self-play.
func (s *Session) botAutoPlayLocked() {
	for {
		seat, ok := engine.CurrentSeat(s.state)
		if !ok || seat == humanSeat {
			return
		}
		bot, isBot := s.botPlayers[seat]
		if !isBot {
			return
		}

		prev := s.state
		action := bot.ChooseAction(s.state, seat)
		if err := engine.ApplyAction(&s.state, seat, action); err != nil {
			if action.Type != engine.ActionPlay {
				s.log.Error("bot action failed", zap.Int("seat", seat), zap.Error(err))
				return
			}
			action = engine.Action{Type: engine.ActionPass}
			if err := engine.ApplyAction(&s.state, seat, action); err != nil {
				s.log.Error("bot pass failed", zap.Int("seat", seat), zap.Error(err))
				return
			}
		}
		s.sendStateLocked(buildEvents(prev, s.state, seat, action))
	}
}

func (s *Session) sendHint() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started || s.state.Phase != engine.PhasePlaying || s.state.CurrentPlayer != humanSeat {
		s.sendErrorLocked("no_hint", "not your turn")
		return
	}
	msg := ServerMessage{Type: "hint"}
	if c, ok := bots.LowestPlayableSingle(s.state, humanSeat); ok {
		msg.Hint = []CardDTO{cardToDTO(c)}
	}
	s.writeLocked(msg)
}

func (s *Session) sendState(events []Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendStateLocked(events)
}

func (s *Session) sendStateLocked(events []Event) {
	if !s.started {
		s.state = engine.NewGame(s.rules, 0)
	}
	s.writeLocked(ServerMessage{
		Type:   "state",
		State:  BuildGameView(s.state, humanSeat, s.id),
		Events: events,
	})
}

func (s *Session) sendError(code, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sendErrorLocked(code, message)
}

func (s *Session) sendErrorLocked(code, message string) {
	s.writeLocked(ServerMessage{
		Type:  "error",
		Error: &ErrorView{Code: code, Message: message},
	})
}

func (s *Session) writeLocked(msg ServerMessage) {
	if s.conn == nil {
		return
	}
	if err := s.conn.WriteJSON(msg); err != nil {
		s.log.Warn("write failed", zap.Error(err))
	}
}
