// Package codec projects engine state onto the JSON wire format consumed
// by renderers. Projection is per-viewer: a bot's face-down card never
// leaves the server before the reveal phase.
package codec

import (
	"strconv"
	"time"

	"seventeen-lite/card"
	"seventeen-lite/seventeen"
)

// Client -> server message types.
const (
	ClientTypeSetup         = "setup"
	ClientTypeDraw          = "draw"
	ClientTypeHold          = "hold"
	ClientTypePlayAgain     = "play_again"
	ClientTypeReturnToSetup = "return_to_setup"
)

// Server -> client message types.
const (
	ServerTypeWelcome = "welcome"
	ServerTypeState   = "state"
	ServerTypeError   = "error"
)

// ClientEnvelope is every message a client may send.
type ClientEnvelope struct {
	Type          string `json:"type"`
	Seats         int    `json:"seats,omitempty"`
	CardBackStyle string `json:"card_back_style,omitempty"`
}

// ServerEnvelope wraps every server push.
type ServerEnvelope struct {
	Type       string `json:"type"`
	SessionID  string `json:"session_id,omitempty"`
	ServerSeq  uint64 `json:"server_seq"`
	ServerTsMs int64  `json:"server_ts_ms"`

	Welcome *WelcomeWire   `json:"welcome,omitempty"`
	State   *GameStateWire `json:"state,omitempty"`
	Events  []string       `json:"events,omitempty"`
	Error   *ErrorWire     `json:"error,omitempty"`
}

type WelcomeWire struct {
	UserID       uint64 `json:"user_id"`
	Username     string `json:"username,omitempty"`
	SessionToken string `json:"session_token,omitempty"`
}

type ErrorWire struct {
	Code    int32  `json:"code"`
	Message string `json:"message"`
}

type CardWire struct {
	Suit  string `json:"suit"`
	Rank  string `json:"rank"`
	Value int    `json:"value"`
}

type PlayerWire struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Human  bool   `json:"human"`
	Status string `json:"status"`

	// Cards holds only what the viewer may see; HiddenCount covers the
	// rest of the hand.
	Cards       []CardWire `json:"cards"`
	HiddenCount int        `json:"hidden_count"`

	// Total is only present once the viewer is entitled to it (own seat,
	// or any seat after the reveal starts).
	Total        *int `json:"total,omitempty"`
	VisibleTotal int  `json:"visible_total"`
}

type GameStateWire struct {
	Phase              string       `json:"phase"`
	Players            []PlayerWire `json:"players"`
	DeckCount          int          `json:"deck_count"`
	CurrentPlayerIndex int          `json:"current_player_index"`
	Winner             int          `json:"winner"`
	PendingWinner      int          `json:"pending_winner"`
	GameID             uint64       `json:"game_id"`
	Log                []string     `json:"log"`
	CardBackStyle      string       `json:"card_back_style,omitempty"`
}

// NewServerEnvelope stamps the common fields.
func NewServerEnvelope(msgType, sessionID string, serverSeq uint64) ServerEnvelope {
	return ServerEnvelope{
		Type:       msgType,
		SessionID:  sessionID,
		ServerSeq:  serverSeq,
		ServerTsMs: time.Now().UnixMilli(),
	}
}

// StateToWire projects a snapshot for one viewer seat. The viewer sees
// their own hand in full; opposing hands expose only visible cards until
// the reveal phase flips everything face-up.
func StateToWire(state seventeen.GameState, viewerSeat int) *GameStateWire {
	revealed := state.Phase == seventeen.PhaseRevealing || state.Phase == seventeen.PhaseGameOver

	wire := &GameStateWire{
		Phase:              state.Phase.String(),
		DeckCount:          state.Deck.Count(),
		CurrentPlayerIndex: state.CurrentPlayerIndex,
		Winner:             state.Winner,
		PendingWinner:      state.PendingWinner,
		GameID:             state.GameID,
		Log:                state.Log,
		CardBackStyle:      state.CardBackStyle,
	}
	for _, p := range state.Players {
		wire.Players = append(wire.Players, playerToWire(p, p.ID == viewerSeat, revealed))
	}
	return wire
}

func playerToWire(p seventeen.Player, self, revealed bool) PlayerWire {
	out := PlayerWire{
		ID:           p.ID,
		Name:         p.Name,
		Human:        p.Human,
		Status:       p.Status.String(),
		Cards:        []CardWire{},
		VisibleTotal: p.ObservableTotal(),
	}

	if self || revealed {
		for _, c := range p.Hand {
			out.Cards = append(out.Cards, cardToWire(c))
		}
		total := p.Total
		out.Total = &total
		return out
	}

	for _, c := range p.Visible {
		out.Cards = append(out.Cards, cardToWire(c))
	}
	out.HiddenCount = len(p.Hidden)
	return out
}

func cardToWire(c card.Card) CardWire {
	return CardWire{
		Suit:  c.Suit().Name(),
		Rank:  rankName(c.Rank()),
		Value: c.GameValue(),
	}
}

func rankName(r byte) string {
	switch r {
	case 1:
		return "ace"
	case 11:
		return "jack"
	case 12:
		return "queen"
	case 13:
		return "king"
	default:
		return strconv.Itoa(int(r))
	}
}

// EventsToWire renders notification events for the envelope.
func EventsToWire(events []seventeen.Event) []string {
	if len(events) == 0 {
		return nil
	}
	out := make([]string, 0, len(events))
	for _, e := range events {
		out = append(out, e.String())
	}
	return out
}
