// Package gateway bridges websocket clients to their play sessions. One
// connection per user; every state transition the session emits is
// projected for that user's seat and pushed as JSON.
package gateway

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"seventeen-lite/internal/auth"
	"seventeen-lite/internal/codec"
	"seventeen-lite/internal/history"
	"seventeen-lite/internal/lobby"
	"seventeen-lite/internal/session"
	"seventeen-lite/seventeen"
)

// The human always plays seat 0.
const humanSeat = 0

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true // TODO: Restrict in production
	},
}

// Connection represents one websocket client.
type Connection struct {
	ID       string
	UserID   uint64
	Username string
	Conn     *websocket.Conn
	Send     chan []byte
	Gateway  *Gateway
	LastPing time.Time

	Session   *session.Session
	serverSeq uint64
}

// Gateway manages websocket connections.
type Gateway struct {
	mu          sync.RWMutex
	connections map[string]*Connection
	userConns   map[uint64]*Connection
	nextConnID  uint64

	auth    auth.Service
	lobby   *lobby.Lobby
	history history.Service
}

func New(authService auth.Service, lby *lobby.Lobby, historyService history.Service) *Gateway {
	return &Gateway{
		connections: make(map[string]*Connection),
		userConns:   make(map[uint64]*Connection),
		auth:        authService,
		lobby:       lby,
		history:     historyService,
	}
}

// HandleWebSocket upgrades the request and attaches the client to their
// session. Identity comes from the token query parameter; a missing or
// stale token mints a guest account.
func (g *Gateway) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[Gateway] Upgrade error: %v", err)
		return
	}

	token := r.URL.Query().Get("token")
	userID, sessionToken, reused := g.auth.ResolveOrCreateGuest(token)
	if userID == 0 {
		log.Printf("[Gateway] Guest resolution failed")
		_ = conn.Close()
		return
	}
	_, username, _ := g.auth.ResolveSession(sessionToken)

	g.mu.Lock()
	g.nextConnID++
	connID := fmt.Sprintf("conn_%d", g.nextConnID)

	// A reconnect replaces the previous connection for this user. Closing
	// the socket lets both pumps drain out on their own.
	if prev := g.userConns[userID]; prev != nil {
		delete(g.connections, prev.ID)
		_ = prev.Conn.Close()
	}

	c := &Connection{
		ID:       connID,
		UserID:   userID,
		Username: username,
		Conn:     conn,
		Send:     make(chan []byte, 256),
		Gateway:  g,
		LastPing: time.Now(),
	}
	g.connections[connID] = c
	g.userConns[userID] = c
	g.mu.Unlock()

	log.Printf("[Gateway] Client connected: %s (userID=%d reused=%v), total: %d",
		connID, userID, reused, len(g.connections))

	sess, err := g.lobby.QuickStart(userID, g.broadcastFor(userID), g.recordRoundHook(userID))
	if err != nil {
		log.Printf("[Gateway] QuickStart failed for user %d: %v", userID, err)
		_ = conn.Close()
		return
	}
	c.Session = sess

	go c.readPump()
	go c.writePump()

	c.sendWelcome(sessionToken)
	c.sendState(sess.State(), nil)
}

// broadcastFor adapts session broadcasts to this user's connection. The
// closure outlives individual connections so reconnects keep receiving.
func (g *Gateway) broadcastFor(userID uint64) session.BroadcastFunc {
	return func(state seventeen.GameState, events []seventeen.Event) {
		g.mu.RLock()
		c := g.userConns[userID]
		g.mu.RUnlock()
		if c != nil {
			c.sendState(state, events)
		}
	}
}

// recordRoundHook persists a finished round for this user.
func (g *Gateway) recordRoundHook(userID uint64) session.GameEndHook {
	return func(info session.GameEndInfo) {
		if g.history == nil {
			return
		}
		g.history.RecordRound(userID, roundFromState(info.SessionID, info.State))
	}
}

func roundFromState(sessionID string, state seventeen.GameState) history.Round {
	round := history.Round{
		SessionID:  sessionID,
		GameID:     state.GameID,
		PlayedAt:   time.Now().UTC(),
		Seats:      len(state.Players),
		WinnerSeat: state.Winner,
		Void:       state.Winner == seventeen.NoSeat,
		Log:        state.Log,
	}
	for _, p := range state.Players {
		round.Results = append(round.Results, history.SeatResult{
			Seat:   p.ID,
			Name:   p.Name,
			Human:  p.Human,
			Status: p.Status.String(),
			Total:  p.Total,
		})
		if p.ID == state.Winner {
			round.WinnerName = p.Name
			round.HumanWon = p.Human
		}
	}
	return round
}

func (c *Connection) readPump() {
	defer func() {
		c.Gateway.removeConnection(c)
		c.Conn.Close()
	}()

	c.Conn.SetReadLimit(65536)
	c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		c.LastPing = time.Now()
		return nil
	})

	for {
		messageType, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("[Gateway] Read error: %v", err)
			}
			break
		}

		if messageType == websocket.TextMessage {
			c.handleMessage(message)
		}
	}
}

func (c *Connection) handleMessage(data []byte) {
	var env codec.ClientEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		log.Printf("[Gateway] Failed to unmarshal: %v", err)
		c.sendError(1, "invalid message format")
		return
	}
	if c.Session == nil {
		c.sendError(2, "no session")
		return
	}

	log.Printf("[Gateway] Received from user %d: type=%s", c.UserID, env.Type)

	var err error
	switch env.Type {
	case codec.ClientTypeSetup:
		err = c.Session.Setup(env.Seats, env.CardBackStyle)
	case codec.ClientTypeDraw:
		err = c.Session.Draw()
	case codec.ClientTypeHold:
		err = c.Session.Hold()
	case codec.ClientTypePlayAgain:
		err = c.Session.PlayAgain()
	case codec.ClientTypeReturnToSetup:
		err = c.Session.ReturnToSetup()
	default:
		log.Printf("[Gateway] Unknown message type: %s", env.Type)
		c.sendError(3, fmt.Sprintf("unknown message type %q", env.Type))
		return
	}
	if err != nil {
		c.sendError(4, err.Error())
	}
}

func (c *Connection) sendWelcome(sessionToken string) {
	env := codec.NewServerEnvelope(codec.ServerTypeWelcome, c.sessionID(), atomic.AddUint64(&c.serverSeq, 1))
	env.Welcome = &codec.WelcomeWire{
		UserID:       c.UserID,
		Username:     c.Username,
		SessionToken: sessionToken,
	}
	c.enqueue(env)
}

func (c *Connection) sendState(state seventeen.GameState, events []seventeen.Event) {
	env := codec.NewServerEnvelope(codec.ServerTypeState, c.sessionID(), atomic.AddUint64(&c.serverSeq, 1))
	env.State = codec.StateToWire(state, humanSeat)
	env.Events = codec.EventsToWire(events)
	c.enqueue(env)
}

func (c *Connection) sendError(code int32, msg string) {
	env := codec.NewServerEnvelope(codec.ServerTypeError, c.sessionID(), atomic.AddUint64(&c.serverSeq, 1))
	env.Error = &codec.ErrorWire{Code: code, Message: msg}
	c.enqueue(env)
}

func (c *Connection) sessionID() string {
	if c.Session == nil {
		return ""
	}
	return c.Session.ID
}

func (c *Connection) enqueue(env codec.ServerEnvelope) {
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("[Gateway] Marshal error: %v", err)
		return
	}
	select {
	case c.Send <- data:
	default:
		// Drop if buffer full
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(30 * time.Second)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (g *Gateway) removeConnection(c *Connection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.connections, c.ID)
	if g.userConns[c.UserID] == c {
		delete(g.userConns, c.UserID)
	}
	log.Printf("[Gateway] Client disconnected: %s, total: %d", c.ID, len(g.connections))
}
