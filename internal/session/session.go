// Package session owns the authoritative GameState for one play session
// and serializes every transition through a single actor goroutine. The
// engine transitions stay pure; all timing (bot thinking, the reveal
// delay) lives here as deadlines checked from the actor tick, each keyed
// to the GameID it was armed for so a superseded round can never be
// touched by a stale timer.
package session

import (
	"errors"
	"fmt"
	"log"
	"math/rand"
	"sync"
	"time"

	"seventeen-lite/seventeen"
	"seventeen-lite/seventeen/bot"
)

var ErrSessionClosed = errors.New("session closed")

const (
	revealDelay  = 500 * time.Millisecond
	tickInterval = 50 * time.Millisecond
)

// CommandType enumerates the messages the actor accepts.
type CommandType int

const (
	CommandSetup CommandType = iota
	CommandDraw
	CommandHold
	CommandPlayAgain
	CommandReturnToSetup
	CommandClose
)

// Command is a message to the session actor.
type Command struct {
	Type          CommandType
	Seats         int
	CardBackStyle string
	Response      chan error
}

// GameEndInfo is emitted once a round's winner is committed.
type GameEndInfo struct {
	SessionID string
	State     seventeen.GameState
}

// GameEndHook is a post-commit callback (history persistence, stats).
type GameEndHook func(info GameEndInfo)

// BroadcastFunc receives every state transition along with the
// notification events it produced.
type BroadcastFunc func(state seventeen.GameState, events []seventeen.Event)

// Session is the game session controller.
type Session struct {
	ID string

	mu       sync.Mutex
	state    seventeen.GameState
	rng      *rand.Rand
	bots     *bot.Manager
	closed   bool
	stopOnce sync.Once

	// Monotonic freshness token; a new round always gets a new GameID.
	nextGameID uint64

	commands chan Command
	done     chan struct{}

	// Armed deadlines, checked from tick. Zero time = unarmed.
	botActAt     time.Time
	botActGameID uint64
	revealAt     time.Time
	revealGameID uint64

	broadcast    BroadcastFunc
	gameEndHooks []GameEndHook
}

// New creates a session and starts its actor goroutine. seed 0 selects a
// time-based seed.
func New(id string, seed int64, broadcastFn BroadcastFunc, hooks ...GameEndHook) *Session {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	s := &Session{
		ID:           id,
		rng:          rand.New(rand.NewSource(seed)),
		bots:         bot.NewManager(seed + 1),
		commands:     make(chan Command, 64),
		done:         make(chan struct{}),
		broadcast:    broadcastFn,
		gameEndHooks: hooks,
	}
	s.state = setupState()
	go s.run()
	return s
}

func setupState() seventeen.GameState {
	return seventeen.GameState{
		Phase:         seventeen.PhaseSetup,
		Winner:        seventeen.NoSeat,
		PendingWinner: seventeen.NoSeat,
	}
}

// Submit queues a command for the actor. The returned error only reports
// queueing failures; command errors travel over Command.Response.
func (s *Session) Submit(cmd Command) error {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return ErrSessionClosed
	}
	select {
	case s.commands <- cmd:
		return nil
	case <-s.done:
		return ErrSessionClosed
	}
}

// Setup starts a fresh round with the given seat count, blocking until the
// actor has applied it.
func (s *Session) Setup(seats int, cardBackStyle string) error {
	resp := make(chan error, 1)
	if err := s.Submit(Command{Type: CommandSetup, Seats: seats, CardBackStyle: cardBackStyle, Response: resp}); err != nil {
		return err
	}
	return <-resp
}

// Draw forwards the human draw intent.
func (s *Session) Draw() error { return s.Submit(Command{Type: CommandDraw}) }

// Hold forwards the human hold intent.
func (s *Session) Hold() error { return s.Submit(Command{Type: CommandHold}) }

// PlayAgain redeals with the same seat count and card back.
func (s *Session) PlayAgain() error { return s.Submit(Command{Type: CommandPlayAgain}) }

// ReturnToSetup abandons the current round.
func (s *Session) ReturnToSetup() error { return s.Submit(Command{Type: CommandReturnToSetup}) }

// State returns a deep copy of the current state.
func (s *Session) State() seventeen.GameState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Snapshot()
}

// Close stops the actor. Idempotent.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
}

func (s *Session) closeLocked() {
	s.stopOnce.Do(func() {
		s.closed = true
		close(s.done)
	})
}

func (s *Session) run() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case cmd := <-s.commands:
			err := s.handleCommand(cmd)
			if cmd.Response != nil {
				cmd.Response <- err
			}
		case <-ticker.C:
			s.tick()
		case <-s.done:
			log.Printf("[Session %s] Actor stopped", s.ID)
			return
		}
	}
}

func (s *Session) handleCommand(cmd Command) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed && cmd.Type != CommandClose {
		return ErrSessionClosed
	}

	switch cmd.Type {
	case CommandSetup:
		return s.startRoundLocked(cmd.Seats, cmd.CardBackStyle)
	case CommandDraw:
		s.handleHumanDrawLocked()
		return nil
	case CommandHold:
		s.handleHumanHoldLocked()
		return nil
	case CommandPlayAgain:
		if len(s.state.Players) == 0 {
			return fmt.Errorf("no previous round to replay")
		}
		return s.startRoundLocked(len(s.state.Players), s.state.CardBackStyle)
	case CommandReturnToSetup:
		s.clearTimersLocked()
		s.state = setupState()
		s.emitLocked(nil)
		return nil
	case CommandClose:
		s.closeLocked()
		return nil
	default:
		return fmt.Errorf("unknown command type: %d", cmd.Type)
	}
}

func (s *Session) startRoundLocked(seats int, cardBackStyle string) error {
	s.nextGameID++
	state, events, err := seventeen.NewRound(seventeen.Config{
		Seats:         seats,
		CardBackStyle: cardBackStyle,
	}, s.nextGameID, s.rng)
	if err != nil {
		return err
	}

	s.clearTimersLocked()
	s.state = state
	s.bots.SpawnForRound(state)
	log.Printf("[Session %s] Round %d started: %d seats, first seat %d",
		s.ID, state.GameID, seats, state.CurrentPlayerIndex)
	s.emitLocked(events)
	return nil
}

// handleHumanDrawLocked applies the human draw intent. The intent targets
// the seat on turn; it is silently dropped unless that seat is the human
// and still active.
func (s *Session) handleHumanDrawLocked() {
	cur, ok := s.state.CurrentPlayer()
	if s.state.Phase != seventeen.PhasePlaying || !ok || !cur.Human || cur.Status != seventeen.StatusActive {
		return
	}
	next, events := seventeen.ApplyDraw(s.state, s.state.CurrentPlayerIndex)
	s.state = next
	s.emitLocked(events)
}

func (s *Session) handleHumanHoldLocked() {
	cur, ok := s.state.CurrentPlayer()
	if s.state.Phase != seventeen.PhasePlaying || !ok || !cur.Human || cur.Status != seventeen.StatusActive {
		return
	}
	if cur.Total < seventeen.MinHoldTotal {
		s.state = s.state.WithLogLine("You must draw until you reach at least 11.")
		s.emitLocked(nil)
		return
	}
	next, events := seventeen.ApplyHold(s.state, s.state.CurrentPlayerIndex)
	s.state = next
	s.emitLocked(events)
}

// emitLocked broadcasts the transition and arms whatever follow-up the new
// state calls for: a bot think deadline, the reveal commit deadline, or
// the game-over hooks.
func (s *Session) emitLocked(events []seventeen.Event) {
	if s.broadcast != nil {
		s.broadcast(s.state.Snapshot(), events)
	}

	switch s.state.Phase {
	case seventeen.PhasePlaying:
		cur, ok := s.state.CurrentPlayer()
		if ok && !cur.Human && cur.Status == seventeen.StatusActive {
			s.botActAt = time.Now().Add(s.bots.ThinkDelay(s.state.CurrentPlayerIndex))
			s.botActGameID = s.state.GameID
		} else {
			s.botActAt = time.Time{}
		}
	case seventeen.PhaseRevealing:
		s.botActAt = time.Time{}
		s.revealAt = time.Now().Add(revealDelay)
		s.revealGameID = s.state.GameID
	case seventeen.PhaseGameOver:
		s.clearTimersLocked()
		s.dispatchGameEndHooksLocked()
	}
}

func (s *Session) clearTimersLocked() {
	s.botActAt = time.Time{}
	s.revealAt = time.Time{}
}

func (s *Session) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return
	}
	now := time.Now()

	if !s.botActAt.IsZero() && !now.Before(s.botActAt) {
		s.botActAt = time.Time{}
		s.runBotTurnLocked()
	}

	if !s.revealAt.IsZero() && !now.Before(s.revealAt) {
		s.revealAt = time.Time{}
		s.commitRevealLocked()
	}
}

func (s *Session) runBotTurnLocked() {
	// Freshness: the round this deadline was armed for must still be live.
	if s.state.GameID != s.botActGameID || s.state.Phase != seventeen.PhasePlaying {
		return
	}
	cur, ok := s.state.CurrentPlayer()
	if !ok || cur.Human || cur.Status != seventeen.StatusActive {
		return
	}

	seat := s.state.CurrentPlayerIndex
	action := s.bots.OnTurn(s.state)

	var next seventeen.GameState
	var events []seventeen.Event
	if action == bot.ActionDraw {
		next, events = seventeen.ApplyDraw(s.state, seat)
	} else {
		next, events = seventeen.ApplyHold(s.state, seat)
		if len(events) == 0 {
			// The hold guard absorbed the action; drawing is always legal
			// for an active seat and keeps the round moving.
			next, events = seventeen.ApplyDraw(s.state, seat)
		}
	}
	s.state = next
	s.emitLocked(events)
}

func (s *Session) commitRevealLocked() {
	if s.state.GameID != s.revealGameID || s.state.Phase != seventeen.PhaseRevealing {
		return
	}
	next, events := seventeen.CommitReveal(s.state)
	s.state = next
	s.emitLocked(events)
}

func (s *Session) dispatchGameEndHooksLocked() {
	if len(s.gameEndHooks) == 0 {
		return
	}
	info := GameEndInfo{
		SessionID: s.ID,
		State:     s.state.Snapshot(),
	}
	for _, hook := range s.gameEndHooks {
		if hook == nil {
			continue
		}
		go func(cb GameEndHook) {
			defer func() {
				if r := recover(); r != nil {
					log.Printf("[Session %s] game end hook panic: %v", s.ID, r)
				}
			}()
			cb(info)
		}(hook)
	}
}
