package bot

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"seventeen-lite/seventeen"
)

// Instance represents an active bot occupying a seat for one session.
type Instance struct {
	Seat       int
	Persona    Persona
	Brain      Decider
	ThinkDelay time.Duration
}

// Manager owns bot lifecycle and decision-making for one session.
type Manager struct {
	mu        sync.RWMutex
	instances map[int]*Instance
	rng       *rand.Rand
}

func NewManager(seed int64) *Manager {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Manager{
		instances: make(map[int]*Instance),
		rng:       rand.New(rand.NewSource(seed)),
	}
}

// SpawnForRound (re)creates one bot per non-human seat of a fresh round.
// Each brain gets its own seed so replays of a session stay independent.
func (m *Manager) SpawnForRound(state seventeen.GameState) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.instances = make(map[int]*Instance, len(state.Players))
	for _, p := range state.Players {
		if p.Human {
			continue
		}
		persona := Persona{Name: p.Name}
		if idx := p.ID - 1; idx >= 0 && idx < len(DefaultPersonas) && DefaultPersonas[idx].Name == p.Name {
			persona = DefaultPersonas[idx]
		}

		// Think pacing around one second with jitter so consecutive bot
		// turns don't fire in lockstep.
		thinkDelay := time.Duration(800+m.rng.Intn(500)) * time.Millisecond

		m.instances[p.ID] = &Instance{
			Seat:       p.ID,
			Persona:    persona,
			Brain:      NewThresholdBrain(persona.Name, m.rng.Int63()),
			ThinkDelay: thinkDelay,
		}
	}
}

// OnTurn asks the seated bot for its decision on the current state.
func (m *Manager) OnTurn(state seventeen.GameState) Action {
	seat := state.CurrentPlayerIndex
	m.mu.RLock()
	inst := m.instances[seat]
	m.mu.RUnlock()

	if inst == nil {
		log.Printf("[Bot] OnTurn called for unmanaged seat %d", seat)
		m.mu.Lock()
		inst = &Instance{
			Seat:       seat,
			Brain:      NewThresholdBrain("fallback", m.rng.Int63()),
			ThinkDelay: time.Second,
		}
		m.instances[seat] = inst
		m.mu.Unlock()
	}

	view := BuildView(state, seat)
	decision := inst.Brain.Decide(view)
	log.Printf("[Bot] %s (seat %d, total %d) decides: %v", inst.Brain.Name(), seat, view.Total, decision)
	return decision
}

// ThinkDelay returns the simulated thinking delay for a seat.
func (m *Manager) ThinkDelay(seat int) time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if inst := m.instances[seat]; inst != nil {
		return inst.ThinkDelay
	}
	return time.Second
}
