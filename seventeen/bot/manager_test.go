package bot

import (
	"math/rand"
	"testing"
	"time"

	"seventeen-lite/seventeen"
)

func freshRound(t *testing.T, seats int) seventeen.GameState {
	t.Helper()
	rng := rand.New(rand.NewSource(5))
	state, _, err := seventeen.NewRound(seventeen.Config{Seats: seats}, 1, rng)
	if err != nil {
		t.Fatalf("NewRound failed: %v", err)
	}
	return state
}

func TestSpawnForRoundCoversEveryBotSeat(t *testing.T) {
	state := freshRound(t, 4)
	m := NewManager(9)
	m.SpawnForRound(state)

	for _, p := range state.Players {
		if p.Human {
			continue
		}
		inst := m.instances[p.ID]
		if inst == nil {
			t.Fatalf("seat %d has no bot instance", p.ID)
		}
		if inst.Brain.Name() != p.Name {
			t.Fatalf("seat %d: brain named %q, player named %q", p.ID, inst.Brain.Name(), p.Name)
		}
		if inst.ThinkDelay < 800*time.Millisecond || inst.ThinkDelay >= 1300*time.Millisecond {
			t.Fatalf("seat %d: think delay out of range: %v", p.ID, inst.ThinkDelay)
		}
		if inst.Persona.Tagline == "" {
			t.Fatalf("seat %d: default roster persona expected for %s", p.ID, p.Name)
		}
	}
	if m.instances[0] != nil {
		t.Fatalf("the human seat must not get a bot")
	}
}

func TestOnTurnReturnsLegalAction(t *testing.T) {
	state := freshRound(t, 3)
	m := NewManager(9)
	m.SpawnForRound(state)

	// Force a bot seat on turn with a fresh single-card hand.
	state.CurrentPlayerIndex = 1

	if got := m.OnTurn(state); got != ActionDraw {
		t.Fatalf("a bot on one dealt card must draw, got %v", got)
	}
}

func TestOnTurnFallsBackForUnmanagedSeat(t *testing.T) {
	state := freshRound(t, 3)
	m := NewManager(9)
	// No SpawnForRound on purpose.
	state.CurrentPlayerIndex = 2

	if got := m.OnTurn(state); got != ActionDraw {
		t.Fatalf("fallback brain must still produce a legal action, got %v", got)
	}
	if m.ThinkDelay(2) != time.Second {
		t.Fatalf("fallback think delay should be one second, got %v", m.ThinkDelay(2))
	}
}
