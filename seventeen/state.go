package seventeen

import "seventeen-lite/card"

// Player is a per-seat record. Values are copied wholesale between state
// snapshots; transition code must never alias hands across snapshots.
type Player struct {
	ID    int
	Name  string
	Human bool

	// Hand is every card in draw order. Hidden and Visible partition it:
	// the human's cards are all visible, a bot's first card is hidden from
	// opponents and every later draw is visible.
	Hand    card.CardList
	Hidden  card.CardList
	Visible card.CardList

	Total  int
	Status Status
}

func (p Player) clone() Player {
	out := p
	out.Hand = append(card.CardList(nil), p.Hand...)
	out.Hidden = append(card.CardList(nil), p.Hidden...)
	out.Visible = append(card.CardList(nil), p.Visible...)
	return out
}

// ObservableTotal is the total an opponent can see of this player: the
// human's first card is excluded (it sits face-down on the table from the
// opponents' point of view), a bot's hidden card is never in Visible.
func (p Player) ObservableTotal() int {
	if p.Human {
		if len(p.Visible) <= 1 {
			return 0
		}
		return card.Total(p.Visible[1:])
	}
	return card.Total(p.Visible)
}

// GameState is the single authoritative aggregate. Transitions return a
// wholly new value; callers must treat every snapshot as immutable.
type GameState struct {
	Phase   Phase
	Players []Player
	Deck    card.CardList

	CurrentPlayerIndex int

	Winner               int // committed winner seat, NoSeat until gameOver
	PendingWinner        int // staged during revealing
	PendingWinnerMessage string

	// GameID is the freshness token for asynchronous effects: timers fired
	// for a superseded round must observe a mismatch and drop their work.
	GameID uint64

	Log           []string
	CardBackStyle string
}

func (s GameState) clone() GameState {
	out := s
	out.Players = make([]Player, len(s.Players))
	for i, p := range s.Players {
		out.Players[i] = p.clone()
	}
	out.Deck = append(card.CardList(nil), s.Deck...)
	out.Log = append([]string(nil), s.Log...)
	return out
}

// Snapshot returns a deep copy safe to hand to other goroutines.
func (s GameState) Snapshot() GameState { return s.clone() }

// WithLogLine returns a copy of the state with one more log entry.
func (s GameState) WithLogLine(line string) GameState {
	out := s.clone()
	out.Log = append(out.Log, line)
	return out
}

// CurrentPlayer returns the seat on turn, or false when the index is out of
// range (setup state).
func (s GameState) CurrentPlayer() (Player, bool) {
	if s.CurrentPlayerIndex < 0 || s.CurrentPlayerIndex >= len(s.Players) {
		return Player{}, false
	}
	return s.Players[s.CurrentPlayerIndex], true
}
