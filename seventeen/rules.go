package seventeen

import (
	"fmt"
	"math/rand"

	"seventeen-lite/card"
)

// NewRound shuffles a fresh deck, deals one card to every seat and picks a
// random first seat. The human always sits at seat 0 and sees their own
// card; each bot's opening card stays hidden from opponents.
func NewRound(cfg Config, gameID uint64, rng *rand.Rand) (GameState, []Event, error) {
	if err := cfg.validate(); err != nil {
		return GameState{}, nil, err
	}

	deck := card.CardList(SeventeenCards).Shuffled(rng)
	first := rng.Intn(cfg.Seats)
	botNames := cfg.botNames()

	players := make([]Player, 0, cfg.Seats)
	log := []string{"Game started!"}

	for i := 0; i < cfg.Seats; i++ {
		drawn, ok := deck.PopCards(1)
		if !ok {
			panic("deck underflow")
		}

		p := Player{
			ID:     i,
			Human:  i == 0,
			Hand:   card.CardList(drawn),
			Status: StatusActive,
		}
		if p.Human {
			p.Name = "You"
			p.Visible = append(card.CardList(nil), drawn...)
		} else {
			p.Name = botNames[i-1]
			p.Hidden = append(card.CardList(nil), drawn...)
		}
		p.Total = card.Total(p.Hand)
		players = append(players, p)

		if p.Human {
			log = append(log, fmt.Sprintf("You drew %s. Total: %d", drawn[0].Name(), p.Total))
		} else {
			log = append(log, fmt.Sprintf("%s drew a card.", p.Name))
		}
	}

	log = append(log, fmt.Sprintf("%s will go first.", players[first].Name))

	state := GameState{
		Phase:              PhasePlaying,
		Players:            players,
		Deck:               deck,
		CurrentPlayerIndex: first,
		Winner:             NoSeat,
		PendingWinner:      NoSeat,
		GameID:             gameID,
		Log:                log,
		CardBackStyle:      cfg.CardBackStyle,
	}
	return state, []Event{EventGameStart}, nil
}

// ApplyDraw draws one card for the acting seat and returns the next state.
// Out-of-phase or out-of-turn calls are no-ops returning the input state.
//
// A non-terminal draw never passes the turn: the drawing player keeps
// acting until they hold, win with exactly 17, or bust.
func ApplyDraw(s GameState, seat int) (GameState, []Event) {
	if !canAct(s, seat) {
		return s, nil
	}

	next := s.clone()

	drawn, ok := next.Deck.PopCards(1)
	if !ok {
		// Unreachable with <= 6 seats on a 52-card deck; a hit here is a
		// programming error, never a user-facing condition.
		panic("deck underflow")
	}
	drawnCard := drawn[0]

	p := &next.Players[seat]
	p.Hand.Add(drawnCard)
	p.Visible.Add(drawnCard)
	p.Total = card.Total(p.Hand)

	actionLog := fmt.Sprintf("%s drew %s. Total: %d", p.Name, drawnCard.Name(), p.Total)

	if p.Total == TargetTotal {
		p.Status = StatusWinner
		next.Phase = PhaseGameOver
		next.Winner = seat
		next.Log = append(next.Log, actionLog, fmt.Sprintf("%s won with exactly 17!", p.Name))
		return next, []Event{EventCardDraw, winEvent(*p)}
	}

	if p.Total > TargetTotal {
		p.Status = StatusEliminated
		elimLog := fmt.Sprintf("%s exceeded 17 and is eliminated!", p.Name)

		if over, winner, message := checkGameEnd(next.Players); over {
			next.Phase = PhaseRevealing
			next.PendingWinner = winner
			next.PendingWinnerMessage = message
			next.Log = append(next.Log, actionLog, elimLog)
			return next, []Event{EventCardDraw}
		}

		nextIdx := nextActiveIndex(next.Players, seat)
		next.CurrentPlayerIndex = nextIdx
		next.Log = append(next.Log, actionLog, elimLog,
			fmt.Sprintf("%s's turn.", next.Players[nextIdx].Name))
		return next, []Event{EventCardDraw}
	}

	next.Log = append(next.Log, actionLog)
	return next, []Event{EventCardDraw}
}

// ApplyHold locks in the acting seat's total. Holding on a single dealt
// card or below 11 is silently absorbed (a disabled UI action, not an
// error), as are out-of-phase and out-of-turn calls.
func ApplyHold(s GameState, seat int) (GameState, []Event) {
	if !canAct(s, seat) {
		return s, nil
	}
	actor := s.Players[seat]
	if len(actor.Hand) < 2 || actor.Total < MinHoldTotal {
		return s, nil
	}

	next := s.clone()
	p := &next.Players[seat]
	p.Status = StatusHolding
	holdLog := fmt.Sprintf("%s decided to hold with a total of %d.", p.Name, p.Total)

	if over, winner, message := checkGameEnd(next.Players); over {
		next.Phase = PhaseRevealing
		next.PendingWinner = winner
		next.PendingWinnerMessage = message
		next.Log = append(next.Log, holdLog)
		return next, []Event{EventHold}
	}

	nextIdx := nextActiveIndex(next.Players, seat)
	next.CurrentPlayerIndex = nextIdx
	next.Log = append(next.Log, holdLog,
		fmt.Sprintf("%s's turn.", next.Players[nextIdx].Name))
	return next, []Event{EventHold}
}

// CommitReveal ends the reveal phase: the pending winner becomes the
// committed winner and the session reaches gameOver. No-op outside
// revealing.
func CommitReveal(s GameState) (GameState, []Event) {
	if s.Phase != PhaseRevealing {
		return s, nil
	}

	next := s.clone()
	next.Phase = PhaseGameOver
	next.Winner = next.PendingWinner
	if next.PendingWinner != NoSeat {
		next.Players[next.PendingWinner].Status = StatusWinner
	}
	next.Log = append(next.Log, next.PendingWinnerMessage)

	if next.Winner != NoSeat {
		return next, []Event{winEvent(next.Players[next.Winner])}
	}
	return next, []Event{EventGameOver}
}

func canAct(s GameState, seat int) bool {
	if s.Phase != PhasePlaying {
		return false
	}
	if seat != s.CurrentPlayerIndex || seat < 0 || seat >= len(s.Players) {
		return false
	}
	return s.Players[seat].Status == StatusActive
}

// nextActiveIndex walks the seat ring from the acting seat, skipping seats
// that are holding or eliminated. When the walk comes back around, the
// acting seat is the only one left and keeps the turn.
func nextActiveIndex(players []Player, from int) int {
	next := (from + 1) % len(players)
	for next != from && players[next].Status != StatusActive {
		next = (next + 1) % len(players)
	}
	return next
}

func winEvent(p Player) Event {
	if p.Human {
		return EventWin
	}
	return EventGameOver
}
