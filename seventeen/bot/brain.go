package bot

import (
	"seventeen-lite/card"
	"seventeen-lite/seventeen"
)

// OpponentView is what the acting bot can observe of another seat: its
// status and the total of the cards it shows. A human opponent's first card
// and a bot opponent's hidden card are excluded upstream.
type OpponentView struct {
	Status          seventeen.Status
	ObservableTotal int
}

// TableView is a read-only projection of the game state visible to the bot.
type TableView struct {
	Hand      card.CardList
	Total     int
	Opponents []OpponentView
}

// Action is what a Decider returns.
type Action byte

const (
	ActionDraw Action = 0
	ActionHold Action = 1
)

var ActionDictionary = map[Action]string{
	ActionDraw: "draw",
	ActionHold: "hold",
}

func (a Action) String() string { return ActionDictionary[a] }

// Decider is the core interface all bot types implement.
type Decider interface {
	// Decide is called when it's the bot's turn.
	Decide(view TableView) Action
	// Name returns a human-readable identifier for debugging.
	Name() string
}

// BuildView constructs the acting seat's TableView from a state snapshot.
func BuildView(state seventeen.GameState, seat int) TableView {
	me := state.Players[seat]
	view := TableView{
		Hand:  me.Hand,
		Total: me.Total,
	}
	for i, p := range state.Players {
		if i == seat {
			continue
		}
		view.Opponents = append(view.Opponents, OpponentView{
			Status:          p.Status,
			ObservableTotal: p.ObservableTotal(),
		})
	}
	return view
}
