package seventeen

// Event 通知事件：0-GAMESTART 1-CARDDRAW 2-HOLD 3-WIN 4-GAMEOVER
//
// Events are fire-and-forget notification hooks for the presentation layer
// (sound, confetti). The engine never depends on any acknowledgment.
type Event byte

const (
	EventGameStart Event = 0
	EventCardDraw  Event = 1
	EventHold      Event = 2
	EventWin       Event = 3
	EventGameOver  Event = 4
)

var EventDictionary = map[Event]string{
	EventGameStart: "gameStart",
	EventCardDraw:  "cardDraw",
	EventHold:      "hold",
	EventWin:       "win",
	EventGameOver:  "gameOver",
}

func (e Event) String() string { return EventDictionary[e] }
