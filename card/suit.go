package card

type Suit byte

const (
	Club    Suit = iota // ♣️
	Diamond             // ♦️
	Heart               // ♥️
	Spade               // ♠️
)

func (s Suit) String() string {
	switch s {
	case Club:
		return "♣️"
	case Diamond:
		return "♦️"
	case Heart:
		return "♥️"
	case Spade:
		return "♠️"
	}
	return "?"
}

// Name is the long form used in logs.
func (s Suit) Name() string {
	switch s {
	case Club:
		return "clubs"
	case Diamond:
		return "diamonds"
	case Heart:
		return "hearts"
	case Spade:
		return "spades"
	}
	return "unknown"
}
