package codec

import (
	"testing"

	"seventeen-lite/card"
	"seventeen-lite/seventeen"
)

func testState(phase seventeen.Phase) seventeen.GameState {
	human := seventeen.Player{
		ID:      0,
		Name:    "You",
		Human:   true,
		Hand:    card.CardList{card.CardSpadeA, card.CardHeart7},
		Visible: card.CardList{card.CardSpadeA, card.CardHeart7},
		Total:   8,
		Status:  seventeen.StatusActive,
	}
	bot := seventeen.Player{
		ID:      1,
		Name:    "Alex",
		Human:   false,
		Hand:    card.CardList{card.CardClubK, card.CardDiamond3},
		Hidden:  card.CardList{card.CardClubK},
		Visible: card.CardList{card.CardDiamond3},
		Total:   16,
		Status:  seventeen.StatusActive,
	}
	return seventeen.GameState{
		Phase:              phase,
		Players:            []seventeen.Player{human, bot},
		Deck:               card.CardList{card.CardClub2, card.CardClub4},
		CurrentPlayerIndex: 0,
		Winner:             seventeen.NoSeat,
		PendingWinner:      seventeen.NoSeat,
		GameID:             3,
		Log:                []string{"Game started!"},
		CardBackStyle:      "classic",
	}
}

func TestStateToWireHidesBotHoleCard(t *testing.T) {
	wire := StateToWire(testState(seventeen.PhasePlaying), 0)

	if wire.Phase != "playing" || wire.GameID != 3 || wire.DeckCount != 2 {
		t.Fatalf("unexpected header fields: %+v", wire)
	}

	self := wire.Players[0]
	if len(self.Cards) != 2 {
		t.Fatalf("viewer must see their own full hand, got %d cards", len(self.Cards))
	}
	if self.Total == nil || *self.Total != 8 {
		t.Fatalf("viewer must see their own total")
	}

	opp := wire.Players[1]
	if len(opp.Cards) != 1 {
		t.Fatalf("opponent must show only visible cards, got %d", len(opp.Cards))
	}
	if opp.Cards[0].Suit != "diamonds" || opp.Cards[0].Rank != "3" {
		t.Fatalf("unexpected visible card: %+v", opp.Cards[0])
	}
	if opp.HiddenCount != 1 {
		t.Fatalf("expected one hidden card, got %d", opp.HiddenCount)
	}
	if opp.Total != nil {
		t.Fatalf("an opponent's true total must not leak before the reveal")
	}
	if opp.VisibleTotal != 3 {
		t.Fatalf("expected visible total 3, got %d", opp.VisibleTotal)
	}
}

func TestStateToWireRevealsEverythingAtReveal(t *testing.T) {
	for _, phase := range []seventeen.Phase{seventeen.PhaseRevealing, seventeen.PhaseGameOver} {
		wire := StateToWire(testState(phase), 0)
		opp := wire.Players[1]
		if len(opp.Cards) != 2 {
			t.Fatalf("phase %v: expected full hand after reveal, got %d cards", phase, len(opp.Cards))
		}
		if opp.Total == nil || *opp.Total != 16 {
			t.Fatalf("phase %v: expected revealed total 16", phase)
		}
		if opp.HiddenCount != 0 {
			t.Fatalf("phase %v: nothing stays hidden after reveal", phase)
		}
	}
}

func TestCardToWireNames(t *testing.T) {
	cases := []struct {
		card  card.Card
		suit  string
		rank  string
		value int
	}{
		{card.CardSpadeA, "spades", "ace", 1},
		{card.CardHeartT, "hearts", "10", 10},
		{card.CardClubJ, "clubs", "jack", 11},
		{card.CardDiamondQ, "diamonds", "queen", 12},
		{card.CardSpadeK, "spades", "king", 13},
	}
	for _, tc := range cases {
		got := cardToWire(tc.card)
		if got.Suit != tc.suit || got.Rank != tc.rank || got.Value != tc.value {
			t.Fatalf("cardToWire(%v): got %+v", tc.card, got)
		}
	}
}

func TestEventsToWire(t *testing.T) {
	if got := EventsToWire(nil); got != nil {
		t.Fatalf("no events must stay nil, got %v", got)
	}
	got := EventsToWire([]seventeen.Event{seventeen.EventGameStart, seventeen.EventWin})
	if len(got) != 2 || got[0] != "gameStart" || got[1] != "win" {
		t.Fatalf("unexpected event names: %v", got)
	}
}
