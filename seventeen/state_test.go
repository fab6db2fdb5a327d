package seventeen

import (
	"testing"

	"seventeen-lite/card"
)

func TestObservableTotalExcludesHumanFirstCard(t *testing.T) {
	human := testPlayer(0, "You", true, StatusActive, card.CardSpadeK, card.CardHeart4, card.CardClub2)
	if got := human.ObservableTotal(); got != 6 {
		t.Fatalf("expected 6 (first card face-down to opponents), got %d", got)
	}

	fresh := testPlayer(0, "You", true, StatusActive, card.CardSpadeK)
	if got := fresh.ObservableTotal(); got != 0 {
		t.Fatalf("a single dealt card shows nothing, got %d", got)
	}
}

func TestObservableTotalSkipsBotHiddenCard(t *testing.T) {
	bot := testPlayer(1, "Alex", false, StatusActive, card.CardSpadeK, card.CardHeart4, card.CardClub2)
	if got := bot.ObservableTotal(); got != 6 {
		t.Fatalf("expected 6 without the hidden card, got %d", got)
	}
}

func TestSnapshotIsIndependent(t *testing.T) {
	state := playingState(0,
		card.CardList{card.CardClub2},
		testPlayer(0, "You", true, StatusActive, card.CardHeart3, card.CardSpade4),
		testPlayer(1, "Alex", false, StatusActive, card.CardClub9),
	)

	snap := state.Snapshot()
	snap.Players[0].Hand.Add(card.CardSpadeK)
	snap.Deck.Add(card.CardSpadeQ)
	snap.Log = append(snap.Log, "extra")

	if len(state.Players[0].Hand) != 2 {
		t.Fatalf("snapshot shares hand storage with the source")
	}
	if state.Deck.Count() != 1 {
		t.Fatalf("snapshot shares deck storage with the source")
	}
}
