package bot

import (
	"testing"

	"seventeen-lite/card"
	"seventeen-lite/seventeen"
)

func twoCardView(total int, opponents ...OpponentView) TableView {
	return TableView{
		Hand:      card.CardList{card.CardClubA, card.CardClub2},
		Total:     total,
		Opponents: opponents,
	}
}

func TestDecideHardRules(t *testing.T) {
	brain := NewThresholdBrain("test", 1)
	active := OpponentView{Status: seventeen.StatusActive, ObservableTotal: 5}

	single := TableView{
		Hand:      card.CardList{card.CardSpadeK},
		Total:     13,
		Opponents: []OpponentView{active},
	}
	if got := brain.Decide(single); got != ActionDraw {
		t.Fatalf("a single dealt card must draw, got %v", got)
	}

	if got := brain.Decide(twoCardView(17, active)); got != ActionHold {
		t.Fatalf("17 must hold, got %v", got)
	}
	if got := brain.Decide(twoCardView(18, active)); got != ActionHold {
		t.Fatalf("over 17 must hold, got %v", got)
	}

	if got := brain.Decide(twoCardView(10, active)); got != ActionDraw {
		t.Fatalf("below 11 must draw, got %v", got)
	}
}

func TestDecideHoldsWhenNoOpponentRemains(t *testing.T) {
	brain := NewThresholdBrain("test", 2)
	view := twoCardView(12,
		OpponentView{Status: seventeen.StatusEliminated, ObservableTotal: 20},
		OpponentView{Status: seventeen.StatusEliminated, ObservableTotal: 25},
	)
	for i := 0; i < 200; i++ {
		if got := brain.Decide(view); got != ActionHold {
			t.Fatalf("nothing to chase with every opponent busted, got %v", got)
		}
	}
}

func TestDecideForcedDrawWhenVisiblyBehind(t *testing.T) {
	brain := NewThresholdBrain("test", 3)
	view := twoCardView(14,
		OpponentView{Status: seventeen.StatusHolding, ObservableTotal: 15},
		OpponentView{Status: seventeen.StatusActive, ObservableTotal: 4},
	)
	for i := 0; i < 500; i++ {
		if got := brain.Decide(view); got != ActionDraw {
			t.Fatalf("a holding opponent showing 15 against 14 forces a draw, got %v", got)
		}
	}
}

func TestDecideForcedDrawOnVisibleTie(t *testing.T) {
	brain := NewThresholdBrain("test", 4)
	view := twoCardView(15,
		OpponentView{Status: seventeen.StatusHolding, ObservableTotal: 15},
	)
	for i := 0; i < 500; i++ {
		if got := brain.Decide(view); got != ActionDraw {
			t.Fatalf("a visible tie with a holder forces a draw, got %v", got)
		}
	}
}

func TestDecideDrawRateAtElevenWithFullTable(t *testing.T) {
	brain := NewThresholdBrain("test", 42)
	view := twoCardView(11,
		OpponentView{Status: seventeen.StatusActive, ObservableTotal: 3},
		OpponentView{Status: seventeen.StatusActive, ObservableTotal: 5},
		OpponentView{Status: seventeen.StatusActive, ObservableTotal: 2},
	)

	// Base 0.30 plus 0.01 per active opponent = 0.33, no heads-up damping.
	const rounds = 4000
	draws := 0
	for i := 0; i < rounds; i++ {
		if brain.Decide(view) == ActionDraw {
			draws++
		}
	}
	rate := float64(draws) / float64(rounds)
	if rate < 0.28 || rate > 0.38 {
		t.Fatalf("draw rate at 11 out of range: got %.3f, want ~0.33", rate)
	}
}

func TestDecideHeadsUpDampsDrawRate(t *testing.T) {
	brain := NewThresholdBrain("test", 99)
	view := twoCardView(16,
		OpponentView{Status: seventeen.StatusActive, ObservableTotal: 6},
	)

	// Base 0.05 plus 0.01, scaled by 0.8 heads-up = 0.048.
	const rounds = 4000
	draws := 0
	for i := 0; i < rounds; i++ {
		if brain.Decide(view) == ActionDraw {
			draws++
		}
	}
	rate := float64(draws) / float64(rounds)
	if rate < 0.02 || rate > 0.08 {
		t.Fatalf("heads-up draw rate at 16 out of range: got %.3f, want ~0.048", rate)
	}
}

func TestDecideHoldingOpponentsRaiseDrawRate(t *testing.T) {
	lowPressure := twoCardView(13,
		OpponentView{Status: seventeen.StatusActive, ObservableTotal: 4},
		OpponentView{Status: seventeen.StatusActive, ObservableTotal: 6},
	)
	highPressure := twoCardView(13,
		OpponentView{Status: seventeen.StatusHolding, ObservableTotal: 9},
		OpponentView{Status: seventeen.StatusHolding, ObservableTotal: 8},
	)

	const rounds = 6000
	lowBrain := NewThresholdBrain("low", 7)
	highBrain := NewThresholdBrain("high", 7)
	lowDraws, highDraws := 0, 0
	for i := 0; i < rounds; i++ {
		if lowBrain.Decide(lowPressure) == ActionDraw {
			lowDraws++
		}
		if highBrain.Decide(highPressure) == ActionDraw {
			highDraws++
		}
	}

	// 0.15+0.02 vs 0.15+0.04: holders apply more pressure than actives.
	if highDraws <= lowDraws {
		t.Fatalf("holding opponents must raise the draw rate: low=%d high=%d", lowDraws, highDraws)
	}
}
