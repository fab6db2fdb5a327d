package bot

import (
	"math/rand"

	"seventeen-lite/seventeen"
)

// ThresholdBrain draws against a total-indexed probability table, nudged by
// how many opponents are still in the round. The table is the product's
// difficulty surface: changing any constant changes how the bots feel.
type ThresholdBrain struct {
	name string
	rng  *rand.Rand
}

func NewThresholdBrain(name string, seed int64) *ThresholdBrain {
	return &ThresholdBrain{
		name: name,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

func (b *ThresholdBrain) Name() string { return b.name }

// Decide implements Decider.
func (b *ThresholdBrain) Decide(view TableView) Action {
	// Hard rules first: a single dealt card must draw, 17+ never draws,
	// below 11 must draw.
	if len(view.Hand) < 2 {
		return ActionDraw
	}
	if view.Total >= seventeen.TargetTotal {
		return ActionHold
	}
	if view.Total < seventeen.MinHoldTotal {
		return ActionDraw
	}

	inRound := 0  // opponents not yet eliminated
	holding := 0  // opponents locked in
	behind := false
	for _, op := range view.Opponents {
		switch op.Status {
		case seventeen.StatusHolding:
			inRound++
			holding++
			if op.ObservableTotal >= view.Total {
				behind = true
			}
		case seventeen.StatusActive:
			inRound++
		}
	}
	if inRound == 0 {
		// Last one standing above 10: nothing to chase.
		return ActionHold
	}

	p := baseDrawProbability(view.Total)
	p += 0.02 * float64(holding)
	p += 0.01 * float64(inRound-holding)

	if behind {
		// A holding opponent shows at least our total; we only win by
		// improving.
		p = 1.0
	} else if inRound <= 1 {
		// Heads-up plays tighter.
		p *= 0.8
	}

	p = clamp01(p)
	if b.rng.Float64() < p {
		return ActionDraw
	}
	return ActionHold
}

func baseDrawProbability(total int) float64 {
	switch total {
	case 11:
		return 0.30
	case 12:
		return 0.25
	case 13:
		return 0.15
	case 14:
		return 0.10
	case 15:
		return 0.05
	case 16:
		return 0.05
	default:
		return 0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
