package seventeen

import "seventeen-lite/card"

// NoSeat marks "no player" wherever a seat index is expected.
const NoSeat = -1

const (
	// TargetTotal is the total a hand must hit exactly to win outright.
	TargetTotal = 17
	// MinHoldTotal is the lowest total a player may hold at.
	MinHoldTotal = 11

	MinSeats = 2
	MaxSeats = 6
)

// Phase 游戏阶段
type Phase byte

const (
	PhaseSetup     Phase = 0
	PhasePlaying   Phase = 1
	PhaseRevealing Phase = 2
	PhaseGameOver  Phase = 3
)

var PhaseDictionary = map[Phase]string{
	PhaseSetup:     "setup",
	PhasePlaying:   "playing",
	PhaseRevealing: "revealing",
	PhaseGameOver:  "gameOver",
}

func (p Phase) String() string { return PhaseDictionary[p] }

// Status 玩家状态：0-ACTIVE 1-HOLDING 2-ELIMINATED 3-WINNER 4-REVEALING
type Status byte

const (
	StatusActive     Status = 0
	StatusHolding    Status = 1
	StatusEliminated Status = 2
	StatusWinner     Status = 3
	// StatusRevealing is an interim status for non-eliminated seats while
	// hidden cards flip face-up. It never survives past the reveal commit.
	StatusRevealing Status = 4
)

var StatusDictionary = map[Status]string{
	StatusActive:     "active",
	StatusHolding:    "holding",
	StatusEliminated: "eliminated",
	StatusWinner:     "winner",
	StatusRevealing:  "revealing",
}

func (s Status) String() string { return StatusDictionary[s] }

// SeventeenCards is the canonical 52-card deck order: 4 suits × 13 ranks.
var SeventeenCards = []card.Card{
	card.CardClubA, card.CardClub2, card.CardClub3, card.CardClub4, card.CardClub5, card.CardClub6,
	card.CardClub7, card.CardClub8, card.CardClub9, card.CardClubT, card.CardClubJ, card.CardClubQ, card.CardClubK,
	card.CardDiamondA, card.CardDiamond2, card.CardDiamond3, card.CardDiamond4, card.CardDiamond5, card.CardDiamond6,
	card.CardDiamond7, card.CardDiamond8, card.CardDiamond9, card.CardDiamondT, card.CardDiamondJ, card.CardDiamondQ, card.CardDiamondK,
	card.CardHeartA, card.CardHeart2, card.CardHeart3, card.CardHeart4, card.CardHeart5, card.CardHeart6,
	card.CardHeart7, card.CardHeart8, card.CardHeart9, card.CardHeartT, card.CardHeartJ, card.CardHeartQ, card.CardHeartK,
	card.CardSpadeA, card.CardSpade2, card.CardSpade3, card.CardSpade4, card.CardSpade5, card.CardSpade6,
	card.CardSpade7, card.CardSpade8, card.CardSpade9, card.CardSpadeT, card.CardSpadeJ, card.CardSpadeQ, card.CardSpadeK,
}
