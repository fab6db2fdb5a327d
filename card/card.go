package card

import "fmt"

// Card 牌枚举
//
// 编码规则:
// - 高4位: 花色 (0:Club, 1:Diamond, 2:Heart, 3:Spade)
// - 低4位: 点数 (1:A, 2..9, 10:T, 11:J, 12:Q, 13:K)
type Card byte

func (c Card) String() string {
	if c == CardInvalid {
		return "Invalid"
	}
	if c == CardRear {
		return "Rear"
	}

	suit := Suit(c >> 4)
	rank := c & 0x0F

	rankStr := ""
	switch rank {
	case 1:
		rankStr = "A"
	case 10:
		rankStr = "T"
	case 11:
		rankStr = "J"
	case 12:
		rankStr = "Q"
	case 13:
		rankStr = "K"
	default:
		rankStr = fmt.Sprintf("%d", rank)
	}

	return fmt.Sprintf("%s%s", suit, rankStr)
}

// Rank 获取牌面值 1-13 (A=1, K=13)
func (c Card) Rank() byte {
	if c == CardInvalid || c == CardRear {
		return 0
	}
	return byte(c & 0x0F)
}

// Suit 花色 (0:Clubs, 1:Diamonds, 2:Hearts, 3:Spades)
func (c Card) Suit() Suit {
	return Suit(c >> 4)
}

func (c Card) IsAce() bool {
	return c.Rank() == 1
}

// GameValue 返回该牌在 Seventeen 中的计分值:
// - A 记 1
// - J/Q/K 记 11/12/13
// - 其余为原始点数
func (c Card) GameValue() int {
	if c == CardInvalid || c == CardRear {
		return 0
	}
	return int(c & 0x0F)
}

var rankNames = map[byte]string{
	1: "ace", 2: "2", 3: "3", 4: "4", 5: "5", 6: "6", 7: "7",
	8: "8", 9: "9", 10: "10", 11: "jack", 12: "queen", 13: "king",
}

// Name returns the long form used in player-facing logs, e.g. "ace of spades".
func (c Card) Name() string {
	if c == CardInvalid || c == CardRear {
		return "unknown card"
	}
	return fmt.Sprintf("%s of %s", rankNames[c.Rank()], c.Suit().Name())
}
