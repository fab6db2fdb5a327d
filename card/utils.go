package card

func Cards2bytes(cs []Card) []byte {
	out := make([]byte, 0, len(cs))
	for _, c := range cs {
		out = append(out, byte(c))
	}
	return out
}

// Total sums the game values of a hand. An empty hand totals 0.
func Total(cs []Card) int {
	total := 0
	for _, c := range cs {
		total += c.GameValue()
	}
	return total
}
