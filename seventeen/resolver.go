package seventeen

import "fmt"

// DetermineWinner resolves a finished round. Rules, in order:
//  1. any seat sitting on exactly 17 wins outright,
//  2. if every seat busted, the round is void (NoSeat),
//  3. otherwise the highest total <= 17 among non-eliminated seats wins;
//     the strict > comparison means the first such seat in seat order
//     takes a tie.
func DetermineWinner(players []Player) (winner int, message string) {
	for i, p := range players {
		if p.Total == TargetTotal {
			return i, fmt.Sprintf("%s won with exactly 17!", p.Name)
		}
	}

	allEliminated := true
	for _, p := range players {
		if p.Status != StatusEliminated {
			allEliminated = false
			break
		}
	}
	if allEliminated {
		return NoSeat, "All players exceeded 17. Game is void."
	}

	maxTotal := 0
	winner = NoSeat
	for i, p := range players {
		if p.Status != StatusEliminated && p.Total <= TargetTotal && p.Total > maxTotal {
			maxTotal = p.Total
			winner = i
		}
	}
	if winner != NoSeat {
		return winner, fmt.Sprintf("%s wins with a total of %d!", players[winner].Name, maxTotal)
	}

	// Defensive fallback; unreachable while the status invariants hold.
	return NoSeat, "No winner could be determined."
}

// checkGameEnd reports whether every seat has left the active status. When
// the round is over it resolves the winner and flips every non-eliminated
// seat to the interim revealing status for the card-flip animation.
func checkGameEnd(players []Player) (over bool, winner int, message string) {
	for _, p := range players {
		if p.Status == StatusActive {
			return false, NoSeat, ""
		}
	}

	winner, message = DetermineWinner(players)
	for i := range players {
		if players[i].Status != StatusEliminated {
			players[i].Status = StatusRevealing
		}
	}
	return true, winner, message
}
