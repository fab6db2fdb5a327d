package seventeen

import "fmt"

var defaultBotNames = []string{"Alex", "Morgan", "Jordan", "Taylor", "Casey"}

type Config struct {
	// Seats is the total seat count including the human at seat 0.
	Seats int

	// CardBackStyle is an opaque identifier carried through state for
	// renderers; the engine never interprets it.
	CardBackStyle string

	// BotNames overrides the default bot roster. Must cover Seats-1 names
	// when set.
	BotNames []string
}

func (c Config) validate() error {
	if c.Seats < MinSeats || c.Seats > MaxSeats {
		return fmt.Errorf("Seats must be in [%d, %d], got %d", MinSeats, MaxSeats, c.Seats)
	}
	if len(c.BotNames) > 0 && len(c.BotNames) < c.Seats-1 {
		return fmt.Errorf("BotNames must cover %d bots, got %d", c.Seats-1, len(c.BotNames))
	}
	return nil
}

func (c Config) botNames() []string {
	if len(c.BotNames) > 0 {
		return c.BotNames
	}
	return defaultBotNames
}
