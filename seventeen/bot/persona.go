package bot

// Persona defines a named bot character. The decision policy is shared by
// all bots; personas only contribute identity and pacing.
type Persona struct {
	Name    string `json:"name"`
	Tagline string `json:"tagline"`
}

// DefaultPersonas is the built-in roster, seated in order after the human.
var DefaultPersonas = []Persona{
	{Name: "Alex", Tagline: "counts on luck"},
	{Name: "Morgan", Tagline: "never blinks"},
	{Name: "Jordan", Tagline: "plays the odds"},
	{Name: "Taylor", Tagline: "stops at nothing"},
	{Name: "Casey", Tagline: "quietly dangerous"},
}
