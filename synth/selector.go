package synth

import "math/rand"

// Scale steps above a melody note.
const (
	Third = 2
	Fifth = 4
)

// HarmonySelector picks the interval for each harmonized melody note.
// Selectors hold state and belong to a single synthesis call.
type HarmonySelector interface {
	Next() int
}

type alternating struct {
	n int
}

// Alternating yields third, fifth, third, ...
func Alternating() HarmonySelector {
	return &alternating{}
}

func (a *alternating) Next() int {
	a.n++
	if a.n%2 == 1 {
		return Third
	}
	return Fifth
}

type seeded struct {
	r *rand.Rand
}

// Seeded picks thirds and fifths at random from its own source, so equal
// seeds give equal harmonizations.
func Seeded(seed int64) HarmonySelector {
	return &seeded{r: rand.New(rand.NewSource(seed))}
}

func (s *seeded) Next() int {
	if s.r.Intn(2) == 0 {
		return Third
	}
	return Fifth
}
