// Package dice abstracts the random rolls used by the game resolvers so
// tests can script outcomes.
package dice

import "math/rand"

// Roller is the subset of math/rand the resolvers need.
type Roller interface {
	// Float64 returns a draw in [0, 1).
	Float64() float64
	// Intn returns a draw in [0, n).
	Intn(n int) int
}

// New returns a Roller seeded for normal play.
func New(seed int64) Roller {
	return rand.New(rand.NewSource(seed))
}
