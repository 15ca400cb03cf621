package games

import (
	"math/rand"
	"time"
)

// Rand is the randomness a resolver is allowed to consume. Every game is a
// pure function of its parameters and the draws it takes from this source,
// so a scripted implementation replays any outcome.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// NewRand returns a time-seeded source for production play.
func NewRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

// NewSeededRand returns a deterministic source for replay and tests.
func NewSeededRand(seed int64) Rand {
	return rand.New(rand.NewSource(seed))
}
