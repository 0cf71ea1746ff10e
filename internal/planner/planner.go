// Package planner builds calendar meal plans from a recipe library.
//
// A plan mixes three kinds of day: cooking a recipe, eating out, and eating
// the leftovers of an earlier cooking day. Recipes rotate through a shuffled
// deck so none repeats before every eligible recipe has had its turn.
// Operations never modify the plan they are given; they return a new one.
package planner

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Rand is the source of randomness used for shuffling and day selection.
// *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// globalRand uses the math/rand/v2 top-level functions, which are safe for
// concurrent use.
type globalRand struct{}

func (globalRand) IntN(n int) int                     { return rand.IntN(n) }
func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

type Generator struct {
	rng   Rand
	now   func() time.Time
	newID func() string
}

type Option func(*Generator)

// WithRand sets the random source. A *rand.Rand is not safe for concurrent
// use, so a Generator built with one must not be shared between goroutines.
func WithRand(r Rand) Option {
	return func(g *Generator) {
		g.rng = r
	}
}

// WithSeed makes generation reproducible.
func WithSeed(seed uint64) Option {
	return WithRand(rand.New(rand.NewPCG(seed, seed)))
}

// WithClock sets the clock used for CreatedAt and ModifiedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithIDFunc sets how new plan IDs are minted.
func WithIDFunc(f func() string) Option {
	return func(g *Generator) {
		g.newID = f
	}
}

func New(opts ...Option) *Generator {
	g := &Generator{
		rng:   globalRand{},
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}
