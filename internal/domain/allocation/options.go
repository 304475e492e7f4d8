package allocation

import "math/rand"

// Option applies a configuration option to the Allocator.
type Option func(*Allocator)

// WithMinPerTeam sets how many present players each team needs before an
// allocation is attempted.
func WithMinPerTeam(n int) Option {
	return func(a *Allocator) {
		if n > 0 {
			a.minPerTeam = n
		}
	}
}

// WithSeed makes shuffles reproducible. A zero seed keeps the time-seeded
// default.
func WithSeed(seed int64) Option {
	return func(a *Allocator) {
		if seed != 0 {
			a.rng = rand.New(rand.NewSource(seed)) //nolint:gosec // team shuffles are not security sensitive
		}
	}
}

// WithRand injects the random source used for every shuffle.
func WithRand(rng *rand.Rand) Option {
	return func(a *Allocator) {
		if rng != nil {
			a.rng = rng
		}
	}
}
