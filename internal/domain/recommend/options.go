package recommend

import "time"

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithCooldown sets the temporary exclusion window applied after any
// like or dislike decision.
func WithCooldown(d time.Duration) Option {
	return func(f *Filter) {
		if d > 0 {
			f.cooldown = d
		}
	}
}

// WithStrikeLimit sets the decision count at which a candidate is
// permanently excluded (banned on dislikes, graduated on likes).
func WithStrikeLimit(n int) Option {
	return func(f *Filter) {
		if n > 0 {
			f.strikeLimit = n
		}
	}
}

// WithClock injects the time source. This is the testability seam:
// tests hold the clock fixed while backdating stored events.
func WithClock(clock func() time.Time) Option {
	return func(f *Filter) {
		if clock != nil {
			f.clock = clock
		}
	}
}

// WithShuffle injects the shuffle function, letting tests pin output
// order. The default is rand.Shuffle.
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(f *Filter) {
		if shuffle != nil {
			f.shuffle = shuffle
		}
	}
}
