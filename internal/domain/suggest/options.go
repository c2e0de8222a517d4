package suggest

import "time"

// Option applies a configuration option to the Intake.
type Option func(*Intake)

// WithCount sets how many names the generator is asked for.
func WithCount(n int) Option {
	return func(in *Intake) {
		if n > 0 {
			in.count = n
		}
	}
}

// WithTimeout bounds the external generator call.
func WithTimeout(d time.Duration) Option {
	return func(in *Intake) {
		if d > 0 {
			in.timeout = d
		}
	}
}
