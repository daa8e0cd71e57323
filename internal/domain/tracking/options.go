package tracking

import "time"

// Option applies a configuration option to the ledger.
type Option func(*ledger)

// WithClock overrides the timestamp source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(l *ledger) {
		if now != nil {
			l.now = now
		}
	}
}
