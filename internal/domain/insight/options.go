package insight

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithMinSampleSize sets the smallest subgroup worth testing. Subgroups
// below the threshold are skipped to avoid spurious significance.
func WithMinSampleSize(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.minSample = n
		}
	}
}

// WithSignificanceLevels sets the p-value cutoffs for the moderate and
// severe tiers. severe must be stricter than moderate.
func WithSignificanceLevels(moderate, severe float64) Option {
	return func(e *Engine) {
		if severe > 0 && moderate > severe && moderate < 1 {
			e.moderateP = moderate
			e.severeP = severe
		}
	}
}
