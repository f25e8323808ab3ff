package reports

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithTeam1OnlySeasons restores the legacy every-season rule that credits a
// team with a season only when it appeared as team1.
func WithTeam1OnlySeasons(enabled bool) Option {
	return func(e *Engine) {
		e.team1OnlySeasons = enabled
	}
}

// WithDefaultMinBalls sets the balls-faced threshold used when Params leaves
// MinBalls unset.
func WithDefaultMinBalls(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.defaultMinBalls = n
		}
	}
}

// WithHighWicketThreshold sets the wicket count a match must exceed to be
// reported by HighWicketMatches.
func WithHighWicketThreshold(n int) Option {
	return func(e *Engine) {
		if n >= 0 {
			e.highWicketThreshold = n
		}
	}
}
