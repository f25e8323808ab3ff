package repository

import "time"

// Option applies a configuration option to the Store.
type Option func(*Store)

// WithClock sets the clock used to stamp snapshots.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// SQLOption configures SQLReports.
type SQLOption func(*SQLReports)

// WithSQLTeam1OnlySeasons credits seasons from team1 appearances only.
func WithSQLTeam1OnlySeasons(on bool) SQLOption {
	return func(r *SQLReports) { r.team1OnlySeasons = on }
}

// WithSQLDefaultMinBalls sets the strike rate qualification used when a
// request leaves it at zero.
func WithSQLDefaultMinBalls(n int) SQLOption {
	return func(r *SQLReports) {
		if n > 0 {
			r.defaultMinBalls = n
		}
	}
}

// WithSQLHighWicketThreshold sets the wicket count a match must exceed.
func WithSQLHighWicketThreshold(n int) SQLOption {
	return func(r *SQLReports) { r.highWicketThreshold = n }
}
