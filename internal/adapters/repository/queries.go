package repository

// MySQL 8 report queries. Each mirrors the in-memory report of the same
// name, including its tie order.
const (
	// SeasonWinLeadersSQL ranks teams by wins in a season.
	// Parameters: season.
	SeasonWinLeadersSQL = `
		SELECT rnk, team_id, team_name, total_wins
		FROM (
			SELECT t.team_id, t.team_name, COUNT(*) AS total_wins,
				DENSE_RANK() OVER (ORDER BY COUNT(*) DESC) AS rnk
			FROM matches m
			JOIN teams t ON t.team_id = m.winner_team_id
			WHERE m.season = ? AND m.winner_team_id IS NOT NULL
			GROUP BY t.team_id, t.team_name
		) ranked
		WHERE rnk = 1
		ORDER BY rnk, team_name, team_id`

	// TopRunScorersSQL ranks batsmen by career runs.
	// Parameters: max rank.
	TopRunScorersSQL = `
		SELECT rnk, player_id, player_name, total_runs
		FROM (
			SELECT p.player_id, p.player_name, SUM(d.runs_scored) AS total_runs,
				DENSE_RANK() OVER (ORDER BY SUM(d.runs_scored) DESC) AS rnk
			FROM deliveries d
			JOIN players p ON p.player_id = d.batsman_id
			GROUP BY p.player_id, p.player_name
		) ranked
		WHERE rnk <= ?
		ORDER BY rnk, player_name, player_id`

	// HighWicketMatchesSQL lists matches with more wickets than a threshold.
	// Parameters: threshold.
	HighWicketMatchesSQL = `
		SELECT m.match_id, m.date, SUM(d.is_wicket) AS total_wickets
		FROM matches m
		JOIN deliveries d ON d.match_id = m.match_id
		GROUP BY m.match_id, m.date
		HAVING SUM(d.is_wicket) > ?
		ORDER BY m.match_id`

	// TopSeasonAverageSQL finds the best runs per match batted in a season.
	// Parameters: season.
	TopSeasonAverageSQL = `
		SELECT p.player_id, p.player_name,
			CAST(SUM(pm.runs) AS DOUBLE) / COUNT(*) AS average_runs,
			COUNT(*) AS matches
		FROM (
			SELECT d.batsman_id, d.match_id, SUM(d.runs_scored) AS runs
			FROM deliveries d
			JOIN matches m ON m.match_id = d.match_id
			WHERE m.season = ?
			GROUP BY d.batsman_id, d.match_id
		) pm
		JOIN players p ON p.player_id = pm.batsman_id
		GROUP BY p.player_id, p.player_name
		ORDER BY average_runs DESC, p.player_name, p.player_id
		LIMIT 1`

	// MostWicketsVenueSQL ranks (venue, match) pairs by wickets.
	MostWicketsVenueSQL = `
		SELECT rnk, venue, match_id, total_wickets
		FROM (
			SELECT m.venue, m.match_id, SUM(d.is_wicket) AS total_wickets,
				DENSE_RANK() OVER (ORDER BY SUM(d.is_wicket) DESC) AS rnk
			FROM matches m
			JOIN deliveries d ON d.match_id = m.match_id
			GROUP BY m.venue, m.match_id
		) ranked
		WHERE rnk = 1
		ORDER BY venue, match_id`

	// MostTeamsPlayerSQL credits bowlers to team1 and batsmen to team2 and
	// ranks players by distinct teams.
	MostTeamsPlayerSQL = `
		SELECT rnk, player_id, player_name, team_count
		FROM (
			SELECT p.player_id, p.player_name, COUNT(DISTINCT c.team_id) AS team_count,
				DENSE_RANK() OVER (ORDER BY COUNT(DISTINCT c.team_id) DESC) AS rnk
			FROM (
				SELECT d.bowler_id AS player_id, m.team1_id AS team_id
				FROM deliveries d JOIN matches m ON m.match_id = d.match_id
				UNION
				SELECT d.batsman_id AS player_id, m.team2_id AS team_id
				FROM deliveries d JOIN matches m ON m.match_id = d.match_id
			) c
			JOIN players p ON p.player_id = c.player_id
			GROUP BY p.player_id, p.player_name
		) ranked
		WHERE rnk = 1
		ORDER BY player_name, player_id`

	// EverPresentTeamsSQL lists teams that appear, on either side, in every
	// season.
	EverPresentTeamsSQL = `
		SELECT t.team_name, COUNT(DISTINCT a.season) AS seasons_played
		FROM (
			SELECT team1_id AS team_id, season FROM matches
			UNION
			SELECT team2_id AS team_id, season FROM matches
		) a
		JOIN teams t ON t.team_id = a.team_id
		GROUP BY t.team_id, t.team_name
		HAVING COUNT(DISTINCT a.season) = (SELECT COUNT(DISTINCT season) FROM matches)
		ORDER BY t.team_name`

	// EverPresentTeamsTeam1SQL is EverPresentTeamsSQL crediting team1 only.
	EverPresentTeamsTeam1SQL = `
		SELECT t.team_name, COUNT(DISTINCT m.season) AS seasons_played
		FROM matches m
		JOIN teams t ON t.team_id = m.team1_id
		GROUP BY t.team_id, t.team_name
		HAVING COUNT(DISTINCT m.season) = (SELECT COUNT(DISTINCT season) FROM matches)
		ORDER BY t.team_name`

	// TopStrikeRatesSQL ranks qualified batsmen by strike rate in a season.
	// Parameters: season, min balls, max rank.
	TopStrikeRatesSQL = `
		SELECT rnk, player_id, player_name, runs, balls_faced, strike_rate
		FROM (
			SELECT p.player_id, p.player_name,
				SUM(d.runs_scored) AS runs,
				COUNT(*) AS balls_faced,
				CAST(SUM(d.runs_scored) AS DOUBLE) / COUNT(*) * 100 AS strike_rate,
				DENSE_RANK() OVER (ORDER BY CAST(SUM(d.runs_scored) AS DOUBLE) / COUNT(*) DESC) AS rnk
			FROM deliveries d
			JOIN matches m ON m.match_id = d.match_id
			JOIN players p ON p.player_id = d.batsman_id
			WHERE m.season = ?
			GROUP BY p.player_id, p.player_name
			HAVING COUNT(*) >= ?
		) ranked
		WHERE rnk <= ?
		ORDER BY rnk, player_name, player_id`
)
