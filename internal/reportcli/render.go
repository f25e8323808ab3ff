package reportcli

import (
	"encoding/json"
	"io"
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/okian/crease/internal/domain/model"
	"github.com/okian/crease/internal/domain/types"
	"github.com/olekukonko/tablewriter"
)

// renderJSON writes v as indented JSON.
func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// renderTable writes a titled table for one report result.
func renderTable(w io.Writer, res types.ReportResult) error {
	header, records, err := tabulate(res.Rows)
	if err != nil {
		return err
	}

	title := res.Report
	if res.Season != 0 {
		title += " (season " + strconv.Itoa(res.Season) + ")"
	}
	if res.MinBalls != 0 {
		title += " (min balls " + strconv.Itoa(res.MinBalls) + ")"
	}
	if _, err := io.WriteString(w, "\n"+title+"\n"); err != nil {
		return err
	}
	if len(records) == 0 {
		_, err := io.WriteString(w, "  (no rows)\n")
		return err
	}

	table := tablewriter.NewWriter(w)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader(header)
	table.AppendBulk(records)
	table.Render()
	return nil
}

func itoa(n int) string     { return strconv.Itoa(n) }
func ftoa(f float64) string { return strconv.FormatFloat(f, 'f', 2, 64) }
func id64(id int64) string  { return strconv.FormatInt(id, 10) }

// tabulate turns a report's rows into a header and string records.
func tabulate(rows any) ([]string, [][]string, error) {
	var records [][]string
	switch rs := rows.(type) {
	case []types.TeamWins:
		for _, r := range rs {
			records = append(records, []string{itoa(r.Rank), r.TeamName, itoa(r.TotalWins)})
		}
		return []string{"rank", "team", "wins"}, records, nil
	case []types.PlayerRuns:
		for _, r := range rs {
			records = append(records, []string{itoa(r.Rank), r.PlayerName, itoa(r.TotalRuns)})
		}
		return []string{"rank", "player", "runs"}, records, nil
	case []types.MatchWickets:
		for _, r := range rs {
			records = append(records, []string{id64(r.MatchID), r.Date.Format(model.DateLayout), itoa(r.TotalWickets)})
		}
		return []string{"match", "date", "wickets"}, records, nil
	case []types.PlayerAverage:
		for _, r := range rs {
			records = append(records, []string{r.PlayerName, ftoa(r.AverageRuns), itoa(r.Matches)})
		}
		return []string{"player", "average", "matches"}, records, nil
	case []types.VenueWickets:
		for _, r := range rs {
			records = append(records, []string{itoa(r.Rank), r.Venue, id64(r.MatchID), itoa(r.TotalWickets)})
		}
		return []string{"rank", "venue", "match", "wickets"}, records, nil
	case []types.PlayerTeams:
		for _, r := range rs {
			records = append(records, []string{itoa(r.Rank), r.PlayerName, itoa(r.TeamCount)})
		}
		return []string{"rank", "player", "teams"}, records, nil
	case []types.TeamSeasons:
		for _, r := range rs {
			records = append(records, []string{r.TeamName, itoa(r.SeasonsPlayed)})
		}
		return []string{"team", "seasons"}, records, nil
	case []types.StrikeRate:
		for _, r := range rs {
			records = append(records, []string{itoa(r.Rank), r.PlayerName, itoa(r.Runs), itoa(r.BallsFaced), ftoa(r.StrikeRate)})
		}
		return []string{"rank", "player", "runs", "balls", "strike rate"}, records, nil
	}
	return nil, nil, errors.Newf("unsupported rows %T", rows)
}
