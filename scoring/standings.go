package scoring

import (
	"fmt"
	"sort"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

// Points applies the standard competition scoring: win = 2, tie = 1,
// no-result = 1, loss = 0. Kept as its own function so the formula can be
// swapped per competition rule-set.
func Points(won, tied, noResult int) int {
	return won*2 + tied + noResult
}

// NetRunRate is (runs for / overs faced) - (runs against / overs bowled).
// A side with zero overs contributes 0 to its half of the rate.
func NetRunRate(runsFor, ballsFor, runsAgainst, ballsAgainst int) float64 {
	var forRate, againstRate float64
	if ballsFor > 0 {
		forRate = float64(runsFor) / OversDecimal(ballsFor)
	}
	if ballsAgainst > 0 {
		againstRate = float64(runsAgainst) / OversDecimal(ballsAgainst)
	}
	return forRate - againstRate
}

// ComputeStandings fully recomputes the points table from the given matches.
// Non-completed matches are skipped. Rows are created in first-encounter
// order; the final sort is points desc, net run rate desc, then team name asc
// purely so that equal inputs always produce identical output.
func ComputeStandings(matches []models.Match) []models.TeamStanding {
	order := make([]int, 0)
	table := make(map[int]*models.TeamStanding)

	row := func(teamID int, name string) *models.TeamStanding {
		s, ok := table[teamID]
		if !ok {
			s = &models.TeamStanding{TeamID: teamID, TeamName: name}
			table[teamID] = s
			order = append(order, teamID)
		}
		if s.TeamName == "" && name != "" {
			s.TeamName = name
		}
		return s
	}

	for _, m := range matches {
		// Abandoned matches still count: both sides get the no-result point.
		if m.State != models.MatchStateCompleted && m.State != models.MatchStateAbandoned {
			continue
		}
		home := row(m.HomeTeamID, teamDisplayName(m.HomeTeam, m.HomeTeamID))
		away := row(m.AwayTeamID, teamDisplayName(m.AwayTeam, m.AwayTeamID))

		home.Played++
		away.Played++

		homeRuns, homeBalls, awayRuns, awayBalls := matchAggregates(m)
		// Run rate aggregates come from completed matches only; an abandoned
		// match contributes the point but not its partial scores.
		if m.State == models.MatchStateCompleted {
			home.RunsFor += homeRuns
			home.BallsFor += homeBalls
			home.RunsAgainst += awayRuns
			home.BallsAgainst += awayBalls
			away.RunsFor += awayRuns
			away.BallsFor += awayBalls
			away.RunsAgainst += homeRuns
			away.BallsAgainst += homeBalls
		}

		switch classifyResult(m, homeRuns, awayRuns) {
		case models.WinnerHome:
			home.Won++
			away.Lost++
		case models.WinnerAway:
			away.Won++
			home.Lost++
		case models.WinnerTie:
			home.Tied++
			away.Tied++
		case models.WinnerNoResult:
			home.NoResult++
			away.NoResult++
		}
	}

	standings := make([]models.TeamStanding, 0, len(order))
	for _, teamID := range order {
		s := table[teamID]
		s.Points = Points(s.Won, s.Tied, s.NoResult)
		s.NetRunRate = NetRunRate(s.RunsFor, s.BallsFor, s.RunsAgainst, s.BallsAgainst)
		standings = append(standings, *s)
	}

	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		if standings[i].NetRunRate != standings[j].NetRunRate {
			return standings[i].NetRunRate > standings[j].NetRunRate
		}
		return standings[i].TeamName < standings[j].TeamName
	})

	return standings
}

// classifyResult decides the outcome with explicit markers taking precedence
// over the raw-score fallback. The fallback exists for legacy match records
// that never recorded a winner field and must stay in place.
func classifyResult(m models.Match, homeRuns, awayRuns int) models.MatchWinner {
	if m.Winner != nil {
		switch *m.Winner {
		case models.WinnerTie, models.WinnerNoResult, models.WinnerHome, models.WinnerAway:
			return *m.Winner
		}
	}
	switch {
	case homeRuns > awayRuns:
		return models.WinnerHome
	case awayRuns > homeRuns:
		return models.WinnerAway
	default:
		return models.WinnerTie
	}
}

// matchAggregates sums runs scored and legal balls faced per side across all
// innings of the match; home's for-figures are away's against-figures.
func matchAggregates(m models.Match) (homeRuns, homeBalls, awayRuns, awayBalls int) {
	for _, inn := range m.Innings {
		if inn.BattingTeamID == m.HomeTeamID {
			homeRuns += inn.TotalRuns
			homeBalls += inn.LegalBalls
		} else if inn.BattingTeamID == m.AwayTeamID {
			awayRuns += inn.TotalRuns
			awayBalls += inn.LegalBalls
		}
	}
	return
}

func teamDisplayName(t *models.Team, teamID int) string {
	if t != nil && t.Name != "" {
		return t.Name
	}
	return fmt.Sprintf("Team %d", teamID)
}
