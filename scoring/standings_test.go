package scoring

import (
	"math"
	"reflect"
	"testing"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

func winner(w models.MatchWinner) *models.MatchWinner { return &w }

func completedMatch(id, homeID, awayID, homeRuns, homeBalls, awayRuns, awayBalls int, w *models.MatchWinner) models.Match {
	return models.Match{
		ID:         id,
		HomeTeamID: homeID,
		AwayTeamID: awayID,
		State:      models.MatchStateCompleted,
		Winner:     w,
		HomeTeam:   &models.Team{ID: homeID, Name: teamName(homeID)},
		AwayTeam:   &models.Team{ID: awayID, Name: teamName(awayID)},
		Innings: []models.Innings{
			{Number: 1, BattingTeamID: homeID, TotalRuns: homeRuns, LegalBalls: homeBalls, Closed: true},
			{Number: 2, BattingTeamID: awayID, TotalRuns: awayRuns, LegalBalls: awayBalls, Closed: true},
		},
	}
}

func teamName(id int) string {
	names := map[int]string{1: "Kingswood", 2: "Riverside", 3: "St Anne", 4: "Hillcrest"}
	return names[id]
}

func TestPointsFormula(t *testing.T) {
	if got := Points(3, 1, 0); got != 7 {
		t.Errorf("points(3 wins, 1 tie, 0 no-results): expected 7, got %d", got)
	}
	if got := Points(0, 0, 0); got != 0 {
		t.Errorf("points of a winless side: expected 0, got %d", got)
	}
	if got := Points(0, 0, 2); got != 2 {
		t.Errorf("two no-results: expected 2, got %d", got)
	}
}

func TestNRRSymmetry(t *testing.T) {
	m := completedMatch(1, 1, 2, 150, 120, 130, 120, winner(models.WinnerHome))
	standings := ComputeStandings([]models.Match{m})
	if len(standings) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(standings))
	}
	var a, b models.TeamStanding
	for _, s := range standings {
		if s.TeamID == 1 {
			a = s
		} else {
			b = s
		}
	}
	if a.RunsFor != b.RunsAgainst || a.RunsAgainst != b.RunsFor {
		t.Errorf("runs for/against must be symmetric: %+v vs %+v", a, b)
	}
	if a.BallsFor != b.BallsAgainst || a.BallsAgainst != b.BallsFor {
		t.Errorf("balls for/against must be symmetric: %+v vs %+v", a, b)
	}
	if math.Abs(a.NetRunRate+b.NetRunRate) > 1e-9 {
		t.Errorf("single-match NRRs must mirror each other: %f vs %f", a.NetRunRate, b.NetRunRate)
	}
}

func TestStandingsDeterministic(t *testing.T) {
	matches := []models.Match{
		completedMatch(1, 1, 2, 150, 120, 130, 120, winner(models.WinnerHome)),
		completedMatch(2, 3, 4, 90, 90, 91, 88, winner(models.WinnerAway)),
		completedMatch(3, 1, 3, 120, 120, 120, 120, winner(models.WinnerTie)),
	}
	first := ComputeStandings(matches)
	second := ComputeStandings(matches)
	if !reflect.DeepEqual(first, second) {
		t.Error("recomputing standings from the same matches must be identical")
	}
}

func TestResultClassificationPrecedence(t *testing.T) {
	// Explicit no-result marker wins over the raw scores.
	m := completedMatch(1, 1, 2, 150, 120, 30, 24, winner(models.WinnerNoResult))
	standings := ComputeStandings([]models.Match{m})
	for _, s := range standings {
		if s.NoResult != 1 || s.Won != 0 || s.Lost != 0 {
			t.Errorf("explicit no-result must take precedence: %+v", s)
		}
		if s.Points != 1 {
			t.Errorf("no-result is worth 1 point, got %d", s.Points)
		}
	}

	// Legacy record without a winner field falls back to raw scores.
	legacy := completedMatch(2, 1, 2, 150, 120, 130, 120, nil)
	standings = ComputeStandings([]models.Match{legacy})
	for _, s := range standings {
		if s.TeamID == 1 && s.Won != 1 {
			t.Errorf("raw-score fallback should award the home win: %+v", s)
		}
		if s.TeamID == 2 && s.Lost != 1 {
			t.Errorf("raw-score fallback should count the away loss: %+v", s)
		}
	}
}

func TestStandingsSortOrder(t *testing.T) {
	matches := []models.Match{
		// Team 1 beats team 2 comfortably, team 3 beats team 4 narrowly.
		completedMatch(1, 1, 2, 180, 120, 100, 120, winner(models.WinnerHome)),
		completedMatch(2, 3, 4, 120, 120, 119, 120, winner(models.WinnerHome)),
	}
	standings := ComputeStandings(matches)
	if len(standings) != 4 {
		t.Fatalf("expected 4 rows, got %d", len(standings))
	}
	// Both winners are on 2 points; team 1's larger margin ranks it first.
	if standings[0].TeamID != 1 || standings[1].TeamID != 3 {
		t.Errorf("NRR must break the points tie: got order %d, %d",
			standings[0].TeamID, standings[1].TeamID)
	}
	if standings[0].Points != 2 || standings[2].Points != 0 {
		t.Errorf("unexpected points: %+v", standings)
	}
}

func TestStandingsSkipsUnfinishedMatches(t *testing.T) {
	live := completedMatch(1, 1, 2, 50, 40, 0, 0, nil)
	live.State = models.MatchStateLive
	standings := ComputeStandings([]models.Match{live})
	if len(standings) != 0 {
		t.Errorf("live matches must not appear in the table, got %d rows", len(standings))
	}
}

func TestNetRunRateZeroOversGuard(t *testing.T) {
	got := NetRunRate(100, 0, 50, 60)
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("zero overs must not produce NaN/Inf, got %f", got)
	}
	// The zero-overs side of the rate contributes 0.
	want := 0.0 - 50.0/10.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("expected %f, got %f", want, got)
	}
}
