package services

import (
	"context"
	"errors"
	"testing"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

func winnerPtr(w models.MatchWinner) *models.MatchWinner { return &w }

func TestTableRequiresSeason(t *testing.T) {
	svc := NewStandingService(newFakeMatchRepo(), newFakeInningsRepo(), newFakeTeamRepo())
	_, err := svc.Table(context.Background(), "")
	if !errors.Is(err, ErrValidationFailed) {
		t.Fatalf("expected ErrValidationFailed, got %v", err)
	}
}

func TestTableAggregatesTerminalMatches(t *testing.T) {
	kingswood := &models.Team{ID: 1, Name: "Kingswood"}
	riverside := &models.Team{ID: 2, Name: "Riverside"}
	stfrancis := &models.Team{ID: 3, Name: "St Francis"}

	matches := []*models.Match{
		// Kingswood 160/120 beats Riverside 140/120.
		{ID: 1, Season: "2026", HomeTeamID: 1, AwayTeamID: 2,
			State: models.MatchStateCompleted, Winner: winnerPtr(models.WinnerHome)},
		// St Francis and Kingswood abandoned: a point each, no runs counted.
		{ID: 2, Season: "2026", HomeTeamID: 3, AwayTeamID: 1,
			State: models.MatchStateAbandoned, Winner: winnerPtr(models.WinnerNoResult)},
		// Live match must not appear anywhere in the table.
		{ID: 3, Season: "2026", HomeTeamID: 2, AwayTeamID: 3,
			State: models.MatchStateLive},
		// Different season, completed, must be excluded.
		{ID: 4, Season: "2025", HomeTeamID: 1, AwayTeamID: 2,
			State: models.MatchStateCompleted, Winner: winnerPtr(models.WinnerAway)},
	}

	innings := []*models.Innings{
		{ID: 1, MatchID: 1, Number: 1, BattingTeamID: 1, BowlingTeamID: 2, TotalRuns: 160, LegalBalls: 120},
		{ID: 2, MatchID: 1, Number: 2, BattingTeamID: 2, BowlingTeamID: 1, TotalRuns: 140, LegalBalls: 120},
	}

	svc := NewStandingService(
		newFakeMatchRepo(matches...),
		newFakeInningsRepo(innings...),
		newFakeTeamRepo(kingswood, riverside, stfrancis),
	)

	table, err := svc.Table(context.Background(), "2026")
	if err != nil {
		t.Fatalf("table failed: %v", err)
	}
	if len(table) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(table))
	}

	if table[0].TeamName != "Kingswood" {
		t.Errorf("expected Kingswood on top, got %s", table[0].TeamName)
	}
	top := table[0]
	if top.Played != 2 || top.Won != 1 || top.NoResult != 1 || top.Points != 3 {
		t.Errorf("unexpected Kingswood row: %+v", top)
	}
	// 160 off 20 overs for, 140 off 20 against.
	if nrr := top.NetRunRate; nrr < 0.99 || nrr > 1.01 {
		t.Errorf("expected Kingswood NRR of 1.0, got %f", nrr)
	}

	for _, row := range table {
		if row.TeamName != "St Francis" {
			continue
		}
		if row.Played != 1 || row.NoResult != 1 || row.Points != 1 {
			t.Errorf("unexpected St Francis row: %+v", row)
		}
		if row.RunsFor != 0 || row.BallsFor != 0 {
			t.Errorf("abandoned match leaked runs into St Francis row: %+v", row)
		}
	}
}
