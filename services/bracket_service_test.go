package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

// seededLeague builds four teams with enough completed results that the
// standings order is 1, 2, 3, 4.
func seededLeague(t *testing.T) (*fakeMatchRepo, *fakeInningsRepo, *fakeTeamRepo) {
	t.Helper()

	teams := make([]*models.Team, 0, 4)
	for i := 1; i <= 4; i++ {
		teams = append(teams, &models.Team{ID: i, Name: fmt.Sprintf("Team %d", i)})
	}

	matches := make([]*models.Match, 0)
	id := 1
	// Round-robin where the lower-numbered team always wins.
	for home := 1; home <= 4; home++ {
		for away := home + 1; away <= 4; away++ {
			matches = append(matches, &models.Match{
				ID: id, Season: "2026", HomeTeamID: home, AwayTeamID: away,
				State:  models.MatchStateCompleted,
				Winner: winnerPtr(models.WinnerHome),
			})
			id++
		}
	}

	return newFakeMatchRepo(matches...), newFakeInningsRepo(), newFakeTeamRepo(teams...)
}

func TestSeedBuildsBracketFromStandings(t *testing.T) {
	matchRepo, inningsRepo, teamRepo := seededLeague(t)
	standings := NewStandingService(matchRepo, inningsRepo, teamRepo)
	svc := NewBracketService(newFakeBracketRepo(), matchRepo, standings)

	bracket, err := svc.Seed(context.Background(), "2026", 4)
	if err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if bracket.Season != "2026" || bracket.Size != 4 {
		t.Fatalf("unexpected bracket header: season=%s size=%d", bracket.Season, bracket.Size)
	}
	if len(bracket.Matches) != 3 {
		t.Fatalf("expected 3 nodes for 4 teams, got %d", len(bracket.Matches))
	}

	semi1 := bracket.Matches[0]
	if semi1.HomeTeamID == nil || semi1.AwayTeamID == nil {
		t.Fatal("first semifinal has unresolved slots")
	}
	if *semi1.HomeTeamID != 1 || *semi1.AwayTeamID != 2 {
		t.Errorf("expected 1v2 in the first semifinal, got %dv%d", *semi1.HomeTeamID, *semi1.AwayTeamID)
	}
}

func TestSeedTooFewQualified(t *testing.T) {
	matchRepo, inningsRepo, teamRepo := seededLeague(t)
	standings := NewStandingService(matchRepo, inningsRepo, teamRepo)
	svc := NewBracketService(newFakeBracketRepo(), matchRepo, standings)

	_, err := svc.Seed(context.Background(), "2026", 8)
	if !errors.Is(err, ErrBracketTooFewQualified) {
		t.Fatalf("expected ErrBracketTooFewQualified, got %v", err)
	}
}

func TestSeedTwiceConflicts(t *testing.T) {
	matchRepo, inningsRepo, teamRepo := seededLeague(t)
	standings := NewStandingService(matchRepo, inningsRepo, teamRepo)
	svc := NewBracketService(newFakeBracketRepo(), matchRepo, standings)

	if _, err := svc.Seed(context.Background(), "2026", 4); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	_, err := svc.Seed(context.Background(), "2026", 4)
	if !errors.Is(err, ErrBracketExists) {
		t.Fatalf("expected ErrBracketExists, got %v", err)
	}
}

func TestAssignMatchAndRefresh(t *testing.T) {
	matchRepo, inningsRepo, teamRepo := seededLeague(t)
	standings := NewStandingService(matchRepo, inningsRepo, teamRepo)
	svc := NewBracketService(newFakeBracketRepo(), matchRepo, standings)

	if _, err := svc.Seed(context.Background(), "2026", 4); err != nil {
		t.Fatalf("seed failed: %v", err)
	}

	// A knockout fixture between seeds 1 and 2, already completed.
	knockout := &models.Match{
		Season: "2026", HomeTeamID: 1, AwayTeamID: 2,
		State:  models.MatchStateCompleted,
		Winner: winnerPtr(models.WinnerHome),
	}
	if err := matchRepo.Create(context.Background(), knockout); err != nil {
		t.Fatalf("create knockout fixture: %v", err)
	}

	t.Run("wrong team pair is rejected", func(t *testing.T) {
		wrong := &models.Match{
			Season: "2026", HomeTeamID: 3, AwayTeamID: 4,
			State: models.MatchStateScheduled,
		}
		if err := matchRepo.Create(context.Background(), wrong); err != nil {
			t.Fatalf("create fixture: %v", err)
		}
		_, err := svc.AssignMatch(context.Background(), "2026", "R1M1", wrong.ID)
		if !errors.Is(err, ErrValidationFailed) {
			t.Fatalf("expected ErrValidationFailed, got %v", err)
		}
	})

	t.Run("unknown node", func(t *testing.T) {
		_, err := svc.AssignMatch(context.Background(), "2026", "R9M9", knockout.ID)
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})

	if _, err := svc.AssignMatch(context.Background(), "2026", "R1M1", knockout.ID); err != nil {
		t.Fatalf("assign failed: %v", err)
	}

	bracket, err := svc.Get(context.Background(), "2026")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}

	var semi1, final *models.BracketMatch
	for i := range bracket.Matches {
		switch bracket.Matches[i].UID {
		case "R1M1":
			semi1 = &bracket.Matches[i]
		case "R2M1":
			final = &bracket.Matches[i]
		}
	}
	if semi1 == nil || final == nil {
		t.Fatal("bracket nodes missing")
	}
	if semi1.State != models.BracketMatchCompleted {
		t.Errorf("expected completed semifinal, got %s", semi1.State)
	}
	if semi1.WinnerTeamID == nil || *semi1.WinnerTeamID != 1 {
		t.Errorf("expected team 1 as semifinal winner, got %v", semi1.WinnerTeamID)
	}
	if final.HomeTeamID == nil || *final.HomeTeamID != 1 {
		t.Errorf("winner was not propagated into the final, got %v", final.HomeTeamID)
	}
}

func TestDeleteBracket(t *testing.T) {
	matchRepo, inningsRepo, teamRepo := seededLeague(t)
	standings := NewStandingService(matchRepo, inningsRepo, teamRepo)
	svc := NewBracketService(newFakeBracketRepo(), matchRepo, standings)

	if _, err := svc.Seed(context.Background(), "2026", 4); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "2026"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "2026"); !errors.Is(err, ErrBracketNotFound) {
		t.Fatalf("expected ErrBracketNotFound, got %v", err)
	}
}
