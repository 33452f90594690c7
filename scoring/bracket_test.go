package scoring

import (
	"errors"
	"reflect"
	"testing"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

func TestGenerateBracketRejectsBadSizes(t *testing.T) {
	for _, size := range []int{0, 2, 3, 6, 12, 32} {
		teamIDs := make([]int, size)
		for i := range teamIDs {
			teamIDs[i] = i + 1
		}
		_, err := GenerateBracket(teamIDs)
		var invalid *InvalidBracketSizeError
		if !errors.As(err, &invalid) {
			t.Errorf("size %d: expected InvalidBracketSizeError, got %v", size, err)
			continue
		}
		if invalid.Size != size {
			t.Errorf("error should carry the offending size, got %d", invalid.Size)
		}
	}
}

func TestGenerateBracketEightTeams(t *testing.T) {
	teamIDs := []int{10, 20, 30, 40, 50, 60, 70, 80}
	bracket, err := GenerateBracket(teamIDs)
	if err != nil {
		t.Fatal(err)
	}

	wantRounds := []string{"Quarterfinals", "Semifinals", "Final"}
	if !reflect.DeepEqual(bracket.Rounds, wantRounds) {
		t.Errorf("rounds: expected %v, got %v", wantRounds, bracket.Rounds)
	}
	if len(bracket.Matches) != 7 {
		t.Fatalf("8 teams should yield 7 bracket matches, got %d", len(bracket.Matches))
	}

	firstRound := make([]models.BracketMatch, 0)
	for _, bm := range bracket.Matches {
		if bm.Round == 1 {
			firstRound = append(firstRound, bm)
		}
	}
	if len(firstRound) != 4 {
		t.Fatalf("expected 4 first-round matches, got %d", len(firstRound))
	}
	for i, bm := range firstRound {
		wantHome, wantAway := teamIDs[i*2], teamIDs[i*2+1]
		if bm.HomeTeamID == nil || *bm.HomeTeamID != wantHome ||
			bm.AwayTeamID == nil || *bm.AwayTeamID != wantAway {
			t.Errorf("match %d: expected pairing %d vs %d, got %v vs %v",
				i+1, wantHome, wantAway, bm.HomeTeamID, bm.AwayTeamID)
		}
		if bm.State != models.BracketMatchScheduled {
			t.Errorf("seeded first-round match should be scheduled, got %s", bm.State)
		}
	}

	for _, bm := range bracket.Matches {
		if bm.Round == 1 {
			continue
		}
		if bm.State != models.BracketMatchPending {
			t.Errorf("%s: later rounds start pending, got %s", bm.UID, bm.State)
		}
		if bm.HomeTeamID != nil || bm.AwayTeamID != nil {
			t.Errorf("%s: later-round slots must start empty", bm.UID)
		}
		if bm.SourceHomeUID == nil || bm.SourceAwayUID == nil {
			t.Errorf("%s: later-round slots must reference their source matches", bm.UID)
		}
	}
}

func TestGenerateBracketFourAndSixteen(t *testing.T) {
	four, err := GenerateBracket([]int{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(four.Rounds, []string{"Semifinals", "Final"}) {
		t.Errorf("4 teams: unexpected rounds %v", four.Rounds)
	}

	teamIDs := make([]int, 16)
	for i := range teamIDs {
		teamIDs[i] = i + 1
	}
	sixteen, err := GenerateBracket(teamIDs)
	if err != nil {
		t.Fatal(err)
	}
	if len(sixteen.Matches) != 15 {
		t.Errorf("16 teams should yield 15 matches, got %d", len(sixteen.Matches))
	}
	if sixteen.Rounds[0] != "Round of 16" {
		t.Errorf("unexpected opening round label %q", sixteen.Rounds[0])
	}
}

func TestRefreshBracketFromMatchesIdempotent(t *testing.T) {
	bracket, err := GenerateBracket([]int{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}

	// Link the first semifinal to a played match and reconcile.
	matchID := 77
	bracket.Matches[0].MatchID = &matchID
	result := "Kingswood won by 23 runs"
	played := models.Match{
		ID:         matchID,
		HomeTeamID: 1,
		AwayTeamID: 2,
		State:      models.MatchStateCompleted,
		Winner:     winner(models.WinnerHome),
		Result:     &result,
	}

	RefreshBracketFromMatches(bracket, []models.Match{played})

	sf := bracket.Matches[0]
	if sf.State != models.BracketMatchCompleted {
		t.Errorf("reconciled node should be completed, got %s", sf.State)
	}
	if sf.WinnerTeamID == nil || *sf.WinnerTeamID != 1 {
		t.Errorf("winner team should be 1, got %v", sf.WinnerTeamID)
	}
	if sf.Score == nil || *sf.Score != result {
		t.Errorf("score should carry the result string, got %v", sf.Score)
	}

	final := bracket.Matches[len(bracket.Matches)-1]
	if final.HomeTeamID == nil || *final.HomeTeamID != 1 {
		t.Errorf("winner must flow into the final's home slot, got %v", final.HomeTeamID)
	}
	if final.AwayTeamID != nil {
		t.Error("unplayed semifinal must leave the final's away slot empty")
	}

	before := append([]models.BracketMatch(nil), bracket.Matches...)
	RefreshBracketFromMatches(bracket, []models.Match{played})
	if !reflect.DeepEqual(before, bracket.Matches) {
		t.Error("refresh must be idempotent for unchanged match data")
	}
}

func TestRefreshIgnoresUnfinishedAndUnlinkedMatches(t *testing.T) {
	bracket, err := GenerateBracket([]int{1, 2, 3, 4})
	if err != nil {
		t.Fatal(err)
	}
	matchID := 5
	bracket.Matches[0].MatchID = &matchID
	live := models.Match{ID: matchID, HomeTeamID: 1, AwayTeamID: 2, State: models.MatchStateLive}

	RefreshBracketFromMatches(bracket, []models.Match{live})
	if bracket.Matches[0].State != models.BracketMatchScheduled {
		t.Errorf("a live match must not complete its bracket node, got %s", bracket.Matches[0].State)
	}
}
