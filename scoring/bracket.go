package scoring

import (
	"fmt"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

// InvalidBracketSizeError reports a team count the knockout stage cannot be
// built from.
type InvalidBracketSizeError struct {
	Size int
}

func (e *InvalidBracketSizeError) Error() string {
	return fmt.Sprintf("invalid bracket size %d: must be 4, 8 or 16 teams", e.Size)
}

// roundLabels maps a field size to its round names, outermost first.
var roundLabels = map[int][]string{
	4:  {"Semifinals", "Final"},
	8:  {"Quarterfinals", "Semifinals", "Final"},
	16: {"Round of 16", "Quarterfinals", "Semifinals", "Final"},
}

// GenerateBracket builds a single-elimination bracket from an ordered seed
// list. First-round slots pair sequentially: seed[0] vs seed[1], seed[2] vs
// seed[3], and so on. Later rounds are pending, referencing their source
// matches by UID.
func GenerateBracket(teamIDs []int) (*models.TournamentBracket, error) {
	labels, ok := roundLabels[len(teamIDs)]
	if !ok {
		return nil, &InvalidBracketSizeError{Size: len(teamIDs)}
	}

	bracket := &models.TournamentBracket{
		Size:    len(teamIDs),
		Rounds:  append([]string(nil), labels...),
		Matches: make([]models.BracketMatch, 0, len(teamIDs)-1),
	}

	matchesInRound := len(teamIDs) / 2
	for round := 1; round <= len(labels); round++ {
		for order := 1; order <= matchesInRound; order++ {
			bm := models.BracketMatch{
				UID:          fmt.Sprintf("R%dM%d", round, order),
				Round:        round,
				OrderInRound: order,
				State:        models.BracketMatchPending,
			}
			if round == 1 {
				home := teamIDs[(order-1)*2]
				away := teamIDs[(order-1)*2+1]
				bm.HomeTeamID = &home
				bm.AwayTeamID = &away
				bm.State = models.BracketMatchScheduled
			} else {
				sourceHome := fmt.Sprintf("R%dM%d", round-1, order*2-1)
				sourceAway := fmt.Sprintf("R%dM%d", round-1, order*2)
				bm.SourceHomeUID = &sourceHome
				bm.SourceAwayUID = &sourceAway
			}
			bracket.Matches = append(bracket.Matches, bm)
		}
		matchesInRound /= 2
	}

	return bracket, nil
}

// RefreshBracketFromMatches reconciles the bracket against actual match
// records: nodes whose MatchID points at a completed match get their score
// and winner filled in, and the winner is propagated into the next round's
// slot. Re-running with the same match data is a no-op.
func RefreshBracketFromMatches(bracket *models.TournamentBracket, matches []models.Match) {
	byID := make(map[int]models.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}
	byUID := make(map[string]*models.BracketMatch, len(bracket.Matches))
	for i := range bracket.Matches {
		byUID[bracket.Matches[i].UID] = &bracket.Matches[i]
	}

	for i := range bracket.Matches {
		bm := &bracket.Matches[i]
		if bm.MatchID == nil {
			continue
		}
		m, ok := byID[*bm.MatchID]
		if !ok || m.State != models.MatchStateCompleted {
			continue
		}
		winnerID := resolveWinnerTeam(m)
		if winnerID == nil {
			continue
		}
		bm.WinnerTeamID = winnerID
		bm.Score = m.Result
		bm.State = models.BracketMatchCompleted
		propagateWinner(byUID, bm)
	}

	// A pending node becomes schedulable the moment both slots resolve.
	for i := range bracket.Matches {
		bm := &bracket.Matches[i]
		if bm.State == models.BracketMatchPending && bm.HomeTeamID != nil && bm.AwayTeamID != nil {
			bm.State = models.BracketMatchScheduled
		}
	}
}

func propagateWinner(byUID map[string]*models.BracketMatch, completed *models.BracketMatch) {
	for _, next := range byUID {
		if next.SourceHomeUID != nil && *next.SourceHomeUID == completed.UID {
			next.HomeTeamID = completed.WinnerTeamID
		}
		if next.SourceAwayUID != nil && *next.SourceAwayUID == completed.UID {
			next.AwayTeamID = completed.WinnerTeamID
		}
	}
}

// resolveWinnerTeam maps the match's home/away winner marker to a team id.
// Ties and no-results leave a knockout slot unresolved.
func resolveWinnerTeam(m models.Match) *int {
	if m.Winner == nil {
		return nil
	}
	switch *m.Winner {
	case models.WinnerHome:
		id := m.HomeTeamID
		return &id
	case models.WinnerAway:
		id := m.AwayTeamID
		return &id
	}
	return nil
}
