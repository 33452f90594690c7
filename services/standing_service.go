package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
	"github.com/iamkameel/scrbrd-beta-2-sub004/scoring"
)

type StandingService interface {
	Table(ctx context.Context, season string) ([]models.TeamStanding, error)
}

type standingService struct {
	matchRepo   repositories.MatchRepository
	inningsRepo repositories.InningsRepository
	teamRepo    repositories.TeamRepository
}

func NewStandingService(
	matchRepo repositories.MatchRepository,
	inningsRepo repositories.InningsRepository,
	teamRepo repositories.TeamRepository,
) StandingService {
	return &standingService{
		matchRepo:   matchRepo,
		inningsRepo: inningsRepo,
		teamRepo:    teamRepo,
	}
}

// Table recomputes the points table from completed matches on every call.
// Nothing is cached: a corrected ledger or a late result flows straight
// through to points and net run rate.
func (s *standingService) Table(ctx context.Context, season string) ([]models.TeamStanding, error) {
	if season == "" {
		return nil, fmt.Errorf("%w: season is required", ErrValidationFailed)
	}

	matches, err := s.matchRepo.List(ctx, repositories.MatchListFilter{Season: &season})
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for season %s: %w", season, err)
	}

	loaded := make([]models.Match, 0, len(matches))
	teamNames := make(map[int]*models.Team)
	for _, match := range matches {
		if !match.State.IsTerminal() {
			continue
		}
		innings, err := s.inningsRepo.ListByMatch(ctx, match.ID)
		if err != nil {
			return nil, fmt.Errorf("failed to list innings for match %d: %w", match.ID, err)
		}
		match.Innings = make([]models.Innings, 0, len(innings))
		for _, in := range innings {
			match.Innings = append(match.Innings, *in)
		}

		for _, teamID := range []int{match.HomeTeamID, match.AwayTeamID} {
			if _, ok := teamNames[teamID]; ok {
				continue
			}
			team, err := s.teamRepo.GetByID(ctx, teamID)
			if err != nil {
				if errors.Is(err, repositories.ErrTeamNotFound) {
					teamNames[teamID] = nil
					continue
				}
				return nil, fmt.Errorf("failed to get team %d: %w", teamID, err)
			}
			teamNames[teamID] = team
		}
		match.HomeTeam = teamNames[match.HomeTeamID]
		match.AwayTeam = teamNames[match.AwayTeamID]

		loaded = append(loaded, *match)
	}

	return scoring.ComputeStandings(loaded), nil
}
