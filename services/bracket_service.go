package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
	"github.com/iamkameel/scrbrd-beta-2-sub004/scoring"
)

type BracketService interface {
	Seed(ctx context.Context, season string, size int) (*models.TournamentBracket, error)
	Get(ctx context.Context, season string) (*models.TournamentBracket, error)
	AssignMatch(ctx context.Context, season, nodeUID string, matchID int) (*models.TournamentBracket, error)
	Delete(ctx context.Context, season string) error
}

type bracketService struct {
	bracketRepo repositories.BracketRepository
	matchRepo   repositories.MatchRepository
	standings   StandingService
}

func NewBracketService(
	bracketRepo repositories.BracketRepository,
	matchRepo repositories.MatchRepository,
	standings StandingService,
) BracketService {
	return &bracketService{
		bracketRepo: bracketRepo,
		matchRepo:   matchRepo,
		standings:   standings,
	}
}

// Seed builds a single-elimination bracket from the season's points table.
// The top `size` teams qualify in table order, paired 1v2, 3v4 and so on.
func (s *bracketService) Seed(ctx context.Context, season string, size int) (*models.TournamentBracket, error) {
	table, err := s.standings.Table(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(table) < size {
		return nil, fmt.Errorf("%w: %d teams have results, %d needed", ErrBracketTooFewQualified, len(table), size)
	}

	teamIDs := make([]int, 0, size)
	for _, row := range table[:size] {
		teamIDs = append(teamIDs, row.TeamID)
	}

	bracket, err := scoring.GenerateBracket(teamIDs)
	if err != nil {
		return nil, err
	}
	bracket.Season = season

	if err := s.bracketRepo.Create(ctx, bracket); err != nil {
		if errors.Is(err, repositories.ErrBracketSeasonConflict) {
			return nil, ErrBracketExists
		}
		return nil, fmt.Errorf("failed to save bracket for season %s: %w", season, err)
	}
	return bracket, nil
}

// Get returns the bracket with completed match results reconciled in. The
// refresh is idempotent, so re-reading after new results is always safe.
func (s *bracketService) Get(ctx context.Context, season string) (*models.TournamentBracket, error) {
	bracket, err := s.bracketRepo.GetBySeason(ctx, season)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to get bracket for season %s: %w", season, err)
	}

	matches, err := s.linkedMatches(ctx, bracket)
	if err != nil {
		return nil, err
	}
	scoring.RefreshBracketFromMatches(bracket, matches)

	if err := s.bracketRepo.UpdateMatches(ctx, bracket); err != nil {
		return nil, fmt.Errorf("failed to persist refreshed bracket: %w", err)
	}
	return bracket, nil
}

func (s *bracketService) linkedMatches(ctx context.Context, bracket *models.TournamentBracket) ([]models.Match, error) {
	matches := make([]models.Match, 0)
	for _, node := range bracket.Matches {
		if node.MatchID == nil {
			continue
		}
		match, err := s.matchRepo.GetByID(ctx, *node.MatchID)
		if err != nil {
			if errors.Is(err, repositories.ErrMatchNotFound) {
				continue
			}
			return nil, fmt.Errorf("failed to get bracket match %d: %w", *node.MatchID, err)
		}
		matches = append(matches, *match)
	}
	return matches, nil
}

// AssignMatch links a bracket node to a real fixture so results flow back in
// on refresh.
func (s *bracketService) AssignMatch(ctx context.Context, season, nodeUID string, matchID int) (*models.TournamentBracket, error) {
	bracket, err := s.bracketRepo.GetBySeason(ctx, season)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return nil, ErrBracketNotFound
		}
		return nil, fmt.Errorf("failed to get bracket for season %s: %w", season, err)
	}

	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}

	var node *models.BracketMatch
	for i := range bracket.Matches {
		if bracket.Matches[i].UID == nodeUID {
			node = &bracket.Matches[i]
			break
		}
	}
	if node == nil {
		return nil, fmt.Errorf("%w: bracket node %s", ErrNotFound, nodeUID)
	}
	if node.HomeTeamID == nil || node.AwayTeamID == nil {
		return nil, fmt.Errorf("%w: bracket node %s has unresolved team slots", ErrValidationFailed, nodeUID)
	}
	pairMatches := (match.HomeTeamID == *node.HomeTeamID && match.AwayTeamID == *node.AwayTeamID) ||
		(match.HomeTeamID == *node.AwayTeamID && match.AwayTeamID == *node.HomeTeamID)
	if !pairMatches {
		return nil, fmt.Errorf("%w: fixture teams do not match bracket node %s", ErrValidationFailed, nodeUID)
	}

	node.MatchID = &matchID
	if err := s.bracketRepo.UpdateMatches(ctx, bracket); err != nil {
		return nil, fmt.Errorf("failed to persist bracket assignment: %w", err)
	}
	return bracket, nil
}

func (s *bracketService) Delete(ctx context.Context, season string) error {
	bracket, err := s.bracketRepo.GetBySeason(ctx, season)
	if err != nil {
		if errors.Is(err, repositories.ErrBracketNotFound) {
			return ErrBracketNotFound
		}
		return fmt.Errorf("failed to get bracket for season %s: %w", season, err)
	}
	if err := s.bracketRepo.Delete(ctx, bracket.ID); err != nil {
		return fmt.Errorf("failed to delete bracket for season %s: %w", season, err)
	}
	return nil
}
