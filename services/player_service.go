package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
)

type PlayerService interface {
	Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error)
	GetByID(ctx context.Context, id int) (*models.Player, error)
	ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error)
	Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error)
	Delete(ctx context.Context, id int) error
}

type CreatePlayerInput struct {
	TeamID       int                  `json:"team_id"`
	FirstName    string               `json:"first_name"`
	LastName     string               `json:"last_name"`
	JerseyNumber *int                 `json:"jersey_number"`
	BattingStyle *models.BattingStyle `json:"batting_style"`
	BowlingStyle *models.BowlingStyle `json:"bowling_style"`
	IsCaptain    bool                 `json:"is_captain"`
	IsKeeper     bool                 `json:"is_keeper"`
}

type UpdatePlayerInput struct {
	TeamID       *int                 `json:"team_id"`
	FirstName    *string              `json:"first_name"`
	LastName     *string              `json:"last_name"`
	JerseyNumber *int                 `json:"jersey_number"`
	BattingStyle *models.BattingStyle `json:"batting_style"`
	BowlingStyle *models.BowlingStyle `json:"bowling_style"`
	IsCaptain    *bool                `json:"is_captain"`
	IsKeeper     *bool                `json:"is_keeper"`
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	teamRepo   repositories.TeamRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository, teamRepo repositories.TeamRepository) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		teamRepo:   teamRepo,
	}
}

func (s *playerService) Create(ctx context.Context, input CreatePlayerInput) (*models.Player, error) {
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, ErrPlayerNameRequired
	}

	if _, err := s.teamRepo.GetByID(ctx, input.TeamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team %d: %w", input.TeamID, err)
	}

	player := &models.Player{
		TeamID:       input.TeamID,
		FirstName:    firstName,
		LastName:     strings.TrimSpace(input.LastName),
		JerseyNumber: input.JerseyNumber,
		BattingStyle: input.BattingStyle,
		BowlingStyle: input.BowlingStyle,
		IsCaptain:    input.IsCaptain,
		IsKeeper:     input.IsKeeper,
	}
	if err := s.playerRepo.Create(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create player: %w", err)
	}
	return player, nil
}

func (s *playerService) GetByID(ctx context.Context, id int) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) ListByTeam(ctx context.Context, teamID int) ([]*models.Player, error) {
	if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to check team %d: %w", teamID, err)
	}
	players, err := s.playerRepo.ListByTeam(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", teamID, err)
	}
	return players, nil
}

func (s *playerService) Update(ctx context.Context, id int, input UpdatePlayerInput) (*models.Player, error) {
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}

	if input.TeamID != nil {
		player.TeamID = *input.TeamID
	}
	if input.FirstName != nil {
		firstName := strings.TrimSpace(*input.FirstName)
		if firstName == "" {
			return nil, ErrPlayerNameRequired
		}
		player.FirstName = firstName
	}
	if input.LastName != nil {
		player.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.JerseyNumber != nil {
		player.JerseyNumber = input.JerseyNumber
	}
	if input.BattingStyle != nil {
		player.BattingStyle = input.BattingStyle
	}
	if input.BowlingStyle != nil {
		player.BowlingStyle = input.BowlingStyle
	}
	if input.IsCaptain != nil {
		player.IsCaptain = *input.IsCaptain
	}
	if input.IsKeeper != nil {
		player.IsKeeper = *input.IsKeeper
	}

	if err := s.playerRepo.Update(ctx, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update player %d: %w", id, err)
	}
	return player, nil
}

func (s *playerService) Delete(ctx context.Context, id int) error {
	err := s.playerRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return ErrPlayerNotFound
		}
		return fmt.Errorf("failed to delete player %d: %w", id, err)
	}
	return nil
}
