package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
	"github.com/iamkameel/scrbrd-beta-2-sub004/storage"
)

type TeamService interface {
	Create(ctx context.Context, input CreateTeamInput) (*models.Team, error)
	GetByID(ctx context.Context, id int) (*models.Team, error)
	List(ctx context.Context, schoolID *int) ([]*models.Team, error)
	Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error)
	UploadCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error)
	Delete(ctx context.Context, id int) error
}

type CreateTeamInput struct {
	Name      string  `json:"name"`
	SchoolID  int     `json:"school_id"`
	CoachName *string `json:"coach_name"`
	AgeGroup  *string `json:"age_group"`
}

type UpdateTeamInput struct {
	Name      *string `json:"name"`
	CoachName *string `json:"coach_name"`
	AgeGroup  *string `json:"age_group"`
}

type teamService struct {
	teamRepo   repositories.TeamRepository
	schoolRepo repositories.SchoolRepository
	playerRepo repositories.PlayerRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewTeamService(
	teamRepo repositories.TeamRepository,
	schoolRepo repositories.SchoolRepository,
	playerRepo repositories.PlayerRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) TeamService {
	return &teamService{
		teamRepo:   teamRepo,
		schoolRepo: schoolRepo,
		playerRepo: playerRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *teamService) Create(ctx context.Context, input CreateTeamInput) (*models.Team, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrTeamNameRequired
	}

	if _, err := s.schoolRepo.GetByID(ctx, input.SchoolID); err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to check school %d: %w", input.SchoolID, err)
	}

	team := &models.Team{
		Name:      name,
		SchoolID:  input.SchoolID,
		CoachName: input.CoachName,
		AgeGroup:  input.AgeGroup,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		switch {
		case errors.Is(err, repositories.ErrTeamNameConflict):
			return nil, ErrTeamNameConflict
		case errors.Is(err, repositories.ErrTeamSchoolInvalid):
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to create team: %w", err)
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, id int) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	school, err := s.schoolRepo.GetByID(ctx, team.SchoolID)
	if err == nil {
		populateSchoolCrestURL(school, s.uploader)
		team.School = school
	} else if !errors.Is(err, repositories.ErrSchoolNotFound) {
		return nil, fmt.Errorf("failed to get school for team %d: %w", id, err)
	}

	players, err := s.playerRepo.ListByTeam(ctx, team.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for team %d: %w", id, err)
	}
	team.Players = make([]models.Player, 0, len(players))
	for _, p := range players {
		team.Players = append(team.Players, *p)
	}

	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) List(ctx context.Context, schoolID *int) ([]*models.Team, error) {
	teams, err := s.teamRepo.List(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	for _, team := range teams {
		populateTeamCrestURL(team, s.uploader)
	}
	return teams, nil
}

func (s *teamService) Update(ctx context.Context, id int, input UpdateTeamInput) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrTeamNameRequired
		}
		team.Name = name
	}
	if input.CoachName != nil {
		team.CoachName = input.CoachName
	}
	if input.AgeGroup != nil {
		team.AgeGroup = input.AgeGroup
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		if errors.Is(err, repositories.ErrTeamNameConflict) {
			return nil, ErrTeamNameConflict
		}
		return nil, fmt.Errorf("failed to update team %d: %w", id, err)
	}
	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) UploadCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.Team, error) {
	team, err := s.teamRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to get team %d: %w", id, err)
	}

	ext, err := imageExtensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams/%d/crest%s", team.ID, ext)
	oldKey := team.CrestKey

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload team crest: %w", err)
	}

	if err := s.teamRepo.UpdateCrestKey(ctx, team.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save team crest key: %w", err)
	}
	team.CrestKey = &result.Key

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous team crest", "team_id", team.ID, "key", *oldKey, "error", err)
		}
	}

	populateTeamCrestURL(team, s.uploader)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, id int) error {
	err := s.teamRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrTeamNotFound) {
			return ErrTeamNotFound
		}
		return fmt.Errorf("failed to delete team %d: %w", id, err)
	}
	return nil
}
