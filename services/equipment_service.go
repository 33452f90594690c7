package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
)

type EquipmentService interface {
	Create(ctx context.Context, input CreateEquipmentInput) (*models.Equipment, error)
	GetByID(ctx context.Context, id int) (*models.Equipment, error)
	List(ctx context.Context, teamID *int) ([]*models.Equipment, error)
	Update(ctx context.Context, id int, input UpdateEquipmentInput) (*models.Equipment, error)
	Delete(ctx context.Context, id int) error
}

type CreateEquipmentInput struct {
	Name      string                    `json:"name"`
	Category  string                    `json:"category"`
	Quantity  int                       `json:"quantity"`
	Condition models.EquipmentCondition `json:"condition"`
	TeamID    *int                      `json:"team_id"`
}

type UpdateEquipmentInput struct {
	Name      *string                    `json:"name"`
	Category  *string                    `json:"category"`
	Quantity  *int                       `json:"quantity"`
	Condition *models.EquipmentCondition `json:"condition"`
	TeamID    *int                       `json:"team_id"`
	ClearTeam bool                       `json:"clear_team"`
}

var validEquipmentConditions = map[models.EquipmentCondition]bool{
	models.ConditionNew:        true,
	models.ConditionGood:       true,
	models.ConditionWorn:       true,
	models.ConditionUnusable:   true,
	models.ConditionWrittenOff: true,
}

type equipmentService struct {
	equipmentRepo repositories.EquipmentRepository
	teamRepo      repositories.TeamRepository
}

func NewEquipmentService(equipmentRepo repositories.EquipmentRepository, teamRepo repositories.TeamRepository) EquipmentService {
	return &equipmentService{
		equipmentRepo: equipmentRepo,
		teamRepo:      teamRepo,
	}
}

func (s *equipmentService) Create(ctx context.Context, input CreateEquipmentInput) (*models.Equipment, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: equipment name is required", ErrValidationFailed)
	}
	if input.Quantity < 0 {
		return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidationFailed)
	}
	if !validEquipmentConditions[input.Condition] {
		return nil, fmt.Errorf("%w: unknown equipment condition %q", ErrValidationFailed, input.Condition)
	}
	if input.TeamID != nil {
		if _, err := s.teamRepo.GetByID(ctx, *input.TeamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to check team %d: %w", *input.TeamID, err)
		}
	}

	item := &models.Equipment{
		Name:      name,
		Category:  strings.TrimSpace(input.Category),
		Quantity:  input.Quantity,
		Condition: input.Condition,
		TeamID:    input.TeamID,
	}
	if err := s.equipmentRepo.Create(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrEquipmentTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create equipment: %w", err)
	}
	return item, nil
}

func (s *equipmentService) GetByID(ctx context.Context, id int) (*models.Equipment, error) {
	item, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEquipmentNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to get equipment %d: %w", id, err)
	}
	if item.TeamID != nil {
		team, err := s.teamRepo.GetByID(ctx, *item.TeamID)
		if err == nil {
			item.Team = team
		} else if !errors.Is(err, repositories.ErrTeamNotFound) {
			return nil, fmt.Errorf("failed to get team for equipment %d: %w", id, err)
		}
	}
	return item, nil
}

func (s *equipmentService) List(ctx context.Context, teamID *int) ([]*models.Equipment, error) {
	items, err := s.equipmentRepo.List(ctx, teamID)
	if err != nil {
		return nil, fmt.Errorf("failed to list equipment: %w", err)
	}
	return items, nil
}

func (s *equipmentService) Update(ctx context.Context, id int, input UpdateEquipmentInput) (*models.Equipment, error) {
	item, err := s.equipmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEquipmentNotFound) {
			return nil, ErrEquipmentNotFound
		}
		return nil, fmt.Errorf("failed to get equipment %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: equipment name is required", ErrValidationFailed)
		}
		item.Name = name
	}
	if input.Category != nil {
		item.Category = strings.TrimSpace(*input.Category)
	}
	if input.Quantity != nil {
		if *input.Quantity < 0 {
			return nil, fmt.Errorf("%w: quantity cannot be negative", ErrValidationFailed)
		}
		item.Quantity = *input.Quantity
	}
	if input.Condition != nil {
		if !validEquipmentConditions[*input.Condition] {
			return nil, fmt.Errorf("%w: unknown equipment condition %q", ErrValidationFailed, *input.Condition)
		}
		item.Condition = *input.Condition
	}
	if input.ClearTeam {
		item.TeamID = nil
	} else if input.TeamID != nil {
		item.TeamID = input.TeamID
	}

	if err := s.equipmentRepo.Update(ctx, item); err != nil {
		if errors.Is(err, repositories.ErrEquipmentTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to update equipment %d: %w", id, err)
	}
	return item, nil
}

func (s *equipmentService) Delete(ctx context.Context, id int) error {
	err := s.equipmentRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrEquipmentNotFound) {
			return ErrEquipmentNotFound
		}
		return fmt.Errorf("failed to delete equipment %d: %w", id, err)
	}
	return nil
}
