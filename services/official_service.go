package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
)

type OfficialService interface {
	Create(ctx context.Context, input CreateOfficialInput) (*models.Official, error)
	GetByID(ctx context.Context, id int) (*models.Official, error)
	List(ctx context.Context, role *models.OfficialRole) ([]*models.Official, error)
	Update(ctx context.Context, id int, input UpdateOfficialInput) (*models.Official, error)
	Delete(ctx context.Context, id int) error
}

type CreateOfficialInput struct {
	FirstName     string              `json:"first_name"`
	LastName      string              `json:"last_name"`
	Role          models.OfficialRole `json:"role"`
	Accreditation *string             `json:"accreditation"`
	Email         *string             `json:"email"`
	Phone         *string             `json:"phone"`
}

type UpdateOfficialInput struct {
	FirstName     *string              `json:"first_name"`
	LastName      *string              `json:"last_name"`
	Role          *models.OfficialRole `json:"role"`
	Accreditation *string              `json:"accreditation"`
	Email         *string              `json:"email"`
	Phone         *string              `json:"phone"`
}

var validOfficialRoles = map[models.OfficialRole]bool{
	models.OfficialUmpire:  true,
	models.OfficialScorer:  true,
	models.OfficialReferee: true,
}

type officialService struct {
	officialRepo repositories.OfficialRepository
}

func NewOfficialService(officialRepo repositories.OfficialRepository) OfficialService {
	return &officialService{officialRepo: officialRepo}
}

func (s *officialService) Create(ctx context.Context, input CreateOfficialInput) (*models.Official, error) {
	firstName := strings.TrimSpace(input.FirstName)
	if firstName == "" {
		return nil, fmt.Errorf("%w: official first name is required", ErrValidationFailed)
	}
	if !validOfficialRoles[input.Role] {
		return nil, fmt.Errorf("%w: unknown official role %q", ErrValidationFailed, input.Role)
	}

	official := &models.Official{
		FirstName:     firstName,
		LastName:      strings.TrimSpace(input.LastName),
		Role:          input.Role,
		Accreditation: input.Accreditation,
		Email:         input.Email,
		Phone:         input.Phone,
	}
	if err := s.officialRepo.Create(ctx, official); err != nil {
		if errors.Is(err, repositories.ErrOfficialEmailConflict) {
			return nil, ErrOfficialEmailConflict
		}
		return nil, fmt.Errorf("failed to create official: %w", err)
	}
	return official, nil
}

func (s *officialService) GetByID(ctx context.Context, id int) (*models.Official, error) {
	official, err := s.officialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOfficialNotFound) {
			return nil, ErrOfficialNotFound
		}
		return nil, fmt.Errorf("failed to get official %d: %w", id, err)
	}
	return official, nil
}

func (s *officialService) List(ctx context.Context, role *models.OfficialRole) ([]*models.Official, error) {
	if role != nil && !validOfficialRoles[*role] {
		return nil, fmt.Errorf("%w: unknown official role %q", ErrValidationFailed, *role)
	}
	officials, err := s.officialRepo.List(ctx, role)
	if err != nil {
		return nil, fmt.Errorf("failed to list officials: %w", err)
	}
	return officials, nil
}

func (s *officialService) Update(ctx context.Context, id int, input UpdateOfficialInput) (*models.Official, error) {
	official, err := s.officialRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOfficialNotFound) {
			return nil, ErrOfficialNotFound
		}
		return nil, fmt.Errorf("failed to get official %d: %w", id, err)
	}

	if input.FirstName != nil {
		firstName := strings.TrimSpace(*input.FirstName)
		if firstName == "" {
			return nil, fmt.Errorf("%w: official first name is required", ErrValidationFailed)
		}
		official.FirstName = firstName
	}
	if input.LastName != nil {
		official.LastName = strings.TrimSpace(*input.LastName)
	}
	if input.Role != nil {
		if !validOfficialRoles[*input.Role] {
			return nil, fmt.Errorf("%w: unknown official role %q", ErrValidationFailed, *input.Role)
		}
		official.Role = *input.Role
	}
	if input.Accreditation != nil {
		official.Accreditation = input.Accreditation
	}
	if input.Email != nil {
		official.Email = input.Email
	}
	if input.Phone != nil {
		official.Phone = input.Phone
	}

	if err := s.officialRepo.Update(ctx, official); err != nil {
		if errors.Is(err, repositories.ErrOfficialEmailConflict) {
			return nil, ErrOfficialEmailConflict
		}
		return nil, fmt.Errorf("failed to update official %d: %w", id, err)
	}
	return official, nil
}

func (s *officialService) Delete(ctx context.Context, id int) error {
	err := s.officialRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOfficialNotFound) {
			return ErrOfficialNotFound
		}
		return fmt.Errorf("failed to delete official %d: %w", id, err)
	}
	return nil
}
