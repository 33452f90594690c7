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

type SchoolService interface {
	Create(ctx context.Context, input CreateSchoolInput) (*models.School, error)
	GetByID(ctx context.Context, id int) (*models.School, error)
	List(ctx context.Context) ([]*models.School, error)
	Update(ctx context.Context, id int, input UpdateSchoolInput) (*models.School, error)
	UploadCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.School, error)
	Delete(ctx context.Context, id int) error
}

type CreateSchoolInput struct {
	Name         string  `json:"name"`
	City         string  `json:"city"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
}

type UpdateSchoolInput struct {
	Name         *string `json:"name"`
	City         *string `json:"city"`
	ContactEmail *string `json:"contact_email"`
	ContactPhone *string `json:"contact_phone"`
}

type schoolService struct {
	schoolRepo repositories.SchoolRepository
	teamRepo   repositories.TeamRepository
	uploader   storage.FileUploader
	logger     *slog.Logger
}

func NewSchoolService(
	schoolRepo repositories.SchoolRepository,
	teamRepo repositories.TeamRepository,
	uploader storage.FileUploader,
	logger *slog.Logger,
) SchoolService {
	return &schoolService{
		schoolRepo: schoolRepo,
		teamRepo:   teamRepo,
		uploader:   uploader,
		logger:     logger,
	}
}

func (s *schoolService) Create(ctx context.Context, input CreateSchoolInput) (*models.School, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrSchoolNameRequired
	}

	school := &models.School{
		Name:         name,
		City:         strings.TrimSpace(input.City),
		ContactEmail: input.ContactEmail,
		ContactPhone: input.ContactPhone,
	}
	if err := s.schoolRepo.Create(ctx, school); err != nil {
		if errors.Is(err, repositories.ErrSchoolNameConflict) {
			return nil, ErrSchoolNameConflict
		}
		return nil, fmt.Errorf("failed to create school: %w", err)
	}
	return school, nil
}

func (s *schoolService) GetByID(ctx context.Context, id int) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school %d: %w", id, err)
	}

	teams, err := s.teamRepo.List(ctx, &school.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams for school %d: %w", id, err)
	}
	school.Teams = make([]models.Team, 0, len(teams))
	for _, t := range teams {
		populateTeamCrestURL(t, s.uploader)
		school.Teams = append(school.Teams, *t)
	}

	populateSchoolCrestURL(school, s.uploader)
	return school, nil
}

func (s *schoolService) List(ctx context.Context) ([]*models.School, error) {
	schools, err := s.schoolRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	for _, school := range schools {
		populateSchoolCrestURL(school, s.uploader)
	}
	return schools, nil
}

func (s *schoolService) Update(ctx context.Context, id int, input UpdateSchoolInput) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, ErrSchoolNameRequired
		}
		school.Name = name
	}
	if input.City != nil {
		school.City = strings.TrimSpace(*input.City)
	}
	if input.ContactEmail != nil {
		school.ContactEmail = input.ContactEmail
	}
	if input.ContactPhone != nil {
		school.ContactPhone = input.ContactPhone
	}

	if err := s.schoolRepo.Update(ctx, school); err != nil {
		if errors.Is(err, repositories.ErrSchoolNameConflict) {
			return nil, ErrSchoolNameConflict
		}
		return nil, fmt.Errorf("failed to update school %d: %w", id, err)
	}
	populateSchoolCrestURL(school, s.uploader)
	return school, nil
}

func (s *schoolService) UploadCrest(ctx context.Context, id int, file io.Reader, contentType string) (*models.School, error) {
	school, err := s.schoolRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school %d: %w", id, err)
	}

	ext, err := imageExtensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("schools/%d/crest%s", school.ID, ext)
	oldKey := school.CrestKey

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload school crest: %w", err)
	}

	if err := s.schoolRepo.UpdateCrestKey(ctx, school.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save school crest key: %w", err)
	}
	school.CrestKey = &result.Key

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous school crest", "school_id", school.ID, "key", *oldKey, "error", err)
		}
	}

	populateSchoolCrestURL(school, s.uploader)
	return school, nil
}

func (s *schoolService) Delete(ctx context.Context, id int) error {
	err := s.schoolRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSchoolNotFound) {
			return ErrSchoolNotFound
		}
		return fmt.Errorf("failed to delete school %d: %w", id, err)
	}
	return nil
}
