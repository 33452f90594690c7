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

type SponsorService interface {
	Create(ctx context.Context, input CreateSponsorInput) (*models.Sponsor, error)
	GetByID(ctx context.Context, id int) (*models.Sponsor, error)
	List(ctx context.Context, tier *models.SponsorTier) ([]*models.Sponsor, error)
	Update(ctx context.Context, id int, input UpdateSponsorInput) (*models.Sponsor, error)
	UploadLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sponsor, error)
	Delete(ctx context.Context, id int) error
}

type CreateSponsorInput struct {
	Name         string             `json:"name"`
	Tier         models.SponsorTier `json:"tier"`
	ContactEmail *string            `json:"contact_email"`
	Website      *string            `json:"website"`
	Notes        *string            `json:"notes"`
}

type UpdateSponsorInput struct {
	Name         *string             `json:"name"`
	Tier         *models.SponsorTier `json:"tier"`
	ContactEmail *string             `json:"contact_email"`
	Website      *string             `json:"website"`
	Notes        *string             `json:"notes"`
}

var validSponsorTiers = map[models.SponsorTier]bool{
	models.SponsorTierPlatinum: true,
	models.SponsorTierGold:     true,
	models.SponsorTierSilver:   true,
	models.SponsorTierBronze:   true,
}

type sponsorService struct {
	sponsorRepo repositories.SponsorRepository
	uploader    storage.FileUploader
	logger      *slog.Logger
}

func NewSponsorService(sponsorRepo repositories.SponsorRepository, uploader storage.FileUploader, logger *slog.Logger) SponsorService {
	return &sponsorService{
		sponsorRepo: sponsorRepo,
		uploader:    uploader,
		logger:      logger,
	}
}

func (s *sponsorService) Create(ctx context.Context, input CreateSponsorInput) (*models.Sponsor, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: sponsor name is required", ErrValidationFailed)
	}
	if !validSponsorTiers[input.Tier] {
		return nil, fmt.Errorf("%w: unknown sponsor tier %q", ErrValidationFailed, input.Tier)
	}

	sponsor := &models.Sponsor{
		Name:         name,
		Tier:         input.Tier,
		ContactEmail: input.ContactEmail,
		Website:      input.Website,
		Notes:        input.Notes,
	}
	if err := s.sponsorRepo.Create(ctx, sponsor); err != nil {
		if errors.Is(err, repositories.ErrSponsorNameConflict) {
			return nil, ErrSponsorNameConflict
		}
		return nil, fmt.Errorf("failed to create sponsor: %w", err)
	}
	return sponsor, nil
}

func (s *sponsorService) GetByID(ctx context.Context, id int) (*models.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor %d: %w", id, err)
	}
	populateSponsorLogoURL(sponsor, s.uploader)
	return sponsor, nil
}

func (s *sponsorService) List(ctx context.Context, tier *models.SponsorTier) ([]*models.Sponsor, error) {
	if tier != nil && !validSponsorTiers[*tier] {
		return nil, fmt.Errorf("%w: unknown sponsor tier %q", ErrValidationFailed, *tier)
	}
	sponsors, err := s.sponsorRepo.List(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf("failed to list sponsors: %w", err)
	}
	for _, sponsor := range sponsors {
		populateSponsorLogoURL(sponsor, s.uploader)
	}
	return sponsors, nil
}

func (s *sponsorService) Update(ctx context.Context, id int, input UpdateSponsorInput) (*models.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor %d: %w", id, err)
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: sponsor name is required", ErrValidationFailed)
		}
		sponsor.Name = name
	}
	if input.Tier != nil {
		if !validSponsorTiers[*input.Tier] {
			return nil, fmt.Errorf("%w: unknown sponsor tier %q", ErrValidationFailed, *input.Tier)
		}
		sponsor.Tier = *input.Tier
	}
	if input.ContactEmail != nil {
		sponsor.ContactEmail = input.ContactEmail
	}
	if input.Website != nil {
		sponsor.Website = input.Website
	}
	if input.Notes != nil {
		sponsor.Notes = input.Notes
	}

	if err := s.sponsorRepo.Update(ctx, sponsor); err != nil {
		if errors.Is(err, repositories.ErrSponsorNameConflict) {
			return nil, ErrSponsorNameConflict
		}
		return nil, fmt.Errorf("failed to update sponsor %d: %w", id, err)
	}
	populateSponsorLogoURL(sponsor, s.uploader)
	return sponsor, nil
}

func (s *sponsorService) UploadLogo(ctx context.Context, id int, file io.Reader, contentType string) (*models.Sponsor, error) {
	sponsor, err := s.sponsorRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return nil, ErrSponsorNotFound
		}
		return nil, fmt.Errorf("failed to get sponsor %d: %w", id, err)
	}

	ext, err := imageExtensionForContentType(contentType)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("sponsors/%d/logo%s", sponsor.ID, ext)
	oldKey := sponsor.LogoKey

	result, err := s.uploader.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("failed to upload sponsor logo: %w", err)
	}

	if err := s.sponsorRepo.UpdateLogoKey(ctx, sponsor.ID, &result.Key); err != nil {
		return nil, fmt.Errorf("failed to save sponsor logo key: %w", err)
	}
	sponsor.LogoKey = &result.Key

	if oldKey != nil && *oldKey != result.Key {
		if err := s.uploader.Delete(ctx, *oldKey); err != nil {
			s.logger.Warn("failed to delete previous sponsor logo", "sponsor_id", sponsor.ID, "key", *oldKey, "error", err)
		}
	}

	populateSponsorLogoURL(sponsor, s.uploader)
	return sponsor, nil
}

func (s *sponsorService) Delete(ctx context.Context, id int) error {
	err := s.sponsorRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrSponsorNotFound) {
			return ErrSponsorNotFound
		}
		return fmt.Errorf("failed to delete sponsor %d: %w", id, err)
	}
	return nil
}
