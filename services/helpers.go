package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/storage"
)

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// runInTx wraps fn in a transaction with rollback on error or panic.
func runInTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
	}()
	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil {
			return fmt.Errorf("transaction error: %w (rollback also failed: %v)", err, rbErr)
		}
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

var allowedImageContentTypes = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/webp": ".webp",
}

func imageExtensionForContentType(contentType string) (string, error) {
	ext, ok := allowedImageContentTypes[strings.ToLower(contentType)]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrInvalidUploadType, contentType)
	}
	return ext, nil
}

// --- URL population from object storage keys ---

func populateTeamCrestURL(team *models.Team, uploader storage.FileUploader) {
	if team == nil || uploader == nil || team.CrestKey == nil || *team.CrestKey == "" {
		return
	}
	url := uploader.GetPublicURL(*team.CrestKey)
	if url != "" {
		team.CrestURL = &url
	}
}

func populateSchoolCrestURL(school *models.School, uploader storage.FileUploader) {
	if school == nil || uploader == nil || school.CrestKey == nil || *school.CrestKey == "" {
		return
	}
	url := uploader.GetPublicURL(*school.CrestKey)
	if url != "" {
		school.CrestURL = &url
	}
}

func populateSponsorLogoURL(sponsor *models.Sponsor, uploader storage.FileUploader) {
	if sponsor == nil || uploader == nil || sponsor.LogoKey == nil || *sponsor.LogoKey == "" {
		return
	}
	url := uploader.GetPublicURL(*sponsor.LogoKey)
	if url != "" {
		sponsor.LogoURL = &url
	}
}
