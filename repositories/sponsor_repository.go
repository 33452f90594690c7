package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

var (
	ErrSponsorNotFound     = errors.New("sponsor not found")
	ErrSponsorNameConflict = errors.New("sponsor name already exists")
)

type SponsorRepository interface {
	Create(ctx context.Context, sponsor *models.Sponsor) error
	GetByID(ctx context.Context, id int) (*models.Sponsor, error)
	List(ctx context.Context, tier *models.SponsorTier) ([]*models.Sponsor, error)
	Update(ctx context.Context, sponsor *models.Sponsor) error
	UpdateLogoKey(ctx context.Context, id int, logoKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresSponsorRepository struct {
	db *sql.DB
}

func NewPostgresSponsorRepository(db *sql.DB) SponsorRepository {
	return &postgresSponsorRepository{db: db}
}

const sponsorColumns = `id, name, tier, contact_email, website, notes, logo_key, created_at`

func (r *postgresSponsorRepository) Create(ctx context.Context, sponsor *models.Sponsor) error {
	query := `
		INSERT INTO sponsors (name, tier, contact_email, website, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		sponsor.Name, sponsor.Tier, sponsor.ContactEmail, sponsor.Website, sponsor.Notes,
	).Scan(&sponsor.ID, &sponsor.CreatedAt)
	return r.handleSponsorError(err)
}

func (r *postgresSponsorRepository) scanSponsor(rowScanner interface{ Scan(...interface{}) error }) (*models.Sponsor, error) {
	var s models.Sponsor
	err := rowScanner.Scan(
		&s.ID, &s.Name, &s.Tier, &s.ContactEmail,
		&s.Website, &s.Notes, &s.LogoKey, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSponsorNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *postgresSponsorRepository) GetByID(ctx context.Context, id int) (*models.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors WHERE id = $1`
	return r.scanSponsor(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresSponsorRepository) List(ctx context.Context, tier *models.SponsorTier) ([]*models.Sponsor, error) {
	query := `SELECT ` + sponsorColumns + ` FROM sponsors`
	args := []interface{}{}
	if tier != nil {
		query += ` WHERE tier = $1`
		args = append(args, *tier)
	}
	query += ` ORDER BY name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query sponsors: %w", err)
	}
	defer rows.Close()

	sponsors := make([]*models.Sponsor, 0)
	for rows.Next() {
		s, err := r.scanSponsor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sponsor row: %w", err)
		}
		sponsors = append(sponsors, s)
	}
	return sponsors, rows.Err()
}

func (r *postgresSponsorRepository) Update(ctx context.Context, sponsor *models.Sponsor) error {
	query := `
		UPDATE sponsors SET
			name = $1, tier = $2, contact_email = $3, website = $4, notes = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		sponsor.Name, sponsor.Tier, sponsor.ContactEmail, sponsor.Website, sponsor.Notes, sponsor.ID)
	if err != nil {
		return r.handleSponsorError(err)
	}
	return checkAffectedRows(result, ErrSponsorNotFound)
}

func (r *postgresSponsorRepository) UpdateLogoKey(ctx context.Context, id int, logoKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE sponsors SET logo_key = $1 WHERE id = $2`, logoKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSponsorNotFound)
}

func (r *postgresSponsorRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sponsors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSponsorNotFound)
}

func (r *postgresSponsorRepository) handleSponsorError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "sponsors_name_key" {
		return ErrSponsorNameConflict
	}
	return err
}
