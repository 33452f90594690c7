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
	ErrOfficialNotFound      = errors.New("official not found")
	ErrOfficialEmailConflict = errors.New("official email already exists")
)

type OfficialRepository interface {
	Create(ctx context.Context, official *models.Official) error
	GetByID(ctx context.Context, id int) (*models.Official, error)
	List(ctx context.Context, role *models.OfficialRole) ([]*models.Official, error)
	Update(ctx context.Context, official *models.Official) error
	Delete(ctx context.Context, id int) error
}

type postgresOfficialRepository struct {
	db *sql.DB
}

func NewPostgresOfficialRepository(db *sql.DB) OfficialRepository {
	return &postgresOfficialRepository{db: db}
}

const officialColumns = `id, first_name, last_name, role, accreditation, email, phone, created_at`

func (r *postgresOfficialRepository) Create(ctx context.Context, official *models.Official) error {
	query := `
		INSERT INTO officials (first_name, last_name, role, accreditation, email, phone)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		official.FirstName, official.LastName, official.Role,
		official.Accreditation, official.Email, official.Phone,
	).Scan(&official.ID, &official.CreatedAt)
	return r.handleOfficialError(err)
}

func (r *postgresOfficialRepository) scanOfficial(rowScanner interface{ Scan(...interface{}) error }) (*models.Official, error) {
	var o models.Official
	err := rowScanner.Scan(
		&o.ID, &o.FirstName, &o.LastName, &o.Role,
		&o.Accreditation, &o.Email, &o.Phone, &o.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOfficialNotFound
		}
		return nil, err
	}
	return &o, nil
}

func (r *postgresOfficialRepository) GetByID(ctx context.Context, id int) (*models.Official, error) {
	query := `SELECT ` + officialColumns + ` FROM officials WHERE id = $1`
	return r.scanOfficial(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresOfficialRepository) List(ctx context.Context, role *models.OfficialRole) ([]*models.Official, error) {
	query := `SELECT ` + officialColumns + ` FROM officials`
	args := []interface{}{}
	if role != nil {
		query += ` WHERE role = $1`
		args = append(args, *role)
	}
	query += ` ORDER BY last_name ASC, first_name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query officials: %w", err)
	}
	defer rows.Close()

	officials := make([]*models.Official, 0)
	for rows.Next() {
		o, err := r.scanOfficial(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan official row: %w", err)
		}
		officials = append(officials, o)
	}
	return officials, rows.Err()
}

func (r *postgresOfficialRepository) Update(ctx context.Context, official *models.Official) error {
	query := `
		UPDATE officials SET
			first_name = $1, last_name = $2, role = $3, accreditation = $4, email = $5, phone = $6
		WHERE id = $7`
	result, err := r.db.ExecContext(ctx, query,
		official.FirstName, official.LastName, official.Role,
		official.Accreditation, official.Email, official.Phone, official.ID)
	if err != nil {
		return r.handleOfficialError(err)
	}
	return checkAffectedRows(result, ErrOfficialNotFound)
}

func (r *postgresOfficialRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM officials WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrOfficialNotFound)
}

func (r *postgresOfficialRepository) handleOfficialError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "officials_email_key" {
		return ErrOfficialEmailConflict
	}
	return err
}
