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
	ErrSchoolNotFound     = errors.New("school not found")
	ErrSchoolNameConflict = errors.New("school name already in use")
)

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id int) (*models.School, error)
	List(ctx context.Context) ([]*models.School, error)
	Update(ctx context.Context, school *models.School) error
	UpdateCrestKey(ctx context.Context, id int, crestKey *string) error
	Delete(ctx context.Context, id int) error
}

type postgresSchoolRepository struct {
	db *sql.DB
}

func NewPostgresSchoolRepository(db *sql.DB) SchoolRepository {
	return &postgresSchoolRepository{db: db}
}

func (r *postgresSchoolRepository) Create(ctx context.Context, school *models.School) error {
	query := `
		INSERT INTO schools (name, city, contact_email, contact_phone)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		school.Name, school.City, school.ContactEmail, school.ContactPhone,
	).Scan(&school.ID, &school.CreatedAt)
	return r.handleSchoolError(err)
}

func (r *postgresSchoolRepository) GetByID(ctx context.Context, id int) (*models.School, error) {
	query := `
		SELECT id, name, city, contact_email, contact_phone, crest_key, created_at
		FROM schools WHERE id = $1`
	var s models.School
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&s.ID, &s.Name, &s.City, &s.ContactEmail, &s.ContactPhone, &s.CrestKey, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to scan school %d: %w", id, err)
	}
	return &s, nil
}

func (r *postgresSchoolRepository) List(ctx context.Context) ([]*models.School, error) {
	query := `
		SELECT id, name, city, contact_email, contact_phone, crest_key, created_at
		FROM schools ORDER BY name ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query schools: %w", err)
	}
	defer rows.Close()

	schools := make([]*models.School, 0)
	for rows.Next() {
		var s models.School
		if err := rows.Scan(&s.ID, &s.Name, &s.City, &s.ContactEmail, &s.ContactPhone, &s.CrestKey, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan school row: %w", err)
		}
		schools = append(schools, &s)
	}
	return schools, rows.Err()
}

func (r *postgresSchoolRepository) Update(ctx context.Context, school *models.School) error {
	query := `
		UPDATE schools SET name = $1, city = $2, contact_email = $3, contact_phone = $4
		WHERE id = $5`
	result, err := r.db.ExecContext(ctx, query,
		school.Name, school.City, school.ContactEmail, school.ContactPhone, school.ID)
	if err != nil {
		return r.handleSchoolError(err)
	}
	return checkAffectedRows(result, ErrSchoolNotFound)
}

func (r *postgresSchoolRepository) UpdateCrestKey(ctx context.Context, id int, crestKey *string) error {
	result, err := r.db.ExecContext(ctx, `UPDATE schools SET crest_key = $1 WHERE id = $2`, crestKey, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSchoolNotFound)
}

func (r *postgresSchoolRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM schools WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrSchoolNotFound)
}

func (r *postgresSchoolRepository) handleSchoolError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "schools_name_key" {
		return ErrSchoolNameConflict
	}
	return err
}
