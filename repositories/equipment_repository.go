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
	ErrEquipmentNotFound    = errors.New("equipment not found")
	ErrEquipmentTeamInvalid = errors.New("equipment team conflict or invalid")
)

type EquipmentRepository interface {
	Create(ctx context.Context, item *models.Equipment) error
	GetByID(ctx context.Context, id int) (*models.Equipment, error)
	List(ctx context.Context, teamID *int) ([]*models.Equipment, error)
	Update(ctx context.Context, item *models.Equipment) error
	Delete(ctx context.Context, id int) error
}

type postgresEquipmentRepository struct {
	db *sql.DB
}

func NewPostgresEquipmentRepository(db *sql.DB) EquipmentRepository {
	return &postgresEquipmentRepository{db: db}
}

const equipmentColumns = `id, name, category, quantity, condition, team_id, created_at`

func (r *postgresEquipmentRepository) Create(ctx context.Context, item *models.Equipment) error {
	query := `
		INSERT INTO equipment (name, category, quantity, condition, team_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := r.db.QueryRowContext(ctx, query,
		item.Name, item.Category, item.Quantity, item.Condition, item.TeamID,
	).Scan(&item.ID, &item.CreatedAt)
	return r.handleEquipmentError(err)
}

func (r *postgresEquipmentRepository) scanEquipment(rowScanner interface{ Scan(...interface{}) error }) (*models.Equipment, error) {
	var e models.Equipment
	err := rowScanner.Scan(&e.ID, &e.Name, &e.Category, &e.Quantity, &e.Condition, &e.TeamID, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEquipmentNotFound
		}
		return nil, err
	}
	return &e, nil
}

func (r *postgresEquipmentRepository) GetByID(ctx context.Context, id int) (*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	return r.scanEquipment(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresEquipmentRepository) List(ctx context.Context, teamID *int) ([]*models.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment`
	args := []interface{}{}
	if teamID != nil {
		query += ` WHERE team_id = $1`
		args = append(args, *teamID)
	}
	query += ` ORDER BY category ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query equipment: %w", err)
	}
	defer rows.Close()

	items := make([]*models.Equipment, 0)
	for rows.Next() {
		e, err := r.scanEquipment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan equipment row: %w", err)
		}
		items = append(items, e)
	}
	return items, rows.Err()
}

func (r *postgresEquipmentRepository) Update(ctx context.Context, item *models.Equipment) error {
	query := `
		UPDATE equipment SET
			name = $1, category = $2, quantity = $3, condition = $4, team_id = $5
		WHERE id = $6`
	result, err := r.db.ExecContext(ctx, query,
		item.Name, item.Category, item.Quantity, item.Condition, item.TeamID, item.ID)
	if err != nil {
		return r.handleEquipmentError(err)
	}
	return checkAffectedRows(result, ErrEquipmentNotFound)
}

func (r *postgresEquipmentRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrEquipmentNotFound)
}

func (r *postgresEquipmentRepository) handleEquipmentError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "equipment_team_id_fkey" {
		return ErrEquipmentTeamInvalid
	}
	return err
}
