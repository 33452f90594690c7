package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

var (
	ErrDeliveryNotFound   = errors.New("delivery not found")
	ErrDeliveryConflict   = errors.New("delivery already recorded for that ball")
	ErrDeliverySuperseded = errors.New("delivery already superseded")
)

type DeliveryRepository interface {
	Append(ctx context.Context, exec SQLExecutor, delivery *models.Delivery) error
	GetByUID(ctx context.Context, uid uuid.UUID) (*models.Delivery, error)
	ListByInnings(ctx context.Context, inningsID int) ([]models.Delivery, error)
	GetLastByInnings(ctx context.Context, exec SQLExecutor, inningsID int) (*models.Delivery, error)
	MarkSuperseded(ctx context.Context, exec SQLExecutor, uid, supersededBy uuid.UUID) error
}

type postgresDeliveryRepository struct {
	db *sql.DB
}

func NewPostgresDeliveryRepository(db *sql.DB) DeliveryRepository {
	return &postgresDeliveryRepository{db: db}
}

const deliveryColumns = `id, uid, innings_id, over_number, ball_in_over, striker_id, non_striker_id, bowler_id,
	runs_off_bat, extra, extra_runs, is_wicket, dismissal, dismissed_player_id, superseded_by, created_at`

func (r *postgresDeliveryRepository) Append(ctx context.Context, exec SQLExecutor, delivery *models.Delivery) error {
	query := `
		INSERT INTO deliveries
			(uid, innings_id, over_number, ball_in_over, striker_id, non_striker_id, bowler_id,
			 runs_off_bat, extra, extra_runs, is_wicket, dismissal, dismissed_player_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at`
	err := exec.QueryRowContext(ctx, query,
		delivery.UID, delivery.InningsID, delivery.Over, delivery.BallInOver,
		delivery.StrikerID, delivery.NonStrikerID, delivery.BowlerID,
		delivery.RunsOffBat, delivery.Extra, delivery.ExtraRuns,
		delivery.IsWicket, delivery.Dismissal, delivery.DismissedPlayerID,
	).Scan(&delivery.ID, &delivery.CreatedAt)
	return r.handleDeliveryError(err)
}

func (r *postgresDeliveryRepository) scanDelivery(rowScanner interface{ Scan(...interface{}) error }) (*models.Delivery, error) {
	var d models.Delivery
	err := rowScanner.Scan(
		&d.ID, &d.UID, &d.InningsID, &d.Over, &d.BallInOver,
		&d.StrikerID, &d.NonStrikerID, &d.BowlerID,
		&d.RunsOffBat, &d.Extra, &d.ExtraRuns,
		&d.IsWicket, &d.Dismissal, &d.DismissedPlayerID, &d.SupersededBy, &d.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDeliveryNotFound
		}
		return nil, err
	}
	return &d, nil
}

func (r *postgresDeliveryRepository) GetByUID(ctx context.Context, uid uuid.UUID) (*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries WHERE uid = $1`
	return r.scanDelivery(r.db.QueryRowContext(ctx, query, uid))
}

// ListByInnings returns the effective ledger: superseded rows are excluded,
// ordered by over then ball.
func (r *postgresDeliveryRepository) ListByInnings(ctx context.Context, inningsID int) ([]models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries
		WHERE innings_id = $1 AND superseded_by IS NULL
		ORDER BY over_number ASC, ball_in_over ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query, inningsID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deliveries for innings %d: %w", inningsID, err)
	}
	defer rows.Close()

	deliveries := make([]models.Delivery, 0)
	for rows.Next() {
		d, err := r.scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan delivery row: %w", err)
		}
		deliveries = append(deliveries, *d)
	}
	return deliveries, rows.Err()
}

// GetLastByInnings returns the latest effective delivery, or nil on an empty
// ledger. Runs on the executor so ordering checks see uncommitted appends.
func (r *postgresDeliveryRepository) GetLastByInnings(ctx context.Context, exec SQLExecutor, inningsID int) (*models.Delivery, error) {
	query := `SELECT ` + deliveryColumns + ` FROM deliveries
		WHERE innings_id = $1 AND superseded_by IS NULL
		ORDER BY over_number DESC, ball_in_over DESC, id DESC
		LIMIT 1`
	d, err := r.scanDelivery(exec.QueryRowContext(ctx, query, inningsID))
	if errors.Is(err, ErrDeliveryNotFound) {
		return nil, nil
	}
	return d, err
}

// MarkSuperseded links an original ball to its replacement. Rows already
// superseded stay untouched so a correction chain cannot fork.
func (r *postgresDeliveryRepository) MarkSuperseded(ctx context.Context, exec SQLExecutor, uid, supersededBy uuid.UUID) error {
	query := `UPDATE deliveries SET superseded_by = $1 WHERE uid = $2 AND superseded_by IS NULL`
	result, err := exec.ExecContext(ctx, query, supersededBy, uid)
	if err != nil {
		return err
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM deliveries WHERE uid = $1)`, uid).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrDeliveryNotFound
	}
	return ErrDeliverySuperseded
}

func (r *postgresDeliveryRepository) handleDeliveryError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "deliveries_uid_key":
			return ErrDeliveryConflict
		}
	}
	return err
}
