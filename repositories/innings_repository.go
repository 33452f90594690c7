package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

var ErrInningsNotFound = errors.New("innings not found")

type InningsRepository interface {
	Create(ctx context.Context, exec SQLExecutor, innings *models.Innings) error
	GetByID(ctx context.Context, id int) (*models.Innings, error)
	GetCurrentByMatch(ctx context.Context, matchID int) (*models.Innings, error)
	ListByMatch(ctx context.Context, matchID int) ([]*models.Innings, error)
	UpdateSummary(ctx context.Context, exec SQLExecutor, innings *models.Innings) error
	Close(ctx context.Context, exec SQLExecutor, innings *models.Innings) error
}

type postgresInningsRepository struct {
	db *sql.DB
}

func NewPostgresInningsRepository(db *sql.DB) InningsRepository {
	return &postgresInningsRepository{db: db}
}

const inningsColumns = `id, match_id, number, batting_team_id, bowling_team_id,
	total_runs, wickets, legal_balls, closed, version, created_at`

func (r *postgresInningsRepository) Create(ctx context.Context, exec SQLExecutor, innings *models.Innings) error {
	query := `
		INSERT INTO innings (match_id, number, batting_team_id, bowling_team_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, total_runs, wickets, legal_balls, closed, version, created_at`
	return exec.QueryRowContext(ctx, query,
		innings.MatchID, innings.Number, innings.BattingTeamID, innings.BowlingTeamID,
	).Scan(&innings.ID, &innings.TotalRuns, &innings.Wickets, &innings.LegalBalls,
		&innings.Closed, &innings.Version, &innings.CreatedAt)
}

func (r *postgresInningsRepository) scanInnings(rowScanner interface{ Scan(...interface{}) error }) (*models.Innings, error) {
	var in models.Innings
	err := rowScanner.Scan(
		&in.ID, &in.MatchID, &in.Number, &in.BattingTeamID, &in.BowlingTeamID,
		&in.TotalRuns, &in.Wickets, &in.LegalBalls, &in.Closed, &in.Version, &in.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInningsNotFound
		}
		return nil, err
	}
	return &in, nil
}

func (r *postgresInningsRepository) GetByID(ctx context.Context, id int) (*models.Innings, error) {
	query := `SELECT ` + inningsColumns + ` FROM innings WHERE id = $1`
	return r.scanInnings(r.db.QueryRowContext(ctx, query, id))
}

// GetCurrentByMatch returns the open innings of a match, if any.
func (r *postgresInningsRepository) GetCurrentByMatch(ctx context.Context, matchID int) (*models.Innings, error) {
	query := `SELECT ` + inningsColumns + ` FROM innings WHERE match_id = $1 AND closed = false ORDER BY number DESC LIMIT 1`
	return r.scanInnings(r.db.QueryRowContext(ctx, query, matchID))
}

func (r *postgresInningsRepository) ListByMatch(ctx context.Context, matchID int) ([]*models.Innings, error) {
	query := `SELECT ` + inningsColumns + ` FROM innings WHERE match_id = $1 ORDER BY number ASC`
	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query innings for match %d: %w", matchID, err)
	}
	defer rows.Close()

	list := make([]*models.Innings, 0)
	for rows.Next() {
		in, err := r.scanInnings(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan innings row: %w", err)
		}
		list = append(list, in)
	}
	return list, rows.Err()
}

// UpdateSummary writes the recomputed ledger totals. The version check makes
// two scorers writing from the same snapshot lose cleanly instead of silently
// overwriting each other.
func (r *postgresInningsRepository) UpdateSummary(ctx context.Context, exec SQLExecutor, innings *models.Innings) error {
	query := `
		UPDATE innings SET
			total_runs = $1, wickets = $2, legal_balls = $3, version = version + 1
		WHERE id = $4 AND version = $5`
	result, err := exec.ExecContext(ctx, query,
		innings.TotalRuns, innings.Wickets, innings.LegalBalls, innings.ID, innings.Version)
	if err != nil {
		return err
	}
	if err := r.checkVersionedUpdate(ctx, result, innings.ID); err != nil {
		return err
	}
	innings.Version++
	return nil
}

func (r *postgresInningsRepository) Close(ctx context.Context, exec SQLExecutor, innings *models.Innings) error {
	query := `
		UPDATE innings SET closed = true, version = version + 1
		WHERE id = $1 AND version = $2`
	result, err := exec.ExecContext(ctx, query, innings.ID, innings.Version)
	if err != nil {
		return err
	}
	if err := r.checkVersionedUpdate(ctx, result, innings.ID); err != nil {
		return err
	}
	innings.Closed = true
	innings.Version++
	return nil
}

func (r *postgresInningsRepository) checkVersionedUpdate(ctx context.Context, result sql.Result, id int) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM innings WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrInningsNotFound
	}
	return ErrVersionConflict
}
