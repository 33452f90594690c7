package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

var (
	ErrMatchNotFound    = errors.New("match not found")
	ErrMatchTeamInvalid = errors.New("match team conflict or invalid")
)

type MatchListFilter struct {
	Season *string
	TeamID *int
	State  *models.MatchState
}

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter MatchListFilter) ([]*models.Match, error)
	Update(ctx context.Context, match *models.Match) error
	UpdateToss(ctx context.Context, exec SQLExecutor, match *models.Match) error
	UpdateStateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error
	AppendTransition(ctx context.Context, exec SQLExecutor, tr *models.MatchTransition) error
	ListTransitions(ctx context.Context, matchID int) ([]*models.MatchTransition, error)
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

const matchColumns = `id, season, home_team_id, away_team_id, venue, scheduled_at, overs_limit, state,
	toss_winner_id, toss_decision, first_umpire_id, second_umpire_id, result, winner, version, created_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(season, home_team_id, away_team_id, venue, scheduled_at, overs_limit, state,
			 first_umpire_id, second_umpire_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, version, created_at`
	err := r.db.QueryRowContext(ctx, query,
		match.Season, match.HomeTeamID, match.AwayTeamID, match.Venue, match.ScheduledAt,
		match.OversLimit, match.State, match.FirstUmpireID, match.SecondUmpireID,
	).Scan(&match.ID, &match.Version, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID, &m.Season, &m.HomeTeamID, &m.AwayTeamID, &m.Venue, &m.ScheduledAt,
		&m.OversLimit, &m.State, &m.TossWinnerID, &m.TossDecision,
		&m.FirstUmpireID, &m.SecondUmpireID, &m.Result, &m.Winner, &m.Version, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return &m, nil
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	return r.scanMatch(r.db.QueryRowContext(ctx, query, id))
}

func (r *postgresMatchRepository) List(ctx context.Context, filter MatchListFilter) ([]*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches`
	args := []interface{}{}
	conds := []string{}

	if filter.Season != nil {
		args = append(args, *filter.Season)
		conds = append(conds, fmt.Sprintf("season = $%d", len(args)))
	}
	if filter.TeamID != nil {
		args = append(args, *filter.TeamID)
		conds = append(conds, fmt.Sprintf("(home_team_id = $%d OR away_team_id = $%d)", len(args), len(args)))
	}
	if filter.State != nil {
		args = append(args, *filter.State)
		conds = append(conds, fmt.Sprintf("state = $%d", len(args)))
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY scheduled_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		m, err := r.scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}

// Update changes fixture details only. Lifecycle fields go through
// UpdateToss and UpdateStateResult so every change is version checked.
func (r *postgresMatchRepository) Update(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			season = $1, home_team_id = $2, away_team_id = $3, venue = $4,
			scheduled_at = $5, overs_limit = $6, first_umpire_id = $7, second_umpire_id = $8,
			version = version + 1
		WHERE id = $9 AND version = $10`
	result, err := r.db.ExecContext(ctx, query,
		match.Season, match.HomeTeamID, match.AwayTeamID, match.Venue,
		match.ScheduledAt, match.OversLimit, match.FirstUmpireID, match.SecondUmpireID,
		match.ID, match.Version)
	if err != nil {
		return r.handleMatchError(err)
	}
	if err := r.checkVersionedUpdate(ctx, result, match.ID); err != nil {
		return err
	}
	match.Version++
	return nil
}

func (r *postgresMatchRepository) UpdateToss(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		UPDATE matches SET
			state = $1, toss_winner_id = $2, toss_decision = $3, version = version + 1
		WHERE id = $4 AND version = $5`
	result, err := exec.ExecContext(ctx, query,
		match.State, match.TossWinnerID, match.TossDecision, match.ID, match.Version)
	if err != nil {
		return err
	}
	if err := r.checkVersionedUpdate(ctx, result, match.ID); err != nil {
		return err
	}
	match.Version++
	return nil
}

func (r *postgresMatchRepository) UpdateStateResult(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		UPDATE matches SET
			state = $1, result = $2, winner = $3, scheduled_at = $4, version = version + 1
		WHERE id = $5 AND version = $6`
	result, err := exec.ExecContext(ctx, query,
		match.State, match.Result, match.Winner, match.ScheduledAt, match.ID, match.Version)
	if err != nil {
		return err
	}
	if err := r.checkVersionedUpdate(ctx, result, match.ID); err != nil {
		return err
	}
	match.Version++
	return nil
}

func (r *postgresMatchRepository) AppendTransition(ctx context.Context, exec SQLExecutor, tr *models.MatchTransition) error {
	query := `
		INSERT INTO match_transitions (match_id, from_state, to_state, event, actor_id, reason)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	return exec.QueryRowContext(ctx, query,
		tr.MatchID, tr.FromState, tr.ToState, tr.Event, tr.ActorID, tr.Reason,
	).Scan(&tr.ID, &tr.CreatedAt)
}

func (r *postgresMatchRepository) ListTransitions(ctx context.Context, matchID int) ([]*models.MatchTransition, error) {
	query := `
		SELECT id, match_id, from_state, to_state, event, actor_id, reason, created_at
		FROM match_transitions
		WHERE match_id = $1
		ORDER BY id ASC`
	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transitions for match %d: %w", matchID, err)
	}
	defer rows.Close()

	transitions := make([]*models.MatchTransition, 0)
	for rows.Next() {
		var tr models.MatchTransition
		err := rows.Scan(&tr.ID, &tr.MatchID, &tr.FromState, &tr.ToState, &tr.Event, &tr.ActorID, &tr.Reason, &tr.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transition row: %w", err)
		}
		transitions = append(transitions, &tr)
	}
	return transitions, rows.Err()
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM matches WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// checkVersionedUpdate distinguishes a missing row from a stale version when
// an optimistic update touched nothing.
func (r *postgresMatchRepository) checkVersionedUpdate(ctx context.Context, result sql.Result, id int) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check affected rows: %w", err)
	}
	if rowsAffected > 0 {
		return nil
	}
	var exists bool
	if err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM matches WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrMatchNotFound
	}
	return ErrVersionConflict
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Constraint {
		case "matches_home_team_id_fkey", "matches_away_team_id_fkey", "matches_distinct_teams_check":
			return ErrMatchTeamInvalid
		}
	}
	return err
}
