package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

var (
	ErrBracketNotFound       = errors.New("bracket not found")
	ErrBracketSeasonConflict = errors.New("bracket already exists for season")
)

type BracketRepository interface {
	Create(ctx context.Context, bracket *models.TournamentBracket) error
	GetBySeason(ctx context.Context, season string) (*models.TournamentBracket, error)
	UpdateMatches(ctx context.Context, bracket *models.TournamentBracket) error
	Delete(ctx context.Context, id int) error
}

type postgresBracketRepository struct {
	db *sql.DB
}

func NewPostgresBracketRepository(db *sql.DB) BracketRepository {
	return &postgresBracketRepository{db: db}
}

func (r *postgresBracketRepository) Create(ctx context.Context, bracket *models.TournamentBracket) error {
	roundsJSON, matchesJSON, err := marshalBracket(bracket)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO brackets (season, size, rounds_json, matches_json)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`
	err = r.db.QueryRowContext(ctx, query, bracket.Season, bracket.Size, roundsJSON, matchesJSON).
		Scan(&bracket.ID, &bracket.CreatedAt)
	return r.handleBracketError(err)
}

func (r *postgresBracketRepository) GetBySeason(ctx context.Context, season string) (*models.TournamentBracket, error) {
	query := `SELECT id, season, size, rounds_json, matches_json, created_at FROM brackets WHERE season = $1`
	var b models.TournamentBracket
	err := r.db.QueryRowContext(ctx, query, season).
		Scan(&b.ID, &b.Season, &b.Size, &b.RoundsJSON, &b.MatchesJSON, &b.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBracketNotFound
		}
		return nil, err
	}
	if err := unmarshalBracket(&b); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *postgresBracketRepository) UpdateMatches(ctx context.Context, bracket *models.TournamentBracket) error {
	_, matchesJSON, err := marshalBracket(bracket)
	if err != nil {
		return err
	}
	result, err := r.db.ExecContext(ctx, `UPDATE brackets SET matches_json = $1 WHERE id = $2`, matchesJSON, bracket.ID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketNotFound)
}

func (r *postgresBracketRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM brackets WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrBracketNotFound)
}

func marshalBracket(bracket *models.TournamentBracket) (string, string, error) {
	roundsBytes, err := json.Marshal(bracket.Rounds)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal bracket rounds: %w", err)
	}
	matchesBytes, err := json.Marshal(bracket.Matches)
	if err != nil {
		return "", "", fmt.Errorf("failed to marshal bracket matches: %w", err)
	}
	return string(roundsBytes), string(matchesBytes), nil
}

func unmarshalBracket(bracket *models.TournamentBracket) error {
	if bracket.RoundsJSON != nil {
		if err := json.Unmarshal([]byte(*bracket.RoundsJSON), &bracket.Rounds); err != nil {
			return fmt.Errorf("failed to unmarshal bracket rounds: %w", err)
		}
	}
	if bracket.MatchesJSON != nil {
		if err := json.Unmarshal([]byte(*bracket.MatchesJSON), &bracket.Matches); err != nil {
			return fmt.Errorf("failed to unmarshal bracket matches: %w", err)
		}
	}
	return nil
}

func (r *postgresBracketRepository) handleBracketError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Constraint == "brackets_season_key" {
		return ErrBracketSeasonConflict
	}
	return err
}
