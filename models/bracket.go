package models

import "time"

// BracketMatchState is the lifecycle of a single knockout slot: pending while
// the team slots are unknown, scheduled once both are filled, completed after
// the underlying match result has been reconciled back in.
type BracketMatchState string

const (
	BracketMatchPending   BracketMatchState = "pending"
	BracketMatchScheduled BracketMatchState = "scheduled"
	BracketMatchCompleted BracketMatchState = "completed"
)

// BracketMatch is one node in a single-elimination bracket. Team slots of
// later rounds stay nil until the source matches resolve.
type BracketMatch struct {
	UID           string            `json:"uid"`
	Round         int               `json:"round"`
	OrderInRound  int               `json:"order_in_round"`
	HomeTeamID    *int              `json:"home_team_id,omitempty"`
	AwayTeamID    *int              `json:"away_team_id,omitempty"`
	SourceHomeUID *string           `json:"source_home_uid,omitempty"`
	SourceAwayUID *string           `json:"source_away_uid,omitempty"`
	MatchID       *int              `json:"match_id,omitempty"`
	Score         *string           `json:"score,omitempty"`
	WinnerTeamID  *int              `json:"winner_team_id,omitempty"`
	State         BracketMatchState `json:"state"`
}

// TournamentBracket is a view over match data. The matches slice is stored as
// a JSON document and fully rebuilt by reconciliation against actual matches.
type TournamentBracket struct {
	ID        int       `json:"id" db:"id"`
	Season    string    `json:"season" db:"season"`
	Size      int       `json:"size" db:"size"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	Rounds  []string       `json:"rounds" db:"-"`
	Matches []BracketMatch `json:"matches" db:"-"`

	// Raw JSON from the DB, unmarshalled into Rounds/Matches by the repository.
	RoundsJSON  *string `json:"-" db:"rounds_json"`
	MatchesJSON *string `json:"-" db:"matches_json"`
}
