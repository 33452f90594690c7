package models

import (
	"time"

	"github.com/google/uuid"
)

// MatchState represents match lifecycle states, matching the ENUM in the DB.
type MatchState string

const (
	MatchStateScheduled    MatchState = "scheduled"
	MatchStateTossPending  MatchState = "toss_pending"
	MatchStateLive         MatchState = "live"
	MatchStateInningsBreak MatchState = "innings_break"
	MatchStateCompleted    MatchState = "completed"
	MatchStateAbandoned    MatchState = "abandoned"
	MatchStateCancelled    MatchState = "cancelled"
	MatchStatePostponed    MatchState = "postponed"
)

// IsTerminal reports whether no further lifecycle events are accepted.
func (s MatchState) IsTerminal() bool {
	return s == MatchStateCompleted || s == MatchStateAbandoned || s == MatchStateCancelled
}

type MatchWinner string

const (
	WinnerHome     MatchWinner = "home"
	WinnerAway     MatchWinner = "away"
	WinnerTie      MatchWinner = "tie"
	WinnerNoResult MatchWinner = "no_result"
)

type TossDecision string

const (
	TossDecisionBat  TossDecision = "bat"
	TossDecisionBowl TossDecision = "bowl"
)

// Match is a fixture between two teams. Result fields are nil until the
// match reaches a terminal state, after which they are frozen.
type Match struct {
	ID             int           `json:"id" db:"id"`
	Season         string        `json:"season" db:"season"`
	HomeTeamID     int           `json:"home_team_id" db:"home_team_id"`
	AwayTeamID     int           `json:"away_team_id" db:"away_team_id"`
	Venue          string        `json:"venue" db:"venue"`
	ScheduledAt    time.Time     `json:"scheduled_at" db:"scheduled_at"`
	OversLimit     int           `json:"overs_limit" db:"overs_limit"`
	State          MatchState    `json:"state" db:"state"`
	TossWinnerID   *int          `json:"toss_winner_id,omitempty" db:"toss_winner_id"`
	TossDecision   *TossDecision `json:"toss_decision,omitempty" db:"toss_decision"`
	FirstUmpireID  *int          `json:"first_umpire_id,omitempty" db:"first_umpire_id"`
	SecondUmpireID *int          `json:"second_umpire_id,omitempty" db:"second_umpire_id"`
	Result         *string       `json:"result,omitempty" db:"result"`
	Winner         *MatchWinner  `json:"winner,omitempty" db:"winner"`
	Version        int           `json:"-" db:"version"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`

	// Optional linked entities, populated by the service layer.
	HomeTeam *Team     `json:"home_team,omitempty" db:"-"`
	AwayTeam *Team     `json:"away_team,omitempty" db:"-"`
	Innings  []Innings `json:"innings,omitempty" db:"-"`
}

// Innings is one team's batting turn. TotalRuns, Wickets and LegalBalls are a
// cache recomputed from the delivery ledger on every write; the ledger is the
// source of truth.
type Innings struct {
	ID            int       `json:"id" db:"id"`
	MatchID       int       `json:"match_id" db:"match_id"`
	Number        int       `json:"number" db:"number"`
	BattingTeamID int       `json:"batting_team_id" db:"batting_team_id"`
	BowlingTeamID int       `json:"bowling_team_id" db:"bowling_team_id"`
	TotalRuns     int       `json:"total_runs" db:"total_runs"`
	Wickets       int       `json:"wickets" db:"wickets"`
	LegalBalls    int       `json:"legal_balls" db:"legal_balls"`
	Closed        bool      `json:"closed" db:"closed"`
	Version       int       `json:"-" db:"version"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	Deliveries []Delivery `json:"deliveries,omitempty" db:"-"`
}

// ExtraType classifies runs not credited to the batsman. Wide and no-ball
// deliveries do not count toward the six-ball over.
type ExtraType string

const (
	ExtraNone   ExtraType = "none"
	ExtraWide   ExtraType = "wide"
	ExtraNoBall ExtraType = "no_ball"
	ExtraBye    ExtraType = "bye"
	ExtraLegBye ExtraType = "leg_bye"
)

type DismissalType string

const (
	DismissalBowled    DismissalType = "bowled"
	DismissalCaught    DismissalType = "caught"
	DismissalLBW       DismissalType = "lbw"
	DismissalRunOut    DismissalType = "run_out"
	DismissalStumped   DismissalType = "stumped"
	DismissalHitWicket DismissalType = "hit_wicket"
	DismissalRetired   DismissalType = "retired"
)

// Delivery is the atomic scoring event. Rows are immutable once written;
// corrections insert a replacement ball and set SupersededBy on the original.
type Delivery struct {
	ID                int            `json:"id" db:"id"`
	UID               uuid.UUID      `json:"uid" db:"uid"`
	InningsID         int            `json:"innings_id" db:"innings_id"`
	Over              int            `json:"over" db:"over_number"`
	BallInOver        int            `json:"ball_in_over" db:"ball_in_over"`
	StrikerID         int            `json:"striker_id" db:"striker_id"`
	NonStrikerID      int            `json:"non_striker_id" db:"non_striker_id"`
	BowlerID          int            `json:"bowler_id" db:"bowler_id"`
	RunsOffBat        int            `json:"runs_off_bat" db:"runs_off_bat"`
	Extra             ExtraType      `json:"extra" db:"extra"`
	ExtraRuns         int            `json:"extra_runs" db:"extra_runs"`
	IsWicket          bool           `json:"is_wicket" db:"is_wicket"`
	Dismissal         *DismissalType `json:"dismissal,omitempty" db:"dismissal"`
	DismissedPlayerID *int           `json:"dismissed_player_id,omitempty" db:"dismissed_player_id"`
	SupersededBy      *uuid.UUID     `json:"superseded_by,omitempty" db:"superseded_by"`
	CreatedAt         time.Time      `json:"created_at" db:"created_at"`
}

// MatchTransition is one entry of the append-only lifecycle audit log. It is
// never replayed to rebuild business state.
type MatchTransition struct {
	ID        int        `json:"id" db:"id"`
	MatchID   int        `json:"match_id" db:"match_id"`
	FromState MatchState `json:"from_state" db:"from_state"`
	ToState   MatchState `json:"to_state" db:"to_state"`
	Event     string     `json:"event" db:"event"`
	ActorID   *int       `json:"actor_id,omitempty" db:"actor_id"`
	Reason    *string    `json:"reason,omitempty" db:"reason"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
}
