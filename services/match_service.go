package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
	"github.com/iamkameel/scrbrd-beta-2-sub004/repositories"
	"github.com/iamkameel/scrbrd-beta-2-sub004/scoring"
)

// Fixtures still in scheduled state this long after their start time are
// swept into postponed by the background scheduler.
const overdueFixtureGrace = 6 * time.Hour

type MatchService interface {
	CreateFixture(ctx context.Context, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	List(ctx context.Context, filter repositories.MatchListFilter) ([]*models.Match, error)
	UpdateFixture(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error)
	Delete(ctx context.Context, id int) error

	RecordToss(ctx context.Context, matchID, actorID int, input TossInput) (*models.Match, error)
	StartInnings(ctx context.Context, matchID, actorID int) (*models.Match, error)
	RecordDelivery(ctx context.Context, matchID, actorID int, input DeliveryInput) (*models.Delivery, error)
	CorrectDelivery(ctx context.Context, matchID, actorID int, original uuid.UUID, input DeliveryInput) (*models.Delivery, error)
	EndInnings(ctx context.Context, matchID, actorID int) (*models.Match, error)
	CompleteMatch(ctx context.Context, matchID, actorID int) (*models.Match, error)
	Abandon(ctx context.Context, matchID, actorID int, reason *string) (*models.Match, error)
	Cancel(ctx context.Context, matchID, actorID int, reason *string) (*models.Match, error)
	Postpone(ctx context.Context, matchID, actorID int, reason *string) (*models.Match, error)
	Reschedule(ctx context.Context, matchID, actorID int, newTime time.Time) (*models.Match, error)

	Scorecard(ctx context.Context, matchID int) (*MatchScorecard, error)
	ListTransitions(ctx context.Context, matchID int) ([]*models.MatchTransition, error)
	SweepOverdueFixtures(ctx context.Context) (int, error)
}

type CreateMatchInput struct {
	Season         string    `json:"season"`
	HomeTeamID     int       `json:"home_team_id"`
	AwayTeamID     int       `json:"away_team_id"`
	Venue          string    `json:"venue"`
	ScheduledAt    time.Time `json:"scheduled_at"`
	OversLimit     int       `json:"overs_limit"`
	FirstUmpireID  *int      `json:"first_umpire_id"`
	SecondUmpireID *int      `json:"second_umpire_id"`
}

type UpdateMatchInput struct {
	Venue          *string    `json:"venue"`
	ScheduledAt    *time.Time `json:"scheduled_at"`
	FirstUmpireID  *int       `json:"first_umpire_id"`
	SecondUmpireID *int       `json:"second_umpire_id"`
}

type TossInput struct {
	TossWinnerID int                 `json:"toss_winner_id"`
	Decision     models.TossDecision `json:"decision"`
}

type DeliveryInput struct {
	Over              int                   `json:"over"`
	BallInOver        int                   `json:"ball_in_over"`
	StrikerID         int                   `json:"striker_id"`
	NonStrikerID      int                   `json:"non_striker_id"`
	BowlerID          int                   `json:"bowler_id"`
	RunsOffBat        int                   `json:"runs_off_bat"`
	Extra             models.ExtraType      `json:"extra"`
	ExtraRuns         int                   `json:"extra_runs"`
	IsWicket          bool                  `json:"is_wicket"`
	Dismissal         *models.DismissalType `json:"dismissal"`
	DismissedPlayerID *int                  `json:"dismissed_player_id"`
}

// InningsScorecard is the derived view of one innings: totals plus per-player
// figures, all recomputed from the effective delivery ledger.
type InningsScorecard struct {
	Innings      models.Innings           `json:"innings"`
	BattingTeam  string                   `json:"batting_team"`
	Overs        string                   `json:"overs"`
	RunRate      float64                  `json:"run_rate"`
	Extras       int                      `json:"extras"`
	Batting      []scoring.BattingFigures `json:"batting"`
	Bowling      []scoring.BowlingFigures `json:"bowling"`
	Partnerships []scoring.Partnership    `json:"partnerships"`
}

type MatchScorecard struct {
	Match           *models.Match      `json:"match"`
	Innings         []InningsScorecard `json:"innings"`
	Target          *int               `json:"target,omitempty"`
	RequiredRunRate *float64           `json:"required_run_rate,omitempty"`
}

type matchService struct {
	inTx         func(ctx context.Context, fn func(tx *sql.Tx) error) error
	matchRepo    repositories.MatchRepository
	inningsRepo  repositories.InningsRepository
	deliveryRepo repositories.DeliveryRepository
	teamRepo     repositories.TeamRepository
	officialRepo repositories.OfficialRepository
	hub          *scoring.Hub
	logger       *slog.Logger
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	inningsRepo repositories.InningsRepository,
	deliveryRepo repositories.DeliveryRepository,
	teamRepo repositories.TeamRepository,
	officialRepo repositories.OfficialRepository,
	hub *scoring.Hub,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		inTx: func(ctx context.Context, fn func(tx *sql.Tx) error) error {
			return runInTx(ctx, db, fn)
		},
		matchRepo:    matchRepo,
		inningsRepo:  inningsRepo,
		deliveryRepo: deliveryRepo,
		teamRepo:     teamRepo,
		officialRepo: officialRepo,
		hub:          hub,
		logger:       logger,
	}
}

func matchRoom(matchID int) string {
	return fmt.Sprintf("match_%d", matchID)
}

// --- Fixture CRUD ---

func (s *matchService) CreateFixture(ctx context.Context, input CreateMatchInput) (*models.Match, error) {
	if strings.TrimSpace(input.Season) == "" {
		return nil, fmt.Errorf("%w: season is required", ErrValidationFailed)
	}
	if input.HomeTeamID == input.AwayTeamID {
		return nil, ErrSameTeamFixture
	}
	if input.OversLimit <= 0 {
		return nil, ErrInvalidOversLimit
	}
	for _, teamID := range []int{input.HomeTeamID, input.AwayTeamID} {
		if _, err := s.teamRepo.GetByID(ctx, teamID); err != nil {
			if errors.Is(err, repositories.ErrTeamNotFound) {
				return nil, ErrTeamNotFound
			}
			return nil, fmt.Errorf("failed to check team %d: %w", teamID, err)
		}
	}
	if err := s.checkUmpires(ctx, input.FirstUmpireID, input.SecondUmpireID); err != nil {
		return nil, err
	}

	match := &models.Match{
		Season:         strings.TrimSpace(input.Season),
		HomeTeamID:     input.HomeTeamID,
		AwayTeamID:     input.AwayTeamID,
		Venue:          strings.TrimSpace(input.Venue),
		ScheduledAt:    input.ScheduledAt,
		OversLimit:     input.OversLimit,
		State:          models.MatchStateScheduled,
		FirstUmpireID:  input.FirstUmpireID,
		SecondUmpireID: input.SecondUmpireID,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchTeamInvalid) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("failed to create match: %w", err)
	}
	return match, nil
}

func (s *matchService) checkUmpires(ctx context.Context, ids ...*int) error {
	for _, id := range ids {
		if id == nil {
			continue
		}
		official, err := s.officialRepo.GetByID(ctx, *id)
		if err != nil {
			if errors.Is(err, repositories.ErrOfficialNotFound) {
				return ErrOfficialNotFound
			}
			return fmt.Errorf("failed to check official %d: %w", *id, err)
		}
		if official.Role != models.OfficialUmpire {
			return fmt.Errorf("%w: official %d is not an umpire", ErrValidationFailed, *id)
		}
	}
	return nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	if err := s.populateMatch(ctx, match); err != nil {
		return nil, err
	}
	return match, nil
}

func (s *matchService) populateMatch(ctx context.Context, match *models.Match) error {
	home, err := s.teamRepo.GetByID(ctx, match.HomeTeamID)
	if err == nil {
		match.HomeTeam = home
	} else if !errors.Is(err, repositories.ErrTeamNotFound) {
		return fmt.Errorf("failed to get home team for match %d: %w", match.ID, err)
	}
	away, err := s.teamRepo.GetByID(ctx, match.AwayTeamID)
	if err == nil {
		match.AwayTeam = away
	} else if !errors.Is(err, repositories.ErrTeamNotFound) {
		return fmt.Errorf("failed to get away team for match %d: %w", match.ID, err)
	}

	innings, err := s.inningsRepo.ListByMatch(ctx, match.ID)
	if err != nil {
		return fmt.Errorf("failed to list innings for match %d: %w", match.ID, err)
	}
	match.Innings = make([]models.Innings, 0, len(innings))
	for _, in := range innings {
		match.Innings = append(match.Innings, *in)
	}
	return nil
}

func (s *matchService) List(ctx context.Context, filter repositories.MatchListFilter) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches: %w", err)
	}
	return matches, nil
}

func (s *matchService) UpdateFixture(ctx context.Context, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", id, err)
	}
	if match.State.IsTerminal() {
		return nil, ErrMatchFrozen
	}

	if input.Venue != nil {
		match.Venue = strings.TrimSpace(*input.Venue)
	}
	if input.ScheduledAt != nil {
		match.ScheduledAt = *input.ScheduledAt
	}
	if input.FirstUmpireID != nil {
		match.FirstUmpireID = input.FirstUmpireID
	}
	if input.SecondUmpireID != nil {
		match.SecondUmpireID = input.SecondUmpireID
	}
	if err := s.checkUmpires(ctx, match.FirstUmpireID, match.SecondUmpireID); err != nil {
		return nil, err
	}

	if err := s.matchRepo.Update(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrScoringConflict
		}
		return nil, fmt.Errorf("failed to update match %d: %w", id, err)
	}
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, id int) error {
	err := s.matchRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return fmt.Errorf("failed to delete match %d: %w", id, err)
	}
	return nil
}

// --- Lifecycle ---

// loadContext builds the state machine snapshot from persisted innings and
// team names.
func (s *matchService) loadContext(ctx context.Context, match *models.Match) (scoring.MatchContext, []*models.Innings, error) {
	mctx := scoring.MatchContext{
		HomeTeamID: match.HomeTeamID,
		AwayTeamID: match.AwayTeamID,
		OversLimit: match.OversLimit,
	}
	if home, err := s.teamRepo.GetByID(ctx, match.HomeTeamID); err == nil {
		mctx.HomeTeamName = home.Name
	}
	if away, err := s.teamRepo.GetByID(ctx, match.AwayTeamID); err == nil {
		mctx.AwayTeamName = away.Name
	}

	innings, err := s.inningsRepo.ListByMatch(ctx, match.ID)
	if err != nil {
		return mctx, nil, fmt.Errorf("failed to list innings for match %d: %w", match.ID, err)
	}
	for _, in := range innings {
		mctx.Innings = append(mctx.Innings, scoring.InningsState{
			BattingTeamID: in.BattingTeamID,
			Runs:          in.TotalRuns,
			Wickets:       in.Wickets,
			LegalBalls:    in.LegalBalls,
			Closed:        in.Closed,
		})
	}
	return mctx, innings, nil
}

func (s *matchService) getMatch(ctx context.Context, matchID int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to get match %d: %w", matchID, err)
	}
	return match, nil
}

func (s *matchService) RecordToss(ctx context.Context, matchID, actorID int, input TossInput) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if input.TossWinnerID != match.HomeTeamID && input.TossWinnerID != match.AwayTeamID {
		return nil, ErrTossWinnerNotPlaying
	}
	if input.Decision != models.TossDecisionBat && input.Decision != models.TossDecisionBowl {
		return nil, fmt.Errorf("%w: toss decision must be bat or bowl", ErrValidationFailed)
	}

	mctx, _, err := s.loadContext(ctx, match)
	if err != nil {
		return nil, err
	}
	res, err := scoring.Transition(match.State, scoring.EventRecordToss, mctx)
	if err != nil {
		return nil, err
	}

	match.State = res.To
	match.TossWinnerID = &input.TossWinnerID
	match.TossDecision = &input.Decision

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.matchRepo.UpdateToss(ctx, tx, match); err != nil {
			return err
		}
		return s.matchRepo.AppendTransition(ctx, tx, &models.MatchTransition{
			MatchID:   matchID,
			FromState: res.From,
			ToState:   res.To,
			Event:     string(scoring.EventRecordToss),
			ActorID:   &actorID,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrScoringConflict
		}
		return nil, err
	}

	s.broadcastState(match, res)
	return match, nil
}

func (s *matchService) StartInnings(ctx context.Context, matchID, actorID int) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	mctx, existing, err := s.loadContext(ctx, match)
	if err != nil {
		return nil, err
	}
	res, err := scoring.Transition(match.State, scoring.EventStartInnings, mctx)
	if err != nil {
		return nil, err
	}

	battingTeamID, bowlingTeamID, err := s.nextInningsSides(match, existing)
	if err != nil {
		return nil, err
	}
	innings := &models.Innings{
		MatchID:       matchID,
		Number:        len(existing) + 1,
		BattingTeamID: battingTeamID,
		BowlingTeamID: bowlingTeamID,
	}

	match.State = res.To
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.inningsRepo.Create(ctx, tx, innings); err != nil {
			return err
		}
		if err := s.matchRepo.UpdateStateResult(ctx, tx, match); err != nil {
			return err
		}
		return s.matchRepo.AppendTransition(ctx, tx, &models.MatchTransition{
			MatchID:   matchID,
			FromState: res.From,
			ToState:   res.To,
			Event:     string(scoring.EventStartInnings),
			ActorID:   &actorID,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrScoringConflict
		}
		return nil, err
	}

	match.Innings = append(match.Innings, *innings)
	s.broadcastState(match, res)
	return match, nil
}

// nextInningsSides resolves who bats from the toss for the first innings and
// flips the sides for the second.
func (s *matchService) nextInningsSides(match *models.Match, existing []*models.Innings) (batting, bowling int, err error) {
	if len(existing) == 0 {
		if match.TossWinnerID == nil || match.TossDecision == nil {
			return 0, 0, fmt.Errorf("%w: toss has not been recorded", ErrValidationFailed)
		}
		tossLoserID := match.HomeTeamID
		if *match.TossWinnerID == match.HomeTeamID {
			tossLoserID = match.AwayTeamID
		}
		if *match.TossDecision == models.TossDecisionBat {
			return *match.TossWinnerID, tossLoserID, nil
		}
		return tossLoserID, *match.TossWinnerID, nil
	}
	first := existing[0]
	return first.BowlingTeamID, first.BattingTeamID, nil
}

func (s *matchService) RecordDelivery(ctx context.Context, matchID, actorID int, input DeliveryInput) (*models.Delivery, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	mctx, existing, err := s.loadContext(ctx, match)
	if err != nil {
		return nil, err
	}
	if _, err := scoring.Transition(match.State, scoring.EventRecordDelivery, mctx); err != nil {
		return nil, err
	}

	innings := existing[len(existing)-1]
	delivery := deliveryFromInput(innings.ID, input)
	if err := scoring.ValidateDelivery(*delivery); err != nil {
		return nil, err
	}

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		prev, err := s.deliveryRepo.GetLastByInnings(ctx, tx, innings.ID)
		if err != nil {
			return err
		}
		if err := scoring.ValidateOrder(prev, *delivery); err != nil {
			return err
		}
		if err := s.deliveryRepo.Append(ctx, tx, delivery); err != nil {
			return err
		}

		innings.TotalRuns += scoring.DeliveryRuns(*delivery)
		if delivery.IsWicket {
			innings.Wickets++
		}
		if scoring.IsLegalBall(*delivery) {
			innings.LegalBalls++
		}
		return s.inningsRepo.UpdateSummary(ctx, tx, innings)
	})
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrScoringConflict
		}
		return nil, err
	}

	s.broadcastScore(matchID, innings, delivery, scoring.OversAt(*delivery))
	return delivery, nil
}

// CorrectDelivery supersedes a ball with a replacement at the same position.
// The original row is never edited, so the audit trail keeps both versions.
func (s *matchService) CorrectDelivery(ctx context.Context, matchID, actorID int, original uuid.UUID, input DeliveryInput) (*models.Delivery, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	if match.State.IsTerminal() {
		return nil, ErrMatchFrozen
	}

	orig, err := s.deliveryRepo.GetByUID(ctx, original)
	if err != nil {
		if errors.Is(err, repositories.ErrDeliveryNotFound) {
			return nil, ErrDeliveryNotFound
		}
		return nil, fmt.Errorf("failed to get delivery %s: %w", original, err)
	}
	if orig.SupersededBy != nil {
		return nil, ErrDeliveryAlreadyFixed
	}

	innings, err := s.inningsRepo.GetByID(ctx, orig.InningsID)
	if err != nil {
		if errors.Is(err, repositories.ErrInningsNotFound) {
			return nil, ErrInningsNotFound
		}
		return nil, fmt.Errorf("failed to get innings %d: %w", orig.InningsID, err)
	}
	if innings.MatchID != matchID {
		return nil, ErrDeliveryNotFound
	}

	replacement := deliveryFromInput(innings.ID, input)
	replacement.Over = orig.Over
	replacement.BallInOver = orig.BallInOver
	if err := scoring.ValidateDelivery(*replacement); err != nil {
		return nil, err
	}

	var lastBall *models.Delivery
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.deliveryRepo.MarkSuperseded(ctx, tx, orig.UID, replacement.UID); err != nil {
			return err
		}
		if err := s.deliveryRepo.Append(ctx, tx, replacement); err != nil {
			return err
		}
		last, err := s.deliveryRepo.GetLastByInnings(ctx, tx, innings.ID)
		if err != nil {
			return err
		}
		lastBall = last

		innings.TotalRuns += scoring.DeliveryRuns(*replacement) - scoring.DeliveryRuns(*orig)
		innings.Wickets += boolToInt(replacement.IsWicket) - boolToInt(orig.IsWicket)
		innings.LegalBalls += boolToInt(scoring.IsLegalBall(*replacement)) - boolToInt(scoring.IsLegalBall(*orig))
		return s.inningsRepo.UpdateSummary(ctx, tx, innings)
	})
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrVersionConflict):
			return nil, ErrScoringConflict
		case errors.Is(err, repositories.ErrDeliverySuperseded):
			return nil, ErrDeliveryAlreadyFixed
		}
		return nil, err
	}

	s.broadcastScore(matchID, innings, replacement, scoring.OversAt(*lastBall))
	return replacement, nil
}

func deliveryFromInput(inningsID int, input DeliveryInput) *models.Delivery {
	return &models.Delivery{
		UID:               uuid.New(),
		InningsID:         inningsID,
		Over:              input.Over,
		BallInOver:        input.BallInOver,
		StrikerID:         input.StrikerID,
		NonStrikerID:      input.NonStrikerID,
		BowlerID:          input.BowlerID,
		RunsOffBat:        input.RunsOffBat,
		Extra:             input.Extra,
		ExtraRuns:         input.ExtraRuns,
		IsWicket:          input.IsWicket,
		Dismissal:         input.Dismissal,
		DismissedPlayerID: input.DismissedPlayerID,
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (s *matchService) EndInnings(ctx context.Context, matchID, actorID int) (*models.Match, error) {
	return s.applyLifecycle(ctx, matchID, actorID, scoring.EventEndInnings, nil,
		func(ctx context.Context, tx *sql.Tx, innings []*models.Innings) error {
			current := innings[len(innings)-1]
			return s.inningsRepo.Close(ctx, tx, current)
		})
}

func (s *matchService) CompleteMatch(ctx context.Context, matchID, actorID int) (*models.Match, error) {
	return s.applyLifecycle(ctx, matchID, actorID, scoring.EventCompleteMatch, nil, nil)
}

func (s *matchService) Abandon(ctx context.Context, matchID, actorID int, reason *string) (*models.Match, error) {
	return s.applyLifecycle(ctx, matchID, actorID, scoring.EventAbandon, reason, s.closeOpenInnings)
}

func (s *matchService) Cancel(ctx context.Context, matchID, actorID int, reason *string) (*models.Match, error) {
	return s.applyLifecycle(ctx, matchID, actorID, scoring.EventCancel, reason, s.closeOpenInnings)
}

func (s *matchService) Postpone(ctx context.Context, matchID, actorID int, reason *string) (*models.Match, error) {
	return s.applyLifecycle(ctx, matchID, actorID, scoring.EventPostpone, reason, nil)
}

func (s *matchService) Reschedule(ctx context.Context, matchID, actorID int, newTime time.Time) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	mctx, _, err := s.loadContext(ctx, match)
	if err != nil {
		return nil, err
	}
	res, err := scoring.Transition(match.State, scoring.EventReschedule, mctx)
	if err != nil {
		return nil, err
	}

	match.State = res.To
	match.ScheduledAt = newTime
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if err := s.matchRepo.UpdateStateResult(ctx, tx, match); err != nil {
			return err
		}
		return s.matchRepo.AppendTransition(ctx, tx, &models.MatchTransition{
			MatchID:   matchID,
			FromState: res.From,
			ToState:   res.To,
			Event:     string(scoring.EventReschedule),
			ActorID:   &actorID,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrScoringConflict
		}
		return nil, err
	}

	s.broadcastState(match, res)
	return match, nil
}

func (s *matchService) closeOpenInnings(ctx context.Context, tx *sql.Tx, innings []*models.Innings) error {
	for _, in := range innings {
		if !in.Closed {
			if err := s.inningsRepo.Close(ctx, tx, in); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *matchService) applyLifecycle(
	ctx context.Context,
	matchID, actorID int,
	ev scoring.Event,
	reason *string,
	extra func(ctx context.Context, tx *sql.Tx, innings []*models.Innings) error,
) (*models.Match, error) {
	match, err := s.getMatch(ctx, matchID)
	if err != nil {
		return nil, err
	}
	mctx, innings, err := s.loadContext(ctx, match)
	if err != nil {
		return nil, err
	}
	res, err := scoring.Transition(match.State, ev, mctx)
	if err != nil {
		return nil, err
	}

	match.State = res.To
	if res.Result != nil {
		match.Result = res.Result
		match.Winner = res.Winner
	}

	var actor *int
	if actorID != 0 {
		actor = &actorID
	}
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if extra != nil {
			if err := extra(ctx, tx, innings); err != nil {
				return err
			}
		}
		if err := s.matchRepo.UpdateStateResult(ctx, tx, match); err != nil {
			return err
		}
		return s.matchRepo.AppendTransition(ctx, tx, &models.MatchTransition{
			MatchID:   matchID,
			FromState: res.From,
			ToState:   res.To,
			Event:     string(ev),
			ActorID:   actor,
			Reason:    reason,
		})
	})
	if err != nil {
		if errors.Is(err, repositories.ErrVersionConflict) {
			return nil, ErrScoringConflict
		}
		return nil, err
	}

	s.broadcastState(match, res)
	return match, nil
}

func (s *matchService) broadcastState(match *models.Match, res *scoring.TransitionResult) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(matchRoom(match.ID), scoring.WebSocketMessage{
		Type: scoring.MessageStateChanged,
		Payload: map[string]interface{}{
			"match_id": match.ID,
			"from":     res.From,
			"to":       res.To,
			"result":   match.Result,
			"winner":   match.Winner,
		},
	})
}

func (s *matchService) broadcastScore(matchID int, innings *models.Innings, delivery *models.Delivery, overs string) {
	if s.hub == nil {
		return
	}
	room := matchRoom(matchID)
	s.hub.BroadcastToRoom(room, scoring.WebSocketMessage{
		Type:    scoring.MessageDeliveryRecorded,
		Payload: delivery,
	})
	s.hub.BroadcastToRoom(room, scoring.WebSocketMessage{
		Type: scoring.MessageScoreUpdated,
		Payload: map[string]interface{}{
			"match_id":   matchID,
			"innings":    innings.Number,
			"total_runs": innings.TotalRuns,
			"wickets":    innings.Wickets,
			"overs":      overs,
		},
	})
}

// --- Derived views ---

func (s *matchService) Scorecard(ctx context.Context, matchID int) (*MatchScorecard, error) {
	match, err := s.GetByID(ctx, matchID)
	if err != nil {
		return nil, err
	}

	card := &MatchScorecard{
		Match:   match,
		Innings: make([]InningsScorecard, len(match.Innings)),
	}

	g, gctx := errgroup.WithContext(ctx)
	for i := range match.Innings {
		i := i
		g.Go(func() error {
			in := match.Innings[i]
			deliveries, err := s.deliveryRepo.ListByInnings(gctx, in.ID)
			if err != nil {
				return fmt.Errorf("failed to list deliveries for innings %d: %w", in.ID, err)
			}
			totals := scoring.Totals(deliveries)
			in.Deliveries = deliveries

			battingTeam := ""
			if match.HomeTeam != nil && in.BattingTeamID == match.HomeTeamID {
				battingTeam = match.HomeTeam.Name
			} else if match.AwayTeam != nil && in.BattingTeamID == match.AwayTeamID {
				battingTeam = match.AwayTeam.Name
			}

			card.Innings[i] = InningsScorecard{
				Innings:      in,
				BattingTeam:  battingTeam,
				Overs:        scoring.OversFaced(deliveries),
				RunRate:      scoring.RunRate(totals.Runs, totals.LegalBalls),
				Extras:       totals.Extras,
				Batting:      scoring.BattingCard(deliveries),
				Bowling:      scoring.BowlingCard(deliveries),
				Partnerships: scoring.Partnerships(deliveries),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(match.Innings) == 2 && match.State == models.MatchStateLive {
		target := match.Innings[0].TotalRuns + 1
		card.Target = &target
		second := match.Innings[1]
		if rrr, ok := scoring.RequiredRunRate(target, second.TotalRuns, second.LegalBalls, match.OversLimit); ok {
			card.RequiredRunRate = &rrr
		}
	}

	return card, nil
}

func (s *matchService) ListTransitions(ctx context.Context, matchID int) ([]*models.MatchTransition, error) {
	if _, err := s.getMatch(ctx, matchID); err != nil {
		return nil, err
	}
	transitions, err := s.matchRepo.ListTransitions(ctx, matchID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transitions for match %d: %w", matchID, err)
	}
	return transitions, nil
}

// SweepOverdueFixtures postpones fixtures whose start time passed more than
// the grace period ago without a toss being recorded. Driven by the
// background scheduler.
func (s *matchService) SweepOverdueFixtures(ctx context.Context) (int, error) {
	state := models.MatchStateScheduled
	matches, err := s.matchRepo.List(ctx, repositories.MatchListFilter{State: &state})
	if err != nil {
		return 0, fmt.Errorf("failed to list scheduled matches: %w", err)
	}

	cutoff := time.Now().Add(-overdueFixtureGrace)
	reason := "automatically postponed: no toss recorded after scheduled start"
	swept := 0
	for _, match := range matches {
		if match.ScheduledAt.After(cutoff) {
			continue
		}
		if _, err := s.Postpone(ctx, match.ID, 0, &reason); err != nil {
			s.logger.Warn("failed to postpone overdue fixture", "match_id", match.ID, "error", err)
			continue
		}
		swept++
	}
	return swept, nil
}
