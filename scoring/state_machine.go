package scoring

import (
	"fmt"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

// Event is a lifecycle event applied to a match through Transition.
type Event string

const (
	EventRecordToss     Event = "recordToss"
	EventStartInnings   Event = "startInnings"
	EventRecordDelivery Event = "recordDelivery"
	EventEndInnings     Event = "endInnings"
	EventCompleteMatch  Event = "completeMatch"
	EventAbandon        Event = "abandon"
	EventCancel         Event = "cancel"
	EventPostpone       Event = "postpone"
	EventReschedule     Event = "reschedule"
)

// wicketsPerInnings is fixed for eleven-a-side cricket.
const wicketsPerInnings = 10

// InvalidTransitionError reports an event that is not legal in the match's
// current state. Nothing is mutated when it is returned.
type InvalidTransitionError struct {
	State models.MatchState
	Event Event
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid state transition: cannot apply %q while match is %q", e.Event, e.State)
}

// InningsState is the summary snapshot of one innings the machine needs to
// judge preconditions. Entries must be in innings order.
type InningsState struct {
	BattingTeamID int
	Runs          int
	Wickets       int
	LegalBalls    int
	Closed        bool
}

// MatchContext carries everything outside the state enum that transition
// preconditions and result computation depend on.
type MatchContext struct {
	HomeTeamID   int
	AwayTeamID   int
	HomeTeamName string
	AwayTeamName string
	OversLimit   int
	Innings      []InningsState
}

func (c MatchContext) current() *InningsState {
	if len(c.Innings) == 0 {
		return nil
	}
	return &c.Innings[len(c.Innings)-1]
}

func (c MatchContext) currentOpen() bool {
	cur := c.current()
	return cur != nil && !cur.Closed
}

// target returns the chase target for the second innings, if one exists.
func (c MatchContext) target() (int, bool) {
	if len(c.Innings) < 2 {
		return 0, false
	}
	return c.Innings[0].Runs + 1, true
}

func (c MatchContext) teamName(teamID int) string {
	switch teamID {
	case c.HomeTeamID:
		if c.HomeTeamName != "" {
			return c.HomeTeamName
		}
		return "Home"
	case c.AwayTeamID:
		if c.AwayTeamName != "" {
			return c.AwayTeamName
		}
		return "Away"
	}
	return fmt.Sprintf("Team %d", teamID)
}

// TransitionResult is the outcome of a legal transition. Result and Winner
// are only set when the match reaches a terminal state.
type TransitionResult struct {
	From   models.MatchState
	To     models.MatchState
	Result *string
	Winner *models.MatchWinner
}

// Transition validates ev against the current state and context and returns
// the resulting state. It is a pure function: the caller applies the result
// to the match document and appends the audit record in the same write.
func Transition(state models.MatchState, ev Event, ctx MatchContext) (*TransitionResult, error) {
	illegal := func() (*TransitionResult, error) {
		return nil, &InvalidTransitionError{State: state, Event: ev}
	}
	res := &TransitionResult{From: state}

	switch ev {
	case EventRecordToss:
		if state != models.MatchStateScheduled {
			return illegal()
		}
		res.To = models.MatchStateTossPending

	case EventStartInnings:
		if state != models.MatchStateTossPending && state != models.MatchStateInningsBreak {
			return illegal()
		}
		if ctx.currentOpen() || len(ctx.Innings) >= 2 {
			return illegal()
		}
		res.To = models.MatchStateLive

	case EventRecordDelivery:
		if state != models.MatchStateLive || !ctx.currentOpen() {
			return illegal()
		}
		res.To = models.MatchStateLive

	case EventEndInnings:
		if state != models.MatchStateLive || !ctx.currentOpen() {
			return illegal()
		}
		res.To = models.MatchStateInningsBreak

	case EventCompleteMatch:
		if state != models.MatchStateInningsBreak {
			return illegal()
		}
		if ctx.currentOpen() {
			return illegal()
		}
		if err := checkCompletable(ctx); err != nil {
			return nil, err
		}
		res.To = models.MatchStateCompleted
		winner, result := decideResult(ctx)
		res.Winner = &winner
		res.Result = &result

	case EventAbandon:
		if state.IsTerminal() {
			return illegal()
		}
		res.To = models.MatchStateAbandoned
		winner := models.WinnerNoResult
		result := "Match abandoned"
		res.Winner = &winner
		res.Result = &result

	case EventCancel:
		if state.IsTerminal() {
			return illegal()
		}
		res.To = models.MatchStateCancelled
		winner := models.WinnerNoResult
		result := "Match cancelled"
		res.Winner = &winner
		res.Result = &result

	case EventPostpone:
		if state.IsTerminal() || state == models.MatchStatePostponed {
			return illegal()
		}
		res.To = models.MatchStatePostponed

	case EventReschedule:
		if state != models.MatchStatePostponed {
			return illegal()
		}
		res.To = models.MatchStateScheduled

	default:
		return illegal()
	}

	return res, nil
}

// checkCompletable enforces that a chase actually finished: the target was
// reached, or the batting side ran out of wickets or overs. A first-innings
// only match can always be closed out (the result is then no-result).
func checkCompletable(ctx MatchContext) error {
	if len(ctx.Innings) < 2 {
		return nil
	}
	second := ctx.Innings[1]
	target, _ := ctx.target()
	if second.Runs >= target {
		return nil
	}
	if second.Wickets >= wicketsPerInnings {
		return nil
	}
	if ctx.OversLimit > 0 && second.LegalBalls >= ctx.OversLimit*6 {
		return nil
	}
	return fmt.Errorf("%w: chase unresolved (%d/%d after %d legal balls, target %d)",
		ErrMatchNotDecided, second.Runs, second.Wickets, second.LegalBalls, target)
}

func decideResult(ctx MatchContext) (models.MatchWinner, string) {
	if len(ctx.Innings) < 2 {
		return models.WinnerNoResult, "No result"
	}
	first, second := ctx.Innings[0], ctx.Innings[1]
	switch {
	case second.Runs > first.Runs:
		wicketsInHand := wicketsPerInnings - second.Wickets
		name := ctx.teamName(second.BattingTeamID)
		return winnerSide(ctx, second.BattingTeamID),
			fmt.Sprintf("%s won by %d wicket%s", name, wicketsInHand, plural(wicketsInHand))
	case first.Runs > second.Runs:
		margin := first.Runs - second.Runs
		name := ctx.teamName(first.BattingTeamID)
		return winnerSide(ctx, first.BattingTeamID),
			fmt.Sprintf("%s won by %d run%s", name, margin, plural(margin))
	default:
		return models.WinnerTie, "Match tied"
	}
}

func winnerSide(ctx MatchContext, teamID int) models.MatchWinner {
	if teamID == ctx.HomeTeamID {
		return models.WinnerHome
	}
	return models.WinnerAway
}

func plural(n int) string {
	if n == 1 {
		return ""
	}
	return "s"
}
