package scoring

import (
	"errors"
	"testing"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

func chaseContext(innings ...InningsState) MatchContext {
	return MatchContext{
		HomeTeamID:   1,
		AwayTeamID:   2,
		HomeTeamName: "Kingswood",
		AwayTeamName: "Riverside",
		OversLimit:   20,
		Innings:      innings,
	}
}

func TestIllegalTransitions(t *testing.T) {
	cases := []struct {
		name  string
		state models.MatchState
		event Event
		ctx   MatchContext
	}{
		{"delivery while scheduled", models.MatchStateScheduled, EventRecordDelivery, chaseContext()},
		{"toss while live", models.MatchStateLive, EventRecordToss,
			chaseContext(InningsState{BattingTeamID: 1})},
		{"complete while live", models.MatchStateLive, EventCompleteMatch,
			chaseContext(InningsState{BattingTeamID: 1, Runs: 50})},
		{"start innings while live", models.MatchStateLive, EventStartInnings,
			chaseContext(InningsState{BattingTeamID: 1})},
		{"abandon a completed match", models.MatchStateCompleted, EventAbandon, chaseContext()},
		{"cancel a cancelled match", models.MatchStateCancelled, EventCancel, chaseContext()},
		{"reschedule without postponement", models.MatchStateScheduled, EventReschedule, chaseContext()},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Transition(tc.state, tc.event, tc.ctx)
			var invalid *InvalidTransitionError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidTransitionError, got %v", err)
			}
			if invalid.State != tc.state || invalid.Event != tc.event {
				t.Errorf("error should identify state and event, got %+v", invalid)
			}
		})
	}
}

func TestFullLifecycle(t *testing.T) {
	state := models.MatchStateScheduled

	step := func(ev Event, ctx MatchContext, want models.MatchState) *TransitionResult {
		t.Helper()
		res, err := Transition(state, ev, ctx)
		if err != nil {
			t.Fatalf("%s from %s: unexpected error %v", ev, state, err)
		}
		if res.To != want {
			t.Fatalf("%s: expected state %s, got %s", ev, want, res.To)
		}
		state = res.To
		return res
	}

	step(EventRecordToss, chaseContext(), models.MatchStateTossPending)
	step(EventStartInnings, chaseContext(), models.MatchStateLive)

	firstOpen := InningsState{BattingTeamID: 1, Runs: 120, Wickets: 4, LegalBalls: 120}
	step(EventRecordDelivery, chaseContext(firstOpen), models.MatchStateLive)
	firstClosed := firstOpen
	firstClosed.Closed = true
	step(EventEndInnings, chaseContext(firstOpen), models.MatchStateInningsBreak)
	step(EventStartInnings, chaseContext(firstClosed), models.MatchStateLive)

	secondClosed := InningsState{BattingTeamID: 2, Runs: 121, Wickets: 6, LegalBalls: 110, Closed: true}
	secondOpen := secondClosed
	secondOpen.Closed = false
	step(EventEndInnings, chaseContext(firstClosed, secondOpen), models.MatchStateInningsBreak)

	res := step(EventCompleteMatch, chaseContext(firstClosed, secondClosed), models.MatchStateCompleted)
	if res.Winner == nil || *res.Winner != models.WinnerAway {
		t.Fatalf("expected away winner, got %v", res.Winner)
	}
	if res.Result == nil || *res.Result != "Riverside won by 4 wickets" {
		t.Errorf("unexpected result string: %v", res.Result)
	}
}

func TestCompleteMatchRequiresDecidedChase(t *testing.T) {
	first := InningsState{BattingTeamID: 1, Runs: 150, Wickets: 5, LegalBalls: 120, Closed: true}
	// Chase closed early with runs, wickets and overs all left.
	second := InningsState{BattingTeamID: 2, Runs: 60, Wickets: 2, LegalBalls: 48, Closed: true}

	_, err := Transition(models.MatchStateInningsBreak, EventCompleteMatch, chaseContext(first, second))
	if !errors.Is(err, ErrMatchNotDecided) {
		t.Fatalf("expected ErrMatchNotDecided, got %v", err)
	}
}

func TestCompleteMatchResultVariants(t *testing.T) {
	first := InningsState{BattingTeamID: 1, Runs: 150, Wickets: 5, LegalBalls: 120, Closed: true}

	t.Run("defending side wins by runs", func(t *testing.T) {
		second := InningsState{BattingTeamID: 2, Runs: 127, Wickets: 10, LegalBalls: 104, Closed: true}
		res, err := Transition(models.MatchStateInningsBreak, EventCompleteMatch, chaseContext(first, second))
		if err != nil {
			t.Fatal(err)
		}
		if *res.Winner != models.WinnerHome {
			t.Errorf("expected home winner, got %s", *res.Winner)
		}
		if *res.Result != "Kingswood won by 23 runs" {
			t.Errorf("unexpected result: %s", *res.Result)
		}
	})

	t.Run("tie on overs exhausted", func(t *testing.T) {
		second := InningsState{BattingTeamID: 2, Runs: 150, Wickets: 7, LegalBalls: 120, Closed: true}
		res, err := Transition(models.MatchStateInningsBreak, EventCompleteMatch, chaseContext(first, second))
		if err != nil {
			t.Fatal(err)
		}
		if *res.Winner != models.WinnerTie {
			t.Errorf("expected tie, got %s", *res.Winner)
		}
		if *res.Result != "Match tied" {
			t.Errorf("unexpected result: %s", *res.Result)
		}
	})

	t.Run("single innings is a no-result", func(t *testing.T) {
		res, err := Transition(models.MatchStateInningsBreak, EventCompleteMatch, chaseContext(first))
		if err != nil {
			t.Fatal(err)
		}
		if *res.Winner != models.WinnerNoResult {
			t.Errorf("expected no_result, got %s", *res.Winner)
		}
	})
}

func TestSideBranches(t *testing.T) {
	for _, from := range []models.MatchState{
		models.MatchStateScheduled, models.MatchStateTossPending,
		models.MatchStateLive, models.MatchStateInningsBreak,
	} {
		res, err := Transition(from, EventAbandon, chaseContext())
		if err != nil {
			t.Fatalf("abandon from %s: %v", from, err)
		}
		if res.To != models.MatchStateAbandoned {
			t.Errorf("abandon from %s: got %s", from, res.To)
		}
		if res.Winner == nil || *res.Winner != models.WinnerNoResult {
			t.Errorf("abandon must freeze a no-result winner, got %v", res.Winner)
		}
	}

	res, err := Transition(models.MatchStateScheduled, EventPostpone, chaseContext())
	if err != nil || res.To != models.MatchStatePostponed {
		t.Fatalf("postpone from scheduled failed: %v", err)
	}
	res, err = Transition(models.MatchStatePostponed, EventReschedule, chaseContext())
	if err != nil || res.To != models.MatchStateScheduled {
		t.Fatalf("reschedule from postponed failed: %v", err)
	}
}
