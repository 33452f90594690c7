package scoring

import (
	"fmt"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

// The delivery ledger is the authoritative record of an innings. Everything
// in this file derives from it with pure functions; recomputing at any time
// over the same ledger yields identical results.

const maxRunsPerDelivery = 8

// IsLegalBall reports whether a delivery counts toward the six-ball over.
// Wides and no-balls do not.
func IsLegalBall(d models.Delivery) bool {
	return d.Extra != models.ExtraWide && d.Extra != models.ExtraNoBall
}

// DeliveryRuns is everything the batting side scored off the ball.
func DeliveryRuns(d models.Delivery) int {
	return d.RunsOffBat + d.ExtraRuns
}

// InningsTotals is a summary derived from the full ledger.
type InningsTotals struct {
	Runs       int `json:"runs"`
	Wickets    int `json:"wickets"`
	Extras     int `json:"extras"`
	LegalBalls int `json:"legal_balls"`
}

func Totals(deliveries []models.Delivery) InningsTotals {
	var t InningsTotals
	for _, d := range deliveries {
		t.Runs += DeliveryRuns(d)
		t.Extras += d.ExtraRuns
		if d.IsWicket {
			t.Wickets++
		}
		if IsLegalBall(d) {
			t.LegalBalls++
		}
	}
	return t
}

// OversString formats a legal-ball count as completed overs and balls,
// e.g. 104 legal balls -> "17.2".
func OversString(legalBalls int) string {
	return fmt.Sprintf("%d.%d", legalBalls/6, legalBalls%6)
}

// OversAt is the overs display at a single ball's position. The sixth (or
// later, when extras stretched the over) position rolls the figure into the
// next over.
func OversAt(d models.Delivery) string {
	if d.BallInOver >= 6 {
		return fmt.Sprintf("%d.0", d.Over+1)
	}
	return fmt.Sprintf("%d.%d", d.Over, d.BallInOver)
}

// OversFaced derives the innings' overs display from ledger positions rather
// than the legal-ball count. Wides and no-balls occupy positions within the
// over, so counting legal balls alone would understate the figure; rate
// arithmetic keeps using legal balls.
func OversFaced(deliveries []models.Delivery) string {
	var last *models.Delivery
	for i := range deliveries {
		d := &deliveries[i]
		if last == nil || d.Over > last.Over ||
			(d.Over == last.Over && d.BallInOver > last.BallInOver) {
			last = d
		}
	}
	if last == nil {
		return "0.0"
	}
	return OversAt(*last)
}

// OversDecimal converts a legal-ball count to overs for rate arithmetic.
func OversDecimal(legalBalls int) float64 {
	return float64(legalBalls) / 6.0
}

// RunRate is runs per over; zero balls is a valid zero-state, not an error.
func RunRate(runs, legalBalls int) float64 {
	if legalBalls == 0 {
		return 0
	}
	return float64(runs) / OversDecimal(legalBalls)
}

// RequiredRunRate returns the chase rate and false when there is no target or
// no balls remain.
func RequiredRunRate(target, currentRuns, legalBallsBowled, oversLimit int) (float64, bool) {
	if target <= 0 || oversLimit <= 0 {
		return 0, false
	}
	ballsRemaining := oversLimit*6 - legalBallsBowled
	if ballsRemaining <= 0 {
		return 0, false
	}
	needed := target - currentRuns
	if needed < 0 {
		needed = 0
	}
	return float64(needed) / OversDecimal(ballsRemaining), true
}

// BattingFigures are one batsman's numbers, derived from the balls faced as
// striker.
type BattingFigures struct {
	PlayerID   int     `json:"player_id"`
	Runs       int     `json:"runs"`
	BallsFaced int     `json:"balls_faced"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"`
}

// BattingCard aggregates per-striker figures in first-appearance order.
func BattingCard(deliveries []models.Delivery) []BattingFigures {
	order := make([]int, 0)
	byPlayer := make(map[int]*BattingFigures)
	for _, d := range deliveries {
		f, ok := byPlayer[d.StrikerID]
		if !ok {
			f = &BattingFigures{PlayerID: d.StrikerID}
			byPlayer[d.StrikerID] = f
			order = append(order, d.StrikerID)
		}
		f.Runs += d.RunsOffBat
		if IsLegalBall(d) {
			f.BallsFaced++
		}
		switch d.RunsOffBat {
		case 4:
			f.Fours++
		case 6:
			f.Sixes++
		}
	}
	card := make([]BattingFigures, 0, len(order))
	for _, id := range order {
		f := byPlayer[id]
		if f.BallsFaced > 0 {
			f.StrikeRate = float64(f.Runs) / float64(f.BallsFaced) * 100
		}
		card = append(card, *f)
	}
	return card
}

// BowlingFigures are one bowler's numbers. Wides and no-balls are charged to
// the bowler; byes and leg-byes are not. Run-outs are not credited wickets.
type BowlingFigures struct {
	PlayerID     int     `json:"player_id"`
	LegalBalls   int     `json:"legal_balls"`
	Overs        string  `json:"overs"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Economy      float64 `json:"economy"`
}

func bowlerCredited(d models.Delivery) bool {
	if !d.IsWicket || d.Dismissal == nil {
		return false
	}
	switch *d.Dismissal {
	case models.DismissalBowled, models.DismissalCaught, models.DismissalLBW,
		models.DismissalStumped, models.DismissalHitWicket:
		return true
	}
	return false
}

func chargedToBowler(d models.Delivery) int {
	runs := d.RunsOffBat
	if d.Extra == models.ExtraWide || d.Extra == models.ExtraNoBall {
		runs += d.ExtraRuns
	}
	return runs
}

// BowlingCard aggregates per-bowler figures in first-appearance order.
func BowlingCard(deliveries []models.Delivery) []BowlingFigures {
	order := make([]int, 0)
	byPlayer := make(map[int]*BowlingFigures)
	for _, d := range deliveries {
		f, ok := byPlayer[d.BowlerID]
		if !ok {
			f = &BowlingFigures{PlayerID: d.BowlerID}
			byPlayer[d.BowlerID] = f
			order = append(order, d.BowlerID)
		}
		if IsLegalBall(d) {
			f.LegalBalls++
		}
		f.RunsConceded += chargedToBowler(d)
		if bowlerCredited(d) {
			f.Wickets++
		}
	}
	card := make([]BowlingFigures, 0, len(order))
	for _, id := range order {
		f := byPlayer[id]
		f.Overs = OversString(f.LegalBalls)
		if f.LegalBalls > 0 {
			f.Economy = float64(f.RunsConceded) / OversDecimal(f.LegalBalls)
		}
		card = append(card, *f)
	}
	return card
}

// Partnership is the contiguous span of deliveries between two wicket falls
// (or innings start/end) for a fixed pair of batsmen. Runs include extras;
// each batsman's contribution counts only runs off the bat.
type Partnership struct {
	BatsmanAID    int     `json:"batsman_a_id"`
	BatsmanBID    int     `json:"batsman_b_id"`
	Runs          int     `json:"runs"`
	Balls         int     `json:"balls"`
	RunsA         int     `json:"runs_a"`
	RunsB         int     `json:"runs_b"`
	ContributionA float64 `json:"contribution_a"`
	ContributionB float64 `json:"contribution_b"`
}

// Partnerships splits the ledger at wicket falls. The pair is fixed by the
// first ball of the span; the final open span is included.
func Partnerships(deliveries []models.Delivery) []Partnership {
	partnerships := make([]Partnership, 0)
	var cur *Partnership
	for _, d := range deliveries {
		if cur == nil {
			cur = &Partnership{BatsmanAID: d.StrikerID, BatsmanBID: d.NonStrikerID}
		}
		cur.Runs += DeliveryRuns(d)
		if IsLegalBall(d) {
			cur.Balls++
		}
		switch d.StrikerID {
		case cur.BatsmanAID:
			cur.RunsA += d.RunsOffBat
		case cur.BatsmanBID:
			cur.RunsB += d.RunsOffBat
		}
		if d.IsWicket {
			partnerships = append(partnerships, finishPartnership(cur))
			cur = nil
		}
	}
	if cur != nil {
		partnerships = append(partnerships, finishPartnership(cur))
	}
	return partnerships
}

func finishPartnership(p *Partnership) Partnership {
	if p.Runs > 0 {
		p.ContributionA = float64(p.RunsA) / float64(p.Runs) * 100
		p.ContributionB = float64(p.RunsB) / float64(p.Runs) * 100
	}
	return *p
}

// ValidateDelivery rejects malformed balls at the recording boundary, before
// any mutation.
func ValidateDelivery(d models.Delivery) error {
	if d.StrikerID <= 0 {
		return ErrDeliveryMissingStriker
	}
	if d.NonStrikerID <= 0 {
		return ErrDeliveryMissingNonStriker
	}
	if d.BowlerID <= 0 {
		return ErrDeliveryMissingBowler
	}
	if d.StrikerID == d.NonStrikerID {
		return ErrDeliverySamePlayers
	}
	if d.RunsOffBat < 0 || d.RunsOffBat > maxRunsPerDelivery {
		return fmt.Errorf("%w: runs off bat %d", ErrDeliveryRunsOutOfRange, d.RunsOffBat)
	}
	if d.ExtraRuns < 0 || d.ExtraRuns > maxRunsPerDelivery {
		return fmt.Errorf("%w: extra runs %d", ErrDeliveryRunsOutOfRange, d.ExtraRuns)
	}
	switch d.Extra {
	case models.ExtraNone:
		if d.ExtraRuns != 0 {
			return fmt.Errorf("%w: extra runs without extra type", ErrDeliveryRunsOutOfRange)
		}
	case models.ExtraWide, models.ExtraNoBall:
		if d.ExtraRuns < 1 {
			return ErrDeliveryExtraRunsRequired
		}
		if d.Extra == models.ExtraWide && d.RunsOffBat != 0 {
			return fmt.Errorf("%w: runs off bat on a wide", ErrDeliveryRunsOutOfRange)
		}
	case models.ExtraBye, models.ExtraLegBye:
		if d.ExtraRuns < 1 {
			return fmt.Errorf("%w: bye without runs", ErrDeliveryRunsOutOfRange)
		}
	default:
		return fmt.Errorf("%w: %q", ErrDeliveryInvalidExtra, d.Extra)
	}
	if d.IsWicket && (d.Dismissal == nil || d.DismissedPlayerID == nil) {
		return ErrDeliveryWicketIncomplete
	}
	return nil
}

// ValidateOrder enforces strictly increasing (over, ball) per innings.
func ValidateOrder(prev *models.Delivery, next models.Delivery) error {
	if prev == nil {
		return nil
	}
	if next.Over < prev.Over || (next.Over == prev.Over && next.BallInOver <= prev.BallInOver) {
		return fmt.Errorf("%w: got (%d,%d) after (%d,%d)",
			ErrDeliveryOutOfOrder, next.Over, next.BallInOver, prev.Over, prev.BallInOver)
	}
	return nil
}
