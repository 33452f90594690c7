package scoring

import (
	"math"
	"testing"

	"github.com/iamkameel/scrbrd-beta-2-sub004/models"
)

func ball(over, ballInOver, runs int) models.Delivery {
	return models.Delivery{
		Over: over, BallInOver: ballInOver,
		StrikerID: 1, NonStrikerID: 2, BowlerID: 10,
		RunsOffBat: runs, Extra: models.ExtraNone,
	}
}

func wide(over, ballInOver, runs int) models.Delivery {
	d := ball(over, ballInOver, 0)
	d.Extra = models.ExtraWide
	d.ExtraRuns = runs
	return d
}

func wicket(over, ballInOver int, dismissal models.DismissalType, out int) models.Delivery {
	d := ball(over, ballInOver, 0)
	d.IsWicket = true
	d.Dismissal = &dismissal
	d.DismissedPlayerID = &out
	return d
}

func TestTotalsEmptyLedgerIsZeroState(t *testing.T) {
	totals := Totals(nil)
	if totals.Runs != 0 || totals.Wickets != 0 || totals.LegalBalls != 0 || totals.Extras != 0 {
		t.Errorf("empty ledger should derive to zero totals, got %+v", totals)
	}
	if got := len(BattingCard(nil)); got != 0 {
		t.Errorf("empty ledger batting card should be empty, got %d entries", got)
	}
	if got := len(Partnerships(nil)); got != 0 {
		t.Errorf("empty ledger should have no partnerships, got %d", got)
	}
}

func TestOverArithmetic(t *testing.T) {
	// Six legal balls advance exactly one over.
	legal := make([]models.Delivery, 0, 6)
	for i := 1; i <= 6; i++ {
		legal = append(legal, ball(0, i, 1))
	}
	if got := Totals(legal).LegalBalls; got != 6 {
		t.Fatalf("expected 6 legal balls, got %d", got)
	}
	if got := OversString(Totals(legal).LegalBalls); got != "1.0" {
		t.Errorf("expected overs 1.0, got %s", got)
	}

	// Two wides among six legal balls: same over count, 8 total deliveries.
	withWides := append([]models.Delivery{}, legal[:3]...)
	withWides = append(withWides, wide(0, 4, 1), wide(0, 4, 1))
	withWides = append(withWides, legal[3:]...)
	if len(withWides) != 8 {
		t.Fatalf("expected 8 deliveries, got %d", len(withWides))
	}
	if got := Totals(withWides).LegalBalls; got != 6 {
		t.Errorf("wides must not count toward the over: expected 6 legal balls, got %d", got)
	}
}

func TestOversFaced(t *testing.T) {
	cases := []struct {
		name       string
		deliveries []models.Delivery
		want       string
	}{
		{"empty ledger", nil, "0.0"},
		{"mid over", []models.Delivery{ball(0, 1, 1), ball(0, 2, 0), ball(0, 3, 4)}, "0.3"},
		{"sixth ball rolls the over", []models.Delivery{ball(0, 6, 0)}, "1.0"},
		{"wide stretched the over past six", []models.Delivery{ball(0, 6, 0), wide(0, 7, 1)}, "1.0"},
		{"wide occupies a position", []models.Delivery{ball(0, 1, 1), wide(0, 2, 1), ball(0, 3, 0)}, "0.3"},
		{"replacement appended out of position order", []models.Delivery{ball(1, 2, 0), ball(0, 4, 2)}, "1.2"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := OversFaced(tc.deliveries); got != tc.want {
				t.Errorf("expected %s, got %s", tc.want, got)
			}
		})
	}
}

func TestEndToEndScenario(t *testing.T) {
	deliveries := []models.Delivery{
		ball(0, 1, 1),
		ball(0, 2, 4),
		wide(0, 3, 1),
		ball(0, 4, 6),
		ball(0, 5, 0),
		wicket(0, 6, models.DismissalBowled, 1),
		ball(1, 1, 0),
	}
	totals := Totals(deliveries)
	if totals.Runs != 12 {
		t.Errorf("total runs: expected 12, got %d", totals.Runs)
	}
	if totals.Wickets != 1 {
		t.Errorf("wickets: expected 1, got %d", totals.Wickets)
	}
	// Six legal balls, but the wide occupied a position in the over, so the
	// display derives from positions, not the legal-ball count.
	if got := OversFaced(deliveries); got != "1.1" {
		t.Errorf("overs: expected 1.1, got %s", got)
	}

	// Derivation is idempotent: recomputing over the same ledger is identical.
	again := Totals(deliveries)
	if again != totals {
		t.Errorf("recomputation diverged: %+v vs %+v", totals, again)
	}
}

func TestStrikeRateZeroBallsFaced(t *testing.T) {
	// Striker 1 faces only a wide: zero legal balls, strike rate stays 0.
	card := BattingCard([]models.Delivery{wide(0, 1, 1)})
	if len(card) != 1 {
		t.Fatalf("expected 1 batsman, got %d", len(card))
	}
	if card[0].BallsFaced != 0 {
		t.Errorf("a wide is not a ball faced, got %d", card[0].BallsFaced)
	}
	if card[0].StrikeRate != 0 {
		t.Errorf("strike rate with 0 balls faced must be 0, got %f", card[0].StrikeRate)
	}
	if math.IsNaN(card[0].StrikeRate) || math.IsInf(card[0].StrikeRate, 0) {
		t.Error("strike rate must never be NaN or Inf")
	}
}

func TestBattingCardFigures(t *testing.T) {
	deliveries := []models.Delivery{
		ball(0, 1, 4),
		ball(0, 2, 6),
		ball(0, 3, 1),
	}
	card := BattingCard(deliveries)
	if len(card) != 1 {
		t.Fatalf("expected 1 batsman, got %d", len(card))
	}
	f := card[0]
	if f.Runs != 11 || f.BallsFaced != 3 || f.Fours != 1 || f.Sixes != 1 {
		t.Errorf("unexpected batting figures: %+v", f)
	}
	wantSR := 11.0 / 3.0 * 100
	if math.Abs(f.StrikeRate-wantSR) > 1e-9 {
		t.Errorf("strike rate: expected %f, got %f", wantSR, f.StrikeRate)
	}
}

func TestBowlingFigures(t *testing.T) {
	legBye := ball(0, 1, 0)
	legBye.Extra = models.ExtraLegBye
	legBye.ExtraRuns = 2

	deliveries := []models.Delivery{
		ball(0, 1, 4),
		wide(0, 2, 1),
		legBye,
		wicket(0, 3, models.DismissalCaught, 1),
		wicket(0, 4, models.DismissalRunOut, 2),
		ball(0, 5, 0),
	}
	card := BowlingCard(deliveries)
	if len(card) != 1 {
		t.Fatalf("expected 1 bowler, got %d", len(card))
	}
	f := card[0]
	// 4 off the bat + 1 wide; the leg-byes are not charged to the bowler.
	if f.RunsConceded != 5 {
		t.Errorf("runs conceded: expected 5, got %d", f.RunsConceded)
	}
	// Run-out is not a bowler's wicket.
	if f.Wickets != 1 {
		t.Errorf("bowler wickets: expected 1, got %d", f.Wickets)
	}
	if f.LegalBalls != 5 {
		t.Errorf("legal balls: expected 5, got %d", f.LegalBalls)
	}
	wantEcon := 5.0 / (5.0 / 6.0)
	if math.Abs(f.Economy-wantEcon) > 1e-9 {
		t.Errorf("economy: expected %f, got %f", wantEcon, f.Economy)
	}
}

func TestPartnershipContribution(t *testing.T) {
	// 50-run stand split 30/20 between the pair.
	deliveries := []models.Delivery{}
	for i := 0; i < 5; i++ {
		deliveries = append(deliveries, ball(i, 1, 6))
	}
	flip := ball(5, 1, 4)
	flip.StrikerID, flip.NonStrikerID = 2, 1
	deliveries = append(deliveries, flip)
	flip2 := ball(5, 2, 6)
	flip2.StrikerID, flip2.NonStrikerID = 2, 1
	deliveries = append(deliveries, flip2)
	flip3 := ball(5, 3, 6)
	flip3.StrikerID, flip3.NonStrikerID = 2, 1
	deliveries = append(deliveries, flip3)
	flip4 := ball(5, 4, 4)
	flip4.StrikerID, flip4.NonStrikerID = 2, 1
	deliveries = append(deliveries, flip4)

	parts := Partnerships(deliveries)
	if len(parts) != 1 {
		t.Fatalf("expected 1 partnership, got %d", len(parts))
	}
	p := parts[0]
	if p.Runs != 50 {
		t.Fatalf("partnership runs: expected 50, got %d", p.Runs)
	}
	if p.RunsA != 30 || p.RunsB != 20 {
		t.Errorf("split: expected 30/20, got %d/%d", p.RunsA, p.RunsB)
	}
	if math.Abs(p.ContributionA-60) > 1e-9 || math.Abs(p.ContributionB-40) > 1e-9 {
		t.Errorf("contribution: expected 60%%/40%%, got %f/%f", p.ContributionA, p.ContributionB)
	}
}

func TestPartnershipZeroRuns(t *testing.T) {
	deliveries := []models.Delivery{ball(0, 1, 0), ball(0, 2, 0)}
	parts := Partnerships(deliveries)
	if len(parts) != 1 {
		t.Fatalf("expected 1 partnership, got %d", len(parts))
	}
	if parts[0].ContributionA != 0 || parts[0].ContributionB != 0 {
		t.Errorf("0-run partnership must yield 0%%/0%%, got %f/%f",
			parts[0].ContributionA, parts[0].ContributionB)
	}
}

func TestPartnershipsSplitAtWicketFall(t *testing.T) {
	deliveries := []models.Delivery{
		ball(0, 1, 4),
		wicket(0, 2, models.DismissalBowled, 1),
		func() models.Delivery {
			d := ball(0, 3, 2)
			d.StrikerID = 3
			return d
		}(),
	}
	parts := Partnerships(deliveries)
	if len(parts) != 2 {
		t.Fatalf("expected 2 partnerships, got %d", len(parts))
	}
	if parts[0].Runs != 4 || parts[1].Runs != 2 {
		t.Errorf("partnership runs: expected 4 then 2, got %d then %d", parts[0].Runs, parts[1].Runs)
	}
}

func TestRunRateAndRequiredRunRate(t *testing.T) {
	if got := RunRate(0, 0); got != 0 {
		t.Errorf("run rate with 0 balls must be 0, got %f", got)
	}
	if got := RunRate(60, 60); math.Abs(got-6.0) > 1e-9 {
		t.Errorf("run rate: expected 6.0, got %f", got)
	}

	rrr, ok := RequiredRunRate(120, 60, 60, 20)
	if !ok {
		t.Fatal("required run rate should be defined mid-chase")
	}
	// 60 needed off 60 balls.
	if math.Abs(rrr-6.0) > 1e-9 {
		t.Errorf("required run rate: expected 6.0, got %f", rrr)
	}
	if _, ok := RequiredRunRate(0, 0, 0, 20); ok {
		t.Error("required run rate must be undefined without a target")
	}
}

func TestValidateDelivery(t *testing.T) {
	valid := ball(0, 1, 4)
	if err := ValidateDelivery(valid); err != nil {
		t.Errorf("valid delivery rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*models.Delivery)
	}{
		{"missing striker", func(d *models.Delivery) { d.StrikerID = 0 }},
		{"missing bowler", func(d *models.Delivery) { d.BowlerID = 0 }},
		{"striker equals non-striker", func(d *models.Delivery) { d.NonStrikerID = d.StrikerID }},
		{"runs out of bound", func(d *models.Delivery) { d.RunsOffBat = 99 }},
		{"negative runs", func(d *models.Delivery) { d.RunsOffBat = -1 }},
		{"unknown extra", func(d *models.Delivery) { d.Extra = "overthrow" }},
		{"wide without runs", func(d *models.Delivery) { d.Extra = models.ExtraWide; d.ExtraRuns = 0 }},
		{"wicket without dismissal", func(d *models.Delivery) { d.IsWicket = true }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := valid
			tc.mutate(&d)
			if err := ValidateDelivery(d); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestValidateOrder(t *testing.T) {
	prev := ball(2, 4, 0)
	if err := ValidateOrder(&prev, ball(2, 5, 0)); err != nil {
		t.Errorf("next ball in over should be accepted: %v", err)
	}
	if err := ValidateOrder(&prev, ball(3, 1, 0)); err != nil {
		t.Errorf("first ball of next over should be accepted: %v", err)
	}
	if err := ValidateOrder(&prev, ball(2, 4, 0)); err == nil {
		t.Error("duplicate (over, ball) must be rejected")
	}
	if err := ValidateOrder(&prev, ball(1, 6, 0)); err == nil {
		t.Error("earlier over must be rejected")
	}
	if err := ValidateOrder(nil, ball(0, 1, 0)); err != nil {
		t.Errorf("first delivery of innings should be accepted: %v", err)
	}
}
