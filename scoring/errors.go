package scoring

import "errors"

var (
	// ErrMatchNotDecided - completeMatch was attempted while the chase still
	// had runs, wickets and overs left.
	ErrMatchNotDecided = errors.New("match cannot be completed")

	// Delivery validation errors, surfaced before any write.
	ErrDeliveryMissingStriker    = errors.New("delivery striker id is required")
	ErrDeliveryMissingNonStriker = errors.New("delivery non-striker id is required")
	ErrDeliveryMissingBowler     = errors.New("delivery bowler id is required")
	ErrDeliverySamePlayers       = errors.New("striker and non-striker must be different players")
	ErrDeliveryRunsOutOfRange    = errors.New("delivery runs out of range")
	ErrDeliveryInvalidExtra      = errors.New("invalid extra type")
	ErrDeliveryExtraRunsRequired = errors.New("wide and no-ball deliveries carry at least one extra run")
	ErrDeliveryWicketIncomplete  = errors.New("wicket delivery requires dismissal type and dismissed player")
	ErrDeliveryOutOfOrder        = errors.New("delivery out of order: (over, ball) must strictly increase")
)
