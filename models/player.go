package models

import "time"

type BattingStyle string

const (
	BattingRightHand BattingStyle = "right_hand"
	BattingLeftHand  BattingStyle = "left_hand"
)

type BowlingStyle string

const (
	BowlingRightArmFast   BowlingStyle = "right_arm_fast"
	BowlingRightArmMedium BowlingStyle = "right_arm_medium"
	BowlingRightArmSpin   BowlingStyle = "right_arm_spin"
	BowlingLeftArmFast    BowlingStyle = "left_arm_fast"
	BowlingLeftArmMedium  BowlingStyle = "left_arm_medium"
	BowlingLeftArmSpin    BowlingStyle = "left_arm_spin"
)

type Player struct {
	ID           int           `json:"id" db:"id"`
	TeamID       int           `json:"team_id" db:"team_id"`
	FirstName    string        `json:"first_name" db:"first_name"`
	LastName     string        `json:"last_name" db:"last_name"`
	JerseyNumber *int          `json:"jersey_number,omitempty" db:"jersey_number"`
	BattingStyle *BattingStyle `json:"batting_style,omitempty" db:"batting_style"`
	BowlingStyle *BowlingStyle `json:"bowling_style,omitempty" db:"bowling_style"`
	IsCaptain    bool          `json:"is_captain" db:"is_captain"`
	IsKeeper     bool          `json:"is_keeper" db:"is_keeper"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}

func (p Player) FullName() string {
	if p.LastName == "" {
		return p.FirstName
	}
	return p.FirstName + " " + p.LastName
}
