package models

import "time"

type EquipmentCondition string

const (
	ConditionNew        EquipmentCondition = "new"
	ConditionGood       EquipmentCondition = "good"
	ConditionWorn       EquipmentCondition = "worn"
	ConditionUnusable   EquipmentCondition = "unusable"
	ConditionWrittenOff EquipmentCondition = "written_off"
)

type Equipment struct {
	ID        int                `json:"id" db:"id"`
	Name      string             `json:"name" db:"name"`
	Category  string             `json:"category" db:"category"`
	Quantity  int                `json:"quantity" db:"quantity"`
	Condition EquipmentCondition `json:"condition" db:"condition"`
	TeamID    *int               `json:"team_id,omitempty" db:"team_id"`
	CreatedAt time.Time          `json:"created_at" db:"created_at"`

	Team *Team `json:"team,omitempty" db:"-"`
}
