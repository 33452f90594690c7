package models

import "time"

type Team struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	SchoolID  int       `json:"school_id" db:"school_id"`
	CoachName *string   `json:"coach_name,omitempty" db:"coach_name"`
	AgeGroup  *string   `json:"age_group,omitempty" db:"age_group"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	School  *School  `json:"school,omitempty" db:"-"`
	Players []Player `json:"players,omitempty" db:"-"`

	CrestKey *string `json:"-" db:"crest_key"`
	CrestURL *string `json:"crest_url,omitempty" db:"-"`
}
