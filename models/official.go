package models

import "time"

type OfficialRole string

const (
	OfficialUmpire  OfficialRole = "umpire"
	OfficialScorer  OfficialRole = "scorer"
	OfficialReferee OfficialRole = "referee"
)

type Official struct {
	ID            int          `json:"id" db:"id"`
	FirstName     string       `json:"first_name" db:"first_name"`
	LastName      string       `json:"last_name" db:"last_name"`
	Role          OfficialRole `json:"role" db:"role"`
	Accreditation *string      `json:"accreditation,omitempty" db:"accreditation"`
	Email         *string      `json:"email,omitempty" db:"email"`
	Phone         *string      `json:"phone,omitempty" db:"phone"`
	CreatedAt     time.Time    `json:"created_at" db:"created_at"`
}
