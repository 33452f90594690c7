package models

import "time"

type School struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	City         string    `json:"city" db:"city"`
	ContactEmail *string   `json:"contact_email,omitempty" db:"contact_email"`
	ContactPhone *string   `json:"contact_phone,omitempty" db:"contact_phone"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`

	Teams []Team `json:"teams,omitempty" db:"-"`

	CrestKey *string `json:"-" db:"crest_key"`
	CrestURL *string `json:"crest_url,omitempty" db:"-"`
}
