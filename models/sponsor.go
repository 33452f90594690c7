package models

import "time"

type SponsorTier string

const (
	SponsorTierPlatinum SponsorTier = "platinum"
	SponsorTierGold     SponsorTier = "gold"
	SponsorTierSilver   SponsorTier = "silver"
	SponsorTierBronze   SponsorTier = "bronze"
)

type Sponsor struct {
	ID           int         `json:"id" db:"id"`
	Name         string      `json:"name" db:"name"`
	Tier         SponsorTier `json:"tier" db:"tier"`
	ContactEmail *string     `json:"contact_email,omitempty" db:"contact_email"`
	Website      *string     `json:"website,omitempty" db:"website"`
	Notes        *string     `json:"notes,omitempty" db:"notes"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`

	LogoKey *string `json:"-" db:"logo_key"`
	LogoURL *string `json:"logo_url,omitempty" db:"-"`
}
