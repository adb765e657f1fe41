package models

import (
	"time"

	"github.com/google/uuid"
)

// LocationType is the shared vocabulary for locations and tags.
type LocationType string

const (
	LocationTypeArt        LocationType = "art"
	LocationTypeRestaurant LocationType = "restaurant"
	LocationTypeParty      LocationType = "party"
)

// Role values stored on profiles.
type Role string

const (
	RoleUser    Role = "user"
	RoleAnalyst Role = "analyst"
	RoleAdmin   Role = "admin"
)

// Plan and billing vocabularies carried on profiles.
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

type BillingType string

const (
	BillingWeekly   BillingType = "weekly"
	BillingMonthly  BillingType = "monthly"
	BillingYearly   BillingType = "yearly"
	BillingLifetime BillingType = "lifetime"
)

type Profile struct {
	ID            uuid.UUID    `json:"id"`
	AuthID        string       `json:"auth_id"`
	Role          Role         `json:"role"`
	Plan          Plan         `json:"plan"`
	BillingType   *BillingType `json:"billing_type,omitempty"`
	NextBillingAt *time.Time   `json:"next_billing_at,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
}

type City struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Country         string    `json:"country"`
	IsDraft         bool      `json:"is_draft"`
	CenterLatitude  float64   `json:"center_latitude"`
	CenterLongitude float64   `json:"center_longitude"`
	CreatedAt       time.Time `json:"created_at"`
	ModifiedAt      time.Time `json:"modified_at"`
}

type Location struct {
	ID             uuid.UUID      `json:"id"`
	IsDraft        bool           `json:"is_draft"`
	Name           string         `json:"name"`
	Description    *string        `json:"description,omitempty"`
	PriceLow       *int           `json:"priceLow,omitempty"`
	PriceHigh      *int           `json:"priceHigh,omitempty"`
	TimeLow        *int           `json:"timeLow,omitempty"`
	TimeHigh       *int           `json:"timeHigh,omitempty"`
	Type           LocationType   `json:"type"`
	Images         []string       `json:"images,omitempty"`
	EmbeddedLinks  []string       `json:"embedded_links,omitempty"`
	City           uuid.UUID      `json:"city"`
	Street         *string        `json:"street,omitempty"`
	Guide          map[string]any `json:"guide,omitempty"`
	IsGuidePremium bool           `json:"is_guide_premium"`
	Longitude      float64        `json:"longitude"`
	Latitude       float64        `json:"latitude"`
	CreatedAt      time.Time      `json:"created_at"`
	ModifiedAt     time.Time      `json:"modified_at"`
}

type Trip struct {
	ID               uuid.UUID `json:"id"`
	Owner            uuid.UUID `json:"owner"`
	Name             string    `json:"name"`
	City             uuid.UUID `json:"city"`
	NumberOfAdults   *int      `json:"number_of_adults,omitempty"`
	NumberOfChildren *int      `json:"number_of_children,omitempty"`
	Preferences      []string  `json:"preferences,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	ModifiedAt       time.Time `json:"modified_at"`
}

type Tag struct {
	ID         uuid.UUID    `json:"id"`
	Name       string       `json:"name"`
	Icon       string       `json:"icon"`
	Type       LocationType `json:"type"`
	CreatedAt  time.Time    `json:"created_at"`
	ModifiedAt time.Time    `json:"modified_at"`
}

// LocationTripLink is an immutable (trip, location) pair; its identity is
// the pair itself. Changing a link means delete-old + insert-new.
type LocationTripLink struct {
	Trip     uuid.UUID `json:"trip"`
	Location uuid.UUID `json:"location"`
}

// LocationTagLink is an immutable (tag, location) pair.
type LocationTagLink struct {
	Tag      uuid.UUID `json:"tag"`
	Location uuid.UUID `json:"location"`
}
