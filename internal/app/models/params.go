package models

// Create params double as the import pipeline's row candidates: a field
// left nil/empty string was absent from the input, which the validator
// treats differently from "present but invalid". Numeric fields stay
// *float64 until after validation so a value like "1.5" in an integer
// column is rejected by the intlike rule instead of being silently
// dropped during coercion.

type CreateCityParams struct {
	Name            string   `json:"name" validate:"required"`
	Country         string   `json:"country" validate:"required"`
	IsDraft         *bool    `json:"is_draft"`
	CenterLatitude  *float64 `json:"center_latitude" validate:"required,gte=-90,lte=90"`
	CenterLongitude *float64 `json:"center_longitude" validate:"required,gte=-180,lte=180"`
}

type UpdateCityParams struct {
	Name            *string  `json:"name" validate:"omitempty,min=1"`
	Country         *string  `json:"country" validate:"omitempty,min=1"`
	IsDraft         *bool    `json:"is_draft"`
	CenterLatitude  *float64 `json:"center_latitude" validate:"omitempty,gte=-90,lte=90"`
	CenterLongitude *float64 `json:"center_longitude" validate:"omitempty,gte=-180,lte=180"`
}

type CreateLocationParams struct {
	IsDraft        *bool          `json:"is_draft"`
	Name           string         `json:"name" validate:"required"`
	Description    string         `json:"description"`
	PriceLow       *float64       `json:"priceLow" validate:"omitempty,intlike"`
	PriceHigh      *float64       `json:"priceHigh" validate:"omitempty,intlike"`
	TimeLow        *float64       `json:"timeLow" validate:"omitempty,intlike"`
	TimeHigh       *float64       `json:"timeHigh" validate:"omitempty,intlike"`
	Type           string         `json:"type" validate:"required,oneof=art restaurant party"`
	Images         []string       `json:"images" validate:"omitempty,dive,min=1"`
	EmbeddedLinks  []string       `json:"embedded_links" validate:"omitempty,dive,url"`
	City           string         `json:"city" validate:"required,uuid"`
	Street         string         `json:"street"`
	Guide          map[string]any `json:"guide"`
	IsGuidePremium *bool          `json:"is_guide_premium"`
	Longitude      *float64       `json:"longitude" validate:"required,gte=-180,lte=180"`
	Latitude       *float64       `json:"latitude" validate:"required,gte=-90,lte=90"`
}

type UpdateLocationParams struct {
	IsDraft        *bool          `json:"is_draft"`
	Name           *string        `json:"name" validate:"omitempty,min=1"`
	Description    *string        `json:"description"`
	PriceLow       *float64       `json:"priceLow" validate:"omitempty,intlike"`
	PriceHigh      *float64       `json:"priceHigh" validate:"omitempty,intlike"`
	TimeLow        *float64       `json:"timeLow" validate:"omitempty,intlike"`
	TimeHigh       *float64       `json:"timeHigh" validate:"omitempty,intlike"`
	Type           *string        `json:"type" validate:"omitempty,oneof=art restaurant party"`
	Images         []string       `json:"images" validate:"omitempty,dive,min=1"`
	EmbeddedLinks  []string       `json:"embedded_links" validate:"omitempty,dive,url"`
	City           *string        `json:"city" validate:"omitempty,uuid"`
	Street         *string        `json:"street"`
	Guide          map[string]any `json:"guide"`
	IsGuidePremium *bool          `json:"is_guide_premium"`
	Longitude      *float64       `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	Latitude       *float64       `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
}

type CreateTripParams struct {
	Owner            string   `json:"owner" validate:"required,uuid"`
	Name             string   `json:"name" validate:"required"`
	City             string   `json:"city" validate:"required,uuid"`
	NumberOfAdults   *float64 `json:"number_of_adults" validate:"omitempty,intlike,gte=0"`
	NumberOfChildren *float64 `json:"number_of_children" validate:"omitempty,intlike,gte=0"`
	Preferences      []string `json:"preferences"`
}

type UpdateTripParams struct {
	Owner            *string  `json:"owner" validate:"omitempty,uuid"`
	Name             *string  `json:"name" validate:"omitempty,min=1"`
	City             *string  `json:"city" validate:"omitempty,uuid"`
	NumberOfAdults   *float64 `json:"number_of_adults" validate:"omitempty,intlike,gte=0"`
	NumberOfChildren *float64 `json:"number_of_children" validate:"omitempty,intlike,gte=0"`
	Preferences      []string `json:"preferences"`
}

type CreateTagParams struct {
	Name string `json:"name" validate:"required"`
	Icon string `json:"icon" validate:"required"`
	Type string `json:"type" validate:"required,oneof=art restaurant party"`
}

type UpdateTagParams struct {
	Name *string `json:"name" validate:"omitempty,min=1"`
	Icon *string `json:"icon" validate:"omitempty,min=1"`
	Type *string `json:"type" validate:"omitempty,oneof=art restaurant party"`
}

type CreateLocationTripLinkParams struct {
	Trip     string `json:"trip" validate:"required,uuid"`
	Location string `json:"location" validate:"required,uuid"`
}

type CreateLocationTagLinkParams struct {
	Tag      string `json:"tag" validate:"required,uuid"`
	Location string `json:"location" validate:"required,uuid"`
}

type UpsertProfileParams struct {
	AuthID string `json:"auth_id" validate:"required"`
	Role   string `json:"role" validate:"omitempty,oneof=user analyst admin"`
	Plan   string `json:"plan" validate:"omitempty,oneof=free premium"`
}
