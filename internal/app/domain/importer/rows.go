package importer

import (
	"context"
	"encoding/json"

	"github.com/voyago/atlas/internal/app/models"
)

// Per-collection row handlers. Each builds a candidate containing only the
// fields actually present after coercion, runs the shared schema rules and
// hands the validated candidate to the persistence adapter. Setting only
// present fields matters: the validator distinguishes an absent optional
// field from a present-but-invalid one.

func (im *Importer) cityRow(ctx context.Context, rec Record) *RowError {
	var params models.CreateCityParams
	params.Name = rec.Get("name")
	params.Country = rec.Get("country")
	if v, ok := ParseBool(rec.Get("is_draft")); ok {
		params.IsDraft = &v
	}
	if v, ok := ParseNumber(rec.Get("center_latitude")); ok {
		params.CenterLatitude = &v
	}
	if v, ok := ParseNumber(rec.Get("center_longitude")); ok {
		params.CenterLongitude = &v
	}

	if issues := models.Validate(&params); issues != nil {
		return validationError(rec, issues)
	}
	return outcomeError(rec, im.store.InsertCity(ctx, params))
}

func (im *Importer) locationRow(ctx context.Context, rec Record) *RowError {
	var params models.CreateLocationParams
	if v, ok := ParseBool(rec.Get("is_draft")); ok {
		params.IsDraft = &v
	}
	params.Name = rec.Get("name")
	params.Description = rec.Get("description")
	if v, ok := ParseNumber(rec.Get("priceLow")); ok {
		params.PriceLow = &v
	}
	if v, ok := ParseNumber(rec.Get("priceHigh")); ok {
		params.PriceHigh = &v
	}
	if v, ok := ParseNumber(rec.Get("timeLow")); ok {
		params.TimeLow = &v
	}
	if v, ok := ParseNumber(rec.Get("timeHigh")); ok {
		params.TimeHigh = &v
	}
	params.Type = rec.Get("type")
	if v, ok := ParseStringArray(rec.Get("images")); ok {
		params.Images = v
	}
	if v, ok := ParseStringArray(rec.Get("embedded_links")); ok {
		params.EmbeddedLinks = v
	}
	params.City = rec.Get("city")
	params.Street = rec.Get("street")

	if raw := rec.Get("guide"); raw != "" {
		var doc map[string]any
		if err := json.Unmarshal([]byte(raw), &doc); err != nil {
			if json.Valid([]byte(raw)) {
				// Parses as JSON but is not an object; that is a schema
				// failure on the guide column, not a parse failure.
				return validationError(rec, []models.FieldIssue{{Field: "guide", Rule: "object"}})
			}
			return &RowError{Row: rec.Row, Message: "Invalid JSON in guide field", Details: err.Error()}
		}
		params.Guide = doc
	}

	if v, ok := ParseBool(rec.Get("is_guide_premium")); ok {
		params.IsGuidePremium = &v
	}
	if v, ok := ParseNumber(rec.Get("longitude")); ok {
		params.Longitude = &v
	}
	if v, ok := ParseNumber(rec.Get("latitude")); ok {
		params.Latitude = &v
	}

	if issues := models.Validate(&params); issues != nil {
		return validationError(rec, issues)
	}
	return outcomeError(rec, im.store.InsertLocation(ctx, params))
}

func (im *Importer) tripRow(ctx context.Context, rec Record) *RowError {
	var params models.CreateTripParams
	params.Owner = rec.Get("owner")
	params.Name = rec.Get("name")
	params.City = rec.Get("city")
	if v, ok := ParseNumber(rec.Get("number_of_adults")); ok {
		params.NumberOfAdults = &v
	}
	if v, ok := ParseNumber(rec.Get("number_of_children")); ok {
		params.NumberOfChildren = &v
	}
	if v, ok := ParseStringArray(rec.Get("preferences")); ok {
		params.Preferences = v
	}

	if issues := models.Validate(&params); issues != nil {
		return validationError(rec, issues)
	}
	return outcomeError(rec, im.store.InsertTrip(ctx, params))
}

func (im *Importer) tagRow(ctx context.Context, rec Record) *RowError {
	var params models.CreateTagParams
	params.Name = rec.Get("name")
	params.Icon = rec.Get("icon")
	params.Type = rec.Get("type")

	if issues := models.Validate(&params); issues != nil {
		return validationError(rec, issues)
	}
	return outcomeError(rec, im.store.InsertTag(ctx, params))
}

func (im *Importer) tripLinkRow(ctx context.Context, rec Record) *RowError {
	var params models.CreateLocationTripLinkParams
	params.Trip = rec.Get("trip")
	params.Location = rec.Get("location")

	if issues := models.Validate(&params); issues != nil {
		return validationError(rec, issues)
	}
	return outcomeError(rec, im.store.InsertTripLink(ctx, params))
}

func (im *Importer) tagLinkRow(ctx context.Context, rec Record) *RowError {
	var params models.CreateLocationTagLinkParams
	params.Tag = rec.Get("tag")
	params.Location = rec.Get("location")

	if issues := models.Validate(&params); issues != nil {
		return validationError(rec, issues)
	}
	return outcomeError(rec, im.store.InsertTagLink(ctx, params))
}
