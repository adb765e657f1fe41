package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func f64(v float64) *float64 { return &v }

func issueFields(issues []FieldIssue) []string {
	fields := make([]string, 0, len(issues))
	for _, i := range issues {
		fields = append(fields, i.Field)
	}
	return fields
}

func TestValidate_ValidCityPasses(t *testing.T) {
	issues := Validate(&CreateCityParams{
		Name:            "Lisbon",
		Country:         "Portugal",
		CenterLatitude:  f64(38.72),
		CenterLongitude: f64(-9.14),
	})
	assert.Nil(t, issues)
}

func TestValidate_MissingRequiredFieldsUseJSONNames(t *testing.T) {
	issues := Validate(&CreateCityParams{Name: "Lisbon"})
	require.NotEmpty(t, issues)
	assert.Contains(t, issueFields(issues), "country")
	assert.Contains(t, issueFields(issues), "center_latitude")
	assert.Contains(t, issueFields(issues), "center_longitude")
}

func TestValidate_LatitudeRange(t *testing.T) {
	issues := Validate(&CreateCityParams{
		Name:            "Nowhere",
		Country:         "Atlantis",
		CenterLatitude:  f64(91),
		CenterLongitude: f64(0),
	})
	require.Len(t, issues, 1)
	assert.Equal(t, "center_latitude", issues[0].Field)
	assert.Equal(t, "lte", issues[0].Rule)
}

func TestValidate_IntlikeRejectsFractions(t *testing.T) {
	issues := Validate(&CreateTripParams{
		Owner:          "0b37d5a5-41b9-4b62-9aa5-91e745e75f61",
		Name:           "Summer",
		City:           "2f1f34a4-a36c-4efc-b7a5-5ea5dcbfeada",
		NumberOfAdults: f64(1.5),
	})
	require.Len(t, issues, 1)
	assert.Equal(t, "number_of_adults", issues[0].Field)
	assert.Equal(t, "intlike", issues[0].Rule)
}

func TestValidate_IntlikeAcceptsWholeNumbers(t *testing.T) {
	issues := Validate(&CreateTripParams{
		Owner:          "0b37d5a5-41b9-4b62-9aa5-91e745e75f61",
		Name:           "Summer",
		City:           "2f1f34a4-a36c-4efc-b7a5-5ea5dcbfeada",
		NumberOfAdults: f64(2),
	})
	assert.Nil(t, issues)
}

func TestValidate_TagTypeVocabulary(t *testing.T) {
	issues := Validate(&CreateTagParams{Name: "Museums", Icon: "🎨", Type: "museum"})
	require.Len(t, issues, 1)
	assert.Equal(t, "type", issues[0].Field)
	assert.Equal(t, "oneof", issues[0].Rule)
}

func TestValidate_LinkPairNeedsUUIDs(t *testing.T) {
	issues := Validate(&CreateLocationTagLinkParams{Tag: "not-a-uuid", Location: "also-bad"})
	require.Len(t, issues, 2)
	for _, issue := range issues {
		assert.Equal(t, "uuid", issue.Rule)
	}
}

func TestValidate_LocationEmbeddedLinksMustBeURLs(t *testing.T) {
	issues := Validate(&CreateLocationParams{
		Name:          "Alfama Viewpoint",
		Type:          "art",
		City:          "2f1f34a4-a36c-4efc-b7a5-5ea5dcbfeada",
		EmbeddedLinks: []string{"https://example.com/guide", "not a url"},
		Longitude:     f64(-9.13),
		Latitude:      f64(38.71),
	})
	require.Len(t, issues, 1)
	assert.Equal(t, "url", issues[0].Rule)
}
