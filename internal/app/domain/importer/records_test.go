package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaterialize_HeaderOnlyYieldsNothing(t *testing.T) {
	assert.Nil(t, Materialize(ParseCSV("name,country")))
	assert.Nil(t, Materialize(ParseCSV("")))
}

func TestMaterialize_ZipsByPosition(t *testing.T) {
	records := Materialize(ParseCSV("name,country\nRome,Italy"))
	require.Len(t, records, 1)
	assert.Equal(t, 2, records[0].Row)
	assert.Equal(t, "Rome", records[0].Get("name"))
	assert.Equal(t, "Italy", records[0].Get("country"))
}

func TestMaterialize_MissingTrailingCellsDefaultEmpty(t *testing.T) {
	records := Materialize(ParseCSV("name,country,is_draft\nRome,Italy"))
	require.Len(t, records, 1)
	assert.Equal(t, "", records[0].Get("is_draft"))
}

func TestMaterialize_BlankRowsSkippedButNumbered(t *testing.T) {
	records := Materialize(ParseCSV("name,country\nRome,Italy\n,,\nMilan,Italy"))
	require.Len(t, records, 2)
	assert.Equal(t, 2, records[0].Row)
	// The all-blank row keeps its spreadsheet slot.
	assert.Equal(t, 4, records[1].Row)
}

func TestMaterialize_EmptyHeaderCellsDropped(t *testing.T) {
	records := Materialize(ParseCSV("name,,country\nRome,Italy"))
	require.Len(t, records, 1)
	assert.Equal(t, "Rome", records[0].Get("name"))
	assert.Equal(t, "Italy", records[0].Get("country"))
}

func TestMaterialize_UnknownColumnsHarmless(t *testing.T) {
	records := Materialize(ParseCSV("name,country,color\nRome,Italy,red"))
	require.Len(t, records, 1)
	// Extra spreadsheet columns are carried but never asked for.
	assert.Equal(t, "red", records[0].Get("color"))
	assert.Equal(t, "", records[0].Get("missing"))
}
