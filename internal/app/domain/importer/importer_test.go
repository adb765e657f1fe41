package importer

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) InsertCity(ctx context.Context, params models.CreateCityParams) Outcome {
	args := m.Called(ctx, params)
	return args.Get(0).(Outcome)
}

func (m *MockStore) InsertLocation(ctx context.Context, params models.CreateLocationParams) Outcome {
	args := m.Called(ctx, params)
	return args.Get(0).(Outcome)
}

func (m *MockStore) InsertTrip(ctx context.Context, params models.CreateTripParams) Outcome {
	args := m.Called(ctx, params)
	return args.Get(0).(Outcome)
}

func (m *MockStore) InsertTag(ctx context.Context, params models.CreateTagParams) Outcome {
	args := m.Called(ctx, params)
	return args.Get(0).(Outcome)
}

func (m *MockStore) InsertTripLink(ctx context.Context, params models.CreateLocationTripLinkParams) Outcome {
	args := m.Called(ctx, params)
	return args.Get(0).(Outcome)
}

func (m *MockStore) InsertTagLink(ctx context.Context, params models.CreateLocationTagLinkParams) Outcome {
	args := m.Called(ctx, params)
	return args.Get(0).(Outcome)
}

func newTestImporter(store Store) *Importer {
	return NewImporter(store, zap.NewNop())
}

func TestRun_RowIsolation(t *testing.T) {
	// One malformed row (bad enum) among valid ones: everything else is
	// still inserted and exactly one row error is reported.
	store := new(MockStore)
	store.On("InsertTag", mock.Anything, mock.Anything).Return(inserted(uuid.New()))

	csv := "name,icon,type\nMuseums,palette,art\nClubs,disco,nightlife\nDiners,fork,restaurant"
	records := Materialize(ParseCSV(csv))
	require.Len(t, records, 3)

	result, err := newTestImporter(store).Run(context.Background(), TableTags, records)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "Validation failed", result.Errors[0].Message)

	issues, ok := result.Errors[0].Details.([]models.FieldIssue)
	require.True(t, ok)
	require.Len(t, issues, 1)
	assert.Equal(t, "type", issues[0].Field)
	assert.Equal(t, "oneof", issues[0].Rule)

	store.AssertNumberOfCalls(t, "InsertTag", 2)
}

func TestRun_DuplicatePairDetected(t *testing.T) {
	tagID := uuid.NewString()
	locID := uuid.NewString()

	store := new(MockStore)
	store.On("InsertTagLink", mock.Anything, mock.Anything).
		Return(inserted(uuid.Nil)).Once()
	store.On("InsertTagLink", mock.Anything, mock.Anything).
		Return(conflict("Duplicate tag-location pair", errors.New(`duplicate key value violates unique constraint "locations_tags_pk"`)))

	csv := "tag,location\n" + tagID + "," + locID + "\n" + tagID + "," + locID
	records := Materialize(ParseCSV(csv))
	require.Len(t, records, 2)

	result, err := newTestImporter(store).Run(context.Background(), TableLocationTags, records)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 3, result.Errors[0].Row)
	assert.Equal(t, "Duplicate tag-location pair", result.Errors[0].Message)
}

func TestRun_BlankRowSkippedSilently(t *testing.T) {
	store := new(MockStore)
	store.On("InsertCity", mock.Anything, mock.Anything).Return(inserted(uuid.New()))

	csv := "name,country,center_latitude,center_longitude\nRome,Italy,41.9,12.5\n,,,\nMilan,Italy,45.4,9.2"
	records := Materialize(ParseCSV(csv))
	require.Len(t, records, 2)

	result, err := newTestImporter(store).Run(context.Background(), TableCities, records)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Inserted)
	assert.Empty(t, result.Errors)
}

func TestRun_InvalidGuideJSONFailsRowOnly(t *testing.T) {
	cityID := uuid.NewString()

	store := new(MockStore)
	store.On("InsertLocation", mock.Anything, mock.Anything).Return(inserted(uuid.New()))

	csv := "name,type,city,longitude,latitude,guide\n" +
		"Bad Guide,art," + cityID + ",12.5,41.9,{not json}\n" +
		"Good One,art," + cityID + ",12.5,41.9,\"{\"\"blocks\"\":[]}\""
	records := Materialize(ParseCSV(csv))
	require.Len(t, records, 2)

	result, err := newTestImporter(store).Run(context.Background(), TableLocations, records)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "Invalid JSON in guide field", result.Errors[0].Message)

	// The valid later row still reached the store.
	store.AssertNumberOfCalls(t, "InsertLocation", 1)
}

func TestRun_GuideMustBeObject(t *testing.T) {
	cityID := uuid.NewString()

	store := new(MockStore)

	csv := "name,type,city,longitude,latitude,guide\n" +
		"Array Guide,art," + cityID + ",12.5,41.9,\"[1,2]\""
	records := Materialize(ParseCSV(csv))
	require.Len(t, records, 1)

	result, err := newTestImporter(store).Run(context.Background(), TableLocations, records)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "Validation failed", result.Errors[0].Message)
	store.AssertNotCalled(t, "InsertLocation")
}

func TestRun_StoreErrorDoesNotStopBatch(t *testing.T) {
	store := new(MockStore)
	store.On("InsertCity", mock.Anything, mock.Anything).
		Return(storeError("Database error inserting city", errors.New("connection reset"))).Once()
	store.On("InsertCity", mock.Anything, mock.Anything).Return(inserted(uuid.New()))

	csv := "name,country,center_latitude,center_longitude\nRome,Italy,41.9,12.5\nMilan,Italy,45.4,9.2"
	records := Materialize(ParseCSV(csv))

	result, err := newTestImporter(store).Run(context.Background(), TableCities, records)
	require.NoError(t, err)

	assert.Equal(t, 1, result.Inserted)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, 2, result.Errors[0].Row)
	assert.Equal(t, "Database error inserting city", result.Errors[0].Message)
}

func TestRun_OutOfRangeLatitudeRejected(t *testing.T) {
	store := new(MockStore)

	csv := "name,country,center_latitude,center_longitude\nNowhere,Atlantis,95.0,12.5"
	records := Materialize(ParseCSV(csv))

	result, err := newTestImporter(store).Run(context.Background(), TableCities, records)
	require.NoError(t, err)

	assert.Equal(t, 0, result.Inserted)
	require.Len(t, result.Errors, 1)
	issues := result.Errors[0].Details.([]models.FieldIssue)
	require.Len(t, issues, 1)
	assert.Equal(t, "center_latitude", issues[0].Field)
	store.AssertNotCalled(t, "InsertCity")
}

func TestParseTable_Unsupported(t *testing.T) {
	_, err := ParseTable("profiles")
	require.Error(t, err)
	assert.ErrorIs(t, err, models.ErrUnsupportedTable)

	for _, name := range []string{"cities", "locations", "trips", "tags", "locations_trips", "locations_tags"} {
		_, err := ParseTable(name)
		assert.NoError(t, err, name)
	}
}
