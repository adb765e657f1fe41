package importer

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

func float64Ptr(v float64) *float64 { return &v }

func cityParams() models.CreateCityParams {
	return models.CreateCityParams{
		Name:            "Rome",
		Country:         "Italy",
		CenterLatitude:  float64Ptr(41.9),
		CenterLongitude: float64Ptr(12.5),
	}
}

func TestPgStore_InsertCity_Success(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	mockPool.ExpectQuery("INSERT INTO cities").
		WithArgs("Rome", "Italy", true, 41.9, 12.5).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(id))

	store := NewPgStore(mockPool, zap.NewNop())
	out := store.InsertCity(context.Background(), cityParams())

	assert.Equal(t, OutcomeInserted, out.Kind)
	assert.Equal(t, id, out.ID)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgStore_InsertCity_DraftFlagPassedThrough(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	isDraft := false
	params := cityParams()
	params.IsDraft = &isDraft

	mockPool.ExpectQuery("INSERT INTO cities").
		WithArgs("Rome", "Italy", false, 41.9, 12.5).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	store := NewPgStore(mockPool, zap.NewNop())
	out := store.InsertCity(context.Background(), params)

	assert.Equal(t, OutcomeInserted, out.Kind)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgStore_InsertCity_UniqueViolation(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("INSERT INTO cities").
		WithArgs("Rome", "Italy", true, 41.9, 12.5).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "cities_name_country_key"})

	store := NewPgStore(mockPool, zap.NewNop())
	out := store.InsertCity(context.Background(), cityParams())

	assert.Equal(t, OutcomeConflict, out.Kind)
	assert.Equal(t, "Duplicate city", out.Message)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgStore_InsertCity_WrappedUniqueViolation(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	// Conflict codes are detected through wrapped causes as well.
	wrapped := fmt.Errorf("exec failed: %w", &pgconn.PgError{Code: "23505"})
	mockPool.ExpectQuery("INSERT INTO cities").
		WithArgs("Rome", "Italy", true, 41.9, 12.5).
		WillReturnError(wrapped)

	store := NewPgStore(mockPool, zap.NewNop())
	out := store.InsertCity(context.Background(), cityParams())

	assert.Equal(t, OutcomeConflict, out.Kind)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgStore_InsertCity_OpaqueStoreError(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("INSERT INTO cities").
		WithArgs("Rome", "Italy", true, 41.9, 12.5).
		WillReturnError(fmt.Errorf("connection reset by peer"))

	store := NewPgStore(mockPool, zap.NewNop())
	out := store.InsertCity(context.Background(), cityParams())

	assert.Equal(t, OutcomeStoreError, out.Kind)
	assert.Equal(t, "Database error inserting city", out.Message)
	assert.Contains(t, out.Detail, "connection reset")
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgStore_InsertTripLink_DuplicatePair(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	tripID := uuid.NewString()
	locID := uuid.NewString()

	mockPool.ExpectExec("INSERT INTO locations_trips").
		WithArgs(tripID, locID).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mockPool.ExpectExec("INSERT INTO locations_trips").
		WithArgs(tripID, locID).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "locations_trips_pk"})

	store := NewPgStore(mockPool, zap.NewNop())
	params := models.CreateLocationTripLinkParams{Trip: tripID, Location: locID}

	first := store.InsertTripLink(context.Background(), params)
	second := store.InsertTripLink(context.Background(), params)

	assert.Equal(t, OutcomeInserted, first.Kind)
	assert.Equal(t, OutcomeConflict, second.Kind)
	assert.Equal(t, "Duplicate trip-location pair", second.Message)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestPgStore_InsertLocation_DefaultsAndNulls(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	cityID := uuid.NewString()
	params := models.CreateLocationParams{
		Name:      "Galleria",
		Type:      "art",
		City:      cityID,
		Longitude: float64Ptr(12.5),
		Latitude:  float64Ptr(41.9),
	}

	var nilStr *string
	var nilInt *int
	var nilGuide []byte
	mockPool.ExpectQuery("INSERT INTO locations").
		WithArgs(true, "Galleria", nilStr, nilInt, nilInt, nilInt, nilInt, "art",
			[]string(nil), []string(nil), cityID, nilStr, nilGuide, false, 12.5, 41.9).
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(uuid.New()))

	store := NewPgStore(mockPool, zap.NewNop())
	out := store.InsertLocation(context.Background(), params)

	assert.Equal(t, OutcomeInserted, out.Kind)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
