package link

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

func TestAttachTag_DuplicatePairMapsToConflict(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	tag, location := uuid.New(), uuid.New()
	mockPool.ExpectExec("INSERT INTO locations_tags").
		WithArgs(tag, location).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "locations_tags_pk"})

	repo := NewRepository(mockPool, zap.NewNop())
	err = repo.AttachTag(context.Background(), tag, location)

	assert.ErrorIs(t, err, models.ErrConflict)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestAttachTrip_Inserts(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	trip, location := uuid.New(), uuid.New()
	mockPool.ExpectExec("INSERT INTO locations_trips").
		WithArgs(trip, location).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	repo := NewRepository(mockPool, zap.NewNop())
	err = repo.AttachTrip(context.Background(), trip, location)

	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestDetachTrip_MissingPairMapsToNotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	trip, location := uuid.New(), uuid.New()
	mockPool.ExpectExec("DELETE FROM locations_trips").
		WithArgs(trip, location).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepository(mockPool, zap.NewNop())
	err = repo.DetachTrip(context.Background(), trip, location)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestTripLocations_ReturnsIDs(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	trip := uuid.New()
	a, b := uuid.New(), uuid.New()
	mockPool.ExpectQuery("SELECT location FROM locations_trips").
		WithArgs(trip).
		WillReturnRows(pgxmock.NewRows([]string{"location"}).AddRow(a).AddRow(b))

	repo := NewRepository(mockPool, zap.NewNop())
	ids, err := repo.TripLocations(context.Background(), trip)

	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
