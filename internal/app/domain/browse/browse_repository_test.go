package browse

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

func TestRows_UnknownTableRejected(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	repo := NewRepository(mockPool, zap.NewNop())
	_, err = repo.Rows(context.Background(), "pg_catalog.pg_tables", 10)

	assert.ErrorIs(t, err, models.ErrUnsupportedTable)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRows_ReturnsColumnKeyedRecords(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	now := time.Now()
	mockPool.ExpectQuery("SELECT .+ FROM tags").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "icon", "type", "created_at", "modified_at"}).
			AddRow(id, "Museums", "🎨", "art", now, now))

	repo := NewRepository(mockPool, zap.NewNop())
	rows, err := repo.Rows(context.Background(), "tags", 10)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "Museums", rows[0]["name"])
	assert.Equal(t, id, rows[0]["id"])
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestRows_SecondReadServedFromCache(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT .+ FROM tags").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "icon", "type", "created_at", "modified_at"}).
			AddRow(uuid.New(), "Museums", "🎨", "art", time.Now(), time.Now()))

	repo := NewRepository(mockPool, zap.NewNop())
	first, err := repo.Rows(context.Background(), "tags", 10)
	require.NoError(t, err)

	// A second identical read must not hit the pool again.
	second, err := repo.Rows(context.Background(), "tags", 10)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, defaultLimit, clampLimit(0))
	assert.Equal(t, defaultLimit, clampLimit(-5))
	assert.Equal(t, 250, clampLimit(250))
	assert.Equal(t, maxLimit, clampLimit(maxLimit+1))
}
