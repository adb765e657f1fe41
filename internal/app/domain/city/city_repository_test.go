package city

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

var cityCols = []string{"id", "name", "country", "is_draft", "center_latitude", "center_longitude", "created_at", "modified_at"}

func float64Ptr(v float64) *float64 { return &v }
func stringPtr(v string) *string    { return &v }

func TestCreate_ReturnsInsertedCity(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	now := time.Now()
	mockPool.ExpectQuery("INSERT INTO cities").
		WithArgs("Lisbon", "Portugal", true, 38.72, -9.14).
		WillReturnRows(pgxmock.NewRows(cityCols).
			AddRow(id, "Lisbon", "Portugal", true, 38.72, -9.14, now, now))

	repo := NewRepository(mockPool, zap.NewNop())
	city, err := repo.Create(context.Background(), models.CreateCityParams{
		Name:            "Lisbon",
		Country:         "Portugal",
		CenterLatitude:  float64Ptr(38.72),
		CenterLongitude: float64Ptr(-9.14),
	})

	require.NoError(t, err)
	assert.Equal(t, id, city.ID)
	assert.Equal(t, "Lisbon", city.Name)
	assert.True(t, city.IsDraft)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestCreate_DuplicateMapsToConflict(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("INSERT INTO cities").
		WithArgs("Lisbon", "Portugal", true, 38.72, -9.14).
		WillReturnError(&pgconn.PgError{Code: "23505", ConstraintName: "cities_name_country_key"})

	repo := NewRepository(mockPool, zap.NewNop())
	_, err = repo.Create(context.Background(), models.CreateCityParams{
		Name:            "Lisbon",
		Country:         "Portugal",
		CenterLatitude:  float64Ptr(38.72),
		CenterLongitude: float64Ptr(-9.14),
	})

	assert.ErrorIs(t, err, models.ErrConflict)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGet_NoRowsMapsToNotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	mockPool.ExpectQuery("SELECT .+ FROM cities WHERE id").
		WithArgs(id).
		WillReturnRows(pgxmock.NewRows(cityCols))

	repo := NewRepository(mockPool, zap.NewNop())
	_, err = repo.Get(context.Background(), id)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUpdate_OnlyProvidedFieldsAreSet(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	// squirrel emits Set clauses in call order: modified_at first, then name.
	mockPool.ExpectExec(`UPDATE cities SET modified_at = NOW\(\), name = \$1 WHERE id = \$2`).
		WithArgs("Porto", id.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	repo := NewRepository(mockPool, zap.NewNop())
	err = repo.Update(context.Background(), id, models.UpdateCityParams{Name: stringPtr("Porto")})

	require.NoError(t, err)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUpdate_MissingRowMapsToNotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	mockPool.ExpectExec("UPDATE cities").
		WithArgs("Porto", id.String()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))

	repo := NewRepository(mockPool, zap.NewNop())
	err = repo.Update(context.Background(), id, models.UpdateCityParams{Name: stringPtr("Porto")})

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestDelete_MissingRowMapsToNotFound(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	mockPool.ExpectExec("DELETE FROM cities").
		WithArgs(id).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	repo := NewRepository(mockPool, zap.NewNop())
	err = repo.Delete(context.Background(), id)

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
