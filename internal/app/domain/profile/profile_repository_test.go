package profile

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

var profileCols = []string{"id", "auth_id", "role", "plan", "billing_type", "next_billing_at", "created_at"}

func TestGetRoleByAuthID(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT role FROM profiles").
		WithArgs("auth|123").
		WillReturnRows(pgxmock.NewRows([]string{"role"}).AddRow(models.RoleAdmin))

	repo := NewRepository(mockPool, zap.NewNop())
	role, err := repo.GetRoleByAuthID(context.Background(), "auth|123")

	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, role)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestGetRoleByAuthID_UnknownIdentity(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	mockPool.ExpectQuery("SELECT role FROM profiles").
		WithArgs("auth|ghost").
		WillReturnRows(pgxmock.NewRows([]string{"role"}))

	repo := NewRepository(mockPool, zap.NewNop())
	_, err = repo.GetRoleByAuthID(context.Background(), "auth|ghost")

	assert.ErrorIs(t, err, models.ErrNotFound)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}

func TestUpsert_DefaultsRoleAndPlan(t *testing.T) {
	mockPool, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockPool.Close()

	id := uuid.New()
	mockPool.ExpectQuery("INSERT INTO profiles").
		WithArgs("auth|123", "user", "free").
		WillReturnRows(pgxmock.NewRows(profileCols).
			AddRow(id, "auth|123", models.RoleUser, models.PlanFree, nil, nil, time.Now()))

	repo := NewRepository(mockPool, zap.NewNop())
	p, err := repo.Upsert(context.Background(), models.UpsertProfileParams{AuthID: "auth|123"})

	require.NoError(t, err)
	assert.Equal(t, id, p.ID)
	assert.Equal(t, models.RoleUser, p.Role)
	assert.NoError(t, mockPool.ExpectationsWereMet())
}
