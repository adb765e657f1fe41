package profile

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
	database "github.com/voyago/atlas/internal/db"
)

type Repository interface {
	GetByAuthID(ctx context.Context, authID string) (*models.Profile, error)
	GetRoleByAuthID(ctx context.Context, authID string) (models.Role, error)
	Upsert(ctx context.Context, params models.UpsertProfileParams) (*models.Profile, error)
}

type RepositoryImpl struct {
	db     database.Querier
	logger *zap.Logger
}

func NewRepository(db database.Querier, logger *zap.Logger) Repository {
	return &RepositoryImpl{db: db, logger: logger}
}

const profileColumns = `id, auth_id, role, plan, billing_type, next_billing_at, created_at`

func scanProfile(row pgx.Row) (*models.Profile, error) {
	var p models.Profile
	err := row.Scan(&p.ID, &p.AuthID, &p.Role, &p.Plan, &p.BillingType, &p.NextBillingAt, &p.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *RepositoryImpl) GetByAuthID(ctx context.Context, authID string) (*models.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE auth_id = $1`

	p, err := scanProfile(r.db.QueryRow(ctx, query, authID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching profile: %w", err)
	}
	return p, nil
}

func (r *RepositoryImpl) GetRoleByAuthID(ctx context.Context, authID string) (models.Role, error) {
	var role models.Role
	err := r.db.QueryRow(ctx, `SELECT role FROM profiles WHERE auth_id = $1`, authID).Scan(&role)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", models.ErrNotFound
		}
		return "", fmt.Errorf("database error fetching profile role: %w", err)
	}
	return role, nil
}

// Upsert creates the profile row on first sign-in and is a no-op update
// afterwards, so repeated sync calls are safe.
func (r *RepositoryImpl) Upsert(ctx context.Context, params models.UpsertProfileParams) (*models.Profile, error) {
	role := params.Role
	if role == "" {
		role = string(models.RoleUser)
	}
	plan := params.Plan
	if plan == "" {
		plan = string(models.PlanFree)
	}

	query := `
		INSERT INTO profiles (auth_id, role, plan)
		VALUES ($1, $2, $3)
		ON CONFLICT (auth_id) DO UPDATE SET auth_id = EXCLUDED.auth_id
		RETURNING ` + profileColumns

	p, err := scanProfile(r.db.QueryRow(ctx, query, params.AuthID, role, plan))
	if err != nil {
		r.logger.Error("Failed to upsert profile", zap.String("authID", params.AuthID), zap.Error(err))
		return nil, fmt.Errorf("database error upserting profile: %w", err)
	}
	return p, nil
}
