package trip

import (
	"context"
	"errors"
	"fmt"
	"math"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
	database "github.com/voyago/atlas/internal/db"
)

type Repository interface {
	Create(ctx context.Context, params models.CreateTripParams) (*models.Trip, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Trip, error)
	ListByOwner(ctx context.Context, owner uuid.UUID, limit, offset int) ([]models.Trip, error)
	Update(ctx context.Context, id uuid.UUID, params models.UpdateTripParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RepositoryImpl struct {
	db     database.Querier
	logger *zap.Logger
}

func NewRepository(db database.Querier, logger *zap.Logger) Repository {
	return &RepositoryImpl{db: db, logger: logger}
}

const tripColumns = `id, owner, name, city, number_of_adults, number_of_children, preferences, created_at, modified_at`

func scanTrip(row pgx.Row) (*models.Trip, error) {
	var t models.Trip
	err := row.Scan(
		&t.ID,
		&t.Owner,
		&t.Name,
		&t.City,
		&t.NumberOfAdults,
		&t.NumberOfChildren,
		&t.Preferences,
		&t.CreatedAt,
		&t.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, params models.CreateTripParams) (*models.Trip, error) {
	query := `
		INSERT INTO trips (owner, name, city, number_of_adults, number_of_children, preferences)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + tripColumns

	trip, err := scanTrip(r.db.QueryRow(ctx, query,
		params.Owner,
		params.Name,
		params.City,
		intOrNil(params.NumberOfAdults),
		intOrNil(params.NumberOfChildren),
		arrayOrNil(params.Preferences),
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("trip already exists: %w", models.ErrConflict)
		}
		r.logger.Error("Failed to insert trip", zap.String("name", params.Name), zap.Error(err))
		return nil, fmt.Errorf("database error creating trip: %w", err)
	}

	return trip, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Trip, error) {
	query := `SELECT ` + tripColumns + ` FROM trips WHERE id = $1`

	trip, err := scanTrip(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching trip: %w", err)
	}
	return trip, nil
}

func (r *RepositoryImpl) ListByOwner(ctx context.Context, owner uuid.UUID, limit, offset int) ([]models.Trip, error) {
	query := `
		SELECT ` + tripColumns + `
		FROM trips
		WHERE owner = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, owner, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("database error listing trips: %w", err)
	}
	defer rows.Close()

	var trips []models.Trip
	for rows.Next() {
		t, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, *t)
	}

	return trips, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, id uuid.UUID, params models.UpdateTripParams) error {
	builder := sq.Update("trips").
		Set("modified_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if params.Owner != nil {
		builder = builder.Set("owner", *params.Owner)
	}
	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.City != nil {
		builder = builder.Set("city", *params.City)
	}
	if params.NumberOfAdults != nil {
		builder = builder.Set("number_of_adults", int(math.Trunc(*params.NumberOfAdults)))
	}
	if params.NumberOfChildren != nil {
		builder = builder.Set("number_of_children", int(math.Trunc(*params.NumberOfChildren)))
	}
	if params.Preferences != nil {
		builder = builder.Set("preferences", params.Preferences)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build trip update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update trip", zap.String("tripID", id.String()), zap.Error(err))
		return fmt.Errorf("database error updating trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trips WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete trip", zap.String("tripID", id.String()), zap.Error(err))
		return fmt.Errorf("database error deleting trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func intOrNil(v *float64) *int {
	if v == nil {
		return nil
	}
	n := int(math.Trunc(*v))
	return &n
}

func arrayOrNil(v []string) []string {
	if len(v) == 0 {
		return nil
	}
	return v
}
