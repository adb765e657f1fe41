package city

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
	database "github.com/voyago/atlas/internal/db"
)

type Repository interface {
	Create(ctx context.Context, params models.CreateCityParams) (*models.City, error)
	Get(ctx context.Context, id uuid.UUID) (*models.City, error)
	List(ctx context.Context, limit, offset int) ([]models.City, error)
	Update(ctx context.Context, id uuid.UUID, params models.UpdateCityParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RepositoryImpl struct {
	db     database.Querier
	logger *zap.Logger
}

func NewRepository(db database.Querier, logger *zap.Logger) Repository {
	return &RepositoryImpl{db: db, logger: logger}
}

const cityColumns = `id, name, country, is_draft, center_latitude, center_longitude, created_at, modified_at`

func scanCity(row pgx.Row) (*models.City, error) {
	var c models.City
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Country,
		&c.IsDraft,
		&c.CenterLatitude,
		&c.CenterLongitude,
		&c.CreatedAt,
		&c.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a city; the (name, country) pair is unique in the store.
func (r *RepositoryImpl) Create(ctx context.Context, params models.CreateCityParams) (*models.City, error) {
	isDraft := true
	if params.IsDraft != nil {
		isDraft = *params.IsDraft
	}

	query := `
		INSERT INTO cities (name, country, is_draft, center_latitude, center_longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + cityColumns

	city, err := scanCity(r.db.QueryRow(ctx, query,
		params.Name,
		params.Country,
		isDraft,
		*params.CenterLatitude,
		*params.CenterLongitude,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Warn("Attempted to create duplicate city",
				zap.String("name", params.Name), zap.String("country", params.Country))
			return nil, fmt.Errorf("city %q already exists in %q: %w", params.Name, params.Country, models.ErrConflict)
		}
		r.logger.Error("Failed to insert city", zap.String("name", params.Name), zap.Error(err))
		return nil, fmt.Errorf("database error creating city: %w", err)
	}

	return city, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.City, error) {
	query := `SELECT ` + cityColumns + ` FROM cities WHERE id = $1`

	city, err := scanCity(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching city: %w", err)
	}
	return city, nil
}

func (r *RepositoryImpl) List(ctx context.Context, limit, offset int) ([]models.City, error) {
	query := `
		SELECT ` + cityColumns + `
		FROM cities
		ORDER BY country, name
		LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("database error listing cities: %w", err)
	}
	defer rows.Close()

	var cities []models.City
	for rows.Next() {
		c, err := scanCity(rows)
		if err != nil {
			return nil, err
		}
		cities = append(cities, *c)
	}

	return cities, rows.Err()
}

// Update sets only the provided fields and bumps modified_at.
func (r *RepositoryImpl) Update(ctx context.Context, id uuid.UUID, params models.UpdateCityParams) error {
	builder := sq.Update("cities").
		Set("modified_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.Country != nil {
		builder = builder.Set("country", *params.Country)
	}
	if params.IsDraft != nil {
		builder = builder.Set("is_draft", *params.IsDraft)
	}
	if params.CenterLatitude != nil {
		builder = builder.Set("center_latitude", *params.CenterLatitude)
	}
	if params.CenterLongitude != nil {
		builder = builder.Set("center_longitude", *params.CenterLongitude)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build city update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("city update collides with an existing (name, country): %w", models.ErrConflict)
		}
		r.logger.Error("Failed to update city", zap.String("cityID", id.String()), zap.Error(err))
		return fmt.Errorf("database error updating city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM cities WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete city", zap.String("cityID", id.String()), zap.Error(err))
		return fmt.Errorf("database error deleting city: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
