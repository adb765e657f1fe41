package location

import (
	"context"
	"encoding/json"
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
	Create(ctx context.Context, params models.CreateLocationParams) (*models.Location, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Location, error)
	ListByCity(ctx context.Context, cityID uuid.UUID, limit, offset int) ([]models.Location, error)
	Update(ctx context.Context, id uuid.UUID, params models.UpdateLocationParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RepositoryImpl struct {
	db     database.Querier
	logger *zap.Logger
}

func NewRepository(db database.Querier, logger *zap.Logger) Repository {
	return &RepositoryImpl{db: db, logger: logger}
}

const locationColumns = `id, is_draft, name, description, price_low, price_high, time_low, time_high,
	type, images, embedded_links, city, street, guide, is_guide_premium, longitude, latitude,
	created_at, modified_at`

func scanLocation(row pgx.Row) (*models.Location, error) {
	var l models.Location
	var guide []byte
	err := row.Scan(
		&l.ID,
		&l.IsDraft,
		&l.Name,
		&l.Description,
		&l.PriceLow,
		&l.PriceHigh,
		&l.TimeLow,
		&l.TimeHigh,
		&l.Type,
		&l.Images,
		&l.EmbeddedLinks,
		&l.City,
		&l.Street,
		&guide,
		&l.IsGuidePremium,
		&l.Longitude,
		&l.Latitude,
		&l.CreatedAt,
		&l.ModifiedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(guide) > 0 {
		if err := json.Unmarshal(guide, &l.Guide); err != nil {
			return nil, fmt.Errorf("malformed guide document for location %s: %w", l.ID, err)
		}
	}
	return &l, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, params models.CreateLocationParams) (*models.Location, error) {
	isDraft := true
	if params.IsDraft != nil {
		isDraft = *params.IsDraft
	}
	isGuidePremium := false
	if params.IsGuidePremium != nil {
		isGuidePremium = *params.IsGuidePremium
	}

	var guide []byte
	if params.Guide != nil {
		b, err := json.Marshal(params.Guide)
		if err != nil {
			return nil, fmt.Errorf("failed to encode guide document: %w", err)
		}
		guide = b
	}

	query := `
		INSERT INTO locations (
			is_draft, name, description, price_low, price_high, time_low, time_high,
			type, images, embedded_links, city, street, guide, is_guide_premium,
			longitude, latitude
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		RETURNING ` + locationColumns

	loc, err := scanLocation(r.db.QueryRow(ctx, query,
		isDraft,
		params.Name,
		nullIfEmpty(params.Description),
		intOrNil(params.PriceLow),
		intOrNil(params.PriceHigh),
		intOrNil(params.TimeLow),
		intOrNil(params.TimeHigh),
		params.Type,
		arrayOrNil(params.Images),
		arrayOrNil(params.EmbeddedLinks),
		params.City,
		nullIfEmpty(params.Street),
		guide,
		isGuidePremium,
		*params.Longitude,
		*params.Latitude,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("location already exists: %w", models.ErrConflict)
		}
		r.logger.Error("Failed to insert location", zap.String("name", params.Name), zap.Error(err))
		return nil, fmt.Errorf("database error creating location: %w", err)
	}

	return loc, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Location, error) {
	query := `SELECT ` + locationColumns + ` FROM locations WHERE id = $1`

	loc, err := scanLocation(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching location: %w", err)
	}
	return loc, nil
}

func (r *RepositoryImpl) ListByCity(ctx context.Context, cityID uuid.UUID, limit, offset int) ([]models.Location, error) {
	query := `
		SELECT ` + locationColumns + `
		FROM locations
		WHERE city = $1
		ORDER BY name
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, cityID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("database error listing locations: %w", err)
	}
	defer rows.Close()

	var locations []models.Location
	for rows.Next() {
		l, err := scanLocation(rows)
		if err != nil {
			return nil, err
		}
		locations = append(locations, *l)
	}

	return locations, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, id uuid.UUID, params models.UpdateLocationParams) error {
	builder := sq.Update("locations").
		Set("modified_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if params.IsDraft != nil {
		builder = builder.Set("is_draft", *params.IsDraft)
	}
	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.Description != nil {
		builder = builder.Set("description", *params.Description)
	}
	if params.PriceLow != nil {
		builder = builder.Set("price_low", int(math.Trunc(*params.PriceLow)))
	}
	if params.PriceHigh != nil {
		builder = builder.Set("price_high", int(math.Trunc(*params.PriceHigh)))
	}
	if params.TimeLow != nil {
		builder = builder.Set("time_low", int(math.Trunc(*params.TimeLow)))
	}
	if params.TimeHigh != nil {
		builder = builder.Set("time_high", int(math.Trunc(*params.TimeHigh)))
	}
	if params.Type != nil {
		builder = builder.Set("type", *params.Type)
	}
	if params.Images != nil {
		builder = builder.Set("images", params.Images)
	}
	if params.EmbeddedLinks != nil {
		builder = builder.Set("embedded_links", params.EmbeddedLinks)
	}
	if params.City != nil {
		builder = builder.Set("city", *params.City)
	}
	if params.Street != nil {
		builder = builder.Set("street", *params.Street)
	}
	if params.Guide != nil {
		guide, err := json.Marshal(params.Guide)
		if err != nil {
			return fmt.Errorf("failed to encode guide document: %w", err)
		}
		builder = builder.Set("guide", guide)
	}
	if params.IsGuidePremium != nil {
		builder = builder.Set("is_guide_premium", *params.IsGuidePremium)
	}
	if params.Longitude != nil {
		builder = builder.Set("longitude", *params.Longitude)
	}
	if params.Latitude != nil {
		builder = builder.Set("latitude", *params.Latitude)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build location update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update location", zap.String("locationID", id.String()), zap.Error(err))
		return fmt.Errorf("database error updating location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM locations WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete location", zap.String("locationID", id.String()), zap.Error(err))
		return fmt.Errorf("database error deleting location: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func nullIfEmpty(s string) *string {
	if s == "" {
		return nil
	}
	return &s
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
