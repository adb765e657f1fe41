package link

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
	database "github.com/voyago/atlas/internal/db"
)

// Repository manages the two join tables. Links are immutable pairs, so
// the surface is attach/detach plus listing by either side.
type Repository interface {
	AttachTrip(ctx context.Context, trip, location uuid.UUID) error
	DetachTrip(ctx context.Context, trip, location uuid.UUID) error
	TripLocations(ctx context.Context, trip uuid.UUID) ([]uuid.UUID, error)
	AttachTag(ctx context.Context, tag, location uuid.UUID) error
	DetachTag(ctx context.Context, tag, location uuid.UUID) error
	LocationTags(ctx context.Context, location uuid.UUID) ([]models.Tag, error)
}

type RepositoryImpl struct {
	db     database.Querier
	logger *zap.Logger
}

func NewRepository(db database.Querier, logger *zap.Logger) Repository {
	return &RepositoryImpl{db: db, logger: logger}
}

func (r *RepositoryImpl) AttachTrip(ctx context.Context, trip, location uuid.UUID) error {
	_, err := r.db.Exec(ctx, `INSERT INTO locations_trips (trip, location) VALUES ($1, $2)`, trip, location)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("location already attached to trip: %w", models.ErrConflict)
		}
		r.logger.Error("Failed to attach location to trip",
			zap.String("trip", trip.String()), zap.String("location", location.String()), zap.Error(err))
		return fmt.Errorf("database error attaching location to trip: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) DetachTrip(ctx context.Context, trip, location uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM locations_trips WHERE trip = $1 AND location = $2`, trip, location)
	if err != nil {
		r.logger.Error("Failed to detach location from trip",
			zap.String("trip", trip.String()), zap.String("location", location.String()), zap.Error(err))
		return fmt.Errorf("database error detaching location from trip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) TripLocations(ctx context.Context, trip uuid.UUID) ([]uuid.UUID, error) {
	rows, err := r.db.Query(ctx, `SELECT location FROM locations_trips WHERE trip = $1`, trip)
	if err != nil {
		return nil, fmt.Errorf("database error listing trip locations: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

func (r *RepositoryImpl) AttachTag(ctx context.Context, tag, location uuid.UUID) error {
	_, err := r.db.Exec(ctx, `INSERT INTO locations_tags (tag, location) VALUES ($1, $2)`, tag, location)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("tag already attached to location: %w", models.ErrConflict)
		}
		r.logger.Error("Failed to attach tag to location",
			zap.String("tag", tag.String()), zap.String("location", location.String()), zap.Error(err))
		return fmt.Errorf("database error attaching tag to location: %w", err)
	}
	return nil
}

func (r *RepositoryImpl) DetachTag(ctx context.Context, tag, location uuid.UUID) error {
	res, err := r.db.Exec(ctx, `DELETE FROM locations_tags WHERE tag = $1 AND location = $2`, tag, location)
	if err != nil {
		r.logger.Error("Failed to detach tag from location",
			zap.String("tag", tag.String()), zap.String("location", location.String()), zap.Error(err))
		return fmt.Errorf("database error detaching tag from location: %w", err)
	}
	if res.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *RepositoryImpl) LocationTags(ctx context.Context, location uuid.UUID) ([]models.Tag, error) {
	query := `
		SELECT t.id, t.name, t.icon, t.type, t.created_at, t.modified_at
		FROM tags t
		JOIN locations_tags lt ON lt.tag = t.id
		WHERE lt.location = $1
		ORDER BY t.name`

	rows, err := r.db.Query(ctx, query, location)
	if err != nil {
		return nil, fmt.Errorf("database error listing location tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		var t models.Tag
		if err := rows.Scan(&t.ID, &t.Name, &t.Icon, &t.Type, &t.CreatedAt, &t.ModifiedAt); err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}

	return tags, rows.Err()
}
