package importer

import (
	"context"
	"encoding/json"
	"errors"
	"math"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
)

// OutcomeKind tags the result of one insert attempt.
type OutcomeKind int

const (
	OutcomeInserted OutcomeKind = iota
	OutcomeConflict
	OutcomeStoreError
)

// Outcome is the persistence adapter's answer for one row. It is always a
// value, never a panic or propagated error, so the batch loop carries no
// recovery logic.
type Outcome struct {
	Kind    OutcomeKind
	ID      uuid.UUID
	Message string
	Detail  string
}

func inserted(id uuid.UUID) Outcome {
	return Outcome{Kind: OutcomeInserted, ID: id}
}

func conflict(message string, err error) Outcome {
	return Outcome{Kind: OutcomeConflict, Message: message, Detail: err.Error()}
}

func storeError(message string, err error) Outcome {
	return Outcome{Kind: OutcomeStoreError, Message: message, Detail: err.Error()}
}

// Store attempts exactly one insert per call. Inserts are independent;
// no call mutates another row's collection as a side effect, and nothing
// is retried.
type Store interface {
	InsertCity(ctx context.Context, params models.CreateCityParams) Outcome
	InsertLocation(ctx context.Context, params models.CreateLocationParams) Outcome
	InsertTrip(ctx context.Context, params models.CreateTripParams) Outcome
	InsertTag(ctx context.Context, params models.CreateTagParams) Outcome
	InsertTripLink(ctx context.Context, params models.CreateLocationTripLinkParams) Outcome
	InsertTagLink(ctx context.Context, params models.CreateLocationTagLinkParams) Outcome
}

// DB is the slice of pgxpool.Pool the store needs; pgxmock satisfies it.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PgStore struct {
	db     DB
	logger *zap.Logger
}

func NewPgStore(db DB, logger *zap.Logger) *PgStore {
	return &PgStore{db: db, logger: logger}
}

// isUniqueViolation walks the error chain for a Postgres unique-constraint
// violation, whether it is the top-level error or a wrapped cause.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func (s *PgStore) startSpan(ctx context.Context, op, table string) (context.Context, trace.Span) {
	return otel.Tracer("ImportStore").Start(ctx, op, trace.WithAttributes(
		semconv.DBSystemPostgreSQL,
		attribute.String("db.operation", "INSERT"),
		attribute.String("db.sql.table", table),
	))
}

func (s *PgStore) InsertCity(ctx context.Context, params models.CreateCityParams) Outcome {
	ctx, span := s.startSpan(ctx, "InsertCity", "cities")
	defer span.End()

	query := `
		INSERT INTO cities (name, country, is_draft, center_latitude, center_longitude)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query,
		params.Name,
		params.Country,
		boolOrDefault(params.IsDraft, true),
		*params.CenterLatitude,
		*params.CenterLongitude,
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if isUniqueViolation(err) {
			return conflict("Duplicate city", err)
		}
		s.logger.Error("Failed to insert city", zap.String("name", params.Name), zap.Error(err))
		return storeError("Database error inserting city", err)
	}

	return inserted(id)
}

func (s *PgStore) InsertLocation(ctx context.Context, params models.CreateLocationParams) Outcome {
	ctx, span := s.startSpan(ctx, "InsertLocation", "locations")
	defer span.End()

	var guide []byte
	if params.Guide != nil {
		b, err := json.Marshal(params.Guide)
		if err != nil {
			return storeError("Database error inserting location", err)
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
		RETURNING id`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query,
		boolOrDefault(params.IsDraft, true),
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
		boolOrDefault(params.IsGuidePremium, false),
		*params.Longitude,
		*params.Latitude,
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if isUniqueViolation(err) {
			return conflict("Duplicate location", err)
		}
		s.logger.Error("Failed to insert location", zap.String("name", params.Name), zap.Error(err))
		return storeError("Database error inserting location", err)
	}

	return inserted(id)
}

func (s *PgStore) InsertTrip(ctx context.Context, params models.CreateTripParams) Outcome {
	ctx, span := s.startSpan(ctx, "InsertTrip", "trips")
	defer span.End()

	query := `
		INSERT INTO trips (owner, name, city, number_of_adults, number_of_children, preferences)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query,
		params.Owner,
		params.Name,
		params.City,
		intOrNil(params.NumberOfAdults),
		intOrNil(params.NumberOfChildren),
		arrayOrNil(params.Preferences),
	).Scan(&id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if isUniqueViolation(err) {
			return conflict("Duplicate trip", err)
		}
		s.logger.Error("Failed to insert trip", zap.String("name", params.Name), zap.Error(err))
		return storeError("Database error inserting trip", err)
	}

	return inserted(id)
}

func (s *PgStore) InsertTag(ctx context.Context, params models.CreateTagParams) Outcome {
	ctx, span := s.startSpan(ctx, "InsertTag", "tags")
	defer span.End()

	query := `
		INSERT INTO tags (name, icon, type)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id uuid.UUID
	err := s.db.QueryRow(ctx, query, params.Name, params.Icon, params.Type).Scan(&id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if isUniqueViolation(err) {
			return conflict("Duplicate tag", err)
		}
		s.logger.Error("Failed to insert tag", zap.String("name", params.Name), zap.Error(err))
		return storeError("Database error inserting tag", err)
	}

	return inserted(id)
}

func (s *PgStore) InsertTripLink(ctx context.Context, params models.CreateLocationTripLinkParams) Outcome {
	ctx, span := s.startSpan(ctx, "InsertTripLink", "locations_trips")
	defer span.End()

	query := `INSERT INTO locations_trips (trip, location) VALUES ($1, $2)`

	_, err := s.db.Exec(ctx, query, params.Trip, params.Location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if isUniqueViolation(err) {
			return conflict("Duplicate trip-location pair", err)
		}
		s.logger.Error("Failed to insert trip-location link", zap.Error(err))
		return storeError("Database error inserting location_trip link", err)
	}

	return inserted(uuid.Nil)
}

func (s *PgStore) InsertTagLink(ctx context.Context, params models.CreateLocationTagLinkParams) Outcome {
	ctx, span := s.startSpan(ctx, "InsertTagLink", "locations_tags")
	defer span.End()

	query := `INSERT INTO locations_tags (tag, location) VALUES ($1, $2)`

	_, err := s.db.Exec(ctx, query, params.Tag, params.Location)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "DB INSERT failed")
		if isUniqueViolation(err) {
			return conflict("Duplicate tag-location pair", err)
		}
		s.logger.Error("Failed to insert tag-location link", zap.Error(err))
		return storeError("Database error inserting location_tag link", err)
	}

	return inserted(uuid.Nil)
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
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
