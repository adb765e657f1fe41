package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/voyago/atlas/internal/app/models"
	"github.com/voyago/atlas/internal/app/observability/metrics"
)

// Table identifies one of the importable collections.
type Table string

const (
	TableCities        Table = "cities"
	TableLocations     Table = "locations"
	TableTrips         Table = "trips"
	TableTags          Table = "tags"
	TableLocationTrips Table = "locations_trips"
	TableLocationTags  Table = "locations_tags"
)

// ParseTable resolves a request's table name. An unrecognized name is a
// whole-request failure, raised before any row is touched.
func ParseTable(name string) (Table, error) {
	switch Table(name) {
	case TableCities, TableLocations, TableTrips, TableTags, TableLocationTrips, TableLocationTags:
		return Table(name), nil
	default:
		return "", fmt.Errorf("%w: %s", models.ErrUnsupportedTable, name)
	}
}

// RowError reports one failed row. Row numbers are 1-based spreadsheet
// numbers; the header is row 1.
type RowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Result is the batch outcome: whatever succeeded plus an ordered list of
// what did not. A batch where every row fails is still a Result, never a
// request failure.
type Result struct {
	Inserted int        `json:"inserted"`
	Errors   []RowError `json:"errors"`
}

// Importer drives the batch: coerce, validate and persist each row in
// input order, converting every row-level failure into a RowError so the
// loop reaches every row exactly once.
type Importer struct {
	store  Store
	logger *zap.Logger
}

func NewImporter(store Store, logger *zap.Logger) *Importer {
	return &Importer{store: store, logger: logger}
}

type rowFunc func(ctx context.Context, rec Record) *RowError

// Run imports the materialized records into the target collection. The
// only error it returns is an unsupported table; everything row-level is
// data in the Result.
func (im *Importer) Run(ctx context.Context, table Table, records []Record) (Result, error) {
	var fn rowFunc
	switch table {
	case TableCities:
		fn = im.cityRow
	case TableLocations:
		fn = im.locationRow
	case TableTrips:
		fn = im.tripRow
	case TableTags:
		fn = im.tagRow
	case TableLocationTrips:
		fn = im.tripLinkRow
	case TableLocationTags:
		fn = im.tagLinkRow
	default:
		return Result{}, fmt.Errorf("%w: %s", models.ErrUnsupportedTable, string(table))
	}

	result := Result{Errors: make([]RowError, 0)}
	for _, rec := range records {
		metrics.Get().ImportRowsTotal.Add(ctx, 1)
		if rowErr := fn(ctx, rec); rowErr != nil {
			metrics.Get().ImportRowErrorsTotal.Add(ctx, 1)
			result.Errors = append(result.Errors, *rowErr)
			continue
		}
		result.Inserted++
	}

	im.logger.Info("Import batch finished",
		zap.String("table", string(table)),
		zap.Int("rows", len(records)),
		zap.Int("inserted", result.Inserted),
		zap.Int("failed", len(result.Errors)))

	return result, nil
}

// outcomeError maps a persistence outcome onto a row error, or nil when
// the row was inserted.
func outcomeError(rec Record, out Outcome) *RowError {
	switch out.Kind {
	case OutcomeInserted:
		return nil
	case OutcomeConflict:
		return &RowError{Row: rec.Row, Message: out.Message, Details: out.Detail}
	default:
		return &RowError{Row: rec.Row, Message: out.Message, Details: out.Detail}
	}
}

func validationError(rec Record, issues []models.FieldIssue) *RowError {
	return &RowError{Row: rec.Row, Message: "Validation failed", Details: issues}
}
