package browse

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/voyago/atlas/internal/app/models"
	database "github.com/voyago/atlas/internal/db"
)

// browsable maps exposed table names to their column lists. Only tables
// named here can be read through the browser; anything else is rejected
// before touching SQL.
var browsable = map[string][]string{
	"cities":          {"id", "name", "country", "is_draft", "center_latitude", "center_longitude", "created_at", "modified_at"},
	"locations":       {"id", "is_draft", "name", "description", "price_low", "price_high", "time_low", "time_high", "type", "images", "embedded_links", "city", "street", "guide", "is_guide_premium", "longitude", "latitude", "created_at", "modified_at"},
	"trips":           {"id", "owner", "name", "city", "number_of_adults", "number_of_children", "preferences", "created_at", "modified_at"},
	"tags":            {"id", "name", "icon", "type", "created_at", "modified_at"},
	"locations_trips": {"trip", "location"},
	"locations_tags":  {"tag", "location"},
}

const (
	defaultLimit = 1000
	maxLimit     = 10000
	cacheTTL     = 30 * time.Second
)

type Repository interface {
	Rows(ctx context.Context, table string, limit int) ([]map[string]any, error)
	Snapshot(ctx context.Context, limit int) (map[string][]map[string]any, error)
}

type RepositoryImpl struct {
	db     database.Querier
	cache  *cache.Cache
	logger *zap.Logger
}

func NewRepository(db database.Querier, logger *zap.Logger) Repository {
	return &RepositoryImpl{
		db:     db,
		cache:  cache.New(cacheTTL, 2*cacheTTL),
		logger: logger,
	}
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return defaultLimit
	}
	if limit > maxLimit {
		return maxLimit
	}
	return limit
}

func (r *RepositoryImpl) Rows(ctx context.Context, table string, limit int) ([]map[string]any, error) {
	columns, ok := browsable[table]
	if !ok {
		return nil, fmt.Errorf("table %q is not browsable: %w", table, models.ErrUnsupportedTable)
	}
	limit = clampLimit(limit)

	cacheKey := fmt.Sprintf("%s:%d", table, limit)
	if cached, found := r.cache.Get(cacheKey); found {
		return cached.([]map[string]any), nil
	}

	query, args, err := sq.Select(columns...).
		From(table).
		Limit(uint64(limit)).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build browse query: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("database error browsing %s: %w", table, err)
	}
	defer rows.Close()

	result := make([]map[string]any, 0, limit)
	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}
		record := make(map[string]any, len(columns))
		for i, col := range columns {
			record[col] = values[i]
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	r.cache.Set(cacheKey, result, cache.DefaultExpiration)
	return result, nil
}

// Snapshot fetches every browsable table concurrently. A failure in any
// table fails the whole snapshot.
func (r *RepositoryImpl) Snapshot(ctx context.Context, limit int) (map[string][]map[string]any, error) {
	limit = clampLimit(limit)

	results := make(map[string][]map[string]any, len(browsable))
	g, gctx := errgroup.WithContext(ctx)

	type tableRows struct {
		table string
		rows  []map[string]any
	}
	out := make(chan tableRows, len(browsable))

	for table := range browsable {
		g.Go(func() error {
			rows, err := r.Rows(gctx, table, limit)
			if err != nil {
				return err
			}
			out <- tableRows{table: table, rows: rows}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(out)

	for tr := range out {
		results[tr.table] = tr.rows
	}
	return results, nil
}
