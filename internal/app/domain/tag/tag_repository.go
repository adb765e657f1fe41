package tag

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
	Create(ctx context.Context, params models.CreateTagParams) (*models.Tag, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Tag, error)
	List(ctx context.Context, limit, offset int) ([]models.Tag, error)
	Update(ctx context.Context, id uuid.UUID, params models.UpdateTagParams) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type RepositoryImpl struct {
	db     database.Querier
	logger *zap.Logger
}

func NewRepository(db database.Querier, logger *zap.Logger) Repository {
	return &RepositoryImpl{db: db, logger: logger}
}

const tagColumns = `id, name, icon, type, created_at, modified_at`

func scanTag(row pgx.Row) (*models.Tag, error) {
	var t models.Tag
	err := row.Scan(&t.ID, &t.Name, &t.Icon, &t.Type, &t.CreatedAt, &t.ModifiedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *RepositoryImpl) Create(ctx context.Context, params models.CreateTagParams) (*models.Tag, error) {
	query := `
		INSERT INTO tags (name, icon, type)
		VALUES ($1, $2, $3)
		RETURNING ` + tagColumns

	tag, err := scanTag(r.db.QueryRow(ctx, query, params.Name, params.Icon, params.Type))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, fmt.Errorf("tag already exists: %w", models.ErrConflict)
		}
		r.logger.Error("Failed to insert tag", zap.String("name", params.Name), zap.Error(err))
		return nil, fmt.Errorf("database error creating tag: %w", err)
	}

	return tag, nil
}

func (r *RepositoryImpl) Get(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags WHERE id = $1`

	tag, err := scanTag(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("database error fetching tag: %w", err)
	}
	return tag, nil
}

func (r *RepositoryImpl) List(ctx context.Context, limit, offset int) ([]models.Tag, error) {
	query := `SELECT ` + tagColumns + ` FROM tags ORDER BY name LIMIT $1 OFFSET $2`

	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("database error listing tags: %w", err)
	}
	defer rows.Close()

	var tags []models.Tag
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, *t)
	}

	return tags, rows.Err()
}

func (r *RepositoryImpl) Update(ctx context.Context, id uuid.UUID, params models.UpdateTagParams) error {
	builder := sq.Update("tags").
		Set("modified_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		PlaceholderFormat(sq.Dollar)

	if params.Name != nil {
		builder = builder.Set("name", *params.Name)
	}
	if params.Icon != nil {
		builder = builder.Set("icon", *params.Icon)
	}
	if params.Type != nil {
		builder = builder.Set("type", *params.Type)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build tag update: %w", err)
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		r.logger.Error("Failed to update tag", zap.String("tagID", id.String()), zap.Error(err))
		return fmt.Errorf("database error updating tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}

	return nil
}

func (r *RepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM tags WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete tag", zap.String("tagID", id.String()), zap.Error(err))
		return fmt.Errorf("database error deleting tag: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}
