package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"diary-backend/internal/domains/author/model"
	"diary-backend/pkg/cache"
)

type postgresRepository struct {
	pool  *pgxpool.Pool
	cache cache.Cache
}

// NewPostgresRepository creates a new author repository instance.
func NewPostgresRepository(pool *pgxpool.Pool, cache cache.Cache) Repository {
	return &postgresRepository{pool: pool, cache: cache}
}

const (
	authorCacheKeyPrefix = "author:"
	authorUserKeyPrefix  = "authors:user:"
	cacheTTL             = 15 * time.Minute
)

const authorColumns = `id, user_id, name, bio_text, avatar, created_at, updated_at`

func scanAuthor(row pgx.Row) (*model.Author, error) {
	var a model.Author
	err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.BioText,
		&a.Avatar,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *postgresRepository) Create(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        INSERT INTO authors (user_id, name, bio_text, avatar)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + authorColumns

	created, err := scanAuthor(r.pool.QueryRow(ctx, query, a.UserID, a.Name, a.BioText, a.Avatar))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" && strings.Contains(pgErr.Message, "name") {
				return nil, model.ErrDuplicateName
			}
		}
		return nil, fmt.Errorf("failed to create author: %w", err)
	}

	_ = r.cache.DeletePattern(ctx, authorUserKeyPrefix+a.UserID.String())
	return created, nil
}

func (r *postgresRepository) Update(ctx context.Context, a *model.Author) (*model.Author, error) {
	query := `
        UPDATE authors
        SET name = $1, bio_text = $2, avatar = $3, updated_at = NOW()
        WHERE id = $4
        RETURNING ` + authorColumns

	updated, err := scanAuthor(r.pool.QueryRow(ctx, query, a.Name, a.BioText, a.Avatar, a.ID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" && strings.Contains(pgErr.Message, "name") {
				return nil, model.ErrDuplicateName
			}
		}
		return nil, fmt.Errorf("failed to update author: %w", err)
	}

	_ = r.cache.Delete(ctx, authorCacheKeyPrefix+a.ID.String())
	_ = r.cache.DeletePattern(ctx, authorUserKeyPrefix+updated.UserID.String())
	return updated, nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Author, error) {
	cacheKey := authorCacheKeyPrefix + id.String()

	var cached model.Author
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := `SELECT ` + authorColumns + ` FROM authors WHERE id = $1`

	a, err := scanAuthor(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("failed to get author by id: %w", err)
	}

	_ = r.cache.Set(ctx, cacheKey, a, cacheTTL)
	return a, nil
}

func (r *postgresRepository) ForUser(ctx context.Context, userID uuid.UUID) ([]model.Author, error) {
	query := `SELECT ` + authorColumns + ` FROM authors WHERE user_id = $1 ORDER BY name`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query authors for user: %w", err)
	}
	defer rows.Close()

	var authors []model.Author
	for rows.Next() {
		a, err := scanAuthor(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan author: %w", err)
		}
		authors = append(authors, *a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating authors: %w", err)
	}

	return authors, nil
}

func (r *postgresRepository) CountForUser(ctx context.Context, userID uuid.UUID) (int64, error) {
	query := `SELECT COUNT(*) FROM authors WHERE user_id = $1`

	var count int64
	if err := r.pool.QueryRow(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count authors for user: %w", err)
	}

	return count, nil
}
