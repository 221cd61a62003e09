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

	"diary-backend/internal/domains/story/model"
	"diary-backend/pkg/cache"
	"diary-backend/pkg/logger"
)

const (
	storyCacheKeyPrefix = "story:"
	storyCacheTTL       = 15 * time.Minute

	storyColumns = `id, author_id, title, tagline, teaser, text, language,
		license_id, published_at, hidden_at, inspired_by_id, preceded_by_id,
		created_at, updated_at`

	// Public visibility: never hidden and carrying a publish timestamp.
	publishedWhere = `hidden_at IS NULL AND published_at IS NOT NULL`
)

type postgresStoryRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresStoryRepository(db *pgxpool.Pool, c cache.Cache) StoryRepository {
	return &postgresStoryRepository{db: db, cache: c}
}

// prefixColumns qualifies each column in a comma-separated list with a
// table alias, for queries that join stories against itself.
func prefixColumns(alias, columns string) string {
	parts := strings.Split(columns, ",")
	for i, p := range parts {
		parts[i] = alias + "." + strings.TrimSpace(p)
	}
	return strings.Join(parts, ", ")
}

func scanStory(row pgx.Row) (*model.Story, error) {
	var s model.Story
	err := row.Scan(
		&s.ID, &s.AuthorID, &s.Title, &s.Tagline, &s.Teaser, &s.Text,
		&s.Language, &s.LicenseID, &s.PublishedAt, &s.HiddenAt,
		&s.InspiredByID, &s.PrecededByID, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *postgresStoryRepository) Create(ctx context.Context, story *model.Story) error {
	query := `
		INSERT INTO stories (author_id, title, tagline, teaser, text, language,
			license_id, published_at, inspired_by_id, preceded_by_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		story.AuthorID, story.Title, story.Tagline, story.Teaser, story.Text,
		story.Language, story.LicenseID, story.PublishedAt,
		story.InspiredByID, story.PrecededByID,
	).Scan(&story.ID, &story.CreatedAt, &story.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrRelationNotFound
		}
		return fmt.Errorf("failed to create story: %w", err)
	}
	return nil
}

func (r *postgresStoryRepository) Update(ctx context.Context, story *model.Story) error {
	query := `
		UPDATE stories
		SET title = $2, tagline = $3, teaser = $4, text = $5, language = $6,
			license_id = $7, published_at = $8, hidden_at = $9,
			inspired_by_id = $10, preceded_by_id = $11, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		story.ID, story.Title, story.Tagline, story.Teaser, story.Text,
		story.Language, story.LicenseID, story.PublishedAt, story.HiddenAt,
		story.InspiredByID, story.PrecededByID,
	).Scan(&story.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrStoryNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return model.ErrRelationNotFound
		}
		return fmt.Errorf("failed to update story: %w", err)
	}
	r.invalidate(ctx, story.ID)
	return nil
}

func (r *postgresStoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	cacheKey := storyCacheKeyPrefix + id.String()
	var cached model.Story
	if found, err := r.cache.Get(ctx, cacheKey, &cached); err == nil && found {
		return &cached, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM stories WHERE id = $1`, storyColumns)
	story, err := scanStory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get story: %w", err)
	}

	if err := r.cache.Set(ctx, cacheKey, story, storyCacheTTL); err != nil {
		logger.Debug("failed to cache story " + id.String())
	}
	return story, nil
}

func (r *postgresStoryRepository) GetPublishedByID(ctx context.Context, id uuid.UUID) (*model.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE id = $1 AND %s`, storyColumns, publishedWhere)
	story, err := scanStory(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrStoryNotFound
		}
		return nil, fmt.Errorf("failed to get published story: %w", err)
	}
	return story, nil
}

func (r *postgresStoryRepository) Recent(ctx context.Context, filter model.StoryFilter) ([]*model.Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM stories WHERE %s`, storyColumns, publishedWhere)
	args := []interface{}{}
	argPos := 1

	if filter.AuthorID != nil {
		query += fmt.Sprintf(` AND author_id = $%d`, argPos)
		args = append(args, *filter.AuthorID)
		argPos++
	}
	if filter.InspiredByID != nil {
		query += fmt.Sprintf(` AND inspired_by_id = $%d`, argPos)
		args = append(args, *filter.InspiredByID)
		argPos++
	}

	// Ties on published_at break on id so the order is total.
	query += ` ORDER BY published_at DESC, id DESC`
	if filter.Limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, filter.Limit)
		argPos++
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argPos)
		args = append(args, filter.Offset)
	}

	return r.queryStories(ctx, query, args...)
}

func (r *postgresStoryRepository) Inspired(ctx context.Context, storyID uuid.UUID) ([]*model.Story, error) {
	// A story never counts as inspired by its own author's other work.
	query := fmt.Sprintf(`
		SELECT %s FROM stories s
		WHERE s.inspired_by_id = $1
			AND s.hidden_at IS NULL AND s.published_at IS NOT NULL
			AND s.author_id <> (SELECT author_id FROM stories WHERE id = $1)
		ORDER BY s.published_at DESC, s.id DESC`,
		prefixColumns("s", storyColumns))
	return r.queryStories(ctx, query, storyID)
}

func (r *postgresStoryRepository) NextChapter(ctx context.Context, storyID, authorID uuid.UUID) (*model.Story, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM stories
		WHERE preceded_by_id = $1 AND author_id = $2 AND %s
		ORDER BY published_at DESC, id DESC
		LIMIT 1`, storyColumns, publishedWhere)

	story, err := scanStory(r.db.QueryRow(ctx, query, storyID, authorID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get next chapter: %w", err)
	}
	return story, nil
}

func (r *postgresStoryRepository) queryStories(ctx context.Context, query string, args ...interface{}) ([]*model.Story, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list stories: %w", err)
	}
	defer rows.Close()

	stories := []*model.Story{}
	for rows.Next() {
		story, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan story: %w", err)
		}
		stories = append(stories, story)
	}
	return stories, rows.Err()
}

func (r *postgresStoryRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if err := r.cache.Delete(ctx, storyCacheKeyPrefix+id.String()); err != nil {
		logger.Debug("failed to invalidate story cache " + id.String())
	}
}
