package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diary-backend/internal/domains/entry/model"
)

const entryColumns = `id, author_id, title, text, published_at, hidden_at, created_at, updated_at`

type postgresEntryRepository struct {
	db *pgxpool.Pool
}

func NewPostgresEntryRepository(db *pgxpool.Pool) EntryRepository {
	return &postgresEntryRepository{db: db}
}

func scanEntry(row pgx.Row) (*model.Entry, error) {
	var e model.Entry
	err := row.Scan(&e.ID, &e.AuthorID, &e.Title, &e.Text,
		&e.PublishedAt, &e.HiddenAt, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *postgresEntryRepository) Create(ctx context.Context, entry *model.Entry) error {
	query := `
		INSERT INTO entries (author_id, title, text, published_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query,
		entry.AuthorID, entry.Title, entry.Text, entry.PublishedAt,
	).Scan(&entry.ID, &entry.CreatedAt, &entry.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}
	return nil
}

func (r *postgresEntryRepository) Update(ctx context.Context, entry *model.Entry) error {
	query := `
		UPDATE entries
		SET title = $2, text = $3, published_at = $4, hidden_at = $5, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.QueryRow(ctx, query,
		entry.ID, entry.Title, entry.Text, entry.PublishedAt, entry.HiddenAt,
	).Scan(&entry.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.ErrEntryNotFound
		}
		return fmt.Errorf("failed to update entry: %w", err)
	}
	return nil
}

func (r *postgresEntryRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.Entry, error) {
	query := fmt.Sprintf(`SELECT %s FROM entries WHERE id = $1`, entryColumns)
	entry, err := scanEntry(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrEntryNotFound
		}
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	return entry, nil
}

func (r *postgresEntryRepository) Recent(ctx context.Context, authorID *uuid.UUID, limit, offset int) ([]*model.Entry, error) {
	// Unlike stories, entry visibility only requires the hide timestamp to
	// be unset; drafts still list, their text is substituted at read time.
	query := fmt.Sprintf(`
		SELECT %s FROM entries
		WHERE hidden_at IS NULL`, entryColumns)
	args := []interface{}{}
	argPos := 1

	if authorID != nil {
		query += fmt.Sprintf(` AND author_id = $%d`, argPos)
		args = append(args, *authorID)
		argPos++
	}
	query += ` ORDER BY published_at DESC NULLS LAST, id DESC`
	if limit > 0 {
		query += fmt.Sprintf(` LIMIT $%d`, argPos)
		args = append(args, limit)
		argPos++
	}
	if offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argPos)
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries := []*model.Entry{}
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
