package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"diary-backend/internal/domains/license/model"
	"diary-backend/pkg/cache"
	"diary-backend/pkg/logger"
)

const (
	licenseColumns = `id, name, text, owner_id, published_at, unpublished_at, created_at`

	activeLicensesCacheKey = "licenses:active"
	licenseCacheTTL        = time.Hour
)

type postgresLicenseRepository struct {
	db    *pgxpool.Pool
	cache cache.Cache
}

func NewPostgresLicenseRepository(db *pgxpool.Pool, c cache.Cache) LicenseRepository {
	return &postgresLicenseRepository{db: db, cache: c}
}

func scanLicense(row pgx.Row) (*model.License, error) {
	var l model.License
	err := row.Scan(&l.ID, &l.Name, &l.Text, &l.OwnerID,
		&l.PublishedAt, &l.UnpublishedAt, &l.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *postgresLicenseRepository) GetByID(ctx context.Context, id uuid.UUID) (*model.License, error) {
	query := fmt.Sprintf(`SELECT %s FROM licenses WHERE id = $1`, licenseColumns)
	license, err := scanLicense(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, model.ErrLicenseNotFound
		}
		return nil, fmt.Errorf("failed to get license: %w", err)
	}
	return license, nil
}

func (r *postgresLicenseRepository) ListActive(ctx context.Context) ([]*model.License, error) {
	var cached []*model.License
	if found, err := r.cache.Get(ctx, activeLicensesCacheKey, &cached); err == nil && found {
		return cached, nil
	}

	query := fmt.Sprintf(`
		SELECT %s FROM licenses
		WHERE unpublished_at IS NULL
		ORDER BY name`, licenseColumns)
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list licenses: %w", err)
	}
	defer rows.Close()

	licenses := []*model.License{}
	for rows.Next() {
		license, err := scanLicense(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan license: %w", err)
		}
		licenses = append(licenses, license)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.cache.Set(ctx, activeLicensesCacheKey, licenses, licenseCacheTTL); err != nil {
		logger.Debug("failed to cache active licenses")
	}
	return licenses, nil
}

func (r *postgresLicenseRepository) IsActive(ctx context.Context, id uuid.UUID) (bool, error) {
	var active bool
	query := `SELECT unpublished_at IS NULL FROM licenses WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&active)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check license: %w", err)
	}
	return active, nil
}
