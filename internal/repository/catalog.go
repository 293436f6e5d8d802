package repository

import (
	"context"
	"fmt"

	"storefront/catalog/internal/config"
	"storefront/catalog/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

// CatalogRepository reads complete category and collection snapshots
type CatalogRepository interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
}

type catalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) CatalogRepository {
	return &catalogRepository{
		db: db,
	}
}

// NewPool opens and pings a connection pool for the configured database
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = int32(cfg.MaxConns)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	query := `
	SELECT id::text, name, display_name, slug, parent_id::text, sort_order,
	       show_in_navigation, is_featured, image_url, description
	FROM categories
	ORDER BY sort_order, name, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}

	categories, err := pgx.CollectRows(rows, scanCategory)
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}

	return validCategories(categories), nil
}

func (r *catalogRepository) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	query := `
	SELECT id::text, name, slug, description, image_url, is_featured
	FROM collections
	ORDER BY sort_order, name, id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query collections: %w", err)
	}

	collections, err := pgx.CollectRows(rows, scanCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to scan collections: %w", err)
	}

	return validCollections(collections), nil
}

func scanCategory(row pgx.CollectableRow) (domain.Category, error) {
	var (
		c           domain.Category
		displayName *string
		sortOrder   *int
		imageURL    *string
		description *string
		showInNav   *bool
		featured    *bool
	)

	err := row.Scan(
		&c.ID,
		&c.Name,
		&displayName,
		&c.Slug,
		&c.ParentID,
		&sortOrder,
		&showInNav,
		&featured,
		&imageURL,
		&description,
	)
	if err != nil {
		return c, err
	}

	c.DisplayName = deref(displayName)
	c.ImageURL = deref(imageURL)
	c.Description = deref(description)
	if sortOrder != nil {
		c.SortOrder = *sortOrder
	}
	// a missing flag means the category is shown, matching the column default
	c.ShowInNavigation = showInNav == nil || *showInNav
	c.IsFeatured = featured != nil && *featured

	return c, nil
}

func scanCollection(row pgx.CollectableRow) (domain.Collection, error) {
	var (
		c           domain.Collection
		description *string
		imageURL    *string
		featured    *bool
	)

	err := row.Scan(&c.ID, &c.Name, &c.Slug, &description, &imageURL, &featured)
	if err != nil {
		return c, err
	}

	c.Description = deref(description)
	c.ImageURL = deref(imageURL)
	c.IsFeatured = featured != nil && *featured

	return c, nil
}

func validCategories(categories []domain.Category) []domain.Category {
	valid := make([]domain.Category, 0, len(categories))
	for _, c := range categories {
		if err := c.Validate(); err != nil {
			log.Warnf("⚠️ Skipping category row: %v", err)
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

func validCollections(collections []domain.Collection) []domain.Collection {
	valid := make([]domain.Collection, 0, len(collections))
	for _, c := range collections {
		if err := c.Validate(); err != nil {
			log.Warnf("⚠️ Skipping collection row: %v", err)
			continue
		}
		valid = append(valid, c)
	}
	return valid
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
