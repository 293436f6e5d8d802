package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"storefront/catalog/internal/config"
	"storefront/catalog/internal/domain"
	"storefront/catalog/internal/endpoint"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const (
	categoriesTable  = "categories"
	collectionsTable = "collections"

	categoryColumns   = "id,name,display_name,slug,parent_id,sort_order,show_in_navigation,is_featured,image_url,description"
	collectionColumns = "id,name,slug,description,image_url,is_featured"
	defaultOrder      = "sort_order.asc,name.asc,id.asc" // id keeps offset paging stable across ties
)

// ErrCircuitOpen is returned while requests are suspended after the API
// reported too many requests.
var ErrCircuitOpen = errors.New("supabase circuit breaker is open")

// SupabaseClient reads complete catalog tables over the hosted Postgres REST API
type SupabaseClient interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
}

type supabaseClient struct {
	rl         ratelimit.Limiter
	apiKey     string
	pageSize   int
	httpClient *resty.Client
	endpoints  endpoint.Supplier

	// Circuit breaker for rate limiting
	circuitBreakerMutex sync.RWMutex
	suspendedUntil      time.Time
	circuitBreakerDelay time.Duration
}

func NewSupabaseClient(cfg config.SupabaseConfig, endpoints endpoint.Supplier) SupabaseClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(time.Second).
		SetRetryMaxWaitTime(5*time.Second).
		SetHeader("apikey", cfg.APIKey).
		SetHeader("Authorization", "Bearer "+cfg.APIKey).
		SetHeader("Accept", "application/json")

	rl := ratelimit.NewUnlimited()
	if cfg.MaxRequestsPerSecond > 0 {
		rl = ratelimit.New(cfg.MaxRequestsPerSecond)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = 1000
	}

	delay := time.Duration(cfg.CooldownSeconds) * time.Second
	if delay <= 0 {
		delay = time.Minute
	}

	return &supabaseClient{
		rl:                  rl,
		apiKey:              cfg.APIKey,
		pageSize:            pageSize,
		httpClient:          client,
		endpoints:           endpoints,
		circuitBreakerDelay: delay,
	}
}

func (c *supabaseClient) ListCategories(ctx context.Context) ([]domain.Category, error) {
	rows, err := fetchAll[categoryRow](ctx, c, categoriesTable, categoryColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	categories := make([]domain.Category, 0, len(rows))
	for _, row := range rows {
		category := row.toDomain()
		if err := category.Validate(); err != nil {
			log.Warnf("⚠️ Skipping category row: %v", err)
			continue
		}
		categories = append(categories, category)
	}

	log.Debugf("Fetched %d categories", len(categories))
	return categories, nil
}

func (c *supabaseClient) ListCollections(ctx context.Context) ([]domain.Collection, error) {
	rows, err := fetchAll[collectionRow](ctx, c, collectionsTable, collectionColumns)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch collections: %w", err)
	}

	collections := make([]domain.Collection, 0, len(rows))
	for _, row := range rows {
		collection := row.toDomain()
		if err := collection.Validate(); err != nil {
			log.Warnf("⚠️ Skipping collection row: %v", err)
			continue
		}
		collections = append(collections, collection)
	}

	log.Debugf("Fetched %d collections", len(collections))
	return collections, nil
}

// fetchAll pages through a table until a short page is returned. Tree
// resolution needs every ancestor in memory, so partial results are never
// returned.
func fetchAll[T any](ctx context.Context, c *supabaseClient, table, columns string) ([]T, error) {
	var all []T
	for offset := 0; ; offset += c.pageSize {
		var page []T
		if err := c.fetchPage(ctx, table, columns, offset, &page); err != nil {
			return nil, fmt.Errorf("page at offset %d: %w", offset, err)
		}

		all = append(all, page...)
		if len(page) < c.pageSize {
			return all, nil
		}
	}
}

func (c *supabaseClient) fetchPage(ctx context.Context, table, columns string, offset int, result any) error {
	if c.isCircuitBreakerOpen() {
		remaining := c.getRemainingCircuitBreakerTime()
		log.Debugf("🚫 Request blocked by circuit breaker. Remaining time: %v", remaining.Round(time.Second))
		return fmt.Errorf("%w: requests disabled for %v more", ErrCircuitOpen, remaining.Round(time.Second))
	}

	attempts := max(1, c.endpoints.Len())
	for attempt := 0; attempt < attempts; attempt++ {
		baseURL := c.endpoints.Get()
		if baseURL == "" {
			return fmt.Errorf("no REST endpoint configured")
		}

		c.rl.Take()

		resp, err := c.httpClient.R().
			SetContext(ctx).
			SetQueryParams(map[string]string{
				"select": columns,
				"order":  defaultOrder,
				"offset": strconv.Itoa(offset),
				"limit":  strconv.Itoa(c.pageSize),
			}).
			SetResult(result).
			Get(strings.TrimRight(baseURL, "/") + "/rest/v1/" + table)

		if err != nil {
			if ctx.Err() != nil {
				return fmt.Errorf("request cancelled: %w", ctx.Err())
			}
			return fmt.Errorf("failed to fetch %s: %w", table, err)
		}

		if resp.StatusCode() == http.StatusTooManyRequests {
			log.Warnf("🚫 Rate limit exceeded on %s", baseURL)
			if attempt+1 < attempts {
				log.Infof("🔄 Switching to next REST endpoint...")
				continue
			}
			c.triggerCircuitBreaker()
			return fmt.Errorf("%w: rate limited by %s", ErrCircuitOpen, baseURL)
		}

		if resp.IsError() {
			return fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
		}

		return nil
	}

	return nil
}

func (c *supabaseClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.suspendedUntil)
	wasTriggered := !c.suspendedUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		// Double-check after acquiring write lock
		if !c.suspendedUntil.IsZero() && now.After(c.suspendedUntil) {
			c.suspendedUntil = time.Time{}
			log.Infof("✅ Circuit breaker automatically re-enabled - requests are now allowed")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *supabaseClient) triggerCircuitBreaker() {
	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.suspendedUntil = time.Now().Add(c.circuitBreakerDelay)
	log.Warnf("🚫 Circuit breaker activated! All requests disabled until %v",
		c.suspendedUntil.Format("15:04:05"))
}

func (c *supabaseClient) getRemainingCircuitBreakerTime() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.suspendedUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}
