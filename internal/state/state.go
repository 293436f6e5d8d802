package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"storefront/catalog/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyMenus        = "storefront:nav:menus"       // hash: root slug -> menu JSON
	keyPrimaryMenus = "storefront:nav:primary"     // menu map JSON
	keyLayout       = "storefront:layout"          // layout plan JSON
	keyBreadcrumbs  = "storefront:nav:breadcrumbs" // hash: category id -> path
	keyOptions      = "storefront:nav:options"     // option list JSON
	keyLastRebuild  = "storefront:rebuild:last"    // RFC3339 timestamp
)

// Publication is everything derived by one rebuild
type Publication struct {
	Menus        map[string]domain.NavigationMenu
	PrimaryMenus map[string]domain.NavigationMenu
	Layout       domain.LayoutPlan
	Breadcrumbs  map[string]string
	Options      []domain.CategoryOption
	BuiltAt      time.Time
}

// Store publishes derived navigation models for the presentation layer
type Store interface {
	Publish(ctx context.Context, pub *Publication) error
	LoadMenus(ctx context.Context) (map[string]domain.NavigationMenu, error)
	LoadMenu(ctx context.Context, rootSlug string) (domain.NavigationMenu, error)
	LoadPrimaryMenus(ctx context.Context) (map[string]domain.NavigationMenu, error)
	LoadLayout(ctx context.Context) (domain.LayoutPlan, error)
	LoadBreadcrumb(ctx context.Context, categoryID string) (string, error)
	LoadOptions(ctx context.Context) ([]domain.CategoryOption, error)
	LastRebuild(ctx context.Context) (time.Time, error)
}

type redisStore struct {
	redisClient *redis.Client
}

func NewRedisStore(redisClient *redis.Client) Store {
	return &redisStore{
		redisClient: redisClient,
	}
}

// Publish replaces the previous publication in a single transaction so
// readers never observe a half-written rebuild.
func (s *redisStore) Publish(ctx context.Context, pub *Publication) error {
	menuFields, err := jsonFields(pub.Menus)
	if err != nil {
		return fmt.Errorf("failed to encode menus: %w", err)
	}
	primary, err := json.Marshal(pub.PrimaryMenus)
	if err != nil {
		return fmt.Errorf("failed to encode primary menus: %w", err)
	}
	layout, err := json.Marshal(pub.Layout)
	if err != nil {
		return fmt.Errorf("failed to encode layout: %w", err)
	}
	options, err := json.Marshal(pub.Options)
	if err != nil {
		return fmt.Errorf("failed to encode category options: %w", err)
	}

	_, err = s.redisClient.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, keyMenus, keyBreadcrumbs)
		if len(menuFields) > 0 {
			pipe.HSet(ctx, keyMenus, menuFields)
		}
		if len(pub.Breadcrumbs) > 0 {
			pipe.HSet(ctx, keyBreadcrumbs, stringFields(pub.Breadcrumbs))
		}
		pipe.Set(ctx, keyPrimaryMenus, primary, 0) // No expiration
		pipe.Set(ctx, keyLayout, layout, 0)
		pipe.Set(ctx, keyOptions, options, 0)
		pipe.Set(ctx, keyLastRebuild, pub.BuiltAt.UTC().Format(time.RFC3339Nano), 0)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to publish rebuild: %w", err)
	}
	return nil
}

func (s *redisStore) LoadMenus(ctx context.Context) (map[string]domain.NavigationMenu, error) {
	fields, err := s.redisClient.HGetAll(ctx, keyMenus).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load menus: %w", err)
	}

	menus := make(map[string]domain.NavigationMenu, len(fields))
	for slug, raw := range fields {
		var menu domain.NavigationMenu
		if err := json.Unmarshal([]byte(raw), &menu); err != nil {
			return nil, fmt.Errorf("failed to decode menu %s: %w", slug, err)
		}
		menus[slug] = menu
	}
	return menus, nil
}

func (s *redisStore) LoadMenu(ctx context.Context, rootSlug string) (domain.NavigationMenu, error) {
	var menu domain.NavigationMenu
	raw, err := s.redisClient.HGet(ctx, keyMenus, rootSlug).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return menu, fmt.Errorf("menu %s: %w", rootSlug, domain.ErrNotFound)
		}
		return menu, fmt.Errorf("failed to load menu %s: %w", rootSlug, err)
	}

	if err := json.Unmarshal([]byte(raw), &menu); err != nil {
		return menu, fmt.Errorf("failed to decode menu %s: %w", rootSlug, err)
	}
	return menu, nil
}

func (s *redisStore) LoadPrimaryMenus(ctx context.Context) (map[string]domain.NavigationMenu, error) {
	menus := map[string]domain.NavigationMenu{}
	if err := s.getJSON(ctx, keyPrimaryMenus, &menus); err != nil {
		return nil, err
	}
	return menus, nil
}

func (s *redisStore) LoadLayout(ctx context.Context) (domain.LayoutPlan, error) {
	var plan domain.LayoutPlan
	err := s.getJSON(ctx, keyLayout, &plan)
	return plan, err
}

func (s *redisStore) LoadBreadcrumb(ctx context.Context, categoryID string) (string, error) {
	path, err := s.redisClient.HGet(ctx, keyBreadcrumbs, categoryID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("category %s: %w", categoryID, domain.ErrNotFound)
		}
		return "", fmt.Errorf("failed to load breadcrumb for %s: %w", categoryID, err)
	}
	return path, nil
}

func (s *redisStore) LoadOptions(ctx context.Context) ([]domain.CategoryOption, error) {
	var options []domain.CategoryOption
	err := s.getJSON(ctx, keyOptions, &options)
	return options, err
}

// LastRebuild returns the zero time when nothing was published yet
func (s *redisStore) LastRebuild(ctx context.Context) (time.Time, error) {
	val, err := s.redisClient.Get(ctx, keyLastRebuild).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return time.Time{}, nil
		}
		return time.Time{}, fmt.Errorf("failed to get last rebuild time: %w", err)
	}

	builtAt, err := time.Parse(time.RFC3339Nano, val)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse last rebuild time %q: %w", val, err)
	}
	return builtAt, nil
}

func (s *redisStore) getJSON(ctx context.Context, key string, target any) error {
	raw, err := s.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s: %w", key, domain.ErrNotFound)
		}
		return fmt.Errorf("failed to get %s: %w", key, err)
	}
	if err := json.Unmarshal(raw, target); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}

func jsonFields[T any](values map[string]T) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(values))
	for key, value := range values {
		encoded, err := json.Marshal(value)
		if err != nil {
			return nil, err
		}
		fields[key] = string(encoded)
	}
	return fields, nil
}

func stringFields(values map[string]string) map[string]interface{} {
	fields := make(map[string]interface{}, len(values))
	for key, value := range values {
		fields[key] = value
	}
	return fields
}
