package service

import (
	"context"
	"fmt"

	"storefront/catalog/internal/domain"
)

// ensurePublished rebuilds synchronously when nothing was published yet,
// e.g. on a fresh Redis.
func (s *Service) ensurePublished(ctx context.Context) error {
	last, err := s.store.LastRebuild(ctx)
	if err != nil {
		return err
	}
	if !last.IsZero() {
		return nil
	}
	if err := s.Rebuild(ctx); err != nil {
		return fmt.Errorf("failed to build initial navigation: %w", err)
	}
	return nil
}

// Menus returns every root menu keyed by root slug
func (s *Service) Menus(ctx context.Context) (map[string]domain.NavigationMenu, error) {
	if err := s.ensurePublished(ctx); err != nil {
		return nil, err
	}
	return s.store.LoadMenus(ctx)
}

func (s *Service) Menu(ctx context.Context, rootSlug string) (domain.NavigationMenu, error) {
	if err := s.ensurePublished(ctx); err != nil {
		return domain.NavigationMenu{}, err
	}
	return s.store.LoadMenu(ctx, rootSlug)
}

// PrimaryMenus returns the two conventional menus keyed by navigation key
func (s *Service) PrimaryMenus(ctx context.Context) (map[string]domain.NavigationMenu, error) {
	if err := s.ensurePublished(ctx); err != nil {
		return nil, err
	}
	return s.store.LoadPrimaryMenus(ctx)
}

func (s *Service) Layout(ctx context.Context) (domain.LayoutPlan, error) {
	if err := s.ensurePublished(ctx); err != nil {
		return domain.LayoutPlan{}, err
	}
	return s.store.LoadLayout(ctx)
}

func (s *Service) Breadcrumb(ctx context.Context, categoryID string) (string, error) {
	if err := s.ensurePublished(ctx); err != nil {
		return "", err
	}
	return s.store.LoadBreadcrumb(ctx, categoryID)
}

func (s *Service) CategoryOptions(ctx context.Context) ([]domain.CategoryOption, error) {
	if err := s.ensurePublished(ctx); err != nil {
		return nil, err
	}
	return s.store.LoadOptions(ctx)
}
