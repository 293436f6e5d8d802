package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"storefront/catalog/internal/domain"
	"storefront/catalog/internal/domain/task"
	"storefront/catalog/internal/layout"
	"storefront/catalog/internal/navigation"
	"storefront/catalog/internal/queue"
	"storefront/catalog/internal/state"

	"golang.org/x/sync/errgroup"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// CatalogSource supplies complete category and collection snapshots
type CatalogSource interface {
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListCollections(ctx context.Context) ([]domain.Collection, error)
}

type Service struct {
	source      CatalogSource
	builder     *navigation.Builder
	queue       queue.Queue
	store       state.Store
	groupName   string
	minIdleTime time.Duration
	clock       func() time.Time

	rebuildMu sync.Mutex
}

func NewService(
	source CatalogSource,
	builder *navigation.Builder,
	queue queue.Queue,
	store state.Store,
	groupName string,
	minIdleTime int,
) *Service {
	if minIdleTime <= 0 {
		minIdleTime = 120
	}
	return &Service{
		source:      source,
		builder:     builder,
		queue:       queue,
		store:       store,
		groupName:   groupName,
		minIdleTime: time.Duration(minIdleTime) * time.Second,
		clock:       time.Now,
	}
}

// Snapshot reads categories and collections concurrently
func (s *Service) Snapshot(ctx context.Context) (*domain.Snapshot, error) {
	// taken before the reads so it never postdates the data
	snapshot := &domain.Snapshot{FetchedAt: s.clock().UTC()}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		categories, err := s.source.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("failed to list categories: %w", err)
		}
		snapshot.Categories = categories
		return nil
	})
	g.Go(func() error {
		collections, err := s.source.ListCollections(gctx)
		if err != nil {
			return fmt.Errorf("failed to list collections: %w", err)
		}
		snapshot.Collections = collections
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return snapshot, nil
}

// Derive computes everything the presentation layer reads from one snapshot
func (s *Service) Derive(snapshot *domain.Snapshot) (*state.Publication, error) {
	breadcrumbs, err := navigation.ResolveAllBreadcrumbs(snapshot.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve breadcrumbs: %w", err)
	}

	options, err := navigation.CategoryOptions(snapshot.Categories)
	if err != nil {
		return nil, fmt.Errorf("failed to build category options: %w", err)
	}

	return &state.Publication{
		Menus:        s.builder.BuildAllRootMenus(snapshot.Categories),
		PrimaryMenus: s.builder.BuildPrimaryMenus(snapshot.Categories),
		Layout:       layout.Select(snapshot.Collections),
		Breadcrumbs:  breadcrumbs,
		Options:      options,
		BuiltAt:      snapshot.FetchedAt,
	}, nil
}

// Rebuild fetches a fresh snapshot, derives menus and layout and publishes
// them. On failure the previous publication stays in place.
func (s *Service) Rebuild(ctx context.Context) error {
	s.rebuildMu.Lock()
	defer s.rebuildMu.Unlock()

	start := s.clock()

	snapshot, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	pub, err := s.Derive(snapshot)
	if err != nil {
		var cyclic *domain.CyclicHierarchyError
		if errors.As(err, &cyclic) {
			log.Errorf("❌ Category %s is part of a parent cycle, keeping previous navigation", cyclic.CategoryID)
		}
		return err
	}

	if err := s.store.Publish(ctx, pub); err != nil {
		return err
	}

	log.Infof("✅ Rebuilt navigation: %d categories, %d collections, %d menus in %v",
		len(snapshot.Categories), len(snapshot.Collections), len(pub.Menus), s.clock().Sub(start).Round(time.Millisecond))
	return nil
}

// RequestRebuild enqueues a rebuild for the workers
func (s *Service) RequestRebuild(ctx context.Context, reason string) (string, error) {
	msgID, err := s.queue.AddTask(ctx, &task.RebuildTask{
		Reason:      reason,
		RequestedAt: s.clock().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("failed to request rebuild: %w", err)
	}
	log.Infof("🔄 Rebuild requested (%s) as message %s", reason, msgID)
	return msgID, nil
}

// RunRefresher requests a rebuild on every tick until ctx is done
func (s *Service) RunRefresher(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if _, err := s.RequestRebuild(ctx, "schedule"); err != nil {
				log.Errorf("❌ Scheduled rebuild request failed: %v", err)
			}
		}
	}
}

func (s *Service) RunWorkers(ctx context.Context, numWorkers int) error {
	var wg sync.WaitGroup

	s.runWorkersForStream(ctx, &wg, numWorkers, queue.StreamName(task.RebuildTaskType), "rebuild")

	wg.Wait()
	return nil
}

func (s *Service) runWorkersForStream(ctx context.Context, wg *sync.WaitGroup, numWorkers int, streamName, workerType string) {
	// Auto-claimer for this stream
	wg.Add(1)
	go func() {
		defer wg.Done()
		ticker := time.NewTicker(s.minIdleTime)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				consumer := fmt.Sprintf("autoclaimer-%s-%d", workerType, time.Now().UnixNano())
				claimedMessages, err := s.queue.AutoClaim(ctx, s.groupName, consumer, streamName, s.minIdleTime)
				if err != nil {
					log.Errorf("❌ Failed to auto-claim messages for %s: %v", streamName, err)
					continue
				}
				if len(claimedMessages) > 0 {
					log.Infof("🔄 Auto-claimed %d messages from %s stream", len(claimedMessages), workerType)
					for _, msg := range claimedMessages {
						if err := s.processMessage(ctx, streamName, &msg); err != nil {
							log.Errorf("❌ Failed to process auto-claimed message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}
	}()

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			consumer := fmt.Sprintf("%s-worker-%d", workerType, workerID)
			log.Infof("🚀 Starting %s worker %d as consumer %s", workerType, workerID, consumer)
			for {
				select {
				case <-ctx.Done():
					log.Infof("🛑 %s worker %d stopping", workerType, workerID)
					return
				default:
					msg, err := s.queue.GetTask(ctx, s.groupName, consumer, streamName)
					if err != nil {
						if ctx.Err() != nil {
							continue
						}
						log.Errorf("❌ Failed to get task from %s: %v", streamName, err)
						s.pause(ctx, time.Second)
						continue
					}

					if msg != nil {
						if err := s.processMessage(ctx, streamName, msg); err != nil {
							log.Errorf("❌ Failed to process message %s: %v", msg.ID, err)
						}
					}
				}
			}
		}(i + 1)
	}
}

// processMessage acks only after a successful rebuild; failed messages stay
// pending and are picked up again by the auto-claimer.
func (s *Service) processMessage(ctx context.Context, streamName string, msg *redis.XMessage) error {
	taskType, ok := msg.Values["task_type"].(string)
	if !ok {
		return s.discard(ctx, streamName, msg, fmt.Errorf("invalid task type in message %s", msg.ID))
	}

	taskData, ok := msg.Values["task_data"].(string)
	if !ok {
		return s.discard(ctx, streamName, msg, fmt.Errorf("invalid task data in message %s", msg.ID))
	}

	switch taskType {
	case task.RebuildTaskType:
		rebuildTask, err := task.UnmarshalTask[task.RebuildTask]([]byte(taskData))
		if err != nil {
			return s.discard(ctx, streamName, msg, err)
		}

		if err := s.handleRebuild(ctx, rebuildTask); err != nil {
			return fmt.Errorf("failed to rebuild: %w", err)
		}

	default:
		return s.discard(ctx, streamName, msg, fmt.Errorf("unknown task type: %s", taskType))
	}

	if err := s.queue.AckTask(ctx, streamName, s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack message %s: %w", msg.ID, err)
	}

	return nil
}

// handleRebuild skips requests already covered by a newer publication
func (s *Service) handleRebuild(ctx context.Context, rebuildTask *task.RebuildTask) error {
	last, err := s.store.LastRebuild(ctx)
	if err != nil {
		return err
	}
	if !last.IsZero() && !rebuildTask.RequestedAt.IsZero() && last.After(rebuildTask.RequestedAt) {
		log.Debugf("Skipping %s rebuild requested at %v, already rebuilt at %v",
			rebuildTask.Reason, rebuildTask.RequestedAt, last)
		return nil
	}

	log.Infof("🔄 Rebuilding navigation (%s)", rebuildTask.Reason)
	return s.Rebuild(ctx)
}

// discard acks a message that can never succeed
func (s *Service) discard(ctx context.Context, streamName string, msg *redis.XMessage, cause error) error {
	log.Warnf("⚠️ Discarding message %s: %v", msg.ID, cause)
	if err := s.queue.AckTask(ctx, streamName, s.groupName, msg.ID); err != nil {
		return fmt.Errorf("failed to ack discarded message %s: %w", msg.ID, err)
	}
	return cause
}

func (s *Service) pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}
