package container

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/sync/errgroup"

	"storefront/catalog/internal/api"
	"storefront/catalog/internal/client"
	"storefront/catalog/internal/config"
	"storefront/catalog/internal/endpoint"
	"storefront/catalog/internal/navigation"
	"storefront/catalog/internal/queue"
	"storefront/catalog/internal/repository"
	"storefront/catalog/internal/service"
	"storefront/catalog/internal/state"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const shutdownTimeout = 10 * time.Second

// Container holds all initialized components
type Container struct {
	Config *config.Config
	Source service.CatalogSource
	Queue  queue.Queue
	Store  state.Store

	Service *service.Service
	Server  *api.Server

	db    *pgxpool.Pool
	redis *redis.Client
}

// New creates a new container with all dependencies initialized
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	configureLogging(cfg.Log)

	container := &Container{
		Config: cfg,
	}

	source, err := container.newSource(ctx)
	if err != nil {
		return nil, err
	}
	container.Source = source

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.Database,
	})

	// Test connection
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		container.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	container.redis = rdb

	log.Info("✅ Connected to Redis successfully")

	redisQueue, err := queue.NewRedisQueue(ctx, rdb, cfg.Redis)
	if err != nil {
		container.Close()
		return nil, err
	}
	container.Queue = redisQueue

	store := state.NewRedisStore(rdb)
	container.Store = store

	builder := navigation.NewBuilder(navigation.Options{
		PrimaryKey:       cfg.Navigation.PrimaryKey,
		SecondaryKey:     cfg.Navigation.SecondaryKey,
		ItemLimit:        cfg.Navigation.ItemLimit,
		FallbackSubtitle: cfg.Navigation.FallbackSubtitle,
		FallbackImage:    cfg.Navigation.FallbackImage,
	})

	container.Service = service.NewService(
		source,
		builder,
		redisQueue,
		store,
		cfg.Redis.ConsumerGroup,
		cfg.Redis.MinIdleTime,
	)

	container.Server = api.NewServer(cfg.Server, cfg.Admin, container.Service)

	return container, nil
}

// newSource selects the catalog source by the configured driver
func (c *Container) newSource(ctx context.Context) (service.CatalogSource, error) {
	switch c.Config.Source.Driver {
	case config.SourceSupabase:
		supplier := endpoint.NewSupplier(
			ctx,
			c.Config.Supabase.URL,
			c.Config.Supabase.ReadReplicas,
			endpoint.RESTProber(c.Config.Supabase.APIKey),
		)
		log.Infof("📡 Using Supabase source with %d endpoint(s)", supplier.Len())
		return client.NewSupabaseClient(c.Config.Supabase, supplier), nil

	case config.SourcePostgres:
		db, err := repository.NewPool(ctx, c.Config.Database)
		if err != nil {
			return nil, err
		}
		c.db = db
		log.Info("✅ Connected to Postgres successfully")
		return repository.NewCatalogRepository(db), nil

	default:
		return nil, fmt.Errorf("unknown source driver: %q", c.Config.Source.Driver)
	}
}

func configureLogging(cfg config.LogConfig) {
	if cfg.JSON {
		log.SetFormatter(&log.JSONFormatter{})
	}

	level, err := log.ParseLevel(cfg.Level)
	if err != nil {
		log.Warnf("⚠️ Unknown log level %q, using info", cfg.Level)
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

// Run serves HTTP, processes rebuild tasks and refreshes periodically until
// the context is cancelled
func (c *Container) Run(ctx context.Context) error {
	g, ctx := errgroup.WithContext(ctx)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%d", c.Config.Server.Host, c.Config.Server.Port),
		Handler:           c.Server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g.Go(func() error {
		log.Infof("🚀 HTTP server listening on %s", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	// Run workers to process tasks
	g.Go(func() error {
		return c.Service.RunWorkers(ctx, c.Config.Rebuild.Workers)
	})

	g.Go(func() error {
		interval := time.Duration(c.Config.Rebuild.IntervalSeconds) * time.Second
		return c.Service.RunRefresher(ctx, interval)
	})

	g.Go(func() error {
		if _, err := c.Service.RequestRebuild(ctx, "startup"); err != nil {
			log.Errorf("❌ Failed to request startup rebuild: %v", err)
		}
		return nil
	})

	return g.Wait()
}

// Close performs cleanup when shutting down
func (c *Container) Close() error {
	log.Info("Shutting down container...")

	if c.db != nil {
		c.db.Close()
	}
	if c.redis != nil {
		if err := c.redis.Close(); err != nil {
			log.Warnf("⚠️ Failed to close Redis client: %v", err)
		}
	}

	log.Info("Container shut down successfully")
	return nil
}
