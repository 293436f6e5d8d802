package endpoint

import (
	"context"
	"strings"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"
	"resty.dev/v3"
)

// Supplier hands out REST base URLs in round-robin order
type Supplier interface {
	Get() string
	Len() int
}

type supplier struct {
	endpoints []string
	current   int
	mutex     sync.Mutex
}

// Prober reports whether an endpoint answers. The default probe issues a
// GET against the REST root with the project API key.
type Prober func(ctx context.Context, baseURL string) bool

// NewSupplier probes the primary URL and every replica in parallel and keeps
// the healthy ones. The primary is kept when nothing answers so callers
// always get a URL to surface errors against.
func NewSupplier(ctx context.Context, primary string, replicas []string, probe Prober) Supplier {
	candidates := dedupe(append([]string{primary}, replicas...))
	if len(candidates) == 0 {
		return &supplier{endpoints: []string{}}
	}
	if len(candidates) == 1 || probe == nil {
		return &supplier{endpoints: candidates}
	}

	log.Infof("🔄 Probing %d REST endpoints in parallel...", len(candidates))

	healthy := make([]bool, len(candidates))
	semaphore := make(chan struct{}, 10)

	var wg sync.WaitGroup
	for i, baseURL := range candidates {
		wg.Add(1)

		go func(index int, baseURL string) {
			defer wg.Done()

			semaphore <- struct{}{}
			defer func() { <-semaphore }()

			if probe(ctx, baseURL) {
				healthy[index] = true
				log.Infof("✅ Endpoint %s is healthy", baseURL)
			} else {
				log.Warnf("❌ Endpoint %s is not answering, skipping", baseURL)
			}
		}(i, baseURL)
	}
	wg.Wait()

	// keep configuration order so the primary stays first
	endpoints := make([]string, 0, len(candidates))
	for i, ok := range healthy {
		if ok {
			endpoints = append(endpoints, candidates[i])
		}
	}

	if len(endpoints) == 0 {
		log.Warnf("⚠️ No REST endpoint answered, falling back to primary %s", candidates[0])
		endpoints = []string{candidates[0]}
	}

	log.Infof("✅ Endpoint supplier initialized with %d of %d endpoints", len(endpoints), len(candidates))

	return &supplier{endpoints: endpoints}
}

// Get returns the next endpoint in round-robin fashion
func (s *supplier) Get() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.endpoints) == 0 {
		return ""
	}

	endpoint := s.endpoints[s.current]
	s.current = (s.current + 1) % len(s.endpoints)

	return endpoint
}

func (s *supplier) Len() int {
	return len(s.endpoints)
}

// RESTProber checks an endpoint by requesting the PostgREST root
func RESTProber(apiKey string) Prober {
	client := resty.New().
		SetTimeout(5*time.Second).
		SetRetryCount(0).
		SetHeader("apikey", apiKey)

	return func(ctx context.Context, baseURL string) bool {
		resp, err := client.R().
			SetContext(ctx).
			Get(strings.TrimRight(baseURL, "/") + "/rest/v1/")

		if err != nil {
			log.Infof("Endpoint probe failed for %s: %v", baseURL, err)
			return false
		}

		if resp.StatusCode() >= 500 {
			log.Infof("Endpoint probe failed for %s with status: %s", baseURL, resp.Status())
			return false
		}

		return true
	}
}

func dedupe(urls []string) []string {
	seen := make(map[string]struct{}, len(urls))
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		u = strings.TrimRight(strings.TrimSpace(u), "/")
		if u == "" {
			continue
		}
		if _, ok := seen[u]; ok {
			continue
		}
		seen[u] = struct{}{}
		out = append(out, u)
	}
	return out
}
