package catalog

import (
	"context"
	"sync"
	"time"

	log "github.com/carousell/ct-go/pkg/logger/log_context"
	"github.com/todomarket/whatsapp-bot/internal/config"
	"github.com/todomarket/whatsapp-bot/internal/repo/metacatalog"
	"golang.org/x/sync/singleflight"
)

// Store hands out the current catalog snapshot, refreshing it from the
// catalog API when the cached one is absent or past its TTL.
//
// Concurrent callers hitting a cold or expired cache are coalesced into
// a single in-flight fetch; at most one upstream request runs per
// refresh window. A fetch failure degrades to the stale snapshot when
// one exists, or to the hardcoded fallback list when none does. The
// fallback snapshot is not stored, so the next access retries the
// fetch.
type Store interface {
	Get(ctx context.Context) (*Snapshot, error)
}

type store struct {
	client     metacatalog.Client
	classifier *Classifier
	catalogID  string
	ttl        time.Duration
	now        func() time.Time

	mu      sync.RWMutex
	current *Snapshot
	group   singleflight.Group
}

func NewStore(conf *config.Config, client metacatalog.Client, classifier *Classifier) Store {
	return &store{
		client:     client,
		classifier: classifier,
		catalogID:  conf.Catalog.CatalogID,
		ttl:        conf.Catalog.CacheTTL,
		now:        time.Now,
	}
}

func (s *store) Get(ctx context.Context) (*Snapshot, error) {
	if current := s.snapshot(); current != nil && !current.expired(s.now(), s.ttl) {
		return current, nil
	}

	v, err, _ := s.group.Do("refresh", func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Snapshot), nil
}

func (s *store) snapshot() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *store) refresh(ctx context.Context) (*Snapshot, error) {
	// A caller that waited on an earlier flight may land here after the
	// snapshot was already replaced.
	if current := s.snapshot(); current != nil && !current.expired(s.now(), s.ttl) {
		return current, nil
	}

	products, err := s.client.ListProducts(ctx, s.catalogID)
	if err != nil {
		if current := s.snapshot(); current != nil {
			log.Warnw(ctx, "catalog fetch failed, serving stale snapshot",
				"error", err,
				"fetched_at", current.FetchedAt)
			return current, nil
		}
		log.Warnw(ctx, "catalog fetch failed with no snapshot, serving fallback products", "error", err)
		return NewSnapshot(s.now(), s.classifier, fallbackProducts()), nil
	}

	snapshot := NewSnapshot(s.now(), s.classifier, products)
	s.mu.Lock()
	s.current = snapshot
	s.mu.Unlock()

	log.Infow(ctx, "catalog snapshot refreshed",
		"products", len(products),
		"categories", len(snapshot.Categories()))
	return snapshot, nil
}
