// Package cache stores author entities encountered while rendering, so that
// profile views elsewhere can reuse them without another round trip.
package cache

import (
	"context"
	"log"

	"heron-feed/internal/models"
	"heron-feed/internal/utils"
)

// AuthorCache is the entity cache contract. Backends are selected by
// configuration.
type AuthorCache interface {
	Put(ctx context.Context, author *models.Author) error
	Get(ctx context.Context, id string) (*models.Author, error)
}

// Sink adapts an AuthorCache to the renderer's fire-and-forget author sink:
// writes happen in the background and failures are logged, never surfaced.
type Sink struct {
	cache   AuthorCache
	metrics *utils.MetricsCollector
}

// NewSink wraps a cache for use as a render.AuthorSink.
func NewSink(cache AuthorCache, metrics *utils.MetricsCollector) *Sink {
	return &Sink{cache: cache, metrics: metrics}
}

// Cache stores the author opportunistically.
func (s *Sink) Cache(author *models.Author) {
	if author == nil || author.ID == "" {
		return
	}
	go func() {
		if err := s.cache.Put(context.Background(), author); err != nil {
			log.Printf("author cache: failed to store %s: %v", author.ID, err)
			if s.metrics != nil {
				s.metrics.IncrementErrors()
			}
		}
	}()
}
