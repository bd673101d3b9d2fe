package ports

import (
	"context"
	"time"

	"github.com/devbush/vid2srt/internal/domain"
)

// CachedItem represents a cached transcript for one video.
type CachedItem struct {
	Transcript *domain.Transcript
	VideoPath  string    // source video the transcript was recognized from
	CreatedAt  time.Time // when this item was cached
	ExpiresAt  time.Time // when this item should be considered stale
}

// TranscriptCache handles persistent caching of recognized transcripts,
// keyed by a video fingerprint.
type TranscriptCache interface {
	// Get retrieves a cached item, returning domain.ErrCacheMiss or
	// domain.ErrCacheExpired when unusable.
	Get(ctx context.Context, key string) (*CachedItem, error)

	// Set stores an item in the cache.
	Set(ctx context.Context, key string, item *CachedItem) error

	// Delete removes a specific item from the cache.
	Delete(ctx context.Context, key string) error

	// CleanExpired removes all expired items and returns the count removed.
	CleanExpired(ctx context.Context) (int, error)

	// Clear removes all cached items.
	Clear(ctx context.Context) error

	// Stats returns cache statistics: item count and total size in bytes.
	Stats(ctx context.Context) (itemCount int, totalSize int64, err error)
}
