package application

import (
	"context"

	"go.uber.org/zap"

	"github.com/devbush/vid2srt/internal/ports"
)

// CacheStats holds cache statistics
type CacheStats struct {
	ItemCount int
	TotalSize int64
}

// CacheService handles transcript cache management
type CacheService struct {
	cache  ports.TranscriptCache
	logger *zap.Logger
}

// NewCacheService creates a new cache service
func NewCacheService(cache ports.TranscriptCache, logger *zap.Logger) *CacheService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CacheService{cache: cache, logger: logger}
}

// Stats returns cache statistics
func (s *CacheService) Stats(ctx context.Context) (*CacheStats, error) {
	count, size, err := s.cache.Stats(ctx)
	if err != nil {
		return nil, err
	}
	return &CacheStats{
		ItemCount: count,
		TotalSize: size,
	}, nil
}

// CleanExpired removes expired cache entries
func (s *CacheService) CleanExpired(ctx context.Context) (int, error) {
	cleaned, err := s.cache.CleanExpired(ctx)
	if err != nil {
		return 0, err
	}
	s.logger.Debug("expired transcripts removed", zap.Int("count", cleaned))
	return cleaned, nil
}

// Clear removes all cache entries
func (s *CacheService) Clear(ctx context.Context) error {
	if err := s.cache.Clear(ctx); err != nil {
		return err
	}
	s.logger.Debug("transcript cache cleared")
	return nil
}
