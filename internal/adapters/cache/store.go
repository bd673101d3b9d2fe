package cache

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/spf13/afero"

	"github.com/devbush/vid2srt/internal/domain"
	"github.com/devbush/vid2srt/internal/ports"
)

const memoryEntries = 64

// FileCache stores one meta.json per cache key below baseDir, fronted by a
// small in-memory LRU.
type FileCache struct {
	fs      afero.Fs
	baseDir string
	memory  *lru.Cache[string, *ports.CachedItem]
}

// NewFileCache creates a cache rooted at baseDir on the OS filesystem
func NewFileCache(baseDir string) *FileCache {
	return NewFileCacheFs(afero.NewOsFs(), baseDir)
}

// NewFileCacheFs creates a cache on the given filesystem
func NewFileCacheFs(fs afero.Fs, baseDir string) *FileCache {
	memory, _ := lru.New[string, *ports.CachedItem](memoryEntries)
	return &FileCache{
		fs:      fs,
		baseDir: baseDir,
		memory:  memory,
	}
}

type metaFile struct {
	Transcript *domain.Transcript `json:"transcript"`
	VideoPath  string             `json:"video_path"`
	CreatedAt  time.Time          `json:"created_at"`
	ExpiresAt  time.Time          `json:"expires_at"`
}

func (c *FileCache) entryDir(key string) string {
	return filepath.Join(c.baseDir, key)
}

func (c *FileCache) metaPath(key string) string {
	return filepath.Join(c.entryDir(key), "meta.json")
}

func (c *FileCache) Get(ctx context.Context, key string) (*ports.CachedItem, error) {
	if item, ok := c.memory.Get(key); ok {
		if time.Now().After(item.ExpiresAt) {
			c.memory.Remove(key)
			return nil, domain.ErrCacheExpired
		}
		return item, nil
	}

	data, err := afero.ReadFile(c.fs, c.metaPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var meta metaFile
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}

	if time.Now().After(meta.ExpiresAt) {
		return nil, domain.ErrCacheExpired
	}

	item := &ports.CachedItem{
		Transcript: meta.Transcript,
		VideoPath:  meta.VideoPath,
		CreatedAt:  meta.CreatedAt,
		ExpiresAt:  meta.ExpiresAt,
	}
	c.memory.Add(key, item)

	return item, nil
}

func (c *FileCache) Set(ctx context.Context, key string, item *ports.CachedItem) error {
	if err := c.fs.MkdirAll(c.entryDir(key), 0755); err != nil {
		return err
	}

	meta := metaFile{
		Transcript: item.Transcript,
		VideoPath:  item.VideoPath,
		CreatedAt:  item.CreatedAt,
		ExpiresAt:  item.ExpiresAt,
	}

	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return err
	}

	if err := afero.WriteFile(c.fs, c.metaPath(key), data, 0644); err != nil {
		return err
	}

	c.memory.Add(key, item)
	return nil
}

func (c *FileCache) Delete(ctx context.Context, key string) error {
	c.memory.Remove(key)
	return c.fs.RemoveAll(c.entryDir(key))
}

func (c *FileCache) CleanExpired(ctx context.Context) (int, error) {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	cleaned := 0
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		key := entry.Name()
		_, err := c.Get(ctx, key)
		if errors.Is(err, domain.ErrCacheExpired) {
			if err := c.Delete(ctx, key); err == nil {
				cleaned++
			}
		}
	}

	return cleaned, nil
}

func (c *FileCache) Clear(ctx context.Context) error {
	c.memory.Purge()

	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	for _, entry := range entries {
		if entry.IsDir() {
			_ = c.fs.RemoveAll(filepath.Join(c.baseDir, entry.Name()))
		}
	}

	return nil
}

func (c *FileCache) Stats(ctx context.Context) (itemCount int, totalSize int64, err error) {
	entries, err := afero.ReadDir(c.fs, c.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, 0, nil
		}
		return 0, 0, err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		itemCount++

		dirPath := filepath.Join(c.baseDir, entry.Name())
		_ = afero.Walk(c.fs, dirPath, func(path string, info os.FileInfo, err error) error {
			if err == nil && !info.IsDir() {
				totalSize += info.Size()
			}
			return nil
		})
	}

	return itemCount, totalSize, nil
}

var _ ports.TranscriptCache = (*FileCache)(nil)
