package background

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"face-synth/internal/postprocess"

	"github.com/rs/zerolog"
)

// Grey is the plate color used when no background image is available.
var Grey = color.NRGBA{R: 128, G: 128, B: 128, A: 255}

// Cache is a concurrency-safe cache of plates scaled to one resolution.
type Cache struct {
	mu     sync.RWMutex
	items  map[string]*image.NRGBA // nil marks a plate that failed to load
	index  *Index
	logger zerolog.Logger
}

// NewCache creates a plate cache backed by the given index.
func NewCache(index *Index, logger zerolog.Logger) *Cache {
	return &Cache{
		items:  make(map[string]*image.NRGBA),
		index:  index,
		logger: logger,
	}
}

// Plate returns the background for an iteration scaled to w x h. Missing or
// undecodable plates fall back to flat grey.
func (c *Cache) Plate(iteration, w, h int) *image.NRGBA {
	path, ok := c.index.Pick(iteration)
	if !ok {
		return Plain(w, h, Grey)
	}
	key := cacheKey(path, w, h)

	// Fast path: read lock
	c.mu.RLock()
	if img, exists := c.items[key]; exists {
		c.mu.RUnlock()
		return orGrey(img, w, h)
	}
	c.mu.RUnlock()

	// Slow path: load from disk
	img, err := Load(path)
	if err != nil {
		c.logger.Warn().Err(err).Str("path", path).Msg("Background plate unusable, using grey")
	} else {
		img = postprocess.Fit(img, w, h)
	}

	// Write lock with double-check
	c.mu.Lock()
	if cached, exists := c.items[key]; exists {
		c.mu.Unlock()
		return orGrey(cached, w, h)
	}
	c.items[key] = img
	c.mu.Unlock()

	return orGrey(img, w, h)
}

// Len returns the number of cached entries.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

func orGrey(img *image.NRGBA, w, h int) *image.NRGBA {
	if img == nil {
		return Plain(w, h, Grey)
	}
	return img
}

func cacheKey(path string, w, h int) string {
	return fmt.Sprintf("%s@%dx%d", path, w, h)
}
