package vimeo

import (
	"sync"
	"time"

	"github.com/metafates/gache"
	"github.com/samber/mo"
	"github.com/vhls-cli/vhls/filesystem"
)

type posterData struct {
	Posters map[string]string `json:"posters"`
}

// posterCache persists oEmbed thumbnail URLs by video id.
type posterCache struct {
	internal *gache.Cache[*posterData]
	mu       sync.RWMutex
}

func newPosterCache(path string, lifetime time.Duration) *posterCache {
	return &posterCache{
		internal: gache.New[*posterData](
			&gache.Options{
				Path:       path,
				Lifetime:   lifetime,
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

func (c *posterCache) Get(id string) mo.Option[string] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[string]()
	}

	if poster, ok := data.Posters[id]; ok && poster != "" {
		return mo.Some(poster)
	}
	return mo.None[string]()
}

func (c *posterCache) Set(id, poster string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil || data.Posters == nil {
		data = &posterData{Posters: make(map[string]string)}
	}

	data.Posters[id] = poster
	return c.internal.Set(data)
}
