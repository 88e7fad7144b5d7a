package renderer

import (
	"github.com/spaghettifunk/onyx/engine/assets"
	"github.com/spaghettifunk/onyx/engine/core"
)

// ImageSource provides CPU images by asset name.
type ImageSource interface {
	Resolve(name string) string
	LoadImage(name string, flipY bool) (*assets.ImageData, error)
}

// TextureCache shares one texture per asset path. Reloading never mutates a
// texture in place: a new one is uploaded and the old one disposed.
type TextureCache struct {
	backend  RendererBackend
	source   ImageSource
	flipY    bool
	textures map[string]*Texture
}

func NewTextureCache(backend RendererBackend, source ImageSource, flipY bool) *TextureCache {
	return &TextureCache{
		backend:  backend,
		source:   source,
		flipY:    flipY,
		textures: make(map[string]*Texture),
	}
}

// Acquire returns the cached texture for name, loading it on first use.
func (c *TextureCache) Acquire(name string) (*Texture, error) {
	key := c.source.Resolve(name)
	if t, ok := c.textures[key]; ok {
		return t, nil
	}
	t, err := c.load(key)
	if err != nil {
		return nil, err
	}
	c.textures[key] = t
	return t, nil
}

// Contains reports whether name is currently cached.
func (c *TextureCache) Contains(name string) bool {
	_, ok := c.textures[c.source.Resolve(name)]
	return ok
}

// Reload replaces a cached texture with one built from the current file.
// Names that are not cached are ignored. The old texture is only disposed
// once the new one uploaded successfully.
func (c *TextureCache) Reload(name string) (bool, error) {
	key := c.source.Resolve(name)
	old, ok := c.textures[key]
	if !ok {
		return false, nil
	}
	t, err := c.load(key)
	if err != nil {
		return false, err
	}
	c.textures[key] = t
	old.Dispose()
	core.LogInfo("texture %s reloaded", key)
	return true, nil
}

// Release disposes and forgets the texture for name.
func (c *TextureCache) Release(name string) {
	key := c.source.Resolve(name)
	if t, ok := c.textures[key]; ok {
		t.Dispose()
		delete(c.textures, key)
	}
}

func (c *TextureCache) Len() int {
	return len(c.textures)
}

// Dispose releases every cached texture. Safe to call more than once.
func (c *TextureCache) Dispose() {
	for key, t := range c.textures {
		t.Dispose()
		delete(c.textures, key)
	}
}

func (c *TextureCache) load(key string) (*Texture, error) {
	img, err := c.source.LoadImage(key, c.flipY)
	if err != nil {
		return nil, err
	}
	return NewTexture(c.backend, img)
}
