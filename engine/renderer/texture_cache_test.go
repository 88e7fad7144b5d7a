package renderer_test

import (
	"errors"
	"testing"

	"github.com/spaghettifunk/onyx/engine/assets"
	"github.com/spaghettifunk/onyx/engine/renderer"
	"github.com/spaghettifunk/onyx/engine/renderer/renderertest"
)

var errMissing = errors.New("missing")

type fakeSource struct {
	images map[string]func() *assets.ImageData
	loads  map[string]int
	flips  []bool
}

func newFakeSource() *fakeSource {
	return &fakeSource{
		images: make(map[string]func() *assets.ImageData),
		loads:  make(map[string]int),
	}
}

func (s *fakeSource) Resolve(name string) string {
	return "/assets/" + name
}

func (s *fakeSource) LoadImage(name string, flipY bool) (*assets.ImageData, error) {
	s.loads[name]++
	s.flips = append(s.flips, flipY)
	fn, ok := s.images[name]
	if !ok {
		return nil, errMissing
	}
	return fn(), nil
}

func (s *fakeSource) put(name string, width, height int) {
	s.images[s.Resolve(name)] = func() *assets.ImageData { return solidImage(width, height, 4) }
}

func TestTextureCacheAcquireShares(t *testing.T) {
	b := renderertest.New()
	src := newFakeSource()
	src.put("logo.png", 2, 2)
	cache := renderer.NewTextureCache(b, src, true)

	first, err := cache.Acquire("logo.png")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	second, err := cache.Acquire("logo.png")
	if err != nil {
		t.Fatalf("Acquire: %v", err)
	}
	if first != second {
		t.Fatal("Acquire should return the cached texture")
	}
	if src.loads["/assets/logo.png"] != 1 {
		t.Fatalf("loads = %d, want 1", src.loads["/assets/logo.png"])
	}
	if len(src.flips) != 1 || !src.flips[0] {
		t.Fatalf("flipY not passed through: %v", src.flips)
	}
	if !cache.Contains("logo.png") || cache.Len() != 1 {
		t.Fatal("cache should contain logo.png")
	}
}

func TestTextureCacheAcquireError(t *testing.T) {
	cache := renderer.NewTextureCache(renderertest.New(), newFakeSource(), false)
	if _, err := cache.Acquire("nope.png"); !errors.Is(err, errMissing) {
		t.Fatalf("Acquire error = %v, want errMissing", err)
	}
	if cache.Len() != 0 {
		t.Fatal("failed load must not be cached")
	}
}

func TestTextureCacheReloadReplaces(t *testing.T) {
	b := renderertest.New()
	src := newFakeSource()
	src.put("logo.png", 2, 2)
	cache := renderer.NewTextureCache(b, src, false)

	old, _ := cache.Acquire("logo.png")
	oldHandle := old.Handle()

	src.put("logo.png", 4, 4)
	reloaded, err := cache.Reload("logo.png")
	if err != nil || !reloaded {
		t.Fatalf("Reload = %v, %v", reloaded, err)
	}

	cur, _ := cache.Acquire("logo.png")
	if cur == old || cur.Width() != 4 {
		t.Fatalf("cache still serves the old texture (%dx%d)", cur.Width(), cur.Height())
	}
	if old.Handle() != renderer.InvalidTextureHandle || b.Live[oldHandle] {
		t.Fatal("old texture not disposed after reload")
	}
}

func TestTextureCacheReloadKeepsOldOnFailure(t *testing.T) {
	b := renderertest.New()
	src := newFakeSource()
	src.put("logo.png", 2, 2)
	cache := renderer.NewTextureCache(b, src, false)
	old, _ := cache.Acquire("logo.png")

	delete(src.images, "/assets/logo.png")
	if _, err := cache.Reload("logo.png"); !errors.Is(err, errMissing) {
		t.Fatalf("Reload error = %v, want errMissing", err)
	}
	cur, _ := cache.Acquire("logo.png")
	if cur != old || old.Handle() == renderer.InvalidTextureHandle {
		t.Fatal("failed reload must keep the old texture alive")
	}
}

func TestTextureCacheReloadUncached(t *testing.T) {
	src := newFakeSource()
	src.put("logo.png", 2, 2)
	cache := renderer.NewTextureCache(renderertest.New(), src, false)

	reloaded, err := cache.Reload("logo.png")
	if err != nil || reloaded {
		t.Fatalf("Reload of uncached name = %v, %v", reloaded, err)
	}
	if src.loads["/assets/logo.png"] != 0 {
		t.Fatal("uncached name should not be loaded")
	}
}

func TestTextureCacheReleaseAndDispose(t *testing.T) {
	b := renderertest.New()
	src := newFakeSource()
	src.put("a.png", 1, 1)
	src.put("b.png", 1, 1)
	cache := renderer.NewTextureCache(b, src, false)
	_, _ = cache.Acquire("a.png")
	_, _ = cache.Acquire("b.png")

	cache.Release("a.png")
	cache.Release("a.png")
	if cache.Contains("a.png") || len(b.Live) != 1 {
		t.Fatalf("after Release: contains=%v live=%d", cache.Contains("a.png"), len(b.Live))
	}

	cache.Dispose()
	cache.Dispose()
	if cache.Len() != 0 || len(b.Live) != 0 {
		t.Fatalf("after Dispose: len=%d live=%d", cache.Len(), len(b.Live))
	}
	if len(b.Deleted) != 2 {
		t.Fatalf("deleted = %v, want two handles", b.Deleted)
	}
}
