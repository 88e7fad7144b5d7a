package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/onyx/engine/core"
)

type AssetType int

const (
	AssetTypeNone AssetType = iota
	AssetTypeImage
	AssetTypeBitmapFont
)

type AssetInfo struct {
	Path       string
	Type       AssetType
	LastLoaded time.Time
}

// AssetManager indexes the asset directory and watches it for changes.
// Watching happens on a background goroutine; changed paths are only
// collected there and handed to the render thread through Drain, so no
// GPU work ever happens off the context thread.
type AssetManager struct {
	root    string
	assets  map[string]AssetInfo
	changed map[string]struct{}

	mutex sync.Mutex

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	started  bool
}

func NewAssetManager() (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		changed:  make(map[string]struct{}),
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Initialize indexes every asset below assetsDir and starts watching it.
func (am *AssetManager) Initialize(assetsDir string) error {
	if am.isClosed {
		return errors.New("asset manager already closed")
	}
	if am.started {
		return fmt.Errorf("asset manager already watching %s", am.root)
	}
	abs, err := filepath.Abs(assetsDir)
	if err != nil {
		return err
	}
	am.root = abs

	if err := am.watchRecursive(abs); err != nil {
		return err
	}
	am.started = true
	go am.start()

	core.LogInfo("asset manager watching %s (%d assets indexed)", abs, am.Len())
	return nil
}

// Resolve turns a path relative to the asset root into an absolute one.
func (am *AssetManager) Resolve(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(am.root, name)
}

// LoadImage loads an indexed image by its path relative to the asset root.
func (am *AssetManager) LoadImage(name string, flipY bool) (*ImageData, error) {
	path := am.Resolve(name)

	am.mutex.Lock()
	asset, exists := am.assets[path]
	if exists {
		asset.LastLoaded = time.Now()
		am.assets[path] = asset
	}
	am.mutex.Unlock()

	if !exists {
		return nil, fmt.Errorf("asset not found: %s", name)
	}
	if asset.Type != AssetTypeImage {
		return nil, fmt.Errorf("asset %s is not an image", name)
	}
	return LoadImage(path, flipY)
}

func (am *AssetManager) Lookup(name string) (AssetInfo, bool) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	info, ok := am.assets[am.Resolve(name)]
	return info, ok
}

func (am *AssetManager) Len() int {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	return len(am.assets)
}

// Drain returns, sorted, the absolute paths of assets changed since the last call.
func (am *AssetManager) Drain() []string {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	if len(am.changed) == 0 {
		return nil
	}
	paths := make([]string, 0, len(am.changed))
	for p := range am.changed {
		paths = append(paths, p)
	}
	for _, p := range paths {
		delete(am.changed, p)
	}
	sort.Strings(paths)
	return paths
}

// Shutdown stops the watcher. Safe to call more than once.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return nil
	}
	am.isClosed = true
	close(am.done)
	if !am.started {
		return am.fsnotify.Close()
	}
	<-am.stopped
	return nil
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {
		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			am.handleEvent(e)

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("asset watcher: %s", err)

		case <-am.done:
			am.fsnotify.Close()
			return
		}
	}
}

func (am *AssetManager) handleEvent(e fsnotify.Event) {
	if e.Op&fsnotify.Create != 0 {
		if fi, err := os.Stat(e.Name); err == nil && fi.IsDir() {
			if err := am.watchRecursive(e.Name); err != nil {
				core.LogWarn("failed to watch new directory %s: %s", e.Name, err)
			}
			return
		}
	}
	if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
		if am.indexFile(e.Name) {
			am.mutex.Lock()
			am.changed[e.Name] = struct{}{}
			am.mutex.Unlock()
			core.LogDebug("asset changed: %s", e.Name)
		}
	}
	// Can't stat a removed path, so always try to drop it from the index.
	if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
		am.mutex.Lock()
		delete(am.assets, e.Name)
		delete(am.changed, e.Name)
		am.mutex.Unlock()
	}
}

// watchRecursive adds all directories under the given one to the watch list
// and indexes the files found on the way.
func (am *AssetManager) watchRecursive(path string) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			return am.fsnotify.Add(walkPath)
		}
		am.indexFile(walkPath)
		return nil
	})
}

func (am *AssetManager) indexFile(path string) bool {
	assetType := DetermineAssetType(path)
	if assetType == AssetTypeNone {
		return false
	}
	am.mutex.Lock()
	defer am.mutex.Unlock()
	info := am.assets[path]
	info.Path = path
	info.Type = assetType
	am.assets[path] = info
	return true
}

func DetermineAssetType(path string) AssetType {
	switch filepath.Ext(path) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp":
		return AssetTypeImage
	case ".fnt":
		return AssetTypeBitmapFont
	default:
		return AssetTypeNone
	}
}
