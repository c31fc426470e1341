package workspace

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/aws-ros-dev/colcon-package-information/pkg/cache"
	pkgerrors "github.com/aws-ros-dev/colcon-package-information/pkg/errors"
	"github.com/aws-ros-dev/colcon-package-information/pkg/pkggraph"
)

// ignoreMarker stops the crawl from entering a directory tree.
const ignoreMarker = "COLCON_IGNORE"

// DiscoverOptions configures a workspace crawl.
type DiscoverOptions struct {
	// Parsers are the manifest parsers to try, in priority order.
	// DefaultParsers() when nil.
	Parsers []Parser

	// Concurrency bounds parallel manifest parsing. Defaults to 8.
	Concurrency int

	// Cache stores parsed descriptors keyed by the workspace root.
	// Nil disables caching.
	Cache cache.Cache

	// Refresh bypasses the cache for this crawl.
	Refresh bool
}

// Discover walks the workspace rooted at root and parses every package
// manifest it finds into descriptors, sorted by package path. The walk
// skips hidden directories and trees marked with COLCON_IGNORE, and
// does not descend below a directory that is itself a package.
func Discover(ctx context.Context, root string, opts DiscoverOptions) ([]*pkggraph.Descriptor, error) {
	if opts.Parsers == nil {
		opts.Parsers = DefaultParsers()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 8
	}

	key, err := cacheKey(root)
	if err != nil {
		return nil, err
	}
	if opts.Cache != nil && !opts.Refresh {
		if descs, ok := fromCache(ctx, opts.Cache, key); ok {
			return descs, nil
		}
	}

	manifests, err := findManifests(root, opts.Parsers)
	if err != nil {
		return nil, err
	}

	var (
		mu          sync.Mutex
		descriptors []*pkggraph.Descriptor
	)
	p := pool.New().WithMaxGoroutines(opts.Concurrency).WithErrors().WithContext(ctx)
	for _, m := range manifests {
		p.Go(func(ctx context.Context) error {
			desc, err := m.parser.Parse(m.path)
			if err != nil {
				return err
			}
			mu.Lock()
			descriptors = append(descriptors, desc)
			mu.Unlock()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(descriptors, func(i, j int) bool {
		return descriptors[i].Path < descriptors[j].Path
	})

	if opts.Cache != nil {
		toCache(ctx, opts.Cache, key, descriptors)
	}
	return descriptors, nil
}

type manifest struct {
	path   string
	parser Parser
}

// findManifests walks the tree collecting manifest files. Parsing is
// deferred so it can run concurrently.
func findManifests(root string, parsers []Parser) ([]manifest, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.ErrCodeInvalidPath, err, "workspace root %s", root)
	}
	if !info.IsDir() {
		return nil, pkgerrors.New(pkgerrors.ErrCodeInvalidPath, "workspace root %s is not a directory", root)
	}

	var manifests []manifest
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if name := d.Name(); path != root && strings.HasPrefix(name, ".") {
			return filepath.SkipDir
		}
		if _, err := os.Stat(filepath.Join(path, ignoreMarker)); err == nil {
			return filepath.SkipDir
		}
		entries, err := os.ReadDir(path)
		if err != nil {
			return err
		}
		for _, p := range parsers {
			for _, e := range entries {
				if !e.IsDir() && p.Supports(e.Name()) {
					manifests = append(manifests, manifest{
						path:   filepath.Join(path, e.Name()),
						parser: p,
					})
					// A package root: nested packages are not crawled.
					return filepath.SkipDir
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return manifests, nil
}

func cacheKey(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.ErrCodeInvalidPath, err, "resolve %s", root)
	}
	return cache.Key("discover", abs), nil
}

func fromCache(ctx context.Context, c cache.Cache, key string) ([]*pkggraph.Descriptor, bool) {
	data, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return nil, false
	}
	var descs []*pkggraph.Descriptor
	if err := json.Unmarshal(data, &descs); err != nil {
		return nil, false
	}
	return descs, true
}

func toCache(ctx context.Context, c cache.Cache, key string, descs []*pkggraph.Descriptor) {
	data, err := json.Marshal(descs)
	if err != nil {
		return
	}
	// Cache writes are best effort: a failed write only costs a re-crawl.
	_ = c.Set(ctx, key, data, cache.DefaultTTL)
}
