// Package resolver implements the Resolver component of the repository
// engine (spec.md §4.3): given a virtual path, it produces an ordered list
// of filesystem paths by consulting exact matches in the store and, failing
// that, walking ancestor mappings so that a mapped directory implicitly
// exposes every descendant file beneath it.
package resolver

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/vpathfs/repository/internal/apperr"
	"github.com/vpathfs/repository/internal/kvstore"
	"github.com/vpathfs/repository/internal/pathutil"
	"github.com/vpathfs/repository/internal/targetstack"
)

// DefaultMaxLinkDepth bounds Link recursion (spec.md §9 design note: the
// source does not detect cycles, so an implementation should bound
// recursion depth).
const DefaultMaxLinkDepth = 32

// ErrLinkDepthExceeded is wrapped, together with apperr.ErrResourceNotFound,
// into the returned error when Link resolution recurses past MaxLinkDepth,
// standing in for a cycle.
var ErrLinkDepthExceeded = apperr.ErrLinkDepthExceeded

// Resolver resolves virtual paths against a Store, probing the filesystem
// through fs (an afero.Fs, so tests can substitute afero.NewMemMapFs()
// without touching disk).
type Resolver struct {
	Store         kvstore.Store
	Fs            afero.Fs
	BaseDirectory string
	MaxLinkDepth  int
	Logger        *logrus.Logger
}

// New builds a Resolver with DefaultMaxLinkDepth.
func New(store kvstore.Store, fs afero.Fs, baseDirectory string, logger *logrus.Logger) *Resolver {
	return &Resolver{
		Store:         store,
		Fs:            fs,
		BaseDirectory: baseDirectory,
		MaxLinkDepth:  DefaultMaxLinkDepth,
		Logger:        logger,
	}
}

// Resolve resolves vpath to an ordered list of absolute filesystem paths.
// A nil entry means "known-virtual, no backing file". If onlyFirst is true,
// the result is truncated to at most one entry once found.
func (r *Resolver) Resolve(vpath string, onlyFirst bool) ([]*string, error) {
	return r.resolve(vpath, onlyFirst, 0)
}

func (r *Resolver) resolve(vpath string, onlyFirst bool, depth int) ([]*string, error) {
	if depth > r.MaxLinkDepth {
		return nil, fmt.Errorf("resolving %q: %w: %w", vpath, apperr.ErrResourceNotFound, ErrLinkDepthExceeded)
	}

	if raw, ok := r.Store.Get(vpath); ok {
		return r.resolveExact(vpath, raw, onlyFirst, depth)
	}
	return r.resolveAncestors(vpath, onlyFirst)
}

func (r *Resolver) resolveExact(vpath string, raw []string, onlyFirst bool, depth int) ([]*string, error) {
	stack := targetstack.DecodeStack(raw)

	var results []*string
	for _, t := range stack {
		switch t.Kind {
		case targetstack.KindFsPath:
			abs := pathutil.Join(r.BaseDirectory, t.Value)
			results = append(results, &abs)
		case targetstack.KindLink:
			sub, err := r.resolve(t.Value, false, depth+1)
			if err != nil {
				return nil, err
			}
			results = append(results, sub...)
		}
		if onlyFirst && len(results) > 0 {
			break
		}
	}

	if onlyFirst && len(results) > 1 {
		results = results[:1]
	}
	if len(results) == 0 {
		// Known-virtual key with an empty stack: a single null result,
		// per spec.md §4.3 step 1.
		results = []*string{nil}
	}
	return results, nil
}

func (r *Resolver) resolveAncestors(vpath string, onlyFirst bool) ([]*string, error) {
	var results []*string

	for _, k := range sortedMostSpecificFirst(r.Store.Keys()) {
		if !pathutil.IsBasePath(k, vpath) {
			continue
		}

		base := k
		if base != "/" {
			base += "/"
		}
		suffix := strings.TrimPrefix(vpath, base)

		raw, _ := r.Store.Get(k)
		for _, t := range targetstack.DecodeStack(raw) {
			switch t.Kind {
			case targetstack.KindFsPath:
				candidate := pathutil.Join(r.BaseDirectory, t.Value, suffix)
				if ok, _ := afero.Exists(r.Fs, candidate); ok {
					results = append(results, &candidate)
					if onlyFirst {
						return results, nil
					}
				}
			case targetstack.KindLink:
				// Preserved verbatim from the source behavior this engine
				// is modeled on: the link's target is appended without an
				// existence check (spec.md §9).
				linkTarget := t.Value
				results = append(results, &linkTarget)
				if r.Logger != nil {
					r.Logger.WithFields(logrus.Fields{
						"vpath":  vpath,
						"key":    k,
						"target": linkTarget,
					}).Debug("ancestor link target not existence-checked")
				}
				if onlyFirst {
					return results, nil
				}
			}
		}
	}

	return results, nil
}

// sortedMostSpecificFirst orders keys by descending segment-length
// specificity, breaking ties lexicographically, per the §9 design note: the
// source relies on reverse store-key order to let deeper mappings shadow
// shallower ones, which is fragile unless the store itself returns sorted
// or insertion-ordered keys.
func sortedMostSpecificFirst(keys []string) []string {
	sorted := make([]string, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		di, dj := pathutil.Depth(sorted[i]), pathutil.Depth(sorted[j])
		if di != dj {
			return di > dj
		}
		return sorted[i] < sorted[j]
	})
	return sorted
}
