// Package children implements the ChildEnumerator component (spec.md §4.4):
// it fuses on-disk directory listings under a virtual path's resolved
// filesystem targets with the store's own descendant key mappings, so that
// listing children sees both what's on disk and what's been virtually
// overlaid, with virtual entries shadowing on-disk ones at the same path.
package children

import (
	"sort"
	"strings"

	"github.com/spf13/afero"

	"github.com/vpathfs/repository/internal/kvstore"
	"github.com/vpathfs/repository/internal/pathutil"
	"github.com/vpathfs/repository/internal/resolver"
)

// Child is one fused child entry: a virtual path paired with the absolute
// filesystem path it resolves to (nil if known-virtual with no backing
// file).
type Child struct {
	VPath  string
	FsPath *string
}

// Enumerator fuses store descendants with on-disk listings.
type Enumerator struct {
	Store    kvstore.Store
	Fs       afero.Fs
	Resolver *resolver.Resolver
}

// New builds an Enumerator over the given collaborators.
func New(store kvstore.Store, fs afero.Fs, res *resolver.Resolver) *Enumerator {
	return &Enumerator{Store: store, Fs: fs, Resolver: res}
}

// DirectChildren returns the immediate fused children of vpath, sorted by
// virtual path.
func (e *Enumerator) DirectChildren(vpath string) ([]Child, error) {
	level, err := e.fuseLevel(vpath)
	if err != nil {
		return nil, err
	}
	return toSortedSlice(level), nil
}

// RecursiveChildren returns every fused descendant of vpath, keyed by
// virtual path, expanding each child that is itself backed by an on-disk
// directory or has further virtual descendants.
func (e *Enumerator) RecursiveChildren(vpath string) (map[string]*string, error) {
	result := make(map[string]*string)
	if err := e.walk(vpath, result); err != nil {
		return nil, err
	}
	return result, nil
}

// HasChildren is the short-circuit form: it only needs to know whether the
// immediate fused level is non-empty, so it never walks beyond one level.
func (e *Enumerator) HasChildren(vpath string) (bool, error) {
	level, err := e.fuseLevel(vpath)
	if err != nil {
		return false, err
	}
	return len(level) > 0, nil
}

func (e *Enumerator) walk(vpath string, result map[string]*string) error {
	level, err := e.fuseLevel(vpath)
	if err != nil {
		return err
	}

	for childVPath, fsPath := range level {
		result[childVPath] = fsPath

		if fsPath != nil {
			if isDir, _ := afero.IsDir(e.Fs, *fsPath); isDir {
				if err := e.walk(childVPath, result); err != nil {
					return err
				}
				continue
			}
		}
		if e.hasDescendantKeys(childVPath) {
			if err := e.walk(childVPath, result); err != nil {
				return err
			}
		}
	}
	return nil
}

// fuseLevel computes the one-level-deep fused child set of vpath: on-disk
// entries under every resolved filesystem path for vpath, overridden by any
// store key that is a direct virtual child of vpath.
func (e *Enumerator) fuseLevel(vpath string) (map[string]*string, error) {
	result := make(map[string]*string)

	resolved, err := e.Resolver.Resolve(vpath, false)
	if err != nil {
		return nil, err
	}
	for _, fsPath := range resolved {
		if fsPath == nil {
			continue
		}
		isDir, err := afero.IsDir(e.Fs, *fsPath)
		if err != nil || !isDir {
			continue
		}
		entries, err := afero.ReadDir(e.Fs, *fsPath)
		if err != nil {
			return nil, err
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
		for _, entry := range entries {
			childVPath := pathutil.Join(vpath, entry.Name())
			childFsPath := pathutil.Join(*fsPath, entry.Name())
			result[childVPath] = &childFsPath
		}
	}

	prefix := vpath
	if prefix != "/" {
		prefix += "/"
	}
	for _, k := range e.Store.Keys() {
		if k == vpath || !strings.HasPrefix(k, prefix) {
			continue
		}
		rel := strings.TrimPrefix(k, prefix)
		if strings.Contains(rel, "/") {
			continue // not a direct child
		}
		targets, err := e.Resolver.Resolve(k, true)
		if err != nil {
			return nil, err
		}
		var value *string
		if len(targets) > 0 {
			value = targets[0]
		}
		result[k] = value // virtual children shadow on-disk ones, spec.md §4.4 step 3
	}

	return result, nil
}

func (e *Enumerator) hasDescendantKeys(vpath string) bool {
	prefix := vpath
	if prefix != "/" {
		prefix += "/"
	}
	for _, k := range e.Store.Keys() {
		if strings.HasPrefix(k, prefix) {
			return true
		}
	}
	return false
}

func toSortedSlice(level map[string]*string) []Child {
	children := make([]Child, 0, len(level))
	for vpath, fsPath := range level {
		children = append(children, Child{VPath: vpath, FsPath: fsPath})
	}
	sort.Slice(children, func(i, j int) bool { return children[i].VPath < children[j].VPath })
	return children
}
