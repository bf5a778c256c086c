// Package mutator implements the Mutator component (spec.md §4.6): pushing
// targets onto a virtual path's stack, and glob-driven removal with the
// safety check that rejects deleting anything that isn't an explicit
// mapping — which would otherwise silently orphan on-disk or inherited
// resources the view still shows.
package mutator

import (
	"fmt"
	"strings"

	"github.com/vpathfs/repository/internal/apperr"
	"github.com/vpathfs/repository/internal/children"
	"github.com/vpathfs/repository/internal/kvstore"
	"github.com/vpathfs/repository/internal/pathutil"
	"github.com/vpathfs/repository/internal/query"
	"github.com/vpathfs/repository/internal/targetstack"
)

// Mutator performs add/remove against a Store, using Query to resolve
// removal candidates and Children to gather a mapping's own recursive
// virtual descendants.
type Mutator struct {
	Store    kvstore.Store
	Query    *query.Engine
	Children *children.Enumerator
}

// New builds a Mutator over the given collaborators.
func New(store kvstore.Store, q *query.Engine, enum *children.Enumerator) *Mutator {
	return &Mutator{Store: store, Query: q, Children: enum}
}

// Add pushes target onto vpath's stack (spec.md §4.2, §4.6).
func (m *Mutator) Add(vpath string, target targetstack.Target) {
	targetstack.Push(m.Store, vpath, target)
}

// Remove executes glob query q, rejects it if it matches any non-mapping
// resource, and otherwise deletes every matched mapping along with each
// mapping's own recursive virtual descendants. It returns the number of
// store keys actually deleted.
func (m *Mutator) Remove(q string) (int, error) {
	trimmed := strings.TrimSpace(q)
	clean, err := pathutil.Sanitize(trimmed)
	if err != nil {
		return 0, fmt.Errorf("remove %q: %w", q, apperr.ErrInvalidPath)
	}
	if trimmed == "" || clean == "/" {
		return 0, fmt.Errorf("remove %q: root deletion is not permitted: %w", q, apperr.ErrInvalidPath)
	}

	matches, err := m.Query.Find(q)
	if err != nil {
		return 0, err
	}

	var mappings []string
	var nonMappings []string
	for _, match := range matches {
		if m.Store.Exists(match.VPath) {
			mappings = append(mappings, match.VPath)
		} else {
			nonMappings = append(nonMappings, match.VPath)
		}
	}

	if len(nonMappings) == 1 {
		return 0, fmt.Errorf("remove %q: %q is not a mapping: %w", q, nonMappings[0], apperr.ErrUnsupportedOperation)
	}
	if len(nonMappings) > 1 {
		return 0, fmt.Errorf("remove %q: %d matched resources are not mappings: %w", q, len(nonMappings), apperr.ErrUnsupportedOperation)
	}

	count := 0
	for _, vpath := range mappings {
		descendants, err := m.Children.RecursiveChildren(vpath)
		if err != nil {
			return count, err
		}
		for descendantVPath := range descendants {
			if m.Store.Exists(descendantVPath) && m.Store.Remove(descendantVPath) {
				count++
			}
		}
		if m.Store.Remove(vpath) {
			count++
		}
	}

	return count, nil
}
