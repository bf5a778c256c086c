// Package query implements the QueryEngine component (spec.md §4.5):
// literal lookups resolve directly, dynamic glob queries are evaluated
// against the fused child tree rooted at the query's static prefix.
package query

import (
	"sort"

	"github.com/vpathfs/repository/internal/children"
	"github.com/vpathfs/repository/internal/globutil"
	"github.com/vpathfs/repository/internal/resolver"
)

// Engine evaluates literal and glob queries against a repository's fused
// virtual/on-disk namespace.
type Engine struct {
	Resolver *resolver.Resolver
	Children *children.Enumerator
}

// New builds a query Engine over the given collaborators.
func New(res *resolver.Resolver, enum *children.Enumerator) *Engine {
	return &Engine{Resolver: res, Children: enum}
}

// Find evaluates q as a "glob" language query: literal unless it contains
// glob metacharacters. It returns every matching (virtual path, filesystem
// path) pair, sorted by virtual path.
func (e *Engine) Find(q string) ([]children.Child, error) {
	if !globutil.IsDynamic(q) {
		return e.FindLiteral(q)
	}
	return e.findGlob(q)
}

// FindLiteral resolves q exactly, ignoring any glob metacharacters it may
// contain — the "literal" query language of spec.md §4.7.
func (e *Engine) FindLiteral(q string) ([]children.Child, error) {
	results, err := e.Resolver.Resolve(q, true)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, nil
	}
	return []children.Child{{VPath: q, FsPath: results[0]}}, nil
}

func (e *Engine) findGlob(q string) ([]children.Child, error) {
	base := globutil.StaticPrefix(q)
	descendants, err := e.Children.RecursiveChildren(base)
	if err != nil {
		return nil, err
	}

	var matches []children.Child
	for vpath, fsPath := range descendants {
		if globutil.Match(vpath, q) {
			matches = append(matches, children.Child{VPath: vpath, FsPath: fsPath})
		}
	}
	sort.Slice(matches, func(i, j int) bool { return matches[i].VPath < matches[j].VPath })
	return matches, nil
}

// Contains reports whether q ("glob" language) matches anything,
// short-circuiting on the first match for dynamic queries.
func (e *Engine) Contains(q string) (bool, error) {
	if !globutil.IsDynamic(q) {
		return e.ContainsLiteral(q)
	}

	base := globutil.StaticPrefix(q)
	descendants, err := e.Children.RecursiveChildren(base)
	if err != nil {
		return false, err
	}
	for vpath := range descendants {
		if globutil.Match(vpath, q) {
			return true, nil
		}
	}
	return false, nil
}

// ContainsLiteral reports whether q resolves to anything, bypassing glob
// detection.
func (e *Engine) ContainsLiteral(q string) (bool, error) {
	results, err := e.Resolver.Resolve(q, true)
	if err != nil {
		return false, err
	}
	return len(results) > 0, nil
}
