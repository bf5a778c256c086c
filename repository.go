package vpathrepo

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/vpathfs/repository/internal/apperr"
	"github.com/vpathfs/repository/internal/children"
	"github.com/vpathfs/repository/internal/kvstore"
	"github.com/vpathfs/repository/internal/mutator"
	"github.com/vpathfs/repository/internal/pathutil"
	"github.com/vpathfs/repository/internal/query"
	"github.com/vpathfs/repository/internal/resolver"
	"github.com/vpathfs/repository/internal/resource"
	"github.com/vpathfs/repository/internal/targetstack"
)

// AddSource is the argument to Add: either a FilesystemSource or a
// LinkSource. Its only method is unexported, so outside this package it is
// satisfied only by those two types or by types that embed them. Add
// rejects any other value, including nil and embedding types, with
// ErrUnsupportedResource.
type AddSource interface {
	isAddSource()
}

// FilesystemSource maps a virtual path onto RelativePath, resolved against
// the repository's base directory at lookup time.
type FilesystemSource struct {
	RelativePath string
}

func (FilesystemSource) isAddSource() {}

// LinkSource maps a virtual path onto another virtual path, TargetVPath,
// resolved through a second lookup.
type LinkSource struct {
	TargetVPath string
}

func (LinkSource) isAddSource() {}

// Repository is the virtual path repository: a canonical absolute-path
// namespace backed by a KeyValueStore of override stacks, resolved against
// an on-disk base directory through an afero.Fs.
type Repository struct {
	id            uuid.UUID
	baseDirectory string
	store         kvstore.Store
	fs            afero.Fs
	logger        *logrus.Logger

	resolver *resolver.Resolver
	children *children.Enumerator
	query    *query.Engine
	mutator  *mutator.Mutator
	factory  *resource.Factory

	mu sync.RWMutex
}

// New builds a Repository rooted at baseDirectory, applying any Options over
// the defaults: an in-memory store, the real OS filesystem, and a
// logrus.Logger at its default settings.
func New(baseDirectory string, opts ...Option) (*Repository, error) {
	clean, err := pathutil.Sanitize(baseDirectory)
	if err != nil {
		return nil, fmt.Errorf("new repository: base directory %w", err)
	}

	r := &Repository{
		id:            uuid.New(),
		baseDirectory: clean,
		store:         kvstore.NewMemStore(),
		fs:            afero.NewOsFs(),
		logger:        logrus.New(),
	}
	for _, opt := range opts {
		opt(r)
	}

	r.resolver = resolver.New(r.store, r.fs, r.baseDirectory, r.logger)
	r.children = children.New(r.store, r.fs, r.resolver)
	r.query = query.New(r.resolver, r.children)
	r.mutator = mutator.New(r.store, r.query, r.children)
	r.factory = resource.NewFactory(r.fs)

	return r, nil
}

// ID returns the repository's identity, used by Resource.AttachTo's weak
// back-reference.
func (r *Repository) ID() uuid.UUID {
	return r.id
}

// Get resolves vpath to its single highest-priority Resource.
func (r *Repository) Get(vpath string) (resource.Resource, error) {
	clean, err := pathutil.Sanitize(vpath)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", vpath, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results, err := r.resolver.Resolve(clean, true)
	if err != nil {
		return nil, fmt.Errorf("get %q: %w", vpath, err)
	}
	if len(results) == 0 {
		return nil, fmt.Errorf("get %q: %w", vpath, apperr.ErrResourceNotFound)
	}

	res := r.factory.Create(results[0], clean)
	res.AttachTo(r.id, clean)
	return res, nil
}

// Find evaluates query q in the given lang ("glob", "literal", or "" which
// defaults to "glob") and returns every matching Resource, sorted by virtual
// path.
func (r *Repository) Find(q, lang string) ([]resource.Resource, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []children.Child
	var err error
	switch lang {
	case "", "glob":
		matches, err = r.query.Find(q)
	case "literal":
		matches, err = r.query.FindLiteral(q)
	default:
		return nil, fmt.Errorf("find %q: language %q: %w", q, lang, apperr.ErrUnsupportedLanguage)
	}
	if err != nil {
		return nil, fmt.Errorf("find %q: %w", q, err)
	}

	resources := make([]resource.Resource, 0, len(matches))
	for _, m := range matches {
		res := r.factory.Create(m.FsPath, m.VPath)
		res.AttachTo(r.id, m.VPath)
		resources = append(resources, res)
	}
	return resources, nil
}

// Contains reports whether query q (in lang "glob", "literal", or "")
// matches anything.
func (r *Repository) Contains(q, lang string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	switch lang {
	case "", "glob":
		return r.query.Contains(q)
	case "literal":
		return r.query.ContainsLiteral(q)
	default:
		return false, fmt.Errorf("contains %q: language %q: %w", q, lang, apperr.ErrUnsupportedLanguage)
	}
}

// ListChildren returns the fused direct children of vpath as Resources,
// sorted by virtual path.
func (r *Repository) ListChildren(vpath string) ([]resource.Resource, error) {
	clean, err := pathutil.Sanitize(vpath)
	if err != nil {
		return nil, fmt.Errorf("list children of %q: %w", vpath, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.mustResolve(clean); err != nil {
		return nil, fmt.Errorf("list children of %q: %w", vpath, err)
	}

	level, err := r.children.DirectChildren(clean)
	if err != nil {
		return nil, fmt.Errorf("list children of %q: %w", vpath, err)
	}

	resources := make([]resource.Resource, 0, len(level))
	for _, c := range level {
		res := r.factory.Create(c.FsPath, c.VPath)
		res.AttachTo(r.id, c.VPath)
		resources = append(resources, res)
	}
	return resources, nil
}

// HasChildren reports whether vpath has any fused direct child.
func (r *Repository) HasChildren(vpath string) (bool, error) {
	clean, err := pathutil.Sanitize(vpath)
	if err != nil {
		return false, fmt.Errorf("has children of %q: %w", vpath, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if err := r.mustResolve(clean); err != nil {
		return false, fmt.Errorf("has children of %q: %w", vpath, err)
	}
	return r.children.HasChildren(clean)
}

// mustResolve reports ErrResourceNotFound if vpath is neither an explicit
// mapping nor resolvable through ancestor inheritance.
func (r *Repository) mustResolve(vpath string) error {
	if r.store.Exists(vpath) {
		return nil
	}
	results, err := r.resolver.Resolve(vpath, true)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return apperr.ErrResourceNotFound
	}
	return nil
}

// Add pushes source onto vpath's override stack as the new
// highest-priority target.
func (r *Repository) Add(vpath string, source AddSource) error {
	clean, err := pathutil.Sanitize(vpath)
	if err != nil {
		return fmt.Errorf("add %q: %w", vpath, err)
	}

	var target targetstack.Target
	switch s := source.(type) {
	case FilesystemSource:
		target = targetstack.FsPath(s.RelativePath)
	case LinkSource:
		linkTarget, err := pathutil.Sanitize(s.TargetVPath)
		if err != nil {
			return fmt.Errorf("add %q: link target %w", vpath, err)
		}
		target = targetstack.Link(linkTarget)
	default:
		return fmt.Errorf("add %q: %w", vpath, apperr.ErrUnsupportedResource)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.mutator.Add(clean, target)
	r.logger.WithFields(logrus.Fields{"vpath": clean}).Debug("mapping added")
	return nil
}

// Remove evaluates glob query q and deletes every matched mapping along
// with its own recursive virtual descendants, returning the number of store
// keys deleted.
func (r *Repository) Remove(q string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	count, err := r.mutator.Remove(q)
	if err != nil {
		return count, fmt.Errorf("remove %q: %w", q, err)
	}
	r.logger.WithFields(logrus.Fields{"query": q, "count": count}).Debug("mappings removed")
	return count, nil
}

// Stats summarizes the repository's current mapping state.
type Stats struct {
	MappingCount    int
	TargetCount     int
	ResolvableCount int
	DanglingCount   int
	BaseDirectory   string
}

// Stats reports the number of explicit store mappings, the total number of
// targets across every mapping's stack, and a best-effort point-in-time
// split of FsPath targets into resolvable (file exists under
// BaseDirectory) versus dangling. Link targets are counted but never
// marked dangling here, since their existence is only meaningful once
// resolved through their own target vpath. The root "/" key the store
// always holds is not counted while its stack is empty. This is a snapshot:
// spec.md §5 notes filesystem probes are never cached between operations,
// so a file moved immediately after Stats returns is not reflected.
func (r *Repository) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stats := Stats{BaseDirectory: r.baseDirectory}
	for _, key := range r.store.Keys() {
		raw, _ := r.store.Get(key)
		if key == "/" && len(raw) == 0 {
			continue // the store's root anchor, not an added mapping
		}
		stats.MappingCount++

		for _, t := range targetstack.DecodeStack(raw) {
			stats.TargetCount++
			if t.Kind != targetstack.KindFsPath {
				continue
			}
			candidate := pathutil.Join(r.baseDirectory, t.Value)
			if ok, _ := afero.Exists(r.fs, candidate); ok {
				stats.ResolvableCount++
			} else {
				stats.DanglingCount++
			}
		}
	}
	return stats
}

// Digest returns the SHA-256 content hash (hex-encoded) of vpath's
// highest-priority resolved file, for detecting whether a mapped file's
// content has changed since it was last inspected. It fails with
// ErrResourceNotFound if vpath has no backing file, and with
// ErrUnsupportedResource if vpath resolves to a directory rather than a
// regular file.
func (r *Repository) Digest(vpath string) (string, error) {
	clean, err := pathutil.Sanitize(vpath)
	if err != nil {
		return "", fmt.Errorf("digest %q: %w", vpath, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	results, err := r.resolver.Resolve(clean, true)
	if err != nil {
		return "", fmt.Errorf("digest %q: %w", vpath, err)
	}
	if len(results) == 0 || results[0] == nil {
		return "", fmt.Errorf("digest %q: %w", vpath, apperr.ErrResourceNotFound)
	}

	if isDir, _ := afero.IsDir(r.fs, *results[0]); isDir {
		return "", fmt.Errorf("digest %q: %w", vpath, apperr.ErrUnsupportedResource)
	}

	hash, err := hashFileContent(r.fs, *results[0])
	if err != nil {
		return "", fmt.Errorf("digest %q: %w", vpath, err)
	}
	return hash, nil
}

// Keys returns every explicit virtual-path mapping currently in the store,
// in no particular order. The root "/" key the store always holds is left
// out while its stack is empty.
func (r *Repository) Keys() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	keys := make([]string, 0)
	for _, key := range r.store.Keys() {
		if key == "/" {
			if raw, _ := r.store.Get(key); len(raw) == 0 {
				continue // the store's root anchor, not an added mapping
			}
		}
		keys = append(keys, key)
	}
	return keys
}
