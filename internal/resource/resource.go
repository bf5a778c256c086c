// Package resource provides the minimal concrete resource hierarchy the
// spec treats as an opaque external collaborator (spec.md §1, §6): file,
// directory, link and generic resources, plus the factory and attach-back
// association described in spec.md §9.
package resource

import (
	"github.com/google/uuid"
	"github.com/spf13/afero"
)

// Resource is anything the repository can hand back to a caller from
// get/find/listChildren.
type Resource interface {
	// VPath is the virtual path this resource was resolved at.
	VPath() string
	// AttachTo records a weak association with the owning repository,
	// identified only by id — the resource never holds a reference to the
	// repository itself (spec.md §9).
	AttachTo(repoID uuid.UUID, vpath string)
}

// attachment is the weak back-reference every concrete resource embeds.
type attachment struct {
	repoID uuid.UUID
	vpath  string
}

func (a *attachment) AttachTo(repoID uuid.UUID, vpath string) {
	a.repoID = repoID
	a.vpath = vpath
}

// RepositoryID reports the id of the repository this resource is attached
// to, and whether it has been attached at all.
func (a *attachment) RepositoryID() (uuid.UUID, bool) {
	return a.repoID, a.repoID != uuid.Nil
}

// FileResource wraps a resolved filesystem path that is a regular file.
type FileResource struct {
	attachment
	vpath  string
	fsPath string
	fs     afero.Fs
}

// NewFileResource builds a FileResource over fs, the afero.Fs collaborator
// every filesystem touch is routed through (spec.md §5: the filesystem is
// the source of truth, probed per call, never cached).
func NewFileResource(fs afero.Fs, vpath, fsPath string) *FileResource {
	return &FileResource{vpath: vpath, fsPath: fsPath, fs: fs}
}

func (f *FileResource) VPath() string   { return f.vpath }
func (f *FileResource) FsPath() string  { return f.fsPath }
func (f *FileResource) Open() (afero.File, error) {
	return f.fs.Open(f.fsPath)
}

// DirectoryResource wraps a resolved filesystem path that is a directory.
type DirectoryResource struct {
	attachment
	vpath  string
	fsPath string
	fs     afero.Fs
}

// NewDirectoryResource builds a DirectoryResource over fs.
func NewDirectoryResource(fs afero.Fs, vpath, fsPath string) *DirectoryResource {
	return &DirectoryResource{vpath: vpath, fsPath: fsPath, fs: fs}
}

func (d *DirectoryResource) VPath() string  { return d.vpath }
func (d *DirectoryResource) FsPath() string { return d.fsPath }

// ReadDir lists the directory's direct entries on disk.
func (d *DirectoryResource) ReadDir() ([]string, error) {
	entries, err := afero.ReadDir(d.fs, d.fsPath)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names, nil
}

// LinkResource wraps an absolute virtual path another vpath resolves
// through.
type LinkResource struct {
	attachment
	vpath       string
	targetVPath string
}

// NewLinkResource builds a LinkResource pointing at targetVPath.
func NewLinkResource(vpath, targetVPath string) *LinkResource {
	return &LinkResource{vpath: vpath, targetVPath: targetVPath}
}

func (l *LinkResource) VPath() string       { return l.vpath }
func (l *LinkResource) TargetVPath() string { return l.targetVPath }

// GenericResource is returned by the factory when a virtual path is known
// but has no backing filesystem target (spec.md §4.3 step 1, the "null"
// case).
type GenericResource struct {
	attachment
	vpath string
}

// NewGenericResource builds a GenericResource at vpath.
func NewGenericResource(vpath string) *GenericResource {
	return &GenericResource{vpath: vpath}
}

func (g *GenericResource) VPath() string { return g.vpath }

// Factory constructs concrete resources given a resolved filesystem path
// (or nil) and the virtual path it was resolved at (spec.md §6).
type Factory struct {
	Fs afero.Fs
}

// NewFactory builds a Factory over fs.
func NewFactory(fs afero.Fs) *Factory {
	return &Factory{Fs: fs}
}

// Create returns the concrete resource kind implied by fsPath: a
// DirectoryResource if it's an on-disk directory, a FileResource if it's an
// on-disk file, and a GenericResource if fsPath is nil or doesn't exist.
func (f *Factory) Create(fsPath *string, vpath string) Resource {
	if fsPath == nil {
		return NewGenericResource(vpath)
	}

	isDir, err := afero.IsDir(f.Fs, *fsPath)
	if err != nil {
		return NewGenericResource(vpath)
	}
	if isDir {
		return NewDirectoryResource(f.Fs, vpath, *fsPath)
	}
	return NewFileResource(f.Fs, vpath, *fsPath)
}
