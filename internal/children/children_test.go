package children

import (
	"io"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/vpathfs/repository/internal/kvstore"
	"github.com/vpathfs/repository/internal/resolver"
	"github.com/vpathfs/repository/internal/targetstack"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func setup(t *testing.T) (*Enumerator, afero.Fs, kvstore.Store) {
	t.Helper()
	fs := afero.NewMemMapFs()
	store := kvstore.NewMemStore()
	res := resolver.New(store, fs, "/base", testLogger())
	return New(store, fs, res), fs, store
}

func TestDirectChildren_DiskOnly(t *testing.T) {
	e, fs, store := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/base/fs/css/main.css", []byte("body{}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/base/fs/css/other.css", []byte("body{}"), 0o644))
	store.Set("/app/css", targetstack.EncodeStack([]targetstack.Target{targetstack.FsPath("fs/css")}))

	children, err := e.DirectChildren("/app/css")
	require.NoError(t, err)
	require.Len(t, children, 2)
	require.Equal(t, "/app/css/main.css", children[0].VPath)
	require.Equal(t, "/base/fs/css/main.css", *children[0].FsPath)
	require.Equal(t, "/app/css/other.css", children[1].VPath)
}

func TestDirectChildren_VirtualOverridesDisk(t *testing.T) {
	e, fs, store := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/base/fs/app/config/a.yml", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/base/fs/override/unused.yml", []byte("x"), 0o644))

	store.Set("/app", targetstack.EncodeStack([]targetstack.Target{targetstack.FsPath("fs/app")}))
	store.Set("/app/config", targetstack.EncodeStack([]targetstack.Target{targetstack.FsPath("fs/override")}))

	children, err := e.DirectChildren("/app")
	require.NoError(t, err)
	require.Len(t, children, 1)
	require.Equal(t, "/app/config", children[0].VPath)
	require.Equal(t, "/base/fs/override", *children[0].FsPath)
}

func TestRecursiveChildren_ExpandsVirtualDirectory(t *testing.T) {
	e, fs, store := setup(t)
	require.NoError(t, afero.WriteFile(fs, "/base/fs/css/main.css", []byte("x"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/base/fs/css/sub/deep.css", []byte("x"), 0o644))
	store.Set("/app/css", targetstack.EncodeStack([]targetstack.Target{targetstack.FsPath("fs/css")}))

	all, err := e.RecursiveChildren("/app")
	require.NoError(t, err)
	require.Contains(t, all, "/app/css")
	require.Contains(t, all, "/app/css/main.css")
	require.Contains(t, all, "/app/css/sub")
	require.Contains(t, all, "/app/css/sub/deep.css")
}

func TestHasChildren(t *testing.T) {
	e, _, store := setup(t)
	store.Set("/app", targetstack.EncodeStack([]targetstack.Target{}))

	has, err := e.HasChildren("/app")
	require.NoError(t, err)
	require.False(t, has)

	store.Set("/app/x", targetstack.EncodeStack([]targetstack.Target{targetstack.FsPath("anything")}))
	has, err = e.HasChildren("/app")
	require.NoError(t, err)
	require.True(t, has)
}
