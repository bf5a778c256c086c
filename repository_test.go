package vpathrepo

import (
	"errors"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/vpathfs/repository/internal/resource"
)

func setupTestRepository(t *testing.T) (*Repository, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/srv/static/style.css", []byte("body{}"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/srv/static/app.js", []byte("console.log(1)"), 0o644))
	require.NoError(t, fs.MkdirAll("/srv/static/vendor", 0o755))
	require.NoError(t, afero.WriteFile(fs, "/srv/static/vendor/lib.js", []byte("//lib"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/srv/override/app.js", []byte("console.log(2)"), 0o644))

	repo, err := New("/srv", WithFilesystem(fs))
	require.NoError(t, err)
	return repo, fs
}

func TestGet_ResolvesMappedFile(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))

	res, err := repo.Get("/assets/style.css")
	require.NoError(t, err)

	file, ok := res.(*resource.FileResource)
	require.True(t, ok)
	require.Equal(t, "/assets/style.css", file.VPath())
	require.Equal(t, "/srv/static/style.css", file.FsPath())
}

func TestGet_ReportsNotFoundForUnmappedPath(t *testing.T) {
	repo, _ := setupTestRepository(t)

	_, err := repo.Get("/nowhere")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrResourceNotFound))
}

func TestAdd_OverridePrecedenceMostRecentWins(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))
	require.NoError(t, repo.Add("/assets/app.js", FilesystemSource{RelativePath: "override/app.js"}))

	res, err := repo.Get("/assets/app.js")
	require.NoError(t, err)

	file, ok := res.(*resource.FileResource)
	require.True(t, ok)
	require.Equal(t, "/srv/override/app.js", file.FsPath())
}

func TestAdd_LinkResolvesThroughTarget(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))
	require.NoError(t, repo.Add("/alias", LinkSource{TargetVPath: "/assets"}))

	res, err := repo.Get("/alias")
	require.NoError(t, err)

	dir, ok := res.(*resource.DirectoryResource)
	require.True(t, ok)
	require.Equal(t, "/srv/static", dir.FsPath())

	children, err := repo.ListChildren("/alias")
	require.NoError(t, err)
	names := make(map[string]bool)
	for _, c := range children {
		names[c.VPath()] = true
	}
	require.True(t, names["/alias/style.css"])
}

func TestListChildren_FusesOnDiskAndVirtualEntries(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))
	require.NoError(t, repo.Add("/assets/extra.txt", FilesystemSource{RelativePath: "override/app.js"}))

	children, err := repo.ListChildren("/assets")
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, c := range children {
		names[c.VPath()] = true
	}
	require.True(t, names["/assets/style.css"])
	require.True(t, names["/assets/app.js"])
	require.True(t, names["/assets/vendor"])
	require.True(t, names["/assets/extra.txt"])
}

func TestFind_RecursiveGlobMatchesNestedFiles(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))

	matches, err := repo.Find("/assets/**/*.js", "glob")
	require.NoError(t, err)

	vpaths := make([]string, 0, len(matches))
	for _, m := range matches {
		vpaths = append(vpaths, m.VPath())
	}
	require.Contains(t, vpaths, "/assets/app.js")
	require.Contains(t, vpaths, "/assets/vendor/lib.js")
}

func TestContains_LiteralResolvesInheritedPath(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))

	ok, err := repo.Contains("/assets/style.css", "literal")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestFind_RejectsUnknownLanguage(t *testing.T) {
	repo, _ := setupTestRepository(t)

	_, err := repo.Find("/assets", "regex")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsupportedLanguage))
}

func TestRemove_RejectsNonMappingMatch(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))

	_, err := repo.Remove("/assets/style.css")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrUnsupportedOperation))
}

func TestRemove_DeletesMappingAndVirtualDescendants(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))
	require.NoError(t, repo.Add("/assets/extra", FilesystemSource{RelativePath: "override"}))

	count, err := repo.Remove("/assets")
	require.NoError(t, err)
	require.Equal(t, 2, count)

	_, err = repo.Get("/assets/extra")
	require.Error(t, err)
}

func TestKeys_ReturnsOnlyExplicitMappings(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))
	require.NoError(t, repo.Add("/alias", LinkSource{TargetVPath: "/assets"}))

	keys := repo.Keys()
	require.ElementsMatch(t, []string{"/assets", "/alias"}, keys)

	// /assets/style.css is only reachable through ancestor inheritance, not
	// an explicit mapping, so it must not appear in Keys().
	_, err := repo.Get("/assets/style.css")
	require.NoError(t, err)
	require.NotContains(t, keys, "/assets/style.css")
}

func TestStats_ReportsMappingCount(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))
	require.NoError(t, repo.Add("/alias", LinkSource{TargetVPath: "/assets"}))

	stats := repo.Stats()
	require.Equal(t, 2, stats.MappingCount)
	require.Equal(t, "/srv", stats.BaseDirectory)
}

func TestStats_SplitsResolvableAndDanglingTargets(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))
	require.NoError(t, repo.Add("/missing", FilesystemSource{RelativePath: "nonexistent"}))
	require.NoError(t, repo.Add("/alias", LinkSource{TargetVPath: "/assets"}))

	stats := repo.Stats()
	require.Equal(t, 3, stats.MappingCount)
	require.Equal(t, 3, stats.TargetCount)
	require.Equal(t, 1, stats.ResolvableCount)
	require.Equal(t, 1, stats.DanglingCount)
}

func TestDigest_HashesResolvedFileContent(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))

	hash, err := repo.Digest("/assets/style.css")
	require.NoError(t, err)
	require.NotEmpty(t, hash)

	hashAgain, err := repo.Digest("/assets/style.css")
	require.NoError(t, err)
	require.Equal(t, hash, hashAgain)
}

func TestDigest_FailsForUnbackedVirtualPath(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/virtual-only", LinkSource{TargetVPath: "/virtual-only-target"}))

	_, err := repo.Digest("/virtual-only")
	require.Error(t, err)
}

func TestDigest_FailsForDirectory(t *testing.T) {
	repo, _ := setupTestRepository(t)
	require.NoError(t, repo.Add("/assets", FilesystemSource{RelativePath: "static"}))

	_, err := repo.Digest("/assets")
	require.Error(t, err)
}
