// Package pathutil implements the canonical virtual-path string operations
// the repository engine relies on: sanitization, prefix tests, relativization
// and joining. All of it is pure string manipulation over POSIX-style
// absolute paths rooted at "/".
package pathutil

import (
	"fmt"
	"path"
	"strings"

	"github.com/vpathfs/repository/internal/apperr"
)

// ErrInvalidPath is the sentinel wrapped by Sanitize when an argument
// violates the canonical-absolute contract. It is the same sentinel the
// rest of the engine uses, so errors.Is works across every layer.
var ErrInvalidPath = apperr.ErrInvalidPath

// Sanitize canonicalizes p: it must be non-empty and absolute. The result
// has no "." or ".." segments and no trailing slash except for the root "/".
func Sanitize(p string) (string, error) {
	if p == "" {
		return "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}
	if !strings.HasPrefix(p, "/") {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidPath, p)
	}

	clean := path.Clean(p)
	if clean == "." {
		clean = "/"
	}
	if !strings.HasPrefix(clean, "/") {
		clean = "/" + clean
	}
	return clean, nil
}

// IsAbsolute reports whether p begins with "/".
func IsAbsolute(p string) bool {
	return strings.HasPrefix(p, "/")
}

// IsBasePath reports whether prefix is an ancestor of (or equal to) path,
// after canonicalization. "/a" is a base path of "/a" and "/a/b", but not of
// "/ab".
func IsBasePath(prefix, p string) bool {
	prefix = path.Clean(prefix)
	p = path.Clean(p)

	if prefix == p {
		return true
	}
	if prefix == "/" {
		return strings.HasPrefix(p, "/")
	}
	return strings.HasPrefix(p, prefix+"/")
}

// MakeRelative strips base (plus its trailing separator) from p. It assumes
// IsBasePath(base, p) holds; callers that haven't checked get back p
// unchanged if base isn't actually a prefix of p.
func MakeRelative(p, base string) string {
	p = path.Clean(p)
	base = path.Clean(base)

	if base == "/" {
		return strings.TrimPrefix(p, "/")
	}
	if p == base {
		return ""
	}
	return strings.TrimPrefix(p, base+"/")
}

// Join concatenates segments with "/" separators and cleans the result,
// always returning an absolute path if the first segment was absolute.
func Join(segments ...string) string {
	joined := path.Join(segments...)
	if joined == "" {
		return "/"
	}
	return joined
}

// Depth returns the number of non-empty segments in p, used by callers
// wanting "direct child" semantics (depth(base)+1 == depth(child)).
func Depth(p string) int {
	p = path.Clean(p)
	if p == "/" {
		return 0
	}
	return len(strings.Split(strings.Trim(p, "/"), "/"))
}
