// Package globutil implements glob-query semantics over virtual paths:
// detecting dynamic (metacharacter-bearing) queries, extracting their
// longest literal prefix, and matching paths against them. Matching is
// delegated to github.com/bmatcuk/doublestar/v4, which already implements
// POSIX-style glob semantics with "**" spanning multiple path segments.
package globutil

import (
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// metaChars are the characters that make a query pattern dynamic.
const metaChars = "*?[{"

// IsDynamic reports whether q contains any glob metacharacter.
func IsDynamic(q string) bool {
	return strings.ContainsAny(q, metaChars)
}

// StaticPrefix returns the longest literal (metacharacter-free) prefix of q,
// trimmed back to the last "/" so the result is always a directory-aligned
// path usable as an enumeration root.
func StaticPrefix(q string) string {
	idx := strings.IndexAny(q, metaChars)
	prefix := q
	if idx >= 0 {
		prefix = q[:idx]
	}

	if slash := strings.LastIndex(prefix, "/"); slash >= 0 {
		prefix = prefix[:slash]
	} else {
		prefix = ""
	}
	if prefix == "" {
		prefix = "/"
	}
	return prefix
}

// Match reports whether p matches glob pattern q. Patterns use doublestar
// syntax: "*" matches within one segment, "**" matches across segments.
// Leading slashes are stripped before delegating since doublestar patterns
// are unrooted.
func Match(p, q string) bool {
	pp := strings.TrimPrefix(p, "/")
	qq := strings.TrimPrefix(q, "/")
	ok, err := doublestar.Match(qq, pp)
	if err != nil {
		return false
	}
	return ok
}
