// Package targetstack implements the encoding of a stack of resolution
// targets per virtual path (spec.md §3–§4.2): each entry is either a
// filesystem path relative to the repository's base directory, or a link
// to another virtual path, encoded with the literal "l:" prefix.
package targetstack

import (
	"strings"

	"github.com/vpathfs/repository/internal/kvstore"
)

// Kind distinguishes the two Target variants.
type Kind int

const (
	// KindFsPath is a relative filesystem path, resolved against the
	// repository's base directory.
	KindFsPath Kind = iota
	// KindLink is an absolute virtual path, yielding a second-hop lookup.
	KindLink
)

const linkPrefix = "l:"

// Target is a single resolution edge: either a relative filesystem path or
// a link to another virtual path.
type Target struct {
	Kind  Kind
	Value string // relative fs path, or the linked virtual path
}

// FsPath constructs a filesystem-path target.
func FsPath(relative string) Target {
	return Target{Kind: KindFsPath, Value: relative}
}

// Link constructs a link target pointing at another virtual path.
func Link(virtualTarget string) Target {
	return Target{Kind: KindLink, Value: virtualTarget}
}

// Encode renders a Target to its on-disk string form.
func (t Target) Encode() string {
	if t.Kind == KindLink {
		return linkPrefix + t.Value
	}
	return t.Value
}

// Decode parses the on-disk string form of a single target.
func Decode(s string) Target {
	if rest, ok := strings.CutPrefix(s, linkPrefix); ok {
		return Link(rest)
	}
	return FsPath(s)
}

// DecodeStack parses a stored string list into an ordered list of Targets,
// front-to-back (index 0 is highest priority).
func DecodeStack(raw []string) []Target {
	stack := make([]Target, 0, len(raw))
	for _, s := range raw {
		stack = append(stack, Decode(s))
	}
	return stack
}

// EncodeStack renders a Target list back to its on-disk string form.
func EncodeStack(stack []Target) []string {
	raw := make([]string, 0, len(stack))
	for _, t := range stack {
		raw = append(raw, t.Encode())
	}
	return raw
}

// Push reads the current target stack for vpath from store (empty if
// absent), and if target is not already present by exact encoded-string
// equality, inserts it at position 0 (front = most recent = highest
// priority) and writes the stack back. Existing entries are never removed
// or reordered.
func Push(store kvstore.Store, vpath string, target Target) {
	raw, _ := store.Get(vpath)
	encoded := target.Encode()

	for _, existing := range raw {
		if existing == encoded {
			return // already present, idempotent per spec.md invariant 9
		}
	}

	updated := make([]string, 0, len(raw)+1)
	updated = append(updated, encoded)
	updated = append(updated, raw...)
	store.Set(vpath, updated)
}
