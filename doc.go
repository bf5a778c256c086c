// Package vpathrepo provides a virtual path repository: a canonical,
// absolute-POSIX-path namespace layered over one or more on-disk base
// directories, with per-path override stacks, link indirection, ancestor
// inheritance, fused virtual/on-disk child listing, and glob-driven query
// and removal.
package vpathrepo
