// Package kvstore defines the abstract key→value-list mapping the path
// repository engine is built on, plus two implementations: an in-memory
// store for tests and short-lived repositories, and a persistent store
// backed by go.etcd.io/bbolt for repositories that need to survive a
// process restart.
package kvstore

// Store is the abstract mapping the core consumes. Keys are canonical
// virtual paths; values are the on-disk encoding of a TargetStack (see
// package targetstack) — a list of strings where a link target is prefixed
// with "l:".
type Store interface {
	Exists(key string) bool
	Get(key string) ([]string, bool)
	Set(key string, value []string)
	Remove(key string) bool
	Keys() []string
}
